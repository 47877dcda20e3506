package services

import (
	"context"
	"testing"

	"storefront/internal/domain"
	"storefront/internal/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCatalogService(t *testing.T) (*CatalogService, *mocks.MockProductRepository) {
	t.Helper()
	repo := new(mocks.MockProductRepository)
	return NewCatalogService(repo, newTestLogger()), repo
}

func TestCatalogService_FindByID_WithoutCache(t *testing.T) {
	service, repo := newCatalogService(t)

	repo.On("FindByID", uint64(1)).Return(testProduct(1, "Mug", 9.5, 10), nil)
	repo.On("FindByID", uint64(99)).Return(nil, domain.ErrProductNotFound)

	p, err := service.FindByID(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "Mug", p.Name)

	_, err = service.FindByID(context.Background(), 99)
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
}

func TestCatalogService_SetStock(t *testing.T) {
	service, repo := newCatalogService(t)

	repo.On("Update", uint64(1), domain.ProductPatch{Stock: int64Ptr(0)}).
		Return(testProduct(1, "Mug", 9.5, 0), nil)

	p, err := service.SetStock(context.Background(), 1, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(0), p.Stock)
	repo.AssertExpectations(t)
}

func TestCatalogService_StockPassthrough(t *testing.T) {
	service, repo := newCatalogService(t)

	repo.On("DecrementStock", uint64(1), int64(3)).Return(nil)
	repo.On("RestoreStock", uint64(1), int64(3)).Return(nil)

	require.NoError(t, service.DecrementStock(context.Background(), 1, 3))
	require.NoError(t, service.RestoreStock(context.Background(), 1, 3))
	repo.AssertExpectations(t)
}

func int64Ptr(v int64) *int64 {
	return &v
}
