package services

import (
	"context"
	"errors"
	"testing"

	"storefront/internal/domain"
	"storefront/internal/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newCartService(t *testing.T) (*CartService, *mocks.MockCartRepository, *mocks.MockCatalog) {
	t.Helper()
	repo := new(mocks.MockCartRepository)
	catalog := new(mocks.MockCatalog)
	return NewCartService(repo, catalog, newTestLogger()), repo, catalog
}

func TestCartService_AddOrMerge_NewLine(t *testing.T) {
	service, repo, catalog := newCartService(t)

	catalog.On("FindByID", mock.Anything, uint64(1)).Return(testProduct(1, "Mug", 9.5, 10), nil)
	repo.On("FindByProduct", testCartKey, uint64(1)).Return(nil, nil)
	repo.On("Save", mock.AnythingOfType("*domain.CartItem")).Return(nil).Run(func(args mock.Arguments) {
		args.Get(0).(*domain.CartItem).ID = 1
	})

	item, err := service.AddOrMerge(context.Background(), testCartKey, 1, 2)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), item.ID)
	assert.Equal(t, testCartKey, item.CartKey)
	assert.Equal(t, int64(2), item.Quantity)
	repo.AssertExpectations(t)
}

func TestCartService_AddOrMerge_MergesQuantities(t *testing.T) {
	service, repo, catalog := newCartService(t)

	catalog.On("FindByID", mock.Anything, uint64(1)).Return(testProduct(1, "Mug", 9.5, 10), nil)
	existing := &domain.CartItem{ID: 4, CartKey: testCartKey, ProductID: 1, Quantity: 2}
	repo.On("FindByProduct", testCartKey, uint64(1)).Return(existing, nil)
	repo.On("UpdateQuantity", uint64(4), int64(5)).Return(&domain.CartItem{ID: 4, CartKey: testCartKey, ProductID: 1, Quantity: 5}, nil)

	item, err := service.AddOrMerge(context.Background(), testCartKey, 1, 3)
	require.NoError(t, err)
	assert.Equal(t, int64(5), item.Quantity)

	// Exactly one line per product: no Save of a second line.
	repo.AssertNotCalled(t, "Save", mock.Anything)
	repo.AssertExpectations(t)
}

func TestCartService_AddOrMerge_InsufficientStock(t *testing.T) {
	tests := []struct {
		name     string
		stock    int64
		existing *domain.CartItem
		qty      int64
		wantReq  int64
	}{
		{name: "plain add over stock", stock: 2, existing: nil, qty: 3, wantReq: 3},
		{
			name:     "merged quantity over stock",
			stock:    4,
			existing: &domain.CartItem{ID: 4, CartKey: testCartKey, ProductID: 1, Quantity: 3},
			qty:      2,
			wantReq:  5,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, repo, catalog := newCartService(t)
			catalog.On("FindByID", mock.Anything, uint64(1)).Return(testProduct(1, "Mug", 9.5, tt.stock), nil)
			if tt.qty <= tt.stock {
				repo.On("FindByProduct", testCartKey, uint64(1)).Return(tt.existing, nil)
			}

			_, err := service.AddOrMerge(context.Background(), testCartKey, 1, tt.qty)
			var stockErr *domain.InsufficientStockError
			require.True(t, errors.As(err, &stockErr))
			assert.Equal(t, tt.wantReq, stockErr.Requested)
			assert.Equal(t, tt.stock, stockErr.Available)

			repo.AssertNotCalled(t, "Save", mock.Anything)
			repo.AssertNotCalled(t, "UpdateQuantity", mock.Anything, mock.Anything)
		})
	}
}

func TestCartService_AddOrMerge_UnknownProduct(t *testing.T) {
	service, repo, catalog := newCartService(t)

	catalog.On("FindByID", mock.Anything, uint64(99)).Return(nil, domain.ErrProductNotFound)

	_, err := service.AddOrMerge(context.Background(), testCartKey, 99, 1)
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
	repo.AssertNotCalled(t, "Save", mock.Anything)
}

func TestCartService_AddOrMerge_InvalidQuantity(t *testing.T) {
	service, _, catalog := newCartService(t)

	_, err := service.AddOrMerge(context.Background(), testCartKey, 1, 0)
	assert.ErrorIs(t, err, ErrInvalidQuantity)
	catalog.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
}

func TestCartService_UpdateQuantity(t *testing.T) {
	service, repo, catalog := newCartService(t)

	repo.On("FindByID", uint64(4)).Return(&domain.CartItem{ID: 4, CartKey: testCartKey, ProductID: 1, Quantity: 2}, nil)
	catalog.On("FindByID", mock.Anything, uint64(1)).Return(testProduct(1, "Mug", 9.5, 3), nil)

	_, err := service.UpdateQuantity(context.Background(), 4, 5)
	var stockErr *domain.InsufficientStockError
	require.True(t, errors.As(err, &stockErr))

	repo.On("UpdateQuantity", uint64(4), int64(3)).Return(&domain.CartItem{ID: 4, Quantity: 3}, nil)
	item, err := service.UpdateQuantity(context.Background(), 4, 3)
	require.NoError(t, err)
	assert.Equal(t, int64(3), item.Quantity)
}

func TestCartService_Clear(t *testing.T) {
	service, repo, _ := newCartService(t)

	repo.On("Clear", testCartKey).Return(nil)
	require.NoError(t, service.Clear(testCartKey))
	repo.AssertExpectations(t)
}
