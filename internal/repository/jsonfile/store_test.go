package jsonfile

import (
	"errors"
	"io"
	"testing"
	"time"

	"storefront/internal/domain"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := NewStore(t.TempDir())
	require.NoError(t, err)
	return store
}

func TestCollection_InsertAssignsIDs(t *testing.T) {
	store := newTestStore(t)
	repo := NewProductRepository(store, testLogger())

	first := &domain.Product{Name: "Mug", Price: 9.5, Stock: 10}
	require.NoError(t, repo.Save(first))
	assert.Equal(t, uint64(1), first.ID)
	assert.False(t, first.CreatedAt.IsZero())
	assert.False(t, first.UpdatedAt.IsZero())

	second := &domain.Product{Name: "Plate", Price: 12, Stock: 4}
	require.NoError(t, repo.Save(second))
	assert.Equal(t, uint64(2), second.ID)

	// After deleting the highest id the next insert still uses max+1
	// over what remains.
	require.NoError(t, repo.Delete(2))
	third := &domain.Product{Name: "Bowl", Price: 7, Stock: 2}
	require.NoError(t, repo.Save(third))
	assert.Equal(t, uint64(2), third.ID)
}

func TestCollection_InsertKeepsExplicitID(t *testing.T) {
	store := newTestStore(t)
	repo := NewProductRepository(store, testLogger())

	p := &domain.Product{ID: 42, Name: "Vase", Price: 30, Stock: 1}
	require.NoError(t, repo.Save(p))
	assert.Equal(t, uint64(42), p.ID)

	next := &domain.Product{Name: "Cup", Price: 3, Stock: 5}
	require.NoError(t, repo.Save(next))
	assert.Equal(t, uint64(43), next.ID)
}

func TestCollection_GetMissing(t *testing.T) {
	store := newTestStore(t)
	repo := NewProductRepository(store, testLogger())

	_, err := repo.FindByID(99)
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
}

func TestCollection_PatchMergesAndPinsID(t *testing.T) {
	store := newTestStore(t)
	repo := NewProductRepository(store, testLogger())

	p := &domain.Product{Name: "Lamp", Description: "desk lamp", Price: 25, Stock: 8}
	require.NoError(t, repo.Save(p))
	createdAt := p.CreatedAt

	newPrice := 19.99
	updated, err := repo.Update(p.ID, domain.ProductPatch{Price: &newPrice})
	require.NoError(t, err)

	assert.Equal(t, p.ID, updated.ID)
	assert.Equal(t, 19.99, updated.Price)
	assert.Equal(t, "Lamp", updated.Name)
	assert.Equal(t, "desk lamp", updated.Description)
	assert.Equal(t, int64(8), updated.Stock)
	assert.Equal(t, createdAt, updated.CreatedAt)
	assert.True(t, updated.UpdatedAt.After(createdAt) || updated.UpdatedAt.Equal(createdAt))

	_, err = repo.Update(99, domain.ProductPatch{Price: &newPrice})
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
}

func TestCollection_DeleteMissing(t *testing.T) {
	store := newTestStore(t)
	repo := NewProductRepository(store, testLogger())

	assert.ErrorIs(t, repo.Delete(1), domain.ErrProductNotFound)
}

func TestCollection_Clear(t *testing.T) {
	store := newTestStore(t)
	coll := NewCollection[domain.Product](store, "products", domain.ErrProductNotFound)

	require.NoError(t, coll.Insert(&domain.Product{Name: "A"}))
	require.NoError(t, coll.Insert(&domain.Product{Name: "B"}))
	require.NoError(t, coll.Clear())

	items, err := coll.All()
	require.NoError(t, err)
	assert.Empty(t, items)

	// Ids restart at 1 on an empty collection.
	p := &domain.Product{Name: "C"}
	require.NoError(t, coll.Insert(p))
	assert.Equal(t, uint64(1), p.ID)
}

func TestProductRepo_DecrementStock(t *testing.T) {
	store := newTestStore(t)
	repo := NewProductRepository(store, testLogger())

	p := &domain.Product{Name: "Chair", Price: 100, Stock: 5}
	require.NoError(t, repo.Save(p))

	require.NoError(t, repo.DecrementStock(p.ID, 3))
	got, err := repo.FindByID(p.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), got.Stock)

	err = repo.DecrementStock(p.ID, 3)
	var stockErr *domain.InsufficientStockError
	require.True(t, errors.As(err, &stockErr))
	assert.Equal(t, "Chair", stockErr.ProductName)
	assert.Equal(t, int64(2), stockErr.Available)
	assert.Equal(t, int64(3), stockErr.Requested)

	// Rejected decrements leave stock untouched.
	got, err = repo.FindByID(p.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), got.Stock)

	require.NoError(t, repo.RestoreStock(p.ID, 3))
	got, err = repo.FindByID(p.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(5), got.Stock)
}

func TestCartRepo_ScopedByKey(t *testing.T) {
	store := newTestStore(t)
	repo := NewCartRepository(store, testLogger())

	require.NoError(t, repo.Save(&domain.CartItem{CartKey: "alice", ProductID: 1, Quantity: 2}))
	require.NoError(t, repo.Save(&domain.CartItem{CartKey: "alice", ProductID: 2, Quantity: 1}))
	require.NoError(t, repo.Save(&domain.CartItem{CartKey: "bob", ProductID: 1, Quantity: 4}))

	alice, err := repo.FindByKey("alice")
	require.NoError(t, err)
	assert.Len(t, alice, 2)

	line, err := repo.FindByProduct("alice", 1)
	require.NoError(t, err)
	require.NotNil(t, line)
	assert.Equal(t, int64(2), line.Quantity)

	// Absent line is not an error.
	line, err = repo.FindByProduct("alice", 99)
	require.NoError(t, err)
	assert.Nil(t, line)

	// Removing a line that is already gone is a no-op.
	require.NoError(t, repo.DeleteByProduct("alice", 99))

	require.NoError(t, repo.Clear("alice"))
	alice, err = repo.FindByKey("alice")
	require.NoError(t, err)
	assert.Empty(t, alice)

	bob, err := repo.FindByKey("bob")
	require.NoError(t, err)
	assert.Len(t, bob, 1)
}

func TestOrderRepo_FindAllSortedByCreatedAtDesc(t *testing.T) {
	store := newTestStore(t)
	repo := NewOrderRepository(store, testLogger())

	base := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		require.NoError(t, repo.Save(&domain.Order{
			UserID:      1,
			TotalAmount: float64(10 * (i + 1)),
			Status:      domain.StatusPending,
			CreatedAt:   base.Add(time.Duration(i) * time.Hour),
		}))
	}

	orders, err := repo.FindAll()
	require.NoError(t, err)
	require.Len(t, orders, 3)
	assert.True(t, orders[0].CreatedAt.After(orders[1].CreatedAt))
	assert.True(t, orders[1].CreatedAt.After(orders[2].CreatedAt))

	byUser, err := repo.FindByUser(1)
	require.NoError(t, err)
	assert.Len(t, byUser, 3)

	byUser, err = repo.FindByUser(2)
	require.NoError(t, err)
	assert.Empty(t, byUser)
}

func TestUserRepo_FindByEmail(t *testing.T) {
	store := newTestStore(t)
	repo := NewUserRepository(store, testLogger())

	require.NoError(t, repo.Save(&domain.User{Name: "Ann", Email: "a@x.com", Password: "pw"}))

	u, err := repo.FindByEmail("a@x.com")
	require.NoError(t, err)
	require.NotNil(t, u)
	assert.Equal(t, "Ann", u.Name)

	u, err = repo.FindByEmail("nobody@x.com")
	require.NoError(t, err)
	assert.Nil(t, u)
}
