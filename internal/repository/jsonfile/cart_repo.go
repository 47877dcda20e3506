package jsonfile

import (
	"storefront/internal/domain"
	"storefront/internal/repository"

	"github.com/sirupsen/logrus"
)

type cartRepo struct {
	items *Collection[domain.CartItem]
	log   *logrus.Logger
}

func NewCartRepository(store *Store, logger *logrus.Logger) repository.CartRepository {
	return &cartRepo{
		items: NewCollection[domain.CartItem](store, "cart_items", domain.ErrCartItemNotFound),
		log:   logger,
	}
}

func (r *cartRepo) FindByKey(cartKey string) ([]domain.CartItem, error) {
	all, err := r.items.All()
	if err != nil {
		return nil, err
	}
	out := make([]domain.CartItem, 0, len(all))
	for _, item := range all {
		if item.CartKey == cartKey {
			out = append(out, item)
		}
	}
	return out, nil
}

func (r *cartRepo) FindByID(id uint64) (*domain.CartItem, error) {
	return r.items.Get(id)
}

func (r *cartRepo) FindByProduct(cartKey string, productID uint64) (*domain.CartItem, error) {
	return r.items.FindFirst(func(item domain.CartItem) bool {
		return item.CartKey == cartKey && item.ProductID == productID
	})
}

func (r *cartRepo) Save(item *domain.CartItem) error {
	return r.items.Insert(item)
}

func (r *cartRepo) UpdateQuantity(id uint64, quantity int64) (*domain.CartItem, error) {
	return r.items.Patch(id, map[string]any{"quantity": quantity})
}

func (r *cartRepo) Delete(id uint64) error {
	return r.items.Delete(id)
}

func (r *cartRepo) DeleteByProduct(cartKey string, productID uint64) error {
	_, err := r.items.DeleteWhere(func(item domain.CartItem) bool {
		return item.CartKey == cartKey && item.ProductID == productID
	})
	return err
}

func (r *cartRepo) Clear(cartKey string) error {
	_, err := r.items.DeleteWhere(func(item domain.CartItem) bool {
		return item.CartKey == cartKey
	})
	return err
}
