package jsonfile

import (
	"storefront/internal/domain"
	"storefront/internal/repository"

	"github.com/sirupsen/logrus"
)

type productRepo struct {
	items *Collection[domain.Product]
	log   *logrus.Logger
}

func NewProductRepository(store *Store, logger *logrus.Logger) repository.ProductRepository {
	return &productRepo{
		items: NewCollection[domain.Product](store, "products", domain.ErrProductNotFound),
		log:   logger,
	}
}

func (r *productRepo) FindAll() ([]domain.Product, error) {
	return r.items.All()
}

func (r *productRepo) FindByID(id uint64) (*domain.Product, error) {
	return r.items.Get(id)
}

func (r *productRepo) Save(product *domain.Product) error {
	return r.items.Insert(product)
}

func (r *productRepo) Update(id uint64, patch domain.ProductPatch) (*domain.Product, error) {
	partial, err := asPartial(patch)
	if err != nil {
		return nil, err
	}
	return r.items.Patch(id, partial)
}

func (r *productRepo) Delete(id uint64) error {
	return r.items.Delete(id)
}

func (r *productRepo) DecrementStock(id uint64, qty int64) error {
	_, err := r.items.Mutate(id, func(rec map[string]any) error {
		stock := recordInt(rec, "stock")
		if stock < qty {
			name, _ := rec["name"].(string)
			return &domain.InsufficientStockError{
				ProductID:   id,
				ProductName: name,
				Available:   stock,
				Requested:   qty,
			}
		}
		rec["stock"] = stock - qty
		return nil
	})
	if err != nil {
		r.log.WithError(err).WithField("productId", id).Warn("stock decrement rejected")
	}
	return err
}

func (r *productRepo) RestoreStock(id uint64, qty int64) error {
	_, err := r.items.Mutate(id, func(rec map[string]any) error {
		rec["stock"] = recordInt(rec, "stock") + qty
		return nil
	})
	return err
}
