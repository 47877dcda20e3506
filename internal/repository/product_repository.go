package repository

import (
	"storefront/internal/domain"
)

type ProductRepository interface {
	FindAll() ([]domain.Product, error)
	FindByID(id uint64) (*domain.Product, error)
	Save(product *domain.Product) error
	Update(id uint64, patch domain.ProductPatch) (*domain.Product, error)
	Delete(id uint64) error

	// DecrementStock atomically subtracts qty from the product's stock
	// and fails without writing when less than qty is available. This
	// is the only mutation order placement performs on the catalog.
	DecrementStock(id uint64, qty int64) error

	// RestoreStock adds qty back, used to compensate a partially
	// applied order placement.
	RestoreStock(id uint64, qty int64) error
}
