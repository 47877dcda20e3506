package repository

import (
	"storefront/internal/domain"
)

type CartRepository interface {
	FindByKey(cartKey string) ([]domain.CartItem, error)
	FindByID(id uint64) (*domain.CartItem, error)
	FindByProduct(cartKey string, productID uint64) (*domain.CartItem, error)
	Save(item *domain.CartItem) error
	UpdateQuantity(id uint64, quantity int64) (*domain.CartItem, error)
	Delete(id uint64) error

	// DeleteByProduct removes the line for productID from the given
	// cart. A missing line is not an error; order placement relies on
	// that to treat already-removed lines as a no-op.
	DeleteByProduct(cartKey string, productID uint64) error

	Clear(cartKey string) error
}
