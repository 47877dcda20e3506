package repository

import (
	"storefront/internal/domain"
)

type OrderRepository interface {
	Save(order *domain.Order) error
	FindAll() ([]domain.Order, error)
	FindByID(id uint64) (*domain.Order, error)
	FindByUser(userID uint64) ([]domain.Order, error)
	UpdateStatus(id uint64, status domain.OrderStatus) (*domain.Order, error)
	Delete(id uint64) error
}
