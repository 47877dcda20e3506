package repository

import (
	"storefront/internal/domain"
)

type UserRepository interface {
	FindAll() ([]domain.User, error)
	FindByID(id uint64) (*domain.User, error)
	// FindByEmail returns (nil, nil) when no user has the address.
	FindByEmail(email string) (*domain.User, error)
	Save(user *domain.User) error
	Update(id uint64, patch domain.UserPatch) (*domain.User, error)
	Delete(id uint64) error
}
