package jsonfile

import (
	"storefront/internal/domain"
	"storefront/internal/repository"

	"github.com/sirupsen/logrus"
)

type userRepo struct {
	items *Collection[domain.User]
	log   *logrus.Logger
}

func NewUserRepository(store *Store, logger *logrus.Logger) repository.UserRepository {
	return &userRepo{
		items: NewCollection[domain.User](store, "users", domain.ErrUserNotFound),
		log:   logger,
	}
}

func (r *userRepo) FindAll() ([]domain.User, error) {
	return r.items.All()
}

func (r *userRepo) FindByID(id uint64) (*domain.User, error) {
	return r.items.Get(id)
}

func (r *userRepo) FindByEmail(email string) (*domain.User, error) {
	return r.items.FindFirst(func(u domain.User) bool {
		return u.Email == email
	})
}

func (r *userRepo) Save(user *domain.User) error {
	return r.items.Insert(user)
}

func (r *userRepo) Update(id uint64, patch domain.UserPatch) (*domain.User, error) {
	partial, err := asPartial(patch)
	if err != nil {
		return nil, err
	}
	return r.items.Patch(id, partial)
}

func (r *userRepo) Delete(id uint64) error {
	return r.items.Delete(id)
}
