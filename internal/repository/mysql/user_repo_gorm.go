package mysql

import (
	"errors"

	"storefront/internal/domain"
	"storefront/internal/repository"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type userRepo struct {
	db  *gorm.DB
	log *logrus.Logger
}

func NewUserRepository(db *gorm.DB, logger *logrus.Logger) repository.UserRepository {
	return &userRepo{db: db, log: logger}
}

func (r *userRepo) FindAll() ([]domain.User, error) {
	var out []domain.User
	if err := r.db.Find(&out).Error; err != nil {
		r.log.WithError(err).Error("user list failed")
		return nil, err
	}
	return out, nil
}

func (r *userRepo) FindByID(id uint64) (*domain.User, error) {
	var u domain.User
	if err := r.db.First(&u, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		r.log.WithError(err).WithField("userId", id).Error("user lookup failed")
		return nil, err
	}
	return &u, nil
}

func (r *userRepo) FindByEmail(email string) (*domain.User, error) {
	var u domain.User
	err := r.db.Where("email = ?", email).First(&u).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		r.log.WithError(err).Error("user lookup by email failed")
		return nil, err
	}
	return &u, nil
}

func (r *userRepo) Save(user *domain.User) error {
	if err := r.db.Create(user).Error; err != nil {
		r.log.WithError(err).Error("user save failed")
		return err
	}
	return nil
}

func (r *userRepo) Update(id uint64, patch domain.UserPatch) (*domain.User, error) {
	u, err := r.FindByID(id)
	if err != nil {
		return nil, err
	}
	if patch.Name != nil {
		u.Name = *patch.Name
	}
	if patch.Email != nil {
		u.Email = *patch.Email
	}
	if patch.Password != nil {
		u.Password = *patch.Password
	}
	if patch.Address != nil {
		u.Address = *patch.Address
	}
	if patch.ContactNumber != nil {
		u.ContactNumber = *patch.ContactNumber
	}
	if patch.City != nil {
		u.City = *patch.City
	}
	if patch.PostalCode != nil {
		u.PostalCode = *patch.PostalCode
	}
	if err := r.db.Save(u).Error; err != nil {
		r.log.WithError(err).WithField("userId", id).Error("user update failed")
		return nil, err
	}
	return u, nil
}

func (r *userRepo) Delete(id uint64) error {
	result := r.db.Delete(&domain.User{}, id)
	if result.Error != nil {
		r.log.WithError(result.Error).WithField("userId", id).Error("user delete failed")
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}
