package mysql

import (
	"errors"

	"storefront/internal/domain"
	"storefront/internal/repository"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type cartRepo struct {
	db  *gorm.DB
	log *logrus.Logger
}

func NewCartRepository(db *gorm.DB, logger *logrus.Logger) repository.CartRepository {
	return &cartRepo{db: db, log: logger}
}

func (r *cartRepo) FindByKey(cartKey string) ([]domain.CartItem, error) {
	var out []domain.CartItem
	if err := r.db.Where("cart_key = ?", cartKey).Find(&out).Error; err != nil {
		r.log.WithError(err).Error("cart list failed")
		return nil, err
	}
	return out, nil
}

func (r *cartRepo) FindByID(id uint64) (*domain.CartItem, error) {
	var item domain.CartItem
	if err := r.db.First(&item, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrCartItemNotFound
		}
		r.log.WithError(err).WithField("cartItemId", id).Error("cart item lookup failed")
		return nil, err
	}
	return &item, nil
}

func (r *cartRepo) FindByProduct(cartKey string, productID uint64) (*domain.CartItem, error) {
	var item domain.CartItem
	err := r.db.Where("cart_key = ? AND product_id = ?", cartKey, productID).First(&item).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		r.log.WithError(err).Error("cart line lookup failed")
		return nil, err
	}
	return &item, nil
}

func (r *cartRepo) Save(item *domain.CartItem) error {
	if err := r.db.Create(item).Error; err != nil {
		r.log.WithError(err).Error("cart item save failed")
		return err
	}
	return nil
}

func (r *cartRepo) UpdateQuantity(id uint64, quantity int64) (*domain.CartItem, error) {
	result := r.db.Model(&domain.CartItem{}).Where("id = ?", id).Update("quantity", quantity)
	if result.Error != nil {
		r.log.WithError(result.Error).WithField("cartItemId", id).Error("cart quantity update failed")
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, domain.ErrCartItemNotFound
	}
	return r.FindByID(id)
}

func (r *cartRepo) Delete(id uint64) error {
	result := r.db.Delete(&domain.CartItem{}, id)
	if result.Error != nil {
		r.log.WithError(result.Error).WithField("cartItemId", id).Error("cart item delete failed")
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrCartItemNotFound
	}
	return nil
}

func (r *cartRepo) DeleteByProduct(cartKey string, productID uint64) error {
	// Zero rows is fine here: the line may already be gone.
	err := r.db.Where("cart_key = ? AND product_id = ?", cartKey, productID).
		Delete(&domain.CartItem{}).Error
	if err != nil {
		r.log.WithError(err).Error("cart line delete failed")
	}
	return err
}

func (r *cartRepo) Clear(cartKey string) error {
	err := r.db.Where("cart_key = ?", cartKey).Delete(&domain.CartItem{}).Error
	if err != nil {
		r.log.WithError(err).Error("cart clear failed")
	}
	return err
}
