package mysql

import (
	"errors"

	"storefront/internal/domain"
	"storefront/internal/repository"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type orderRepo struct {
	db  *gorm.DB
	log *logrus.Logger
}

func NewOrderRepository(db *gorm.DB, logger *logrus.Logger) repository.OrderRepository {
	return &orderRepo{db: db, log: logger}
}

func (r *orderRepo) Save(order *domain.Order) error {
	result := r.db.Create(order)
	if result.Error != nil {
		r.log.WithError(result.Error).Error("order save failed")
		return result.Error
	}
	if order.ID == 0 {
		return errors.New("failed to assign order ID")
	}
	return nil
}

func (r *orderRepo) FindAll() ([]domain.Order, error) {
	var out []domain.Order
	if err := r.db.Order("created_at DESC").Find(&out).Error; err != nil {
		r.log.WithError(err).Error("order list failed")
		return nil, err
	}
	return out, nil
}

func (r *orderRepo) FindByID(id uint64) (*domain.Order, error) {
	var o domain.Order
	if err := r.db.First(&o, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrOrderNotFound
		}
		r.log.WithError(err).WithField("orderId", id).Error("order lookup failed")
		return nil, err
	}
	return &o, nil
}

func (r *orderRepo) FindByUser(userID uint64) ([]domain.Order, error) {
	var out []domain.Order
	if err := r.db.Where("user_id = ?", userID).Order("created_at DESC").Find(&out).Error; err != nil {
		r.log.WithError(err).WithField("userId", userID).Error("order list by user failed")
		return nil, err
	}
	return out, nil
}

func (r *orderRepo) UpdateStatus(id uint64, status domain.OrderStatus) (*domain.Order, error) {
	result := r.db.Model(&domain.Order{}).Where("id = ?", id).Update("status", status)
	if result.Error != nil {
		r.log.WithError(result.Error).WithField("orderId", id).Error("order status update failed")
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, domain.ErrOrderNotFound
	}
	return r.FindByID(id)
}

func (r *orderRepo) Delete(id uint64) error {
	result := r.db.Delete(&domain.Order{}, id)
	if result.Error != nil {
		r.log.WithError(result.Error).WithField("orderId", id).Error("order delete failed")
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrOrderNotFound
	}
	return nil
}
