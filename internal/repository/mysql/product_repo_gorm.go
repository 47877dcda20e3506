package mysql

import (
	"errors"

	"storefront/internal/domain"
	"storefront/internal/repository"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type productRepo struct {
	db  *gorm.DB
	log *logrus.Logger
}

func NewProductRepository(db *gorm.DB, logger *logrus.Logger) repository.ProductRepository {
	return &productRepo{db: db, log: logger}
}

func (r *productRepo) FindAll() ([]domain.Product, error) {
	var out []domain.Product
	if err := r.db.Find(&out).Error; err != nil {
		r.log.WithError(err).Error("product list failed")
		return nil, err
	}
	return out, nil
}

func (r *productRepo) FindByID(id uint64) (*domain.Product, error) {
	var p domain.Product
	if err := r.db.First(&p, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrProductNotFound
		}
		r.log.WithError(err).WithField("productId", id).Error("product lookup failed")
		return nil, err
	}
	return &p, nil
}

func (r *productRepo) Save(product *domain.Product) error {
	if err := r.db.Create(product).Error; err != nil {
		r.log.WithError(err).Error("product save failed")
		return err
	}
	return nil
}

func (r *productRepo) Update(id uint64, patch domain.ProductPatch) (*domain.Product, error) {
	p, err := r.FindByID(id)
	if err != nil {
		return nil, err
	}
	if patch.Name != nil {
		p.Name = *patch.Name
	}
	if patch.Description != nil {
		p.Description = *patch.Description
	}
	if patch.Price != nil {
		p.Price = *patch.Price
	}
	if patch.Stock != nil {
		p.Stock = *patch.Stock
	}
	if patch.ImageURL != nil {
		p.ImageURL = *patch.ImageURL
	}
	if err := r.db.Save(p).Error; err != nil {
		r.log.WithError(err).WithField("productId", id).Error("product update failed")
		return nil, err
	}
	return p, nil
}

func (r *productRepo) Delete(id uint64) error {
	result := r.db.Delete(&domain.Product{}, id)
	if result.Error != nil {
		r.log.WithError(result.Error).WithField("productId", id).Error("product delete failed")
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrProductNotFound
	}
	return nil
}

// DecrementStock is a single conditional UPDATE so two concurrent
// orders can never both take the last unit.
func (r *productRepo) DecrementStock(id uint64, qty int64) error {
	result := r.db.Model(&domain.Product{}).
		Where("id = ? AND stock >= ?", id, qty).
		UpdateColumn("stock", gorm.Expr("stock - ?", qty))
	if result.Error != nil {
		r.log.WithError(result.Error).WithField("productId", id).Error("stock decrement failed")
		return result.Error
	}
	if result.RowsAffected == 0 {
		p, err := r.FindByID(id)
		if err != nil {
			return err
		}
		return &domain.InsufficientStockError{
			ProductID:   id,
			ProductName: p.Name,
			Available:   p.Stock,
			Requested:   qty,
		}
	}
	return nil
}

func (r *productRepo) RestoreStock(id uint64, qty int64) error {
	result := r.db.Model(&domain.Product{}).
		Where("id = ?", id).
		UpdateColumn("stock", gorm.Expr("stock + ?", qty))
	if result.Error != nil {
		r.log.WithError(result.Error).WithField("productId", id).Error("stock restore failed")
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrProductNotFound
	}
	return nil
}
