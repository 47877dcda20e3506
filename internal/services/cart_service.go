package services

import (
	"context"
	"errors"

	"storefront/internal/domain"
	"storefront/internal/repository"

	"github.com/sirupsen/logrus"
)

var ErrInvalidQuantity = errors.New("quantity must be positive")

type CartService struct {
	repo    repository.CartRepository
	catalog Catalog
	log     *logrus.Logger
}

func NewCartService(repo repository.CartRepository, catalog Catalog, logger *logrus.Logger) *CartService {
	return &CartService{repo: repo, catalog: catalog, log: logger}
}

// AddOrMerge adds qty of a product to the cart identified by cartKey.
// An existing line for the product absorbs the quantity instead of a
// duplicate line being created; the merged quantity is re-validated
// against the current stock.
func (s *CartService) AddOrMerge(ctx context.Context, cartKey string, productID uint64, qty int64) (*domain.CartItem, error) {
	if qty < 1 {
		return nil, ErrInvalidQuantity
	}

	product, err := s.catalog.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product.Stock < qty {
		return nil, insufficientStock(product, qty)
	}

	existing, err := s.repo.FindByProduct(cartKey, productID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		merged := existing.Quantity + qty
		if product.Stock < merged {
			return nil, insufficientStock(product, merged)
		}
		return s.repo.UpdateQuantity(existing.ID, merged)
	}

	item := &domain.CartItem{
		CartKey:   cartKey,
		ProductID: productID,
		Quantity:  qty,
	}
	if err := s.repo.Save(item); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *CartService) List(cartKey string) ([]domain.CartItem, error) {
	return s.repo.FindByKey(cartKey)
}

// UpdateQuantity overwrites a line's quantity after re-validating it
// against the product's current stock.
func (s *CartService) UpdateQuantity(ctx context.Context, id uint64, qty int64) (*domain.CartItem, error) {
	if qty < 1 {
		return nil, ErrInvalidQuantity
	}
	item, err := s.repo.FindByID(id)
	if err != nil {
		return nil, err
	}
	product, err := s.catalog.FindByID(ctx, item.ProductID)
	if err != nil {
		return nil, err
	}
	if product.Stock < qty {
		return nil, insufficientStock(product, qty)
	}
	return s.repo.UpdateQuantity(id, qty)
}

func (s *CartService) Remove(id uint64) error {
	return s.repo.Delete(id)
}

func (s *CartService) Clear(cartKey string) error {
	return s.repo.Clear(cartKey)
}

func insufficientStock(p *domain.Product, requested int64) error {
	return &domain.InsufficientStockError{
		ProductID:   p.ID,
		ProductName: p.Name,
		Available:   p.Stock,
		Requested:   requested,
	}
}
