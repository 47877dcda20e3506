package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"storefront/internal/domain"
	"storefront/internal/repository"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/singleflight"
)

// Catalog is the product collaborator contract the cart and order
// services depend on.
type Catalog interface {
	FindByID(ctx context.Context, id uint64) (*domain.Product, error)
	DecrementStock(ctx context.Context, id uint64, qty int64) error
	RestoreStock(ctx context.Context, id uint64, qty int64) error
}

const productCacheTTL = time.Minute

type CatalogService struct {
	repo        repository.ProductRepository
	redisClient *redis.Client
	group       singleflight.Group
	log         *logrus.Logger
}

var _ Catalog = (*CatalogService)(nil)

func NewCatalogService(repo repository.ProductRepository, logger *logrus.Logger) *CatalogService {
	return &CatalogService{repo: repo, log: logger}
}

func (s *CatalogService) SetRedisClient(client *redis.Client) {
	s.redisClient = client
}

func (s *CatalogService) List() ([]domain.Product, error) {
	return s.repo.FindAll()
}

// FindByID reads through the product cache. Concurrent misses for the
// same product collapse into a single repository read.
func (s *CatalogService) FindByID(ctx context.Context, id uint64) (*domain.Product, error) {
	if s.redisClient == nil {
		return s.repo.FindByID(id)
	}

	cacheKey := productCacheKey(id)
	if cached, err := s.redisClient.Get(ctx, cacheKey).Result(); err == nil {
		var p domain.Product
		if err := json.Unmarshal([]byte(cached), &p); err == nil {
			return &p, nil
		}
	}

	v, err, _ := s.group.Do(cacheKey, func() (any, error) {
		p, err := s.repo.FindByID(id)
		if err != nil {
			return nil, err
		}
		if data, err := json.Marshal(p); err == nil {
			s.redisClient.Set(ctx, cacheKey, data, productCacheTTL)
		}
		return p, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*domain.Product), nil
}

func (s *CatalogService) Create(ctx context.Context, product *domain.Product) error {
	if err := s.repo.Save(product); err != nil {
		return err
	}
	s.log.WithField("productId", product.ID).Info("product created")
	return nil
}

func (s *CatalogService) Update(ctx context.Context, id uint64, patch domain.ProductPatch) (*domain.Product, error) {
	p, err := s.repo.Update(id, patch)
	if err != nil {
		return nil, err
	}
	s.invalidate(ctx, id)
	return p, nil
}

func (s *CatalogService) Delete(ctx context.Context, id uint64) error {
	if err := s.repo.Delete(id); err != nil {
		return err
	}
	s.invalidate(ctx, id)
	return nil
}

// SetStock overwrites the stock count. It does not validate the new
// value; callers own that.
func (s *CatalogService) SetStock(ctx context.Context, id uint64, stock int64) (*domain.Product, error) {
	p, err := s.repo.Update(id, domain.ProductPatch{Stock: &stock})
	if err != nil {
		return nil, err
	}
	s.invalidate(ctx, id)
	return p, nil
}

func (s *CatalogService) DecrementStock(ctx context.Context, id uint64, qty int64) error {
	if err := s.repo.DecrementStock(id, qty); err != nil {
		return err
	}
	s.invalidate(ctx, id)
	return nil
}

func (s *CatalogService) RestoreStock(ctx context.Context, id uint64, qty int64) error {
	if err := s.repo.RestoreStock(id, qty); err != nil {
		return err
	}
	s.invalidate(ctx, id)
	return nil
}

func (s *CatalogService) invalidate(ctx context.Context, id uint64) {
	if s.redisClient != nil {
		s.redisClient.Del(ctx, productCacheKey(id))
	}
}

func productCacheKey(id uint64) string {
	return fmt.Sprintf("product:%d", id)
}
