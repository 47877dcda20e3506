package jsonfile

import (
	"sort"

	"storefront/internal/domain"
	"storefront/internal/repository"

	"github.com/sirupsen/logrus"
)

type orderRepo struct {
	items *Collection[domain.Order]
	log   *logrus.Logger
}

func NewOrderRepository(store *Store, logger *logrus.Logger) repository.OrderRepository {
	return &orderRepo{
		items: NewCollection[domain.Order](store, "orders", domain.ErrOrderNotFound),
		log:   logger,
	}
}

func (r *orderRepo) Save(order *domain.Order) error {
	return r.items.Insert(order)
}

func (r *orderRepo) FindAll() ([]domain.Order, error) {
	orders, err := r.items.All()
	if err != nil {
		return nil, err
	}
	sortByCreatedAtDesc(orders)
	return orders, nil
}

func (r *orderRepo) FindByID(id uint64) (*domain.Order, error) {
	return r.items.Get(id)
}

func (r *orderRepo) FindByUser(userID uint64) ([]domain.Order, error) {
	all, err := r.items.All()
	if err != nil {
		return nil, err
	}
	out := make([]domain.Order, 0, len(all))
	for _, o := range all {
		if o.UserID == userID {
			out = append(out, o)
		}
	}
	sortByCreatedAtDesc(out)
	return out, nil
}

func (r *orderRepo) UpdateStatus(id uint64, status domain.OrderStatus) (*domain.Order, error) {
	return r.items.Patch(id, map[string]any{"status": status})
}

func (r *orderRepo) Delete(id uint64) error {
	return r.items.Delete(id)
}

func sortByCreatedAtDesc(orders []domain.Order) {
	sort.SliceStable(orders, func(i, j int) bool {
		return orders[i].CreatedAt.After(orders[j].CreatedAt)
	})
}
