package services

import (
	"context"
	"time"

	"storefront/internal/domain"
	"storefront/internal/infra/rabbitmq"
	"storefront/internal/repository"

	"github.com/sirupsen/logrus"
)

// OrderLine is one requested line of an order: which product, how many.
type OrderLine struct {
	ProductID uint64
	Quantity  int64
}

const deliveryLeadTime = 7 * 24 * time.Hour

type OrderService struct {
	repo      repository.OrderRepository
	catalog   Catalog
	cartRepo  repository.CartRepository
	publisher rabbitmq.PublisherInterface
	log       *logrus.Logger
}

func NewOrderService(
	repo repository.OrderRepository,
	catalog Catalog,
	cartRepo repository.CartRepository,
	publisher rabbitmq.PublisherInterface,
	logger *logrus.Logger,
) *OrderService {
	return &OrderService{
		repo:      repo,
		catalog:   catalog,
		cartRepo:  cartRepo,
		publisher: publisher,
		log:       logger,
	}
}

// PlaceOrder validates the requested lines against the catalog,
// snapshots name and price per line, persists the order, takes the
// stock and removes the ordered lines from the caller's cart.
//
// The order insert is the commit point. Stock is taken afterwards with
// a conditional decrement per line; when one line is rejected the
// already-taken lines are restored and the order is deleted, so the
// caller never observes a half-placed order.
func (s *OrderService) PlaceOrder(ctx context.Context, cartKey string, userID uint64, lines []OrderLine) (*domain.Order, error) {
	if len(lines) == 0 {
		return nil, &domain.InvalidOrderError{Reason: "order must contain at least one item"}
	}

	items := make([]domain.OrderItem, 0, len(lines))
	var totalAmount float64

	for _, line := range lines {
		if line.Quantity < 1 {
			return nil, &domain.InvalidOrderError{Reason: "quantity must be positive"}
		}
		product, err := s.catalog.FindByID(ctx, line.ProductID)
		if err != nil {
			return nil, err
		}
		// Each line is checked against the stored stock on its own;
		// duplicate lines for the same product are not compounded
		// here. The conditional decrement below is what actually
		// prevents overselling.
		if product.Stock < line.Quantity {
			return nil, insufficientStock(product, line.Quantity)
		}
		totalAmount += product.Price * float64(line.Quantity)
		items = append(items, domain.OrderItem{
			ProductID:   product.ID,
			ProductName: product.Name,
			Quantity:    line.Quantity,
			Price:       product.Price,
		})
	}

	if totalAmount <= 0 {
		return nil, &domain.InvalidOrderError{Reason: "total amount must be greater than zero"}
	}

	now := time.Now()
	order := &domain.Order{
		UserID:       userID,
		Items:        items,
		TotalAmount:  totalAmount,
		Status:       domain.StatusPending,
		DeliveryDate: now.Add(deliveryLeadTime),
		CreatedAt:    now,
	}
	if err := s.repo.Save(order); err != nil {
		return nil, err
	}

	for i, line := range lines {
		if err := s.catalog.DecrementStock(ctx, line.ProductID, line.Quantity); err != nil {
			s.log.WithError(err).WithFields(logrus.Fields{
				"orderId":   order.ID,
				"productId": line.ProductID,
			}).Warn("stock decrement rejected, rolling back order")
			s.compensate(ctx, order, lines[:i])
			return nil, err
		}
	}

	s.removeOrderedCartLines(cartKey, lines)

	go s.publishOrderCreated(context.Background(), order)

	s.log.WithFields(logrus.Fields{
		"orderId":     order.ID,
		"userId":      userID,
		"totalAmount": totalAmount,
	}).Info("order placed")
	return order, nil
}

// compensate restores the stock of the lines that were already
// decremented and removes the persisted order. Failures here leave the
// store inconsistent and are logged as a partial commit so they can be
// repaired by hand.
func (s *OrderService) compensate(ctx context.Context, order *domain.Order, decremented []OrderLine) {
	for _, line := range decremented {
		if err := s.catalog.RestoreStock(ctx, line.ProductID, line.Quantity); err != nil {
			s.log.WithError(err).WithFields(logrus.Fields{
				"orderId":   order.ID,
				"productId": line.ProductID,
				"quantity":  line.Quantity,
			}).Error("partial commit: stock restore failed, manual adjustment required")
		}
	}
	if err := s.repo.Delete(order.ID); err != nil {
		s.log.WithError(err).WithField("orderId", order.ID).
			Error("partial commit: order removal failed after stock rejection")
	}
}

// removeOrderedCartLines drops exactly the ordered lines from the
// caller's cart. Lines already gone are a no-op, and other lines in
// the cart stay untouched. Cleanup failures never fail the order.
func (s *OrderService) removeOrderedCartLines(cartKey string, lines []OrderLine) {
	if cartKey == "" {
		return
	}
	for _, line := range lines {
		if err := s.cartRepo.DeleteByProduct(cartKey, line.ProductID); err != nil {
			s.log.WithError(err).WithFields(logrus.Fields{
				"cartKey":   cartKey,
				"productId": line.ProductID,
			}).Warn("cart line cleanup failed")
		}
	}
}

func (s *OrderService) publishOrderCreated(ctx context.Context, order *domain.Order) {
	if s.publisher == nil {
		return
	}
	evt := domain.OrderCreatedEvent{
		OrderID:     order.ID,
		UserID:      order.UserID,
		TotalAmount: order.TotalAmount,
		ItemCount:   len(order.Items),
		CreatedAt:   order.CreatedAt,
	}
	if err := s.publisher.Publish(ctx, "order.created", evt); err != nil {
		s.log.WithError(err).WithField("orderId", order.ID).Error("failed to publish order.created event")
	}
}

func (s *OrderService) ListOrders() ([]domain.Order, error) {
	return s.repo.FindAll()
}

func (s *OrderService) GetOrder(id uint64) (*domain.Order, error) {
	return s.repo.FindByID(id)
}

// SetStatus moves an order through the status state machine. Unknown
// statuses and illegal transitions are rejected.
func (s *OrderService) SetStatus(id uint64, status domain.OrderStatus) (*domain.Order, error) {
	if !status.IsValid() {
		return nil, domain.ErrUnknownStatus
	}
	current, err := s.repo.FindByID(id)
	if err != nil {
		return nil, err
	}
	if !current.Status.CanTransitionTo(status) {
		return nil, &domain.InvalidTransitionError{From: current.Status, To: status}
	}
	return s.repo.UpdateStatus(id, status)
}

func (s *OrderService) ListOrdersForUser(userID uint64) ([]domain.Order, error) {
	return s.repo.FindByUser(userID)
}

// DeleteOrder removes an order without restocking the catalog;
// deletion is not a cancellation.
func (s *OrderService) DeleteOrder(id uint64) error {
	return s.repo.Delete(id)
}
