package domain

import "time"

type OrderStatus string

const (
	StatusPending    OrderStatus = "pending"
	StatusProcessing OrderStatus = "processing"
	StatusCompleted  OrderStatus = "completed"
	StatusCancelled  OrderStatus = "cancelled"
)

// statusTransitions is the closed set of legal moves. Completed and
// cancelled are terminal.
var statusTransitions = map[OrderStatus][]OrderStatus{
	StatusPending:    {StatusProcessing, StatusCancelled},
	StatusProcessing: {StatusCompleted, StatusCancelled},
}

func (s OrderStatus) IsValid() bool {
	switch s {
	case StatusPending, StatusProcessing, StatusCompleted, StatusCancelled:
		return true
	default:
		return false
	}
}

// CanTransitionTo reports whether moving from s to next is legal.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	for _, allowed := range statusTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// OrderItem is a line-item snapshot. Name and price are copied from the
// catalog at order time and never re-joined afterwards.
type OrderItem struct {
	ProductID   uint64  `json:"productId"`
	ProductName string  `json:"productName"`
	Quantity    int64   `json:"quantity"`
	Price       float64 `json:"price"`
}

func (i OrderItem) Subtotal() float64 {
	return i.Price * float64(i.Quantity)
}

type Order struct {
	ID           uint64      `json:"id" gorm:"primaryKey;autoIncrement"`
	UserID       uint64      `json:"userId,omitempty" gorm:"index"`
	Items        []OrderItem `json:"items" gorm:"serializer:json"`
	TotalAmount  float64     `json:"totalAmount" gorm:"not null"`
	Status       OrderStatus `json:"status" gorm:"default:'pending'"`
	DeliveryDate time.Time   `json:"deliveryDate"`
	CreatedAt    time.Time   `json:"createdAt" gorm:"autoCreateTime"`
}
