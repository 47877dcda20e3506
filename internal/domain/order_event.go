package domain

import "time"

// OrderCreatedEvent is the payload published on the events exchange
// after a successful order placement.
type OrderCreatedEvent struct {
	OrderID     uint64    `json:"orderId"`
	UserID      uint64    `json:"userId,omitempty"`
	TotalAmount float64   `json:"totalAmount"`
	ItemCount   int       `json:"itemCount"`
	CreatedAt   time.Time `json:"createdAt"`
}
