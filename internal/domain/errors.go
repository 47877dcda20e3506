package domain

import (
	"errors"
	"fmt"
)

var (
	ErrProductNotFound  = errors.New("product not found")
	ErrCartItemNotFound = errors.New("cart item not found")
	ErrOrderNotFound    = errors.New("order not found")
	ErrUserNotFound     = errors.New("user not found")
	ErrEmailTaken       = errors.New("email already exists")

	ErrUnknownStatus      = errors.New("unknown order status")
	ErrInvalidCredentials = errors.New("invalid email or password")
)

// InvalidOrderError covers order requests rejected before any write
// happens (empty item list, non-positive total).
type InvalidOrderError struct {
	Reason string
}

func (e *InvalidOrderError) Error() string {
	return "invalid order: " + e.Reason
}

// InsufficientStockError carries enough detail to render a user-facing
// message: which product, how much is left, how much was asked for.
type InsufficientStockError struct {
	ProductID   uint64
	ProductName string
	Available   int64
	Requested   int64
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for product: %s. Available: %d, Requested: %d",
		e.ProductName, e.Available, e.Requested)
}

// InvalidTransitionError is returned when a status update would violate
// the order state machine.
type InvalidTransitionError struct {
	From OrderStatus
	To   OrderStatus
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("illegal status transition: %s -> %s", e.From, e.To)
}
