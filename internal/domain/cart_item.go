package domain

import "time"

// CartItem is a single line of a cart. CartKey scopes the line to one
// session or user so carts never leak across requests; within a key
// there is at most one line per product, enforced by merge-on-add.
type CartItem struct {
	ID        uint64    `json:"id" gorm:"primaryKey;autoIncrement"`
	CartKey   string    `json:"cartKey" gorm:"index;not null"`
	ProductID uint64    `json:"productId" gorm:"index;not null"`
	Quantity  int64     `json:"quantity" gorm:"not null"`
	CreatedAt time.Time `json:"createdAt" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updatedAt" gorm:"autoUpdateTime"`
}
