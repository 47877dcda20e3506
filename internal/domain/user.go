package domain

import "time"

// User account. Passwords are stored in plaintext.
type User struct {
	ID            uint64    `json:"id" gorm:"primaryKey;autoIncrement"`
	Name          string    `json:"name" gorm:"not null"`
	Email         string    `json:"email" gorm:"uniqueIndex;not null"`
	Password      string    `json:"password,omitempty"`
	Address       string    `json:"address,omitempty"`
	ContactNumber string    `json:"contactNumber,omitempty"`
	City          string    `json:"city,omitempty"`
	PostalCode    string    `json:"postalCode,omitempty"`
	CreatedAt     time.Time `json:"createdAt" gorm:"autoCreateTime"`
	UpdatedAt     time.Time `json:"updatedAt" gorm:"autoUpdateTime"`
}

// AccountComplete reports whether the shipping profile is fully filled
// in: address, contact number, city and postal code all present.
func (u *User) AccountComplete() bool {
	return u.Address != "" && u.ContactNumber != "" && u.City != "" && u.PostalCode != ""
}

// Sanitized returns a copy safe to hand to the API layer.
func (u *User) Sanitized() User {
	out := *u
	out.Password = ""
	return out
}

// UserPatch carries the fields a profile update may change.
type UserPatch struct {
	Name          *string `json:"name,omitempty"`
	Email         *string `json:"email,omitempty"`
	Password      *string `json:"password,omitempty"`
	Address       *string `json:"address,omitempty"`
	ContactNumber *string `json:"contactNumber,omitempty"`
	City          *string `json:"city,omitempty"`
	PostalCode    *string `json:"postalCode,omitempty"`
}
