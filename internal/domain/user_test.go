package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUser_AccountComplete(t *testing.T) {
	u := User{
		Address:       "1 Main St",
		ContactNumber: "555-0100",
		City:          "Lisbon",
		PostalCode:    "1000-001",
	}
	assert.True(t, u.AccountComplete())

	for _, clear := range []func(*User){
		func(u *User) { u.Address = "" },
		func(u *User) { u.ContactNumber = "" },
		func(u *User) { u.City = "" },
		func(u *User) { u.PostalCode = "" },
	} {
		copy := u
		clear(&copy)
		assert.False(t, copy.AccountComplete())
	}
}

func TestUser_Sanitized(t *testing.T) {
	u := User{ID: 1, Email: "a@x.com", Password: "secret"}
	out := u.Sanitized()
	assert.Empty(t, out.Password)
	assert.Equal(t, "secret", u.Password)
	assert.Equal(t, u.Email, out.Email)
}
