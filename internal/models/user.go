package models

import "time"

type User struct {
	ID           int64     `json:"id"`
	Email        string    `json:"email"`
	FirstName    string    `json:"firstName"`
	LastName     string    `json:"lastName"`
	PasswordHash string    `json:"-"`
	IsAdmin      bool      `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`

	// refresh-token storage
	RefreshToken     *string    `json:"-"`
	RefreshExpiresAt *time.Time `json:"-"`
	RefreshRevoked   bool       `json:"-"`
}

// UserInput is a partially-specified inbound user payload; absent fields
// keep their prior values on update.
type UserInput struct {
	Email     *string
	FirstName *string
	LastName  *string
	Password  *string
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}
