package models

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// ClerkStatus represents the account status of a front-desk clerk
type ClerkStatus string

const (
	ClerkStatusActive   ClerkStatus = "active"
	ClerkStatusDisabled ClerkStatus = "disabled"
)

// Clerk represents a front-desk operator account
type Clerk struct {
	ID           uuid.UUID   `json:"id" db:"id"`
	Username     string      `json:"username" db:"username"`
	PasswordHash string      `json:"-" db:"password_hash"`
	FullName     string      `json:"full_name" db:"full_name"`
	Role         string      `json:"role" db:"role"`
	Status       ClerkStatus `json:"status" db:"status"`
	CreatedAt    time.Time   `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time   `json:"updated_at" db:"updated_at"`
}

// IsActive checks whether the clerk may sign in
func (c *Clerk) IsActive() bool {
	return c.Status == ClerkStatusActive
}

// LoginRequest represents a front-desk sign-in request
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Validate validates the login request
func (r *LoginRequest) Validate() error {
	if r.Username == "" {
		return errors.New("username is required")
	}
	if len(r.Password) < 8 {
		return errors.New("password must be at least 8 characters")
	}
	return nil
}

// RefreshTokenRequest represents a token refresh request
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// LoginResponse carries the issued token pair
type LoginResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	Username     string `json:"username"`
	Role         string `json:"role"`
}
