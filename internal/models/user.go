package models

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Role represents an identity's role within the system
type Role string

const (
	RoleTraveller Role = "traveller"
	RoleStaff     Role = "staff"
)

// IsValid reports whether the role is one of the supported roles
func (r Role) IsValid() bool {
	return r == RoleTraveller || r == RoleStaff
}

// User represents an authenticated principal (credential half of an identity)
type User struct {
	ID           uuid.UUID `json:"id" db:"id"`
	Email        string    `json:"email" db:"email"`
	PasswordHash string    `json:"-" db:"password_hash"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}

// Profile holds role/contact metadata attached to an identity, stored
// separately from credentials
type Profile struct {
	UserID    uuid.UUID `json:"user_id" db:"user_id"`
	FullName  string    `json:"full_name" db:"full_name"`
	Phone     string    `json:"phone" db:"phone"`
	Role      Role      `json:"role" db:"role"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// SignupRequest represents the request to create a new account
type SignupRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	FullName string `json:"full_name" binding:"required"`
	Phone    string `json:"phone" binding:"required"`
	Role     string `json:"role" binding:"required"`
}

// Validate validates the SignupRequest beyond field presence
func (req *SignupRequest) Validate() error {
	if !Role(req.Role).IsValid() {
		return errors.New("invalid role: must be traveller or staff")
	}
	return nil
}

// LoginRequest represents the request to authenticate
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// RefreshRequest represents the request to rotate a session
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// Session holds the tokens issued for an authenticated identity
type Session struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int    `json:"expires_in_seconds"`
}

// UserInfo is the identity summary returned by auth endpoints
type UserInfo struct {
	ID       uuid.UUID `json:"id"`
	Email    string    `json:"email"`
	FullName string    `json:"full_name"`
	Phone    string    `json:"phone"`
	Role     Role      `json:"role"`
}

// AuthResponse is the response body for signup and login
type AuthResponse struct {
	User    UserInfo `json:"user"`
	Session Session  `json:"session"`
}
