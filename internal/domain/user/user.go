package user

import (
	"errors"
	"fmt"
	"time"
)

// Role is the closed set of account roles. Precedence rules (admin overrides
// everything) live in the authz package, not here.
type Role string

const (
	RoleAdmin       Role = "admin"
	RoleCoordinator Role = "coordinator"
	RoleMember      Role = "member"
)

func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleAdmin, RoleCoordinator, RoleMember:
		return Role(s), nil
	}

	return "", fmt.Errorf("unknown role %q", s)
}

func (r Role) Valid() bool {
	_, err := ParseRole(string(r))
	return err == nil
}

type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	Mobile       string    `json:"mobile,omitempty"`
	PasswordHash string    `json:"-"` // never expose hash in JSON
	Role         Role      `json:"role"`
	Approved     bool      `json:"approved"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

var (
	ErrNotFound      = errors.New("user not found")
	ErrUsernameTaken = errors.New("username already in use")
	ErrEmailTaken    = errors.New("email already in use")
)

type RegisterRequest struct {
	Username string `json:"username" binding:"required,min=2,max=60"`
	Email    string `json:"email" binding:"required,email"`
	Mobile   string `json:"mobile" binding:"omitempty,max=20"`
	Password string `json:"password" binding:"required,min=6,max=128"`
}

type LoginRequest struct {
	// Accepts a username or an email address.
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type CreateCoordinatorRequest struct {
	Username string `json:"username" binding:"required,min=2,max=60"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6,max=128"`
}
