package domain

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID           uuid.UUID `json:"id" db:"id"`
	Email        string    `json:"email" db:"email"`
	PasswordHash string    `json:"-" db:"password_hash"`
	FullName     string    `json:"full_name" db:"full_name"`
	Phone        *string   `json:"phone,omitempty" db:"phone"`
	Role         string    `json:"role" db:"role"`
	IsActive     bool      `json:"is_active" db:"is_active"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}

type UserRole string

const (
	RoleAgent   UserRole = "agent"
	RoleManager UserRole = "manager"
	RoleAdmin   UserRole = "admin"
)

var roleRank = map[string]int{
	string(RoleAgent):   1,
	string(RoleManager): 2,
	string(RoleAdmin):   3,
}

// HasRole reports whether the user's role meets or exceeds the required role.
func (u *User) HasRole(required string) bool {
	return roleRank[u.Role] >= roleRank[required]
}

type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type TokenPair struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int64  `json:"expires_in"`
}
