package models

import (
	"time"

	"github.com/google/uuid"
)

// Role grants access to parts of the back office
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleOperator Role = "operator"
	RoleOwner    Role = "owner"
	RoleViewer   Role = "viewer"
)

// Valid reports whether r is a known role
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleOperator, RoleOwner, RoleViewer:
		return true
	}
	return false
}

// User represents a back office user
type User struct {
	ID           uuid.UUID  `json:"id"`
	Email        string     `json:"email"`
	Name         string     `json:"name"`
	Role         Role       `json:"role"`
	OwnerID      *uuid.UUID `json:"owner_id,omitempty"`
	PasswordHash string     `json:"-"` // Not serialized
	CreatedAt    time.Time  `json:"created_at"`
}
