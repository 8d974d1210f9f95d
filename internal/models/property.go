package models

import (
	"time"

	"github.com/google/uuid"
)

// PropertyStatus is the occupancy state of a property
type PropertyStatus string

const (
	PropertyAvailable   PropertyStatus = "available"
	PropertyRented      PropertyStatus = "rented"
	PropertyMaintenance PropertyStatus = "maintenance"
)

// Property represents a rentable unit
type Property struct {
	ID      uuid.UUID      `json:"id"`
	Address string         `json:"address"`
	Kind    string         `json:"kind"`
	OwnerID uuid.UUID      `json:"owner_id"`
	Status  PropertyStatus `json:"status"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
