package models

import (
	"time"

	"github.com/google/uuid"
)

// MaxGuarantors bounds the guarantor list of a tenant
const MaxGuarantors = 3

// Guarantor backs a tenant's obligations
type Guarantor struct {
	Name     string `json:"name"`
	IDNumber string `json:"id_number,omitempty"`
	Phone    string `json:"phone,omitempty"`
}

// Tenant represents a person renting a property
type Tenant struct {
	ID         uuid.UUID   `json:"id"`
	Name       string      `json:"name"`
	TaxID      *string     `json:"tax_id,omitempty"`
	Email      *string     `json:"email,omitempty"`
	Phone      *string     `json:"phone,omitempty"`
	Guarantors []Guarantor `json:"guarantors"`
	CreatedAt  time.Time   `json:"created_at"`
	UpdatedAt  time.Time   `json:"updated_at"`
}
