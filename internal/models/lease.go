package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// LeaseStatus is the lifecycle state of a lease
type LeaseStatus string

const (
	LeaseActive     LeaseStatus = "active"
	LeaseEnded      LeaseStatus = "ended"
	LeaseTerminated LeaseStatus = "terminated"
)

// IncreaseType says how a scheduled increase is applied to the rent
type IncreaseType string

const (
	IncreasePercentage  IncreaseType = "percentage"
	IncreaseFixedAmount IncreaseType = "fixed_amount"
)

// IncreaseRule is the contractual rent increase schedule of a lease
type IncreaseRule struct {
	EveryMonths int             `json:"every_months"`
	Type        IncreaseType    `json:"type"`
	Value       decimal.Decimal `json:"value"`
}

// PropertyRef is the property side of a lease join
type PropertyRef struct {
	ID      uuid.UUID `json:"id"`
	Address string    `json:"address"`
}

// TenantRef is the tenant side of a lease join
type TenantRef struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

// Lease represents a rental contract between a tenant and an owner for one property
type Lease struct {
	ID            uuid.UUID        `json:"id"`
	PropertyID    uuid.UUID        `json:"property_id"`
	TenantID      uuid.UUID        `json:"tenant_id"`
	OwnerID       uuid.UUID        `json:"owner_id"`
	StartDate     time.Time        `json:"start_date"`
	EndDate       time.Time        `json:"end_date"`
	MonthlyAmount decimal.Decimal  `json:"monthly_amount"`
	DueDay        int              `json:"due_day"`
	Deposit       *decimal.Decimal `json:"deposit,omitempty"`
	Increase      *IncreaseRule    `json:"increase,omitempty"`
	Status        LeaseStatus      `json:"status"`
	Property      *PropertyRef     `json:"property,omitempty"`
	Tenant        *TenantRef       `json:"tenant,omitempty"`
	CreatedAt     time.Time        `json:"created_at"`
	UpdatedAt     time.Time        `json:"updated_at"`
}

// IsActive reports whether the lease still generates obligations
func (l *Lease) IsActive() bool {
	return l.Status == LeaseActive
}
