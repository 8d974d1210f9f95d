package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ArrearsRow is the payment status of one lease for one billing period
type ArrearsRow struct {
	LeaseID         uuid.UUID        `json:"lease_id"`
	PropertyAddress string           `json:"property_address"`
	TenantName      string           `json:"tenant_name"`
	AmountDue       decimal.Decimal  `json:"amount_due"`
	DueDay          int              `json:"due_day"`
	Period          string           `json:"period"` // Format: YYYY-MM
	PeriodStart     time.Time        `json:"period_start"`
	Paid            bool             `json:"paid"`
	PaymentID       *uuid.UUID       `json:"payment_id,omitempty"`
	AmountPaid      *decimal.Decimal `json:"amount_paid,omitempty"`
	PaidOn          *time.Time       `json:"paid_on,omitempty"`
}

// ArrearsReport lists the previous and current period of every active lease
type ArrearsReport struct {
	AsOf    time.Time    `json:"as_of"`
	Rows    []ArrearsRow `json:"rows"`
	OnTrack int          `json:"on_track"`
	Owing   int          `json:"owing"`
}

// DelinquencySummary counts leases past due and the rent they owe
type DelinquencySummary struct {
	Leases int             `json:"leases"`
	Amount decimal.Decimal `json:"amount"`
}

// ExpiringLeases counts active leases ending within 7, 30 and 60 days
type ExpiringLeases struct {
	Within7  int `json:"within_7"`
	Within30 int `json:"within_30"`
	Within60 int `json:"within_60"`
}

// Occupancy represents rented properties over the whole portfolio
type Occupancy struct {
	Rented    int `json:"rented"`
	Available int `json:"available"`
	Total     int `json:"total"`
	Percent   int `json:"percent"`
}

// Dashboard represents the portfolio-wide figures of the back office landing page
type Dashboard struct {
	IncomeMonth  decimal.Decimal    `json:"income_month"`
	IncomeToDate decimal.Decimal    `json:"income_to_date"`
	Delinquency  DelinquencySummary `json:"delinquency"`
	Expiring     ExpiringLeases     `json:"expiring"`
	Occupancy    Occupancy          `json:"occupancy"`
	UnreadAlerts int                `json:"unread_alerts"`
}

// StatementLine is one collected payment in an owner statement
type StatementLine struct {
	LeaseID         uuid.UUID       `json:"lease_id"`
	PropertyAddress string          `json:"property_address"`
	TenantName      string          `json:"tenant_name"`
	Period          string          `json:"period"` // Format: YYYY-MM
	Amount          decimal.Decimal `json:"amount"`
	PaidOn          time.Time       `json:"paid_on"`
}

// Statement is the settlement sent to an owner for a date range
type Statement struct {
	OwnerID        uuid.UUID       `json:"owner_id"`
	OwnerName      string          `json:"owner_name"`
	From           time.Time       `json:"from"`
	To             time.Time       `json:"to"`
	Lines          []StatementLine `json:"lines"`
	TotalCollected decimal.Decimal `json:"total_collected"`
	Commission     decimal.Decimal `json:"commission"`
	Expenses       decimal.Decimal `json:"expenses"`
	Net            decimal.Decimal `json:"net"`
	GeneratedAt    time.Time       `json:"generated_at"`
}
