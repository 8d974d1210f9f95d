package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PaymentMethod is how the tenant paid
type PaymentMethod string

const (
	MethodCash     PaymentMethod = "cash"
	MethodTransfer PaymentMethod = "transfer"
	MethodOther    PaymentMethod = "other"
)

// Payment represents rent paid for one billing period of a lease.
// Period is always the first day of the obligated month.
type Payment struct {
	ID        uuid.UUID       `json:"id"`
	LeaseID   uuid.UUID       `json:"lease_id"`
	Period    time.Time       `json:"period"`
	Amount    decimal.Decimal `json:"amount"`
	PaidOn    time.Time       `json:"paid_on"`
	Method    PaymentMethod   `json:"method"`
	LateFee   decimal.Decimal `json:"late_fee"`
	CreatedAt time.Time       `json:"created_at"`
}
