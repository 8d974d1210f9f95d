package models

import (
	"time"

	"github.com/google/uuid"
)

// AlertKind categorizes a generated alert
type AlertKind string

const (
	AlertLeaseExpiry       AlertKind = "lease_expiry"
	AlertRenewalSuggested  AlertKind = "renewal_suggested"
	AlertRentDue           AlertKind = "rent_due"
	AlertPaymentOverdue    AlertKind = "payment_overdue"
	AlertScheduledIncrease AlertKind = "scheduled_increase"
)

// Alert is a system-generated notice tied to a lease
type Alert struct {
	ID          uuid.UUID `json:"id"`
	LeaseID     uuid.UUID `json:"lease_id"`
	Kind        AlertKind `json:"kind"`
	Message     string    `json:"message"`
	DedupeKey   string    `json:"-"`
	Read        bool      `json:"read"`
	Emailed     bool      `json:"emailed"`
	GeneratedAt time.Time `json:"generated_at"`
}
