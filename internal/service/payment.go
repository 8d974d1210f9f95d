package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/Dan9191/rental-service/internal/billing"
	"github.com/Dan9191/rental-service/internal/models"
	"github.com/Dan9191/rental-service/internal/repository"
)

// RecordPaymentInput is a payment as entered by an operator
type RecordPaymentInput struct {
	LeaseID uuid.UUID
	Period  time.Time
	Amount  decimal.Decimal
	PaidOn  time.Time
	Method  models.PaymentMethod
	LateFee decimal.Decimal
}

// RecordPayment stores a payment against the billing period containing in.Period
func (s *Service) RecordPayment(ctx context.Context, in RecordPaymentInput) (*models.Payment, error) {
	if in.LeaseID == uuid.Nil {
		return nil, invalid("lease_id is required")
	}
	if in.Period.IsZero() || in.PaidOn.IsZero() {
		return nil, invalid("period and paid_on are required")
	}
	if !in.Amount.IsPositive() {
		return nil, invalid("amount must be positive")
	}
	if in.LateFee.IsNegative() {
		return nil, invalid("late_fee cannot be negative")
	}
	switch in.Method {
	case models.MethodCash, models.MethodTransfer, models.MethodOther:
	default:
		return nil, invalid("unknown payment method %q", in.Method)
	}

	if _, err := s.repo.GetLease(ctx, in.LeaseID); err != nil {
		return nil, err
	}

	loc := s.config.Location
	p := &models.Payment{
		LeaseID: in.LeaseID,
		Period:  billing.StartOfMonth(billing.Date(in.Period, loc)),
		Amount:  in.Amount,
		PaidOn:  billing.Date(in.PaidOn, loc),
		Method:  in.Method,
		LateFee: in.LateFee,
	}
	if err := s.repo.CreatePayment(ctx, p); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, fmt.Errorf("%w: %v", ErrConflict, err)
		}
		return nil, err
	}

	s.log.WithFields(logrus.Fields{
		"lease_id": p.LeaseID,
		"period":   billing.PeriodKey(p.Period),
	}).Info("Payment recorded")
	return p, nil
}
