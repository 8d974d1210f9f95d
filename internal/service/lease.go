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
	"github.com/Dan9191/rental-service/internal/middleware"
	"github.com/Dan9191/rental-service/internal/models"
	"github.com/Dan9191/rental-service/internal/repository"
)

// IncreaseStatus is where a lease stands in its increase schedule
type IncreaseStatus struct {
	LastAnniversary *time.Time      `json:"last_anniversary,omitempty"`
	NextAnniversary time.Time       `json:"next_anniversary"`
	InWindow        bool            `json:"in_window"`
	ProjectedAmount decimal.Decimal `json:"projected_amount"`
}

// LeaseView is a lease with its derived increase schedule
type LeaseView struct {
	Lease    models.Lease    `json:"lease"`
	Increase *IncreaseStatus `json:"increase_status,omitempty"`
}

// CreateLease validates and stores a new active lease on an available property owned by
// the lease's owner. The property becomes rented.
func (s *Service) CreateLease(ctx context.Context, lease *models.Lease) error {
	if err := validateLease(lease); err != nil {
		return err
	}
	property, err := s.repo.GetProperty(ctx, lease.PropertyID)
	if errors.Is(err, repository.ErrNotFound) {
		return invalid("property %s does not exist", lease.PropertyID)
	}
	if err != nil {
		return err
	}
	if property.OwnerID != lease.OwnerID {
		return invalid("property %s does not belong to owner %s", property.ID, lease.OwnerID)
	}
	if property.Status != models.PropertyAvailable {
		return fmt.Errorf("%w: property is %s", ErrConflict, property.Status)
	}

	loc := s.config.Location
	lease.StartDate = billing.Date(lease.StartDate, loc)
	lease.EndDate = billing.Date(lease.EndDate, loc)
	lease.Status = models.LeaseActive

	err = s.repo.CreateLease(ctx, lease)
	if errors.Is(err, repository.ErrNotFound) {
		return fmt.Errorf("%w: property is no longer available", ErrConflict)
	}
	if err != nil {
		return err
	}
	s.log.WithFields(logrus.Fields{
		"lease_id":    lease.ID,
		"property_id": lease.PropertyID,
	}).Info("Lease created")
	return nil
}

func validateLease(l *models.Lease) error {
	if l.PropertyID == uuid.Nil || l.TenantID == uuid.Nil || l.OwnerID == uuid.Nil {
		return invalid("property_id, tenant_id and owner_id are required")
	}
	if l.StartDate.IsZero() || l.EndDate.IsZero() {
		return invalid("start_date and end_date are required")
	}
	if !l.EndDate.After(l.StartDate) {
		return invalid("end_date must be after start_date")
	}
	if !l.MonthlyAmount.IsPositive() {
		return invalid("monthly_amount must be positive")
	}
	if l.DueDay < 1 || l.DueDay > 28 {
		return invalid("due_day must be between 1 and 28")
	}
	if l.Deposit != nil && l.Deposit.IsNegative() {
		return invalid("deposit cannot be negative")
	}
	if r := l.Increase; r != nil {
		if r.EveryMonths <= 0 {
			return invalid("increase every_months must be positive")
		}
		if r.Type != models.IncreasePercentage && r.Type != models.IncreaseFixedAmount {
			return invalid("unknown increase type %q", r.Type)
		}
		if !r.Value.IsPositive() {
			return invalid("increase value must be positive")
		}
	}
	return nil
}

// GetLease returns a lease and its increase schedule. Owners only see their own leases.
func (s *Service) GetLease(ctx context.Context, actor middleware.Principal, id uuid.UUID) (*LeaseView, error) {
	lease, err := s.repo.GetLease(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := canSeeOwner(actor, lease.OwnerID); err != nil {
		return nil, err
	}

	view := &LeaseView{Lease: *lease}
	if lease.Increase != nil && lease.Increase.EveryMonths > 0 {
		view.Increase = increaseStatus(*lease, s.now())
	}
	return view, nil
}

func increaseStatus(lease models.Lease, now time.Time) *IncreaseStatus {
	loc := now.Location()
	today := billing.Date(now, loc)
	start := billing.Date(lease.StartDate, loc)
	n := lease.Increase.EveryMonths

	st := &IncreaseStatus{
		NextAnniversary: billing.AddMonths(start, n),
		ProjectedAmount: billing.ApplyIncrease(lease.MonthlyAmount, lease.Increase),
	}
	if latest, _, ok := billing.Anniversaries(start, n, today); ok {
		st.LastAnniversary = &latest
		st.NextAnniversary = billing.AddMonths(latest, n)
		st.InWindow = billing.InIncreaseWindow(latest, today)
	}
	return st
}

// ChangeLeaseStatus ends or terminates an active lease and frees its property
func (s *Service) ChangeLeaseStatus(ctx context.Context, id uuid.UUID, to models.LeaseStatus) error {
	if to != models.LeaseEnded && to != models.LeaseTerminated {
		return invalid("status must be %s or %s", models.LeaseEnded, models.LeaseTerminated)
	}

	err := s.repo.UpdateLeaseStatus(ctx, id, models.LeaseActive, to)
	if errors.Is(err, repository.ErrNotFound) {
		lease, getErr := s.repo.GetLease(ctx, id)
		if getErr != nil {
			return getErr
		}
		return fmt.Errorf("%w: lease is %s", ErrConflict, lease.Status)
	}
	if err != nil {
		return err
	}

	s.log.WithField("lease_id", id).Infof("Lease %s", to)
	return nil
}

// canSeeOwner rejects owner callers asking for another owner's data
func canSeeOwner(actor middleware.Principal, ownerID uuid.UUID) error {
	if actor.Role != models.RoleOwner {
		return nil
	}
	if actor.OwnerID == nil || *actor.OwnerID != ownerID {
		return ErrForbidden
	}
	return nil
}
