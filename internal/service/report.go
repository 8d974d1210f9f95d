package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/Dan9191/rental-service/internal/arrears"
	"github.com/Dan9191/rental-service/internal/billing"
	"github.com/Dan9191/rental-service/internal/middleware"
	"github.com/Dan9191/rental-service/internal/models"
)

// Arrears reports the previous and current period of every active lease as of asOf.
// A zero asOf means now.
func (s *Service) Arrears(ctx context.Context, asOf time.Time) (models.ArrearsReport, error) {
	if asOf.IsZero() {
		asOf = s.now()
	}

	leases, err := s.repo.ListActiveLeases(ctx)
	if err != nil {
		return models.ArrearsReport{}, err
	}
	payments, err := s.repo.ListPaymentsForLeases(ctx, leaseIDs(leases))
	if err != nil {
		return models.ArrearsReport{}, err
	}
	return arrears.Calculate(leases, payments, asOf), nil
}

// Dashboard computes the portfolio figures for the current moment
func (s *Service) Dashboard(ctx context.Context) (models.Dashboard, error) {
	var in arrears.DashboardInput
	var err error

	if in.ActiveLeases, err = s.repo.ListActiveLeases(ctx); err != nil {
		return models.Dashboard{}, err
	}
	if in.Payments, err = s.repo.ListPayments(ctx); err != nil {
		return models.Dashboard{}, err
	}
	active := make(map[uuid.UUID]bool, len(in.ActiveLeases))
	for _, l := range in.ActiveLeases {
		active[l.ID] = true
	}
	for _, p := range in.Payments {
		if active[p.LeaseID] {
			in.LeasePayments = append(in.LeasePayments, p)
		}
	}
	if in.Properties, err = s.repo.ListPropertyStatuses(ctx); err != nil {
		return models.Dashboard{}, err
	}
	if in.UnreadAlerts, err = s.repo.CountUnreadAlerts(ctx); err != nil {
		return models.Dashboard{}, err
	}

	return arrears.BuildDashboard(in, s.now()), nil
}

// Statement settles an owner's collected rent between from and to inclusive.
// Owner callers may only request their own statement.
func (s *Service) Statement(ctx context.Context, actor middleware.Principal, ownerID uuid.UUID, from, to time.Time) (models.Statement, error) {
	if err := canSeeOwner(actor, ownerID); err != nil {
		return models.Statement{}, err
	}
	if from.IsZero() || to.IsZero() {
		return models.Statement{}, invalid("from and to are required")
	}
	loc := s.config.Location
	from, to = billing.Date(from, loc), billing.Date(to, loc)
	if to.Before(from) {
		return models.Statement{}, invalid("to must not be before from")
	}

	owner, err := s.repo.GetOwner(ctx, ownerID)
	if err != nil {
		return models.Statement{}, err
	}
	lines, err := s.repo.ListStatementLines(ctx, ownerID, from, to)
	if err != nil {
		return models.Statement{}, err
	}
	for i := range lines {
		lines[i].PaidOn = billing.Date(lines[i].PaidOn, loc)
	}

	return arrears.BuildStatement(*owner, lines, from, to, s.config.CommissionRate, s.now()), nil
}

func leaseIDs(leases []models.Lease) []uuid.UUID {
	ids := make([]uuid.UUID, len(leases))
	for i, l := range leases {
		ids[i] = l.ID
	}
	return ids
}
