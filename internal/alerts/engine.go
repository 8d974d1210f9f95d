// Package alerts evaluates the daily alert rules against every active lease and persists
// the resulting alerts at most once per dedupe window.
package alerts

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/Dan9191/rental-service/internal/models"
)

// Store is the datastore the engine reads leases and payments from and writes alerts to
type Store interface {
	ListActiveLeases(ctx context.Context) ([]models.Lease, error)
	PaidPeriods(ctx context.Context, leaseID uuid.UUID, periods []time.Time) (map[string]bool, error)
	AlertExists(ctx context.Context, leaseID uuid.UUID, kind models.AlertKind, since time.Time) (bool, error)
	// InsertAlert stores the alert unless one with the same lease, kind and dedupe key
	// exists, and reports whether a row was written.
	InsertAlert(ctx context.Context, alert *models.Alert) (bool, error)
}

// Result summarizes one engine run
type Result struct {
	Leases   int `json:"leases"`
	Inserted int `json:"inserted"`
	Failed   int `json:"failed"`
}

// Engine runs the alert rules
type Engine struct {
	store Store
	log   *logrus.Logger
	now   func() time.Time
}

// NewEngine initializes an engine. now supplies the evaluation instant and its location.
func NewEngine(store Store, log *logrus.Logger, now func() time.Time) *Engine {
	if now == nil {
		now = time.Now
	}
	return &Engine{store: store, log: log, now: now}
}

// Run evaluates every active lease once. A failure on one lease is logged and does not stop
// the others; only failing to list leases aborts the run.
func (e *Engine) Run(ctx context.Context) (Result, error) {
	var res Result
	now := e.now()

	leases, err := e.store.ListActiveLeases(ctx)
	if err != nil {
		return res, fmt.Errorf("failed to list active leases: %w", err)
	}

	for _, lease := range leases {
		if !lease.IsActive() {
			continue
		}
		if err := ctx.Err(); err != nil {
			return res, err
		}
		res.Leases++
		inserted, failed := e.evaluate(ctx, lease, now)
		res.Inserted += inserted
		res.Failed += failed
	}

	e.log.WithFields(logrus.Fields{
		"leases":   res.Leases,
		"inserted": res.Inserted,
		"failed":   res.Failed,
	}).Info("Alert run finished")
	return res, nil
}

func (e *Engine) evaluate(ctx context.Context, lease models.Lease, now time.Time) (inserted, failed int) {
	log := e.log.WithField("lease_id", lease.ID)

	var candidates []Candidate
	candidates = append(candidates, ExpiryRule(lease, now)...)
	candidates = append(candidates, RentDueRule(lease, now)...)
	if now.Day() > lease.DueDay {
		periods := OverduePeriods(now)
		paid, err := e.store.PaidPeriods(ctx, lease.ID, periods[:])
		if err != nil {
			log.WithField("kind", models.AlertPaymentOverdue).Errorf("Failed to read payments: %v", err)
			failed++
		} else {
			candidates = append(candidates, OverdueRule(lease, now, paid)...)
		}
	}
	candidates = append(candidates, IncreaseRule(lease, now)...)

	for _, c := range candidates {
		ok, err := e.raise(ctx, lease.ID, c)
		if err != nil {
			log.WithField("kind", c.Kind).Errorf("Failed to raise alert: %v", err)
			failed++
			continue
		}
		if ok {
			inserted++
			log.WithField("kind", c.Kind).Debugf("Alert raised: %s", c.Message)
		}
	}
	return inserted, failed
}

func (e *Engine) raise(ctx context.Context, leaseID uuid.UUID, c Candidate) (bool, error) {
	if !c.Since.IsZero() {
		exists, err := e.store.AlertExists(ctx, leaseID, c.Kind, c.Since)
		if err != nil {
			return false, err
		}
		if exists {
			return false, nil
		}
	}
	return e.store.InsertAlert(ctx, &models.Alert{
		LeaseID:   leaseID,
		Kind:      c.Kind,
		Message:   c.Message,
		DedupeKey: c.DedupeKey,
	})
}

