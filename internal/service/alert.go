package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/Dan9191/rental-service/internal/alerts"
	"github.com/Dan9191/rental-service/internal/models"
)

// RunAlerts evaluates the alert rules for every active lease, then emails what is pending.
// Email failures are logged and do not fail the run.
func (s *Service) RunAlerts(ctx context.Context) (alerts.Result, error) {
	res, err := s.engine.Run(ctx)
	if err != nil {
		return res, err
	}

	if _, err := s.DispatchAlertEmails(ctx); err != nil {
		s.log.WithError(err).Error("Failed to email alerts")
	}
	return res, nil
}

// DispatchAlertEmails sends every alert not yet emailed as one digest and flags them sent
func (s *Service) DispatchAlertEmails(ctx context.Context) (int, error) {
	if s.notifier == nil {
		return 0, nil
	}

	pending, err := s.repo.ListUnemailedAlerts(ctx)
	if err != nil {
		return 0, err
	}
	if len(pending) == 0 {
		return 0, nil
	}

	if err := s.notifier.SendAlertDigest(pending); err != nil {
		return 0, err
	}

	ids := make([]uuid.UUID, len(pending))
	for i, a := range pending {
		ids[i] = a.ID
	}
	if err := s.repo.MarkAlertsEmailed(ctx, ids); err != nil {
		return 0, err
	}
	return len(pending), nil
}

// ListAlerts returns the newest alerts, optionally only unread ones
func (s *Service) ListAlerts(ctx context.Context, unreadOnly bool) ([]models.Alert, error) {
	return s.repo.ListAlerts(ctx, unreadOnly, alertListLimit)
}

// MarkAllRead flags every alert as read
func (s *Service) MarkAllRead(ctx context.Context) (int64, error) {
	n, err := s.repo.MarkAllAlertsRead(ctx)
	if err != nil {
		return 0, err
	}
	s.log.Infof("Marked %d alerts read", n)
	return n, nil
}
