package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/Dan9191/rental-service/internal/models"
)

// AlertExists reports whether an alert of kind was generated for the lease at or after since
func (r *Repository) AlertExists(ctx context.Context, leaseID uuid.UUID, kind models.AlertKind, since time.Time) (bool, error) {
	var exists bool
	query := `
		SELECT EXISTS (
			SELECT 1 FROM rental.alerts
			WHERE lease_id = $1 AND kind = $2 AND generated_at >= $3
		)`
	if err := r.db.QueryRowContext(ctx, query, leaseID, kind, since).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check alert: %w", err)
	}
	return exists, nil
}

// InsertAlert stores an alert unless the same lease, kind and dedupe key is already present.
// The database assigns id and generated_at; read and emailed start false.
func (r *Repository) InsertAlert(ctx context.Context, alert *models.Alert) (bool, error) {
	query := `
		INSERT INTO rental.alerts (lease_id, kind, message, dedupe_key)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (lease_id, kind, dedupe_key) DO NOTHING
		RETURNING id, generated_at`
	err := r.db.QueryRowContext(ctx, query, alert.LeaseID, alert.Kind, alert.Message, alert.DedupeKey).
		Scan(&alert.ID, &alert.GeneratedAt)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to insert alert: %w", err)
	}
	return true, nil
}

// ListAlerts retrieves alerts, newest first
func (r *Repository) ListAlerts(ctx context.Context, unreadOnly bool, limit int) ([]models.Alert, error) {
	query := `
		SELECT id, lease_id, kind, message, dedupe_key, read, emailed, generated_at
		FROM rental.alerts
		WHERE NOT $1 OR NOT read
		ORDER BY generated_at DESC
		LIMIT $2`
	return r.listAlerts(ctx, query, unreadOnly, limit)
}

// ListUnemailedAlerts retrieves alerts not yet sent by email, oldest first
func (r *Repository) ListUnemailedAlerts(ctx context.Context) ([]models.Alert, error) {
	query := `
		SELECT id, lease_id, kind, message, dedupe_key, read, emailed, generated_at
		FROM rental.alerts
		WHERE NOT emailed
		ORDER BY generated_at`
	return r.listAlerts(ctx, query)
}

func (r *Repository) listAlerts(ctx context.Context, query string, args ...any) ([]models.Alert, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list alerts: %w", err)
	}
	defer rows.Close()

	alerts := []models.Alert{}
	for rows.Next() {
		var a models.Alert
		if err := rows.Scan(&a.ID, &a.LeaseID, &a.Kind, &a.Message, &a.DedupeKey, &a.Read, &a.Emailed, &a.GeneratedAt); err != nil {
			return nil, fmt.Errorf("failed to scan alert: %w", err)
		}
		alerts = append(alerts, a)
	}
	return alerts, rows.Err()
}

// CountUnreadAlerts counts alerts nobody has marked read
func (r *Repository) CountUnreadAlerts(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT count(*) FROM rental.alerts WHERE NOT read`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count alerts: %w", err)
	}
	return n, nil
}

// MarkAllAlertsRead flags every unread alert as read and returns how many changed
func (r *Repository) MarkAllAlertsRead(ctx context.Context) (int64, error) {
	res, err := r.db.ExecContext(ctx, `UPDATE rental.alerts SET read = TRUE WHERE NOT read`)
	if err != nil {
		return 0, fmt.Errorf("failed to mark alerts read: %w", err)
	}
	return res.RowsAffected()
}

// MarkAlertsEmailed flags the given alerts as sent
func (r *Repository) MarkAlertsEmailed(ctx context.Context, ids []uuid.UUID) error {
	if len(ids) == 0 {
		return nil
	}
	_, err := r.db.ExecContext(ctx, `UPDATE rental.alerts SET emailed = TRUE WHERE id = ANY($1::uuid[])`, pq.Array(idStrings(ids)))
	if err != nil {
		return fmt.Errorf("failed to mark alerts emailed: %w", err)
	}
	return nil
}
