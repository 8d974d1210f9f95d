package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/Dan9191/rental-service/internal/billing"
	"github.com/Dan9191/rental-service/internal/models"
)

const dateLayout = "2006-01-02"

// CreatePayment records a payment. A second payment for the same lease and period is
// rejected with ErrDuplicate.
func (r *Repository) CreatePayment(ctx context.Context, p *models.Payment) error {
	query := `
		INSERT INTO rental.payments (lease_id, period, amount, paid_on, method, late_fee, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, CURRENT_TIMESTAMP)
		ON CONFLICT (lease_id, period) DO NOTHING
		RETURNING id, created_at`
	err := r.db.QueryRowContext(ctx, query, p.LeaseID, p.Period.Format(dateLayout), p.Amount,
		p.PaidOn.Format(dateLayout), p.Method, p.LateFee).
		Scan(&p.ID, &p.CreatedAt)
	if err == sql.ErrNoRows {
		return fmt.Errorf("payment for period %s: %w", billing.PeriodKey(p.Period), ErrDuplicate)
	}
	if err != nil {
		return fmt.Errorf("failed to create payment: %w", err)
	}
	return nil
}

// ListPaymentsForLeases retrieves the payments of the given leases
func (r *Repository) ListPaymentsForLeases(ctx context.Context, leaseIDs []uuid.UUID) ([]models.Payment, error) {
	if len(leaseIDs) == 0 {
		return []models.Payment{}, nil
	}
	return r.listPayments(ctx, `
		SELECT id, lease_id, period, amount, paid_on, method, late_fee, created_at
		FROM rental.payments
		WHERE lease_id = ANY($1::uuid[])
		ORDER BY period, lease_id`, pq.Array(idStrings(leaseIDs)))
}

// ListPayments retrieves every recorded payment
func (r *Repository) ListPayments(ctx context.Context) ([]models.Payment, error) {
	return r.listPayments(ctx, `
		SELECT id, lease_id, period, amount, paid_on, method, late_fee, created_at
		FROM rental.payments
		ORDER BY paid_on`)
}

func (r *Repository) listPayments(ctx context.Context, query string, args ...any) ([]models.Payment, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list payments: %w", err)
	}
	defer rows.Close()

	payments := []models.Payment{}
	for rows.Next() {
		var p models.Payment
		if err := rows.Scan(&p.ID, &p.LeaseID, &p.Period, &p.Amount, &p.PaidOn, &p.Method, &p.LateFee, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan payment: %w", err)
		}
		payments = append(payments, p)
	}
	return payments, rows.Err()
}

// PaidPeriods reports which of the given periods have a payment for the lease, keyed "YYYY-MM"
func (r *Repository) PaidPeriods(ctx context.Context, leaseID uuid.UUID, periods []time.Time) (map[string]bool, error) {
	dates := make([]string, len(periods))
	for i, p := range periods {
		dates[i] = billing.StartOfMonth(p).Format(dateLayout)
	}

	query := `
		SELECT to_char(period, 'YYYY-MM')
		FROM rental.payments
		WHERE lease_id = $1 AND period = ANY($2::date[])`
	rows, err := r.db.QueryContext(ctx, query, leaseID, pq.Array(dates))
	if err != nil {
		return nil, fmt.Errorf("failed to read paid periods: %w", err)
	}
	defer rows.Close()

	paid := make(map[string]bool, len(periods))
	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			return nil, fmt.Errorf("failed to scan paid period: %w", err)
		}
		paid[key] = true
	}
	return paid, rows.Err()
}

// ListStatementLines retrieves the payments collected for an owner's leases between from and to
func (r *Repository) ListStatementLines(ctx context.Context, ownerID uuid.UUID, from, to time.Time) ([]models.StatementLine, error) {
	query := `
		SELECT pay.lease_id, COALESCE(p.address, ''), COALESCE(t.name, ''), pay.period, pay.amount, pay.paid_on
		FROM rental.payments pay
		JOIN rental.leases l ON l.id = pay.lease_id
		LEFT JOIN rental.properties p ON p.id = l.property_id
		LEFT JOIN rental.tenants t ON t.id = l.tenant_id
		WHERE l.owner_id = $1 AND pay.paid_on BETWEEN $2 AND $3
		ORDER BY pay.paid_on`
	rows, err := r.db.QueryContext(ctx, query, ownerID, from.Format(dateLayout), to.Format(dateLayout))
	if err != nil {
		return nil, fmt.Errorf("failed to list statement lines: %w", err)
	}
	defer rows.Close()

	lines := []models.StatementLine{}
	for rows.Next() {
		var (
			l      models.StatementLine
			period time.Time
		)
		if err := rows.Scan(&l.LeaseID, &l.PropertyAddress, &l.TenantName, &period, &l.Amount, &l.PaidOn); err != nil {
			return nil, fmt.Errorf("failed to scan statement line: %w", err)
		}
		l.Period = billing.PeriodKey(period)
		lines = append(lines, l)
	}
	return lines, rows.Err()
}
