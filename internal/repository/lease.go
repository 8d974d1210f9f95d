package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Dan9191/rental-service/internal/models"
)

const leaseColumns = `
		l.id, l.property_id, l.tenant_id, l.owner_id, l.start_date, l.end_date, l.monthly_amount,
		l.due_day, l.deposit, l.increase_every_months, l.increase_type, l.increase_value, l.status,
		l.created_at, l.updated_at, p.id, p.address, t.id, t.name
	FROM rental.leases l
	LEFT JOIN rental.properties p ON p.id = l.property_id
	LEFT JOIN rental.tenants t ON t.id = l.tenant_id`

type rowScanner interface {
	Scan(dest ...any) error
}

// scanLease reads one leaseColumns row, collapsing the property and tenant joins into
// single nullable references.
func scanLease(s rowScanner) (models.Lease, error) {
	var (
		l            models.Lease
		deposit      decimal.NullDecimal
		everyMonths  sql.NullInt32
		increaseType sql.NullString
		increaseVal  decimal.NullDecimal
		propertyID   uuid.NullUUID
		address      sql.NullString
		tenantID     uuid.NullUUID
		tenantName   sql.NullString
	)
	err := s.Scan(&l.ID, &l.PropertyID, &l.TenantID, &l.OwnerID, &l.StartDate, &l.EndDate, &l.MonthlyAmount,
		&l.DueDay, &deposit, &everyMonths, &increaseType, &increaseVal, &l.Status,
		&l.CreatedAt, &l.UpdatedAt, &propertyID, &address, &tenantID, &tenantName)
	if err != nil {
		return l, err
	}

	if deposit.Valid {
		d := deposit.Decimal
		l.Deposit = &d
	}
	if everyMonths.Valid {
		l.Increase = &models.IncreaseRule{
			EveryMonths: int(everyMonths.Int32),
			Type:        models.IncreaseType(increaseType.String),
			Value:       increaseVal.Decimal,
		}
	}
	if propertyID.Valid {
		l.Property = &models.PropertyRef{ID: propertyID.UUID, Address: address.String}
	}
	if tenantID.Valid {
		l.Tenant = &models.TenantRef{ID: tenantID.UUID, Name: tenantName.String}
	}
	return l, nil
}

// CreateLease creates a new active lease and marks its property rented in one transaction.
// It returns ErrNotFound when the property is missing or no longer available.
func (r *Repository) CreateLease(ctx context.Context, lease *models.Lease) error {
	var (
		everyMonths  sql.NullInt32
		increaseType sql.NullString
		increaseVal  decimal.NullDecimal
		deposit      decimal.NullDecimal
	)
	if lease.Increase != nil {
		everyMonths = sql.NullInt32{Int32: int32(lease.Increase.EveryMonths), Valid: true}
		increaseType = sql.NullString{String: string(lease.Increase.Type), Valid: true}
		increaseVal = decimal.NullDecimal{Decimal: lease.Increase.Value, Valid: true}
	}
	if lease.Deposit != nil {
		deposit = decimal.NullDecimal{Decimal: *lease.Deposit, Valid: true}
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	moved, err := moveProperty(ctx, tx, lease.PropertyID, models.PropertyAvailable, models.PropertyRented)
	if err != nil {
		return err
	}
	if !moved {
		return fmt.Errorf("available property %s: %w", lease.PropertyID, ErrNotFound)
	}

	query := `
		INSERT INTO rental.leases (property_id, tenant_id, owner_id, start_date, end_date, monthly_amount,
			due_day, deposit, increase_every_months, increase_type, increase_value, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)
		RETURNING id, created_at, updated_at`
	err = tx.QueryRowContext(ctx, query, lease.PropertyID, lease.TenantID, lease.OwnerID,
		lease.StartDate, lease.EndDate, lease.MonthlyAmount, lease.DueDay, deposit,
		everyMonths, increaseType, increaseVal, lease.Status).
		Scan(&lease.ID, &lease.CreatedAt, &lease.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create lease: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit lease: %w", err)
	}
	return nil
}

// GetLease retrieves a lease with its property and tenant
func (r *Repository) GetLease(ctx context.Context, id uuid.UUID) (*models.Lease, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+leaseColumns+` WHERE l.id = $1`, id)
	lease, err := scanLease(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("lease %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get lease: %w", err)
	}
	return &lease, nil
}

// ListActiveLeases retrieves every lease in the active state
func (r *Repository) ListActiveLeases(ctx context.Context) ([]models.Lease, error) {
	return r.listLeases(ctx, `SELECT `+leaseColumns+` WHERE l.status = $1 ORDER BY l.end_date, l.id`, models.LeaseActive)
}

func (r *Repository) listLeases(ctx context.Context, query string, args ...any) ([]models.Lease, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list leases: %w", err)
	}
	defer rows.Close()

	leases := []models.Lease{}
	for rows.Next() {
		lease, err := scanLease(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan lease: %w", err)
		}
		leases = append(leases, lease)
	}
	return leases, rows.Err()
}

// UpdateLeaseStatus moves a lease out of from into to. Leaving the active state releases the
// lease's property back to available. It returns ErrNotFound when the lease does not exist or
// is no longer in from.
func (r *Repository) UpdateLeaseStatus(ctx context.Context, id uuid.UUID, from, to models.LeaseStatus) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		UPDATE rental.leases
		SET status = $1, updated_at = CURRENT_TIMESTAMP
		WHERE id = $2 AND status = $3
		RETURNING property_id`
	var propertyID uuid.UUID
	err = tx.QueryRowContext(ctx, query, to, id, from).Scan(&propertyID)
	if err == sql.ErrNoRows {
		return fmt.Errorf("%s lease %s: %w", from, id, ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("failed to update lease status: %w", err)
	}

	if from == models.LeaseActive && to != models.LeaseActive {
		if _, err := moveProperty(ctx, tx, propertyID, models.PropertyRented, models.PropertyAvailable); err != nil {
			return err
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit lease status: %w", err)
	}
	return nil
}
