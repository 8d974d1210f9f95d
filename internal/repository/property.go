package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/Dan9191/rental-service/internal/models"
)

const foreignKeyViolation = "23503"

// CreateProperty creates a new property. An unknown owner is reported as ErrNotFound.
func (r *Repository) CreateProperty(ctx context.Context, p *models.Property) error {
	query := `
		INSERT INTO rental.properties (address, kind, owner_id, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)
		RETURNING id, created_at, updated_at`
	err := r.db.QueryRowContext(ctx, query, p.Address, p.Kind, p.OwnerID, p.Status).
		Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == foreignKeyViolation {
		return fmt.Errorf("owner %s: %w", p.OwnerID, ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("failed to create property: %w", err)
	}
	return nil
}

// GetProperty retrieves a property by id
func (r *Repository) GetProperty(ctx context.Context, id uuid.UUID) (*models.Property, error) {
	var p models.Property
	query := `
		SELECT id, address, kind, owner_id, status, created_at, updated_at
		FROM rental.properties
		WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).
		Scan(&p.ID, &p.Address, &p.Kind, &p.OwnerID, &p.Status, &p.CreatedAt, &p.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("property %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get property: %w", err)
	}
	return &p, nil
}

// ListProperties retrieves properties ordered by address. A nil ownerID lists every owner's.
func (r *Repository) ListProperties(ctx context.Context, ownerID *uuid.UUID) ([]models.Property, error) {
	query := `
		SELECT id, address, kind, owner_id, status, created_at, updated_at
		FROM rental.properties
		WHERE $1::uuid IS NULL OR owner_id = $1
		ORDER BY address, id`
	rows, err := r.db.QueryContext(ctx, query, nullUUID(ownerID))
	if err != nil {
		return nil, fmt.Errorf("failed to list properties: %w", err)
	}
	defer rows.Close()

	properties := []models.Property{}
	for rows.Next() {
		var p models.Property
		if err := rows.Scan(&p.ID, &p.Address, &p.Kind, &p.OwnerID, &p.Status, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan property: %w", err)
		}
		properties = append(properties, p)
	}
	return properties, rows.Err()
}

// SetPropertyStatus switches a property that is not rented between available and
// maintenance. It returns ErrNotFound when the property does not exist or is rented.
func (r *Repository) SetPropertyStatus(ctx context.Context, id uuid.UUID, status models.PropertyStatus) error {
	query := `
		UPDATE rental.properties
		SET status = $1, updated_at = CURRENT_TIMESTAMP
		WHERE id = $2 AND status <> $3`
	res, err := r.db.ExecContext(ctx, query, status, id, models.PropertyRented)
	if err != nil {
		return fmt.Errorf("failed to update property status: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to update property status: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("unrented property %s: %w", id, ErrNotFound)
	}
	return nil
}

// ListPropertyStatuses retrieves the status of every property
func (r *Repository) ListPropertyStatuses(ctx context.Context) ([]models.PropertyStatus, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT status FROM rental.properties`)
	if err != nil {
		return nil, fmt.Errorf("failed to list properties: %w", err)
	}
	defer rows.Close()

	statuses := []models.PropertyStatus{}
	for rows.Next() {
		var s models.PropertyStatus
		if err := rows.Scan(&s); err != nil {
			return nil, fmt.Errorf("failed to scan property: %w", err)
		}
		statuses = append(statuses, s)
	}
	return statuses, rows.Err()
}

// moveProperty changes a property's status inside tx when it is currently in from.
// It reports whether a row was updated.
func moveProperty(ctx context.Context, tx *sql.Tx, id uuid.UUID, from, to models.PropertyStatus) (bool, error) {
	query := `
		UPDATE rental.properties
		SET status = $1, updated_at = CURRENT_TIMESTAMP
		WHERE id = $2 AND status = $3`
	res, err := tx.ExecContext(ctx, query, to, id, from)
	if err != nil {
		return false, fmt.Errorf("failed to update property status: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to update property status: %w", err)
	}
	return n > 0, nil
}
