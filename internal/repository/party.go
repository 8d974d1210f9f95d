package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/Dan9191/rental-service/internal/models"
)

// CreateOwner creates a new owner. Bank details are stored as given; callers encrypt
// sensitive fields beforehand.
func (r *Repository) CreateOwner(ctx context.Context, owner *models.Owner) error {
	// JSONB goes over the wire as text; a []byte would be sent as bytea.
	var bank sql.NullString
	if owner.BankDetails != nil {
		raw, err := json.Marshal(owner.BankDetails)
		if err != nil {
			return fmt.Errorf("failed to encode bank details: %w", err)
		}
		bank = sql.NullString{String: string(raw), Valid: true}
	}
	query := `
		INSERT INTO rental.owners (name, tax_id, contact, bank_details, created_at, updated_at)
		VALUES ($1, $2, $3, $4, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)
		RETURNING id, created_at, updated_at`
	err := r.db.QueryRowContext(ctx, query, owner.Name, nullString(owner.TaxID), nullString(owner.Contact), bank).
		Scan(&owner.ID, &owner.CreatedAt, &owner.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create owner: %w", err)
	}
	return nil
}

// GetOwner retrieves an owner by id
func (r *Repository) GetOwner(ctx context.Context, id uuid.UUID) (*models.Owner, error) {
	var (
		o       models.Owner
		taxID   sql.NullString
		contact sql.NullString
		bank    []byte
	)
	query := `
		SELECT id, name, tax_id, contact, bank_details, created_at, updated_at
		FROM rental.owners
		WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).
		Scan(&o.ID, &o.Name, &taxID, &contact, &bank, &o.CreatedAt, &o.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("owner %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get owner: %w", err)
	}
	o.TaxID, o.Contact = stringPtr(taxID), stringPtr(contact)
	if len(bank) > 0 {
		o.BankDetails = &models.BankDetails{}
		if err := json.Unmarshal(bank, o.BankDetails); err != nil {
			return nil, fmt.Errorf("failed to decode bank details: %w", err)
		}
	}
	return &o, nil
}

// CreateTenant creates a new tenant with its guarantors
func (r *Repository) CreateTenant(ctx context.Context, tenant *models.Tenant) error {
	if tenant.Guarantors == nil {
		tenant.Guarantors = []models.Guarantor{}
	}
	guarantors, err := json.Marshal(tenant.Guarantors)
	if err != nil {
		return fmt.Errorf("failed to encode guarantors: %w", err)
	}
	query := `
		INSERT INTO rental.tenants (name, tax_id, email, phone, guarantors, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)
		RETURNING id, created_at, updated_at`
	err = r.db.QueryRowContext(ctx, query, tenant.Name, nullString(tenant.TaxID), nullString(tenant.Email),
		nullString(tenant.Phone), string(guarantors)).
		Scan(&tenant.ID, &tenant.CreatedAt, &tenant.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create tenant: %w", err)
	}
	return nil
}

// GetTenant retrieves a tenant by id
func (r *Repository) GetTenant(ctx context.Context, id uuid.UUID) (*models.Tenant, error) {
	var (
		t          models.Tenant
		taxID      sql.NullString
		email      sql.NullString
		phone      sql.NullString
		guarantors []byte
	)
	query := `
		SELECT id, name, tax_id, email, phone, guarantors, created_at, updated_at
		FROM rental.tenants
		WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).
		Scan(&t.ID, &t.Name, &taxID, &email, &phone, &guarantors, &t.CreatedAt, &t.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("tenant %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get tenant: %w", err)
	}
	t.TaxID, t.Email, t.Phone = stringPtr(taxID), stringPtr(email), stringPtr(phone)
	t.Guarantors = []models.Guarantor{}
	if len(guarantors) > 0 {
		if err := json.Unmarshal(guarantors, &t.Guarantors); err != nil {
			return nil, fmt.Errorf("failed to decode guarantors: %w", err)
		}
	}
	return &t, nil
}
