package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/Dan9191/rental-service/internal/models"
	"github.com/Dan9191/rental-service/internal/utils"
)

// CreateOwner stores an owner with its bank account number encrypted.
// The returned owner carries the masked account number.
func (s *Service) CreateOwner(ctx context.Context, owner *models.Owner) error {
	owner.Name = strings.TrimSpace(owner.Name)
	if owner.Name == "" {
		return invalid("name is required")
	}

	var plain string
	if bd := owner.BankDetails; bd != nil {
		plain = strings.TrimSpace(bd.AccountNumber)
		if plain == "" {
			return invalid("bank account number is required with bank details")
		}
		encrypted, err := utils.EncryptField(plain, s.config.EncryptionKey)
		if err != nil {
			return fmt.Errorf("failed to encrypt account number: %w", err)
		}
		bd.AccountNumber = encrypted
	}

	if err := s.repo.CreateOwner(ctx, owner); err != nil {
		return err
	}
	if owner.BankDetails != nil {
		owner.BankDetails.AccountNumber = utils.MaskAccountNumber(plain)
	}

	s.log.WithField("owner_id", owner.ID).Info("Owner created")
	return nil
}

// GetOwner returns an owner with its bank account number decrypted
func (s *Service) GetOwner(ctx context.Context, id uuid.UUID) (*models.Owner, error) {
	owner, err := s.repo.GetOwner(ctx, id)
	if err != nil {
		return nil, err
	}
	if bd := owner.BankDetails; bd != nil && bd.AccountNumber != "" {
		plain, err := utils.DecryptField(bd.AccountNumber, s.config.EncryptionKey)
		if err != nil {
			return nil, fmt.Errorf("failed to decrypt account number: %w", err)
		}
		bd.AccountNumber = plain
	}
	return owner, nil
}

// CreateTenant stores a tenant and up to three guarantors
func (s *Service) CreateTenant(ctx context.Context, tenant *models.Tenant) error {
	tenant.Name = strings.TrimSpace(tenant.Name)
	if tenant.Name == "" {
		return invalid("name is required")
	}
	if len(tenant.Guarantors) > models.MaxGuarantors {
		return invalid("at most %d guarantors are allowed", models.MaxGuarantors)
	}
	for i := range tenant.Guarantors {
		g := &tenant.Guarantors[i]
		g.Name = strings.TrimSpace(g.Name)
		if g.Name == "" {
			return invalid("guarantor %d needs a name", i+1)
		}
	}

	if err := s.repo.CreateTenant(ctx, tenant); err != nil {
		return err
	}
	s.log.WithField("tenant_id", tenant.ID).Info("Tenant created")
	return nil
}

func (s *Service) GetTenant(ctx context.Context, id uuid.UUID) (*models.Tenant, error) {
	return s.repo.GetTenant(ctx, id)
}
