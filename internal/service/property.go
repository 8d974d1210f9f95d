package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/Dan9191/rental-service/internal/middleware"
	"github.com/Dan9191/rental-service/internal/models"
	"github.com/Dan9191/rental-service/internal/repository"
)

// CreateProperty stores a property. New properties start available unless put under
// maintenance; only leases make a property rented.
func (s *Service) CreateProperty(ctx context.Context, p *models.Property) error {
	p.Address = strings.TrimSpace(p.Address)
	p.Kind = strings.TrimSpace(p.Kind)
	if p.Address == "" || p.Kind == "" {
		return invalid("address and kind are required")
	}
	if p.OwnerID == uuid.Nil {
		return invalid("owner_id is required")
	}
	switch p.Status {
	case "":
		p.Status = models.PropertyAvailable
	case models.PropertyAvailable, models.PropertyMaintenance:
	default:
		return invalid("status must be %s or %s", models.PropertyAvailable, models.PropertyMaintenance)
	}

	err := s.repo.CreateProperty(ctx, p)
	if errors.Is(err, repository.ErrNotFound) {
		return invalid("owner %s does not exist", p.OwnerID)
	}
	if err != nil {
		return err
	}

	s.log.WithFields(logrus.Fields{
		"property_id": p.ID,
		"owner_id":    p.OwnerID,
	}).Info("Property created")
	return nil
}

// GetProperty returns a property. Owners only see their own.
func (s *Service) GetProperty(ctx context.Context, actor middleware.Principal, id uuid.UUID) (*models.Property, error) {
	p, err := s.repo.GetProperty(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := canSeeOwner(actor, p.OwnerID); err != nil {
		return nil, err
	}
	return p, nil
}

// ListProperties returns every property, or only the caller's for owners
func (s *Service) ListProperties(ctx context.Context, actor middleware.Principal) ([]models.Property, error) {
	var ownerID *uuid.UUID
	if actor.Role == models.RoleOwner {
		if actor.OwnerID == nil {
			return nil, ErrForbidden
		}
		ownerID = actor.OwnerID
	}
	return s.repo.ListProperties(ctx, ownerID)
}

// SetPropertyStatus puts a property under maintenance or back to available.
// Rented properties change status only through their lease.
func (s *Service) SetPropertyStatus(ctx context.Context, id uuid.UUID, status models.PropertyStatus) error {
	if status != models.PropertyAvailable && status != models.PropertyMaintenance {
		return invalid("status must be %s or %s", models.PropertyAvailable, models.PropertyMaintenance)
	}

	err := s.repo.SetPropertyStatus(ctx, id, status)
	if errors.Is(err, repository.ErrNotFound) {
		p, getErr := s.repo.GetProperty(ctx, id)
		if getErr != nil {
			return getErr
		}
		return fmt.Errorf("%w: property is %s", ErrConflict, p.Status)
	}
	if err != nil {
		return err
	}

	s.log.WithField("property_id", id).Infof("Property %s", status)
	return nil
}
