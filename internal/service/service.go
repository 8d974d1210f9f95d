package service

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"github.com/Dan9191/rental-service/internal/alerts"
	"github.com/Dan9191/rental-service/internal/config"
	"github.com/Dan9191/rental-service/internal/integrations/geocode"
	"github.com/Dan9191/rental-service/internal/middleware"
	"github.com/Dan9191/rental-service/internal/models"
	"github.com/Dan9191/rental-service/internal/repository"
)

var (
	// ErrInvalid is returned when input fails validation
	ErrInvalid = errors.New("invalid input")
	// ErrConflict is returned when the request clashes with the current state
	ErrConflict = errors.New("conflict")
	// ErrForbidden is returned when the caller may not access the resource
	ErrForbidden = errors.New("forbidden")
	// ErrInvalidCredentials is returned by Login for an unknown email or a wrong password
	ErrInvalidCredentials = errors.New("invalid credentials")
)

const (
	tokenTTL       = 24 * time.Hour
	minPasswordLen = 8
	alertListLimit = 200
)

// Geocoder resolves an address to coordinates
type Geocoder interface {
	Lookup(ctx context.Context, address string) (geocode.Coordinates, error)
}

// Notifier delivers pending alerts
type Notifier interface {
	SendAlertDigest(alerts []models.Alert) error
}

// Service handles business logic
type Service struct {
	repo     *repository.Repository
	log      *logrus.Logger
	config   *config.Config
	engine   *alerts.Engine
	geocoder Geocoder
	notifier Notifier
	now      func() time.Time
}

// NewService initializes a new service. notifier may be nil when email is not configured.
func NewService(repo *repository.Repository, log *logrus.Logger, cfg *config.Config, geocoder Geocoder, notifier Notifier) *Service {
	s := &Service{
		repo:     repo,
		log:      log,
		config:   cfg,
		geocoder: geocoder,
		notifier: notifier,
	}
	s.now = func() time.Time { return time.Now().In(cfg.Location) }
	s.engine = alerts.NewEngine(repo, log, s.clock)
	return s
}

// SetClock replaces the source of the current time
func (s *Service) SetClock(now func() time.Time) {
	s.now = now
}

func (s *Service) clock() time.Time {
	return s.now()
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalid, fmt.Sprintf(format, args...))
}

// Login authenticates a user and returns a JWT token
func (s *Service) Login(ctx context.Context, email, password string) (string, error) {
	user, err := s.repo.FindUserByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if errors.Is(err, repository.ErrNotFound) {
		return "", ErrInvalidCredentials
	}
	if err != nil {
		return "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", ErrInvalidCredentials
	}

	token, err := middleware.IssueToken(user, s.config.JWTSecret, tokenTTL)
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}

	s.log.Infof("User logged in: %s", user.Email)
	return token, nil
}

// CreateUserInput is the data needed to create a back office user
type CreateUserInput struct {
	Email    string      `json:"email"`
	Name     string      `json:"name"`
	Password string      `json:"password"`
	Role     models.Role `json:"role"`
	OwnerID  *uuid.UUID  `json:"owner_id,omitempty"`
}

// CreateUser creates a new user with hashed password
func (s *Service) CreateUser(ctx context.Context, in CreateUserInput) (*models.User, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, invalid("email %q is not valid", in.Email)
	}
	if strings.TrimSpace(in.Name) == "" {
		return nil, invalid("name is required")
	}
	if len(in.Password) < minPasswordLen {
		return nil, invalid("password must be at least %d characters", minPasswordLen)
	}
	if !in.Role.Valid() {
		return nil, invalid("unknown role %q", in.Role)
	}
	if in.Role == models.RoleOwner && in.OwnerID == nil {
		return nil, invalid("owner users need an owner_id")
	}
	if in.Role != models.RoleOwner && in.OwnerID != nil {
		return nil, invalid("only owner users can have an owner_id")
	}
	if in.OwnerID != nil {
		if _, err := s.repo.GetOwner(ctx, *in.OwnerID); err != nil {
			return nil, err
		}
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Email:        email,
		Name:         strings.TrimSpace(in.Name),
		Role:         in.Role,
		OwnerID:      in.OwnerID,
		PasswordHash: string(hashedPassword),
	}
	if err := s.repo.CreateUser(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, fmt.Errorf("%w: %v", ErrConflict, err)
		}
		return nil, err
	}

	s.log.Infof("User created: %s (%s)", user.Email, user.Role)
	return user, nil
}

// ListUsers returns every user
func (s *Service) ListUsers(ctx context.Context) ([]models.User, error) {
	return s.repo.ListUsers(ctx)
}

// Geocode resolves an address through the configured provider
func (s *Service) Geocode(ctx context.Context, address string) (geocode.Coordinates, error) {
	if s.geocoder == nil {
		return geocode.Coordinates{}, errors.New("geocoding is not configured")
	}
	return s.geocoder.Lookup(ctx, address)
}
