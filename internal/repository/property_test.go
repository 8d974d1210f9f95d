package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Dan9191/rental-service/internal/models"
)

var propertyCols = []string{"id", "address", "kind", "owner_id", "status", "created_at", "updated_at"}

func TestCreateProperty(t *testing.T) {
	repo, mock := setupMock(t)
	p := &models.Property{Address: "Av. Santa Fe 100", Kind: "apartment", OwnerID: uuid.New(), Status: models.PropertyAvailable}
	id := uuid.New()
	now := time.Now()
	mock.ExpectQuery("INSERT INTO rental.properties").
		WithArgs("Av. Santa Fe 100", "apartment", p.OwnerID.String(), "available").
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow(id.String(), now, now))

	require.NoError(t, repo.CreateProperty(context.Background(), p))
	assert.Equal(t, id, p.ID)
}

func TestCreateProperty_UnknownOwner(t *testing.T) {
	repo, mock := setupMock(t)
	p := &models.Property{Address: "Corrientes 2000", Kind: "store", OwnerID: uuid.New(), Status: models.PropertyAvailable}
	mock.ExpectQuery("INSERT INTO rental.properties").
		WillReturnError(&pq.Error{Code: "23503", Message: "violates foreign key constraint"})

	err := repo.CreateProperty(context.Background(), p)

	assert.True(t, errors.Is(err, ErrNotFound))
	assert.ErrorContains(t, err, p.OwnerID.String())
}

func TestGetProperty_NotFound(t *testing.T) {
	repo, mock := setupMock(t)
	id := uuid.New()
	mock.ExpectQuery("FROM rental.properties").WithArgs(id.String()).WillReturnRows(sqlmock.NewRows(propertyCols))

	_, err := repo.GetProperty(context.Background(), id)

	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestListProperties_FiltersByOwner(t *testing.T) {
	repo, mock := setupMock(t)
	ownerID := uuid.New()
	now := time.Now()
	mock.ExpectQuery("FROM rental.properties").WithArgs(ownerID.String()).
		WillReturnRows(sqlmock.NewRows(propertyCols).
			AddRow(uuid.NewString(), "Av. Santa Fe 100", "apartment", ownerID.String(), "rented", now, now).
			AddRow(uuid.NewString(), "Corrientes 2000", "store", ownerID.String(), "maintenance", now, now))

	properties, err := repo.ListProperties(context.Background(), &ownerID)

	require.NoError(t, err)
	require.Len(t, properties, 2)
	assert.Equal(t, models.PropertyRented, properties[0].Status)
	assert.Equal(t, models.PropertyMaintenance, properties[1].Status)
	assert.Equal(t, ownerID, properties[1].OwnerID)
}

func TestSetPropertyStatus_SkipsRented(t *testing.T) {
	repo, mock := setupMock(t)
	id := uuid.New()
	mock.ExpectExec("UPDATE rental.properties").
		WithArgs("maintenance", id.String(), "rented").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.SetPropertyStatus(context.Background(), id, models.PropertyMaintenance)

	assert.True(t, errors.Is(err, ErrNotFound))
}
