package handler

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Dan9191/rental-service/internal/models"
)

var propertyCols = []string{"id", "address", "kind", "owner_id", "status", "created_at", "updated_at"}

func TestCreateProperty_Created(t *testing.T) {
	s := newTestServer(t)
	ownerID, id := uuid.New(), uuid.New()
	now := time.Now()
	s.mock.ExpectQuery("INSERT INTO rental.properties").
		WithArgs("Av. Santa Fe 100", "apartment", ownerID.String(), "available").
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow(id.String(), now, now))

	body := `{"address":"Av. Santa Fe 100","kind":"apartment","owner_id":"` + ownerID.String() + `"}`
	rec := s.do("POST", "/properties", s.token(t, models.RoleOperator, nil), body)

	require.Equal(t, http.StatusCreated, rec.Code)
	got := decodeBody(t, rec)
	assert.Equal(t, id.String(), got["id"])
	assert.Equal(t, "available", got["status"])
}

func TestCreateProperty_ViewerForbidden(t *testing.T) {
	s := newTestServer(t)

	rec := s.do("POST", "/properties", s.token(t, models.RoleViewer, nil), `{}`)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestListProperties(t *testing.T) {
	s := newTestServer(t)
	now := time.Now()
	s.mock.ExpectQuery("FROM rental.properties").
		WillReturnRows(sqlmock.NewRows(propertyCols).
			AddRow(uuid.NewString(), "Av. Santa Fe 100", "apartment", uuid.NewString(), "rented", now, now).
			AddRow(uuid.NewString(), "Corrientes 2000", "store", uuid.NewString(), "available", now, now))

	rec := s.do("GET", "/properties", s.token(t, models.RoleViewer, nil), "")

	require.Equal(t, http.StatusOK, rec.Code)
	var properties []models.Property
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &properties))
	require.Len(t, properties, 2)
	assert.Equal(t, models.PropertyRented, properties[0].Status)
}

func TestCreateLease_PropertyAlreadyRented(t *testing.T) {
	s := newTestServer(t)
	propertyID, ownerID := uuid.New(), uuid.New()
	now := time.Now()
	s.mock.ExpectQuery("FROM rental.properties").WithArgs(propertyID.String()).
		WillReturnRows(sqlmock.NewRows(propertyCols).
			AddRow(propertyID.String(), "Av. Santa Fe 100", "apartment", ownerID.String(), "rented", now, now))

	body := `{"property_id":"` + propertyID.String() + `","tenant_id":"` + uuid.NewString() + `","owner_id":"` + ownerID.String() + `",
		"start_date":"2024-01-01","end_date":"2026-01-01","monthly_amount":"1000","due_day":10}`
	rec := s.do("POST", "/leases", s.token(t, models.RoleOperator, nil), body)

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, decodeBody(t, rec)["error"], "rented")
}

func TestSetPropertyStatus_Maintenance(t *testing.T) {
	s := newTestServer(t)
	id := uuid.New()
	s.mock.ExpectExec("UPDATE rental.properties").WithArgs("maintenance", id.String(), "rented").
		WillReturnResult(sqlmock.NewResult(0, 1))

	rec := s.do("POST", "/properties/"+id.String()+"/status", s.token(t, models.RoleAdmin, nil), `{"status":"maintenance"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "maintenance", decodeBody(t, rec)["status"])
}
