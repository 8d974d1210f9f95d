package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/Dan9191/rental-service/internal/integrations/geocode"
	"github.com/Dan9191/rental-service/internal/repository"
	"github.com/Dan9191/rental-service/internal/service"
)

const dateLayout = "2006-01-02"

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func decodeJSON(r *http.Request, v any) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(v)
}

// writeServiceError maps service and repository errors to HTTP statuses
func (h *Handler) writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, repository.ErrNotFound), errors.Is(err, geocode.ErrNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrInvalid), errors.Is(err, geocode.ErrEmptyAddress):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrConflict):
		writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, service.ErrForbidden):
		writeError(w, http.StatusForbidden, err.Error())
	case errors.Is(err, service.ErrInvalidCredentials):
		writeError(w, http.StatusUnauthorized, err.Error())
	default:
		h.log.WithField("path", r.URL.Path).Errorf("Request failed: %v", err)
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

// pathID reads a UUID path variable, answering 400 when it is malformed
func pathID(w http.ResponseWriter, r *http.Request, name string) (uuid.UUID, bool) {
	raw := mux.Vars(r)[name]
	id, err := uuid.Parse(raw)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id: "+raw)
		return uuid.Nil, false
	}
	return id, true
}

// parseDate reads YYYY-MM-DD in loc. An empty string yields the zero time.
func parseDate(s string, loc *time.Location) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, nil
	}
	return time.ParseInLocation(dateLayout, s, loc)
}

// parsePeriod accepts either YYYY-MM or a full date inside the period
func parsePeriod(s string, loc *time.Location) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.ParseInLocation("2006-01", s, loc); err == nil {
		return t, nil
	}
	return time.ParseInLocation(dateLayout, s, loc)
}

// writeGeocodeError answers provider failures with 502
func (h *Handler) writeGeocodeError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, geocode.ErrNotFound) || errors.Is(err, geocode.ErrEmptyAddress) {
		h.writeServiceError(w, r, err)
		return
	}
	h.log.WithField("path", r.URL.Path).Warnf("Geocoding failed: %v", err)
	writeError(w, http.StatusBadGateway, "geocoding provider unavailable")
}
