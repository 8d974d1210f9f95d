package handler

import (
	"net/http"

	"github.com/Dan9191/rental-service/internal/middleware"
	"github.com/Dan9191/rental-service/internal/models"
)

// CreateProperty handles property creation
func (h *Handler) CreateProperty(w http.ResponseWriter, r *http.Request) {
	var property models.Property
	if err := decodeJSON(r, &property); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.svc.CreateProperty(r.Context(), &property); err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, property)
}

func (h *Handler) GetProperty(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	actor, _ := middleware.FromContext(r.Context())
	property, err := h.svc.GetProperty(r.Context(), actor, id)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, property)
}

func (h *Handler) ListProperties(w http.ResponseWriter, r *http.Request) {
	actor, _ := middleware.FromContext(r.Context())
	properties, err := h.svc.ListProperties(r.Context(), actor)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, properties)
}

type propertyStatusRequest struct {
	Status models.PropertyStatus `json:"status"`
}

// SetPropertyStatus toggles a property between available and maintenance
func (h *Handler) SetPropertyStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var req propertyStatusRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.svc.SetPropertyStatus(r.Context(), id, req.Status); err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"id": id, "status": req.Status})
}
