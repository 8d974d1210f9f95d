package handler

import (
	"net/http"

	"github.com/Dan9191/rental-service/internal/models"
)

// CreateOwner handles owner creation
func (h *Handler) CreateOwner(w http.ResponseWriter, r *http.Request) {
	var owner models.Owner
	if err := decodeJSON(r, &owner); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.svc.CreateOwner(r.Context(), &owner); err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, owner)
}

func (h *Handler) GetOwner(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	owner, err := h.svc.GetOwner(r.Context(), id)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, owner)
}

// CreateTenant handles tenant creation
func (h *Handler) CreateTenant(w http.ResponseWriter, r *http.Request) {
	var tenant models.Tenant
	if err := decodeJSON(r, &tenant); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.svc.CreateTenant(r.Context(), &tenant); err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, tenant)
}

func (h *Handler) GetTenant(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	tenant, err := h.svc.GetTenant(r.Context(), id)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, tenant)
}
