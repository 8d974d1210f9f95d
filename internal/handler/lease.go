package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Dan9191/rental-service/internal/middleware"
	"github.com/Dan9191/rental-service/internal/models"
)

type createLeaseRequest struct {
	PropertyID    uuid.UUID            `json:"property_id"`
	TenantID      uuid.UUID            `json:"tenant_id"`
	OwnerID       uuid.UUID            `json:"owner_id"`
	StartDate     string               `json:"start_date"` // Format: YYYY-MM-DD
	EndDate       string               `json:"end_date"`   // Format: YYYY-MM-DD
	MonthlyAmount decimal.Decimal      `json:"monthly_amount"`
	DueDay        int                  `json:"due_day"`
	Deposit       *decimal.Decimal     `json:"deposit,omitempty"`
	Increase      *models.IncreaseRule `json:"increase,omitempty"`
}

// CreateLease handles lease creation
func (h *Handler) CreateLease(w http.ResponseWriter, r *http.Request) {
	var req createLeaseRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	start, err := parseDate(req.StartDate, h.cfg.Location)
	if err != nil {
		writeError(w, http.StatusBadRequest, "start_date must be YYYY-MM-DD")
		return
	}
	end, err := parseDate(req.EndDate, h.cfg.Location)
	if err != nil {
		writeError(w, http.StatusBadRequest, "end_date must be YYYY-MM-DD")
		return
	}

	lease := &models.Lease{
		PropertyID:    req.PropertyID,
		TenantID:      req.TenantID,
		OwnerID:       req.OwnerID,
		StartDate:     start,
		EndDate:       end,
		MonthlyAmount: req.MonthlyAmount,
		DueDay:        req.DueDay,
		Deposit:       req.Deposit,
		Increase:      req.Increase,
	}
	if err := h.svc.CreateLease(r.Context(), lease); err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, lease)
}

// GetLease returns a lease with its increase schedule
func (h *Handler) GetLease(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	actor, _ := middleware.FromContext(r.Context())
	view, err := h.svc.GetLease(r.Context(), actor, id)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

type leaseStatusRequest struct {
	Status models.LeaseStatus `json:"status"`
}

// ChangeLeaseStatus ends or terminates a lease
func (h *Handler) ChangeLeaseStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var req leaseStatusRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.svc.ChangeLeaseStatus(r.Context(), id, req.Status); err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"id": id, "status": req.Status})
}
