package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Dan9191/rental-service/internal/models"
	"github.com/Dan9191/rental-service/internal/service"
)

type recordPaymentRequest struct {
	LeaseID uuid.UUID            `json:"lease_id"`
	Period  string               `json:"period"`  // Format: YYYY-MM
	PaidOn  string               `json:"paid_on"` // Format: YYYY-MM-DD
	Amount  decimal.Decimal      `json:"amount"`
	Method  models.PaymentMethod `json:"method"`
	LateFee decimal.Decimal      `json:"late_fee"`
}

// RecordPayment handles payment registration
func (h *Handler) RecordPayment(w http.ResponseWriter, r *http.Request) {
	var req recordPaymentRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	period, err := parsePeriod(req.Period, h.cfg.Location)
	if err != nil {
		writeError(w, http.StatusBadRequest, "period must be YYYY-MM")
		return
	}
	paidOn, err := parseDate(req.PaidOn, h.cfg.Location)
	if err != nil {
		writeError(w, http.StatusBadRequest, "paid_on must be YYYY-MM-DD")
		return
	}

	payment, err := h.svc.RecordPayment(r.Context(), service.RecordPaymentInput{
		LeaseID: req.LeaseID,
		Period:  period,
		Amount:  req.Amount,
		PaidOn:  paidOn,
		Method:  req.Method,
		LateFee: req.LateFee,
	})
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, payment)
}
