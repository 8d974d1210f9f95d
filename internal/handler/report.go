package handler

import (
	"bytes"
	"net/http"
	"time"

	"github.com/Dan9191/rental-service/internal/export"
	"github.com/Dan9191/rental-service/internal/middleware"
)

// Arrears returns the arrears report, as JSON or as a spreadsheet with format=xlsx
func (h *Handler) Arrears(w http.ResponseWriter, r *http.Request) {
	asOf, err := parseDate(r.URL.Query().Get("as_of"), h.cfg.Location)
	if err != nil {
		writeError(w, http.StatusBadRequest, "as_of must be YYYY-MM-DD")
		return
	}
	report, err := h.svc.Arrears(r.Context(), asOf)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	if r.URL.Query().Get("format") == "xlsx" {
		var buf bytes.Buffer
		if err := export.ArrearsXLSX(&buf, report); err != nil {
			h.writeServiceError(w, r, err)
			return
		}
		writeFile(w, export.FileName("arrears", report.AsOf), buf.Bytes())
		return
	}
	writeJSON(w, http.StatusOK, report)
}

// Dashboard returns the portfolio figures
func (h *Handler) Dashboard(w http.ResponseWriter, r *http.Request) {
	d, err := h.svc.Dashboard(r.Context())
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, d)
}

// Statement returns an owner statement for the from/to query range
func (h *Handler) Statement(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	q := r.URL.Query()
	from, err := parseDate(q.Get("from"), h.cfg.Location)
	if err != nil {
		writeError(w, http.StatusBadRequest, "from must be YYYY-MM-DD")
		return
	}
	to, err := parseDate(q.Get("to"), h.cfg.Location)
	if err != nil {
		writeError(w, http.StatusBadRequest, "to must be YYYY-MM-DD")
		return
	}

	actor, _ := middleware.FromContext(r.Context())
	st, err := h.svc.Statement(r.Context(), actor, ownerID, from, to)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	if q.Get("format") == "xlsx" {
		var buf bytes.Buffer
		if err := export.StatementXLSX(&buf, st); err != nil {
			h.writeServiceError(w, r, err)
			return
		}
		writeFile(w, export.FileName("statement", time.Now()), buf.Bytes())
		return
	}
	writeJSON(w, http.StatusOK, st)
}

func writeFile(w http.ResponseWriter, name string, body []byte) {
	w.Header().Set("Content-Type", export.ContentType)
	w.Header().Set("Content-Disposition", "attachment; filename="+name)
	w.WriteHeader(http.StatusOK)
	w.Write(body)
}
