package handler

import (
	"crypto/subtle"
	"net/http"

	"github.com/Dan9191/rental-service/internal/middleware"
)

// CronAlerts triggers the daily alert run. When a cron secret is configured the request
// must carry it as a bearer token.
func (h *Handler) CronAlerts(w http.ResponseWriter, r *http.Request) {
	if h.cfg.CronSecret != "" {
		token, _ := middleware.BearerToken(r)
		if subtle.ConstantTimeCompare([]byte(token), []byte(h.cfg.CronSecret)) != 1 {
			writeError(w, http.StatusUnauthorized, "Unauthorized")
			return
		}
	}

	res, err := h.svc.RunAlerts(r.Context())
	if err != nil {
		h.log.Errorf("Alert run failed: %v", err)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"ok": true, "inserted": res.Inserted})
}

// ListAlerts returns the newest alerts; unread=true keeps only unread ones
func (h *Handler) ListAlerts(w http.ResponseWriter, r *http.Request) {
	alerts, err := h.svc.ListAlerts(r.Context(), r.URL.Query().Get("unread") == "true")
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, alerts)
}

// MarkAllRead flags every alert as read
func (h *Handler) MarkAllRead(w http.ResponseWriter, r *http.Request) {
	n, err := h.svc.MarkAllRead(r.Context())
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int64{"updated": n})
}
