package handler

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"github.com/Dan9191/rental-service/internal/config"
	"github.com/Dan9191/rental-service/internal/middleware"
	"github.com/Dan9191/rental-service/internal/models"
	"github.com/Dan9191/rental-service/internal/service"
)

type Handler struct {
	svc *service.Service
	cfg *config.Config
	log *logrus.Logger
}

func NewHandler(svc *service.Service, cfg *config.Config, log *logrus.Logger) *Handler {
	return &Handler{svc: svc, cfg: cfg, log: log}
}

// Routes registers every endpoint on r
func (h *Handler) Routes(r *mux.Router) {
	// Public routes
	r.HandleFunc("/healthz", h.Healthz).Methods("GET")
	r.HandleFunc("/login", h.Login).Methods("POST")
	r.HandleFunc("/cron/alerts", h.CronAlerts).Methods("GET", "POST")

	// Protected routes
	api := r.PathPrefix("/").Subrouter()
	api.Use(middleware.AuthMiddleware(h.cfg))
	api.HandleFunc("/arrears", h.Arrears).Methods("GET")
	api.HandleFunc("/dashboard", h.Dashboard).Methods("GET")
	api.HandleFunc("/alerts", h.ListAlerts).Methods("GET")
	api.HandleFunc("/alerts/read-all", h.MarkAllRead).Methods("POST")
	api.HandleFunc("/payments", h.RecordPayment).Methods("POST")
	api.HandleFunc("/leases/{id}", h.GetLease).Methods("GET")
	api.HandleFunc("/properties", h.ListProperties).Methods("GET")
	api.HandleFunc("/properties/{id}", h.GetProperty).Methods("GET")
	api.HandleFunc("/owners/{id}/statement", h.Statement).Methods("GET")
	api.HandleFunc("/geocode", h.Geocode).Methods("GET")

	staff := api.NewRoute().Subrouter()
	staff.Use(middleware.RequireRole(models.RoleAdmin, models.RoleOperator))
	staff.HandleFunc("/leases", h.CreateLease).Methods("POST")
	staff.HandleFunc("/leases/{id}/status", h.ChangeLeaseStatus).Methods("POST")
	staff.HandleFunc("/properties", h.CreateProperty).Methods("POST")
	staff.HandleFunc("/properties/{id}/status", h.SetPropertyStatus).Methods("POST")
	staff.HandleFunc("/owners", h.CreateOwner).Methods("POST")
	staff.HandleFunc("/owners/{id}", h.GetOwner).Methods("GET")
	staff.HandleFunc("/tenants", h.CreateTenant).Methods("POST")
	staff.HandleFunc("/tenants/{id}", h.GetTenant).Methods("GET")

	admin := api.NewRoute().Subrouter()
	admin.Use(middleware.RequireRole(models.RoleAdmin))
	admin.HandleFunc("/users", h.CreateUser).Methods("POST")
	admin.HandleFunc("/users", h.ListUsers).Methods("GET")
}

// Healthz reports liveness
func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login handles user authentication
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	token, err := h.svc.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"token": token})
}

// CreateUser handles user creation by an admin
func (h *Handler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var req service.CreateUserInput
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	user, err := h.svc.CreateUser(r.Context(), req)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, user)
}

func (h *Handler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.svc.ListUsers(r.Context())
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, users)
}

// Geocode resolves the address query parameter
func (h *Handler) Geocode(w http.ResponseWriter, r *http.Request) {
	coords, err := h.svc.Geocode(r.Context(), r.URL.Query().Get("address"))
	if err != nil {
		h.writeGeocodeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, coords)
}
