package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Dan9191/rental-service/internal/config"
	"github.com/Dan9191/rental-service/internal/models"
)

func protected(cfg *config.Config, roles ...models.Role) http.Handler {
	final := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		p, _ := FromContext(r.Context())
		w.Header().Set("X-Role", string(p.Role))
		w.WriteHeader(http.StatusNoContent)
	})
	var h http.Handler = final
	if len(roles) > 0 {
		h = RequireRole(roles...)(h)
	}
	return AuthMiddleware(cfg)(h)
}

func request(token string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return req
}

func TestAuthMiddleware(t *testing.T) {
	cfg := &config.Config{JWTSecret: "test-secret"}
	user := &models.User{ID: uuid.New(), Role: models.RoleOperator}
	token, err := IssueToken(user, cfg.JWTSecret, time.Hour)
	require.NoError(t, err)
	expired, err := IssueToken(user, cfg.JWTSecret, -time.Minute)
	require.NoError(t, err)
	forged, err := IssueToken(user, "other-secret", time.Hour)
	require.NoError(t, err)

	tests := []struct {
		name   string
		token  string
		status int
	}{
		{"valid", token, http.StatusNoContent},
		{"missing", "", http.StatusUnauthorized},
		{"expired", expired, http.StatusUnauthorized},
		{"wrong secret", forged, http.StatusUnauthorized},
		{"garbage", "not-a-jwt", http.StatusUnauthorized},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			protected(cfg).ServeHTTP(rec, request(tt.token))
			assert.Equal(t, tt.status, rec.Code)
		})
	}
}

func TestRequireRole(t *testing.T) {
	cfg := &config.Config{JWTSecret: "test-secret"}
	viewer, err := IssueToken(&models.User{ID: uuid.New(), Role: models.RoleViewer}, cfg.JWTSecret, time.Hour)
	require.NoError(t, err)
	admin, err := IssueToken(&models.User{ID: uuid.New(), Role: models.RoleAdmin}, cfg.JWTSecret, time.Hour)
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	protected(cfg, models.RoleAdmin).ServeHTTP(rec, request(viewer))
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = httptest.NewRecorder()
	protected(cfg, models.RoleAdmin).ServeHTTP(rec, request(admin))
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "admin", rec.Header().Get("X-Role"))
}

func TestOwnerClaimRoundTrip(t *testing.T) {
	cfg := &config.Config{JWTSecret: "test-secret"}
	ownerID := uuid.New()
	token, err := IssueToken(&models.User{ID: uuid.New(), Role: models.RoleOwner, OwnerID: &ownerID}, cfg.JWTSecret, time.Hour)
	require.NoError(t, err)

	var got Principal
	h := AuthMiddleware(cfg)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, _ = FromContext(r.Context())
	}))
	h.ServeHTTP(httptest.NewRecorder(), request(token))

	require.NotNil(t, got.OwnerID)
	assert.Equal(t, ownerID, *got.OwnerID)
	assert.Equal(t, models.RoleOwner, got.Role)
}
