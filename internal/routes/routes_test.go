package routes

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smoraleda/crmcore/internal/auth"
	"github.com/smoraleda/crmcore/internal/handlers"
	"github.com/smoraleda/crmcore/internal/models"
	"github.com/smoraleda/crmcore/internal/services"
)

// newTestRouter wires the full route table with a role that holds only
// clients.read, so permission-gated routes can be told apart from
// routes open to any authenticated caller.
func newTestRouter(t *testing.T) (chi.Router, *auth.TokenManager) {
	t.Helper()

	tm := auth.NewTokenManager("test-secret-with-enough-entropy", time.Hour)

	roleRepo := &services.MockRoleRepository{
		GetByIDFunc: func(ctx context.Context, id string) (*models.Role, error) {
			return services.NewTestRole(id, "limited", []string{"clients.read"}), nil
		},
	}
	resolver := services.NewRoleService(roleRepo, services.NewTestLogger())

	authHandler := handlers.NewAuthHandler(&handlers.MockAuthService{
		MeFunc: func(ctx context.Context, userID string) (*services.MeResponse, error) {
			return &services.MeResponse{
				User:        &services.UserResponse{ID: userID, Email: "ana@gmail.com", Name: "Ana"},
				Permissions: []string{"clients.read"},
			}, nil
		},
	}, nil)

	router := chi.NewRouter()
	RegisterRoutes(router, authHandler, handlers.NewDashboardHandler(), handlers.NewUserHandler(&handlers.MockUserLister{}), tm, resolver)
	return router, tm
}

func get(t *testing.T, router chi.Router, path, token string) *httptest.ResponseRecorder {
	t.Helper()
	rr := httptest.NewRecorder()
	r := httptest.NewRequest("GET", path, nil)
	if token != "" {
		r.Header.Set("Authorization", "Bearer "+token)
	}
	router.ServeHTTP(rr, r)
	return rr
}

func TestRoutes_MeReachableByAnyAuthenticated(t *testing.T) {
	router, tm := newTestRouter(t)

	token, err := tm.Issue("u-1", "role-limited")
	require.NoError(t, err)

	rr := get(t, router, "/api/auth/me", token)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "ana@gmail.com")
}

func TestRoutes_MeRequiresToken(t *testing.T) {
	router, _ := newTestRouter(t)

	rr := get(t, router, "/api/auth/me", "")

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestRoutes_DashboardOpenToAnyAuthenticated(t *testing.T) {
	router, tm := newTestRouter(t)

	// The role holds no dashboard permission; a valid token is enough
	token, err := tm.Issue("u-1", "role-limited")
	require.NoError(t, err)

	rr := get(t, router, "/api/dashboard", token)

	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestRoutes_UsersRequiresManagePermission(t *testing.T) {
	router, tm := newTestRouter(t)

	token, err := tm.Issue("u-1", "role-limited")
	require.NoError(t, err)

	rr := get(t, router, "/api/users", token)

	assert.Equal(t, http.StatusForbidden, rr.Code)
}
