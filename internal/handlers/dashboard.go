package handlers

import (
	"net/http"

	"github.com/smoraleda/crmcore/internal/auth"
	pkghttp "github.com/smoraleda/crmcore/pkg/http"
)

// DashboardHandler serves the landing data for authenticated users
type DashboardHandler struct{}

// NewDashboardHandler creates a new DashboardHandler
func NewDashboardHandler() *DashboardHandler {
	return &DashboardHandler{}
}

// DashboardResponse represents the dashboard payload
type DashboardResponse struct {
	UserID string `json:"user_id"`
	RoleID string `json:"role_id"`
}

// Get returns the dashboard for the authenticated user
func (h *DashboardHandler) Get(w http.ResponseWriter, r *http.Request) {
	claims := auth.GetUserFromContext(r)
	if claims == nil {
		pkghttp.WriteUnauthorized(w, "Authentication required")
		return
	}

	pkghttp.WriteJSON(w, http.StatusOK, DashboardResponse{
		UserID: claims.UserID,
		RoleID: claims.RoleID,
	})
}
