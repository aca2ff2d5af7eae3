package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/smoraleda/crmcore/internal/models"
	pkghttp "github.com/smoraleda/crmcore/pkg/http"
)

// UserLister defines the listing the admin surface needs
type UserLister interface {
	List(ctx context.Context, limit, offset int) ([]*models.User, error)
}

// UserHandler handles user administration requests
type UserHandler struct {
	users UserLister
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(users UserLister) *UserHandler {
	return &UserHandler{users: users}
}

// UserListItem represents a user in the admin listing
type UserListItem struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	Name      string `json:"name"`
	RoleID    string `json:"role_id"`
	CreatedAt string `json:"created_at"`
}

// ListUsersResponse represents a page of users
type ListUsersResponse struct {
	Users []*UserListItem `json:"users"`
	Count int             `json:"count"`
}

// ListUsers returns a page of registered users. Route-level guards
// already require the users:manage permission.
func (h *UserHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	limit := parseQueryInt(r, "limit", 50, 1, 200)
	offset := parseQueryInt(r, "offset", 0, 0, 1<<30)

	users, err := h.users.List(r.Context(), limit, offset)
	if err != nil {
		pkghttp.WriteInternalError(w, "Failed to list users")
		return
	}

	items := make([]*UserListItem, 0, len(users))
	for _, u := range users {
		items = append(items, &UserListItem{
			ID:        u.ID,
			Email:     u.Email,
			Name:      u.Name,
			RoleID:    u.RoleID,
			CreatedAt: u.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
		})
	}

	pkghttp.WriteJSON(w, http.StatusOK, ListUsersResponse{
		Users: items,
		Count: len(items),
	})
}

func parseQueryInt(r *http.Request, key string, def, min, max int) int {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < min || v > max {
		return def
	}
	return v
}
