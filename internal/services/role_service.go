package services

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/smoraleda/crmcore/internal/models"
)

// RoleRepository defines the role lookups the resolver needs
type RoleRepository interface {
	GetByID(ctx context.Context, id string) (*models.Role, error)
	GetByName(ctx context.Context, name string) (*models.Role, error)
}

// RoleService resolves roles to permission sets. Roles are effectively
// static, so resolved sets are cached per process after first lookup.
type RoleService struct {
	repo   RoleRepository
	logger *slog.Logger

	mu    sync.RWMutex
	cache map[string]models.PermissionSet
}

// NewRoleService creates a RoleService over the given repository.
func NewRoleService(repo RoleRepository, logger *slog.Logger) *RoleService {
	return &RoleService{
		repo:   repo,
		logger: logger,
		cache:  make(map[string]models.PermissionSet),
	}
}

// Resolve returns the permission set for a role. An unknown roleID
// yields an empty set: authorization fails closed.
func (s *RoleService) Resolve(ctx context.Context, roleID string) (models.PermissionSet, error) {
	s.mu.RLock()
	cached, ok := s.cache[roleID]
	s.mu.RUnlock()
	if ok {
		return cached, nil
	}

	role, err := s.repo.GetByID(ctx, roleID)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			s.logger.Warn("permission lookup for unknown role", slog.String("role_id", roleID))
			return models.PermissionSet{}, nil
		}
		return nil, err
	}

	set := models.ParsePermissions(role.Permissions)

	s.mu.Lock()
	s.cache[roleID] = set
	s.mu.Unlock()

	return set, nil
}

// Authorize reports whether the role holds the required permission.
func (s *RoleService) Authorize(ctx context.Context, roleID string, required models.Permission) (bool, error) {
	set, err := s.Resolve(ctx, roleID)
	if err != nil {
		return false, err
	}
	return set.Has(required), nil
}

// GetByName looks up a role by its unique name.
func (s *RoleService) GetByName(ctx context.Context, name string) (*models.Role, error) {
	role, err := s.repo.GetByName(ctx, name)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, models.ErrRoleNotFound
		}
		return nil, err
	}
	return role, nil
}
