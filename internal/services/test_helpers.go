package services

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/smoraleda/crmcore/internal/models"
	pkglogger "github.com/smoraleda/crmcore/pkg/logger"
)

// MockUserRepository implements UserRepository for testing
type MockUserRepository struct {
	GetByIDFunc    func(ctx context.Context, id string) (*models.User, error)
	GetByEmailFunc func(ctx context.Context, email string) (*models.User, error)
	CreateFunc     func(ctx context.Context, user *models.User) (*models.User, error)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, models.ErrNotFound
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	if m.GetByEmailFunc != nil {
		return m.GetByEmailFunc(ctx, email)
	}
	return nil, models.ErrNotFound
}

func (m *MockUserRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, user)
	}
	return nil, models.ErrInternalServer
}

// MockRoleRepository implements RoleRepository for testing
type MockRoleRepository struct {
	GetByIDFunc   func(ctx context.Context, id string) (*models.Role, error)
	GetByNameFunc func(ctx context.Context, name string) (*models.Role, error)
}

func (m *MockRoleRepository) GetByID(ctx context.Context, id string) (*models.Role, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, models.ErrNotFound
}

func (m *MockRoleRepository) GetByName(ctx context.Context, name string) (*models.Role, error) {
	if m.GetByNameFunc != nil {
		return m.GetByNameFunc(ctx, name)
	}
	return nil, models.ErrNotFound
}

// MockAttemptStore implements AttemptStore for testing
type MockAttemptStore struct {
	GetFunc          func(ctx context.Context, identity string) (*models.LoginAttemptRecord, error)
	AddFailureFunc   func(ctx context.Context, identity string, windowFloor time.Time, maxFailures int, blockFor time.Duration) (*models.LoginAttemptRecord, error)
	ResetFunc        func(ctx context.Context, identity string) error
	PurgeExpiredFunc func(ctx context.Context, cutoff time.Time) (int64, error)
}

func (m *MockAttemptStore) Get(ctx context.Context, identity string) (*models.LoginAttemptRecord, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, identity)
	}
	return nil, nil
}

func (m *MockAttemptStore) AddFailure(ctx context.Context, identity string, windowFloor time.Time, maxFailures int, blockFor time.Duration) (*models.LoginAttemptRecord, error) {
	if m.AddFailureFunc != nil {
		return m.AddFailureFunc(ctx, identity, windowFloor, maxFailures, blockFor)
	}
	return &models.LoginAttemptRecord{Identity: identity, FailureCount: 1, WindowStart: time.Now()}, nil
}

func (m *MockAttemptStore) Reset(ctx context.Context, identity string) error {
	if m.ResetFunc != nil {
		return m.ResetFunc(ctx, identity)
	}
	return nil
}

func (m *MockAttemptStore) PurgeExpired(ctx context.Context, cutoff time.Time) (int64, error) {
	if m.PurgeExpiredFunc != nil {
		return m.PurgeExpiredFunc(ctx, cutoff)
	}
	return 0, nil
}

// MockWelcomeNotifier implements WelcomeNotifier for testing
type MockWelcomeNotifier struct {
	SendWelcomeEmailFunc func(ctx context.Context, email, name string) error
}

func (m *MockWelcomeNotifier) SendWelcomeEmail(ctx context.Context, email, name string) error {
	if m.SendWelcomeEmailFunc != nil {
		return m.SendWelcomeEmailFunc(ctx, email, name)
	}
	return nil
}

// NewTestLogger returns a logger that discards output
func NewTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// NewTestAuditLogger returns an audit logger that discards output
func NewTestAuditLogger() *pkglogger.AuditLogger {
	return pkglogger.NewAuditLogger(NewTestLogger())
}

// NewTestUser constructs a user for tests
func NewTestUser(id, email, name, roleID string) *models.User {
	now := time.Now()
	return &models.User{
		ID:        id,
		Email:     email,
		Name:      name,
		RoleID:    roleID,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// NewTestRole constructs a role for tests
func NewTestRole(id, name string, permissions []string) *models.Role {
	return &models.Role{
		ID:          id,
		Name:        name,
		Permissions: permissions,
		CreatedAt:   time.Now(),
	}
}
