package handlers

import (
	"context"

	"github.com/smoraleda/crmcore/internal/models"
	"github.com/smoraleda/crmcore/internal/services"
)

// MockAuthService implements AuthServiceInterface for testing
type MockAuthService struct {
	RegisterFunc func(ctx context.Context, name, email, password, roleName, ipAddress string) (*services.RegisterResponse, error)
	LoginFunc    func(ctx context.Context, email, password, ipAddress string) (*services.AuthResponse, error)
	MeFunc       func(ctx context.Context, userID string) (*services.MeResponse, error)
}

func (m *MockAuthService) Register(ctx context.Context, name, email, password, roleName, ipAddress string) (*services.RegisterResponse, error) {
	if m.RegisterFunc != nil {
		return m.RegisterFunc(ctx, name, email, password, roleName, ipAddress)
	}
	return nil, models.ErrInternalServer
}

func (m *MockAuthService) Login(ctx context.Context, email, password, ipAddress string) (*services.AuthResponse, error) {
	if m.LoginFunc != nil {
		return m.LoginFunc(ctx, email, password, ipAddress)
	}
	return nil, models.ErrInternalServer
}

func (m *MockAuthService) Me(ctx context.Context, userID string) (*services.MeResponse, error) {
	if m.MeFunc != nil {
		return m.MeFunc(ctx, userID)
	}
	return nil, models.ErrInternalServer
}

// MockUserLister implements UserLister for testing
type MockUserLister struct {
	ListFunc func(ctx context.Context, limit, offset int) ([]*models.User, error)
}

func (m *MockUserLister) List(ctx context.Context, limit, offset int) ([]*models.User, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, limit, offset)
	}
	return []*models.User{}, nil
}
