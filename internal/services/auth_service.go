package services

import (
	"context"
	"errors"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/smoraleda/crmcore/internal/auth"
	"github.com/smoraleda/crmcore/internal/models"
	pkgauth "github.com/smoraleda/crmcore/pkg/auth"
	pkglogger "github.com/smoraleda/crmcore/pkg/logger"
)

// opTimeout bounds each storage round-trip so a stalled database fails
// the request instead of hanging it.
const opTimeout = 5 * time.Second

// UserRepository defines the credential-store operations the service needs
type UserRepository interface {
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	Create(ctx context.Context, user *models.User) (*models.User, error)
}

// WelcomeNotifier sends a post-registration notification. Optional.
type WelcomeNotifier interface {
	SendWelcomeEmail(ctx context.Context, email, name string) error
}

// AuthService orchestrates registration, login, and token verification
type AuthService struct {
	users       UserRepository
	roles       *RoleService
	lockout     *LockoutService
	tm          *auth.TokenManager
	timing      *auth.TimingDelay
	notifier    WelcomeNotifier
	logger      *slog.Logger
	auditLogger *pkglogger.AuditLogger
	passwordMin int
}

// NewAuthService creates a new AuthService. notifier may be nil.
func NewAuthService(
	users UserRepository,
	roles *RoleService,
	lockout *LockoutService,
	tm *auth.TokenManager,
	timing *auth.TimingDelay,
	notifier WelcomeNotifier,
	logger *slog.Logger,
	auditLogger *pkglogger.AuditLogger,
	passwordMin int,
) *AuthService {
	return &AuthService{
		users:       users,
		roles:       roles,
		lockout:     lockout,
		tm:          tm,
		timing:      timing,
		notifier:    notifier,
		logger:      logger,
		auditLogger: auditLogger,
		passwordMin: passwordMin,
	}
}

// UserResponse is the sanitized user shape returned to clients.
// The password hash never appears here.
type UserResponse struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	Name      string `json:"name"`
	RoleID    string `json:"role_id"`
	Role      string `json:"role,omitempty"`
	CreatedAt string `json:"created_at"`
}

// AuthResponse is returned from login
type AuthResponse struct {
	Token string        `json:"token"`
	User  *UserResponse `json:"user"`
}

// RegisterResponse is returned from registration
type RegisterResponse struct {
	Token            string        `json:"token"`
	User             *UserResponse `json:"user"`
	PasswordStrength string        `json:"password_strength"`
}

// MeResponse is returned from the identity endpoint
type MeResponse struct {
	User        *UserResponse `json:"user"`
	Permissions []string      `json:"permissions"`
}

// Register creates a new account. Email and password are validated
// before anything touches storage; the unique index on lower(email) is
// the final defense against a concurrent duplicate registration.
func (s *AuthService) Register(ctx context.Context, name, email, password, roleName, ipAddress string) (*RegisterResponse, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	name = strings.TrimSpace(name)

	if name == "" {
		return nil, &models.ValidationError{Message: "name is required"}
	}

	if err := pkgauth.ValidateEmail(email); err != nil {
		return nil, &models.ValidationError{Message: err.Error()}
	}

	evaluation := pkgauth.EvaluatePassword(password, s.passwordMin)
	if !evaluation.Acceptable {
		return nil, &models.ValidationError{Message: evaluation.Reason}
	}

	role, err := s.roles.GetByName(ctx, roleName)
	if err != nil {
		if errors.Is(err, models.ErrRoleNotFound) {
			return nil, models.ErrRoleNotFound
		}
		s.logger.Error("failed to look up role", slog.String("role", roleName), slog.Any("error", err))
		return nil, models.ErrStorageUnavailable
	}

	lookupCtx, cancel := context.WithTimeout(ctx, opTimeout)
	_, err = s.users.GetByEmail(lookupCtx, email)
	cancel()
	if err == nil {
		s.logger.Info("registration rejected: email already in use")
		return nil, models.ErrDuplicateEmail
	}
	if !errors.Is(err, models.ErrNotFound) {
		s.logger.Error("failed to check existing email", slog.Any("error", err))
		return nil, models.ErrStorageUnavailable
	}

	hashedPassword, err := pkgauth.HashPassword(password)
	if err != nil {
		s.logger.Error("failed to hash password", slog.Any("error", err))
		return nil, models.ErrInternalServer
	}

	user := &models.User{
		Email:        email,
		PasswordHash: hashedPassword,
		Name:         name,
		RoleID:       role.ID,
	}

	createCtx, cancel := context.WithTimeout(ctx, opTimeout)
	createdUser, err := s.users.Create(createCtx, user)
	cancel()
	if err != nil {
		if errors.Is(err, models.ErrDuplicateEmail) {
			// Lost the race against a concurrent registration
			return nil, models.ErrDuplicateEmail
		}
		s.logger.Error("failed to create user", slog.Any("error", err))
		return nil, models.ErrStorageUnavailable
	}

	token, err := s.tm.Issue(createdUser.ID, createdUser.RoleID)
	if err != nil {
		s.logger.Error("failed to issue token", slog.String("user_id", createdUser.ID), slog.Any("error", err))
		return nil, models.ErrInternalServer
	}

	s.logger.Info("user registered", slog.String("user_id", createdUser.ID), slog.String("role", role.Name))
	s.auditLogger.LogAuthEvent(pkglogger.AuditEvent{
		EventType: "user_registered",
		UserID:    createdUser.ID,
		Identity:  email,
		IPAddress: ipAddress,
		Success:   true,
	})

	if s.notifier != nil {
		// Fire and forget: a failed welcome email never fails registration
		go func(email, name string) {
			mailCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := s.notifier.SendWelcomeEmail(mailCtx, email, name); err != nil {
				s.logger.Warn("failed to send welcome email", slog.Any("error", err))
			}
		}(createdUser.Email, createdUser.Name)
	}

	return &RegisterResponse{
		Token:            token,
		User:             s.userToResponse(createdUser, role.Name),
		PasswordStrength: string(evaluation.Strength),
	}, nil
}

// Login authenticates by email and password. The lockout tracker is
// consulted before credentials: a blocked identity is rejected even with
// the correct password, and that rejection does not consume a slot.
// Failures for unknown accounts count exactly like wrong passwords.
func (s *AuthService) Login(ctx context.Context, email, password, ipAddress string) (*AuthResponse, error) {
	start := time.Now()
	email = strings.ToLower(strings.TrimSpace(email))

	if email == "" || password == "" {
		return nil, s.loginFailure(ctx, start, email, ipAddress, "missing_credentials")
	}

	if blocked, blockedUntil := s.lockout.Status(ctx, email); blocked {
		s.auditLogger.LogAuthEvent(pkglogger.AuditEvent{
			EventType:     "login_blocked",
			Identity:      email,
			IPAddress:     ipAddress,
			FailureReason: "lockout_active",
		})
		return nil, &models.TooManyAttemptsError{BlockedUntil: *blockedUntil}
	}

	lookupCtx, cancel := context.WithTimeout(ctx, opTimeout)
	user, err := s.users.GetByEmail(lookupCtx, email)
	cancel()
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, s.loginFailure(ctx, start, email, ipAddress, "unknown_account")
		}
		s.logger.Error("failed to get user by email", slog.Any("error", err))
		return nil, models.ErrStorageUnavailable
	}

	if err := pkgauth.ComparePassword(user.PasswordHash, password); err != nil {
		return nil, s.loginFailure(ctx, start, email, ipAddress, "wrong_password")
	}

	s.lockout.RecordSuccess(ctx, email)

	token, err := s.tm.Issue(user.ID, user.RoleID)
	if err != nil {
		s.logger.Error("failed to issue token", slog.String("user_id", user.ID), slog.Any("error", err))
		return nil, models.ErrInternalServer
	}

	s.logger.Info("user logged in", slog.String("user_id", user.ID))
	s.auditLogger.LogAuthEvent(pkglogger.AuditEvent{
		EventType: "login_success",
		UserID:    user.ID,
		Identity:  email,
		IPAddress: ipAddress,
		Success:   true,
	})

	return &AuthResponse{
		Token: token,
		User:  s.userToResponse(user, ""),
	}, nil
}

// loginFailure counts the attempt, pads response timing, and builds the
// error carrying the remaining attempts. The attempt that exhausts the
// last slot still reports invalid credentials with remaining 0; only
// attempts made while the block is active get the too-many-attempts
// rejection. The reason stays in the audit log; the client sees one
// generic message.
func (s *AuthService) loginFailure(ctx context.Context, start time.Time, email, ipAddress, reason string) error {
	remaining, _ := s.lockout.RecordFailure(ctx, email)

	s.auditLogger.LogAuthEvent(pkglogger.AuditEvent{
		EventType:     "login_failed",
		Identity:      email,
		IPAddress:     ipAddress,
		FailureReason: reason,
		Remaining:     remaining,
	})

	s.timing.WaitFrom(start, false)

	return &models.InvalidCredentialsError{Remaining: remaining}
}

// Me returns the caller's profile and resolved permissions. A token
// whose account no longer exists is treated as unauthorized, not as a
// missing resource.
func (s *AuthService) Me(ctx context.Context, userID string) (*MeResponse, error) {
	getCtx, cancel := context.WithTimeout(ctx, opTimeout)
	user, err := s.users.GetByID(getCtx, userID)
	cancel()
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, models.ErrUnauthorized
		}
		s.logger.Error("failed to get user by id", slog.Any("error", err))
		return nil, models.ErrStorageUnavailable
	}

	set, err := s.roles.Resolve(ctx, user.RoleID)
	if err != nil {
		s.logger.Error("failed to resolve permissions", slog.String("role_id", user.RoleID), slog.Any("error", err))
		return nil, models.ErrStorageUnavailable
	}

	permissions := set.Tokens()
	sort.Strings(permissions)

	return &MeResponse{
		User:        s.userToResponse(user, ""),
		Permissions: permissions,
	}, nil
}

// VerifyRequest validates a bearer token for the route guard.
func (s *AuthService) VerifyRequest(token string) (*models.TokenClaims, error) {
	claims, err := s.tm.Verify(token)
	if err != nil {
		return nil, models.ErrUnauthorized
	}
	return claims, nil
}

func (s *AuthService) userToResponse(user *models.User, roleName string) *UserResponse {
	return &UserResponse{
		ID:        user.ID,
		Email:     user.Email,
		Name:      user.Name,
		RoleID:    user.RoleID,
		Role:      roleName,
		CreatedAt: user.CreatedAt.Format(time.RFC3339),
	}
}
