package identity

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/horologe/storefront/internal/domain/identity"
	"github.com/horologe/storefront/internal/domain/shared"
	"github.com/horologe/storefront/internal/infrastructure/auth"
	"github.com/horologe/storefront/internal/infrastructure/config"
	"github.com/horologe/storefront/internal/infrastructure/logger"
)

var errInvalidCredentials = shared.NewDomainError(shared.CodeUnauthorized, "Invalid email or password")

// AuthService handles login, session introspection and logout
type AuthService struct {
	userRepo   identity.UserRepository
	jwtService *auth.JWTService
	revocation auth.RevocationList
	logger     *zap.Logger
}

// NewAuthService creates a new authentication service. revocation may be
// nil, in which case Logout only logs.
func NewAuthService(
	userRepo identity.UserRepository,
	jwtService *auth.JWTService,
	revocation auth.RevocationList,
	logger *zap.Logger,
) *AuthService {
	return &AuthService{
		userRepo:   userRepo,
		jwtService: jwtService,
		revocation: revocation,
		logger:     logger,
	}
}

// Login authenticates by email and password and issues an access token
func (s *AuthService) Login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	log := logger.Enrich(ctx, s.logger)
	email := strings.ToLower(strings.TrimSpace(req.Email))

	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			log.Warn("Login attempt for unknown email", zap.String("email", email))
			return nil, errInvalidCredentials
		}
		return nil, err
	}

	if !user.VerifyPassword(req.Password) {
		log.Warn("Invalid password attempt", zap.String("user_id", user.ID.String()))
		return nil, errInvalidCredentials
	}

	token, err := s.jwtService.Issue(user.ID, user.Email, string(user.Role))
	if err != nil {
		log.Error("Failed to issue access token", zap.Error(err))
		return nil, shared.WrapDomainError("TOKEN_ERROR", "Failed to generate authentication token", err)
	}

	user.RecordLogin()
	if err := s.userRepo.Save(ctx, user); err != nil {
		// Don't fail the login - just log the error
		log.Error("Failed to update user after successful login", zap.Error(err))
	}

	log.Info("User logged in successfully",
		zap.String("user_id", user.ID.String()),
		zap.String("role", string(user.Role)),
	)

	return &LoginResponse{
		AccessToken: token.AccessToken,
		TokenType:   token.TokenType,
		ExpiresAt:   token.ExpiresAt,
		User:        toUserResponse(user),
	}, nil
}

// Me returns the account behind a validated session
func (s *AuthService) Me(ctx context.Context, userID uuid.UUID) (*UserResponse, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.ErrUnauthorized
		}
		return nil, err
	}
	resp := toUserResponse(user)
	return &resp, nil
}

// Logout revokes the token until its natural expiry
func (s *AuthService) Logout(ctx context.Context, claims *auth.Claims) error {
	if claims == nil || claims.ID == "" {
		return shared.ErrUnauthorized
	}
	if s.revocation == nil {
		logger.Enrich(ctx, s.logger).Debug("Token revocation disabled, logout is client-side only")
		return nil
	}
	if err := s.revocation.Revoke(ctx, claims.ID, claims.RemainingTTL()); err != nil {
		return shared.NewPersistenceError("revoke token", err)
	}
	logger.Enrich(ctx, s.logger).Info("User logged out", zap.String("user_id", claims.UserID))
	return nil
}

// BootstrapAdmin creates the configured administrator when no account with
// that email exists. An empty email or password skips bootstrapping.
func (s *AuthService) BootstrapAdmin(ctx context.Context, cfg config.AdminConfig) error {
	if cfg.Email == "" || cfg.Password == "" {
		s.logger.Warn("Admin bootstrap skipped: admin.email or admin.password not set")
		return nil
	}

	existing, err := s.userRepo.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(cfg.Email)))
	if err == nil {
		if !existing.IsAdmin() {
			s.logger.Warn("Bootstrap email belongs to a non-admin account", zap.String("email", existing.Email))
		}
		return nil
	}
	if !errors.Is(err, shared.ErrNotFound) {
		return err
	}

	admin, err := identity.NewUser(cfg.Email, cfg.Name, cfg.Password, identity.RoleAdmin)
	if err != nil {
		return err
	}
	if err := s.userRepo.Save(ctx, admin); err != nil {
		return err
	}
	s.logger.Info("Bootstrapped admin account", zap.String("email", admin.Email))
	return nil
}
