package middleware

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/horologe/storefront/internal/domain/identity"
	"github.com/horologe/storefront/internal/infrastructure/auth"
	"github.com/horologe/storefront/internal/infrastructure/logger"
	"github.com/horologe/storefront/internal/interfaces/http/dto"
)

// Auth context keys
const (
	ClaimsKey     = "auth_claims"
	UserIDKey     = "auth_user_id"
	AuthHeaderKey = "Authorization"
	BearerPrefix  = "Bearer "
)

// AuthConfig holds configuration for the authentication middleware
type AuthConfig struct {
	// JWTService is required for token validation
	JWTService *auth.JWTService
	// Revocation is optional; when set, logged-out tokens are rejected
	Revocation auth.RevocationList
	Logger     *zap.Logger
}

// Authenticate requires a valid bearer token of any role
func Authenticate(cfg AuthConfig) gin.HandlerFunc {
	return authenticate(cfg, false)
}

// RequireAdmin requires a valid bearer token whose role is exactly ADMIN.
// Every failure, including a valid non-admin token, answers 401.
func RequireAdmin(cfg AuthConfig) gin.HandlerFunc {
	return authenticate(cfg, true)
}

func authenticate(cfg AuthConfig, adminOnly bool) gin.HandlerFunc {
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}

	return func(c *gin.Context) {
		claims, err := validateRequest(c, cfg)
		if err != nil {
			log.Warn("Authentication failed",
				zap.Error(err),
				zap.String("path", c.Request.URL.Path),
				zap.String("request_id", GetRequestID(c)),
			)
			abortWithError(c, dto.ErrCodeUnauthorized, authErrorMessage(err))
			return
		}

		if adminOnly && claims.Role != string(identity.RoleAdmin) {
			log.Warn("Admin route requested without ADMIN role",
				zap.String("user_id", claims.UserID),
				zap.String("role", claims.Role),
				zap.String("path", c.Request.URL.Path),
			)
			abortWithError(c, dto.ErrCodeUnauthorized, "Admin access required")
			return
		}

		c.Set(ClaimsKey, claims)
		c.Set(UserIDKey, claims.UserID)
		c.Request = c.Request.WithContext(logger.WithUserID(c.Request.Context(), claims.UserID))
		c.Next()
	}
}

// validateRequest extracts and validates the bearer token
func validateRequest(c *gin.Context, cfg AuthConfig) (*auth.Claims, error) {
	header := c.GetHeader(AuthHeaderKey)
	if header == "" || !strings.HasPrefix(header, BearerPrefix) {
		return nil, auth.ErrInvalidToken
	}
	token := strings.TrimSpace(strings.TrimPrefix(header, BearerPrefix))
	if token == "" {
		return nil, auth.ErrInvalidToken
	}

	claims, err := cfg.JWTService.Validate(token)
	if err != nil {
		return nil, err
	}

	if cfg.Revocation != nil && claims.ID != "" {
		revoked, err := cfg.Revocation.IsRevoked(c.Request.Context(), claims.ID)
		if err != nil {
			// Fail open: a cache outage must not lock admins out
			if cfg.Logger != nil {
				cfg.Logger.Error("Failed to check token revocation", zap.String("jti", claims.ID), zap.Error(err))
			}
		} else if revoked {
			return nil, auth.ErrTokenRevoked
		}
	}
	return claims, nil
}

func authErrorMessage(err error) string {
	switch {
	case errors.Is(err, auth.ErrExpiredToken):
		return "Token has expired"
	case errors.Is(err, auth.ErrTokenRevoked):
		return "Token has been revoked"
	case errors.Is(err, auth.ErrTokenNotYetValid):
		return "Token is not yet valid"
	default:
		return "Authentication required"
	}
}

// GetClaims retrieves the validated claims from gin.Context
func GetClaims(c *gin.Context) *auth.Claims {
	if v, exists := c.Get(ClaimsKey); exists {
		if claims, ok := v.(*auth.Claims); ok {
			return claims
		}
	}
	return nil
}

// GetUserID retrieves the authenticated user ID from gin.Context
func GetUserID(c *gin.Context) string {
	return c.GetString(UserIDKey)
}
