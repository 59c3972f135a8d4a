package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/horologe/storefront/internal/infrastructure/auth"
	"github.com/horologe/storefront/internal/infrastructure/config"
	"github.com/horologe/storefront/internal/interfaces/http/dto"
)

func newTestJWTService() *auth.JWTService {
	return auth.NewJWTService(config.JWTConfig{
		Secret:                "test-secret-key-at-least-32-chars",
		AccessTokenExpiration: 15 * time.Minute,
		Issuer:                "test-issuer",
	})
}

func issue(t *testing.T, svc *auth.JWTService, role string) string {
	t.Helper()
	token, err := svc.Issue(uuid.New(), "someone@example.com", role)
	require.NoError(t, err)
	return token.AccessToken
}

type failingRevocation struct{}

func (failingRevocation) Revoke(context.Context, string, time.Duration) error { return nil }
func (failingRevocation) IsRevoked(context.Context, string) (bool, error) {
	return false, errors.New("redis down")
}

func adminRouter(cfg AuthConfig) *gin.Engine {
	router := gin.New()
	router.Use(RequestID())
	router.GET("/admin", RequireAdmin(cfg), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user": GetUserID(c), "role": GetClaims(c).Role})
	})
	router.GET("/me", Authenticate(cfg), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"role": GetClaims(c).Role})
	})
	return router
}

func TestRequireAdmin(t *testing.T) {
	jwtService := newTestJWTService()
	router := adminRouter(AuthConfig{JWTService: jwtService})

	tests := []struct {
		name       string
		header     string
		wantStatus int
	}{
		{"admin token", "Bearer " + issue(t, jwtService, "ADMIN"), http.StatusOK},
		{"customer token", "Bearer " + issue(t, jwtService, "CUSTOMER"), http.StatusUnauthorized},
		{"role is case sensitive", "Bearer " + issue(t, jwtService, "admin"), http.StatusUnauthorized},
		{"missing header", "", http.StatusUnauthorized},
		{"wrong scheme", "Basic abc", http.StatusUnauthorized},
		{"garbage token", "Bearer not-a-jwt", http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/admin", nil)
			if tt.header != "" {
				req.Header.Set(AuthHeaderKey, tt.header)
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
			if tt.wantStatus == http.StatusUnauthorized {
				var body dto.ErrorResponse
				require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
				assert.False(t, body.Success)
				assert.Equal(t, dto.ErrCodeUnauthorized, body.Error.Code)
				assert.NotEmpty(t, body.Error.RequestID)
			}
		})
	}
}

func TestAuthenticate_AnyRole(t *testing.T) {
	jwtService := newTestJWTService()
	router := adminRouter(AuthConfig{JWTService: jwtService})

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set(AuthHeaderKey, "Bearer "+issue(t, jwtService, "CUSTOMER"))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"role":"CUSTOMER"}`, w.Body.String())
}

func TestRequireAdmin_RevokedToken(t *testing.T) {
	jwtService := newTestJWTService()
	revocation := auth.NewMemoryRevocationList()
	router := adminRouter(AuthConfig{JWTService: jwtService, Revocation: revocation})

	token := issue(t, jwtService, "ADMIN")
	claims, err := jwtService.Validate(token)
	require.NoError(t, err)
	require.NoError(t, revocation.Revoke(context.Background(), claims.ID, time.Minute))

	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.Header.Set(AuthHeaderKey, "Bearer "+token)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Token has been revoked")
}

func TestRequireAdmin_RevocationOutageFailsOpen(t *testing.T) {
	jwtService := newTestJWTService()
	router := adminRouter(AuthConfig{JWTService: jwtService, Revocation: failingRevocation{}})

	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.Header.Set(AuthHeaderKey, "Bearer "+issue(t, jwtService, "ADMIN"))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRequireAdmin_ExpiredToken(t *testing.T) {
	expired := auth.NewJWTService(config.JWTConfig{
		Secret:                "test-secret-key-at-least-32-chars",
		AccessTokenExpiration: -time.Minute,
		Issuer:                "test-issuer",
	})
	router := adminRouter(AuthConfig{JWTService: newTestJWTService()})

	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.Header.Set(AuthHeaderKey, "Bearer "+issue(t, expired, "ADMIN"))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Token has expired")
}
