package auth

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/horologe/storefront/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService() *JWTService {
	return NewJWTService(config.JWTConfig{
		Secret:                "test-secret-key-that-is-long-enough",
		AccessTokenExpiration: time.Hour,
		Issuer:                "storefront-test",
	})
}

func TestJWTService_IssueAndValidate(t *testing.T) {
	svc := newTestService()
	userID := uuid.New()

	token, err := svc.Issue(userID, "admin@example.com", "ADMIN")
	require.NoError(t, err)
	assert.Equal(t, "Bearer", token.TokenType)
	assert.NotEmpty(t, token.AccessToken)
	assert.WithinDuration(t, time.Now().Add(time.Hour), token.ExpiresAt, 5*time.Second)

	claims, err := svc.Validate(token.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, userID.String(), claims.UserID)
	assert.Equal(t, "admin@example.com", claims.Email)
	assert.Equal(t, "ADMIN", claims.Role)
	assert.NotEmpty(t, claims.ID)

	parsed, err := claims.UserUUID()
	require.NoError(t, err)
	assert.Equal(t, userID, parsed)
	assert.Greater(t, claims.RemainingTTL(), 59*time.Minute)
}

func TestJWTService_Validate_Expired(t *testing.T) {
	svc := newTestService()
	svc.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	token, err := svc.Issue(uuid.New(), "a@example.com", "ADMIN")
	require.NoError(t, err)

	svc.now = time.Now
	_, err = svc.Validate(token.AccessToken)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestJWTService_Validate_NotYetValid(t *testing.T) {
	svc := newTestService()
	svc.now = func() time.Time { return time.Now().Add(time.Hour) }
	token, err := svc.Issue(uuid.New(), "a@example.com", "ADMIN")
	require.NoError(t, err)

	svc.now = time.Now
	_, err = svc.Validate(token.AccessToken)
	assert.ErrorIs(t, err, ErrTokenNotYetValid)
}

func TestJWTService_Validate_WrongSecret(t *testing.T) {
	token, err := newTestService().Issue(uuid.New(), "a@example.com", "ADMIN")
	require.NoError(t, err)

	other := NewJWTService(config.JWTConfig{
		Secret:                "a-completely-different-secret-value",
		AccessTokenExpiration: time.Hour,
		Issuer:                "storefront-test",
	})
	_, err = other.Validate(token.AccessToken)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestJWTService_Validate_WrongIssuer(t *testing.T) {
	token, err := newTestService().Issue(uuid.New(), "a@example.com", "ADMIN")
	require.NoError(t, err)

	other := NewJWTService(config.JWTConfig{
		Secret:                "test-secret-key-that-is-long-enough",
		AccessTokenExpiration: time.Hour,
		Issuer:                "someone-else",
	})
	_, err = other.Validate(token.AccessToken)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestJWTService_Validate_RejectsNoneAlgorithm(t *testing.T) {
	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "storefront-test",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
		UserID: uuid.NewString(),
		Role:   "ADMIN",
	}
	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = newTestService().Validate(unsigned)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestJWTService_Validate_MissingUserID(t *testing.T) {
	svc := newTestService()
	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "storefront-test",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
		Role: "ADMIN",
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(svc.secret)
	require.NoError(t, err)

	_, err = svc.Validate(signed)
	assert.ErrorIs(t, err, ErrMissingUserID)
}

func TestJWTService_Validate_Garbage(t *testing.T) {
	_, err := newTestService().Validate("not.a.token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestMemoryRevocationList(t *testing.T) {
	ctx := context.Background()
	list := NewMemoryRevocationList()
	now := time.Now()
	list.now = func() time.Time { return now }

	require.NoError(t, list.Revoke(ctx, "jti-1", time.Minute))
	require.NoError(t, list.Revoke(ctx, "jti-ignored", 0))

	revoked, err := list.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.True(t, revoked)

	revoked, _ = list.IsRevoked(ctx, "jti-ignored")
	assert.False(t, revoked)

	now = now.Add(2 * time.Minute)
	revoked, _ = list.IsRevoked(ctx, "jti-1")
	assert.False(t, revoked)
	assert.Empty(t, list.entries)
}
