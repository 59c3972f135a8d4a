package persistence

import (
	"context"
	"testing"

	"github.com/horologe/storefront/internal/domain/identity"
	"github.com/horologe/storefront/internal/domain/settings"
	"github.com/horologe/storefront/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGormSettingsRepository_Store(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	repo := NewGormSettingsRepository(db)

	_, err := repo.FindStore(ctx)
	assert.ErrorIs(t, err, shared.ErrNotFound)

	created, err := repo.CreateStoreIfAbsent(ctx, settings.DefaultStoreSettings())
	require.NoError(t, err)
	assert.True(t, created)

	again := settings.DefaultStoreSettings()
	again.StoreName = "Other"
	created, err = repo.CreateStoreIfAbsent(ctx, again)
	require.NoError(t, err)
	assert.False(t, created, "second call must not overwrite")

	s, err := repo.FindStore(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Horologe", s.StoreName)
	assert.Equal(t, settings.SingletonID, s.ID)

	rate := decimal.RequireFromString("7.5")
	require.NoError(t, s.Apply(settings.StorePatch{ShippingFlatRate: &rate}))
	require.NoError(t, repo.SaveStore(ctx, s))

	s, err = repo.FindStore(ctx)
	require.NoError(t, err)
	assert.Equal(t, "7.50", s.ShippingFlatRate.StringFixed(2))
	assert.Equal(t, "USD", s.Currency)
}

func TestGormSettingsRepository_Landing(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	repo := NewGormSettingsRepository(db)

	created, err := repo.CreateLandingIfAbsent(ctx, settings.DefaultLandingPageSettings())
	require.NoError(t, err)
	assert.True(t, created)

	l, err := repo.FindLanding(ctx)
	require.NoError(t, err)
	assert.Empty(t, l.HeroProductIDs)
	assert.NotNil(t, l.CategoryImages)

	hero := []string{"a", "b"}
	images := map[string]string{"cat-1": "/img/cat.jpg"}
	require.NoError(t, l.Apply(settings.LandingPatch{HeroProductIDs: &hero, CategoryImages: &images}))
	require.NoError(t, repo.SaveLanding(ctx, l))

	l, err = repo.FindLanding(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, l.HeroProductIDs)
	assert.Equal(t, "/img/cat.jpg", l.CategoryImages["cat-1"])
}

func TestGormUserRepository(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	repo := NewGormUserRepository(db)

	u, err := identity.NewUser("admin@example.com", "Admin", "s3cretpass", identity.RoleAdmin)
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, u))

	found, err := repo.FindByEmail(ctx, " ADMIN@example.com ")
	require.NoError(t, err)
	assert.Equal(t, u.ID, found.ID)
	assert.True(t, found.IsAdmin())
	assert.True(t, found.VerifyPassword("s3cretpass"))

	found.RecordLogin()
	require.NoError(t, repo.Save(ctx, found))
	reloaded, err := repo.FindByID(ctx, u.ID)
	require.NoError(t, err)
	assert.NotNil(t, reloaded.LastLoginAt)

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	_, err = repo.FindByEmail(ctx, "nobody@example.com")
	assert.ErrorIs(t, err, shared.ErrNotFound)
}
