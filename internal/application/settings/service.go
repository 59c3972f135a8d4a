package settings

import (
	"context"
	"errors"

	"github.com/horologe/storefront/internal/domain/settings"
	"github.com/horologe/storefront/internal/domain/shared"
	"github.com/horologe/storefront/internal/infrastructure/logger"
	"go.uber.org/zap"
)

// PublicCacheKey is the cache entry of the public store settings
const PublicCacheKey = "storefront:settings:public"

// PublicCache caches the public settings projection
type PublicCache interface {
	Get(ctx context.Context, key string) (*settings.PublicSettings, bool, error)
	Set(ctx context.Context, key string, v *settings.PublicSettings) error
	Delete(ctx context.Context, keys ...string) error
}

// Service manages the store and landing page singletons
type Service struct {
	repo   settings.Repository
	cache  PublicCache
	logger *zap.Logger
}

// NewService creates a new settings Service. cache may be nil.
func NewService(repo settings.Repository, cache PublicCache, logger *zap.Logger) *Service {
	return &Service{
		repo:   repo,
		cache:  cache,
		logger: logger,
	}
}

// EnsureDefaults creates both singletons when absent. It is idempotent and
// runs once at startup so reads never race to create them.
func (s *Service) EnsureDefaults(ctx context.Context) error {
	created, err := s.repo.CreateStoreIfAbsent(ctx, settings.DefaultStoreSettings())
	if err != nil {
		return err
	}
	if created {
		s.logger.Info("Created default store settings")
	}

	created, err = s.repo.CreateLandingIfAbsent(ctx, settings.DefaultLandingPageSettings())
	if err != nil {
		return err
	}
	if created {
		s.logger.Info("Created default landing page settings")
	}
	return nil
}

// FindStore returns the store singleton, creating it if it is missing
func (s *Service) FindStore(ctx context.Context) (*settings.StoreSettings, error) {
	store, err := s.repo.FindStore(ctx)
	if errors.Is(err, shared.ErrNotFound) {
		logger.Enrich(ctx, s.logger).Warn("Store settings missing, recreating defaults")
		if _, err := s.repo.CreateStoreIfAbsent(ctx, settings.DefaultStoreSettings()); err != nil {
			return nil, err
		}
		return s.repo.FindStore(ctx)
	}
	return store, err
}

func (s *Service) findLanding(ctx context.Context) (*settings.LandingPageSettings, error) {
	landing, err := s.repo.FindLanding(ctx)
	if errors.Is(err, shared.ErrNotFound) {
		logger.Enrich(ctx, s.logger).Warn("Landing settings missing, recreating defaults")
		if _, err := s.repo.CreateLandingIfAbsent(ctx, settings.DefaultLandingPageSettings()); err != nil {
			return nil, err
		}
		return s.repo.FindLanding(ctx)
	}
	return landing, err
}

// GetStore returns the full store settings
func (s *Service) GetStore(ctx context.Context) (*StoreResponse, error) {
	store, err := s.FindStore(ctx)
	if err != nil {
		return nil, err
	}
	return toStoreResponse(store), nil
}

// UpdateStore merges the submitted fields into the store settings. Last
// writer wins.
func (s *Service) UpdateStore(ctx context.Context, req UpdateStoreRequest) (*StoreResponse, error) {
	store, err := s.FindStore(ctx)
	if err != nil {
		return nil, err
	}
	if err := store.Apply(req.ToPatch()); err != nil {
		return nil, err
	}
	if err := s.repo.SaveStore(ctx, store); err != nil {
		return nil, err
	}
	s.invalidatePublic(ctx)

	logger.Enrich(ctx, s.logger).Info("Store settings updated")
	return toStoreResponse(store), nil
}

// GetLanding returns the landing page curation
func (s *Service) GetLanding(ctx context.Context) (*LandingResponse, error) {
	landing, err := s.findLanding(ctx)
	if err != nil {
		return nil, err
	}
	return toLandingResponse(landing), nil
}

// UpdateLanding merges the submitted fields into the landing curation
func (s *Service) UpdateLanding(ctx context.Context, req UpdateLandingRequest) (*LandingResponse, error) {
	landing, err := s.findLanding(ctx)
	if err != nil {
		return nil, err
	}
	if err := landing.Apply(req.ToPatch()); err != nil {
		return nil, err
	}
	if err := s.repo.SaveLanding(ctx, landing); err != nil {
		return nil, err
	}

	logger.Enrich(ctx, s.logger).Info("Landing page settings updated")
	return toLandingResponse(landing), nil
}

// GetPublic returns the public subset of the store settings. Cache errors
// fall through to the database.
func (s *Service) GetPublic(ctx context.Context) (*settings.PublicSettings, error) {
	if s.cache != nil {
		cached, found, err := s.cache.Get(ctx, PublicCacheKey)
		if err != nil {
			logger.Enrich(ctx, s.logger).Warn("Public settings cache read failed", zap.Error(err))
		} else if found {
			return cached, nil
		}
	}

	store, err := s.FindStore(ctx)
	if err != nil {
		return nil, err
	}
	public := store.Public()

	if s.cache != nil {
		if err := s.cache.Set(ctx, PublicCacheKey, &public); err != nil {
			logger.Enrich(ctx, s.logger).Warn("Public settings cache write failed", zap.Error(err))
		}
	}
	return &public, nil
}

func (s *Service) invalidatePublic(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, PublicCacheKey); err != nil {
		logger.Enrich(ctx, s.logger).Warn("Public settings cache invalidation failed", zap.Error(err))
	}
}
