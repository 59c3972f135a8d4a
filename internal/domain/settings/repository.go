package settings

import "context"

// Repository persists the two settings singletons. Find methods return
// shared.ErrNotFound when the record has not been created yet.
type Repository interface {
	FindStore(ctx context.Context) (*StoreSettings, error)
	SaveStore(ctx context.Context, s *StoreSettings) error
	// CreateStoreIfAbsent inserts s unless a record exists and reports
	// whether it inserted
	CreateStoreIfAbsent(ctx context.Context, s *StoreSettings) (bool, error)

	FindLanding(ctx context.Context) (*LandingPageSettings, error)
	SaveLanding(ctx context.Context, l *LandingPageSettings) error
	CreateLandingIfAbsent(ctx context.Context, l *LandingPageSettings) (bool, error)
}
