package persistence

import (
	"context"

	"github.com/horologe/storefront/internal/domain/settings"
	"github.com/horologe/storefront/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormSettingsRepository implements settings.Repository using GORM. Both
// tables hold at most one row, keyed by settings.SingletonID.
type GormSettingsRepository struct {
	db *gorm.DB
}

// NewGormSettingsRepository creates a new GormSettingsRepository
func NewGormSettingsRepository(db *gorm.DB) *GormSettingsRepository {
	return &GormSettingsRepository{db: db}
}

// FindStore loads the store settings record
func (r *GormSettingsRepository) FindStore(ctx context.Context) (*settings.StoreSettings, error) {
	var m models.StoreSettingsModel
	if err := r.db.WithContext(ctx).First(&m, "id = ?", settings.SingletonID).Error; err != nil {
		return nil, translateError(err, "load store settings", "Store settings", settings.SingletonID)
	}
	return m.ToDomain(), nil
}

// SaveStore upserts the store settings record
func (r *GormSettingsRepository) SaveStore(ctx context.Context, s *settings.StoreSettings) error {
	err := r.db.WithContext(ctx).Save(models.StoreSettingsModelFromDomain(s)).Error
	return translateError(err, "save store settings", "Store settings", settings.SingletonID)
}

// CreateStoreIfAbsent inserts s unless a record exists
func (r *GormSettingsRepository) CreateStoreIfAbsent(ctx context.Context, s *settings.StoreSettings) (bool, error) {
	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "id"}}, DoNothing: true}).
		Create(models.StoreSettingsModelFromDomain(s))
	if result.Error != nil {
		return false, translateError(result.Error, "create store settings", "Store settings", settings.SingletonID)
	}
	return result.RowsAffected > 0, nil
}

// FindLanding loads the landing page settings record
func (r *GormSettingsRepository) FindLanding(ctx context.Context) (*settings.LandingPageSettings, error) {
	var m models.LandingSettingsModel
	if err := r.db.WithContext(ctx).First(&m, "id = ?", settings.SingletonID).Error; err != nil {
		return nil, translateError(err, "load landing settings", "Landing settings", settings.SingletonID)
	}
	return m.ToDomain(), nil
}

// SaveLanding upserts the landing page settings record
func (r *GormSettingsRepository) SaveLanding(ctx context.Context, l *settings.LandingPageSettings) error {
	err := r.db.WithContext(ctx).Save(models.LandingSettingsModelFromDomain(l)).Error
	return translateError(err, "save landing settings", "Landing settings", settings.SingletonID)
}

// CreateLandingIfAbsent inserts l unless a record exists
func (r *GormSettingsRepository) CreateLandingIfAbsent(ctx context.Context, l *settings.LandingPageSettings) (bool, error) {
	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "id"}}, DoNothing: true}).
		Create(models.LandingSettingsModelFromDomain(l))
	if result.Error != nil {
		return false, translateError(result.Error, "create landing settings", "Landing settings", settings.SingletonID)
	}
	return result.RowsAffected > 0, nil
}
