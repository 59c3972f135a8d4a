package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/horologe/storefront/internal/domain/shared"
)

// BaseModel provides common persistence fields for all models.
// It maps to the domain's BaseEntity.
type BaseModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	CreatedAt time.Time `gorm:"not null;index"`
	UpdatedAt time.Time `gorm:"not null"`
}

// ToDomain converts BaseModel to domain BaseEntity
func (m *BaseModel) ToDomain() shared.BaseEntity {
	return shared.BaseEntity{
		ID:        m.ID,
		CreatedAt: m.CreatedAt.UTC(),
		UpdatedAt: m.UpdatedAt.UTC(),
	}
}

// FromDomainBaseEntity populates BaseModel from domain BaseEntity
func (m *BaseModel) FromDomainBaseEntity(e shared.BaseEntity) {
	m.ID = e.ID
	m.CreatedAt = e.CreatedAt
	m.UpdatedAt = e.UpdatedAt
}

// All returns every model managed by the application, in dependency order.
// Used by AutoMigrate for SQLite and tests; Postgres uses SQL migrations.
func All() []any {
	return []any{
		&CategoryModel{},
		&ProductModel{},
		&ReviewModel{},
		&OrderModel{},
		&OrderItemModel{},
		&UserModel{},
		&StoreSettingsModel{},
		&LandingSettingsModel{},
	}
}
