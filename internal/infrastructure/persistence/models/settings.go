package models

import (
	"time"

	"github.com/horologe/storefront/internal/domain/settings"
	"github.com/shopspring/decimal"
)

// StoreSettingsModel is the persistence model for the store settings singleton.
type StoreSettingsModel struct {
	ID                    string          `gorm:"type:varchar(32);primaryKey"`
	StoreName             string          `gorm:"type:varchar(200);not null"`
	Currency              string          `gorm:"type:varchar(3);not null"`
	CurrencySymbol        string          `gorm:"type:varchar(8);not null"`
	TaxPercentage         decimal.Decimal `gorm:"type:decimal(5,2);not null;default:0"`
	ShippingFlatRate      decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	FreeShippingThreshold decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	MaintenanceMode       bool            `gorm:"not null;default:false"`
	WhatsAppNumber        string          `gorm:"column:whats_app_number;type:varchar(50)"`
	SupportEmail          string          `gorm:"type:varchar(200)"`
	SEOTitle              string          `gorm:"column:seo_title;type:varchar(200)"`
	SEODescription        string          `gorm:"column:seo_description;type:text"`
	OrderPlacedTemplate   string          `gorm:"type:text"`
	StatusChangedTemplate string          `gorm:"type:text"`
	UpdatedAt             time.Time       `gorm:"not null"`
}

// TableName returns the table name for GORM
func (StoreSettingsModel) TableName() string {
	return "store_settings"
}

// ToDomain converts the persistence model to domain StoreSettings
func (m *StoreSettingsModel) ToDomain() *settings.StoreSettings {
	return &settings.StoreSettings{
		ID:                    m.ID,
		StoreName:             m.StoreName,
		Currency:              m.Currency,
		CurrencySymbol:        m.CurrencySymbol,
		TaxPercentage:         m.TaxPercentage,
		ShippingFlatRate:      m.ShippingFlatRate,
		FreeShippingThreshold: m.FreeShippingThreshold,
		MaintenanceMode:       m.MaintenanceMode,
		WhatsAppNumber:        m.WhatsAppNumber,
		SupportEmail:          m.SupportEmail,
		SEOTitle:              m.SEOTitle,
		SEODescription:        m.SEODescription,
		OrderPlacedTemplate:   m.OrderPlacedTemplate,
		StatusChangedTemplate: m.StatusChangedTemplate,
		UpdatedAt:             m.UpdatedAt.UTC(),
	}
}

// StoreSettingsModelFromDomain creates a persistence model; the id is
// always the singleton key
func StoreSettingsModelFromDomain(s *settings.StoreSettings) *StoreSettingsModel {
	return &StoreSettingsModel{
		ID:                    settings.SingletonID,
		StoreName:             s.StoreName,
		Currency:              s.Currency,
		CurrencySymbol:        s.CurrencySymbol,
		TaxPercentage:         s.TaxPercentage,
		ShippingFlatRate:      s.ShippingFlatRate,
		FreeShippingThreshold: s.FreeShippingThreshold,
		MaintenanceMode:       s.MaintenanceMode,
		WhatsAppNumber:        s.WhatsAppNumber,
		SupportEmail:          s.SupportEmail,
		SEOTitle:              s.SEOTitle,
		SEODescription:        s.SEODescription,
		OrderPlacedTemplate:   s.OrderPlacedTemplate,
		StatusChangedTemplate: s.StatusChangedTemplate,
		UpdatedAt:             s.UpdatedAt,
	}
}

// LandingSettingsModel is the persistence model for the landing page singleton.
type LandingSettingsModel struct {
	ID                 string            `gorm:"type:varchar(32);primaryKey"`
	HeroProductIDs     []string          `gorm:"column:hero_product_ids;type:jsonb;serializer:json"`
	FeaturedProductIDs []string          `gorm:"column:featured_product_ids;type:jsonb;serializer:json"`
	CategoryImages     map[string]string `gorm:"type:jsonb;serializer:json"`
	FooterPhone        string            `gorm:"type:varchar(50)"`
	FooterEmail        string            `gorm:"type:varchar(200)"`
	FooterAddress      string            `gorm:"type:text"`
	AnnouncementText   string            `gorm:"type:text"`
	UpdatedAt          time.Time         `gorm:"not null"`
}

// TableName returns the table name for GORM
func (LandingSettingsModel) TableName() string {
	return "landing_page_settings"
}

// ToDomain converts the persistence model to domain LandingPageSettings
func (m *LandingSettingsModel) ToDomain() *settings.LandingPageSettings {
	l := &settings.LandingPageSettings{
		ID:                 m.ID,
		HeroProductIDs:     m.HeroProductIDs,
		FeaturedProductIDs: m.FeaturedProductIDs,
		CategoryImages:     m.CategoryImages,
		FooterPhone:        m.FooterPhone,
		FooterEmail:        m.FooterEmail,
		FooterAddress:      m.FooterAddress,
		AnnouncementText:   m.AnnouncementText,
		UpdatedAt:          m.UpdatedAt.UTC(),
	}
	if l.HeroProductIDs == nil {
		l.HeroProductIDs = []string{}
	}
	if l.FeaturedProductIDs == nil {
		l.FeaturedProductIDs = []string{}
	}
	if l.CategoryImages == nil {
		l.CategoryImages = map[string]string{}
	}
	return l
}

// LandingSettingsModelFromDomain creates a persistence model; the id is
// always the singleton key
func LandingSettingsModelFromDomain(l *settings.LandingPageSettings) *LandingSettingsModel {
	return &LandingSettingsModel{
		ID:                 settings.SingletonID,
		HeroProductIDs:     l.HeroProductIDs,
		FeaturedProductIDs: l.FeaturedProductIDs,
		CategoryImages:     l.CategoryImages,
		FooterPhone:        l.FooterPhone,
		FooterEmail:        l.FooterEmail,
		FooterAddress:      l.FooterAddress,
		AnnouncementText:   l.AnnouncementText,
		UpdatedAt:          l.UpdatedAt,
	}
}
