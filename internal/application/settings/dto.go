package settings

import (
	"time"

	"github.com/horologe/storefront/internal/domain/settings"
	"github.com/shopspring/decimal"
)

// UpdateStoreRequest is a partial store settings update; omitted fields
// keep their stored value
type UpdateStoreRequest struct {
	StoreName             *string          `json:"storeName" binding:"omitempty,min=1,max=200"`
	Currency              *string          `json:"currency" binding:"omitempty,len=3"`
	CurrencySymbol        *string          `json:"currencySymbol" binding:"omitempty,max=8"`
	TaxPercentage         *decimal.Decimal `json:"taxPercentage"`
	ShippingFlatRate      *decimal.Decimal `json:"shippingFlatRate"`
	FreeShippingThreshold *decimal.Decimal `json:"freeShippingThreshold"`
	MaintenanceMode       *bool            `json:"maintenanceMode"`
	WhatsAppNumber        *string          `json:"whatsappNumber" binding:"omitempty,max=50"`
	SupportEmail          *string          `json:"supportEmail" binding:"omitempty,email,max=200"`
	SEOTitle              *string          `json:"seoTitle" binding:"omitempty,max=200"`
	SEODescription        *string          `json:"seoDescription" binding:"omitempty,max=500"`
	OrderPlacedTemplate   *string          `json:"orderPlacedTemplate" binding:"omitempty,max=2000"`
	StatusChangedTemplate *string          `json:"statusChangedTemplate" binding:"omitempty,max=2000"`
}

// ToPatch converts the request to a domain patch
func (r UpdateStoreRequest) ToPatch() settings.StorePatch {
	return settings.StorePatch{
		StoreName:             r.StoreName,
		Currency:              r.Currency,
		CurrencySymbol:        r.CurrencySymbol,
		TaxPercentage:         r.TaxPercentage,
		ShippingFlatRate:      r.ShippingFlatRate,
		FreeShippingThreshold: r.FreeShippingThreshold,
		MaintenanceMode:       r.MaintenanceMode,
		WhatsAppNumber:        r.WhatsAppNumber,
		SupportEmail:          r.SupportEmail,
		SEOTitle:              r.SEOTitle,
		SEODescription:        r.SEODescription,
		OrderPlacedTemplate:   r.OrderPlacedTemplate,
		StatusChangedTemplate: r.StatusChangedTemplate,
	}
}

// StoreResponse is the full store settings record
type StoreResponse struct {
	StoreName             string          `json:"storeName"`
	Currency              string          `json:"currency"`
	CurrencySymbol        string          `json:"currencySymbol"`
	TaxPercentage         decimal.Decimal `json:"taxPercentage"`
	ShippingFlatRate      decimal.Decimal `json:"shippingFlatRate"`
	FreeShippingThreshold decimal.Decimal `json:"freeShippingThreshold"`
	MaintenanceMode       bool            `json:"maintenanceMode"`
	WhatsAppNumber        string          `json:"whatsappNumber"`
	SupportEmail          string          `json:"supportEmail"`
	SEOTitle              string          `json:"seoTitle"`
	SEODescription        string          `json:"seoDescription"`
	OrderPlacedTemplate   string          `json:"orderPlacedTemplate"`
	StatusChangedTemplate string          `json:"statusChangedTemplate"`
	UpdatedAt             time.Time       `json:"updatedAt"`
}

func toStoreResponse(s *settings.StoreSettings) *StoreResponse {
	return &StoreResponse{
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

// UpdateLandingRequest is a partial landing page update
type UpdateLandingRequest struct {
	HeroProductIDs     *[]string          `json:"heroProductIds"`
	FeaturedProductIDs *[]string          `json:"featuredProductIds"`
	CategoryImages     *map[string]string `json:"categoryImages"`
	FooterPhone        *string            `json:"footerPhone" binding:"omitempty,max=50"`
	FooterEmail        *string            `json:"footerEmail" binding:"omitempty,max=200"`
	FooterAddress      *string            `json:"footerAddress" binding:"omitempty,max=500"`
	AnnouncementText   *string            `json:"announcementText" binding:"omitempty,max=500"`
}

// ToPatch converts the request to a domain patch
func (r UpdateLandingRequest) ToPatch() settings.LandingPatch {
	return settings.LandingPatch{
		HeroProductIDs:     r.HeroProductIDs,
		FeaturedProductIDs: r.FeaturedProductIDs,
		CategoryImages:     r.CategoryImages,
		FooterPhone:        r.FooterPhone,
		FooterEmail:        r.FooterEmail,
		FooterAddress:      r.FooterAddress,
		AnnouncementText:   r.AnnouncementText,
	}
}

// LandingResponse is the landing page curation
type LandingResponse struct {
	HeroProductIDs     []string          `json:"heroProductIds"`
	FeaturedProductIDs []string          `json:"featuredProductIds"`
	CategoryImages     map[string]string `json:"categoryImages"`
	FooterPhone        string            `json:"footerPhone"`
	FooterEmail        string            `json:"footerEmail"`
	FooterAddress      string            `json:"footerAddress"`
	AnnouncementText   string            `json:"announcementText"`
	UpdatedAt          time.Time         `json:"updatedAt"`
}

func toLandingResponse(l *settings.LandingPageSettings) *LandingResponse {
	return &LandingResponse{
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
