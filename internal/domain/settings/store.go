package settings

import (
	"strings"
	"time"

	"github.com/horologe/storefront/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// SingletonID is the well-known key of both settings records
const SingletonID = "default"

// StoreSettings is the store-wide configuration singleton
type StoreSettings struct {
	ID                    string
	StoreName             string
	Currency              string
	CurrencySymbol        string
	TaxPercentage         decimal.Decimal
	ShippingFlatRate      decimal.Decimal
	FreeShippingThreshold decimal.Decimal // zero disables free shipping
	MaintenanceMode       bool
	WhatsAppNumber        string
	SupportEmail          string
	SEOTitle              string
	SEODescription        string
	OrderPlacedTemplate   string
	StatusChangedTemplate string
	UpdatedAt             time.Time
}

// DefaultStoreSettings returns the values used when no record exists yet
func DefaultStoreSettings() *StoreSettings {
	return &StoreSettings{
		ID:                    SingletonID,
		StoreName:             "Horologe",
		Currency:              "USD",
		CurrencySymbol:        "$",
		TaxPercentage:         decimal.Zero,
		ShippingFlatRate:      decimal.Zero,
		FreeShippingThreshold: decimal.Zero,
		SEOTitle:              "Horologe | Fine Watches",
		SEODescription:        "Luxury and everyday watches, delivered.",
		UpdatedAt:             shared.Now(),
	}
}

// StorePatch carries optional changes; nil fields keep their stored value
type StorePatch struct {
	StoreName             *string
	Currency              *string
	CurrencySymbol        *string
	TaxPercentage         *decimal.Decimal
	ShippingFlatRate      *decimal.Decimal
	FreeShippingThreshold *decimal.Decimal
	MaintenanceMode       *bool
	WhatsAppNumber        *string
	SupportEmail          *string
	SEOTitle              *string
	SEODescription        *string
	OrderPlacedTemplate   *string
	StatusChangedTemplate *string
}

// Apply validates the patch and merges it into s. On error s is unchanged.
func (s *StoreSettings) Apply(p StorePatch) error {
	if p.TaxPercentage != nil && (p.TaxPercentage.IsNegative() || p.TaxPercentage.GreaterThan(decimal.NewFromInt(100))) {
		return shared.NewValidationError("tax percentage must be between 0 and 100")
	}
	if p.ShippingFlatRate != nil && p.ShippingFlatRate.IsNegative() {
		return shared.NewValidationError("shipping flat rate cannot be negative")
	}
	if p.FreeShippingThreshold != nil && p.FreeShippingThreshold.IsNegative() {
		return shared.NewValidationError("free shipping threshold cannot be negative")
	}
	if p.Currency != nil {
		c := strings.ToUpper(strings.TrimSpace(*p.Currency))
		if len(c) != 3 {
			return shared.NewValidationError("currency must be a 3-letter ISO code")
		}
		p.Currency = &c
	}

	setString(&s.StoreName, p.StoreName)
	setString(&s.Currency, p.Currency)
	setString(&s.CurrencySymbol, p.CurrencySymbol)
	setString(&s.WhatsAppNumber, p.WhatsAppNumber)
	setString(&s.SupportEmail, p.SupportEmail)
	setString(&s.SEOTitle, p.SEOTitle)
	setString(&s.SEODescription, p.SEODescription)
	setString(&s.OrderPlacedTemplate, p.OrderPlacedTemplate)
	setString(&s.StatusChangedTemplate, p.StatusChangedTemplate)
	if p.TaxPercentage != nil {
		s.TaxPercentage = *p.TaxPercentage
	}
	if p.ShippingFlatRate != nil {
		s.ShippingFlatRate = *p.ShippingFlatRate
	}
	if p.FreeShippingThreshold != nil {
		s.FreeShippingThreshold = *p.FreeShippingThreshold
	}
	if p.MaintenanceMode != nil {
		s.MaintenanceMode = *p.MaintenanceMode
	}
	s.UpdatedAt = shared.Now()
	return nil
}

// ShippingFee returns the shipping charge for an order subtotal
func (s *StoreSettings) ShippingFee(subtotal decimal.Decimal) decimal.Decimal {
	if s.FreeShippingThreshold.IsPositive() && subtotal.GreaterThanOrEqual(s.FreeShippingThreshold) {
		return decimal.Zero
	}
	return s.ShippingFlatRate
}

// PublicSettings is the subset of store settings exposed without authentication
type PublicSettings struct {
	StoreName       string `json:"storeName"`
	Currency        string `json:"currency"`
	CurrencySymbol  string `json:"currencySymbol"`
	WhatsAppNumber  string `json:"whatsappNumber"`
	SEOTitle        string `json:"seoTitle"`
	SEODescription  string `json:"seoDescription"`
	MaintenanceMode bool   `json:"maintenanceMode"`
}

// Public projects the public subset
func (s *StoreSettings) Public() PublicSettings {
	return PublicSettings{
		StoreName:       s.StoreName,
		Currency:        s.Currency,
		CurrencySymbol:  s.CurrencySymbol,
		WhatsAppNumber:  s.WhatsAppNumber,
		SEOTitle:        s.SEOTitle,
		SEODescription:  s.SEODescription,
		MaintenanceMode: s.MaintenanceMode,
	}
}

func setString(dst *string, src *string) {
	if src != nil {
		*dst = strings.TrimSpace(*src)
	}
}
