package settings

import (
	"strings"
	"time"

	"github.com/horologe/storefront/internal/domain/shared"
)

// MaxCuratedProducts bounds the hero and featured lists
const MaxCuratedProducts = 24

// LandingPageSettings is the landing-page curation singleton
type LandingPageSettings struct {
	ID                 string
	HeroProductIDs     []string
	FeaturedProductIDs []string
	CategoryImages     map[string]string // category id -> image override
	FooterPhone        string
	FooterEmail        string
	FooterAddress      string
	AnnouncementText   string
	UpdatedAt          time.Time
}

// DefaultLandingPageSettings returns an empty curation
func DefaultLandingPageSettings() *LandingPageSettings {
	return &LandingPageSettings{
		ID:                 SingletonID,
		HeroProductIDs:     []string{},
		FeaturedProductIDs: []string{},
		CategoryImages:     map[string]string{},
		UpdatedAt:          shared.Now(),
	}
}

// LandingPatch carries optional changes; nil fields keep their stored value
type LandingPatch struct {
	HeroProductIDs     *[]string
	FeaturedProductIDs *[]string
	CategoryImages     *map[string]string
	FooterPhone        *string
	FooterEmail        *string
	FooterAddress      *string
	AnnouncementText   *string
}

// Apply validates the patch and merges it into l. On error l is unchanged.
func (l *LandingPageSettings) Apply(p LandingPatch) error {
	var hero, featured []string
	if p.HeroProductIDs != nil {
		hero = dedupe(*p.HeroProductIDs)
		if len(hero) > MaxCuratedProducts {
			return shared.NewValidationError("hero slider cannot hold more than %d products", MaxCuratedProducts)
		}
	}
	if p.FeaturedProductIDs != nil {
		featured = dedupe(*p.FeaturedProductIDs)
		if len(featured) > MaxCuratedProducts {
			return shared.NewValidationError("featured section cannot hold more than %d products", MaxCuratedProducts)
		}
	}

	if p.HeroProductIDs != nil {
		l.HeroProductIDs = hero
	}
	if p.FeaturedProductIDs != nil {
		l.FeaturedProductIDs = featured
	}
	if p.CategoryImages != nil {
		images := make(map[string]string, len(*p.CategoryImages))
		for k, v := range *p.CategoryImages {
			if v = strings.TrimSpace(v); v != "" {
				images[k] = v
			}
		}
		l.CategoryImages = images
	}
	setString(&l.FooterPhone, p.FooterPhone)
	setString(&l.FooterEmail, p.FooterEmail)
	setString(&l.FooterAddress, p.FooterAddress)
	setString(&l.AnnouncementText, p.AnnouncementText)
	l.UpdatedAt = shared.Now()
	return nil
}

func dedupe(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
