package catalog

import (
	"regexp"
	"strings"

	"github.com/horologe/storefront/internal/domain/shared"
)

const maxSlugLength = 120

var (
	slugPattern   = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)
	nonSlugRunes  = regexp.MustCompile(`[^a-z0-9]+`)
	dashSequences = regexp.MustCompile(`-{2,}`)
)

// Slugify derives a URL-safe slug from free text
func Slugify(s string) string {
	slug := strings.ToLower(strings.TrimSpace(s))
	slug = nonSlugRunes.ReplaceAllString(slug, "-")
	slug = dashSequences.ReplaceAllString(slug, "-")
	slug = strings.Trim(slug, "-")
	if len(slug) > maxSlugLength {
		slug = strings.TrimRight(slug[:maxSlugLength], "-")
	}
	return slug
}

// ValidateSlug checks that s is lowercase alphanumerics separated by single dashes
func ValidateSlug(s string) error {
	if s == "" {
		return shared.NewValidationError("slug cannot be empty")
	}
	if len(s) > maxSlugLength {
		return shared.NewValidationError("slug cannot exceed %d characters", maxSlugLength)
	}
	if !slugPattern.MatchString(s) {
		return shared.NewValidationError("slug %q must contain only lowercase letters, digits and dashes", s)
	}
	return nil
}

// resolveSlug returns the explicit slug when given, otherwise one derived from name
func resolveSlug(explicit, name string) (string, error) {
	slug := strings.TrimSpace(explicit)
	if slug == "" {
		slug = Slugify(name)
	}
	if err := ValidateSlug(slug); err != nil {
		return "", err
	}
	return slug, nil
}
