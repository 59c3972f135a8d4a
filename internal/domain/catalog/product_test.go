package catalog

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/horologe/storefront/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestProduct(t *testing.T) *Product {
	p, err := NewProduct(ProductInput{
		Name:       "Seamaster Diver 300M",
		Price:      decimal.NewFromInt(5200),
		Images:     []string{" https://cdn/x.jpg ", ""},
		CategoryID: uuid.New(),
	})
	require.NoError(t, err)
	return p
}

func TestSlugify(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Seamaster Diver 300M", "seamaster-diver-300m"},
		{"  Royal   Oak -- Offshore!! ", "royal-oak-offshore"},
		{"Ünïcode & Co", "n-code-co"},
		{"---", ""},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, Slugify(tt.in))
		})
	}
}

func TestValidateSlug(t *testing.T) {
	assert.NoError(t, ValidateSlug("dress-watches"))
	assert.Error(t, ValidateSlug(""))
	assert.Error(t, ValidateSlug("Dress"))
	assert.Error(t, ValidateSlug("dress--watches"))
	assert.Error(t, ValidateSlug("-dress"))
}

func TestNewProduct(t *testing.T) {
	t.Run("derives slug and cleans images", func(t *testing.T) {
		p := createTestProduct(t)
		assert.Equal(t, "seamaster-diver-300m", p.Slug)
		assert.Equal(t, []string{"https://cdn/x.jpg"}, p.Images)
		assert.Equal(t, "https://cdn/x.jpg", p.CoverImage())
		assert.True(t, p.Rating.IsZero())
		assert.NotNil(t, p.Specifications)
	})

	t.Run("rejects invalid input", func(t *testing.T) {
		negative := decimal.NewFromInt(-1)
		cases := map[string]ProductInput{
			"empty name":     {Price: decimal.NewFromInt(1), CategoryID: uuid.New()},
			"negative price": {Name: "A", Price: negative, CategoryID: uuid.New()},
			"negative orig":  {Name: "A", Price: decimal.NewFromInt(1), OriginalPrice: &negative, CategoryID: uuid.New()},
			"no category":    {Name: "A", Price: decimal.NewFromInt(1)},
			"bad slug":       {Name: "A", Slug: "Not A Slug", Price: decimal.NewFromInt(1), CategoryID: uuid.New()},
		}
		for name, in := range cases {
			t.Run(name, func(t *testing.T) {
				_, err := NewProduct(in)
				assert.True(t, errors.Is(err, shared.ErrInvalidInput))
			})
		}
	})
}

func TestProduct_Apply(t *testing.T) {
	p := createTestProduct(t)
	price := decimal.NewFromInt(4800)
	orig := decimal.NewFromInt(6000)
	featured := true

	require.NoError(t, p.Apply(ProductPatch{Price: &price, OriginalPrice: &orig, Featured: &featured}))
	assert.True(t, p.Price.Equal(price))
	assert.True(t, p.Featured)
	assert.Equal(t, "Seamaster Diver 300M", p.Name)
	assert.EqualValues(t, 20, p.DiscountPercent())

	require.NoError(t, p.Apply(ProductPatch{ClearOriginal: true}))
	assert.Nil(t, p.OriginalPrice)
	assert.EqualValues(t, 0, p.DiscountPercent())

	nilCategory := uuid.Nil
	assert.Error(t, p.Apply(ProductPatch{CategoryID: &nilCategory}))
}

func TestProduct_RecordReview(t *testing.T) {
	p := createTestProduct(t)

	require.NoError(t, p.RecordReview(5))
	require.NoError(t, p.RecordReview(4))
	require.NoError(t, p.RecordReview(4))

	assert.Equal(t, 3, p.ReviewCount)
	assert.Equal(t, "4.33", p.Rating.StringFixed(2))

	assert.Error(t, p.RecordReview(0))
	assert.Error(t, p.RecordReview(6))
	assert.Equal(t, 3, p.ReviewCount)
}

func TestNewCategory(t *testing.T) {
	c, err := NewCategory(CategoryInput{Name: "Dress Watches", Gradient: "from-amber-200"})
	require.NoError(t, err)
	assert.Equal(t, "dress-watches", c.Slug)

	name := "Pilot Watches"
	require.NoError(t, c.Apply(CategoryPatch{Name: &name}))
	assert.Equal(t, "Pilot Watches", c.Name)
	assert.Equal(t, "dress-watches", c.Slug)

	_, err = NewCategory(CategoryInput{})
	assert.Error(t, err)
}

func TestNewReview(t *testing.T) {
	r, err := NewReview(uuid.New(), "Grace", 5, " Superb ")
	require.NoError(t, err)
	assert.Equal(t, "Superb", r.Comment)

	_, err = NewReview(uuid.New(), "", 5, "")
	assert.Error(t, err)
	_, err = NewReview(uuid.New(), "Grace", 9, "")
	assert.Error(t, err)
}
