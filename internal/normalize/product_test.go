package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rivalradar/rivalradar/internal/domain/model"
)

func TestProductFirstMatchWins(t *testing.T) {
	item := map[string]any{
		"name":  "Widget",
		"title": "Should not win",
		"price": "$19.99",
	}
	p := Product(item, "https://example.com")
	assert.Equal(t, "Widget", p.Name)
	assert.Equal(t, "$19.99", p.Price)
}

func TestProductFallsThroughSelectors(t *testing.T) {
	item := map[string]any{
		"title": "From title",
		"offer": map[string]any{"price": "$5.00"},
	}
	p := Product(item, "https://example.com")
	assert.Equal(t, "From title", p.Name)
	assert.Equal(t, "$5.00", p.Price)
}

func TestProductDefaults(t *testing.T) {
	p := Product(map[string]any{}, "https://example.com")
	assert.Equal(t, "Unknown product", p.Name)
	assert.Equal(t, model.PriceNotAvailable, p.Price)
	assert.Zero(t, p.Rating)
	assert.Zero(t, p.Reviews)
	assert.Empty(t, p.URL)
}

func TestProductMissingRatingIsZero(t *testing.T) {
	p := Product(map[string]any{"name": "Widget"}, "https://example.com")
	assert.Equal(t, float64(0), p.Rating)
}

func TestRatingClamped(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want float64
	}{
		{name: "above range", in: 7.2, want: 5},
		{name: "below range", in: -1.0, want: 0},
		{name: "in range", in: 4.5, want: 4.5},
		{name: "string with noise", in: "4.2 out of 5", want: 4.2},
		{name: "no number", in: "great", want: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Product(map[string]any{"rating": tt.in}, "https://example.com")
			assert.InDelta(t, tt.want, p.Rating, 0.0001)
		})
	}
}

func TestReviewsCoercion(t *testing.T) {
	p := Product(map[string]any{"reviews": "1,234 reviews"}, "https://example.com")
	assert.Equal(t, 1234, p.Reviews)
}

func TestProductRelativeURLs(t *testing.T) {
	item := map[string]any{
		"name":  "Widget",
		"url":   "/products/widget",
		"image": "data:image/png;base64,AAAA",
	}
	p := Product(item, "https://example.com/catalog")
	assert.Equal(t, "https://example.com/products/widget", p.URL)
	assert.Equal(t, "data:image/png;base64,AAAA", p.ImageURL)
}

func TestAbsoluteURL(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		base string
		want string
	}{
		{name: "relative", raw: "/a/b", base: "https://example.com/x", want: "https://example.com/a/b"},
		{name: "absolute passes through", raw: "https://other.com/a", base: "https://example.com", want: "https://other.com/a"},
		{name: "data uri passes through", raw: "data:image/gif;base64,R0", base: "https://example.com", want: "data:image/gif;base64,R0"},
		{name: "empty", raw: "", base: "https://example.com", want: ""},
		{name: "relative no scheme base", raw: "/a", base: "example.com", want: "/a"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, AbsoluteURL(tt.raw, tt.base))
		})
	}
}

func TestProducts(t *testing.T) {
	items := []map[string]any{
		{"name": "Widget", "price": "$19.99"},
		{"name": "Gadget"},
	}
	out := Products(items, "https://example.com")
	require.Len(t, out, 2)
	assert.Equal(t, "$19.99", out[0].Price)
	assert.Equal(t, model.PriceNotAvailable, out[1].Price)
}

func TestProductsEmptyInput(t *testing.T) {
	out := Products(nil, "https://example.com")
	require.NotNil(t, out)
	assert.Empty(t, out)
}
