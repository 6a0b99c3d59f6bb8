package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolverFirstNonEmptySelectorWins(t *testing.T) {
	r := newResolver([]fieldRule{
		{field: "title", selectors: []string{"headline", "meta.title", "name"}},
	})
	got := r.resolve("title", map[string]any{
		"meta": map[string]any{"title": "Nested"},
		"name": "Should not win",
	})
	assert.Equal(t, "Nested", got)
}

func TestResolverSkipsEmptyMatches(t *testing.T) {
	r := newResolver([]fieldRule{
		{field: "price", selectors: []string{"price", "offer.price"}},
	})
	got := r.resolve("price", map[string]any{
		"price": "   ",
		"offer": map[string]any{"price": "$5.00"},
	})
	assert.Equal(t, "$5.00", got)
}

func TestResolverStringifiesScalars(t *testing.T) {
	r := newResolver([]fieldRule{
		{field: "rating", selectors: []string{"rating"}},
		{field: "stock", selectors: []string{"inStock"}},
	})
	assert.Equal(t, "4.5", r.resolve("rating", map[string]any{"rating": 4.5}))
	assert.Equal(t, "true", r.resolve("stock", map[string]any{"inStock": true}))
}

func TestResolverUnknownFieldIsEmpty(t *testing.T) {
	r := newResolver([]fieldRule{
		{field: "title", selectors: []string{"title"}},
	})
	assert.Equal(t, "", r.resolve("description", map[string]any{"title": "x"}))
}

func TestResolverRejectsBadSelector(t *testing.T) {
	require.Panics(t, func() {
		newResolver([]fieldRule{{field: "title", selectors: []string{"]["}}})
	})
}
