package normalize

import (
	"github.com/rivalradar/rivalradar/internal/domain/model"
)

// Product selector priority is ordered by how reliable each source field has
// proven across scraped catalogs; the first non-empty match wins.
var productRules = []fieldRule{
	{field: "name", selectors: []string{"name", "title", "productName", "product_name", "text"}},
	{field: "price", selectors: []string{"price", "priceText", "price_text", "offer.price", "pricing.current"}},
	{field: "rating", selectors: []string{"rating", "stars", "ratingValue", "aggregateRating.ratingValue"}},
	{field: "reviews", selectors: []string{"reviews", "reviewsCount", "reviewCount", "aggregateRating.reviewCount"}},
	{field: "url", selectors: []string{"url", "link", "productUrl", "product_url"}},
	{field: "image", selectors: []string{"image", "imageUrl", "image_url", "img", "thumbnail"}},
}

var productResolver = newResolver(productRules)

// Product maps one raw result item into a fully populated product record.
// Missing fields get documented defaults: price "Price not available",
// rating 0 (clamped to [0, 5]), reviews 0, URLs resolved against baseURL.
func Product(item map[string]any, baseURL string) model.Product {
	name := productResolver.resolve("name", item)
	if name == "" {
		name = "Unknown product"
	}

	price := productResolver.resolve("price", item)
	if price == "" {
		price = model.PriceNotAvailable
	}

	return model.Product{
		Name:     name,
		Price:    price,
		Rating:   ratingFrom(productResolver.resolve("rating", item)),
		Reviews:  countFrom(productResolver.resolve("reviews", item)),
		URL:      AbsoluteURL(productResolver.resolve("url", item), baseURL),
		ImageURL: AbsoluteURL(productResolver.resolve("image", item), baseURL),
	}
}

// Products maps every raw item; an empty input yields an empty (non-nil) slice.
func Products(items []map[string]any, baseURL string) []model.Product {
	out := make([]model.Product, 0, len(items))
	for _, item := range items {
		out = append(out, Product(item, baseURL))
	}
	return out
}
