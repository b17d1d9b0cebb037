// Package products generates the featured affiliate batch: two product
// suggestions per fixed category, augmented with computed affiliate and
// display fields. A category whose model answer cannot be parsed is skipped;
// the batch as a whole never fails.
package products

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	"coolfinds/internal/core"
	"coolfinds/internal/logger"
	"coolfinds/internal/textutil"
)

// Categories is the fixed product category list, independent of the article
// categories.
var Categories = []string{"Tech Gadgets", "Home Essentials", "Lifestyle Accessories", "Automotive Gear"}

const productTemperature = 0.7

const productPromptTemplate = `Suggest 2 literal, high-selling Amazon products in the %s category for a premium blog "Amazing Cool Finds".
Return JSON array ONLY: [{"title": "Short Item Name", "price": "$99", "asin": "B0...", "discount": "20%% OFF", "category": "%s"}]`

// TextGenerator is the slice of the text model the generator needs.
type TextGenerator interface {
	Generate(ctx context.Context, prompt string, temperature float32) (string, error)
}

// Generator produces featured product batches.
type Generator struct {
	gen          TextGenerator
	affiliateTag string
}

// NewGenerator creates a featured products generator backed by gen.
func NewGenerator(gen TextGenerator, affiliateTag string) *Generator {
	return &Generator{gen: gen, affiliateTag: affiliateTag}
}

// Generate walks the fixed categories sequentially and returns the
// concatenated batch. Per-category failures are logged and skipped, so the
// result may be smaller than eight items but Generate itself never fails.
func (g *Generator) Generate(ctx context.Context) []core.FeaturedProduct {
	results := make([]core.FeaturedProduct, 0, 2*len(Categories))

	for _, category := range Categories {
		items, err := g.generateCategory(ctx, category)
		if err != nil {
			logger.Warn("Featured product generation skipped for category", "category", category, "error", err.Error())
			continue
		}
		results = append(results, items...)
	}
	return results
}

func (g *Generator) generateCategory(ctx context.Context, category string) ([]core.FeaturedProduct, error) {
	prompt := fmt.Sprintf(productPromptTemplate, category, category)
	response, err := g.gen.Generate(ctx, prompt, productTemperature)
	if err != nil {
		return nil, fmt.Errorf("generation failed: %w", err)
	}

	jsonStr, ok := textutil.ExtractJSONArray(response)
	if !ok {
		return nil, fmt.Errorf("response contained no JSON array")
	}

	var items []core.FeaturedProduct
	if err := json.Unmarshal([]byte(jsonStr), &items); err != nil {
		return nil, fmt.Errorf("response array was not valid JSON: %w", err)
	}

	for i := range items {
		g.augment(&items[i], category)
	}
	return items, nil
}

// augment fills the computed affiliate and display fields on a parsed item.
func (g *Generator) augment(item *core.FeaturedProduct, category string) {
	if item.Category == "" {
		item.Category = category
	}
	item.AffiliateURL = fmt.Sprintf("https://www.amazon.com/dp/%s?tag=%s", item.ASIN, g.affiliateTag)
	item.ImageURL = fmt.Sprintf("https://placehold.co/800x600/161616/FFD700.png?text=%s", url.QueryEscape(item.Title))
	item.Images = []string{}
}
