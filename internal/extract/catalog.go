package extract

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/shopsight/shopsight/internal/htmldoc"
	"github.com/shopsight/shopsight/internal/insights"
)

// shopifyPageSize is the feed's page-size ceiling; a full page means the
// catalog continues beyond what one request returns.
const shopifyPageSize = 250

// CatalogExtractor reads the store's JSON product feed.
type CatalogExtractor struct{}

func (CatalogExtractor) Topic() string { return "product_catalog" }

type catalogSection struct {
	catalog insights.ProductCatalog
}

func (s catalogSection) Apply(out *insights.StoreInsights) {
	out.ProductCatalog = s.catalog
}

// productFeed mirrors the wire shape of /products.json. Variants stay raw
// records so no vendor-specific fields are lost.
type productFeed struct {
	Products []struct {
		ID          int64  `json:"id"`
		Title       string `json:"title"`
		Handle      string `json:"handle"`
		BodyHTML    string `json:"body_html"`
		Vendor      string `json:"vendor"`
		ProductType string `json:"product_type"`
		Tags        any    `json:"tags"`
		Images      []struct {
			Src string `json:"src"`
		} `json:"images"`
		Variants  []map[string]any `json:"variants"`
		CreatedAt string           `json:"created_at"`
		UpdatedAt string           `json:"updated_at"`
	} `json:"products"`
}

func (CatalogExtractor) Extract(ctx context.Context, t Target) (Section, []string, error) {
	empty := catalogSection{catalog: insights.ProductCatalog{Products: []insights.Product{}}}

	feedURL := insights.AbsoluteURL(t.BaseURL, "/products.json")
	resp, err := t.Fetcher.Fetch(ctx, feedURL)
	if err != nil || !resp.OK() {
		return empty, []string{"product catalog not accessible"}, nil
	}

	var feed productFeed
	if err := json.Unmarshal(resp.Body, &feed); err != nil {
		return empty, []string{"could not parse product catalog JSON"}, nil
	}

	products := make([]insights.Product, 0, len(feed.Products))
	for _, raw := range feed.Products {
		p := insights.Product{
			ID:          raw.ID,
			Title:       insights.CleanText(raw.Title),
			Handle:      raw.Handle,
			Description: htmldoc.StripTags(raw.BodyHTML),
			Vendor:      raw.Vendor,
			ProductType: raw.ProductType,
			Tags:        parseTags(raw.Tags),
			Images:      make([]string, 0, len(raw.Images)),
			Variants:    raw.Variants,
			CreatedAt:   raw.CreatedAt,
			UpdatedAt:   raw.UpdatedAt,
		}
		for _, img := range raw.Images {
			if img.Src != "" {
				p.Images = append(p.Images, img.Src)
			}
		}
		if p.Variants == nil {
			p.Variants = []map[string]any{}
		}
		if len(raw.Variants) > 0 {
			p.Price = variantString(raw.Variants[0], "price")
			p.CompareAtPrice = variantString(raw.Variants[0], "compare_at_price")
			for _, v := range raw.Variants {
				if avail, ok := v["available"].(bool); ok && avail {
					p.Available = true
					break
				}
			}
		}
		products = append(products, p)
	}

	return catalogSection{catalog: insights.ProductCatalog{
		TotalProducts: len(products),
		Products:      products,
		HasMore:       len(feed.Products) >= shopifyPageSize,
	}}, nil, nil
}

// parseTags accepts both feed encodings: an array of strings or one
// comma-separated string.
func parseTags(raw any) []string {
	switch v := raw.(type) {
	case []any:
		tags := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok && s != "" {
				tags = append(tags, s)
			}
		}
		return tags
	case string:
		return insights.SplitCommaList(v)
	default:
		return []string{}
	}
}

func variantString(variant map[string]any, key string) string {
	switch v := variant[key].(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		return fmt.Sprintf("%g", v)
	default:
		return fmt.Sprintf("%v", v)
	}
}
