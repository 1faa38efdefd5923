// Package insights defines the core types and interfaces for the store
// extraction engine. It includes the aggregate record returned to callers,
// the per-topic value records, and the contracts implemented by the
// fetcher, persistence, and clock subsystems.
package insights

import "time"

// StoreInsights is the aggregate produced by one extraction run. It is
// always fully constructed: absent topics are empty containers, never nil
// references, so downstream consumers can range over every section without
// presence checks.
type StoreInsights struct {
	StoreURL       string `json:"store_url"`
	StoreName      string `json:"store_name,omitempty"`
	IsShopifyStore bool   `json:"is_shopify_store"`

	ProductCatalog ProductCatalog `json:"product_catalog"`
	HeroProducts   []HeroProduct  `json:"hero_products"`

	PrivacyPolicy      *Policy  `json:"privacy_policy,omitempty"`
	ReturnRefundPolicy *Policy  `json:"return_refund_policy,omitempty"`
	TermsOfService     *Policy  `json:"terms_of_service,omitempty"`
	ShippingPolicy     *Policy  `json:"shipping_policy,omitempty"`
	OtherPolicies      []Policy `json:"other_policies"`
	FAQs               []FAQ    `json:"faqs"`

	ContactInfo   ContactInfo   `json:"contact_info"`
	SocialHandles SocialHandles `json:"social_handles"`

	BrandContext   BrandContext   `json:"brand_context"`
	ImportantLinks []ImportantLink `json:"important_links"`

	Competitors []CompetitorInsight `json:"competitors"`

	ScrapedAt      time.Time `json:"scraped_at"`
	ProcessingTime float64   `json:"processing_time"`
	Success        bool      `json:"success"`
	Errors         []string  `json:"errors"`
	Warnings       []string  `json:"warnings"`
}

// NewStoreInsights builds an empty-but-complete aggregate for the given
// normalized store URL. Success starts true; only a root fetch failure (or
// an invalid URL) flips it.
func NewStoreInsights(storeURL string) StoreInsights {
	return StoreInsights{
		StoreURL:       storeURL,
		IsShopifyStore: IsShopifyStoreURL(storeURL),
		ProductCatalog: ProductCatalog{Products: []Product{}},
		HeroProducts:   []HeroProduct{},
		OtherPolicies:  []Policy{},
		FAQs:           []FAQ{},
		ContactInfo: ContactInfo{
			Emails:       []string{},
			PhoneNumbers: []string{},
			Addresses:    []string{},
		},
		SocialHandles:  SocialHandles{},
		ImportantLinks: []ImportantLink{},
		Competitors:    []CompetitorInsight{},
		Success:        true,
		Errors:         []string{},
		Warnings:       []string{},
	}
}

// ProductCatalog holds the parsed product feed. TotalProducts always equals
// len(Products), including zero when the feed was absent or malformed.
type ProductCatalog struct {
	TotalProducts int       `json:"total_products"`
	Products      []Product `json:"products"`
	HasMore       bool      `json:"has_more"`
}

// Product is one catalog entry mapped from the store's JSON product feed.
// Price and CompareAtPrice come from the first variant only; Available is
// the OR across all variants. None of the three is fabricated when the
// variant list is empty.
type Product struct {
	ID             int64            `json:"id,omitempty"`
	Title          string           `json:"title"`
	Handle         string           `json:"handle,omitempty"`
	Description    string           `json:"description,omitempty"`
	Vendor         string           `json:"vendor,omitempty"`
	ProductType    string           `json:"product_type,omitempty"`
	Tags           []string         `json:"tags"`
	Price          string           `json:"price,omitempty"`
	CompareAtPrice string           `json:"compare_at_price,omitempty"`
	Available      bool             `json:"available"`
	Images         []string         `json:"images"`
	Variants       []map[string]any `json:"variants"`
	CreatedAt      string           `json:"created_at,omitempty"`
	UpdatedAt      string           `json:"updated_at,omitempty"`
}

// HeroProduct is a featured product card parsed from the homepage.
type HeroProduct struct {
	Title           string `json:"title"`
	Description     string `json:"description,omitempty"`
	ImageURL        string `json:"image_url,omitempty"`
	ProductURL      string `json:"product_url,omitempty"`
	Price           string `json:"price,omitempty"`
	FeaturedSection string `json:"featured_section,omitempty"`
}

// Policy is one store policy page (privacy, refund, terms, shipping, or an
// uncategorized "other" policy).
type Policy struct {
	Title   string `json:"title"`
	Content string `json:"content"`
	URL     string `json:"url,omitempty"`
	Type    string `json:"type"`
}

// FAQ is a single question/answer pair.
type FAQ struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// ContactInfo aggregates contact details found on the root page. Emails and
// PhoneNumbers behave as sets: duplicates in the page collapse to one entry.
type ContactInfo struct {
	Emails         []string `json:"emails"`
	PhoneNumbers   []string `json:"phone_numbers"`
	Addresses      []string `json:"addresses"`
	ContactFormURL string   `json:"contact_form_url,omitempty"`
}

// SocialHandles maps a platform name to the unique handles found for it.
// Platforms with zero matches are absent from the map entirely.
type SocialHandles map[string][]string

// BrandContext carries the store's narrative/about information.
type BrandContext struct {
	Name        string `json:"name,omitempty"`
	Description string `json:"description,omitempty"`
	Mission     string `json:"mission,omitempty"`
	Story       string `json:"story,omitempty"`
	Founded     string `json:"founded,omitempty"`
	Location    string `json:"location,omitempty"`
}

// ImportantLink is one classified navigation/footer link.
type ImportantLink struct {
	Title    string `json:"title"`
	URL      string `json:"url"`
	Category string `json:"category"`
}

// CompetitorInsight is a best-effort competitor summary produced by the
// external lookup step.
type CompetitorInsight struct {
	Name        string `json:"name"`
	WebsiteURL  string `json:"website_url"`
	Description string `json:"description,omitempty"`
}
