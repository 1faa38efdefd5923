package extract

import (
	"context"

	"github.com/shopsight/shopsight/internal/htmldoc"
	"github.com/shopsight/shopsight/internal/insights"
)

var (
	policyHeaderSelectors  = []string{"h1", ".page-title", ".policy-title"}
	policyContentSelectors = []string{".page-content", ".policy-content", ".main-content", ".content", "main", ".page"}
)

// policyTarget is one policy slot with its probe order and fallback title.
type policyTarget struct {
	kind  string
	title string
	paths []string
}

var namedPolicies = []policyTarget{
	{"privacy_policy", "Privacy Policy", []string{"/pages/privacy-policy", "/privacy-policy", "/pages/privacy"}},
	{"return_refund_policy", "Return Refund Policy", []string{"/pages/refund-policy", "/pages/returns", "/refund-policy", "/returns"}},
	{"terms_of_service", "Terms Of Service", []string{"/pages/terms-of-service", "/terms-of-service", "/pages/terms"}},
	{"shipping_policy", "Shipping Policy", []string{"/pages/shipping-policy", "/shipping-policy", "/pages/shipping"}},
}

// Open-ended bucket for policy pages stores publish outside the four named
// slots.
var otherPolicies = []policyTarget{
	{"cookie_policy", "Cookie Policy", []string{"/pages/cookie-policy", "/cookie-policy"}},
	{"payment_policy", "Payment Policy", []string{"/pages/payment-policy", "/payment-policy"}},
	{"accessibility", "Accessibility", []string{"/pages/accessibility", "/accessibility"}},
}

// PolicyExtractor probes the four named policy slots plus the open-ended
// "other" bucket.
type PolicyExtractor struct{}

func (PolicyExtractor) Topic() string { return "policies" }

type policySection struct {
	named map[string]*insights.Policy
	other []insights.Policy
}

func (s policySection) Apply(out *insights.StoreInsights) {
	out.PrivacyPolicy = s.named["privacy_policy"]
	out.ReturnRefundPolicy = s.named["return_refund_policy"]
	out.TermsOfService = s.named["terms_of_service"]
	out.ShippingPolicy = s.named["shipping_policy"]
	out.OtherPolicies = s.other
}

func (PolicyExtractor) Extract(ctx context.Context, t Target) (Section, []string, error) {
	section := policySection{
		named: make(map[string]*insights.Policy, len(namedPolicies)),
		other: []insights.Policy{},
	}
	for _, target := range namedPolicies {
		if policy, ok := probePolicy(ctx, t, target); ok {
			section.named[target.kind] = &policy
		}
	}
	for _, target := range otherPolicies {
		if policy, ok := probePolicy(ctx, t, target); ok {
			section.other = append(section.other, policy)
		}
	}
	return section, nil, nil
}

func probePolicy(ctx context.Context, t Target, target policyTarget) (insights.Policy, bool) {
	content, ok := t.Prober.Probe(ctx, t.BaseURL, target.paths, policyContentSelectors)
	if !ok {
		return insights.Policy{}, false
	}
	title := htmldoc.Text(content.Doc.First(policyHeaderSelectors...))
	if title == "" {
		title = target.title
	}
	return insights.Policy{
		Title:   title,
		Content: content.Text,
		URL:     content.URL,
		Type:    target.kind,
	}, true
}
