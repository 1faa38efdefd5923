package extract

import (
	"context"

	"github.com/shopsight/shopsight/internal/htmldoc"
	"github.com/shopsight/shopsight/internal/insights"
)

// ContactExtractor mines the root page for emails, phone numbers, physical
// addresses, and a contact-page link.
type ContactExtractor struct{}

func (ContactExtractor) Topic() string { return "contact_info" }

type contactSection struct {
	info insights.ContactInfo
}

func (s contactSection) Apply(out *insights.StoreInsights) {
	out.ContactInfo = s.info
}

func (ContactExtractor) Extract(_ context.Context, t Target) (Section, []string, error) {
	text := t.Root.Text()
	info := insights.ContactInfo{
		Emails:       insights.ExtractEmails(text),
		PhoneNumbers: insights.ExtractPhoneNumbers(text),
		Addresses:    insights.ExtractAddresses(text),
	}

	// First anchor pointing anywhere with "contact" in the URL wins.
	if href := htmldoc.Attr(t.Root.First(`a[href*="contact"]`), "href"); href != "" {
		info.ContactFormURL = insights.AbsoluteURL(t.BaseURL, href)
	}

	return contactSection{info: info}, nil, nil
}
