package insights

import (
	"regexp"
	"sort"
	"strings"
)

var emailPattern = regexp.MustCompile(`(?i)\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`)

var phonePatterns = []*regexp.Regexp{
	// US format, optional country code
	regexp.MustCompile(`\+?1?[-.\s]?\(?\d{3}\)?[-.\s]?\d{3}[-.\s]?\d{4}`),
	// International
	regexp.MustCompile(`\+\d{1,3}[-.\s]?\d{1,4}[-.\s]?\d{1,4}[-.\s]?\d{1,9}`),
	// (123) 456-7890
	regexp.MustCompile(`\(\d{3}\)\s*\d{3}[-.\s]?\d{4}`),
}

var addressPatterns = []*regexp.Regexp{
	// Street address ending in a ZIP
	regexp.MustCompile(`(?i)\d+\s+[\w\s]+(?:Street|St|Avenue|Ave|Road|Rd|Boulevard|Blvd|Lane|Ln|Drive|Dr)[\w\s,]*\d{5}`),
	// City, ST 12345
	regexp.MustCompile(`[A-Za-z][\w\s]*,\s*[A-Z]{2}\s+\d{5}`),
}

// socialPlatforms fixes both the recognized platform set and the iteration
// order, keeping extraction deterministic.
var socialPlatforms = []struct {
	name     string
	patterns []*regexp.Regexp
}{
	{"instagram", []*regexp.Regexp{
		regexp.MustCompile(`(?i)(?:https?://)?(?:www\.)?instagram\.com/([a-zA-Z0-9._]+)`),
		regexp.MustCompile(`(?i)@([a-zA-Z0-9._]+)[^@]*instagram`),
	}},
	{"facebook", []*regexp.Regexp{
		regexp.MustCompile(`(?i)(?:https?://)?(?:www\.)?facebook\.com/([a-zA-Z0-9._]+)`),
		regexp.MustCompile(`(?i)(?:https?://)?(?:www\.)?fb\.com/([a-zA-Z0-9._]+)`),
	}},
	{"twitter", []*regexp.Regexp{
		regexp.MustCompile(`(?i)(?:https?://)?(?:www\.)?twitter\.com/([a-zA-Z0-9._]+)`),
		regexp.MustCompile(`(?i)(?:https?://)?(?:www\.)?x\.com/([a-zA-Z0-9._]+)`),
		regexp.MustCompile(`(?i)@([a-zA-Z0-9._]+)[^@]*twitter`),
	}},
	{"tiktok", []*regexp.Regexp{
		regexp.MustCompile(`(?i)(?:https?://)?(?:www\.)?tiktok\.com/@([a-zA-Z0-9._]+)`),
	}},
	{"youtube", []*regexp.Regexp{
		regexp.MustCompile(`(?i)(?:https?://)?(?:www\.)?youtube\.com/(?:channel/|user/|c/)?([a-zA-Z0-9._-]+)`),
	}},
	{"linkedin", []*regexp.Regexp{
		regexp.MustCompile(`(?i)(?:https?://)?(?:www\.)?linkedin\.com/(?:company/|in/)?([a-zA-Z0-9._-]+)`),
	}},
	{"pinterest", []*regexp.Regexp{
		regexp.MustCompile(`(?i)(?:https?://)?(?:www\.)?pinterest\.com/([a-zA-Z0-9._]+)`),
	}},
}

// ExtractEmails returns the unique email addresses found in text, sorted.
func ExtractEmails(text string) []string {
	return uniqueSorted(emailPattern.FindAllString(text, -1))
}

// ExtractPhoneNumbers returns the unique phone numbers found in text,
// sorted. The patterns are heuristic; the set semantics matter more than
// precision here.
func ExtractPhoneNumbers(text string) []string {
	var matches []string
	for _, p := range phonePatterns {
		matches = append(matches, p.FindAllString(text, -1)...)
	}
	return uniqueSorted(matches)
}

// ExtractAddresses returns unique physical-address candidates, sorted.
func ExtractAddresses(text string) []string {
	var matches []string
	for _, p := range addressPatterns {
		matches = append(matches, p.FindAllString(text, -1)...)
	}
	for i, m := range matches {
		matches[i] = CleanText(m)
	}
	return uniqueSorted(matches)
}

// ExtractSocialHandles scans page text plus raw markup for the seven known
// platforms. Handles are unique per platform in first-seen order; platforms
// with zero matches are omitted from the map.
func ExtractSocialHandles(text, markup string) SocialHandles {
	combined := text + " " + markup
	handles := SocialHandles{}
	for _, platform := range socialPlatforms {
		seen := map[string]struct{}{}
		var found []string
		for _, p := range platform.patterns {
			for _, m := range p.FindAllStringSubmatch(combined, -1) {
				handle := strings.TrimSpace(m[1])
				if handle == "" {
					continue
				}
				if _, ok := seen[handle]; ok {
					continue
				}
				seen[handle] = struct{}{}
				found = append(found, handle)
			}
		}
		if len(found) > 0 {
			handles[platform.name] = found
		}
	}
	return handles
}

func uniqueSorted(in []string) []string {
	seen := make(map[string]struct{}, len(in))
	out := make([]string, 0, len(in))
	for _, s := range in {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}
