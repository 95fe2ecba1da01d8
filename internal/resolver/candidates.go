package resolver

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/jonathan/policy-card/internal/fetch"
)

// policyKeywords select anchors that likely point at a policy page. Matching
// is case-insensitive against the anchor text and href combined.
var policyKeywords = []string{"return", "refund", "exchange", "cancellation"}

// scanAnchors extracts candidate policy URLs from anchors in the page.
// Candidates keep discovery order and are deduplicated by exact string.
// Malformed hrefs are skipped. A parse failure of the HTML itself yields no
// candidates rather than an error.
func scanAnchors(html string, origin *url.URL) []string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil
	}

	seen := make(map[string]bool)
	candidates := make([]string, 0)

	doc.Find("a[href]").Each(func(_ int, s *goquery.Selection) {
		href, exists := s.Attr("href")
		if !exists || href == "" {
			return
		}

		combined := strings.ToLower(s.Text() + " " + href)
		if !containsKeyword(combined) {
			return
		}

		linkURL, err := url.Parse(href)
		if err != nil {
			return
		}
		absolute := origin.ResolveReference(linkURL)
		absolute.Fragment = ""

		urlString := absolute.String()
		if !seen[urlString] {
			seen[urlString] = true
			candidates = append(candidates, urlString)
		}
	})

	return candidates
}

// appendConventionalPaths adds the platform's well-known policy paths after
// the anchor-discovered candidates, deduplicated against them. Probing is
// unconditional: conventional paths are always appended, anchors or not.
func appendConventionalPaths(candidates []string, origin *url.URL, platform fetch.Platform) []string {
	seen := make(map[string]bool, len(candidates))
	for _, c := range candidates {
		seen[c] = true
	}

	for _, path := range fetch.PlatformPolicyPaths(platform) {
		pathURL, err := url.Parse(path)
		if err != nil {
			continue
		}
		urlString := origin.ResolveReference(pathURL).String()
		if !seen[urlString] {
			seen[urlString] = true
			candidates = append(candidates, urlString)
		}
	}

	return candidates
}

func containsKeyword(s string) bool {
	for _, kw := range policyKeywords {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}
