// Package resolver locates the return/refund policy text for a storefront.
// Discovery is staged: anchors matching policy keywords, then conventional
// platform paths, then the page itself, degrading to empty text rather than
// failing.
package resolver

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/jonathan/policy-card/internal/fetch"
)

// UsableTextLen is the minimum cleaned-text length for a candidate page to be
// accepted outright. Thinner policy pages are kept only as a last resort.
const UsableTextLen = 400

// Resolution is the outcome of a resolve: the best available policy text
// (possibly empty) and the hostname it was derived for.
type Resolution struct {
	Text   string `json:"text"`
	Domain string `json:"domain"`
}

// Options configures a Resolver.
type Options struct {
	Fetch *fetch.Options
	// UseBrowser enables headless-browser rendering when the target page
	// yields too little text over plain HTTP.
	UseBrowser bool
}

// Resolver discovers and extracts policy text. It is stateless; every call to
// Resolve is independent.
type Resolver struct {
	opts Options
}

// New creates a Resolver.
func New(opts *Options) *Resolver {
	if opts == nil {
		opts = &Options{}
	}
	if opts.Fetch == nil {
		opts.Fetch = fetch.DefaultOptions()
	}
	return &Resolver{opts: *opts}
}

// NormalizeURL ensures an explicit scheme, defaulting to https, and validates
// that the result has a host.
func NormalizeURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty URL")
	}
	if !strings.Contains(raw, "://") {
		raw = "https://" + raw
	}
	parsed, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("invalid URL %q: %w", raw, err)
	}
	if parsed.Host == "" {
		return "", fmt.Errorf("invalid URL %q: missing host", raw)
	}
	return raw, nil
}

// Resolve runs the staged discovery for targetURL. It returns an error only
// for an unusable input URL; every fetch or parse failure along the way
// degrades to the next stage, bottoming out at empty text.
func (r *Resolver) Resolve(ctx context.Context, targetURL string) (*Resolution, error) {
	normalized, err := NormalizeURL(targetURL)
	if err != nil {
		return nil, err
	}

	parsed, err := url.Parse(normalized)
	if err != nil {
		return nil, fmt.Errorf("invalid URL %q: %w", normalized, err)
	}
	origin := &url.URL{Scheme: parsed.Scheme, Host: parsed.Host}

	result := &Resolution{Domain: parsed.Hostname()}

	page, err := fetch.URL(ctx, normalized, r.opts.Fetch)
	if err != nil {
		log.Debug().Str("url", normalized).Err(err).Msg("target page fetch failed")
		return result, nil
	}

	html := page.HTML
	if r.opts.UseBrowser {
		if text, extractErr := fetch.ExtractText(html); extractErr == nil && fetch.NeedsBrowser(text) {
			if rendered, renderErr := fetch.RenderSimple(ctx, normalized); renderErr == nil {
				html = rendered
			} else {
				log.Debug().Err(renderErr).Msg("browser render failed, using HTTP content")
			}
		}
	}

	candidates := scanAnchors(html, origin)
	platform := fetch.DetectPlatform(normalized, html)
	candidates = appendConventionalPaths(candidates, origin, platform)
	log.Debug().
		Str("domain", result.Domain).
		Str("platform", string(platform)).
		Int("candidates", len(candidates)).
		Msg("policy candidates discovered")

	if len(candidates) == 0 {
		text, err := fetch.ExtractText(html)
		if err != nil {
			return result, nil
		}
		result.Text = fetch.Truncate(text)
		return result, nil
	}

	var (
		firstFetched  string
		haveFetched   bool
		firstNonEmpty string
		haveNonEmpty  bool
	)
	for _, candidate := range candidates {
		page, err := fetch.URL(ctx, candidate, r.opts.Fetch)
		if err != nil {
			continue
		}
		text, err := fetch.ExtractText(page.HTML)
		if err != nil {
			continue
		}
		if !haveFetched {
			firstFetched = text
			haveFetched = true
		}
		if !haveNonEmpty && text != "" {
			firstNonEmpty = text
			haveNonEmpty = true
		}
		if len(text) > UsableTextLen {
			result.Text = fetch.Truncate(text)
			return result, nil
		}
	}

	// No candidate cleared the threshold. A thin policy-labeled page still
	// beats generic page content.
	switch {
	case haveNonEmpty:
		result.Text = fetch.Truncate(firstNonEmpty)
	case haveFetched:
		result.Text = fetch.Truncate(firstFetched)
	default:
		// Every candidate fetch failed; fall back to the original page.
		if text, err := fetch.ExtractText(html); err == nil {
			result.Text = fetch.Truncate(text)
		}
	}
	return result, nil
}
