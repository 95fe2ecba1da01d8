// Package pipeline composes the resolver, summarizer and cache into the full
// check flow shared by the CLI and the HTTP server.
package pipeline

import (
	"context"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/singleflight"

	"github.com/jonathan/policy-card/internal/cache"
	"github.com/jonathan/policy-card/internal/resolver"
	"github.com/jonathan/policy-card/internal/summary"
)

// Stage names reported during a progressed check.
const (
	StageResolving   = "resolving"
	StageResolved    = "resolved"
	StageSummarizing = "summarizing"
)

// Summarizer is the collaborator that turns policy text into a card.
type Summarizer interface {
	Summarize(ctx context.Context, text, domain string) (*summary.PolicyCard, error)
}

// Progress receives stage notifications while a check runs. Data depends on
// the stage: StageResolved carries the resolved text length.
type Progress func(stage string, data map[string]any)

// Result is the outcome of one check.
type Result struct {
	Card   *summary.PolicyCard `json:"card"`
	Domain string              `json:"domain"`
	Cached bool                `json:"cached"`
}

// Checker runs the resolve-then-summarize flow. Results are cached by
// normalized URL and concurrent checks of the same URL are collapsed into one
// flight. The cache sits here, in front of the resolver, which stays pure.
type Checker struct {
	resolver   *resolver.Resolver
	summarizer Summarizer
	cache      *cache.Memory[*Result]
	group      singleflight.Group
}

// NewChecker creates a Checker. Cache may be nil to disable caching.
func NewChecker(res *resolver.Resolver, sum Summarizer, c *cache.Memory[*Result]) *Checker {
	return &Checker{
		resolver:   res,
		summarizer: sum,
		cache:      c,
	}
}

// Check resolves and summarizes the policy for targetURL. A page with no
// discoverable policy is not an error: that case produces the low-confidence
// card.
func (c *Checker) Check(ctx context.Context, targetURL string) (*Result, error) {
	return c.CheckWithProgress(ctx, targetURL, nil)
}

// CheckWithProgress is Check with stage notifications, used by the SSE
// endpoint. Progress may be nil. A cache hit skips straight to the result.
func (c *Checker) CheckWithProgress(ctx context.Context, targetURL string, progress Progress) (*Result, error) {
	normalized, err := resolver.NormalizeURL(targetURL)
	if err != nil {
		return nil, err
	}

	if c.cache != nil {
		if cached, ok := c.cache.Get(normalized); ok {
			log.Debug().Str("url", normalized).Msg("check served from cache")
			return &Result{Card: cached.Card, Domain: cached.Domain, Cached: true}, nil
		}
	}

	notify := func(stage string, data map[string]any) {
		if progress != nil {
			progress(stage, data)
		}
	}

	v, err, _ := c.group.Do(normalized, func() (any, error) {
		notify(StageResolving, map[string]any{"url": normalized})

		resolution, err := c.resolver.Resolve(ctx, normalized)
		if err != nil {
			return nil, err
		}
		log.Info().
			Str("domain", resolution.Domain).
			Int("text_len", len(resolution.Text)).
			Msg("policy text resolved")
		notify(StageResolved, map[string]any{
			"domain":   resolution.Domain,
			"text_len": len(resolution.Text),
		})

		notify(StageSummarizing, nil)
		policyCard, err := c.summarizer.Summarize(ctx, resolution.Text, resolution.Domain)
		if err != nil {
			return nil, err
		}

		result := &Result{
			Card:   policyCard,
			Domain: resolution.Domain,
		}
		if c.cache != nil {
			c.cache.Set(normalized, result)
		}
		return result, nil
	})
	if err != nil {
		return nil, err
	}

	return v.(*Result), nil
}
