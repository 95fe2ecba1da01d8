package summary

import (
	"context"
	_ "embed"
	"encoding/json"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/xeipuuv/gojsonschema"

	"github.com/jonathan/policy-card/internal/llm"
	"github.com/jonathan/policy-card/internal/prompts"
)

// MinPolicyTextLen is the minimum resolved-text length worth sending to the
// LLM. Anything shorter gets the canned low-confidence card instead.
const MinPolicyTextLen = 200

//go:embed card_schema.json
var cardSchemaJSON []byte

// Summarizer produces policy cards from resolved policy text.
type Summarizer struct {
	client   llm.Client
	schema   *gojsonschema.Schema
	validate *validator.Validate
}

// NewSummarizer creates a Summarizer on top of an LLM client.
func NewSummarizer(client llm.Client) (*Summarizer, error) {
	schema, err := gojsonschema.NewSchema(gojsonschema.NewBytesLoader(cardSchemaJSON))
	if err != nil {
		return nil, &SummaryError{Message: "failed to compile card schema", Cause: err}
	}

	return &Summarizer{
		client:   client,
		schema:   schema,
		validate: validator.New(),
	}, nil
}

// Summarize turns policy text into a PolicyCard. Text shorter than
// MinPolicyTextLen short-circuits to the low-confidence card without an LLM
// call.
func (s *Summarizer) Summarize(ctx context.Context, text, domain string) (*PolicyCard, error) {
	if len(strings.TrimSpace(text)) < MinPolicyTextLen {
		return LowConfidenceCard(domain), nil
	}

	prompt := buildSummarizePrompt(text, domain)

	responseText, err := s.client.GenerateJSON(ctx, prompt, llm.TierLite)
	if err != nil {
		return nil, &SummaryError{Message: "failed to generate card from LLM", Cause: err}
	}

	card, err := s.parseCard(responseText)
	if err != nil {
		return nil, err
	}

	return card, nil
}

// parseCard validates the raw LLM reply against the card schema, unmarshals
// it, clamps conditions, and runs struct validation.
func (s *Summarizer) parseCard(responseText string) (*PolicyCard, error) {
	responseText = llm.CleanJSONBlock(responseText)

	schemaResult, err := s.schema.Validate(gojsonschema.NewStringLoader(responseText))
	if err != nil {
		return nil, &SummaryError{Message: "failed to validate card JSON", Cause: err}
	}
	if !schemaResult.Valid() {
		var issues []string
		for _, desc := range schemaResult.Errors() {
			issues = append(issues, desc.String())
		}
		return nil, &SummaryError{Message: "card JSON violates schema: " + strings.Join(issues, "; ")}
	}

	var card PolicyCard
	if err := json.Unmarshal([]byte(responseText), &card); err != nil {
		return nil, &SummaryError{Message: "failed to unmarshal card JSON", Cause: err}
	}

	if len(card.Conditions) > MaxConditions {
		card.Conditions = card.Conditions[:MaxConditions]
	}

	if err := s.validate.Struct(&card); err != nil {
		return nil, &SummaryError{Message: "card failed validation", Cause: err}
	}

	return &card, nil
}

// buildSummarizePrompt constructs the summarization prompt.
func buildSummarizePrompt(text, domain string) string {
	template := prompts.MustGet("policy.json", "summarize-policy")
	return prompts.Format(template, map[string]string{
		"Domain":     domain,
		"PolicyText": text,
	})
}
