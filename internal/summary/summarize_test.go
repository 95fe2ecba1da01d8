package summary

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/policy-card/internal/llm"
)

// fakeClient implements llm.Client with a canned response.
type fakeClient struct {
	response   string
	err        error
	lastPrompt string
	calls      int
}

func (f *fakeClient) GenerateContent(_ context.Context, prompt string, _ llm.ModelTier) (string, error) {
	f.calls++
	f.lastPrompt = prompt
	return f.response, f.err
}

func (f *fakeClient) GenerateJSON(_ context.Context, prompt string, _ llm.ModelTier) (string, error) {
	f.calls++
	f.lastPrompt = prompt
	return f.response, f.err
}

func (f *fakeClient) GetModel(_ llm.ModelTier) string { return "fake-model" }

func (f *fakeClient) Close() error { return nil }

var longPolicyText = strings.Repeat("Items may be returned within 30 days of delivery. ", 10)

const validCardJSON = `{
	"brand": "Comet",
	"category": "apparel",
	"returnWindow": "30 days from delivery",
	"refundType": "full refund",
	"returnMethod": "mail with prepaid label",
	"costs": "free return shipping",
	"conditions": ["items must be unworn", "tags attached"],
	"riskScore": "18/100",
	"riskLevel": "green",
	"benchmark": "More generous than typical apparel stores.",
	"tip": "Keep the original packaging until you decide."
}`

func newTestSummarizer(t *testing.T, client llm.Client) *Summarizer {
	t.Helper()
	s, err := NewSummarizer(client)
	require.NoError(t, err)
	return s
}

func TestSummarize_ValidResponse(t *testing.T) {
	client := &fakeClient{response: validCardJSON}
	s := newTestSummarizer(t, client)

	card, err := s.Summarize(context.Background(), longPolicyText, "wearcomet.com")
	require.NoError(t, err)
	assert.Equal(t, "Comet", card.Brand)
	assert.Equal(t, CategoryApparel, card.Category)
	assert.Equal(t, RiskGreen, card.RiskLevel)
	assert.False(t, card.LowConfidence)

	assert.Contains(t, client.lastPrompt, "wearcomet.com")
	assert.Contains(t, client.lastPrompt, "returned within 30 days")
}

func TestSummarize_FencedResponse(t *testing.T) {
	client := &fakeClient{response: "```json\n" + validCardJSON + "\n```"}
	s := newTestSummarizer(t, client)

	card, err := s.Summarize(context.Background(), longPolicyText, "wearcomet.com")
	require.NoError(t, err)
	assert.Equal(t, "Comet", card.Brand)
}

func TestSummarize_ShortTextSkipsLLM(t *testing.T) {
	client := &fakeClient{err: fmt.Errorf("should not be called")}
	s := newTestSummarizer(t, client)

	card, err := s.Summarize(context.Background(), "thin policy", "wearcomet.com")
	require.NoError(t, err)
	assert.True(t, card.LowConfidence)
	assert.Equal(t, "wearcomet.com", card.Brand)
	assert.Equal(t, RiskYellow, card.RiskLevel)
	assert.Equal(t, 0, client.calls)
}

func TestSummarize_EmptyTextSkipsLLM(t *testing.T) {
	client := &fakeClient{err: fmt.Errorf("should not be called")}
	s := newTestSummarizer(t, client)

	card, err := s.Summarize(context.Background(), "", "wearcomet.com")
	require.NoError(t, err)
	assert.True(t, card.LowConfidence)
	assert.Equal(t, 0, client.calls)
}

func TestSummarize_LLMError(t *testing.T) {
	client := &fakeClient{err: fmt.Errorf("quota exceeded")}
	s := newTestSummarizer(t, client)

	_, err := s.Summarize(context.Background(), longPolicyText, "wearcomet.com")
	require.Error(t, err)

	var sumErr *SummaryError
	assert.ErrorAs(t, err, &sumErr)
}

func TestSummarize_InvalidJSON(t *testing.T) {
	client := &fakeClient{response: "not json at all"}
	s := newTestSummarizer(t, client)

	_, err := s.Summarize(context.Background(), longPolicyText, "wearcomet.com")
	require.Error(t, err)
}

func TestSummarize_SchemaRejectsBadRiskLevel(t *testing.T) {
	bad := strings.Replace(validCardJSON, `"green"`, `"purple"`, 1)
	client := &fakeClient{response: bad}
	s := newTestSummarizer(t, client)

	_, err := s.Summarize(context.Background(), longPolicyText, "wearcomet.com")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "schema")
}

func TestSummarize_SchemaRejectsBadRiskScore(t *testing.T) {
	bad := strings.Replace(validCardJSON, `"18/100"`, `"pretty safe"`, 1)
	client := &fakeClient{response: bad}
	s := newTestSummarizer(t, client)

	_, err := s.Summarize(context.Background(), longPolicyText, "wearcomet.com")
	require.Error(t, err)
}

func TestSummarize_ClampsConditions(t *testing.T) {
	five := strings.Replace(validCardJSON,
		`["items must be unworn", "tags attached"]`,
		`["a", "b", "c", "d", "e"]`, 1)
	client := &fakeClient{response: five}
	s := newTestSummarizer(t, client)

	card, err := s.Summarize(context.Background(), longPolicyText, "wearcomet.com")
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c"}, card.Conditions)
}

func TestLowConfidenceCard_EmptyDomain(t *testing.T) {
	card := LowConfidenceCard("")
	assert.Equal(t, "this store", card.Brand)
	assert.True(t, card.LowConfidence)
	assert.LessOrEqual(t, len(card.Conditions), MaxConditions)
}
