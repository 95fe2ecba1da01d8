package prompts

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGet_SummarizePolicy(t *testing.T) {
	prompt, err := Get("policy.json", "summarize-policy")
	require.NoError(t, err)
	assert.Contains(t, prompt, "{{.Domain}}")
	assert.Contains(t, prompt, "{{.PolicyText}}")
	assert.Contains(t, prompt, "riskLevel")
}

func TestGet_MissingKey(t *testing.T) {
	_, err := Get("policy.json", "no-such-prompt")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no-such-prompt")
}

func TestGet_MissingFile(t *testing.T) {
	_, err := Get("missing.json", "summarize-policy")
	require.Error(t, err)
}

func TestFormat(t *testing.T) {
	result := Format("Policy for {{.Domain}}: {{.PolicyText}}", map[string]string{
		"Domain":     "wearcomet.com",
		"PolicyText": "30 day returns",
	})
	assert.Equal(t, "Policy for wearcomet.com: 30 day returns", result)
}

func TestList(t *testing.T) {
	ClearCache()
	keys, err := List("policy.json")
	require.NoError(t, err)
	assert.Contains(t, keys, "summarize-policy")
}
