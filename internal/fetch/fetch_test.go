package fetch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestURL_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("<html><body><h1>Returns</h1></body></html>"))
	}))
	defer server.Close()

	result, err := URL(context.Background(), server.URL, nil)
	require.NoError(t, err)
	assert.Equal(t, server.URL, result.URL)
	assert.Contains(t, result.HTML, "<h1>Returns</h1>")
	assert.Equal(t, http.StatusOK, result.StatusCode)
}

func TestURL_SendsBrowserUserAgent(t *testing.T) {
	var gotUA string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	_, err := URL(context.Background(), server.URL, nil)
	require.NoError(t, err)
	assert.Equal(t, DefaultUserAgent, gotUA)
	assert.Contains(t, gotUA, "Mozilla/5.0")
}

func TestURL_InvalidURL(t *testing.T) {
	_, err := URL(context.Background(), "not-a-valid-url", nil)
	require.Error(t, err)

	var fetchErr *Error
	assert.ErrorAs(t, err, &fetchErr)
	assert.Contains(t, err.Error(), "invalid URL")
}

func TestURL_HTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	result, err := URL(context.Background(), server.URL, nil)
	require.Error(t, err)
	assert.NotNil(t, result) // Result is returned even on error
	assert.Equal(t, http.StatusNotFound, result.StatusCode)

	var fetchErr *Error
	assert.ErrorAs(t, err, &fetchErr)
	assert.Contains(t, err.Error(), "404")
}

func TestExtractText_StripsNonContentTags(t *testing.T) {
	html := `
	<html>
		<head><style>body { color: red; }</style></head>
		<body>
			<script>var tracking = true;</script>
			<noscript>Enable JavaScript</noscript>
			<p>Items may be returned within 30 days.</p>
		</body>
	</html>`

	text, err := ExtractText(html)
	require.NoError(t, err)
	assert.Contains(t, text, "returned within 30 days")
	assert.NotContains(t, text, "tracking")
	assert.NotContains(t, text, "color: red")
	assert.NotContains(t, text, "Enable JavaScript")
}

func TestExtractText_CollapsesWhitespace(t *testing.T) {
	html := "<html><body><p>Refunds   are\n\n\n   issued    promptly.</p></body></html>"

	text, err := ExtractText(html)
	require.NoError(t, err)
	assert.Equal(t, "Refunds are\nissued promptly.", text)
}

func TestExtractText_NoBody(t *testing.T) {
	// goquery normalizes fragments into a body, but the fallback still must
	// not error on degenerate input.
	text, err := ExtractText("just some text")
	require.NoError(t, err)
	assert.Contains(t, text, "just some text")
}

func TestTruncate(t *testing.T) {
	short := "a short policy"
	assert.Equal(t, short, Truncate(short))

	long := strings.Repeat("r", MaxPolicyTextLen+500)
	truncated := Truncate(long)
	assert.Len(t, truncated, MaxPolicyTextLen)
}

func TestTruncate_RuneBoundary(t *testing.T) {
	long := strings.Repeat("ü", MaxPolicyTextLen+10)
	truncated := Truncate(long)
	assert.Equal(t, MaxPolicyTextLen, len([]rune(truncated)))
	assert.NotContains(t, truncated, "�")
}
