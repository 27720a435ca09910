package llm

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStripCodeFences(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{`{"a":1}`, `{"a":1}`},
		{"```json\n{\"a\":1}\n```", `{"a":1}`},
		{"```\n{\"a\":1}\n```", `{"a":1}`},
		{"  {\"a\":1}\n", `{"a":1}`},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, stripCodeFences(tt.in))
	}
}

func TestFinish(t *testing.T) {
	schema := &Schema{
		Name: "finish-test",
		Definition: map[string]any{
			"type":       "object",
			"properties": map[string]any{"text": map[string]any{"type": "string"}},
			"required":   []any{"text"},
		},
	}

	t.Run("fenced json is accepted", func(t *testing.T) {
		resp, err := finish(Request{Schema: schema}, rawOutput{
			Text:  "```json\n{\"text\":\"hi\"}\n```",
			Usage: Usage{InputTokens: 3, OutputTokens: 4},
			Model: "m",
		})
		require.NoError(t, err)
		assert.JSONEq(t, `{"text":"hi"}`, string(resp.Content))
		assert.Equal(t, 7, resp.Usage.TotalTokens)
		assert.Equal(t, "end", resp.StopReason)
		assert.Equal(t, "m", resp.Model)
	})

	t.Run("truncated", func(t *testing.T) {
		_, err := finish(Request{Schema: schema}, rawOutput{Text: `{"te`, Truncated: true})
		var maxTok *ErrMaxTokensExceeded
		require.True(t, errors.As(err, &maxTok))
		assert.Equal(t, `{"te`, string(maxTok.Content))
	})

	t.Run("schema mismatch", func(t *testing.T) {
		_, err := finish(Request{Schema: schema}, rawOutput{Text: `{"other":1}`})
		var invalid *ErrInvalidResponse
		assert.True(t, errors.As(err, &invalid))
	})

	t.Run("no schema passes text through", func(t *testing.T) {
		resp, err := finish(Request{}, rawOutput{Text: "plain"})
		require.NoError(t, err)
		assert.Equal(t, "plain", string(resp.Content))
	})
}

func TestStatusError(t *testing.T) {
	base := errors.New("boom")

	var rl *ErrRateLimit
	assert.True(t, errors.As(statusError(http.StatusTooManyRequests, base), &rl))

	var unavail *ErrProviderUnavailable
	assert.True(t, errors.As(statusError(http.StatusBadGateway, base), &unavail))
	assert.ErrorIs(t, statusError(http.StatusBadGateway, base), base)
}
