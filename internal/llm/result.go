package llm

import (
	"encoding/json"
	"net/http"
	"strings"
)

// rawOutput is what a backend returned before the shared checks run.
type rawOutput struct {
	Text      string
	Truncated bool
	Usage     Usage
	Model     string
}

// finish turns raw model text into a Response: code fences are stripped,
// truncated output becomes ErrMaxTokensExceeded and structured requests
// are checked against their schema.
func finish(req Request, out rawOutput) (*Response, error) {
	content := json.RawMessage(stripCodeFences(out.Text))
	if out.Truncated {
		return nil, &ErrMaxTokensExceeded{Content: content}
	}
	if err := validateResponse(req.Schema, content); err != nil {
		return nil, err
	}
	if out.Usage.TotalTokens == 0 {
		out.Usage.TotalTokens = out.Usage.InputTokens + out.Usage.OutputTokens
	}
	return &Response{
		Content:    content,
		Usage:      out.Usage,
		Model:      out.Model,
		StopReason: "end",
	}, nil
}

// stripCodeFences removes a ```json ... ``` wrapper some models add even
// in JSON mode.
func stripCodeFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}

// statusError maps an SDK error with an HTTP status to the retryable error
// types. Everything that is not a rate limit counts as unavailable.
func statusError(status int, err error) error {
	if status == http.StatusTooManyRequests {
		return &ErrRateLimit{Err: err}
	}
	return &ErrProviderUnavailable{Err: err}
}

// resolveModel maps a short model name to a provider model ID. Unknown
// names pass through so full model IDs work too.
func resolveModel(name string, models map[string]string) string {
	if id, ok := models[name]; ok {
		return id
	}
	return name
}
