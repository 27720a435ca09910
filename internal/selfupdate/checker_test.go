package selfupdate

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func releaseServer(t *testing.T, body string, status int) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/repos/abhisek/calctutor/releases/latest" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(server.Close)
	return server
}

func TestCheck(t *testing.T) {
	tests := []struct {
		name    string
		tag     string
		current string
		want    bool
	}{
		{"newer", "v1.3.0", "v1.2.9", true},
		{"same", "v1.2.0", "v1.2.0", false},
		{"older", "v1.1.0", "v1.2.0", false},
		{"no v prefix", "1.10.0", "1.9.0", true},
		{"prerelease is older", "v2.0.0-rc.1", "v2.0.0", false},
		{"invalid current", "v1.0.0", "(devel)", false},
		{"invalid tag", "nightly", "v1.0.0", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := releaseServer(t, `{"tag_name":"`+tt.tag+`","html_url":"https://example.com/r"}`, http.StatusOK)
			res, err := NewChecker(WithBaseURL(server.URL)).Check(context.Background(), &CheckInput{Version: tt.current})
			require.NoError(t, err)
			assert.Equal(t, tt.want, res.UpdateAvailable)
			assert.Equal(t, tt.tag, res.LatestVersion)
			assert.Equal(t, "https://example.com/r", res.ReleaseURL)
		})
	}
}

func TestCheck_Errors(t *testing.T) {
	t.Run("http status", func(t *testing.T) {
		server := releaseServer(t, "", http.StatusForbidden)
		_, err := NewChecker(WithBaseURL(server.URL)).Check(context.Background(), &CheckInput{Version: "v1.0.0"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "HTTP 403")
	})

	t.Run("bad json", func(t *testing.T) {
		server := releaseServer(t, "{", http.StatusOK)
		_, err := NewChecker(WithBaseURL(server.URL)).Check(context.Background(), &CheckInput{Version: "v1.0.0"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "decode release")
	})
}

func TestCanonical(t *testing.T) {
	assert.Equal(t, "v1.2.0", canonical("1.2"))
	assert.Equal(t, "v1.2.3", canonical(" v1.2.3 "))
	assert.Equal(t, "", canonical(""))
	assert.Equal(t, "", canonical("latest"))
}
