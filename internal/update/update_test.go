package update

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func releaseServer(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "application/vnd.github+json", r.Header.Get("Accept"))
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestCheckNewerRelease(t *testing.T) {
	srv := releaseServer(t, http.StatusOK, `{"tag_name":"v1.4.0"}`)
	res := Checker{URL: srv.URL}.Check(context.Background(), "v1.2.3")
	require.NotNil(t, res)
	assert.Equal(t, "1.4.0", res.LatestVersion)
	assert.Equal(t, "1.2.3", res.CurrentVersion)
}

func TestCheckNoUpdate(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		current string
	}{
		{"same version", http.StatusOK, `{"tag_name":"v1.2.3"}`, "1.2.3"},
		{"older release", http.StatusOK, `{"tag_name":"v1.0.0"}`, "1.2.3"},
		{"prerelease is older", http.StatusOK, `{"tag_name":"v1.2.3-rc.1"}`, "1.2.3"},
		{"dev build", http.StatusOK, `{"tag_name":"v9.9.9"}`, "dev"},
		{"bad tag", http.StatusOK, `{"tag_name":"latest"}`, "1.0.0"},
		{"server error", http.StatusInternalServerError, ``, "1.0.0"},
		{"malformed body", http.StatusOK, `{`, "1.0.0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := releaseServer(t, tt.status, tt.body)
			assert.Nil(t, Checker{URL: srv.URL}.Check(context.Background(), tt.current))
		})
	}
}
