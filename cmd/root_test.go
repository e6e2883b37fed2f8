package cmd

import (
	"bytes"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matheuskafuri/billwatch/internal/congress"
)

func TestResolveRange(t *testing.T) {
	now := time.Date(2024, 5, 31, 15, 0, 0, 0, time.Local)
	week := 7 * 24 * time.Hour

	tests := []struct {
		name      string
		from, to  string
		wantStart string
		wantEnd   string
		err       bool
	}{
		{"defaults", "", "", "2024-05-24", "2024-05-31", false},
		{"from only", "2024-05-01", "", "2024-05-01", "2024-05-31", false},
		{"to only", "", "2024-04-10", "2024-04-03", "2024-04-10", false},
		{"both", "2024-01-01", "2024-01-31", "2024-01-01", "2024-01-31", false},
		{"bad from", "01/02/2024", "", "", "", true},
		{"bad to", "", "tomorrow", "", "", true},
	}
	for _, tt := range tests {
		got, err := resolveRange(tt.from, tt.to, week, now)
		if tt.err {
			if err == nil {
				t.Errorf("%s: expected error", tt.name)
			}
			continue
		}
		if err != nil {
			t.Errorf("%s: unexpected error: %v", tt.name, err)
			continue
		}
		if s := got.Start.Format(congress.DateLayout); s != tt.wantStart {
			t.Errorf("%s: start = %s, want %s", tt.name, s, tt.wantStart)
		}
		if e := got.End.Format(congress.DateLayout); e != tt.wantEnd {
			t.Errorf("%s: end = %s, want %s", tt.name, e, tt.wantEnd)
		}
	}
}

func TestResolveRangeAcrossDST(t *testing.T) {
	ny, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)
	saved := time.Local
	time.Local = ny
	defer func() { time.Local = saved }()

	got, err := resolveRange("", "2024-03-20", 30*24*time.Hour, time.Now())
	require.NoError(t, err)
	assert.Equal(t, "2024-02-19", got.Start.Format(congress.DateLayout))
	assert.Equal(t, "2024-03-20", got.End.Format(congress.DateLayout))
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		input string
		n     int
		want  string
	}{
		{"short", 10, "short"},
		{"a much longer title", 10, "a much ..."},
	}
	for _, tt := range tests {
		if got := truncate(tt.input, tt.n); got != tt.want {
			t.Errorf("truncate(%q, %d) = %q, want %q", tt.input, tt.n, got, tt.want)
		}
	}
}

const summariesJSON = `{
  "summaries": [
    {"actionDate": "2024-05-02", "updateDate": "2024-05-03T10:00:00Z",
     "bill": {"congress": 118, "type": "HR", "number": "1", "originChamber": "House", "title": "Tariff Relief Act", "url": "https://example.invalid/bill/118/hr/1"}},
    {"actionDate": "2024-05-04", "updateDate": "2024-05-05T10:00:00Z",
     "bill": {"congress": 118, "type": "HRES", "number": "2", "originChamber": "House", "title": "Honoring a retiring clerk"}},
    {"actionDate": "2024-05-06", "updateDate": "2024-05-07T10:00:00Z",
     "bill": {"congress": 118, "type": "S", "number": "3", "originChamber": "Senate", "title": "Farm Bill"}}
  ],
  "pagination": {"count": 3}
}`

func TestListCommand(t *testing.T) {
	var (
		mu   sync.Mutex
		keys []string
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		keys = append(keys, r.URL.Query().Get("api_key"))
		mu.Unlock()
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, summariesJSON)
	}))
	defer srv.Close()

	cfgPath := filepath.Join(t.TempDir(), "config.yaml")
	cfgBody := fmt.Sprintf("api_url: %s\napi_key: test-key\nlog_level: error\n", srv.URL)
	require.NoError(t, os.WriteFile(cfgPath, []byte(cfgBody), 0o600))

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs([]string{"list", "--config", cfgPath, "--from", "2024-05-01", "--to", "2024-05-31", "--sort", "number:desc"})
	t.Cleanup(func() {
		rootCmd.SetArgs(nil)
		flagConfig, flagFrom, flagTo = "", "", ""
	})

	require.NoError(t, rootCmd.Execute())

	got := out.String()
	assert.Contains(t, got, "Tariff Relief Act")
	assert.Contains(t, got, "Farm Bill")
	assert.NotContains(t, got, "Honoring", "default exclusions apply")
	assert.Contains(t, got, "05/02/2024")
	assert.Contains(t, got, "2 bills (3 loaded)")
	assert.Less(t, strings.Index(got, "Farm Bill"), strings.Index(got, "Tariff Relief Act"), "number:desc puts 3 before 1")
	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []string{"test-key"}, keys, "one short page ends the load")
}
