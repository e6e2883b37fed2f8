package browser

import (
	"errors"
	"reflect"
	"testing"
)

func stubStart(t *testing.T, err error) *[]string {
	t.Helper()
	var calls []string
	orig := start
	start = func(name string, args ...string) error {
		calls = append(calls, name)
		calls = append(calls, args...)
		return err
	}
	t.Cleanup(func() { start = orig })
	return &calls
}

func TestOpenRejectsNonHTTP(t *testing.T) {
	calls := stubStart(t, nil)

	tests := []struct {
		url     string
		wantErr bool
	}{
		{"https://www.congress.gov/bill/118th-congress/house-bill/16", false},
		{"http://example.com", false},
		{"file:///etc/passwd", true},
		{"javascript:alert(1)", true},
		{"ftp://example.com", true},
		{"https://", true},
		{"", true},
	}

	for _, tt := range tests {
		err := Open(tt.url)
		if tt.wantErr && err == nil {
			t.Errorf("Open(%q): expected error, got nil", tt.url)
		}
		if !tt.wantErr && err != nil {
			t.Errorf("Open(%q): unexpected error %v", tt.url, err)
		}
	}
	if len(*calls) == 0 {
		t.Error("valid URLs should launch the opener")
	}
}

func TestOpenReportsLaunchFailure(t *testing.T) {
	stubStart(t, errors.New("no display"))
	if err := Open("https://example.com"); err == nil {
		t.Error("expected launch error")
	}
}

func TestCommand(t *testing.T) {
	const u = "https://example.com"
	tests := []struct {
		goos     string
		wantName string
		wantArgs []string
	}{
		{"darwin", "open", []string{u}},
		{"linux", "xdg-open", []string{u}},
		{"freebsd", "xdg-open", []string{u}},
		{"windows", "rundll32", []string{"url.dll,FileProtocolHandler", u}},
	}
	for _, tt := range tests {
		name, args := command(tt.goos, u)
		if name != tt.wantName || !reflect.DeepEqual(args, tt.wantArgs) {
			t.Errorf("command(%q) = %s %v, want %s %v", tt.goos, name, args, tt.wantName, tt.wantArgs)
		}
	}
}
