// Package browser hands congress.gov pages to the desktop browser.
package browser

import (
	"fmt"
	"net/url"
	"os/exec"
	"runtime"
)

// start launches the command without waiting for it. Replaced in tests.
var start = func(name string, args ...string) error {
	return exec.Command(name, args...).Start()
}

// Open validates rawURL and launches the platform opener for it.
func Open(rawURL string) error {
	if err := Validate(rawURL); err != nil {
		return err
	}
	name, args := command(runtime.GOOS, rawURL)
	if err := start(name, args...); err != nil {
		return fmt.Errorf("launching %s: %w", name, err)
	}
	return nil
}

// Validate accepts absolute http and https URLs only.
func Validate(rawURL string) error {
	u, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("invalid URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("refusing to open URL with scheme %q (only http/https allowed)", u.Scheme)
	}
	if u.Host == "" {
		return fmt.Errorf("refusing to open URL without host: %q", rawURL)
	}
	return nil
}

func command(goos, rawURL string) (string, []string) {
	switch goos {
	case "darwin":
		return "open", []string{rawURL}
	case "windows":
		// rundll32 avoids cmd's shell interpretation of the URL.
		return "rundll32", []string{"url.dll,FileProtocolHandler", rawURL}
	default:
		return "xdg-open", []string{rawURL}
	}
}
