package update

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/Masterminds/semver/v3"
)

// ReleasesURL is the GitHub endpoint for the latest billwatch release.
const ReleasesURL = "https://api.github.com/repos/matheuskafuri/billwatch/releases/latest"

// Result holds the outcome of a version check.
type Result struct {
	CurrentVersion string
	LatestVersion  string
}

type ghRelease struct {
	TagName string `json:"tag_name"`
}

// Checker queries a releases endpoint. The zero value uses ReleasesURL and
// http.DefaultClient.
type Checker struct {
	URL    string
	Client *http.Client
}

// Check reports whether a newer release than currentVersion exists.
// Returns nil on any error or when already up to date; the check is
// advisory only.
func Check(ctx context.Context, currentVersion string) *Result {
	return Checker{}.Check(ctx, currentVersion)
}

func (c Checker) Check(ctx context.Context, currentVersion string) *Result {
	current, err := semver.NewVersion(currentVersion)
	if err != nil {
		// "dev" builds never nag.
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	endpoint := c.URL
	if endpoint == "" {
		endpoint = ReleasesURL
	}
	client := c.Client
	if client == nil {
		client = http.DefaultClient
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil
	}
	req.Header.Set("Accept", "application/vnd.github+json")

	resp, err := client.Do(req)
	if err != nil {
		return nil
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil
	}

	var release ghRelease
	if err := json.NewDecoder(resp.Body).Decode(&release); err != nil {
		return nil
	}

	latest, err := semver.NewVersion(strings.TrimSpace(release.TagName))
	if err != nil || !latest.GreaterThan(current) {
		return nil
	}

	return &Result{CurrentVersion: current.String(), LatestVersion: latest.String()}
}
