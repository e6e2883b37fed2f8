package congress

import (
	"errors"
	"fmt"
	"net/url"
)

// NetworkError is a transport-level failure: DNS, connection, timeout or
// cancellation.
type NetworkError struct {
	URL string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network error requesting %s: %v", e.URL, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// HTTPError is a response with a non-success status.
type HTTPError struct {
	Status int
	URL    string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("HTTP error! status: %d", e.Status)
}

// ParseError is a response body that could not be decoded.
type ParseError struct {
	URL string
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("decoding response from %s: %v", e.URL, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// IsHTTPStatus reports whether err is an HTTPError carrying status.
func IsHTTPStatus(err error, status int) bool {
	var he *HTTPError
	return errors.As(err, &he) && he.Status == status
}

// newNetworkError strips the *url.Error wrapper so the request URL, which
// carries the API key, never reaches an error string.
func newNetworkError(rawURL string, err error) *NetworkError {
	var ue *url.Error
	if errors.As(err, &ue) {
		err = ue.Err
	}
	return &NetworkError{URL: redactURL(rawURL), Err: err}
}

func redactURL(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "<invalid url>"
	}
	q := u.Query()
	if q.Has(apiKeyParam) {
		q.Set(apiKeyParam, "REDACTED")
		u.RawQuery = q.Encode()
	}
	return u.String()
}
