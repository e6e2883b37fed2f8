package congress

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"

	"github.com/matheuskafuri/billwatch/internal/detail"
)

const (
	// DefaultEndpoint is the public summaries collection.
	DefaultEndpoint = "https://api.congress.gov/v3/summaries"
	// PageLimit is the page size requested from the collection endpoint.
	PageLimit = 100
	// DemoKey is the shared, rate-limited key accepted by api.data.gov.
	DemoKey = "DEMO_KEY"

	apiKeyParam     = "api_key"
	maxBodyBytes    = 32 << 20
	defaultTimeout  = 30 * time.Second
	defaultUAString = "billwatch"
)

// SortSpec is the server-side ordering of the collection.
type SortSpec struct {
	Field string
	Order string
}

// DefaultSort asks for the oldest updates first so offsets stay stable while
// paging.
var DefaultSort = SortSpec{Field: FieldUpdateDate, Order: "asc"}

// String returns the wire token, e.g. "updateDate+asc".
func (s SortSpec) String() string {
	return s.Field + "+" + s.Order
}

// PageRequest describes one page of the collection.
type PageRequest struct {
	Range  DateRange
	Sort   SortSpec
	Offset int
	Limit  int
}

// Options configures a Client.
type Options struct {
	Endpoint   string
	APIKey     string
	Timeout    time.Duration
	UserAgent  string
	HTTPClient *http.Client
	Logger     zerolog.Logger
}

// Client talks to the congress.gov API. It is safe for concurrent use.
type Client struct {
	endpoint  string
	apiKey    string
	userAgent string
	http      *http.Client
	log       zerolog.Logger
	details   singleflight.Group
}

// NewClient builds a Client. Empty options fall back to the public endpoint,
// the demo key and a 30s timeout.
func NewClient(opts Options) *Client {
	c := &Client{
		endpoint:  opts.Endpoint,
		apiKey:    opts.APIKey,
		userAgent: opts.UserAgent,
		http:      opts.HTTPClient,
		log:       opts.Logger,
	}
	if c.endpoint == "" {
		c.endpoint = DefaultEndpoint
	}
	if c.apiKey == "" {
		c.apiKey = DemoKey
	}
	if c.userAgent == "" {
		c.userAgent = defaultUAString
	}
	if c.http == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = defaultTimeout
		}
		c.http = &http.Client{Timeout: timeout}
	}
	return c
}

func (c *Client) pageURL(req PageRequest) (string, error) {
	u, err := url.Parse(c.endpoint)
	if err != nil {
		return "", fmt.Errorf("invalid endpoint %q: %w", c.endpoint, err)
	}
	sort := req.Sort
	if sort.Field == "" {
		sort = DefaultSort
	}
	limit := req.Limit
	if limit <= 0 {
		limit = PageLimit
	}

	q := u.Query()
	q.Set(apiKeyParam, c.apiKey)
	q.Set("fromDateTime", FormatWireDate(req.Range.Start))
	q.Set("toDateTime", FormatWireDate(req.Range.End))
	// The space is encoded as '+', which is what the API expects between
	// field and direction.
	q.Set("sort", sort.Field+" "+sort.Order)
	q.Set("offset", strconv.Itoa(req.Offset))
	q.Set("limit", strconv.Itoa(limit))
	u.RawQuery = q.Encode()
	return u.String(), nil
}

// FetchPage requests one page of summaries. It never retries.
func (c *Client) FetchPage(ctx context.Context, req PageRequest) (Page, error) {
	pageURL, err := c.pageURL(req)
	if err != nil {
		return Page{}, err
	}
	body, err := c.get(ctx, pageURL)
	if err != nil {
		return Page{}, err
	}
	var page Page
	if err := json.Unmarshal(body, &page); err != nil {
		return Page{}, &ParseError{URL: redactURL(pageURL), Err: err}
	}
	c.log.Debug().
		Int("offset", req.Offset).
		Int("records", page.Len()).
		Int("count", page.Pagination.Count).
		Msg("fetched summaries page")
	return page, nil
}

// FetchDetail requests the extended record behind a summary's bill URL.
// Concurrent calls for the same URL share one request.
func (c *Client) FetchDetail(ctx context.Context, detailURL string) (detail.Value, error) {
	if detailURL == "" {
		return detail.Value{}, fmt.Errorf("bill has no detail url")
	}
	v, err, shared := c.details.Do(detailURL, func() (any, error) {
		u, err := url.Parse(detailURL)
		if err != nil {
			return nil, fmt.Errorf("invalid detail url: %w", err)
		}
		q := u.Query()
		q.Set(apiKeyParam, c.apiKey)
		u.RawQuery = q.Encode()

		body, err := c.get(ctx, u.String())
		if err != nil {
			return nil, err
		}
		val, err := detail.Parse(body)
		if err != nil {
			return nil, &ParseError{URL: redactURL(u.String()), Err: err}
		}
		return val, nil
	})
	if err != nil {
		return detail.Value{}, err
	}
	if shared {
		c.log.Debug().Str("url", detailURL).Msg("detail request shared")
	}
	return v.(detail.Value), nil
}

func (c *Client) get(ctx context.Context, rawURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		nerr := newNetworkError(rawURL, err)
		c.log.Warn().Err(nerr.Err).Str("url", nerr.URL).Msg("request failed")
		return nil, nerr
	}
	defer resp.Body.Close()

	c.log.Debug().
		Str("url", redactURL(rawURL)).
		Int("status", resp.StatusCode).
		Dur("elapsed", time.Since(start)).
		Msg("congress api response")

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxBodyBytes))
		return nil, &HTTPError{Status: resp.StatusCode, URL: redactURL(rawURL)}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, newNetworkError(rawURL, err)
	}
	return body, nil
}
