package osm

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const (
	DefaultNominatimURL = "https://nominatim.openstreetmap.org"
	DefaultOSRMURL      = "https://router.project-osrm.org"
	DefaultProfile      = "driving"
	DefaultUserAgent    = "RoadtripPlanner/1.0"
)

// Metrics receives one observation per outbound request. May be nil.
type Metrics interface {
	GeocodeObserved(outcome string)
	RouteObserved(outcome string)
}

type Options struct {
	NominatimURL string
	OSRMURL      string
	Profile      string
	UserAgent    string
	Timeout      time.Duration
	Metrics      Metrics
}

// Client talks to Nominatim (geocoding) and OSRM (routing).
//
// It implements ports.Geocoder and ports.SegmentRouter. Requests are never
// retried: a failed lookup needs a new user initiated attempt.
//
// The client is safe for concurrent use.
type Client struct {
	session      *http.Client
	nominatimURL string
	osrmURL      string
	profile      string
	userAgent    string
	metrics      Metrics
}

func NewClient(opts Options) (*Client, error) {
	c := &Client{
		session:      &http.Client{Timeout: 10 * time.Second},
		nominatimURL: DefaultNominatimURL,
		osrmURL:      DefaultOSRMURL,
		profile:      DefaultProfile,
		userAgent:    DefaultUserAgent,
		metrics:      opts.Metrics,
	}

	if opts.Timeout > 0 {
		c.session.Timeout = opts.Timeout
	}
	if opts.NominatimURL != "" {
		c.nominatimURL = strings.TrimRight(opts.NominatimURL, "/")
	}
	if opts.OSRMURL != "" {
		c.osrmURL = strings.TrimRight(opts.OSRMURL, "/")
	}
	if opts.Profile != "" {
		c.profile = opts.Profile
	}
	if opts.UserAgent != "" {
		c.userAgent = opts.UserAgent
	}

	if strings.ContainsAny(c.profile, "/?#") {
		return nil, errors.New("osm client: profile must be a single path segment")
	}

	return c, nil
}

type httpStatusError struct {
	Code int
	Body string
}

func (e *httpStatusError) Error() string {
	return fmt.Sprintf("Code %d: %s", e.Code, e.Body)
}

func (c *Client) newRequest(ctx context.Context, method, url string) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, url, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	return req, nil
}

func (c *Client) do(req *http.Request) (*http.Response, error) {
	resp, err := c.session.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode >= 400 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		resp.Body.Close()
		return nil, &httpStatusError{
			Code: resp.StatusCode,
			Body: strings.TrimSpace(string(b)),
		}
	}
	return resp, nil
}

func (c *Client) observeGeocode(outcome string) {
	if c.metrics != nil {
		c.metrics.GeocodeObserved(outcome)
	}
}

func (c *Client) observeRoute(outcome string) {
	if c.metrics != nil {
		c.metrics.RouteObserved(outcome)
	}
}
