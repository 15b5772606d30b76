package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

const (
	defaultBaseURL = "https://api.aladhan.com/v1"
	defaultTimeout = 10 * time.Second

	// DefaultCountry is used when a query leaves Country empty.
	DefaultCountry = "Indonesia"
	// MethodKemenag is the Al Adhan calculation method of the Indonesian
	// Ministry of Religious Affairs.
	MethodKemenag = 20
)

// Failure reasons reported by FetchByCity. Non-200 HTTP responses are
// reported as *StatusError instead.
var (
	ErrTimeout     = errors.New("request timed out")
	ErrUnavailable = errors.New("connection unavailable")
	ErrNotFound    = errors.New("schedule not found")
	ErrCanceled    = errors.New("request canceled")
)

// StatusError is returned when the API answers with a non-200 HTTP status.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("API returned status %d: %s", e.Code, e.Body)
}

// Query describes one timingsByCity request.
type Query struct {
	City    string
	Country string
	// Date is DD-MM-YYYY. Empty means the API's current day.
	Date   string
	Method int
}

// Client communicates with the Al Adhan prayer times API.
type Client struct {
	httpClient *http.Client
	baseURL    string
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL points the client at another API root, e.g. an httptest server.
func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = strings.TrimRight(u, "/") }
}

// WithTimeout bounds every request made by the client.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.httpClient.Timeout = d }
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// NewClient creates a new API client with sensible defaults.
func NewClient(opts ...Option) *Client {
	c := &Client{
		httpClient: &http.Client{
			Timeout: defaultTimeout,
		},
		baseURL: defaultBaseURL,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the API root the client talks to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// FetchByCity fetches the prayer schedule of a city for one day.
func (c *Client) FetchByCity(ctx context.Context, q Query) (*Data, error) {
	if q.Country == "" {
		q.Country = DefaultCountry
	}

	params := url.Values{}
	params.Set("city", q.City)
	params.Set("country", q.Country)
	params.Set("method", fmt.Sprintf("%d", q.Method))
	if q.Date != "" {
		params.Set("date", q.Date)
	}

	resp, err := c.doRequest(ctx, c.baseURL+"/timingsByCity", params)
	if err != nil {
		return nil, err
	}
	return &resp.Data, nil
}

func (c *Client) doRequest(ctx context.Context, endpoint string, params url.Values) (*Response, error) {
	reqURL := fmt.Sprintf("%s?%s", endpoint, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Debug().Err(err).Str("url", reqURL).Msg("prayer times request failed")
		return nil, classify(err)
	}
	defer resp.Body.Close()

	log.Debug().
		Str("url", reqURL).
		Int("status", resp.StatusCode).
		Dur("elapsed", time.Since(start)).
		Msg("prayer times request")

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, &StatusError{Code: resp.StatusCode, Body: string(body)}
	}

	var apiResp Response
	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		return nil, fmt.Errorf("failed to decode API response: %w", err)
	}

	if apiResp.Code != http.StatusOK {
		return nil, fmt.Errorf("%w: code=%d status=%s", ErrNotFound, apiResp.Code, apiResp.Status)
	}

	return &apiResp, nil
}

// classify tags a transport error with ErrCanceled, ErrTimeout or
// ErrUnavailable.
func classify(err error) error {
	if errors.Is(err, context.Canceled) {
		return fmt.Errorf("%w: %w", ErrCanceled, err)
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %w", ErrTimeout, err)
	}
	var ne net.Error
	if errors.As(err, &ne) && ne.Timeout() {
		return fmt.Errorf("%w: %w", ErrTimeout, err)
	}
	return fmt.Errorf("%w: %w", ErrUnavailable, err)
}
