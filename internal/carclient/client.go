package carclient

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"autovad-backend/internal/media"
)

// Error taxonomy of the fetch boundary. Everything the transport can
// produce collapses into one of these, wrapped with detail.
var (
	// ErrNetwork is a transport failure that survived the retry policy.
	ErrNetwork = errors.New("cars api unreachable")
	// ErrUpstream is a non-2xx response (after retries for 429/5xx).
	ErrUpstream = errors.New("cars api error")
	// ErrInvalidResponse means the payload was not the expected list shape.
	ErrInvalidResponse = errors.New("cars api returned unexpected payload")
	// ErrNotFound is a missing car on the detail endpoint.
	ErrNotFound = errors.New("car not found")
)

const (
	defaultMaxAttempts = 3
	defaultRetryDelay  = time.Second
)

// placeholderSeller is attributed to listings without a seller
// reference. Seller linking is handled by a separate ownership flow;
// until a listing is claimed it is presented under the house identity.
var placeholderSeller = Seller{
	ID:        "demo",
	Name:      "Autovad Demo",
	AvatarURL: "https://images.pexels.com/photos/614810/pexels-photo-614810.jpeg?auto=compress&cs=tinysrgb&w=150&h=150&fit=crop",
	Rating:    5.0,
	Verified:  true,
}

// Client fetches listings from the cars API and normalizes them.
// Transient failures (network errors, 5xx, 429) are retried with pure
// exponential backoff: MaxAttempts tries total, RetryDelay before the
// second try, doubling after. Other 4xx fail immediately. Context
// cancellation aborts at once, including during a backoff wait.
type Client struct {
	BaseURL     string
	APIKey      string
	HTTPClient  *http.Client
	MaxAttempts int           // 0 means defaultMaxAttempts
	RetryDelay  time.Duration // 0 means defaultRetryDelay
}

// Page is one normalized page of listings plus cursor-derived state.
type Page struct {
	Cars       []Car
	TotalCount int
	Page       int
	Limit      int
	HasMore    bool
}

type listEnvelope struct {
	Success    bool            `json:"success"`
	Data       json.RawMessage `json:"data"`
	Count      int             `json:"count"`
	TotalCount int             `json:"totalCount"`
	Error      string          `json:"error"`
}

// FetchPage executes q against the listings store.
func (c *Client) FetchPage(ctx context.Context, q Query) (*Page, error) {
	params := url.Values{}
	if q.Search != "" {
		params.Set("query", q.Search)
	}
	params.Set("page", strconv.Itoa(q.Page))
	params.Set("limit", strconv.Itoa(q.Limit))

	body, err := c.get(ctx, "/cars?"+params.Encode())
	if err != nil {
		return nil, err
	}

	var env listEnvelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}
	var cars []Car
	if err := json.Unmarshal(env.Data, &cars); err != nil {
		return nil, fmt.Errorf("%w: data is not a list", ErrInvalidResponse)
	}
	for i := range cars {
		normalize(&cars[i])
	}

	total := env.TotalCount
	if total == 0 {
		total = env.Count
	}
	return &Page{
		Cars:       cars,
		TotalCount: total,
		Page:       q.Page,
		Limit:      q.Limit,
		HasMore:    q.Offset()+q.Limit < total,
	}, nil
}

type carEnvelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
}

// FetchCar retrieves a single listing by id.
func (c *Client) FetchCar(ctx context.Context, id string) (*Car, error) {
	body, err := c.get(ctx, "/cars/"+url.PathEscape(id))
	if err != nil {
		return nil, err
	}
	var env carEnvelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}
	var car Car
	if err := json.Unmarshal(env.Data, &car); err != nil || car.ID == "" {
		return nil, fmt.Errorf("%w: data is not a car", ErrInvalidResponse)
	}
	normalize(&car)
	return &car, nil
}

// get runs the retry loop around one GET. It returns the body of the
// first 2xx response, or the typed error that ended the attempts.
func (c *Client) get(ctx context.Context, path string) ([]byte, error) {
	attempts := c.MaxAttempts
	if attempts <= 0 {
		attempts = defaultMaxAttempts
	}
	delay := c.RetryDelay
	if delay <= 0 {
		delay = defaultRetryDelay
	}
	httpClient := c.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 15 * time.Second}
	}

	var lastErr error
	for attempt := 0; attempt < attempts; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(delay):
			}
			delay *= 2
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+path, nil)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrNetwork, err)
		}
		if c.APIKey != "" {
			req.Header.Set("apikey", c.APIKey)
			req.Header.Set("Authorization", "Bearer "+c.APIKey)
		}
		req.Header.Set("Content-Type", "application/json")

		resp, err := httpClient.Do(req)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			lastErr = fmt.Errorf("%w: %v", ErrNetwork, err)
			continue
		}
		body, readErr := io.ReadAll(resp.Body)
		resp.Body.Close()

		switch {
		case resp.StatusCode >= 200 && resp.StatusCode < 300:
			if readErr != nil {
				lastErr = fmt.Errorf("%w: %v", ErrNetwork, readErr)
				continue
			}
			return body, nil
		case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500:
			lastErr = fmt.Errorf("%w: status %d", ErrUpstream, resp.StatusCode)
			continue
		case resp.StatusCode == http.StatusNotFound:
			return nil, ErrNotFound
		default:
			// Other 4xx: the request itself is wrong, retrying cannot help.
			return nil, fmt.Errorf("%w: status %d", ErrUpstream, resp.StatusCode)
		}
	}
	return nil, lastErr
}

// normalize rewrites video references into playable URLs (dropping
// malformed ones) and fills a missing seller with the placeholder
// identity.
func normalize(car *Car) {
	if len(car.Videos) > 0 {
		videos := make([]string, 0, len(car.Videos))
		for _, ref := range car.Videos {
			if u := media.PlaybackURL(ref); u != "" {
				videos = append(videos, u)
			}
		}
		car.Videos = videos
	}
	if car.Seller == nil {
		s := placeholderSeller
		car.Seller = &s
	}
}
