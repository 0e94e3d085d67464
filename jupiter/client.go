package jupiter

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// DefaultBaseURL is the public quote API.
const DefaultBaseURL = "https://quote-api.jup.ag/v6"

// Client talks to a Jupiter swap API deployment. It is safe for concurrent
// use; the underlying http.Client owns connection pooling.
type Client struct {
	baseURL    string
	apiKey     string
	http       *http.Client
	middleware []Middleware
	retry      RetryPolicy
}

// Option customizes a Client.
type Option func(*Client)

// WithHTTPClient replaces the pooled default transport.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithAPIKey sends the key as an x-api-key header on every request.
func WithAPIKey(key string) Option {
	return func(c *Client) { c.apiKey = strings.TrimSpace(key) }
}

// WithMiddleware appends interceptors to the chain. They run in the order
// given.
func WithMiddleware(mw ...Middleware) Option {
	return func(c *Client) { c.middleware = append(c.middleware, mw...) }
}

// WithRetry sets the policy used by QuoteWithRetry.
func WithRetry(maxAttempts int, delay time.Duration) Option {
	return func(c *Client) { c.retry = RetryPolicy{MaxAttempts: maxAttempts, Delay: delay} }
}

// NewClient creates a client for the given base URL (DefaultBaseURL when
// empty).
func NewClient(baseURL string, opts ...Option) *Client {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	c := &Client{
		baseURL: baseURL,
		http: &http.Client{
			Timeout: 30 * time.Second,
			Transport: &http.Transport{
				IdleConnTimeout:     60 * time.Second,
				MaxIdleConnsPerHost: 8,
			},
		},
		retry: DefaultRetryPolicy,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the configured service base URL.
func (c *Client) BaseURL() string { return c.baseURL }

// Quote prices and routes the requested exchange without committing to
// execution.
func (c *Client) Quote(ctx context.Context, req *QuoteRequest) (*QuoteResponse, error) {
	var out QuoteResponse
	if err := c.getJSON(ctx, "/quote", req.QueryValues(), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Swap builds the transaction for a quote. extraArgs may carry additional
// query parameters; nil is fine. The call is single-shot: the service does
// not guarantee idempotency for it, so it is never retried.
func (c *Client) Swap(ctx context.Context, req *SwapRequest, extraArgs url.Values) (*SwapResponse, error) {
	var out SwapResponse
	if err := c.postJSON(ctx, "/swap", extraArgs, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// SwapInstructions returns the swap decomposed into instructions instead of a
// prebuilt transaction. Single-shot, like Swap.
func (c *Client) SwapInstructions(ctx context.Context, req *SwapRequest) (*SwapInstructionsResponse, error) {
	var out SwapInstructionsResponse
	if err := c.postJSON(ctx, "/swap-instructions", nil, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Version returns the service version string.
func (c *Client) Version(ctx context.Context) (string, error) {
	body, err := c.send(ctx, http.MethodGet, "/version", nil, nil)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(body)), nil
}

func (c *Client) getJSON(ctx context.Context, path string, query url.Values, out any) error {
	body, err := c.send(ctx, http.MethodGet, path, query, nil)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, out); err != nil {
		return &DecodeResponseError{Endpoint: path, Err: err}
	}
	return nil
}

func (c *Client) postJSON(ctx context.Context, path string, query url.Values, in, out any) error {
	payload, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("encode %s request: %w", path, err)
	}
	body, err := c.send(ctx, http.MethodPost, path, query, payload)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, out); err != nil {
		return &DecodeResponseError{Endpoint: path, Err: err}
	}
	return nil
}

// send issues one exchange through the middleware chain and classifies the
// outcome: transport errors pass through untouched, non-2xx statuses become
// *HTTPError with the body captured verbatim, and a success returns the raw
// body for the caller to decode.
func (c *Client) send(ctx context.Context, method, path string, query url.Values, payload []byte) ([]byte, error) {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var bodyReader io.Reader
	if payload != nil {
		bodyReader = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, u, bodyReader)
	if err != nil {
		return nil, err
	}
	req.Header.Set("accept", "application/json")
	if payload != nil {
		req.Header.Set("content-type", "application/json")
	}
	if c.apiKey != "" {
		req.Header.Set("x-api-key", c.apiKey)
	}

	rt := RoundTripFunc(c.http.Do)
	for i := len(c.middleware) - 1; i >= 0; i-- {
		rt = c.middleware[i](rt)
	}

	res, err := rt(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	body, _ := io.ReadAll(res.Body)
	if res.StatusCode < 200 || res.StatusCode >= 300 {
		return nil, &HTTPError{StatusCode: res.StatusCode, Body: body}
	}
	return body, nil
}
