package api

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

	"clientctl/pkg/logging"

	"github.com/google/uuid"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

const (
	// RequestIDHeader carries a per-request id that ties client logs to server logs.
	RequestIDHeader = "X-Request-ID"

	// maxErrorBody bounds how much of a failed response body is kept on RequestError.
	maxErrorBody = 4 << 10

	subsystem = "API"
)

// Options configures a Client.
type Options struct {
	// BaseURL is the endpoint page URL. Relative request paths resolve against it.
	BaseURL string

	// HTTPClient overrides the default client. Its transport is used as is.
	HTTPClient *http.Client

	// Timeout bounds every request. Zero leaves cancellation to the caller's context.
	Timeout time.Duration

	// AntiForgery is attached to write requests when valid.
	AntiForgery AntiForgery
}

// Client talks JSON to the Client REST resource.
type Client struct {
	base        *url.URL
	httpClient  *http.Client
	timeout     time.Duration
	antiForgery AntiForgery
}

// NewClient creates a Client for the endpoint in opts.
//
// The endpoint is treated as a directory: a missing trailing slash is added so
// that "api" resolves below it rather than replacing its last segment.
func NewClient(opts Options) (*Client, error) {
	if strings.TrimSpace(opts.BaseURL) == "" {
		return nil, fmt.Errorf("base URL is required")
	}
	base, err := url.Parse(opts.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base URL %q: %w", opts.BaseURL, err)
	}
	if base.Scheme != "http" && base.Scheme != "https" {
		return nil, fmt.Errorf("invalid base URL %q: scheme must be http or https", opts.BaseURL)
	}
	if !strings.HasSuffix(base.Path, "/") {
		base.Path += "/"
	}

	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		}
	}

	return &Client{
		base:        base,
		httpClient:  httpClient,
		timeout:     opts.Timeout,
		antiForgery: opts.AntiForgery,
	}, nil
}

// BaseURL returns the normalised endpoint URL.
func (c *Client) BaseURL() string {
	return c.base.String()
}

// SetAntiForgery replaces the header attached to write requests.
func (c *Client) SetAntiForgery(af AntiForgery) {
	c.antiForgery = af
}

// AntiForgery returns the header currently attached to write requests.
func (c *Client) AntiForgery() AntiForgery {
	return c.antiForgery
}

// Resolve returns the absolute URL of a relative path.
func (c *Client) Resolve(path string) (string, error) {
	ref, err := url.Parse(path)
	if err != nil {
		return "", fmt.Errorf("invalid path %q: %w", path, err)
	}
	return c.base.ResolveReference(ref).String(), nil
}

// Get decodes the JSON body of GET path into out.
func (c *Client) Get(ctx context.Context, path string, out interface{}) error {
	return c.do(ctx, http.MethodGet, path, nil, out)
}

// Post sends body as JSON and decodes the response into out.
func (c *Client) Post(ctx context.Context, path string, body, out interface{}) error {
	return c.do(ctx, http.MethodPost, path, body, out)
}

// Put sends body as JSON and decodes the response into out.
func (c *Client) Put(ctx context.Context, path string, body, out interface{}) error {
	return c.do(ctx, http.MethodPut, path, body, out)
}

// Delete issues DELETE path. Any 2xx, including 204 No Content, is success.
func (c *Client) Delete(ctx context.Context, path string) error {
	return c.do(ctx, http.MethodDelete, path, nil, nil)
}

func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	target, err := c.Resolve(path)
	if err != nil {
		return err
	}

	var payload io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding %s %s body: %w", method, target, err)
		}
		payload = bytes.NewReader(data)
	}

	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, method, target, payload)
	if err != nil {
		return fmt.Errorf("building %s %s: %w", method, target, err)
	}

	requestID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set(RequestIDHeader, requestID)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if method != http.MethodGet && c.antiForgery.Valid() {
		req.Header.Set(c.antiForgery.Header, c.antiForgery.Token)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		logging.Debug(subsystem, "%s %s failed after %s (request %s): %v", method, target, time.Since(start), requestID, err)
		return &TransportError{Method: method, URL: target, Err: err}
	}
	defer resp.Body.Close()

	logging.Debug(subsystem, "%s %s -> %d in %s (request %s)", method, target, resp.StatusCode, time.Since(start), requestID)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return &RequestError{
			Method:     method,
			URL:        target,
			StatusCode: resp.StatusCode,
			Body:       string(snippet),
		}
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		// Drain so the connection can be reused.
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &RequestError{
			Method:     method,
			URL:        target,
			StatusCode: resp.StatusCode,
			Err:        err,
		}
	}
	return nil
}
