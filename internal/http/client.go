// Package http implements the transport layer for the WIPP client: a
// retryable HTTP client that attaches bearer tokens, merges query parameters
// into the base URL, and maps non-success statuses onto the error taxonomy.
package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path"
	"time"

	"github.com/hashicorp/go-retryablehttp"

	"github.com/polusai/wipp-client/internal/auth"
	"github.com/polusai/wipp-client/internal/constants"
	"github.com/polusai/wipp-client/pkg/wipp"
)

const defaultUserAgent = "wipp-client-go"

// Logger is the structured logging interface used for debug output.
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, fields map[string]interface{})
}

// Request represents an HTTP request to the WIPP API. Path is relative to the
// base URL; Query is merged over the base URL's own query string, with
// request values winning on key collision.
type Request struct {
	Method  string
	Path    string
	Query   url.Values
	Body    interface{}
	Headers map[string]string
}

// Response represents an HTTP response from the WIPP API.
type Response struct {
	StatusCode int
	Headers    http.Header
	Body       []byte
}

// Client is the WIPP API transport.
type Client struct {
	baseURL    string
	tokens     auth.TokenManager
	httpClient *retryablehttp.Client
	logger     Logger
	debug      bool
	userAgent  string
}

// Option configures the client.
type Option func(*Client)

// WithLogger sets a structured logger.
func WithLogger(logger Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithDebug enables request/response logging through the configured logger.
func WithDebug(debug bool) Option {
	return func(c *Client) {
		c.debug = debug
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(userAgent string) Option {
	return func(c *Client) {
		c.userAgent = userAgent
	}
}

// WithRetryConfig enables transport-level retries for transient failures
// (>=500, 429, connection errors). Status 4xx responses are never retried.
func WithRetryConfig(retryMax int, waitMin, waitMax time.Duration) Option {
	return func(c *Client) {
		c.httpClient.RetryMax = retryMax
		c.httpClient.RetryWaitMin = waitMin
		c.httpClient.RetryWaitMax = waitMax
	}
}

// NewClient creates a transport for the given base URL. tokens may be nil, in
// which case requests carry no Authorization header.
func NewClient(baseURL string, tokens auth.TokenManager, opts ...Option) *Client {
	retryClient := retryablehttp.NewClient()
	retryClient.RetryMax = 0
	retryClient.RetryWaitMin = constants.DefaultRetryWaitMin
	retryClient.RetryWaitMax = constants.DefaultRetryWaitMax
	retryClient.HTTPClient.Timeout = constants.DefaultHTTPTimeout
	retryClient.Logger = nil
	// Keep the final response when retries are exhausted so its status still
	// maps onto the error taxonomy.
	retryClient.ErrorHandler = retryablehttp.PassthroughErrorHandler

	client := &Client{
		baseURL:    baseURL,
		tokens:     tokens,
		httpClient: retryClient,
		userAgent:  defaultUserAgent,
	}

	for _, opt := range opts {
		opt(client)
	}

	return client
}

// RequestURL composes the full URL for a request path and query. The path is
// appended to the base URL's path; query parameters present on the base URL
// are kept unless the request overrides the same key. Pure: no state access.
func (c *Client) RequestURL(requestPath string, query url.Values) (string, error) {
	base, err := url.Parse(c.baseURL)
	if err != nil {
		return "", fmt.Errorf("%w: parsing base URL %q: %v", wipp.ErrInvalidConfiguration, c.baseURL, err)
	}

	if requestPath != "" {
		base.Path = path.Join("/", base.Path, requestPath)
	}

	merged := base.Query()
	for key, values := range query {
		merged[key] = values
	}

	base.RawQuery = merged.Encode()

	return base.String(), nil
}

// Do executes a request. Non-2xx statuses are returned as a *wipp.APIError
// alongside the response; transport failures wrap wipp.ErrRequestFailed.
func (c *Client) Do(ctx context.Context, req *Request) (*Response, error) {
	fullURL, err := c.RequestURL(req.Path, req.Query)
	if err != nil {
		return nil, err
	}

	var bodyReader io.Reader

	if req.Body != nil {
		payload, err := json.Marshal(req.Body)
		if err != nil {
			return nil, fmt.Errorf("marshaling request body: %w", err)
		}

		bodyReader = bytes.NewReader(payload)
	}

	httpReq, err := retryablehttp.NewRequestWithContext(ctx, req.Method, fullURL, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("User-Agent", c.userAgent)

	if req.Body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}

	for key, value := range req.Headers {
		httpReq.Header.Set(key, value)
	}

	err = c.attachToken(ctx, httpReq)
	if err != nil {
		return nil, err
	}

	if c.debug && c.logger != nil {
		c.logger.Debug("HTTP Request", map[string]interface{}{
			"method": req.Method,
			"url":    fullURL,
		})
	}

	httpResp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", wipp.ErrRequestFailed, err)
	}

	defer func() {
		_ = httpResp.Body.Close()
	}()

	body, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: reading response body: %w", wipp.ErrRequestFailed, err)
	}

	resp := &Response{
		StatusCode: httpResp.StatusCode,
		Headers:    httpResp.Header,
		Body:       body,
	}

	if c.debug && c.logger != nil {
		c.logger.Debug("HTTP Response", map[string]interface{}{
			"status": resp.StatusCode,
			"url":    fullURL,
		})
	}

	if resp.StatusCode >= http.StatusBadRequest {
		return resp, &wipp.APIError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	return resp, nil
}

func (c *Client) attachToken(ctx context.Context, req *retryablehttp.Request) error {
	if c.tokens == nil {
		return nil
	}

	token, err := c.tokens.GetToken(ctx)
	if err != nil {
		return fmt.Errorf("%w: getting token: %w", wipp.ErrAuthentication, err)
	}

	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	return nil
}

// Get performs a GET request.
func (c *Client) Get(ctx context.Context, path string, query url.Values) (*Response, error) {
	return c.Do(ctx, &Request{Method: http.MethodGet, Path: path, Query: query})
}

// Post performs a POST request with a JSON body.
func (c *Client) Post(ctx context.Context, path string, body interface{}) (*Response, error) {
	return c.Do(ctx, &Request{Method: http.MethodPost, Path: path, Body: body})
}

// Delete performs a DELETE request.
func (c *Client) Delete(ctx context.Context, path string) (*Response, error) {
	return c.Do(ctx, &Request{Method: http.MethodDelete, Path: path})
}
