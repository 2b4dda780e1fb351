// Package dummyjson implements the remote API port over the DummyJSON REST API.
package dummyjson

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	json "github.com/goccy/go-json"
	"github.com/google/go-querystring/query"
	"github.com/hashicorp/go-cleanhttp"
	"github.com/tidwall/gjson"
)

// TokenSource supplies the bearer token at request time. An empty token sends no
// Authorization header.
type TokenSource interface {
	Token() string
}

// TokenFunc adapts a function to TokenSource.
type TokenFunc func() string

func (f TokenFunc) Token() string { return f() }

// APIError is a non-2xx response.
type APIError struct {
	StatusCode int
	Status     string // status text, e.g. "Not Found"
	Detail     string // "message" field of the response body, if any
}

func (e *APIError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("API Error: %s (%s)", e.Status, e.Detail)
	}

	return "API Error: " + e.Status
}

// UserMessage is the text shown to the user: the status text verbatim.
func (e *APIError) UserMessage() string {
	return "API Error: " + e.Status
}

// Client is a thin JSON client bound to one base URL.
type Client struct {
	baseURL    *url.URL
	httpClient *http.Client
	tokens     TokenSource
}

// NewClient creates a client for baseURL. A zero timeout waits indefinitely.
func NewClient(baseURL string, timeout time.Duration, tokens TokenSource) (*Client, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("invalid base URL: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid base URL: %q", baseURL)
	}

	httpClient := cleanhttp.DefaultPooledClient()
	httpClient.Timeout = timeout

	if tokens == nil {
		tokens = TokenFunc(func() string { return "" })
	}

	return &Client{
		baseURL:    u,
		httpClient: httpClient,
		tokens:     tokens,
	}, nil
}

// do sends a request to path (already escaped) with query params q (a struct with url tags, may be nil) and
// body (marshaled as JSON, may be nil), then decodes the response into out.
func (c *Client) do(ctx context.Context, method, path string, q, body, out any) error {
	u := *c.baseURL
	u.RawPath = u.EscapedPath() + path
	unescaped, err := url.PathUnescape(u.RawPath)
	if err != nil {
		return fmt.Errorf("invalid path %q: %w", path, err)
	}
	u.Path = unescaped

	if q != nil {
		values, err := query.Values(q)
		if err != nil {
			return fmt.Errorf("failed to encode query: %w", err)
		}
		u.RawQuery = values.Encode()
	}

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode body: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	if token := c.tokens.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &APIError{
			StatusCode: resp.StatusCode,
			Status:     statusText(resp),
			Detail:     gjson.GetBytes(data, "message").String(),
		}
	}

	if out == nil {
		return nil
	}

	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	return nil
}

// statusText returns the reason phrase of resp, without the numeric code.
func statusText(resp *http.Response) string {
	if _, text, ok := strings.Cut(resp.Status, " "); ok && text != "" {
		return text
	}

	return http.StatusText(resp.StatusCode)
}
