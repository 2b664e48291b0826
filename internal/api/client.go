package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/wrenhollow/reel/internal/shared"
	"golang.org/x/time/rate"
)

const defaultBaseURL = "http://127.0.0.1:8000"

// BearerSource supplies the current access token for authenticated requests.
//
// Implemented by the session manager; the client reads the token once per
// outgoing request and never caches it.
type BearerSource interface {
	AccessToken(ctx context.Context) (string, error)
}

// StaticBearer is a BearerSource returning a fixed token. Used by the auth
// endpoints (refresh, validate) that authenticate with an explicit token
// rather than the managed session credential.
type StaticBearer string

func (s StaticBearer) AccessToken(ctx context.Context) (string, error) {
	if s == "" {
		return "", shared.ErrNotAuthenticated
	}
	return string(s), nil
}

// Client makes HTTP requests to the Reel platform API.
//
// Outgoing requests are throttled by a [rate.Limiter] so feed prefetch and
// the per-entry user summary fan-out cannot flood the server.
type Client struct {
	baseURL    string
	httpClient *http.Client
	bearer     BearerSource
	limiter    *rate.Limiter
}

// NewClient creates a new API client. The baseURL defaults to the local
// development server and the http client to [http.DefaultClient].
func NewClient(baseURL string, httpClient *http.Client, bearer BearerSource) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	return &Client{
		baseURL:    baseURL,
		httpClient: httpClient,
		bearer:     bearer,
		limiter:    rate.NewLimiter(rate.Limit(8), 16),
	}
}

// SetBearer installs the token source used for authenticated endpoints.
//
// The session manager implements [BearerSource] but is itself constructed
// with the client, so the bearer is wired in after both exist.
func (c *Client) SetBearer(bearer BearerSource) {
	c.bearer = bearer
}

// SetRateLimit adjusts the outgoing request rate (requests per second).
func (c *Client) SetRateLimit(rps float64) {
	if rps <= 0 {
		return
	}
	c.limiter = rate.NewLimiter(rate.Limit(rps), int(rps)*2)
}

// BaseURL returns the configured API base URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// StreamURL returns the URL serving a video's binary stream.
func (c *Client) StreamURL(videoID string) string {
	return fmt.Sprintf("%s/videos/%s/stream", c.baseURL, videoID)
}

// apiError is the server's structured rejection body.
type apiError struct {
	Detail string `json:"detail"`
}

func decodeJSON(data []byte, v any) error {
	return json.Unmarshal(data, v)
}

// doRequest performs an HTTP request against the API, decoding a JSON
// response into result when non-nil. When bearer is non-nil its token is
// attached as the Authorization header. Every request carries a fresh
// X-Request-ID tag for server-side log correlation.
func (c *Client) doRequest(ctx context.Context, method, endpoint string, bearer BearerSource, body, result any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+endpoint, reqBody)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("X-Request-ID", shared.GenerateID())

	if bearer != nil {
		token, err := bearer.AccessToken(ctx)
		if err != nil {
			return err
		}
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return c.statusError(resp)
	}

	if result != nil {
		if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}

	return nil
}

// statusError maps a non-2xx response to a typed error, preserving the
// server's detail string when one is present.
func (c *Client) statusError(resp *http.Response) error {
	data, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))

	detail := ""
	var body apiError
	if err := json.Unmarshal(data, &body); err == nil {
		detail = body.Detail
	}

	switch resp.StatusCode {
	case http.StatusUnauthorized:
		if detail != "" {
			return fmt.Errorf("%w: %s", shared.ErrTokenExpired, detail)
		}
		return shared.ErrTokenExpired
	case http.StatusNotFound:
		if detail != "" {
			return fmt.Errorf("%w: %s", shared.ErrServerRejected, detail)
		}
		return fmt.Errorf("%w: status 404", shared.ErrServerRejected)
	default:
		if detail != "" {
			return fmt.Errorf("%w: %s", shared.ErrServerRejected, detail)
		}
		return fmt.Errorf("%w: status %d", shared.ErrServerRejected, resp.StatusCode)
	}
}

// Health checks API availability via the unauthenticated health endpoint.
func (c *Client) Health(ctx context.Context) error {
	var status struct {
		Status string `json:"status"`
	}
	if err := c.doRequest(ctx, http.MethodGet, "/health", nil, nil, &status); err != nil {
		if errors.Is(err, shared.ErrAPIRequest) {
			return fmt.Errorf("%w: %v", shared.ErrServiceUnavailable, err)
		}
		return err
	}
	if status.Status != "ok" {
		return fmt.Errorf("%w: status %q", shared.ErrServiceUnavailable, status.Status)
	}
	return nil
}
