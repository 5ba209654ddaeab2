package echo

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/CrestNiraj12/echoterm/domain"
	"github.com/CrestNiraj12/echoterm/infra/auth"
)

// maxBodyBytes caps how much of a response is read. Large threads fit easily.
const maxBodyBytes = 32 << 20

// Client is a thin HTTP wrapper for the Echo community API.
// It handles base URL construction, token injection and error mapping.
type Client struct {
	baseURL       string
	tokenProvider auth.TokenProvider
	http          *http.Client
	log           zerolog.Logger
}

// Option customizes a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying *http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithTransport keeps the default client but routes requests through rt.
func WithTransport(rt http.RoundTripper) Option {
	return func(c *Client) { c.http.Transport = rt }
}

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.http.Timeout = d }
}

// WithLogger sets the request logger.
func WithLogger(l zerolog.Logger) Option {
	return func(c *Client) { c.log = l }
}

// NewClient creates an Echo API client. baseURL includes the /api prefix.
func NewClient(baseURL string, tp auth.TokenProvider, opts ...Option) *Client {
	c := &Client{
		baseURL:       baseURL,
		tokenProvider: tp,
		http:          &http.Client{Timeout: 15 * time.Second},
		log:           zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// HasCredential reports whether requests will carry a token.
func (c *Client) HasCredential() bool {
	return auth.HasCredential(c.tokenProvider)
}

// Get performs a GET request. The token is attached when one is available.
func (c *Client) Get(ctx context.Context, path string) ([]byte, error) {
	return c.do(ctx, http.MethodGet, path, nil, false)
}

// Post performs an authenticated POST request with a JSON body. Without a
// credential it fails with domain.ErrAuthRequired and sends nothing.
func (c *Client) Post(ctx context.Context, path string, body any) ([]byte, error) {
	return c.do(ctx, http.MethodPost, path, body, true)
}

func (c *Client) token(requireAuth bool) (string, error) {
	if c.tokenProvider == nil {
		if requireAuth {
			return "", domain.ErrAuthRequired
		}
		return "", nil
	}
	token, err := c.tokenProvider.AccessToken()
	if err == nil {
		return token, nil
	}
	if errors.Is(err, auth.ErrNoCredential) {
		if requireAuth {
			return "", domain.ErrAuthRequired
		}
		return "", nil
	}
	return "", fmt.Errorf("auth: %w", err)
}

func (c *Client) do(ctx context.Context, method, path string, body any, requireAuth bool) ([]byte, error) {
	token, err := c.token(requireAuth)
	if err != nil {
		return nil, err
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encoding request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	reqID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", reqID)
	if token != "" {
		req.Header.Set("Authorization", "Token "+token)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Warn().Err(err).Str("method", method).Str("path", path).Str("request_id", reqID).Msg("request failed")
		return nil, &domain.RequestError{Method: method, Path: path, Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, &domain.RequestError{Method: method, Path: path, Err: fmt.Errorf("reading response: %w", err)}
	}

	c.log.Debug().
		Str("method", method).
		Str("path", path).
		Int("status", resp.StatusCode).
		Dur("elapsed", time.Since(start)).
		Str("request_id", reqID).
		Msg("api request")

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.log.Warn().Str("method", method).Str("path", path).Int("status", resp.StatusCode).Str("request_id", reqID).Msg("api error")
		return nil, &domain.RequestError{Method: method, Path: path, Status: resp.StatusCode, Body: string(data)}
	}

	return data, nil
}
