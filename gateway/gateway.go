// Package gateway is the one HTTP client that talks to the assignment backend.
package gateway

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"
	"github.com/jrsteele09/taskflow/internal/config"
	errs "github.com/jrsteele09/taskflow/internal/errors"
	"github.com/rs/zerolog/log"
	"golang.org/x/oauth2"
)

const (
	headerRequestID = "X-Request-ID"
	maxErrorBody    = 64 << 10
)

// Credential supplies the bearer token and reacts to its rejection.
// session.Manager implements it.
type Credential interface {
	BearerToken(ctx context.Context) (string, bool)
	Invalidate(ctx context.Context) error
}

type Client struct {
	baseURL        string
	httpClient     *http.Client
	onUnauthorized func(method, path string)
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithUnauthorizedHook is called after a 401 has invalidated the session
func WithUnauthorizedHook(fn func(method, path string)) Option {
	return func(c *Client) {
		c.onUnauthorized = fn
	}
}

func New(cfg config.BackendConfig, opts ...Option) (*Client, error) {
	base, err := url.Parse(cfg.GetAPIBaseURL())
	if err != nil {
		return nil, fmt.Errorf("[gateway New] invalid api base url: %w", err)
	}
	if base.Scheme != "http" && base.Scheme != "https" {
		return nil, fmt.Errorf("[gateway New] api base url must be http or https, got %q", cfg.GetAPIBaseURL())
	}

	transport := http.DefaultTransport.(*http.Transport).Clone()
	if cfg.GetInsecureSkipVerify() {
		log.Warn().Str("api", base.String()).Msg("Gateway: TLS verification disabled")
		transport.TLSClientConfig = &tls.Config{InsecureSkipVerify: true} //nolint:gosec // dev backend only
	}

	c := &Client{
		baseURL: base.String(),
		httpClient: &http.Client{
			Timeout:   cfg.GetRequestTimeout(),
			Transport: transport,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Requester issues requests on behalf of one credential
type Requester struct {
	client     *Client
	credential Credential
}

// Bind ties requests to a credential. A nil credential sends anonymous requests.
func (c *Client) Bind(credential Credential) *Requester {
	return &Requester{client: c, credential: credential}
}

func (r *Requester) Get(ctx context.Context, path string, query url.Values, out any) error {
	return r.client.do(ctx, r.credential, http.MethodGet, path, query, nil, out)
}

func (r *Requester) Post(ctx context.Context, path string, in, out any) error {
	return r.client.do(ctx, r.credential, http.MethodPost, path, nil, in, out)
}

func (r *Requester) Put(ctx context.Context, path string, in, out any) error {
	return r.client.do(ctx, r.credential, http.MethodPut, path, nil, in, out)
}

func (r *Requester) Delete(ctx context.Context, path string) error {
	return r.client.do(ctx, r.credential, http.MethodDelete, path, nil, nil, nil)
}

func (c *Client) do(ctx context.Context, credential Credential, method, path string, query url.Values, in, out any) error {
	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	var body io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("[gateway %s %s] encode request: %w", method, path, err)
		}
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return fmt.Errorf("[gateway %s %s] %w", method, path, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	requestID := uuid.NewString()
	req.Header.Set(headerRequestID, requestID)

	hasBearer := false
	if credential != nil {
		if bearer, ok := credential.BearerToken(ctx); ok {
			(&oauth2.Token{AccessToken: bearer, TokenType: "Bearer"}).SetAuthHeader(req)
			hasBearer = true
		}
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Warn().Err(err).Str("method", method).Str("path", path).Str("request_id", requestID).Msg("Gateway: request failed")
		return fmt.Errorf("[gateway %s %s] %w: %w", method, path, errs.ErrBackendUnavailable, err)
	}
	defer resp.Body.Close()

	log.Debug().
		Str("method", method).
		Str("path", path).
		Int("status", resp.StatusCode).
		Bool("bearer", hasBearer).
		Dur("elapsed", time.Since(start)).
		Str("request_id", requestID).
		Msg("Gateway: response")

	if resp.StatusCode == http.StatusUnauthorized && credential != nil {
		// the session must be gone before the caller sees the error
		if err := credential.Invalidate(ctx); err != nil {
			log.Err(err).Msg("Gateway: failed to invalidate session after 401")
		}
		if c.onUnauthorized != nil {
			c.onUnauthorized(method, path)
		}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return &StatusError{
			Method:     method,
			Path:       path,
			StatusCode: resp.StatusCode,
			Message:    errorMessage(raw),
		}
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		if err == io.EOF {
			return nil
		}
		return fmt.Errorf("[gateway %s %s] %w: %w", method, path, errs.ErrBadResponse, err)
	}
	return nil
}
