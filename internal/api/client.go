// Package api wraps outbound calls to the Crowd REST API. Every request
// carries the bearer token read from persisted session state immediately
// before transmission; an authorization failure clears that state exactly
// once, and transport failures are normalized into a uniform error shape.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path"
	"strings"
	"time"

	"github.com/crowdhq/crowd-client-go/internal/models"
	"github.com/crowdhq/crowd-client-go/internal/storage"
	"github.com/crowdhq/crowd-client-go/internal/utils"
)

// DefaultTimeout matches the fixed request timeout the app has always used.
const DefaultTimeout = 15 * time.Second

// ListMeta is the pagination block list endpoints return alongside data.
type ListMeta struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	TotalPages int `json:"totalPages"`
	TotalCount int `json:"totalCount"`
}

type Client struct {
	baseURL    *url.URL
	httpClient *http.Client
	storage    *storage.Store
}

// New builds a client rooted at baseURL. Session state is read from (and, on
// authorization failure, written back to) st. A non-positive timeout falls
// back to DefaultTimeout.
func New(baseURL string, timeout time.Duration, st *storage.Store) (*Client, error) {
	parsed, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("invalid base URL: %w", err)
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		baseURL:    parsed,
		httpClient: &http.Client{Timeout: timeout},
		storage:    st,
	}, nil
}

// requestOptions holds optional request-specific headers and the one-shot
// unauthorized guard.
type requestOptions struct {
	idempotencyKey      string
	unauthorizedHandled bool
}

type RequestOption func(*requestOptions)

// WithIdempotencyKey sets an Idempotency-Key header on the request.
func WithIdempotencyKey(key string) RequestOption {
	return func(o *requestOptions) { o.idempotencyKey = key }
}

// -----------------------------------------------------------------------------
// Verb helpers
// -----------------------------------------------------------------------------

func (c *Client) Get(ctx context.Context, reqPath string, query url.Values, out any) error {
	return c.doJSON(ctx, http.MethodGet, reqPath, query, nil, out, nil)
}

func (c *Client) Post(ctx context.Context, reqPath string, body, out any, opts ...RequestOption) error {
	return c.doJSON(ctx, http.MethodPost, reqPath, nil, body, out, opts)
}

func (c *Client) Put(ctx context.Context, reqPath string, body, out any, opts ...RequestOption) error {
	return c.doJSON(ctx, http.MethodPut, reqPath, nil, body, out, opts)
}

func (c *Client) Delete(ctx context.Context, reqPath string, out any) error {
	return c.doJSON(ctx, http.MethodDelete, reqPath, nil, nil, out, nil)
}

// -----------------------------------------------------------------------------
// Core request path
// -----------------------------------------------------------------------------

func (c *Client) doJSON(
	ctx context.Context,
	method, reqPath string,
	query url.Values,
	body, out any,
	opts []RequestOption,
) error {
	var reqBody io.Reader
	if body != nil {
		jsonBytes, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		reqBody = bytes.NewReader(jsonBytes)
	}
	return c.do(ctx, method, reqPath, query, "application/json", reqBody, out, opts)
}

func (c *Client) do(
	ctx context.Context,
	method, reqPath string,
	query url.Values,
	contentType string,
	body io.Reader,
	out any,
	opts []RequestOption,
) error {
	o := &requestOptions{}
	for _, opt := range opts {
		opt(o)
	}

	u := *c.baseURL
	u.Path = path.Join(c.baseURL.Path, reqPath)
	if query != nil {
		u.RawQuery = query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Accept", "application/json")
	if o.idempotencyKey != "" {
		req.Header.Set("Idempotency-Key", o.idempotencyKey)
	}

	// The token is looked up on every call, not cached on the client: the
	// session can change between requests.
	if tok := c.bearerToken(); tok != "" {
		req.Header.Set("Authorization", "Bearer "+tok)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		utils.Logger.WithError(err).Warnf("%s %s: transport failure", method, reqPath)
		return &APIError{Message: NetworkErrorMessage, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized && !o.unauthorizedHandled {
		// One-shot guard left over from a refresh-and-retry flow that was
		// never built: the session is cleared once and the request is NOT
		// replayed. Callers refresh and re-invoke manually.
		o.unauthorizedHandled = true
		c.clearPersistedAuth()
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return c.handleHTTPError(resp)
	}

	if out == nil {
		io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// handleHTTPError parses the standard { "error": <message> } failure body.
func (c *Client) handleHTTPError(resp *http.Response) error {
	bodyBytes, _ := io.ReadAll(resp.Body)

	var apiErr struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(bodyBytes, &apiErr); err != nil || apiErr.Error == "" {
		apiErr.Error = strings.TrimSpace(string(bodyBytes))
	}
	return &APIError{StatusCode: resp.StatusCode, Message: apiErr.Error}
}

// -----------------------------------------------------------------------------
// Persisted session access
// -----------------------------------------------------------------------------

func (c *Client) bearerToken() string {
	var sess models.Session
	ok, err := c.storage.Get(models.SessionStorageKey, &sess)
	if err != nil {
		utils.Logger.WithError(err).Warn("Error accessing auth storage")
		return ""
	}
	if !ok {
		return ""
	}
	return sess.Token
}

// clearPersistedAuth drops the token and authenticated flag from durable
// storage, leaving the rest of the session record untouched.
func (c *Client) clearPersistedAuth() {
	var sess models.Session
	ok, err := c.storage.Get(models.SessionStorageKey, &sess)
	if err != nil || !ok {
		return
	}
	sess.Token = ""
	sess.Authenticated = false
	if err := c.storage.Set(models.SessionStorageKey, sess); err != nil {
		utils.Logger.WithError(err).Error("Error updating auth storage")
		return
	}
	utils.Logger.Warn("Authorization failure: cleared persisted session")
}
