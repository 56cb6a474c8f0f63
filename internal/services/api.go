// HTTP client for the TwiLight backend API
package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/twilightlabs/twilight/internal/models"
	"github.com/twilightlabs/twilight/internal/shared"
	"golang.org/x/oauth2"
	"golang.org/x/time/rate"
)

// Client implements [API] against the TwiLight backend.
//
// Authenticated calls go through an oauth2 static-token transport built from
// the session token; the transport is rebuilt only when the token changes.
type Client struct {
	baseURL     string
	tokens      TokenProvider
	base        *http.Client
	limiter     *rate.Limiter
	logger      *log.Logger
	onAuthError func()

	mu         sync.Mutex
	authToken  string
	authClient *http.Client
}

// ClientOpts contains configuration options for creating a Client.
type ClientOpts struct {
	BaseURL     string
	Tokens      TokenProvider
	HTTPClient  *http.Client
	Logger      *log.Logger
	RateLimit   float64 // requests per second, defaults to 5
	OnAuthError func()  // invoked once per auth-classified failure
}

// NewClient creates a new backend client with the provided options.
func NewClient(opts ClientOpts) *Client {
	if opts.BaseURL == "" {
		opts.BaseURL = "http://localhost:8000"
	}
	if opts.HTTPClient == nil {
		opts.HTTPClient = http.DefaultClient
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.RateLimit <= 0 {
		opts.RateLimit = 5.0
	}

	return &Client{
		baseURL:     opts.BaseURL,
		tokens:      opts.Tokens,
		base:        opts.HTTPClient,
		limiter:     rate.NewLimiter(rate.Limit(opts.RateLimit), 1),
		logger:      opts.Logger,
		onAuthError: opts.OnAuthError,
	}
}

// authedClient returns an HTTP client that attaches the given bearer token,
// rebuilding the oauth2 transport only when the token changes.
func (c *Client) authedClient(token string) *http.Client {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.authClient == nil || c.authToken != token {
		src := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
		ctx := context.WithValue(context.Background(), oauth2.HTTPClient, c.base)
		c.authClient = oauth2.NewClient(ctx, src)
		c.authToken = token
	}

	return c.authClient
}

// errorDetail mirrors the backend's error body shape.
type errorDetail struct {
	Detail string `json:"detail"`
}

// doRequest performs one request against the backend and decodes the JSON
// response into result when provided. No retries are attempted.
func (c *Client) doRequest(ctx context.Context, method, path string, body, result any, authed bool) error {
	httpClient := c.base
	if authed {
		if c.tokens == nil {
			return fmt.Errorf("%w: no session source configured", shared.ErrNotAuthenticated)
		}
		token, ok := c.tokens.Token()
		if !ok {
			return fmt.Errorf("%w: no active session", shared.ErrNotAuthenticated)
		}
		httpClient = c.authedClient(token)
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limiter interrupted: %w", err)
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := httpClient.Do(req)
	if err != nil {
		return &APIError{Class: ClassNetwork, Detail: err.Error()}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return &APIError{Class: ClassNetwork, Detail: err.Error()}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return c.classify(resp.StatusCode, respBody, authed)
	}

	if result != nil && len(respBody) > 0 {
		if err := json.Unmarshal(respBody, result); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}

	return nil
}

// classify turns a non-2xx response into an APIError and reports
// auth-classified failures to the registered hook. The hook only fires for
// authenticated requests: a rejected login carries no verdict on the
// session already held.
func (c *Client) classify(status int, body []byte, authed bool) *APIError {
	var detail errorDetail
	_ = json.Unmarshal(body, &detail)

	apiErr := &APIError{Status: status, Detail: detail.Detail}

	switch {
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		apiErr.Class = ClassAuth
		if authed && c.onAuthError != nil {
			c.onAuthError()
		}
	case status >= 400 && status < 500:
		apiErr.Class = ClassClient
	default:
		apiErr.Class = ClassServer
	}

	return apiErr
}

// sessionResponse mirrors the auth endpoints' response body.
type sessionResponse struct {
	Token string             `json:"token"`
	User  models.UserProfile `json:"user"`
}

// Login exchanges credentials for a session.
func (c *Client) Login(ctx context.Context, email, password string) (models.Session, error) {
	var resp sessionResponse
	body := map[string]string{"email": email, "password": password}
	if err := c.doRequest(ctx, http.MethodPost, "/api/auth/login", body, &resp, false); err != nil {
		return models.Session{}, err
	}
	return models.Session{Token: resp.Token, User: resp.User}, nil
}

// Register creates an account and returns the initial session.
func (c *Client) Register(ctx context.Context, name, email, password string) (models.Session, error) {
	var resp sessionResponse
	body := map[string]string{"name": name, "email": email, "password": password}
	if err := c.doRequest(ctx, http.MethodPost, "/api/auth/register", body, &resp, false); err != nil {
		return models.Session{}, err
	}
	return models.Session{Token: resp.Token, User: resp.User}, nil
}

// Stats retrieves the posting aggregate.
func (c *Client) Stats(ctx context.Context) (models.Stats, error) {
	var stats models.Stats
	if err := c.doRequest(ctx, http.MethodGet, "/api/stats", nil, &stats, true); err != nil {
		return models.Stats{}, err
	}
	return stats, nil
}

// TwitterAccount retrieves the linked account. A nil result with nil error
// means no account is connected.
func (c *Client) TwitterAccount(ctx context.Context) (*models.LinkedAccount, error) {
	var account *models.LinkedAccount
	err := c.doRequest(ctx, http.MethodGet, "/api/twitter/account", nil, &account, true)
	if err != nil {
		var apiErr *APIError
		// The backend answers 404 when nothing is linked; that is absence,
		// not failure.
		if errors.As(err, &apiErr) && apiErr.Status == http.StatusNotFound {
			return nil, nil
		}
		return nil, err
	}
	return account, nil
}

// ContentConfig retrieves the authoritative content configuration.
func (c *Client) ContentConfig(ctx context.Context) (models.ContentConfig, error) {
	var cfg models.ContentConfig
	if err := c.doRequest(ctx, http.MethodGet, "/api/content-config", nil, &cfg, true); err != nil {
		return models.ContentConfig{}, err
	}
	return cfg, nil
}

// Schedule retrieves the authoritative posting schedule.
func (c *Client) Schedule(ctx context.Context) (models.Schedule, error) {
	var sched models.Schedule
	if err := c.doRequest(ctx, http.MethodGet, "/api/schedule", nil, &sched, true); err != nil {
		return models.Schedule{}, err
	}
	return sched, nil
}

// Posts retrieves the most recent posts, bounded by limit.
func (c *Client) Posts(ctx context.Context, limit int) ([]models.Post, error) {
	if limit <= 0 {
		limit = 10
	}

	var posts []models.Post
	path := fmt.Sprintf("/api/posts?limit=%d", limit)
	if err := c.doRequest(ctx, http.MethodGet, path, nil, &posts, true); err != nil {
		return nil, err
	}
	return posts, nil
}

// TwitterAuthURL begins the link handshake.
func (c *Client) TwitterAuthURL(ctx context.Context) (string, error) {
	var resp struct {
		AuthURL string `json:"auth_url"`
	}
	if err := c.doRequest(ctx, http.MethodGet, "/api/twitter/auth-url", nil, &resp, true); err != nil {
		return "", err
	}
	if resp.AuthURL == "" {
		return "", fmt.Errorf("%w: backend returned no authorization URL", shared.ErrLinkFailed)
	}
	return resp.AuthURL, nil
}

// CompleteTwitterCallback submits the handshake correlation parameters.
func (c *Client) CompleteTwitterCallback(ctx context.Context, oauthToken, oauthVerifier string) (*models.LinkedAccount, error) {
	if oauthToken == "" || oauthVerifier == "" {
		return nil, fmt.Errorf("%w: oauth_token and oauth_verifier are required", shared.ErrInvalidCallback)
	}

	var account *models.LinkedAccount
	path := fmt.Sprintf("/api/twitter/callback?oauth_token=%s&oauth_verifier=%s",
		url.QueryEscape(oauthToken), url.QueryEscape(oauthVerifier))
	if err := c.doRequest(ctx, http.MethodPost, path, nil, &account, true); err != nil {
		return nil, err
	}
	return account, nil
}

// DisconnectTwitter clears the linked account server-side.
func (c *Client) DisconnectTwitter(ctx context.Context) error {
	return c.doRequest(ctx, http.MethodDelete, "/api/twitter/disconnect", nil, nil, true)
}

// SaveContentConfig submits a full content configuration.
func (c *Client) SaveContentConfig(ctx context.Context, cfg models.ContentConfig) error {
	return c.doRequest(ctx, http.MethodPost, "/api/content-config", cfg, nil, true)
}

// SaveSchedule submits a full posting schedule.
func (c *Client) SaveSchedule(ctx context.Context, sched models.Schedule) error {
	return c.doRequest(ctx, http.MethodPost, "/api/schedule", sched, nil, true)
}

// ToggleSchedule flips only the automation enabled flag.
func (c *Client) ToggleSchedule(ctx context.Context, enabled bool) error {
	path := fmt.Sprintf("/api/schedule/toggle?enabled=%t", enabled)
	return c.doRequest(ctx, http.MethodPatch, path, nil, nil, true)
}

// GeneratePost triggers one generate/publish cycle.
func (c *Client) GeneratePost(ctx context.Context) (models.Post, error) {
	var post models.Post
	if err := c.doRequest(ctx, http.MethodPost, "/api/posts/generate", nil, &post, true); err != nil {
		return models.Post{}, err
	}
	return post, nil
}
