package handshake

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/twilightlabs/twilight/internal/models"
	"github.com/twilightlabs/twilight/internal/server"
	"github.com/twilightlabs/twilight/internal/services"
	"github.com/twilightlabs/twilight/internal/shared"
)

// LinkState enumerates the handshake states.
type LinkState int

const (
	Disconnected LinkState = iota
	RequestingAuthURL
	AwaitingApproval
	Completing
	Connected
	Failed
)

func (s LinkState) String() string {
	switch s {
	case Disconnected:
		return "disconnected"
	case RequestingAuthURL:
		return "requesting_auth_url"
	case AwaitingApproval:
		return "awaiting_approval"
	case Completing:
		return "completing"
	case Connected:
		return "connected"
	case Failed:
		return "failed"
	default:
		return ""
	}
}

// Controller owns the link handshake state machine.
type Controller struct {
	api     services.API
	logger  *log.Logger
	notify  shared.Notifier
	confirm func(prompt string) bool
	openURL func(url string) error
	dwell   time.Duration
	onDwell func()

	mu      sync.Mutex
	state   LinkState
	account *models.LinkedAccount
	authURL string
	attempt string
}

// ControllerOpts contains configuration options for creating a Controller.
type ControllerOpts struct {
	API     services.API
	Logger  *log.Logger
	Notify  shared.Notifier           // defaults to a no-op
	Confirm func(prompt string) bool  // required for Disconnect; nil declines
	OpenURL func(url string) error    // defaults to shared.OpenBrowser
	Dwell   time.Duration             // post-completion pause, defaults to 2s
	OnDwell func()                    // invoked after the dwell elapses
}

// NewController creates a link handshake controller.
func NewController(opts ControllerOpts) *Controller {
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Notify == nil {
		opts.Notify = func(kind, message string) {}
	}
	if opts.OpenURL == nil {
		opts.OpenURL = shared.OpenBrowser
	}
	if opts.Dwell <= 0 {
		opts.Dwell = 2 * time.Second
	}

	return &Controller{
		api:     opts.API,
		logger:  opts.Logger,
		notify:  opts.Notify,
		confirm: opts.Confirm,
		openURL: opts.OpenURL,
		dwell:   opts.Dwell,
		onDwell: opts.OnDwell,
	}
}

// State returns the current handshake state.
func (c *Controller) State() LinkState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Account returns the linked account, or nil when not connected.
func (c *Controller) Account() *models.LinkedAccount {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.account
}

// SetAccount seeds the controller from a dashboard fetch, keeping the state
// machine consistent with the server's view.
func (c *Controller) SetAccount(account *models.LinkedAccount) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.account = account
	if account != nil {
		c.state = Connected
	} else if c.state == Connected {
		c.state = Disconnected
	}
}

func (c *Controller) setState(s LinkState) {
	c.mu.Lock()
	c.state = s
	c.mu.Unlock()
}

// AttemptID returns the correlation id of the current link attempt, empty
// before the first attempt. Every attempt gets a fresh id so its log lines
// can be tied together.
func (c *Controller) AttemptID() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.attempt
}

// beginAttempt stamps a new attempt id, or adopts the running one when a
// callback arrives for an attempt started by Connect.
func (c *Controller) beginAttempt(fresh bool) string {
	c.mu.Lock()
	defer c.mu.Unlock()
	if fresh || c.attempt == "" {
		c.attempt = shared.GenerateID()
	}
	return c.attempt
}

// Connect requests the provider authorization URL and hands control to the
// external browser. On success the controller is AwaitingApproval and the
// returned URL is where approval happens; on failure no external action was
// taken and the controller settles back to Disconnected.
func (c *Controller) Connect(ctx context.Context) (string, error) {
	attempt := c.beginAttempt(true)
	c.logger.Info("starting link attempt", "attempt", attempt)
	c.setState(RequestingAuthURL)

	authURL, err := c.api.TwitterAuthURL(ctx)
	if err != nil {
		c.setState(Failed)
		c.notify("error", userMessage(err, "Failed to initiate Twitter connection"))
		// No external action was taken; the failure is terminal for this
		// attempt only.
		c.setState(Disconnected)
		return "", err
	}

	c.mu.Lock()
	c.authURL = authURL
	c.state = AwaitingApproval
	c.mu.Unlock()

	if err := c.openURL(authURL); err != nil {
		// The handshake can still proceed if the user opens the URL by hand.
		c.logger.Warn("failed to open browser", "attempt", attempt, "error", err)
	}

	return authURL, nil
}

// CompleteCallback consumes the correlation parameters delivered by the
// provider redirect. Both must be present or the backend is never called.
func (c *Controller) CompleteCallback(ctx context.Context, oauthToken, oauthVerifier string) error {
	attempt := c.beginAttempt(false)

	if oauthToken == "" || oauthVerifier == "" {
		c.setState(Failed)
		c.notify("error", "Invalid callback parameters")
		c.scheduleReturn()
		return fmt.Errorf("%w: oauth_token and oauth_verifier are required", shared.ErrInvalidCallback)
	}

	c.setState(Completing)

	account, err := c.api.CompleteTwitterCallback(ctx, oauthToken, oauthVerifier)
	if err != nil {
		c.setState(Failed)
		c.notify("error", userMessage(err, "Failed to connect Twitter account"))
		c.scheduleReturn()
		return err
	}

	if account == nil {
		// Some backends answer the exchange with an empty body; the account
		// read model is authoritative either way.
		account, err = c.api.TwitterAccount(ctx)
		if err != nil {
			c.logger.Warn("connected but account fetch failed", "attempt", attempt, "error", err)
		}
	}

	c.mu.Lock()
	c.account = account
	c.state = Connected
	c.mu.Unlock()

	c.logger.Info("link attempt completed", "attempt", attempt)

	c.notify("success", "Twitter account connected successfully!")
	c.scheduleReturn()
	return nil
}

// Disconnect clears the linked account after an explicit confirmation. When
// confirmation is declined no backend call is made and state is unchanged.
func (c *Controller) Disconnect(ctx context.Context) error {
	if c.confirm == nil || !c.confirm("Are you sure you want to disconnect your Twitter account?") {
		return nil
	}
	return c.DisconnectConfirmed(ctx)
}

// DisconnectConfirmed clears the linked account without prompting, for
// callers that gathered confirmation themselves (a --yes flag).
func (c *Controller) DisconnectConfirmed(ctx context.Context) error {
	if err := c.api.DisconnectTwitter(ctx); err != nil {
		c.notify("error", userMessage(err, "Failed to disconnect Twitter account"))
		return err
	}

	c.mu.Lock()
	c.account = nil
	c.state = Disconnected
	c.mu.Unlock()

	c.notify("success", "Twitter account disconnected")
	return nil
}

// Link runs the whole flow in one call: start the local callback listener,
// open the authorization URL, wait for the single redirect, and complete
// the handshake. The listener is torn down before returning.
func (c *Controller) Link(ctx context.Context, addr string, timeout time.Duration) error {
	handler := server.NewCallbackHandler()
	router := server.NewBasicRouter()
	router.Handler(handler)

	srv := &http.Server{Addr: addr, Handler: router}
	errChan := make(chan error, 1)

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}
	}()

	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	if _, err := c.Connect(ctx); err != nil {
		return err
	}

	c.logger.Info("waiting for authorization", "attempt", c.AttemptID(), "callback", addr)

	var result server.CallbackResult
	select {
	case err := <-errChan:
		c.setState(Failed)
		return fmt.Errorf("callback listener failed: %w", err)
	case <-ctx.Done():
		c.setState(Disconnected)
		return ctx.Err()
	case <-time.After(timeout):
		c.setState(Disconnected)
		return fmt.Errorf("%w: no callback received within %s", shared.ErrLinkFailed, timeout)
	case result = <-handler.Result():
	}

	if err := result.Error(); err != nil {
		c.setState(Failed)
		c.notify("error", "Invalid callback parameters")
		c.scheduleReturn()
		return err
	}

	return c.CompleteCallback(ctx, result.OAuthToken, result.OAuthVerifier)
}

// scheduleReturn starts the fixed dwell that lets the user read the outcome
// before control returns to the dashboard. Fire-and-forget; never blocks.
func (c *Controller) scheduleReturn() {
	if c.onDwell == nil {
		return
	}
	time.AfterFunc(c.dwell, c.onDwell)
}

// userMessage extracts the backend detail from an API failure, falling back
// to the given generic string.
func userMessage(err error, fallback string) string {
	var apiErr *services.APIError
	if errors.As(err, &apiErr) {
		return apiErr.UserMessage(fallback)
	}
	return fallback
}
