package server

import (
	"fmt"
	"net/http"
	"sync"

	"github.com/twilightlabs/twilight/internal/shared"
)

// CallbackResult contains the correlation parameters delivered by the
// provider redirect, or the validation error when they were missing.
type CallbackResult struct {
	OAuthToken    string
	OAuthVerifier string
	err           error
}

func (r *CallbackResult) Error() error {
	return r.err
}

// CallbackHandler receives the Twitter authorization redirect on the local
// listener. Implements the Handler interface for registration with a Router.
//
// The handler only captures the oauth_token/oauth_verifier pair; submitting
// them to the backend is the link controller's job. It processes exactly one
// callback: a second delivery of the same parameters is answered with 400
// and never forwarded.
type CallbackHandler struct {
	resultChan  chan CallbackResult
	once        sync.Once
	callbackHit bool
	mu          sync.Mutex
}

// NewCallbackHandler creates a new callback handler.
func NewCallbackHandler() *CallbackHandler {
	return &CallbackHandler{
		resultChan: make(chan CallbackResult, 1),
	}
}

// Routes returns the HTTP routes this handler serves.
func (h *CallbackHandler) Routes() []string {
	return []string{"/twitter-callback"}
}

// ServeHTTP handles the provider redirect.
//
// Validates that both correlation parameters are present and sends the
// result through the result channel.
func (h *CallbackHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	// Only handle callback once
	h.mu.Lock()
	if h.callbackHit {
		h.mu.Unlock()
		http.Error(w, "Callback already processed", http.StatusBadRequest)
		return
	}
	h.callbackHit = true
	h.mu.Unlock()

	oauthToken := r.URL.Query().Get("oauth_token")
	oauthVerifier := r.URL.Query().Get("oauth_verifier")

	if oauthToken == "" || oauthVerifier == "" {
		h.Send(CallbackResult{err: shared.ErrInvalidCallback})
		http.Error(w, "Invalid callback parameters", http.StatusBadRequest)
		return
	}

	h.Send(CallbackResult{OAuthToken: oauthToken, OAuthVerifier: oauthVerifier})

	w.Header().Set("Content-Type", "text/html")
	w.WriteHeader(http.StatusOK)
	fmt.Fprintf(w, `
<!DOCTYPE html>
<html>
<head>
    <title>Authorization Received</title>
    <style>
        body { font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, sans-serif;
               display: flex; align-items: center; justify-content: center; height: 100vh;
               margin: 0; background: #f5f5f5; }
        .container { text-align: center; background: white; padding: 2rem;
                     border-radius: 8px; box-shadow: 0 2px 4px rgba(0,0,0,0.1); }
        h1 { color: #1DA1F2; margin: 0 0 1rem 0; }
        p { color: #666; margin: 0; }
    </style>
</head>
<body>
    <div class="container">
        <h1>✓ Authorization Received</h1>
        <p>You can close this window and return to the terminal.</p>
    </div>
</body>
</html>
`)
}

// Send sends the callback result through the channel (only once).
func (h *CallbackHandler) Send(result CallbackResult) {
	h.once.Do(func() {
		h.resultChan <- result
		close(h.resultChan)
	})
}

// Result returns the result channel for receiving the callback delivery.
//
// Channel will receive exactly one result and then be closed.
func (h *CallbackHandler) Result() <-chan CallbackResult {
	return h.resultChan
}
