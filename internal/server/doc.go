// Package server provides the local HTTP listener that receives the Twitter
// authorization redirect during the account-link handshake.
//
// # Router Infrastructure
//
// The [Router] interface defines HTTP routing with middleware support.
//
// [Middleware] wraps handlers in reverse order (last added executes first),
// following the standard Go pattern.
//
// The [BasicRouter] implementation uses [http.ServeMux] internally with
// method filtering.
//
// # Callback Handler
//
// [CallbackHandler] captures the oauth_token/oauth_verifier correlation
// parameters carried by the provider redirect and sends them through a
// channel. It validates presence only; the exchange against the backend is
// driven by the link controller so the handler stays a pure function of its
// query parameters.
//
// It only processes one callback. A replayed redirect is answered with 400
// and never reaches the backend.
//
// # Usage
//
// When the user runs `twilight twitter connect`, a temporary server starts
// on the configured callback address, the system browser is opened at the
// provider authorization URL, and the server shuts down after the single
// callback (or when the wait times out).
package server
