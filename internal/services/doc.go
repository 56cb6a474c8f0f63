// Package services implements the typed HTTP client for the TwiLight backend.
//
// # Resource Client
//
// [Client] wraps every backend resource the dashboard consumes. Each call
// attaches the current session token as a bearer credential (via
// [golang.org/x/oauth2] static token transport); calls made with no session
// fail fast with [shared.ErrNotAuthenticated] instead of being sent.
//
// # Failure taxonomy
//
// Every failed call yields an [*APIError] carrying a [StatusClass] (auth,
// client, server, network) and the backend's optional human-readable detail
// message. [APIError.Unwrap] maps each class onto the matching sentinel in
// internal/shared so callers can branch with errors.Is.
//
// The client performs no retries; retry policy belongs to the caller. The
// dashboard aggregator uses none and treats failure as terminal for that
// resource in that cycle.
//
// # Session expiry
//
// Auth-classified failures are reported to a single registered hook. The
// session manager subscribes and forces a logout, so individual callers
// never need to check for expiry themselves.
package services
