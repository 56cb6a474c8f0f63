// Package handshake drives the three-legged authorization flow that links a
// Twitter account to the user's TwiLight account.
//
// # State machine
//
// Disconnected → RequestingAuthURL → AwaitingApproval → Completing →
// Connected, with Failed reachable from RequestingAuthURL and Completing and
// Connected → Disconnected via an explicit, confirmed disconnect.
//
// [Controller.Connect] asks the backend for a provider authorization URL and
// opens the system browser at it; approval then happens entirely outside
// this process. The provider redirects to the local callback listener
// (internal/server) carrying oauth_token and oauth_verifier, and
// [Controller.CompleteCallback] submits that pair to the backend under the
// active session. No handshake state is kept across the redirect: the
// callback is a pure function of its parameters plus the current session.
//
// A completion attempt with reused parameters is expected to be rejected by
// the backend and is treated as a normal Failed transition. The fixed dwell
// after completion exists only so the user can read the outcome; it is
// fire-and-forget and never blocks another operation.
package handshake
