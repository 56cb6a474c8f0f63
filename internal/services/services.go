// package services defines interface API for the TwiLight backend
package services

import (
	"context"
	"fmt"

	"github.com/twilightlabs/twilight/internal/models"
	"github.com/twilightlabs/twilight/internal/shared"
)

// API defines the backend surface consumed by the dashboard, the account
// link controller, and the config/schedule editors.
type API interface {
	// Login exchanges credentials for a session token and profile.
	Login(ctx context.Context, email, password string) (models.Session, error)

	// Register creates an account and returns the initial session.
	Register(ctx context.Context, name, email, password string) (models.Session, error)

	// Stats retrieves the posting aggregate.
	Stats(ctx context.Context) (models.Stats, error)

	// TwitterAccount retrieves the linked account, or nil when not connected.
	TwitterAccount(ctx context.Context) (*models.LinkedAccount, error)

	// ContentConfig retrieves the authoritative content configuration.
	ContentConfig(ctx context.Context) (models.ContentConfig, error)

	// Schedule retrieves the authoritative posting schedule.
	Schedule(ctx context.Context) (models.Schedule, error)

	// Posts retrieves the most recent posts, bounded by limit.
	Posts(ctx context.Context, limit int) ([]models.Post, error)

	// TwitterAuthURL begins the link handshake and returns the provider
	// authorization URL.
	TwitterAuthURL(ctx context.Context) (string, error)

	// CompleteTwitterCallback submits the handshake correlation parameters
	// and returns the linked account on success.
	CompleteTwitterCallback(ctx context.Context, oauthToken, oauthVerifier string) (*models.LinkedAccount, error)

	// DisconnectTwitter clears the linked account server-side.
	DisconnectTwitter(ctx context.Context) error

	// SaveContentConfig submits a full content configuration.
	SaveContentConfig(ctx context.Context, cfg models.ContentConfig) error

	// SaveSchedule submits a full posting schedule.
	SaveSchedule(ctx context.Context, sched models.Schedule) error

	// ToggleSchedule flips only the automation enabled flag.
	ToggleSchedule(ctx context.Context, enabled bool) error

	// GeneratePost triggers one generate/publish cycle.
	GeneratePost(ctx context.Context) (models.Post, error)
}

// TokenProvider supplies the current session token, if any.
// Implemented by the session manager.
type TokenProvider interface {
	Token() (string, bool)
}

// StatusClass buckets API failures by origin.
type StatusClass int

const (
	ClassNetwork StatusClass = iota // no response at all
	ClassAuth                       // 401/403: session missing or expired
	ClassClient                     // other 4xx
	ClassServer                     // 5xx
)

func (c StatusClass) String() string {
	switch c {
	case ClassNetwork:
		return "network"
	case ClassAuth:
		return "auth"
	case ClassClient:
		return "client"
	case ClassServer:
		return "server"
	default:
		return ""
	}
}

// APIError is the structured failure returned for any unsuccessful call.
//
// Detail carries the backend's human-readable message when one was provided
// and is empty otherwise.
type APIError struct {
	Class  StatusClass
	Status int
	Detail string
}

func (e *APIError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%s error (status %d): %s", e.Class, e.Status, e.Detail)
	}
	if e.Status > 0 {
		return fmt.Sprintf("%s error (status %d)", e.Class, e.Status)
	}
	return fmt.Sprintf("%s error", e.Class)
}

// Unwrap maps the status class onto the shared sentinel errors so callers
// can use errors.Is without inspecting the struct.
func (e *APIError) Unwrap() error {
	switch e.Class {
	case ClassNetwork:
		return shared.ErrNetwork
	case ClassAuth:
		return shared.ErrSessionExpired
	default:
		return shared.ErrAPIRequest
	}
}

// UserMessage returns the backend detail when present, otherwise the given
// fallback. Mutating actions surface this via the notification channel.
func (e *APIError) UserMessage(fallback string) string {
	if e.Detail != "" {
		return e.Detail
	}
	return fallback
}
