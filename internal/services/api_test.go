package services

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/twilightlabs/twilight/internal/models"
	"github.com/twilightlabs/twilight/internal/shared"
)

// staticTokens is a TokenProvider with a fixed token.
type staticTokens struct {
	token string
	ok    bool
}

func (s staticTokens) Token() (string, bool) { return s.token, s.ok }

func newTestClient(serverURL string, tokens TokenProvider, onAuthError func()) *Client {
	return NewClient(ClientOpts{
		BaseURL:     serverURL,
		Tokens:      tokens,
		RateLimit:   1000, // keep the limiter out of the way
		OnAuthError: onAuthError,
	})
}

func TestClient(t *testing.T) {
	ctx := context.Background()

	t.Run("Login", func(t *testing.T) {
		t.Run("posts credentials and decodes the session", func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.Method != http.MethodPost || r.URL.Path != "/api/auth/login" {
					t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
				}

				var body map[string]string
				payload, _ := io.ReadAll(r.Body)
				if err := json.Unmarshal(payload, &body); err != nil {
					t.Fatalf("failed to decode body: %v", err)
				}
				if body["email"] != "ada@example.com" || body["password"] != "hunter2" {
					t.Errorf("unexpected body: %v", body)
				}

				w.Header().Set("Content-Type", "application/json")
				json.NewEncoder(w).Encode(map[string]any{
					"token": "tok-1",
					"user":  map[string]string{"id": "u-1", "name": "Ada", "email": "ada@example.com"},
				})
			}))
			defer server.Close()

			client := newTestClient(server.URL, nil, nil)
			sess, err := client.Login(ctx, "ada@example.com", "hunter2")
			if err != nil {
				t.Fatalf("Login failed: %v", err)
			}
			if sess.Token != "tok-1" || sess.User.ID != "u-1" {
				t.Errorf("unexpected session: %+v", sess)
			}
		})

		t.Run("surfaces the backend detail on rejection", func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusUnauthorized)
				w.Write([]byte(`{"detail": "Incorrect email or password"}`))
			}))
			defer server.Close()

			client := newTestClient(server.URL, nil, nil)
			_, err := client.Login(ctx, "ada@example.com", "wrong")
			if err == nil {
				t.Fatal("expected error")
			}

			var apiErr *APIError
			if !errors.As(err, &apiErr) {
				t.Fatalf("expected APIError, got %T", err)
			}
			if apiErr.UserMessage("fallback") != "Incorrect email or password" {
				t.Errorf("expected backend detail, got %q", apiErr.UserMessage("fallback"))
			}
		})
	})

	t.Run("authentication", func(t *testing.T) {
		t.Run("attaches the bearer token", func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if got := r.Header.Get("Authorization"); got != "Bearer tok-42" {
					t.Errorf("unexpected Authorization header: %q", got)
				}
				w.Write([]byte(`{"total_posts": 1}`))
			}))
			defer server.Close()

			client := newTestClient(server.URL, staticTokens{token: "tok-42", ok: true}, nil)
			if _, err := client.Stats(ctx); err != nil {
				t.Fatalf("Stats failed: %v", err)
			}
		})

		t.Run("fails fast without a session", func(t *testing.T) {
			hit := false
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				hit = true
			}))
			defer server.Close()

			client := newTestClient(server.URL, staticTokens{}, nil)
			_, err := client.Stats(ctx)
			if !errors.Is(err, shared.ErrNotAuthenticated) {
				t.Errorf("expected ErrNotAuthenticated, got %v", err)
			}
			if hit {
				t.Error("no request may be sent without a session")
			}
		})

		t.Run("401 fires the auth failure hook", func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusUnauthorized)
				w.Write([]byte(`{"detail": "Token expired"}`))
			}))
			defer server.Close()

			fired := 0
			client := newTestClient(server.URL, staticTokens{token: "stale", ok: true}, func() { fired++ })

			_, err := client.Stats(ctx)
			if !errors.Is(err, shared.ErrSessionExpired) {
				t.Errorf("expected ErrSessionExpired, got %v", err)
			}
			if fired != 1 {
				t.Errorf("expected hook fired once, got %d", fired)
			}
		})

		t.Run("rejected login does not fire the auth failure hook", func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusUnauthorized)
				w.Write([]byte(`{"detail": "Incorrect email or password"}`))
			}))
			defer server.Close()

			fired := 0
			client := newTestClient(server.URL, staticTokens{token: "tok-good", ok: true}, func() { fired++ })

			if _, err := client.Login(ctx, "ada@example.com", "wrong"); err == nil {
				t.Fatal("expected error")
			}
			if fired != 0 {
				t.Errorf("a failed login must not invalidate the held session, hook fired %d times", fired)
			}
		})
	})

	t.Run("classification", func(t *testing.T) {
		codes := []struct {
			name   string
			status int
			class  StatusClass
		}{
			{"401 is auth", http.StatusUnauthorized, ClassAuth},
			{"403 is auth", http.StatusForbidden, ClassAuth},
			{"422 is client", http.StatusUnprocessableEntity, ClassClient},
			{"500 is server", http.StatusInternalServerError, ClassServer},
			{"503 is server", http.StatusServiceUnavailable, ClassServer},
		}

		for _, tc := range codes {
			t.Run(tc.name, func(t *testing.T) {
				server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
					w.WriteHeader(tc.status)
				}))
				defer server.Close()

				client := newTestClient(server.URL, staticTokens{token: "tok", ok: true}, nil)
				_, err := client.Stats(ctx)

				var apiErr *APIError
				if !errors.As(err, &apiErr) {
					t.Fatalf("expected APIError, got %T", err)
				}
				if apiErr.Class != tc.class {
					t.Errorf("expected class %v, got %v", tc.class, apiErr.Class)
				}
			})
		}

		t.Run("unreachable backend is a network failure", func(t *testing.T) {
			client := newTestClient("http://127.0.0.1:1", staticTokens{token: "tok", ok: true}, nil)
			_, err := client.Stats(ctx)
			if !errors.Is(err, shared.ErrNetwork) {
				t.Errorf("expected ErrNetwork, got %v", err)
			}
		})
	})

	t.Run("TwitterAccount", func(t *testing.T) {
		t.Run("404 means not connected", func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusNotFound)
				w.Write([]byte(`{"detail": "No Twitter account connected"}`))
			}))
			defer server.Close()

			client := newTestClient(server.URL, staticTokens{token: "tok", ok: true}, nil)
			account, err := client.TwitterAccount(ctx)
			if err != nil {
				t.Fatalf("expected absence, got error: %v", err)
			}
			if account != nil {
				t.Errorf("expected nil account, got %+v", account)
			}
		})

		t.Run("decodes the linked account", func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(`{"twitter_user_id": "123", "name": "Ada", "screen_name": "ada", "profile_image_url": "https://img.example/a.png"}`))
			}))
			defer server.Close()

			client := newTestClient(server.URL, staticTokens{token: "tok", ok: true}, nil)
			account, err := client.TwitterAccount(ctx)
			if err != nil {
				t.Fatalf("TwitterAccount failed: %v", err)
			}
			if account == nil || account.ScreenName != "ada" || account.TwitterUserID != "123" {
				t.Errorf("unexpected account: %+v", account)
			}
		})
	})

	t.Run("CompleteTwitterCallback", func(t *testing.T) {
		t.Run("query-escapes the correlation parameters", func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.URL.Path != "/api/twitter/callback" {
					t.Errorf("unexpected path: %s", r.URL.Path)
				}
				if got := r.URL.Query().Get("oauth_token"); got != "a b&c" {
					t.Errorf("unexpected oauth_token: %q", got)
				}
				if got := r.URL.Query().Get("oauth_verifier"); got != "ver" {
					t.Errorf("unexpected oauth_verifier: %q", got)
				}
				w.Write([]byte(`{"twitter_user_id": "123", "screen_name": "ada"}`))
			}))
			defer server.Close()

			client := newTestClient(server.URL, staticTokens{token: "tok", ok: true}, nil)
			account, err := client.CompleteTwitterCallback(ctx, "a b&c", "ver")
			if err != nil {
				t.Fatalf("CompleteTwitterCallback failed: %v", err)
			}
			if account == nil || account.ScreenName != "ada" {
				t.Errorf("unexpected account: %+v", account)
			}
		})

		t.Run("rejects missing parameters locally", func(t *testing.T) {
			client := newTestClient("http://127.0.0.1:1", staticTokens{token: "tok", ok: true}, nil)
			if _, err := client.CompleteTwitterCallback(ctx, "", "ver"); !errors.Is(err, shared.ErrInvalidCallback) {
				t.Errorf("expected ErrInvalidCallback, got %v", err)
			}
		})
	})

	t.Run("ToggleSchedule", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodPatch || r.URL.Path != "/api/schedule/toggle" {
				t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
			}
			if got := r.URL.Query().Get("enabled"); got != "true" {
				t.Errorf("unexpected enabled param: %q", got)
			}
		}))
		defer server.Close()

		client := newTestClient(server.URL, staticTokens{token: "tok", ok: true}, nil)
		if err := client.ToggleSchedule(ctx, true); err != nil {
			t.Fatalf("ToggleSchedule failed: %v", err)
		}
	})

	t.Run("Posts", func(t *testing.T) {
		t.Run("passes the limit and decodes the feed", func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if got := r.URL.Query().Get("limit"); got != "5" {
					t.Errorf("unexpected limit: %q", got)
				}
				w.Write([]byte(`[{"id": "p1", "content": "hello", "status": "success", "created_at": "2026-01-02T15:04:05Z"}]`))
			}))
			defer server.Close()

			client := newTestClient(server.URL, staticTokens{token: "tok", ok: true}, nil)
			posts, err := client.Posts(ctx, 5)
			if err != nil {
				t.Fatalf("Posts failed: %v", err)
			}
			if len(posts) != 1 || posts[0].Status != models.PostSuccess {
				t.Errorf("unexpected posts: %+v", posts)
			}
		})

		t.Run("defaults a non-positive limit", func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if got := r.URL.Query().Get("limit"); got != "10" {
					t.Errorf("unexpected limit: %q", got)
				}
				w.Write([]byte(`[]`))
			}))
			defer server.Close()

			client := newTestClient(server.URL, staticTokens{token: "tok", ok: true}, nil)
			if _, err := client.Posts(ctx, 0); err != nil {
				t.Fatalf("Posts failed: %v", err)
			}
		})
	})

	t.Run("TwitterAuthURL", func(t *testing.T) {
		t.Run("returns the provider URL", func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(`{"auth_url": "https://provider.example/authorize?token=abc"}`))
			}))
			defer server.Close()

			client := newTestClient(server.URL, staticTokens{token: "tok", ok: true}, nil)
			url, err := client.TwitterAuthURL(ctx)
			if err != nil {
				t.Fatalf("TwitterAuthURL failed: %v", err)
			}
			if url != "https://provider.example/authorize?token=abc" {
				t.Errorf("unexpected url: %q", url)
			}
		})

		t.Run("empty URL is a link failure", func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(`{}`))
			}))
			defer server.Close()

			client := newTestClient(server.URL, staticTokens{token: "tok", ok: true}, nil)
			if _, err := client.TwitterAuthURL(ctx); !errors.Is(err, shared.ErrLinkFailed) {
				t.Errorf("expected ErrLinkFailed, got %v", err)
			}
		})
	})
}
