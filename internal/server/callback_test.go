package server

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/twilightlabs/twilight/internal/shared"
)

func TestCallbackHandler(t *testing.T) {
	t.Run("delivers the correlation parameters once", func(t *testing.T) {
		handler := NewCallbackHandler()

		req := httptest.NewRequest(http.MethodGet, "/twitter-callback?oauth_token=tok&oauth_verifier=ver", nil)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Errorf("expected 200, got %d", rec.Code)
		}
		if !strings.Contains(rec.Body.String(), "Authorization Received") {
			t.Error("expected the success page")
		}

		result := <-handler.Result()
		if result.Error() != nil {
			t.Fatalf("unexpected error: %v", result.Error())
		}
		if result.OAuthToken != "tok" || result.OAuthVerifier != "ver" {
			t.Errorf("unexpected result: %+v", result)
		}
	})

	t.Run("rejects a second delivery", func(t *testing.T) {
		handler := NewCallbackHandler()

		first := httptest.NewRecorder()
		handler.ServeHTTP(first, httptest.NewRequest(http.MethodGet, "/twitter-callback?oauth_token=a&oauth_verifier=b", nil))

		second := httptest.NewRecorder()
		handler.ServeHTTP(second, httptest.NewRequest(http.MethodGet, "/twitter-callback?oauth_token=c&oauth_verifier=d", nil))

		if second.Code != http.StatusBadRequest {
			t.Errorf("expected 400 on replay, got %d", second.Code)
		}

		result := <-handler.Result()
		if result.OAuthToken != "a" {
			t.Errorf("expected first delivery to win, got %+v", result)
		}

		// Channel is closed after the single result.
		if _, ok := <-handler.Result(); ok {
			t.Error("expected closed result channel")
		}
	})

	t.Run("missing parameters produce an invalid-callback result", func(t *testing.T) {
		handler := NewCallbackHandler()

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/twitter-callback?oauth_token=tok", nil))

		if rec.Code != http.StatusBadRequest {
			t.Errorf("expected 400, got %d", rec.Code)
		}

		result := <-handler.Result()
		if !errors.Is(result.Error(), shared.ErrInvalidCallback) {
			t.Errorf("expected ErrInvalidCallback, got %v", result.Error())
		}
	})

	t.Run("routes", func(t *testing.T) {
		handler := NewCallbackHandler()
		routes := handler.Routes()
		if len(routes) != 1 || routes[0] != "/twitter-callback" {
			t.Errorf("unexpected routes: %v", routes)
		}
	})

	t.Run("registered with the router", func(t *testing.T) {
		router := NewBasicRouter()
		router.Handler(NewCallbackHandler())

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/twitter-callback?oauth_token=tok&oauth_verifier=ver", nil))

		if rec.Code != http.StatusOK {
			t.Errorf("expected 200 through the router, got %d", rec.Code)
		}
	})
}
