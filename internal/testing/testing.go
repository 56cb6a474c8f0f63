// package testing contains shared testing utilities
package testing

import (
	"context"
	"errors"
	"net/http"
	"os"
	"testing"

	"github.com/twilightlabs/twilight/internal/models"
)

// MockAPI is a test double for [services.API]. Each method delegates to the
// matching function field when set and returns zero values otherwise.
type MockAPI struct {
	LoginFunc           func(ctx context.Context, email, password string) (models.Session, error)
	RegisterFunc        func(ctx context.Context, name, email, password string) (models.Session, error)
	StatsFunc           func(ctx context.Context) (models.Stats, error)
	TwitterAccountFunc  func(ctx context.Context) (*models.LinkedAccount, error)
	ContentConfigFunc   func(ctx context.Context) (models.ContentConfig, error)
	ScheduleFunc        func(ctx context.Context) (models.Schedule, error)
	PostsFunc           func(ctx context.Context, limit int) ([]models.Post, error)
	TwitterAuthURLFunc  func(ctx context.Context) (string, error)
	CompleteFunc        func(ctx context.Context, oauthToken, oauthVerifier string) (*models.LinkedAccount, error)
	DisconnectFunc      func(ctx context.Context) error
	SaveContentFunc     func(ctx context.Context, cfg models.ContentConfig) error
	SaveScheduleFunc    func(ctx context.Context, sched models.Schedule) error
	ToggleScheduleFunc  func(ctx context.Context, enabled bool) error
	GeneratePostFunc    func(ctx context.Context) (models.Post, error)
}

func (m *MockAPI) Login(ctx context.Context, email, password string) (models.Session, error) {
	if m.LoginFunc != nil {
		return m.LoginFunc(ctx, email, password)
	}
	return models.Session{}, nil
}

func (m *MockAPI) Register(ctx context.Context, name, email, password string) (models.Session, error) {
	if m.RegisterFunc != nil {
		return m.RegisterFunc(ctx, name, email, password)
	}
	return models.Session{}, nil
}

func (m *MockAPI) Stats(ctx context.Context) (models.Stats, error) {
	if m.StatsFunc != nil {
		return m.StatsFunc(ctx)
	}
	return models.Stats{}, nil
}

func (m *MockAPI) TwitterAccount(ctx context.Context) (*models.LinkedAccount, error) {
	if m.TwitterAccountFunc != nil {
		return m.TwitterAccountFunc(ctx)
	}
	return nil, nil
}

func (m *MockAPI) ContentConfig(ctx context.Context) (models.ContentConfig, error) {
	if m.ContentConfigFunc != nil {
		return m.ContentConfigFunc(ctx)
	}
	return models.ContentConfig{}, nil
}

func (m *MockAPI) Schedule(ctx context.Context) (models.Schedule, error) {
	if m.ScheduleFunc != nil {
		return m.ScheduleFunc(ctx)
	}
	return models.Schedule{}, nil
}

func (m *MockAPI) Posts(ctx context.Context, limit int) ([]models.Post, error) {
	if m.PostsFunc != nil {
		return m.PostsFunc(ctx, limit)
	}
	return nil, nil
}

func (m *MockAPI) TwitterAuthURL(ctx context.Context) (string, error) {
	if m.TwitterAuthURLFunc != nil {
		return m.TwitterAuthURLFunc(ctx)
	}
	return "", nil
}

func (m *MockAPI) CompleteTwitterCallback(ctx context.Context, oauthToken, oauthVerifier string) (*models.LinkedAccount, error) {
	if m.CompleteFunc != nil {
		return m.CompleteFunc(ctx, oauthToken, oauthVerifier)
	}
	return nil, nil
}

func (m *MockAPI) DisconnectTwitter(ctx context.Context) error {
	if m.DisconnectFunc != nil {
		return m.DisconnectFunc(ctx)
	}
	return nil
}

func (m *MockAPI) SaveContentConfig(ctx context.Context, cfg models.ContentConfig) error {
	if m.SaveContentFunc != nil {
		return m.SaveContentFunc(ctx, cfg)
	}
	return nil
}

func (m *MockAPI) SaveSchedule(ctx context.Context, sched models.Schedule) error {
	if m.SaveScheduleFunc != nil {
		return m.SaveScheduleFunc(ctx, sched)
	}
	return nil
}

func (m *MockAPI) ToggleSchedule(ctx context.Context, enabled bool) error {
	if m.ToggleScheduleFunc != nil {
		return m.ToggleScheduleFunc(ctx, enabled)
	}
	return nil
}

func (m *MockAPI) GeneratePost(ctx context.Context) (models.Post, error) {
	if m.GeneratePostFunc != nil {
		return m.GeneratePostFunc(ctx)
	}
	return models.Post{}, nil
}

// MemoryStore is an in-memory credential store for session tests.
type MemoryStore struct {
	Values map[string]string
	Err    error // returned from every operation when set
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{Values: map[string]string{}}
}

func (s *MemoryStore) Set(key, value string) error {
	if s.Err != nil {
		return s.Err
	}
	s.Values[key] = value
	return nil
}

func (s *MemoryStore) Get(key string) (string, bool, error) {
	if s.Err != nil {
		return "", false, s.Err
	}
	v, ok := s.Values[key]
	return v, ok, nil
}

func (s *MemoryStore) Delete(key string) error {
	if s.Err != nil {
		return s.Err
	}
	delete(s.Values, key)
	return nil
}

// FWriter always returns an error on Write
type FWriter struct{}

func (f *FWriter) Write(p []byte) (n int, err error) {
	return 0, errors.New("write failed")
}

// MockRoundTripper allows custom HTTP responses for testing
type MockRoundTripper struct {
	response *http.Response
	err      error
}

func NewMockRoundTripper(r *http.Response, e error) *MockRoundTripper {
	return &MockRoundTripper{response: r, err: e}
}

func (m *MockRoundTripper) RoundTrip(*http.Request) (*http.Response, error) {
	return m.response, m.err
}

func MustGetwd(t *testing.T) string {
	t.Helper()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("Failed to get working directory: %v", err)
	}
	return wd
}

func AssertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Errorf("File does not exist: %s", path)
	}
}
