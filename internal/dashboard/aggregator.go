package dashboard

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/twilightlabs/twilight/internal/models"
	"github.com/twilightlabs/twilight/internal/repositories"
	"github.com/twilightlabs/twilight/internal/services"
	"github.com/twilightlabs/twilight/internal/shared"
)

// Snapshot is one consistent copy of the dashboard read model.
type Snapshot struct {
	Stats       models.Stats          `json:"stats"`
	Account     *models.LinkedAccount `json:"account,omitempty"`
	Config      models.ContentConfig  `json:"content_config"`
	Schedule    models.Schedule       `json:"schedule"`
	Posts       []models.Post         `json:"posts"`
	RefreshedAt time.Time             `json:"refreshed_at"`
}

// Cache persists per-resource payloads across runs.
// Implemented by [repositories.SnapshotRepository].
type Cache interface {
	Save(resource string, payload []byte, fetchedAt time.Time) error
	Load(resource string) ([]byte, time.Time, bool, error)
}

// Aggregator fetches the five dashboard resources and holds the read model.
type Aggregator struct {
	api        services.API
	cache      Cache
	logger     *log.Logger
	postsLimit int

	mu   sync.RWMutex
	snap Snapshot
}

// AggregatorOpts contains configuration options for creating an Aggregator.
type AggregatorOpts struct {
	API        services.API
	Cache      Cache // optional; nil disables offline snapshots
	Logger     *log.Logger
	PostsLimit int // defaults to 10
}

// NewAggregator creates an Aggregator with the provided dependencies.
func NewAggregator(opts AggregatorOpts) *Aggregator {
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.PostsLimit <= 0 {
		opts.PostsLimit = 10
	}

	return &Aggregator{
		api:        opts.API,
		cache:      opts.Cache,
		logger:     opts.Logger,
		postsLimit: opts.PostsLimit,
	}
}

// sendProgress sends a progress update through the channel without blocking.
// Uses select with default so progress reporting never stalls a fetch.
func (a *Aggregator) sendProgress(progress chan<- ProgressUpdate, update ProgressUpdate) {
	if progress == nil {
		return
	}
	select {
	case progress <- update:
	default:
	}
}

// resourceFetch is one slot in the refresh fan-out: fetch retrieves the
// resource, apply replaces the slot on success.
type resourceFetch struct {
	phase    Phase
	resource string
	message  string
	fetch    func(ctx context.Context) (any, error)
	apply    func(value any)
}

// Refresh runs one full refresh cycle: all five resources fetched
// concurrently, joined when every one has settled. A failed resource keeps
// its prior slot value; no error is returned for this path, matching the
// silent-background-refresh policy.
func (a *Aggregator) Refresh(ctx context.Context, progress chan<- ProgressUpdate) Snapshot {
	fetches := []resourceFetch{
		{
			phase:    FetchStats,
			resource: repositories.ResourceStats,
			message:  "Fetching post statistics...",
			fetch:    func(ctx context.Context) (any, error) { return a.api.Stats(ctx) },
			apply: func(v any) {
				a.mu.Lock()
				a.snap.Stats = v.(models.Stats)
				a.mu.Unlock()
			},
		},
		{
			phase:    FetchAccount,
			resource: repositories.ResourceAccount,
			message:  "Fetching linked account...",
			fetch:    func(ctx context.Context) (any, error) { return a.api.TwitterAccount(ctx) },
			apply: func(v any) {
				a.mu.Lock()
				a.snap.Account = v.(*models.LinkedAccount)
				a.mu.Unlock()
			},
		},
		{
			phase:    FetchConfig,
			resource: repositories.ResourceConfig,
			message:  "Fetching content configuration...",
			fetch:    func(ctx context.Context) (any, error) { return a.api.ContentConfig(ctx) },
			apply: func(v any) {
				a.mu.Lock()
				a.snap.Config = v.(models.ContentConfig)
				a.mu.Unlock()
			},
		},
		{
			phase:    FetchSchedule,
			resource: repositories.ResourceSchedule,
			message:  "Fetching posting schedule...",
			fetch:    func(ctx context.Context) (any, error) { return a.api.Schedule(ctx) },
			apply: func(v any) {
				a.mu.Lock()
				a.snap.Schedule = v.(models.Schedule)
				a.mu.Unlock()
			},
		},
		{
			phase:    FetchPosts,
			resource: repositories.ResourcePosts,
			message:  "Fetching recent posts...",
			fetch:    func(ctx context.Context) (any, error) { return a.api.Posts(ctx, a.postsLimit) },
			apply: func(v any) {
				a.mu.Lock()
				a.snap.Posts = v.([]models.Post)
				a.mu.Unlock()
			},
		},
	}

	total := len(fetches)
	var wg sync.WaitGroup

	for i, rf := range fetches {
		wg.Add(1)
		go func(step int, rf resourceFetch) {
			defer wg.Done()

			a.sendProgress(progress, fetchUpdate(rf.phase, step, total, rf.message))

			value, err := rf.fetch(ctx)
			if err != nil {
				// Stale-but-present: the slot keeps its prior value and the
				// failure stays out of the other resources' way.
				a.logger.Warn("dashboard resource fetch failed", "resource", rf.resource, "error", err)
				a.sendProgress(progress, fetchFailedUpdate(rf.phase, step, total, err))
				return
			}

			rf.apply(value)
			a.persist(rf.resource, value)
		}(i+1, rf)
	}

	wg.Wait()

	a.mu.Lock()
	a.snap.RefreshedAt = time.Now()
	snap := a.copySnapshotLocked()
	a.mu.Unlock()

	a.sendProgress(progress, refreshDoneUpdate(total))
	return snap
}

// persist writes one resource payload to the snapshot cache. Best-effort:
// cache failures are logged and otherwise ignored.
func (a *Aggregator) persist(resource string, value any) {
	if a.cache == nil {
		return
	}

	payload, err := json.Marshal(value)
	if err != nil {
		a.logger.Warn("failed to encode snapshot", "resource", resource, "error", err)
		return
	}

	if err := a.cache.Save(resource, payload, time.Now()); err != nil {
		a.logger.Warn("failed to cache snapshot", "resource", resource, "error", err)
	}
}

// LoadCached restores the read model from the local snapshot cache. Missing
// resources keep their zero values.
func (a *Aggregator) LoadCached() (Snapshot, error) {
	if a.cache == nil {
		return a.Snapshot(), nil
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	var newest time.Time
	restore := []struct {
		resource string
		target   any
	}{
		{repositories.ResourceStats, &a.snap.Stats},
		{repositories.ResourceAccount, &a.snap.Account},
		{repositories.ResourceConfig, &a.snap.Config},
		{repositories.ResourceSchedule, &a.snap.Schedule},
		{repositories.ResourcePosts, &a.snap.Posts},
	}

	for _, r := range restore {
		payload, fetchedAt, ok, err := a.cache.Load(r.resource)
		if err != nil {
			return Snapshot{}, err
		}
		if !ok {
			continue
		}
		if err := json.Unmarshal(payload, r.target); err != nil {
			a.logger.Warn("failed to decode cached snapshot", "resource", r.resource, "error", err)
			continue
		}
		if fetchedAt.After(newest) {
			newest = fetchedAt
		}
	}

	a.snap.RefreshedAt = newest
	return a.copySnapshotLocked(), nil
}

// Snapshot returns a consistent copy of the current read model.
func (a *Aggregator) Snapshot() Snapshot {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.copySnapshotLocked()
}

// SetAccount replaces the linked-account slot directly. Used by the link
// controller when a handshake settles out of band of a refresh cycle.
func (a *Aggregator) SetAccount(account *models.LinkedAccount) {
	a.mu.Lock()
	a.snap.Account = account
	a.mu.Unlock()
	a.persist(repositories.ResourceAccount, account)
}

func (a *Aggregator) copySnapshotLocked() Snapshot {
	snap := a.snap
	if a.snap.Account != nil {
		account := *a.snap.Account
		snap.Account = &account
	}
	snap.Posts = make([]models.Post, len(a.snap.Posts))
	copy(snap.Posts, a.snap.Posts)
	return snap
}
