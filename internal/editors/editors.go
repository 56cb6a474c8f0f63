// Package editors holds locally-edited draft state for the content
// configuration and posting schedule.
//
// Each editor mirrors the last-known-good server copy. Save submits the
// entire draft; on success a full dashboard refresh makes the server echo
// the single source of truth, on failure the draft is retained untouched
// and the error is surfaced. The automation flag has a dedicated optimistic
// fast path modeled as a tagged synced/pending state so a failed toggle is
// structurally forced to roll back.
package editors

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/twilightlabs/twilight/internal/dashboard"
	"github.com/twilightlabs/twilight/internal/models"
	"github.com/twilightlabs/twilight/internal/services"
	"github.com/twilightlabs/twilight/internal/shared"
)

// Refresher triggers a full dashboard refresh cycle after a successful
// mutation. Implemented by [dashboard.Aggregator].
type Refresher interface {
	Refresh(ctx context.Context, progress chan<- dashboard.ProgressUpdate) dashboard.Snapshot
}

// ConfigEditor owns the draft content configuration.
type ConfigEditor struct {
	api     services.API
	refresh Refresher
	notify  shared.Notifier
	logger  *log.Logger

	mu    sync.Mutex
	draft models.ContentConfig
}

// NewConfigEditor creates a content configuration editor.
func NewConfigEditor(api services.API, refresh Refresher, notify shared.Notifier, logger *log.Logger) *ConfigEditor {
	if notify == nil {
		notify = func(kind, message string) {}
	}
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	return &ConfigEditor{api: api, refresh: refresh, notify: notify, logger: logger}
}

// Load replaces the draft with the authoritative server copy.
func (e *ConfigEditor) Load(cfg models.ContentConfig) {
	e.mu.Lock()
	e.draft = cfg
	e.mu.Unlock()
}

// Draft returns the current draft.
func (e *ConfigEditor) Draft() models.ContentConfig {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.draft
}

// Edit applies a mutation to the draft.
func (e *ConfigEditor) Edit(fn func(*models.ContentConfig)) {
	e.mu.Lock()
	fn(&e.draft)
	e.mu.Unlock()
}

// Save submits the whole draft. On success the follow-up refresh resets the
// draft to whatever the server echoes back; on failure the draft is kept
// unchanged and the error is surfaced.
func (e *ConfigEditor) Save(ctx context.Context) error {
	draft := e.Draft()
	if err := draft.Validate(); err != nil {
		e.notify("error", err.Error())
		return fmt.Errorf("%w: %v", shared.ErrInvalidInput, err)
	}

	if err := e.api.SaveContentConfig(ctx, draft); err != nil {
		e.notify("error", userMessage(err, "Failed to save content configuration"))
		return err
	}

	e.notify("success", "Content configuration saved!")

	if e.refresh != nil {
		snap := e.refresh.Refresh(ctx, nil)
		e.Load(snap.Config)
	}

	return nil
}

// ScheduleEditor owns the draft posting schedule and the optimistic
// automation toggle.
type ScheduleEditor struct {
	api     services.API
	refresh Refresher
	notify  shared.Notifier
	logger  *log.Logger

	mu     sync.Mutex
	draft  models.Schedule
	toggle models.ToggleState
}

// NewScheduleEditor creates a posting schedule editor.
func NewScheduleEditor(api services.API, refresh Refresher, notify shared.Notifier, logger *log.Logger) *ScheduleEditor {
	if notify == nil {
		notify = func(kind, message string) {}
	}
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	return &ScheduleEditor{api: api, refresh: refresh, notify: notify, logger: logger}
}

// Load replaces the draft (and settles the toggle) from the authoritative
// server copy.
func (e *ScheduleEditor) Load(sched models.Schedule) {
	e.mu.Lock()
	e.draft = sched
	e.toggle = models.SyncedToggle(sched.Enabled)
	e.mu.Unlock()
}

// Draft returns the current draft with the toggle's view of the enabled
// flag folded in.
func (e *ScheduleEditor) Draft() models.Schedule {
	e.mu.Lock()
	defer e.mu.Unlock()
	draft := e.draft
	draft.Enabled = e.toggle.Value
	return draft
}

// Edit applies a mutation to the draft. The enabled flag is owned by the
// toggle fast path and ignored here.
func (e *ScheduleEditor) Edit(fn func(*models.Schedule)) {
	e.mu.Lock()
	enabled := e.draft.Enabled
	fn(&e.draft)
	e.draft.Enabled = enabled
	e.mu.Unlock()
}

// Enabled returns the toggle's current (possibly optimistic) value.
func (e *ScheduleEditor) Enabled() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.toggle.Value
}

// Pending reports whether a toggle is awaiting backend confirmation.
func (e *ScheduleEditor) Pending() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.toggle.Pending
}

// Save submits the whole draft. Same retain-on-failure contract as the
// content editor.
func (e *ScheduleEditor) Save(ctx context.Context) error {
	draft := e.Draft()
	if err := draft.Validate(); err != nil {
		e.notify("error", err.Error())
		return fmt.Errorf("%w: %v", shared.ErrInvalidInput, err)
	}

	if err := e.api.SaveSchedule(ctx, draft); err != nil {
		e.notify("error", userMessage(err, "Failed to save schedule"))
		return err
	}

	e.notify("success", "Schedule saved!")

	if e.refresh != nil {
		snap := e.refresh.Refresh(ctx, nil)
		e.Load(snap.Schedule)
	}

	return nil
}

// Toggle flips only the automation flag. The new value is visible
// immediately; a backend failure reverts to the pre-toggle value so the
// optimistic update can never stick around unconfirmed.
func (e *ScheduleEditor) Toggle(ctx context.Context, enabled bool) error {
	e.mu.Lock()
	e.toggle = e.toggle.Apply(enabled)
	e.mu.Unlock()

	if err := e.api.ToggleSchedule(ctx, enabled); err != nil {
		e.mu.Lock()
		e.toggle = e.toggle.Rollback()
		e.mu.Unlock()

		e.notify("error", userMessage(err, "Failed to toggle automation"))
		return err
	}

	e.mu.Lock()
	e.toggle = e.toggle.Commit()
	e.draft.Enabled = enabled
	e.mu.Unlock()

	if enabled {
		e.notify("success", "Automation enabled!")
	} else {
		e.notify("success", "Automation disabled!")
	}

	if e.refresh != nil {
		snap := e.refresh.Refresh(ctx, nil)
		e.Load(snap.Schedule)
	}

	return nil
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
