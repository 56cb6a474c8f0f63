// Package dashboard populates and owns the dashboard read model.
//
// # Best-effort concurrent refresh
//
// [Aggregator.Refresh] fans out to the five independent backend resources
// (stats, linked account, content config, schedule, recent posts)
// concurrently and joins on all of them settling; it never short-circuits on
// the first failure. Each resource is its own failure domain: on success its
// slot is replaced with the response, on failure the slot keeps its prior
// value and the error is logged only. A broken widget must not blank the
// rest of the dashboard.
//
// Two refresh cycles may be in flight at once; slots are applied in
// completion order with no sequencing token, so last write wins.
//
// # Progress reporting
//
// Refresh emits non-blocking [ProgressUpdate] events so the CLI and TUI can
// display per-resource status without ever stalling a fetch.
//
// # Offline snapshots
//
// After every refresh the slots that settled successfully are persisted to
// the local snapshot cache (best-effort, errors logged only), and
// [Aggregator.LoadCached] restores them so the dashboard renders without a
// backend.
package dashboard
