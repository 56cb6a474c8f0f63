// Package repositories implements SQLite persistence for local client state.
//
// Key Implementations:
//   - [CredentialRepository] : durable key/value store holding the session
//     token and serialized user profile across process restarts
//   - [SnapshotRepository] : last-good copies of each dashboard resource so
//     the dashboard can render offline from stale-but-present data
//
// Both repositories are plain upsert/select/delete over tables created by
// the embedded migrations in internal/shared.
package repositories
