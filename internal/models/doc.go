// Package models defines the domain entities exchanged with the TwiLight backend.
//
// The package contains two categories of types:
//
// 1. Session state: [Session], [UserProfile] — owned by the session manager
// and mirrored into the local credential store.
//
// 2. Dashboard resources: [Stats], [LinkedAccount], [ContentConfig],
// [Schedule], [Post] — read models owned by the aggregator, plus the
// editor-owned draft copies of [ContentConfig] and [Schedule].
//
// Enumerated fields ([Tone], [Length], [Frequency], [PostStatus]) carry
// Validate methods so drafts are checked before they are submitted.
//
// [ToggleState] models the automation flag as a tagged synced/pending pair so
// an optimistic toggle always has a previous value to roll back to.
package models
