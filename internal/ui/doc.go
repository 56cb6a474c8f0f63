// Package ui implements an interactive terminal interface using bubbletea's Elm architecture.
//
// The TUI provides a multi-view workflow around the dashboard read model:
//  1. [DashboardView] : Aggregated stats, account, content, and schedule summary
//  2. [PostsView] : Browse recent posts
//  3. [LinkingView] : Monitor the Twitter authorization handshake
//  4. [ConfirmDisconnectView] : Confirm account disconnection
//
// The (view) [Model] implements bubbletea/Elm's standard Init/Update/View pattern, receiving messages via the Msg union type.
// Refresh progress flows through a channel from the dashboard aggregator, providing non-blocking status reporting.
//
// Keyboard navigation uses vim-style bindings (j/k, enter, esc, y/n, q) with contextual help displayed via charmbracelet/bubbles/help.
package ui
