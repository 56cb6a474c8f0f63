package ui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/twilightlabs/twilight/internal/dashboard"
	"github.com/twilightlabs/twilight/internal/models"
)

// MsgKind enumerates all message types in the application.
type MsgKind int

// Msg represents all possible messages in the TUI (Elm-style message union).
type Msg struct {
	kind MsgKind
	data any
}

var (
	_ tea.Msg = Msg{}
)

const (
	MsgRefreshProgress MsgKind = iota
	MsgRefreshDone
	MsgToggleDone
	MsgLinkDone
	MsgDisconnectDone
	MsgGenerateDone
)

// refreshProgressMsg is the constructor for [MsgRefreshProgress]
func refreshProgressMsg(update dashboard.ProgressUpdate) Msg {
	return Msg{kind: MsgRefreshProgress, data: update}
}

// refreshDoneMsg is the constructor for [MsgRefreshDone]
func refreshDoneMsg(snap dashboard.Snapshot) Msg {
	return Msg{kind: MsgRefreshDone, data: snap}
}

// toggleDoneMsg is the constructor for [MsgToggleDone]
func toggleDoneMsg(enabled bool, err error) Msg {
	return Msg{
		kind: MsgToggleDone,
		data: struct {
			enabled bool
			err     error
		}{enabled, err},
	}
}

// linkDoneMsg is the constructor for [MsgLinkDone]
func linkDoneMsg(account *models.LinkedAccount, err error) Msg {
	return Msg{
		kind: MsgLinkDone,
		data: struct {
			account *models.LinkedAccount
			err     error
		}{account, err},
	}
}

// disconnectDoneMsg is the constructor for [MsgDisconnectDone]
func disconnectDoneMsg(err error) Msg {
	return Msg{kind: MsgDisconnectDone, data: err}
}

// generateDoneMsg is the constructor for [MsgGenerateDone]
func generateDoneMsg(post models.Post, err error) Msg {
	return Msg{
		kind: MsgGenerateDone,
		data: struct {
			post models.Post
			err  error
		}{post, err},
	}
}
