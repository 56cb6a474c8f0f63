package main

import (
	"context"
	"fmt"
	"time"

	"github.com/urfave/cli/v3"
)

// TwitterConnect runs the full authorization handshake: local callback
// listener, browser hand-off, and completion.
func (r *Runner) TwitterConnect(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireSession(); err != nil {
		return err
	}

	timeout := time.Duration(cmd.Int("timeout")) * time.Second
	addr := r.config.CallbackAddr()

	r.writePlain("Listening on %s for the authorization callback...\n", addr)

	if err := r.link.Link(ctx, addr, timeout); err != nil {
		return err
	}

	if account := r.link.Account(); account != nil {
		return r.writePlain("Connected as @%s (%s)\n", account.ScreenName, account.Name)
	}
	return nil
}

// TwitterCallback completes the handshake with explicitly supplied redirect
// parameters, for when the browser redirect cannot reach the local listener.
func (r *Runner) TwitterCallback(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireSession(); err != nil {
		return err
	}

	token := cmd.String("oauth-token")
	verifier := cmd.String("oauth-verifier")

	if err := r.link.CompleteCallback(ctx, token, verifier); err != nil {
		return err
	}

	if account := r.link.Account(); account != nil {
		return r.writePlain("Connected as @%s (%s)\n", account.ScreenName, account.Name)
	}
	return nil
}

// TwitterDisconnect unlinks the account after confirmation.
func (r *Runner) TwitterDisconnect(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireSession(); err != nil {
		return err
	}

	if cmd.Bool("yes") {
		return r.link.DisconnectConfirmed(ctx)
	}
	return r.link.Disconnect(ctx)
}

// TwitterStatus shows the linked account from the server's point of view.
func (r *Runner) TwitterStatus(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireSession(); err != nil {
		return err
	}

	account, err := r.api.TwitterAccount(ctx)
	if err != nil {
		return fmt.Errorf("failed to fetch account: %w", err)
	}

	r.link.SetAccount(account)

	if account == nil {
		return r.writePlain("No Twitter account connected\n")
	}

	r.writePlainHeader("Twitter Account")
	r.writePlain("Handle: @%s\n", account.ScreenName)
	r.writePlain("Name:   %s\n", account.Name)
	r.writePlain("ID:     %s\n", account.TwitterUserID)
	return nil
}
