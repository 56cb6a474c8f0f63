package main

import (
	"context"
	"fmt"

	"github.com/twilightlabs/twilight/internal/shared"
	"github.com/urfave/cli/v3"
)

// AuthLogin exchanges email and password for a session and persists it.
func (r *Runner) AuthLogin(ctx context.Context, cmd *cli.Command) error {
	email := cmd.String("email")
	password := cmd.String("password")

	r.logger.Info("logging in", "email", email)

	sess, err := r.api.Login(ctx, email, password)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrAuthFailed, err)
	}

	if err := r.session.Login(sess.Token, sess.User); err != nil {
		return fmt.Errorf("failed to persist session: %w", err)
	}

	return r.writePlain("✓ Logged in as %s <%s>\n", sess.User.Name, sess.User.Email)
}

// AuthRegister creates an account and logs in with the returned session.
func (r *Runner) AuthRegister(ctx context.Context, cmd *cli.Command) error {
	name := cmd.String("name")
	email := cmd.String("email")
	password := cmd.String("password")

	r.logger.Info("registering account", "email", email)

	sess, err := r.api.Register(ctx, name, email, password)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrAuthFailed, err)
	}

	if err := r.session.Login(sess.Token, sess.User); err != nil {
		return fmt.Errorf("failed to persist session: %w", err)
	}

	return r.writePlain("✓ Account created. Logged in as %s <%s>\n", sess.User.Name, sess.User.Email)
}

// AuthLogout clears the stored session. Safe to run when logged out.
func (r *Runner) AuthLogout(ctx context.Context, cmd *cli.Command) error {
	if err := r.session.Logout(); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}

	return r.writePlain("✓ Logged out\n")
}

// AuthWhoami shows the current session, or reports that none exists.
func (r *Runner) AuthWhoami(ctx context.Context, cmd *cli.Command) error {
	sess, ok := r.session.Current()
	if !ok {
		return r.writePlain("Not logged in\n")
	}

	r.writePlainHeader("Session")
	r.writePlain("Name:  %s\n", sess.User.Name)
	r.writePlain("Email: %s\n", sess.User.Email)
	r.writePlain("ID:    %s\n", sess.User.ID)
	return nil
}
