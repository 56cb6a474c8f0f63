package main

import (
	"context"
	"fmt"

	"github.com/twilightlabs/twilight/internal/dashboard"
	"github.com/twilightlabs/twilight/internal/formatter"
	"github.com/urfave/cli/v3"
)

// Dashboard refreshes the five dashboard resources and renders the result.
// With --cached it renders the last persisted snapshot without fetching.
func (r *Runner) Dashboard(ctx context.Context, cmd *cli.Command) error {
	var snap dashboard.Snapshot

	if cmd.Bool("cached") {
		var err error
		snap, err = r.agg.LoadCached()
		if err != nil {
			return fmt.Errorf("failed to load cached snapshot: %w", err)
		}
	} else {
		if err := r.requireSession(); err != nil {
			return err
		}

		progress := make(chan dashboard.ProgressUpdate, 16)
		done := make(chan struct{})

		go func() {
			defer close(done)
			for update := range progress {
				if update.Err != nil {
					r.writePlain("✗ [%d/%d] %s: %v\n", update.Step, update.Total, update.Phase, update.Err)
					continue
				}
				r.writePlain("  [%d/%d] %s\n", update.Step, update.Total, update.Message)
			}
		}()

		snap = r.agg.Refresh(ctx, progress)
		close(progress)
		<-done

		// Keep the link controller's view of the account current.
		r.link.SetAccount(snap.Account)
	}

	switch {
	case cmd.Bool("json"):
		return r.writeJSON(snap, true)
	case cmd.Bool("markdown"):
		_, err := r.output.Write(formatter.SnapshotToMarkdown(snap))
		return err
	}

	r.writePlainHeader("TwiLight Dashboard")

	if !snap.RefreshedAt.IsZero() {
		r.writePlain("Refreshed: %s\n\n", snap.RefreshedAt.Format("2006-01-02 15:04:05"))
	}

	r.writePlain("Posts: %d total, %d successful, %d failed, %d scheduled\n\n",
		snap.Stats.TotalPosts, snap.Stats.SuccessfulPosts, snap.Stats.FailedPosts, snap.Stats.ScheduledPosts)

	if snap.Account != nil {
		r.writePlain("Twitter: @%s (%s)\n", snap.Account.ScreenName, snap.Account.Name)
	} else {
		r.writePlain("Twitter: not connected\n")
	}

	r.writePlain("Content: %q, %s, %s\n", snap.Config.Topic, snap.Config.Tone, snap.Config.Length)

	status := "disabled"
	if snap.Schedule.Enabled {
		status = "enabled"
	}
	r.writePlain("Schedule: %s at %s %s (%s)\n\n", snap.Schedule.Frequency,
		snap.Schedule.TimeOfDay, snap.Schedule.Timezone, status)

	r.writePlain("Recent posts:\n")
	if len(snap.Posts) == 0 {
		r.writePlain("  (none)\n")
	}
	for _, post := range snap.Posts {
		r.writePlain("  [%s] %s  %s\n", post.Status, post.CreatedAt.Format("2006-01-02 15:04"),
			formatter.Truncate(post.Content, 60))
	}

	return nil
}
