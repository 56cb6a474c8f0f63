package main

import (
	"context"
	"fmt"

	"github.com/twilightlabs/twilight/internal/models"
	"github.com/twilightlabs/twilight/internal/shared"
	"github.com/urfave/cli/v3"
)

// ScheduleShow prints the authoritative posting schedule.
func (r *Runner) ScheduleShow(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireSession(); err != nil {
		return err
	}

	sched, err := r.api.Schedule(ctx)
	if err != nil {
		return fmt.Errorf("failed to fetch schedule: %w", err)
	}

	if cmd.Bool("json") {
		return r.writeJSON(sched, true)
	}

	status := "disabled"
	if sched.Enabled {
		status = "enabled"
	}

	r.writePlainHeader("Posting Schedule")
	r.writePlain("Frequency: %s\n", sched.Frequency)
	r.writePlain("Time:      %s\n", sched.TimeOfDay)
	r.writePlain("Timezone:  %s\n", sched.Timezone)
	r.writePlain("Status:    %s\n", status)
	return nil
}

// ScheduleSave merges the provided flags over the server's schedule and
// submits the result. The enabled flag is owned by toggle, not save.
func (r *Runner) ScheduleSave(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireSession(); err != nil {
		return err
	}

	sched, err := r.api.Schedule(ctx)
	if err != nil {
		return fmt.Errorf("failed to fetch schedule: %w", err)
	}

	r.schedule.Load(sched)
	r.schedule.Edit(func(draft *models.Schedule) {
		if cmd.IsSet("frequency") {
			draft.Frequency = models.Frequency(cmd.String("frequency"))
		}
		if cmd.IsSet("time") {
			draft.TimeOfDay = cmd.String("time")
		}
		if cmd.IsSet("timezone") {
			draft.Timezone = cmd.String("timezone")
		}
	})

	return r.schedule.Save(ctx)
}

// ScheduleToggle flips automation on or off, rolling back if the request fails.
func (r *Runner) ScheduleToggle(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireSession(); err != nil {
		return err
	}

	var enabled bool
	switch cmd.StringArg("enabled") {
	case "on", "true", "enable":
		enabled = true
	case "off", "false", "disable":
		enabled = false
	default:
		return fmt.Errorf("%w: expected 'on' or 'off'", shared.ErrInvalidArgument)
	}

	sched, err := r.api.Schedule(ctx)
	if err != nil {
		return fmt.Errorf("failed to fetch schedule: %w", err)
	}

	r.schedule.Load(sched)
	return r.schedule.Toggle(ctx, enabled)
}
