package main

import (
	"context"
	"fmt"

	"github.com/twilightlabs/twilight/internal/models"
	"github.com/urfave/cli/v3"
)

// ContentShow prints the authoritative content configuration.
func (r *Runner) ContentShow(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireSession(); err != nil {
		return err
	}

	cfg, err := r.api.ContentConfig(ctx)
	if err != nil {
		return fmt.Errorf("failed to fetch content config: %w", err)
	}

	if cmd.Bool("json") {
		return r.writeJSON(cfg, true)
	}

	r.writePlainHeader("Content Configuration")
	r.writePlain("Topic:    %s\n", cfg.Topic)
	r.writePlain("Tone:     %s\n", cfg.Tone)
	r.writePlain("Length:   %s\n", cfg.Length)
	r.writePlain("Hashtags: %v\n", cfg.Hashtags)
	r.writePlain("Emojis:   %v\n", cfg.Emojis)
	return nil
}

// ContentSave merges the provided flags over the server's configuration and
// submits the result. Unset flags keep their server values.
func (r *Runner) ContentSave(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireSession(); err != nil {
		return err
	}

	cfg, err := r.api.ContentConfig(ctx)
	if err != nil {
		return fmt.Errorf("failed to fetch content config: %w", err)
	}

	r.content.Load(cfg)
	r.content.Edit(func(draft *models.ContentConfig) {
		if cmd.IsSet("topic") {
			draft.Topic = cmd.String("topic")
		}
		if cmd.IsSet("tone") {
			draft.Tone = models.Tone(cmd.String("tone"))
		}
		if cmd.IsSet("length") {
			draft.Length = models.Length(cmd.String("length"))
		}
		if cmd.IsSet("hashtags") {
			draft.Hashtags = cmd.Bool("hashtags")
		}
		if cmd.IsSet("emojis") {
			draft.Emojis = cmd.Bool("emojis")
		}
	})

	return r.content.Save(ctx)
}
