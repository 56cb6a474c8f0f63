package main

import (
	"context"
	"fmt"

	"github.com/twilightlabs/twilight/internal/formatter"
	"github.com/twilightlabs/twilight/internal/shared"
	"github.com/urfave/cli/v3"
)

// PostsList prints the most recent posts as text, JSON, or CSV.
func (r *Runner) PostsList(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireSession(); err != nil {
		return err
	}

	limit := int(cmd.Int("limit"))
	if limit <= 0 {
		limit = r.config.Posts.Limit
	}

	posts, err := r.api.Posts(ctx, limit)
	if err != nil {
		return fmt.Errorf("failed to fetch posts: %w", err)
	}

	switch cmd.String("format") {
	case "json":
		return r.writeJSON(posts, true)
	case "csv":
		data, err := formatter.PostsToCSV(posts)
		if err != nil {
			return fmt.Errorf("failed to format posts: %w", err)
		}
		_, err = r.output.Write(data)
		return err
	case "text", "":
		_, err := r.output.Write(formatter.PostsToText(posts))
		return err
	default:
		return fmt.Errorf("%w: unknown format %q", shared.ErrInvalidFlag, cmd.String("format"))
	}
}

// PostsGenerate triggers one generate/publish cycle and prints the result.
func (r *Runner) PostsGenerate(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireSession(); err != nil {
		return err
	}

	account, err := r.api.TwitterAccount(ctx)
	if err != nil {
		return fmt.Errorf("failed to check linked account: %w", err)
	}
	if account == nil {
		return fmt.Errorf("%w: run 'twilight twitter connect' first", shared.ErrNotConnected)
	}

	r.writePlain("Generating post...\n")

	post, err := r.api.GeneratePost(ctx)
	if err != nil {
		return fmt.Errorf("failed to generate post: %w", err)
	}

	r.writePlain("✓ Post %s (%s)\n", post.ID, post.Status)
	if post.Content != "" {
		r.writePlain("%s\n", post.Content)
	}
	return nil
}
