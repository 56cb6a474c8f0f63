package main

import (
	"context"
	"errors"
	"os"

	"github.com/twilightlabs/twilight/internal/dashboard"
	"github.com/twilightlabs/twilight/internal/editors"
	"github.com/twilightlabs/twilight/internal/handshake"
	"github.com/twilightlabs/twilight/internal/repositories"
	"github.com/twilightlabs/twilight/internal/services"
	"github.com/twilightlabs/twilight/internal/session"
	"github.com/twilightlabs/twilight/internal/shared"
	"github.com/urfave/cli/v3"
)

// noopStore stands in for the credential store when the local database is
// unavailable. Sessions then live only for the duration of the process.
type noopStore struct{}

func (noopStore) Set(key, value string) error          { return nil }
func (noopStore) Get(key string) (string, bool, error) { return "", false, nil }
func (noopStore) Delete(key string) error              { return nil }

func main() {
	logger := shared.NewLogger(nil)

	config := shared.DefaultConfig()
	if _, err := os.Stat("config.toml"); err == nil {
		if loadedConfig, err := shared.LoadConfig("config.toml"); err == nil {
			config = loadedConfig
		}
	}

	var store session.Store = noopStore{}
	var cache dashboard.Cache

	db, err := shared.NewDatabase(config.Database.Path)
	if err != nil {
		logger.Warn("local database unavailable, session will not persist", "error", err)
	} else {
		defer db.Close()
		shared.ConfigureDatabase(db, config.Database.MaxOpenConns, config.Database.MaxIdleConns)
		store = repositories.NewCredentialRepository(db)
		cache = repositories.NewSnapshotRepository(db)
	}

	sessions := session.NewManager(store, logger)
	if err := sessions.Bootstrap(); err != nil {
		logger.Warn("failed to restore session", "error", err)
	}

	api := services.NewClient(services.ClientOpts{
		BaseURL:     config.API.BaseURL,
		Tokens:      sessions,
		Logger:      logger,
		RateLimit:   config.API.RateLimit,
		OnAuthError: sessions.HandleAuthFailure,
	})

	agg := dashboard.NewAggregator(dashboard.AggregatorOpts{
		API:        api,
		Cache:      cache,
		Logger:     logger,
		PostsLimit: config.Posts.Limit,
	})

	runner := NewRunner(RunnerOpts{
		Config:  config,
		API:     api,
		Session: sessions,
		Agg:     agg,
		Logger:  logger,
	})

	runner.link = handshake.NewController(handshake.ControllerOpts{
		API:     api,
		Logger:  logger,
		Notify:  runner.notify,
		Confirm: runner.confirmPrompt,
	})
	runner.content = editors.NewConfigEditor(api, agg, runner.notify, logger)
	runner.schedule = editors.NewScheduleEditor(api, agg, runner.notify, logger)

	app := &cli.Command{
		Name:     "twilight",
		Usage:    "Control surface for TwiLight content automation",
		Version:  "0.1.0",
		Commands: runner.register(),
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		err_ := errors.Unwrap(err)
		if errors.Is(err_, shared.ErrNotImplemented) {
			logger.Warn("not implemented")
			os.Exit(0)
		} else {
			logger.Fatalf("application error: %v", err)
		}
	}
}
