package cli

import (
	"context"

	"go.uber.org/zap"

	"github.com/roach88/fittrack/internal/app"
	"github.com/roach88/fittrack/internal/config"
	"github.com/roach88/fittrack/internal/logging"
	"github.com/roach88/fittrack/internal/store"
)

// environment is what a command needs after startup: loaded config,
// a logger, an open store and the core built on it.
type environment struct {
	cfg   *config.Config
	log   *zap.Logger
	store *store.Store
	app   *app.App
}

// openEnvironment loads config, builds the logger and opens the store.
// Every failure is an ExitCommandError.
func openEnvironment(ctx context.Context, opts *RootOptions) (*environment, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "failed to load config", err)
	}
	if opts.Database != "" {
		cfg.Database.Path = opts.Database
	}

	log, err := logging.New(cfg.Logging, opts.Verbose)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "failed to initialize logger", err)
	}

	st, err := store.Open(ctx, store.Options{
		Path:           cfg.Database.Path,
		ResetOnStartup: cfg.Database.ResetOnStartup,
		Logger:         log,
	})
	if err != nil {
		_ = log.Sync()
		return nil, WrapExitError(ExitCommandError, "failed to open database", err)
	}

	return &environment{
		cfg:   cfg,
		log:   log,
		store: st,
		app:   app.New(st, app.Options{OwnerScopedGoals: cfg.Goals.OwnerScoped}, log),
	}, nil
}

// Close closes the store and flushes the logger.
func (e *environment) Close() {
	if err := e.store.Close(); err != nil {
		e.log.Error("error closing database", zap.Error(err))
	}
	_ = e.log.Sync()
}
