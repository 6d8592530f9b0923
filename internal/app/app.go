package app

import (
	"context"
	"fmt"
	"time"

	"github.com/five82/foreman/internal/config"
	"github.com/five82/foreman/internal/factory"
	"github.com/five82/foreman/internal/logging"
	"github.com/five82/foreman/internal/prefs"
	"github.com/five82/foreman/internal/state"
	"github.com/five82/foreman/internal/ui"
)

// Options configure the foreman application.
type Options struct {
	ConfigPath string
	PrefsPath  string // empty uses default ~/.config/foreman/prefs.toml
	PollEvery  int    // directory poll interval in seconds; zero uses default
}

// Run boots the foreman TUI until the context is cancelled.
func Run(ctx context.Context, opts Options) error {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger, closer, err := logging.New(cfg.LogFile, cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("open log: %w", err)
	}
	defer func() { _ = closer.Close() }()

	userPrefs, err := prefs.Load(opts.PrefsPath)
	if err != nil {
		logger.Warn().Err(err).Msg("preferences unreadable; using defaults")
	}

	client, err := newClient(cfg)
	if err != nil {
		return err
	}

	interval := defaultPollInterval
	if opts.PollEvery > 0 {
		interval = time.Duration(opts.PollEvery) * time.Second
	}

	store := &state.Store{}
	poller := &Poller{
		Store:     store,
		Directory: client,
		CompanyID: cfg.CompanyID,
		Interval:  interval,
		Logger:    logger.With().Str("component", "poller").Logger(),
	}

	// Populate the directory before the UI starts, then keep it fresh.
	poller.Refresh(ctx)
	poller.Start(ctx)

	logger.Info().
		Str("api", cfg.APIBase).
		Str("company", cfg.CompanyID).
		Dur("poll", interval).
		Msg("foreman starting")

	return ui.Run(ui.Options{
		Context:   ctx,
		Config:    cfg,
		API:       client,
		Store:     store,
		Logger:    logger.With().Str("component", "attendance").Logger(),
		Prefs:     userPrefs,
		PrefsPath: opts.PrefsPath,
	})
}

func newClient(cfg config.Config) (*factory.Client, error) {
	client, err := factory.NewClient(cfg.APIBase,
		factory.WithToken(cfg.APIToken),
		factory.WithTimeout(cfg.RequestTimeout),
	)
	if err != nil {
		return nil, fmt.Errorf("init attendance client: %w", err)
	}
	return client, nil
}
