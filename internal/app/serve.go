package app

import (
	"context"
	"os"

	"github.com/five82/foreman/internal/devserver"
	"github.com/five82/foreman/internal/logging"
)

// ServeOptions configure the in-memory development API.
type ServeOptions struct {
	Addr      string
	CompanyID string
	Token     string
	LogLevel  string
}

// Serve runs the development API seeded with a demo directory until ctx is
// cancelled.
func Serve(ctx context.Context, opts ServeOptions) error {
	logger := logging.Console(os.Stderr, opts.LogLevel)

	store := devserver.NewStore()
	store.SeedDemo(opts.CompanyID)

	srv := devserver.New(store, devserver.Options{Token: opts.Token, Logger: logger})
	logger.Info().
		Str("addr", opts.Addr).
		Str("company", opts.CompanyID).
		Bool("auth", opts.Token != "").
		Msg("dev server listening")
	return devserver.Run(ctx, srv, opts.Addr)
}
