package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/five82/foreman/internal/app"
)

func main() {
	os.Exit(run())
}

func run() int {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "foreman: %v\n", err)
		return 1
	}
	return 0
}

func newRootCmd() *cobra.Command {
	var opts app.Options

	root := &cobra.Command{
		Use:           "foreman",
		Short:         "Monthly attendance grid editor",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.Run(cmd.Context(), opts)
		},
	}
	root.PersistentFlags().StringVar(&opts.ConfigPath, "config", "", "config file (default ~/.config/foreman/config.toml)")
	root.Flags().StringVar(&opts.PrefsPath, "prefs", "", "preferences file (default ~/.config/foreman/prefs.toml)")
	root.Flags().IntVar(&opts.PollEvery, "poll", 0, "directory refresh interval in seconds (default 30)")

	root.AddCommand(newDumpCmd(&opts.ConfigPath), newDevServerCmd())
	return root
}

func newDumpCmd(configPath *string) *cobra.Command {
	var opts app.DumpOptions

	cmd := &cobra.Command{
		Use:   "dump",
		Short: "Print one month of attendance as a text grid",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.ConfigPath = *configPath
			opts.Out = cmd.OutOrStdout()
			return app.Dump(cmd.Context(), opts)
		},
	}
	cmd.Flags().StringVar(&opts.Month, "month", "", "month to print as YYYY-MM (default current month)")
	cmd.Flags().StringVar(&opts.Branch, "branch", "", "only print employees of this branch id")
	return cmd
}

func newDevServerCmd() *cobra.Command {
	opts := app.ServeOptions{
		Addr:      "127.0.0.1:8089",
		CompanyID: "demo",
		LogLevel:  "info",
	}

	cmd := &cobra.Command{
		Use:   "devserver",
		Short: "Run an in-memory attendance API seeded with demo data",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.Serve(cmd.Context(), opts)
		},
	}
	cmd.Flags().StringVar(&opts.Addr, "addr", opts.Addr, "listen address")
	cmd.Flags().StringVar(&opts.CompanyID, "company", opts.CompanyID, "company id to seed")
	cmd.Flags().StringVar(&opts.Token, "token", "", "require this bearer token")
	cmd.Flags().StringVar(&opts.LogLevel, "log-level", opts.LogLevel, "log level")
	return cmd
}
