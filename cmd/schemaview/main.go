package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/five82/schemaview/internal/app"
)

func main() {
	os.Exit(run())
}

func run() int {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "schemaview: %v\n", err)
		return 1
	}
	return 0
}

func newRootCmd() *cobra.Command {
	var opts app.Options

	root := &cobra.Command{
		Use:           "schemaview",
		Short:         "Live, read-only viewer for a table schema",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.Run(cmd.Context(), opts)
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&opts.ConfigPath, "config", "", "config file path (default ~/.config/schemaview/config.toml)")
	flags.StringVar(&opts.PrefsPath, "prefs", "", "preferences file path (default ~/.config/schemaview/prefs.toml)")
	flags.StringVar(&opts.SchemaPath, "schema", "", "schema file or SQLite database to view")
	flags.StringVar(&opts.NATSURL, "nats", "", "NATS server URL for change and selection events")
	flags.StringVar(&opts.Table, "table", "", "initial table id or name")
	flags.StringVar(&opts.View, "view", "", "initial view id or name")
	root.Flags().StringVar(&opts.Theme, "theme", "", "color theme (Nightfox, Kanagawa, Slate)")
	root.Flags().IntVar(&opts.PollEvery, "poll", 0, "also reload every N seconds (0 disables)")

	root.AddCommand(newDumpCmd(&opts), newNotifyCmd(&opts))
	return root
}
