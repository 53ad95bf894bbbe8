package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/five82/schemaview/internal/app"
	"github.com/five82/schemaview/internal/config"
	"github.com/five82/schemaview/internal/events"
)

func newNotifyCmd(opts *app.Options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "notify",
		Short: "Publish events to running viewers",
	}

	var source string
	schemaCmd := &cobra.Command{
		Use:   "schema",
		Short: "Tell viewers the schema changed and should be reloaded",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return publish(cmd, opts, events.TopicSchemaChanged, events.SchemaChanged{Source: source})
		},
	}
	schemaCmd.Flags().StringVar(&source, "source", "", "name of the schema that changed (informational)")

	selectCmd := &cobra.Command{
		Use:   "select <table> [view]",
		Short: "Move viewers to a table and view, by id or name",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ev := events.SelectionChanged{TableID: args[0]}
			if len(args) == 2 {
				ev.ViewID = args[1]
			}
			return publish(cmd, opts, events.TopicSelectionChanged, ev)
		},
	}

	cmd.AddCommand(schemaCmd, selectCmd)
	return cmd
}

func publish(cmd *cobra.Command, opts *app.Options, topic string, event any) error {
	url, err := natsURL(opts)
	if err != nil {
		return err
	}
	pub, err := events.NewNATSPublisher(url)
	if err != nil {
		return fmt.Errorf("connect event bus: %w", err)
	}
	defer pub.Close()

	if err := pub.Publish(cmd.Context(), topic, event); err != nil {
		return fmt.Errorf("publish %s: %w", topic, err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "published %s\n", topic)
	return nil
}

// natsURL prefers --nats and falls back to the config file.
func natsURL(opts *app.Options) (string, error) {
	if opts.NATSURL != "" {
		return opts.NATSURL, nil
	}
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return "", fmt.Errorf("load config: %w", err)
	}
	if cfg.NATSURL == "" {
		return "", fmt.Errorf("no event bus: set nats_url in the config file or pass --nats")
	}
	return cfg.NATSURL, nil
}
