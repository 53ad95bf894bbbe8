package main

import (
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/five82/schemaview/internal/app"
	"github.com/five82/schemaview/internal/textout"
)

const defaultDumpWidth = 100

func newDumpCmd(opts *app.Options) *cobra.Command {
	var out textout.Options

	cmd := &cobra.Command{
		Use:   "dump",
		Short: "Print the selected table's fields once and exit",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if out.Width == 0 {
				out.Width = terminalWidth()
			}
			return app.Dump(cmd.Context(), *opts, cmd.OutOrStdout(), out)
		},
	}
	cmd.Flags().StringVarP(&out.Format, "format", "f", textout.FormatTable, "output format: table, md or json")
	cmd.Flags().IntVarP(&out.Width, "width", "w", 0, "wrap columns to this width (default: terminal width)")
	return cmd
}

func terminalWidth() int {
	fd := int(os.Stdout.Fd())
	if !term.IsTerminal(fd) {
		return defaultDumpWidth
	}
	if w, _, err := term.GetSize(fd); err == nil && w > 0 {
		return w
	}
	return defaultDumpWidth
}
