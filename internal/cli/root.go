// Package cli implements the corrector command line tool.
//
//	corrector
//	├── convert   convert files to the import format
//	├── verify    compare conversions against known outputs
//	└── version   print build information
package cli

import (
	"fmt"
	"log/slog"

	"github.com/JonMunkholm/corrector/internal/core"
	"github.com/JonMunkholm/corrector/internal/logging"
	"github.com/spf13/cobra"
)

// Build information, set with -ldflags at release time.
var (
	Version = "dev"
	Commit  = "none"
)

type rootOptions struct {
	logLevel  string
	logFormat string
}

// NewRootCmd builds the command tree.
func NewRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "corrector",
		Short: "Convert AFIP \"Mis Comprobantes\" exports to the import format",
		Long: `corrector re-maps the CSV (or XLSX) exported from AFIP "Mis Comprobantes"
into the semicolon separated, UTF-8 file expected by the accounting import:
columns are renamed, reordered and dropped, voucher type 81 becomes 83 and
the sign is removed from the total, net and VAT amounts.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.SetupWriter(cmd.ErrOrStderr(), opts.logLevel, opts.logFormat)
		},
	}

	cmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "warn", "log level: debug, info, warn, error")
	cmd.PersistentFlags().StringVar(&opts.logFormat, "log-format", "text", "log format: text or json")

	cmd.AddCommand(
		newConvertCmd(),
		newVerifyCmd(),
		newVersionCmd(),
	)
	return cmd
}

func newConverter() *core.Converter {
	return core.NewConverter(slog.Default())
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "corrector %s (%s)\n", Version, Commit)
		},
	}
}
