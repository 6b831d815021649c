package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

type convertOptions struct {
	outDir string
	stdout bool
}

func newConvertCmd() *cobra.Command {
	opts := &convertOptions{}

	cmd := &cobra.Command{
		Use:   "convert FILE...",
		Short: "Convert one or more exports",
		Long: `Convert each FILE and write <name>_arreglado.csv next to it, or into
--out when given. Files are converted one at a time; a failing file is
reported and the rest are still converted.`,
		Example: `  corrector convert "Mis Comprobantes Recibidos.csv"
  corrector convert --out convertidos/ exports/*.csv
  corrector convert --stdout compras.csv > compras_arreglado.csv`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.stdout && len(args) != 1 {
				return errors.New("--stdout takes exactly one file")
			}
			if opts.stdout && opts.outDir != "" {
				return errors.New("--stdout and --out are mutually exclusive")
			}
			return runConvert(cmd, opts, args)
		},
	}

	cmd.Flags().StringVarP(&opts.outDir, "out", "o", "", "directory for converted files (default: next to each input)")
	cmd.Flags().BoolVar(&opts.stdout, "stdout", false, "write the converted file to standard output")
	return cmd
}

func runConvert(cmd *cobra.Command, opts *convertOptions, files []string) error {
	if opts.outDir != "" {
		if err := os.MkdirAll(opts.outDir, 0o755); err != nil {
			return fmt.Errorf("create output directory: %w", err)
		}
	}

	conv := newConverter()
	var failed []error

	for _, path := range files {
		data, err := os.ReadFile(path)
		if err != nil {
			failed = append(failed, fmt.Errorf("%s: %w", path, err))
			continue
		}

		out, res, err := conv.ConvertBytes(cmd.Context(), filepath.Base(path), data)
		if err != nil {
			cmd.PrintErrf("FAIL %s: %v\n", path, err)
			failed = append(failed, fmt.Errorf("%s: %w", path, err))
			continue
		}

		if opts.stdout {
			if _, err := cmd.OutOrStdout().Write(out); err != nil {
				return fmt.Errorf("write output: %w", err)
			}
			cmd.PrintErrf("%s: %s, %d rows\n", path, res.Encoding, res.Rows)
			continue
		}

		dest := outputPath(path, opts.outDir)
		if err := os.WriteFile(dest, out, 0o644); err != nil {
			failed = append(failed, fmt.Errorf("%s: %w", path, err))
			continue
		}

		fmt.Fprintf(cmd.OutOrStdout(), "%s -> %s\n", path, dest)
		fmt.Fprintf(cmd.OutOrStdout(), "  encoding: %s, rows: %d, sha256: %s\n", res.Encoding, res.Rows, res.SHA256)
		fmt.Fprintf(cmd.OutOrStdout(), "  %s\n", res.Totals)
		if res.Totals.Unparsed > 0 {
			fmt.Fprintf(cmd.OutOrStdout(), "  %d amount cells could not be summed\n", res.Totals.Unparsed)
		}
	}

	if len(failed) > 0 {
		return fmt.Errorf("%d of %d files failed: %w", len(failed), len(files), errors.Join(failed...))
	}
	return nil
}
