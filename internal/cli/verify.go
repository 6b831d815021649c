package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/JonMunkholm/corrector/internal/core"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// Manifest lists verification cases. Relative paths are resolved from
// the manifest's directory.
type Manifest struct {
	Cases []Case `yaml:"cases"`
}

// Case is one input and its known-good output, given either as a file
// (Expected) or as a hex SHA-256 digest.
type Case struct {
	Name     string `yaml:"name"`
	In       string `yaml:"in"`
	Expected string `yaml:"expected,omitempty"`
	SHA256   string `yaml:"sha256,omitempty"`
}

func (c Case) label() string {
	if c.Name != "" {
		return c.Name
	}
	return c.In
}

// LoadManifest reads and validates a manifest file.
func LoadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}

	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse manifest %s: %w", path, err)
	}
	if len(m.Cases) == 0 {
		return nil, fmt.Errorf("manifest %s has no cases", path)
	}

	base := filepath.Dir(path)
	for i := range m.Cases {
		c := &m.Cases[i]
		if c.In == "" {
			return nil, fmt.Errorf("case %d: missing in", i+1)
		}
		if (c.Expected == "") == (c.SHA256 == "") {
			return nil, fmt.Errorf("case %s: set exactly one of expected or sha256", c.label())
		}
		c.In = resolve(base, c.In)
		if c.Expected != "" {
			c.Expected = resolve(base, c.Expected)
		}
		c.SHA256 = strings.ToLower(c.SHA256)
	}
	return &m, nil
}

func newVerifyCmd() *cobra.Command {
	var manifest string

	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Check conversions byte for byte against known outputs",
		Long: `verify converts every case of a YAML manifest and compares the SHA-256
of the result with the expected file or digest:

  cases:
    - name: formato nuevo
      in: nuevos/comprobantes_202510.csv
      expected: comprobantes_202510_arreglado.csv
    - in: estos_andan/comprobantes_202509.csv
      sha256: 3b1f...

The command fails when any case does not match.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := LoadManifest(manifest)
			if err != nil {
				return err
			}
			return runVerify(cmd, m)
		},
	}

	cmd.Flags().StringVarP(&manifest, "manifest", "m", "verify.yaml", "path to the YAML manifest")
	return cmd
}

var errVerifyFailed = errors.New("verification failed")

func runVerify(cmd *cobra.Command, m *Manifest) error {
	conv := newConverter()
	failures := 0

	for _, c := range m.Cases {
		want := c.SHA256
		if c.Expected != "" {
			expected, err := os.ReadFile(c.Expected)
			if err != nil {
				cmd.PrintErrf("FAIL %s\n  could not read expected: %v\n", c.label(), err)
				failures++
				continue
			}
			want = core.Digest(expected)
		}

		data, err := os.ReadFile(c.In)
		if err != nil {
			cmd.PrintErrf("FAIL %s\n  could not read input: %v\n", c.label(), err)
			failures++
			continue
		}

		_, res, err := conv.ConvertBytes(cmd.Context(), filepath.Base(c.In), data)
		if err != nil {
			cmd.PrintErrf("FAIL %s\n  conversion error: %v\n", c.label(), err)
			failures++
			continue
		}

		if res.SHA256 != want {
			cmd.PrintErrf("FAIL %s\n  in: %s\n  sha256(actual):   %s\n  sha256(expected): %s\n", c.label(), c.In, res.SHA256, want)
			failures++
			continue
		}
		fmt.Fprintf(cmd.OutOrStdout(), "OK   %s\n", c.label())
	}

	if failures > 0 {
		return fmt.Errorf("%w: %d of %d cases", errVerifyFailed, failures, len(m.Cases))
	}
	return nil
}
