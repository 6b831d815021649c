package cli

import (
	"path/filepath"

	"github.com/JonMunkholm/corrector/internal/core"
)

// outputPath is where the conversion of input is written: outDir when
// set, otherwise the directory of input.
func outputPath(input, outDir string) string {
	dir := outDir
	if dir == "" {
		dir = filepath.Dir(input)
	}
	return filepath.Join(dir, core.OutputFileName(filepath.Base(input)))
}

// resolve makes p relative to base unless it is absolute.
func resolve(base, p string) string {
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(base, p)
}
