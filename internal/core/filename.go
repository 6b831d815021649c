package core

import (
	"path"
	"regexp"
	"strings"
)

// OutputSuffix is appended to the base name of every converted file.
const OutputSuffix = "_arreglado.csv"

var (
	lastExtension  = regexp.MustCompile(`\.[^.]+$`)
	unsafeFileRuns = regexp.MustCompile(`[^A-Za-z0-9 _()\[\].-]+`)
)

// OutputFileName derives the download name of a converted file from the
// uploaded name: directories and the last extension are removed, runs of
// characters outside [A-Za-z0-9 _()[].-] become "_", and OutputSuffix is
// appended.
func OutputFileName(original string) string {
	base := path.Base(strings.ReplaceAll(original, `\`, "/"))
	if base == "." || base == "/" {
		base = ""
	}
	base = lastExtension.ReplaceAllString(base, "")
	base = unsafeFileRuns.ReplaceAllString(base, "_")
	if base == "" {
		base = "archivo"
	}
	return base + OutputSuffix
}
