// Package views renders the HTML pages of the corrector.
//
// Pages are written as .templ files; run `templ generate` after editing
// them to refresh the *_templ.go files.
package views

import "fmt"

// UploadPageData configures the upload form.
type UploadPageData struct {
	Action      string // form target, usually "/convert"
	MaxFileSize int64  // bytes
	Accept      string // accepted extensions for the file input
}

func humanSize(n int64) string {
	const mb = 1 << 20
	if n >= mb {
		return fmt.Sprintf("%d MB", n/mb)
	}
	return fmt.Sprintf("%d KB", (n+1023)/1024)
}
