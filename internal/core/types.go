package core

import "time"

// RawRecord is one CSV line as read from the source, before decoding.
// Cells hold the undecoded bytes of the input file.
type RawRecord []string

// OutputRow is one converted line. It always has len(OutputColumns) cells.
type OutputRow []string

// Result summarizes a finished conversion.
type Result struct {
	Encoding        string        // Name of the resolved source encoding
	EncodingMatched bool          // False when the resolver fell back to the first candidate
	CharsetHint     string        // Detector guess, only set when EncodingMatched is false
	Headers         []string      // Canonical header names in input order
	Rows            int           // Data rows written (header excluded)
	Totals          Totals        // Amount totals over the written rows
	BytesRead       int64         // Input bytes consumed (CSV sources only)
	BytesWritten    int64         // Output bytes produced
	SHA256          string        // Hex digest of the output, set by ConvertBytes
	Duration        time.Duration // Wall time of the conversion
}
