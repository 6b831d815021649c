package core

import (
	"errors"
	"fmt"
	"strings"
)

// ErrEmptyFile indicates the input has no header row.
var ErrEmptyFile = errors.New("empty file: no header row found")

// ErrInvalidCSV indicates the input could not be parsed as semicolon CSV.
var ErrInvalidCSV = errors.New("invalid csv")

// ErrUnsupportedFile indicates a file extension no RecordSource can read.
var ErrUnsupportedFile = errors.New("unsupported file type")

// MissingColumnError reports an input column required by the output
// mapping that is absent from the header. Detected lists the canonical
// header names that were found, in input order.
type MissingColumnError struct {
	Column   string
	Detected []string
}

func (e *MissingColumnError) Error() string {
	return fmt.Sprintf("missing required column %q; detected headers: %s",
		e.Column, strings.Join(e.Detected, " | "))
}

// ParseError wraps a CSV parse failure with the line it happened on.
type ParseError struct {
	Line int
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("invalid csv at line %d: %v", e.Line, e.Err)
}

func (e *ParseError) Unwrap() []error {
	return []error{ErrInvalidCSV, e.Err}
}
