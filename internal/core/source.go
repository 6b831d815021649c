package core

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
)

// RecordSource yields raw records, header first. Read returns io.EOF
// after the last record.
type RecordSource interface {
	Read() (RawRecord, error)
	Close() error
}

// EncodedSource is implemented by sources whose cells are already text in
// a known encoding. Convert uses that encoding instead of resolving one
// from the header.
type EncodedSource interface {
	RecordSource
	Encoding() Encoding
}

// CSVSource reads the semicolon dialect from raw bytes. Cells are returned
// undecoded; blank lines are skipped.
type CSVSource struct {
	r       *csv.Reader
	counter *StreamingCountingReader
}

// NewCSVSource wraps r. A leading UTF-8 byte order mark is dropped.
func NewCSVSource(r io.Reader) *CSVSource {
	counter := NewStreamingCountingReader(NewBOMSkippingReader(r), 0)

	cr := csv.NewReader(counter)
	cr.Comma = Delimiter
	cr.LazyQuotes = true
	cr.FieldsPerRecord = -1

	return &CSVSource{r: cr, counter: counter}
}

// Read returns the next record.
func (s *CSVSource) Read() (RawRecord, error) {
	rec, err := s.r.Read()
	if err == nil {
		return RawRecord(rec), nil
	}
	if errors.Is(err, io.EOF) {
		return nil, io.EOF
	}

	var pe *csv.ParseError
	if errors.As(err, &pe) {
		return nil, &ParseError{Line: pe.Line, Err: pe.Err}
	}
	return nil, fmt.Errorf("read csv: %w", err)
}

// BytesRead returns the input bytes consumed so far.
func (s *CSVSource) BytesRead() int64 {
	return s.counter.BytesRead
}

// Progress returns how much of the input has been read, in percent, when
// the input size is known.
func (s *CSVSource) Progress() int {
	return s.counter.Progress()
}

// Close is a no-op; the underlying reader belongs to the caller.
func (s *CSVSource) Close() error { return nil }

// SourceFor picks a RecordSource by the extension of name. Files without
// a recognised spreadsheet extension are read as CSV.
func SourceFor(name string, r io.ReaderAt, size int64) (RecordSource, error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".xlsx", ".xlsm":
		return NewXLSXSource(io.NewSectionReader(r, 0, size))
	case ".xls", ".ods":
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFile, filepath.Ext(name))
	default:
		src := NewCSVSource(io.NewSectionReader(r, 0, size))
		src.counter.Total = size
		return src, nil
	}
}
