package core

import (
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"
)

// XLSXSource reads records from the first sheet of an .xlsx workbook, as
// produced by the "Mis Comprobantes" spreadsheet export. Cell text is
// already UTF-8, so the source reports UTF8 and skips encoding resolution.
type XLSXSource struct {
	file *excelize.File
	rows *excelize.Rows
}

// NewXLSXSource opens the workbook in r.
func NewXLSXSource(r io.Reader) (*XLSXSource, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w: open workbook: %v", ErrInvalidCSV, err)
	}

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		f.Close()
		return nil, ErrEmptyFile
	}

	rows, err := f.Rows(sheets[0])
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("%w: read sheet %q: %v", ErrInvalidCSV, sheets[0], err)
	}

	return &XLSXSource{file: f, rows: rows}, nil
}

// Read returns the next non-blank row.
func (s *XLSXSource) Read() (RawRecord, error) {
	for s.rows.Next() {
		cols, err := s.rows.Columns()
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidCSV, err)
		}
		if isBlank(cols) {
			continue
		}
		return RawRecord(cols), nil
	}
	if err := s.rows.Error(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidCSV, err)
	}
	return nil, io.EOF
}

// Encoding implements EncodedSource.
func (s *XLSXSource) Encoding() Encoding {
	return UTF8
}

// Close releases the workbook.
func (s *XLSXSource) Close() error {
	if err := s.rows.Close(); err != nil {
		s.file.Close()
		return err
	}
	return s.file.Close()
}

func isBlank(cols []string) bool {
	for _, c := range cols {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
