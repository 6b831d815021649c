package core

import (
	"bufio"
	"io"
	"strings"
)

// Output dialect.
const (
	Delimiter = ';'
	Quote     = '"'
	LineEnd   = "\r\n"
)

// Writer writes records in the output dialect: semicolon separated,
// CRLF terminated, quoting a field only when it contains the delimiter,
// a quote or a line break.
type Writer struct {
	w       *bufio.Writer
	written int64
}

// NewWriter returns a Writer that buffers into w. Call Flush when done.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: bufio.NewWriter(w)}
}

// Write writes one record.
func (w *Writer) Write(record []string) error {
	for i, field := range record {
		if i > 0 {
			if err := w.writeByte(Delimiter); err != nil {
				return err
			}
		}
		if err := w.writeField(field); err != nil {
			return err
		}
	}
	return w.writeString(LineEnd)
}

// Flush writes any buffered data to the underlying writer.
func (w *Writer) Flush() error {
	return w.w.Flush()
}

// Written returns the number of bytes accepted so far.
func (w *Writer) Written() int64 {
	return w.written
}

func (w *Writer) writeField(field string) error {
	if !fieldNeedsQuotes(field) {
		return w.writeString(field)
	}
	escaped := strings.ReplaceAll(field, `"`, `""`)
	if err := w.writeByte(Quote); err != nil {
		return err
	}
	if err := w.writeString(escaped); err != nil {
		return err
	}
	return w.writeByte(Quote)
}

func (w *Writer) writeString(s string) error {
	n, err := w.w.WriteString(s)
	w.written += int64(n)
	return err
}

func (w *Writer) writeByte(c byte) error {
	if err := w.w.WriteByte(c); err != nil {
		return err
	}
	w.written++
	return nil
}

func fieldNeedsQuotes(field string) bool {
	return strings.ContainsAny(field, ";\"\r\n")
}
