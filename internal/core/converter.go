package core

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"
)

// contextCheckInterval is how often (in rows) to check for context cancellation.
const contextCheckInterval = 500

// Converter runs the re-mapping pipeline over one source at a time.
// A zero Converter is ready to use.
type Converter struct {
	Logger *slog.Logger
}

// NewConverter returns a Converter that logs to logger.
func NewConverter(logger *slog.Logger) *Converter {
	return &Converter{Logger: logger}
}

func (c *Converter) logger() *slog.Logger {
	if c.Logger != nil {
		return c.Logger
	}
	return slog.Default()
}

// Convert reads the header from src, resolves the encoding (or takes it
// from an EncodedSource) and the column bindings, then streams every data row to w. Mapping errors are returned
// before anything is written to w. A parse error in a data row can still
// leave a partial result in w; callers that must not publish partial
// output should convert into a buffer (see ConvertBytes).
func (c *Converter) Convert(ctx context.Context, src RecordSource, w io.Writer) (*Result, error) {
	start := time.Now()

	header, err := src.Read()
	if errors.Is(err, io.EOF) {
		return nil, ErrEmptyFile
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	var (
		enc     Encoding
		matched bool
	)
	if es, ok := src.(EncodedSource); ok {
		enc, matched = es.Encoding(), true
	} else {
		enc, matched = ResolveEncoding(header)
	}
	dec := enc.Decoder()
	idx := NewHeaderIndex(NormalizeHeaders(header, dec))

	res := &Result{
		Encoding:        enc.Name,
		EncodingMatched: matched,
		Headers:         idx.Names(),
	}

	log := c.logger()
	if matched {
		log.Debug("encoding resolved", "encoding", enc.Name, "columns", idx.Len())
	} else {
		res.CharsetHint = GuessCharset([]byte(strings.Join(header, string(Delimiter))))
		log.Warn("no encoding matched the expected header, using fallback",
			"encoding", enc.Name,
			"charset_hint", res.CharsetHint,
			"headers", res.Headers,
		)
	}

	bindings, err := BuildBindings(idx)
	if err != nil {
		return res, err
	}

	out := NewWriter(w)
	if err := out.Write(bindings.Columns()); err != nil {
		return res, fmt.Errorf("write header: %w", err)
	}

	cs, _ := src.(*CSVSource)

	for {
		if res.Rows%contextCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return res, fmt.Errorf("conversion cancelled at row %d: %w", res.Rows, err)
			}
			if cs != nil && res.Rows > 0 {
				log.Debug("conversion progress", "rows", res.Rows, "percent", cs.Progress())
			}
		}

		raw, err := src.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return res, err
		}

		row := bindings.Transform(raw, dec)
		res.Totals.Add(row)
		if err := out.Write(row); err != nil {
			return res, fmt.Errorf("write row %d: %w", res.Rows+1, err)
		}
		res.Rows++
	}

	if err := out.Flush(); err != nil {
		return res, fmt.Errorf("flush output: %w", err)
	}

	if cs != nil {
		res.BytesRead = cs.BytesRead()
	}
	res.BytesWritten = out.Written()
	res.Duration = time.Since(start)

	log.Debug("conversion finished",
		"rows", res.Rows,
		"bytes_written", res.BytesWritten,
		"duration_ms", res.Duration.Milliseconds(),
	)

	return res, nil
}

// ConvertBytes converts a whole in-memory file. name selects the source
// type by extension. The output is returned only when the conversion
// succeeded, so a failure never yields a truncated file.
func (c *Converter) ConvertBytes(ctx context.Context, name string, data []byte) ([]byte, *Result, error) {
	if len(data) == 0 {
		return nil, nil, ErrEmptyFile
	}

	src, err := SourceFor(name, bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, nil, err
	}
	defer src.Close()

	var buf bytes.Buffer
	res, err := c.Convert(ctx, src, &buf)
	if err != nil {
		return nil, res, err
	}

	out := buf.Bytes()
	res.SHA256 = Digest(out)
	return out, res, nil
}

// Digest returns the hex SHA-256 of data.
func Digest(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
