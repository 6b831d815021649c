package core

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// goldenDigest is the SHA-256 of testdata/comprobantes_arreglado.csv.
const goldenDigest = "fa9915f8d1b0a0e155fbeee931f765b5793bf30b6aa9949b466eb9d555dd7181"

func TestConvertBytes_Golden(t *testing.T) {
	want := readFixture(t, "comprobantes_arreglado.csv")
	require.Equal(t, goldenDigest, Digest(want))

	tests := []struct {
		fixture  string
		encoding string
	}{
		{"comprobantes_latin1.csv", "ISO-8859-1"},
		{"comprobantes_cp1252.csv", "ISO-8859-1"},
		{"comprobantes_utf8_bom.csv", "UTF-8"},
	}

	for _, tt := range tests {
		t.Run(tt.fixture, func(t *testing.T) {
			out, res, err := NewConverter(nil).ConvertBytes(context.Background(), tt.fixture, readFixture(t, tt.fixture))
			require.NoError(t, err)

			assert.Equal(t, string(want), string(out))
			assert.Equal(t, goldenDigest, res.SHA256)
			assert.Equal(t, tt.encoding, res.Encoding)
			assert.True(t, res.EncodingMatched)
			assert.Equal(t, 3, res.Rows)
			assert.Len(t, res.Headers, len(afipHeader))
			assert.Equal(t, int64(len(out)), res.BytesWritten)
		})
	}
}

func TestConvertBytes_Totals(t *testing.T) {
	_, res, err := NewConverter(nil).ConvertBytes(context.Background(), "c.csv", readFixture(t, "comprobantes_latin1.csv"))
	require.NoError(t, err)

	assert.Equal(t, "13915", res.Totals.ImpTotal.String())
	assert.Equal(t, "11500", res.Totals.TotalNetoGravado.String())
	assert.Equal(t, "2415", res.Totals.IVA.String())
	assert.Zero(t, res.Totals.Unparsed)
}

func TestConvert_MissingColumnWritesNothing(t *testing.T) {
	header := strings.Replace(strings.Join(canonicalHeader(), ";"), "Numero de Comprobante", "Nro", 1)
	input := header + "\r\n2025-10-01;81\r\n"

	var out bytes.Buffer
	res, err := NewConverter(nil).Convert(context.Background(), NewCSVSource(strings.NewReader(input)), &out)

	var missing *MissingColumnError
	require.True(t, errors.As(err, &missing))
	assert.Equal(t, ColumnNumeroComprobante, missing.Column)
	assert.Contains(t, res.Headers, "Nro")
	assert.Zero(t, out.Len())
}

func TestConvertBytes_MissingColumnReturnsNoOutput(t *testing.T) {
	out, _, err := NewConverter(nil).ConvertBytes(context.Background(), "x.csv", []byte("Fecha;Importe\r\n1;2\r\n"))
	assert.Error(t, err)
	assert.Nil(t, out)
	assert.Equal(t, "VAL004", MapError(err).Code)
}

func TestConvert_EmptyInput(t *testing.T) {
	for _, input := range []string{"", "\r\n\r\n", "\xef\xbb\xbf"} {
		_, err := NewConverter(nil).Convert(context.Background(), NewCSVSource(strings.NewReader(input)), io.Discard)
		assert.ErrorIs(t, err, ErrEmptyFile, "input %q", input)
	}
}

func TestConvert_HeaderOnly(t *testing.T) {
	var out bytes.Buffer
	res, err := NewConverter(nil).Convert(context.Background(),
		NewCSVSource(strings.NewReader(strings.Join(canonicalHeader(), ";")+"\n")), &out)
	require.NoError(t, err)

	assert.Equal(t, 0, res.Rows)
	assert.Equal(t, strings.Join(OutputColumns, ";")+"\r\n", out.String())
}

func TestConvert_ShortRowsAndBlankLines(t *testing.T) {
	input := strings.Join(canonicalHeader(), ";") + "\n\n2025-10-01;81;00003;00000001\n\n"

	var out bytes.Buffer
	res, err := NewConverter(nil).Convert(context.Background(), NewCSVSource(strings.NewReader(input)), &out)
	require.NoError(t, err)

	assert.Equal(t, 1, res.Rows)
	lines := strings.Split(strings.TrimSuffix(out.String(), "\r\n"), "\r\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "2025-10-01;83;00003;00000001;00000001;0;;;;;;;;;;;", lines[1])
}

func TestConvert_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	src := NewCSVSource(bytes.NewReader(readFixture(t, "comprobantes_latin1.csv")))
	_, err := NewConverter(nil).Convert(ctx, src, io.Discard)

	assert.ErrorIs(t, err, context.Canceled)
}

// cancellingSource yields a header and then rows forever, cancelling its
// context once after the given number of rows.
type cancellingSource struct {
	header RawRecord
	row    RawRecord
	after  int
	read   int
	cancel context.CancelFunc
}

func (s *cancellingSource) Read() (RawRecord, error) {
	if s.header != nil {
		h := s.header
		s.header = nil
		return h, nil
	}
	s.read++
	if s.read == s.after {
		s.cancel()
	}
	return s.row, nil
}

func (s *cancellingSource) Close() error { return nil }

func TestConvert_CancelledMidStream(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	src := &cancellingSource{
		header: RawRecord(canonicalHeader()),
		row:    recordFor(map[string]string{"Numero de Comprobante": "1"}),
		after:  10,
		cancel: cancel,
	}
	res, err := NewConverter(nil).Convert(ctx, src, io.Discard)

	require.ErrorIs(t, err, context.Canceled)
	assert.Contains(t, err.Error(), "cancelled at row 500")
	assert.Equal(t, 500, res.Rows)
}

func TestConvertBytes_Unsupported(t *testing.T) {
	_, _, err := NewConverter(nil).ConvertBytes(context.Background(), "compras.xls", []byte("data"))
	assert.ErrorIs(t, err, ErrUnsupportedFile)
}

func TestConvertBytes_Empty(t *testing.T) {
	_, _, err := NewConverter(nil).ConvertBytes(context.Background(), "compras.csv", nil)
	assert.ErrorIs(t, err, ErrEmptyFile)
}

func TestConvert_UnmatchedHeaderFallsBack(t *testing.T) {
	header := canonicalHeader()
	header = append(header[:len(header)-1:len(header)-1], "IVA Total")
	input := strings.Join(header, ";") + "\n"

	_, err := NewConverter(nil).Convert(context.Background(), NewCSVSource(strings.NewReader(input)), io.Discard)

	var missing *MissingColumnError
	require.True(t, errors.As(err, &missing))
	assert.Equal(t, "Total IVA", missing.Column)
}
