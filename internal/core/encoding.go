package core

// encoding.go resolves the byte encoding of an input file.
//
// Every candidate decodes any byte sequence without error (invalid input
// degrades to replacement characters), so decode failures cannot be used
// to reject a candidate. Instead each candidate is scored by whether the
// decoded and normalized header covers the expected vocabulary.

import (
	"strings"

	"github.com/saintfish/chardet"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	xunicode "golang.org/x/text/encoding/unicode"
)

// Encoding is a named byte-to-text decoding used for a whole file.
type Encoding struct {
	Name string
	enc  encoding.Encoding
}

var (
	Latin1      = Encoding{Name: "ISO-8859-1", enc: charmap.ISO8859_1}
	Windows1252 = Encoding{Name: "Windows-1252", enc: charmap.Windows1252}
	UTF8        = Encoding{Name: "UTF-8", enc: xunicode.UTF8}
)

// encodingCandidates is tried in order. The first entry is also the
// fallback; Latin-1 is listed again at the end to keep the historical
// candidate order.
var encodingCandidates = []Encoding{Latin1, Windows1252, UTF8, Latin1}

// RequiredHeaders is the vocabulary a correctly decoded header must contain.
var RequiredHeaders = []string{
	"Fecha de Emision",
	"Tipo de Comprobante",
	"Punto de Venta",
	"Numero de Comprobante",
	"Tipo Doc. Vendedor",
	"Nro. Doc. Vendedor",
	"Denominacion Vendedor",
	"Importe Total",
	"Moneda Original",
	"Tipo de Cambio",
	"Importe No Gravado",
	"Importe Exento",
	"Importe Otros Tributos",
	"Total Neto Gravado",
	"Total IVA",
}

// Candidates returns a copy of the ordered candidate list.
func Candidates() []Encoding {
	out := make([]Encoding, len(encodingCandidates))
	copy(out, encodingCandidates)
	return out
}

// Decoder returns a fresh decoder for e. Decoders are stateful and must
// not be shared between goroutines.
func (e Encoding) Decoder() *Decoder {
	return &Decoder{dec: e.enc.NewDecoder()}
}

// Decoder converts cells from a source encoding to UTF-8.
type Decoder struct {
	dec *encoding.Decoder
}

// Decode converts s to UTF-8. It never fails: bytes the encoding cannot
// map become U+FFFD.
func (d *Decoder) Decode(s string) string {
	if isASCII(s) {
		return s
	}
	out, err := d.dec.String(s)
	if err != nil {
		return strings.ToValidUTF8(s, "�")
	}
	return out
}

// DecodeAll decodes every cell of a record.
func (d *Decoder) DecodeAll(raw RawRecord) []string {
	out := make([]string, len(raw))
	for i, cell := range raw {
		out[i] = d.Decode(cell)
	}
	return out
}

// ResolveEncoding picks the encoding for a file from its raw header cells.
// It returns the first candidate whose normalized header contains every
// name in RequiredHeaders. When none qualifies it returns the first
// candidate and matched is false.
func ResolveEncoding(rawHeader RawRecord) (enc Encoding, matched bool) {
	for _, candidate := range encodingCandidates {
		if coversRequired(candidate, rawHeader) {
			return candidate, true
		}
	}
	return encodingCandidates[0], false
}

// coversRequired reports whether the header decoded with enc is a
// superset of RequiredHeaders.
func coversRequired(enc Encoding, rawHeader RawRecord) bool {
	dec := enc.Decoder()
	seen := make(map[string]bool, len(rawHeader))
	for _, cell := range rawHeader {
		seen[NormalizeHeader(dec.Decode(cell))] = true
	}
	for _, name := range RequiredHeaders {
		if !seen[name] {
			return false
		}
	}
	return true
}

// GuessCharset runs a statistical detector over sample and returns its
// best guess (e.g. "ISO-8859-1"), or "" when nothing could be detected.
// The result is diagnostic only; it never overrides ResolveEncoding.
func GuessCharset(sample []byte) string {
	if len(sample) == 0 {
		return ""
	}
	res, err := chardet.NewTextDetector().DetectBest(sample)
	if err != nil || res == nil {
		return ""
	}
	return res.Charset
}

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= 0x80 {
			return false
		}
	}
	return true
}
