package core

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// accentFold strips Spanish and Portuguese diacritics. It is only used
// when the NFKD transform reports an error.
var accentFold = strings.NewReplacer(
	"Á", "A", "À", "A", "Â", "A", "Ä", "A", "Ã", "A",
	"á", "a", "à", "a", "â", "a", "ä", "a", "ã", "a",
	"É", "E", "È", "E", "Ê", "E", "Ë", "E",
	"é", "e", "è", "e", "ê", "e", "ë", "e",
	"Í", "I", "Ì", "I", "Î", "I", "Ï", "I",
	"í", "i", "ì", "i", "î", "i", "ï", "i",
	"Ó", "O", "Ò", "O", "Ô", "O", "Ö", "O", "Õ", "O",
	"ó", "o", "ò", "o", "ô", "o", "ö", "o", "õ", "o",
	"Ú", "U", "Ù", "U", "Û", "U", "Ü", "U",
	"ú", "u", "ù", "u", "û", "u", "ü", "u",
	"Ñ", "N", "ñ", "n",
	"Ç", "C", "ç", "c",
)

var nonASCII = runes.Predicate(func(r rune) bool { return r > unicode.MaxASCII })

// NormalizeHeader maps a decoded header cell to its canonical name:
// replacement characters are dropped, the text is NFKD-decomposed, every
// non-ASCII rune is removed and surrounding whitespace is trimmed.
// NormalizeHeader is idempotent. It may return "".
func NormalizeHeader(s string) string {
	s = strings.ReplaceAll(s, "�", "")

	t := transform.Chain(norm.NFKD, runes.Remove(nonASCII))
	out, _, err := transform.String(t, s)
	if err != nil {
		out = strings.Map(func(r rune) rune {
			if r > unicode.MaxASCII {
				return -1
			}
			return r
		}, accentFold.Replace(s))
	}

	return strings.TrimSpace(out)
}

// NormalizeHeaders decodes and normalizes a raw header row.
func NormalizeHeaders(raw RawRecord, dec *Decoder) []string {
	names := make([]string, len(raw))
	for i, cell := range raw {
		names[i] = NormalizeHeader(dec.Decode(cell))
	}
	return names
}

// HeaderIndex maps canonical header names to their 0-based column.
// When a name repeats, the first occurrence wins. Empty names are never
// indexed. A HeaderIndex is immutable once built.
type HeaderIndex struct {
	pos   map[string]int
	names []string
}

// NewHeaderIndex builds an index from canonical names in column order.
func NewHeaderIndex(names []string) HeaderIndex {
	idx := HeaderIndex{
		pos:   make(map[string]int, len(names)),
		names: make([]string, 0, len(names)),
	}
	for i, name := range names {
		if name == "" {
			continue
		}
		if _, dup := idx.pos[name]; dup {
			continue
		}
		idx.pos[name] = i
		idx.names = append(idx.names, name)
	}
	return idx
}

// Lookup returns the column of name.
func (h HeaderIndex) Lookup(name string) (int, bool) {
	i, ok := h.pos[name]
	return i, ok
}

// Has reports whether name is indexed.
func (h HeaderIndex) Has(name string) bool {
	_, ok := h.pos[name]
	return ok
}

// Names returns the indexed names in column order.
func (h HeaderIndex) Names() []string {
	out := make([]string, len(h.names))
	copy(out, h.names)
	return out
}

// Len returns the number of indexed names.
func (h HeaderIndex) Len() int {
	return len(h.names)
}
