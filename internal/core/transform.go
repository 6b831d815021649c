package core

import "strings"

// valueRules rewrite one output column after projection. Columns without
// a rule pass through unchanged.
var valueRules = map[string]func(string) string{
	"Tipo de Comprobante": remapComprobanteType,
	"Imp. Total":          stripSign,
	"Total Neto Gravado":  stripSign,
	"IVA":                 stripSign,
}

// remapComprobanteType turns voucher type 81 into 83.
func remapComprobanteType(v string) string {
	if strings.TrimSpace(v) == "81" {
		return "83"
	}
	return v
}

// stripSign removes every "-" from an amount. It does not negate.
func stripSign(v string) string {
	return strings.ReplaceAll(v, "-", "")
}

// Transform converts one raw record into an output row. Cells are decoded
// with dec; a column past the end of raw reads as "".
func (b *Bindings) Transform(raw RawRecord, dec *Decoder) OutputRow {
	cells := dec.DecodeAll(raw)

	row := make(OutputRow, len(b.cols))
	for i, c := range b.cols {
		var v string
		switch c.Kind {
		case BindConstant:
			v = c.Value
		case BindDirect, BindAlias:
			if c.index < len(cells) {
				v = cells[c.index]
			}
		case BindDropped:
			v = ""
		}

		if rule, ok := valueRules[c.Output]; ok {
			v = rule(v)
		}
		row[i] = v
	}
	return row
}
