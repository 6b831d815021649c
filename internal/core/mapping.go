package core

import "fmt"

// Source column names that get special bindings.
const (
	ColumnNumeroComprobante = "Numero de Comprobante"

	OutputNumeroHasta     = "numero hasta"
	OutputCodAutorizacion = "Cod Autorizacion"
)

// OutputColumns is the fixed column order of every converted file.
var OutputColumns = []string{
	"Fecha de emision",
	"Tipo de Comprobante",
	"punto de venta",
	"numero desde",
	"numero hasta",
	"Cod Autorizacion",
	"tipo doc. emisor",
	"nro. doc. emisor",
	"denominacion emisor",
	"Tipo de Cambio",
	"Moneda",
	"Total Neto Gravado",
	"imp neto no gravado",
	"importe OpExcento",
	"otros tributos",
	"IVA",
	"Imp. Total",
}

// Renames maps canonical input names to their output name. Output
// columns not listed here read the input column of the same name.
var Renames = map[string]string{
	"Fecha de Emision":       "Fecha de emision",
	"Punto de Venta":         "punto de venta",
	"Tipo Doc. Vendedor":     "tipo doc. emisor",
	"Nro. Doc. Vendedor":     "nro. doc. emisor",
	"Denominacion Vendedor":  "denominacion emisor",
	"Importe Total":          "Imp. Total",
	"Importe No Gravado":     "imp neto no gravado",
	"Importe Exento":         "importe OpExcento",
	"Importe Otros Tributos": "otros tributos",
	"Moneda Original":        "Moneda",
	"Total IVA":              "IVA",
	"Numero de Comprobante":  "numero desde",
}

// DroppedColumns lists legacy tax-breakdown columns. Their values never
// reach the output.
var DroppedColumns = []string{
	"Credito Fiscal Computable",
	"Importe de Per. o Pagos a Cta. de Otros Imp. Nac.",
	"Importe de Percepciones de Ingresos Brutos",
	"Importe de Impuestos Municipales",
	"Importe de Percepciones o Pagos a Cuenta de IVA",
	"Importe de Impuestos Internos",
	"Neto Gravado IVA 0%",
	"Neto Gravado IVA 2,5%",
	"Importe IVA 2,5%",
	"Neto Gravado IVA 5%",
	"Importe IVA 5%",
	"Neto Gravado IVA 10,5%",
	"Importe IVA 10,5%",
	"Neto Gravado IVA 21%",
	"Importe IVA 21%",
	"Neto Gravado IVA 27%",
	"Importe IVA 27%",
}

var (
	dropped      = toSet(DroppedColumns)
	inputForName = invert(Renames)
)

// BindingKind tags how an output column gets its value.
type BindingKind int

const (
	BindDirect   BindingKind = iota // value of input column Source
	BindAlias                       // value of input column Source, shared with another output
	BindConstant                    // literal Value on every row
	BindDropped                     // Source is deny-listed; always empty
)

func (k BindingKind) String() string {
	switch k {
	case BindDirect:
		return "direct"
	case BindAlias:
		return "alias"
	case BindConstant:
		return "constant"
	case BindDropped:
		return "dropped"
	default:
		return fmt.Sprintf("BindingKind(%d)", int(k))
	}
}

// Binding is the resolved source of one output column.
type Binding struct {
	Output string
	Kind   BindingKind
	Source string // input column for BindDirect, BindAlias and BindDropped
	Value  string // literal for BindConstant
	index  int    // input position for BindDirect and BindAlias
}

// Bindings is the frozen mapping from input records to output rows.
// It is safe for concurrent use.
type Bindings struct {
	cols []Binding
}

// bindingFor decides the binding of one output column without looking at
// the header.
func bindingFor(output string) Binding {
	switch output {
	case OutputNumeroHasta:
		return Binding{Output: output, Kind: BindAlias, Source: ColumnNumeroComprobante}
	case OutputCodAutorizacion:
		return Binding{Output: output, Kind: BindConstant, Value: "0"}
	}

	source := output
	if in, ok := inputForName[output]; ok {
		source = in
	}
	if dropped[source] {
		return Binding{Output: output, Kind: BindDropped, Source: source}
	}
	return Binding{Output: output, Kind: BindDirect, Source: source}
}

// BuildBindings resolves every output column against idx. It fails with a
// *MissingColumnError when "Numero de Comprobante" or any directly bound
// column is not in the header.
func BuildBindings(idx HeaderIndex) (*Bindings, error) {
	if !idx.Has(ColumnNumeroComprobante) {
		return nil, &MissingColumnError{Column: ColumnNumeroComprobante, Detected: idx.Names()}
	}

	cols := make([]Binding, len(OutputColumns))
	for i, output := range OutputColumns {
		b := bindingFor(output)
		if b.Kind == BindDirect || b.Kind == BindAlias {
			pos, ok := idx.Lookup(b.Source)
			if !ok {
				return nil, &MissingColumnError{Column: b.Source, Detected: idx.Names()}
			}
			b.index = pos
		}
		cols[i] = b
	}

	return &Bindings{cols: cols}, nil
}

// Columns returns the output header.
func (b *Bindings) Columns() []string {
	out := make([]string, len(b.cols))
	for i, c := range b.cols {
		out[i] = c.Output
	}
	return out
}

// Binding returns the binding of the i-th output column.
func (b *Bindings) Binding(i int) Binding {
	return b.cols[i]
}

// Len returns the number of output columns.
func (b *Bindings) Len() int {
	return len(b.cols)
}

func toSet(names []string) map[string]bool {
	set := make(map[string]bool, len(names))
	for _, n := range names {
		set[n] = true
	}
	return set
}

func invert(m map[string]string) map[string]string {
	out := make(map[string]string, len(m))
	for k, v := range m {
		out[v] = k
	}
	return out
}
