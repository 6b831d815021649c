package core

import (
	"os"
	"path/filepath"
	"testing"
)

// afipHeader is the header of a "Mis Comprobantes Recibidos" export with
// the accents an unmodified download carries.
var afipHeader = []string{
	"Fecha de Emisión", "Tipo de Comprobante", "Punto de Venta", "Número de Comprobante",
	"Tipo Doc. Vendedor", "Nro. Doc. Vendedor", "Denominación Vendedor", "Importe Total",
	"Moneda Original", "Tipo de Cambio", "Importe No Gravado", "Importe Exento",
	"Crédito Fiscal Computable", "Importe de Per. o Pagos a Cta. de Otros Imp. Nac.",
	"Importe de Percepciones de Ingresos Brutos", "Importe de Impuestos Municipales",
	"Importe de Percepciones o Pagos a Cuenta de IVA", "Importe de Impuestos Internos",
	"Importe Otros Tributos", "Neto Gravado IVA 0%", "Neto Gravado IVA 2,5%", "Importe IVA 2,5%",
	"Neto Gravado IVA 5%", "Importe IVA 5%", "Neto Gravado IVA 10,5%", "Importe IVA 10,5%",
	"Neto Gravado IVA 21%", "Importe IVA 21%", "Neto Gravado IVA 27%", "Importe IVA 27%",
	"Total Neto Gravado", "Total IVA",
}

// canonicalHeader is afipHeader after normalization.
func canonicalHeader() []string {
	out := make([]string, len(afipHeader))
	for i, h := range afipHeader {
		out[i] = NormalizeHeader(h)
	}
	return out
}

// recordFor builds a raw record over canonicalHeader with the given cells
// set and every other cell empty.
func recordFor(cells map[string]string) RawRecord {
	header := canonicalHeader()
	rec := make(RawRecord, len(header))
	for i, name := range header {
		rec[i] = cells[name]
	}
	return rec
}

func bindingsFor(t *testing.T, header []string) *Bindings {
	t.Helper()
	b, err := BuildBindings(NewHeaderIndex(header))
	if err != nil {
		t.Fatalf("BuildBindings: %v", err)
	}
	return b
}

func readFixture(t *testing.T, name string) []byte {
	t.Helper()
	data, err := os.ReadFile(filepath.Join("testdata", name))
	if err != nil {
		t.Fatalf("read fixture: %v", err)
	}
	return data
}
