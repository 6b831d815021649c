package core

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Output positions of the amount columns summed by Totals.
var (
	colImpTotal         = columnIndex("Imp. Total")
	colTotalNetoGravado = columnIndex("Total Neto Gravado")
	colIVA              = columnIndex("IVA")
)

// Totals accumulates the amount columns of converted rows. Empty cells
// count as zero; cells that are not numbers are counted in Unparsed.
type Totals struct {
	ImpTotal         decimal.Decimal `json:"imp_total"`
	TotalNetoGravado decimal.Decimal `json:"total_neto_gravado"`
	IVA              decimal.Decimal `json:"iva"`
	Unparsed         int             `json:"unparsed"`
}

// Add sums the amount columns of row.
func (t *Totals) Add(row OutputRow) {
	t.ImpTotal = t.add(t.ImpTotal, row, colImpTotal)
	t.TotalNetoGravado = t.add(t.TotalNetoGravado, row, colTotalNetoGravado)
	t.IVA = t.add(t.IVA, row, colIVA)
}

func (t *Totals) add(sum decimal.Decimal, row OutputRow, col int) decimal.Decimal {
	if col >= len(row) {
		return sum
	}
	d, err := ParseAmount(row[col])
	if err != nil {
		t.Unparsed++
		return sum
	}
	return sum.Add(d)
}

// String formats the totals with two decimals.
func (t Totals) String() string {
	return fmt.Sprintf("Imp. Total=%s Total Neto Gravado=%s IVA=%s",
		t.ImpTotal.StringFixed(2), t.TotalNetoGravado.StringFixed(2), t.IVA.StringFixed(2))
}

// ParseAmount parses an amount as written in AFIP exports. When a comma
// is present it is the decimal separator and dots group thousands
// ("1.234,56"); otherwise a dot is the decimal separator. "" parses as 0.
func ParseAmount(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, nil
	}
	if strings.Contains(s, ",") {
		s = strings.ReplaceAll(s, ".", "")
		s = strings.Replace(s, ",", ".", 1)
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid number %q: %w", s, err)
	}
	return d, nil
}

func columnIndex(name string) int {
	for i, c := range OutputColumns {
		if c == name {
			return i
		}
	}
	panic("core: unknown output column " + name)
}
