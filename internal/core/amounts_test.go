package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAmount(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"1.234,56", "1234.56"},
		{"1234.56", "1234.56"},
		{"12100,00", "12100"},
		{" 605,00 ", "605"},
		{"-210,00", "-210"},
		{"", "0"},
		{"1.000.000,5", "1000000.5"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseAmount(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.String())
		})
	}
}

func TestParseAmount_Invalid(t *testing.T) {
	_, err := ParseAmount("doce")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid number")
}

func TestTotals(t *testing.T) {
	row := func(total, neto, iva string) OutputRow {
		r := make(OutputRow, len(OutputColumns))
		r[colImpTotal] = total
		r[colTotalNetoGravado] = neto
		r[colIVA] = iva
		return r
	}

	var totals Totals
	totals.Add(row("121,00", "100,00", "21,00"))
	totals.Add(row("1.210,50", "1.000,00", "210,50"))
	totals.Add(row("n/a", "", "0"))
	totals.Add(OutputRow{"short"})

	assert.Equal(t, "1331.5", totals.ImpTotal.String())
	assert.Equal(t, "1100", totals.TotalNetoGravado.String())
	assert.Equal(t, "231.5", totals.IVA.String())
	assert.Equal(t, 1, totals.Unparsed)
	assert.Equal(t, "Imp. Total=1331.50 Total Neto Gravado=1100.00 IVA=231.50", totals.String())
}
