package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeHeader(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"Fecha de Emisión", "Fecha de Emision"},
		{"  Número de Comprobante ", "Numero de Comprobante"},
		{"Número", "Numero"},
		{"Denominaci�n Vendedor", "Denominacin Vendedor"},
		{"\ufeffFecha", "Fecha"},
		{"Crédito Fiscal Computable", "Credito Fiscal Computable"},
		{"Ñandú", "Nandu"},
		{"€", ""},
		{"", ""},
		{"Tipo Doc. Vendedor", "Tipo Doc. Vendedor"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got := NormalizeHeader(tt.in)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, got, NormalizeHeader(got), "not idempotent")
		})
	}
}

func TestHeaderIndex(t *testing.T) {
	idx := NewHeaderIndex([]string{"Fecha", "", "Importe", "Fecha", "IVA"})

	pos, ok := idx.Lookup("Fecha")
	assert.True(t, ok)
	assert.Equal(t, 0, pos, "first occurrence wins")

	pos, ok = idx.Lookup("IVA")
	assert.True(t, ok)
	assert.Equal(t, 4, pos)

	assert.False(t, idx.Has(""))
	assert.False(t, idx.Has("Moneda"))
	assert.Equal(t, 3, idx.Len())
	assert.Equal(t, []string{"Fecha", "Importe", "IVA"}, idx.Names())
}

func TestHeaderIndex_NamesIsACopy(t *testing.T) {
	idx := NewHeaderIndex([]string{"a", "b"})
	names := idx.Names()
	names[0] = "changed"
	assert.Equal(t, []string{"a", "b"}, idx.Names())
}
