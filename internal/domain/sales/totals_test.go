package sales_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/techstore-pos/internal/domain/sales"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// Dos unidades de 4999.00 → subtotal 9998.00, IGV 1799.64, total 11797.64.
func TestCalculateTotals_EjemploIPhone(t *testing.T) {
	line := sales.LineSubtotal(2, dec("4999.00"))
	assert.True(t, line.Equal(dec("9998.00")), "subtotal de línea: %s", line)

	totals := sales.CalculateTotals([]decimal.Decimal{line})
	assert.True(t, totals.Subtotal.Equal(dec("9998.00")))
	assert.True(t, totals.TaxAmount.Equal(dec("1799.64")), "impuesto: %s", totals.TaxAmount)
	assert.True(t, totals.Total.Equal(dec("11797.64")), "total: %s", totals.Total)
}

func TestCalculateTotals_VariasLineas(t *testing.T) {
	lines := []decimal.Decimal{
		sales.LineSubtotal(1, dec("899.00")),
		sales.LineSubtotal(3, dec("349.00")),
	}
	totals := sales.CalculateTotals(lines)

	assert.True(t, totals.Subtotal.Equal(dec("1946.00")))
	assert.True(t, totals.TaxAmount.Equal(dec("350.28")))
	assert.True(t, totals.Total.Equal(totals.Subtotal.Add(totals.TaxAmount)))
}

// El impuesto se redondea a céntimos; el total siempre es subtotal + impuesto.
func TestCalculateTotals_RedondeoImpuesto(t *testing.T) {
	totals := sales.CalculateTotals([]decimal.Decimal{dec("0.99")})

	assert.True(t, totals.TaxAmount.Equal(dec("0.18")), "0.99 × 0.18 = 0.1782 → 0.18")
	assert.True(t, totals.Total.Equal(dec("1.17")))
}

func TestCalculateTotals_SinLineas(t *testing.T) {
	totals := sales.CalculateTotals(nil)
	assert.True(t, totals.Subtotal.IsZero())
	assert.True(t, totals.TaxAmount.IsZero())
	assert.True(t, totals.Total.IsZero())
}
