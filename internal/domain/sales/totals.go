// Package sales contiene los cálculos puros de una venta (servicio de dominio).
package sales

import "github.com/shopspring/decimal"

// TaxRate IGV fijo aplicado sobre el subtotal de cada venta.
var TaxRate = decimal.RequireFromString("0.18")

// Totals montos de cabecera de una venta.
type Totals struct {
	Subtotal  decimal.Decimal
	TaxAmount decimal.Decimal
	Total     decimal.Decimal
}

// LineSubtotal = cantidad × precio unitario (precio congelado al momento de la venta).
func LineSubtotal(quantity int, unitPrice decimal.Decimal) decimal.Decimal {
	return unitPrice.Mul(decimal.NewFromInt(int64(quantity)))
}

// CalculateTotals suma los subtotales de línea y aplica el IGV.
// Subtotal = Σ líneas; Impuesto = Subtotal × 0.18 redondeado a 2 decimales; Total = Subtotal + Impuesto.
func CalculateTotals(lineSubtotals []decimal.Decimal) Totals {
	subtotal := decimal.Zero
	for _, s := range lineSubtotals {
		subtotal = subtotal.Add(s)
	}
	tax := subtotal.Mul(TaxRate).Round(2)
	return Totals{
		Subtotal:  subtotal,
		TaxAmount: tax,
		Total:     subtotal.Add(tax),
	}
}
