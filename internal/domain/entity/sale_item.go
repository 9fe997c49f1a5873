package entity

import "github.com/shopspring/decimal"

// SaleItem representa una línea de venta. UnitPrice es el precio del producto al momento de la venta.
type SaleItem struct {
	ID          string
	SaleID      string
	ProductID   string
	ProductName string // solo lectura, resuelto por join
	LineNo      int    // orden de captura
	Quantity    int
	UnitPrice   decimal.Decimal
	Subtotal    decimal.Decimal
}
