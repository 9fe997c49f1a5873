package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// DefaultLowStockThreshold umbral de stock bajo cuando no se especifica uno.
const DefaultLowStockThreshold = 5

// Product representa un producto del catálogo de la tienda.
// Stock solo lo descuenta el registro de ventas; la baja es lógica (Active=false).
type Product struct {
	ID                string
	Name              string
	Category          string
	Description       string
	Price             decimal.Decimal // precio de venta vigente
	Stock             int
	LowStockThreshold int
	Active            bool
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// IsLowStock indica si el stock está en o por debajo del umbral configurado.
func (p *Product) IsLowStock() bool {
	return p.Stock <= p.LowStockThreshold
}
