package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una venta. La anulación aún no se implementa; el estado existe en el esquema.
const (
	SaleStatusCompleted = "completed"
	SaleStatusCancelled = "cancelled"
)

// Sale representa la cabecera de una venta. Inmutable una vez persistida.
type Sale struct {
	ID         string
	Date       time.Time
	CustomerID *string // opcional: venta a público general
	UserID     string  // operador que registró la venta
	Subtotal   decimal.Decimal
	TaxAmount  decimal.Decimal
	Total      decimal.Decimal
	Status     string
	Notes      string
}
