package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// DateRangeQuery filtros de fecha (YYYY-MM-DD) de reportes y listados de ventas.
type DateRangeQuery struct {
	StartDate string `query:"start_date" validate:"omitempty,datetime=2006-01-02"`
	EndDate   string `query:"end_date" validate:"omitempty,datetime=2006-01-02"`
}

// SalesReportDTO listado de ventas del período con su total general.
// Lo consume el renderer de PDF; el caso de uso no formatea.
type SalesReportDTO struct {
	StartDate   *time.Time      `json:"start_date,omitempty"`
	EndDate     *time.Time      `json:"end_date,omitempty"`
	Sales       []SaleResponse  `json:"sales"`
	SaleCount   int             `json:"sale_count"`
	GrandTotal  decimal.Decimal `json:"grand_total"`
	GeneratedAt time.Time       `json:"generated_at"`
}

// InventoryReportDTO productos activos con su estado de stock.
type InventoryReportDTO struct {
	Products      []ProductResponse `json:"products"`
	ProductCount  int               `json:"product_count"`
	LowStockCount int               `json:"low_stock_count"`
	GeneratedAt   time.Time         `json:"generated_at"`
}
