package dto

import "github.com/shopspring/decimal"

// DashboardSummaryDTO respuesta de GET /api/dashboard/summary.
type DashboardSummaryDTO struct {
	// Ventas del día actual (00:00 – 23:59)
	TodaySales decimal.Decimal `json:"today_sales"`
	TodayCount int             `json:"today_count"`

	TopProducts      []TopProductDTO   `json:"top_products"`
	LowStockProducts []ProductResponse `json:"low_stock_products"`
	RecentSales      []SaleResponse    `json:"recent_sales"`

	// Contadores de la pantalla de inicio
	ActiveProducts  int `json:"active_products"`
	ActiveCustomers int `json:"active_customers"`
}

// TopProductDTO producto del ranking de más vendidos.
type TopProductDTO struct {
	ProductID    string `json:"product_id"`
	ProductName  string `json:"product_name"`
	QuantitySold int    `json:"quantity_sold"`
}
