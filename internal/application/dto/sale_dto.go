package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// RegisterSaleRequest body para POST /api/sales.
type RegisterSaleRequest struct {
	CustomerID *string           `json:"customer_id,omitempty"`
	Notes      string            `json:"notes,omitempty"`
	Items      []SaleItemRequest `json:"items"`
}

// SaleItemRequest línea pedida (producto y cantidad). El precio lo fija el catálogo.
type SaleItemRequest struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

// SaleResponse venta persistida con sus líneas en el orden de captura.
type SaleResponse struct {
	ID         string             `json:"id"`
	Date       time.Time          `json:"date"`
	CustomerID *string            `json:"customer_id,omitempty"`
	UserID     string             `json:"user_id"`
	Subtotal   decimal.Decimal    `json:"subtotal"`
	TaxAmount  decimal.Decimal    `json:"tax_amount"`
	Total      decimal.Decimal    `json:"total"`
	Status     string             `json:"status"`
	Notes      string             `json:"notes,omitempty"`
	Items      []SaleItemResponse `json:"items,omitempty"`
}

// SaleItemResponse línea de venta en la respuesta.
type SaleItemResponse struct {
	ID          string          `json:"id"`
	ProductID   string          `json:"product_id"`
	ProductName string          `json:"product_name,omitempty"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Subtotal    decimal.Decimal `json:"subtotal"`
}

// RegisterSaleResponse resultado estructurado de POST /api/sales (éxito o fallo).
type RegisterSaleResponse struct {
	Success bool             `json:"success"`
	SaleID  string           `json:"sale_id,omitempty"`
	Total   *decimal.Decimal `json:"total,omitempty"`
	Code    string           `json:"code,omitempty"`
	Message string           `json:"message"`
	Sale    *SaleResponse    `json:"sale,omitempty"`
}
