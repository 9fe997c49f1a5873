package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest entrada para crear un producto (solo admin).
type CreateProductRequest struct {
	Name              string          `json:"name" validate:"required,min=1,max=200"`
	Category          string          `json:"category" validate:"required,min=1,max=50"`
	Description       string          `json:"description"`
	Price             decimal.Decimal `json:"price"`
	Stock             int             `json:"stock" validate:"min=0"`
	LowStockThreshold *int            `json:"low_stock_threshold" validate:"omitempty,min=0"`
}

// ProductListQuery filtros de GET /api/products.
type ProductListQuery struct {
	Search   string `query:"search"`
	Category string `query:"category"`
}

// ProductResponse salida de un producto con la bandera derivada de stock bajo.
type ProductResponse struct {
	ID                string          `json:"id"`
	Name              string          `json:"name"`
	Category          string          `json:"category"`
	Description       string          `json:"description,omitempty"`
	Price             decimal.Decimal `json:"price"`
	Stock             int             `json:"stock"`
	LowStockThreshold int             `json:"low_stock_threshold"`
	LowStock          bool            `json:"low_stock"`
	CreatedAt         time.Time       `json:"created_at"`
}

// ProductListResponse lista de productos activos.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Total int               `json:"total"`
}
