package repository

import (
	"context"
	"time"

	"github.com/jhoicas/techstore-pos/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// ProductSales cantidad total vendida de un producto (ranking de más vendidos).
type ProductSales struct {
	ProductID    string
	ProductName  string
	QuantitySold int
}

// SaleRepository define el puerto del libro de ventas. Solo se agregan ventas; no se actualizan totales.
type SaleRepository interface {
	// Append persiste la cabecera y sus líneas (en la tx del caller). Genera IDs vacíos.
	Append(ctx context.Context, sale *entity.Sale, items []*entity.SaleItem) error
	GetByID(ctx context.Context, id string) (*entity.Sale, error)
	GetItems(ctx context.Context, saleID string) ([]*entity.SaleItem, error)

	// ListByDateRange devuelve ventas con fecha en [start, end] ordenadas por fecha ascendente.
	// Un límite nil deja ese lado abierto.
	ListByDateRange(ctx context.Context, start, end *time.Time) ([]*entity.Sale, error)
	ListRecent(ctx context.Context, limit int) ([]*entity.Sale, error)

	// TopSellingProducts ordena por cantidad vendida descendente; empates por ID de producto.
	TopSellingProducts(ctx context.Context, limit int) ([]ProductSales, error)

	// TotalsBetween suma los totales y cuenta las ventas con fecha en [start, end].
	TotalsBetween(ctx context.Context, start, end time.Time) (decimal.Decimal, int, error)
	CustomerTotals(ctx context.Context, customerID string) (decimal.Decimal, int, error)
}
