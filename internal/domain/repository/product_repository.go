package repository

import (
	"context"

	"github.com/jhoicas/techstore-pos/internal/domain/entity"
)

// ProductFilter filtros opcionales del listado de productos activos.
type ProductFilter struct {
	NameContains string // búsqueda sin distinguir mayúsculas
	Category     string // coincidencia exacta
}

// ProductRepository define el puerto de persistencia para Product (DIP).
// Las lecturas solo devuelven productos activos; un producto inexistente o inactivo devuelve (nil, nil).
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetActiveByID(ctx context.Context, id string) (*entity.Product, error)
	ListActive(ctx context.Context, filter ProductFilter) ([]*entity.Product, error)
	ListCategories(ctx context.Context) ([]string, error)
	ListLowStock(ctx context.Context) ([]*entity.Product, error)
	CountActive(ctx context.Context) (int, error)
	Deactivate(ctx context.Context, id string) error

	// GetForUpdate bloquea (SELECT FOR UPDATE) las filas activas de los IDs dados, en orden de ID.
	// Solo tiene sentido dentro de una transacción; los IDs inexistentes simplemente no aparecen.
	GetForUpdate(ctx context.Context, ids []string) ([]*entity.Product, error)

	// DecrementStock descuenta quantity solo si hay stock suficiente.
	// Devuelve *domain.InsufficientStockError o *domain.ProductNotFoundError en caso contrario.
	DecrementStock(ctx context.Context, id string, quantity int) (*entity.Product, error)
}
