package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/techstore-pos/internal/domain"
	"github.com/jhoicas/techstore-pos/internal/domain/entity"
	"github.com/jhoicas/techstore-pos/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

const productColumns = `id, name, category, description, price, stock, low_stock_threshold, active, created_at, updated_at`

func scanProduct(row pgx.Row) (*entity.Product, error) {
	var p entity.Product
	err := row.Scan(
		&p.ID, &p.Name, &p.Category, &p.Description, &p.Price, &p.Stock,
		&p.LowStockThreshold, &p.Active, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func collectProducts(rows pgx.Rows) ([]*entity.Product, error) {
	defer rows.Close()
	var list []*entity.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

// Create persiste un nuevo producto.
func (r *ProductRepo) Create(ctx context.Context, product *entity.Product) error {
	query := `
		INSERT INTO products (` + productColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(ctx, query,
		product.ID, product.Name, product.Category, product.Description, product.Price,
		product.Stock, product.LowStockThreshold, product.Active, product.CreatedAt, product.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

// GetActiveByID obtiene un producto activo por ID.
func (r *ProductRepo) GetActiveByID(ctx context.Context, id string) (*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1 AND active`
	p, err := scanProduct(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return p, nil
}

// ListActive lista productos activos ordenados por nombre, filtrando por nombre (subcadena literal, sin distinguir mayúsculas) y categoría.
// % y _ en el texto buscado se tratan de forma literal.
func (r *ProductRepo) ListActive(ctx context.Context, filter repository.ProductFilter) ([]*entity.Product, error) {
	query := `
		SELECT ` + productColumns + `
		FROM products
		WHERE active
		  AND ($1 = '' OR strpos(lower(name), lower($1)) > 0)
		  AND ($2 = '' OR category = $2)
		ORDER BY name`
	rows, err := r.q.Query(ctx, query, filter.NameContains, filter.Category)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	list, err := collectProducts(rows)
	if err != nil {
		return nil, fmt.Errorf("scan products: %w", err)
	}
	return list, nil
}

// ListCategories categorías distintas de los productos activos.
func (r *ProductRepo) ListCategories(ctx context.Context) ([]string, error) {
	rows, err := r.q.Query(ctx, `SELECT DISTINCT category FROM products WHERE active ORDER BY category`)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()
	var out []string
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// ListLowStock productos activos con stock <= umbral, el más crítico primero.
func (r *ProductRepo) ListLowStock(ctx context.Context) ([]*entity.Product, error) {
	query := `
		SELECT ` + productColumns + `
		FROM products
		WHERE active AND stock <= low_stock_threshold
		ORDER BY stock ASC, id ASC`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list low stock: %w", err)
	}
	list, err := collectProducts(rows)
	if err != nil {
		return nil, fmt.Errorf("scan low stock: %w", err)
	}
	return list, nil
}

// CountActive número de productos activos.
func (r *ProductRepo) CountActive(ctx context.Context) (int, error) {
	var n int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM products WHERE active`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count products: %w", err)
	}
	return n, nil
}

// Deactivate baja lógica; la fila se conserva por las ventas históricas (FK RESTRICT).
func (r *ProductRepo) Deactivate(ctx context.Context, id string) error {
	_, err := r.q.Exec(ctx, `UPDATE products SET active = false, updated_at = now() WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deactivate product: %w", err)
	}
	return nil
}

// GetForUpdate bloquea las filas activas de ids en orden de ID (orden de locks estable entre transacciones).
func (r *ProductRepo) GetForUpdate(ctx context.Context, ids []string) ([]*entity.Product, error) {
	// Un ID que no es UUID no puede existir; se descarta para no abortar la tx con un error de sintaxis.
	valid := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, err := uuid.Parse(id); err == nil {
			valid = append(valid, id)
		}
	}
	if len(valid) == 0 {
		return nil, nil
	}
	query := `
		SELECT ` + productColumns + `
		FROM products
		WHERE id = ANY($1) AND active
		ORDER BY id
		FOR UPDATE`
	rows, err := r.q.Query(ctx, query, valid)
	if err != nil {
		return nil, fmt.Errorf("lock products: %w", err)
	}
	list, err := collectProducts(rows)
	if err != nil {
		return nil, fmt.Errorf("scan locked products: %w", err)
	}
	return list, nil
}

// DecrementStock descuenta quantity de forma condicional: la fila solo cambia si stock >= quantity.
// Si no se actualiza ninguna fila se distingue entre producto inexistente y stock insuficiente.
func (r *ProductRepo) DecrementStock(ctx context.Context, id string, quantity int) (*entity.Product, error) {
	query := `
		UPDATE products
		SET stock = stock - $2, updated_at = now()
		WHERE id = $1 AND active AND stock >= $2
		RETURNING ` + productColumns
	p, err := scanProduct(r.q.QueryRow(ctx, query, id, quantity))
	if err == nil {
		return p, nil
	}
	if !isNoRows(err) {
		return nil, fmt.Errorf("decrement stock: %w", err)
	}
	current, err := r.GetActiveByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if current == nil {
		return nil, &domain.ProductNotFoundError{ProductID: id}
	}
	return nil, &domain.InsufficientStockError{
		ProductID:   id,
		ProductName: current.Name,
		Requested:   quantity,
		Available:   current.Stock,
	}
}
