package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/techstore-pos/internal/domain/entity"
	"github.com/jhoicas/techstore-pos/internal/domain/repository"
	"github.com/shopspring/decimal"
)

var _ repository.SaleRepository = (*SaleRepo)(nil)

// SaleRepo libro de ventas sobre PostgreSQL (usable con pool o tx).
type SaleRepo struct {
	q Querier
}

// NewSaleRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSaleRepository(q Querier) *SaleRepo {
	return &SaleRepo{q: q}
}

const saleColumns = `id, sale_date, customer_id, user_id, subtotal, tax_amount, total, status, notes`

func scanSale(row pgx.Row) (*entity.Sale, error) {
	var s entity.Sale
	err := row.Scan(&s.ID, &s.Date, &s.CustomerID, &s.UserID, &s.Subtotal, &s.TaxAmount, &s.Total, &s.Status, &s.Notes)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func collectSales(rows pgx.Rows) ([]*entity.Sale, error) {
	defer rows.Close()
	var list []*entity.Sale
	for rows.Next() {
		s, err := scanSale(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, s)
	}
	return list, rows.Err()
}

// Append inserta cabecera y líneas. Debe ejecutarse con la tx del registro de venta.
func (r *SaleRepo) Append(ctx context.Context, sale *entity.Sale, items []*entity.SaleItem) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO sales (`+saleColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		sale.ID, sale.Date, sale.CustomerID, sale.UserID, sale.Subtotal, sale.TaxAmount,
		sale.Total, sale.Status, sale.Notes,
	)
	if err != nil {
		return fmt.Errorf("insert sale: %w", err)
	}

	for _, it := range items {
		_, err := r.q.Exec(ctx, `
			INSERT INTO sale_items (id, sale_id, product_id, line_no, quantity, unit_price, subtotal)
			VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			it.ID, sale.ID, it.ProductID, it.LineNo, it.Quantity, it.UnitPrice, it.Subtotal,
		)
		if err != nil {
			return fmt.Errorf("insert sale item %d: %w", it.LineNo, err)
		}
	}
	return nil
}

// GetByID obtiene la cabecera de una venta.
func (r *SaleRepo) GetByID(ctx context.Context, id string) (*entity.Sale, error) {
	s, err := scanSale(r.q.QueryRow(ctx, `SELECT `+saleColumns+` FROM sales WHERE id = $1`, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get sale: %w", err)
	}
	return s, nil
}

// GetItems líneas de la venta en orden de captura, con el nombre actual del producto.
func (r *SaleRepo) GetItems(ctx context.Context, saleID string) ([]*entity.SaleItem, error) {
	query := `
		SELECT si.id, si.sale_id, si.product_id, p.name, si.line_no, si.quantity, si.unit_price, si.subtotal
		FROM sale_items si
		JOIN products p ON p.id = si.product_id
		WHERE si.sale_id = $1
		ORDER BY si.line_no`
	rows, err := r.q.Query(ctx, query, saleID)
	if err != nil {
		return nil, fmt.Errorf("list sale items: %w", err)
	}
	defer rows.Close()
	var list []*entity.SaleItem
	for rows.Next() {
		var it entity.SaleItem
		if err := rows.Scan(&it.ID, &it.SaleID, &it.ProductID, &it.ProductName, &it.LineNo, &it.Quantity, &it.UnitPrice, &it.Subtotal); err != nil {
			return nil, fmt.Errorf("scan sale item: %w", err)
		}
		list = append(list, &it)
	}
	return list, rows.Err()
}

// ListByDateRange ventas en [start, end]; un límite nil no filtra ese lado.
func (r *SaleRepo) ListByDateRange(ctx context.Context, start, end *time.Time) ([]*entity.Sale, error) {
	query := `
		SELECT ` + saleColumns + `
		FROM sales
		WHERE ($1::timestamptz IS NULL OR sale_date >= $1)
		  AND ($2::timestamptz IS NULL OR sale_date <= $2)
		ORDER BY sale_date ASC, id ASC`
	rows, err := r.q.Query(ctx, query, start, end)
	if err != nil {
		return nil, fmt.Errorf("list sales by range: %w", err)
	}
	list, err := collectSales(rows)
	if err != nil {
		return nil, fmt.Errorf("scan sales: %w", err)
	}
	return list, nil
}

// ListRecent últimas ventas, la más reciente primero.
func (r *SaleRepo) ListRecent(ctx context.Context, limit int) ([]*entity.Sale, error) {
	rows, err := r.q.Query(ctx, `SELECT `+saleColumns+` FROM sales ORDER BY sale_date DESC, id DESC LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("list recent sales: %w", err)
	}
	list, err := collectSales(rows)
	if err != nil {
		return nil, fmt.Errorf("scan sales: %w", err)
	}
	return list, nil
}

// TopSellingProducts agrupa por producto (no por nombre) sobre ventas completadas.
func (r *SaleRepo) TopSellingProducts(ctx context.Context, limit int) ([]repository.ProductSales, error) {
	query := `
		SELECT p.id, p.name, SUM(si.quantity)::int AS qty
		FROM sale_items si
		JOIN sales s ON s.id = si.sale_id
		JOIN products p ON p.id = si.product_id
		WHERE s.status = $1
		GROUP BY p.id, p.name
		ORDER BY qty DESC, p.id ASC
		LIMIT $2`
	rows, err := r.q.Query(ctx, query, entity.SaleStatusCompleted, limit)
	if err != nil {
		return nil, fmt.Errorf("top selling products: %w", err)
	}
	defer rows.Close()
	var out []repository.ProductSales
	for rows.Next() {
		var ps repository.ProductSales
		if err := rows.Scan(&ps.ProductID, &ps.ProductName, &ps.QuantitySold); err != nil {
			return nil, fmt.Errorf("scan top product: %w", err)
		}
		out = append(out, ps)
	}
	return out, rows.Err()
}

// TotalsBetween suma y cuenta las ventas completadas con fecha en [start, end].
func (r *SaleRepo) TotalsBetween(ctx context.Context, start, end time.Time) (decimal.Decimal, int, error) {
	query := `
		SELECT COALESCE(SUM(total), 0), COUNT(*)
		FROM sales
		WHERE status = $1 AND sale_date >= $2 AND sale_date <= $3`
	var total decimal.Decimal
	var count int
	if err := r.q.QueryRow(ctx, query, entity.SaleStatusCompleted, start, end).Scan(&total, &count); err != nil {
		return decimal.Zero, 0, fmt.Errorf("sales totals: %w", err)
	}
	return total, count, nil
}

// CustomerTotals total comprado y número de compras completadas de un cliente.
func (r *SaleRepo) CustomerTotals(ctx context.Context, customerID string) (decimal.Decimal, int, error) {
	query := `
		SELECT COALESCE(SUM(total), 0), COUNT(*)
		FROM sales
		WHERE status = $1 AND customer_id = $2`
	var total decimal.Decimal
	var count int
	if err := r.q.QueryRow(ctx, query, entity.SaleStatusCompleted, customerID).Scan(&total, &count); err != nil {
		return decimal.Zero, 0, fmt.Errorf("customer totals: %w", err)
	}
	return total, count, nil
}
