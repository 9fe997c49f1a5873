// Package reporting contiene las consultas de solo lectura sobre el catálogo y el libro de ventas.
// No formatea: los documentos descargables se generan en los adaptadores de infraestructura.
package reporting

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/techstore-pos/internal/application/dto"
	"github.com/jhoicas/techstore-pos/internal/domain"
	"github.com/jhoicas/techstore-pos/internal/domain/entity"
	"github.com/jhoicas/techstore-pos/internal/domain/repository"
	"github.com/shopspring/decimal"
)

const (
	// DefaultTopLimit tamaño del ranking de más vendidos.
	DefaultTopLimit = 5
	// DefaultRecentLimit ventas recientes en el dashboard.
	DefaultRecentLimit = 10

	dateLayout = "2006-01-02"
)

// ReportUseCase agrega datos del catálogo y del libro de ventas.
type ReportUseCase struct {
	productRepo repository.ProductRepository
	saleRepo    repository.SaleRepository
	pdf         SalesReportRenderer
	xlsx        InventorySheetRenderer
	csv         InventorySheetRenderer
	now         func() time.Time
}

// NewReportUseCase construye el caso de uso. Los renderers pueden ser nil si no se exporta.
func NewReportUseCase(
	productRepo repository.ProductRepository,
	saleRepo repository.SaleRepository,
	pdf SalesReportRenderer,
	xlsx InventorySheetRenderer,
	csv InventorySheetRenderer,
) *ReportUseCase {
	return &ReportUseCase{
		productRepo: productRepo,
		saleRepo:    saleRepo,
		pdf:         pdf,
		xlsx:        xlsx,
		csv:         csv,
		now:         time.Now,
	}
}

// DayBounds devuelve [00:00, 23:59:59.999999999] del día de t en su zona horaria.
func DayBounds(t time.Time) (time.Time, time.Time) {
	start := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	return start, start.AddDate(0, 0, 1).Add(-time.Nanosecond)
}

// ParseDateRange interpreta fechas YYYY-MM-DD (vacías = sin límite).
// La fecha final cubre el día completo. ErrInvalidInput si el formato es inválido o start > end.
func ParseDateRange(q dto.DateRangeQuery) (start, end *time.Time, err error) {
	if s := strings.TrimSpace(q.StartDate); s != "" {
		d, err := time.ParseInLocation(dateLayout, s, time.Local)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: start_date debe tener formato YYYY-MM-DD", domain.ErrInvalidInput)
		}
		start = &d
	}
	if s := strings.TrimSpace(q.EndDate); s != "" {
		d, err := time.ParseInLocation(dateLayout, s, time.Local)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: end_date debe tener formato YYYY-MM-DD", domain.ErrInvalidInput)
		}
		_, last := DayBounds(d)
		end = &last
	}
	if start != nil && end != nil && start.After(*end) {
		return nil, nil, fmt.Errorf("%w: start_date posterior a end_date", domain.ErrInvalidInput)
	}
	return start, end, nil
}

// SalesTotalForDate suma los totales de las ventas completadas del día de date.
func (uc *ReportUseCase) SalesTotalForDate(ctx context.Context, date time.Time) (decimal.Decimal, int, error) {
	start, end := DayBounds(date)
	total, count, err := uc.saleRepo.TotalsBetween(ctx, start, end)
	if err != nil {
		return decimal.Zero, 0, fmt.Errorf("reporting: total del día: %w", err)
	}
	return total.Round(2), count, nil
}

// LowStockProducts productos activos con stock <= umbral.
func (uc *ReportUseCase) LowStockProducts(ctx context.Context) ([]dto.ProductResponse, error) {
	list, err := uc.productRepo.ListLowStock(ctx)
	if err != nil {
		return nil, fmt.Errorf("reporting: stock bajo: %w", err)
	}
	return dto.FromProducts(list), nil
}

// TopSellingProducts ranking por cantidad vendida; limit <= 0 usa DefaultTopLimit.
func (uc *ReportUseCase) TopSellingProducts(ctx context.Context, limit int) ([]dto.TopProductDTO, error) {
	if limit <= 0 {
		limit = DefaultTopLimit
	}
	rows, err := uc.saleRepo.TopSellingProducts(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("reporting: más vendidos: %w", err)
	}
	out := make([]dto.TopProductDTO, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.TopProductDTO{ProductID: r.ProductID, ProductName: r.ProductName, QuantitySold: r.QuantitySold})
	}
	return out, nil
}

// SalesInRange ventas con fecha en [start, end] ordenadas por fecha. end ya debe cubrir el día completo (ParseDateRange).
func (uc *ReportUseCase) SalesInRange(ctx context.Context, start, end *time.Time) ([]dto.SaleResponse, error) {
	list, err := uc.saleRepo.ListByDateRange(ctx, start, end)
	if err != nil {
		return nil, fmt.Errorf("reporting: ventas por rango: %w", err)
	}
	return dto.FromSales(list), nil
}

// RecentSales últimas ventas registradas, la más reciente primero.
func (uc *ReportUseCase) RecentSales(ctx context.Context, limit int) ([]dto.SaleResponse, error) {
	if limit <= 0 {
		limit = DefaultRecentLimit
	}
	list, err := uc.saleRepo.ListRecent(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("reporting: ventas recientes: %w", err)
	}
	return dto.FromSales(list), nil
}

// SalesReport listado del período con su total general (solo ventas completadas suman).
func (uc *ReportUseCase) SalesReport(ctx context.Context, start, end *time.Time) (*dto.SalesReportDTO, error) {
	list, err := uc.saleRepo.ListByDateRange(ctx, start, end)
	if err != nil {
		return nil, fmt.Errorf("reporting: reporte de ventas: %w", err)
	}
	grand := decimal.Zero
	for _, s := range list {
		if s.Status == entity.SaleStatusCompleted {
			grand = grand.Add(s.Total)
		}
	}
	return &dto.SalesReportDTO{
		StartDate:   start,
		EndDate:     end,
		Sales:       dto.FromSales(list),
		SaleCount:   len(list),
		GrandTotal:  grand.Round(2),
		GeneratedAt: uc.now(),
	}, nil
}

// InventoryReport productos activos con la bandera de stock bajo y los conteos.
func (uc *ReportUseCase) InventoryReport(ctx context.Context) (*dto.InventoryReportDTO, error) {
	list, err := uc.productRepo.ListActive(ctx, repository.ProductFilter{})
	if err != nil {
		return nil, fmt.Errorf("reporting: inventario: %w", err)
	}
	products := dto.FromProducts(list)
	low := 0
	for _, p := range products {
		if p.LowStock {
			low++
		}
	}
	return &dto.InventoryReportDTO{
		Products:      products,
		ProductCount:  len(products),
		LowStockCount: low,
		GeneratedAt:   uc.now(),
	}, nil
}

// SalesReportPDF genera el PDF del reporte de ventas. Devuelve bytes y nombre de archivo sugerido.
func (uc *ReportUseCase) SalesReportPDF(ctx context.Context, start, end *time.Time) ([]byte, string, error) {
	if uc.pdf == nil {
		return nil, "", fmt.Errorf("reporting: renderer PDF no configurado")
	}
	report, err := uc.SalesReport(ctx, start, end)
	if err != nil {
		return nil, "", err
	}
	data, err := uc.pdf.RenderSalesReport(report)
	if err != nil {
		return nil, "", fmt.Errorf("reporting: generar PDF: %w", err)
	}
	return data, "reporte_ventas_" + report.GeneratedAt.Format("20060102") + ".pdf", nil
}

// InventoryXLSX genera el libro de Excel del inventario actual.
func (uc *ReportUseCase) InventoryXLSX(ctx context.Context) ([]byte, string, error) {
	return uc.renderInventory(ctx, uc.xlsx, "xlsx")
}

// InventoryCSV genera la planilla CSV del inventario actual.
func (uc *ReportUseCase) InventoryCSV(ctx context.Context) ([]byte, string, error) {
	return uc.renderInventory(ctx, uc.csv, "csv")
}

func (uc *ReportUseCase) renderInventory(ctx context.Context, r InventorySheetRenderer, ext string) ([]byte, string, error) {
	if r == nil {
		return nil, "", fmt.Errorf("reporting: renderer de inventario %s no configurado", ext)
	}
	report, err := uc.InventoryReport(ctx)
	if err != nil {
		return nil, "", err
	}
	data, err := r.RenderInventory(report)
	if err != nil {
		return nil, "", fmt.Errorf("reporting: generar planilla %s: %w", ext, err)
	}
	return data, "inventario_" + report.GeneratedAt.Format("20060102") + "." + ext, nil
}
