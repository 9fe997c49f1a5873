// Package analytics contiene el caso de uso del resumen de la pantalla de inicio (dashboard).
package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/techstore-pos/internal/application/dto"
	"github.com/jhoicas/techstore-pos/internal/application/reporting"
	"github.com/jhoicas/techstore-pos/internal/domain/repository"
	"github.com/shopspring/decimal"
)

// DashboardUseCase genera el resumen del día: ventas, ranking, stock bajo y contadores.
//
// Fuente de datos: ReportUseCase (consultas read-only) y los conteos de catálogo y clientes.
type DashboardUseCase struct {
	reports      *reporting.ReportUseCase
	productRepo  repository.ProductRepository
	customerRepo repository.CustomerRepository
	now          func() time.Time
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(
	reports *reporting.ReportUseCase,
	productRepo repository.ProductRepository,
	customerRepo repository.CustomerRepository,
) *DashboardUseCase {
	return &DashboardUseCase{
		reports:      reports,
		productRepo:  productRepo,
		customerRepo: customerRepo,
		now:          time.Now,
	}
}

// GetSummary construye el DashboardSummaryDTO.
//
// Seis consultas en paralelo:
//  1. SalesTotalForDate(hoy) → TodaySales + TodayCount
//  2. TopSellingProducts(5)  → TopProducts
//  3. LowStockProducts       → LowStockProducts
//  4. RecentSales(10)        → RecentSales
//  5. CountActive productos  → ActiveProducts
//  6. CountActive clientes   → ActiveCustomers
func (uc *DashboardUseCase) GetSummary(ctx context.Context) (*dto.DashboardSummaryDTO, error) {
	now := uc.now()

	type todayResult struct {
		total decimal.Decimal
		count int
		err   error
	}
	type topResult struct {
		items []dto.TopProductDTO
		err   error
	}
	type productsResult struct {
		items []dto.ProductResponse
		err   error
	}
	type salesResult struct {
		items []dto.SaleResponse
		err   error
	}
	type countResult struct {
		n   int
		err error
	}

	todayCh := make(chan todayResult, 1)
	topCh := make(chan topResult, 1)
	lowCh := make(chan productsResult, 1)
	recentCh := make(chan salesResult, 1)
	productsCh := make(chan countResult, 1)
	customersCh := make(chan countResult, 1)

	go func() {
		total, count, err := uc.reports.SalesTotalForDate(ctx, now)
		todayCh <- todayResult{total, count, err}
	}()
	go func() {
		items, err := uc.reports.TopSellingProducts(ctx, reporting.DefaultTopLimit)
		topCh <- topResult{items, err}
	}()
	go func() {
		items, err := uc.reports.LowStockProducts(ctx)
		lowCh <- productsResult{items, err}
	}()
	go func() {
		items, err := uc.reports.RecentSales(ctx, reporting.DefaultRecentLimit)
		recentCh <- salesResult{items, err}
	}()
	go func() {
		n, err := uc.productRepo.CountActive(ctx)
		productsCh <- countResult{n, err}
	}()
	go func() {
		n, err := uc.customerRepo.CountActive(ctx)
		customersCh <- countResult{n, err}
	}()

	today := <-todayCh
	top := <-topCh
	low := <-lowCh
	recent := <-recentCh
	products := <-productsCh
	customers := <-customersCh

	if today.err != nil {
		return nil, fmt.Errorf("dashboard: ventas de hoy: %w", today.err)
	}
	if top.err != nil {
		return nil, fmt.Errorf("dashboard: más vendidos: %w", top.err)
	}
	if low.err != nil {
		return nil, fmt.Errorf("dashboard: stock bajo: %w", low.err)
	}
	if recent.err != nil {
		return nil, fmt.Errorf("dashboard: ventas recientes: %w", recent.err)
	}
	if products.err != nil {
		return nil, fmt.Errorf("dashboard: productos activos: %w", products.err)
	}
	if customers.err != nil {
		return nil, fmt.Errorf("dashboard: clientes activos: %w", customers.err)
	}

	return &dto.DashboardSummaryDTO{
		TodaySales:       today.total,
		TodayCount:       today.count,
		TopProducts:      top.items,
		LowStockProducts: low.items,
		RecentSales:      recent.items,
		ActiveProducts:   products.n,
		ActiveCustomers:  customers.n,
	}, nil
}
