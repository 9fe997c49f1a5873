package reporting

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/techstore-pos/internal/application/dto"
	"github.com/jhoicas/techstore-pos/internal/domain"
	"github.com/jhoicas/techstore-pos/internal/domain/entity"
	"github.com/jhoicas/techstore-pos/internal/testutil/memdb"
)

var day = time.Date(2026, 3, 10, 0, 0, 0, 0, time.Local)

func seed(t *testing.T) *memdb.DB {
	t.Helper()
	db := memdb.New()
	db.AddProduct(entity.Product{ID: "p1", Name: "Laptop", Category: "Laptops", Price: decimal.NewFromInt(4999), Stock: 15, LowStockThreshold: 5, Active: true})
	db.AddProduct(entity.Product{ID: "p2", Name: "Mouse", Category: "Accesorios", Price: decimal.NewFromInt(899), Stock: 5, LowStockThreshold: 5, Active: true})
	db.AddProduct(entity.Product{ID: "p3", Name: "Cable", Category: "Accesorios", Price: decimal.NewFromInt(10), Stock: 0, LowStockThreshold: 5, Active: false})
	db.AddProduct(entity.Product{ID: "p4", Name: "Teclado", Category: "Accesorios", Price: decimal.NewFromInt(120), Stock: 2, LowStockThreshold: 3, Active: true})

	sale := func(id string, at time.Time, total string, status string, items ...entity.SaleItem) {
		db.AddSale(entity.Sale{ID: id, Date: at, UserID: "op", Total: decimal.RequireFromString(total), Status: status}, items...)
	}
	sale("s1", day.Add(9*time.Hour), "100.00", entity.SaleStatusCompleted,
		entity.SaleItem{ProductID: "p1", LineNo: 1, Quantity: 2},
		entity.SaleItem{ProductID: "p2", LineNo: 2, Quantity: 1})
	sale("s2", day.Add(23*time.Hour+59*time.Minute), "50.50", entity.SaleStatusCompleted,
		entity.SaleItem{ProductID: "p2", LineNo: 1, Quantity: 1})
	sale("s3", day.Add(-time.Minute), "999.00", entity.SaleStatusCompleted,
		entity.SaleItem{ProductID: "p4", LineNo: 1, Quantity: 2})
	sale("s4", day.Add(12*time.Hour), "70.00", entity.SaleStatusCancelled,
		entity.SaleItem{ProductID: "p4", LineNo: 1, Quantity: 9})
	return db
}

func newReports(db *memdb.DB) *ReportUseCase {
	uc := NewReportUseCase(db.Products(), db.Sales(), nil, nil, nil)
	uc.now = func() time.Time { return day.Add(15 * time.Hour) }
	return uc
}

func TestSalesTotalForDate_CountsOnlyCompletedSalesOfThatDay(t *testing.T) {
	uc := newReports(seed(t))

	total, count, err := uc.SalesTotalForDate(context.Background(), day.Add(10*time.Hour))
	require.NoError(t, err)
	assert.True(t, total.Equal(decimal.RequireFromString("150.50")), "total: %s", total)
	assert.Equal(t, 2, count)
}

func TestLowStockProducts_ActiveAtOrBelowThreshold(t *testing.T) {
	uc := newReports(seed(t))

	list, err := uc.LowStockProducts(context.Background())
	require.NoError(t, err)
	ids := make([]string, 0, len(list))
	for _, p := range list {
		ids = append(ids, p.ID)
		assert.True(t, p.LowStock)
	}
	assert.Equal(t, []string{"p4", "p2"}, ids)
}

func TestTopSellingProducts_DefaultLimitAndTieBreak(t *testing.T) {
	uc := newReports(seed(t))

	top, err := uc.TopSellingProducts(context.Background(), 0)
	require.NoError(t, err)
	require.Len(t, top, 3)
	// p1: 2, p2: 2, p4: 2 (la venta anulada no suma) → desempate por ID
	assert.Equal(t, "p1", top[0].ProductID)
	assert.Equal(t, "p2", top[1].ProductID)
	assert.Equal(t, "p4", top[2].ProductID)
	assert.Equal(t, 2, top[0].QuantitySold)
	assert.Equal(t, "Laptop", top[0].ProductName)

	top, err = uc.TopSellingProducts(context.Background(), 1)
	require.NoError(t, err)
	assert.Len(t, top, 1)
}

func TestParseDateRange(t *testing.T) {
	start, end, err := ParseDateRange(dto.DateRangeQuery{StartDate: "2026-03-10", EndDate: "2026-03-10"})
	require.NoError(t, err)
	require.NotNil(t, start)
	require.NotNil(t, end)
	assert.Equal(t, day, *start)
	assert.Equal(t, day.AddDate(0, 0, 1).Add(-time.Nanosecond), *end)

	start, end, err = ParseDateRange(dto.DateRangeQuery{})
	require.NoError(t, err)
	assert.Nil(t, start)
	assert.Nil(t, end)

	_, _, err = ParseDateRange(dto.DateRangeQuery{StartDate: "10/03/2026"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, _, err = ParseDateRange(dto.DateRangeQuery{StartDate: "2026-03-11", EndDate: "2026-03-10"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestSalesInRange_EndDateCoversWholeDay(t *testing.T) {
	uc := newReports(seed(t))
	start, end, err := ParseDateRange(dto.DateRangeQuery{StartDate: "2026-03-10", EndDate: "2026-03-10"})
	require.NoError(t, err)

	list, err := uc.SalesInRange(context.Background(), start, end)
	require.NoError(t, err)
	ids := make([]string, 0, len(list))
	for _, s := range list {
		ids = append(ids, s.ID)
	}
	assert.Equal(t, []string{"s1", "s4", "s2"}, ids)
}

func TestSalesReport_GrandTotalSkipsCancelled(t *testing.T) {
	uc := newReports(seed(t))

	report, err := uc.SalesReport(context.Background(), nil, nil)
	require.NoError(t, err)
	assert.Equal(t, 4, report.SaleCount)
	assert.True(t, report.GrandTotal.Equal(decimal.RequireFromString("1149.50")), "total: %s", report.GrandTotal)
	assert.Equal(t, day.Add(15*time.Hour), report.GeneratedAt)
}

func TestInventoryReport_Counts(t *testing.T) {
	uc := newReports(seed(t))

	report, err := uc.InventoryReport(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, report.ProductCount)
	assert.Equal(t, 2, report.LowStockCount)
}

func TestRecentSales_NewestFirst(t *testing.T) {
	uc := newReports(seed(t))

	list, err := uc.RecentSales(context.Background(), 2)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "s2", list[0].ID)
	assert.Equal(t, "s4", list[1].ID)
}

type stubRenderer struct {
	got *dto.SalesReportDTO
	inv *dto.InventoryReportDTO
	err error
}

func (s *stubRenderer) RenderSalesReport(r *dto.SalesReportDTO) ([]byte, error) {
	s.got = r
	return []byte("%PDF"), s.err
}

func (s *stubRenderer) RenderInventory(r *dto.InventoryReportDTO) ([]byte, error) {
	s.inv = r
	return []byte("id,nombre"), s.err
}

func TestExports_UseRenderers(t *testing.T) {
	db := seed(t)
	r := &stubRenderer{}
	uc := NewReportUseCase(db.Products(), db.Sales(), r, r, r)
	uc.now = func() time.Time { return day }

	data, name, err := uc.SalesReportPDF(context.Background(), nil, nil)
	require.NoError(t, err)
	assert.Equal(t, []byte("%PDF"), data)
	assert.Equal(t, "reporte_ventas_20260310.pdf", name)
	require.NotNil(t, r.got)
	assert.Equal(t, 4, r.got.SaleCount)

	_, name, err = uc.InventoryCSV(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "inventario_20260310.csv", name)
	assert.Equal(t, 3, r.inv.ProductCount)

	_, name, err = uc.InventoryXLSX(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "inventario_20260310.xlsx", name)

	r.err = errors.New("boom")
	_, _, err = uc.SalesReportPDF(context.Background(), nil, nil)
	assert.Error(t, err)
}

func TestExports_WithoutRenderer(t *testing.T) {
	uc := newReports(seed(t))
	_, _, err := uc.SalesReportPDF(context.Background(), nil, nil)
	assert.Error(t, err)
	_, _, err = uc.InventoryCSV(context.Background())
	assert.Error(t, err)
	_, _, err = uc.InventoryXLSX(context.Background())
	assert.Error(t, err)
}
