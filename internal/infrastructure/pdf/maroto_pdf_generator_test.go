package pdf

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/techstore-pos/internal/application/dto"
)

func TestRenderSalesReport_ProducesPDF(t *testing.T) {
	start := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	cid := "6f1c2a9e-0000-0000-0000-000000000001"
	report := &dto.SalesReportDTO{
		StartDate: &start,
		Sales: []dto.SaleResponse{{
			ID:         "0b8e9d2c-1111-2222-3333-444455556666",
			Date:       start.Add(10 * time.Hour),
			CustomerID: &cid,
			Subtotal:   decimal.RequireFromString("9998.00"),
			TaxAmount:  decimal.RequireFromString("1799.64"),
			Total:      decimal.RequireFromString("11797.64"),
		}},
		SaleCount:   1,
		GrandTotal:  decimal.RequireFromString("11797.64"),
		GeneratedAt: start,
	}

	data, err := NewMarotoPDFGenerator("TechStore").RenderSalesReport(report)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF")))
}

func TestRenderSalesReport_Empty(t *testing.T) {
	data, err := NewMarotoPDFGenerator("TechStore").RenderSalesReport(&dto.SalesReportDTO{GeneratedAt: time.Now()})
	require.NoError(t, err)
	assert.NotEmpty(t, data)
}

func TestMoney(t *testing.T) {
	g := NewMarotoPDFGenerator("TechStore")
	out := g.money(decimal.RequireFromString("11797.64"))
	assert.True(t, strings.HasPrefix(out, "S/ "), out)
	assert.True(t, strings.HasSuffix(out, "64"), out)
	assert.Contains(t, g.money(decimal.RequireFromString("0.18")), "18")
}

func TestPeriodLabel(t *testing.T) {
	d := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "todas las ventas", periodLabel(nil, nil))
	assert.Equal(t, "desde 10/03/2026", periodLabel(&d, nil))
	assert.Equal(t, "hasta 10/03/2026", periodLabel(nil, &d))
	assert.Equal(t, "10/03/2026 – 10/03/2026", periodLabel(&d, &d))
}
