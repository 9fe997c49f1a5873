package export

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"golang.org/x/text/encoding/charmap"

	"github.com/jhoicas/techstore-pos/internal/application/dto"
)

func inventoryReport() *dto.InventoryReportDTO {
	return &dto.InventoryReportDTO{
		Products: []dto.ProductResponse{
			{ID: "p1", Name: "Cámara Sony", Category: "Fotografía", Price: decimal.RequireFromString("1299"), Stock: 15, LowStockThreshold: 5},
			{ID: "p2", Name: "Mouse", Category: "Accesorios", Price: decimal.RequireFromString("349.5"), Stock: 2, LowStockThreshold: 5, LowStock: true},
		},
		ProductCount:  2,
		LowStockCount: 1,
	}
}

func TestRenderInventory_UTF8(t *testing.T) {
	e, err := NewInventoryCSV("")
	require.NoError(t, err)

	data, err := e.RenderInventory(inventoryReport())
	require.NoError(t, err)
	require.True(t, bytes.HasPrefix(data, []byte(utf8BOM)))

	records, err := csv.NewReader(bytes.NewReader(bytes.TrimPrefix(data, []byte(utf8BOM)))).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, inventoryHeader, records[0])
	assert.Equal(t, []string{"p1", "Cámara Sony", "Fotografía", "1299.00", "15", "5", "OK"}, records[1])
	assert.Equal(t, "STOCK BAJO", records[2][6])
	assert.Equal(t, "349.50", records[2][3])
}

func TestRenderInventory_Latin1(t *testing.T) {
	e, err := NewInventoryCSV("ISO-8859-1")
	require.NoError(t, err)

	data, err := e.RenderInventory(inventoryReport())
	require.NoError(t, err)
	assert.True(t, bytes.Contains(data, []byte{'C', 0xE1, 'm'}), "á debe codificarse como 0xE1")

	decoded, err := charmap.ISO8859_1.NewDecoder().Bytes(data)
	require.NoError(t, err)
	assert.Contains(t, string(decoded), "Cámara Sony")
}

func TestNewInventoryCSV_UnknownCharset(t *testing.T) {
	_, err := NewInventoryCSV("ebcdic")
	assert.Error(t, err)
}

func TestReadCatalogCSV(t *testing.T) {
	in := "nombre,categoria,precio,stock,stock_minimo\n" +
		"iPhone 15 Pro,Smartphones,4999.00,15,5\n" +
		"Sin precio,Varios,abc,1\n" +
		"AirPods Pro 2,Accesorios,899,30\n"

	reqs, rowErrs, err := ReadCatalogCSV(strings.NewReader(in), "")
	require.NoError(t, err)
	require.Len(t, reqs, 2)
	require.Len(t, rowErrs, 1)
	assert.Contains(t, rowErrs[0].Error(), "línea 3")

	assert.Equal(t, "iPhone 15 Pro", reqs[0].Name)
	require.NotNil(t, reqs[0].LowStockThreshold)
	assert.Equal(t, 5, *reqs[0].LowStockThreshold)
	assert.Nil(t, reqs[1].LowStockThreshold)
	assert.True(t, reqs[1].Price.Equal(decimal.NewFromInt(899)))
}

func TestReadCatalogCSV_Latin1AndMissingColumn(t *testing.T) {
	raw, err := charmap.ISO8859_1.NewEncoder().String("nombre,categoria,precio,stock\nCámara,Fotografía,10,1\n")
	require.NoError(t, err)

	reqs, _, err := ReadCatalogCSV(strings.NewReader(raw), "latin1")
	require.NoError(t, err)
	require.Len(t, reqs, 1)
	assert.Equal(t, "Cámara", reqs[0].Name)

	_, _, err = ReadCatalogCSV(strings.NewReader("nombre,precio\nx,1\n"), "")
	assert.Error(t, err)
}

func TestRenderInventoryXLSX(t *testing.T) {
	data, err := NewInventoryXLSX().RenderInventory(inventoryReport())
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{InventorySheetName}, f.GetSheetList())
	rows, err := f.GetRows(InventorySheetName)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"ID", "Nombre", "Categoría", "Precio", "Stock", "Stock Mínimo", "Estado"}, rows[0])
	assert.Equal(t, []string{"p1", "Cámara Sony", "Fotografía"}, rows[1][:3])
	assert.Equal(t, "15", rows[1][4])
	assert.Equal(t, "5", rows[1][5])
	assert.Equal(t, "OK", rows[1][6])
	assert.Equal(t, "Stock Bajo", rows[2][6])

	price, err := f.GetCellValue(InventorySheetName, "D3", excelize.Options{RawCellValue: true})
	require.NoError(t, err)
	assert.Equal(t, "349.5", price)
}

func TestRenderInventoryXLSX_EmptyCatalog(t *testing.T) {
	data, err := NewInventoryXLSX().RenderInventory(&dto.InventoryReportDTO{})
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()
	rows, err := f.GetRows(InventorySheetName)
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}
