package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/techstore-pos/internal/application/dto"
	"github.com/jhoicas/techstore-pos/internal/application/reporting"
)

// InventorySheetName hoja única del libro de inventario.
const InventorySheetName = "Inventario"

// ContentTypeXLSX MIME del libro generado.
const ContentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

var inventoryXLSXHeader = []any{"ID", "Nombre", "Categoría", "Precio", "Stock", "Stock Mínimo", "Estado"}

var _ reporting.InventorySheetRenderer = (*InventoryXLSX)(nil)

// InventoryXLSX genera el inventario como libro de Excel.
type InventoryXLSX struct{}

// NewInventoryXLSX construye el exportador.
func NewInventoryXLSX() *InventoryXLSX {
	return &InventoryXLSX{}
}

// RenderInventory escribe la cabecera en la fila 1 y un producto por fila desde la 2.
func (e *InventoryXLSX) RenderInventory(report *dto.InventoryReportDTO) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), InventorySheetName); err != nil {
		return nil, fmt.Errorf("export: hoja: %w", err)
	}
	if err := f.SetSheetRow(InventorySheetName, "A1", &inventoryXLSXHeader); err != nil {
		return nil, fmt.Errorf("export: cabecera: %w", err)
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, fmt.Errorf("export: estilo: %w", err)
	}
	if err := f.SetRowStyle(InventorySheetName, 1, 1, bold); err != nil {
		return nil, fmt.Errorf("export: estilo cabecera: %w", err)
	}

	for i, p := range report.Products {
		status := "OK"
		if p.LowStock {
			status = "Stock Bajo"
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, fmt.Errorf("export: celda: %w", err)
		}
		row := []any{
			p.ID,
			p.Name,
			p.Category,
			p.Price.Round(2).InexactFloat64(),
			p.Stock,
			p.LowStockThreshold,
			status,
		}
		if err := f.SetSheetRow(InventorySheetName, cell, &row); err != nil {
			return nil, fmt.Errorf("export: producto %s: %w", p.ID, err)
		}
	}

	// 0.00
	money, err := f.NewStyle(&excelize.Style{NumFmt: 2})
	if err != nil {
		return nil, fmt.Errorf("export: estilo: %w", err)
	}
	if len(report.Products) > 0 {
		last := fmt.Sprintf("D%d", len(report.Products)+1)
		if err := f.SetCellStyle(InventorySheetName, "D2", last, money); err != nil {
			return nil, fmt.Errorf("export: formato precio: %w", err)
		}
	}
	if err := f.SetColWidth(InventorySheetName, "B", "C", 28); err != nil {
		return nil, fmt.Errorf("export: ancho: %w", err)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("export: escribir libro: %w", err)
	}
	return buf.Bytes(), nil
}
