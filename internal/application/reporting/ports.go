package reporting

import "github.com/jhoicas/techstore-pos/internal/application/dto"

// SalesReportRenderer genera el documento descargable del reporte de ventas (PDF).
type SalesReportRenderer interface {
	RenderSalesReport(report *dto.SalesReportDTO) ([]byte, error)
}

// InventorySheetRenderer genera la planilla descargable del inventario (XLSX o CSV).
type InventorySheetRenderer interface {
	RenderInventory(report *dto.InventoryReportDTO) ([]byte, error)
}
