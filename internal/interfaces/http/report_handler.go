package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/techstore-pos/internal/application/dto"
	"github.com/jhoicas/techstore-pos/internal/application/reporting"
	"github.com/jhoicas/techstore-pos/pkg/logger"
)

const contentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ReportHandler expone los reportes de ventas e inventario (JSON y descargables).
type ReportHandler struct {
	uc  *reporting.ReportUseCase
	log *logger.Logger
}

// NewReportHandler construye el handler.
func NewReportHandler(uc *reporting.ReportUseCase, log *logger.Logger) *ReportHandler {
	return &ReportHandler{uc: uc, log: log}
}

// Sales godoc
// @Summary      Reporte de ventas del período
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        start_date  query  string  false  "YYYY-MM-DD"
// @Param        end_date    query  string  false  "YYYY-MM-DD (inclusive)"
// @Success      200  {object}  dto.SalesReportDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/reports/sales [get]
func (h *ReportHandler) Sales(c *fiber.Ctx) error {
	var q dto.DateRangeQuery
	if !parseQuery(c, &q) {
		return nil
	}
	start, end, err := reporting.ParseDateRange(q)
	if err != nil {
		return respondError(c, h.log, err, "")
	}
	out, err := h.uc.SalesReport(c.UserContext(), start, end)
	if err != nil {
		return respondError(c, h.log, err, "")
	}
	return c.JSON(out)
}

// SalesPDF godoc
// @Summary      Descargar reporte de ventas en PDF
// @Tags         reports
// @Security     Bearer
// @Produce      application/pdf
// @Param        start_date  query  string  false  "YYYY-MM-DD"
// @Param        end_date    query  string  false  "YYYY-MM-DD (inclusive)"
// @Success      200  {file}  file
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/reports/sales/pdf [get]
func (h *ReportHandler) SalesPDF(c *fiber.Ctx) error {
	var q dto.DateRangeQuery
	if !parseQuery(c, &q) {
		return nil
	}
	start, end, err := reporting.ParseDateRange(q)
	if err != nil {
		return respondError(c, h.log, err, "")
	}
	body, filename, err := h.uc.SalesReportPDF(c.UserContext(), start, end)
	if err != nil {
		return respondError(c, h.log, err, "")
	}
	return sendAttachment(c, "application/pdf", filename, body)
}

// Inventory godoc
// @Summary      Reporte de inventario
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.InventoryReportDTO
// @Router       /api/reports/inventory [get]
func (h *ReportHandler) Inventory(c *fiber.Ctx) error {
	out, err := h.uc.InventoryReport(c.UserContext())
	if err != nil {
		return respondError(c, h.log, err, "")
	}
	return c.JSON(out)
}

// InventoryXLSX godoc
// @Summary      Descargar inventario en Excel
// @Tags         reports
// @Security     Bearer
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success      200  {file}  file
// @Router       /api/reports/inventory/xlsx [get]
func (h *ReportHandler) InventoryXLSX(c *fiber.Ctx) error {
	body, filename, err := h.uc.InventoryXLSX(c.UserContext())
	if err != nil {
		return respondError(c, h.log, err, "")
	}
	return sendAttachment(c, contentTypeXLSX, filename, body)
}

// InventoryCSV godoc
// @Summary      Descargar inventario en CSV
// @Tags         reports
// @Security     Bearer
// @Produce      text/csv
// @Success      200  {file}  file
// @Router       /api/reports/inventory/csv [get]
func (h *ReportHandler) InventoryCSV(c *fiber.Ctx) error {
	body, filename, err := h.uc.InventoryCSV(c.UserContext())
	if err != nil {
		return respondError(c, h.log, err, "")
	}
	return sendAttachment(c, "text/csv", filename, body)
}

func sendAttachment(c *fiber.Ctx, contentType, filename string, body []byte) error {
	c.Set(fiber.HeaderContentType, contentType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))
	return c.Send(body)
}
