package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/techstore-pos/internal/application/dto"
	"github.com/jhoicas/techstore-pos/internal/application/reporting"
	"github.com/jhoicas/techstore-pos/internal/application/sales"
	"github.com/jhoicas/techstore-pos/pkg/logger"
)

// SaleHandler registra ventas y expone el libro de ventas.
type SaleHandler struct {
	register *sales.RegisterSaleUseCase
	reports  *reporting.ReportUseCase
	log      *logger.Logger
}

// NewSaleHandler construye el handler.
func NewSaleHandler(register *sales.RegisterSaleUseCase, reports *reporting.ReportUseCase, log *logger.Logger) *SaleHandler {
	return &SaleHandler{register: register, reports: reports, log: log}
}

// Register godoc
// @Summary      Registrar venta
// @Description  Valida stock, descuenta inventario y guarda la venta en una sola transacción.
// @Description  Siempre responde un RegisterSaleResponse (success=false con code y message si falla).
// @Tags         sales
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterSaleRequest  true  "Cliente opcional y líneas"
// @Success      201   {object}  dto.RegisterSaleResponse
// @Failure      400   {object}  dto.RegisterSaleResponse
// @Failure      404   {object}  dto.RegisterSaleResponse
// @Failure      409   {object}  dto.RegisterSaleResponse
// @Failure      500   {object}  dto.RegisterSaleResponse
// @Router       /api/sales [post]
func (h *SaleHandler) Register(c *fiber.Ctx) error {
	var in dto.RegisterSaleRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.RegisterSaleResponse{
			Code: "INVALID_BODY", Message: "cuerpo inválido",
		})
	}
	// líneas, notas y montos los valida RegisterSale
	sale, err := h.register.RegisterSale(c.UserContext(), GetUserID(c), in)
	if err != nil {
		f := sales.Classify(err)
		if !f.ClientError() {
			h.log.Error().Err(err).Str("operator", GetUsername(c)).Msg("registro de venta fallido")
		}
		return c.Status(f.Status).JSON(dto.RegisterSaleResponse{Code: f.Code, Message: f.Message})
	}

	h.log.Info().
		Str("sale_id", sale.ID).
		Str("operator", GetUsername(c)).
		Str("total", sale.Total.StringFixed(2)).
		Int("items", len(sale.Items)).
		Msg("venta registrada")
	total := sale.Total
	return c.Status(fiber.StatusCreated).JSON(dto.RegisterSaleResponse{
		Success: true,
		SaleID:  sale.ID,
		Total:   &total,
		Message: "Venta registrada",
		Sale:    sale,
	})
}

// GetByID godoc
// @Summary      Obtener venta con sus líneas
// @Tags         sales
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la venta"
// @Success      200  {object}  dto.SaleResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/sales/{id} [get]
func (h *SaleHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.register.GetSale(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, h.log, err, "venta no encontrada")
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar ventas por rango de fechas
// @Tags         sales
// @Security     Bearer
// @Produce      json
// @Param        start_date  query  string  false  "YYYY-MM-DD"
// @Param        end_date    query  string  false  "YYYY-MM-DD (inclusive)"
// @Success      200  {array}  dto.SaleResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/sales [get]
func (h *SaleHandler) List(c *fiber.Ctx) error {
	var q dto.DateRangeQuery
	if !parseQuery(c, &q) {
		return nil
	}
	start, end, err := reporting.ParseDateRange(q)
	if err != nil {
		return respondError(c, h.log, err, "")
	}
	out, err := h.reports.SalesInRange(c.UserContext(), start, end)
	if err != nil {
		return respondError(c, h.log, err, "")
	}
	return c.JSON(out)
}

// Recent godoc
// @Summary      Ventas más recientes
// @Tags         sales
// @Security     Bearer
// @Produce      json
// @Param        limit  query  int  false  "Máximo de ventas (1-100, por defecto 10)"
// @Success      200  {array}  dto.SaleResponse
// @Router       /api/sales/recent [get]
func (h *SaleHandler) Recent(c *fiber.Ctx) error {
	var q dto.LimitQuery
	if !parseQuery(c, &q) {
		return nil
	}
	q.DefaultLimit(reporting.DefaultRecentLimit)
	out, err := h.reports.RecentSales(c.UserContext(), q.Limit)
	if err != nil {
		return respondError(c, h.log, err, "")
	}
	return c.JSON(out)
}
