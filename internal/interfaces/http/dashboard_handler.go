package http

import (
	"github.com/gofiber/fiber/v2"
	appanalytics "github.com/jhoicas/techstore-pos/internal/application/analytics"
	"github.com/jhoicas/techstore-pos/pkg/logger"
)

// DashboardHandler maneja los endpoints del Dashboard.
type DashboardHandler struct {
	uc  *appanalytics.DashboardUseCase
	log *logger.Logger
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *appanalytics.DashboardUseCase, log *logger.Logger) *DashboardHandler {
	return &DashboardHandler{uc: uc, log: log}
}

// GetSummary devuelve el resumen del día para la pantalla de inicio.
// GET /api/dashboard/summary
//
// Respuesta: DashboardSummaryDTO (ventas de hoy, top 5, stock bajo, ventas recientes
// y contadores). Las fechas se calculan en el servidor.
func (h *DashboardHandler) GetSummary(c *fiber.Ctx) error {
	summary, err := h.uc.GetSummary(c.UserContext())
	if err != nil {
		return respondError(c, h.log, err, "")
	}
	return c.JSON(summary)
}
