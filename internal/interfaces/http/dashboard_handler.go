package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/vitastock/vitastock-api/internal/application/analytics"
	"github.com/vitastock/vitastock-api/internal/application/dto"
)

// DashboardHandler maneja las peticiones HTTP del panel de control (protegido).
type DashboardHandler struct {
	uc *analytics.DashboardUseCase
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *analytics.DashboardUseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// Summary godoc
// @Summary      Resumen completo del panel
// @Description  KPIs, series de vencimiento (7/30/90 días), distribución por
// @Description  categoría, acciones prioritarias y movimientos recientes.
// @Tags         dashboard
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.DashboardSummaryDTO
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/dashboard/summary [get]
func (h *DashboardHandler) Summary(c *fiber.Ctx) error {
	out, err := h.uc.GetSummary(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// Calendar godoc
// @Summary      Calendario de vencimientos (365 días)
// @Tags         dashboard
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.ExpiryCalendarDTO
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/dashboard/expiry-calendar [get]
func (h *DashboardHandler) Calendar(c *fiber.Ctx) error {
	out, err := h.uc.GetExpiryCalendar(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}
