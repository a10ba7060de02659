package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/vitastock/vitastock-api/internal/application/analytics"
	"github.com/vitastock/vitastock-api/internal/application/dto"
)

// ReportHandler maneja la descarga de reportes (protegido).
type ReportHandler struct {
	uc *analytics.ReportUseCase
}

// NewReportHandler construye el handler.
func NewReportHandler(uc *analytics.ReportUseCase) *ReportHandler {
	return &ReportHandler{uc: uc}
}

// ExpiryReport godoc
// @Summary      Descargar reporte de vencimientos (PDF)
// @Tags         reports
// @Security     Bearer
// @Produce      application/pdf
// @Success      200  {file}    file
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/reports/expiry [get]
func (h *ReportHandler) ExpiryReport(c *fiber.Ctx) error {
	pdfBytes, err := h.uc.GenerateExpiryReport(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	filename := "vencimientos-" + time.Now().Format("2006-01-02") + ".pdf"
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(pdfBytes)
}
