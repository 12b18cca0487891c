package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/dfcastro/Flota-api/internal/application/report"
)

// ReportHandler maneja la descarga de informes PDF de la flota.
type ReportHandler struct {
	uc *report.ReportUseCase
}

// NewReportHandler construye el handler inyectando el caso de uso.
func NewReportHandler(uc *report.ReportUseCase) *ReportHandler {
	return &ReportHandler{uc: uc}
}

// FleetPDF godoc
// @Summary      Descargar informe de flota en PDF
// @Description  Estado de mantenimiento de todos los buses y resumen de OTs de la empresa.
// @Tags         reports
// @Produce      application/pdf
// @Param        company_id  query  string  false  "Empresa (solo superadmin)"
// @Success      200  {file}  binary
// @Failure      404  {object}  dto.ErrorResponse
// @Security     BearerAuth
// @Router       /api/reports/fleet.pdf [get]
func (h *ReportHandler) FleetPDF(c *fiber.Ctx) error {
	pdf, filename, err := h.uc.DownloadFleetReport(c.Context(), GetSession(c), c.Query("company_id"))
	if err != nil {
		return domainError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))
	return c.Send(pdf)
}
