package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/dfcastro/Flota-api/internal/application/analytics"
)

// DashboardHandler maneja el panel de la empresa (urgencias de flota y agregado de OTs).
type DashboardHandler struct {
	uc *analytics.DashboardUseCase
}

// NewDashboardHandler construye el handler inyectando el caso de uso.
func NewDashboardHandler(uc *analytics.DashboardUseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// Get godoc
// @Summary      Panel de la empresa
// @Description  Buses ordenados por días sin mantenimiento (descendente) y estadísticas de OTs.
// @Tags         dashboard
// @Produce      json
// @Param        company_id  query  string  false  "Empresa (solo superadmin)"
// @Success      200         {object}  dto.DashboardResponse
// @Failure      403         {object}  dto.ErrorResponse
// @Security     BearerAuth
// @Router       /api/dashboard [get]
func (h *DashboardHandler) Get(c *fiber.Ctx) error {
	out, err := h.uc.GetDashboard(GetSession(c), c.Query("company_id"))
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(out)
}
