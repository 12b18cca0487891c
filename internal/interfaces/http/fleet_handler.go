package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/dfcastro/Flota-api/internal/application/dto"
	"github.com/dfcastro/Flota-api/internal/application/usecase"
)

// FleetHandler maneja las peticiones HTTP para los buses de la flota.
type FleetHandler struct {
	uc *usecase.FleetUseCase
}

// NewFleetHandler construye el handler inyectando el caso de uso.
func NewFleetHandler(uc *usecase.FleetUseCase) *FleetHandler {
	return &FleetHandler{uc: uc}
}

// Register godoc
// @Summary      Registrar bus
// @Description  Da de alta un bus sin mantenimientos previos (last_maintenance_date en null).
// @Tags         fleet
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterBusRequest  true  "Datos del bus"
// @Success      201   {object}  dto.BusResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Security     BearerAuth
// @Router       /api/buses [post]
func (h *FleetHandler) Register(c *fiber.Ctx) error {
	var in dto.RegisterBusRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.Plate == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "plate es requerido"})
	}
	out, err := h.uc.RegisterBus(GetSession(c), in)
	if err != nil {
		return domainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener bus por ID
// @Tags         fleet
// @Produce      json
// @Param        id   path  string  true  "ID del bus"
// @Success      200  {object}  dto.BusResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Security     BearerAuth
// @Router       /api/buses/{id} [get]
func (h *FleetHandler) GetByID(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	out, err := h.uc.GetByID(GetSession(c), id)
	if err != nil {
		return domainError(c, err)
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "bus no encontrado"})
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar buses de la empresa
// @Tags         fleet
// @Produce      json
// @Param        company_id  query  string  false  "Empresa (solo superadmin)"
// @Param        limit       query  int     false  "Límite"   default(20)
// @Param        offset      query  int     false  "Offset"   default(0)
// @Success      200         {object}  dto.BusListResponse
// @Security     BearerAuth
// @Router       /api/buses [get]
func (h *FleetHandler) List(c *fiber.Ctx) error {
	page := pageFromQuery(c)
	out, err := h.uc.ListBuses(GetSession(c), c.Query("company_id"), page.Limit, page.Offset)
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(out)
}

// RecordMaintenance godoc
// @Summary      Registrar mantenimiento de un bus
// @Description  Actualiza la fecha de último mantenimiento. Sin fecha en el cuerpo usa la actual.
// @Tags         fleet
// @Accept       json
// @Param        id    path  string                        true  "ID del bus"
// @Param        body  body  dto.RecordMaintenanceRequest  false "Fecha del mantenimiento"
// @Success      204
// @Failure      404   {object}  dto.ErrorResponse
// @Security     BearerAuth
// @Router       /api/buses/{id}/maintenance [post]
func (h *FleetHandler) RecordMaintenance(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	var in dto.RecordMaintenanceRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&in); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
		}
	}
	date := time.Now()
	if in.Date != nil {
		date = *in.Date
	}
	if err := h.uc.RecordMaintenance(GetSession(c), id, date); err != nil {
		return domainError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
