package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateWorkOrderRequest entrada para crear una OT sobre un bus.
type CreateWorkOrderRequest struct {
	CompanyID   string          `json:"company_id" validate:"omitempty,uuid"`
	BusID       string          `json:"bus_id" validate:"required,uuid"`
	Type        string          `json:"type" validate:"required,oneof=mantenimiento reparacion revision"`
	Description string          `json:"description" validate:"max=500"`
	Cost        decimal.Decimal `json:"cost"`
}

// AdvanceStatusRequest entrada para avanzar el estado de una OT.
type AdvanceStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=en_proceso completada"`
}

// WorkOrderResponse salida de una OT.
type WorkOrderResponse struct {
	ID          string          `json:"id"`
	CompanyID   string          `json:"company_id"`
	BusID       string          `json:"bus_id"`
	Type        string          `json:"type"`
	Description string          `json:"description"`
	Status      string          `json:"status"`
	Cost        decimal.Decimal `json:"cost"`
	CreatedBy   string          `json:"created_by"`
	CreatedAt   time.Time       `json:"created_at"`
	CompletedAt *time.Time      `json:"completed_at"`
}

// WorkOrderListResponse lista paginada de OTs.
type WorkOrderListResponse struct {
	Items []WorkOrderResponse `json:"items"`
	Page  PageResponse        `json:"page"`
}
