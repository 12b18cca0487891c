package dto

import "time"

// RegisterBusRequest entrada para registrar un bus en la flota.
type RegisterBusRequest struct {
	CompanyID string `json:"company_id" validate:"omitempty,uuid"`
	Plate     string `json:"plate" validate:"required,min=3,max=10"`
	Model     string `json:"model"`
	Capacity  int    `json:"capacity" validate:"omitempty,min=1"`
}

// RecordMaintenanceRequest entrada para registrar un mantenimiento manual.
// Date vacío usa la fecha actual.
type RecordMaintenanceRequest struct {
	Date *time.Time `json:"date"`
}

// BusResponse salida de un bus. LastMaintenanceDate en null significa
// "nunca ha recibido mantenimiento".
type BusResponse struct {
	ID                  string     `json:"id"`
	CompanyID           string     `json:"company_id"`
	Plate               string     `json:"plate"`
	Model               string     `json:"model"`
	Capacity            int        `json:"capacity"`
	LastMaintenanceDate *time.Time `json:"last_maintenance_date"`
	Active              bool       `json:"active"`
	CreatedAt           time.Time  `json:"created_at"`
}

// BusListResponse lista paginada de buses.
type BusListResponse struct {
	Items []BusResponse `json:"items"`
	Page  PageResponse  `json:"page"`
}
