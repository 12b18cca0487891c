package entity

import "time"

// Bus representa un vehículo de la flota de una empresa.
// LastMaintenanceDate en nil significa "nunca ha recibido mantenimiento".
type Bus struct {
	ID                  string
	CompanyID           string
	Plate               string // placa, única por empresa
	Model               string
	Capacity            int
	LastMaintenanceDate *time.Time
	Active              bool
	CreatedAt           time.Time
	UpdatedAt           time.Time
}
