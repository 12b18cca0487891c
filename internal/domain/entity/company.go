package entity

import "time"

// Company representa una empresa de transporte/tenant del sistema (multi-tenant, enfoque Colombia).
// La desactivación es lógica (Active=false); nunca se borra para preservar la trazabilidad
// de usuarios, buses y OTs que la referencian.
type Company struct {
	ID                string
	NIT               string // NIT colombiano, único en todo el sistema
	LegalName         string
	AdminUsername     string // credenciales iniciales del administrador de la empresa
	AdminPasswordHash string
	Theme             string // personalización de color de la UI, ej: "azul", "verde"
	Active            bool
	CreatedAt         time.Time
	UpdatedAt         time.Time
}
