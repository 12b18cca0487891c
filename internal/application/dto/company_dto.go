package dto

import "time"

// CreateCompanyRequest entrada para crear una empresa (solo superadmin).
// AdminPassword es la contraseña inicial del administrador; se hashea en el use case.
type CreateCompanyRequest struct {
	NIT           string `json:"nit" validate:"required,min=1,max=20"`
	LegalName     string `json:"legal_name" validate:"required,min=1,max=200"`
	AdminUsername string `json:"admin_username" validate:"required,min=3,max=50"`
	AdminPassword string `json:"admin_password" validate:"required,min=8"`
	Theme         string `json:"theme"`
}

// SetActiveRequest entrada para activar/desactivar un recurso (idempotente).
type SetActiveRequest struct {
	Active bool `json:"active"`
}

// CompanyResponse salida de una empresa (sin credenciales).
type CompanyResponse struct {
	ID        string    `json:"id"`
	NIT       string    `json:"nit"`
	LegalName string    `json:"legal_name"`
	Theme     string    `json:"theme"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CompanyListResponse lista paginada de empresas.
type CompanyListResponse struct {
	Items []CompanyResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}
