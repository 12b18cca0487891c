package repository

import "github.com/dfcastro/Flota-api/internal/domain/entity"

// CompanyRepository define el puerto de persistencia para Company (DIP).
// La implementación vive en infrastructure.
type CompanyRepository interface {
	Create(company *entity.Company) error
	GetByID(id string) (*entity.Company, error)
	GetByNIT(nit string) (*entity.Company, error)
	Update(company *entity.Company) error
	// List devuelve las empresas en orden de creación (las más antiguas primero).
	List(limit, offset int) ([]*entity.Company, error)
}
