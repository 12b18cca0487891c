package repository

import "github.com/dfcastro/Flota-api/internal/domain/entity"

// UserRepository define el puerto de persistencia para User (DIP).
type UserRepository interface {
	Create(user *entity.User) error
	GetByID(id string) (*entity.User, error)
	// GetByUsernameAndCompany busca por username (case-insensitive) dentro de una empresa.
	GetByUsernameAndCompany(username, companyID string) (*entity.User, error)
	Update(user *entity.User) error
	// ListByCompany lista los usuarios de una empresa; companyID vacío lista todos
	// (solo tiene sentido para el superadmin).
	ListByCompany(companyID string, limit, offset int) ([]*entity.User, error)
}
