package repository

import (
	"time"

	"github.com/dfcastro/Flota-api/internal/domain/entity"
)

// BusRepository define el puerto de persistencia para Bus (DIP).
type BusRepository interface {
	Create(bus *entity.Bus) error
	GetByID(id string) (*entity.Bus, error)
	GetByPlateAndCompany(plate, companyID string) (*entity.Bus, error)
	Update(bus *entity.Bus) error
	// SetLastMaintenance actualiza la fecha de último mantenimiento del bus.
	SetLastMaintenance(busID string, date time.Time) error
	ListByCompany(companyID string, limit, offset int) ([]*entity.Bus, error)
	// ListAllByCompany devuelve todos los buses de la empresa sin paginar,
	// para el motor de urgencias (recalcula sobre la flota completa).
	ListAllByCompany(companyID string) ([]*entity.Bus, error)
}
