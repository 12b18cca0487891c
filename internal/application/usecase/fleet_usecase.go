package usecase

import (
	"time"

	"github.com/google/uuid"

	"github.com/dfcastro/Flota-api/internal/application/dto"
	"github.com/dfcastro/Flota-api/internal/domain"
	"github.com/dfcastro/Flota-api/internal/domain/entity"
	"github.com/dfcastro/Flota-api/internal/domain/repository"
	"github.com/dfcastro/Flota-api/internal/domain/session"
)

// FleetUseCase aplica reglas de negocio para la flota de buses de una empresa.
type FleetUseCase struct {
	repo repository.BusRepository
}

// NewFleetUseCase construye el caso de uso con el puerto de persistencia.
func NewFleetUseCase(repo repository.BusRepository) *FleetUseCase {
	return &FleetUseCase{repo: repo}
}

// RegisterBus registra un bus en la empresa efectiva de la sesión.
// Devuelve domain.ErrPlacaDuplicada si la placa ya existe en esa empresa.
func (uc *FleetUseCase) RegisterBus(sess session.Session, in dto.RegisterBusRequest) (*dto.BusResponse, error) {
	if !sess.CanManageFleet() {
		return nil, domain.ErrForbidden
	}
	companyID, err := sess.Scope(in.CompanyID)
	if err != nil {
		return nil, err
	}
	existing, err := uc.repo.GetByPlateAndCompany(in.Plate, companyID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrPlacaDuplicada
	}
	now := time.Now()
	bus := &entity.Bus{
		ID:        uuid.New().String(),
		CompanyID: companyID,
		Plate:     in.Plate,
		Model:     in.Model,
		Capacity:  in.Capacity,
		Active:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(bus); err != nil {
		return nil, err
	}
	return entityToBusResponse(bus), nil
}

// RecordMaintenance actualiza la fecha de último mantenimiento del bus.
// Devuelve domain.ErrInvalidInput si la fecha es futura, domain.ErrNotFound
// si el bus no existe y domain.ErrForbidden si pertenece a otra empresa.
func (uc *FleetUseCase) RecordMaintenance(sess session.Session, busID string, date time.Time) error {
	// Una fecha futura almacenada rompería el cálculo de días sin
	// mantenimiento en todos los dashboards de la empresa.
	if date.After(time.Now()) {
		return domain.ErrInvalidInput
	}
	bus, err := uc.repo.GetByID(busID)
	if err != nil {
		return err
	}
	if bus == nil {
		return domain.ErrNotFound
	}
	if _, err := sess.Scope(bus.CompanyID); err != nil {
		return err
	}
	return uc.repo.SetLastMaintenance(busID, date)
}

// GetByID obtiene un bus, confinado al tenant de la sesión.
func (uc *FleetUseCase) GetByID(sess session.Session, busID string) (*dto.BusResponse, error) {
	bus, err := uc.repo.GetByID(busID)
	if err != nil {
		return nil, err
	}
	if bus == nil {
		return nil, nil
	}
	if _, err := sess.Scope(bus.CompanyID); err != nil {
		return nil, err
	}
	return entityToBusResponse(bus), nil
}

// ListBuses lista los buses de la empresa efectiva con paginación.
func (uc *FleetUseCase) ListBuses(sess session.Session, companyID string, limit, offset int) (*dto.BusListResponse, error) {
	effective, err := sess.Scope(companyID)
	if err != nil {
		return nil, err
	}
	list, err := uc.repo.ListByCompany(effective, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.BusResponse, 0, len(list))
	for _, b := range list {
		items = append(items, *entityToBusResponse(b))
	}
	return &dto.BusListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

func entityToBusResponse(b *entity.Bus) *dto.BusResponse {
	if b == nil {
		return nil
	}
	return &dto.BusResponse{
		ID:                  b.ID,
		CompanyID:           b.CompanyID,
		Plate:               b.Plate,
		Model:               b.Model,
		Capacity:            b.Capacity,
		LastMaintenanceDate: b.LastMaintenanceDate,
		Active:              b.Active,
		CreatedAt:           b.CreatedAt,
	}
}
