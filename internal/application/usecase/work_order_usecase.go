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

// WorkOrderUseCase aplica reglas de negocio para las Órdenes de Trabajo (OTs).
// Las transiciones de estado son solo hacia adelante; completar una OT de
// mantenimiento registra el mantenimiento en el bus asociado.
type WorkOrderUseCase struct {
	repo    repository.WorkOrderRepository
	busRepo repository.BusRepository
}

// NewWorkOrderUseCase construye el caso de uso con los puertos de persistencia.
func NewWorkOrderUseCase(repo repository.WorkOrderRepository, busRepo repository.BusRepository) *WorkOrderUseCase {
	return &WorkOrderUseCase{repo: repo, busRepo: busRepo}
}

// Create crea una OT en estado pendiente sobre un bus de la empresa efectiva.
// Devuelve domain.ErrBusInvalido si el bus no existe o pertenece a otra empresa
// (una referencia cruzada de tenant no se distingue de un bus inexistente).
func (uc *WorkOrderUseCase) Create(sess session.Session, in dto.CreateWorkOrderRequest) (*dto.WorkOrderResponse, error) {
	companyID, err := sess.Scope(in.CompanyID)
	if err != nil {
		return nil, err
	}
	bus, err := uc.busRepo.GetByID(in.BusID)
	if err != nil {
		return nil, err
	}
	if bus == nil || bus.CompanyID != companyID {
		return nil, domain.ErrBusInvalido
	}
	now := time.Now()
	ot := &entity.WorkOrder{
		ID:          uuid.New().String(),
		CompanyID:   companyID,
		BusID:       in.BusID,
		Type:        in.Type,
		Description: in.Description,
		Status:      entity.OTStatusPendiente,
		Cost:        in.Cost,
		CreatedBy:   sess.UserID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.repo.Create(ot); err != nil {
		return nil, err
	}
	return entityToWorkOrderResponse(ot), nil
}

// AdvanceStatus avanza el estado de la OT. Solo se permite
// pendiente → en_proceso → completada; cualquier otro salto devuelve
// domain.ErrTransicionInvalida. Completar estampa CompletedAt y, si la OT es
// de mantenimiento, registra la fecha como último mantenimiento del bus.
func (uc *WorkOrderUseCase) AdvanceStatus(sess session.Session, otID, next string) (*dto.WorkOrderResponse, error) {
	ot, err := uc.repo.GetByID(otID)
	if err != nil {
		return nil, err
	}
	if ot == nil {
		return nil, domain.ErrNotFound
	}
	if _, err := sess.Scope(ot.CompanyID); err != nil {
		return nil, err
	}
	if !ot.CanTransition(next) {
		return nil, domain.ErrTransicionInvalida
	}
	now := time.Now()
	ot.Status = next
	ot.UpdatedAt = now
	if next == entity.OTStatusCompletada {
		ot.CompletedAt = &now
	}
	if err := uc.repo.Update(ot); err != nil {
		return nil, err
	}
	if next == entity.OTStatusCompletada && ot.Type == entity.OTTypeMantenimiento {
		if err := uc.busRepo.SetLastMaintenance(ot.BusID, now); err != nil {
			return nil, err
		}
	}
	return entityToWorkOrderResponse(ot), nil
}

// GetByID obtiene una OT, confinada al tenant de la sesión.
func (uc *WorkOrderUseCase) GetByID(sess session.Session, otID string) (*dto.WorkOrderResponse, error) {
	ot, err := uc.repo.GetByID(otID)
	if err != nil {
		return nil, err
	}
	if ot == nil {
		return nil, nil
	}
	if _, err := sess.Scope(ot.CompanyID); err != nil {
		return nil, err
	}
	return entityToWorkOrderResponse(ot), nil
}

// List lista las OTs de la empresa efectiva con paginación.
func (uc *WorkOrderUseCase) List(sess session.Session, companyID string, limit, offset int) (*dto.WorkOrderListResponse, error) {
	effective, err := sess.Scope(companyID)
	if err != nil {
		return nil, err
	}
	list, err := uc.repo.ListByCompany(effective, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.WorkOrderResponse, 0, len(list))
	for _, ot := range list {
		items = append(items, *entityToWorkOrderResponse(ot))
	}
	return &dto.WorkOrderListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

func entityToWorkOrderResponse(ot *entity.WorkOrder) *dto.WorkOrderResponse {
	if ot == nil {
		return nil
	}
	return &dto.WorkOrderResponse{
		ID:          ot.ID,
		CompanyID:   ot.CompanyID,
		BusID:       ot.BusID,
		Type:        ot.Type,
		Description: ot.Description,
		Status:      ot.Status,
		Cost:        ot.Cost,
		CreatedBy:   ot.CreatedBy,
		CreatedAt:   ot.CreatedAt,
		CompletedAt: ot.CompletedAt,
	}
}
