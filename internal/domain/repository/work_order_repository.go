package repository

import "github.com/dfcastro/Flota-api/internal/domain/entity"

// WorkOrderRepository define el puerto de persistencia para WorkOrder/OT (DIP).
type WorkOrderRepository interface {
	Create(ot *entity.WorkOrder) error
	GetByID(id string) (*entity.WorkOrder, error)
	Update(ot *entity.WorkOrder) error
	ListByCompany(companyID string, limit, offset int) ([]*entity.WorkOrder, error)
	// ListAllByCompany devuelve todas las OTs de la empresa sin paginar, para
	// el agregado de estadísticas (una pasada, recalculado en cada consulta).
	ListAllByCompany(companyID string) ([]*entity.WorkOrder, error)
}
