package memory

import (
	"sync"

	"github.com/dfcastro/Flota-api/internal/domain/entity"
	"github.com/dfcastro/Flota-api/internal/domain/repository"
)

var _ repository.WorkOrderRepository = (*WorkOrderStore)(nil)

// WorkOrderStore colección en memoria de OTs, en orden de inserción.
type WorkOrderStore struct {
	mu  sync.Mutex
	ots []*entity.WorkOrder
}

// NewWorkOrderStore construye el store vacío.
func NewWorkOrderStore() *WorkOrderStore {
	return &WorkOrderStore{}
}

// Create agrega una OT.
func (s *WorkOrderStore) Create(ot *entity.WorkOrder) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ots = append(s.ots, copyWorkOrder(ot))
	return nil
}

// GetByID busca por ID; (nil, nil) si no existe.
func (s *WorkOrderStore) GetByID(id string) (*entity.WorkOrder, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, ot := range s.ots {
		if ot.ID == id {
			return copyWorkOrder(ot), nil
		}
	}
	return nil, nil
}

// Update reemplaza la OT con el mismo ID. Sin efecto si no existe.
func (s *WorkOrderStore) Update(ot *entity.WorkOrder) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, existing := range s.ots {
		if existing.ID == ot.ID {
			s.ots[i] = copyWorkOrder(ot)
			return nil
		}
	}
	return nil
}

// ListByCompany lista OTs de la empresa con paginación.
func (s *WorkOrderStore) ListByCompany(companyID string, limit, offset int) ([]*entity.WorkOrder, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	filtered := s.filterByCompany(companyID)
	if offset >= len(filtered) {
		return nil, nil
	}
	end := offset + limit
	if limit <= 0 || end > len(filtered) {
		end = len(filtered)
	}
	out := make([]*entity.WorkOrder, 0, end-offset)
	for _, ot := range filtered[offset:end] {
		out = append(out, copyWorkOrder(ot))
	}
	return out, nil
}

// ListAllByCompany devuelve todas las OTs de la empresa, sin paginar.
func (s *WorkOrderStore) ListAllByCompany(companyID string) ([]*entity.WorkOrder, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	filtered := s.filterByCompany(companyID)
	out := make([]*entity.WorkOrder, 0, len(filtered))
	for _, ot := range filtered {
		out = append(out, copyWorkOrder(ot))
	}
	return out, nil
}

func (s *WorkOrderStore) filterByCompany(companyID string) []*entity.WorkOrder {
	var filtered []*entity.WorkOrder
	for _, ot := range s.ots {
		if companyID == "" || ot.CompanyID == companyID {
			filtered = append(filtered, ot)
		}
	}
	return filtered
}

func copyWorkOrder(ot *entity.WorkOrder) *entity.WorkOrder {
	cp := *ot
	if ot.CompletedAt != nil {
		d := *ot.CompletedAt
		cp.CompletedAt = &d
	}
	return &cp
}
