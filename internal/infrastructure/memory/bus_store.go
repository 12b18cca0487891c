package memory

import (
	"strings"
	"sync"
	"time"

	"github.com/dfcastro/Flota-api/internal/domain/entity"
	"github.com/dfcastro/Flota-api/internal/domain/repository"
)

var _ repository.BusRepository = (*BusStore)(nil)

// BusStore colección en memoria de buses, en orden de inserción.
type BusStore struct {
	mu    sync.Mutex
	buses []*entity.Bus
}

// NewBusStore construye el store vacío.
func NewBusStore() *BusStore {
	return &BusStore{}
}

// Create agrega un bus.
func (s *BusStore) Create(bus *entity.Bus) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	b := copyBus(bus)
	s.buses = append(s.buses, b)
	return nil
}

// GetByID busca por ID; (nil, nil) si no existe.
func (s *BusStore) GetByID(id string) (*entity.Bus, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, b := range s.buses {
		if b.ID == id {
			return copyBus(b), nil
		}
	}
	return nil, nil
}

// GetByPlateAndCompany busca por placa (sin distinguir mayúsculas) dentro de la empresa.
func (s *BusStore) GetByPlateAndCompany(plate, companyID string) (*entity.Bus, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, b := range s.buses {
		if b.CompanyID == companyID && strings.EqualFold(b.Plate, plate) {
			return copyBus(b), nil
		}
	}
	return nil, nil
}

// Update reemplaza el bus con el mismo ID. Sin efecto si no existe.
func (s *BusStore) Update(bus *entity.Bus) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, b := range s.buses {
		if b.ID == bus.ID {
			s.buses[i] = copyBus(bus)
			return nil
		}
	}
	return nil
}

// SetLastMaintenance actualiza la fecha de último mantenimiento.
func (s *BusStore) SetLastMaintenance(busID string, date time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, b := range s.buses {
		if b.ID == busID {
			d := date
			b.LastMaintenanceDate = &d
			b.UpdatedAt = time.Now()
			return nil
		}
	}
	return nil
}

// ListByCompany lista buses de la empresa con paginación.
func (s *BusStore) ListByCompany(companyID string, limit, offset int) ([]*entity.Bus, error) {
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
	out := make([]*entity.Bus, 0, end-offset)
	for _, b := range filtered[offset:end] {
		out = append(out, copyBus(b))
	}
	return out, nil
}

// ListAllByCompany devuelve todos los buses de la empresa, sin paginar.
func (s *BusStore) ListAllByCompany(companyID string) ([]*entity.Bus, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	filtered := s.filterByCompany(companyID)
	out := make([]*entity.Bus, 0, len(filtered))
	for _, b := range filtered {
		out = append(out, copyBus(b))
	}
	return out, nil
}

func (s *BusStore) filterByCompany(companyID string) []*entity.Bus {
	var filtered []*entity.Bus
	for _, b := range s.buses {
		if companyID == "" || b.CompanyID == companyID {
			filtered = append(filtered, b)
		}
	}
	return filtered
}

func copyBus(b *entity.Bus) *entity.Bus {
	cp := *b
	if b.LastMaintenanceDate != nil {
		d := *b.LastMaintenanceDate
		cp.LastMaintenanceDate = &d
	}
	return &cp
}
