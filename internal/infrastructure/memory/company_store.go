// Package memory implementa los puertos de persistencia sobre colecciones en
// memoria. Es el driver de desarrollo y demos (STORE_DRIVER=memory) y el
// respaldo de los tests de casos de uso.
//
// Cada store serializa sus mutaciones con un mutex propio: una colección, un
// escritor a la vez, sin aplicar parches a medias. Los stores se construyen
// explícitamente al arrancar el proceso y se inyectan; no hay singletons ni
// estado ambiental.
package memory

import (
	"sync"

	"github.com/dfcastro/Flota-api/internal/domain/entity"
	"github.com/dfcastro/Flota-api/internal/domain/repository"
)

var _ repository.CompanyRepository = (*CompanyStore)(nil)

// CompanyStore colección en memoria de empresas, en orden de inserción.
type CompanyStore struct {
	mu        sync.Mutex
	companies []*entity.Company
}

// NewCompanyStore construye el store vacío.
func NewCompanyStore() *CompanyStore {
	return &CompanyStore{}
}

// Create agrega una empresa.
func (s *CompanyStore) Create(company *entity.Company) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := *company
	s.companies = append(s.companies, &c)
	return nil
}

// GetByID busca por ID; (nil, nil) si no existe.
func (s *CompanyStore) GetByID(id string) (*entity.Company, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, c := range s.companies {
		if c.ID == id {
			out := *c
			return &out, nil
		}
	}
	return nil, nil
}

// GetByNIT busca por NIT; (nil, nil) si no existe.
func (s *CompanyStore) GetByNIT(nit string) (*entity.Company, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, c := range s.companies {
		if c.NIT == nit {
			out := *c
			return &out, nil
		}
	}
	return nil, nil
}

// Update reemplaza la empresa con el mismo ID. Sin efecto si no existe.
func (s *CompanyStore) Update(company *entity.Company) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, c := range s.companies {
		if c.ID == company.ID {
			upd := *company
			s.companies[i] = &upd
			return nil
		}
	}
	return nil
}

// List devuelve empresas en orden de inserción con paginación.
func (s *CompanyStore) List(limit, offset int) ([]*entity.Company, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if offset >= len(s.companies) {
		return nil, nil
	}
	end := offset + limit
	if limit <= 0 || end > len(s.companies) {
		end = len(s.companies)
	}
	out := make([]*entity.Company, 0, end-offset)
	for _, c := range s.companies[offset:end] {
		cp := *c
		out = append(out, &cp)
	}
	return out, nil
}
