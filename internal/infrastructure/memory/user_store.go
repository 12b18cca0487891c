package memory

import (
	"sync"

	"github.com/dfcastro/Flota-api/internal/domain/entity"
	"github.com/dfcastro/Flota-api/internal/domain/repository"
)

var _ repository.UserRepository = (*UserStore)(nil)

// UserStore colección en memoria de usuarios, en orden de inserción.
type UserStore struct {
	mu    sync.Mutex
	users []*entity.User
}

// NewUserStore construye el store vacío.
func NewUserStore() *UserStore {
	return &UserStore{}
}

// Create agrega un usuario.
func (s *UserStore) Create(user *entity.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	u := *user
	s.users = append(s.users, &u)
	return nil
}

// GetByID busca por ID; (nil, nil) si no existe.
func (s *UserStore) GetByID(id string) (*entity.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.ID == id {
			out := *u
			return &out, nil
		}
	}
	return nil, nil
}

// GetByUsernameAndCompany busca por username (case-insensitive) dentro de la empresa.
func (s *UserStore) GetByUsernameAndCompany(username, companyID string) (*entity.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.CompanyID == companyID && entity.UsernameEquals(u.Username, username) {
			out := *u
			return &out, nil
		}
	}
	return nil, nil
}

// Update reemplaza el usuario con el mismo ID. Sin efecto si no existe.
func (s *UserStore) Update(user *entity.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, u := range s.users {
		if u.ID == user.ID {
			upd := *user
			s.users[i] = &upd
			return nil
		}
	}
	return nil
}

// ListByCompany lista usuarios de la empresa con paginación; companyID vacío
// lista todos (superadmin).
func (s *UserStore) ListByCompany(companyID string, limit, offset int) ([]*entity.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var filtered []*entity.User
	for _, u := range s.users {
		if companyID == "" || u.CompanyID == companyID {
			filtered = append(filtered, u)
		}
	}
	return pageUsers(filtered, limit, offset), nil
}

func pageUsers(list []*entity.User, limit, offset int) []*entity.User {
	if offset >= len(list) {
		return nil
	}
	end := offset + limit
	if limit <= 0 || end > len(list) {
		end = len(list)
	}
	out := make([]*entity.User, 0, end-offset)
	for _, u := range list[offset:end] {
		cp := *u
		out = append(out, &cp)
	}
	return out
}
