package usecase

import (
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/dfcastro/Flota-api/internal/application/dto"
	"github.com/dfcastro/Flota-api/internal/domain"
	"github.com/dfcastro/Flota-api/internal/domain/entity"
	"github.com/dfcastro/Flota-api/internal/domain/repository"
	"github.com/dfcastro/Flota-api/internal/domain/session"
)

// CompanyUseCase aplica reglas de negocio para empresas (registro de tenants).
// Solo el superadmin crea, lista y activa/desactiva empresas.
type CompanyUseCase struct {
	repo     repository.CompanyRepository
	userRepo repository.UserRepository
}

// NewCompanyUseCase construye el caso de uso con los puertos de persistencia.
func NewCompanyUseCase(repo repository.CompanyRepository, userRepo repository.UserRepository) *CompanyUseCase {
	return &CompanyUseCase{repo: repo, userRepo: userRepo}
}

// Create crea una nueva empresa junto con su usuario administrador inicial.
// Devuelve domain.ErrNITDuplicado si el NIT ya existe y domain.ErrForbidden
// si la sesión no es superadmin.
func (uc *CompanyUseCase) Create(sess session.Session, in dto.CreateCompanyRequest) (*dto.CompanyResponse, error) {
	if !sess.CanManageCompanies() {
		return nil, domain.ErrForbidden
	}
	existing, err := uc.repo.GetByNIT(in.NIT)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrNITDuplicado
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	company := &entity.Company{
		ID:                uuid.New().String(),
		NIT:               in.NIT,
		LegalName:         in.LegalName,
		AdminUsername:     in.AdminUsername,
		AdminPasswordHash: string(hash),
		Theme:             in.Theme,
		Active:            true,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	if err := uc.repo.Create(company); err != nil {
		return nil, err
	}
	// El administrador inicial también existe como usuario del directorio,
	// para que el login y los listados lo vean igual que al resto.
	admin := &entity.User{
		ID:           uuid.New().String(),
		CompanyID:    company.ID,
		Username:     in.AdminUsername,
		PasswordHash: string(hash),
		Name:         in.AdminUsername,
		Role:         entity.RoleAdmin,
		Active:       true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.userRepo.Create(admin); err != nil {
		return nil, err
	}
	return entityToCompanyResponse(company), nil
}

// SetActive activa o desactiva una empresa (idempotente). La desactivación es
// lógica: la empresa nunca se borra.
func (uc *CompanyUseCase) SetActive(sess session.Session, id string, active bool) error {
	if !sess.CanManageCompanies() {
		return domain.ErrForbidden
	}
	company, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if company == nil {
		return domain.ErrNotFound
	}
	if company.Active == active {
		return nil
	}
	company.Active = active
	company.UpdatedAt = time.Now()
	return uc.repo.Update(company)
}

// GetByID obtiene una empresa. El superadmin puede pedir cualquiera; un admin
// o trabajador solo la suya.
func (uc *CompanyUseCase) GetByID(sess session.Session, id string) (*dto.CompanyResponse, error) {
	if _, err := sess.Scope(id); err != nil {
		return nil, err
	}
	company, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, nil
	}
	return entityToCompanyResponse(company), nil
}

// List lista empresas con paginación, en orden de creación. Solo superadmin.
func (uc *CompanyUseCase) List(sess session.Session, limit, offset int) (*dto.CompanyListResponse, error) {
	if !sess.CanManageCompanies() {
		return nil, domain.ErrForbidden
	}
	list, err := uc.repo.List(limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.CompanyResponse, 0, len(list))
	for _, c := range list {
		items = append(items, *entityToCompanyResponse(c))
	}
	return &dto.CompanyListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

func entityToCompanyResponse(c *entity.Company) *dto.CompanyResponse {
	if c == nil {
		return nil
	}
	return &dto.CompanyResponse{
		ID:        c.ID,
		NIT:       c.NIT,
		LegalName: c.LegalName,
		Theme:     c.Theme,
		Active:    c.Active,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}
