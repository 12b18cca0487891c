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

// TempPassword es la contraseña temporal fija que asigna el reset. El usuario
// queda marcado con MustChangePassword; la exigencia del cambio la aplica la
// capa de presentación, no el directorio.
const TempPassword = "Temporal123*"

// UserUseCase aplica reglas de negocio para el directorio de usuarios.
// Todas las operaciones quedan confinadas al tenant de la sesión salvo para
// el superadmin.
type UserUseCase struct {
	repo        repository.UserRepository
	companyRepo repository.CompanyRepository
}

// NewUserUseCase construye el caso de uso con los puertos de persistencia.
func NewUserUseCase(repo repository.UserRepository, companyRepo repository.CompanyRepository) *UserUseCase {
	return &UserUseCase{repo: repo, companyRepo: companyRepo}
}

// Create crea un usuario en la empresa efectiva de la sesión. Devuelve
// domain.ErrUsuarioDuplicado si el username ya existe (sin distinguir
// mayúsculas) dentro de esa empresa; el mismo username en otra empresa es válido.
func (uc *UserUseCase) Create(sess session.Session, in dto.CreateUserRequest) (*dto.UserResponse, error) {
	if !sess.CanManageUsers() {
		return nil, domain.ErrForbidden
	}
	companyID, err := sess.Scope(in.CompanyID)
	if err != nil {
		return nil, err
	}
	company, err := uc.companyRepo.GetByID(companyID)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, domain.ErrNotFound
	}
	existing, err := uc.repo.GetByUsernameAndCompany(in.Username, companyID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrUsuarioDuplicado
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	user := &entity.User{
		ID:           uuid.New().String(),
		CompanyID:    companyID,
		Username:     in.Username,
		PasswordHash: string(hash),
		Name:         in.Name,
		Role:         in.Role,
		Active:       true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.repo.Create(user); err != nil {
		return nil, err
	}
	return entityToUserResponse(user), nil
}

// Edit aplica un patch de campos al usuario. CompanyID no es editable: un
// usuario no cambia de empresa. Si el patch cambia el username se vuelve a
// validar la unicidad dentro de la empresa.
func (uc *UserUseCase) Edit(sess session.Session, userID string, in dto.EditUserRequest) (*dto.UserResponse, error) {
	if !sess.CanManageUsers() {
		return nil, domain.ErrForbidden
	}
	user, err := uc.repo.GetByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	if _, err := sess.Scope(user.CompanyID); err != nil {
		return nil, err
	}
	if in.Username != nil && !entity.UsernameEquals(*in.Username, user.Username) {
		existing, err := uc.repo.GetByUsernameAndCompany(*in.Username, user.CompanyID)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return nil, domain.ErrUsuarioDuplicado
		}
		user.Username = *in.Username
	}
	if in.Name != nil {
		user.Name = *in.Name
	}
	if in.Role != nil {
		user.Role = *in.Role
	}
	user.UpdatedAt = time.Now()
	if err := uc.repo.Update(user); err != nil {
		return nil, err
	}
	return entityToUserResponse(user), nil
}

// SetActive activa o desactiva un usuario (idempotente). Los usuarios nunca se
// borran, para preservar la integridad referencial de logs y OTs.
func (uc *UserUseCase) SetActive(sess session.Session, userID string, active bool) error {
	if !sess.CanManageUsers() {
		return domain.ErrForbidden
	}
	user, err := uc.repo.GetByID(userID)
	if err != nil {
		return err
	}
	if user == nil {
		return domain.ErrUserNotFound
	}
	if _, err := sess.Scope(user.CompanyID); err != nil {
		return err
	}
	if user.Active == active {
		return nil
	}
	user.Active = active
	user.UpdatedAt = time.Now()
	return uc.repo.Update(user)
}

// ResetPassword asigna la contraseña temporal fija y marca al usuario para que
// la cambie en su siguiente inicio de sesión.
func (uc *UserUseCase) ResetPassword(sess session.Session, userID string) (*dto.UserResponse, error) {
	if !sess.CanManageUsers() {
		return nil, domain.ErrForbidden
	}
	user, err := uc.repo.GetByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	if _, err := sess.Scope(user.CompanyID); err != nil {
		return nil, err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(TempPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	user.PasswordHash = string(hash)
	user.MustChangePassword = true
	user.UpdatedAt = time.Now()
	if err := uc.repo.Update(user); err != nil {
		return nil, err
	}
	return entityToUserResponse(user), nil
}

// ChangePassword cambia la contraseña del propio usuario de la sesión y limpia
// la marca MustChangePassword.
func (uc *UserUseCase) ChangePassword(sess session.Session, in dto.ChangePasswordRequest) error {
	if sess.Role == session.Unauthenticated {
		return domain.ErrUnauthorized
	}
	user, err := uc.repo.GetByID(sess.UserID)
	if err != nil {
		return err
	}
	if user == nil {
		return domain.ErrUserNotFound
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.CurrentPassword)); err != nil {
		return domain.ErrUnauthorized
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	user.PasswordHash = string(hash)
	user.MustChangePassword = false
	user.UpdatedAt = time.Now()
	return uc.repo.Update(user)
}

// ListByCompany lista los usuarios de la empresa efectiva. El superadmin puede
// pasar cualquier companyID, o vacío para listar todos los usuarios del sistema.
func (uc *UserUseCase) ListByCompany(sess session.Session, companyID string, limit, offset int) (*dto.UserListResponse, error) {
	effective, err := sess.Scope(companyID)
	if err != nil {
		return nil, err
	}
	list, err := uc.repo.ListByCompany(effective, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.UserResponse, 0, len(list))
	for _, u := range list {
		items = append(items, *entityToUserResponse(u))
	}
	return &dto.UserListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

func entityToUserResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	return &dto.UserResponse{
		ID:                 u.ID,
		CompanyID:          u.CompanyID,
		Username:           u.Username,
		Name:               u.Name,
		Role:               u.Role,
		Active:             u.Active,
		MustChangePassword: u.MustChangePassword,
		CreatedAt:          u.CreatedAt,
		UpdatedAt:          u.UpdatedAt,
	}
}
