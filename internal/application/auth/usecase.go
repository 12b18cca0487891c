package auth

import (
	"golang.org/x/crypto/bcrypt"

	"github.com/dfcastro/Flota-api/internal/application/dto"
	"github.com/dfcastro/Flota-api/internal/domain"
	"github.com/dfcastro/Flota-api/internal/domain/repository"
	"github.com/dfcastro/Flota-api/internal/domain/session"
	"github.com/dfcastro/Flota-api/pkg/jwt"
)

// RoleSuperAdmin es el rol del superadministrador del sistema. No aparece en
// entity porque no es asignable vía el directorio: solo lo porta el usuario
// sembrado sin empresa.
const RoleSuperAdmin = "superadmin"

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase casos de uso de autenticación. El servidor es stateless: la
// sesión viaja en el JWT y se reconstruye en cada petición, de modo que un
// logout (descartar el token en el cliente) no puede dejar estado de un rol
// anterior colgando en el proceso.
type AuthUseCase struct {
	userRepo    repository.UserRepository
	companyRepo repository.CompanyRepository
	jwtCfg      JWTConfig
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(userRepo repository.UserRepository, companyRepo repository.CompanyRepository, jwtCfg JWTConfig) *AuthUseCase {
	return &AuthUseCase{userRepo: userRepo, companyRepo: companyRepo, jwtCfg: jwtCfg}
}

// Login verifica username/password dentro de la empresa indicada por NIT
// (vacío para el superadmin del sistema), genera el JWT y retorna token +
// usuario. Usuarios o empresas desactivados no pueden iniciar sesión.
func (uc *AuthUseCase) Login(in dto.LoginRequest) (*dto.LoginResponse, error) {
	companyID := ""
	if in.CompanyNIT != "" {
		company, err := uc.companyRepo.GetByNIT(in.CompanyNIT)
		if err != nil {
			return nil, err
		}
		if company == nil {
			return nil, domain.ErrUserNotFound
		}
		if !company.Active {
			return nil, domain.ErrForbidden
		}
		companyID = company.ID
	}
	user, err := uc.userRepo.GetByUsernameAndCompany(in.Username, companyID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	if !user.Active {
		return nil, domain.ErrForbidden
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, user.CompanyID, user.Role, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		Token: token,
		User: dto.UserResponse{
			ID:                 user.ID,
			CompanyID:          user.CompanyID,
			Username:           user.Username,
			Name:               user.Name,
			Role:               user.Role,
			Active:             user.Active,
			MustChangePassword: user.MustChangePassword,
			CreatedAt:          user.CreatedAt,
			UpdatedAt:          user.UpdatedAt,
		},
	}, nil
}

// SessionFromClaims reconstruye la sesión tipada a partir de los claims del
// token. Es la única vía de entrada a un rol: un token inválido o un rol
// desconocido caen en la sesión anónima.
func SessionFromClaims(userID, companyID, role string) session.Session {
	switch session.ParseRole(role) {
	case session.SuperAdmin:
		return session.NewSuperAdmin(userID)
	case session.CompanyAdmin:
		return session.NewCompanyAdmin(userID, companyID)
	case session.Trabajador:
		return session.NewTrabajador(userID, companyID)
	default:
		return session.Anonymous()
	}
}
