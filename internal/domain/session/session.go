// Package session modela la sesión autenticada como un tipo cerrado de roles.
// Toda operación de Registry/Directory/Store recibe la sesión y resuelve el
// tenant efectivo a través de Scope: los roles de empresa quedan confinados a
// su propio CompanyID y el superadmin opera sin restricción de tenant.
package session

import "github.com/dfcastro/Flota-api/internal/domain"

// Role es el conjunto cerrado de roles del sistema. Agregar un rol obliga a
// revisar cada switch exhaustivo que lo consume.
type Role int

const (
	// Unauthenticated es el único estado inicial; login y logout son las
	// únicas transiciones (no hay salto directo entre roles).
	Unauthenticated Role = iota
	SuperAdmin
	CompanyAdmin
	Trabajador
)

// String devuelve el nombre del rol tal como viaja en el claim JWT.
func (r Role) String() string {
	switch r {
	case SuperAdmin:
		return "superadmin"
	case CompanyAdmin:
		return "admin"
	case Trabajador:
		return "trabajador"
	default:
		return ""
	}
}

// ParseRole convierte el claim de rol en el variante cerrado.
// Un rol desconocido o vacío cae en Unauthenticated.
func ParseRole(s string) Role {
	switch s {
	case "superadmin":
		return SuperAdmin
	case "admin":
		return CompanyAdmin
	case "trabajador":
		return Trabajador
	default:
		return Unauthenticated
	}
}

// Session es el estado autenticado de una petición. CompanyID está vacío para
// SuperAdmin y Unauthenticated.
type Session struct {
	UserID    string
	Role      Role
	CompanyID string
}

// Anonymous devuelve la sesión sin autenticar.
func Anonymous() Session {
	return Session{Role: Unauthenticated}
}

// NewSuperAdmin construye la sesión del superadministrador del sistema.
func NewSuperAdmin(userID string) Session {
	return Session{UserID: userID, Role: SuperAdmin}
}

// NewCompanyAdmin construye la sesión de un administrador de empresa.
func NewCompanyAdmin(userID, companyID string) Session {
	return Session{UserID: userID, Role: CompanyAdmin, CompanyID: companyID}
}

// NewTrabajador construye la sesión de un trabajador de campo.
func NewTrabajador(userID, companyID string) Session {
	return Session{UserID: userID, Role: Trabajador, CompanyID: companyID}
}

// Scope resuelve el tenant efectivo de la operación.
//
//   - SuperAdmin: pasa requested tal cual (vacío = todas las empresas).
//   - CompanyAdmin / Trabajador: siempre su propia empresa; pedir otra
//     explícitamente es ErrForbidden.
//   - Unauthenticated: ErrUnauthorized.
func (s Session) Scope(requested string) (string, error) {
	switch s.Role {
	case SuperAdmin:
		return requested, nil
	case CompanyAdmin, Trabajador:
		if requested != "" && requested != s.CompanyID {
			return "", domain.ErrForbidden
		}
		return s.CompanyID, nil
	case Unauthenticated:
		return "", domain.ErrUnauthorized
	default:
		return "", domain.ErrUnauthorized
	}
}

// CanManageCompanies informa si la sesión puede crear/listar empresas.
// Solo el superadmin administra el registro de tenants.
func (s Session) CanManageCompanies() bool {
	return s.Role == SuperAdmin
}

// CanManageUsers informa si la sesión puede crear/editar usuarios.
func (s Session) CanManageUsers() bool {
	switch s.Role {
	case SuperAdmin, CompanyAdmin:
		return true
	case Trabajador, Unauthenticated:
		return false
	default:
		return false
	}
}

// CanManageFleet informa si la sesión puede registrar buses en la flota.
// Los trabajadores operan sobre buses existentes (mantenimientos, OTs) pero
// no alteran el inventario.
func (s Session) CanManageFleet() bool {
	switch s.Role {
	case SuperAdmin, CompanyAdmin:
		return true
	case Trabajador, Unauthenticated:
		return false
	default:
		return false
	}
}
