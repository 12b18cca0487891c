package entity

import (
	"strings"
	"time"
)

// Roles válidos para User.
const (
	RoleAdmin      = "admin"
	RoleTrabajador = "trabajador"
)

// User representa un usuario del sistema (pertenece a una Company).
// Los usuarios se desactivan, nunca se borran, para no romper la integridad
// referencial de logs y OTs.
type User struct {
	ID                 string
	CompanyID          string
	Username           string // único por empresa, comparación case-insensitive
	PasswordHash       string // bcrypt hash, nunca plano en dominio después de persistir
	Name               string
	Role               string // admin, trabajador
	Active             bool
	MustChangePassword bool // true tras un reset de contraseña; lo limpia el cambio de contraseña
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// UsernameEquals compara nombres de usuario sin distinguir mayúsculas.
func UsernameEquals(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}
