package dto

import "time"

// CreateUserRequest entrada para crear un usuario (password en texto, se hashea en use case).
// CompanyID es opcional para admins de empresa (se toma de la sesión); el superadmin
// debe indicarlo explícitamente.
type CreateUserRequest struct {
	CompanyID string `json:"company_id" validate:"omitempty,uuid"`
	Username  string `json:"username" validate:"required,min=3,max=50"`
	Password  string `json:"password" validate:"required,min=8"`
	Name      string `json:"name" validate:"required,min=1,max=200"`
	Role      string `json:"role" validate:"required,oneof=admin trabajador"`
}

// EditUserRequest entrada para editar un usuario (campos opcionales, merge).
// CompanyID no es editable.
type EditUserRequest struct {
	Name     *string `json:"name" validate:"omitempty,min=1,max=200"`
	Username *string `json:"username" validate:"omitempty,min=3,max=50"`
	Role     *string `json:"role" validate:"omitempty,oneof=admin trabajador"`
}

// UserResponse salida de un usuario (sin password).
type UserResponse struct {
	ID                 string    `json:"id"`
	CompanyID          string    `json:"company_id"`
	Username           string    `json:"username"`
	Name               string    `json:"name"`
	Role               string    `json:"role"`
	Active             bool      `json:"active"`
	MustChangePassword bool      `json:"must_change_password"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// UserListResponse lista paginada de usuarios.
type UserListResponse struct {
	Items []UserResponse `json:"items"`
	Page  PageResponse   `json:"page"`
}

// LoginRequest entrada para login. CompanyNIT identifica la empresa del usuario;
// vacío para el superadmin del sistema.
type LoginRequest struct {
	Username   string `json:"username" validate:"required"`
	Password   string `json:"password" validate:"required"`
	CompanyNIT string `json:"company_nit"`
}

// LoginResponse salida con token JWT.
type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

// ChangePasswordRequest entrada para cambiar la contraseña propia.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required,min=8"`
}
