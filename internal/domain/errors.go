package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrBusNotFound        = errors.New("bus no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrNITDuplicado       = errors.New("el NIT ya está registrado")
	ErrUsuarioDuplicado   = errors.New("el nombre de usuario ya existe en la empresa")
	ErrPlacaDuplicada     = errors.New("la placa ya está registrada en la empresa")
	ErrBusInvalido        = errors.New("el bus no pertenece a la empresa")
	ErrTransicionInvalida = errors.New("transición de estado de OT inválida")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
)
