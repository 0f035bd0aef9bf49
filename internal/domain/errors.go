package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrUsernameTaken      = errors.New("el username ya está en uso")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrConflict           = errors.New("conflicto con el estado actual")
	ErrInvalidTransition  = errors.New("transición de estado no permitida")
	ErrBookingConflict    = errors.New("el rango solicitado ya está reservado")
	ErrUnknownEntity      = errors.New("tipo de entidad no registrado")
	ErrUnknownModel       = errors.New("modelo de IA no registrado")
	ErrInsufficientCredits = errors.New("créditos de IA insuficientes")
	ErrBYOKRequired       = errors.New("el modelo premium requiere llave propia (BYOK)")
)
