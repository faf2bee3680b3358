package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrConflict           = errors.New("conflicto con el estado actual")

	// Adjuntos
	ErrUnsupportedType = errors.New("tipo de archivo no permitido")
	ErrFileTooLarge    = errors.New("el archivo supera el tamaño máximo")

	// Servicios externos (storage, email, webhook de ingesta)
	ErrUpstream = errors.New("fallo en servicio externo")
)
