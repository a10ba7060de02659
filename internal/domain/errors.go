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

	// Errores del motor de movimientos.
	ErrInvalidQuantity    = errors.New("la cantidad debe ser mayor o igual a 1")
	ErrInvalidDestination = errors.New("destino de traslado inválido")
	ErrInsufficientStock  = errors.New("stock insuficiente en el lote")
	ErrBatchHasMovements  = errors.New("el lote tiene movimientos registrados")
)
