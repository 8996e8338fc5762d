package domain

import "errors"

// Errores de dominio (sin dependencias externas).
// Los seis primeros son errores de entrada del cliente: se reportan de
// inmediato y no dejan rastro en el ledger ni en la proyección.
var (
	ErrInvalidType       = errors.New("tipo de movimiento inválido")
	ErrMissingField      = errors.New("campo obligatorio ausente")
	ErrInvalidQuantity   = errors.New("cantidad inválida")
	ErrUnknownProduct    = errors.New("producto no encontrado")
	ErrUnknownLocation   = errors.New("ubicación no encontrada o inactiva")
	ErrMissingLocation   = errors.New("ubicación requerida para el tipo de movimiento")
	ErrInsufficientStock = errors.New("stock insuficiente")

	// ErrDuplicateMovement no es un fallo: señala que el movement_uuid ya fue
	// aplicado y el caller debe recibir el registro original sin reaplicar.
	ErrDuplicateMovement = errors.New("movimiento duplicado")

	ErrNotFound  = errors.New("recurso no encontrado")
	ErrDuplicate = errors.New("recurso duplicado")
)
