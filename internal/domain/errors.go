package domain

import "errors"

// Errores de dominio (sin dependencias externas).
// Los casos de uso los envuelven con fmt.Errorf("%w: ...") para agregar detalle.
var (
	ErrNotFound     = errors.New("recurso no encontrado")
	ErrInvalidInput = errors.New("entrada inválida")
	ErrInvalidUnit  = errors.New("grupo inválido, use 'kossodo' o 'kossomet'")
	ErrConflict     = errors.New("conflicto con el estado actual")
)
