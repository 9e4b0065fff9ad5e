package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound     = errors.New("recurso no encontrado")
	ErrInvalidInput = errors.New("entrada inválida")
	ErrDuplicate    = errors.New("recurso duplicado")
	ErrUnknownLine  = errors.New("la orden referencia una línea inexistente")
	ErrUnauthorized = errors.New("no autorizado")
	ErrForbidden    = errors.New("acceso denegado")

	// ErrInvalidMove un movimiento fuera de rango (posición, línea u orden ajena al plan).
	ErrInvalidMove = errors.New("movimiento inválido")
	// ErrInvariantViolation el estado derivado no coincide con las secuencias de las líneas.
	// Es un error de programación del optimizador: el movimiento se aborta sin recuperación parcial.
	ErrInvariantViolation = errors.New("invariante del plan violado")
	// ErrScoreCorruption el puntaje incremental difiere del recálculo completo (modo full_assert).
	ErrScoreCorruption = errors.New("puntaje incremental corrupto")
)
