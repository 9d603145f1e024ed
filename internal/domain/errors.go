package domain

import "errors"

// Errores de dominio (sin dependencias externas). Los mensajes son los que el
// cliente muestra tal cual en los modales, por eso van en inglés y con su
// puntuación exacta.
var (
	ErrMissingField  = errors.New("Please enter both first and last name.")
	ErrDuplicateName = errors.New("Employee name already exists.")
	ErrNotFound      = errors.New("Employee not found.")
)

// DefaultLoadError mensaje cuando la fuente externa falla sin aportar uno.
const DefaultLoadError = "Failed to fetch employees"
