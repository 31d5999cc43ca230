package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound     = errors.New("recurso no encontrado")
	ErrAmbiguous    = errors.New("la búsqueda devolvió más de un resultado")
	ErrInvalidInput = errors.New("entrada inválida")
	ErrInvalidRow   = errors.New("fila con formato inválido")
	ErrUnauthorized = errors.New("no autorizado")
	ErrForbidden    = errors.New("acceso denegado")
	ErrConflict     = errors.New("conflicto con el estado actual")
	ErrPageCeiling  = errors.New("se alcanzó el límite de páginas de la consulta")
)
