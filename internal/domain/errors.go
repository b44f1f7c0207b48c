package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound         = errors.New("recurso no encontrado")
	ErrInvalidInput     = errors.New("entrada inválida")
	ErrInvalidDateRange = errors.New("rango de fechas inválido")
	ErrUnauthorized     = errors.New("no autorizado")
	ErrForbidden        = errors.New("acceso denegado")

	// ErrDataUnavailable falla de acceso a datos en una ruta de lectura.
	// Los handlers lo mapean a un error genérico; el detalle queda en el log.
	ErrDataUnavailable = errors.New("datos no disponibles")
)
