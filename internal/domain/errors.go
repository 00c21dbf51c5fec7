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

	// Agenda / reservas.
	ErrInvalidAvailabilityWindow = errors.New("ventana de disponibilidad inválida")
	ErrSlotAlreadyBooked         = errors.New("el horario ya está reservado")
	ErrSlotNotOffered            = errors.New("el horario no está disponible para reserva")
	ErrTimezoneConversion        = errors.New("no se pudo interpretar la fecha/hora en la zona horaria del anfitrión")
)
