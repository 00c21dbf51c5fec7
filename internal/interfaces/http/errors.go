package http

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Bizops-api/internal/application/dto"
	"github.com/jhoicas/Bizops-api/internal/domain"
	"github.com/rs/zerolog"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// bind parsea el cuerpo y valida las etiquetas validate del DTO. Si falla ya respondió 400
// y devuelve false.
func bind(c *fiber.Ctx, out any) (bool, error) {
	if err := c.BodyParser(out); err != nil {
		return false, c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := validate.Struct(out); err != nil {
		msg := "datos inválidos"
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			msg = "campo " + verrs[0].Field() + ": " + verrs[0].Tag()
		}
		return false, c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: msg})
	}
	return true, nil
}

func unauthorized(c *fiber.Ctx) error {
	return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
}

// respondError traduce los errores de dominio a HTTP. Lo no reconocido es 500 y se registra.
func respondError(c *fiber.Ctx, log zerolog.Logger, err error) error {
	status, body := fiber.StatusInternalServerError, dto.ErrorResponse{Code: "INTERNAL", Message: "error interno"}
	switch {
	case errors.Is(err, domain.ErrSlotAlreadyBooked):
		status, body = fiber.StatusConflict, dto.ErrorResponse{Code: "SLOT_TAKEN", Message: "la franja ya está reservada"}
	case errors.Is(err, domain.ErrSlotNotOffered):
		status, body = fiber.StatusUnprocessableEntity, dto.ErrorResponse{Code: "SLOT_NOT_OFFERED", Message: "la franja no está disponible para esa fecha"}
	case errors.Is(err, domain.ErrTimezoneConversion):
		status, body = fiber.StatusUnprocessableEntity, dto.ErrorResponse{Code: "TIMEZONE", Message: err.Error()}
	case errors.Is(err, domain.ErrInvalidAvailabilityWindow):
		status, body = fiber.StatusBadRequest, dto.ErrorResponse{Code: "INVALID_WINDOW", Message: err.Error()}
	case errors.Is(err, domain.ErrInvalidInput):
		status, body = fiber.StatusBadRequest, dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()}
	case errors.Is(err, domain.ErrEmailAlreadyExists):
		status, body = fiber.StatusConflict, dto.ErrorResponse{Code: "EMAIL_EXISTS", Message: "el email ya está registrado"}
	case errors.Is(err, domain.ErrDuplicate):
		status, body = fiber.StatusConflict, dto.ErrorResponse{Code: "DUPLICATE", Message: "el registro ya existe"}
	case errors.Is(err, domain.ErrConflict):
		status, body = fiber.StatusConflict, dto.ErrorResponse{Code: "CONFLICT", Message: err.Error()}
	case errors.Is(err, domain.ErrUserNotFound), errors.Is(err, domain.ErrUnauthorized):
		status, body = fiber.StatusUnauthorized, dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "credenciales inválidas"}
	case errors.Is(err, domain.ErrForbidden):
		status, body = fiber.StatusForbidden, dto.ErrorResponse{Code: "FORBIDDEN", Message: "acceso denegado al recurso"}
	case errors.Is(err, domain.ErrNotFound):
		status, body = fiber.StatusNotFound, dto.ErrorResponse{Code: "NOT_FOUND", Message: "recurso no encontrado"}
	default:
		log.Error().Err(err).Str("method", c.Method()).Str("path", c.Path()).Msg("error no controlado")
	}
	return c.Status(status).JSON(body)
}
