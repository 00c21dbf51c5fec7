package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Bizops-api/internal/application/booking"
	"github.com/jhoicas/Bizops-api/internal/application/dto"
	"github.com/rs/zerolog"
)

// BookingHandler expone la agenda pública y la gestión de reservas.
type BookingHandler struct {
	svc *booking.Service
	log zerolog.Logger
}

// NewBookingHandler construye el handler.
func NewBookingHandler(svc *booking.Service, log zerolog.Logger) *BookingHandler {
	return &BookingHandler{svc: svc, log: log}
}

// Calendar godoc
// @Summary      Agenda pública de un anfitrión
// @Tags         public
// @Produce      json
// @Param        host  path  string  true  "id o slug del anfitrión"
// @Success      200   {object}  dto.CalendarResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/public/hosts/{host}/calendar [get]
func (h *BookingHandler) Calendar(c *fiber.Ctx) error {
	cal, err := h.svc.Calendar(c.Context(), c.Params("host"))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(cal)
}

// Book godoc
// @Summary      Reservar una franja
// @Tags         public
// @Accept       json
// @Produce      json
// @Param        host  path  string  true  "id o slug del anfitrión"
// @Param        body  body  dto.BookingRequest  true  "fecha, inicio, fin y datos del cliente"
// @Success      201   {object}  dto.BookingResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/public/hosts/{host}/bookings [post]
func (h *BookingHandler) Book(c *fiber.Ctx) error {
	var in dto.BookingRequest
	if ok, err := bind(c, &in); !ok {
		return err
	}
	out, err := h.svc.CreateBooking(c.Context(), c.Params("host"), in)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Cancel cancela una reserva visible para el usuario.
// POST /api/bookings/:id/cancel
func (h *BookingHandler) Cancel(c *fiber.Ctx) error {
	p, ok := GetPrincipal(c)
	if !ok {
		return unauthorized(c)
	}
	out, err := h.svc.Cancel(c.Context(), p, c.Params("id"))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(out)
}

// Reschedule mueve una reserva a otra franja ofrecida.
// POST /api/bookings/:id/reschedule
func (h *BookingHandler) Reschedule(c *fiber.Ctx) error {
	p, ok := GetPrincipal(c)
	if !ok {
		return unauthorized(c)
	}
	var in dto.RescheduleRequest
	if ok, err := bind(c, &in); !ok {
		return err
	}
	out, err := h.svc.Reschedule(c.Context(), p, c.Params("id"), in)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(out)
}
