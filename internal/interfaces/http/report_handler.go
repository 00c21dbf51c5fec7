package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Bizops-api/internal/application/reporting"
	"github.com/rs/zerolog"
)

// ReportHandler expone el dashboard del módulo de reportes.
type ReportHandler struct {
	uc  *reporting.DashboardUseCase
	log zerolog.Logger
}

// NewReportHandler construye el handler.
func NewReportHandler(uc *reporting.DashboardUseCase, log zerolog.Logger) *ReportHandler {
	return &ReportHandler{uc: uc, log: log}
}

// Dashboard godoc
// @Summary      Resumen del mes en curso
// @Tags         reports
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  dto.DashboardSummary
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/reports/dashboard [get]
func (h *ReportHandler) Dashboard(c *fiber.Ctx) error {
	p, ok := GetPrincipal(c)
	if !ok {
		return unauthorized(c)
	}
	out, err := h.uc.GetSummary(c.Context(), p)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(out)
}
