package http

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Bizops-api/internal/application/dto"
	"github.com/jhoicas/Bizops-api/internal/domain/entity"
	"github.com/rs/zerolog"
)

// moduleAdmin es lo que usa el handler de *usecase.ModuleService.
type moduleAdmin interface {
	ListModules(ctx context.Context, companyID string) ([]*entity.CompanyModule, error)
	Activate(ctx context.Context, companyID, moduleName string, expiresAt *time.Time) (*entity.CompanyModule, error)
	Deactivate(ctx context.Context, companyID, moduleName string) error
}

// CompanyHandler expone la empresa del token y sus módulos.
type CompanyHandler struct {
	companies resourceService[entity.Company]
	modules   moduleAdmin
	log       zerolog.Logger
}

// NewCompanyHandler construye el handler.
func NewCompanyHandler(companies resourceService[entity.Company], modules moduleAdmin, log zerolog.Logger) *CompanyHandler {
	return &CompanyHandler{companies: companies, modules: modules, log: log}
}

// Get devuelve la empresa del usuario.
// GET /api/company
func (h *CompanyHandler) Get(c *fiber.Ctx) error {
	p, ok := GetPrincipal(c)
	if !ok {
		return unauthorized(c)
	}
	company, err := h.companies.Get(c.Context(), p, p.TenantID)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(company)
}

// Update modifica los datos de la empresa del usuario.
// PUT /api/company
func (h *CompanyHandler) Update(c *fiber.Ctx) error {
	p, ok := GetPrincipal(c)
	if !ok {
		return unauthorized(c)
	}
	var in entity.Company
	if ok, err := bind(c, &in); !ok {
		return err
	}
	out, err := h.companies.Update(c.Context(), p, p.TenantID, &in)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(out)
}

// ListModules lista los módulos contratados.
// GET /api/company/modules
func (h *CompanyHandler) ListModules(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return unauthorized(c)
	}
	mods, err := h.modules.ListModules(c.Context(), companyID)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(dto.ListResponse[*entity.CompanyModule]{Items: mods, Page: dto.PageResponse{Limit: len(mods)}})
}

// ActivateModule activa un módulo para la empresa.
// PUT /api/company/modules/:name
func (h *CompanyHandler) ActivateModule(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return unauthorized(c)
	}
	m, err := h.modules.Activate(c.Context(), companyID, c.Params("name"), nil)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(m)
}

// DeactivateModule desactiva un módulo sin borrar su historial.
// DELETE /api/company/modules/:name
func (h *CompanyHandler) DeactivateModule(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return unauthorized(c)
	}
	if err := h.modules.Deactivate(c.Context(), companyID, c.Params("name")); err != nil {
		return respondError(c, h.log, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
