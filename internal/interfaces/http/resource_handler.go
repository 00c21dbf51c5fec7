package http

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Bizops-api/internal/application/dto"
	"github.com/jhoicas/Bizops-api/internal/domain/access"
	"github.com/jhoicas/Bizops-api/internal/domain/repository"
	"github.com/rs/zerolog"
)

// resourceService es lo que expone usecase.ResourceUseCase para un tipo.
type resourceService[T any] interface {
	List(ctx context.Context, p access.Principal, filter repository.Filter, page dto.PageRequest) ([]*T, error)
	Get(ctx context.Context, p access.Principal, id string) (*T, error)
	Create(ctx context.Context, p access.Principal, item *T) (*T, error)
	Update(ctx context.Context, p access.Principal, id string, item *T) (*T, error)
	Delete(ctx context.Context, p access.Principal, id string) error
}

// ResourceHandler expone el CRUD con alcance de un tipo de recurso.
type ResourceHandler[T any] struct {
	svc resourceService[T]
	log zerolog.Logger
}

// NewResourceHandler construye el handler.
func NewResourceHandler[T any](svc resourceService[T], log zerolog.Logger) *ResourceHandler[T] {
	return &ResourceHandler[T]{svc: svc, log: log}
}

// Mount registra GET /, GET /:id, POST /, PUT /:id y DELETE /:id en el grupo.
func (h *ResourceHandler[T]) Mount(r fiber.Router) {
	r.Get("/", h.List)
	r.Get("/:id", h.Get)
	r.Post("/", h.Create)
	r.Put("/:id", h.Update)
	r.Delete("/:id", h.Delete)
}

// List devuelve los registros visibles. Los query params distintos de limit y offset
// filtran por igualdad; un atributo desconocido es 400.
func (h *ResourceHandler[T]) List(c *fiber.Ctx) error {
	p, ok := GetPrincipal(c)
	if !ok {
		return unauthorized(c)
	}
	page := dto.PageRequest{Limit: c.QueryInt("limit", 0), Offset: c.QueryInt("offset", 0)}
	page.DefaultPage()
	filter := repository.Filter{}
	for k, v := range c.Queries() {
		if k == "limit" || k == "offset" {
			continue
		}
		filter[k] = v
	}
	items, err := h.svc.List(c.Context(), p, filter, page)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(dto.ListResponse[*T]{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	})
}

// Get devuelve un registro visible o 404.
func (h *ResourceHandler[T]) Get(c *fiber.Ctx) error {
	p, ok := GetPrincipal(c)
	if !ok {
		return unauthorized(c)
	}
	item, err := h.svc.Get(c.Context(), p, c.Params("id"))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(item)
}

// Create crea el registro; empresa y dueño salen del token, no del cuerpo.
func (h *ResourceHandler[T]) Create(c *fiber.Ctx) error {
	p, ok := GetPrincipal(c)
	if !ok {
		return unauthorized(c)
	}
	in := new(T)
	if ok, err := bind(c, in); !ok {
		return err
	}
	out, err := h.svc.Create(c.Context(), p, in)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Update reemplaza un registro visible.
func (h *ResourceHandler[T]) Update(c *fiber.Ctx) error {
	p, ok := GetPrincipal(c)
	if !ok {
		return unauthorized(c)
	}
	in := new(T)
	if ok, err := bind(c, in); !ok {
		return err
	}
	out, err := h.svc.Update(c.Context(), p, c.Params("id"), in)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(out)
}

// Delete borra un registro visible.
func (h *ResourceHandler[T]) Delete(c *fiber.Ctx) error {
	p, ok := GetPrincipal(c)
	if !ok {
		return unauthorized(c)
	}
	if err := h.svc.Delete(c.Context(), p, c.Params("id")); err != nil {
		return respondError(c, h.log, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
