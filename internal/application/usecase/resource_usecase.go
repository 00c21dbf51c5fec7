package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/Bizops-api/internal/application/dto"
	"github.com/jhoicas/Bizops-api/internal/application/gateway"
	"github.com/jhoicas/Bizops-api/internal/domain"
	"github.com/jhoicas/Bizops-api/internal/domain/access"
	"github.com/jhoicas/Bizops-api/internal/domain/repository"
)

// Entity es lo que un recurso debe saber hacer para pasar por ResourceUseCase.
type Entity[T any] interface {
	*T
	repository.Record
	SetID(id string)
	Stamp(companyID, userID string)
	KeepOwnership(prev *T)
	Touch(now time.Time)
}

// ResourceOption ajusta un ResourceUseCase.
type ResourceOption[T any] func(*resourceOptions[T])

type resourceOptions[T any] struct {
	validate   func(ctx context.Context, item *T) error
	afterWrite func(ctx context.Context, prev, next *T)
	now        func() time.Time
}

// WithValidator valida (y puede normalizar) cada registro antes de crearlo o actualizarlo.
func WithValidator[T any](fn func(ctx context.Context, item *T) error) ResourceOption[T] {
	return func(o *resourceOptions[T]) { o.validate = fn }
}

// WithAfterWrite se invoca tras cada creación, actualización o borrado exitoso con el
// estado anterior y el nuevo: prev es nil al crear y next es nil al borrar.
func WithAfterWrite[T any](fn func(ctx context.Context, prev, next *T)) ResourceOption[T] {
	return func(o *resourceOptions[T]) { o.afterWrite = fn }
}

// WithClock reemplaza el reloj (pruebas).
func WithClock[T any](now func() time.Time) ResourceOption[T] {
	return func(o *resourceOptions[T]) { o.now = now }
}

// ResourceUseCase es el CRUD de un tipo de recurso. Toda lectura, actualización y borrado
// pasa por el repositorio con alcance del principal; la creación estampa empresa y dueño
// desde el principal y se autoriza antes de persistir.
type ResourceUseCase[T any, PT Entity[T]] struct {
	gw   *gateway.Gateway
	kind access.Kind
	raw  repository.Repository[T]
	pick func(*gateway.Scope) *access.Scoped[T]
	opts resourceOptions[T]
}

// NewResourceUseCase construye el CRUD. raw es el repositorio sin alcance y solo se usa para
// distinguir 403 de 404; pick elige el repositorio con alcance dentro de un gateway.Scope.
func NewResourceUseCase[T any, PT Entity[T]](
	gw *gateway.Gateway,
	kind access.Kind,
	raw repository.Repository[T],
	pick func(*gateway.Scope) *access.Scoped[T],
	opts ...ResourceOption[T],
) *ResourceUseCase[T, PT] {
	o := resourceOptions[T]{now: time.Now}
	for _, fn := range opts {
		fn(&o)
	}
	return &ResourceUseCase[T, PT]{gw: gw, kind: kind, raw: raw, pick: pick, opts: o}
}

// Kind devuelve el tipo de recurso que maneja el caso de uso.
func (uc *ResourceUseCase[T, PT]) Kind() access.Kind { return uc.kind }

func (uc *ResourceUseCase[T, PT]) repo(p access.Principal) *access.Scoped[T] {
	return uc.pick(uc.gw.Scoped(p))
}

// List devuelve los registros visibles para el principal que además cumplen el filtro.
func (uc *ResourceUseCase[T, PT]) List(ctx context.Context, p access.Principal, filter repository.Filter, page dto.PageRequest) ([]*T, error) {
	page.DefaultPage()
	return uc.repo(p).FindMany(ctx, filter, repository.ListOptions{Limit: page.Limit, Offset: page.Offset})
}

// Get devuelve un registro visible o domain.ErrNotFound. No revela si existe fuera del alcance.
func (uc *ResourceUseCase[T, PT]) Get(ctx context.Context, p access.Principal, id string) (*T, error) {
	if id == "" {
		return nil, domain.ErrInvalidInput
	}
	item, err := uc.repo(p).FindOne(ctx, repository.Filter{"id": id})
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}
	return item, nil
}

// Create estampa empresa y dueño desde el principal, valida y persiste.
func (uc *ResourceUseCase[T, PT]) Create(ctx context.Context, p access.Principal, item *T) (*T, error) {
	pt := PT(item)
	pt.SetID(uuid.NewString())
	pt.Stamp(p.TenantID, p.ID)
	pt.Touch(uc.opts.now())
	if company, scoped := pt.Attributes()["company_id"]; scoped && company == "" {
		return nil, fmt.Errorf("%s: company_id requerido: %w", uc.kind, domain.ErrInvalidInput)
	}
	if uc.opts.validate != nil {
		if err := uc.opts.validate(ctx, item); err != nil {
			return nil, err
		}
	}
	if !uc.gw.AuthorizeFor(p, pt, uc.kind, access.OpWrite) {
		return nil, domain.ErrForbidden
	}
	if err := uc.repo(p).Create(ctx, item); err != nil {
		return nil, err
	}
	uc.written(ctx, nil, item)
	return item, nil
}

// Update reemplaza un registro visible conservando su propiedad.
func (uc *ResourceUseCase[T, PT]) Update(ctx context.Context, p access.Principal, id string, item *T) (*T, error) {
	if id == "" {
		return nil, domain.ErrInvalidInput
	}
	repo := uc.repo(p)
	prev, err := repo.FindOne(ctx, repository.Filter{"id": id})
	if err != nil {
		return nil, err
	}
	if prev == nil {
		return nil, uc.missing(ctx, p, id)
	}
	pt := PT(item)
	pt.KeepOwnership(prev)
	pt.Touch(uc.opts.now())
	if uc.opts.validate != nil {
		if err := uc.opts.validate(ctx, item); err != nil {
			return nil, err
		}
	}
	n, err := repo.Update(ctx, repository.Filter{"id": id}, item)
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, uc.missing(ctx, p, id)
	}
	uc.written(ctx, prev, item)
	return item, nil
}

// Delete borra un registro visible.
func (uc *ResourceUseCase[T, PT]) Delete(ctx context.Context, p access.Principal, id string) error {
	if id == "" {
		return domain.ErrInvalidInput
	}
	repo := uc.repo(p)
	prev, err := repo.FindOne(ctx, repository.Filter{"id": id})
	if err != nil {
		return err
	}
	if prev == nil {
		return uc.missing(ctx, p, id)
	}
	n, err := repo.Delete(ctx, repository.Filter{"id": id})
	if err != nil {
		return err
	}
	if n == 0 {
		return uc.missing(ctx, p, id)
	}
	uc.written(ctx, prev, nil)
	return nil
}

func (uc *ResourceUseCase[T, PT]) written(ctx context.Context, prev, next *T) {
	if uc.opts.afterWrite != nil {
		uc.opts.afterWrite(ctx, prev, next)
	}
}

// missing decide el error de una escritura que no afectó filas: ErrForbidden si el registro
// existe dentro del tenant del principal, ErrNotFound en otro caso.
func (uc *ResourceUseCase[T, PT]) missing(ctx context.Context, p access.Principal, id string) error {
	if p.TenantID == "" {
		return domain.ErrNotFound
	}
	item, err := uc.raw.FindOne(ctx, repository.Filter{"id": id})
	if err != nil {
		return err
	}
	if item == nil {
		return domain.ErrNotFound
	}
	if tenantOf(uc.kind, PT(item).Attributes()) == p.TenantID {
		return domain.ErrForbidden
	}
	return domain.ErrNotFound
}

// tenantOf devuelve la empresa dueña de un registro. La empresa es su propio tenant.
func tenantOf(kind access.Kind, attrs map[string]string) string {
	if kind == access.KindCompany {
		return attrs["id"]
	}
	return attrs["company_id"]
}
