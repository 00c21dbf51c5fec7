package access

import (
	"context"

	"github.com/jhoicas/Bizops-api/internal/domain"
	"github.com/jhoicas/Bizops-api/internal/domain/repository"
)

// DenyHook recibe cada operación rechazada o vaciada por el alcance.
type DenyHook func(kind Kind, op string)

// Scoped envuelve un repositorio e inyecta el alcance del principal en cada lectura,
// actualización y borrado. Create pasa sin cambios: quien crea estampa la propiedad.
type Scoped[T any] struct {
	inner  repository.Repository[T]
	p      Principal
	kind   Kind
	onDeny DenyHook
}

var _ repository.Repository[struct{}] = (*Scoped[struct{}])(nil)

// NewScoped construye el repositorio con alcance. onDeny puede ser nil.
func NewScoped[T any](inner repository.Repository[T], p Principal, kind Kind, onDeny DenyHook) *Scoped[T] {
	return &Scoped[T]{inner: inner, p: p, kind: kind, onDeny: onDeny}
}

// Principal devuelve el principal con el que opera el repositorio.
func (s *Scoped[T]) Principal() Principal { return s.p }

// Kind devuelve el tipo de recurso protegido.
func (s *Scoped[T]) Kind() Kind { return s.kind }

func (s *Scoped[T]) deny(op string) {
	if s.onDeny != nil {
		s.onDeny(s.kind, op)
	}
}

func (s *Scoped[T]) FindOne(ctx context.Context, filter repository.Filter) (*T, error) {
	merged, ok := MergeFilter(s.p, s.kind, filter)
	if !ok {
		s.deny("find_one")
		return nil, nil
	}
	return s.inner.FindOne(ctx, merged)
}

func (s *Scoped[T]) FindMany(ctx context.Context, filter repository.Filter, opts repository.ListOptions) ([]*T, error) {
	merged, ok := MergeFilter(s.p, s.kind, filter)
	if !ok {
		s.deny("find_many")
		return []*T{}, nil
	}
	return s.inner.FindMany(ctx, merged, opts)
}

func (s *Scoped[T]) Create(ctx context.Context, item *T) error {
	return s.inner.Create(ctx, item)
}

// Update usa el alcance de escritura y además exige que el nuevo estado siga dentro de él:
// no se puede sacar un registro del propio alcance editándolo.
func (s *Scoped[T]) Update(ctx context.Context, filter repository.Filter, item *T) (int64, error) {
	merged, ok := MergeFilterFor(s.p, s.kind, OpWrite, filter)
	if !ok {
		s.deny("update")
		return 0, nil
	}
	rec, isRecord := any(item).(repository.Record)
	if !isRecord || !AuthorizeFor(s.p, rec, s.kind, OpWrite) {
		s.deny("update")
		return 0, domain.ErrForbidden
	}
	return s.inner.Update(ctx, merged, item)
}

func (s *Scoped[T]) Delete(ctx context.Context, filter repository.Filter) (int64, error) {
	merged, ok := MergeFilterFor(s.p, s.kind, OpWrite, filter)
	if !ok {
		s.deny("delete")
		return 0, nil
	}
	return s.inner.Delete(ctx, merged)
}
