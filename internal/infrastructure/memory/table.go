package memory

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jhoicas/Bizops-api/internal/domain"
	"github.com/jhoicas/Bizops-api/internal/domain/repository"
)

// uniqueKey devuelve la clave de unicidad de un registro; ok = false si no aplica
// (por ejemplo, una reserva cancelada no ocupa su franja).
type uniqueKey func(attrs map[string]string) (key string, ok bool)

// table es un repositorio genérico en memoria. Todas las operaciones toman el mutex del Store.
type table[T any] struct {
	store      *Store
	name       string
	rows       []*T
	filterable map[string]bool
	unique     []uniqueKey
}

var _ repository.Repository[struct{}] = (*table[struct{}])(nil)

func newTable[T any](s *Store, name string, unique ...uniqueKey) *table[T] {
	t := &table[T]{store: s, name: name, unique: unique, filterable: map[string]bool{}}
	var zero T
	if rec, ok := any(&zero).(repository.Record); ok {
		for col := range rec.Attributes() {
			t.filterable[col] = true
		}
	}
	return t
}

func attrsOf[T any](item *T) map[string]string {
	if rec, ok := any(item).(repository.Record); ok {
		return rec.Attributes()
	}
	return map[string]string{}
}

func clone[T any](item *T) *T {
	c := *item
	return &c
}

func (t *table[T]) checkFilter(filter repository.Filter) error {
	for col := range filter {
		if !t.filterable[col] {
			return fmt.Errorf("%s: columna %q no filtrable: %w", t.name, col, domain.ErrInvalidInput)
		}
	}
	return nil
}

func (t *table[T]) FindOne(_ context.Context, filter repository.Filter) (*T, error) {
	unlock, err := t.store.acquire()
	if err != nil {
		return nil, err
	}
	defer unlock()
	if err := t.checkFilter(filter); err != nil {
		return nil, err
	}
	for _, row := range t.rows {
		if filter.Matches(attrsOf(row)) {
			return clone(row), nil
		}
	}
	return nil, nil
}

func (t *table[T]) FindMany(_ context.Context, filter repository.Filter, opts repository.ListOptions) ([]*T, error) {
	unlock, err := t.store.acquire()
	if err != nil {
		return nil, err
	}
	defer unlock()
	if err := t.checkFilter(filter); err != nil {
		return nil, err
	}
	if opts.RangeField != "" && !t.filterable[opts.RangeField] {
		return nil, fmt.Errorf("%s: columna de rango %q: %w", t.name, opts.RangeField, domain.ErrInvalidInput)
	}
	out := []*T{}
	skipped := 0
	for _, row := range t.rows {
		attrs := attrsOf(row)
		if !filter.Matches(attrs) || !opts.InRange(attrs) {
			continue
		}
		if skipped < opts.Offset {
			skipped++
			continue
		}
		out = append(out, clone(row))
		if opts.Limit > 0 && len(out) == opts.Limit {
			break
		}
	}
	return out, nil
}

func (t *table[T]) Create(_ context.Context, item *T) error {
	unlock, err := t.store.acquire()
	if err != nil {
		return err
	}
	defer unlock()
	attrs := attrsOf(item)
	if attrs["id"] == "" {
		if s, ok := any(item).(interface{ SetID(string) }); ok {
			s.SetID(uuid.NewString())
			attrs = attrsOf(item)
		}
	}
	for _, row := range t.rows {
		if attrsOf(row)["id"] == attrs["id"] {
			return fmt.Errorf("%s: id %s: %w", t.name, attrs["id"], domain.ErrDuplicate)
		}
	}
	if err := t.checkUnique(attrs, ""); err != nil {
		return err
	}
	t.rows = append(t.rows, clone(item))
	return nil
}

func (t *table[T]) Update(_ context.Context, filter repository.Filter, item *T) (int64, error) {
	unlock, err := t.store.acquire()
	if err != nil {
		return 0, err
	}
	defer unlock()
	if err := t.checkFilter(filter); err != nil {
		return 0, err
	}
	attrs := attrsOf(item)
	for i, row := range t.rows {
		cur := attrsOf(row)
		if cur["id"] != attrs["id"] || !filter.Matches(cur) {
			continue
		}
		if err := t.checkUnique(attrs, attrs["id"]); err != nil {
			return 0, err
		}
		t.rows[i] = clone(item)
		return 1, nil
	}
	return 0, nil
}

func (t *table[T]) Delete(_ context.Context, filter repository.Filter) (int64, error) {
	unlock, err := t.store.acquire()
	if err != nil {
		return 0, err
	}
	defer unlock()
	if err := t.checkFilter(filter); err != nil {
		return 0, err
	}
	kept := t.rows[:0]
	var n int64
	for _, row := range t.rows {
		if filter.Matches(attrsOf(row)) {
			n++
			continue
		}
		kept = append(kept, row)
	}
	t.rows = kept
	return n, nil
}

// checkUnique valida las claves únicas del registro contra las demás filas (excepto selfID).
func (t *table[T]) checkUnique(attrs map[string]string, selfID string) error {
	for _, key := range t.unique {
		want, ok := key(attrs)
		if !ok {
			continue
		}
		for _, row := range t.rows {
			other := attrsOf(row)
			if selfID != "" && other["id"] == selfID {
				continue
			}
			if got, ok := key(other); ok && got == want {
				return fmt.Errorf("%s: clave %s: %w", t.name, want, domain.ErrDuplicate)
			}
		}
	}
	return nil
}

// columns arma una clave única a partir de varias columnas; vacía en alguna = no aplica.
func columns(cols ...string) uniqueKey {
	return func(attrs map[string]string) (string, bool) {
		parts := make([]string, 0, len(cols))
		for _, c := range cols {
			v := attrs[c]
			if v == "" {
				return "", false
			}
			parts = append(parts, v)
		}
		return strings.Join(parts, "|"), true
	}
}

func lowerColumn(col string) uniqueKey {
	return func(attrs map[string]string) (string, bool) {
		v := strings.ToLower(attrs[col])
		return v, v != ""
	}
}
