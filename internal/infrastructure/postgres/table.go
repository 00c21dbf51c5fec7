package postgres

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/Bizops-api/internal/domain"
	"github.com/jhoicas/Bizops-api/internal/domain/repository"
)

// tableSpec describe cómo persistir un tipo: columnas en orden (la primera es id),
// expresión SQL de cada atributo filtrable y punteros/valores en el mismo orden de columnas.
type tableSpec[T any] struct {
	name    string
	columns []string
	filters map[string]string
	orderBy string
	fields  func(item *T) []any
}

// where arma el WHERE con los atributos del filtro en orden estable y argumentos $n.
// Solo acepta atributos declarados en filters; el resto es ErrInvalidInput.
func (s *tableSpec[T]) where(filter repository.Filter, opts repository.ListOptions, args []any) (string, []any, error) {
	keys := make([]string, 0, len(filter))
	for k := range filter {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var conds []string
	for _, k := range keys {
		expr, ok := s.filters[k]
		if !ok {
			return "", nil, fmt.Errorf("%s: columna de filtro %q: %w", s.name, k, domain.ErrInvalidInput)
		}
		args = append(args, filter[k])
		conds = append(conds, expr+" = $"+strconv.Itoa(len(args)))
	}
	if opts.RangeField != "" {
		expr, ok := s.filters[opts.RangeField]
		if !ok {
			return "", nil, fmt.Errorf("%s: columna de rango %q: %w", s.name, opts.RangeField, domain.ErrInvalidInput)
		}
		if opts.From != "" {
			args = append(args, opts.From)
			conds = append(conds, expr+" >= $"+strconv.Itoa(len(args)))
		}
		if opts.To != "" {
			args = append(args, opts.To)
			conds = append(conds, expr+" <= $"+strconv.Itoa(len(args)))
		}
	}
	if len(conds) == 0 {
		return "", args, nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args, nil
}

func (s *tableSpec[T]) selectSQL() string {
	return "SELECT " + strings.Join(s.columns, ", ") + " FROM " + s.name
}

func (s *tableSpec[T]) insertSQL() string {
	ph := make([]string, len(s.columns))
	for i := range s.columns {
		ph[i] = "$" + strconv.Itoa(i+1)
	}
	return "INSERT INTO " + s.name + " (" + strings.Join(s.columns, ", ") + ") VALUES (" + strings.Join(ph, ", ") + ")"
}

// updateSQL reescribe todas las columnas salvo id; id es $1 y va primero en los argumentos.
func (s *tableSpec[T]) updateSQL() string {
	sets := make([]string, 0, len(s.columns)-1)
	for i, c := range s.columns[1:] {
		sets = append(sets, c+" = $"+strconv.Itoa(i+2))
	}
	return "UPDATE " + s.name + " SET " + strings.Join(sets, ", ") + " WHERE id = $1"
}

// Table implementa repository.Repository[T] sobre una tabla PostgreSQL (pool o tx).
type Table[T any] struct {
	q    Querier
	spec *tableSpec[T]
}

var _ repository.Repository[struct{}] = (*Table[struct{}])(nil)

func newTable[T any](q Querier, spec *tableSpec[T]) *Table[T] {
	return &Table[T]{q: q, spec: spec}
}

func (t *Table[T]) scan(rows pgx.Rows) ([]*T, error) {
	defer rows.Close()
	out := []*T{}
	for rows.Next() {
		item := new(T)
		if err := rows.Scan(t.spec.fields(item)...); err != nil {
			return nil, fmt.Errorf("scan %s: %w", t.spec.name, err)
		}
		out = append(out, item)
	}
	return out, rows.Err()
}

// FindOne devuelve la primera fila que cumple el filtro o (nil, nil).
func (t *Table[T]) FindOne(ctx context.Context, filter repository.Filter) (*T, error) {
	where, args, err := t.spec.where(filter, repository.ListOptions{}, nil)
	if err != nil {
		return nil, err
	}
	item := new(T)
	err = t.q.QueryRow(ctx, t.spec.selectSQL()+where+" LIMIT 1", args...).Scan(t.spec.fields(item)...)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get %s: %w", t.spec.name, err)
	}
	return item, nil
}

// FindMany lista las filas que cumplen filtro y rango, con paginación.
func (t *Table[T]) FindMany(ctx context.Context, filter repository.Filter, opts repository.ListOptions) ([]*T, error) {
	where, args, err := t.spec.where(filter, opts, nil)
	if err != nil {
		return nil, err
	}
	query := t.spec.selectSQL() + where
	if t.spec.orderBy != "" {
		query += " ORDER BY " + t.spec.orderBy
	}
	if opts.Limit > 0 {
		args = append(args, opts.Limit)
		query += " LIMIT $" + strconv.Itoa(len(args))
	}
	if opts.Offset > 0 {
		args = append(args, opts.Offset)
		query += " OFFSET $" + strconv.Itoa(len(args))
	}
	rows, err := t.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", t.spec.name, err)
	}
	return t.scan(rows)
}

// Create inserta la fila. Una clave única repetida devuelve domain.ErrDuplicate.
func (t *Table[T]) Create(ctx context.Context, item *T) error {
	if _, err := t.q.Exec(ctx, t.spec.insertSQL(), t.values(item)...); err != nil {
		return mapWriteErr(t.spec.name, "insert", err)
	}
	return nil
}

// Update reescribe la fila con el id del item siempre que también cumpla el filtro.
func (t *Table[T]) Update(ctx context.Context, filter repository.Filter, item *T) (int64, error) {
	args := t.values(item)
	where, args, err := t.spec.where(filter, repository.ListOptions{}, args)
	if err != nil {
		return 0, err
	}
	query := t.spec.updateSQL()
	if where != "" {
		query += " AND " + strings.TrimPrefix(where, " WHERE ")
	}
	tag, err := t.q.Exec(ctx, query, args...)
	if err != nil {
		return 0, mapWriteErr(t.spec.name, "update", err)
	}
	return tag.RowsAffected(), nil
}

// Delete borra las filas que cumplen el filtro.
func (t *Table[T]) Delete(ctx context.Context, filter repository.Filter) (int64, error) {
	where, args, err := t.spec.where(filter, repository.ListOptions{}, nil)
	if err != nil {
		return 0, err
	}
	tag, err := t.q.Exec(ctx, "DELETE FROM "+t.spec.name+where, args...)
	if err != nil {
		return 0, fmt.Errorf("delete %s: %w", t.spec.name, err)
	}
	return tag.RowsAffected(), nil
}

// values devuelve los argumentos de las columnas en orden. pgx desreferencia los punteros
// al codificar, así que sirven los mismos que usa Scan.
func (t *Table[T]) values(item *T) []any {
	return t.spec.fields(item)
}
