package repository

import (
	"context"

	"github.com/jhoicas/Bizops-api/internal/domain/entity"
)

// Filter es un conjunto de igualdades columna = valor que se combinan con AND.
// Una columna que no es filtrable para el recurso produce domain.ErrInvalidInput.
type Filter map[string]string

// Clone devuelve una copia independiente del filtro (nunca nil).
func (f Filter) Clone() Filter {
	out := make(Filter, len(f))
	for k, v := range f {
		out[k] = v
	}
	return out
}

// Matches informa si los atributos de un registro satisfacen todas las igualdades del filtro.
func (f Filter) Matches(attrs map[string]string) bool {
	for k, v := range f {
		got, ok := attrs[k]
		if !ok || got != v {
			return false
		}
	}
	return true
}

// ListOptions controla paginación y un rango opcional [From, To] sobre RangeField.
// El rango compara texto, por lo que sirve para claves como date_key (YYYY-MM-DD).
// Limit <= 0 significa sin límite.
type ListOptions struct {
	Limit      int
	Offset     int
	RangeField string
	From       string
	To         string
}

// InRange informa si el valor cae en el rango de las opciones (extremos incluidos).
func (o ListOptions) InRange(attrs map[string]string) bool {
	if o.RangeField == "" {
		return true
	}
	v := attrs[o.RangeField]
	if o.From != "" && v < o.From {
		return false
	}
	if o.To != "" && v > o.To {
		return false
	}
	return true
}

// Record es cualquier registro que expone sus columnas de filtrado y propiedad.
type Record interface {
	Attributes() map[string]string
}

// Repository es el puerto genérico de persistencia por tipo de recurso.
// FindOne devuelve (nil, nil) cuando no hay coincidencia.
// Update afecta la fila con id = item.ID que además cumple el filtro.
type Repository[T any] interface {
	FindOne(ctx context.Context, filter Filter) (*T, error)
	FindMany(ctx context.Context, filter Filter, opts ListOptions) ([]*T, error)
	Create(ctx context.Context, item *T) error
	Update(ctx context.Context, filter Filter, item *T) (int64, error)
	Delete(ctx context.Context, filter Filter) (int64, error)
}

// Stores agrupa los repositorios de todos los recursos, ya sea sobre el pool o sobre una transacción.
type Stores struct {
	Companies          Repository[entity.Company]
	CompanyModules     Repository[entity.CompanyModule]
	Users              Repository[entity.User]
	Clients            Repository[entity.Client]
	Leads              Repository[entity.Lead]
	Invoices           Repository[entity.Invoice]
	Proposals          Repository[entity.Proposal]
	Contracts          Repository[entity.Contract]
	RecurringTemplates Repository[entity.RecurringTemplate]
	Availability       Repository[entity.AvailabilityWindow]
	Bookings           Repository[entity.Booking]
}

// TxRunner ejecuta fn con repositorios atados a una única transacción.
// RunLocked además serializa, dentro de la transacción, a todos los que usan la misma clave.
type TxRunner interface {
	Run(ctx context.Context, fn func(Stores) error) error
	RunLocked(ctx context.Context, key string, fn func(Stores) error) error
}
