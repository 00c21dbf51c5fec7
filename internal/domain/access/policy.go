// Package access decide qué registros puede ver y modificar un principal.
// Las reglas de alcance son datos: una tabla tipo de recurso -> rol -> restricciones.
package access

import (
	"reflect"

	"github.com/jhoicas/Bizops-api/internal/domain/entity"
	"github.com/jhoicas/Bizops-api/internal/domain/repository"
)

// Principal es la identidad ya autenticada que ejecuta una operación.
// TenantID va vacío para super_admin.
type Principal struct {
	ID       string
	TenantID string
	Role     string
}

// IsSuperAdmin informa si el principal ve todo sin restricciones.
func (p Principal) IsSuperAdmin() bool { return p.Role == entity.RoleSuperAdmin }

// Kind identifica un tipo de recurso protegido.
type Kind string

const (
	KindUser              Kind = "user"
	KindClient            Kind = "client"
	KindLead              Kind = "lead"
	KindInvoice           Kind = "invoice"
	KindProposal          Kind = "proposal"
	KindContract          Kind = "contract"
	KindRecurringTemplate Kind = "recurring_template"
	KindCompany           Kind = "company"
	KindAvailability      Kind = "availability"
	KindBooking           Kind = "booking"
)

// Source indica de dónde sale el valor exigido por una restricción.
type Source int

const (
	FromTenant Source = iota // TenantID del principal
	FromSelf                 // ID del principal
)

// Constraint exige que la columna Field valga lo que indica Source.
type Constraint struct {
	Field  string
	Source Source
}

var (
	tenant   = Constraint{Field: "company_id", Source: FromTenant}
	ownCo    = Constraint{Field: "id", Source: FromTenant}
	self     = Constraint{Field: "id", Source: FromSelf}
	owner    = Constraint{Field: "owner_id", Source: FromSelf}
	assigned = Constraint{Field: "assigned_to_id", Source: FromSelf}
	host     = Constraint{Field: "host_id", Source: FromSelf}
)

// Op distingue lecturas de escrituras (actualizar o borrar).
type Op int

const (
	OpRead Op = iota
	OpWrite
)

// grant es el alcance de un rol sobre un tipo. Con readOnly el rol lee pero no escribe.
type grant struct {
	cs       []Constraint
	readOnly bool
}

func can(cs ...Constraint) grant      { return grant{cs: cs} }
func readOnly(cs ...Constraint) grant { return grant{cs: cs, readOnly: true} }

func sameForAll(cs ...Constraint) map[string]grant {
	return map[string]grant{
		entity.RoleOwner:  can(cs...),
		entity.RoleAdmin:  can(cs...),
		entity.RoleMember: can(cs...),
	}
}

// rules es la tabla de alcance. super_admin no aparece: no tiene restricciones.
var rules = map[Kind]map[string]grant{
	KindUser: {
		entity.RoleOwner:  can(tenant),
		entity.RoleAdmin:  can(tenant),
		entity.RoleMember: can(self),
	},
	KindClient: {
		entity.RoleOwner:  can(tenant),
		entity.RoleAdmin:  can(tenant),
		entity.RoleMember: can(tenant, assigned),
	},
	KindLead: {
		entity.RoleOwner:  can(tenant),
		entity.RoleAdmin:  can(tenant),
		entity.RoleMember: can(tenant, assigned),
	},
	KindInvoice:           sameForAll(owner),
	KindProposal:          sameForAll(owner),
	KindContract:          sameForAll(owner),
	KindRecurringTemplate: sameForAll(owner),
	KindCompany: {
		entity.RoleOwner:  can(ownCo),
		entity.RoleAdmin:  can(ownCo),
		entity.RoleMember: readOnly(ownCo),
	},
	KindAvailability: {
		entity.RoleOwner:  can(tenant),
		entity.RoleAdmin:  can(tenant),
		entity.RoleMember: can(tenant, host),
	},
	KindBooking: {
		entity.RoleOwner:  can(tenant),
		entity.RoleAdmin:  can(tenant),
		entity.RoleMember: can(tenant, host),
	},
}

// Kinds devuelve todos los tipos de recurso conocidos.
func Kinds() []Kind {
	return []Kind{
		KindUser, KindClient, KindLead, KindInvoice, KindProposal, KindContract,
		KindRecurringTemplate, KindCompany, KindAvailability, KindBooking,
	}
}

// Constraints devuelve las restricciones de lectura del principal sobre kind.
// ok = false si el tipo o el rol no son conocidos.
func Constraints(p Principal, kind Kind) (cs []Constraint, ok bool) {
	return ConstraintsFor(p, kind, OpRead)
}

// ConstraintsFor es Constraints para la operación op. Un rol de solo lectura no
// tiene alcance de escritura (ok = false).
func ConstraintsFor(p Principal, kind Kind, op Op) (cs []Constraint, ok bool) {
	byRole, ok := rules[kind]
	if !ok {
		return nil, false
	}
	if p.IsSuperAdmin() {
		return nil, true
	}
	g, ok := byRole[p.Role]
	if !ok || (op == OpWrite && g.readOnly) {
		return nil, false
	}
	return g.cs, true
}

func (c Constraint) value(p Principal) string {
	if c.Source == FromTenant {
		return p.TenantID
	}
	return p.ID
}

// MergeFilter intersecta el filtro del llamador con el alcance de lectura del principal.
// Devuelve satisfiable = false cuando ningún registro puede cumplir ambos: rol o tipo
// desconocidos, principal sin tenant para un recurso del tenant, o un filtro que pide
// otro valor en una columna de alcance. El filtro de entrada no se modifica.
func MergeFilter(p Principal, kind Kind, f repository.Filter) (merged repository.Filter, satisfiable bool) {
	return MergeFilterFor(p, kind, OpRead, f)
}

// MergeFilterFor es MergeFilter para la operación op.
func MergeFilterFor(p Principal, kind Kind, op Op, f repository.Filter) (merged repository.Filter, satisfiable bool) {
	cs, ok := ConstraintsFor(p, kind, op)
	if !ok {
		return nil, false
	}
	merged = f.Clone()
	for _, c := range cs {
		want := c.value(p)
		if want == "" {
			return nil, false
		}
		if got, exists := merged[c.Field]; exists && got != want {
			return nil, false
		}
		merged[c.Field] = want
	}
	return merged, true
}

// Authorize decide si el principal puede leer un registro concreto de tipo kind.
// Un registro nulo o sin alguna columna de alcance se deniega.
func Authorize(p Principal, res repository.Record, kind Kind) bool {
	return AuthorizeFor(p, res, kind, OpRead)
}

// AuthorizeFor es Authorize para la operación op.
func AuthorizeFor(p Principal, res repository.Record, kind Kind, op Op) bool {
	if isNil(res) {
		return false
	}
	cs, ok := ConstraintsFor(p, kind, op)
	if !ok {
		return false
	}
	if p.IsSuperAdmin() {
		return true
	}
	attrs := res.Attributes()
	for _, c := range cs {
		want := c.value(p)
		got := attrs[c.Field]
		if want == "" || got == "" || got != want {
			return false
		}
	}
	return true
}

func isNil(res repository.Record) bool {
	if res == nil {
		return true
	}
	v := reflect.ValueOf(res)
	return v.Kind() == reflect.Ptr && v.IsNil()
}
