// Package gateway expone los repositorios de cada recurso ya restringidos al alcance del principal.
package gateway

import (
	"github.com/jhoicas/Bizops-api/internal/domain/access"
	"github.com/jhoicas/Bizops-api/internal/domain/entity"
	"github.com/jhoicas/Bizops-api/internal/domain/repository"
)

// Gateway construye vistas con alcance sobre los repositorios de la aplicación. No guarda estado por petición.
type Gateway struct {
	stores repository.Stores
	onDeny access.DenyHook
}

// New construye el gateway. onDeny (opcional) recibe cada operación vaciada o rechazada por el alcance.
func New(stores repository.Stores, onDeny access.DenyHook) *Gateway {
	return &Gateway{stores: stores, onDeny: onDeny}
}

// Stores devuelve los repositorios sin alcance. Solo para flujos públicos o de sistema.
func (g *Gateway) Stores() repository.Stores { return g.stores }

// Authorize decide la lectura de un registro concreto.
func (g *Gateway) Authorize(p access.Principal, res repository.Record, kind access.Kind) bool {
	return g.AuthorizeFor(p, res, kind, access.OpRead)
}

// AuthorizeFor decide el acceso a un registro concreto para la operación op.
func (g *Gateway) AuthorizeFor(p access.Principal, res repository.Record, kind access.Kind, op access.Op) bool {
	ok := access.AuthorizeFor(p, res, kind, op)
	if !ok && g.onDeny != nil {
		g.onDeny(kind, "authorize")
	}
	return ok
}

// Scope agrupa los repositorios con alcance de un principal.
type Scope struct {
	Principal          access.Principal
	Users              *access.Scoped[entity.User]
	Clients            *access.Scoped[entity.Client]
	Leads              *access.Scoped[entity.Lead]
	Invoices           *access.Scoped[entity.Invoice]
	Proposals          *access.Scoped[entity.Proposal]
	Contracts          *access.Scoped[entity.Contract]
	RecurringTemplates *access.Scoped[entity.RecurringTemplate]
	Companies          *access.Scoped[entity.Company]
	Availability       *access.Scoped[entity.AvailabilityWindow]
	Bookings           *access.Scoped[entity.Booking]
}

// Scoped devuelve los repositorios del principal sobre el almacenamiento principal.
func (g *Gateway) Scoped(p access.Principal) *Scope {
	return g.Bind(g.stores, p)
}

// Bind aplica el alcance del principal sobre otros repositorios, por ejemplo los de una transacción.
func (g *Gateway) Bind(s repository.Stores, p access.Principal) *Scope {
	return &Scope{
		Principal:          p,
		Users:              access.NewScoped(s.Users, p, access.KindUser, g.onDeny),
		Clients:            access.NewScoped(s.Clients, p, access.KindClient, g.onDeny),
		Leads:              access.NewScoped(s.Leads, p, access.KindLead, g.onDeny),
		Invoices:           access.NewScoped(s.Invoices, p, access.KindInvoice, g.onDeny),
		Proposals:          access.NewScoped(s.Proposals, p, access.KindProposal, g.onDeny),
		Contracts:          access.NewScoped(s.Contracts, p, access.KindContract, g.onDeny),
		RecurringTemplates: access.NewScoped(s.RecurringTemplates, p, access.KindRecurringTemplate, g.onDeny),
		Companies:          access.NewScoped(s.Companies, p, access.KindCompany, g.onDeny),
		Availability:       access.NewScoped(s.Availability, p, access.KindAvailability, g.onDeny),
		Bookings:           access.NewScoped(s.Bookings, p, access.KindBooking, g.onDeny),
	}
}
