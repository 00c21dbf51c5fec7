package usecase

import (
	"context"

	"github.com/jhoicas/Bizops-api/internal/application/gateway"
	"github.com/jhoicas/Bizops-api/internal/domain/access"
	"github.com/jhoicas/Bizops-api/internal/domain/entity"
	"github.com/jhoicas/Bizops-api/internal/domain/scheduling"
)

// Resources agrupa los CRUD con alcance de la aplicación.
type Resources struct {
	Companies          *ResourceUseCase[entity.Company, *entity.Company]
	Users              *ResourceUseCase[entity.User, *entity.User]
	Clients            *ResourceUseCase[entity.Client, *entity.Client]
	Leads              *ResourceUseCase[entity.Lead, *entity.Lead]
	Invoices           *ResourceUseCase[entity.Invoice, *entity.Invoice]
	Proposals          *ResourceUseCase[entity.Proposal, *entity.Proposal]
	Contracts          *ResourceUseCase[entity.Contract, *entity.Contract]
	RecurringTemplates *ResourceUseCase[entity.RecurringTemplate, *entity.RecurringTemplate]
	Availability       *ResourceUseCase[entity.AvailabilityWindow, *entity.AvailabilityWindow]
	Bookings           *ResourceUseCase[entity.Booking, *entity.Booking]
}

// NewResources construye un CRUD por tipo de recurso sobre los repositorios del gateway.
// availability permite validar franjas e invalidar la agenda del anfitrión tras cada escritura.
func NewResources(gw *gateway.Gateway, availability ...ResourceOption[entity.AvailabilityWindow]) *Resources {
	s := gw.Stores()
	return &Resources{
		Companies: NewResourceUseCase[entity.Company, *entity.Company](gw, access.KindCompany, s.Companies,
			func(sc *gateway.Scope) *access.Scoped[entity.Company] { return sc.Companies }),
		Users: NewResourceUseCase[entity.User, *entity.User](gw, access.KindUser, s.Users,
			func(sc *gateway.Scope) *access.Scoped[entity.User] { return sc.Users },
			WithValidator(validateUser)),
		Clients: NewResourceUseCase[entity.Client, *entity.Client](gw, access.KindClient, s.Clients,
			func(sc *gateway.Scope) *access.Scoped[entity.Client] { return sc.Clients }),
		Leads: NewResourceUseCase[entity.Lead, *entity.Lead](gw, access.KindLead, s.Leads,
			func(sc *gateway.Scope) *access.Scoped[entity.Lead] { return sc.Leads }),
		Invoices: NewResourceUseCase[entity.Invoice, *entity.Invoice](gw, access.KindInvoice, s.Invoices,
			func(sc *gateway.Scope) *access.Scoped[entity.Invoice] { return sc.Invoices }),
		Proposals: NewResourceUseCase[entity.Proposal, *entity.Proposal](gw, access.KindProposal, s.Proposals,
			func(sc *gateway.Scope) *access.Scoped[entity.Proposal] { return sc.Proposals }),
		Contracts: NewResourceUseCase[entity.Contract, *entity.Contract](gw, access.KindContract, s.Contracts,
			func(sc *gateway.Scope) *access.Scoped[entity.Contract] { return sc.Contracts }),
		RecurringTemplates: NewResourceUseCase[entity.RecurringTemplate, *entity.RecurringTemplate](gw, access.KindRecurringTemplate, s.RecurringTemplates,
			func(sc *gateway.Scope) *access.Scoped[entity.RecurringTemplate] { return sc.RecurringTemplates }),
		Availability: NewResourceUseCase[entity.AvailabilityWindow, *entity.AvailabilityWindow](gw, access.KindAvailability, s.Availability,
			func(sc *gateway.Scope) *access.Scoped[entity.AvailabilityWindow] { return sc.Availability }, availability...),
		Bookings: NewResourceUseCase[entity.Booking, *entity.Booking](gw, access.KindBooking, s.Bookings,
			func(sc *gateway.Scope) *access.Scoped[entity.Booking] { return sc.Bookings }),
	}
}

// validateUser exige una zona IANA válida: la agenda pública del usuario se calcula en ella.
func validateUser(_ context.Context, u *entity.User) error {
	_, err := scheduling.LoadZone(u.Timezone)
	return err
}
