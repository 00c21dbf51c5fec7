package postgres

import (
	"github.com/jhoicas/Bizops-api/internal/domain/entity"
)

// filterCols mapea atributos a columnas del mismo nombre.
func filterCols(cols ...string) map[string]string {
	m := make(map[string]string, len(cols))
	for _, c := range cols {
		m[c] = c
	}
	return m
}

var companySpec = &tableSpec[entity.Company]{
	name:    "companies",
	columns: []string{"id", "name", "tax_id", "email", "phone", "status", "created_at", "updated_at"},
	filters: filterCols("id", "tax_id", "status"),
	orderBy: "created_at, id",
	fields: func(c *entity.Company) []any {
		return []any{&c.ID, &c.Name, &c.TaxID, &c.Email, &c.Phone, &c.Status, &c.CreatedAt, &c.UpdatedAt}
	},
}

var companyModuleSpec = &tableSpec[entity.CompanyModule]{
	name:    "company_modules",
	columns: []string{"id", "company_id", "module_name", "is_active", "activated_at", "expires_at", "created_at", "updated_at"},
	filters: filterCols("id", "company_id", "module_name"),
	orderBy: "module_name",
	fields: func(m *entity.CompanyModule) []any {
		return []any{&m.ID, &m.CompanyID, &m.ModuleName, &m.IsActive, &m.ActivatedAt, &m.ExpiresAt, &m.CreatedAt, &m.UpdatedAt}
	},
}

var userSpec = &tableSpec[entity.User]{
	name: "users",
	columns: []string{"id", "company_id", "email", "password_hash", "name", "role", "status",
		"slug", "timezone", "created_at", "updated_at"},
	filters: filterCols("id", "company_id", "email", "slug", "role", "status"),
	orderBy: "created_at DESC, id",
	fields: func(u *entity.User) []any {
		return []any{&u.ID, &u.CompanyID, &u.Email, &u.PasswordHash, &u.Name, &u.Role, &u.Status,
			&u.Slug, &u.Timezone, &u.CreatedAt, &u.UpdatedAt}
	},
}

var clientSpec = &tableSpec[entity.Client]{
	name:    "clients",
	columns: []string{"id", "company_id", "assigned_to_id", "name", "tax_id", "email", "phone", "created_at", "updated_at"},
	filters: filterCols("id", "company_id", "assigned_to_id", "tax_id", "email"),
	orderBy: "created_at DESC, id",
	fields: func(c *entity.Client) []any {
		return []any{&c.ID, &c.CompanyID, &c.AssignedToID, &c.Name, &c.TaxID, &c.Email, &c.Phone, &c.CreatedAt, &c.UpdatedAt}
	},
}

var leadSpec = &tableSpec[entity.Lead]{
	name:    "leads",
	columns: []string{"id", "company_id", "assigned_to_id", "name", "email", "phone", "source", "status", "created_at", "updated_at"},
	filters: filterCols("id", "company_id", "assigned_to_id", "status", "email"),
	orderBy: "created_at DESC, id",
	fields: func(l *entity.Lead) []any {
		return []any{&l.ID, &l.CompanyID, &l.AssignedToID, &l.Name, &l.Email, &l.Phone, &l.Source, &l.Status, &l.CreatedAt, &l.UpdatedAt}
	},
}

var invoiceSpec = &tableSpec[entity.Invoice]{
	name: "invoices",
	columns: []string{"id", "company_id", "owner_id", "client_id", "number", "currency", "net_total", "tax_total",
		"total", "status", "issued_at", "due_at", "created_at", "updated_at"},
	filters: filterCols("id", "company_id", "owner_id", "client_id", "number", "status"),
	orderBy: "created_at, id",
	fields: func(i *entity.Invoice) []any {
		return []any{&i.ID, &i.CompanyID, &i.OwnerID, &i.ClientID, &i.Number, &i.Currency, &i.NetTotal, &i.TaxTotal,
			&i.Total, &i.Status, &i.IssuedAt, &i.DueAt, &i.CreatedAt, &i.UpdatedAt}
	},
}

var proposalSpec = &tableSpec[entity.Proposal]{
	name:    "proposals",
	columns: []string{"id", "company_id", "owner_id", "client_id", "title", "amount", "status", "valid_until", "created_at", "updated_at"},
	filters: filterCols("id", "company_id", "owner_id", "client_id", "status"),
	orderBy: "created_at DESC, id",
	fields: func(p *entity.Proposal) []any {
		return []any{&p.ID, &p.CompanyID, &p.OwnerID, &p.ClientID, &p.Title, &p.Amount, &p.Status, &p.ValidUntil, &p.CreatedAt, &p.UpdatedAt}
	},
}

var contractSpec = &tableSpec[entity.Contract]{
	name: "contracts",
	columns: []string{"id", "company_id", "owner_id", "client_id", "proposal_id", "title", "amount", "status",
		"starts_at", "ends_at", "created_at", "updated_at"},
	filters: filterCols("id", "company_id", "owner_id", "client_id", "proposal_id", "status"),
	orderBy: "created_at DESC, id",
	fields: func(c *entity.Contract) []any {
		return []any{&c.ID, &c.CompanyID, &c.OwnerID, &c.ClientID, &c.ProposalID, &c.Title, &c.Amount, &c.Status,
			&c.StartsAt, &c.EndsAt, &c.CreatedAt, &c.UpdatedAt}
	},
}

var recurringTemplateSpec = &tableSpec[entity.RecurringTemplate]{
	name: "recurring_templates",
	columns: []string{"id", "company_id", "owner_id", "client_id", "name", "frequency", "amount", "currency",
		"next_run_at", "active", "created_at", "updated_at"},
	filters: filterCols("id", "company_id", "owner_id", "client_id", "frequency"),
	orderBy: "next_run_at, id",
	fields: func(r *entity.RecurringTemplate) []any {
		return []any{&r.ID, &r.CompanyID, &r.OwnerID, &r.ClientID, &r.Name, &r.Frequency, &r.Amount, &r.Currency,
			&r.NextRunAt, &r.Active, &r.CreatedAt, &r.UpdatedAt}
	},
}

// Las columnas no textuales se comparan como texto para que el filtro (map de strings) sirva tal cual.
var availabilitySpec = &tableSpec[entity.AvailabilityWindow]{
	name: "availability_windows",
	columns: []string{"id", "company_id", "host_id", "day_of_week", "start_time", "end_time", "slot_duration",
		"buffer_minutes", "active", "created_at", "updated_at"},
	filters: map[string]string{
		"id":          "id",
		"company_id":  "company_id",
		"host_id":     "host_id",
		"day_of_week": "day_of_week::text",
		"active":      "active::text",
	},
	orderBy: "day_of_week, start_time, id",
	fields: func(w *entity.AvailabilityWindow) []any {
		return []any{&w.ID, &w.CompanyID, &w.HostID, &w.DayOfWeek, &w.StartTime, &w.EndTime, &w.SlotDuration,
			&w.Buffer, &w.Active, &w.CreatedAt, &w.UpdatedAt}
	},
}

var bookingSpec = &tableSpec[entity.Booking]{
	name: "bookings",
	columns: []string{"id", "company_id", "host_id", "start_at", "end_at", "date_key", "start_time", "end_time",
		"status", "client_name", "client_email", "client_phone", "notes", "created_at", "updated_at"},
	filters: filterCols("id", "company_id", "host_id", "date_key", "start_time", "status", "client_email"),
	orderBy: "start_at, id",
	fields: func(b *entity.Booking) []any {
		return []any{&b.ID, &b.CompanyID, &b.HostID, &b.StartAt, &b.EndAt, &b.DateKey, &b.StartTime, &b.EndTime,
			&b.Status, &b.ClientName, &b.ClientEmail, &b.ClientPhone, &b.Notes, &b.CreatedAt, &b.UpdatedAt}
	},
}
