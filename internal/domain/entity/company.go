package entity

import "time"

// Company representa una organización/tenant del sistema (límite de facturación y de datos).
type Company struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	TaxID     string    `json:"tax_id,omitempty"`
	Email     string    `json:"email,omitempty"`
	Phone     string    `json:"phone,omitempty"`
	Status    string    `json:"status"` // active, suspended, inactive
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Attributes expone las columnas usadas para filtrar y autorizar.
func (c Company) Attributes() map[string]string {
	return map[string]string{
		"id":     c.ID,
		"tax_id": c.TaxID,
		"status": c.Status,
	}
}

func (c *Company) SetID(id string) { c.ID = id }

// Stamp no hace nada: la empresa es el propio tenant.
func (c *Company) Stamp(_, _ string) {
	if c.Status == "" {
		c.Status = "active"
	}
}

func (c *Company) KeepOwnership(prev *Company) {
	c.ID = prev.ID
	c.CreatedAt = prev.CreatedAt
}

func (c *Company) Touch(now time.Time) {
	if c.CreatedAt.IsZero() {
		c.CreatedAt = now
	}
	c.UpdatedAt = now
}

// Módulos SaaS disponibles (deben coincidir con el CHECK de la tabla company_modules).
const (
	ModuleInvoicing  = "invoicing"
	ModuleCRM        = "crm"
	ModuleProposals  = "proposals"
	ModuleScheduling = "scheduling"
	ModuleTeam       = "team"
	ModuleReporting  = "reporting"
)

// CompanyModule representa la activación de un módulo SaaS en una empresa.
type CompanyModule struct {
	ID          string     `json:"id"`
	CompanyID   string     `json:"company_id"`
	ModuleName  string     `json:"module_name"`
	IsActive    bool       `json:"is_active"`
	ActivatedAt time.Time  `json:"activated_at"`
	ExpiresAt   *time.Time `json:"expires_at,omitempty"` // nil = sin vencimiento
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

func (m CompanyModule) Attributes() map[string]string {
	return map[string]string{
		"id":          m.ID,
		"company_id":  m.CompanyID,
		"module_name": m.ModuleName,
	}
}

// Enabled informa si el módulo está activo y sin vencer en el instante dado.
func (m CompanyModule) Enabled(now time.Time) bool {
	if !m.IsActive {
		return false
	}
	return m.ExpiresAt == nil || m.ExpiresAt.After(now)
}
