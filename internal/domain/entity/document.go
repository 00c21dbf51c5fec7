package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados compartidos por propuestas y contratos.
const (
	DocumentStatusDraft    = "draft"
	DocumentStatusSent     = "sent"
	DocumentStatusAccepted = "accepted"
	DocumentStatusDeclined = "declined"
	DocumentStatusSigned   = "signed"
	DocumentStatusExpired  = "expired"
)

// Proposal es una propuesta comercial enviada a un cliente.
type Proposal struct {
	ID         string          `json:"id"`
	CompanyID  string          `json:"company_id"`
	OwnerID    string          `json:"owner_id"`
	ClientID   string          `json:"client_id"`
	Title      string          `json:"title"`
	Amount     decimal.Decimal `json:"amount"`
	Status     string          `json:"status"`
	ValidUntil time.Time       `json:"valid_until"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

func (p Proposal) Attributes() map[string]string {
	return map[string]string{
		"id":         p.ID,
		"company_id": p.CompanyID,
		"owner_id":   p.OwnerID,
		"client_id":  p.ClientID,
		"status":     p.Status,
	}
}

func (p *Proposal) SetID(id string) { p.ID = id }

func (p *Proposal) Stamp(companyID, userID string) {
	if companyID != "" {
		p.CompanyID = companyID
	}
	p.OwnerID = userID
	if p.Status == "" {
		p.Status = DocumentStatusDraft
	}
}

func (p *Proposal) KeepOwnership(prev *Proposal) {
	p.ID = prev.ID
	p.CompanyID = prev.CompanyID
	p.OwnerID = prev.OwnerID
	p.CreatedAt = prev.CreatedAt
}

func (p *Proposal) Touch(now time.Time) {
	if p.CreatedAt.IsZero() {
		p.CreatedAt = now
	}
	p.UpdatedAt = now
}

// Contract es un contrato con un cliente, normalmente derivado de una propuesta aceptada.
type Contract struct {
	ID         string          `json:"id"`
	CompanyID  string          `json:"company_id"`
	OwnerID    string          `json:"owner_id"`
	ClientID   string          `json:"client_id"`
	ProposalID string          `json:"proposal_id,omitempty"`
	Title      string          `json:"title"`
	Amount     decimal.Decimal `json:"amount"`
	Status     string          `json:"status"`
	StartsAt   time.Time       `json:"starts_at"`
	EndsAt     time.Time       `json:"ends_at"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

func (c Contract) Attributes() map[string]string {
	return map[string]string{
		"id":          c.ID,
		"company_id":  c.CompanyID,
		"owner_id":    c.OwnerID,
		"client_id":   c.ClientID,
		"proposal_id": c.ProposalID,
		"status":      c.Status,
	}
}

func (c *Contract) SetID(id string) { c.ID = id }

func (c *Contract) Stamp(companyID, userID string) {
	if companyID != "" {
		c.CompanyID = companyID
	}
	c.OwnerID = userID
	if c.Status == "" {
		c.Status = DocumentStatusDraft
	}
}

func (c *Contract) KeepOwnership(prev *Contract) {
	c.ID = prev.ID
	c.CompanyID = prev.CompanyID
	c.OwnerID = prev.OwnerID
	c.CreatedAt = prev.CreatedAt
}

func (c *Contract) Touch(now time.Time) {
	if c.CreatedAt.IsZero() {
		c.CreatedAt = now
	}
	c.UpdatedAt = now
}
