package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una factura.
const (
	InvoiceStatusDraft     = "draft"
	InvoiceStatusSent      = "sent"
	InvoiceStatusPaid      = "paid"
	InvoiceStatusOverdue   = "overdue"
	InvoiceStatusCancelled = "cancelled"
)

// Invoice representa la cabecera de una factura. Solo su dueño (OwnerID) la ve,
// salvo el super_admin.
type Invoice struct {
	ID        string          `json:"id"`
	CompanyID string          `json:"company_id"`
	OwnerID   string          `json:"owner_id"`
	ClientID  string          `json:"client_id"`
	Number    string          `json:"number"`
	Currency  string          `json:"currency"`
	NetTotal  decimal.Decimal `json:"net_total"`
	TaxTotal  decimal.Decimal `json:"tax_total"`
	Total     decimal.Decimal `json:"total"`
	Status    string          `json:"status"`
	IssuedAt  time.Time       `json:"issued_at"`
	DueAt     time.Time       `json:"due_at"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

func (i Invoice) Attributes() map[string]string {
	return map[string]string{
		"id":         i.ID,
		"company_id": i.CompanyID,
		"owner_id":   i.OwnerID,
		"client_id":  i.ClientID,
		"number":     i.Number,
		"status":     i.Status,
	}
}

func (i *Invoice) SetID(id string) { i.ID = id }

// Stamp fija empresa y dueño: una factura siempre pertenece a quien la crea.
func (i *Invoice) Stamp(companyID, userID string) {
	if companyID != "" {
		i.CompanyID = companyID
	}
	i.OwnerID = userID
	if i.Status == "" {
		i.Status = InvoiceStatusDraft
	}
	i.Total = i.NetTotal.Add(i.TaxTotal)
}

func (i *Invoice) KeepOwnership(prev *Invoice) {
	i.ID = prev.ID
	i.CompanyID = prev.CompanyID
	i.OwnerID = prev.OwnerID
	i.CreatedAt = prev.CreatedAt
	i.Total = i.NetTotal.Add(i.TaxTotal)
}

func (i *Invoice) Touch(now time.Time) {
	if i.CreatedAt.IsZero() {
		i.CreatedAt = now
	}
	if i.IssuedAt.IsZero() {
		i.IssuedAt = now
	}
	i.UpdatedAt = now
}
