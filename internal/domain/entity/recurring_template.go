package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Frecuencias de facturación recurrente.
const (
	FrequencyWeekly    = "weekly"
	FrequencyMonthly   = "monthly"
	FrequencyQuarterly = "quarterly"
	FrequencyYearly    = "yearly"
)

// RecurringTemplate es una plantilla que genera facturas periódicas para un cliente.
type RecurringTemplate struct {
	ID        string          `json:"id"`
	CompanyID string          `json:"company_id"`
	OwnerID   string          `json:"owner_id"`
	ClientID  string          `json:"client_id"`
	Name      string          `json:"name"`
	Frequency string          `json:"frequency"`
	Amount    decimal.Decimal `json:"amount"`
	Currency  string          `json:"currency"`
	NextRunAt time.Time       `json:"next_run_at"`
	Active    bool            `json:"active"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

func (r RecurringTemplate) Attributes() map[string]string {
	return map[string]string{
		"id":         r.ID,
		"company_id": r.CompanyID,
		"owner_id":   r.OwnerID,
		"client_id":  r.ClientID,
		"frequency":  r.Frequency,
	}
}

func (r *RecurringTemplate) SetID(id string) { r.ID = id }

func (r *RecurringTemplate) Stamp(companyID, userID string) {
	if companyID != "" {
		r.CompanyID = companyID
	}
	r.OwnerID = userID
	if r.Frequency == "" {
		r.Frequency = FrequencyMonthly
	}
}

func (r *RecurringTemplate) KeepOwnership(prev *RecurringTemplate) {
	r.ID = prev.ID
	r.CompanyID = prev.CompanyID
	r.OwnerID = prev.OwnerID
	r.CreatedAt = prev.CreatedAt
}

func (r *RecurringTemplate) Touch(now time.Time) {
	if r.CreatedAt.IsZero() {
		r.CreatedAt = now
	}
	r.UpdatedAt = now
}
