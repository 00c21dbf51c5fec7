package dto

import "github.com/shopspring/decimal"

// DashboardSummary resumen del mes en curso sobre los datos visibles para el usuario.
type DashboardSummary struct {
	DateLabel        string          `json:"date_label"`
	InvoicedMonth    decimal.Decimal `json:"invoiced_month"`
	Outstanding      decimal.Decimal `json:"outstanding"`
	Collected        decimal.Decimal `json:"collected"`
	InvoiceCount     int             `json:"invoice_count"`
	ClientCount      int             `json:"client_count"`
	LeadsByStatus    map[string]int  `json:"leads_by_status"`
	UpcomingBookings int             `json:"upcoming_bookings"`
}
