package entity

import "time"

// Estados de una reserva. Una reserva cancelada libera su franja.
const (
	BookingStatusConfirmed = "confirmed"
	BookingStatusCancelled = "cancelled"
)

// Booking es una cita reservada con un anfitrión.
// StartAt/EndAt van en UTC; DateKey (YYYY-MM-DD) y StartTime/EndTime (HH:MM) en la zona del anfitrión.
type Booking struct {
	ID          string    `json:"id"`
	CompanyID   string    `json:"company_id"`
	HostID      string    `json:"host_id"`
	StartAt     time.Time `json:"start_at"`
	EndAt       time.Time `json:"end_at"`
	DateKey     string    `json:"date_key"`
	StartTime   string    `json:"start_time"`
	EndTime     string    `json:"end_time"`
	Status      string    `json:"status"`
	ClientName  string    `json:"client_name"`
	ClientEmail string    `json:"client_email"`
	ClientPhone string    `json:"client_phone,omitempty"`
	Notes       string    `json:"notes,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (b Booking) Attributes() map[string]string {
	return map[string]string{
		"id":           b.ID,
		"company_id":   b.CompanyID,
		"host_id":      b.HostID,
		"date_key":     b.DateKey,
		"start_time":   b.StartTime,
		"status":       b.Status,
		"client_email": b.ClientEmail,
	}
}

func (b *Booking) SetID(id string) { b.ID = id }

func (b *Booking) Stamp(companyID, userID string) {
	if companyID != "" {
		b.CompanyID = companyID
	}
	if b.HostID == "" {
		b.HostID = userID
	}
	if b.Status == "" {
		b.Status = BookingStatusConfirmed
	}
}

// KeepOwnership conserva empresa y anfitrión: una reserva no cambia de dueño al editarse.
func (b *Booking) KeepOwnership(prev *Booking) {
	b.ID = prev.ID
	b.CompanyID = prev.CompanyID
	b.HostID = prev.HostID
	b.CreatedAt = prev.CreatedAt
}

func (b *Booking) Touch(now time.Time) {
	if b.CreatedAt.IsZero() {
		b.CreatedAt = now
	}
	b.UpdatedAt = now
}

// IsActive indica si la reserva ocupa su franja.
func (b Booking) IsActive() bool {
	return b.Status != BookingStatusCancelled
}
