package entity

import (
	"strconv"
	"time"
)

// AvailabilityWindow es una franja semanal recurrente en la que un anfitrión acepta reservas.
// DayOfWeek: 0 = domingo ... 6 = sábado. StartTime/EndTime en formato HH:MM, hora local del anfitrión.
type AvailabilityWindow struct {
	ID           string    `json:"id"`
	CompanyID    string    `json:"company_id"`
	HostID       string    `json:"host_id"`
	DayOfWeek    int       `json:"day_of_week"`
	StartTime    string    `json:"start_time"`
	EndTime      string    `json:"end_time"`
	SlotDuration int       `json:"slot_duration"`
	Buffer       int       `json:"buffer"`
	Active       bool      `json:"active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (w AvailabilityWindow) Attributes() map[string]string {
	return map[string]string{
		"id":          w.ID,
		"company_id":  w.CompanyID,
		"host_id":     w.HostID,
		"day_of_week": strconv.Itoa(w.DayOfWeek),
		"active":      strconv.FormatBool(w.Active),
	}
}

func (w *AvailabilityWindow) SetID(id string) { w.ID = id }

// Stamp fija la empresa y, si no viene anfitrión, la franja queda a nombre de quien la crea.
func (w *AvailabilityWindow) Stamp(companyID, userID string) {
	if companyID != "" {
		w.CompanyID = companyID
	}
	if w.HostID == "" {
		w.HostID = userID
	}
}

func (w *AvailabilityWindow) KeepOwnership(prev *AvailabilityWindow) {
	w.ID = prev.ID
	w.CompanyID = prev.CompanyID
	w.CreatedAt = prev.CreatedAt
	if w.HostID == "" {
		w.HostID = prev.HostID
	}
}

func (w *AvailabilityWindow) Touch(now time.Time) {
	if w.CreatedAt.IsZero() {
		w.CreatedAt = now
	}
	w.UpdatedAt = now
}
