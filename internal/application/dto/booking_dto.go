package dto

import "time"

// BookingRequest solicitud pública de reserva. Date en YYYY-MM-DD y horas HH:MM, todo en la zona del anfitrión.
type BookingRequest struct {
	Date        string `json:"date" validate:"required,datetime=2006-01-02"`
	StartTime   string `json:"start_time" validate:"required,len=5"`
	EndTime     string `json:"end_time" validate:"required,len=5"`
	ClientName  string `json:"client_name" validate:"required,min=1,max=200"`
	ClientEmail string `json:"client_email" validate:"required,email"`
	ClientPhone string `json:"client_phone" validate:"omitempty,max=40"`
	Notes       string `json:"notes" validate:"omitempty,max=2000"`
}

// RescheduleRequest mueve una reserva a otra franja.
type RescheduleRequest struct {
	Date      string `json:"date" validate:"required,datetime=2006-01-02"`
	StartTime string `json:"start_time" validate:"required,len=5"`
	EndTime   string `json:"end_time" validate:"required,len=5"`
}

// BookingResponse salida de una reserva.
type BookingResponse struct {
	ID          string    `json:"id"`
	HostID      string    `json:"host_id"`
	Status      string    `json:"status"`
	StartAt     time.Time `json:"start_at"`
	EndAt       time.Time `json:"end_at"`
	Date        string    `json:"date"`
	StartTime   string    `json:"start_time"`
	EndTime     string    `json:"end_time"`
	ClientName  string    `json:"client_name"`
	ClientEmail string    `json:"client_email"`
}

// SlotResponse franja ofrecida en un día de la semana.
type SlotResponse struct {
	Start string `json:"start"`
	End   string `json:"end"`
	Label string `json:"label"`
}

// CalendarResponse agenda pública de un anfitrión dentro del horizonte.
type CalendarResponse struct {
	HostID      string                    `json:"host_id"`
	HostName    string                    `json:"host_name"`
	Timezone    string                    `json:"timezone"`
	Today       string                    `json:"today"`
	Dates       []string                  `json:"dates"`
	FullyBooked []string                  `json:"fully_booked"`
	SlotsByDay  map[string][]SlotResponse `json:"slots_by_day"`
	Taken       map[string][]string       `json:"taken"`
}
