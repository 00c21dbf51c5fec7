// Package scheduling convierte la disponibilidad semanal de un anfitrión en franjas
// reservables y fechas concretas, siempre en la zona horaria del anfitrión.
package scheduling

import (
	"fmt"
	"sort"

	"github.com/jhoicas/Bizops-api/internal/domain"
	"github.com/jhoicas/Bizops-api/internal/domain/entity"
)

// Valores por defecto al construir franjas.
const (
	DefaultSlotDuration = 30
	minutesPerDay       = 24 * 60
)

// TimeOfDay son minutos desde la medianoche local (0..1440).
type TimeOfDay int

// ParseTimeOfDay interpreta "HH:MM". Acepta 24:00 como fin de día.
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	if len(s) != 5 || s[2] != ':' || !isDigits(s[:2]) || !isDigits(s[3:]) {
		return 0, fmt.Errorf("hora %q: %w", s, domain.ErrInvalidInput)
	}
	h := int(s[0]-'0')*10 + int(s[1]-'0')
	m := int(s[3]-'0')*10 + int(s[4]-'0')
	if m > 59 || h > 24 || (h == 24 && m != 0) {
		return 0, fmt.Errorf("hora %q fuera de rango: %w", s, domain.ErrInvalidInput)
	}
	return TimeOfDay(h*60 + m), nil
}

func isDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// MustTimeOfDay es ParseTimeOfDay para literales conocidos; entra en pánico si s es inválida.
func MustTimeOfDay(s string) TimeOfDay {
	t, err := ParseTimeOfDay(s)
	if err != nil {
		panic(err)
	}
	return t
}

func (t TimeOfDay) hm() (int, int) { return int(t) / 60, int(t) % 60 }

// String devuelve la hora en formato HH:MM (clave de reserva).
func (t TimeOfDay) String() string {
	h, m := t.hm()
	return fmt.Sprintf("%02d:%02d", h, m)
}

// Label devuelve la hora en formato de 12 horas, ej. "9:00 AM".
func (t TimeOfDay) Label() string {
	h, m := t.hm()
	h %= 24
	suffix := "AM"
	if h >= 12 {
		suffix = "PM"
	}
	h12 := h % 12
	if h12 == 0 {
		h12 = 12
	}
	return fmt.Sprintf("%d:%02d %s", h12, m, suffix)
}

// Slot es una franja [Start, End) dentro de un día. Dos franjas son la misma si coinciden inicio y fin.
type Slot struct {
	Start TimeOfDay `json:"-"`
	End   TimeOfDay `json:"-"`
	Label string    `json:"label"`
}

// StartKey devuelve el inicio en HH:MM.
func (s Slot) StartKey() string { return s.Start.String() }

// EndKey devuelve el fin en HH:MM.
func (s Slot) EndKey() string { return s.End.String() }

// Overlaps informa si dos franjas comparten algún minuto.
func (s Slot) Overlaps(o Slot) bool { return s.Start < o.End && o.Start < s.End }

// BuildSlots recorre [start, end) en pasos de duration+buffer y emite cada franja que cabe completa.
// duration <= 0 se toma como 30 y buffer < 0 como 0. Con start >= end devuelve una lista vacía.
func BuildSlots(start, end TimeOfDay, duration, buffer int) []Slot {
	if duration <= 0 {
		duration = DefaultSlotDuration
	}
	if buffer < 0 {
		buffer = 0
	}
	slots := []Slot{}
	if start >= end {
		return slots
	}
	step := TimeOfDay(duration + buffer)
	for cur := start; cur+TimeOfDay(duration) <= end; cur += step {
		s := Slot{Start: cur, End: cur + TimeOfDay(duration)}
		s.Label = s.Start.Label() + " - " + s.End.Label()
		slots = append(slots, s)
	}
	return slots
}

// ValidateWindow revisa día de la semana, formato de horas y que el inicio sea anterior al fin.
func ValidateWindow(w entity.AvailabilityWindow) error {
	if w.DayOfWeek < 0 || w.DayOfWeek > 6 {
		return fmt.Errorf("day_of_week %d: %w", w.DayOfWeek, domain.ErrInvalidAvailabilityWindow)
	}
	start, err := ParseTimeOfDay(w.StartTime)
	if err != nil {
		return fmt.Errorf("start_time: %w: %w", domain.ErrInvalidAvailabilityWindow, err)
	}
	end, err := ParseTimeOfDay(w.EndTime)
	if err != nil {
		return fmt.Errorf("end_time: %w: %w", domain.ErrInvalidAvailabilityWindow, err)
	}
	if start >= end || start >= minutesPerDay {
		return fmt.Errorf("%s-%s: %w", w.StartTime, w.EndTime, domain.ErrInvalidAvailabilityWindow)
	}
	return nil
}

// WindowSlots genera las franjas de una ventana. Si la ventana es inválida devuelve
// una lista vacía junto con ErrInvalidAvailabilityWindow; quien llama decide si lo registra.
func WindowSlots(w entity.AvailabilityWindow) ([]Slot, error) {
	if err := ValidateWindow(w); err != nil {
		return []Slot{}, err
	}
	start, _ := ParseTimeOfDay(w.StartTime)
	end, _ := ParseTimeOfDay(w.EndTime)
	return BuildSlots(start, end, w.SlotDuration, w.Buffer), nil
}

// sortSlots ordena por inicio y luego por fin, y elimina duplicados exactos.
func sortSlots(in []Slot) []Slot {
	sort.Slice(in, func(i, j int) bool {
		if in[i].Start != in[j].Start {
			return in[i].Start < in[j].Start
		}
		return in[i].End < in[j].End
	})
	out := in[:0]
	for _, s := range in {
		if n := len(out); n > 0 && out[n-1].Start == s.Start && out[n-1].End == s.End {
			continue
		}
		out = append(out, s)
	}
	return out
}
