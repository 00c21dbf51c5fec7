package scheduling

import (
	"sort"
	"time"

	"github.com/jhoicas/Bizops-api/internal/domain/entity"
)

// DefaultHorizonDays es el horizonte de reserva cuando no se configura otro.
const DefaultHorizonDays = 180

// EnumerateBookableDates recorre horizonDays días desde hoy (en la zona del anfitrión) y
// conserva los que tienen al menos una franja en la plantilla. Las fechas se comparan como
// claves YYYY-MM-DD de la zona del anfitrión, nunca con la zona del servidor.
func EnumerateBookableDates(tpl WeeklyTemplate, loc *time.Location, now time.Time, horizonDays int) []string {
	if horizonDays <= 0 {
		horizonDays = DefaultHorizonDays
	}
	dates := []string{}
	if loc == nil {
		return dates
	}
	today := now.In(loc)
	todayKey := today.Format(DateKeyLayout)
	for i := 0; i < horizonDays; i++ {
		day := time.Date(today.Year(), today.Month(), today.Day()+i, 12, 0, 0, 0, loc)
		key := day.Format(DateKeyLayout)
		if key < todayKey {
			continue
		}
		if len(tpl[day.Weekday()]) > 0 {
			dates = append(dates, key)
		}
	}
	return dates
}

// HorizonEnd devuelve la última fecha (YYYY-MM-DD) del horizonte que empieza hoy en loc.
func HorizonEnd(loc *time.Location, now time.Time, horizonDays int) string {
	if horizonDays <= 0 {
		horizonDays = DefaultHorizonDays
	}
	today := now.In(loc)
	last := time.Date(today.Year(), today.Month(), today.Day()+horizonDays-1, 12, 0, 0, 0, loc)
	return last.Format(DateKeyLayout)
}

// ComputeFullyBookedDates devuelve las fechas cuyo número de reservas activas alcanza las
// franjas de su día de la semana. Un día sin franjas nunca está lleno. La clave de cada
// reserva se recalcula desde StartAt en la zona del anfitrión.
func ComputeFullyBookedDates(dates []string, slotCounts map[time.Weekday]int, bookings []*entity.Booking, loc *time.Location) map[string]bool {
	full := map[string]bool{}
	if loc == nil {
		return full
	}
	perDay := map[string]int{}
	for _, b := range bookings {
		if b == nil || !b.IsActive() {
			continue
		}
		perDay[bookingDateKey(b, loc)]++
	}
	for _, key := range dates {
		day, err := ParseDateKey(key, loc)
		if err != nil {
			continue
		}
		slots := slotCounts[day.Weekday()]
		if slots > 0 && perDay[key] >= slots {
			full[key] = true
		}
	}
	return full
}

func bookingDateKey(b *entity.Booking, loc *time.Location) string {
	if !b.StartAt.IsZero() && loc != nil {
		return DateKey(b.StartAt, loc)
	}
	return b.DateKey
}

func bookingStartKey(b *entity.Booking, loc *time.Location) string {
	if !b.StartAt.IsZero() && loc != nil {
		return b.StartAt.In(loc).Format("15:04")
	}
	return b.StartTime
}

// BookedIndex mapea fecha -> inicios HH:MM ocupados.
type BookedIndex map[string]map[string]struct{}

// BuildBookedIndex indexa las reservas activas en una pasada, con fecha e inicio en la zona loc.
// Con loc nil usa DateKey y StartTime tal como se guardaron.
func BuildBookedIndex(bookings []*entity.Booking, loc *time.Location) BookedIndex {
	idx := BookedIndex{}
	for _, b := range bookings {
		if b == nil || !b.IsActive() {
			continue
		}
		date := bookingDateKey(b, loc)
		starts, ok := idx[date]
		if !ok {
			starts = map[string]struct{}{}
			idx[date] = starts
		}
		starts[bookingStartKey(b, loc)] = struct{}{}
	}
	return idx
}

// IsSlotTaken informa si el inicio ya está ocupado en esa fecha.
func IsSlotTaken(dateKey, start string, idx BookedIndex) bool {
	_, taken := idx[dateKey][start]
	return taken
}

// Taken devuelve, por fecha, los inicios ocupados.
func (idx BookedIndex) Taken() map[string][]string {
	out := make(map[string][]string, len(idx))
	for date, starts := range idx {
		list := make([]string, 0, len(starts))
		for s := range starts {
			list = append(list, s)
		}
		sort.Strings(list)
		out[date] = list
	}
	return out
}
