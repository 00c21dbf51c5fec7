package scheduling

import (
	"time"

	"github.com/jhoicas/Bizops-api/internal/domain/entity"
)

// WeeklyTemplate agrupa por día de la semana las franjas de todas las ventanas activas.
type WeeklyTemplate map[time.Weekday][]Slot

// BuildWeeklyTemplate arma la plantilla semanal. Las ventanas inactivas se ignoran y las
// inválidas no aportan franjas; sus IDs se devuelven en skipped para que quien llama los registre.
func BuildWeeklyTemplate(windows []*entity.AvailabilityWindow) (tpl WeeklyTemplate, skipped []string) {
	tpl = WeeklyTemplate{}
	for _, w := range windows {
		if w == nil || !w.Active {
			continue
		}
		slots, err := WindowSlots(*w)
		if err != nil {
			skipped = append(skipped, w.ID)
			continue
		}
		day := time.Weekday(w.DayOfWeek)
		tpl[day] = append(tpl[day], slots...)
	}
	for day, slots := range tpl {
		tpl[day] = sortSlots(slots)
		if len(tpl[day]) == 0 {
			delete(tpl, day)
		}
	}
	return tpl, skipped
}

// SlotCounts devuelve cuántas franjas ofrece cada día de la semana.
func (t WeeklyTemplate) SlotCounts() map[time.Weekday]int {
	out := make(map[time.Weekday]int, len(t))
	for day, slots := range t {
		out[day] = len(slots)
	}
	return out
}

// Offered busca la franja exacta [start, end) entre las ofrecidas ese día.
func (t WeeklyTemplate) Offered(day time.Weekday, start, end TimeOfDay) (Slot, bool) {
	for _, s := range t[day] {
		if s.Start == start && s.End == end {
			return s, true
		}
	}
	return Slot{}, false
}
