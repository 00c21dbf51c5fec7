package scheduling

import (
	"fmt"
	"time"
	_ "time/tzdata" // base IANA embebida: el contenedor puede no traer /usr/share/zoneinfo

	"github.com/jhoicas/Bizops-api/internal/domain"
)

// DateKeyLayout es el formato de las claves de fecha (YYYY-MM-DD en la zona del anfitrión).
const DateKeyLayout = "2006-01-02"

// LoadZone carga una zona IANA. Rechaza "" y "Local": nunca se usa la zona del servidor.
func LoadZone(name string) (*time.Location, error) {
	if name == "" || name == "Local" {
		return nil, fmt.Errorf("zona %q: %w", name, domain.ErrTimezoneConversion)
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("zona %q: %w: %w", name, domain.ErrTimezoneConversion, err)
	}
	return loc, nil
}

// DateKey devuelve la fecha de t en la zona loc como YYYY-MM-DD.
func DateKey(t time.Time, loc *time.Location) string {
	return t.In(loc).Format(DateKeyLayout)
}

// ParseDateKey valida una clave YYYY-MM-DD y devuelve el mediodía de ese día en loc.
// Se usa el mediodía para que ningún cambio de horario mueva la fecha.
func ParseDateKey(key string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		return time.Time{}, fmt.Errorf("fecha %q sin zona: %w", key, domain.ErrTimezoneConversion)
	}
	d, err := time.Parse(DateKeyLayout, key)
	if err != nil {
		return time.Time{}, fmt.Errorf("fecha %q: %w: %w", key, domain.ErrTimezoneConversion, err)
	}
	return time.Date(d.Year(), d.Month(), d.Day(), 12, 0, 0, 0, loc), nil
}

// ZonedToUTC interpreta la hora local tod del día dateKey en la zona loc y devuelve el instante UTC.
// 24:00 es la medianoche del día siguiente. Una hora que no existe ese día (salto de horario de
// verano) es un error: no se corre a otra hora.
func ZonedToUTC(dateKey string, tod TimeOfDay, loc *time.Location) (time.Time, error) {
	noon, err := ParseDateKey(dateKey, loc)
	if err != nil {
		return time.Time{}, err
	}
	if tod < 0 || tod > minutesPerDay {
		return time.Time{}, fmt.Errorf("hora %d fuera de rango: %w", tod, domain.ErrTimezoneConversion)
	}
	h, m := tod.hm()
	local := time.Date(noon.Year(), noon.Month(), noon.Day(), h, m, 0, 0, loc)

	wantDay := noon
	if h == 24 {
		wantDay = noon.AddDate(0, 0, 1)
	}
	if local.Hour() != h%24 || local.Minute() != m || local.Day() != wantDay.Day() {
		return time.Time{}, fmt.Errorf("%s %s no existe en %s: %w", dateKey, tod, loc, domain.ErrTimezoneConversion)
	}
	return local.UTC(), nil
}
