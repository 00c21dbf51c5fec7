package scheduling_test

import (
	"testing"
	"time"

	"github.com/jhoicas/Bizops-api/internal/domain"
	"github.com/jhoicas/Bizops-api/internal/domain/scheduling"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newYork(t *testing.T) *time.Location {
	t.Helper()
	loc, err := scheduling.LoadZone("America/New_York")
	require.NoError(t, err)
	return loc
}

func TestLoadZone_RechazaZonaDelServidorYNombresInvalidos(t *testing.T) {
	for _, name := range []string{"", "Local", "Mars/Olympus"} {
		_, err := scheduling.LoadZone(name)
		assert.ErrorIs(t, err, domain.ErrTimezoneConversion, name)
	}
}

func TestZonedToUTC_DiasDeCambioDeHorario(t *testing.T) {
	loc := newYork(t)
	cases := []struct {
		date, at string
		want     time.Time
	}{
		// Segundo domingo de marzo: ya en EDT (UTC-4).
		{"2025-03-09", "09:00", time.Date(2025, 3, 9, 13, 0, 0, 0, time.UTC)},
		{"2025-03-09", "09:30", time.Date(2025, 3, 9, 13, 30, 0, 0, time.UTC)},
		// Primer domingo de noviembre: de vuelta a EST (UTC-5).
		{"2025-11-02", "09:00", time.Date(2025, 11, 2, 14, 0, 0, 0, time.UTC)},
		// Día normal de invierno.
		{"2025-01-15", "09:00", time.Date(2025, 1, 15, 14, 0, 0, 0, time.UTC)},
		{"2025-01-15", "24:00", time.Date(2025, 1, 16, 5, 0, 0, 0, time.UTC)},
	}
	for _, c := range cases {
		got, err := scheduling.ZonedToUTC(c.date, tod(c.at), loc)
		require.NoError(t, err, c.date+" "+c.at)
		assert.True(t, c.want.Equal(got), "%s %s: want %s got %s", c.date, c.at, c.want, got)
		assert.Equal(t, time.UTC, got.Location())
	}
}

func TestZonedToUTC_HoraInexistenteEsError(t *testing.T) {
	_, err := scheduling.ZonedToUTC("2025-03-09", tod("02:30"), newYork(t))
	assert.ErrorIs(t, err, domain.ErrTimezoneConversion)
}

func TestZonedToUTC_FechaMalformada(t *testing.T) {
	_, err := scheduling.ZonedToUTC("2025-13-40", tod("09:00"), newYork(t))
	assert.ErrorIs(t, err, domain.ErrTimezoneConversion)

	_, err = scheduling.ZonedToUTC("2025-03-10", tod("09:00"), nil)
	assert.ErrorIs(t, err, domain.ErrTimezoneConversion)
}

func TestZonedToUTC_NoDependeDeLaZonaDelServidor(t *testing.T) {
	bogota, err := scheduling.LoadZone("America/Bogota")
	require.NoError(t, err)
	got, err := scheduling.ZonedToUTC("2025-06-01", tod("08:00"), bogota)
	require.NoError(t, err)
	assert.Equal(t, "2025-06-01T13:00:00Z", got.Format(time.RFC3339))
}

func TestDateKey_EnZonaDelAnfitrion(t *testing.T) {
	instant := time.Date(2025, 3, 10, 3, 0, 0, 0, time.UTC)
	assert.Equal(t, "2025-03-09", scheduling.DateKey(instant, newYork(t)))
	assert.Equal(t, "2025-03-10", scheduling.DateKey(instant, time.UTC))
}
