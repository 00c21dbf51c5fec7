package scheduling_test

import (
	"testing"
	"time"

	"github.com/jhoicas/Bizops-api/internal/domain/entity"
	"github.com/jhoicas/Bizops-api/internal/domain/scheduling"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mondayTemplate(start, end string) scheduling.WeeklyTemplate {
	tpl, _ := scheduling.BuildWeeklyTemplate([]*entity.AvailabilityWindow{
		{ID: "w", DayOfWeek: int(time.Monday), StartTime: start, EndTime: end, SlotDuration: 30, Active: true},
	})
	return tpl
}

func TestEnumerateBookableDates_HoyEnLaZonaDelAnfitrion(t *testing.T) {
	tpl := mondayTemplate("09:00", "10:00")
	// Lunes 03:00 UTC = domingo 23:00 en Nueva York.
	now := time.Date(2025, 3, 10, 3, 0, 0, 0, time.UTC)

	assert.Empty(t, scheduling.EnumerateBookableDates(tpl, newYork(t), now, 1))
	assert.Equal(t, []string{"2025-03-10"}, scheduling.EnumerateBookableDates(tpl, newYork(t), now, 2))

	tokyo, err := scheduling.LoadZone("Asia/Tokyo")
	require.NoError(t, err)
	assert.Equal(t, []string{"2025-03-10"}, scheduling.EnumerateBookableDates(tpl, tokyo, now, 1))
}

func TestEnumerateBookableDates_HorizontePorDefecto(t *testing.T) {
	tpl := mondayTemplate("09:00", "10:00")
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	dates := scheduling.EnumerateBookableDates(tpl, time.UTC, now, 0)

	// 180 días desde el miércoles 1 de enero: 25 lunes.
	require.Len(t, dates, 25)
	assert.Equal(t, "2025-01-06", dates[0])
	for i := 1; i < len(dates); i++ {
		assert.Less(t, dates[i-1], dates[i])
	}
}

func TestEnumerateBookableDates_CruzaCambioDeHorario(t *testing.T) {
	tpl := mondayTemplate("09:00", "10:00")
	now := time.Date(2025, 3, 1, 15, 0, 0, 0, time.UTC)
	dates := scheduling.EnumerateBookableDates(tpl, newYork(t), now, 21)
	assert.Equal(t, []string{"2025-03-03", "2025-03-10", "2025-03-17"}, dates)
}

func booking(t *testing.T, loc *time.Location, date, start, status string) *entity.Booking {
	t.Helper()
	at, err := scheduling.ZonedToUTC(date, tod(start), loc)
	require.NoError(t, err)
	return &entity.Booking{HostID: "h", DateKey: date, StartTime: start, StartAt: at, EndAt: at.Add(30 * time.Minute), Status: status}
}

func TestComputeFullyBookedDates(t *testing.T) {
	loc := newYork(t)
	tpl := mondayTemplate("09:00", "10:30") // 3 franjas
	dates := []string{"2025-03-10", "2025-03-17"}

	bookings := []*entity.Booking{
		booking(t, loc, "2025-03-10", "09:00", entity.BookingStatusConfirmed),
		booking(t, loc, "2025-03-10", "09:30", entity.BookingStatusConfirmed),
		booking(t, loc, "2025-03-10", "10:00", entity.BookingStatusConfirmed),
		booking(t, loc, "2025-03-17", "09:00", entity.BookingStatusConfirmed),
		booking(t, loc, "2025-03-17", "09:30", entity.BookingStatusConfirmed),
		booking(t, loc, "2025-03-17", "10:00", entity.BookingStatusCancelled),
	}
	full := scheduling.ComputeFullyBookedDates(dates, tpl.SlotCounts(), bookings, loc)

	assert.True(t, full["2025-03-10"], "3 reservas con 3 franjas")
	assert.False(t, full["2025-03-17"], "2 activas con 3 franjas")
}

func TestComputeFullyBookedDates_DiaSinFranjasNuncaLleno(t *testing.T) {
	loc := newYork(t)
	full := scheduling.ComputeFullyBookedDates(
		[]string{"2025-03-11"}, map[time.Weekday]int{}, []*entity.Booking{booking(t, loc, "2025-03-11", "09:00", entity.BookingStatusConfirmed)}, loc)
	assert.Empty(t, full)
}

func TestBookedIndex(t *testing.T) {
	loc := newYork(t)
	idx := scheduling.BuildBookedIndex([]*entity.Booking{
		booking(t, loc, "2025-03-10", "09:00", entity.BookingStatusConfirmed),
		booking(t, loc, "2025-03-10", "09:30", entity.BookingStatusCancelled),
	}, loc)

	assert.True(t, scheduling.IsSlotTaken("2025-03-10", "09:00", idx))
	assert.False(t, scheduling.IsSlotTaken("2025-03-10", "09:30", idx))
	assert.False(t, scheduling.IsSlotTaken("2025-03-17", "09:00", idx))
	assert.Equal(t, map[string][]string{"2025-03-10": {"09:00"}}, idx.Taken())
}

func TestHorizonEnd(t *testing.T) {
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	assert.Equal(t, "2025-01-01", scheduling.HorizonEnd(time.UTC, now, 1))
	assert.Equal(t, "2025-06-29", scheduling.HorizonEnd(time.UTC, now, 0))
}
