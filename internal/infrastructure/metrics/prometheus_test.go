package metrics

import (
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Bizops-api/internal/domain/access"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_EventosDeReserva(t *testing.T) {
	m := New("bizops")
	m.BookingCreated()
	m.BookingCreated()
	m.BookingCancelled()
	m.BookingConflict("same_start")
	m.BookingConflict("")
	m.CalendarServed(true)
	m.CalendarServed(false)
	m.Deny(access.KindInvoice, "find_many")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.bookings.WithLabelValues("created")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.bookings.WithLabelValues("cancelled")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.bookingConflicts.WithLabelValues("same_start")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.bookingConflicts.WithLabelValues("unknown")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.calendars.WithLabelValues("cache")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.accessDenied.WithLabelValues("invoice", "find_many")))
}

func TestMetrics_MiddlewareYHandler(t *testing.T) {
	m := New("bizops")
	app := fiber.New()
	app.Use(m.Middleware())
	app.Get("/items/:id", func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusNoContent) })
	app.Get("/boom", func(c *fiber.Ctx) error { return fiber.NewError(fiber.StatusTeapot, "x") })
	app.Get("/metrics", m.Handler())

	for _, path := range []string{"/items/1", "/items/2", "/boom"} {
		resp, err := app.Test(httptest.NewRequest("GET", path, nil))
		require.NoError(t, err)
		resp.Body.Close()
	}
	assert.Equal(t, 2.0, testutil.ToFloat64(m.httpRequests.WithLabelValues("GET", "/items/:id", "204")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.httpRequests.WithLabelValues("GET", "/boom", "418")))

	resp, err := app.Test(httptest.NewRequest("GET", "/metrics", nil))
	require.NoError(t, err)
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "bizops_http_requests_total")
}
