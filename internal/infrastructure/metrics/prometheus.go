// Package metrics expone contadores Prometheus del gateway y del motor de reservas.
package metrics

import (
	"errors"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/jhoicas/Bizops-api/internal/domain/access"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var defaultBuckets = []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5}

// Metrics agrupa los collectors sobre un registro propio (no el global).
type Metrics struct {
	registry *prometheus.Registry

	httpRequests *prometheus.CounterVec
	httpDuration *prometheus.HistogramVec

	bookings         *prometheus.CounterVec
	bookingConflicts *prometheus.CounterVec
	calendars        *prometheus.CounterVec
	accessDenied     *prometheus.CounterVec
}

// New registra los collectors bajo el namespace dado.
func New(namespace string) *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())
	reg.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	m := &Metrics{
		registry: reg,
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Peticiones HTTP por método, ruta y código",
		}, []string{"method", "route", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "Duración de las peticiones HTTP",
			Buckets:   defaultBuckets,
		}, []string{"method", "route"}),
		bookings: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "bookings_total",
			Help:      "Reservas creadas y canceladas",
		}, []string{"event"}),
		bookingConflicts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "booking_conflicts_total",
			Help:      "Reservas rechazadas por franja ocupada, por motivo",
		}, []string{"reason"}),
		calendars: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "calendar_requests_total",
			Help:      "Agendas públicas servidas, desde caché o calculadas",
		}, []string{"source"}),
		accessDenied: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "access_denied_total",
			Help:      "Operaciones vaciadas o rechazadas por el alcance del principal",
		}, []string{"kind", "op"}),
	}
	reg.MustRegister(m.httpRequests, m.httpDuration, m.bookings, m.bookingConflicts, m.calendars, m.accessDenied)
	return m
}

// Registry devuelve el registro (pruebas y exportadores adicionales).
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

func (m *Metrics) BookingCreated()   { m.bookings.WithLabelValues("created").Inc() }
func (m *Metrics) BookingCancelled() { m.bookings.WithLabelValues("cancelled").Inc() }

func (m *Metrics) BookingConflict(reason string) {
	if reason == "" {
		reason = "unknown"
	}
	m.bookingConflicts.WithLabelValues(reason).Inc()
}

func (m *Metrics) CalendarServed(cached bool) {
	source := "computed"
	if cached {
		source = "cache"
	}
	m.calendars.WithLabelValues(source).Inc()
}

// Deny tiene la firma de access.DenyHook.
func (m *Metrics) Deny(kind access.Kind, op string) {
	m.accessDenied.WithLabelValues(string(kind), op).Inc()
}

// Handler sirve /metrics en formato Prometheus.
func (m *Metrics) Handler() fiber.Handler {
	return adaptor.HTTPHandler(promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry}))
}

// Middleware mide cada petición usando la ruta registrada (no la URL) para acotar la cardinalidad.
func (m *Metrics) Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		route := "unmatched"
		if r := c.Route(); r != nil && r.Path != "" {
			route = r.Path
		}
		status := c.Response().StatusCode()
		var fe *fiber.Error
		if errors.As(err, &fe) {
			status = fe.Code
		} else if err != nil {
			status = fiber.StatusInternalServerError
		}
		m.httpRequests.WithLabelValues(c.Method(), route, strconv.Itoa(status)).Inc()
		m.httpDuration.WithLabelValues(c.Method(), route).Observe(time.Since(start).Seconds())
		return err
	}
}
