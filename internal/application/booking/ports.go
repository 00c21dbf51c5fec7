package booking

import (
	"context"
	"time"
)

// CalendarCache guarda agendas ya calculadas. Cualquier error de Get se trata como ausencia.
type CalendarCache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// Recorder recibe los eventos del motor de reservas (métricas).
type Recorder interface {
	BookingCreated()
	BookingCancelled()
	BookingConflict(reason string)
	CalendarServed(cached bool)
}

// ModuleChecker informa si la empresa tiene un módulo activo.
type ModuleChecker interface {
	HasActiveModule(ctx context.Context, companyID, moduleName string) (bool, error)
}

type nopRecorder struct{}

func (nopRecorder) BookingCreated()        {}
func (nopRecorder) BookingCancelled()      {}
func (nopRecorder) BookingConflict(string) {}
func (nopRecorder) CalendarServed(bool)    {}
