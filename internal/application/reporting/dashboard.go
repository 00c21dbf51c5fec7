// Package reporting contiene el resumen del dashboard. Todo se lee con el alcance del
// principal: un miembro ve solo sus facturas, sus clientes asignados y sus reservas.
package reporting

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/Bizops-api/internal/application/dto"
	"github.com/jhoicas/Bizops-api/internal/application/gateway"
	"github.com/jhoicas/Bizops-api/internal/domain/access"
	"github.com/jhoicas/Bizops-api/internal/domain/entity"
	"github.com/jhoicas/Bizops-api/internal/domain/repository"
	"github.com/jhoicas/Bizops-api/internal/domain/scheduling"
	"github.com/shopspring/decimal"
)

const upcomingDays = 7 // ventana de reservas próximas del widget

// DashboardUseCase genera el resumen del mes en curso.
type DashboardUseCase struct {
	gw  *gateway.Gateway
	now func() time.Time
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(gw *gateway.Gateway) *DashboardUseCase {
	return &DashboardUseCase{gw: gw, now: time.Now}
}

// WithClock reemplaza el reloj (pruebas).
func (uc *DashboardUseCase) WithClock(now func() time.Time) *DashboardUseCase {
	uc.now = now
	return uc
}

// GetSummary lanza en paralelo las cuatro lecturas (facturas, clientes, leads y reservas)
// y arma el resumen. Las fechas del mes y de reservas próximas se toman en UTC.
func (uc *DashboardUseCase) GetSummary(ctx context.Context, p access.Principal) (*dto.DashboardSummary, error) {
	now := uc.now().UTC()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	scope := uc.gw.Scoped(p)

	type invoicesResult struct {
		rows []*entity.Invoice
		err  error
	}
	type clientsResult struct {
		rows []*entity.Client
		err  error
	}
	type leadsResult struct {
		rows []*entity.Lead
		err  error
	}
	type bookingsResult struct {
		rows []*entity.Booking
		err  error
	}

	invCh := make(chan invoicesResult, 1)
	cliCh := make(chan clientsResult, 1)
	leadCh := make(chan leadsResult, 1)
	bookCh := make(chan bookingsResult, 1)

	go func() {
		rows, err := scope.Invoices.FindMany(ctx, nil, repository.ListOptions{})
		invCh <- invoicesResult{rows, err}
	}()
	go func() {
		rows, err := scope.Clients.FindMany(ctx, nil, repository.ListOptions{})
		cliCh <- clientsResult{rows, err}
	}()
	go func() {
		rows, err := scope.Leads.FindMany(ctx, nil, repository.ListOptions{})
		leadCh <- leadsResult{rows, err}
	}()
	go func() {
		rows, err := scope.Bookings.FindMany(ctx,
			repository.Filter{"status": entity.BookingStatusConfirmed},
			repository.ListOptions{
				RangeField: "date_key",
				From:       scheduling.DateKey(now, time.UTC),
				To:         scheduling.DateKey(now.AddDate(0, 0, upcomingDays-1), time.UTC),
			})
		bookCh <- bookingsResult{rows, err}
	}()

	inv := <-invCh
	cli := <-cliCh
	leads := <-leadCh
	books := <-bookCh

	if inv.err != nil {
		return nil, fmt.Errorf("dashboard: facturas: %w", inv.err)
	}
	if cli.err != nil {
		return nil, fmt.Errorf("dashboard: clientes: %w", cli.err)
	}
	if leads.err != nil {
		return nil, fmt.Errorf("dashboard: leads: %w", leads.err)
	}
	if books.err != nil {
		return nil, fmt.Errorf("dashboard: reservas: %w", books.err)
	}

	out := &dto.DashboardSummary{
		DateLabel:        monthLabel(now),
		InvoicedMonth:    decimal.Zero,
		Outstanding:      decimal.Zero,
		Collected:        decimal.Zero,
		InvoiceCount:     len(inv.rows),
		ClientCount:      len(cli.rows),
		LeadsByStatus:    map[string]int{},
		UpcomingBookings: len(books.rows),
	}
	for _, i := range inv.rows {
		switch i.Status {
		case entity.InvoiceStatusCancelled, entity.InvoiceStatusDraft:
			continue
		case entity.InvoiceStatusPaid:
			out.Collected = out.Collected.Add(i.Total)
		default:
			out.Outstanding = out.Outstanding.Add(i.Total)
		}
		if !i.IssuedAt.Before(monthStart) {
			out.InvoicedMonth = out.InvoicedMonth.Add(i.Total)
		}
	}
	for _, l := range leads.rows {
		out.LeadsByStatus[l.Status]++
	}
	out.InvoicedMonth = out.InvoicedMonth.Round(2)
	out.Outstanding = out.Outstanding.Round(2)
	out.Collected = out.Collected.Round(2)
	return out, nil
}

// monthLabel devuelve una etiqueta legible del mes, ej: "Febrero 2026".
func monthLabel(t time.Time) string {
	months := [...]string{
		"Enero", "Febrero", "Marzo", "Abril", "Mayo", "Junio",
		"Julio", "Agosto", "Septiembre", "Octubre", "Noviembre", "Diciembre",
	}
	return fmt.Sprintf("%s %d", months[t.Month()-1], t.Year())
}
