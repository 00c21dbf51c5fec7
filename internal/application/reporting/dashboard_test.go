package reporting_test

import (
	"context"
	"testing"
	"time"

	"github.com/jhoicas/Bizops-api/internal/application/gateway"
	"github.com/jhoicas/Bizops-api/internal/application/reporting"
	"github.com/jhoicas/Bizops-api/internal/domain/access"
	"github.com/jhoicas/Bizops-api/internal/domain/entity"
	"github.com/jhoicas/Bizops-api/internal/infrastructure/memory"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2026, 2, 10, 12, 0, 0, 0, time.UTC)

func seed(t *testing.T) *reporting.DashboardUseCase {
	t.Helper()
	ctx := context.Background()
	store := memory.Open()
	s := store.Stores()

	invoices := []*entity.Invoice{
		{ID: "i1", CompanyID: "acme", OwnerID: "ana", Status: entity.InvoiceStatusSent, Total: decimal.NewFromInt(100), IssuedAt: now.AddDate(0, 0, -2)},
		{ID: "i2", CompanyID: "acme", OwnerID: "ana", Status: entity.InvoiceStatusPaid, Total: decimal.NewFromInt(50), IssuedAt: now.AddDate(0, -1, 0)},
		{ID: "i3", CompanyID: "acme", OwnerID: "ana", Status: entity.InvoiceStatusCancelled, Total: decimal.NewFromInt(999), IssuedAt: now},
		{ID: "i4", CompanyID: "acme", OwnerID: "bruno", Status: entity.InvoiceStatusSent, Total: decimal.NewFromInt(70), IssuedAt: now},
	}
	for _, i := range invoices {
		require.NoError(t, s.Invoices.Create(ctx, i))
	}
	require.NoError(t, s.Clients.Create(ctx, &entity.Client{ID: "c1", CompanyID: "acme", AssignedToID: "ana"}))
	require.NoError(t, s.Clients.Create(ctx, &entity.Client{ID: "c2", CompanyID: "acme", AssignedToID: "bruno"}))
	require.NoError(t, s.Leads.Create(ctx, &entity.Lead{ID: "l1", CompanyID: "acme", AssignedToID: "ana", Status: entity.LeadStatusNew}))
	require.NoError(t, s.Leads.Create(ctx, &entity.Lead{ID: "l2", CompanyID: "acme", AssignedToID: "bruno", Status: entity.LeadStatusWon}))
	require.NoError(t, s.Leads.Create(ctx, &entity.Lead{ID: "l3", CompanyID: "globex", AssignedToID: "x", Status: entity.LeadStatusNew}))
	bookings := []*entity.Booking{
		{ID: "b1", CompanyID: "acme", HostID: "ana", DateKey: "2026-02-12", StartTime: "09:00", Status: entity.BookingStatusConfirmed},
		{ID: "b2", CompanyID: "acme", HostID: "ana", DateKey: "2026-02-12", StartTime: "10:00", Status: entity.BookingStatusCancelled},
		{ID: "b3", CompanyID: "acme", HostID: "bruno", DateKey: "2026-02-16", StartTime: "09:00", Status: entity.BookingStatusConfirmed},
		{ID: "b4", CompanyID: "acme", HostID: "ana", DateKey: "2026-03-01", StartTime: "09:00", Status: entity.BookingStatusConfirmed},
	}
	for _, b := range bookings {
		require.NoError(t, s.Bookings.Create(ctx, b))
	}
	return reporting.NewDashboardUseCase(gateway.New(s, nil)).WithClock(func() time.Time { return now })
}

func TestDashboard_MiembroVeSoloLoSuyo(t *testing.T) {
	uc := seed(t)
	out, err := uc.GetSummary(context.Background(), access.Principal{ID: "ana", TenantID: "acme", Role: entity.RoleMember})
	require.NoError(t, err)

	assert.Equal(t, "Febrero 2026", out.DateLabel)
	assert.Equal(t, 3, out.InvoiceCount)
	assert.True(t, decimal.NewFromInt(100).Equal(out.InvoicedMonth), out.InvoicedMonth.String())
	assert.True(t, decimal.NewFromInt(100).Equal(out.Outstanding))
	assert.True(t, decimal.NewFromInt(50).Equal(out.Collected))
	assert.Equal(t, 1, out.ClientCount)
	assert.Equal(t, map[string]int{entity.LeadStatusNew: 1}, out.LeadsByStatus)
	assert.Equal(t, 1, out.UpcomingBookings)
}

func TestDashboard_OwnerVeLaEmpresaPeroNoFacturasAjenas(t *testing.T) {
	uc := seed(t)
	out, err := uc.GetSummary(context.Background(), access.Principal{ID: "boss", TenantID: "acme", Role: entity.RoleOwner})
	require.NoError(t, err)

	assert.Equal(t, 0, out.InvoiceCount)
	assert.True(t, out.Outstanding.IsZero())
	assert.Equal(t, 2, out.ClientCount)
	assert.Equal(t, map[string]int{entity.LeadStatusNew: 1, entity.LeadStatusWon: 1}, out.LeadsByStatus)
	assert.Equal(t, 2, out.UpcomingBookings)
}

func TestDashboard_SinEmpresaNoVeNada(t *testing.T) {
	uc := seed(t)
	out, err := uc.GetSummary(context.Background(), access.Principal{ID: "ghost", Role: entity.RoleMember})
	require.NoError(t, err)
	assert.Zero(t, out.InvoiceCount)
	assert.Zero(t, out.ClientCount)
	assert.Empty(t, out.LeadsByStatus)
	assert.Zero(t, out.UpcomingBookings)
}
