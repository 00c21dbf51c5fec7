package memory_test

import (
	"context"
	"sync"
	"testing"

	"github.com/jhoicas/Bizops-api/internal/domain"
	"github.com/jhoicas/Bizops-api/internal/domain/entity"
	"github.com/jhoicas/Bizops-api/internal/domain/repository"
	"github.com/jhoicas/Bizops-api/internal/infrastructure/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_CreateAsignaIDYFindOneDevuelveCopia(t *testing.T) {
	ctx := context.Background()
	stores := memory.Open().Stores()

	c := &entity.Client{CompanyID: "co-1", Name: "Ana"}
	require.NoError(t, stores.Clients.Create(ctx, c))
	require.NotEmpty(t, c.ID)

	got, err := stores.Clients.FindOne(ctx, repository.Filter{"id": c.ID})
	require.NoError(t, err)
	require.NotNil(t, got)
	got.Name = "modificado"

	again, err := stores.Clients.FindOne(ctx, repository.Filter{"id": c.ID})
	require.NoError(t, err)
	assert.Equal(t, "Ana", again.Name)
}

func TestStore_FindOneSinCoincidenciaDevuelveNil(t *testing.T) {
	got, err := memory.Open().Stores().Leads.FindOne(context.Background(), repository.Filter{"id": "nope"})
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestStore_FiltroConColumnaDesconocida(t *testing.T) {
	_, err := memory.Open().Stores().Clients.FindMany(context.Background(), repository.Filter{"password": "x"}, repository.ListOptions{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestStore_FindManyRangoYPaginacion(t *testing.T) {
	ctx := context.Background()
	bookings := memory.Open().Stores().Bookings
	for _, d := range []string{"2025-01-01", "2025-01-02", "2025-01-03", "2025-01-04"} {
		require.NoError(t, bookings.Create(ctx, &entity.Booking{HostID: "h", DateKey: d, StartTime: "09:00", Status: entity.BookingStatusConfirmed}))
	}

	got, err := bookings.FindMany(ctx, repository.Filter{"host_id": "h"}, repository.ListOptions{RangeField: "date_key", From: "2025-01-02", To: "2025-01-03"})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "2025-01-02", got[0].DateKey)

	page, err := bookings.FindMany(ctx, repository.Filter{}, repository.ListOptions{Limit: 2, Offset: 1})
	require.NoError(t, err)
	require.Len(t, page, 2)
	assert.Equal(t, "2025-01-02", page[0].DateKey)
}

func TestStore_ReservaActivaDuplicadaEsRechazada(t *testing.T) {
	ctx := context.Background()
	bookings := memory.Open().Stores().Bookings
	first := &entity.Booking{HostID: "h", DateKey: "2025-03-10", StartTime: "09:00", Status: entity.BookingStatusConfirmed}
	require.NoError(t, bookings.Create(ctx, first))

	err := bookings.Create(ctx, &entity.Booking{HostID: "h", DateKey: "2025-03-10", StartTime: "09:00", Status: entity.BookingStatusConfirmed})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	// Cancelada libera la franja.
	first.Status = entity.BookingStatusCancelled
	n, err := bookings.Update(ctx, repository.Filter{}, first)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
	assert.NoError(t, bookings.Create(ctx, &entity.Booking{HostID: "h", DateKey: "2025-03-10", StartTime: "09:00", Status: entity.BookingStatusConfirmed}))
}

func TestStore_EmailDeUsuarioUnicoSinMayusculas(t *testing.T) {
	ctx := context.Background()
	users := memory.Open().Stores().Users
	require.NoError(t, users.Create(ctx, &entity.User{Email: "ana@acme.io", Slug: "ana"}))
	err := users.Create(ctx, &entity.User{Email: "ANA@acme.io", Slug: "ana-2"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestStore_UpdateRespetaFiltro(t *testing.T) {
	ctx := context.Background()
	clients := memory.Open().Stores().Clients
	c := &entity.Client{CompanyID: "co-1", Name: "Ana"}
	require.NoError(t, clients.Create(ctx, c))

	c.Name = "Otra"
	n, err := clients.Update(ctx, repository.Filter{"company_id": "co-2"}, c)
	require.NoError(t, err)
	assert.Zero(t, n)

	n, err = clients.Update(ctx, repository.Filter{"company_id": "co-1"}, c)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

func TestStore_DeleteDevuelveFilasAfectadas(t *testing.T) {
	ctx := context.Background()
	leads := memory.Open().Stores().Leads
	require.NoError(t, leads.Create(ctx, &entity.Lead{CompanyID: "co-1"}))
	require.NoError(t, leads.Create(ctx, &entity.Lead{CompanyID: "co-1"}))
	require.NoError(t, leads.Create(ctx, &entity.Lead{CompanyID: "co-2"}))

	n, err := leads.Delete(ctx, repository.Filter{"company_id": "co-1"})
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)
}

func TestStore_CerradoDevuelveErrStoreClosed(t *testing.T) {
	s := memory.Open()
	s.Close()
	_, err := s.Stores().Users.FindOne(context.Background(), repository.Filter{})
	assert.ErrorIs(t, err, memory.ErrStoreClosed)
}

func TestStore_RunLockedSerializaPorClave(t *testing.T) {
	s := memory.Open()
	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		inside  int
		maxSeen int
	)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = s.RunLocked(context.Background(), "h|2025-03-10|09:00", func(repository.Stores) error {
				mu.Lock()
				inside++
				if inside > maxSeen {
					maxSeen = inside
				}
				mu.Unlock()

				mu.Lock()
				inside--
				mu.Unlock()
				return nil
			})
		}()
	}
	wg.Wait()
	assert.Equal(t, 1, maxSeen)
}
