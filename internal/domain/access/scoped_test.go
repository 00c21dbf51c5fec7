package access_test

import (
	"context"
	"testing"

	"github.com/jhoicas/Bizops-api/internal/domain"
	"github.com/jhoicas/Bizops-api/internal/domain/access"
	"github.com/jhoicas/Bizops-api/internal/domain/entity"
	"github.com/jhoicas/Bizops-api/internal/domain/repository"
	"github.com/jhoicas/Bizops-api/internal/infrastructure/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedClients(t *testing.T) repository.Repository[entity.Client] {
	t.Helper()
	ctx := context.Background()
	clients := memory.Open().Stores().Clients
	for _, c := range []*entity.Client{
		{ID: "c1", CompanyID: "acme", AssignedToID: "member-1", Name: "Uno"},
		{ID: "c2", CompanyID: "acme", AssignedToID: "admin-1", Name: "Dos"},
		{ID: "c3", CompanyID: "globex", AssignedToID: "g-1", Name: "Tres"},
	} {
		require.NoError(t, clients.Create(ctx, c))
	}
	return clients
}

func TestScoped_FindManySoloDevuelveRegistrosAutorizados(t *testing.T) {
	ctx := context.Background()
	inner := seedClients(t)
	all, err := inner.FindMany(ctx, nil, repository.ListOptions{})
	require.NoError(t, err)

	for _, p := range []access.Principal{superAdmin, ownerAcme, adminAcme, memberAcme} {
		scoped := access.NewScoped(inner, p, access.KindClient, nil)
		got, err := scoped.FindMany(ctx, nil, repository.ListOptions{})
		require.NoError(t, err)

		ids := map[string]bool{}
		for _, c := range got {
			assert.True(t, access.Authorize(p, c, access.KindClient), "role=%s id=%s", p.Role, c.ID)
			ids[c.ID] = true
		}
		// Todo registro autorizado aparece.
		for _, c := range all {
			if access.Authorize(p, c, access.KindClient) {
				assert.True(t, ids[c.ID], "role=%s falta %s", p.Role, c.ID)
			}
		}
	}
}

func TestScoped_FindOneFueraDeAlcanceDevuelveNil(t *testing.T) {
	scoped := access.NewScoped(seedClients(t), memberAcme, access.KindClient, nil)
	got, err := scoped.FindOne(context.Background(), repository.Filter{"id": "c2"})
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestScoped_InsatisfacibleDevuelveVacioSinError(t *testing.T) {
	ctx := context.Background()
	var denied []string
	orphan := access.Principal{ID: "o", Role: entity.RoleAdmin}
	scoped := access.NewScoped(seedClients(t), orphan, access.KindClient, func(_ access.Kind, op string) {
		denied = append(denied, op)
	})

	list, err := scoped.FindMany(ctx, nil, repository.ListOptions{})
	require.NoError(t, err)
	assert.NotNil(t, list)
	assert.Empty(t, list)

	n, err := scoped.Delete(ctx, repository.Filter{"id": "c1"})
	require.NoError(t, err)
	assert.Zero(t, n)

	n, err = scoped.Update(ctx, repository.Filter{}, &entity.Client{ID: "c1", CompanyID: "acme"})
	require.NoError(t, err)
	assert.Zero(t, n)

	assert.Equal(t, []string{"find_many", "delete", "update"}, denied)
}

func TestScoped_DeleteSoloAfectaElAlcance(t *testing.T) {
	ctx := context.Background()
	inner := seedClients(t)
	scoped := access.NewScoped(inner, memberAcme, access.KindClient, nil)

	n, err := scoped.Delete(ctx, repository.Filter{})
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	rest, err := inner.FindMany(ctx, nil, repository.ListOptions{})
	require.NoError(t, err)
	assert.Len(t, rest, 2)
}

func TestScoped_UpdateNoPermiteSacarDelAlcance(t *testing.T) {
	ctx := context.Background()
	scoped := access.NewScoped(seedClients(t), memberAcme, access.KindClient, nil)

	moved := &entity.Client{ID: "c1", CompanyID: "acme", AssignedToID: "admin-1", Name: "Uno"}
	n, err := scoped.Update(ctx, repository.Filter{}, moved)
	assert.ErrorIs(t, err, domain.ErrForbidden)
	assert.Zero(t, n)

	renamed := &entity.Client{ID: "c1", CompanyID: "acme", AssignedToID: "member-1", Name: "Uno bis"}
	n, err = scoped.Update(ctx, repository.Filter{}, renamed)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

func TestScoped_UpdateDeRegistroAjenoNoAfectaFilas(t *testing.T) {
	scoped := access.NewScoped(seedClients(t), memberAcme, access.KindClient, nil)
	// El nuevo estado está en alcance pero la fila c2 no lo está.
	hijack := &entity.Client{ID: "c2", CompanyID: "acme", AssignedToID: "member-1"}
	n, err := scoped.Update(context.Background(), repository.Filter{}, hijack)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestScoped_CreatePasaSinCambios(t *testing.T) {
	ctx := context.Background()
	inner := seedClients(t)
	scoped := access.NewScoped(inner, memberAcme, access.KindClient, nil)
	require.NoError(t, scoped.Create(ctx, &entity.Client{ID: "c9", CompanyID: "globex"}))

	got, err := inner.FindOne(ctx, repository.Filter{"id": "c9"})
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "globex", got.CompanyID)
}

func TestScoped_MiembroNoModificaNiBorraSuEmpresa(t *testing.T) {
	ctx := context.Background()
	companies := memory.Open().Stores().Companies
	require.NoError(t, companies.Create(ctx, &entity.Company{ID: "acme", Name: "Acme", Status: "active"}))

	var denied []string
	scoped := access.NewScoped(companies, memberAcme, access.KindCompany, func(_ access.Kind, op string) {
		denied = append(denied, op)
	})

	got, err := scoped.FindOne(ctx, repository.Filter{"id": "acme"})
	require.NoError(t, err)
	require.NotNil(t, got)

	n, err := scoped.Update(ctx, repository.Filter{"id": "acme"}, &entity.Company{ID: "acme", Name: "Tomada", Status: "suspended"})
	require.NoError(t, err)
	assert.Zero(t, n)

	n, err = scoped.Delete(ctx, repository.Filter{"id": "acme"})
	require.NoError(t, err)
	assert.Zero(t, n)
	assert.Equal(t, []string{"update", "delete"}, denied)

	stored, err := companies.FindOne(ctx, repository.Filter{"id": "acme"})
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, "Acme", stored.Name)
	assert.Equal(t, "active", stored.Status)

	owner := access.NewScoped(companies, ownerAcme, access.KindCompany, nil)
	n, err = owner.Update(ctx, repository.Filter{"id": "acme"}, &entity.Company{ID: "acme", Name: "Acme SAS", Status: "active"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}
