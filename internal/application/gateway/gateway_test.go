package gateway_test

import (
	"context"
	"testing"

	"github.com/jhoicas/Bizops-api/internal/application/gateway"
	"github.com/jhoicas/Bizops-api/internal/domain/access"
	"github.com/jhoicas/Bizops-api/internal/domain/entity"
	"github.com/jhoicas/Bizops-api/internal/domain/repository"
	"github.com/jhoicas/Bizops-api/internal/infrastructure/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGateway_ScopedAislaTenants(t *testing.T) {
	ctx := context.Background()
	store := memory.Open()
	stores := store.Stores()
	require.NoError(t, stores.Leads.Create(ctx, &entity.Lead{ID: "l1", CompanyID: "acme", AssignedToID: "u1"}))
	require.NoError(t, stores.Leads.Create(ctx, &entity.Lead{ID: "l2", CompanyID: "globex", AssignedToID: "u9"}))

	denied := 0
	gw := gateway.New(stores, func(access.Kind, string) { denied++ })

	acmeAdmin := access.Principal{ID: "u2", TenantID: "acme", Role: entity.RoleAdmin}
	leads, err := gw.Scoped(acmeAdmin).Leads.FindMany(ctx, nil, repository.ListOptions{})
	require.NoError(t, err)
	require.Len(t, leads, 1)
	assert.Equal(t, "l1", leads[0].ID)

	assert.False(t, gw.Authorize(acmeAdmin, leads[0], access.KindInvoice))
	assert.Equal(t, 1, denied)
}

func TestGateway_BindUsaLosRepositoriosIndicados(t *testing.T) {
	ctx := context.Background()
	primary := memory.Open()
	other := memory.Open()
	require.NoError(t, other.Stores().Clients.Create(ctx, &entity.Client{ID: "c1", CompanyID: "acme"}))

	gw := gateway.New(primary.Stores(), nil)
	owner := access.Principal{ID: "u1", TenantID: "acme", Role: entity.RoleOwner}

	got, err := gw.Bind(other.Stores(), owner).Clients.FindOne(ctx, repository.Filter{"id": "c1"})
	require.NoError(t, err)
	assert.NotNil(t, got)

	got, err = gw.Scoped(owner).Clients.FindOne(ctx, repository.Filter{"id": "c1"})
	require.NoError(t, err)
	assert.Nil(t, got)
}
