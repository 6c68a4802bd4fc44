package unit

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/edu-crm/internal/infra/memory"
	"github.com/BruksfildServices01/edu-crm/internal/models"
	"github.com/BruksfildServices01/edu-crm/internal/tenancy"
)

func TestUnits(t *testing.T) {
	store := memory.NewStore()
	a := store.AddUnit(models.Unit{Name: "A"})
	b := store.AddUnit(models.Unit{Name: "B"})
	repo := memory.NewUnitRepository(store)

	admin := tenancy.Caller{TenantID: a.ID, IsAdmin: true}

	t.Run("admin cria unidade filha", func(t *testing.T) {
		u, err := NewCreateUnit(repo, nil).Execute(context.Background(), admin, CreateUnitInput{Name: " A - Zona Sul "})
		require.NoError(t, err)
		assert.Equal(t, a.ID, u.TenantID)
		assert.False(t, u.IsRoot())
		assert.Equal(t, "A - Zona Sul", u.Name)
	})

	t.Run("usuário comum não cria", func(t *testing.T) {
		_, err := NewCreateUnit(repo, nil).Execute(context.Background(), tenancy.Caller{TenantID: a.ID}, CreateUnitInput{Name: "X"})
		assert.ErrorIs(t, err, tenancy.ErrAdminRequired)
	})

	t.Run("nome obrigatório", func(t *testing.T) {
		_, err := NewCreateUnit(repo, nil).Execute(context.Background(), admin, CreateUnitInput{})
		assert.ErrorIs(t, err, ErrNameRequired)
	})

	t.Run("listagem por papel", func(t *testing.T) {
		own, err := NewListUnits(repo).Execute(context.Background(), admin)
		require.NoError(t, err)
		assert.Len(t, own, 2)

		all, err := NewListUnits(repo).Execute(context.Background(), tenancy.Caller{TenantID: b.ID, IsMaster: true})
		require.NoError(t, err)
		assert.Len(t, all, 3)
	})
}
