package note

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	leaddomain "github.com/BruksfildServices01/edu-crm/internal/domain/lead"
	domain "github.com/BruksfildServices01/edu-crm/internal/domain/note"
	"github.com/BruksfildServices01/edu-crm/internal/infra/memory"
	"github.com/BruksfildServices01/edu-crm/internal/models"
	"github.com/BruksfildServices01/edu-crm/internal/tenancy"
)

func TestNotes(t *testing.T) {
	store := memory.NewStore()
	a := store.AddUnit(models.Unit{Name: "A"})
	b := store.AddUnit(models.Unit{Name: "B"})
	lead := store.AddLead(models.Lead{TenantID: a.ID, Name: "Carla"})
	foreignLead := store.AddLead(models.Lead{TenantID: b.ID, Name: "Bruno"})

	notes := memory.NewNoteRepository(store)
	leads := memory.NewLeadRepository(store)
	caller := tenancy.Caller{UserID: uuid.New(), TenantID: a.ID}

	create := NewCreateNote(notes, leads, nil)

	n, err := create.Execute(context.Background(), caller, CreateNoteInput{LeadID: &lead.ID, Content: " ligar sexta "})
	require.NoError(t, err)
	assert.Equal(t, a.ID, n.TenantID)
	assert.Equal(t, "ligar sexta", n.Content)

	t.Run("conteúdo vazio", func(t *testing.T) {
		_, err := create.Execute(context.Background(), caller, CreateNoteInput{Content: "  "})
		assert.ErrorIs(t, err, ErrContentRequired)
	})

	t.Run("lead de outro tenant", func(t *testing.T) {
		_, err := create.Execute(context.Background(), caller, CreateNoteInput{LeadID: &foreignLead.ID, Content: "x"})
		assert.ErrorIs(t, err, tenancy.ErrTenantMismatch)
	})

	t.Run("lead inexistente", func(t *testing.T) {
		missing := uuid.New()
		_, err := create.Execute(context.Background(), caller, CreateNoteInput{LeadID: &missing, Content: "x"})
		assert.ErrorIs(t, err, leaddomain.ErrNotFound)
	})

	t.Run("listagem por lead", func(t *testing.T) {
		list, err := NewListNotes(notes, leads).Execute(context.Background(), caller, "", lead.ID.String())
		require.NoError(t, err)
		require.Len(t, list, 1)

		_, err = NewListNotes(notes, leads).Execute(context.Background(), caller, "", "abc")
		assert.ErrorIs(t, err, ErrInvalidLeadID)

		foreign, err := NewListNotes(notes, leads).Execute(context.Background(), tenancy.Caller{TenantID: b.ID}, "", "")
		require.NoError(t, err)
		assert.Empty(t, foreign)
	})

	t.Run("exclusão", func(t *testing.T) {
		err := NewDeleteNote(notes, nil).Execute(context.Background(), tenancy.Caller{TenantID: b.ID}, n.ID)
		assert.ErrorIs(t, err, tenancy.ErrTenantMismatch)

		require.NoError(t, NewDeleteNote(notes, nil).Execute(context.Background(), caller, n.ID))

		err = NewDeleteNote(notes, nil).Execute(context.Background(), caller, n.ID)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}
