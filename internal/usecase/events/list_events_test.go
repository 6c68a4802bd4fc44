package events

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/edu-crm/internal/infra/memory"
	"github.com/BruksfildServices01/edu-crm/internal/models"
	"github.com/BruksfildServices01/edu-crm/internal/tenancy"
	"github.com/BruksfildServices01/edu-crm/internal/timezone"
)

func TestListEvents(t *testing.T) {
	store := memory.NewStore()
	repo := memory.NewEventRepository(store)
	a, b := uuid.New(), uuid.New()
	leadID := uuid.New()

	for _, ev := range []models.Event{
		{ID: uuid.New(), TenantID: a, Action: "lead_created", Entity: "lead", EntityID: &leadID},
		{ID: uuid.New(), TenantID: a, Action: "lead_status_changed", Entity: "lead", EntityID: &leadID},
		{ID: uuid.New(), TenantID: a, Action: "note_created", Entity: "note"},
		{ID: uuid.New(), TenantID: b, Action: "lead_created", Entity: "lead"},
	} {
		require.NoError(t, repo.SaveEvent(context.Background(), &ev))
	}

	uc := NewListEvents(repo, timezone.Location(timezone.DefaultTimezone))
	admin := tenancy.Caller{TenantID: a, IsAdmin: true}

	out, err := uc.Execute(context.Background(), admin, ListEventsInput{})
	require.NoError(t, err)
	assert.Equal(t, int64(3), out.Total)
	assert.Equal(t, defaultLimit, out.Limit)

	out, err = uc.Execute(context.Background(), admin, ListEventsInput{Entity: "lead", EntityID: leadID.String()})
	require.NoError(t, err)
	assert.Equal(t, int64(2), out.Total)

	out, err = uc.Execute(context.Background(), admin, ListEventsInput{Limit: 1, Page: 2})
	require.NoError(t, err)
	assert.Len(t, out.Events, 1)
	assert.Equal(t, int64(3), out.Total)

	_, err = uc.Execute(context.Background(), tenancy.Caller{TenantID: a}, ListEventsInput{})
	assert.ErrorIs(t, err, tenancy.ErrAdminRequired)

	_, err = uc.Execute(context.Background(), admin, ListEventsInput{TenantID: b.String()})
	assert.ErrorIs(t, err, tenancy.ErrTenantMismatch)

	_, err = uc.Execute(context.Background(), admin, ListEventsInput{EntityID: "x"})
	assert.ErrorIs(t, err, ErrInvalidEntityID)
}
