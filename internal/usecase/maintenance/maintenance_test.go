package maintenance

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/edu-crm/internal/infra/memory"
	"github.com/BruksfildServices01/edu-crm/internal/models"
	"github.com/BruksfildServices01/edu-crm/internal/tenancy"
)

func TestIntegrityAndPurge(t *testing.T) {
	store := memory.NewStore()
	alive := store.AddUnit(models.Unit{Name: "Viva"})
	gone := store.AddUnit(models.Unit{Name: "Removida"})

	kept := store.AddLead(models.Lead{TenantID: alive.ID, Name: "Fica"})
	orphan := store.AddLead(models.Lead{TenantID: gone.ID, Name: "Órfão", Converted: true})
	store.AddAppointment(models.Appointment{TenantID: gone.ID, LeadID: orphan.ID})
	store.AddEnrollment(models.Enrollment{TenantID: gone.ID, LeadID: orphan.ID, Plan: "mensal"})
	store.AddLead(models.Lead{TenantID: alive.ID, Name: "Convertido sem matrícula", Converted: true, Status: "matriculado"})

	store.DeleteUnit(gone.ID)

	repo := memory.NewMaintenanceRepository(store)
	master := tenancy.Caller{TenantID: alive.ID, IsMaster: true}

	t.Run("somente master", func(t *testing.T) {
		_, err := NewCheckIntegrity(repo).Execute(context.Background(), tenancy.Caller{TenantID: alive.ID, IsAdmin: true})
		assert.ErrorIs(t, err, tenancy.ErrMasterRequired)

		_, err = NewPurgeOrphans(repo, nil).Execute(context.Background(), tenancy.Caller{TenantID: alive.ID})
		assert.ErrorIs(t, err, tenancy.ErrMasterRequired)
	})

	rep, err := NewCheckIntegrity(repo).Execute(context.Background(), master)
	require.NoError(t, err)
	assert.False(t, rep.Healthy)
	assert.Equal(t, int64(1), rep.OrphanLeads)
	assert.Equal(t, int64(1), rep.OrphanAppointments)
	assert.Equal(t, int64(1), rep.OrphanEnrollments)
	assert.Equal(t, int64(1), rep.ConvertedWithoutEnrollment)

	purged, err := NewPurgeOrphans(repo, nil).Execute(context.Background(), master)
	require.NoError(t, err)
	assert.Equal(t, int64(1), purged.Leads)
	assert.Equal(t, int64(1), purged.Appointments)
	assert.Equal(t, int64(1), purged.Enrollments)

	_, ok := store.Lead(kept.ID)
	assert.True(t, ok)
	_, ok = store.Lead(orphan.ID)
	assert.False(t, ok)

	after, err := NewCheckIntegrity(repo).Execute(context.Background(), master)
	require.NoError(t, err)
	assert.Zero(t, after.OrphanLeads)
	assert.Equal(t, int64(1), after.ConvertedWithoutEnrollment)
}
