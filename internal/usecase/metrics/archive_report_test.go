package metrics

import (
	"context"
	"encoding/json"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/edu-crm/internal/audit"
	domain "github.com/BruksfildServices01/edu-crm/internal/domain/metrics"
	"github.com/BruksfildServices01/edu-crm/internal/infra/memory"
	"github.com/BruksfildServices01/edu-crm/internal/models"
	"github.com/BruksfildServices01/edu-crm/internal/tenancy"
)

type fakeObjectStore struct {
	key         string
	body        []byte
	contentType string
}

func (f *fakeObjectStore) Put(_ context.Context, key string, body []byte, contentType string) error {
	f.key, f.body, f.contentType = key, body, contentType
	return nil
}

func TestArchiveReport(t *testing.T) {
	store := memory.NewStore()
	unit := store.AddUnit(models.Unit{Name: "Centro"})
	seed(store, unit.ID)

	disp := audit.NewDispatcher(audit.New(memory.NewEventRepository(store)), nil)
	objects := &fakeObjectStore{}
	uc := NewArchiveReport(newDashboard(memory.NewMetricsRepository(store)), objects, disp)

	out, err := uc.Execute(context.Background(),
		tenancy.Caller{TenantID: unit.ID, IsAdmin: true},
		DashboardInput{},
	)
	require.NoError(t, err)
	disp.Close()

	want := "reports/" + unit.ID.String() + "/2026-03/dashboard-" + strconv.FormatInt(fixedNow().Unix(), 10) + ".json"
	assert.Equal(t, want, out.Key)
	assert.Equal(t, want, objects.key)
	assert.Equal(t, "application/json", objects.contentType)
	assert.True(t, out.GeneratedAt.Equal(fixedNow()))

	var snapshot domain.Dashboard
	require.NoError(t, json.Unmarshal(objects.body, &snapshot))
	assert.Equal(t, int64(10), snapshot.TotalLeads)

	events := store.Events()
	require.Len(t, events, 1)
	assert.Equal(t, "dashboard_archived", events[0].Action)
}

func TestArchiveReport_Guards(t *testing.T) {
	store := memory.NewStore()
	unit := store.AddUnit(models.Unit{Name: "Centro"})
	dash := newDashboard(memory.NewMetricsRepository(store))

	t.Run("exige admin", func(t *testing.T) {
		uc := NewArchiveReport(dash, &fakeObjectStore{}, nil)
		_, err := uc.Execute(context.Background(), tenancy.Caller{TenantID: unit.ID}, DashboardInput{})
		assert.ErrorIs(t, err, tenancy.ErrAdminRequired)
	})

	t.Run("sem bucket configurado", func(t *testing.T) {
		uc := NewArchiveReport(dash, nil, nil)
		_, err := uc.Execute(context.Background(), tenancy.Caller{TenantID: unit.ID, IsAdmin: true}, DashboardInput{})
		assert.ErrorIs(t, err, ErrReportsUnavailable)
	})
}
