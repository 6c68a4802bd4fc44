package memory

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/edu-crm/internal/domain/account"
	"github.com/BruksfildServices01/edu-crm/internal/domain/lead"
	"github.com/BruksfildServices01/edu-crm/internal/domain/metrics"
	"github.com/BruksfildServices01/edu-crm/internal/domain/unit"
	"github.com/BruksfildServices01/edu-crm/internal/models"
)

func TestLeadRepository_CompareAndSet(t *testing.T) {
	s := NewStore()
	u := s.AddUnit(models.Unit{Name: "A"})
	repo := NewLeadRepository(s)

	l := &models.Lead{TenantID: u.ID, Name: "Carla", Status: "novo_lead"}
	require.NoError(t, repo.Create(context.Background(), l, &models.Interaction{Channel: "whatsapp", Message: "oi"}))
	assert.Equal(t, 1, l.Version)
	require.Len(t, s.Interactions(), 1)
	assert.Equal(t, l.ID, *s.Interactions()[0].LeadID)

	stale := *l

	l.Status = "agendado"
	require.NoError(t, repo.Update(context.Background(), l, 1))
	assert.Equal(t, 2, l.Version)

	stale.Status = "em_espera"
	assert.ErrorIs(t, repo.Update(context.Background(), &stale, 1), lead.ErrVersionConflict)

	stored, _ := s.Lead(l.ID)
	assert.Equal(t, "agendado", stored.Status)

	foreign := *l
	foreign.TenantID = uuid.New()
	assert.ErrorIs(t, repo.Update(context.Background(), &foreign, 2), lead.ErrNotFound)
}

func TestLeadRepository_EnrollIsAtomic(t *testing.T) {
	s := NewStore()
	u := s.AddUnit(models.Unit{Name: "A"})
	repo := NewLeadRepository(s)
	l := s.AddLead(models.Lead{TenantID: u.ID, Status: "agendado"})

	l.Status, l.Converted = "matriculado", true
	err := repo.Enroll(context.Background(), &l, 5, &models.Enrollment{Plan: "mensal"})
	assert.ErrorIs(t, err, lead.ErrVersionConflict)
	assert.Empty(t, s.Enrollments())

	require.NoError(t, repo.Enroll(context.Background(), &l, 1, &models.Enrollment{Plan: "mensal"}))
	require.Len(t, s.Enrollments(), 1)
	assert.Equal(t, u.ID, s.Enrollments()[0].TenantID)
}

func TestLeadRepository_Scope(t *testing.T) {
	s := NewStore()
	a := s.AddUnit(models.Unit{Name: "A"})
	child := s.AddUnit(models.Unit{Name: "A2", TenantID: a.ID})
	b := s.AddUnit(models.Unit{Name: "B"})

	s.AddLead(models.Lead{TenantID: a.ID, Name: "Ana", WhatsAppNumber: "5511999990001"})
	s.AddLead(models.Lead{TenantID: a.ID, UnitID: &child.ID, Name: "Beto", WhatsAppNumber: "5511999990002"})
	s.AddLead(models.Lead{TenantID: b.ID, Name: "Caio", WhatsAppNumber: "5511999990001"})

	repo := NewLeadRepository(s)

	all, total, err := repo.List(context.Background(), lead.ListFilter{TenantID: a.ID, Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, all, 2)

	_, total, _ = repo.List(context.Background(), lead.ListFilter{TenantID: a.ID, UnitID: &child.ID, Limit: 10})
	assert.Equal(t, int64(1), total)

	_, total, _ = repo.List(context.Background(), lead.ListFilter{TenantID: a.ID, Query: "ana", Limit: 10})
	assert.Equal(t, int64(1), total)

	found, err := repo.FindByWhatsApp(context.Background(), b.ID, "5511999990001")
	require.NoError(t, err)
	assert.Equal(t, "Caio", found.Name)
}

func TestMetricsRepository_DisciplineBreakdownTrims(t *testing.T) {
	s := NewStore()
	u := s.AddUnit(models.Unit{Name: "A"})

	for _, d := range []string{"", "   ", "\t", "Matemática", " Matemática ", "Inglês"} {
		s.AddLead(models.Lead{TenantID: u.ID, Discipline: d})
	}

	rows, err := NewMetricsRepository(s).DisciplineBreakdown(context.Background(), metrics.Filter{TenantID: u.ID})
	require.NoError(t, err)

	got := map[string]int64{}
	for _, r := range rows {
		got[r.Discipline] = r.Count
	}
	assert.Equal(t, map[string]int64{
		metrics.NoDiscipline: 3,
		"Matemática":         2,
		"Inglês":             1,
	}, got)
}

func TestUnitAndAccountRepositories(t *testing.T) {
	s := NewStore()
	units := NewUnitRepository(s)
	accounts := NewAccountRepository(s)

	root := &models.Unit{Name: "Raiz"}
	owner := &models.User{Name: "Ana", Email: "ana@escola.com"}
	require.NoError(t, accounts.RegisterTenant(context.Background(), root, owner))
	assert.True(t, root.IsRoot())
	assert.Equal(t, root.ID, owner.TenantID)

	err := accounts.RegisterTenant(context.Background(), &models.Unit{Name: "Outra"}, &models.User{Email: "ANA@escola.com"})
	assert.ErrorIs(t, err, account.ErrEmailTaken)

	ids, err := units.ListTenantIDs(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{root.ID}, ids)

	assert.ErrorIs(t, units.Create(context.Background(), &models.Unit{ID: uuid.New(), TenantID: uuid.New(), Name: "Sem raiz"}), unit.ErrNotFound)

	usr, err := accounts.FindUserByEmail(context.Background(), "ana@escola.com")
	require.NoError(t, err)
	assert.Equal(t, "Raiz", usr.Unit.Name)
}

func TestKeyLocker(t *testing.T) {
	l := NewKeyLocker()

	release, err := l.Lock(context.Background(), "contact:1", time.Second)
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err = l.Lock(ctx, "contact:1", time.Second)
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	other, err := l.Lock(context.Background(), "contact:2", time.Second)
	require.NoError(t, err)
	other()

	release()
	release()

	again, err := l.Lock(context.Background(), "contact:1", time.Second)
	require.NoError(t, err)
	again()
}

func lockedKeys(l *KeyLocker) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.locks)
}

func TestKeyLocker_ReleasesEntries(t *testing.T) {
	l := NewKeyLocker()

	for i := 0; i < 100; i++ {
		release, err := l.Lock(context.Background(), uuid.NewString(), time.Second)
		require.NoError(t, err)
		release()
	}
	assert.Equal(t, 0, lockedKeys(l))

	// quem espera mantém a entrada viva até soltar
	release, err := l.Lock(context.Background(), "contact:1", time.Second)
	require.NoError(t, err)

	acquired := make(chan func())
	go func() {
		next, err := l.Lock(context.Background(), "contact:1", time.Second)
		if err == nil {
			acquired <- next
		}
	}()

	require.Eventually(t, func() bool {
		l.mu.Lock()
		defer l.mu.Unlock()
		kl, ok := l.locks["contact:1"]
		return ok && kl.refs == 2
	}, time.Second, time.Millisecond)

	release()
	next := <-acquired
	assert.Equal(t, 1, lockedKeys(l))
	next()
	assert.Equal(t, 0, lockedKeys(l))

	// desistência por contexto também libera
	release, err = l.Lock(context.Background(), "contact:2", time.Second)
	require.NoError(t, err)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	_, err = l.Lock(ctx, "contact:2", time.Second)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	release()
	assert.Equal(t, 0, lockedKeys(l))
}

func TestDedup(t *testing.T) {
	d := NewDedup()
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	d.now = func() time.Time { return now }

	first, _ := d.FirstSeen(context.Background(), "reminder:1", time.Hour)
	second, _ := d.FirstSeen(context.Background(), "reminder:1", time.Hour)
	assert.True(t, first)
	assert.False(t, second)

	now = now.Add(2 * time.Hour)
	third, _ := d.FirstSeen(context.Background(), "reminder:1", time.Hour)
	assert.True(t, third)
}
