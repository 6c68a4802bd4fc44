package lead

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/edu-crm/internal/audit"
	domain "github.com/BruksfildServices01/edu-crm/internal/domain/lead"
	"github.com/BruksfildServices01/edu-crm/internal/httperr"
	"github.com/BruksfildServices01/edu-crm/internal/infra/memory"
	"github.com/BruksfildServices01/edu-crm/internal/models"
	"github.com/BruksfildServices01/edu-crm/internal/tenancy"
)

type fixture struct {
	store  *memory.Store
	repo   *memory.LeadRepository
	disp   *audit.Dispatcher
	unit   models.Unit
	caller tenancy.Caller
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	store := memory.NewStore()
	disp := audit.NewDispatcher(audit.New(memory.NewEventRepository(store)), nil)
	t.Cleanup(disp.Close)

	unit := store.AddUnit(models.Unit{Name: "Centro"})
	return &fixture{
		store:  store,
		repo:   memory.NewLeadRepository(store),
		disp:   disp,
		unit:   unit,
		caller: tenancy.Caller{UserID: uuid.New(), TenantID: unit.ID},
	}
}

func (f *fixture) lead(status string) models.Lead {
	return f.store.AddLead(models.Lead{
		TenantID:       f.unit.ID,
		Name:           "Carla",
		WhatsAppNumber: "5511987654321",
		Status:         status,
		Discipline:     "natação",
	})
}

func ptr[T any](v T) *T { return &v }

// ======================================================
// UpdateLead
// ======================================================

func TestUpdateLead_InvalidStatusLeavesLeadUntouched(t *testing.T) {
	f := newFixture(t)
	l := f.lead("agendado")

	_, err := NewUpdateLead(f.repo, f.disp).Execute(context.Background(), f.caller, UpdateLeadInput{
		ID:     l.ID,
		Status: ptr("bogus_status"),
		Name:   ptr("Outro Nome"),
	})
	require.Error(t, err)
	assert.Equal(t, httperr.KindInvalidArgument, httperr.KindOf(err))

	stored, _ := f.store.Lead(l.ID)
	assert.Equal(t, "agendado", stored.Status)
	assert.Equal(t, "Carla", stored.Name)
	assert.Equal(t, 1, stored.Version)
}

func TestUpdateLead_Transitions(t *testing.T) {
	cases := []struct {
		name string
		from string
		to   string
		err  error
	}{
		{"avança no funil", "agendado", "follow_up_1", nil},
		{"pula etapas", "novo_lead", "follow_up_3", nil},
		{"em espera de qualquer etapa", "follow_up_2", "em_espera", nil},
		{"mesmo status", "agendado", "agendado", nil},
		{"volta no funil", "follow_up_2", "agendado", domain.ErrBackwardTransition},
		{"sai de status final", "em_espera", "agendado", domain.ErrTerminalStatus},
		{"matricula sem dados", "agendado", "matriculado", domain.ErrEnrollmentRequired},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture(t)
			l := f.lead(tc.from)

			out, err := NewUpdateLead(f.repo, f.disp).Execute(context.Background(), f.caller, UpdateLeadInput{
				ID:     l.ID,
				Status: ptr(tc.to),
			})

			if tc.err != nil {
				assert.ErrorIs(t, err, tc.err)
				stored, _ := f.store.Lead(l.ID)
				assert.Equal(t, tc.from, stored.Status)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.to, out.Status)
			assert.Equal(t, 2, out.Version)
		})
	}
}

func TestUpdateLead_TenantIsolation(t *testing.T) {
	f := newFixture(t)
	l := f.lead("novo_lead")
	other := f.store.AddUnit(models.Unit{Name: "Outra"})

	uc := NewUpdateLead(f.repo, f.disp)

	_, err := uc.Execute(context.Background(), tenancy.Caller{TenantID: other.ID}, UpdateLeadInput{
		ID:     l.ID,
		Status: ptr("agendado"),
	})
	assert.ErrorIs(t, err, tenancy.ErrTenantMismatch)

	out, err := uc.Execute(context.Background(), tenancy.Caller{TenantID: other.ID, IsMaster: true}, UpdateLeadInput{
		ID:     l.ID,
		Status: ptr("agendado"),
	})
	require.NoError(t, err)
	assert.Equal(t, "agendado", out.Status)
}

func TestUpdateLead_VersionConflict(t *testing.T) {
	f := newFixture(t)
	l := f.lead("novo_lead")

	_, err := NewUpdateLead(f.repo, f.disp).Execute(context.Background(), f.caller, UpdateLeadInput{
		ID:      l.ID,
		Version: ptr(7),
		Status:  ptr("agendado"),
	})
	assert.ErrorIs(t, err, domain.ErrVersionConflict)
	assert.Equal(t, httperr.KindConflict, httperr.KindOf(err))
}

func TestUpdateLead_AttendedRequiresAppointment(t *testing.T) {
	f := newFixture(t)
	l := f.lead("agendado")
	uc := NewUpdateLead(f.repo, f.disp)

	_, err := uc.Execute(context.Background(), f.caller, UpdateLeadInput{ID: l.ID, Attended: ptr(true)})
	assert.ErrorIs(t, err, domain.ErrAppointmentRequired)

	f.store.AddAppointment(models.Appointment{
		TenantID:    f.unit.ID,
		LeadID:      l.ID,
		ScheduledAt: time.Now().Add(time.Hour),
	})

	out, err := uc.Execute(context.Background(), f.caller, UpdateLeadInput{ID: l.ID, Attended: ptr(true)})
	require.NoError(t, err)
	assert.True(t, out.Attended)
}

func TestUpdateLead_ConvertedOnlyThroughEnrollment(t *testing.T) {
	f := newFixture(t)
	l := f.lead("agendado")

	_, err := NewUpdateLead(f.repo, f.disp).Execute(context.Background(), f.caller, UpdateLeadInput{
		ID:        l.ID,
		Converted: ptr(true),
	})
	assert.ErrorIs(t, err, domain.ErrEnrollmentRequired)
}

func TestUpdateLead_WithEnrollment(t *testing.T) {
	f := newFixture(t)
	l := f.lead("follow_up_1")

	out, err := NewUpdateLead(f.repo, f.disp).Execute(context.Background(), f.caller, UpdateLeadInput{
		ID:         l.ID,
		Status:     ptr("matriculado"),
		Enrollment: &EnrollmentInput{Plan: "mensal", MonthlyFee: 250},
	})
	require.NoError(t, err)
	assert.Equal(t, "matriculado", out.Status)
	assert.True(t, out.Converted)

	enrollments := f.store.Enrollments()
	require.Len(t, enrollments, 1)
	assert.Equal(t, "natação", enrollments[0].Discipline)
	assert.Equal(t, "ativa", enrollments[0].Status)
}

func TestUpdateLead_Profile(t *testing.T) {
	f := newFixture(t)
	l := f.lead("novo_lead")
	uc := NewUpdateLead(f.repo, f.disp)

	_, err := uc.Execute(context.Background(), f.caller, UpdateLeadInput{ID: l.ID, Name: ptr("  ")})
	assert.ErrorIs(t, err, ErrEmptyName)

	_, err = uc.Execute(context.Background(), f.caller, UpdateLeadInput{ID: l.ID, InterestLevel: ptr("fervendo")})
	assert.ErrorIs(t, err, domain.ErrInvalidInterest)

	out, err := uc.Execute(context.Background(), f.caller, UpdateLeadInput{
		ID:            l.ID,
		Name:          ptr(" Carla Souza "),
		InterestLevel: ptr("quente"),
		Observations:  ptr("prefere manhã"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Carla Souza", out.Name)
	assert.Equal(t, "quente", out.InterestLevel)
	assert.Equal(t, "prefere manhã", out.Observations)
}

func TestUpdateLead_FieldTooLong(t *testing.T) {
	tests := []struct {
		name string
		in   func(id uuid.UUID) UpdateLeadInput
	}{
		{"nome", func(id uuid.UUID) UpdateLeadInput {
			return UpdateLeadInput{ID: id, Name: ptr(strings.Repeat("a", domain.MaxNameLen+1))}
		}},
		{"disciplina", func(id uuid.UUID) UpdateLeadInput {
			return UpdateLeadInput{ID: id, Discipline: ptr(strings.Repeat("b", domain.MaxDisciplineLen+1))}
		}},
		{"faixa etária", func(id uuid.UUID) UpdateLeadInput {
			return UpdateLeadInput{ID: id, AgeGroup: ptr(strings.Repeat("c", domain.MaxAgeGroupLen+1))}
		}},
		{"quem buscou", func(id uuid.UUID) UpdateLeadInput {
			return UpdateLeadInput{ID: id, WhoSearched: ptr(strings.Repeat("d", domain.MaxWhoSearchedLen+1))}
		}},
		{"origem", func(id uuid.UUID) UpdateLeadInput {
			return UpdateLeadInput{ID: id, OriginChannel: ptr(strings.Repeat("e", domain.MaxOriginLen+1))}
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			l := f.lead("novo_lead")

			_, err := NewUpdateLead(f.repo, f.disp).Execute(context.Background(), f.caller, tt.in(l.ID))

			var be httperr.BusinessError
			require.ErrorAs(t, err, &be)
			assert.Equal(t, httperr.KindInvalidArgument, be.Kind)
			assert.Equal(t, domain.CodeFieldTooLong, be.Code)

			stored, _ := f.store.Lead(l.ID)
			assert.Equal(t, "Carla", stored.Name)
			assert.Equal(t, "natação", stored.Discipline)
			assert.Equal(t, 1, stored.Version)
		})
	}
}

// ======================================================
// EnrollLead
// ======================================================

func TestEnrollLead(t *testing.T) {
	f := newFixture(t)
	l := f.lead("agendado")
	uc := NewEnrollLead(f.repo, f.disp)

	start := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	out, err := uc.Execute(context.Background(), f.caller, l.ID, nil, EnrollmentInput{
		Plan:       "trimestral",
		Discipline: "inglês",
		MonthlyFee: 320.5,
		StartDate:  &start,
	})
	require.NoError(t, err)
	assert.Equal(t, "matriculado", out.Lead.Status)
	assert.True(t, out.Lead.Converted)
	assert.Equal(t, l.ID, out.Enrollment.LeadID)
	assert.Equal(t, "inglês", out.Enrollment.Discipline)

	_, err = uc.Execute(context.Background(), f.caller, l.ID, nil, EnrollmentInput{Plan: "mensal"})
	assert.ErrorIs(t, err, domain.ErrAlreadyEnrolled)
	assert.Len(t, f.store.Enrollments(), 1)
}

func TestEnrollLead_Validation(t *testing.T) {
	start := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, -1)

	cases := []struct {
		name   string
		status string
		in     EnrollmentInput
		err    error
	}{
		{"sem plano", "agendado", EnrollmentInput{}, ErrPlanRequired},
		{"mensalidade negativa", "agendado", EnrollmentInput{Plan: "mensal", MonthlyFee: -1}, ErrInvalidFee},
		{"fim antes do início", "agendado", EnrollmentInput{Plan: "mensal", StartDate: &start, EndDate: &end}, ErrInvalidEndDate},
		{"lead novo", "novo_lead", EnrollmentInput{Plan: "mensal"}, domain.ErrNotEnrollable},
		{"lead em espera", "em_espera", EnrollmentInput{Plan: "mensal"}, domain.ErrNotEnrollable},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture(t)
			l := f.lead(tc.status)

			_, err := NewEnrollLead(f.repo, f.disp).Execute(context.Background(), f.caller, l.ID, nil, tc.in)
			assert.ErrorIs(t, err, tc.err)

			stored, _ := f.store.Lead(l.ID)
			assert.False(t, stored.Converted)
			assert.Empty(t, f.store.Enrollments())
		})
	}
}

// ======================================================
// Leitura
// ======================================================

func TestListLeads(t *testing.T) {
	f := newFixture(t)
	f.lead("novo_lead")
	f.lead("agendado")
	f.lead("agendado")

	other := f.store.AddUnit(models.Unit{Name: "Outra"})
	f.store.AddLead(models.Lead{TenantID: other.ID, Name: "Fora"})

	uc := NewListLeads(f.repo)

	out, err := uc.Execute(context.Background(), f.caller, ListLeadsInput{})
	require.NoError(t, err)
	assert.Equal(t, int64(3), out.Total)
	assert.Equal(t, 1, out.Page)
	assert.Equal(t, defaultPageSize, out.Limit)

	out, err = uc.Execute(context.Background(), f.caller, ListLeadsInput{Status: "agendado"})
	require.NoError(t, err)
	assert.Equal(t, int64(2), out.Total)

	_, err = uc.Execute(context.Background(), f.caller, ListLeadsInput{Status: "bogus"})
	assert.ErrorIs(t, err, domain.ErrInvalidStatus)

	_, err = uc.Execute(context.Background(), f.caller, ListLeadsInput{TenantID: other.ID.String()})
	assert.ErrorIs(t, err, tenancy.ErrTenantMismatch)
}

func TestPipelineBoard(t *testing.T) {
	f := newFixture(t)
	f.lead("novo_lead")
	f.lead("agendado")
	f.lead("agendado")
	f.lead("contato_antigo")

	board, err := NewPipelineBoard(f.repo).Execute(context.Background(), f.caller, "", "")
	require.NoError(t, err)

	require.Len(t, board.Columns, len(domain.Pipeline)+1)
	assert.Equal(t, "novo_lead", board.Columns[0].Status)
	assert.Equal(t, 1, board.Columns[0].Count)
	assert.Equal(t, 2, board.Columns[1].Count)
	assert.Equal(t, 0, board.Columns[2].Count)
	assert.NotNil(t, board.Columns[2].Leads)

	last := board.Columns[len(board.Columns)-1]
	assert.Equal(t, ColumnOther, last.Status)
	assert.Equal(t, 1, last.Count)
}

func TestGetLead_NotFoundAndForeign(t *testing.T) {
	f := newFixture(t)
	l := f.lead("novo_lead")

	_, err := NewGetLead(f.repo).Execute(context.Background(), f.caller, uuid.New())
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = NewGetLead(f.repo).Execute(context.Background(), tenancy.Caller{TenantID: uuid.New()}, l.ID)
	assert.ErrorIs(t, err, tenancy.ErrTenantMismatch)

	got, err := NewGetLead(f.repo).Execute(context.Background(), f.caller, l.ID)
	require.NoError(t, err)
	assert.Equal(t, "Carla", got.Name)
}
