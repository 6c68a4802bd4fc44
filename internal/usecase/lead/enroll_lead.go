package lead

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/edu-crm/internal/audit"
	domain "github.com/BruksfildServices01/edu-crm/internal/domain/lead"
	"github.com/BruksfildServices01/edu-crm/internal/httperr"
	"github.com/BruksfildServices01/edu-crm/internal/models"
	"github.com/BruksfildServices01/edu-crm/internal/observability"
	"github.com/BruksfildServices01/edu-crm/internal/tenancy"
)

var (
	ErrInvalidFee       = httperr.InvalidArgument("invalid_monthly_fee", "Valor da mensalidade inválido.")
	ErrInvalidEndDate   = httperr.InvalidArgument("invalid_enrollment_period", "data_fim anterior a data_inicio.")
	ErrPlanRequired     = httperr.InvalidArgument("plan_required", "Plano é obrigatório.")
	ErrEnrollmentStatus = httperr.InvalidArgument("enrollment_status_mismatch", "Matrícula só leva o lead para matriculado.")
)

const enrollmentActive = "ativa"

type EnrollmentInput struct {
	Plan       string
	Discipline string
	MonthlyFee float64
	StartDate  *time.Time
	EndDate    *time.Time
	Status     string
}

// toModel valida a matrícula; a disciplina cai para a do lead.
func (in EnrollmentInput) toModel(l *models.Lead) (*models.Enrollment, error) {
	plan := strings.TrimSpace(in.Plan)
	if plan == "" {
		return nil, ErrPlanRequired
	}
	if in.MonthlyFee < 0 {
		return nil, ErrInvalidFee
	}
	if in.StartDate != nil && in.EndDate != nil && in.EndDate.Before(*in.StartDate) {
		return nil, ErrInvalidEndDate
	}

	discipline := strings.TrimSpace(in.Discipline)
	if discipline == "" {
		discipline = l.Discipline
	}
	status := strings.TrimSpace(in.Status)
	if status == "" {
		status = enrollmentActive
	}

	return &models.Enrollment{
		TenantID:   l.TenantID,
		LeadID:     l.ID,
		Plan:       plan,
		Discipline: discipline,
		MonthlyFee: in.MonthlyFee,
		StartDate:  in.StartDate,
		EndDate:    in.EndDate,
		Status:     status,
	}, nil
}

// ======================================================
// USE CASE
// ======================================================

type EnrollLead struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewEnrollLead(repo domain.Repository, audit *audit.Dispatcher) *EnrollLead {
	return &EnrollLead{repo: repo, audit: audit}
}

type EnrollLeadOutput struct {
	Lead       *models.Lead       `json:"lead"`
	Enrollment *models.Enrollment `json:"enrollment"`
}

// Execute cria a matrícula e converte o lead numa única transação.
func (uc *EnrollLead) Execute(
	ctx context.Context,
	caller tenancy.Caller,
	leadID uuid.UUID,
	version *int,
	in EnrollmentInput,
) (*EnrollLeadOutput, error) {

	l, err := loadAuthorized(ctx, uc.repo, caller, leadID)
	if err != nil {
		return nil, err
	}
	if version != nil && *version != l.Version {
		return nil, domain.ErrVersionConflict
	}

	en, err := enroll(ctx, uc.repo, uc.audit, caller, l, l.Version, in)
	if err != nil {
		return nil, err
	}
	return &EnrollLeadOutput{Lead: l, Enrollment: en}, nil
}

// enroll aplica a regra de domínio e persiste lead + matrícula juntos.
func enroll(
	ctx context.Context,
	repo domain.Repository,
	dispatcher *audit.Dispatcher,
	caller tenancy.Caller,
	l *models.Lead,
	expectedVersion int,
	in EnrollmentInput,
) (*models.Enrollment, error) {

	from := l.Status
	if err := domain.CanEnroll(domain.Status(from)); err != nil {
		return nil, err
	}

	en, err := in.toModel(l)
	if err != nil {
		return nil, err
	}

	if err := domain.Enroll(l); err != nil {
		return nil, err
	}

	if err := repo.Enroll(ctx, l, expectedVersion, en); err != nil {
		return nil, err
	}

	observability.StatusTransitions.WithLabelValues(from, l.Status).Inc()
	dispatcher.Dispatch(audit.Event{
		TenantID: l.TenantID,
		UserID:   caller.UserRef(),
		Action:   "lead_enrolled",
		Entity:   "lead",
		EntityID: &l.ID,
		Metadata: map[string]any{
			"from":          from,
			"to":            l.Status,
			"enrollment_id": en.ID,
			"plano":         en.Plan,
		},
	})

	return en, nil
}
