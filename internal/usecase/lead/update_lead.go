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

var ErrEmptyName = httperr.InvalidArgument("name_required", "Nome não pode ficar vazio.")

// ======================================================
// INPUT
// ======================================================

// UpdateLeadInput usa ponteiros: nil significa "não alterar".
type UpdateLeadInput struct {
	ID      uuid.UUID
	Version *int

	Status        *string
	Attended      *bool
	Converted     *bool
	InterestLevel *string
	Observations  *string
	ScheduledDate *time.Time

	Name          *string
	Discipline    *string
	AgeGroup      *string
	WhoSearched   *string
	OriginChannel *string

	Enrollment *EnrollmentInput
}

// ======================================================
// USE CASE
// ======================================================

type UpdateLead struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewUpdateLead(repo domain.Repository, audit *audit.Dispatcher) *UpdateLead {
	return &UpdateLead{repo: repo, audit: audit}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *UpdateLead) Execute(
	ctx context.Context,
	caller tenancy.Caller,
	in UpdateLeadInput,
) (*models.Lead, error) {

	// --------------------------------------------------
	// 1️⃣ Carga + tenant + versão
	// --------------------------------------------------
	l, err := loadAuthorized(ctx, uc.repo, caller, in.ID)
	if err != nil {
		return nil, err
	}

	expected := l.Version
	if in.Version != nil && *in.Version != expected {
		return nil, domain.ErrVersionConflict
	}

	// --------------------------------------------------
	// 2️⃣ Validação de enums antes de qualquer mudança
	// --------------------------------------------------
	var target *domain.Status
	if in.Status != nil {
		s, err := domain.ParseStatus(*in.Status)
		if err != nil {
			return nil, err
		}
		target = &s
	}

	var interest *domain.InterestLevel
	if in.InterestLevel != nil {
		lvl, err := domain.ParseInterest(*in.InterestLevel)
		if err != nil {
			return nil, err
		}
		interest = &lvl
	}

	enrolling := in.Enrollment != nil
	if enrolling && target != nil && *target != domain.StatusEnrolled {
		return nil, ErrEnrollmentStatus
	}
	if target != nil && *target == domain.StatusEnrolled && !enrolling && domain.Status(l.Status) != domain.StatusEnrolled {
		return nil, domain.ErrEnrollmentRequired
	}

	before := *l

	// --------------------------------------------------
	// 3️⃣ Perfil
	// --------------------------------------------------
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, ErrEmptyName
		}
		l.Name = name
	}
	if in.Discipline != nil {
		l.Discipline = strings.TrimSpace(*in.Discipline)
	}
	if in.AgeGroup != nil {
		l.AgeGroup = strings.TrimSpace(*in.AgeGroup)
	}
	if in.WhoSearched != nil {
		l.WhoSearched = strings.TrimSpace(*in.WhoSearched)
	}
	if in.OriginChannel != nil {
		l.OriginChannel = strings.TrimSpace(*in.OriginChannel)
	}
	if err := domain.CheckLengths(l); err != nil {
		return nil, err
	}
	if in.Observations != nil {
		l.Observations = *in.Observations
	}
	if interest != nil {
		l.InterestLevel = string(*interest)
	}
	if in.ScheduledDate != nil {
		at := *in.ScheduledDate
		l.ScheduledDate = &at
	}

	// --------------------------------------------------
	// 4️⃣ Status (matrícula tem caminho próprio)
	// --------------------------------------------------
	if target != nil && !enrolling {
		if _, err := domain.ChangeStatus(l, *target); err != nil {
			return nil, err
		}
	}

	// --------------------------------------------------
	// 5️⃣ Presença
	// --------------------------------------------------
	if in.Attended != nil {
		hasAppointment := l.Attended
		if *in.Attended && !l.Attended {
			n, err := uc.repo.CountAppointments(ctx, l.TenantID, l.ID)
			if err != nil {
				return nil, err
			}
			hasAppointment = n > 0
		}
		if err := domain.SetAttended(l, *in.Attended, hasAppointment); err != nil {
			return nil, err
		}
	}

	// --------------------------------------------------
	// 6️⃣ Conversão
	// --------------------------------------------------
	if in.Converted != nil && !(enrolling && *in.Converted) {
		if err := domain.SetConverted(l, *in.Converted); err != nil {
			return nil, err
		}
	}

	// --------------------------------------------------
	// 7️⃣ Persistência (compare-and-set)
	// --------------------------------------------------
	if enrolling {
		if _, err := enroll(ctx, uc.repo, uc.audit, caller, l, expected, *in.Enrollment); err != nil {
			return nil, err
		}
	} else if err := uc.repo.Update(ctx, l, expected); err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 8️⃣ Auditoria
	// --------------------------------------------------
	uc.dispatchChanges(caller, &before, l, enrolling)

	return l, nil
}

func (uc *UpdateLead) dispatchChanges(caller tenancy.Caller, before, after *models.Lead, enrolled bool) {
	base := audit.Event{
		TenantID: after.TenantID,
		UserID:   caller.UserRef(),
		Entity:   "lead",
		EntityID: &after.ID,
	}

	if before.Status != after.Status && !enrolled {
		observability.StatusTransitions.WithLabelValues(before.Status, after.Status).Inc()

		ev := base
		ev.Action = "lead_status_changed"
		ev.Metadata = map[string]any{"from": before.Status, "to": after.Status}
		uc.audit.Dispatch(ev)
	}

	if before.Attended != after.Attended {
		ev := base
		ev.Action = "lead_attendance_changed"
		ev.Metadata = map[string]any{"attended": after.Attended}
		uc.audit.Dispatch(ev)
	}

	ev := base
	ev.Action = "lead_updated"
	ev.Metadata = map[string]any{"version": after.Version}
	uc.audit.Dispatch(ev)
}
