package appointment

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/edu-crm/internal/audit"
	domain "github.com/BruksfildServices01/edu-crm/internal/domain/appointment"
	leaddomain "github.com/BruksfildServices01/edu-crm/internal/domain/lead"
	"github.com/BruksfildServices01/edu-crm/internal/httperr"
	"github.com/BruksfildServices01/edu-crm/internal/logger"
	"github.com/BruksfildServices01/edu-crm/internal/models"
	"github.com/BruksfildServices01/edu-crm/internal/observability"
	"github.com/BruksfildServices01/edu-crm/internal/tenancy"
)

var ErrDateRequired = httperr.InvalidArgument("invalid_date_or_time", "data_agendamento é obrigatória.")

// ======================================================
// INPUT
// ======================================================

type ScheduleAppointmentInput struct {
	LeadID      uuid.UUID
	UserID      *uuid.UUID
	ScheduledAt time.Time
	Kind        string
	Notes       string

	LeadVersion *int
}

type ScheduleAppointmentOutput struct {
	Appointment *models.Appointment `json:"agendamento"`
	Lead        *models.Lead        `json:"lead"`
}

// ======================================================
// USE CASE
// ======================================================

type ScheduleAppointment struct {
	repo  domain.Repository
	leads leaddomain.Repository
	audit *audit.Dispatcher
	log   *zap.Logger
}

func NewScheduleAppointment(
	repo domain.Repository,
	leads leaddomain.Repository,
	audit *audit.Dispatcher,
	log *zap.Logger,
) *ScheduleAppointment {
	return &ScheduleAppointment{
		repo:  repo,
		leads: leads,
		audit: audit,
		log:   logger.OrNop(log),
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *ScheduleAppointment) Execute(
	ctx context.Context,
	caller tenancy.Caller,
	in ScheduleAppointmentInput,
) (*ScheduleAppointmentOutput, error) {

	if in.ScheduledAt.IsZero() {
		return nil, ErrDateRequired
	}

	// --------------------------------------------------
	// 1️⃣ Lead (tenant + versão)
	// --------------------------------------------------
	l, err := uc.leads.FindByID(ctx, in.LeadID)
	if err != nil {
		return nil, err
	}
	if err := caller.Authorize(l.TenantID); err != nil {
		return nil, err
	}

	expected := l.Version
	if in.LeadVersion != nil && *in.LeadVersion != expected {
		return nil, leaddomain.ErrVersionConflict
	}

	// --------------------------------------------------
	// 2️⃣ Regra de domínio: novo_lead → agendado
	// --------------------------------------------------
	from := l.Status
	if err := leaddomain.Schedule(l, in.ScheduledAt); err != nil {
		return nil, err
	}

	userID := in.UserID
	if userID == nil {
		userID = caller.UserRef()
	}

	ap := &models.Appointment{
		TenantID:    l.TenantID,
		LeadID:      l.ID,
		UserID:      userID,
		ScheduledAt: in.ScheduledAt,
		Status:      string(domain.InitialStatus()),
		Kind:        strings.TrimSpace(in.Kind),
		Notes:       in.Notes,
	}

	// --------------------------------------------------
	// 3️⃣ Agendamento + lead na mesma transação
	// --------------------------------------------------
	if err := uc.repo.Schedule(ctx, ap, l, expected); err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 4️⃣ Auditoria
	// --------------------------------------------------
	uc.audit.Dispatch(audit.Event{
		TenantID: l.TenantID,
		UserID:   caller.UserRef(),
		Action:   "appointment_created",
		Entity:   "appointment",
		EntityID: &ap.ID,
		Metadata: map[string]any{"lead_id": l.ID, "data_agendamento": ap.ScheduledAt},
	})

	if from != l.Status {
		observability.StatusTransitions.WithLabelValues(from, l.Status).Inc()
		uc.audit.Dispatch(audit.Event{
			TenantID: l.TenantID,
			UserID:   caller.UserRef(),
			Action:   "lead_status_changed",
			Entity:   "lead",
			EntityID: &l.ID,
			Metadata: map[string]any{"from": from, "to": l.Status},
		})
	}

	uc.log.Info("appointment scheduled",
		zap.String("tenant_id", l.TenantID.String()),
		zap.String("appointment_id", ap.ID.String()),
		zap.Time("data_agendamento", ap.ScheduledAt),
	)

	return &ScheduleAppointmentOutput{Appointment: ap, Lead: l}, nil
}
