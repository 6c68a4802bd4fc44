package appointment

import (
	"context"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/edu-crm/internal/audit"
	domain "github.com/BruksfildServices01/edu-crm/internal/domain/appointment"
	"github.com/BruksfildServices01/edu-crm/internal/models"
	"github.com/BruksfildServices01/edu-crm/internal/tenancy"
)

type ChangeAppointmentStatus struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewChangeAppointmentStatus(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *ChangeAppointmentStatus {
	return &ChangeAppointmentStatus{
		repo:  repo,
		audit: audit,
	}
}

func (uc *ChangeAppointmentStatus) Execute(
	ctx context.Context,
	caller tenancy.Caller,
	appointmentID uuid.UUID,
	rawStatus string,
) (*models.Appointment, error) {

	to, err := domain.ParseStatus(rawStatus)
	if err != nil {
		return nil, err
	}

	ap, err := uc.repo.FindByID(ctx, appointmentID)
	if err != nil {
		return nil, err
	}
	if err := caller.Authorize(ap.TenantID); err != nil {
		return nil, err
	}

	from := ap.Status
	changed, err := domain.ChangeStatus(ap, to)
	if err != nil {
		return nil, err
	}
	if !changed {
		return ap, nil
	}

	if err := uc.repo.UpdateStatus(ctx, ap); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		TenantID: ap.TenantID,
		UserID:   caller.UserRef(),
		Action:   "appointment_status_changed",
		Entity:   "appointment",
		EntityID: &ap.ID,
		Metadata: map[string]any{"from": from, "to": ap.Status},
	})

	return ap, nil
}
