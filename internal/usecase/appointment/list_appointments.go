package appointment

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	domain "github.com/BruksfildServices01/edu-crm/internal/domain/appointment"
	"github.com/BruksfildServices01/edu-crm/internal/dto"
	"github.com/BruksfildServices01/edu-crm/internal/httperr"
	"github.com/BruksfildServices01/edu-crm/internal/tenancy"
	"github.com/BruksfildServices01/edu-crm/internal/timezone"
)

var (
	ErrInvalidLeadID = httperr.InvalidArgument("invalid_lead_id", "lead_id inválido.")
	ErrInvalidUserID = httperr.InvalidArgument("invalid_user_id", "user_id inválido.")
)

type ListAppointmentsInput struct {
	TenantID  string
	LeadID    string
	UserID    string
	Status    string
	StartDate string
	EndDate   string
}

type ListAppointments struct {
	repo domain.Repository
	loc  *time.Location
}

func NewListAppointments(
	repo domain.Repository,
	loc *time.Location,
) *ListAppointments {
	return &ListAppointments{
		repo: repo,
		loc:  loc,
	}
}

func (uc *ListAppointments) Execute(
	ctx context.Context,
	caller tenancy.Caller,
	in ListAppointmentsInput,
) ([]dto.AppointmentListDTO, error) {

	tenantID, err := caller.ResolveTenant(in.TenantID)
	if err != nil {
		return nil, err
	}

	filter := domain.ListFilter{TenantID: tenantID}

	if filter.LeadID, err = optionalID(in.LeadID, ErrInvalidLeadID); err != nil {
		return nil, err
	}
	if filter.UserID, err = optionalID(in.UserID, ErrInvalidUserID); err != nil {
		return nil, err
	}

	if strings.TrimSpace(in.Status) != "" {
		s, err := domain.ParseStatus(in.Status)
		if err != nil {
			return nil, err
		}
		filter.Status = string(s)
	}

	if filter.From, filter.To, err = timezone.DayRange(
		strings.TrimSpace(in.StartDate),
		strings.TrimSpace(in.EndDate),
		uc.loc,
	); err != nil {
		return nil, err
	}

	appointments, err := uc.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	return dto.AppointmentList(appointments), nil
}

func optionalID(raw string, invalid error) (*uuid.UUID, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return nil, invalid
	}
	return &id, nil
}
