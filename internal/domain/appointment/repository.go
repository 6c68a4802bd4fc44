package appointment

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/edu-crm/internal/httperr"
	"github.com/BruksfildServices01/edu-crm/internal/models"
)

var ErrNotFound = httperr.NotFoundErr("appointment_not_found", "Agendamento não encontrado.")

type ListFilter struct {
	TenantID uuid.UUID
	LeadID   *uuid.UUID
	UserID   *uuid.UUID
	Status   string

	// intervalo [From, To)
	From *time.Time
	To   *time.Time
}

type Repository interface {
	List(
		ctx context.Context,
		filter ListFilter,
	) ([]models.Appointment, error)

	// FindByID não filtra por tenant; o chamador autoriza.
	FindByID(
		ctx context.Context,
		id uuid.UUID,
	) (*models.Appointment, error)

	// Schedule cria o agendamento e atualiza o lead (compare-and-set na
	// versão) na mesma transação.
	Schedule(
		ctx context.Context,
		ap *models.Appointment,
		lead *models.Lead,
		expectedLeadVersion int,
	) error

	UpdateStatus(
		ctx context.Context,
		ap *models.Appointment,
	) error

	// ListUpcoming traz agendamentos "agendado" em [from, to) com o lead.
	ListUpcoming(
		ctx context.Context,
		tenantID uuid.UUID,
		from time.Time,
		to time.Time,
	) ([]models.Appointment, error)
}
