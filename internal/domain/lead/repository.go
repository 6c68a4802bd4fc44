package lead

import (
	"context"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/edu-crm/internal/httperr"
	"github.com/BruksfildServices01/edu-crm/internal/models"
)

var (
	ErrNotFound        = httperr.NotFoundErr("lead_not_found", "Lead não encontrado.")
	ErrVersionConflict = httperr.Conflict("version_conflict", "O lead foi alterado por outra pessoa. Recarregue e tente novamente.")
)

type ListFilter struct {
	TenantID      uuid.UUID
	UnitID        *uuid.UUID
	Status        string
	OriginChannel string
	Query         string

	Page  int
	Limit int
}

func (f ListFilter) Offset() int {
	if f.Page <= 1 {
		return 0
	}
	return (f.Page - 1) * f.Limit
}

type Repository interface {
	// -------- Lead (read) --------

	// FindByID não filtra por tenant; o chamador autoriza.
	FindByID(
		ctx context.Context,
		id uuid.UUID,
	) (*models.Lead, error)

	FindByWhatsApp(
		ctx context.Context,
		tenantID uuid.UUID,
		number string,
	) (*models.Lead, error)

	List(
		ctx context.Context,
		filter ListFilter,
	) ([]models.Lead, int64, error)

	ListForBoard(
		ctx context.Context,
		tenantID uuid.UUID,
		unitID *uuid.UUID,
	) ([]models.Lead, error)

	CountAppointments(
		ctx context.Context,
		tenantID uuid.UUID,
		leadID uuid.UUID,
	) (int64, error)

	// -------- Lead (write) --------

	// Create grava lead e primeira interação na mesma transação.
	Create(
		ctx context.Context,
		lead *models.Lead,
		first *models.Interaction,
	) error

	// Update é compare-and-set na versão; incrementa lead.Version.
	Update(
		ctx context.Context,
		lead *models.Lead,
		expectedVersion int,
	) error

	// Enroll cria a matrícula e atualiza o lead na mesma transação.
	Enroll(
		ctx context.Context,
		lead *models.Lead,
		expectedVersion int,
		enrollment *models.Enrollment,
	) error

	// -------- Interactions --------

	AppendInteraction(
		ctx context.Context,
		interaction *models.Interaction,
	) error

	ListInteractions(
		ctx context.Context,
		tenantID uuid.UUID,
		leadID uuid.UUID,
	) ([]models.Interaction, error)
}
