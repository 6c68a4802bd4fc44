package note

import (
	"context"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/edu-crm/internal/httperr"
	"github.com/BruksfildServices01/edu-crm/internal/models"
)

var ErrNotFound = httperr.NotFoundErr("note_not_found", "Anotação não encontrada.")

type Repository interface {
	List(
		ctx context.Context,
		tenantID uuid.UUID,
		leadID *uuid.UUID,
	) ([]models.Note, error)

	// FindByID não filtra por tenant; o chamador autoriza.
	FindByID(
		ctx context.Context,
		id uuid.UUID,
	) (*models.Note, error)

	Create(
		ctx context.Context,
		note *models.Note,
	) error

	Delete(
		ctx context.Context,
		tenantID uuid.UUID,
		id uuid.UUID,
	) error
}
