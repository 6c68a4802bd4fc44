package unit

import (
	"context"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/edu-crm/internal/httperr"
	"github.com/BruksfildServices01/edu-crm/internal/models"
)

var ErrNotFound = httperr.NotFoundErr("unit_not_found", "Unidade não encontrada.")

type Repository interface {
	FindByID(
		ctx context.Context,
		id uuid.UUID,
	) (*models.Unit, error)

	// List com tenantID nil devolve todas as unidades.
	List(
		ctx context.Context,
		tenantID *uuid.UUID,
	) ([]models.Unit, error)

	Create(
		ctx context.Context,
		unit *models.Unit,
	) error

	// ListTenantIDs devolve os tenants existentes (unidades raiz).
	ListTenantIDs(
		ctx context.Context,
	) ([]uuid.UUID, error)
}
