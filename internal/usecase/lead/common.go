package lead

import (
	"context"
	"strings"

	"github.com/google/uuid"

	domain "github.com/BruksfildServices01/edu-crm/internal/domain/lead"
	"github.com/BruksfildServices01/edu-crm/internal/httperr"
	"github.com/BruksfildServices01/edu-crm/internal/models"
	"github.com/BruksfildServices01/edu-crm/internal/tenancy"
)

var ErrInvalidUnit = httperr.InvalidArgument("invalid_unit_id", "unit_id inválido.")

// loadAuthorized busca o lead e aplica a checagem de tenant.
func loadAuthorized(
	ctx context.Context,
	repo domain.Repository,
	caller tenancy.Caller,
	id uuid.UUID,
) (*models.Lead, error) {

	l, err := repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := caller.Authorize(l.TenantID); err != nil {
		return nil, err
	}
	return l, nil
}

func parseUnit(raw string) (*uuid.UUID, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return nil, ErrInvalidUnit
	}
	return &id, nil
}
