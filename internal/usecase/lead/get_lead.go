package lead

import (
	"context"

	"github.com/google/uuid"

	domain "github.com/BruksfildServices01/edu-crm/internal/domain/lead"
	"github.com/BruksfildServices01/edu-crm/internal/models"
	"github.com/BruksfildServices01/edu-crm/internal/tenancy"
)

type GetLead struct {
	repo domain.Repository
}

func NewGetLead(repo domain.Repository) *GetLead {
	return &GetLead{repo: repo}
}

func (uc *GetLead) Execute(
	ctx context.Context,
	caller tenancy.Caller,
	id uuid.UUID,
) (*models.Lead, error) {
	return loadAuthorized(ctx, uc.repo, caller, id)
}

type ListInteractions struct {
	repo domain.Repository
}

func NewListInteractions(repo domain.Repository) *ListInteractions {
	return &ListInteractions{repo: repo}
}

func (uc *ListInteractions) Execute(
	ctx context.Context,
	caller tenancy.Caller,
	leadID uuid.UUID,
) ([]models.Interaction, error) {

	l, err := loadAuthorized(ctx, uc.repo, caller, leadID)
	if err != nil {
		return nil, err
	}
	return uc.repo.ListInteractions(ctx, l.TenantID, l.ID)
}
