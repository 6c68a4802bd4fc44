package unit

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/edu-crm/internal/audit"
	domain "github.com/BruksfildServices01/edu-crm/internal/domain/unit"
	"github.com/BruksfildServices01/edu-crm/internal/httperr"
	"github.com/BruksfildServices01/edu-crm/internal/models"
	"github.com/BruksfildServices01/edu-crm/internal/tenancy"
)

var ErrNameRequired = httperr.InvalidArgument("unit_name_required", "Nome da unidade é obrigatório.")

type ListUnits struct {
	repo domain.Repository
}

func NewListUnits(repo domain.Repository) *ListUnits {
	return &ListUnits{repo: repo}
}

// Execute devolve todas as unidades para master e as do próprio tenant
// para os demais.
func (uc *ListUnits) Execute(ctx context.Context, caller tenancy.Caller) ([]models.Unit, error) {
	if caller.IsMaster {
		return uc.repo.List(ctx, nil)
	}
	tenantID := caller.TenantID
	return uc.repo.List(ctx, &tenantID)
}

type CreateUnitInput struct {
	Name    string
	Address string
	Phone   string
}

type CreateUnit struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewCreateUnit(repo domain.Repository, audit *audit.Dispatcher) *CreateUnit {
	return &CreateUnit{repo: repo, audit: audit}
}

// Execute cria uma unidade filha dentro do tenant do chamador.
func (uc *CreateUnit) Execute(ctx context.Context, caller tenancy.Caller, in CreateUnitInput) (*models.Unit, error) {
	if err := caller.RequireAdmin(); err != nil {
		return nil, err
	}

	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, ErrNameRequired
	}

	u := &models.Unit{
		ID:       uuid.New(),
		TenantID: caller.TenantID,
		Name:     name,
		Address:  strings.TrimSpace(in.Address),
		Phone:    strings.TrimSpace(in.Phone),
	}
	if err := uc.repo.Create(ctx, u); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		TenantID: u.TenantID,
		UserID:   caller.UserRef(),
		Action:   "unit_created",
		Entity:   "unit",
		EntityID: &u.ID,
	})
	return u, nil
}
