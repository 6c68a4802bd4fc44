package lead

import (
	"context"
	"strings"

	domain "github.com/BruksfildServices01/edu-crm/internal/domain/lead"
	"github.com/BruksfildServices01/edu-crm/internal/dto"
	"github.com/BruksfildServices01/edu-crm/internal/tenancy"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

type ListLeadsInput struct {
	TenantID      string
	UnitID        string
	Status        string
	OriginChannel string
	Query         string
	Page          int
	Limit         int
}

type ListLeads struct {
	repo domain.Repository
}

func NewListLeads(repo domain.Repository) *ListLeads {
	return &ListLeads{repo: repo}
}

func (uc *ListLeads) Execute(
	ctx context.Context,
	caller tenancy.Caller,
	in ListLeadsInput,
) (*dto.LeadListDTO, error) {

	tenantID, err := caller.ResolveTenant(in.TenantID)
	if err != nil {
		return nil, err
	}

	unitID, err := parseUnit(in.UnitID)
	if err != nil {
		return nil, err
	}

	var status string
	if strings.TrimSpace(in.Status) != "" {
		s, err := domain.ParseStatus(in.Status)
		if err != nil {
			return nil, err
		}
		status = string(s)
	}

	page := in.Page
	if page <= 0 {
		page = 1
	}
	limit := in.Limit
	if limit <= 0 || limit > maxPageSize {
		limit = defaultPageSize
	}

	leads, total, err := uc.repo.List(ctx, domain.ListFilter{
		TenantID:      tenantID,
		UnitID:        unitID,
		Status:        status,
		OriginChannel: strings.TrimSpace(in.OriginChannel),
		Query:         strings.TrimSpace(in.Query),
		Page:          page,
		Limit:         limit,
	})
	if err != nil {
		return nil, err
	}

	return &dto.LeadListDTO{
		Page:  page,
		Limit: limit,
		Total: total,
		Leads: leads,
	}, nil
}
