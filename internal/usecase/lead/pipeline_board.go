package lead

import (
	"context"

	domain "github.com/BruksfildServices01/edu-crm/internal/domain/lead"
	"github.com/BruksfildServices01/edu-crm/internal/dto"
	"github.com/BruksfildServices01/edu-crm/internal/tenancy"
)

// ColumnOther agrupa status legados fora do conjunto fechado.
const ColumnOther = "outros"

type PipelineBoard struct {
	repo domain.Repository
}

func NewPipelineBoard(repo domain.Repository) *PipelineBoard {
	return &PipelineBoard{repo: repo}
}

func (uc *PipelineBoard) Execute(
	ctx context.Context,
	caller tenancy.Caller,
	tenantRaw string,
	unitRaw string,
) (*dto.PipelineBoardDTO, error) {

	tenantID, err := caller.ResolveTenant(tenantRaw)
	if err != nil {
		return nil, err
	}

	unitID, err := parseUnit(unitRaw)
	if err != nil {
		return nil, err
	}

	leads, err := uc.repo.ListForBoard(ctx, tenantID, unitID)
	if err != nil {
		return nil, err
	}

	columns := make([]dto.PipelineColumnDTO, len(domain.Pipeline), len(domain.Pipeline)+1)
	for i, s := range domain.Pipeline {
		columns[i] = dto.PipelineColumnDTO{Status: string(s), Leads: []dto.LeadCardDTO{}}
	}

	var other []dto.LeadCardDTO
	for _, l := range leads {
		s := domain.Status(l.Status)
		if !s.Valid() {
			other = append(other, dto.LeadCard(l))
			continue
		}
		col := &columns[domain.Rank(s)]
		col.Leads = append(col.Leads, dto.LeadCard(l))
	}

	if len(other) > 0 {
		columns = append(columns, dto.PipelineColumnDTO{Status: ColumnOther, Leads: other})
	}
	for i := range columns {
		columns[i].Count = len(columns[i].Leads)
	}

	return &dto.PipelineBoardDTO{TenantID: tenantID, Columns: columns}, nil
}
