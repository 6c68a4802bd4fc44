package maintenance

import (
	"context"

	"go.uber.org/zap"

	domain "github.com/BruksfildServices01/edu-crm/internal/domain/maintenance"
	"github.com/BruksfildServices01/edu-crm/internal/logger"
	"github.com/BruksfildServices01/edu-crm/internal/tenancy"
)

type IntegrityOutput struct {
	domain.IntegrityReport
	Healthy bool `json:"healthy"`
}

type CheckIntegrity struct {
	repo domain.Repository
}

func NewCheckIntegrity(repo domain.Repository) *CheckIntegrity {
	return &CheckIntegrity{repo: repo}
}

func (uc *CheckIntegrity) Execute(ctx context.Context, caller tenancy.Caller) (*IntegrityOutput, error) {
	if err := caller.RequireMaster(); err != nil {
		return nil, err
	}

	rep, err := uc.repo.Integrity(ctx)
	if err != nil {
		return nil, err
	}
	return &IntegrityOutput{IntegrityReport: rep, Healthy: rep.Healthy()}, nil
}

// PurgeOrphans é o único caminho que apaga leads fisicamente.
type PurgeOrphans struct {
	repo domain.Repository
	log  *zap.Logger
}

func NewPurgeOrphans(repo domain.Repository, log *zap.Logger) *PurgeOrphans {
	return &PurgeOrphans{repo: repo, log: logger.OrNop(log)}
}

func (uc *PurgeOrphans) Execute(ctx context.Context, caller tenancy.Caller) (*domain.PurgeReport, error) {
	if err := caller.RequireMaster(); err != nil {
		return nil, err
	}

	rep, err := uc.repo.PurgeOrphans(ctx)
	if err != nil {
		return nil, err
	}

	uc.log.Warn("orphan rows purged",
		zap.String("user_id", caller.UserID.String()),
		zap.Int64("leads", rep.Leads),
		zap.Int64("appointments", rep.Appointments),
		zap.Int64("enrollments", rep.Enrollments),
		zap.Int64("notes", rep.Notes),
		zap.Int64("interactions", rep.Interactions),
	)
	return &rep, nil
}
