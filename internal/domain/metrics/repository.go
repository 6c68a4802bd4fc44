package metrics

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/edu-crm/internal/models"
)

// Repository expõe uma consulta agregada por seção do dashboard. Cada
// método é independente para que a falha de um não contamine os outros.
type Repository interface {
	CountLeads(ctx context.Context, f Filter) (int64, error)
	CountByStatus(ctx context.Context, f Filter, status string) (int64, error)
	CountAttended(ctx context.Context, f Filter) (int64, error)
	CountConverted(ctx context.Context, f Filter) (int64, error)

	// MonthlyEvolution agrupa por mês (YYYY-MM no fuso loc) desde since.
	MonthlyEvolution(
		ctx context.Context,
		tenantID uuid.UUID,
		unitID *uuid.UUID,
		since time.Time,
		loc *time.Location,
	) ([]MonthBucket, error)

	StatusBreakdown(ctx context.Context, f Filter) ([]StatusCount, error)

	// DisciplineBreakdown devolve contagens; percentuais ficam no use case.
	DisciplineBreakdown(ctx context.Context, f Filter) ([]DisciplineCount, error)

	RecentLeads(ctx context.Context, f Filter, limit int) ([]models.Lead, error)
}
