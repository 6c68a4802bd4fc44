package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/edu-crm/internal/domain/metrics"
	"github.com/BruksfildServices01/edu-crm/internal/models"
)

// MetricsGormRepository faz uma query agregada por seção do dashboard.
type MetricsGormRepository struct {
	db *gorm.DB
}

func NewMetricsGormRepository(db *gorm.DB) *MetricsGormRepository {
	return &MetricsGormRepository{db: db}
}

func (r *MetricsGormRepository) scope(ctx context.Context, f metrics.Filter) *gorm.DB {
	q := scopeLeads(r.db.WithContext(ctx).Model(&models.Lead{}), f.TenantID, f.UnitID)
	if !f.Start.IsZero() {
		q = q.Where("created_at >= ?", f.Start)
	}
	if !f.End.IsZero() {
		q = q.Where("created_at < ?", f.End)
	}
	return q
}

// --------------------------------------------------
// Contadores
// --------------------------------------------------

func (r *MetricsGormRepository) CountLeads(ctx context.Context, f metrics.Filter) (int64, error) {
	var n int64
	err := r.scope(ctx, f).Count(&n).Error
	return n, err
}

func (r *MetricsGormRepository) CountByStatus(ctx context.Context, f metrics.Filter, status string) (int64, error) {
	var n int64
	err := r.scope(ctx, f).Where("status = ?", status).Count(&n).Error
	return n, err
}

func (r *MetricsGormRepository) CountAttended(ctx context.Context, f metrics.Filter) (int64, error) {
	var n int64
	err := r.scope(ctx, f).Where("attended = ?", true).Count(&n).Error
	return n, err
}

func (r *MetricsGormRepository) CountConverted(ctx context.Context, f metrics.Filter) (int64, error) {
	var n int64
	err := r.scope(ctx, f).Where("converted = ?", true).Count(&n).Error
	return n, err
}

// --------------------------------------------------
// Séries
// --------------------------------------------------

func (r *MetricsGormRepository) MonthlyEvolution(
	ctx context.Context,
	tenantID uuid.UUID,
	unitID *uuid.UUID,
	since time.Time,
	loc *time.Location,
) ([]metrics.MonthBucket, error) {

	var rows []metrics.MonthBucket
	err := scopeLeads(r.db.WithContext(ctx).Model(&models.Lead{}), tenantID, unitID).
		Select(
			"to_char(date_trunc('month', created_at AT TIME ZONE ?), 'YYYY-MM') AS month, "+
				"COUNT(*) AS total, "+
				"COUNT(*) FILTER (WHERE converted) AS converted",
			loc.String(),
		).
		Where("created_at >= ?", since).
		Group("1").
		Scan(&rows).Error
	return rows, err
}

func (r *MetricsGormRepository) StatusBreakdown(ctx context.Context, f metrics.Filter) ([]metrics.StatusCount, error) {
	var rows []metrics.StatusCount
	err := r.scope(ctx, f).
		Select("status, COUNT(*) AS count").
		Group("status").
		Scan(&rows).Error
	return rows, err
}

func (r *MetricsGormRepository) DisciplineBreakdown(ctx context.Context, f metrics.Filter) ([]metrics.DisciplineCount, error) {
	var rows []metrics.DisciplineCount
	err := r.scope(ctx, f).
		Select("COALESCE(NULLIF(TRIM(discipline), ''), ?) AS discipline, COUNT(*) AS count", metrics.NoDiscipline).
		Group("1").
		Scan(&rows).Error
	return rows, err
}

func (r *MetricsGormRepository) RecentLeads(ctx context.Context, f metrics.Filter, limit int) ([]models.Lead, error) {
	var leads []models.Lead
	err := r.scope(ctx, f).
		Order("created_at DESC").
		Limit(limit).
		Find(&leads).Error
	return leads, err
}

// Compile-time check
var _ metrics.Repository = (*MetricsGormRepository)(nil)
