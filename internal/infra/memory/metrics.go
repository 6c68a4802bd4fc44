package memory

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/edu-crm/internal/domain/metrics"
	"github.com/BruksfildServices01/edu-crm/internal/models"
)

type MetricsRepository struct {
	s *Store
}

func NewMetricsRepository(s *Store) *MetricsRepository {
	return &MetricsRepository{s: s}
}

var _ metrics.Repository = (*MetricsRepository)(nil)

func (r *MetricsRepository) count(f metrics.Filter, pred func(models.Lead) bool) int64 {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var n int64
	for _, l := range r.s.leads {
		if matches(l, f) && pred(l) {
			n++
		}
	}
	return n
}

func (r *MetricsRepository) CountLeads(ctx context.Context, f metrics.Filter) (int64, error) {
	return r.count(f, func(models.Lead) bool { return true }), nil
}

func (r *MetricsRepository) CountByStatus(ctx context.Context, f metrics.Filter, status string) (int64, error) {
	return r.count(f, func(l models.Lead) bool { return l.Status == status }), nil
}

func (r *MetricsRepository) CountAttended(ctx context.Context, f metrics.Filter) (int64, error) {
	return r.count(f, func(l models.Lead) bool { return l.Attended }), nil
}

func (r *MetricsRepository) CountConverted(ctx context.Context, f metrics.Filter) (int64, error) {
	return r.count(f, func(l models.Lead) bool { return l.Converted }), nil
}

func (r *MetricsRepository) MonthlyEvolution(
	ctx context.Context,
	tenantID uuid.UUID,
	unitID *uuid.UUID,
	since time.Time,
	loc *time.Location,
) ([]metrics.MonthBucket, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	buckets := map[string]*metrics.MonthBucket{}
	for _, l := range r.s.leads {
		if !inScope(l, tenantID, unitID) || l.CreatedAt.Before(since) {
			continue
		}
		month := l.CreatedAt.In(loc).Format("2006-01")
		b, ok := buckets[month]
		if !ok {
			b = &metrics.MonthBucket{Month: month}
			buckets[month] = b
		}
		b.Total++
		if l.Converted {
			b.Converted++
		}
	}

	out := make([]metrics.MonthBucket, 0, len(buckets))
	for _, b := range buckets {
		out = append(out, *b)
	}
	return out, nil
}

func (r *MetricsRepository) StatusBreakdown(ctx context.Context, f metrics.Filter) ([]metrics.StatusCount, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	counts := map[string]int64{}
	for _, l := range r.s.leads {
		if matches(l, f) {
			counts[l.Status]++
		}
	}

	out := make([]metrics.StatusCount, 0, len(counts))
	for s, n := range counts {
		out = append(out, metrics.StatusCount{Status: s, Count: n})
	}
	return out, nil
}

func (r *MetricsRepository) DisciplineBreakdown(ctx context.Context, f metrics.Filter) ([]metrics.DisciplineCount, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	counts := map[string]int64{}
	for _, l := range r.s.leads {
		if !matches(l, f) {
			continue
		}
		d := strings.TrimSpace(l.Discipline)
		if d == "" {
			d = metrics.NoDiscipline
		}
		counts[d]++
	}

	out := make([]metrics.DisciplineCount, 0, len(counts))
	for d, n := range counts {
		out = append(out, metrics.DisciplineCount{Discipline: d, Count: n})
	}
	return out, nil
}

func (r *MetricsRepository) RecentLeads(ctx context.Context, f metrics.Filter, limit int) ([]models.Lead, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var out []models.Lead
	for _, l := range r.s.leads {
		if matches(l, f) {
			out = append(out, l)
		}
	}

	sortLeadsByCreatedDesc(out)
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func matches(l models.Lead, f metrics.Filter) bool {
	if !inScope(l, f.TenantID, f.UnitID) {
		return false
	}
	if !f.Start.IsZero() && l.CreatedAt.Before(f.Start) {
		return false
	}
	if !f.End.IsZero() && !l.CreatedAt.Before(f.End) {
		return false
	}
	return true
}
