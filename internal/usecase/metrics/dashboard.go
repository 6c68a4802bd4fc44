package metrics

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	leaddomain "github.com/BruksfildServices01/edu-crm/internal/domain/lead"
	domain "github.com/BruksfildServices01/edu-crm/internal/domain/metrics"
	"github.com/BruksfildServices01/edu-crm/internal/httperr"
	"github.com/BruksfildServices01/edu-crm/internal/logger"
	"github.com/BruksfildServices01/edu-crm/internal/observability"
	"github.com/BruksfildServices01/edu-crm/internal/tenancy"
	"github.com/BruksfildServices01/edu-crm/internal/timezone"
)

const (
	recentLeadsLimit = 10
	evolutionMonths  = 12
	maxParallel      = 4
	defaultTimeout   = 5 * time.Second
)

// nomes das seções (também usados em partial_failures)
const (
	SectionTotal      = "total_leads"
	SectionScheduled  = "scheduled_leads"
	SectionAttended   = "attended_leads"
	SectionConverted  = "converted_leads"
	SectionNew        = "new_leads"
	SectionEvolution  = "monthly_evolution"
	SectionPipeline   = "pipeline_data"
	SectionDiscipline = "discipline_data"
	SectionRecent     = "recent_leads"
)

var ErrInvalidUnit = httperr.InvalidArgument("invalid_unit_id", "unit_id inválido.")

type DashboardInput struct {
	TenantID  string
	UnitID    string
	StartDate string
	EndDate   string
}

type Dashboard struct {
	repo    domain.Repository
	log     *zap.Logger
	loc     *time.Location
	timeout time.Duration
	now     func() time.Time
}

func NewDashboard(
	repo domain.Repository,
	log *zap.Logger,
	loc *time.Location,
	timeout time.Duration,
) *Dashboard {
	if loc == nil {
		loc = timezone.Location(timezone.DefaultTimezone)
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Dashboard{
		repo:    repo,
		log:     logger.OrNop(log),
		loc:     loc,
		timeout: timeout,
		now:     time.Now,
	}
}

// ======================================================
// EXECUTE
// ======================================================

// Execute roda cada agregado de forma independente. A falha de uma seção
// é registrada em PartialFailures e a seção fica zerada; nunca derruba o
// dashboard inteiro.
func (uc *Dashboard) Execute(
	ctx context.Context,
	caller tenancy.Caller,
	in DashboardInput,
) (*domain.Dashboard, error) {

	filter, err := uc.filter(caller, in)
	if err != nil {
		return nil, err
	}

	out := &domain.Dashboard{
		TenantID:         filter.TenantID,
		UnitID:           filter.UnitID,
		Period:           domain.Period{Start: filter.Start, End: filter.End},
		MonthlyEvolution: []domain.MonthBucket{},
		PipelineData:     []domain.StatusCount{},
		DisciplineData:   []domain.DisciplineCount{},
		RecentLeads:      []domain.RecentLead{},
		PartialFailures:  []string{},
	}

	var (
		mu sync.Mutex
		g  errgroup.Group
	)
	g.SetLimit(maxParallel)

	run := func(section string, fn func(ctx context.Context) error) {
		g.Go(func() error {
			qctx, cancel := context.WithTimeout(ctx, uc.timeout)
			defer cancel()

			if err := fn(qctx); err != nil {
				uc.log.Warn("dashboard section failed",
					zap.String("section", section),
					zap.String("tenant_id", filter.TenantID.String()),
					zap.Error(err),
				)
				observability.DashboardSectionFailures.WithLabelValues(section).Inc()

				mu.Lock()
				out.PartialFailures = append(out.PartialFailures, section)
				mu.Unlock()
			}
			return nil
		})
	}

	var (
		total, scheduled, attended, converted, fresh int64
		evolution                                   []domain.MonthBucket
		pipeline                                    []domain.StatusCount
		disciplines                                 []domain.DisciplineCount
		recent                                      []domain.RecentLead
	)

	run(SectionTotal, func(ctx context.Context) (err error) {
		total, err = uc.repo.CountLeads(ctx, filter)
		return err
	})
	run(SectionScheduled, func(ctx context.Context) (err error) {
		scheduled, err = uc.repo.CountByStatus(ctx, filter, string(leaddomain.StatusScheduled))
		return err
	})
	run(SectionAttended, func(ctx context.Context) (err error) {
		attended, err = uc.repo.CountAttended(ctx, filter)
		return err
	})
	run(SectionConverted, func(ctx context.Context) (err error) {
		converted, err = uc.repo.CountConverted(ctx, filter)
		return err
	})
	run(SectionNew, func(ctx context.Context) (err error) {
		fresh, err = uc.repo.CountByStatus(ctx, filter, string(leaddomain.StatusNew))
		return err
	})
	run(SectionEvolution, func(ctx context.Context) (err error) {
		evolution, err = uc.monthlyEvolution(ctx, filter.TenantID, filter.UnitID)
		return err
	})
	run(SectionPipeline, func(ctx context.Context) (err error) {
		pipeline, err = uc.pipeline(ctx, filter)
		return err
	})
	run(SectionDiscipline, func(ctx context.Context) (err error) {
		disciplines, err = uc.disciplines(ctx, filter)
		return err
	})
	run(SectionRecent, func(ctx context.Context) (err error) {
		recent, err = uc.recent(ctx, filter)
		return err
	})

	_ = g.Wait()

	out.TotalLeads = total
	out.ScheduledLeads = scheduled
	out.AttendedLeads = attended
	out.ConvertedLeads = converted
	out.NewLeads = fresh

	out.SchedulingRate = domain.Rate(scheduled, total)
	out.AttendanceRate = domain.Rate(attended, scheduled)
	out.ConversionRate = domain.Rate(converted, total)

	if evolution != nil {
		out.MonthlyEvolution = evolution
	}
	if pipeline != nil {
		out.PipelineData = pipeline
	}
	if disciplines != nil {
		out.DisciplineData = disciplines
	}
	if recent != nil {
		out.RecentLeads = recent
	}
	sort.Strings(out.PartialFailures)

	return out, nil
}

// ======================================================
// Filtro
// ======================================================

func (uc *Dashboard) filter(caller tenancy.Caller, in DashboardInput) (domain.Filter, error) {
	tenantID, err := caller.ResolveTenant(in.TenantID)
	if err != nil {
		return domain.Filter{}, err
	}

	var unitID *uuid.UUID
	if raw := strings.TrimSpace(in.UnitID); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return domain.Filter{}, ErrInvalidUnit
		}
		unitID = &id
	}

	from, to, err := timezone.DayRange(strings.TrimSpace(in.StartDate), strings.TrimSpace(in.EndDate), uc.loc)
	if err != nil {
		return domain.Filter{}, err
	}

	now := uc.now().In(uc.loc)
	if from == nil {
		start := timezone.MonthStart(now)
		from = &start
	}
	if to == nil {
		to = &now
	}
	if to.Before(*from) {
		return domain.Filter{}, timezone.ErrInvalidRange
	}

	return domain.Filter{
		TenantID: tenantID,
		UnitID:   unitID,
		Start:    *from,
		End:      *to,
	}, nil
}

// ======================================================
// Seções
// ======================================================

// monthlyEvolution devolve sempre 12 meses, do mais recente ao mais
// antigo, independente do período pedido.
func (uc *Dashboard) monthlyEvolution(ctx context.Context, tenantID uuid.UUID, unitID *uuid.UUID) ([]domain.MonthBucket, error) {
	current := timezone.MonthStart(uc.now().In(uc.loc))
	since := current.AddDate(0, -(evolutionMonths - 1), 0)

	rows, err := uc.repo.MonthlyEvolution(ctx, tenantID, unitID, since, uc.loc)
	if err != nil {
		return nil, err
	}

	byMonth := make(map[string]domain.MonthBucket, len(rows))
	for _, r := range rows {
		byMonth[r.Month] = r
	}

	out := make([]domain.MonthBucket, 0, evolutionMonths)
	for i := 0; i < evolutionMonths; i++ {
		month := current.AddDate(0, -i, 0).Format("2006-01")
		b := byMonth[month]
		b.Month = month
		out = append(out, b)
	}
	return out, nil
}

// pipeline segue a ordem canônica; status desconhecidos vão ao final.
func (uc *Dashboard) pipeline(ctx context.Context, f domain.Filter) ([]domain.StatusCount, error) {
	rows, err := uc.repo.StatusBreakdown(ctx, f)
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int64, len(rows))
	for _, r := range rows {
		counts[r.Status] += r.Count
	}

	out := make([]domain.StatusCount, 0, len(leaddomain.Pipeline)+len(counts))
	for _, s := range leaddomain.Pipeline {
		out = append(out, domain.StatusCount{Status: string(s), Count: counts[string(s)]})
		delete(counts, string(s))
	}

	var others []domain.StatusCount
	for s, n := range counts {
		others = append(others, domain.StatusCount{Status: s, Count: n})
	}
	sort.Slice(others, func(i, j int) bool { return others[i].Status < others[j].Status })

	return append(out, others...), nil
}

func (uc *Dashboard) disciplines(ctx context.Context, f domain.Filter) ([]domain.DisciplineCount, error) {
	rows, err := uc.repo.DisciplineBreakdown(ctx, f)
	if err != nil {
		return nil, err
	}

	var sum int64
	for _, r := range rows {
		sum += r.Count
	}

	out := make([]domain.DisciplineCount, 0, len(rows))
	for _, r := range rows {
		r.Percentage = domain.Rate(r.Count, sum)
		out = append(out, r)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Discipline < out[j].Discipline
	})
	return out, nil
}

func (uc *Dashboard) recent(ctx context.Context, f domain.Filter) ([]domain.RecentLead, error) {
	leads, err := uc.repo.RecentLeads(ctx, f, recentLeadsLimit)
	if err != nil {
		return nil, err
	}

	out := make([]domain.RecentLead, 0, len(leads))
	for _, l := range leads {
		out = append(out, domain.RecentLead{
			ID:             l.ID,
			Name:           l.Name,
			WhatsAppNumber: l.WhatsAppNumber,
			Status:         l.Status,
			CreatedAt:      l.CreatedAt,
		})
	}
	return out, nil
}
