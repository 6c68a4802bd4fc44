package metrics

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/BruksfildServices01/edu-crm/internal/audit"
	"github.com/BruksfildServices01/edu-crm/internal/httperr"
	"github.com/BruksfildServices01/edu-crm/internal/tenancy"
)

var ErrReportsUnavailable = httperr.Unavailable("reports_unavailable", "Arquivamento de relatórios não configurado.")

// ObjectStore grava snapshots do dashboard (S3 ou compatível).
type ObjectStore interface {
	Put(ctx context.Context, key string, body []byte, contentType string) error
}

type ArchiveReportOutput struct {
	Key         string    `json:"key"`
	GeneratedAt time.Time `json:"generated_at"`
}

type ArchiveReport struct {
	dashboard *Dashboard
	store     ObjectStore
	audit     *audit.Dispatcher
}

func NewArchiveReport(dashboard *Dashboard, store ObjectStore, audit *audit.Dispatcher) *ArchiveReport {
	return &ArchiveReport{dashboard: dashboard, store: store, audit: audit}
}

func (uc *ArchiveReport) Execute(
	ctx context.Context,
	caller tenancy.Caller,
	in DashboardInput,
) (*ArchiveReportOutput, error) {

	if err := caller.RequireAdmin(); err != nil {
		return nil, err
	}
	if uc.store == nil {
		return nil, ErrReportsUnavailable
	}

	// 1️⃣ snapshot
	snapshot, err := uc.dashboard.Execute(ctx, caller, in)
	if err != nil {
		return nil, err
	}

	body, err := json.Marshal(snapshot)
	if err != nil {
		return nil, err
	}

	// 2️⃣ upload
	now := uc.dashboard.now().In(uc.dashboard.loc)
	key := ReportKey(snapshot.TenantID.String(), now)

	if err := uc.store.Put(ctx, key, body, "application/json"); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		TenantID: snapshot.TenantID,
		UserID:   caller.UserRef(),
		Action:   "dashboard_archived",
		Entity:   "report",
		Metadata: map[string]any{"key": key},
	})

	return &ArchiveReportOutput{Key: key, GeneratedAt: now}, nil
}

// ReportKey monta reports/<tenant>/<YYYY-MM>/dashboard-<unix>.json.
func ReportKey(tenantID string, at time.Time) string {
	return fmt.Sprintf("reports/%s/%s/dashboard-%d.json", tenantID, at.Format("2006-01"), at.Unix())
}
