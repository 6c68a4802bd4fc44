package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/edu-crm/internal/httperr"
	"github.com/BruksfildServices01/edu-crm/internal/httpresp"
	ucMetrics "github.com/BruksfildServices01/edu-crm/internal/usecase/metrics"
)

type MetricsHandler struct {
	dashboard *ucMetrics.Dashboard
	archive   *ucMetrics.ArchiveReport
}

func NewMetricsHandler(dashboard *ucMetrics.Dashboard, archive *ucMetrics.ArchiveReport) *MetricsHandler {
	return &MetricsHandler{dashboard: dashboard, archive: archive}
}

func dashboardInput(c *gin.Context) ucMetrics.DashboardInput {
	return ucMetrics.DashboardInput{
		TenantID:  c.Query("tenant_id"),
		UnitID:    c.Query("unit_id"),
		StartDate: c.Query("start_date"),
		EndDate:   c.Query("end_date"),
	}
}

// --------------------------------------------------
// GET /api/metrics/dashboard
// --------------------------------------------------
func (h *MetricsHandler) Dashboard(c *gin.Context) {
	cl, ok := caller(c)
	if !ok {
		return
	}

	out, err := h.dashboard.Execute(c.Request.Context(), cl, dashboardInput(c))
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, out)
}

// --------------------------------------------------
// POST /api/metrics/reports/archive
// --------------------------------------------------
func (h *MetricsHandler) Archive(c *gin.Context) {
	cl, ok := caller(c)
	if !ok {
		return
	}

	out, err := h.archive.Execute(c.Request.Context(), cl, dashboardInput(c))
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.Created(c, out)
}
