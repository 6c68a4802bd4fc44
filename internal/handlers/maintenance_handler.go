package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/edu-crm/internal/httperr"
	"github.com/BruksfildServices01/edu-crm/internal/httpresp"
	ucMaintenance "github.com/BruksfildServices01/edu-crm/internal/usecase/maintenance"
)

type MaintenanceHandler struct {
	integrity *ucMaintenance.CheckIntegrity
	purge     *ucMaintenance.PurgeOrphans
}

func NewMaintenanceHandler(
	integrity *ucMaintenance.CheckIntegrity,
	purge *ucMaintenance.PurgeOrphans,
) *MaintenanceHandler {
	return &MaintenanceHandler{integrity: integrity, purge: purge}
}

func (h *MaintenanceHandler) Integrity(c *gin.Context) {
	cl, ok := caller(c)
	if !ok {
		return
	}

	out, err := h.integrity.Execute(c.Request.Context(), cl)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, out)
}

func (h *MaintenanceHandler) PurgeOrphans(c *gin.Context) {
	cl, ok := caller(c)
	if !ok {
		return
	}

	out, err := h.purge.Execute(c.Request.Context(), cl)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, out)
}
