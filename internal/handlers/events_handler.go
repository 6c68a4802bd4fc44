package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/edu-crm/internal/httperr"
	"github.com/BruksfildServices01/edu-crm/internal/httpresp"
	ucEvents "github.com/BruksfildServices01/edu-crm/internal/usecase/events"
)

// ======================================================
// HANDLER
// ======================================================

type EventsHandler struct {
	list *ucEvents.ListEvents
}

func NewEventsHandler(list *ucEvents.ListEvents) *EventsHandler {
	return &EventsHandler{list: list}
}

func (h *EventsHandler) List(c *gin.Context) {
	cl, ok := caller(c)
	if !ok {
		return
	}

	out, err := h.list.Execute(c.Request.Context(), cl, ucEvents.ListEventsInput{
		TenantID: c.Query("tenant_id"),
		Action:   c.Query("action"),
		Entity:   c.Query("entity"),
		EntityID: c.Query("entity_id"),
		From:     c.Query("from"),
		To:       c.Query("to"),
		Page:     queryInt(c, "page"),
		Limit:    queryInt(c, "limit"),
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, out)
}
