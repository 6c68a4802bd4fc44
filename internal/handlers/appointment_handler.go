package handlers

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/BruksfildServices01/edu-crm/internal/httperr"
	"github.com/BruksfildServices01/edu-crm/internal/httpresp"
	ucAppointment "github.com/BruksfildServices01/edu-crm/internal/usecase/appointment"
)

// ======================================================
// HANDLER
// ======================================================

type AppointmentHandler struct {
	list         *ucAppointment.ListAppointments
	schedule     *ucAppointment.ScheduleAppointment
	changeStatus *ucAppointment.ChangeAppointmentStatus
}

func NewAppointmentHandler(
	list *ucAppointment.ListAppointments,
	schedule *ucAppointment.ScheduleAppointment,
	changeStatus *ucAppointment.ChangeAppointmentStatus,
) *AppointmentHandler {
	return &AppointmentHandler{
		list:         list,
		schedule:     schedule,
		changeStatus: changeStatus,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type ScheduleAppointmentRequest struct {
	LeadID      uuid.UUID  `json:"lead_id" binding:"required"`
	ScheduledAt *time.Time `json:"data_agendamento" binding:"required"`
	Kind        string     `json:"tipo"`
	Notes       string     `json:"observacoes"`
	LeadVersion *int       `json:"lead_version"`
}

type ChangeAppointmentStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// ======================================================
// LIST
// ======================================================

func (h *AppointmentHandler) List(c *gin.Context) {
	cl, ok := caller(c)
	if !ok {
		return
	}

	items, err := h.list.Execute(c.Request.Context(), cl, ucAppointment.ListAppointmentsInput{
		TenantID:  c.Query("tenant_id"),
		LeadID:    c.Query("lead_id"),
		UserID:    c.Query("user_id"),
		Status:    c.Query("status"),
		StartDate: c.Query("start_date"),
		EndDate:   c.Query("end_date"),
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.List(c, items)
}

// ======================================================
// CREATE
// ======================================================

func (h *AppointmentHandler) Create(c *gin.Context) {
	cl, ok := caller(c)
	if !ok {
		return
	}

	var req ScheduleAppointmentRequest
	if !bindJSON(c, &req) {
		return
	}

	out, err := h.schedule.Execute(c.Request.Context(), cl, ucAppointment.ScheduleAppointmentInput{
		LeadID:      req.LeadID,
		UserID:      cl.UserRef(),
		ScheduledAt: *req.ScheduledAt,
		Kind:        req.Kind,
		Notes:       req.Notes,
		LeadVersion: req.LeadVersion,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.Created(c, out)
}

// ======================================================
// STATUS
// ======================================================

func (h *AppointmentHandler) ChangeStatus(c *gin.Context) {
	cl, ok := caller(c)
	if !ok {
		return
	}
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	var req ChangeAppointmentStatusRequest
	if !bindJSON(c, &req) {
		return
	}

	ap, err := h.changeStatus.Execute(c.Request.Context(), cl, id, req.Status)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, ap)
}
