package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/BruksfildServices01/edu-crm/internal/httperr"
	"github.com/BruksfildServices01/edu-crm/internal/httpresp"
	ucNote "github.com/BruksfildServices01/edu-crm/internal/usecase/note"
)

type NoteHandler struct {
	list   *ucNote.ListNotes
	create *ucNote.CreateNote
	remove *ucNote.DeleteNote
}

func NewNoteHandler(
	list *ucNote.ListNotes,
	create *ucNote.CreateNote,
	remove *ucNote.DeleteNote,
) *NoteHandler {
	return &NoteHandler{list: list, create: create, remove: remove}
}

type CreateNoteRequest struct {
	TenantID      string     `json:"tenant_id"`
	LeadID        *uuid.UUID `json:"lead_id"`
	AppointmentID *uuid.UUID `json:"agendamento_id"`
	EnrollmentID  *uuid.UUID `json:"matricula_id"`
	Content       string     `json:"conteudo" binding:"required"`
}

func (h *NoteHandler) List(c *gin.Context) {
	cl, ok := caller(c)
	if !ok {
		return
	}

	notes, err := h.list.Execute(c.Request.Context(), cl, c.Query("tenant_id"), c.Query("lead_id"))
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.List(c, notes)
}

func (h *NoteHandler) Create(c *gin.Context) {
	cl, ok := caller(c)
	if !ok {
		return
	}

	var req CreateNoteRequest
	if !bindJSON(c, &req) {
		return
	}

	n, err := h.create.Execute(c.Request.Context(), cl, ucNote.CreateNoteInput{
		TenantID:      req.TenantID,
		LeadID:        req.LeadID,
		AppointmentID: req.AppointmentID,
		EnrollmentID:  req.EnrollmentID,
		Content:       req.Content,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.Created(c, n)
}

func (h *NoteHandler) Delete(c *gin.Context) {
	cl, ok := caller(c)
	if !ok {
		return
	}
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	if err := h.remove.Execute(c.Request.Context(), cl, id); err != nil {
		httperr.Respond(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
