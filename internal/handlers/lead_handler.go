package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/BruksfildServices01/edu-crm/internal/httperr"
	"github.com/BruksfildServices01/edu-crm/internal/httpresp"
	ucIngestion "github.com/BruksfildServices01/edu-crm/internal/usecase/ingestion"
	ucLead "github.com/BruksfildServices01/edu-crm/internal/usecase/lead"
)

// ======================================================
// HANDLER
// ======================================================

type LeadHandler struct {
	list         *ucLead.ListLeads
	pipeline     *ucLead.PipelineBoard
	get          *ucLead.GetLead
	interactions *ucLead.ListInteractions
	update       *ucLead.UpdateLead
	enroll       *ucLead.EnrollLead
	form         *ucIngestion.IngestForm
}

func NewLeadHandler(
	list *ucLead.ListLeads,
	pipeline *ucLead.PipelineBoard,
	get *ucLead.GetLead,
	interactions *ucLead.ListInteractions,
	update *ucLead.UpdateLead,
	enroll *ucLead.EnrollLead,
	form *ucIngestion.IngestForm,
) *LeadHandler {
	return &LeadHandler{
		list:         list,
		pipeline:     pipeline,
		get:          get,
		interactions: interactions,
		update:       update,
		enroll:       enroll,
		form:         form,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateLeadRequest struct {
	TenantID       string `json:"tenant_id"`
	UnitID         string `json:"unit_id"`
	Name           string `json:"name" binding:"required"`
	WhatsAppNumber string `json:"whatsapp_number" binding:"required"`
	Discipline     string `json:"discipline"`
	AgeGroup       string `json:"age_group"`
	WhoSearched    string `json:"who_searched"`
	InterestLevel  string `json:"interest_level"`
	OriginChannel  string `json:"origin_channel"`
	Observations   string `json:"observations"`
	Message        string `json:"message"`
}

type EnrollmentRequest struct {
	Plan       string     `json:"plano"`
	Discipline string     `json:"disciplina"`
	MonthlyFee float64    `json:"valor_mensalidade"`
	StartDate  *time.Time `json:"data_inicio"`
	EndDate    *time.Time `json:"data_fim"`
	Status     string     `json:"status"`
}

func (r EnrollmentRequest) input() ucLead.EnrollmentInput {
	return ucLead.EnrollmentInput{
		Plan:       r.Plan,
		Discipline: r.Discipline,
		MonthlyFee: r.MonthlyFee,
		StartDate:  r.StartDate,
		EndDate:    r.EndDate,
		Status:     r.Status,
	}
}

type UpdateLeadRequest struct {
	Version *int `json:"version"`

	Status        *string    `json:"status"`
	Attended      *bool      `json:"attended"`
	Converted     *bool      `json:"converted"`
	InterestLevel *string    `json:"interest_level"`
	Observations  *string    `json:"observations"`
	ScheduledDate *time.Time `json:"scheduled_date"`

	Name          *string `json:"name"`
	Discipline    *string `json:"discipline"`
	AgeGroup      *string `json:"age_group"`
	WhoSearched   *string `json:"who_searched"`
	OriginChannel *string `json:"origin_channel"`

	Enrollment *EnrollmentRequest `json:"enrollment"`
}

type EnrollLeadRequest struct {
	Version *int `json:"version"`
	EnrollmentRequest
}

// ======================================================
// READ
// ======================================================

func (h *LeadHandler) List(c *gin.Context) {
	cl, ok := caller(c)
	if !ok {
		return
	}

	out, err := h.list.Execute(c.Request.Context(), cl, ucLead.ListLeadsInput{
		TenantID:      c.Query("tenant_id"),
		UnitID:        c.Query("unit_id"),
		Status:        c.Query("status"),
		OriginChannel: c.Query("origin_channel"),
		Query:         c.Query("q"),
		Page:          queryInt(c, "page"),
		Limit:         queryInt(c, "limit"),
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, out)
}

func (h *LeadHandler) Pipeline(c *gin.Context) {
	cl, ok := caller(c)
	if !ok {
		return
	}

	board, err := h.pipeline.Execute(c.Request.Context(), cl, c.Query("tenant_id"), c.Query("unit_id"))
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, board)
}

func (h *LeadHandler) Get(c *gin.Context) {
	cl, ok := caller(c)
	if !ok {
		return
	}
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	l, err := h.get.Execute(c.Request.Context(), cl, id)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, l)
}

func (h *LeadHandler) Interactions(c *gin.Context) {
	cl, ok := caller(c)
	if !ok {
		return
	}
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	items, err := h.interactions.Execute(c.Request.Context(), cl, id)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.List(c, items)
}

// ======================================================
// WRITE
// ======================================================

func (h *LeadHandler) Create(c *gin.Context) {
	cl, ok := caller(c)
	if !ok {
		return
	}

	var req CreateLeadRequest
	if !bindJSON(c, &req) {
		return
	}

	tenantID, err := cl.ResolveTenant(req.TenantID)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	var unitID *uuid.UUID
	if req.UnitID != "" {
		id, err := uuid.Parse(req.UnitID)
		if err != nil {
			httperr.Respond(c, ucLead.ErrInvalidUnit)
			return
		}
		unitID = &id
	}

	res, err := h.form.Execute(c.Request.Context(), ucIngestion.FormInput{
		TenantID:       tenantID,
		UnitID:         unitID,
		UserID:         cl.UserRef(),
		Name:           req.Name,
		WhatsAppNumber: req.WhatsAppNumber,
		Discipline:     req.Discipline,
		AgeGroup:       req.AgeGroup,
		WhoSearched:    req.WhoSearched,
		InterestLevel:  req.InterestLevel,
		Observations:   req.Observations,
		Message:        req.Message,
		OriginChannel:  req.OriginChannel,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	writeFormResult(c, res)
}

func (h *LeadHandler) Update(c *gin.Context) {
	cl, ok := caller(c)
	if !ok {
		return
	}
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	var req UpdateLeadRequest
	if !bindJSON(c, &req) {
		return
	}

	in := ucLead.UpdateLeadInput{
		ID:            id,
		Version:       req.Version,
		Status:        req.Status,
		Attended:      req.Attended,
		Converted:     req.Converted,
		InterestLevel: req.InterestLevel,
		Observations:  req.Observations,
		ScheduledDate: req.ScheduledDate,
		Name:          req.Name,
		Discipline:    req.Discipline,
		AgeGroup:      req.AgeGroup,
		WhoSearched:   req.WhoSearched,
		OriginChannel: req.OriginChannel,
	}
	if req.Enrollment != nil {
		enrollment := req.Enrollment.input()
		in.Enrollment = &enrollment
	}

	l, err := h.update.Execute(c.Request.Context(), cl, in)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, l)
}

func (h *LeadHandler) Enroll(c *gin.Context) {
	cl, ok := caller(c)
	if !ok {
		return
	}
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	var req EnrollLeadRequest
	if !bindJSON(c, &req) {
		return
	}

	out, err := h.enroll.Execute(c.Request.Context(), cl, id, req.Version, req.input())
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.Created(c, out)
}

// writeFormResult responde 201 para lead novo e 200 quando o contato já
// existia.
func writeFormResult(c *gin.Context, res *ucIngestion.FormResult) {
	status := http.StatusOK
	if res.Created {
		status = http.StatusCreated
	}
	c.JSON(status, res)
}
