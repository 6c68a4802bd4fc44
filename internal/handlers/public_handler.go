package handlers

import (
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/edu-crm/internal/httperr"
	"github.com/BruksfildServices01/edu-crm/internal/httpresp"
	ucIngestion "github.com/BruksfildServices01/edu-crm/internal/usecase/ingestion"
)

// PublicHandler atende as entradas sem token: formulário do site e
// webhook do WhatsApp.
type PublicHandler struct {
	form     *ucIngestion.IngestForm
	whatsapp *ucIngestion.IngestWhatsApp
}

func NewPublicHandler(
	form *ucIngestion.IngestForm,
	whatsapp *ucIngestion.IngestWhatsApp,
) *PublicHandler {
	return &PublicHandler{form: form, whatsapp: whatsapp}
}

type PublicLeadRequest struct {
	Name           string `json:"name" binding:"required"`
	WhatsAppNumber string `json:"whatsapp_number" binding:"required"`
	Discipline     string `json:"discipline"`
	AgeGroup       string `json:"age_group"`
	WhoSearched    string `json:"who_searched"`
	InterestLevel  string `json:"interest_level"`
	Message        string `json:"message"`
}

type WhatsAppWebhookRequest struct {
	TenantID  string `json:"tenant_id"`
	From      string `json:"from"`
	Message   string `json:"message"`
	Timestamp any    `json:"timestamp"`
}

// --------------------------------------------------
// POST /api/public/units/:unit_id/leads
// --------------------------------------------------
func (h *PublicHandler) CreateLead(c *gin.Context) {
	unitID, ok := paramID(c, "unit_id")
	if !ok {
		return
	}

	var req PublicLeadRequest
	if !bindJSON(c, &req) {
		return
	}

	res, err := h.form.ExecuteForUnit(c.Request.Context(), unitID, ucIngestion.FormInput{
		Name:           req.Name,
		WhatsAppNumber: req.WhatsAppNumber,
		Discipline:     req.Discipline,
		AgeGroup:       req.AgeGroup,
		WhoSearched:    req.WhoSearched,
		InterestLevel:  req.InterestLevel,
		Message:        req.Message,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	writeFormResult(c, res)
}

// --------------------------------------------------
// POST /api/whatsapp/webhook
// --------------------------------------------------

// WhatsAppWebhook responde 200 para toda mensagem tratada, inclusive as
// recusadas (success=false), para o provedor não reenviar.
func (h *PublicHandler) WhatsAppWebhook(c *gin.Context) {
	var req WhatsAppWebhookRequest
	if !bindJSON(c, &req) {
		return
	}

	res, err := h.whatsapp.Execute(c.Request.Context(), ucIngestion.WhatsAppInput{
		TenantID:   req.TenantID,
		From:       req.From,
		Message:    req.Message,
		ReceivedAt: parseTimestamp(req.Timestamp),
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, res)
}

// parseTimestamp aceita RFC3339 ou epoch em segundos (número ou texto);
// inválido vira zero e o use case usa o horário de recebimento.
func parseTimestamp(v any) time.Time {
	switch ts := v.(type) {
	case float64:
		if ts > 0 {
			return time.Unix(int64(ts), 0)
		}
	case string:
		raw := strings.TrimSpace(ts)
		if t, err := time.Parse(time.RFC3339, raw); err == nil {
			return t
		}
		if secs, err := strconv.ParseInt(raw, 10, 64); err == nil && secs > 0 {
			return time.Unix(secs, 0)
		}
	}
	return time.Time{}
}
