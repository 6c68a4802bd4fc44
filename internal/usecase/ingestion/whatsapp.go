package ingestion

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/datatypes"

	"github.com/BruksfildServices01/edu-crm/internal/audit"
	domain "github.com/BruksfildServices01/edu-crm/internal/domain/lead"
	"github.com/BruksfildServices01/edu-crm/internal/domain/unit"
	"github.com/BruksfildServices01/edu-crm/internal/extraction"
	"github.com/BruksfildServices01/edu-crm/internal/logger"
	"github.com/BruksfildServices01/edu-crm/internal/models"
	"github.com/BruksfildServices01/edu-crm/internal/observability"
	"github.com/BruksfildServices01/edu-crm/internal/validators"
)

// ======================================================
// INPUT / OUTPUT
// ======================================================

type WhatsAppInput struct {
	// TenantID vazio usa o tenant padrão do webhook
	TenantID   string
	From       string
	Message    string
	ReceivedAt time.Time
}

type WhatsAppResult struct {
	Success bool       `json:"success"`
	LeadID  *uuid.UUID `json:"lead_id,omitempty"`
	Created bool       `json:"created"`
	Message string     `json:"message"`
}

const (
	MsgLeadCreated     = "lead_created"
	MsgLeadExists      = "lead_already_exists"
	MsgCouldNotProcess = "could_not_process"
	MsgInvalidContact  = "invalid_contact"
	MsgEmptyMessage    = "empty_message"
	MsgInvalidTenant   = "invalid_tenant"
	MsgUnknownTenant   = "unknown_tenant"

	extractorName = "heuristic_v1"
)

// ======================================================
// USE CASE
// ======================================================

type IngestWhatsApp struct {
	leads         domain.Repository
	units         unit.Repository
	extractor     extraction.Extractor
	locker        ContactLocker
	audit         *audit.Dispatcher
	log           *zap.Logger
	defaultTenant uuid.UUID
}

func NewIngestWhatsApp(
	leads domain.Repository,
	units unit.Repository,
	extractor extraction.Extractor,
	locker ContactLocker,
	audit *audit.Dispatcher,
	log *zap.Logger,
	defaultTenant uuid.UUID,
) *IngestWhatsApp {
	return &IngestWhatsApp{
		leads:         leads,
		units:         units,
		extractor:     extractor,
		locker:        locker,
		audit:         audit,
		log:           logger.OrNop(log),
		defaultTenant: defaultTenant,
	}
}

// ======================================================
// EXECUTE
// ======================================================

// Execute nunca falha por entrada malformada: esses casos voltam como
// Success=false. O erro fica para falhas de infraestrutura.
func (uc *IngestWhatsApp) Execute(
	ctx context.Context,
	in WhatsAppInput,
) (WhatsAppResult, error) {

	// --------------------------------------------------
	// 1️⃣ Tenant
	// --------------------------------------------------
	tenantID := uc.defaultTenant
	if raw := strings.TrimSpace(in.TenantID); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return uc.reject(MsgInvalidTenant), nil
		}
		tenantID = id
	}
	if tenantID == uuid.Nil {
		return uc.reject(MsgInvalidTenant), nil
	}

	root, err := resolveUnit(ctx, uc.units, tenantID, nil)
	if err != nil {
		if errors.Is(err, unit.ErrNotFound) {
			return uc.reject(MsgUnknownTenant), nil
		}
		return WhatsAppResult{}, err
	}

	// --------------------------------------------------
	// 2️⃣ Contato / mensagem
	// --------------------------------------------------
	number := validators.NormalizePhone(in.From)
	if !validators.IsPhoneValid(number) {
		return uc.reject(MsgInvalidContact), nil
	}

	text := strings.TrimSpace(in.Message)
	if text == "" {
		return uc.reject(MsgEmptyMessage), nil
	}

	receivedAt := in.ReceivedAt
	if receivedAt.IsZero() {
		receivedAt = time.Now()
	}

	interaction := &models.Interaction{
		TenantID:   tenantID,
		Channel:    domain.OriginWhatsApp,
		Contact:    number,
		Message:    text,
		ReceivedAt: receivedAt,
	}

	// --------------------------------------------------
	// 3️⃣ Lock por contato (dedup sem corrida)
	// --------------------------------------------------
	release, err := lockContact(ctx, uc.locker, tenantID, number)
	if err != nil {
		return WhatsAppResult{}, err
	}
	defer release()

	// --------------------------------------------------
	// 4️⃣ Lead existente → só interação
	// --------------------------------------------------
	existing, err := uc.leads.FindByWhatsApp(ctx, tenantID, number)
	switch {
	case err == nil:
		id := existing.ID
		interaction.LeadID = &id
		if err := uc.leads.AppendInteraction(ctx, interaction); err != nil {
			return WhatsAppResult{}, err
		}

		observability.LeadsIngested.WithLabelValues(domain.OriginWhatsApp, observability.OutcomeDuplicate).Inc()
		return WhatsAppResult{Success: true, LeadID: &id, Message: MsgLeadExists}, nil

	case !errors.Is(err, domain.ErrNotFound):
		return WhatsAppResult{}, err
	}

	// --------------------------------------------------
	// 5️⃣ Extração
	// --------------------------------------------------
	res, ok := uc.extract(text)
	if !ok {
		interaction.Metadata = jsonOf(map[string]any{"reason": MsgCouldNotProcess})
		if err := uc.leads.AppendInteraction(ctx, interaction); err != nil {
			return WhatsAppResult{}, err
		}

		observability.LeadsIngested.WithLabelValues(domain.OriginWhatsApp, observability.OutcomeRejected).Inc()
		return WhatsAppResult{Success: false, Message: MsgCouldNotProcess}, nil
	}

	// --------------------------------------------------
	// 6️⃣ Novo lead + primeira interação (mesma transação)
	// --------------------------------------------------
	name := res.Name
	if name == "" {
		name = placeholderName("Contato WhatsApp", number)
	}

	status := domain.StatusNew
	if res.SchedulingIntent {
		status = domain.StatusScheduled
	}

	unitID := root.ID
	l := &models.Lead{
		TenantID:       tenantID,
		UnitID:         &unitID,
		Name:           name,
		WhatsAppNumber: number,
		Discipline:     res.Discipline,
		AgeGroup:       res.AgeGroup,
		WhoSearched:    res.WhoSearched,
		OriginChannel:  domain.OriginWhatsApp,
		Status:         string(status),
		InterestLevel:  res.InterestLevel,
		AIInteractionLog: jsonOf(map[string]any{
			"extractor":   extractorName,
			"raw_message": text,
			"extracted":   res,
			"confidence":  res.Confidence,
			"received_at": receivedAt,
		}),
	}

	domain.TruncateFields(l)

	if err := uc.leads.Create(ctx, l, interaction); err != nil {
		return WhatsAppResult{}, err
	}

	// --------------------------------------------------
	// 7️⃣ Auditoria / métricas
	// --------------------------------------------------
	uc.audit.Dispatch(audit.Event{
		TenantID: tenantID,
		Action:   "lead_created",
		Entity:   "lead",
		EntityID: &l.ID,
		Metadata: map[string]any{
			"origin":     domain.OriginWhatsApp,
			"status":     l.Status,
			"confidence": res.Confidence,
		},
	})
	observability.LeadsIngested.WithLabelValues(domain.OriginWhatsApp, observability.OutcomeCreated).Inc()

	uc.log.Info("lead created from whatsapp",
		zap.String("tenant_id", tenantID.String()),
		zap.String("lead_id", l.ID.String()),
		zap.String("status", l.Status),
		zap.Float64("confidence", res.Confidence),
	)

	id := l.ID
	return WhatsAppResult{Success: true, LeadID: &id, Created: true, Message: MsgLeadCreated}, nil
}

// extract isola o extrator: um panic vira "could not process".
func (uc *IngestWhatsApp) extract(text string) (res extraction.Result, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			uc.log.Error("extractor panic", zap.String("panic", fmt.Sprint(r)))
			res, ok = extraction.Result{}, false
		}
	}()
	return uc.extractor.Extract(text)
}

func (uc *IngestWhatsApp) reject(msg string) WhatsAppResult {
	observability.LeadsIngested.WithLabelValues(domain.OriginWhatsApp, observability.OutcomeRejected).Inc()
	return WhatsAppResult{Success: false, Message: msg}
}

func jsonOf(v any) datatypes.JSON {
	b, err := json.Marshal(v)
	if err != nil {
		return nil
	}
	return datatypes.JSON(b)
}
