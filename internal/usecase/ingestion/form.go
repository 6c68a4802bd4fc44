package ingestion

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/edu-crm/internal/audit"
	domain "github.com/BruksfildServices01/edu-crm/internal/domain/lead"
	"github.com/BruksfildServices01/edu-crm/internal/domain/unit"
	"github.com/BruksfildServices01/edu-crm/internal/httperr"
	"github.com/BruksfildServices01/edu-crm/internal/logger"
	"github.com/BruksfildServices01/edu-crm/internal/models"
	"github.com/BruksfildServices01/edu-crm/internal/observability"
	"github.com/BruksfildServices01/edu-crm/internal/validators"
)

var (
	ErrNameRequired  = httperr.InvalidArgument("name_required", "Nome é obrigatório.")
	ErrInvalidNumber = httperr.InvalidArgument("invalid_whatsapp_number", "Número de WhatsApp inválido.")
)

// ======================================================
// INPUT / OUTPUT
// ======================================================

type FormInput struct {
	TenantID uuid.UUID
	UnitID   *uuid.UUID
	UserID   *uuid.UUID

	Name           string
	WhatsAppNumber string
	Discipline     string
	AgeGroup       string
	WhoSearched    string
	InterestLevel  string
	Observations   string
	Message        string

	// OriginChannel vazio vira "Formulario"
	OriginChannel string
}

type FormResult struct {
	Lead    *models.Lead `json:"lead"`
	Created bool         `json:"created"`
}

// ======================================================
// USE CASE
// ======================================================

type IngestForm struct {
	leads  domain.Repository
	units  unit.Repository
	locker ContactLocker
	audit  *audit.Dispatcher
	log    *zap.Logger
}

func NewIngestForm(
	leads domain.Repository,
	units unit.Repository,
	locker ContactLocker,
	audit *audit.Dispatcher,
	log *zap.Logger,
) *IngestForm {
	return &IngestForm{
		leads:  leads,
		units:  units,
		locker: locker,
		audit:  audit,
		log:    logger.OrNop(log),
	}
}

func (uc *IngestForm) Execute(
	ctx context.Context,
	in FormInput,
) (*FormResult, error) {

	// --------------------------------------------------
	// 1️⃣ Validação
	// --------------------------------------------------
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, ErrNameRequired
	}

	number := validators.NormalizePhone(in.WhatsAppNumber)
	if !validators.IsPhoneValid(number) {
		return nil, ErrInvalidNumber
	}

	interest := domain.InterestCold
	if strings.TrimSpace(in.InterestLevel) != "" {
		lvl, err := domain.ParseInterest(in.InterestLevel)
		if err != nil {
			return nil, err
		}
		interest = lvl
	}

	origin := strings.TrimSpace(in.OriginChannel)
	if origin == "" {
		origin = domain.OriginWebForm
	}

	l := &models.Lead{
		TenantID:       in.TenantID,
		Name:           name,
		WhatsAppNumber: number,
		Discipline:     strings.TrimSpace(in.Discipline),
		AgeGroup:       strings.TrimSpace(in.AgeGroup),
		WhoSearched:    strings.TrimSpace(in.WhoSearched),
		OriginChannel:  origin,
		Status:         string(domain.StatusNew),
		InterestLevel:  string(interest),
		Observations:   strings.TrimSpace(in.Observations),
	}
	if err := domain.CheckLengths(l); err != nil {
		return nil, err
	}

	u, err := resolveUnit(ctx, uc.units, in.TenantID, in.UnitID)
	if err != nil {
		return nil, err
	}

	message := strings.TrimSpace(in.Message)
	if message == "" {
		message = "formulário: " + name
	}

	interaction := &models.Interaction{
		TenantID:   in.TenantID,
		Channel:    origin,
		Contact:    number,
		Message:    message,
		ReceivedAt: time.Now(),
	}

	// --------------------------------------------------
	// 2️⃣ Dedup por número
	// --------------------------------------------------
	release, err := lockContact(ctx, uc.locker, in.TenantID, number)
	if err != nil {
		return nil, err
	}
	defer release()

	existing, err := uc.leads.FindByWhatsApp(ctx, in.TenantID, number)
	if err == nil {
		id := existing.ID
		interaction.LeadID = &id
		if err := uc.leads.AppendInteraction(ctx, interaction); err != nil {
			return nil, err
		}

		observability.LeadsIngested.WithLabelValues(origin, observability.OutcomeDuplicate).Inc()
		return &FormResult{Lead: existing}, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	// --------------------------------------------------
	// 3️⃣ Criação
	// --------------------------------------------------
	unitID := u.ID
	l.UnitID = &unitID

	if err := uc.leads.Create(ctx, l, interaction); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		TenantID: in.TenantID,
		UserID:   in.UserID,
		Action:   "lead_created",
		Entity:   "lead",
		EntityID: &l.ID,
		Metadata: map[string]any{"origin": origin},
	})
	observability.LeadsIngested.WithLabelValues(origin, observability.OutcomeCreated).Inc()

	uc.log.Info("lead created",
		zap.String("tenant_id", in.TenantID.String()),
		zap.String("lead_id", l.ID.String()),
		zap.String("origin", origin),
	)

	return &FormResult{Lead: l, Created: true}, nil
}

// ExecuteForUnit atende o formulário público: o tenant vem da unidade
// da URL, nunca do corpo.
func (uc *IngestForm) ExecuteForUnit(
	ctx context.Context,
	unitID uuid.UUID,
	in FormInput,
) (*FormResult, error) {

	u, err := uc.units.FindByID(ctx, unitID)
	if err != nil {
		return nil, err
	}

	in.TenantID = u.TenantID
	in.UnitID = &u.ID
	in.UserID = nil

	return uc.Execute(ctx, in)
}
