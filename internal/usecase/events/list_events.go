package events

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/edu-crm/internal/audit"
	"github.com/BruksfildServices01/edu-crm/internal/httperr"
	"github.com/BruksfildServices01/edu-crm/internal/models"
	"github.com/BruksfildServices01/edu-crm/internal/tenancy"
	"github.com/BruksfildServices01/edu-crm/internal/timezone"
)

const (
	defaultLimit = 50
	maxLimit     = 200
)

var ErrInvalidEntityID = httperr.InvalidArgument("invalid_entity_id", "entity_id inválido.")

type ListEventsInput struct {
	TenantID string
	Action   string
	Entity   string
	EntityID string
	From     string
	To       string
	Page     int
	Limit    int
}

type ListEventsOutput struct {
	Page   int            `json:"page"`
	Limit  int            `json:"limit"`
	Total  int64          `json:"total"`
	Events []models.Event `json:"events"`
}

type ListEvents struct {
	store audit.Store
	loc   *time.Location
}

func NewListEvents(store audit.Store, loc *time.Location) *ListEvents {
	return &ListEvents{store: store, loc: loc}
}

func (uc *ListEvents) Execute(ctx context.Context, caller tenancy.Caller, in ListEventsInput) (*ListEventsOutput, error) {
	if err := caller.RequireAdmin(); err != nil {
		return nil, err
	}

	tenantID, err := caller.ResolveTenant(in.TenantID)
	if err != nil {
		return nil, err
	}

	f := audit.Filter{
		TenantID: tenantID,
		Action:   strings.TrimSpace(in.Action),
		Entity:   strings.TrimSpace(in.Entity),
		Page:     in.Page,
		Limit:    in.Limit,
	}

	if raw := strings.TrimSpace(in.EntityID); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return nil, ErrInvalidEntityID
		}
		f.EntityID = &id
	}

	if f.From, f.To, err = timezone.DayRange(strings.TrimSpace(in.From), strings.TrimSpace(in.To), uc.loc); err != nil {
		return nil, err
	}

	if f.Page <= 0 {
		f.Page = 1
	}
	if f.Limit <= 0 || f.Limit > maxLimit {
		f.Limit = defaultLimit
	}

	rows, total, err := uc.store.ListEvents(ctx, f)
	if err != nil {
		return nil, err
	}

	return &ListEventsOutput{Page: f.Page, Limit: f.Limit, Total: total, Events: rows}, nil
}
