package audit

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/BruksfildServices01/edu-crm/internal/models"
)

type Event struct {
	TenantID uuid.UUID
	UserID   *uuid.UUID
	Action   string
	Entity   string
	EntityID *uuid.UUID
	Metadata any
}

type Filter struct {
	TenantID uuid.UUID
	Action   string
	Entity   string
	EntityID *uuid.UUID
	From     *time.Time
	To       *time.Time

	Page  int
	Limit int
}

// Store persiste a trilha de auditoria (tabela eventos).
type Store interface {
	SaveEvent(ctx context.Context, ev *models.Event) error
	ListEvents(ctx context.Context, f Filter) ([]models.Event, int64, error)
}

type Logger struct {
	store Store
}

func New(store Store) *Logger {
	return &Logger{store: store}
}

func (l *Logger) Log(ctx context.Context, ev Event) error {
	row := models.Event{
		ID:       uuid.New(),
		TenantID: ev.TenantID,
		UserID:   ev.UserID,
		Action:   ev.Action,
		Entity:   ev.Entity,
		EntityID: ev.EntityID,
	}

	if ev.Metadata != nil {
		if b, err := json.Marshal(ev.Metadata); err == nil {
			row.Metadata = datatypes.JSON(b)
		}
	}

	return l.store.SaveEvent(ctx, &row)
}
