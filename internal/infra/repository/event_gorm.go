package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/edu-crm/internal/audit"
	"github.com/BruksfildServices01/edu-crm/internal/models"
)

type EventGormRepository struct {
	db *gorm.DB
}

func NewEventGormRepository(db *gorm.DB) *EventGormRepository {
	return &EventGormRepository{db: db}
}

func (r *EventGormRepository) SaveEvent(ctx context.Context, ev *models.Event) error {
	if ev.ID == uuid.Nil {
		ev.ID = uuid.New()
	}
	return r.db.WithContext(ctx).Create(ev).Error
}

func (r *EventGormRepository) ListEvents(ctx context.Context, f audit.Filter) ([]models.Event, int64, error) {

	// --------------------------------------------------
	// Query base (sempre protegido por tenant)
	// --------------------------------------------------
	q := r.db.WithContext(ctx).
		Model(&models.Event{}).
		Where("tenant_id = ?", f.TenantID)

	// --------------------------------------------------
	// Filtros opcionais
	// --------------------------------------------------
	if f.Action != "" {
		q = q.Where("action = ?", f.Action)
	}
	if f.Entity != "" {
		q = q.Where("entity = ?", f.Entity)
	}
	if f.EntityID != nil {
		q = q.Where("entity_id = ?", *f.EntityID)
	}
	if f.From != nil {
		q = q.Where("created_at >= ?", *f.From)
	}
	if f.To != nil {
		q = q.Where("created_at < ?", *f.To)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := 0
	if f.Page > 1 {
		offset = (f.Page - 1) * f.Limit
	}

	events := []models.Event{}
	if err := q.
		Order("created_at DESC").
		Limit(f.Limit).
		Offset(offset).
		Find(&events).Error; err != nil {
		return nil, 0, err
	}
	return events, total, nil
}

// Compile-time check
var _ audit.Store = (*EventGormRepository)(nil)
