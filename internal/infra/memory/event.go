package memory

import (
	"context"
	"sort"

	"github.com/BruksfildServices01/edu-crm/internal/audit"
	"github.com/BruksfildServices01/edu-crm/internal/models"
)

type EventRepository struct {
	s *Store
}

func NewEventRepository(s *Store) *EventRepository {
	return &EventRepository{s: s}
}

var _ audit.Store = (*EventRepository)(nil)

func (r *EventRepository) SaveEvent(ctx context.Context, ev *models.Event) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if ev.CreatedAt.IsZero() {
		ev.CreatedAt = r.s.now()
	}
	r.s.events = append(r.s.events, *ev)
	return nil
}

func (r *EventRepository) ListEvents(ctx context.Context, f audit.Filter) ([]models.Event, int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := []models.Event{}
	for _, ev := range r.s.events {
		if ev.TenantID != f.TenantID {
			continue
		}
		if f.Action != "" && ev.Action != f.Action {
			continue
		}
		if f.Entity != "" && ev.Entity != f.Entity {
			continue
		}
		if f.EntityID != nil && (ev.EntityID == nil || *ev.EntityID != *f.EntityID) {
			continue
		}
		if f.From != nil && ev.CreatedAt.Before(*f.From) {
			continue
		}
		if f.To != nil && !ev.CreatedAt.Before(*f.To) {
			continue
		}
		out = append(out, ev)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})

	total := int64(len(out))
	start := 0
	if f.Page > 1 {
		start = (f.Page - 1) * f.Limit
	}
	if start >= len(out) {
		return []models.Event{}, total, nil
	}
	end := len(out)
	if f.Limit > 0 && start+f.Limit < end {
		end = start + f.Limit
	}
	return out[start:end], total, nil
}
