package memory

import (
	"context"
	"sort"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/edu-crm/internal/domain/note"
	"github.com/BruksfildServices01/edu-crm/internal/models"
)

type NoteRepository struct {
	s *Store
}

func NewNoteRepository(s *Store) *NoteRepository {
	return &NoteRepository{s: s}
}

var _ note.Repository = (*NoteRepository)(nil)

func (r *NoteRepository) List(ctx context.Context, tenantID uuid.UUID, leadID *uuid.UUID) ([]models.Note, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := []models.Note{}
	for _, n := range r.s.notes {
		if n.TenantID != tenantID {
			continue
		}
		if leadID != nil && (n.LeadID == nil || *n.LeadID != *leadID) {
			continue
		}
		out = append(out, n)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (r *NoteRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.Note, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	n, ok := r.s.notes[id]
	if !ok {
		return nil, note.ErrNotFound
	}
	return &n, nil
}

func (r *NoteRepository) Create(ctx context.Context, n *models.Note) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if n.ID == uuid.Nil {
		n.ID = uuid.New()
	}
	r.s.stamp(&n.CreatedAt, &n.UpdatedAt)
	r.s.notes[n.ID] = *n
	return nil
}

func (r *NoteRepository) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	n, ok := r.s.notes[id]
	if !ok || n.TenantID != tenantID {
		return note.ErrNotFound
	}
	delete(r.s.notes, id)
	return nil
}
