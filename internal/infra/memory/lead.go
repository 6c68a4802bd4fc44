package memory

import (
	"context"
	"sort"
	"strings"

	"github.com/google/uuid"

	domain "github.com/BruksfildServices01/edu-crm/internal/domain/lead"
	"github.com/BruksfildServices01/edu-crm/internal/models"
)

type LeadRepository struct {
	s *Store
}

func NewLeadRepository(s *Store) *LeadRepository {
	return &LeadRepository{s: s}
}

var _ domain.Repository = (*LeadRepository)(nil)

// --------------------------------------------------
// Read
// --------------------------------------------------

func (r *LeadRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.Lead, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	l, ok := r.s.leads[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &l, nil
}

func (r *LeadRepository) FindByWhatsApp(ctx context.Context, tenantID uuid.UUID, number string) (*models.Lead, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var found *models.Lead
	for _, l := range r.s.leads {
		if l.TenantID != tenantID || l.WhatsAppNumber != number {
			continue
		}
		if found == nil || l.CreatedAt.Before(found.CreatedAt) {
			found = &l
		}
	}
	if found == nil {
		return nil, domain.ErrNotFound
	}
	return found, nil
}

func (r *LeadRepository) List(ctx context.Context, f domain.ListFilter) ([]models.Lead, int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	q := strings.ToLower(strings.TrimSpace(f.Query))

	var out []models.Lead
	for _, l := range r.s.leads {
		if !inScope(l, f.TenantID, f.UnitID) {
			continue
		}
		if f.Status != "" && l.Status != f.Status {
			continue
		}
		if f.OriginChannel != "" && !strings.EqualFold(l.OriginChannel, f.OriginChannel) {
			continue
		}
		if q != "" && !strings.Contains(strings.ToLower(l.Name), q) && !strings.Contains(l.WhatsAppNumber, q) {
			continue
		}
		out = append(out, l)
	}

	sortLeadsByCreatedDesc(out)
	total := int64(len(out))

	start := f.Offset()
	if start >= len(out) {
		return []models.Lead{}, total, nil
	}
	end := len(out)
	if f.Limit > 0 && start+f.Limit < end {
		end = start + f.Limit
	}
	return out[start:end], total, nil
}

func (r *LeadRepository) ListForBoard(ctx context.Context, tenantID uuid.UUID, unitID *uuid.UUID) ([]models.Lead, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var out []models.Lead
	for _, l := range r.s.leads {
		if inScope(l, tenantID, unitID) {
			out = append(out, l)
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].UpdatedAt.After(out[j].UpdatedAt)
	})
	return out, nil
}

func (r *LeadRepository) CountAppointments(ctx context.Context, tenantID, leadID uuid.UUID) (int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var n int64
	for _, ap := range r.s.appointments {
		if ap.TenantID == tenantID && ap.LeadID == leadID {
			n++
		}
	}
	return n, nil
}

// --------------------------------------------------
// Write
// --------------------------------------------------

func (r *LeadRepository) Create(ctx context.Context, lead *models.Lead, first *models.Interaction) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if lead.ID == uuid.Nil {
		lead.ID = uuid.New()
	}
	lead.Version = 1
	r.s.stamp(&lead.CreatedAt, &lead.UpdatedAt)
	r.s.leads[lead.ID] = *lead

	if first != nil {
		id := lead.ID
		first.LeadID = &id
		first.TenantID = lead.TenantID
		r.s.appendInteraction(first)
	}
	return nil
}

func (r *LeadRepository) Update(ctx context.Context, lead *models.Lead, expectedVersion int) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	return r.s.casLead(lead, expectedVersion)
}

func (r *LeadRepository) Enroll(ctx context.Context, lead *models.Lead, expectedVersion int, en *models.Enrollment) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if err := r.s.casLead(lead, expectedVersion); err != nil {
		return err
	}

	if en.ID == uuid.Nil {
		en.ID = uuid.New()
	}
	en.TenantID = lead.TenantID
	en.LeadID = lead.ID
	en.CreatedAt, en.UpdatedAt = r.s.now(), r.s.now()
	r.s.enrollments[en.ID] = *en
	return nil
}

// --------------------------------------------------
// Interactions
// --------------------------------------------------

func (r *LeadRepository) AppendInteraction(ctx context.Context, in *models.Interaction) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	r.s.appendInteraction(in)
	return nil
}

func (r *LeadRepository) ListInteractions(ctx context.Context, tenantID, leadID uuid.UUID) ([]models.Interaction, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := []models.Interaction{}
	for _, in := range r.s.interactions {
		if in.TenantID == tenantID && in.LeadID != nil && *in.LeadID == leadID {
			out = append(out, in)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].ReceivedAt.Before(out[j].ReceivedAt)
	})
	return out, nil
}

// --------------------------------------------------
// helpers (chamar com lock)
// --------------------------------------------------

func (s *Store) appendInteraction(in *models.Interaction) {
	if in.ID == uuid.Nil {
		in.ID = uuid.New()
	}
	if in.Direction == "" {
		in.Direction = "inbound"
	}
	in.CreatedAt = s.now()
	if in.ReceivedAt.IsZero() {
		in.ReceivedAt = in.CreatedAt
	}
	s.interactions = append(s.interactions, *in)
}

// casLead grava o lead se a versão persistida for a esperada.
func (s *Store) casLead(lead *models.Lead, expectedVersion int) error {
	current, ok := s.leads[lead.ID]
	if !ok || current.TenantID != lead.TenantID {
		return domain.ErrNotFound
	}
	if current.Version != expectedVersion {
		return domain.ErrVersionConflict
	}

	lead.Version = expectedVersion + 1
	lead.CreatedAt = current.CreatedAt
	lead.UpdatedAt = s.now()
	s.leads[lead.ID] = *lead
	return nil
}

func inScope(l models.Lead, tenantID uuid.UUID, unitID *uuid.UUID) bool {
	if l.TenantID != tenantID {
		return false
	}
	return unitID == nil || (l.UnitID != nil && *l.UnitID == *unitID)
}
