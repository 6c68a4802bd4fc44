package memory

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	domain "github.com/BruksfildServices01/edu-crm/internal/domain/appointment"
	"github.com/BruksfildServices01/edu-crm/internal/models"
)

type AppointmentRepository struct {
	s *Store
}

func NewAppointmentRepository(s *Store) *AppointmentRepository {
	return &AppointmentRepository{s: s}
}

var _ domain.Repository = (*AppointmentRepository)(nil)

func (r *AppointmentRepository) List(ctx context.Context, f domain.ListFilter) ([]models.Appointment, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := []models.Appointment{}
	for _, ap := range r.s.appointments {
		if ap.TenantID != f.TenantID {
			continue
		}
		if f.LeadID != nil && ap.LeadID != *f.LeadID {
			continue
		}
		if f.UserID != nil && (ap.UserID == nil || *ap.UserID != *f.UserID) {
			continue
		}
		if f.Status != "" && ap.Status != f.Status {
			continue
		}
		if f.From != nil && ap.ScheduledAt.Before(*f.From) {
			continue
		}
		if f.To != nil && !ap.ScheduledAt.Before(*f.To) {
			continue
		}
		out = append(out, r.s.withLead(ap))
	}

	sortByScheduledAt(out)
	return out, nil
}

func (r *AppointmentRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.Appointment, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	ap, ok := r.s.appointments[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &ap, nil
}

func (r *AppointmentRepository) Schedule(ctx context.Context, ap *models.Appointment, lead *models.Lead, expectedLeadVersion int) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if err := r.s.casLead(lead, expectedLeadVersion); err != nil {
		return err
	}

	if ap.ID == uuid.Nil {
		ap.ID = uuid.New()
	}
	ap.TenantID = lead.TenantID
	ap.LeadID = lead.ID
	ap.CreatedAt, ap.UpdatedAt = r.s.now(), r.s.now()

	stored := *ap
	stored.Lead = nil
	r.s.appointments[ap.ID] = stored
	return nil
}

func (r *AppointmentRepository) UpdateStatus(ctx context.Context, ap *models.Appointment) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	current, ok := r.s.appointments[ap.ID]
	if !ok || current.TenantID != ap.TenantID {
		return domain.ErrNotFound
	}

	current.Status = ap.Status
	current.UpdatedAt = r.s.now()
	r.s.appointments[ap.ID] = current
	ap.UpdatedAt = current.UpdatedAt
	return nil
}

func (r *AppointmentRepository) ListUpcoming(ctx context.Context, tenantID uuid.UUID, from, to time.Time) ([]models.Appointment, error) {
	return r.List(ctx, domain.ListFilter{
		TenantID: tenantID,
		Status:   string(domain.StatusScheduled),
		From:     &from,
		To:       &to,
	})
}

// withLead anexa uma cópia do lead (chamar com lock).
func (s *Store) withLead(ap models.Appointment) models.Appointment {
	if l, ok := s.leads[ap.LeadID]; ok && l.TenantID == ap.TenantID {
		ap.Lead = &l
	}
	return ap
}

func sortByScheduledAt(aps []models.Appointment) {
	sort.SliceStable(aps, func(i, j int) bool {
		return aps[i].ScheduledAt.Before(aps[j].ScheduledAt)
	})
}
