package memory

import (
	"context"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/edu-crm/internal/domain/maintenance"
)

type MaintenanceRepository struct {
	s *Store
}

func NewMaintenanceRepository(s *Store) *MaintenanceRepository {
	return &MaintenanceRepository{s: s}
}

var _ maintenance.Repository = (*MaintenanceRepository)(nil)

func (r *MaintenanceRepository) Integrity(ctx context.Context) (maintenance.IntegrityReport, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var rep maintenance.IntegrityReport
	enrolled := map[uuid.UUID]bool{}

	for _, e := range r.s.enrollments {
		enrolled[e.LeadID] = true
		if !r.s.tenantExists(e.TenantID) {
			rep.OrphanEnrollments++
		}
	}
	for _, l := range r.s.leads {
		if !r.s.tenantExists(l.TenantID) {
			rep.OrphanLeads++
		}
		if l.Converted && !enrolled[l.ID] {
			rep.ConvertedWithoutEnrollment++
		}
	}
	for _, ap := range r.s.appointments {
		if !r.s.tenantExists(ap.TenantID) {
			rep.OrphanAppointments++
		}
	}
	for _, n := range r.s.notes {
		if !r.s.tenantExists(n.TenantID) {
			rep.OrphanNotes++
		}
	}
	for _, in := range r.s.interactions {
		if !r.s.tenantExists(in.TenantID) {
			rep.OrphanInteractions++
		}
	}
	return rep, nil
}

func (r *MaintenanceRepository) PurgeOrphans(ctx context.Context) (maintenance.PurgeReport, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var rep maintenance.PurgeReport

	for id, n := range r.s.notes {
		if !r.s.tenantExists(n.TenantID) {
			delete(r.s.notes, id)
			rep.Notes++
		}
	}
	for id, ap := range r.s.appointments {
		if !r.s.tenantExists(ap.TenantID) {
			delete(r.s.appointments, id)
			rep.Appointments++
		}
	}
	for id, e := range r.s.enrollments {
		if !r.s.tenantExists(e.TenantID) {
			delete(r.s.enrollments, id)
			rep.Enrollments++
		}
	}

	kept := r.s.interactions[:0]
	for _, in := range r.s.interactions {
		if r.s.tenantExists(in.TenantID) {
			kept = append(kept, in)
			continue
		}
		rep.Interactions++
	}
	r.s.interactions = kept

	for id, l := range r.s.leads {
		if !r.s.tenantExists(l.TenantID) {
			delete(r.s.leads, id)
			rep.Leads++
		}
	}
	return rep, nil
}
