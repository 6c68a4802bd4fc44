// Package memory guarda todas as tabelas em mapas protegidos por um
// único mutex. Cada repositório é uma visão sobre o mesmo Store, e
// operações compostas seguram o lock do início ao fim.
package memory

import (
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/edu-crm/internal/models"
)

type Store struct {
	mu sync.RWMutex

	units        map[uuid.UUID]models.Unit
	users        map[uuid.UUID]models.User
	leads        map[uuid.UUID]models.Lead
	interactions []models.Interaction
	appointments map[uuid.UUID]models.Appointment
	enrollments  map[uuid.UUID]models.Enrollment
	notes        map[uuid.UUID]models.Note
	events       []models.Event

	now func() time.Time
}

func NewStore() *Store {
	return &Store{
		units:        map[uuid.UUID]models.Unit{},
		users:        map[uuid.UUID]models.User{},
		leads:        map[uuid.UUID]models.Lead{},
		appointments: map[uuid.UUID]models.Appointment{},
		enrollments:  map[uuid.UUID]models.Enrollment{},
		notes:        map[uuid.UUID]models.Note{},
		now:          time.Now,
	}
}

// SetClock troca o relógio usado nos timestamps.
func (s *Store) SetClock(now func() time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = now
}

// ===============================
// Seeding
// ===============================

func (s *Store) AddUnit(u models.Unit) models.Unit {
	s.mu.Lock()
	defer s.mu.Unlock()

	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	if u.TenantID == uuid.Nil {
		u.TenantID = u.ID
	}
	s.stamp(&u.CreatedAt, &u.UpdatedAt)
	s.units[u.ID] = u
	return u
}

func (s *Store) AddUser(u models.User) models.User {
	s.mu.Lock()
	defer s.mu.Unlock()

	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	s.stamp(&u.CreatedAt, &u.UpdatedAt)
	u.Unit = models.Unit{}
	s.users[u.ID] = u
	return u
}

// AddLead grava como está; CreatedAt explícito é respeitado.
func (s *Store) AddLead(l models.Lead) models.Lead {
	s.mu.Lock()
	defer s.mu.Unlock()

	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	if l.Version == 0 {
		l.Version = 1
	}
	if l.Status == "" {
		l.Status = "novo_lead"
	}
	if l.InterestLevel == "" {
		l.InterestLevel = "frio"
	}
	s.stamp(&l.CreatedAt, &l.UpdatedAt)
	s.leads[l.ID] = l
	return l
}

func (s *Store) AddAppointment(ap models.Appointment) models.Appointment {
	s.mu.Lock()
	defer s.mu.Unlock()

	if ap.ID == uuid.Nil {
		ap.ID = uuid.New()
	}
	if ap.Status == "" {
		ap.Status = "agendado"
	}
	s.stamp(&ap.CreatedAt, &ap.UpdatedAt)
	ap.Lead = nil
	s.appointments[ap.ID] = ap
	return ap
}

func (s *Store) AddEnrollment(e models.Enrollment) models.Enrollment {
	s.mu.Lock()
	defer s.mu.Unlock()

	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	s.stamp(&e.CreatedAt, &e.UpdatedAt)
	s.enrollments[e.ID] = e
	return e
}

// DeleteUnit simula a remoção de um tenant (gera órfãos).
func (s *Store) DeleteUnit(id uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.units, id)
}

// ===============================
// Inspection
// ===============================

func (s *Store) Lead(id uuid.UUID) (models.Lead, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	l, ok := s.leads[id]
	return l, ok
}

func (s *Store) LeadCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.leads)
}

func (s *Store) Interactions() []models.Interaction {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.Interaction(nil), s.interactions...)
}

func (s *Store) Enrollments() []models.Enrollment {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Enrollment, 0, len(s.enrollments))
	for _, e := range s.enrollments {
		out = append(out, e)
	}
	return out
}

func (s *Store) Events() []models.Event {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.Event(nil), s.events...)
}

// ===============================
// helpers (chamar com lock)
// ===============================

func (s *Store) stamp(created, updated *time.Time) {
	now := s.now()
	if created.IsZero() {
		*created = now
	}
	if updated.IsZero() {
		*updated = *created
	}
}

func (s *Store) tenantExists(id uuid.UUID) bool {
	_, ok := s.units[id]
	return ok
}

func sortLeadsByCreatedDesc(leads []models.Lead) {
	sort.SliceStable(leads, func(i, j int) bool {
		return leads[i].CreatedAt.After(leads[j].CreatedAt)
	})
}
