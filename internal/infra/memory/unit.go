package memory

import (
	"context"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/edu-crm/internal/domain/account"
	"github.com/BruksfildServices01/edu-crm/internal/domain/unit"
	"github.com/BruksfildServices01/edu-crm/internal/models"
)

// --------------------------------------------------
// Units
// --------------------------------------------------

type UnitRepository struct {
	s *Store
}

func NewUnitRepository(s *Store) *UnitRepository {
	return &UnitRepository{s: s}
}

var _ unit.Repository = (*UnitRepository)(nil)

func (r *UnitRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.Unit, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	u, ok := r.s.units[id]
	if !ok {
		return nil, unit.ErrNotFound
	}
	return &u, nil
}

func (r *UnitRepository) List(ctx context.Context, tenantID *uuid.UUID) ([]models.Unit, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := []models.Unit{}
	for _, u := range r.s.units {
		if tenantID == nil || u.TenantID == *tenantID {
			out = append(out, u)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Name < out[j].Name
	})
	return out, nil
}

func (r *UnitRepository) Create(ctx context.Context, u *models.Unit) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	if u.TenantID == uuid.Nil {
		u.TenantID = u.ID
	}
	if u.TenantID != u.ID && !r.s.tenantExists(u.TenantID) {
		return unit.ErrNotFound
	}
	r.s.stamp(&u.CreatedAt, &u.UpdatedAt)
	r.s.units[u.ID] = *u
	return nil
}

func (r *UnitRepository) ListTenantIDs(ctx context.Context) ([]uuid.UUID, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var out []uuid.UUID
	for _, u := range r.s.units {
		if u.IsRoot() {
			out = append(out, u.ID)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].String() < out[j].String()
	})
	return out, nil
}

// --------------------------------------------------
// Accounts
// --------------------------------------------------

type AccountRepository struct {
	s *Store
}

func NewAccountRepository(s *Store) *AccountRepository {
	return &AccountRepository{s: s}
}

var _ account.Repository = (*AccountRepository)(nil)

func (r *AccountRepository) RegisterTenant(ctx context.Context, u *models.Unit, owner *models.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, taken := r.s.userByEmail(owner.Email); taken {
		return account.ErrEmailTaken
	}

	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	u.TenantID = u.ID
	r.s.stamp(&u.CreatedAt, &u.UpdatedAt)

	if owner.ID == uuid.Nil {
		owner.ID = uuid.New()
	}
	owner.TenantID = u.ID
	r.s.stamp(&owner.CreatedAt, &owner.UpdatedAt)

	r.s.units[u.ID] = *u
	stored := *owner
	stored.Unit = models.Unit{}
	r.s.users[owner.ID] = stored
	return nil
}

func (r *AccountRepository) FindUserByEmail(ctx context.Context, email string) (*models.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	usr, ok := r.s.userByEmail(email)
	if !ok {
		return nil, account.ErrUserNotFound
	}
	usr.Unit = r.s.units[usr.TenantID]
	return &usr, nil
}

func (r *AccountRepository) FindUserByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	usr, ok := r.s.users[id]
	if !ok {
		return nil, account.ErrUserNotFound
	}
	usr.Unit = r.s.units[usr.TenantID]
	return &usr, nil
}

func (s *Store) userByEmail(email string) (models.User, bool) {
	for _, u := range s.users {
		if strings.EqualFold(u.Email, email) {
			return u, true
		}
	}
	return models.User{}, false
}
