package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/BruksfildServices01/edu-crm/internal/domain/account"
	"github.com/BruksfildServices01/edu-crm/internal/domain/unit"
	"github.com/BruksfildServices01/edu-crm/internal/httperr"
	"github.com/BruksfildServices01/edu-crm/internal/models"
)

// --------------------------------------------------
// Units
// --------------------------------------------------

type UnitGormRepository struct {
	db *gorm.DB
}

func NewUnitGormRepository(db *gorm.DB) *UnitGormRepository {
	return &UnitGormRepository{db: db}
}

func (r *UnitGormRepository) FindByID(
	ctx context.Context,
	id uuid.UUID,
) (*models.Unit, error) {

	var u models.Unit
	if err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&u).Error; err != nil {
		return nil, notFound(err, unit.ErrNotFound)
	}
	return &u, nil
}

func (r *UnitGormRepository) List(
	ctx context.Context,
	tenantID *uuid.UUID,
) ([]models.Unit, error) {

	q := r.db.WithContext(ctx)
	if tenantID != nil {
		q = q.Where("tenant_id = ?", *tenantID)
	}

	units := []models.Unit{}
	if err := q.Order("name ASC").Find(&units).Error; err != nil {
		return nil, err
	}
	return units, nil
}

func (r *UnitGormRepository) Create(
	ctx context.Context,
	u *models.Unit,
) error {

	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	if u.TenantID == uuid.Nil {
		u.TenantID = u.ID
	}

	db := r.db.WithContext(ctx)

	// unidade filha precisa de uma raiz existente
	if u.TenantID != u.ID {
		var n int64
		if err := db.Model(&models.Unit{}).
			Where("id = ? AND tenant_id = id", u.TenantID).
			Count(&n).Error; err != nil {
			return err
		}
		if n == 0 {
			return unit.ErrNotFound
		}
	}

	return db.Create(u).Error
}

func (r *UnitGormRepository) ListTenantIDs(ctx context.Context) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := r.db.WithContext(ctx).
		Model(&models.Unit{}).
		Where("tenant_id = id").
		Order("id").
		Pluck("id", &ids).Error
	return ids, err
}

// --------------------------------------------------
// Accounts
// --------------------------------------------------

type AccountGormRepository struct {
	db *gorm.DB
}

func NewAccountGormRepository(db *gorm.DB) *AccountGormRepository {
	return &AccountGormRepository{db: db}
}

func (r *AccountGormRepository) RegisterTenant(
	ctx context.Context,
	u *models.Unit,
	owner *models.User,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var n int64
		if err := tx.Model(&models.User{}).
			Where("LOWER(email) = LOWER(?)", owner.Email).
			Count(&n).Error; err != nil {
			return err
		}
		if n > 0 {
			return account.ErrEmailTaken
		}

		if u.ID == uuid.Nil {
			u.ID = uuid.New()
		}
		u.TenantID = u.ID
		if err := tx.Create(u).Error; err != nil {
			return err
		}

		if owner.ID == uuid.Nil {
			owner.ID = uuid.New()
		}
		owner.TenantID = u.ID
		if err := tx.Omit(clause.Associations).Create(owner).Error; err != nil {
			if httperr.IsUniqueViolation(err) {
				return account.ErrEmailTaken
			}
			return err
		}
		return nil
	})
}

func (r *AccountGormRepository) FindUserByEmail(
	ctx context.Context,
	email string,
) (*models.User, error) {

	var usr models.User
	if err := r.db.WithContext(ctx).
		Preload("Unit").
		Where("LOWER(email) = LOWER(?)", email).
		First(&usr).Error; err != nil {
		return nil, notFound(err, account.ErrUserNotFound)
	}
	return &usr, nil
}

func (r *AccountGormRepository) FindUserByID(
	ctx context.Context,
	id uuid.UUID,
) (*models.User, error) {

	var usr models.User
	if err := r.db.WithContext(ctx).
		Preload("Unit").
		Where("id = ?", id).
		First(&usr).Error; err != nil {
		return nil, notFound(err, account.ErrUserNotFound)
	}
	return &usr, nil
}

// Compile-time check
var (
	_ unit.Repository    = (*UnitGormRepository)(nil)
	_ account.Repository = (*AccountGormRepository)(nil)
)
