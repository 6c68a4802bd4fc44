package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/edu-crm/internal/domain/note"
	"github.com/BruksfildServices01/edu-crm/internal/models"
)

type NoteGormRepository struct {
	db *gorm.DB
}

func NewNoteGormRepository(db *gorm.DB) *NoteGormRepository {
	return &NoteGormRepository{db: db}
}

func (r *NoteGormRepository) List(
	ctx context.Context,
	tenantID uuid.UUID,
	leadID *uuid.UUID,
) ([]models.Note, error) {

	q := r.db.WithContext(ctx).Where("tenant_id = ?", tenantID)
	if leadID != nil {
		q = q.Where("lead_id = ?", *leadID)
	}

	notes := []models.Note{}
	if err := q.Order("created_at DESC").Find(&notes).Error; err != nil {
		return nil, err
	}
	return notes, nil
}

func (r *NoteGormRepository) FindByID(
	ctx context.Context,
	id uuid.UUID,
) (*models.Note, error) {

	var n models.Note
	if err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&n).Error; err != nil {
		return nil, notFound(err, domain.ErrNotFound)
	}
	return &n, nil
}

func (r *NoteGormRepository) Create(
	ctx context.Context,
	n *models.Note,
) error {
	if n.ID == uuid.Nil {
		n.ID = uuid.New()
	}
	return r.db.WithContext(ctx).Create(n).Error
}

func (r *NoteGormRepository) Delete(
	ctx context.Context,
	tenantID uuid.UUID,
	id uuid.UUID,
) error {

	res := r.db.WithContext(ctx).
		Where("id = ? AND tenant_id = ?", id, tenantID).
		Delete(&models.Note{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Compile-time check
var _ domain.Repository = (*NoteGormRepository)(nil)
