package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/BruksfildServices01/edu-crm/internal/domain/appointment"
	"github.com/BruksfildServices01/edu-crm/internal/models"
)

type AppointmentGormRepository struct {
	db *gorm.DB
}

func NewAppointmentGormRepository(db *gorm.DB) *AppointmentGormRepository {
	return &AppointmentGormRepository{db: db}
}

// --------------------------------------------------
// Read
// --------------------------------------------------

func (r *AppointmentGormRepository) List(
	ctx context.Context,
	f domain.ListFilter,
) ([]models.Appointment, error) {

	q := r.db.WithContext(ctx).
		Preload("Lead", "tenant_id = ?", f.TenantID).
		Where("tenant_id = ?", f.TenantID)

	if f.LeadID != nil {
		q = q.Where("lead_id = ?", *f.LeadID)
	}
	if f.UserID != nil {
		q = q.Where("user_id = ?", *f.UserID)
	}
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.From != nil {
		q = q.Where("data_agendamento >= ?", *f.From)
	}
	if f.To != nil {
		q = q.Where("data_agendamento < ?", *f.To)
	}

	apps := []models.Appointment{}
	if err := q.
		Order("data_agendamento ASC").
		Find(&apps).Error; err != nil {
		return nil, err
	}
	return apps, nil
}

func (r *AppointmentGormRepository) FindByID(
	ctx context.Context,
	id uuid.UUID,
) (*models.Appointment, error) {

	var ap models.Appointment
	if err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&ap).Error; err != nil {
		return nil, notFound(err, domain.ErrNotFound)
	}
	return &ap, nil
}

func (r *AppointmentGormRepository) ListUpcoming(
	ctx context.Context,
	tenantID uuid.UUID,
	from time.Time,
	to time.Time,
) ([]models.Appointment, error) {

	return r.List(ctx, domain.ListFilter{
		TenantID: tenantID,
		Status:   string(domain.StatusScheduled),
		From:     &from,
		To:       &to,
	})
}

// --------------------------------------------------
// Write
// --------------------------------------------------

func (r *AppointmentGormRepository) Schedule(
	ctx context.Context,
	ap *models.Appointment,
	lead *models.Lead,
	expectedLeadVersion int,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := casLead(tx, lead, expectedLeadVersion); err != nil {
			return err
		}

		if ap.ID == uuid.Nil {
			ap.ID = uuid.New()
		}
		ap.TenantID = lead.TenantID
		ap.LeadID = lead.ID

		return tx.Omit(clause.Associations).Create(ap).Error
	})
}

func (r *AppointmentGormRepository) UpdateStatus(
	ctx context.Context,
	ap *models.Appointment,
) error {

	now := time.Now()
	res := r.db.WithContext(ctx).
		Model(&models.Appointment{}).
		Where("id = ? AND tenant_id = ?", ap.ID, ap.TenantID).
		Updates(map[string]any{
			"status":     ap.Status,
			"updated_at": now,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}

	ap.UpdatedAt = now
	return nil
}

// Compile-time check
var _ domain.Repository = (*AppointmentGormRepository)(nil)
