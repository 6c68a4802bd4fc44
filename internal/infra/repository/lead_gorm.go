package repository

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/BruksfildServices01/edu-crm/internal/domain/lead"
	"github.com/BruksfildServices01/edu-crm/internal/models"
)

type LeadGormRepository struct {
	db *gorm.DB
}

func NewLeadGormRepository(db *gorm.DB) *LeadGormRepository {
	return &LeadGormRepository{db: db}
}

// --------------------------------------------------
// Read
// --------------------------------------------------

func (r *LeadGormRepository) FindByID(
	ctx context.Context,
	id uuid.UUID,
) (*models.Lead, error) {

	var l models.Lead
	if err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&l).Error; err != nil {
		return nil, notFound(err, domain.ErrNotFound)
	}
	return &l, nil
}

func (r *LeadGormRepository) FindByWhatsApp(
	ctx context.Context,
	tenantID uuid.UUID,
	number string,
) (*models.Lead, error) {

	var l models.Lead
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND whatsapp_number = ?", tenantID, number).
		Order("created_at ASC").
		First(&l).Error; err != nil {
		return nil, notFound(err, domain.ErrNotFound)
	}
	return &l, nil
}

func (r *LeadGormRepository) List(
	ctx context.Context,
	f domain.ListFilter,
) ([]models.Lead, int64, error) {

	q := scopeLeads(r.db.WithContext(ctx).Model(&models.Lead{}), f.TenantID, f.UnitID)

	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.OriginChannel != "" {
		q = q.Where("LOWER(origin_channel) = LOWER(?)", f.OriginChannel)
	}
	if term := strings.TrimSpace(f.Query); term != "" {
		like := "%" + term + "%"
		q = q.Where("(name ILIKE ? OR whatsapp_number LIKE ?)", like, like)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	leads := []models.Lead{}
	if err := q.
		Order("created_at DESC").
		Limit(f.Limit).
		Offset(f.Offset()).
		Find(&leads).Error; err != nil {
		return nil, 0, err
	}
	return leads, total, nil
}

func (r *LeadGormRepository) ListForBoard(
	ctx context.Context,
	tenantID uuid.UUID,
	unitID *uuid.UUID,
) ([]models.Lead, error) {

	var leads []models.Lead
	if err := scopeLeads(r.db.WithContext(ctx), tenantID, unitID).
		Order("updated_at DESC").
		Find(&leads).Error; err != nil {
		return nil, err
	}
	return leads, nil
}

func (r *LeadGormRepository) CountAppointments(
	ctx context.Context,
	tenantID uuid.UUID,
	leadID uuid.UUID,
) (int64, error) {

	var n int64
	err := r.db.WithContext(ctx).
		Model(&models.Appointment{}).
		Where("tenant_id = ? AND lead_id = ?", tenantID, leadID).
		Count(&n).Error
	return n, err
}

// --------------------------------------------------
// Write
// --------------------------------------------------

func (r *LeadGormRepository) Create(
	ctx context.Context,
	lead *models.Lead,
	first *models.Interaction,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if lead.ID == uuid.Nil {
			lead.ID = uuid.New()
		}
		lead.Version = 1

		if err := tx.Create(lead).Error; err != nil {
			return err
		}

		if first == nil {
			return nil
		}
		id := lead.ID
		first.LeadID = &id
		first.TenantID = lead.TenantID
		return createInteraction(tx, first)
	})
}

func (r *LeadGormRepository) Update(
	ctx context.Context,
	lead *models.Lead,
	expectedVersion int,
) error {
	return casLead(r.db.WithContext(ctx), lead, expectedVersion)
}

func (r *LeadGormRepository) Enroll(
	ctx context.Context,
	lead *models.Lead,
	expectedVersion int,
	en *models.Enrollment,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := casLead(tx, lead, expectedVersion); err != nil {
			return err
		}

		if en.ID == uuid.Nil {
			en.ID = uuid.New()
		}
		en.TenantID = lead.TenantID
		en.LeadID = lead.ID
		return tx.Create(en).Error
	})
}

// --------------------------------------------------
// Interactions
// --------------------------------------------------

func (r *LeadGormRepository) AppendInteraction(
	ctx context.Context,
	in *models.Interaction,
) error {
	return createInteraction(r.db.WithContext(ctx), in)
}

func (r *LeadGormRepository) ListInteractions(
	ctx context.Context,
	tenantID uuid.UUID,
	leadID uuid.UUID,
) ([]models.Interaction, error) {

	out := []models.Interaction{}
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND lead_id = ?", tenantID, leadID).
		Order("received_at ASC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// --------------------------------------------------
// helpers
// --------------------------------------------------

func scopeLeads(q *gorm.DB, tenantID uuid.UUID, unitID *uuid.UUID) *gorm.DB {
	q = q.Where("tenant_id = ?", tenantID)
	if unitID != nil {
		q = q.Where("unit_id = ?", *unitID)
	}
	return q
}

// casLead grava todas as colunas mutáveis se a versão persistida for a
// esperada. Zero linhas afetadas vira not found ou conflito.
func casLead(tx *gorm.DB, lead *models.Lead, expectedVersion int) error {
	now := time.Now()

	res := tx.Model(&models.Lead{}).
		Where("id = ? AND tenant_id = ? AND version = ?", lead.ID, lead.TenantID, expectedVersion).
		Updates(map[string]any{
			"unit_id":            lead.UnitID,
			"name":               lead.Name,
			"whatsapp_number":    lead.WhatsAppNumber,
			"discipline":         lead.Discipline,
			"age_group":          lead.AgeGroup,
			"who_searched":       lead.WhoSearched,
			"origin_channel":     lead.OriginChannel,
			"status":             lead.Status,
			"interest_level":     lead.InterestLevel,
			"scheduled_date":     lead.ScheduledDate,
			"attended":           lead.Attended,
			"converted":          lead.Converted,
			"observations":       lead.Observations,
			"ai_interaction_log": lead.AIInteractionLog,
			"version":            expectedVersion + 1,
			"updated_at":         now,
		})
	if res.Error != nil {
		return res.Error
	}

	if res.RowsAffected == 0 {
		var n int64
		if err := tx.Model(&models.Lead{}).
			Where("id = ? AND tenant_id = ?", lead.ID, lead.TenantID).
			Count(&n).Error; err != nil {
			return err
		}
		if n == 0 {
			return domain.ErrNotFound
		}
		return domain.ErrVersionConflict
	}

	lead.Version = expectedVersion + 1
	lead.UpdatedAt = now
	return nil
}

func createInteraction(tx *gorm.DB, in *models.Interaction) error {
	if in.ID == uuid.Nil {
		in.ID = uuid.New()
	}
	if in.Direction == "" {
		in.Direction = "inbound"
	}
	if in.ReceivedAt.IsZero() {
		in.ReceivedAt = time.Now()
	}
	return tx.Omit(clause.Associations).Create(in).Error
}

// Compile-time check
var _ domain.Repository = (*LeadGormRepository)(nil)
