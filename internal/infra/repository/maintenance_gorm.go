package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/BruksfildServices01/edu-crm/internal/domain/maintenance"
	"github.com/BruksfildServices01/edu-crm/internal/models"
)

// orphanOf casa linhas cujo tenant_id não aponta para nenhuma unidade.
// A coluna é qualificada porque units também tem tenant_id.
func orphanOf(table string) string {
	return fmt.Sprintf("NOT EXISTS (SELECT 1 FROM units u WHERE u.id = %s.tenant_id)", table)
}

type MaintenanceGormRepository struct {
	db *gorm.DB
}

func NewMaintenanceGormRepository(db *gorm.DB) *MaintenanceGormRepository {
	return &MaintenanceGormRepository{db: db}
}

func (r *MaintenanceGormRepository) Integrity(ctx context.Context) (maintenance.IntegrityReport, error) {
	db := r.db.WithContext(ctx)
	var rep maintenance.IntegrityReport

	counts := []struct {
		model any
		table string
		dst   *int64
	}{
		{&models.Lead{}, "leads", &rep.OrphanLeads},
		{&models.Appointment{}, "agendamentos", &rep.OrphanAppointments},
		{&models.Enrollment{}, "matriculas", &rep.OrphanEnrollments},
		{&models.Note{}, "anotacoes", &rep.OrphanNotes},
		{&models.Interaction{}, "lead_interactions", &rep.OrphanInteractions},
	}
	for _, c := range counts {
		if err := db.Model(c.model).Where(orphanOf(c.table)).Count(c.dst).Error; err != nil {
			return rep, err
		}
	}

	err := db.Model(&models.Lead{}).
		Where("converted = ? AND NOT EXISTS (SELECT 1 FROM matriculas m WHERE m.lead_id = leads.id)", true).
		Count(&rep.ConvertedWithoutEnrollment).Error
	return rep, err
}

func (r *MaintenanceGormRepository) PurgeOrphans(ctx context.Context) (maintenance.PurgeReport, error) {
	var rep maintenance.PurgeReport

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		steps := []struct {
			model any
			table string
			dst   *int64
		}{
			{&models.Note{}, "anotacoes", &rep.Notes},
			{&models.Appointment{}, "agendamentos", &rep.Appointments},
			{&models.Enrollment{}, "matriculas", &rep.Enrollments},
			{&models.Interaction{}, "lead_interactions", &rep.Interactions},
			{&models.Lead{}, "leads", &rep.Leads},
		}
		for _, s := range steps {
			res := tx.Where(orphanOf(s.table)).Delete(s.model)
			if res.Error != nil {
				return res.Error
			}
			*s.dst = res.RowsAffected
		}
		return nil
	})
	if err != nil {
		return maintenance.PurgeReport{}, err
	}
	return rep, nil
}

// Compile-time check
var _ maintenance.Repository = (*MaintenanceGormRepository)(nil)
