package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/edu-crm/internal/models"
)

// LeadCardDTO é o cartão do Kanban.
type LeadCardDTO struct {
	ID             uuid.UUID  `json:"id"`
	Name           string     `json:"name"`
	WhatsAppNumber string     `json:"whatsapp_number"`
	Discipline     string     `json:"discipline"`
	InterestLevel  string     `json:"interest_level"`
	ScheduledDate  *time.Time `json:"scheduled_date"`
	Attended       bool       `json:"attended"`
	Converted      bool       `json:"converted"`
	Version        int        `json:"version"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

func LeadCard(l models.Lead) LeadCardDTO {
	return LeadCardDTO{
		ID:             l.ID,
		Name:           l.Name,
		WhatsAppNumber: l.WhatsAppNumber,
		Discipline:     l.Discipline,
		InterestLevel:  l.InterestLevel,
		ScheduledDate:  l.ScheduledDate,
		Attended:       l.Attended,
		Converted:      l.Converted,
		Version:        l.Version,
		UpdatedAt:      l.UpdatedAt,
	}
}

type PipelineColumnDTO struct {
	Status string        `json:"status"`
	Count  int           `json:"count"`
	Leads  []LeadCardDTO `json:"leads"`
}

type PipelineBoardDTO struct {
	TenantID uuid.UUID           `json:"tenant_id"`
	Columns  []PipelineColumnDTO `json:"columns"`
}

type LeadListDTO struct {
	Page  int           `json:"page"`
	Limit int           `json:"limit"`
	Total int64         `json:"total"`
	Leads []models.Lead `json:"leads"`
}
