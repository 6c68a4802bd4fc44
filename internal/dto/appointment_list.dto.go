package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/edu-crm/internal/models"
)

type AppointmentListDTO struct {
	ID          uuid.UUID  `json:"id"`
	LeadID      uuid.UUID  `json:"lead_id"`
	LeadName    string     `json:"lead_name"`
	LeadPhone   string     `json:"lead_whatsapp"`
	UserID      *uuid.UUID `json:"user_id"`
	ScheduledAt time.Time  `json:"data_agendamento"`
	Status      string     `json:"status"`
	Kind        string     `json:"tipo"`
	Notes       string     `json:"observacoes"`
}

func AppointmentList(aps []models.Appointment) []AppointmentListDTO {
	out := make([]AppointmentListDTO, 0, len(aps))
	for _, ap := range aps {
		item := AppointmentListDTO{
			ID:          ap.ID,
			LeadID:      ap.LeadID,
			UserID:      ap.UserID,
			ScheduledAt: ap.ScheduledAt,
			Status:      ap.Status,
			Kind:        ap.Kind,
			Notes:       ap.Notes,
		}
		if ap.Lead != nil {
			item.LeadName = ap.Lead.Name
			item.LeadPhone = ap.Lead.WhatsAppNumber
		}
		out = append(out, item)
	}
	return out
}
