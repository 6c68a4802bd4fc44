package models

import (
	"time"

	"github.com/google/uuid"
)

type Note struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	TenantID uuid.UUID `gorm:"type:uuid;index;not null" json:"tenant_id"`

	LeadID        *uuid.UUID `gorm:"type:uuid;index" json:"lead_id"`
	AppointmentID *uuid.UUID `gorm:"type:uuid" json:"agendamento_id"`
	EnrollmentID  *uuid.UUID `gorm:"type:uuid" json:"matricula_id"`
	UserID        *uuid.UUID `gorm:"type:uuid" json:"user_id"`

	Content string `gorm:"type:text;not null" json:"conteudo"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Note) TableName() string { return "anotacoes" }
