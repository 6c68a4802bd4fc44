package models

import (
	"time"

	"github.com/google/uuid"
)

type Appointment struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	TenantID uuid.UUID `gorm:"type:uuid;not null;index:idx_agendamentos_tenant_data,priority:1" json:"tenant_id"`

	LeadID uuid.UUID `gorm:"type:uuid;not null;index" json:"lead_id"`
	Lead   *Lead     `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"lead,omitempty"`

	UserID *uuid.UUID `gorm:"type:uuid" json:"user_id"`

	ScheduledAt time.Time `gorm:"column:data_agendamento;not null;index:idx_agendamentos_tenant_data,priority:2" json:"data_agendamento"`
	Status      string    `gorm:"size:20;not null;default:'agendado'" json:"status"`
	Kind        string    `gorm:"column:tipo;size:40" json:"tipo"`
	Notes       string    `gorm:"column:observacoes;type:text" json:"observacoes"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Appointment) TableName() string { return "agendamentos" }
