package models

import (
	"time"

	"github.com/google/uuid"
)

type Enrollment struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	TenantID uuid.UUID `gorm:"type:uuid;index;not null" json:"tenant_id"`
	LeadID   uuid.UUID `gorm:"type:uuid;index;not null" json:"lead_id"`

	Plan       string     `gorm:"column:plano;size:60" json:"plano"`
	Discipline string     `gorm:"column:disciplina;size:80" json:"disciplina"`
	MonthlyFee float64    `gorm:"column:valor_mensalidade;type:numeric(10,2)" json:"valor_mensalidade"`
	StartDate  *time.Time `gorm:"column:data_inicio" json:"data_inicio"`
	EndDate    *time.Time `gorm:"column:data_fim" json:"data_fim"`
	Status     string     `gorm:"size:20;not null;default:'ativa'" json:"status"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Enrollment) TableName() string { return "matriculas" }
