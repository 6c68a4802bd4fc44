package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type Lead struct {
	ID       uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	TenantID uuid.UUID  `gorm:"type:uuid;not null;index:idx_leads_tenant_whatsapp,priority:1;index:idx_leads_tenant_created,priority:1" json:"tenant_id"`
	UnitID   *uuid.UUID `gorm:"type:uuid;index" json:"unit_id"`

	Name           string `gorm:"size:150;not null" json:"name"`
	WhatsAppNumber string `gorm:"column:whatsapp_number;size:20;index:idx_leads_tenant_whatsapp,priority:2" json:"whatsapp_number"`
	Discipline     string `gorm:"size:80" json:"discipline"`
	AgeGroup       string `gorm:"size:40" json:"age_group"`
	WhoSearched    string `gorm:"size:40" json:"who_searched"`
	OriginChannel  string `gorm:"size:40" json:"origin_channel"`

	Status        string     `gorm:"size:20;not null;default:'novo_lead';index" json:"status"`
	InterestLevel string     `gorm:"size:10;default:'frio'" json:"interest_level"`
	ScheduledDate *time.Time `json:"scheduled_date"`
	Attended      bool       `gorm:"not null;default:false" json:"attended"`
	Converted     bool       `gorm:"not null;default:false" json:"converted"`
	Observations  string     `gorm:"type:text" json:"observations"`

	AIInteractionLog datatypes.JSON `gorm:"column:ai_interaction_log;type:jsonb" json:"ai_interaction_log,omitempty"`

	Version int `gorm:"not null;default:1" json:"version"`

	CreatedAt time.Time `gorm:"index:idx_leads_tenant_created,priority:2" json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
