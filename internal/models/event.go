package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Event é a trilha de auditoria (tabela eventos).
type Event struct {
	ID       uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	TenantID uuid.UUID  `gorm:"type:uuid;index;not null" json:"tenant_id"`
	UserID   *uuid.UUID `gorm:"type:uuid" json:"user_id"`

	Action   string     `gorm:"size:50;not null" json:"action"`
	Entity   string     `gorm:"size:50" json:"entity"`
	EntityID *uuid.UUID `gorm:"type:uuid;index" json:"entity_id"`

	Metadata datatypes.JSON `gorm:"type:jsonb" json:"metadata,omitempty"`

	CreatedAt time.Time `gorm:"index" json:"created_at"`
}

func (Event) TableName() string { return "eventos" }
