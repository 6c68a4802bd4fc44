package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Interaction é o log append-only de mensagens recebidas de um contato.
// LeadID fica nulo quando a mensagem não pôde ser processada.
type Interaction struct {
	ID       uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	TenantID uuid.UUID  `gorm:"type:uuid;index;not null" json:"tenant_id"`
	LeadID   *uuid.UUID `gorm:"type:uuid;index" json:"lead_id"`

	Channel   string `gorm:"size:30;not null" json:"channel"`
	Direction string `gorm:"size:10;not null;default:'inbound'" json:"direction"`
	Contact   string `gorm:"size:40;index" json:"contact"`
	Message   string `gorm:"type:text" json:"message"`

	Metadata datatypes.JSON `gorm:"type:jsonb" json:"metadata,omitempty"`

	ReceivedAt time.Time `json:"received_at"`
	CreatedAt  time.Time `json:"created_at"`
}

func (Interaction) TableName() string { return "lead_interactions" }
