package models

import (
	"time"

	"github.com/google/uuid"
)

// Unit é o tenant. Uma unidade raiz aponta para si mesma em TenantID;
// unidades filhas apontam para a raiz.
type Unit struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	TenantID uuid.UUID `gorm:"type:uuid;index;not null" json:"tenant_id"`

	Name    string `gorm:"size:120;not null" json:"name"`
	Address string `gorm:"size:255" json:"address"`
	Phone   string `gorm:"size:20" json:"phone"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (u Unit) IsRoot() bool {
	return u.ID == u.TenantID
}
