package model

import (
	"time"
)

// AuditLog records operator actions taken on listings the operator does not own
type AuditLog struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	ActorID      uint      `gorm:"not null;index" json:"actor_id"`
	Action       string    `gorm:"type:varchar(100);not null" json:"action"` // e.g. "accommodation_verify", "bursary_delete"
	Resource     string    `gorm:"type:varchar(100);not null" json:"resource"`
	ResourceSlug string    `gorm:"type:varchar(255);index" json:"resource_slug"`
	Detail       string    `gorm:"type:text" json:"detail"`
	CreatedAt    time.Time `json:"created_at"`

	// Relationships
	Actor User `gorm:"foreignKey:ActorID;constraint:OnDelete:CASCADE" json:"-"`
}

// TableName specifies the table name for AuditLog
func (AuditLog) TableName() string {
	return "audit_logs"
}
