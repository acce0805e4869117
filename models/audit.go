package models

import (
	"time"
)

// AuditLog is an append-only record of a state-changing action. Rows are
// never updated or deleted, so it carries plain timestamps instead of
// gorm.Model.
type AuditLog struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	ActorID    *uint     `gorm:"index" json:"actor_id,omitempty"`
	ActorRole  string    `json:"actor_role,omitempty"`
	Action     string    `gorm:"index;not null" json:"action"`
	Resource   string    `gorm:"index;not null" json:"resource"`
	ResourceID string    `json:"resource_id,omitempty"`
	OldValues  string    `json:"old_values,omitempty"`
	NewValues  string    `json:"new_values,omitempty"`
	Metadata   string    `json:"metadata,omitempty"`
	IPAddress  string    `json:"ip_address,omitempty"`
	UserAgent  string    `json:"user_agent,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}
