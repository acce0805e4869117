package models

import (
	"gorm.io/gorm"
)

// Service status constants
const (
	ServiceStatusPending   = "pending"
	ServiceStatusActive    = "active"
	ServiceStatusInactive  = "inactive"
	ServiceStatusSuspended = "suspended"
)

// Service represents an offering owned by an organization. Created as
// pending, activated by an admin, and its booking counter grows with each
// booking.
type Service struct {
	gorm.Model
	OrganizationID uint    `gorm:"index;not null" json:"organization_id"`
	Organization   User    `gorm:"foreignKey:OrganizationID" json:"-"`
	Name           string  `gorm:"not null" json:"name"`
	Description    string  `json:"description"`
	Category       string  `json:"category"`
	Price          float64 `gorm:"not null" json:"price"`
	Status         string  `gorm:"default:'pending'" json:"status"` // pending, active, inactive, suspended
	BookingCount   int     `gorm:"default:0" json:"booking_count"`
}
