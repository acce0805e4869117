package models

import (
	"gorm.io/gorm"
)

// ServiceBooking status constants
const (
	BookingStatusConfirmed = "confirmed"
	BookingStatusCancelled = "cancelled"
)

// ServiceBooking records a user booking a paid service. It is written in the
// same database transaction as the wallet debit, ledger row, and service
// counter increment.
type ServiceBooking struct {
	gorm.Model
	Reference     string  `gorm:"uniqueIndex;not null" json:"reference"`
	UserID        uint    `gorm:"index;not null" json:"user_id"`
	User          User    `gorm:"foreignKey:UserID" json:"-"`
	ServiceID     uint    `gorm:"index;not null" json:"service_id"`
	Service       Service `gorm:"foreignKey:ServiceID" json:"-"`
	TransactionID uint    `json:"transaction_id"`
	Amount        float64 `gorm:"not null" json:"amount"`
	Status        string  `gorm:"default:'confirmed'" json:"status"` // confirmed, cancelled
	Notes         string  `json:"notes,omitempty"`
}
