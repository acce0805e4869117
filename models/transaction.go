package models

import (
	"gorm.io/gorm"
)

// Transaction types
const (
	TransactionTypeCoinPurchase   = "coin_purchase"
	TransactionTypeServiceBooking = "service_booking"
	TransactionTypeCoinConversion = "coin_conversion"
	TransactionTypeRefund         = "refund"
)

// Transaction status constants
const (
	TransactionStatusPending   = "pending"
	TransactionStatusCompleted = "completed"
	TransactionStatusFailed    = "failed"
)

// Transaction is a ledger line for a balance-affecting event. BalanceBefore
// and BalanceAfter are snapshots taken in the same database transaction as
// the wallet mutation they describe. Completed rows are immutable except for
// status and metadata patches.
type Transaction struct {
	gorm.Model
	UserID        uint     `gorm:"index;not null" json:"user_id"`
	User          User     `gorm:"foreignKey:UserID" json:"-"`
	ServiceID     *uint    `gorm:"index" json:"service_id,omitempty"`
	Service       *Service `gorm:"foreignKey:ServiceID" json:"-"`
	Type          string   `gorm:"index;not null" json:"type"` // coin_purchase, service_booking, coin_conversion, refund
	Amount        float64  `gorm:"not null" json:"amount"`
	Status        string   `gorm:"index;default:'pending'" json:"status"` // pending, completed, failed
	BalanceBefore float64  `json:"balance_before"`
	BalanceAfter  float64  `json:"balance_after"`
	Description   string   `json:"description"`
	Reference     string   `gorm:"index" json:"reference"`
	Metadata      string   `json:"metadata,omitempty"`
}
