package models

import (
	"time"

	"gorm.io/gorm"
)

// ConversionRequest status constants
const (
	ConversionStatusPending  = "pending"
	ConversionStatusApproved = "approved"
	ConversionStatusRejected = "rejected"
)

// ConversionRequest is an organization's request to cash out coin balance to
// fiat. It is admin-gated: the wallet is only debited at approval time.
// Approved and rejected are terminal states.
type ConversionRequest struct {
	gorm.Model
	OrganizationID uint       `gorm:"index;not null" json:"organization_id"`
	Organization   User       `gorm:"foreignKey:OrganizationID" json:"-"`
	Amount         float64    `gorm:"not null" json:"amount"`
	AccountName    string     `json:"account_name"`
	AccountNumber  string     `json:"account_number"`
	IFSCCode       string     `json:"ifsc_code"`
	Status         string     `gorm:"index;default:'pending'" json:"status"` // pending, approved, rejected
	ProcessedBy    *uint      `json:"processed_by,omitempty"`
	ProcessedAt    *time.Time `json:"processed_at,omitempty"`
	Reason         string     `json:"reason,omitempty"`
	TransactionRef string     `json:"transaction_ref,omitempty"`
}
