package models

import (
	"gorm.io/gorm"
)

// PaymentTransaction status constants
const (
	PaymentStatusPending    = "pending"
	PaymentStatusProcessing = "processing"
	PaymentStatusCompleted  = "completed"
	PaymentStatusFailed     = "failed"
)

// PaymentTransaction correlates an internal coin purchase with the payment
// gateway's order and payment IDs. The signature-verified callback is the
// only writer of the completed status.
type PaymentTransaction struct {
	gorm.Model
	UserID            uint    `gorm:"index;not null" json:"user_id"`
	User              User    `gorm:"foreignKey:UserID" json:"-"`
	RazorpayOrderID   string  `gorm:"uniqueIndex;not null" json:"razorpay_order_id"`
	RazorpayPaymentID string  `gorm:"uniqueIndex;default:null" json:"razorpay_payment_id,omitempty"`
	Amount            float64 `gorm:"not null" json:"amount"`
	Currency          string  `gorm:"default:'INR'" json:"currency"`
	Purpose           string  `gorm:"default:'coin_purchase'" json:"purpose"`
	Status            string  `gorm:"index;default:'pending'" json:"status"` // pending, processing, completed, failed
	TransactionID     *uint   `json:"transaction_id,omitempty"`
	RefundID          string  `json:"refund_id,omitempty"`
	RefundAmount      float64 `json:"refund_amount,omitempty"`
	RefundStatus      string  `json:"refund_status,omitempty"`
	FailureReason     string  `json:"failure_reason,omitempty"`
}
