package controllers

import (
	"github.com/ErthaLabs/ErthaExchange/models"
	"gorm.io/gorm"
)

// ledgerEntry carries everything needed to insert one Transaction row.
// BalanceBefore/BalanceAfter come from the wallet helper that performed the
// mutation in the same database transaction, so the snapshots can never
// drift from the wallet.
type ledgerEntry struct {
	UserID        uint
	ServiceID     *uint
	Type          string
	Amount        float64
	Status        string
	BalanceBefore float64
	BalanceAfter  float64
	Description   string
	Reference     string
	Metadata      string
}

// createTransaction inserts a ledger row inside tx.
func createTransaction(tx *gorm.DB, entry ledgerEntry) (*models.Transaction, error) {
	status := entry.Status
	if status == "" {
		status = models.TransactionStatusCompleted
	}
	transaction := models.Transaction{
		UserID:        entry.UserID,
		ServiceID:     entry.ServiceID,
		Type:          entry.Type,
		Amount:        entry.Amount,
		Status:        status,
		BalanceBefore: entry.BalanceBefore,
		BalanceAfter:  entry.BalanceAfter,
		Description:   entry.Description,
		Reference:     entry.Reference,
		Metadata:      entry.Metadata,
	}

	if err := tx.Create(&transaction).Error; err != nil {
		return nil, err
	}
	return &transaction, nil
}

// computeBalanceAfter applies the ledger sign convention for a transaction
// type: purchases and booking refunds credit the wallet, bookings and
// conversions debit it.
func computeBalanceAfter(transactionType string, balanceBefore, amount float64) float64 {
	switch transactionType {
	case models.TransactionTypeCoinPurchase, models.TransactionTypeRefund:
		return balanceBefore + amount
	case models.TransactionTypeServiceBooking, models.TransactionTypeCoinConversion:
		return balanceBefore - amount
	}
	return balanceBefore
}
