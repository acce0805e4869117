package controllers

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/ErthaLabs/ErthaExchange/models"
	"github.com/stretchr/testify/assert"
)

func TestComputeBalanceAfter(t *testing.T) {
	tests := []struct {
		name     string
		txnType  string
		before   float64
		amount   float64
		expected float64
	}{
		{"PurchaseCredits", models.TransactionTypeCoinPurchase, 100, 50, 150},
		{"RefundCredits", models.TransactionTypeRefund, 100, 25, 125},
		{"BookingDebits", models.TransactionTypeServiceBooking, 100, 30, 70},
		{"ConversionDebits", models.TransactionTypeCoinConversion, 100, 100, 0},
		{"UnknownTypeUnchanged", "something_else", 100, 50, 100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, computeBalanceAfter(tt.txnType, tt.before, tt.amount))
		})
	}
}

func TestCreateTransaction(t *testing.T) {
	t.Run("DefaultsToCompleted", func(t *testing.T) {
		db, mock := setupMockDB(t)

		mock.ExpectQuery(`INSERT INTO "transactions"`).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))

		txn, err := createTransaction(db, ledgerEntry{
			UserID:        1,
			Type:          models.TransactionTypeCoinPurchase,
			Amount:        50,
			BalanceBefore: 100,
			BalanceAfter:  150,
			Reference:     "PURCHASE-pay_1",
		})
		assert.NoError(t, err)
		assert.Equal(t, models.TransactionStatusCompleted, txn.Status)
		assert.Equal(t, uint(1), txn.ID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("ExplicitStatusKept", func(t *testing.T) {
		db, mock := setupMockDB(t)

		mock.ExpectQuery(`INSERT INTO "transactions"`).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(2))

		txn, err := createTransaction(db, ledgerEntry{
			UserID: 1,
			Type:   models.TransactionTypeCoinPurchase,
			Amount: 50,
			Status: models.TransactionStatusPending,
		})
		assert.NoError(t, err)
		assert.Equal(t, models.TransactionStatusPending, txn.Status)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
