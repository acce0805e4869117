package controllers

import (
	"bytes"
	"log"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/ErthaLabs/ErthaExchange/config"
	"github.com/ErthaLabs/ErthaExchange/models"
	"github.com/ErthaLabs/ErthaExchange/utils"
	"github.com/stretchr/testify/assert"
)

func TestExpireStalePaymentOrdersCountsActualFlips(t *testing.T) {
	db, mock := setupMockDB(t)
	config.DB = db

	var logBuf bytes.Buffer
	prev := utils.InfoLogger
	utils.InfoLogger = log.New(&logBuf, "", 0)
	defer func() { utils.InfoLogger = prev }()

	created := time.Now().Add(-48 * time.Hour)
	mock.ExpectQuery(`SELECT \* FROM "payment_transactions" WHERE \(status = \$1 AND created_at < \$2\)`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "razorpay_order_id", "status", "created_at"}).
			AddRow(1, 2, "order_1", models.PaymentStatusPending, created).
			AddRow(2, 3, "order_2", models.PaymentStatusPending, created))

	// First order expires and gets an audit row
	mock.ExpectExec(`UPDATE "payment_transactions"`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`INSERT INTO "audit_logs"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))

	// Second order completed between the sweep query and the update
	mock.ExpectExec(`UPDATE "payment_transactions"`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	ExpireStalePaymentOrders()

	assert.Contains(t, logBuf.String(), "expired 1 of 2 candidate orders")
	assert.NoError(t, mock.ExpectationsWereMet())
}
