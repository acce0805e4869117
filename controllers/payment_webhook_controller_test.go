package controllers

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/ErthaLabs/ErthaExchange/config"
	"github.com/ErthaLabs/ErthaExchange/models"
	"github.com/ErthaLabs/ErthaExchange/utils"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func postWebhook(t *testing.T, body []byte, signature string) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/v1/webhooks/razorpay", bytes.NewReader(body))
	if signature != "" {
		c.Request.Header.Set("X-Razorpay-Signature", signature)
	}

	HandlePaymentWebhook(c)
	return w
}

func TestHandlePaymentWebhookSignatureGate(t *testing.T) {
	t.Setenv("RAZORPAY_WEBHOOK_SECRET", "whsec_test")
	body := []byte(`{"event":"ping","payload":{}}`)

	t.Run("MissingSignature", func(t *testing.T) {
		w := postWebhook(t, body, "")
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("WrongSignature", func(t *testing.T) {
		w := postWebhook(t, body, "deadbeef")
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("SignatureOverDifferentBody", func(t *testing.T) {
		signature := utils.ComputeSignature(`{"event":"other"}`, "whsec_test")
		w := postWebhook(t, body, signature)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestHandlePaymentWebhookUnknownEvent(t *testing.T) {
	t.Setenv("RAZORPAY_WEBHOOK_SECRET", "whsec_test")
	body := []byte(`{"event":"invoice.paid","payload":{}}`)
	signature := utils.ComputeSignature(string(body), "whsec_test")

	w := postWebhook(t, body, signature)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Event ignored")
}

func TestHandlePaymentWebhookMalformedBody(t *testing.T) {
	t.Setenv("RAZORPAY_WEBHOOK_SECRET", "whsec_test")
	body := []byte(`{not json`)
	signature := utils.ComputeSignature(string(body), "whsec_test")

	w := postWebhook(t, body, signature)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandleRefundCreatedReplayOfOlderRefund(t *testing.T) {
	db, mock := setupMockDB(t)
	config.DB = db

	// rfnd_1 was applied, then rfnd_2 overwrote the payment's refund_id.
	// A replayed rfnd_1 event passes the refund_id check but its ledger
	// reference already exists, so the handler must back out without a debit.
	mock.ExpectQuery(`SELECT \* FROM "payment_transactions"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "razorpay_payment_id", "amount", "refund_id", "refund_amount"}).
			AddRow(1, 2, "pay_1", 100.0, "rfnd_2", 60.0))
	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT count\(\*\) FROM "transactions" WHERE reference = \$1`).
		WithArgs("REFUND-rfnd_1").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectRollback()

	err := handleRefundCreated("pay_1", "rfnd_1", 40.0, "processed")
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHandlePaymentCapturedReplay(t *testing.T) {
	db, mock := setupMockDB(t)
	config.DB = db

	// Replayed capture for a completed payment reads the row and stops:
	// no wallet update, no ledger insert
	mock.ExpectQuery(`SELECT \* FROM "payment_transactions"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "razorpay_order_id", "amount", "status"}).
			AddRow(1, 2, "order_1", 100.0, models.PaymentStatusCompleted))

	err := handlePaymentCaptured("order_1", "pay_1")
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
