package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVerifyPaymentSignature(t *testing.T) {
	secret := "test_secret"
	orderID := "order_Abc123"
	paymentID := "pay_Xyz789"

	signature := ComputeSignature(orderID+"|"+paymentID, secret)

	t.Run("ValidSignature", func(t *testing.T) {
		assert.True(t, VerifyPaymentSignature(orderID, paymentID, signature, secret))
	})

	t.Run("TamperedSignature", func(t *testing.T) {
		tampered := []byte(signature)
		if tampered[0] == 'a' {
			tampered[0] = 'b'
		} else {
			tampered[0] = 'a'
		}
		assert.False(t, VerifyPaymentSignature(orderID, paymentID, string(tampered), secret))
	})

	t.Run("WrongSecret", func(t *testing.T) {
		assert.False(t, VerifyPaymentSignature(orderID, paymentID, signature, "other_secret"))
	})

	t.Run("SwappedIDs", func(t *testing.T) {
		assert.False(t, VerifyPaymentSignature(paymentID, orderID, signature, secret))
	})

	t.Run("EmptySignature", func(t *testing.T) {
		assert.False(t, VerifyPaymentSignature(orderID, paymentID, "", secret))
	})
}

func TestVerifyWebhookSignature(t *testing.T) {
	secret := "webhook_secret"
	body := []byte(`{"event":"payment.captured","payload":{"payment":{"entity":{"id":"pay_1"}}}}`)

	signature := ComputeSignature(string(body), secret)

	t.Run("ValidSignature", func(t *testing.T) {
		assert.True(t, VerifyWebhookSignature(body, signature, secret))
	})

	t.Run("ModifiedBody", func(t *testing.T) {
		modified := []byte(`{"event":"payment.captured","payload":{"payment":{"entity":{"id":"pay_2"}}}}`)
		assert.False(t, VerifyWebhookSignature(modified, signature, secret))
	})

	t.Run("WrongSecret", func(t *testing.T) {
		assert.False(t, VerifyWebhookSignature(body, signature, "payment_secret"))
	})
}
