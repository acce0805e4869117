package controllers

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/ErthaLabs/ErthaExchange/config"
	"github.com/ErthaLabs/ErthaExchange/models"
	"github.com/ErthaLabs/ErthaExchange/utils"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// webhookEvent mirrors the slice of the gateway's webhook body we act on.
type webhookEvent struct {
	Event   string `json:"event"`
	Payload struct {
		Payment struct {
			Entity struct {
				ID               string `json:"id"`
				OrderID          string `json:"order_id"`
				Status           string `json:"status"`
				ErrorDescription string `json:"error_description"`
			} `json:"entity"`
		} `json:"payment"`
		Refund struct {
			Entity struct {
				ID        string `json:"id"`
				PaymentID string `json:"payment_id"`
				Amount    int64  `json:"amount"`
				Status    string `json:"status"`
			} `json:"entity"`
		} `json:"refund"`
	} `json:"payload"`
}

// POST /v1/webhooks/razorpay
// HandlePaymentWebhook verifies the gateway's server-to-server signature
// over the raw body and dispatches the event to an idempotent handler.
// Unknown events are logged and acknowledged.
func HandlePaymentWebhook(c *gin.Context) {
	utils.LogInfo("HandlePaymentWebhook called")

	body, err := c.GetRawData()
	if err != nil {
		utils.BadRequest(c, "Failed to read webhook body", err.Error())
		return
	}

	signature := c.GetHeader("X-Razorpay-Signature")
	if !utils.VerifyWebhookSignature(body, signature, os.Getenv("RAZORPAY_WEBHOOK_SECRET")) {
		utils.LogError("Webhook signature mismatch")
		utils.HandleAppError(c, utils.InvalidSignatureError("Webhook verification failed"))
		return
	}

	var event webhookEvent
	if err := json.Unmarshal(body, &event); err != nil {
		utils.LogError("Failed to parse webhook body: %v", err)
		utils.BadRequest(c, "Malformed webhook payload", err.Error())
		return
	}
	utils.LogDebug("Webhook event received: %s", event.Event)

	payment := event.Payload.Payment.Entity
	refund := event.Payload.Refund.Entity

	switch event.Event {
	case "payment.captured", "order.paid":
		err = handlePaymentCaptured(payment.OrderID, payment.ID)
	case "payment.authorized":
		err = handlePaymentAuthorized(payment.OrderID, payment.ID)
	case "payment.failed":
		err = handlePaymentFailed(payment.OrderID, payment.ID, payment.ErrorDescription)
	case "refund.created":
		err = handleRefundCreated(refund.PaymentID, refund.ID, float64(refund.Amount)/100, refund.Status)
	default:
		// Forward compatible: acknowledge events we do not act on
		utils.LogInfo("Ignoring unhandled webhook event: %s", event.Event)
		utils.Success(c, "Event ignored", nil)
		return
	}

	if err != nil {
		utils.LogError("Webhook handler failed for event %s: %v", event.Event, err)
		utils.HandleAppError(c, err)
		return
	}

	utils.Success(c, "Webhook processed", nil)
}

// handlePaymentCaptured completes a pending payment: wallet credit, ledger
// row, and status flip in one database transaction. Replays for an
// already-completed payment are no-ops, so a duplicated webhook can never
// double-credit.
func handlePaymentCaptured(orderID, paymentID string) error {
	var payment models.PaymentTransaction
	if err := config.DB.Where("razorpay_order_id = ?", orderID).First(&payment).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return utils.NotFoundError("Payment order not found")
		}
		return err
	}

	if payment.Status == models.PaymentStatusCompleted {
		utils.LogInfo("Webhook replay for completed payment %s, skipping", orderID)
		return nil
	}

	tx := config.DB.Begin()
	if tx.Error != nil {
		return tx.Error
	}

	balanceBefore, balanceAfter, err := creditWallet(tx, payment.UserID, payment.Amount)
	if err != nil {
		tx.Rollback()
		return err
	}

	transaction, err := createTransaction(tx, ledgerEntry{
		UserID:        payment.UserID,
		Type:          models.TransactionTypeCoinPurchase,
		Amount:        payment.Amount,
		BalanceBefore: balanceBefore,
		BalanceAfter:  balanceAfter,
		Description:   "Coin purchase confirmed by gateway webhook",
		Reference:     fmt.Sprintf("PURCHASE-%s", paymentID),
	})
	if err != nil {
		tx.Rollback()
		return err
	}

	// Guarded flip: a concurrent client-side verify rolls this credit back
	res := tx.Model(&models.PaymentTransaction{}).
		Where("id = ? AND status <> ?", payment.ID, models.PaymentStatusCompleted).
		Updates(map[string]interface{}{
			"razorpay_payment_id": paymentID,
			"status":              models.PaymentStatusCompleted,
			"transaction_id":      transaction.ID,
		})
	if res.Error != nil {
		tx.Rollback()
		return res.Error
	}
	if res.RowsAffected == 0 {
		tx.Rollback()
		utils.LogInfo("Payment %s completed concurrently, skipping webhook credit", orderID)
		return nil
	}

	if err := tx.Commit().Error; err != nil {
		return err
	}

	logAudit(nil, auditEntry{
		Action:     "payment_captured_webhook",
		Resource:   "payment",
		ResourceID: orderID,
		NewValues:  gin.H{"status": models.PaymentStatusCompleted, "payment_id": paymentID},
	})
	return nil
}

// handlePaymentAuthorized moves a pending payment to processing.
func handlePaymentAuthorized(orderID, paymentID string) error {
	res := config.DB.Model(&models.PaymentTransaction{}).
		Where("razorpay_order_id = ? AND status = ?", orderID, models.PaymentStatusPending).
		Updates(map[string]interface{}{
			"razorpay_payment_id": paymentID,
			"status":              models.PaymentStatusProcessing,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		utils.LogDebug("payment.authorized for %s did not apply (missing or already advanced)", orderID)
	}
	return nil
}

// handlePaymentFailed marks a non-completed payment as failed. A failure
// event arriving after completion is ignored.
func handlePaymentFailed(orderID, paymentID, reason string) error {
	res := config.DB.Model(&models.PaymentTransaction{}).
		Where("razorpay_order_id = ? AND status <> ?", orderID, models.PaymentStatusCompleted).
		Updates(map[string]interface{}{
			"razorpay_payment_id": paymentID,
			"status":              models.PaymentStatusFailed,
			"failure_reason":      reason,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected > 0 {
		logAudit(nil, auditEntry{
			Action:     "payment_failed_webhook",
			Resource:   "payment",
			ResourceID: orderID,
			NewValues:  gin.H{"status": models.PaymentStatusFailed, "reason": reason},
		})
	}
	return nil
}

// handleRefundCreated records a gateway-initiated refund. Refunds already
// recorded (by ProcessRefund or an earlier delivery of the same event) are
// skipped by refund ID.
func handleRefundCreated(paymentID, refundID string, amount float64, status string) error {
	var payment models.PaymentTransaction
	if err := config.DB.Where("razorpay_payment_id = ?", paymentID).First(&payment).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return utils.NotFoundError("Payment not found for refund")
		}
		return err
	}

	if payment.RefundID == refundID {
		utils.LogInfo("Webhook replay for refund %s, skipping", refundID)
		return nil
	}

	tx := config.DB.Begin()
	if tx.Error != nil {
		return tx.Error
	}

	// The refund_id column only holds the latest refund, so a replay of an
	// older refund gets past the check above. The ledger keeps every refund's
	// reference; an existing REFUND-<id> row means this one is already applied.
	var applied int64
	if err := tx.Model(&models.Transaction{}).
		Where("reference = ?", fmt.Sprintf("REFUND-%s", refundID)).
		Count(&applied).Error; err != nil {
		tx.Rollback()
		return err
	}
	if applied > 0 {
		tx.Rollback()
		utils.LogInfo("Refund %s already in ledger, skipping", refundID)
		return nil
	}

	balanceBefore, balanceAfter, err := debitWallet(tx, payment.UserID, amount)
	if err != nil {
		tx.Rollback()
		return err
	}

	if _, err := createTransaction(tx, ledgerEntry{
		UserID:        payment.UserID,
		Type:          models.TransactionTypeRefund,
		Amount:        amount,
		BalanceBefore: balanceBefore,
		BalanceAfter:  balanceAfter,
		Description:   "Gateway refund, coins withdrawn",
		Reference:     fmt.Sprintf("REFUND-%s", refundID),
	}); err != nil {
		tx.Rollback()
		return err
	}

	// Guarded by refund ID so a concurrent duplicate delivery cannot apply
	// the same refund twice
	res := tx.Model(&models.PaymentTransaction{}).
		Where("id = ? AND refund_id <> ?", payment.ID, refundID).
		Updates(map[string]interface{}{
			"refund_id":     refundID,
			"refund_amount": payment.RefundAmount + amount,
			"refund_status": status,
		})
	if res.Error != nil {
		tx.Rollback()
		return res.Error
	}
	if res.RowsAffected == 0 {
		tx.Rollback()
		utils.LogInfo("Refund %s recorded concurrently, skipping", refundID)
		return nil
	}

	if err := tx.Commit().Error; err != nil {
		return err
	}

	logAudit(nil, auditEntry{
		Action:     "refund_recorded_webhook",
		Resource:   "payment",
		ResourceID: paymentID,
		NewValues:  gin.H{"refund_id": refundID, "amount": amount, "status": status},
	})
	return nil
}
