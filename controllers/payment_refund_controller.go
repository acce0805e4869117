package controllers

import (
	"fmt"
	"strconv"

	"github.com/ErthaLabs/ErthaExchange/config"
	"github.com/ErthaLabs/ErthaExchange/middleware"
	"github.com/ErthaLabs/ErthaExchange/models"
	"github.com/ErthaLabs/ErthaExchange/utils"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// POST /v1/admin/payments/:id/refund
// ProcessRefund (admin) refunds part or all of a completed payment: the
// wallet debit, refund ledger row, and refund bookkeeping share one database
// transaction, with the gateway call in between so a gateway failure rolls
// everything back.
func ProcessRefund(c *gin.Context) {
	utils.LogInfo("ProcessRefund called")
	admin, ok := middleware.CurrentUser(c)
	if !ok {
		utils.Unauthorized(c, "User not found")
		return
	}

	paymentID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.BadRequest(c, "Invalid payment ID", nil)
		return
	}

	var req struct {
		Amount float64 `json:"amount"`
		Reason string  `json:"reason"`
	}
	if err := c.ShouldBindJSON(&req); err != nil && err.Error() != "EOF" {
		utils.BadRequest(c, "Invalid request", err.Error())
		return
	}

	var payment models.PaymentTransaction
	if err := config.DB.First(&payment, uint(paymentID)).Error; err != nil {
		utils.NotFound(c, "Payment not found")
		return
	}

	if payment.Status != models.PaymentStatusCompleted {
		utils.HandleAppError(c, utils.InvalidStateError("Only completed payments can be refunded"))
		return
	}

	// Default to a full refund of whatever has not been refunded yet
	amount := req.Amount
	if amount == 0 {
		amount = payment.Amount - payment.RefundAmount
	}
	if amount <= 0 || amount > payment.Amount-payment.RefundAmount {
		utils.BadRequest(c, fmt.Sprintf("Refund amount must be between 0 and %.2f", payment.Amount-payment.RefundAmount), nil)
		return
	}

	tx := config.DB.Begin()
	if tx.Error != nil {
		utils.InternalServerError(c, "Failed to begin transaction", tx.Error.Error())
		return
	}

	// Debit first: if the user has already spent the coins there is nothing
	// to claw back and the gateway must not be asked for money
	balanceBefore, balanceAfter, err := debitWallet(tx, payment.UserID, amount)
	if err != nil {
		tx.Rollback()
		utils.LogError("Refund debit failed for payment %d: %v", payment.ID, err)
		utils.HandleAppError(c, err)
		return
	}

	var refundID string
	if isDemoOrder(payment.RazorpayOrderID) {
		refundID = "demo_rfnd_" + uuid.New().String()[:8]
	} else {
		refundID, err = refundGatewayPayment(payment.RazorpayPaymentID, toMinorUnits(amount))
		if err != nil {
			tx.Rollback()
			utils.LogError("Gateway refund failed for payment %d: %v", payment.ID, err)
			utils.HandleAppError(c, err)
			return
		}
	}

	if _, err := createTransaction(tx, ledgerEntry{
		UserID:        payment.UserID,
		Type:          models.TransactionTypeRefund,
		Amount:        amount,
		BalanceBefore: balanceBefore,
		BalanceAfter:  balanceAfter,
		Description:   fmt.Sprintf("Refund of payment %s", payment.RazorpayOrderID),
		Reference:     fmt.Sprintf("REFUND-%s", refundID),
		Metadata:      marshalJSON(gin.H{"reason": req.Reason, "admin_id": admin.ID}),
	}); err != nil {
		tx.Rollback()
		utils.InternalServerError(c, "Failed to create refund transaction", err.Error())
		return
	}

	if err := tx.Model(&payment).Updates(map[string]interface{}{
		"refund_id":     refundID,
		"refund_amount": payment.RefundAmount + amount,
		"refund_status": "processed",
	}).Error; err != nil {
		tx.Rollback()
		utils.InternalServerError(c, "Failed to update payment refund fields", err.Error())
		return
	}

	if err := tx.Commit().Error; err != nil {
		utils.InternalServerError(c, "Failed to commit refund", err.Error())
		return
	}

	logAudit(c, auditEntry{
		ActorID:    &admin.ID,
		ActorRole:  admin.Role,
		Action:     "payment_refunded",
		Resource:   "payment",
		ResourceID: payment.RazorpayOrderID,
		OldValues:  gin.H{"refund_amount": payment.RefundAmount},
		NewValues:  gin.H{"refund_id": refundID, "refund_amount": payment.RefundAmount + amount, "reason": req.Reason},
	})

	utils.LogInfo("Refund %s processed for payment %d by admin %d", refundID, payment.ID, admin.ID)
	utils.Success(c, "Refund processed successfully", gin.H{
		"refund_id":           refundID,
		"refund_amount":       fmt.Sprintf("%.2f", amount),
		"wallet_balance":      fmt.Sprintf("%.2f", balanceAfter),
		"payment_id":          payment.ID,
		"razorpay_payment_id": payment.RazorpayPaymentID,
	})
}
