package controllers

import (
	"fmt"
	"os"
	"time"

	"github.com/ErthaLabs/ErthaExchange/config"
	"github.com/ErthaLabs/ErthaExchange/middleware"
	"github.com/ErthaLabs/ErthaExchange/models"
	"github.com/ErthaLabs/ErthaExchange/utils"
	"github.com/gin-gonic/gin"
)

// POST /v1/payments/orders
// CreatePaymentOrder creates a gateway order for a coin purchase and records
// a pending PaymentTransaction keyed by the gateway order ID.
func CreatePaymentOrder(c *gin.Context) {
	utils.LogInfo("CreatePaymentOrder called")
	user, ok := middleware.CurrentUser(c)
	if !ok {
		utils.Unauthorized(c, "User not found")
		return
	}

	var req struct {
		Amount       float64 `json:"amount" binding:"required"`
		Purpose      string  `json:"purpose"`
		UserLocation string  `json:"user_location"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError("Invalid request for user ID: %d: %v", user.ID, err)
		utils.BadRequest(c, "Invalid request. amount is required", err.Error())
		return
	}

	if valid, msg := utils.ValidateAmount(req.Amount); !valid {
		utils.BadRequest(c, msg, nil)
		return
	}

	minAmount, maxAmount, currency := purchaseBounds(req.UserLocation)
	if req.Amount < minAmount || req.Amount > maxAmount {
		utils.BadRequest(c, fmt.Sprintf("Amount must be between %.2f and %.2f %s", minAmount, maxAmount, currency), nil)
		return
	}

	purpose := req.Purpose
	if purpose == "" {
		purpose = "coin_purchase"
	}

	// Gateway expects the amount in minor units
	amountMinor := toMinorUnits(req.Amount)
	receipt := fmt.Sprintf("coin_%d_%s", user.ID, time.Now().Format("20060102150405"))

	orderID, demo, err := createGatewayOrder(amountMinor, currency, receipt)
	if err != nil {
		utils.LogError("Failed to create gateway order for user ID: %d: %v", user.ID, err)
		utils.HandleAppError(c, err)
		return
	}

	payment := models.PaymentTransaction{
		UserID:          user.ID,
		RazorpayOrderID: orderID,
		Amount:          req.Amount,
		Currency:        currency,
		Purpose:         purpose,
		Status:          models.PaymentStatusPending,
	}
	if err := config.DB.Create(&payment).Error; err != nil {
		utils.LogError("Failed to record payment order for user ID: %d: %v", user.ID, err)
		utils.InternalServerError(c, "Failed to record payment order", err.Error())
		return
	}

	logAudit(c, auditEntry{
		ActorID:    &user.ID,
		ActorRole:  user.Role,
		Action:     "payment_order_created",
		Resource:   "payment",
		ResourceID: orderID,
		NewValues:  gin.H{"amount": req.Amount, "currency": currency, "purpose": purpose},
	})

	utils.Created(c, "Payment order created successfully", gin.H{
		"razorpay_order_id": orderID,
		"amount":            fmt.Sprintf("%.2f", req.Amount),
		"amount_minor":      amountMinor,
		"currency":          currency,
		"key":               os.Getenv("RAZORPAY_KEY"),
		"demo_mode":         demo,
		"user": gin.H{
			"name":  user.Username,
			"email": user.Email,
		},
	})
}

// POST /v1/payments/verify
// VerifyPayment checks the client-supplied gateway signature and, on
// success, completes the payment: marks the PaymentTransaction completed,
// credits the wallet, and writes the coin_purchase ledger row in one
// database transaction.
func VerifyPayment(c *gin.Context) {
	utils.LogInfo("VerifyPayment called")
	user, ok := middleware.CurrentUser(c)
	if !ok {
		utils.Unauthorized(c, "User not found")
		return
	}

	var req struct {
		RazorpayOrderID   string `json:"razorpay_order_id" binding:"required"`
		RazorpayPaymentID string `json:"razorpay_payment_id" binding:"required"`
		RazorpaySignature string `json:"razorpay_signature" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError("Invalid request for user ID: %d: %v", user.ID, err)
		utils.BadRequest(c, "Invalid request", err.Error())
		return
	}

	// The lookup comes first: a wrong order ID must fail before any
	// mutation is attempted
	var payment models.PaymentTransaction
	if err := config.DB.Where("razorpay_order_id = ?", req.RazorpayOrderID).First(&payment).Error; err != nil {
		utils.LogError("Payment order not found: %s", req.RazorpayOrderID)
		utils.NotFound(c, "Payment order not found")
		return
	}

	if payment.UserID != user.ID {
		utils.LogError("User %d attempted to verify payment of user %d", user.ID, payment.UserID)
		utils.Forbidden(c, "You do not have access to this payment")
		return
	}

	// Replay of an already-completed verification is a no-op
	if payment.Status == models.PaymentStatusCompleted {
		utils.LogInfo("Payment %s already completed, skipping", payment.RazorpayOrderID)
		utils.Success(c, "Payment already verified", gin.H{
			"razorpay_order_id": payment.RazorpayOrderID,
			"status":            payment.Status,
		})
		return
	}

	if !utils.VerifyPaymentSignature(req.RazorpayOrderID, req.RazorpayPaymentID, req.RazorpaySignature, os.Getenv("RAZORPAY_SECRET")) {
		utils.LogError("Payment signature mismatch for order: %s", req.RazorpayOrderID)
		utils.HandleAppError(c, utils.InvalidSignatureError("Payment verification failed"))
		return
	}
	utils.LogDebug("Payment signature verified for order: %s", req.RazorpayOrderID)

	// Confirm capture with the gateway; demo orders have nothing to fetch
	if !isDemoOrder(payment.RazorpayOrderID) {
		details, err := fetchGatewayPayment(req.RazorpayPaymentID)
		if err != nil {
			utils.LogError("Failed to fetch payment %s: %v", req.RazorpayPaymentID, err)
			utils.HandleAppError(c, err)
			return
		}
		status := fmt.Sprintf("%v", details["status"])
		if status != "captured" && status != "authorized" {
			utils.LogError("Payment %s not captured, gateway status: %s", req.RazorpayPaymentID, status)
			utils.BadRequest(c, "Payment not captured by gateway", gin.H{"gateway_status": status})
			return
		}
	}

	tx := config.DB.Begin()
	if tx.Error != nil {
		utils.InternalServerError(c, "Failed to begin transaction", tx.Error.Error())
		return
	}

	balanceBefore, balanceAfter, err := creditWallet(tx, user.ID, payment.Amount)
	if err != nil {
		tx.Rollback()
		utils.LogError("Failed to credit wallet for user ID: %d: %v", user.ID, err)
		utils.HandleAppError(c, err)
		return
	}

	reference := fmt.Sprintf("PURCHASE-%s", req.RazorpayPaymentID)
	transaction, err := createTransaction(tx, ledgerEntry{
		UserID:        user.ID,
		Type:          models.TransactionTypeCoinPurchase,
		Amount:        payment.Amount,
		BalanceBefore: balanceBefore,
		BalanceAfter:  balanceAfter,
		Description:   "Coin purchase via payment gateway",
		Reference:     reference,
	})
	if err != nil {
		tx.Rollback()
		utils.LogError("Failed to create transaction for order %s: %v", payment.RazorpayOrderID, err)
		utils.InternalServerError(c, "Failed to create transaction", err.Error())
		return
	}

	// Guarded flip: if the webhook completed this payment first, roll the
	// credit back instead of applying it twice
	res := tx.Model(&models.PaymentTransaction{}).
		Where("id = ? AND status <> ?", payment.ID, models.PaymentStatusCompleted).
		Updates(map[string]interface{}{
			"razorpay_payment_id": req.RazorpayPaymentID,
			"status":              models.PaymentStatusCompleted,
			"transaction_id":      transaction.ID,
		})
	if res.Error != nil {
		tx.Rollback()
		utils.LogError("Failed to update payment %s: %v", payment.RazorpayOrderID, res.Error)
		utils.InternalServerError(c, "Failed to update payment", res.Error.Error())
		return
	}
	if res.RowsAffected == 0 {
		tx.Rollback()
		utils.LogInfo("Payment %s completed concurrently, skipping", payment.RazorpayOrderID)
		utils.Success(c, "Payment already verified", gin.H{
			"razorpay_order_id": payment.RazorpayOrderID,
			"status":            models.PaymentStatusCompleted,
		})
		return
	}

	if err := tx.Commit().Error; err != nil {
		utils.LogError("Failed to commit payment verification for order %s: %v", payment.RazorpayOrderID, err)
		utils.InternalServerError(c, "Failed to commit transaction", err.Error())
		return
	}

	logAudit(c, auditEntry{
		ActorID:    &user.ID,
		ActorRole:  user.Role,
		Action:     "payment_completed",
		Resource:   "payment",
		ResourceID: payment.RazorpayOrderID,
		OldValues:  gin.H{"status": models.PaymentStatusPending},
		NewValues:  gin.H{"status": models.PaymentStatusCompleted, "balance_after": balanceAfter},
	})

	if err := utils.SendPaymentReceipt(user.Email, payment.Amount, balanceAfter, reference); err != nil {
		utils.LogError("Failed to send payment receipt to %s: %v", user.Email, err)
	}

	utils.LogInfo("Payment completed for order %s, user ID: %d", payment.RazorpayOrderID, user.ID)
	utils.Success(c, "Payment verified and coins added to wallet", gin.H{
		"coins_added":    fmt.Sprintf("%.2f", payment.Amount),
		"wallet_balance": fmt.Sprintf("%.2f", balanceAfter),
		"transaction_id": transaction.ID,
		"reference":      reference,
	})
}
