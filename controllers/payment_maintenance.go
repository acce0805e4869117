package controllers

import (
	"strconv"
	"time"

	"github.com/ErthaLabs/ErthaExchange/config"
	"github.com/ErthaLabs/ErthaExchange/models"
	"github.com/ErthaLabs/ErthaExchange/utils"
	"github.com/gin-gonic/gin"
)

// ExpireStalePaymentOrders marks pending gateway orders older than the stale
// window as failed. Run from the scheduler; completed and already-failed
// orders are never touched.
func ExpireStalePaymentOrders() {
	cutoff := time.Now().Add(-time.Duration(utils.StalePaymentOrderHours) * time.Hour)

	var stale []models.PaymentTransaction
	if err := config.DB.Where("status = ? AND created_at < ?", models.PaymentStatusPending, cutoff).
		Find(&stale).Error; err != nil {
		utils.LogError("Stale order sweep failed to load orders: %v", err)
		return
	}
	if len(stale) == 0 {
		return
	}

	expired := 0
	for _, payment := range stale {
		result := config.DB.Model(&models.PaymentTransaction{}).
			Where("id = ? AND status = ?", payment.ID, models.PaymentStatusPending).
			Updates(map[string]interface{}{
				"status":         models.PaymentStatusFailed,
				"failure_reason": "expired: no payment received",
			})
		if result.Error != nil {
			utils.LogError("Failed to expire payment order %d: %v", payment.ID, result.Error)
			continue
		}
		if result.RowsAffected == 0 {
			// Completed or failed between the sweep query and the update
			continue
		}
		expired++

		logAudit(nil, auditEntry{
			Action:     "payment_order_expired",
			Resource:   "payment",
			ResourceID: strconv.FormatUint(uint64(payment.ID), 10),
			OldValues:  gin.H{"status": models.PaymentStatusPending},
			NewValues:  gin.H{"status": models.PaymentStatusFailed, "order_id": payment.RazorpayOrderID},
		})
	}

	utils.LogInfo("Stale order sweep expired %d of %d candidate orders", expired, len(stale))
}
