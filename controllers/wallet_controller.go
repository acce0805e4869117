package controllers

import (
	"github.com/ErthaLabs/ErthaExchange/config"
	"github.com/ErthaLabs/ErthaExchange/middleware"
	"github.com/ErthaLabs/ErthaExchange/models"
	"github.com/ErthaLabs/ErthaExchange/utils"
	"github.com/gin-gonic/gin"
)

// GET /v1/wallet
// GetWalletBalance re-reads the balance from the database rather than trusting
// the value loaded by the auth middleware.
func GetWalletBalance(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		utils.Unauthorized(c, "User not found")
		return
	}

	var fresh models.User
	if err := config.DB.Select("wallet_balance").First(&fresh, user.ID).Error; err != nil {
		utils.LogError("Failed to load wallet for user %d: %v", user.ID, err)
		utils.InternalServerError(c, "Failed to get wallet balance", err.Error())
		return
	}

	var lastTxn models.Transaction
	last := gin.H{}
	if err := config.DB.Where("user_id = ?", user.ID).
		Order("created_at DESC").First(&lastTxn).Error; err == nil {
		last = gin.H{
			"type":       lastTxn.Type,
			"amount":     lastTxn.Amount,
			"reference":  lastTxn.Reference,
			"created_at": lastTxn.CreatedAt,
		}
	}

	utils.Success(c, "Wallet balance retrieved", gin.H{
		"wallet_balance":   fresh.WalletBalance,
		"last_transaction": last,
	})
}
