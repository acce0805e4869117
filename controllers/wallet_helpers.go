package controllers

import (
	"errors"
	"time"

	"github.com/ErthaLabs/ErthaExchange/models"
	"github.com/ErthaLabs/ErthaExchange/utils"
	"gorm.io/gorm"
)

// creditWallet adds amount to the user's wallet inside tx and returns the
// balance before and after the update.
func creditWallet(tx *gorm.DB, userID uint, amount float64) (float64, float64, error) {
	res := tx.Model(&models.User{}).
		Where("id = ?", userID).
		Updates(map[string]interface{}{
			"wallet_balance": gorm.Expr("wallet_balance + ?", amount),
			"updated_at":     time.Now(),
		})
	if res.Error != nil {
		return 0, 0, res.Error
	}
	if res.RowsAffected == 0 {
		return 0, 0, utils.NotFoundError("User not found")
	}

	var user models.User
	if err := tx.First(&user, userID).Error; err != nil {
		return 0, 0, err
	}
	return user.WalletBalance - amount, user.WalletBalance, nil
}

// debitWallet subtracts amount from the user's wallet inside tx. The balance
// check and the write are a single conditional UPDATE, so two concurrent
// debits can never both pass the check. Returns the balance before and after.
func debitWallet(tx *gorm.DB, userID uint, amount float64) (float64, float64, error) {
	res := tx.Model(&models.User{}).
		Where("id = ? AND wallet_balance >= ?", userID, amount).
		Updates(map[string]interface{}{
			"wallet_balance": gorm.Expr("wallet_balance - ?", amount),
			"updated_at":     time.Now(),
		})
	if res.Error != nil {
		return 0, 0, res.Error
	}
	if res.RowsAffected == 0 {
		// Either the user is missing or the balance is short
		var user models.User
		if err := tx.First(&user, userID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return 0, 0, utils.NotFoundError("User not found")
			}
			return 0, 0, err
		}
		return 0, 0, utils.InsufficientBalanceError(utils.ErrInsufficientBalance)
	}

	var user models.User
	if err := tx.First(&user, userID).Error; err != nil {
		return 0, 0, err
	}
	return user.WalletBalance + amount, user.WalletBalance, nil
}
