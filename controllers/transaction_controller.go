package controllers

import (
	"strconv"
	"time"

	"github.com/ErthaLabs/ErthaExchange/config"
	"github.com/ErthaLabs/ErthaExchange/middleware"
	"github.com/ErthaLabs/ErthaExchange/models"
	"github.com/ErthaLabs/ErthaExchange/utils"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// transactionFilters applies the query-string filters shared by the user and
// admin transaction listings. All filters are conjunctive.
func transactionFilters(c *gin.Context, query *gorm.DB) (*gorm.DB, error) {
	if txnType := c.Query("type"); txnType != "" {
		query = query.Where("type = ?", txnType)
	}
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	if serviceID := c.Query("service_id"); serviceID != "" {
		id, err := strconv.ParseUint(serviceID, 10, 32)
		if err != nil {
			return nil, utils.WrapError(err, "invalid service_id")
		}
		query = query.Where("service_id = ?", uint(id))
	}
	if from := c.Query("from"); from != "" {
		t, err := time.Parse("2006-01-02", from)
		if err != nil {
			return nil, utils.WrapError(err, "invalid from date, expected YYYY-MM-DD")
		}
		query = query.Where("created_at >= ?", t)
	}
	if to := c.Query("to"); to != "" {
		t, err := time.Parse("2006-01-02", to)
		if err != nil {
			return nil, utils.WrapError(err, "invalid to date, expected YYYY-MM-DD")
		}
		// inclusive end of day
		query = query.Where("created_at < ?", t.AddDate(0, 0, 1))
	}
	return query, nil
}

// GET /v1/transactions
// ListTransactions returns the caller's ledger entries, newest first.
func ListTransactions(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		utils.Unauthorized(c, "User not found")
		return
	}

	pagination := utils.NewPagination(c)
	query := config.DB.Model(&models.Transaction{}).Where("user_id = ?", user.ID)

	query, err := transactionFilters(c, query)
	if err != nil {
		utils.BadRequest(c, err.Error(), nil)
		return
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		utils.InternalServerError(c, "Failed to count transactions", err.Error())
		return
	}

	var transactions []models.Transaction
	if err := query.Order("created_at DESC").
		Limit(pagination.Limit).Offset(pagination.Offset).
		Find(&transactions).Error; err != nil {
		utils.InternalServerError(c, "Failed to get transactions", err.Error())
		return
	}

	utils.SuccessWithPagination(c, "Transactions retrieved", transactions, total, pagination.Page, pagination.Limit)
}

// GET /v1/transactions/:id
func GetTransaction(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		utils.Unauthorized(c, "User not found")
		return
	}

	txnID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.BadRequest(c, "Invalid transaction ID", nil)
		return
	}

	var txn models.Transaction
	if err := config.DB.First(&txn, uint(txnID)).Error; err != nil {
		utils.NotFound(c, "Transaction not found")
		return
	}

	if txn.UserID != user.ID && user.Role != models.RoleAdmin {
		utils.Forbidden(c, "You do not have access to this transaction")
		return
	}

	utils.Success(c, "Transaction retrieved", gin.H{"transaction": txn})
}

// GET /v1/admin/transactions
// AdminListTransactions lists every user's ledger entries with the same
// filter set plus an optional user_id filter.
func AdminListTransactions(c *gin.Context) {
	pagination := utils.NewPagination(c)
	query := config.DB.Model(&models.Transaction{})

	if userID := c.Query("user_id"); userID != "" {
		query = query.Where("user_id = ?", userID)
	}

	query, err := transactionFilters(c, query)
	if err != nil {
		utils.BadRequest(c, err.Error(), nil)
		return
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		utils.InternalServerError(c, "Failed to count transactions", err.Error())
		return
	}

	var transactions []models.Transaction
	if err := query.Order("created_at DESC").
		Limit(pagination.Limit).Offset(pagination.Offset).
		Find(&transactions).Error; err != nil {
		utils.InternalServerError(c, "Failed to get transactions", err.Error())
		return
	}

	utils.SuccessWithPagination(c, "Transactions retrieved", transactions, total, pagination.Page, pagination.Limit)
}
