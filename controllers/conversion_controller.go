package controllers

import (
	"fmt"
	"strconv"
	"time"

	"github.com/ErthaLabs/ErthaExchange/config"
	"github.com/ErthaLabs/ErthaExchange/middleware"
	"github.com/ErthaLabs/ErthaExchange/models"
	"github.com/ErthaLabs/ErthaExchange/utils"
	"github.com/gin-gonic/gin"
)

// POST /v1/conversions
// CreateConversionRequest records an organization's request to cash out coin
// balance. The wallet is only checked here, not debited: the debit happens
// at approval time.
func CreateConversionRequest(c *gin.Context) {
	utils.LogInfo("CreateConversionRequest called")
	org, ok := middleware.CurrentUser(c)
	if !ok {
		utils.Unauthorized(c, "User not found")
		return
	}

	var req struct {
		Amount        float64 `json:"amount" binding:"required"`
		AccountName   string  `json:"account_name" binding:"required"`
		AccountNumber string  `json:"account_number" binding:"required"`
		IFSCCode      string  `json:"ifsc_code" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError("Invalid request for org ID: %d: %v", org.ID, err)
		utils.BadRequest(c, "Invalid request. amount and bank details are required", err.Error())
		return
	}

	if valid, msg := utils.ValidateAmount(req.Amount); !valid {
		utils.BadRequest(c, msg, nil)
		return
	}

	if org.WalletBalance < req.Amount {
		utils.LogError("Org %d requested conversion of %.2f with balance %.2f", org.ID, req.Amount, org.WalletBalance)
		utils.HandleAppError(c, utils.InsufficientBalanceError(utils.ErrInsufficientBalance))
		return
	}

	request := models.ConversionRequest{
		OrganizationID: org.ID,
		Amount:         req.Amount,
		AccountName:    req.AccountName,
		AccountNumber:  req.AccountNumber,
		IFSCCode:       req.IFSCCode,
		Status:         models.ConversionStatusPending,
	}
	if err := config.DB.Create(&request).Error; err != nil {
		utils.LogError("Failed to create conversion request for org %d: %v", org.ID, err)
		utils.InternalServerError(c, "Failed to create conversion request", err.Error())
		return
	}

	logAudit(c, auditEntry{
		ActorID:    &org.ID,
		ActorRole:  org.Role,
		Action:     "conversion_requested",
		Resource:   "conversion",
		ResourceID: strconv.FormatUint(uint64(request.ID), 10),
		NewValues:  gin.H{"amount": req.Amount, "status": models.ConversionStatusPending},
	})

	utils.Created(c, "Conversion request submitted for admin approval", gin.H{
		"request": gin.H{
			"id":     request.ID,
			"amount": fmt.Sprintf("%.2f", request.Amount),
			"status": request.Status,
		},
	})
}

// GET /v1/conversions
// ListConversionRequests shows an organization its own requests; admins see
// all, optionally filtered by status.
func ListConversionRequests(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		utils.Unauthorized(c, "User not found")
		return
	}

	pagination := utils.NewPagination(c)
	query := config.DB.Model(&models.ConversionRequest{})
	if user.Role != models.RoleAdmin {
		query = query.Where("organization_id = ?", user.ID)
	}
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		utils.InternalServerError(c, "Failed to count conversion requests", err.Error())
		return
	}

	var requests []models.ConversionRequest
	if err := query.Order("created_at DESC").
		Limit(pagination.Limit).Offset(pagination.Offset).
		Find(&requests).Error; err != nil {
		utils.InternalServerError(c, "Failed to get conversion requests", err.Error())
		return
	}

	utils.SuccessWithPagination(c, "Conversion requests retrieved", requests, total, pagination.Page, pagination.Limit)
}

// PUT /v1/admin/conversions/:id/approve
// ApproveConversionRequest (admin) flips a pending request to approved and
// debits the organization wallet in the same database transaction. The
// balance is re-checked at approval time by the conditional debit: if the
// organization spent the coins since requesting, the approval fails and the
// request stays pending.
func ApproveConversionRequest(c *gin.Context) {
	utils.LogInfo("ApproveConversionRequest called")
	admin, ok := middleware.CurrentUser(c)
	if !ok {
		utils.Unauthorized(c, "User not found")
		return
	}

	requestID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.BadRequest(c, "Invalid request ID", nil)
		return
	}

	var req struct {
		TransactionRef string `json:"transaction_ref"`
	}
	if err := c.ShouldBindJSON(&req); err != nil && err.Error() != "EOF" {
		utils.BadRequest(c, "Invalid request", err.Error())
		return
	}

	var request models.ConversionRequest
	if err := config.DB.First(&request, uint(requestID)).Error; err != nil {
		utils.NotFound(c, "Conversion request not found")
		return
	}

	tx := config.DB.Begin()
	if tx.Error != nil {
		utils.InternalServerError(c, "Failed to begin transaction", tx.Error.Error())
		return
	}

	// The status guard is a conditional update so two concurrent approvals
	// cannot both pass
	now := time.Now()
	res := tx.Model(&models.ConversionRequest{}).
		Where("id = ? AND status = ?", request.ID, models.ConversionStatusPending).
		Updates(map[string]interface{}{
			"status":          models.ConversionStatusApproved,
			"processed_by":    admin.ID,
			"processed_at":    now,
			"transaction_ref": req.TransactionRef,
		})
	if res.Error != nil {
		tx.Rollback()
		utils.InternalServerError(c, "Failed to update conversion request", res.Error.Error())
		return
	}
	if res.RowsAffected == 0 {
		tx.Rollback()
		utils.HandleAppError(c, utils.InvalidStateError("Conversion request is not pending"))
		return
	}

	balanceBefore, balanceAfter, err := debitWallet(tx, request.OrganizationID, request.Amount)
	if err != nil {
		tx.Rollback()
		utils.LogError("Approval debit failed for request %d: %v", request.ID, err)
		utils.HandleAppError(c, err)
		return
	}

	if _, err := createTransaction(tx, ledgerEntry{
		UserID:        request.OrganizationID,
		Type:          models.TransactionTypeCoinConversion,
		Amount:        request.Amount,
		BalanceBefore: balanceBefore,
		BalanceAfter:  balanceAfter,
		Description:   fmt.Sprintf("Coin conversion request #%d approved", request.ID),
		Reference:     fmt.Sprintf("CONVERT-%d", request.ID),
		Metadata:      marshalJSON(gin.H{"admin_id": admin.ID, "transaction_ref": req.TransactionRef}),
	}); err != nil {
		tx.Rollback()
		utils.InternalServerError(c, "Failed to create conversion transaction", err.Error())
		return
	}

	if err := tx.Commit().Error; err != nil {
		utils.InternalServerError(c, "Failed to commit approval", err.Error())
		return
	}

	logAudit(c, auditEntry{
		ActorID:    &admin.ID,
		ActorRole:  admin.Role,
		Action:     "conversion_approved",
		Resource:   "conversion",
		ResourceID: strconv.FormatUint(uint64(request.ID), 10),
		OldValues:  gin.H{"status": models.ConversionStatusPending},
		NewValues:  gin.H{"status": models.ConversionStatusApproved, "balance_after": balanceAfter},
	})

	// Notify the organization, best effort
	var org models.User
	if err := config.DB.First(&org, request.OrganizationID).Error; err == nil {
		if err := utils.SendConversionDecision(org.Email, request.Amount, true, ""); err != nil {
			utils.LogError("Failed to send approval email to %s: %v", org.Email, err)
		}
	}

	utils.LogInfo("Conversion request %d approved by admin %d", request.ID, admin.ID)
	utils.Success(c, "Conversion request approved", gin.H{
		"request": gin.H{
			"id":           request.ID,
			"status":       models.ConversionStatusApproved,
			"amount":       fmt.Sprintf("%.2f", request.Amount),
			"processed_by": admin.ID,
			"processed_at": now,
		},
		"organization_balance": fmt.Sprintf("%.2f", balanceAfter),
	})
}

// PUT /v1/admin/conversions/:id/reject
// RejectConversionRequest (admin) flips a pending request to rejected. No
// wallet effect; a reason is required.
func RejectConversionRequest(c *gin.Context) {
	utils.LogInfo("RejectConversionRequest called")
	admin, ok := middleware.CurrentUser(c)
	if !ok {
		utils.Unauthorized(c, "User not found")
		return
	}

	requestID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.BadRequest(c, "Invalid request ID", nil)
		return
	}

	var req struct {
		Reason string `json:"reason" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Reason is required", err.Error())
		return
	}

	var request models.ConversionRequest
	if err := config.DB.First(&request, uint(requestID)).Error; err != nil {
		utils.NotFound(c, "Conversion request not found")
		return
	}

	now := time.Now()
	res := config.DB.Model(&models.ConversionRequest{}).
		Where("id = ? AND status = ?", request.ID, models.ConversionStatusPending).
		Updates(map[string]interface{}{
			"status":       models.ConversionStatusRejected,
			"processed_by": admin.ID,
			"processed_at": now,
			"reason":       req.Reason,
		})
	if res.Error != nil {
		utils.InternalServerError(c, "Failed to update conversion request", res.Error.Error())
		return
	}
	if res.RowsAffected == 0 {
		utils.HandleAppError(c, utils.InvalidStateError("Conversion request is not pending"))
		return
	}

	logAudit(c, auditEntry{
		ActorID:    &admin.ID,
		ActorRole:  admin.Role,
		Action:     "conversion_rejected",
		Resource:   "conversion",
		ResourceID: strconv.FormatUint(uint64(request.ID), 10),
		OldValues:  gin.H{"status": models.ConversionStatusPending},
		NewValues:  gin.H{"status": models.ConversionStatusRejected, "reason": req.Reason},
	})

	var org models.User
	if err := config.DB.First(&org, request.OrganizationID).Error; err == nil {
		if err := utils.SendConversionDecision(org.Email, request.Amount, false, req.Reason); err != nil {
			utils.LogError("Failed to send rejection email to %s: %v", org.Email, err)
		}
	}

	utils.LogInfo("Conversion request %d rejected by admin %d", request.ID, admin.ID)
	utils.Success(c, "Conversion request rejected", gin.H{
		"request": gin.H{
			"id":     request.ID,
			"status": models.ConversionStatusRejected,
			"reason": req.Reason,
		},
	})
}
