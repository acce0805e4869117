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
	"gorm.io/gorm"
)

// POST /v1/services/:id/book
// BookService spends coins on a service. The debit, the ledger entry, the
// booking row and the service counter all commit in one transaction, with the
// debit guarded by the balance so concurrent bookings cannot overdraw.
func BookService(c *gin.Context) {
	utils.LogInfo("BookService called")
	user, ok := middleware.CurrentUser(c)
	if !ok {
		utils.Unauthorized(c, "User not found")
		return
	}

	serviceID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.BadRequest(c, "Invalid service ID", nil)
		return
	}

	var req struct {
		Notes string `json:"notes"`
	}
	if err := c.ShouldBindJSON(&req); err != nil && err.Error() != "EOF" {
		utils.BadRequest(c, "Invalid request", err.Error())
		return
	}

	var service models.Service
	if err := config.DB.First(&service, uint(serviceID)).Error; err != nil {
		utils.NotFound(c, "Service not found")
		return
	}
	if service.Status != models.ServiceStatusActive {
		utils.LogError("Booking attempt on %s service %d by user %d", service.Status, service.ID, user.ID)
		utils.HandleAppError(c, utils.InvalidStateError("Service is not available for booking"))
		return
	}
	if service.OrganizationID == user.ID {
		utils.BadRequest(c, "You cannot book your own service", nil)
		return
	}

	reference := fmt.Sprintf("BOOK-%s", uuid.New().String())
	sID := service.ID

	var booking models.ServiceBooking
	tx := config.DB.Begin()
	if tx.Error != nil {
		utils.InternalServerError(c, "Failed to start transaction", tx.Error.Error())
		return
	}

	before, after, err := debitWallet(tx, user.ID, service.Price)
	if err != nil {
		tx.Rollback()
		utils.LogError("Booking debit failed for user %d, service %d: %v", user.ID, service.ID, err)
		utils.HandleAppError(c, err)
		return
	}

	txn, err := createTransaction(tx, ledgerEntry{
		UserID:        user.ID,
		ServiceID:     &sID,
		Type:          models.TransactionTypeServiceBooking,
		Amount:        service.Price,
		BalanceBefore: before,
		BalanceAfter:  after,
		Description:   fmt.Sprintf("Booked service: %s", service.Name),
		Reference:     reference,
		Metadata:      marshalJSON(gin.H{"organization_id": service.OrganizationID, "notes": req.Notes}),
	})
	if err != nil {
		tx.Rollback()
		utils.InternalServerError(c, "Failed to record booking transaction", err.Error())
		return
	}

	booking = models.ServiceBooking{
		UserID:        user.ID,
		ServiceID:     service.ID,
		TransactionID: txn.ID,
		Amount:        service.Price,
		Status:        models.BookingStatusConfirmed,
		Reference:     reference,
		Notes:         req.Notes,
	}
	if err := tx.Create(&booking).Error; err != nil {
		tx.Rollback()
		utils.InternalServerError(c, "Failed to create booking", err.Error())
		return
	}

	if err := tx.Model(&models.Service{}).Where("id = ?", service.ID).
		Update("booking_count", gorm.Expr("booking_count + ?", 1)).Error; err != nil {
		tx.Rollback()
		utils.InternalServerError(c, "Failed to update booking count", err.Error())
		return
	}

	if err := tx.Commit().Error; err != nil {
		utils.InternalServerError(c, "Failed to complete booking", err.Error())
		return
	}

	logAudit(c, auditEntry{
		ActorID:    &user.ID,
		ActorRole:  user.Role,
		Action:     "service_booked",
		Resource:   "booking",
		ResourceID: strconv.FormatUint(uint64(booking.ID), 10),
		NewValues:  gin.H{"service_id": service.ID, "amount": service.Price, "reference": reference},
	})

	utils.Created(c, "Service booked successfully", gin.H{
		"booking":        booking,
		"wallet_balance": after,
	})
}

// GET /v1/bookings
// ListBookings returns the caller's bookings. Organizations see bookings made
// against their services instead.
func ListBookings(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		utils.Unauthorized(c, "User not found")
		return
	}

	pagination := utils.NewPagination(c)
	query := config.DB.Model(&models.ServiceBooking{})

	if user.Role == models.RoleOrg {
		query = query.Joins("JOIN services ON services.id = service_bookings.service_id").
			Where("services.organization_id = ?", user.ID)
	} else {
		query = query.Where("user_id = ?", user.ID)
	}

	if status := c.Query("status"); status != "" {
		query = query.Where("service_bookings.status = ?", status)
	}
	if serviceID := c.Query("service_id"); serviceID != "" {
		query = query.Where("service_bookings.service_id = ?", serviceID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		utils.InternalServerError(c, "Failed to count bookings", err.Error())
		return
	}

	var bookings []models.ServiceBooking
	if err := query.Order("service_bookings.created_at DESC").
		Limit(pagination.Limit).Offset(pagination.Offset).
		Find(&bookings).Error; err != nil {
		utils.InternalServerError(c, "Failed to get bookings", err.Error())
		return
	}

	utils.SuccessWithPagination(c, "Bookings retrieved", bookings, total, pagination.Page, pagination.Limit)
}

// GET /v1/bookings/:id
func GetBooking(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		utils.Unauthorized(c, "User not found")
		return
	}

	bookingID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.BadRequest(c, "Invalid booking ID", nil)
		return
	}

	var booking models.ServiceBooking
	if err := config.DB.First(&booking, uint(bookingID)).Error; err != nil {
		utils.NotFound(c, "Booking not found")
		return
	}

	if booking.UserID != user.ID && user.Role != models.RoleAdmin {
		var service models.Service
		if err := config.DB.First(&service, booking.ServiceID).Error; err != nil ||
			service.OrganizationID != user.ID {
			utils.Forbidden(c, "You do not have access to this booking")
			return
		}
	}

	utils.Success(c, "Booking retrieved", gin.H{"booking": booking})
}
