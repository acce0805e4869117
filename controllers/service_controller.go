package controllers

import (
	"fmt"
	"strconv"

	"github.com/ErthaLabs/ErthaExchange/config"
	"github.com/ErthaLabs/ErthaExchange/middleware"
	"github.com/ErthaLabs/ErthaExchange/models"
	"github.com/ErthaLabs/ErthaExchange/utils"
	"github.com/gin-gonic/gin"
)

// POST /v1/services
// CreateService lets an organization list a new offering. Services start as
// pending until an admin activates them.
func CreateService(c *gin.Context) {
	utils.LogInfo("CreateService called")
	org, ok := middleware.CurrentUser(c)
	if !ok {
		utils.Unauthorized(c, "User not found")
		return
	}

	var req struct {
		Name        string  `json:"name" binding:"required"`
		Description string  `json:"description"`
		Category    string  `json:"category"`
		Price       float64 `json:"price" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError("Invalid request for org ID: %d: %v", org.ID, err)
		utils.BadRequest(c, "Invalid request. name and price are required", err.Error())
		return
	}

	if valid, msg := utils.ValidateAmount(req.Price); !valid {
		utils.BadRequest(c, msg, nil)
		return
	}

	service := models.Service{
		OrganizationID: org.ID,
		Name:           req.Name,
		Description:    req.Description,
		Category:       req.Category,
		Price:          req.Price,
		Status:         models.ServiceStatusPending,
	}
	if err := config.DB.Create(&service).Error; err != nil {
		utils.LogError("Failed to create service for org %d: %v", org.ID, err)
		utils.InternalServerError(c, "Failed to create service", err.Error())
		return
	}

	logAudit(c, auditEntry{
		ActorID:    &org.ID,
		ActorRole:  org.Role,
		Action:     "service_created",
		Resource:   "service",
		ResourceID: strconv.FormatUint(uint64(service.ID), 10),
		NewValues:  gin.H{"name": req.Name, "price": req.Price, "status": models.ServiceStatusPending},
	})

	utils.Created(c, "Service submitted for admin approval", gin.H{
		"service": service,
	})
}

// GET /v1/services
// ListServices shows active services to everyone. Organizations see their
// own services in every status via mine=true; admins can filter by status.
func ListServices(c *gin.Context) {
	pagination := utils.NewPagination(c)
	query := config.DB.Model(&models.Service{})

	user, authed := middleware.CurrentUser(c)
	switch {
	case authed && c.Query("mine") == "true" && user.Role == models.RoleOrg:
		query = query.Where("organization_id = ?", user.ID)
	case authed && user.Role == models.RoleAdmin:
		if status := c.Query("status"); status != "" {
			query = query.Where("status = ?", status)
		}
	default:
		query = query.Where("status = ?", models.ServiceStatusActive)
	}

	if search := c.Query("search"); search != "" {
		query = query.Where("name ILIKE ? OR description ILIKE ?", "%"+search+"%", "%"+search+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		utils.InternalServerError(c, "Failed to count services", err.Error())
		return
	}

	var services []models.Service
	if err := query.Order("created_at DESC").
		Limit(pagination.Limit).Offset(pagination.Offset).
		Find(&services).Error; err != nil {
		utils.InternalServerError(c, "Failed to get services", err.Error())
		return
	}

	utils.SuccessWithPagination(c, "Services retrieved", services, total, pagination.Page, pagination.Limit)
}

// GET /v1/services/:id
func GetService(c *gin.Context) {
	serviceID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.BadRequest(c, "Invalid service ID", nil)
		return
	}

	var service models.Service
	if err := config.DB.First(&service, uint(serviceID)).Error; err != nil {
		utils.NotFound(c, "Service not found")
		return
	}

	utils.Success(c, "Service retrieved", gin.H{"service": service})
}

// PATCH /v1/services/:id
// UpdateService lets the owning organization edit details or deactivate.
// Price and detail edits on an active service keep it active; organizations
// cannot activate or suspend, only admins can.
func UpdateService(c *gin.Context) {
	utils.LogInfo("UpdateService called")
	org, ok := middleware.CurrentUser(c)
	if !ok {
		utils.Unauthorized(c, "User not found")
		return
	}

	serviceID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.BadRequest(c, "Invalid service ID", nil)
		return
	}

	var service models.Service
	if err := config.DB.First(&service, uint(serviceID)).Error; err != nil {
		utils.NotFound(c, "Service not found")
		return
	}

	if service.OrganizationID != org.ID {
		utils.LogError("Org %d attempted to update service %d owned by %d", org.ID, service.ID, service.OrganizationID)
		utils.Forbidden(c, "You do not own this service")
		return
	}

	var req struct {
		Name        *string  `json:"name"`
		Description *string  `json:"description"`
		Category    *string  `json:"category"`
		Price       *float64 `json:"price"`
		Inactive    *bool    `json:"inactive"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request", err.Error())
		return
	}

	old := gin.H{"name": service.Name, "price": service.Price, "status": service.Status}

	updates := map[string]interface{}{}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.Category != nil {
		updates["category"] = *req.Category
	}
	if req.Price != nil {
		if valid, msg := utils.ValidateAmount(*req.Price); !valid {
			utils.BadRequest(c, msg, nil)
			return
		}
		updates["price"] = *req.Price
	}
	if req.Inactive != nil {
		if service.Status == models.ServiceStatusSuspended {
			utils.HandleAppError(c, utils.InvalidStateError("Suspended services can only be changed by an admin"))
			return
		}
		if *req.Inactive {
			updates["status"] = models.ServiceStatusInactive
		} else if service.Status == models.ServiceStatusInactive {
			updates["status"] = models.ServiceStatusActive
		}
	}
	if len(updates) == 0 {
		utils.BadRequest(c, "Nothing to update", nil)
		return
	}

	if err := config.DB.Model(&service).Updates(updates).Error; err != nil {
		utils.InternalServerError(c, "Failed to update service", err.Error())
		return
	}

	logAudit(c, auditEntry{
		ActorID:    &org.ID,
		ActorRole:  org.Role,
		Action:     "service_updated",
		Resource:   "service",
		ResourceID: strconv.FormatUint(uint64(service.ID), 10),
		OldValues:  old,
		NewValues:  updates,
	})

	utils.Success(c, utils.MsgUpdateSuccess, gin.H{"service": service})
}

// PUT /v1/admin/services/:id/approve
// ApproveService (admin) activates a pending service.
func ApproveService(c *gin.Context) {
	utils.LogInfo("ApproveService called")
	admin, ok := middleware.CurrentUser(c)
	if !ok {
		utils.Unauthorized(c, "User not found")
		return
	}

	serviceID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.BadRequest(c, "Invalid service ID", nil)
		return
	}

	var service models.Service
	if err := config.DB.First(&service, uint(serviceID)).Error; err != nil {
		utils.NotFound(c, "Service not found")
		return
	}

	if service.Status != models.ServiceStatusPending {
		utils.HandleAppError(c, utils.InvalidStateError(fmt.Sprintf("Service is %s, not pending", service.Status)))
		return
	}

	if err := config.DB.Model(&service).Update("status", models.ServiceStatusActive).Error; err != nil {
		utils.InternalServerError(c, "Failed to approve service", err.Error())
		return
	}

	logAudit(c, auditEntry{
		ActorID:    &admin.ID,
		ActorRole:  admin.Role,
		Action:     "service_approved",
		Resource:   "service",
		ResourceID: strconv.FormatUint(uint64(service.ID), 10),
		OldValues:  gin.H{"status": models.ServiceStatusPending},
		NewValues:  gin.H{"status": models.ServiceStatusActive},
	})

	utils.Success(c, "Service approved", gin.H{"service": service})
}

// PUT /v1/admin/services/:id/suspend
// SuspendService (admin) takes an active service off the marketplace.
func SuspendService(c *gin.Context) {
	utils.LogInfo("SuspendService called")
	admin, ok := middleware.CurrentUser(c)
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
		Reason string `json:"reason"`
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

	if service.Status == models.ServiceStatusSuspended {
		utils.HandleAppError(c, utils.InvalidStateError("Service is already suspended"))
		return
	}

	oldStatus := service.Status
	if err := config.DB.Model(&service).Update("status", models.ServiceStatusSuspended).Error; err != nil {
		utils.InternalServerError(c, "Failed to suspend service", err.Error())
		return
	}

	logAudit(c, auditEntry{
		ActorID:    &admin.ID,
		ActorRole:  admin.Role,
		Action:     "service_suspended",
		Resource:   "service",
		ResourceID: strconv.FormatUint(uint64(service.ID), 10),
		OldValues:  gin.H{"status": oldStatus},
		NewValues:  gin.H{"status": models.ServiceStatusSuspended, "reason": req.Reason},
	})

	utils.Success(c, "Service suspended", gin.H{"service": service})
}
