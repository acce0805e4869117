package controllers

import (
	"strconv"
	"time"

	"github.com/ErthaLabs/ErthaExchange/config"
	"github.com/ErthaLabs/ErthaExchange/models"
	"github.com/ErthaLabs/ErthaExchange/utils"
	"github.com/gin-gonic/gin"
)

// GET /v1/admin/audit-logs
// GetAuditLogs lists audit entries for admins with conjunctive filters on
// actor, action, resource and date range.
func GetAuditLogs(c *gin.Context) {
	pagination := utils.NewPagination(c)
	query := config.DB.Model(&models.AuditLog{})

	if actorID := c.Query("actor_id"); actorID != "" {
		query = query.Where("actor_id = ?", actorID)
	}
	if action := c.Query("action"); action != "" {
		query = query.Where("action = ?", action)
	}
	if resource := c.Query("resource"); resource != "" {
		query = query.Where("resource = ?", resource)
	}
	if resourceID := c.Query("resource_id"); resourceID != "" {
		query = query.Where("resource_id = ?", resourceID)
	}
	if from := c.Query("from"); from != "" {
		t, err := time.Parse("2006-01-02", from)
		if err != nil {
			utils.BadRequest(c, "Invalid from date, expected YYYY-MM-DD", nil)
			return
		}
		query = query.Where("created_at >= ?", t)
	}
	if to := c.Query("to"); to != "" {
		t, err := time.Parse("2006-01-02", to)
		if err != nil {
			utils.BadRequest(c, "Invalid to date, expected YYYY-MM-DD", nil)
			return
		}
		query = query.Where("created_at < ?", t.AddDate(0, 0, 1))
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		utils.InternalServerError(c, "Failed to count audit logs", err.Error())
		return
	}

	var logs []models.AuditLog
	if err := query.Order("created_at DESC").
		Limit(pagination.Limit).Offset(pagination.Offset).
		Find(&logs).Error; err != nil {
		utils.InternalServerError(c, "Failed to get audit logs", err.Error())
		return
	}

	utils.SuccessWithPagination(c, "Audit logs retrieved", logs, total, pagination.Page, pagination.Limit)
}

// GET /v1/admin/audit-logs/summary
// GetActivitySummary aggregates audit activity over the trailing N days
// (default 7, capped at 90), grouped by action and by resource.
func GetActivitySummary(c *gin.Context) {
	days := 7
	if raw := c.Query("days"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			utils.BadRequest(c, "days must be a positive integer", nil)
			return
		}
		days = parsed
	}
	if days > 90 {
		days = 90
	}

	since := time.Now().AddDate(0, 0, -days)

	type bucket struct {
		Key   string `json:"key"`
		Count int64  `json:"count"`
	}

	var byAction []bucket
	if err := config.DB.Model(&models.AuditLog{}).
		Select("action as key, COUNT(*) as count").
		Where("created_at >= ?", since).
		Group("action").Order("count DESC").
		Scan(&byAction).Error; err != nil {
		utils.InternalServerError(c, "Failed to aggregate activity", err.Error())
		return
	}

	var byResource []bucket
	if err := config.DB.Model(&models.AuditLog{}).
		Select("resource as key, COUNT(*) as count").
		Where("created_at >= ?", since).
		Group("resource").Order("count DESC").
		Scan(&byResource).Error; err != nil {
		utils.InternalServerError(c, "Failed to aggregate activity", err.Error())
		return
	}

	var total int64
	if err := config.DB.Model(&models.AuditLog{}).
		Where("created_at >= ?", since).
		Count(&total).Error; err != nil {
		utils.InternalServerError(c, "Failed to count activity", err.Error())
		return
	}

	utils.Success(c, "Activity summary retrieved", gin.H{
		"days":        days,
		"since":       since.Format(time.RFC3339),
		"total":       total,
		"by_action":   byAction,
		"by_resource": byResource,
	})
}
