package controllers

import (
	"os"
	"strconv"
	"strings"

	"github.com/ErthaLabs/ErthaExchange/config"
	"github.com/ErthaLabs/ErthaExchange/middleware"
	"github.com/ErthaLabs/ErthaExchange/models"
	"github.com/ErthaLabs/ErthaExchange/utils"
	"github.com/gin-gonic/gin"
)

// GET /v1/admin/users
// ListUsers lists accounts with search over username, email and name.
func ListUsers(c *gin.Context) {
	pagination := utils.NewPagination(c)
	query := config.DB.Model(&models.User{})

	if role := c.Query("role"); role != "" {
		query = query.Where("role = ?", role)
	}
	if active := c.Query("active"); active != "" {
		query = query.Where("is_active = ?", active == "true")
	}
	if search := c.Query("search"); search != "" {
		term := "%" + strings.TrimSpace(search) + "%"
		query = query.Where(
			"username ILIKE ? OR email ILIKE ? OR first_name ILIKE ? OR last_name ILIKE ?",
			term, term, term, term,
		)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		utils.InternalServerError(c, "Failed to count users", err.Error())
		return
	}

	var users []models.User
	if err := query.Order("created_at DESC").
		Limit(pagination.Limit).Offset(pagination.Offset).
		Find(&users).Error; err != nil {
		utils.InternalServerError(c, "Failed to get users", err.Error())
		return
	}

	utils.SuccessWithPagination(c, "Users retrieved", users, total, pagination.Page, pagination.Limit)
}

// GET /v1/admin/users/:id
func GetUser(c *gin.Context) {
	userID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.BadRequest(c, "Invalid user ID", nil)
		return
	}

	var user models.User
	if err := config.DB.First(&user, uint(userID)).Error; err != nil {
		utils.NotFound(c, "User not found")
		return
	}

	utils.Success(c, "User retrieved", gin.H{"user": user})
}

// PUT /v1/admin/users/:id/block
// BlockUser disables an account. A disabled account fails every
// authenticated request at the auth middleware.
func BlockUser(c *gin.Context) {
	utils.LogInfo("BlockUser called")
	admin, ok := middleware.CurrentUser(c)
	if !ok {
		utils.Unauthorized(c, "User not found")
		return
	}

	userID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.BadRequest(c, "Invalid user ID", nil)
		return
	}
	if uint(userID) == admin.ID {
		utils.BadRequest(c, "You cannot block your own account", nil)
		return
	}

	var user models.User
	if err := config.DB.First(&user, uint(userID)).Error; err != nil {
		utils.NotFound(c, "User not found")
		return
	}
	if user.Role == models.RoleAdmin {
		utils.Forbidden(c, "Admin accounts cannot be blocked")
		return
	}
	if !user.IsActive {
		utils.HandleAppError(c, utils.InvalidStateError("User is already blocked"))
		return
	}

	if err := config.DB.Model(&user).Update("is_active", false).Error; err != nil {
		utils.InternalServerError(c, "Failed to block user", err.Error())
		return
	}

	logAudit(c, auditEntry{
		ActorID:    &admin.ID,
		ActorRole:  admin.Role,
		Action:     "user_blocked",
		Resource:   "user",
		ResourceID: strconv.FormatUint(userID, 10),
		OldValues:  gin.H{"is_active": true},
		NewValues:  gin.H{"is_active": false},
	})

	utils.Success(c, "User blocked successfully", gin.H{"user_id": user.ID})
}

// PUT /v1/admin/users/:id/unblock
func UnblockUser(c *gin.Context) {
	utils.LogInfo("UnblockUser called")
	admin, ok := middleware.CurrentUser(c)
	if !ok {
		utils.Unauthorized(c, "User not found")
		return
	}

	userID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.BadRequest(c, "Invalid user ID", nil)
		return
	}

	var user models.User
	if err := config.DB.First(&user, uint(userID)).Error; err != nil {
		utils.NotFound(c, "User not found")
		return
	}
	if user.IsActive {
		utils.HandleAppError(c, utils.InvalidStateError("User is not blocked"))
		return
	}

	if err := config.DB.Model(&user).Update("is_active", true).Error; err != nil {
		utils.InternalServerError(c, "Failed to unblock user", err.Error())
		return
	}

	logAudit(c, auditEntry{
		ActorID:    &admin.ID,
		ActorRole:  admin.Role,
		Action:     "user_unblocked",
		Resource:   "user",
		ResourceID: strconv.FormatUint(userID, 10),
		OldValues:  gin.H{"is_active": false},
		NewValues:  gin.H{"is_active": true},
	})

	utils.Success(c, "User unblocked successfully", gin.H{"user_id": user.ID})
}

// CreateSampleAdmin bootstraps the admin account from ADMIN_EMAIL and
// ADMIN_PASSWORD at startup. It is a no-op when the account already exists
// or the env vars are unset.
func CreateSampleAdmin() {
	email := strings.ToLower(strings.TrimSpace(os.Getenv("ADMIN_EMAIL")))
	password := os.Getenv("ADMIN_PASSWORD")
	if email == "" || password == "" {
		utils.LogDebug("Admin bootstrap skipped, ADMIN_EMAIL or ADMIN_PASSWORD unset")
		return
	}

	var existing models.User
	if err := config.DB.Where("email = ?", email).First(&existing).Error; err == nil {
		return
	}

	hashed, err := utils.HashPassword(password)
	if err != nil {
		utils.LogError("Admin bootstrap failed to hash password: %v", err)
		return
	}

	admin := models.User{
		Username: "admin",
		Email:    email,
		Password: hashed,
		Role:     models.RoleAdmin,
		IsActive: true,
	}
	if err := config.DB.Create(&admin).Error; err != nil {
		utils.LogError("Admin bootstrap failed: %v", err)
		return
	}
	utils.LogInfo("Admin account created for %s", email)
}
