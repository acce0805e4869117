package controllers

import (
	"strconv"
	"strings"
	"time"

	"github.com/ErthaLabs/ErthaExchange/config"
	"github.com/ErthaLabs/ErthaExchange/middleware"
	"github.com/ErthaLabs/ErthaExchange/models"
	"github.com/ErthaLabs/ErthaExchange/utils"
	"github.com/gin-gonic/gin"
)

// POST /v1/auth/register
// Register creates a user or organization account. Admin accounts are only
// created through the bootstrap path, never through this endpoint.
func Register(c *gin.Context) {
	utils.LogInfo("Register called")

	var req struct {
		Username  string `json:"username" binding:"required"`
		Email     string `json:"email" binding:"required"`
		Password  string `json:"password" binding:"required"`
		FirstName string `json:"first_name"`
		LastName  string `json:"last_name"`
		Phone     string `json:"phone"`
		Role      string `json:"role"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request. username, email and password are required", err.Error())
		return
	}

	if valid, msg := utils.ValidateUsername(req.Username); !valid {
		utils.ValidationError(c, msg, nil)
		return
	}
	if valid, msg := utils.ValidateEmail(req.Email); !valid {
		utils.ValidationError(c, msg, nil)
		return
	}
	if valid, msg := utils.ValidatePassword(req.Password); !valid {
		utils.ValidationError(c, msg, nil)
		return
	}

	role := models.RoleUser
	switch strings.ToLower(req.Role) {
	case "", models.RoleUser:
	case models.RoleOrg:
		role = models.RoleOrg
	default:
		utils.BadRequest(c, "Role must be user or org", nil)
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	var existing models.User
	if err := config.DB.Where("email = ? OR username = ?", email, req.Username).
		First(&existing).Error; err == nil {
		utils.Conflict(c, "An account with this email or username already exists", nil)
		return
	}

	hashed, err := utils.HashPassword(req.Password)
	if err != nil {
		utils.LogError("Password hashing failed: %v", err)
		utils.InternalServerError(c, "Failed to create account", nil)
		return
	}

	user := models.User{
		Username:  req.Username,
		Email:     email,
		Password:  hashed,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Phone:     req.Phone,
		Role:      role,
		IsActive:  true,
	}
	if err := config.DB.Create(&user).Error; err != nil {
		utils.LogError("Failed to create user %s: %v", email, err)
		utils.InternalServerError(c, "Failed to create account", err.Error())
		return
	}

	logAudit(c, auditEntry{
		ActorID:    &user.ID,
		ActorRole:  user.Role,
		Action:     "user_registered",
		Resource:   "user",
		ResourceID: strconv.FormatUint(uint64(user.ID), 10),
		NewValues:  gin.H{"username": user.Username, "email": user.Email, "role": user.Role},
	})

	utils.Created(c, "Account created successfully", gin.H{
		"user": gin.H{
			"id":       user.ID,
			"username": user.Username,
			"email":    user.Email,
			"role":     user.Role,
		},
	})
}

// POST /v1/auth/login
func Login(c *gin.Context) {
	utils.LogInfo("Login called")

	var req struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Email and password are required", err.Error())
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	var user models.User
	if err := config.DB.Where("email = ?", email).First(&user).Error; err != nil {
		utils.LogDebug("Login failed, no account for %s", email)
		utils.Unauthorized(c, "Invalid email or password")
		return
	}

	if !utils.CheckPassword(req.Password, user.Password) {
		utils.LogDebug("Login failed, bad password for user %d", user.ID)
		utils.Unauthorized(c, "Invalid email or password")
		return
	}

	if !user.IsActive {
		utils.LogError("Login attempt on disabled account %d", user.ID)
		utils.Forbidden(c, "Account is disabled")
		return
	}

	token, err := utils.GenerateToken(&user)
	if err != nil {
		utils.LogError("Token generation failed for user %d: %v", user.ID, err)
		utils.InternalServerError(c, "Failed to generate token", nil)
		return
	}

	config.DB.Model(&user).Update("last_login_at", time.Now())

	logAudit(c, auditEntry{
		ActorID:    &user.ID,
		ActorRole:  user.Role,
		Action:     "user_login",
		Resource:   "user",
		ResourceID: strconv.FormatUint(uint64(user.ID), 10),
	})

	utils.Success(c, "Login successful", gin.H{
		"token": token,
		"user": gin.H{
			"id":             user.ID,
			"username":       user.Username,
			"email":          user.Email,
			"role":           user.Role,
			"wallet_balance": user.WalletBalance,
		},
	})
}

// GET /v1/auth/profile
func GetProfile(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		utils.Unauthorized(c, "User not found")
		return
	}

	utils.Success(c, "Profile retrieved", gin.H{
		"user": gin.H{
			"id":             user.ID,
			"username":       user.Username,
			"email":          user.Email,
			"first_name":     user.FirstName,
			"last_name":      user.LastName,
			"phone":          user.Phone,
			"role":           user.Role,
			"wallet_balance": user.WalletBalance,
			"created_at":     user.CreatedAt,
			"last_login_at":  user.LastLoginAt,
		},
	})
}
