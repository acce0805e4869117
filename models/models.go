package models

import (
	"time"

	"gorm.io/gorm"
)

// User roles
const (
	RoleUser  = "user"
	RoleOrg   = "org"
	RoleAdmin = "admin"
)

// User represents an account in the system. The wallet balance lives on the
// user row and is only ever mutated through the wallet helpers, never by
// direct field assignment.
type User struct {
	gorm.Model
	Username      string    `gorm:"uniqueIndex;not null" json:"username"`
	Email         string    `gorm:"uniqueIndex;not null" json:"email"`
	Password      string    `json:"-"`
	FirstName     string    `json:"first_name"`
	LastName      string    `json:"last_name"`
	Phone         string    `json:"phone"`
	Role          string    `gorm:"default:'user'" json:"role"` // user, org, admin
	WalletBalance float64   `gorm:"default:0;check:wallet_balance >= 0" json:"wallet_balance"`
	IsActive      bool      `gorm:"default:true" json:"is_active"`
	LastLoginAt   time.Time `json:"last_login_at"`
}
