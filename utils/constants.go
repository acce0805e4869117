package utils

// Application constants
const (
	// Application name
	AppName = "ErthaExchange"

	// API version
	APIVersion = "v1"

	// Default port
	DefaultPort = "8080"

	// JWT token expiration (24 hours)
	JWTExpiration = "24h"

	// Default pagination limit
	DefaultPaginationLimit = 10

	// Maximum pagination limit
	MaxPaginationLimit = 100

	// Minimum password length
	MinPasswordLength = 8

	// Coin purchase bounds per region, in coins (1 coin = 1 unit of fiat)
	MinPurchaseAmountIN = 10.0
	MaxPurchaseAmountIN = 100000.0
	MinPurchaseAmount   = 1.0
	MaxPurchaseAmount   = 5000.0

	// Pending payment orders older than this are expired by the scheduler
	StalePaymentOrderHours = 24
)

// Error messages
const (
	ErrInvalidCredentials  = "Invalid email or password"
	ErrAccountDisabled     = "Your account has been disabled"
	ErrInvalidToken        = "Invalid or expired token"
	ErrUnauthorized        = "Unauthorized access"
	ErrForbidden           = "Access forbidden"
	ErrInsufficientBalance = "Insufficient wallet balance"
	ErrDuplicateEntry      = "Duplicate entry"
	ErrRecordNotFound      = "Record not found"
	ErrInternalServer      = "Internal server error"
)

// Success messages
const (
	MsgLoginSuccess    = "Login successful"
	MsgRegisterSuccess = "Registration successful"
	MsgCreateSuccess   = "Created successfully"
	MsgUpdateSuccess   = "Updated successfully"
	MsgBlockSuccess    = "Blocked successfully"
	MsgUnblockSuccess  = "Unblocked successfully"
)
