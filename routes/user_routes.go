package routes

import (
	"github.com/ErthaLabs/ErthaExchange/controllers"
	"github.com/ErthaLabs/ErthaExchange/middleware"
	"github.com/gin-gonic/gin"
)

// initUserRoutes initializes the public and user-facing routes
func initUserRoutes(router *gin.RouterGroup) {
	// Public routes (no authentication required)
	auth := router.Group("/auth")
	{
		auth.POST("/register", controllers.Register)
		auth.POST("/login", controllers.Login)
	}

	// Browsing active services is public; a valid token additionally
	// unlocks the org mine=true and admin status-filter views
	router.GET("/services", middleware.OptionalAuthMiddleware(), controllers.ListServices)
	router.GET("/services/:id", controllers.GetService)

	// Protected routes (require authentication)
	protected := router.Group("")
	protected.Use(middleware.AuthMiddleware())
	{
		protected.GET("/auth/profile", controllers.GetProfile)

		// Wallet
		protected.GET("/wallet", controllers.GetWalletBalance)

		// Ledger
		protected.GET("/transactions",
			middleware.RequirePermission(middleware.ResourceTransaction, middleware.ActionRead),
			controllers.ListTransactions)
		protected.GET("/transactions/:id",
			middleware.RequirePermission(middleware.ResourceTransaction, middleware.ActionRead),
			controllers.GetTransaction)

		// Coin purchase
		protected.POST("/payments/orders",
			middleware.RequirePermission(middleware.ResourcePayment, middleware.ActionCreate),
			controllers.CreatePaymentOrder)
		protected.POST("/payments/verify",
			middleware.RequirePermission(middleware.ResourcePayment, middleware.ActionCreate),
			controllers.VerifyPayment)

		// Bookings
		protected.POST("/services/:id/book",
			middleware.RequirePermission(middleware.ResourceService, middleware.ActionBook),
			controllers.BookService)
		protected.GET("/bookings",
			middleware.RequirePermission(middleware.ResourceBooking, middleware.ActionRead),
			controllers.ListBookings)
		protected.GET("/bookings/:id",
			middleware.RequirePermission(middleware.ResourceBooking, middleware.ActionRead),
			controllers.GetBooking)
	}
}
