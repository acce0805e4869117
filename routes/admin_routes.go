package routes

import (
	"github.com/ErthaLabs/ErthaExchange/controllers"
	"github.com/ErthaLabs/ErthaExchange/middleware"
	"github.com/gin-gonic/gin"
)

// initAdminRoutes initializes the admin-only routes
func initAdminRoutes(router *gin.RouterGroup) {
	admin := router.Group("/admin")
	admin.Use(middleware.AuthMiddleware())
	{
		// User management
		admin.GET("/users",
			middleware.RequirePermission(middleware.ResourceUser, middleware.ActionManage),
			controllers.ListUsers)
		admin.GET("/users/:id",
			middleware.RequirePermission(middleware.ResourceUser, middleware.ActionManage),
			controllers.GetUser)
		admin.PUT("/users/:id/block",
			middleware.RequirePermission(middleware.ResourceUser, middleware.ActionManage),
			controllers.BlockUser)
		admin.PUT("/users/:id/unblock",
			middleware.RequirePermission(middleware.ResourceUser, middleware.ActionManage),
			controllers.UnblockUser)

		// Service moderation
		admin.PUT("/services/:id/approve",
			middleware.RequirePermission(middleware.ResourceService, middleware.ActionApprove),
			controllers.ApproveService)
		admin.PUT("/services/:id/suspend",
			middleware.RequirePermission(middleware.ResourceService, middleware.ActionApprove),
			controllers.SuspendService)

		// Conversion approvals
		admin.GET("/conversions",
			middleware.RequirePermission(middleware.ResourceConversion, middleware.ActionRead),
			controllers.ListConversionRequests)
		admin.PUT("/conversions/:id/approve",
			middleware.RequirePermission(middleware.ResourceConversion, middleware.ActionApprove),
			controllers.ApproveConversionRequest)
		admin.PUT("/conversions/:id/reject",
			middleware.RequirePermission(middleware.ResourceConversion, middleware.ActionApprove),
			controllers.RejectConversionRequest)

		// Payments
		admin.POST("/payments/:id/refund",
			middleware.RequirePermission(middleware.ResourcePayment, middleware.ActionRefund),
			controllers.ProcessRefund)

		// Ledger and audit
		admin.GET("/transactions",
			middleware.RequirePermission(middleware.ResourceTransaction, middleware.ActionRead),
			controllers.AdminListTransactions)
		admin.GET("/audit-logs",
			middleware.RequirePermission(middleware.ResourceAudit, middleware.ActionRead),
			controllers.GetAuditLogs)
		admin.GET("/audit-logs/summary",
			middleware.RequirePermission(middleware.ResourceAudit, middleware.ActionRead),
			controllers.GetActivitySummary)

		// Report exports
		admin.GET("/reports/transactions/excel",
			middleware.RequirePermission(middleware.ResourceReport, middleware.ActionExport),
			controllers.DownloadTransactionReportExcel)
		admin.GET("/reports/transactions/pdf",
			middleware.RequirePermission(middleware.ResourceReport, middleware.ActionExport),
			controllers.DownloadTransactionReportPDF)
	}
}
