package routes

import (
	"github.com/ErthaLabs/ErthaExchange/controllers"
	"github.com/ErthaLabs/ErthaExchange/middleware"
	"github.com/gin-gonic/gin"
)

// initOrgRoutes initializes the organization-only routes
func initOrgRoutes(router *gin.RouterGroup) {
	org := router.Group("")
	org.Use(middleware.AuthMiddleware())
	{
		// Service listings
		org.POST("/services",
			middleware.RequirePermission(middleware.ResourceService, middleware.ActionCreate),
			controllers.CreateService)
		org.PATCH("/services/:id",
			middleware.RequirePermission(middleware.ResourceService, middleware.ActionUpdate),
			controllers.UpdateService)

		// Coin-to-fiat conversion
		org.POST("/conversions",
			middleware.RequirePermission(middleware.ResourceConversion, middleware.ActionCreate),
			controllers.CreateConversionRequest)
		org.GET("/conversions",
			middleware.RequirePermission(middleware.ResourceConversion, middleware.ActionRead),
			controllers.ListConversionRequests)
	}
}
