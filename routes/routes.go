package routes

import (
	"net/http"
	"time"

	"github.com/ErthaLabs/ErthaExchange/controllers"
	"github.com/ErthaLabs/ErthaExchange/utils"
	"github.com/gin-gonic/gin"
)

// SetupRouter initializes and returns the Gin router with all routes
func SetupRouter() *gin.Engine {
	router := gin.New()

	router.Use(utils.RecoveryMiddleware())
	router.Use(utils.RequestIDMiddleware())
	router.Use(utils.LoggerMiddleware())
	router.Use(utils.CORSMiddleware())
	router.Use(utils.SecurityHeadersMiddleware())
	router.Use(utils.RateLimitMiddleware(20, 40))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "ok",
			"time":   time.Now().Format(time.RFC3339),
		})
	})

	// Gateway webhooks are signed, not token-authenticated
	router.POST("/v1/webhooks/razorpay", controllers.HandlePaymentWebhook)

	api := router.Group("/v1")
	{
		initUserRoutes(api)
		initOrgRoutes(api)
		initAdminRoutes(api)
	}

	return router
}
