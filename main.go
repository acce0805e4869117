package main

import (
	"log"

	"github.com/ErthaLabs/ErthaExchange/config"
	"github.com/ErthaLabs/ErthaExchange/controllers"
	"github.com/ErthaLabs/ErthaExchange/routes"
	"github.com/ErthaLabs/ErthaExchange/scheduler"
	"github.com/ErthaLabs/ErthaExchange/utils"
)

func main() {
	// Initialize logger
	if err := utils.InitLogger(); err != nil {
		log.Fatal("Failed to initialize logger:", err)
	}

	// Load environment variables
	cfg, err := config.LoadConfig()
	if err != nil {
		utils.LogError("Error loading config: %v", err)
		log.Fatal("Error loading config:", err)
	}

	// Initialize database
	config.InitDB()

	// Create sample admin
	controllers.CreateSampleAdmin()

	// Start background jobs
	jobs := scheduler.NewScheduler(cfg.StaleOrderCron)
	jobs.Start()
	defer jobs.Stop()

	// Set up router
	router := routes.SetupRouter()

	port := cfg.Port
	if port == "" {
		port = "8080"
	}

	utils.LogInfo("Server starting on port %s", port)
	if err := router.Run(":" + port); err != nil {
		utils.LogError("Error starting server: %v", err)
		log.Fatal("Error starting server:", err)
	}
}
