package main

import (
	"fmt"
	"log"
	"os"

	"epias-settlement/internal/api/handlers"
	"epias-settlement/internal/api/middleware"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// Optional .env for local runs; real deployments set the environment.
	if err := godotenv.Load(); err == nil {
		log.Printf("Loaded .env")
	}

	port := os.Getenv("API_PORT")
	if port == "" {
		port = "8080"
	}

	if os.Getenv("API_ENV") == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	handlers.RegisterValidations()
	router := gin.New()

	// Apply middleware
	router.Use(middleware.CORS())
	router.Use(middleware.Logger())
	router.Use(middleware.ErrorHandler())

	// Initialize handlers
	settlementHandler := handlers.NewSettlementHandler()
	pricesHandler := handlers.NewPricesHandler()
	contractHandler := handlers.NewContractHandler()

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// API routes
	api := router.Group("/api/v1")
	{
		api.POST("/settlement", settlementHandler.RunSettlement)
		api.POST("/settlement/series", settlementHandler.RunSeries)

		api.GET("/prices/unit", pricesHandler.UnitPrices)
		api.GET("/tolerances", pricesHandler.Tolerance)

		api.GET("/contracts", contractHandler.Range)
		api.GET("/contracts/active", contractHandler.Active)
		api.GET("/contracts/:code", contractHandler.Decode)
	}

	// Start server
	addr := fmt.Sprintf(":%s", port)
	log.Printf("Starting API server on %s", addr)
	if err := router.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
