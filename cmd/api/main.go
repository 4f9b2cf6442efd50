package main

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"cashflow-forecast/internal/api/handlers"
	"cashflow-forecast/internal/api/middleware"
	"cashflow-forecast/internal/api/models"
)

func main() {
	// Get configuration from environment
	port := os.Getenv("API_PORT")
	if port == "" {
		port = "8080"
	}

	log := logrus.New()
	if lvl, err := logrus.ParseLevel(os.Getenv("LOG_LEVEL")); err == nil {
		log.SetLevel(lvl)
	}

	// Set up Gin router
	if os.Getenv("API_ENV") == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()

	// Apply middleware
	router.Use(middleware.CORS())
	router.Use(middleware.Logger(log))
	router.Use(middleware.ErrorHandler())

	// Initialize handlers
	analysisHandler := handlers.NewAnalysisHandler()
	forecastHandler := handlers.NewForecastHandler(log)

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, models.HealthResponse{Status: "ok", Time: time.Now().UTC()})
	})

	// API routes
	api := router.Group("/api/v1")
	{
		api.GET("/methods", handlers.ListMethods)

		api.POST("/analysis/seasonality", analysisHandler.Seasonality)
		api.POST("/analysis/trend", analysisHandler.Trend)
		api.POST("/analysis/decompose", analysisHandler.Decompose)

		api.POST("/forecast", forecastHandler.RunForecast)
	}

	// Start server
	addr := fmt.Sprintf(":%s", port)
	log.Infof("starting API server on %s", addr)
	if err := router.Run(addr); err != nil {
		log.Fatalf("failed to start server: %v", err)
	}
}
