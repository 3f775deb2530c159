package main

import (
	"github.com/formhub/formhub-go/config"
	"github.com/formhub/formhub-go/db"
	"github.com/formhub/formhub-go/logging"
	"github.com/formhub/formhub-go/middleware"
	"github.com/formhub/formhub-go/routes"
	"github.com/formhub/formhub-go/storage"
	"github.com/gin-gonic/gin"
)

func main() {
	// Load configuration from environment variables and .env file
	config.LoadConfig()

	// Initialize JWT signing key
	middleware.Init()

	// Initialize database connection and migrate schemas
	db.Init()

	store, err := storage.NewFromConfig()
	if err != nil {
		logging.Logger.Fatalf("Failed to initialize storage: %v", err)
	}

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.CORSMiddleware())
	router.Use(logging.RequestLogger())

	routes.RegisterRoutes(router, store)

	port := ":" + config.ServerPort
	logging.Logger.Infof("Starting API server on %s", port)
	if err := router.Run(port); err != nil {
		logging.Logger.Fatalf("Failed to start: %v", err)
	}
}
