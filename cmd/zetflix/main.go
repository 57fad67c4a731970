package main

import (
	"context"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/zetflix/zetflix-api/internal/middleware"
)

func main() {
	// Initialize logger
	InitializeLogger()

	// Initialize configuration
	InitializeConfig()

	// Initialize database
	InitializeDatabase()

	// Initialize services
	InitializeServices()

	// Create Gin router
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.Logger(Logger))
	r.Use(middleware.Gzip())
	r.Use(middleware.CORS())

	// Start cache cleanup routine
	tmdbMemoryCache.StartCleanup(context.Background())

	// Routes
	handler.RegisterRoutes(r)

	// Start HTTP server
	Logger.Infof("[App] starting HTTP server on port %s", cfg.Port)
	log.Fatal(http.ListenAndServe(":"+cfg.Port, r))
}
