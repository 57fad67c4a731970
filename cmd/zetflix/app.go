package main

import (
	"github.com/joho/godotenv"

	"github.com/zetflix/zetflix-api/internal/cache"
	"github.com/zetflix/zetflix-api/internal/config"
	"github.com/zetflix/zetflix-api/internal/database"
	"github.com/zetflix/zetflix-api/internal/handlers"
	"github.com/zetflix/zetflix-api/internal/services"
	"github.com/zetflix/zetflix-api/pkg/logger"
)

var (
	Logger           logger.Logger
	cfg              *config.Config
	DB               database.Database
	tmdbMemoryCache  *cache.LRUCache
	handler          *handlers.Handler
	serviceContainer *services.Container
)

func InitializeLogger() {
	// Load .env before the logger reads LOG_LEVEL
	if err := godotenv.Load(); err == nil {
		// .env is optional; only log when one was actually loaded
		Logger = logger.New()
		Logger.Debugf("[App] loaded environment from .env")
		return
	}
	Logger = logger.New()
}

func InitializeConfig() {
	var err error
	cfg, err = config.Load()
	if err != nil {
		Logger.Fatalf("[App] failed to load configuration: %v", err)
	}
}

func InitializeDatabase() {
	var err error
	DB, err = database.NewBolt(cfg.DatabasePath)
	if err != nil {
		Logger.Fatalf("[App] failed to initialize database: %v", err)
	}

	Logger.Infof("[App] BoltHold database initialized successfully")
}

func InitializeServices() {
	tmdbMemoryCache = cache.New(cfg.CacheSize, cfg.CacheTTL)

	authService := services.NewAuth(cfg.TokenSecret)
	tmdbService := services.NewTMDB(cfg.TMDBAPIKey, tmdbMemoryCache)
	statsService := services.NewStats(DB)
	ongoingService := services.NewOngoingTracker(DB, tmdbService, logger.New())
	watchHistoryService := services.NewWatchHistory(DB, ongoingService, logger.New())
	dashboardService := services.NewDashboard(DB, tmdbService, statsService, logger.New())

	serviceContainer = &services.Container{
		Auth:         authService,
		TMDB:         tmdbService,
		WatchHistory: watchHistoryService,
		Stats:        statsService,
		Ongoing:      ongoingService,
		Dashboard:    dashboardService,
		Cache:        tmdbMemoryCache,
		DB:           DB,
		Logger:       logger.New(),
	}

	handler = handlers.New(serviceContainer, cfg)

	Logger.Infof("[App] services initialized successfully")
}
