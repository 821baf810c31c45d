package app

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"pathpilot_backend/database"
	"pathpilot_backend/internal/config"
	"pathpilot_backend/internal/handlers"
	"pathpilot_backend/internal/jobsource"
	"pathpilot_backend/internal/llm"
	"pathpilot_backend/internal/logger"
	"pathpilot_backend/internal/middleware"
	"pathpilot_backend/internal/repositories"
	"pathpilot_backend/internal/routes"
	"pathpilot_backend/internal/services"
	"pathpilot_backend/internal/validator"
	"pathpilot_backend/internal/workers"
)

func Run() {
	config.LoadConfig()
	cfg := config.AppConfig
	logger.Init(cfg.Server.Env)
	logger.Info("Logger initialized", "env", cfg.Server.Env)

	logger.Info("Connecting to database...")
	gormDB, err := database.ConnectGorm()
	if err != nil {
		logger.Fatal("Failed to connect to GORM", "error", err)
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		logger.Fatal("Failed to get *sql.DB from GORM", "error", err)
	}
	if err = sqlDB.Ping(); err != nil {
		logger.Fatal("Database unavailable", "error", err)
	}
	logger.Info("Database connected")

	if err := database.AutoMigrate(gormDB); err != nil {
		logger.Fatal("Migration failed", "error", err)
	}

	ginRouter := SetupRouter(cfg, gormDB)

	corpusWorker := workers.NewCorpusWorker(cfg.Sources.CorpusPath, liveSources(cfg)...)
	if err := corpusWorker.Start(); err != nil {
		logger.Fatal("Failed to start corpus worker", "error", err)
	}
	defer corpusWorker.Stop()

	tokenWorker := workers.NewTokenCleanupWorker(repositories.NewUserRepository(gormDB))
	if err := tokenWorker.Start(); err != nil {
		logger.Fatal("Failed to start token cleanup worker", "error", err)
	}
	defer tokenWorker.Stop()

	address := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logger.Info(fmt.Sprintf("🚀 Server starting on %s", address))
	if err := ginRouter.Run(address); err != nil {
		logger.Fatal("Server startup error", "error", err)
	}
}

// SetupRouter собирает каскад источников, сервисы, хендлеры и gin
func SetupRouter(cfg *config.Config, gormDB *gorm.DB) *gin.Engine {
	cascade := jobsource.DefaultCascade(
		cfg.Sources.CorpusPath,
		cfg.Sources.SerpAPIKey,
		cfg.Sources.AdzunaAppID,
		cfg.Sources.AdzunaAppKey,
	)

	completer := llm.New(llm.Config{
		APIKey:  cfg.LLM.APIKey,
		BaseURL: cfg.LLM.BaseURL,
		Model:   cfg.LLM.Model,
	})

	newServices := func(db *gorm.DB) *services.ServiceContainer {
		return services.NewServiceContainer(db, cascade, completer)
	}

	customValidator := validator.New()
	baseHandler := handlers.NewBaseHandler(customValidator, newServices)
	appHandlers := handlers.NewAppHandlers(baseHandler)

	ginRouter := initializeGinRouter(gormDB)
	routes.RegisterRoutes(ginRouter, appHandlers)

	return ginRouter
}

// liveSources - агрегаторы для ночного обновления корпуса; без
// кредов список пуст и воркер не запускается
func liveSources(cfg *config.Config) []jobsource.Source {
	var sources []jobsource.Source
	if cfg.Sources.SerpAPIKey != "" {
		sources = append(sources, jobsource.NewSerpAPISource(cfg.Sources.SerpAPIKey, http.DefaultClient))
	}
	if cfg.Sources.AdzunaAppID != "" && cfg.Sources.AdzunaAppKey != "" {
		sources = append(sources, jobsource.NewAdzunaSource(cfg.Sources.AdzunaAppID, cfg.Sources.AdzunaAppKey, http.DefaultClient))
	}
	return sources
}

func initializeGinRouter(db *gorm.DB) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware())
	router.Use(middleware.CORSMiddleware())
	router.Use(middleware.DBMiddleware(db))
	return router
}
