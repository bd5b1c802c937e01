package main

import (
	"fmt"
	"os"

	"patrimonio/internal/config"
	"patrimonio/internal/database"
	"patrimonio/internal/logger"
	"patrimonio/internal/router"
	"patrimonio/internal/validator"
)

//go:generate swag init -g cmd/api/main.go -o internal/docs

// @title           Patrimônio API
// @version         1.0
// @description     Patrimônio tracks personal finances, physical assets and vehicles for a household.
// @termsOfService  http://swagger.io/terms/

// @host      localhost:8080
// @BasePath  /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	logger.Init(os.Getenv("ENV"))
	defer logger.Sync()

	if err := run(); err != nil {
		logger.Get().Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	log := logger.Get()

	appConfig, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	dbManager, err := database.NewManager(database.NewConfig(appConfig))
	if err != nil {
		return fmt.Errorf("failed to create database manager: %w", err)
	}
	defer func() {
		if err := dbManager.Close(); err != nil {
			log.Warnf("database close error: %v", err)
		}
	}()

	if err := dbManager.RunMigrations(); err != nil {
		return fmt.Errorf("failed to run database migrations: %w", err)
	}

	validator.Register()

	services := router.NewServices(dbManager.DB(), appConfig)
	engine := router.New(appConfig, services, router.NewRegistry())

	log.Infof("Starting Patrimônio backend server on port %s", appConfig.Port)
	log.Infof("Swagger documentation available at http://localhost:%s/swagger/index.html", appConfig.Port)
	return engine.Run(":" + appConfig.Port)
}
