package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	authUseCase "github.com/helphub-app/helphub-server/internal/domain/usecase/auth"
	donationUseCase "github.com/helphub-app/helphub-server/internal/domain/usecase/donation"
	rewardUseCase "github.com/helphub-app/helphub-server/internal/domain/usecase/reward"

	"github.com/helphub-app/helphub-server/internal/infrastructure/adapter/api/handler"
	"github.com/helphub-app/helphub-server/internal/infrastructure/adapter/api/routes"
	"github.com/helphub-app/helphub-server/internal/infrastructure/adapter/cache"
	"github.com/helphub-app/helphub-server/internal/infrastructure/adapter/database"
	"github.com/helphub-app/helphub-server/internal/infrastructure/adapter/database/migration"
	"github.com/helphub-app/helphub-server/internal/infrastructure/adapter/logger"
	"github.com/helphub-app/helphub-server/internal/infrastructure/adapter/repository"
	"github.com/helphub-app/helphub-server/internal/infrastructure/adapter/storage"
	timeProvider "github.com/helphub-app/helphub-server/internal/infrastructure/adapter/time"
	"github.com/helphub-app/helphub-server/internal/infrastructure/adapter/token"
	"github.com/helphub-app/helphub-server/internal/infrastructure/config"

	"github.com/gin-gonic/gin"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Validate essential configuration
	if err := validateConfig(cfg); err != nil {
		log.Fatalf("Configuration validation failed: %v", err)
	}

	// Set Gin mode based on environment
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Create logger
	appLogger := logger.NewZapLogger(cfg.Environment == "production", cfg.Logger.Level)
	defer func() {
		_ = appLogger.Flush()
	}()

	// Initialize time provider
	tp := timeProvider.NewRealTimeProvider()

	// Connect to the database
	dbManager := database.NewManager(database.CreateConfigFromViperConfig(cfg), appLogger, tp)
	if _, err := dbManager.Connect(); err != nil {
		appLogger.Error("Failed to connect to database", map[string]any{
			"error": err.Error(),
		})
		os.Exit(1)
	}
	defer func() {
		if err := dbManager.Close(); err != nil {
			appLogger.Error("Failed to close database connection", map[string]any{
				"error": err.Error(),
			})
		}
	}()

	// Run migrations, retrying through transient startup failures
	migrationMgr := dbManager.CreateMigrationManager()
	err = database.RetryOnTransientError(context.Background(), database.DefaultRetryConfig(), func() error {
		return migrationMgr.MigrateAll()
	}, appLogger)
	if err != nil {
		appLogger.Error("Failed to run migrations", map[string]any{
			"error": err.Error(),
		})
		os.Exit(1)
	}

	// Initialize repositories and the unit of work
	userRepo := repository.NewUserRepository(dbManager.DB(), tp, appLogger)
	donationRepo := repository.NewDonationRepository(dbManager.DB(), appLogger)
	uow := dbManager.CreateUnitOfWork()

	// Session token maker
	tokenMaker, err := token.NewJWTMaker(cfg.Auth.TokenSecret, cfg.Auth.TokenTTL)
	if err != nil {
		appLogger.Error("Failed to initialize token maker", map[string]any{
			"error": err.Error(),
		})
		os.Exit(1)
	}

	// Verification document storage
	documentStore, err := storage.NewFilesystemStore(cfg.Storage.DocumentDir, appLogger)
	if err != nil {
		appLogger.Error("Failed to initialize document storage", map[string]any{
			"error": err.Error(),
		})
		os.Exit(1)
	}

	// Optional Redis-backed profile cache
	var profileCache rewardUseCase.ProfileCache
	if cfg.Redis.Enabled {
		redisCache, err := cache.NewRedisProfileCache(
			context.Background(),
			cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB,
			cfg.Redis.ProfileTTL, appLogger,
		)
		if err != nil {
			appLogger.Warn("Profile cache unavailable, continuing without it", map[string]any{
				"addr":  cfg.Redis.Addr,
				"error": err.Error(),
			})
		} else {
			profileCache = redisCache
			defer func() {
				_ = redisCache.Close()
			}()
		}
	}

	// Initialize use cases. An accepted donation changes the donor's balance
	// and rank, so the donation service drops the cached profile too.
	var invalidateProfile donationUseCase.ProfileInvalidator
	if profileCache != nil {
		invalidateProfile = profileCache.Invalidate
	}
	authService := authUseCase.NewService(userRepo, documentStore, tokenMaker, tp, appLogger)
	donationService := donationUseCase.NewService(uow, userRepo, donationRepo, tp, appLogger, cfg.Reward.CoinsPerDonation, invalidateProfile)
	rewardService := rewardUseCase.NewService(uow, userRepo, tp, appLogger, profileCache)

	// Seed a verified NGO for local development
	if cfg.Seed.CreateDefaultNGO {
		err := migration.SeedDefaultNGO(
			context.Background(), userRepo, tp, appLogger,
			cfg.Seed.DefaultNGOEmail, cfg.Seed.DefaultNGOPassword,
		)
		if err != nil {
			appLogger.Error("Failed to seed default NGO account", map[string]any{
				"error": err.Error(),
			})
		}
	}

	// Initialize API handlers
	authHandler := handler.NewAuthHandler(authService, appLogger)
	donationHandler := handler.NewDonationHandler(donationService, authService, appLogger)
	rewardHandler := handler.NewRewardHandler(rewardService, appLogger)
	userHandler := handler.NewUserHandler(userRepo, rewardService, appLogger)

	// Initialize Gin router
	router := gin.New()

	// Setup middlewares
	routes.SetupMiddlewares(router, appLogger)

	// Setup routes
	routes.SetupRoutes(router, authHandler, donationHandler, rewardHandler, userHandler, tokenMaker, authService, appLogger)

	// Create HTTP server with configurable timeout values
	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           router,
		ReadTimeout:       cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		ReadHeaderTimeout: cfg.Server.ReadHeaderTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
	}

	// Start the server in a goroutine
	go func() {
		appLogger.Info("Starting server", map[string]any{
			"port": cfg.Server.Port,
			"env":  cfg.Environment,
		})

		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLogger.Error("Failed to start server", map[string]any{
				"error": err.Error(),
			})
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shut down the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server...", nil)

	// Create a deadline to wait for
	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	// Shutdown the server
	if err := server.Shutdown(ctx); err != nil {
		appLogger.Error("Server forced to shutdown", map[string]any{
			"error": err.Error(),
		})
	}

	appLogger.Info("Server exited gracefully", nil)
}

// validateConfig ensures all required configuration values are present
func validateConfig(cfg *config.Config) error {
	var missingConfigs []string

	// Validate server configuration
	if cfg.Server.Port == 0 {
		missingConfigs = append(missingConfigs, "server.port")
	}
	if cfg.Server.ReadTimeout == 0 {
		missingConfigs = append(missingConfigs, "server.readTimeout")
	}
	if cfg.Server.WriteTimeout == 0 {
		missingConfigs = append(missingConfigs, "server.writeTimeout")
	}
	if cfg.Server.ShutdownTimeout == 0 {
		missingConfigs = append(missingConfigs, "server.shutdownTimeout")
	}

	// Validate database configuration
	if cfg.Database.Host == "" && os.Getenv("HH_DB_HOST") == "" {
		missingConfigs = append(missingConfigs, "database.host (or HH_DB_HOST environment variable)")
	}
	if cfg.Database.Port == "" && os.Getenv("HH_DB_PORT") == "" {
		missingConfigs = append(missingConfigs, "database.port (or HH_DB_PORT environment variable)")
	}
	if cfg.Database.Username == "" && os.Getenv("HH_DB_USERNAME") == "" {
		missingConfigs = append(missingConfigs, "database.username (or HH_DB_USERNAME environment variable)")
	}
	if cfg.Database.Password == "" && os.Getenv("HH_DB_PASSWORD") == "" {
		missingConfigs = append(missingConfigs, "database.password (or HH_DB_PASSWORD environment variable)")
	}
	if cfg.Database.Database == "" && os.Getenv("HH_DB_NAME") == "" {
		missingConfigs = append(missingConfigs, "database.database (or HH_DB_NAME environment variable)")
	}
	if cfg.Database.QueryTimeout == 0 {
		missingConfigs = append(missingConfigs, "database.queryTimeout")
	}

	// Validate auth configuration
	if cfg.Auth.TokenSecret == "" && os.Getenv("HH_AUTH_TOKEN_SECRET") == "" {
		missingConfigs = append(missingConfigs, "auth.tokenSecret (or HH_AUTH_TOKEN_SECRET environment variable)")
	}

	// Validate reward configuration
	if cfg.Reward.CoinsPerDonation <= 0 {
		missingConfigs = append(missingConfigs, "reward.coinsPerDonation")
	}

	// Environment should be set with a valid value
	if cfg.Environment == "" {
		missingConfigs = append(missingConfigs, "environment")
	} else if cfg.Environment != config.Development &&
		cfg.Environment != config.Production &&
		cfg.Environment != config.Test {
		return fmt.Errorf("invalid environment value: %s, must be one of: %s, %s, or %s",
			cfg.Environment, config.Development, config.Production, config.Test)
	}

	// Logger configuration
	if cfg.Logger.Level == "" {
		missingConfigs = append(missingConfigs, "logger.level")
	}

	// Return error with list of missing configurations
	if len(missingConfigs) > 0 {
		return fmt.Errorf("missing required configurations: %v", missingConfigs)
	}

	// Warn about weak settings in production
	if cfg.Environment == config.Production {
		var warnings []string

		if cfg.Database.SSLMode != "require" && cfg.Database.SSLMode != "verify-ca" && cfg.Database.SSLMode != "verify-full" {
			warnings = append(warnings, "database.sslMode should be set to 'require', 'verify-ca', or 'verify-full' in production")
		}
		if cfg.Server.ReadTimeout < 5*time.Second {
			warnings = append(warnings, "server.readTimeout is too low for production")
		}
		if cfg.Server.WriteTimeout < 5*time.Second {
			warnings = append(warnings, "server.writeTimeout is too low for production")
		}

		if len(warnings) > 0 {
			log.Printf("Warning: potential security issues in production configuration: %v", warnings)
		}
	}

	return nil
}
