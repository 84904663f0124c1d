package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	coreport "github.com/helphub-app/helphub-server/internal/domain/port/core"
	"github.com/helphub-app/helphub-server/internal/domain/port/usecase"
	"github.com/helphub-app/helphub-server/internal/infrastructure/adapter/api/handler"
	"github.com/helphub-app/helphub-server/internal/infrastructure/adapter/api/middleware"
)

// SetupRoutes configures all the routes for the API
func SetupRoutes(
	router *gin.Engine,
	authHandler *handler.AuthHandler,
	donationHandler *handler.DonationHandler,
	rewardHandler *handler.RewardHandler,
	userHandler *handler.UserHandler,
	tokenMaker coreport.TokenMaker,
	authUseCase usecase.AuthUseCase,
	logger coreport.Logger,
) {
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := router.Group("/api")

	// Public auth routes
	authRoutes := api.Group("/auth")
	{
		authRoutes.POST("/signup", authHandler.Signup)
		authRoutes.POST("/ngo-signup", authHandler.SignupNGO)
		authRoutes.POST("/login", authHandler.Login)
	}

	requireAuth := middleware.RequireAuth(tokenMaker, authUseCase, logger)

	// Donation lifecycle routes
	donationRoutes := api.Group("/donations", requireAuth)
	{
		donationRoutes.POST("/create", donationHandler.Create)
		donationRoutes.GET("/requests", donationHandler.ListPending)
		donationRoutes.POST("/:id/accept", donationHandler.Accept)
		donationRoutes.POST("/:id/reject", donationHandler.Reject)
		donationRoutes.GET("/history/email/:email", donationHandler.History)
	}

	// Coin ledger routes
	coinRoutes := api.Group("/coins", requireAuth)
	{
		coinRoutes.GET("/giftcards", rewardHandler.Catalog)
		coinRoutes.POST("/redeem", rewardHandler.Redeem)
	}

	// Directory and profile routes
	userRoutes := api.Group("/users", requireAuth)
	{
		userRoutes.GET("", userHandler.List)
		userRoutes.GET("/by-email", userHandler.GetProfile)
	}
}

// SetupMiddlewares configures global middlewares for the API
func SetupMiddlewares(router *gin.Engine, logger coreport.Logger) {
	// Apply middlewares in the correct order
	router.Use(middleware.ErrorHandler(logger))
	router.Use(middleware.Logger(logger))
	router.Use(middleware.CORS())
}
