package main

import (
	"context"
	"fmt"
	"net/http"
	"os"

	"ledgersync/internal/config"
	"ledgersync/internal/database"
	"ledgersync/internal/handlers"
	"ledgersync/internal/logger"
	"ledgersync/internal/middleware"
	"ledgersync/internal/services"
	"ledgersync/internal/sheets"
	syncpkg "ledgersync/internal/sync"
	"ledgersync/internal/validator"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "ledgersync/internal/docs" // Import swagger docs
)

// @title           Ledgersync API
// @version         1.0
// @description     Ledgersync keeps a bookkeeping spreadsheet and the transaction database in sync: sheet edits flow in through a webhook, computed QB accounts and statuses flow back out in batches.

// @host      localhost:8080
// @BasePath  /api/v1

// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name X-API-Key
// @description Service API key. Also accepted as "Authorization: Bearer <key>".

func main() {
	// Initialize logger (use ENV var if available, default to development)
	logger.Init(os.Getenv("ENV"))
	defer logger.Sync()

	if err := run(); err != nil {
		logger.Get().Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	log := logger.Get()

	// Load configuration
	appConfig, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Initialize database configuration
	dbConfig, err := database.NewConfig()
	if err != nil {
		return fmt.Errorf("failed to load database configuration: %w", err)
	}

	// Create database manager
	dbManager, err := database.NewManager(dbConfig)
	if err != nil {
		return fmt.Errorf("failed to create database manager: %w", err)
	}

	// Run migrations
	if err := dbManager.Migrate(); err != nil {
		return fmt.Errorf("failed to run database migrations: %w", err)
	}

	// Custom request validators
	validator.Register()

	// Initialize services
	db := dbManager.DB()
	aliasService := services.NewAliasService(db)
	transactionService := services.NewTransactionService(db, aliasService)
	ruleService := services.NewRuleService(db, transactionService)

	// Spreadsheet client and sync adapters
	sheetsClient, err := sheets.NewGoogleClient(context.Background(), appConfig.SpreadsheetID, appConfig.ServiceAccountJSON)
	if err != nil {
		return fmt.Errorf("failed to create sheets client: %w", err)
	}
	layout := syncpkg.DefaultLayout()
	inbound := syncpkg.NewInbound(transactionService, ruleService, sheetsClient, layout)
	outbound := syncpkg.NewOutbound(db, sheetsClient, layout, appConfig.SyncBatchSize)

	// Initialize handlers
	transactionHandler := handlers.NewTransactionHandler(transactionService)
	ruleHandler := handlers.NewRuleHandler(ruleService)
	aliasHandler := handlers.NewAliasHandler(aliasService)
	syncHandler := handlers.NewSyncHandler(inbound, outbound)

	// Initialize Gin router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogging())
	router.Use(middleware.ErrorHandler())

	// CORS middleware
	router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PATCH, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-API-Key")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check endpoint
	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// API v1 group, all routes behind the service API key
	v1 := router.Group("/api/v1")
	v1.Use(middleware.APIKeyAuth(appConfig.APIKey))

	// Transaction routes
	transactions := v1.Group("/transactions")
	transactions.POST("", transactionHandler.CreateTransaction)
	transactions.GET("", transactionHandler.ListTransactions)
	transactions.GET("/:id", transactionHandler.GetTransactionByID)
	transactions.PATCH("/:id", transactionHandler.UpdateTransaction)
	transactions.DELETE("/:id", transactionHandler.DeleteTransaction)

	// Merchant rule routes
	rules := v1.Group("/rules")
	rules.POST("", ruleHandler.CreateRule)
	rules.GET("", ruleHandler.ListRules)
	rules.GET("/:id", ruleHandler.GetRuleByID)
	rules.PATCH("/:id", ruleHandler.UpdateRule)

	// Merchant alias routes
	aliases := v1.Group("/aliases")
	aliases.POST("", aliasHandler.CreateAlias)
	aliases.GET("", aliasHandler.ListAliases)

	// Sync routes
	v1.POST("/events/sheet-edit", syncHandler.SheetEdit)
	v1.POST("/sync/run", syncHandler.RunSync)

	log.Infof("Starting ledgersync API on port %s", appConfig.Port)
	log.Infof("Swagger documentation available at http://localhost:%s/swagger/index.html", appConfig.Port)
	return router.Run(":" + appConfig.Port)
}
