package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	societyapp "github.com/villaledger/backend/internal/application/society"
	"github.com/villaledger/backend/internal/domain/shared"
	"github.com/villaledger/backend/internal/infrastructure/config"
	"github.com/villaledger/backend/internal/infrastructure/logger"
	"github.com/villaledger/backend/internal/infrastructure/persistence"
	"github.com/villaledger/backend/internal/interfaces/http/handler"
	"github.com/villaledger/backend/internal/interfaces/http/middleware"
	"github.com/villaledger/backend/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	_ "github.com/villaledger/backend/docs"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

//	@title			Villa Ledger API
//	@version		1.0
//	@description	Villa society payment tracking API
//	@termsOfService	http://swagger.io/terms/

//	@contact.name	API Support
//	@contact.url	https://github.com/villaledger/backend

//	@license.name	Apache 2.0
//	@license.url	http://www.apache.org/licenses/LICENSE-2.0.html

//	@host		localhost:8080
//	@BasePath	/api/v1

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting Villa Ledger",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Create GORM logger backed by zap
	gormLogLevel := logger.MapGormLogLevel(cfg.Log.Level)
	gormLog := logger.NewGormLogger(log, gormLogLevel)

	// Initialize database connection with custom logger
	db, err := persistence.NewDatabaseWithCustomLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected successfully")

	// Initialize repositories
	villaRepo := persistence.NewGormVillaRepository(db.DB)
	categoryRepo := persistence.NewGormPaymentCategoryRepository(db.DB)
	paymentRepo := persistence.NewGormPaymentRepository(db.DB)
	expenseRepo := persistence.NewGormExpenseRepository(db.DB)
	balanceRepo := persistence.NewGormMonthlyBalanceRepository(db.DB)

	// Initialize application services
	clock := shared.SystemClock{}
	villaService := societyapp.NewVillaService(villaRepo, paymentRepo)
	categoryService := societyapp.NewCategoryService(categoryRepo, clock)
	paymentService := societyapp.NewPaymentService(paymentRepo, villaRepo, categoryRepo)
	expenseService := societyapp.NewExpenseService(expenseRepo)
	balanceService := societyapp.NewBalanceService(balanceRepo, paymentRepo, expenseRepo, clock)
	reconciliationService := societyapp.NewReconciliationService(
		paymentRepo,
		categoryRepo,
		villaRepo,
		clock,
		societyapp.ReconciliationConfig{
			DefaultStandardAmount: cfg.Reconciliation.DefaultStandardAmount,
			MaxPeriods:            cfg.Reconciliation.MaxPeriods,
		},
	)

	// Initialize HTTP handlers
	villaHandler := handler.NewVillaHandler(villaService)
	categoryHandler := handler.NewCategoryHandler(categoryService)
	paymentHandler := handler.NewPaymentHandler(paymentService)
	expenseHandler := handler.NewExpenseHandler(expenseService)
	balanceHandler := handler.NewBalanceHandler(balanceService)
	reconciliationHandler := handler.NewReconciliationHandler(reconciliationService)

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Setup validation
	middleware.SetupValidator()

	// Initialize router with custom middleware
	engine := gin.New()

	// Configure trusted proxies
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	// Apply middleware stack in order:
	// 1. RequestID - Generate/propagate request ID
	// 2. Recovery - Catch panics
	// 3. Logger - Log requests
	// 4. Security - Add security headers
	// 5. CORS - Handle cross-origin requests
	// 6. BodyLimit - Limit request body size
	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.Secure())

	// Configure CORS from config
	corsConfig := middleware.CORSConfig{
		AllowOrigins:     cfg.HTTP.CORSAllowOrigins,
		AllowMethods:     cfg.HTTP.CORSAllowMethods,
		AllowHeaders:     cfg.HTTP.CORSAllowHeaders,
		ExposeHeaders:    []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	engine.Use(middleware.CORSWithConfig(corsConfig))

	// Body size limit
	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))

	// Health check endpoint (outside API versioning)
	engine.GET("/health", healthHandler(db, log))

	// Swagger documentation endpoint
	engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Setup API routes using router
	r := router.NewRouter(engine, router.WithAPIVersion("v1"))

	// Society domain (villas, categories, payments, expenses, balances)
	societyRoutes := router.NewDomainGroup("society", "/society")

	// Villa routes
	societyRoutes.POST("/villas", villaHandler.Create)
	societyRoutes.GET("/villas", villaHandler.List)
	societyRoutes.GET("/villas/:id", villaHandler.GetByID)
	societyRoutes.PUT("/villas/:id", villaHandler.Update)
	societyRoutes.DELETE("/villas/:id", villaHandler.Delete)
	societyRoutes.GET("/villas/:id/payments", paymentHandler.ListByVilla)
	societyRoutes.GET("/villas/:id/pending", reconciliationHandler.PendingByVilla)

	// Category routes
	societyRoutes.POST("/categories", categoryHandler.Create)
	societyRoutes.GET("/categories", categoryHandler.List)
	societyRoutes.GET("/categories/all", categoryHandler.ListAll)
	societyRoutes.GET("/categories/:id", categoryHandler.GetByID)
	societyRoutes.PUT("/categories/:id", categoryHandler.Update)
	societyRoutes.DELETE("/categories/:id", categoryHandler.Deactivate)

	// Payment routes
	societyRoutes.POST("/payments", paymentHandler.Record)
	societyRoutes.GET("/payments/:id", paymentHandler.GetByID)
	societyRoutes.PUT("/payments/:id", paymentHandler.Update)
	societyRoutes.DELETE("/payments/:id", paymentHandler.Delete)

	// Expense routes
	societyRoutes.POST("/expenses", expenseHandler.Create)
	societyRoutes.GET("/expenses", expenseHandler.List)
	societyRoutes.GET("/expenses/summary", expenseHandler.Summary)
	societyRoutes.GET("/expenses/:id", expenseHandler.GetByID)
	societyRoutes.PUT("/expenses/:id", expenseHandler.Update)
	societyRoutes.DELETE("/expenses/:id", expenseHandler.Delete)

	// Monthly balance routes
	societyRoutes.POST("/balances/generate", balanceHandler.Generate)
	societyRoutes.GET("/balances/lookup", balanceHandler.Get)
	societyRoutes.GET("/balances/:year", balanceHandler.List)

	// Reconciliation routes
	societyRoutes.GET("/reconciliation/standard-amount", reconciliationHandler.StandardAmount)
	societyRoutes.GET("/reconciliation/cross-month", reconciliationHandler.CrossMonth)
	societyRoutes.GET("/reconciliation/villa-structure", reconciliationHandler.VillaStructure)

	r.Register(societyRoutes)

	// Register system routes with swagger-documented handlers
	systemHandler := handler.NewSystemHandler()
	systemRoutes := router.NewDomainGroup("system", "/system")
	systemRoutes.GET("/info", systemHandler.GetSystemInfo)
	systemRoutes.GET("/ping", systemHandler.Ping)
	r.Register(systemRoutes)

	// Setup routes
	r.Setup()

	// Also keep a simple ping at root API level for basic health checks
	engine.GET("/api/v1/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	// Create HTTP server with config
	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	// Start server in goroutine
	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}

// healthHandler returns a handler for health check endpoints
func healthHandler(db *persistence.Database, _ *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		reqLog := logger.GetGinLogger(c)
		if err := db.Ping(); err != nil {
			reqLog.Warn("Health check failed", zap.Error(err))
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":   "unhealthy",
				"time":     time.Now().Format(time.RFC3339),
				"database": "error",
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"status":   "healthy",
			"time":     time.Now().Format(time.RFC3339),
			"database": "ok",
		})
	}
}
