package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"rento-service/internal/background"
	"rento-service/internal/config"
	"rento-service/internal/handlers"
	"rento-service/internal/metrics"
	"rento-service/internal/middleware"
	"rento-service/internal/models"
	natsClient "rento-service/internal/nats"
	redisClient "rento-service/internal/redis"
	"rento-service/internal/repository"
	"rento-service/internal/services"
)

func main() {
	// Load .env if present; real deployments set env directly
	_ = godotenv.Load()

	cfg := config.New()

	logger := newLogger(cfg)

	if err := cfg.Validate(); err != nil {
		logger.WithError(err).Fatal("Invalid configuration")
	}

	// Initialize database connection
	db, err := initDatabase(cfg, logger)
	if err != nil {
		logger.WithError(err).Fatal("Failed to initialize database")
	}

	// Auto-migrate models
	if err := autoMigrate(db, logger); err != nil {
		logger.WithError(err).Fatal("Failed to migrate database")
	}

	// Initialize Redis connection (optional: token revocation and the
	// notice cache degrade gracefully without it)
	var rc *redisClient.Client
	rc, err = redisClient.NewClient(cfg.Redis)
	if err != nil {
		logger.WithError(err).Warn("Failed to connect to Redis; token revocation and notice caching disabled")
		rc = nil
	} else {
		logger.Info("Connected to Redis")
	}

	// Initialize NATS connection for event publishing (optional)
	var nc *natsClient.Client
	nc, err = natsClient.NewClient(cfg.NATS)
	if err != nil {
		logger.WithError(err).Warn("Failed to connect to NATS; event publishing disabled")
		nc = nil
	} else {
		logger.Info("Connected to NATS")
		defer nc.Close()
	}

	// Avoid typed-nil interfaces when the optional backends are absent
	var revoker services.TokenRevoker
	var noticeCache services.NoticeCache
	if rc != nil {
		revoker = rc
		noticeCache = rc
	}
	var events services.EventPublisher
	if nc != nil {
		events = nc
	}

	// Initialize repositories
	authRepo := repository.NewAuthRepository(db)
	profileRepo := repository.NewProfileRepository(db)
	leadRepo := repository.NewLeadRepository(db)
	noticeRepo := repository.NewNoticeRepository(db)
	propertyRepo := repository.NewPropertyRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)
	complaintRepo := repository.NewComplaintRepository(db)

	// Initialize services
	jwtSvc := services.NewJWTService(cfg.Auth.JWTSecret, cfg.Auth.TokenExpiryHours)
	authSvc := services.NewAuthService(authRepo, profileRepo, jwtSvc, revoker, logger)
	leadSvc := services.NewLeadService(leadRepo, events, logger)
	noticeSvc := services.NewNoticeService(noticeRepo, noticeCache, events, logger)
	propertySvc := services.NewPropertyService(propertyRepo, events, logger)
	paymentSvc := services.NewPaymentService(paymentRepo, events, logger)
	complaintSvc := services.NewComplaintService(complaintRepo, events, logger)

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler(db, nc, rc)
	authHandler := handlers.NewAuthHandler(authSvc)
	leadHandler := handlers.NewLeadHandler(leadSvc)
	noticeHandler := handlers.NewNoticeHandler(noticeSvc)
	propertyHandler := handlers.NewPropertyHandler(propertySvc)
	paymentHandler := handlers.NewPaymentHandler(paymentSvc)
	complaintHandler := handlers.NewComplaintHandler(complaintSvc)

	// Start background jobs
	bgRunner := background.NewRunner(cfg.Jobs, authRepo, leadRepo, logger)
	if err := bgRunner.Start(); err != nil {
		logger.WithError(err).Fatal("Failed to start background jobs")
	}

	// Setup router
	router := setupRouter(
		cfg,
		logger,
		authSvc,
		healthHandler,
		authHandler,
		leadHandler,
		noticeHandler,
		propertyHandler,
		paymentHandler,
		complaintHandler,
	)

	server := &http.Server{
		Addr:    fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port),
		Handler: router,
	}

	// Start server in a goroutine
	go func() {
		logger.WithField("port", cfg.Server.Port).Info("Starting rento-service")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.WithError(err).Fatal("Failed to start server")
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down server...")

	// Stop background jobs first
	bgRunner.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.WithError(err).Error("Server forced to shutdown")
	}

	if rc != nil {
		if err := rc.Close(); err != nil {
			logger.WithError(err).Error("Error closing Redis connection")
		}
	}

	logger.Info("Server exited")
}

func newLogger(cfg *config.Config) *logrus.Logger {
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	if level, err := logrus.ParseLevel(cfg.App.LogLevel); err == nil {
		logger.SetLevel(level)
	}
	return logger
}

func setupRouter(
	cfg *config.Config,
	logger *logrus.Logger,
	authSvc *services.AuthService,
	healthHandler *handlers.HealthHandler,
	authHandler *handlers.AuthHandler,
	leadHandler *handlers.LeadHandler,
	noticeHandler *handlers.NoticeHandler,
	propertyHandler *handlers.PropertyHandler,
	paymentHandler *handlers.PaymentHandler,
	complaintHandler *handlers.ComplaintHandler,
) *gin.Engine {
	if cfg.App.Environment != "development" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// CORS configuration
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{
		"http://localhost:3000",
		"http://localhost:5173",
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Request-ID"}
	corsConfig.AllowCredentials = true

	// Global middleware
	router.Use(cors.New(corsConfig))
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.StructuredLogger(logger))
	router.Use(metrics.Middleware())

	// Metrics endpoint (Prometheus scraping)
	router.GET("/metrics", metrics.Handler())

	// Health endpoints
	router.GET("/health", healthHandler.Health)
	router.GET("/ready", healthHandler.Ready)

	authn := middleware.Auth(authSvc)

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Public auth endpoints
		auth := v1.Group("/auth")
		{
			auth.POST("/signup", authHandler.SignUp)
			auth.POST("/login", authHandler.Login)
		}

		// Authenticated auth endpoints
		authed := v1.Group("/auth")
		authed.Use(authn)
		{
			authed.POST("/logout", authHandler.Logout)
			authed.GET("/me", authHandler.Me)
			authed.PUT("/me", authHandler.UpdateMe)
		}

		// Leads. Creation is open to tenants and anonymous visitors;
		// posting to a thread needs a session; listing and status
		// changes belong to brokers and managers.
		leads := v1.Group("/leads")
		{
			leads.POST("", leadHandler.CreateLead)
			leads.GET("/:id/messages", leadHandler.ListMessages)
		}
		leadThreads := v1.Group("/leads")
		leadThreads.Use(authn)
		{
			leadThreads.POST("/:id/messages", leadHandler.PostMessage)
		}
		leadAdmin := v1.Group("/leads")
		leadAdmin.Use(authn, middleware.RequireRole(models.RoleBroker, models.RoleManager))
		{
			leadAdmin.GET("", leadHandler.ListLeads)
			leadAdmin.GET("/:id", leadHandler.GetLead)
			leadAdmin.PATCH("/:id/status", leadHandler.UpdateStatus)
		}

		// Manager-to-tenant messages
		notices := v1.Group("/messages")
		notices.Use(authn)
		{
			notices.POST("", middleware.RequireRole(models.RoleManager), noticeHandler.PostMessage)
			notices.GET("/recent", middleware.RequireRole(models.RoleManager), noticeHandler.ListRecent)
			notices.GET("/notices", middleware.RequireRole(models.RoleTenant), noticeHandler.VisibleNotices)
		}

		// Properties and tenancy
		properties := v1.Group("/properties")
		properties.Use(authn)
		{
			properties.GET("", propertyHandler.ListAvailable)
			properties.GET("/:id", propertyHandler.GetProperty)
			properties.GET("/:id/viewings", middleware.RequireRole(models.RoleBroker, models.RoleManager), propertyHandler.ListPropertyViewings)
			properties.GET("/:id/payments", middleware.RequireRole(models.RoleManager), paymentHandler.ListPropertyPayments)
			properties.POST("/:id/viewings", middleware.RequireRole(models.RoleTenant), propertyHandler.RequestViewing)

			managed := properties.Group("")
			managed.Use(middleware.RequireRole(models.RoleManager))
			{
				managed.POST("", propertyHandler.CreateProperty)
				managed.PUT("/:id", propertyHandler.UpdateProperty)
				managed.POST("/:id/tenants", propertyHandler.AssignTenant)
				managed.DELETE("/:id/tenants/:tenantId", propertyHandler.RemoveTenant)
			}
		}

		// Manager views
		manage := v1.Group("/manage")
		manage.Use(authn, middleware.RequireRole(models.RoleManager))
		{
			manage.GET("/properties", propertyHandler.ListOwnProperties)
			manage.GET("/tenants", propertyHandler.ListManagedTenants)
			manage.GET("/complaints", complaintHandler.ListOpenComplaints)
			manage.PATCH("/complaints/:id", complaintHandler.AdvanceStatus)
		}

		// Viewing responses (broker or manager)
		viewings := v1.Group("/viewings")
		viewings.Use(authn, middleware.RequireRole(models.RoleBroker, models.RoleManager))
		{
			viewings.PATCH("/:id", propertyHandler.RespondToViewing)
		}

		// Tenant self-service
		me := v1.Group("/me")
		me.Use(authn, middleware.RequireRole(models.RoleTenant))
		{
			me.GET("/assignment", propertyHandler.CurrentAssignment)
			me.GET("/viewings", propertyHandler.ListMyViewings)
			me.POST("/payments", paymentHandler.RecordPayment)
			me.GET("/payments", paymentHandler.ListMyPayments)
			me.POST("/expenses", paymentHandler.RecordExpense)
			me.GET("/expenses", paymentHandler.ListMyExpenses)
			me.POST("/complaints", complaintHandler.FileComplaint)
			me.GET("/complaints", complaintHandler.ListMyComplaints)
		}
	}

	return router
}

func initDatabase(cfg *config.Config, logger *logrus.Logger) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.Database.DSN()), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Test connection
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database instance: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	logger.Info("Connected to database")
	return db, nil
}

func autoMigrate(db *gorm.DB, logger *logrus.Logger) error {
	logger.Info("Starting database migration")

	// Enable UUID extension in PostgreSQL
	if err := db.Exec("CREATE EXTENSION IF NOT EXISTS \"uuid-ossp\"").Error; err != nil {
		logger.WithError(err).Warn("Failed to create uuid-ossp extension")
	}

	modelsToMigrate := []interface{}{
		&models.User{},
		&models.Session{},
		&models.Profile{},
		&models.TenantProfile{},
		&models.BrokerProfile{},
		&models.ManagerProfile{},
		&models.Lead{},
		&models.LeadMessage{},
		&models.ManagerTenantMessage{},
		&models.Property{},
		&models.TenantAssignment{},
		&models.Viewing{},
		&models.Payment{},
		&models.Expense{},
		&models.Complaint{},
	}

	for _, model := range modelsToMigrate {
		if err := db.AutoMigrate(model); err != nil {
			return fmt.Errorf("failed to migrate %T: %w", model, err)
		}
	}

	logger.Info("Database migration completed")
	return nil
}
