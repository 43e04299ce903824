package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/Cheragshah/udyamipmp-api/api/swagger"
	"github.com/Cheragshah/udyamipmp-api/internal/handler"
	"github.com/Cheragshah/udyamipmp-api/internal/middleware"
	"github.com/Cheragshah/udyamipmp-api/internal/models"
	"github.com/Cheragshah/udyamipmp-api/internal/repository"
	"github.com/Cheragshah/udyamipmp-api/internal/service"
	"github.com/Cheragshah/udyamipmp-api/pkg/cache"
	"github.com/Cheragshah/udyamipmp-api/pkg/config"
	"github.com/Cheragshah/udyamipmp-api/pkg/database"
	"github.com/Cheragshah/udyamipmp-api/pkg/logger"
	corsmiddleware "github.com/Cheragshah/udyamipmp-api/pkg/middleware/cors"
	reqidmiddleware "github.com/Cheragshah/udyamipmp-api/pkg/middleware/requestid"
	"github.com/Cheragshah/udyamipmp-api/pkg/storage"
)

// @title Udyami PMP API
// @version 1.0.0
// @description Participant management dashboard backend for the Udyami entrepreneurship program
// @BasePath /
// @schemes http

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Sugar().Fatalw("failed to connect to postgres", "error", err)
	}
	defer db.Close()

	// Redis is optional; the dashboard falls back to computing summaries on
	// every request when the cache is unreachable.
	redisClient, err := cache.NewRedis(cfg.Redis)
	if err != nil {
		logr.Sugar().Warnw("redis unavailable, summary caching disabled", "error", err)
		redisClient = nil
	} else {
		defer redisClient.Close()
	}

	validate := validator.New()
	metricsSvc := service.NewMetricsService()

	userRepo := repository.NewUserRepository(db)
	profileRepo := repository.NewProfileRepository(db)
	journeyRepo := repository.NewJourneyRepository(db)
	progressRepo := repository.NewProgressRepository(db)
	submissionRepo := repository.NewSubmissionRepository(db)
	documentRepo := repository.NewDocumentRepository(db)
	tradeRepo := repository.NewTradeRepository(db)
	sessionRepo := repository.NewSessionRepository(db)
	enrollmentRepo := repository.NewEnrollmentRepository(db)
	ecommerceRepo := repository.NewEcommerceRepository(db)
	auditRepo := repository.NewAuditRepository(db)
	navigationRepo := repository.NewNavigationRepository(db)
	exportRepo := repository.NewExportRepository(db)

	var cacheSvc *service.CacheService
	if redisClient != nil {
		cacheRepo := repository.NewCacheRepository(redisClient, logr)
		cacheSvc = service.NewCacheService(cacheRepo, metricsSvc, cfg.Dashboard.CacheTTL, logr, cfg.Dashboard.Enabled)
	}

	authSvc := service.NewAuthService(userRepo, validate, logr, service.AuthConfig{
		AccessTokenSecret:  cfg.JWT.Secret,
		AccessTokenExpiry:  cfg.JWT.Expiration,
		RefreshTokenExpiry: cfg.JWT.RefreshExpiration,
		Issuer:             "udyamipmp-api",
		Audience:           []string{"udyamipmp-dashboard"},
	})

	summarySvc := service.NewSummaryService(service.SummaryServiceParams{
		Submissions: submissionRepo,
		Documents:   documentRepo,
		Trades:      tradeRepo,
		Enrollments: enrollmentRepo,
		Progress:    progressRepo,
		Profiles:    profileRepo,
		Stages:      journeyRepo,
		Cache:       cacheSvc,
		Logger:      logr,
		Config:      service.SummaryServiceConfig{CacheTTL: cfg.Dashboard.CacheTTL},
	})

	reportSvc := service.NewReportService(service.ReportServiceParams{
		Profiles:    profileRepo,
		Submissions: submissionRepo,
		Documents:   documentRepo,
		Trades:      tradeRepo,
		Attendance:  sessionRepo,
		Progress:    progressRepo,
		Ecommerce:   ecommerceRepo,
		Logger:      logr,
		Config: service.ReportServiceConfig{
			TableRowCap: cfg.Reports.TableRowCap,
			Language:    cfg.Locale.DefaultLanguage,
		},
	})

	bulkSvc := service.NewBulkService(service.BulkServiceParams{
		Submissions: submissionRepo,
		Documents:   documentRepo,
		Progress:    progressRepo,
		Sessions:    sessionRepo,
		Profiles:    profileRepo,
		Stages:      journeyRepo,
		Audit:       auditRepo,
		Summaries:   summarySvc,
		Validator:   validate,
		Logger:      logr,
	})

	sessionSvc := service.NewSessionService(sessionRepo, auditRepo, bulkSvc, validate, logr)
	auditSvc := service.NewAuditService(auditRepo, logr)
	navigationSvc := service.NewNavigationService(navigationRepo, logr, service.NavigationServiceConfig{
		DefaultLanding: cfg.Navigation.DefaultLanding,
	})

	exportStorage, err := storage.NewLocalStorage(cfg.Reports.StorageDir)
	if err != nil {
		logr.Sugar().Fatalw("failed to init export storage", "error", err, "dir", cfg.Reports.StorageDir)
	}
	exportSigner := storage.NewSignedURLSigner(cfg.Reports.SignedURLSecret, cfg.Reports.SignedURLTTL)
	exportSvc := service.NewExportService(service.ExportServiceParams{
		Reports: reportSvc,
		Store:   exportRepo,
		Files:   exportStorage,
		Signer:  exportSigner,
		Metrics: metricsSvc,
		Logger:  logr,
		Config: service.ExportConfig{
			APIPrefix:  cfg.APIPrefix,
			ResultTTL:  cfg.Reports.SignedURLTTL,
			Workers:    cfg.Reports.WorkerConcurrency,
			MaxRetries: cfg.Reports.WorkerRetries,
		},
	})
	exportSvc.Start(ctx)

	go func() {
		ticker := time.NewTicker(cfg.Reports.CleanupInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				exportSvc.Cleanup(ctx)
			}
		}
	}()

	authHandler := handler.NewAuthHandler(authSvc)
	summaryHandler := handler.NewSummaryHandler(summarySvc)
	reportHandler := handler.NewReportHandler(reportSvc)
	exportHandler := handler.NewExportHandler(exportSvc)
	bulkHandler := handler.NewBulkHandler(bulkSvc)
	sessionHandler := handler.NewSessionHandler(sessionSvc)
	auditHandler := handler.NewAuditHandler(auditSvc)
	navigationHandler := handler.NewNavigationHandler(navigationSvc)
	profileHandler := handler.NewProfileHandler(profileRepo)
	metricsHandler := handler.NewMetricsHandler(metricsSvc)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metricsSvc))
	r.Use(middleware.WithResponseMeta())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/ready", func(c *gin.Context) {
		if err := db.PingContext(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded", "database": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})
	r.GET("/metrics", metricsHandler.Prometheus)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)

	auth := api.Group("/auth")
	{
		auth.POST("/login", authHandler.Login)
		auth.POST("/refresh", authHandler.Refresh)

		authed := auth.Group("", middleware.JWT(authSvc))
		authed.POST("/logout", authHandler.Logout)
		authed.POST("/change-password", authHandler.ChangePassword)
		authed.GET("/me", authHandler.Me)
	}

	reviewers := middleware.RequireRoles(models.RoleAdmin, models.RoleCoach)

	dashboard := api.Group("/dashboard", middleware.JWT(authSvc), reviewers)
	{
		dashboard.GET("/summary", summaryHandler.GlobalPending)
		dashboard.GET("/participants", summaryHandler.Participants)
	}

	reports := api.Group("/reports")
	{
		// Download links are pre-signed; the token in the path carries the
		// authorization.
		reports.GET("/exports/download/:token", exportHandler.Download)

		protected := reports.Group("", middleware.JWT(authSvc), reviewers)
		protected.GET("/catalog", reportHandler.Catalog)
		protected.POST("/table", reportHandler.Table)
		protected.POST("/chart", reportHandler.Chart)
		protected.POST("/exports", exportHandler.Queue)
		protected.GET("/exports/:id", exportHandler.Status)
	}

	bulk := api.Group("/bulk", middleware.JWT(authSvc), reviewers)
	{
		bulk.POST("/tasks/verify", bulkHandler.VerifyTasks)
		bulk.POST("/documents/approve", bulkHandler.ApproveDocuments)
		bulk.POST("/stages/complete", bulkHandler.CompleteStages)
	}

	sessions := api.Group("/sessions", middleware.JWT(authSvc))
	{
		sessions.POST("/complete", reviewers, bulkHandler.CompleteSession)
		sessions.GET("/links", sessionHandler.List)

		admin := sessions.Group("/links", middleware.RequireRoles(models.RoleAdmin))
		admin.POST("", sessionHandler.Create)
		admin.PUT("/:id", sessionHandler.Update)
		admin.POST("/:id/complete", sessionHandler.Complete)
		admin.DELETE("/:id", sessionHandler.Delete)
	}

	api.GET("/audit/:table/:record", middleware.JWT(authSvc), reviewers, auditHandler.History)
	api.GET("/navigation", middleware.JWT(authSvc), navigationHandler.Resolve)
	api.GET("/participants", middleware.JWT(authSvc), reviewers, profileHandler.List)
	api.GET("/metrics/snapshot", middleware.JWT(authSvc), middleware.RequireRoles(models.RoleAdmin), metricsHandler.Snapshot)

	addr := fmt.Sprintf(":%d", cfg.Port)
	srv := &http.Server{Addr: addr, Handler: r}

	go func() {
		logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logr.Sugar().Fatalw("server failed", "error", err)
		}
	}()

	<-ctx.Done()
	logr.Sugar().Infow("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logr.Sugar().Errorw("graceful shutdown failed", "error", err)
	}
	exportSvc.Stop()
}
