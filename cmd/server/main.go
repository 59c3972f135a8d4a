package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	_ "github.com/horologe/storefront/docs"
	analyticsapp "github.com/horologe/storefront/internal/application/analytics"
	catalogapp "github.com/horologe/storefront/internal/application/catalog"
	identityapp "github.com/horologe/storefront/internal/application/identity"
	notificationapp "github.com/horologe/storefront/internal/application/notification"
	orderapp "github.com/horologe/storefront/internal/application/order"
	settingsapp "github.com/horologe/storefront/internal/application/settings"
	"github.com/horologe/storefront/internal/domain/settings"
	"github.com/horologe/storefront/internal/infrastructure/auth"
	"github.com/horologe/storefront/internal/infrastructure/cache"
	"github.com/horologe/storefront/internal/infrastructure/config"
	"github.com/horologe/storefront/internal/infrastructure/event"
	"github.com/horologe/storefront/internal/infrastructure/logger"
	"github.com/horologe/storefront/internal/infrastructure/migration"
	"github.com/horologe/storefront/internal/infrastructure/notification"
	"github.com/horologe/storefront/internal/infrastructure/persistence"
	"github.com/horologe/storefront/internal/infrastructure/printing"
	"github.com/horologe/storefront/internal/infrastructure/storage"
	"github.com/horologe/storefront/internal/infrastructure/telemetry"
	"github.com/horologe/storefront/internal/interfaces/http/handler"
	"github.com/horologe/storefront/internal/interfaces/http/middleware"
	"github.com/horologe/storefront/internal/interfaces/http/router"
	"github.com/horologe/storefront/migrations"
)

// version is overridden at build time with -ldflags "-X main.version=..."
var version = "dev"

const publicSettingsTTL = 5 * time.Minute

//	@title			Horologe Storefront API
//	@version		1.0
//	@description	Watch retailer storefront and back office API
//	@termsOfService	http://swagger.io/terms/

//	@contact.name	Horologe Engineering
//	@contact.email	engineering@horologe.example.com

//	@license.name	Apache 2.0
//	@license.url	http://www.apache.org/licenses/LICENSE-2.0.html

//	@host		localhost:8080
//	@BasePath	/api/v1

//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				Bearer token authentication. Format: "Bearer {token}"

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	logCfg := logger.Config{Level: cfg.Log.Level, Format: cfg.Log.Format, Output: cfg.Log.Output}
	log := logger.New(logCfg)

	// Tracing
	tracerCfg := telemetry.ConfigFrom(cfg.Telemetry, version)
	tp, err := telemetry.NewTracerProvider(ctx, tracerCfg, log)
	if err != nil {
		log.Fatal("Failed to initialize tracer provider", zap.Error(err))
	}

	// Log export rebuilds the logger with an OpenTelemetry core teed in
	lp, err := telemetry.NewLoggerProvider(ctx, telemetry.LogsConfigFrom(tracerCfg, cfg.Telemetry.LogExportEnabled), log)
	if err != nil {
		log.Fatal("Failed to initialize logger provider", zap.Error(err))
	}
	if lp.IsEnabled() {
		log = logger.New(logCfg, logger.WithCore(telemetry.NewZapOTELCore(telemetry.ZapBridgeConfig{
			ServiceName:    tracerCfg.ServiceName,
			LoggerProvider: lp,
			Level:          zapcore.InfoLevel,
		})))
	}
	defer func() {
		_ = log.Sync()
	}()

	log.Info("Starting storefront",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
		zap.String("version", version),
	)

	mp, err := telemetry.NewMeterProvider(ctx, telemetry.MetricsConfigFrom(tracerCfg), log)
	if err != nil {
		log.Fatal("Failed to initialize meter provider", zap.Error(err))
	}
	meter := mp.Meter("storefront")

	profiler, err := telemetry.NewProfiler(
		telemetry.ProfilerConfigFrom(cfg.Telemetry.ProfilingEnabled, cfg.Telemetry.PyroscopeURL, tracerCfg.ServiceName), log)
	if err != nil {
		log.Warn("Continuous profiling unavailable", zap.Error(err))
	} else if profiler.IsEnabled() {
		if err := tp.EnableSpanProfiles(); err != nil {
			log.Warn("Failed to enable span profiles", zap.Error(err))
		}
	}

	// Database
	db, err := persistence.NewDatabase(&cfg.Database, log, cfg.Log.Level)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected", zap.String("driver", db.Driver))

	dbTracing := telemetry.NewDBTracingPlugin(telemetry.DBTracingConfigFor(
		tracerCfg.Enabled && cfg.Telemetry.DBTraceEnabled, db.Driver), log)
	if err := dbTracing.RegisterOtelGorm(db.DB); err != nil {
		log.Warn("Failed to register database tracing", zap.Error(err))
	}

	if err := migrateSchema(cfg, db, log); err != nil {
		log.Fatal("Failed to migrate schema", zap.Error(err))
	}

	// Cache and token revocation share one Redis client when available
	cacheStore, redisClient := cache.Open(ctx, cfg.Redis, log)
	defer func() {
		if err := cacheStore.Close(); err != nil {
			log.Warn("Error closing cache", zap.Error(err))
		}
	}()
	var revocation auth.RevocationList = auth.NewMemoryRevocationList()
	if redisClient != nil {
		revocation = auth.NewRedisRevocationList(redisClient)
	}

	objectStore, err := storage.New(ctx, cfg.Storage, log)
	if err != nil {
		log.Fatal("Failed to initialize object storage", zap.Error(err))
	}

	// Invoice printing falls back to HTML when no renderer is configured
	var pdfRenderer printing.PDFRenderer
	if cfg.Printing.PDFEnabled {
		r, err := printing.NewChromedpRenderer(printing.ChromedpConfigFrom(cfg.Printing, log))
		if err != nil {
			log.Warn("PDF rendering unavailable, invoices will be served as HTML", zap.Error(err))
		} else {
			pdfRenderer = r
			defer func() {
				_ = r.Close()
			}()
		}
	}
	invoicePrinter := printing.NewInvoicePrinter(printing.NewTemplateEngine(), pdfRenderer, log)

	// Repositories
	categoryRepo := persistence.NewGormCategoryRepository(db.DB)
	productRepo := persistence.NewGormProductRepository(db.DB)
	reviewRepo := persistence.NewGormReviewRepository(db.DB)
	orderRepo := persistence.NewGormOrderRepository(db.DB)
	settingsRepo := persistence.NewGormSettingsRepository(db.DB)
	userRepo := persistence.NewGormUserRepository(db.DB)

	// Event bus
	businessMetrics, err := telemetry.NewBusinessMetrics(meter, log)
	if err != nil {
		log.Fatal("Failed to create business metrics", zap.Error(err))
	}
	bus := event.NewAsyncEventBus(event.Options{
		Workers:        cfg.Event.Workers,
		QueueSize:      cfg.Event.QueueSize,
		HandlerTimeout: cfg.Event.HandlerTimeout,
	}, log, event.WithObserver(businessMetrics))

	// Services
	settingsService := settingsapp.NewService(settingsRepo,
		cache.NewJSON[settings.PublicSettings](cacheStore, publicSettingsTTL), log)
	if err := settingsService.EnsureDefaults(ctx); err != nil {
		log.Fatal("Failed to create default settings", zap.Error(err))
	}

	orderService := orderapp.NewService(orderRepo, bus, invoicePrinter, settingsService,
		orderapp.ServiceConfig{EnforceTransitions: cfg.Order.EnforceTransitions}, log)
	customerService := orderapp.NewCustomerService(orderRepo)
	analyticsService := analyticsapp.NewService(orderRepo, categoryRepo, productRepo, cfg.Analytics.Location(), log)
	categoryService := catalogapp.NewCategoryService(categoryRepo, log)
	productService := catalogapp.NewProductService(productRepo, categoryRepo, reviewRepo, log)
	uploadService := catalogapp.NewUploadService(objectStore, cfg.Storage.MaxUploadSize, log)

	jwtService := auth.NewJWTService(cfg.JWT)
	authService := identityapp.NewAuthService(userRepo, jwtService, revocation, log)
	if err := authService.BootstrapAdmin(ctx, cfg.Admin); err != nil {
		log.Fatal("Failed to bootstrap admin account", zap.Error(err))
	}

	sender, err := notification.NewSender(cfg.Notification, log)
	if err != nil {
		log.Fatal("Failed to configure notifications", zap.Error(err))
	}
	notifier := notificationapp.NewOrderNotificationHandler(notificationapp.NewComposer(), sender, settingsService, log)

	bus.Subscribe(notifier, notifier.EventTypes()...)
	bus.Subscribe(businessMetrics, businessMetrics.EventTypes()...)
	if err := bus.Start(ctx); err != nil {
		log.Fatal("Failed to start event bus", zap.Error(err))
	}
	businessMetrics.StartPeriodicCollection(ctx, orderRepo, 0)

	if err := middleware.SetupValidator(); err != nil {
		log.Fatal("Failed to register validators", zap.Error(err))
	}

	// Gin engine
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := gin.New()
	if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
		log.Warn("Invalid trusted proxies", zap.Error(err))
	}

	// Order matters: request ids and tracing come first so every later
	// middleware logs and records against the same request
	engine.Use(middleware.RequestID())
	engine.Use(middleware.TracingWithConfig(middleware.TracingConfig{
		ServiceName: tracerCfg.ServiceName,
		Enabled:     tp.IsEnabled(),
	}))
	engine.Use(middleware.SpanEnricher())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.HTTPMetrics(meter, log))
	if profiler != nil && profiler.IsEnabled() {
		engine.Use(middleware.ProfilingWithConfig(middleware.DefaultProfilingConfig()))
	}
	engine.Use(middleware.SecureWithConfig(middleware.DefaultSecurityConfig()))
	engine.Use(middleware.CORSWithConfig(middleware.CORSConfigFrom(cfg.HTTP)))
	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))

	if cfg.HTTP.RateLimitEnabled {
		limiter := middleware.NewRateLimiter(cfg.HTTP.RateLimitRequests, cfg.HTTP.RateLimitWindow)
		engine.Use(middleware.RateLimit(limiter))
		log.Info("Rate limiting enabled",
			zap.Int("requests", cfg.HTTP.RateLimitRequests),
			zap.Duration("window", cfg.HTTP.RateLimitWindow),
		)
	}

	authCfg := middleware.AuthConfig{JWTService: jwtService, Revocation: revocation, Logger: log}
	guards := router.Guards{
		Authenticate: middleware.Authenticate(authCfg),
		RequireAdmin: middleware.RequireAdmin(authCfg),
	}
	if cfg.HTTP.AuthRateLimitEnabled {
		guards.LoginRateLimit = middleware.RateLimit(
			middleware.NewRateLimiter(cfg.HTTP.AuthRateLimitRequests, cfg.HTTP.AuthRateLimitWindow))
	}

	// Health check (outside API versioning)
	optional := map[string]handler.Pinger{}
	if redisClient != nil {
		optional["cache"] = handler.PingFunc(func(ctx context.Context) error {
			return redisClient.Ping(ctx).Err()
		})
	}
	systemHandler := handler.NewSystemHandler(version, db, optional)
	engine.GET("/health", systemHandler.Health)

	engine.GET("/swagger/*any",
		middleware.SwaggerProtection(cfg.Swagger, guards.RequireAdmin),
		ginSwagger.WrapHandler(swaggerFiles.Handler),
	)

	if local, ok := objectStore.(*storage.LocalStore); ok {
		engine.Static("/uploads", local.Root())
	}

	router.NewRouter(engine, router.WithAPIVersion("v1")).
		Register(router.StorefrontGroups(router.Handlers{
			Orders:     handler.NewOrderHandler(orderService, customerService),
			Analytics:  handler.NewAnalyticsHandler(analyticsService),
			Settings:   handler.NewSettingsHandler(settingsService),
			Products:   handler.NewProductHandler(productService),
			Categories: handler.NewCategoryHandler(categoryService),
			Uploads:    handler.NewUploadHandler(uploadService),
			Auth:       handler.NewAuthHandler(authService),
		}, guards)...).
		Setup()

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}

	// Drain queued notifications after the last request has published
	busCtx, busCancel := context.WithTimeout(context.Background(), cfg.Event.ShutdownTimeout)
	if err := bus.Stop(busCtx); err != nil {
		log.Warn("Event bus did not drain before timeout", zap.Error(err))
	}
	busCancel()

	businessMetrics.Stop()
	cancel()

	if profiler != nil {
		if err := profiler.Stop(); err != nil {
			log.Warn("Error stopping profiler", zap.Error(err))
		}
	}
	if err := mp.Shutdown(shutdownCtx); err != nil {
		log.Warn("Error shutting down meter provider", zap.Error(err))
	}
	if err := tp.Shutdown(shutdownCtx); err != nil {
		log.Warn("Error shutting down tracer provider", zap.Error(err))
	}
	if err := lp.Shutdown(shutdownCtx); err != nil {
		log.Warn("Error shutting down logger provider", zap.Error(err))
	}

	log.Info("Server exited")
}

// migrateSchema applies the embedded SQL migrations on PostgreSQL. GORM
// auto-migration is used instead when enabled, which is how SQLite
// development databases get their tables.
func migrateSchema(cfg *config.Config, db *persistence.Database, log *zap.Logger) error {
	if cfg.Database.AutoMigrate || db.Driver == "sqlite" {
		log.Info("Running GORM auto-migration")
		return db.AutoMigrate()
	}

	sqlDB, err := db.DB.DB()
	if err != nil {
		return err
	}
	m, err := migration.New(sqlDB, migrations.FS, log)
	if err != nil {
		return err
	}
	defer func() {
		if err := m.Close(); err != nil {
			log.Warn("Error closing migrator", zap.Error(err))
		}
	}()
	return m.Up()
}
