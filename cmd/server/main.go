package main

import (
	"context"
	"database/sql"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	catalogapp "github.com/adebold/Commerce-Studio-sub022/internal/application/catalog"
	identityapp "github.com/adebold/Commerce-Studio-sub022/internal/application/identity"
	recommendationapp "github.com/adebold/Commerce-Studio-sub022/internal/application/recommendation"
	searchapp "github.com/adebold/Commerce-Studio-sub022/internal/application/search"
	"github.com/adebold/Commerce-Studio-sub022/internal/infrastructure/auth"
	"github.com/adebold/Commerce-Studio-sub022/internal/infrastructure/cache"
	"github.com/adebold/Commerce-Studio-sub022/internal/infrastructure/config"
	"github.com/adebold/Commerce-Studio-sub022/internal/infrastructure/logger"
	"github.com/adebold/Commerce-Studio-sub022/internal/infrastructure/migration"
	"github.com/adebold/Commerce-Studio-sub022/internal/infrastructure/persistence"
	"github.com/adebold/Commerce-Studio-sub022/internal/infrastructure/telemetry"
	"github.com/adebold/Commerce-Studio-sub022/internal/interfaces/http/guard"
	"github.com/adebold/Commerce-Studio-sub022/internal/interfaces/http/handler"
	"github.com/adebold/Commerce-Studio-sub022/internal/interfaces/http/middleware"
	"github.com/adebold/Commerce-Studio-sub022/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	_ "github.com/adebold/Commerce-Studio-sub022/docs"
	_ "github.com/lib/pq"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// version is set at build time via -ldflags "-X main.version=..."
var version = "dev"

//	@title			Commerce Studio Platform API
//	@version		1.0
//	@description	Tenant-scoped storefront personalization API: recommendations, search, product variants and client-credential auth.

//	@contact.name	API Support
//	@contact.url	https://github.com/adebold/Commerce-Studio-sub022

//	@license.name	Apache 2.0
//	@license.url	http://www.apache.org/licenses/LICENSE-2.0.html

//	@host		localhost:8080
//	@BasePath	/api

//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				Bearer token authentication. Format: "Bearer {token}"

//	@securityDefinitions.apikey	ApiKeyAuth
//	@in							header
//	@name						X-API-Key
//	@description				API client key. Format: "{clientId}.{secret}"

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	log, err := logger.New(&logger.Config{
		Level:       cfg.Log.Level,
		Format:      logFormat(cfg.Log.Pretty),
		Output:      cfg.Log.Output,
		TimeFormat:  "2006-01-02T15:04:05.000Z07:00",
		Service:     cfg.App.ServiceName,
		Environment: cfg.App.Environment,
		InstanceID:  cfg.App.InstanceID,
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting Commerce Studio Platform API",
		zap.String("service", cfg.App.ServiceName),
		zap.String("env", cfg.App.Environment),
		zap.String("port", cfg.App.Port),
		zap.String("version", version),
	)

	ctx := context.Background()

	// Tracing
	tracerProvider, err := telemetry.NewTracerProvider(ctx, telemetry.Config{
		Enabled:           cfg.Telemetry.Enabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		SamplingRatio:     cfg.Telemetry.SamplingRatio,
		ServiceName:       cfg.Telemetry.ServiceName,
		Insecure:          cfg.Telemetry.Insecure,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize tracer provider", zap.Error(err))
	}
	defer shutdownProvider(log, "tracer", tracerProvider.Shutdown)

	// Metrics
	meterProvider, err := telemetry.NewMeterProvider(ctx, telemetry.MetricsConfig{
		Enabled:           cfg.Telemetry.MetricsEnabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		ServiceName:       cfg.Telemetry.ServiceName,
		Insecure:          cfg.Telemetry.Insecure,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize meter provider", zap.Error(err))
	}
	defer shutdownProvider(log, "meter", meterProvider.Shutdown)

	// Log export: bridge zap records into the OTLP pipeline alongside stdout
	loggerProvider, err := telemetry.NewLoggerProvider(ctx, telemetry.LogsConfig{
		Enabled:           cfg.Telemetry.LogsEnabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		ServiceName:       cfg.Telemetry.ServiceName,
		Insecure:          cfg.Telemetry.Insecure,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize logger provider", zap.Error(err))
	}
	defer shutdownProvider(log, "logs", loggerProvider.Shutdown)

	if loggerProvider.IsEnabled() {
		otelCore := telemetry.NewZapOTELCore(telemetry.ZapBridgeConfig{
			ServiceName:    cfg.Telemetry.ServiceName,
			LoggerProvider: loggerProvider,
			Level:          zapcore.InfoLevel,
		})
		log = log.WithOptions(zap.WrapCore(func(core zapcore.Core) zapcore.Core {
			return zapcore.NewTee(core, otelCore)
		}))
	}

	// Continuous profiling
	profiler, err := telemetry.NewProfiler(telemetry.ProfilerConfig{
		Enabled:             cfg.Profiling.Enabled,
		ServerAddress:       cfg.Profiling.ServerAddress,
		ApplicationName:     cfg.Profiling.ApplicationName,
		BasicAuthUser:       cfg.Profiling.BasicAuthUser,
		BasicAuthPassword:   cfg.Profiling.BasicAuthPassword,
		ProfileCPU:          true,
		ProfileAllocObjects: true,
		ProfileAllocSpace:   true,
		ProfileInuseObjects: true,
		ProfileInuseSpace:   true,
		ProfileGoroutines:   true,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize profiler", zap.Error(err))
	}
	defer func() {
		if err := profiler.Stop(); err != nil {
			log.Error("Error stopping profiler", zap.Error(err))
		}
	}()

	// Link spans to profiles when both subsystems are on
	if cfg.Profiling.Enabled && cfg.Telemetry.Enabled {
		if err := tracerProvider.EnableSpanProfiles(); err != nil {
			log.Warn("Failed to enable span profiles", zap.Error(err))
		}
	}

	// Database with zap-backed GORM logger
	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level))
	db, err := persistence.NewDatabaseWithCustomLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected", zap.String("driver", cfg.Database.Driver))

	// Query tracing and pool/query metrics on the GORM connection
	dbTracing := telemetry.NewDBTracingPlugin(telemetry.DBTracingConfig{
		Enabled:          cfg.Telemetry.Enabled && cfg.Telemetry.DBTraceEnabled,
		LogFullSQL:       cfg.Telemetry.DBLogFullSQL,
		SlowQueryThresh:  cfg.Telemetry.DBSlowQueryThresh,
		DBSystem:         cfg.Database.Driver,
		WithoutVariables: !cfg.Telemetry.DBLogFullSQL,
	}, log)
	if err := dbTracing.RegisterOtelGorm(db.DB); err != nil {
		log.Fatal("Failed to register database tracing", zap.Error(err))
	}

	if meterProvider.IsEnabled() {
		dbMetrics, err := telemetry.NewDBMetrics(meterProvider.Meter("database"), telemetry.DBMetricsConfig{
			Enabled:            true,
			SlowQueryThreshold: cfg.Telemetry.DBSlowQueryThresh,
		}, log)
		if err != nil {
			log.Fatal("Failed to initialize database metrics", zap.Error(err))
		}
		if sqlDB, err := db.DB.DB(); err == nil {
			dbMetrics.SetSQLDB(sqlDB)
			dbMetrics.StartPoolStatsCollection(ctx)
		}
		defer dbMetrics.Stop()
		if err := db.DB.Use(telemetry.NewDBMetricsPlugin(dbMetrics, log)); err != nil {
			log.Fatal("Failed to register database metrics plugin", zap.Error(err))
		}
	}

	// Apply schema on start when configured
	if cfg.Database.MigrateOnStart {
		if err := migrateOnStart(db, &cfg.Database, log); err != nil {
			log.Fatal("Failed to apply migrations", zap.Error(err))
		}
	}

	// View store: Redis when enabled, in-memory otherwise
	viewStore, err := cache.NewViewStoreFactory(cfg.Redis, cache.WithLogger(log)).CreateStore()
	if err != nil {
		log.Fatal("Failed to create view store", zap.Error(err))
	}
	defer func() {
		if err := viewStore.Close(); err != nil {
			log.Error("Error closing view store", zap.Error(err))
		}
	}()

	// Repositories
	productRepo := persistence.NewGormProductRepository(db.DB)
	variantRepo := persistence.NewGormVariantRepository(db.DB)
	viewEventRepo := persistence.NewGormViewEventRepository(db.DB)
	feedbackRepo := persistence.NewGormFeedbackRepository(db.DB)
	apiClientRepo := persistence.NewGormAPIClientRepository(db.DB)

	// Application services
	jwtService := auth.NewJWTService(cfg.Auth)
	recommendationService := recommendationapp.NewService(viewStore, viewEventRepo, feedbackRepo, productRepo)
	searchService := searchapp.NewService(productRepo)
	variantService := catalogapp.NewVariantService(variantRepo, productRepo)
	tokenService := identityapp.NewTokenService(apiClientRepo, jwtService)

	// Business metrics wired into the services that produce them
	if meterProvider.IsEnabled() {
		businessMetrics, err := telemetry.NewBusinessMetrics(telemetry.BusinessMetricsConfig{
			Meter:           meterProvider.Meter("commerce"),
			Logger:          log,
			CatalogProvider: telemetry.NewGormCatalogMetricsProvider(db.DB),
			IndexProvider:   searchService,
		})
		if err != nil {
			log.Fatal("Failed to initialize business metrics", zap.Error(err))
		}
		recommendationService.SetBusinessMetrics(businessMetrics)
		searchService.SetBusinessMetrics(businessMetrics)
		tokenService.SetBusinessMetrics(businessMetrics)
		businessMetrics.StartPeriodicCollection(ctx, telemetry.NewGormTenantProvider(db.DB), 5*time.Minute)
		defer businessMetrics.Stop()
	}

	// HTTP handlers
	recommendationHandler := handler.NewRecommendationHandler(recommendationService)
	searchHandler := handler.NewSearchHandler(searchService)
	variantHandler := handler.NewVariantHandler(variantService)
	authHandler := handler.NewAuthHandler(tokenService)
	systemHandler := handler.NewSystemHandler(db, viewStore, version)

	// Gin setup
	if cfg.App.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	middleware.SetupValidator()

	engine := gin.New()
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	// Edge middleware, outermost first: request identity, panic boundary,
	// request logging, observability, then protocol hygiene.
	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.TracingWithConfig(middleware.TracingConfig{
		ServiceName: cfg.Telemetry.ServiceName,
		Enabled:     cfg.Telemetry.Enabled,
	}))
	engine.Use(middleware.SpanErrorMarker())
	engine.Use(middleware.HTTPMetrics(middleware.HTTPMetricsConfig{
		MeterProvider: meterProvider,
		Logger:        log,
		SkipPaths:     []string{"/healthz", "/readyz"},
	}))
	engine.Use(middleware.Profiling(middleware.ProfilingConfig{
		Enabled:   cfg.Profiling.Enabled,
		SkipPaths: []string{"/healthz", "/readyz"},
	}))
	engine.Use(middleware.Secure())
	engine.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     cfg.HTTP.CORSAllowOrigins,
		AllowMethods:     cfg.HTTP.CORSAllowMethods,
		AllowHeaders:     cfg.HTTP.CORSAllowHeaders,
		ExposeHeaders:    []string{"X-Request-ID", "X-RateLimit-Limit", "X-RateLimit-Remaining"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))

	if cfg.HTTP.RateLimitEnabled {
		rateLimiter := middleware.NewRateLimiter(cfg.HTTP.RateLimitRequests, cfg.HTTP.RateLimitWindow)
		engine.Use(middleware.RateLimit(rateLimiter))
		log.Info("Rate limiting enabled",
			zap.Int("requests", cfg.HTTP.RateLimitRequests),
			zap.Duration("window", cfg.HTTP.RateLimitWindow),
		)
	}

	// System surface, outside the API mount
	engine.GET("/healthz", systemHandler.Healthz)
	engine.GET("/readyz", systemHandler.Readyz)
	engine.GET("/swagger/*any",
		middleware.SwaggerProtection(middleware.SwaggerConfig{
			Enabled:     cfg.Swagger.Enabled,
			RequireAuth: cfg.Swagger.RequireAuth,
			AllowedIPs:  cfg.Swagger.AllowedIPs,
		}, middleware.JWTAuthMiddleware(jwtService)),
		ginSwagger.WrapHandler(swaggerFiles.Handler),
	)

	// Resource route tables
	r := router.NewRouter(engine, "Commerce Studio Platform API")

	apiKeyVerify := middleware.APIKeyVerification(apiClientRepo)
	bearerAuth := middleware.JWTAuthMiddleware(jwtService)

	recommendations := router.NewResourceGroup("recommendations", "/recommendations", "Recommendations API")
	recommendations.Guard(guard.Tenant())
	recommendations.GET("/trending", nil, recommendationHandler.Trending)
	recommendations.GET("/recently-viewed/:userId", nil, recommendationHandler.RecentlyViewed)
	recommendations.GET("/similar/:productId", nil, recommendationHandler.Similar)
	recommendations.POST("/track-view", []guard.Guard{guard.BodyFields("productId", "userId")}, recommendationHandler.TrackView)
	recommendations.POST("/feedback", []guard.Guard{guard.BodyFields("userId", "productId", "rating")}, recommendationHandler.SubmitFeedback)

	search := router.NewResourceGroup("search", "/search", "Search API")
	search.Guard(guard.Tenant())
	search.GET("/products", []guard.Guard{guard.QueryParams("q")}, searchHandler.Products)
	search.GET("/suggestions", []guard.Guard{guard.QueryParams("q")}, searchHandler.Suggestions)
	search.GET("/filters", nil, searchHandler.Filters)
	search.POST("/reindex", []guard.Guard{guard.APIKey()}, searchHandler.Reindex, apiKeyVerify)

	variants := router.NewResourceGroup("variants", "/products/:productId/variants", "Product Variants API")
	variants.Guard(guard.Tenant())
	variants.GET("/:variantId", nil, variantHandler.Get)
	variants.POST("", []guard.Guard{guard.APIKey(), guard.BodyFields("sku", "price")}, variantHandler.Create, apiKeyVerify)
	variants.DELETE("/:variantId", []guard.Guard{guard.APIKey()}, variantHandler.Delete, apiKeyVerify)

	authGroup := router.NewResourceGroup("auth", "/auth", "Auth API")
	authGroup.Guard(guard.Tenant())
	if cfg.HTTP.AuthRateLimitEnabled {
		// Stricter budget on credential exchange to slow brute force
		authLimiter := middleware.NewRateLimiter(cfg.HTTP.AuthRateLimitRequests, cfg.HTTP.AuthRateLimitWindow)
		authGroup.POST("/token", []guard.Guard{guard.BodyFields("clientId", "clientSecret")}, authHandler.IssueToken, middleware.RateLimit(authLimiter))
		authGroup.POST("/refresh", []guard.Guard{guard.BodyFields("refreshToken")}, authHandler.Refresh, middleware.RateLimit(authLimiter))
	} else {
		authGroup.POST("/token", []guard.Guard{guard.BodyFields("clientId", "clientSecret")}, authHandler.IssueToken)
		authGroup.POST("/refresh", []guard.Guard{guard.BodyFields("refreshToken")}, authHandler.Refresh)
	}
	authGroup.GET("/introspect", nil, authHandler.Introspect, bearerAuth)

	r.Register(recommendations).
		Register(search).
		Register(variants).
		Register(authGroup)
	r.Setup()

	// HTTP server
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
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}

func logFormat(pretty bool) string {
	if pretty {
		return "console"
	}
	return "json"
}

// migrateOnStart applies pending schema changes before the server accepts
// traffic. Postgres goes through the versioned migration set; sqlite (dev
// and test deployments) is synced directly from the entity definitions.
func migrateOnStart(db *persistence.Database, cfg *config.DatabaseConfig, log *zap.Logger) error {
	if cfg.Driver == "sqlite" {
		return db.AutoMigrate()
	}

	// Dedicated connection: the migrator closes its database handle, and it
	// must not take GORM's pool down with it.
	sqlDB, err := sql.Open("postgres", cfg.DSN())
	if err != nil {
		return err
	}
	m, err := migration.New(sqlDB, log)
	if err != nil {
		_ = sqlDB.Close()
		return err
	}
	defer m.Close()
	return m.Up()
}

func shutdownProvider(log *zap.Logger, name string, shutdown func(context.Context) error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := shutdown(ctx); err != nil {
		log.Error("Error shutting down telemetry provider", zap.String("provider", name), zap.Error(err))
	}
}
