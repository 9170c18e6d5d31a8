package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	appentregas "github.com/vialsa/backend/internal/application/entregas"
	"github.com/vialsa/backend/internal/infrastructure/cache"
	"github.com/vialsa/backend/internal/infrastructure/config"
	"github.com/vialsa/backend/internal/infrastructure/logger"
	"github.com/vialsa/backend/internal/infrastructure/persistence"
	"github.com/vialsa/backend/internal/interfaces/http/handler"
	"github.com/vialsa/backend/internal/interfaces/http/middleware"
	"github.com/vialsa/backend/internal/interfaces/http/router"
	"go.uber.org/zap"
)

const maxBodyBytes = 1 << 20 // 1MB

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	log, err := logger.New(logger.Options{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = log.Sync()
	}()

	log.Info("Starting VIALSA Entregas backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Create GORM logger backed by zap
	gormLogLevel := logger.MapGormLogLevel(cfg.Log.Level)
	gormLog := logger.NewGormLogger(log, gormLogLevel)

	// Initialize database connection with custom logger
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLog)
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
	ordenRepo := persistence.NewGormOrdenRepository(db.DB)
	abonoRepo := persistence.NewGormAbonoRepository(db.DB)
	reembolsoRepo := persistence.NewGormReembolsoRepository(db.DB)
	entregaRepo := persistence.NewGormEntregaRepository(db.DB)
	uow := persistence.NewGormUnitOfWork(db.DB)

	// Movements catalog cache (Redis with in-memory fallback)
	var movimientosCache appentregas.MovimientosCache
	if cfg.Cache.Enabled {
		movimientosCache = cache.NewMovimientosCache(cfg.Redis, cfg.Cache.MovimientosTTL, log)
	}

	// Initialize application services
	entregaService := appentregas.NewEntregaService(
		ordenRepo,
		abonoRepo,
		reembolsoRepo,
		entregaRepo,
		uow,
		movimientosCache,
		log.Named("entregas"),
	)

	// Setup gin engine
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := gin.New()
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Fatal("Invalid trusted proxies", zap.Error(err))
		}
	}

	// Validation reports field names from json/form tags
	middleware.SetupValidator()

	// Global middleware
	corsConfig := middleware.DefaultCORSConfig()
	if len(cfg.HTTP.CORSAllowOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.HTTP.CORSAllowOrigins
	}
	if len(cfg.HTTP.CORSAllowMethods) > 0 {
		corsConfig.AllowMethods = cfg.HTTP.CORSAllowMethods
	}
	if len(cfg.HTTP.CORSAllowHeaders) > 0 {
		corsConfig.AllowHeaders = cfg.HTTP.CORSAllowHeaders
	}

	engine.Use(
		middleware.RequestID(),
		logger.GinMiddleware(log),
		logger.Recovery(log),
		middleware.CORSWithConfig(corsConfig),
		middleware.Secure(),
		middleware.BodyLimit(maxBodyBytes),
	)

	// Register routes
	systemHandler := handler.NewSystemHandler(db)
	r := router.NewRouter(engine)
	r.Register(handler.NewEntregaHandler(entregaService))
	r.Register(systemHandler)
	r.Setup()

	// Root-level health check for load balancers
	engine.GET("/health", systemHandler.Health)

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
