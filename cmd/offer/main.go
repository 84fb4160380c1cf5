package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/bbbar60-wq/Technical-Offer-Project/internal/config"
	"github.com/bbbar60-wq/Technical-Offer-Project/internal/middleware"
	"github.com/bbbar60-wq/Technical-Offer-Project/internal/offer/handler"
	"github.com/bbbar60-wq/Technical-Offer-Project/internal/offer/repository"
	"github.com/bbbar60-wq/Technical-Offer-Project/internal/offer/service"
	"github.com/bbbar60-wq/Technical-Offer-Project/internal/offer/sse"
	"github.com/bbbar60-wq/Technical-Offer-Project/internal/offer/storage"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var (
	Version   = "dev"
	BuildTime = "unknown"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	zapLogger, err := initLogger(cfg.Log)
	if err != nil {
		log.Fatalf("Failed to init logger: %v", err)
	}
	defer zapLogger.Sync()

	zapLogger.Info("Starting technical offer service",
		zap.String("version", Version),
		zap.String("build_time", BuildTime),
		zap.String("store", cfg.Store.Driver),
	)

	ctx := context.Background()

	store, db, err := initStore(cfg, zapLogger)
	if err != nil {
		zapLogger.Fatal("Failed to open store", zap.Error(err))
	}
	repos := repository.NewRepositories(store)

	var locker repository.Locker = repository.NewLocalLocker()
	var rdb *redis.Client
	if cfg.Redis.Host != "" {
		rdb = initRedis(cfg.Redis)
		if err := rdb.Ping(ctx).Err(); err != nil {
			zapLogger.Fatal("Failed to connect to redis", zap.Error(err))
		}
		locker = repository.NewRedisLocker(rdb, cfg.Redis.LockTTL)
		zapLogger.Info("Using redis collection locks", zap.String("host", cfg.Redis.Host))
	}

	blobs, err := initBlobStore(ctx, cfg, zapLogger)
	if err != nil {
		zapLogger.Fatal("Failed to init blob storage", zap.Error(err))
	}

	auth, err := service.NewAuthService(service.AuthConfig{
		Secret:       cfg.JWT.Secret,
		Issuer:       cfg.JWT.Issuer,
		TokenExpire:  cfg.JWT.AccessTokenExpire,
		DemoPassword: cfg.Auth.DemoPassword,
	})
	if err != nil {
		zapLogger.Fatal("Failed to init auth", zap.Error(err))
	}

	hub := sse.NewHub(zapLogger.Named("sse"))
	services := service.NewServices(service.Deps{
		Repos:  repos,
		Locker: locker,
		Blobs:  blobs,
		Events: hub,
		Auth:   auth,
		Logger: zapLogger,
	})

	if cfg.Store.Seed {
		if err := services.Seeder.Seed(ctx); err != nil {
			zapLogger.Warn("Seeding demo data failed", zap.Error(err))
		}
	}

	handlers := handler.NewHandlers(services, hub, handler.Options{
		MaxUploadSize: cfg.Server.MaxUploadSize,
	}, zapLogger.Named("http"))

	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.Logger(zapLogger))
	router.Use(middleware.CORS())
	router.Use(middleware.RequestID())
	router.Use(gzip.Gzip(gzip.DefaultCompression))

	registerRoutes(router, handlers, cfg, db, rdb)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: 0, // SSE connections are long lived
	}

	go func() {
		zapLogger.Info("Server starting", zap.Int("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zapLogger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zapLogger.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		zapLogger.Error("Server forced to shutdown", zap.Error(err))
	}
	if rdb != nil {
		rdb.Close()
	}
	if db != nil {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	}

	zapLogger.Info("Server exited")
}

func initLogger(cfg config.LogConfig) (*zap.Logger, error) {
	var zapCfg zap.Config

	if cfg.Format == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
	}

	switch cfg.Level {
	case "debug":
		zapCfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	case "info":
		zapCfg.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	case "warn":
		zapCfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	case "error":
		zapCfg.Level = zap.NewAtomicLevelAt(zap.ErrorLevel)
	}

	return zapCfg.Build()
}

// initStore opens the configured collection store. db is nil for the memory driver.
func initStore(cfg *config.Config, zapLogger *zap.Logger) (repository.Store, *gorm.DB, error) {
	storeLogger := zapLogger.Named("store")

	var dialector gorm.Dialector
	switch cfg.Store.Driver {
	case config.DriverMemory:
		zapLogger.Warn("Using in-memory store, data is lost on restart")
		return repository.NewMemoryStore().WithLogger(storeLogger), nil, nil
	case config.DriverPostgres:
		dialector = postgres.Open(cfg.Database.DSN())
	default:
		if err := os.MkdirAll(filepath.Dir(cfg.Store.Path), 0755); err != nil {
			return nil, nil, fmt.Errorf("create data directory: %w", err)
		}
		dialector = sqlite.Open(cfg.Store.Path)
	}

	db, err := initDatabase(dialector, cfg.Database)
	if err != nil {
		return nil, nil, err
	}
	if err := repository.Migrate(db); err != nil {
		return nil, nil, fmt.Errorf("migrate: %w", err)
	}
	return repository.NewGormStore(db, storeLogger), db, nil
}

func initDatabase(dialector gorm.Dialector, cfg config.DatabaseConfig) (*gorm.DB, error) {
	gormConfig := &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	}

	db, err := gorm.Open(dialector, gormConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database instance: %w", err)
	}

	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	sqlDB.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	return db, nil
}

func initRedis(cfg config.RedisConfig) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
		PoolSize: cfg.PoolSize,
	})
}

func initBlobStore(ctx context.Context, cfg *config.Config, zapLogger *zap.Logger) (storage.BlobStore, error) {
	if cfg.MinIO.Endpoint == "" {
		zapLogger.Info("Storing uploads on local disk", zap.String("dir", cfg.Storage.LocalDir))
		local, err := storage.NewLocalStore(cfg.Storage.LocalDir)
		if err != nil {
			return nil, err
		}
		return local, nil
	}
	zapLogger.Info("Storing uploads in MinIO",
		zap.String("endpoint", cfg.MinIO.Endpoint),
		zap.String("bucket", cfg.MinIO.Bucket),
	)
	remote, err := storage.NewMinIOStore(ctx, storage.MinIOConfig{
		Endpoint:  cfg.MinIO.Endpoint,
		AccessKey: cfg.MinIO.AccessKey,
		SecretKey: cfg.MinIO.SecretKey,
		Bucket:    cfg.MinIO.Bucket,
		UseSSL:    cfg.MinIO.UseSSL,
	}, zapLogger.Named("minio"))
	if err != nil {
		return nil, err
	}
	return remote, nil
}

func registerRoutes(r *gin.Engine, h *handler.Handlers, cfg *config.Config, db *gorm.DB, rdb *redis.Client) {
	r.GET("/health/live", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/health/ready", func(c *gin.Context) {
		if db != nil {
			if sqlDB, err := db.DB(); err != nil || sqlDB.PingContext(c.Request.Context()) != nil {
				c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "component": "database"})
				return
			}
		}
		if rdb != nil && rdb.Ping(c.Request.Context()).Err() != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "component": "redis"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.GET("/version", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"version":    Version,
			"build_time": BuildTime,
		})
	})

	handler.RegisterRoutes(r, h, cfg.JWT.Secret)

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"code": 40400, "message": "Not found"})
	})
}
