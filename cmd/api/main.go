package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	minioblob "petcare/internal/adapters/blob/minio"
	redisstore "petcare/internal/adapters/storage/redis"
	"petcare/internal/adapters/storage/sqlstore"
	"petcare/internal/config"
	"petcare/internal/platform/logger"
	"petcare/internal/router"

	"github.com/jmoiron/sqlx"
)

// @title PetCare
// @version 1.0
// @description Registro/login con sesión, gestión de mascotas y subida de imágenes.
// @BasePath /
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	lg := logger.NewFromEnv()
	ctx := context.Background()

	opts := router.Options{
		Logger:              lg,
		SessionSecret:       []byte(cfg.SessionSecret),
		SessionTTL:          cfg.SessionTTL,
		SessionCookieSecure: cfg.SessionCookieSecure,
		AdminEmail:          cfg.AdminEmail,
		UploadDir:           cfg.UploadDir,
		UploadMaxBytes:      cfg.UploadMaxBytes,
		CORSAllowedOrigins:  cfg.CORSAllowedOrigins,
	}

	// Storage
	db, err := openDB(cfg)
	if err != nil {
		lg.Error("database connect failed", map[string]any{"err": err})
		os.Exit(1)
	}
	if db != nil {
		defer db.Close()
		if err := sqlstore.Migrate(ctx, db); err != nil {
			lg.Error("database migrate failed", map[string]any{"err": err})
			os.Exit(1)
		}
		opts.DB = db
		lg.Info("database ready", map[string]any{"driver": db.DriverName()})
	} else {
		lg.Warn("no DB_DSN / SQLITE_PATH, using in-memory storage", nil)
	}

	// Sessions
	if cfg.RedisAddr != "" {
		rdb, err := redisstore.Open(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			lg.Error("redis connect failed", map[string]any{"err": err})
			os.Exit(1)
		}
		defer rdb.Close()
		opts.Sessions = redisstore.NewSessionStore(rdb)
	}

	// Uploads
	if cfg.MinioEndpoint != "" {
		blobs, err := minioblob.New(ctx, minioblob.Config{
			Endpoint:  cfg.MinioEndpoint,
			AccessKey: cfg.MinioAccessKey,
			SecretKey: cfg.MinioSecretKey,
			Bucket:    cfg.MinioBucket,
			UseSSL:    cfg.MinioUseSSL,
		})
		if err != nil {
			lg.Error("minio connect failed", map[string]any{"err": err})
			os.Exit(1)
		}
		opts.Blobs = blobs
	}

	h, err := router.NewRouter(opts)
	if err != nil {
		lg.Error("router setup failed", map[string]any{"err": err})
		os.Exit(1)
	}

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      h,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	go func() {
		lg.Info("starting server", map[string]any{"addr": srv.Addr})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			lg.Error("server error", map[string]any{"err": err})
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	lg.Info("shutting down", nil)
	shutCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutCtx); err != nil {
		lg.Error("shutdown error", map[string]any{"err": err})
	}
}

// openDB: DB_DSN (Postgres) gana sobre SQLITE_PATH. nil, nil = in-memory.
func openDB(cfg config.Config) (*sqlx.DB, error) {
	switch {
	case cfg.PostgresDSN != "":
		return sqlstore.OpenPostgres(cfg.PostgresDSN)
	case cfg.SQLitePath != "":
		return sqlstore.OpenSQLite(cfg.SQLitePath)
	default:
		return nil, nil
	}
}
