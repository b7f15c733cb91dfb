package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"task-backend/internal/blob"
	"task-backend/internal/config"
	"task-backend/internal/controller"
	"task-backend/internal/routes"
	"task-backend/internal/service"
	"task-backend/internal/store"
	"task-backend/internal/store/pgstore"
	"task-backend/internal/store/redisstore"
	"task-backend/pkg/logger"
)

func main() {
	_ = godotenv.Load()

	ctx := context.Background()
	cfg := config.Load()

	records, err := openStore(ctx, cfg)
	if err != nil {
		logger.Error(ctx, "Record store not available; exiting", "error", err, "driver", cfg.StoreDriver)
		os.Exit(1)
	}

	presigner := blob.New(blob.Config{
		Bucket:    cfg.AttachmentsBucket,
		Region:    cfg.AWSRegion,
		AccessKey: cfg.AWSAccessKeyID,
		SecretKey: cfg.AWSSecretAccessKey,
		Expires:   cfg.SignedURLExpiration,
	})

	svc := service.New(records, presigner)
	ctrl := controller.New(svc)

	server := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      routes.Router(ctrl, cfg.JWTSecret),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}
	go func() {
		logger.Info(ctx, "HTTP server listening", "port", cfg.HTTPPort, "driver", cfg.StoreDriver)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error(ctx, "Server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info(ctx, "Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error(ctx, "Server shutdown error", "error", err)
	}
	logger.Info(ctx, "Server stopped")
}

// openStore builds the configured record store backend.
func openStore(ctx context.Context, cfg *config.Config) (store.RecordStore, error) {
	switch cfg.StoreDriver {
	case config.DriverPostgres:
		db, err := pgstore.Open(ctx, cfg.DatabaseURL, cfg.DBPoolSize)
		if err != nil {
			return nil, err
		}
		st := pgstore.New(db, cfg.TasksTable, cfg.OwnerIndex)
		if err := st.Migrate(ctx); err != nil {
			return nil, err
		}
		return st, nil
	default:
		client, err := redisstore.Open(ctx, cfg.RedisURL, cfg.RedisPoolSize)
		if err != nil {
			return nil, err
		}
		return redisstore.New(client, cfg.TasksTable, cfg.OwnerIndex), nil
	}
}
