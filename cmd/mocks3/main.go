package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/humanbelnik/flickswipe/internal/config"
	"github.com/humanbelnik/flickswipe/internal/logger"
	"github.com/ilyakaznacheev/cleanenv"
)

// Config of the local stand-in for object storage. Point S3_ENDPOINT of the
// app at Addr.
type Config struct {
	Addr   string `env:"MOCK_S3_ADDR" env-default:":9000"`
	Bucket string `env:"S3_BUCKET" env-default:"flickswipe-posters"`
	Log    config.Log
}

func main() {
	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		log.Fatalf("[mocks3] %v", err)
	}

	l, sync, err := logger.New(cfg.Log)
	if err != nil {
		log.Fatalf("[mocks3] %v", err)
	}
	defer sync()

	server := &http.Server{
		Addr:    cfg.Addr,
		Handler: NewBucket(cfg.Bucket, l),
	}

	go func() {
		l.Info("mock s3 started", slog.String("addr", cfg.Addr), slog.String("bucket", cfg.Bucket))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			l.Error("mock s3 stopped", slog.String("error", err.Error()))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = server.Shutdown(ctx)
	l.Info("mock s3 stopped")
}
