package http_init

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	http_common "github.com/humanbelnik/flickswipe/internal/delivery/http/common"
)

const (
	apiPrefix       = "/api/v1"
	shutdownTimeout = 10 * time.Second
)

type Controller interface {
	RegisterRoutes(router *gin.RouterGroup)
}

type ControllerPool struct {
	pool   []Controller
	rg     *gin.RouterGroup
	engine *gin.Engine
	logger *slog.Logger
}

type Option func(*ControllerPool)

func WithLogger(logger *slog.Logger) Option {
	return func(p *ControllerPool) {
		p.logger = logger
	}
}

func NewControllerPool(corsOrigins []string, opts ...Option) *ControllerPool {
	pool := &ControllerPool{
		pool:   make([]Controller, 0, 10),
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(pool)
	}

	engine := gin.New()
	engine.Use(
		gin.Recovery(),
		RequestLogger(pool.logger),
		cors.New(cors.Config{
			AllowOrigins: corsOrigins,
			AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
			AllowHeaders: []string{
				"Origin", "Content-Type",
				http_common.HeaderAdminToken,
				http_common.HeaderPlayerToken,
			},
			ExposeHeaders: []string{
				"Location",
				http_common.HeaderAdminToken,
				http_common.HeaderPlayerToken,
			},
			MaxAge: 12 * time.Hour,
		}),
	)

	pool.engine = engine
	pool.rg = engine.Group(apiPrefix)
	return pool
}

func (pool *ControllerPool) Add(c Controller) {
	pool.pool = append(pool.pool, c)
}

func (pool *ControllerPool) Register() {
	for _, c := range pool.pool {
		c.RegisterRoutes(pool.rg)
	}
}

func (pool *ControllerPool) Handler() http.Handler {
	return pool.engine
}

// RunAll serves until ctx is cancelled, then drains in-flight requests.
func (pool *ControllerPool) RunAll(ctx context.Context, addr string) error {
	server := &http.Server{
		Addr:              addr,
		Handler:           pool.engine,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		pool.logger.Info("http server started", slog.String("addr", addr))
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	pool.logger.Info("http server shutting down")
	return server.Shutdown(shutdownCtx)
}

// RequestLogger writes one line per request.
func RequestLogger(logger *slog.Logger) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		start := time.Now()
		ctx.Next()

		attrs := []any{
			slog.String("method", ctx.Request.Method),
			slog.String("path", ctx.FullPath()),
			slog.Int("status", ctx.Writer.Status()),
			slog.Duration("latency", time.Since(start)),
		}
		if len(ctx.Errors) > 0 {
			attrs = append(attrs, slog.String("errors", ctx.Errors.String()))
		}

		switch {
		case ctx.Writer.Status() >= http.StatusInternalServerError:
			logger.Error("request", attrs...)
		default:
			logger.Info("request", attrs...)
		}
	}
}
