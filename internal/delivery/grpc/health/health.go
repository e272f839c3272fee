package grpc_health

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"time"

	grpclog "github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/logging"
	grpcrecovery "github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/recovery"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/status"
)

// Check probes one dependency of the service.
type Check func(ctx context.Context) error

type Server struct {
	grpc   *grpc.Server
	health *health.Server
	checks map[string]Check
	logger *slog.Logger
}

func New(logger *slog.Logger, checks map[string]Check) *Server {
	recoveryOpts := []grpcrecovery.Option{
		grpcrecovery.WithRecoveryHandler(func(p any) error {
			logger.Error("recovered from panic", slog.Any("panic", p))
			return status.Errorf(codes.Internal, "internal error")
		}),
	}
	logOpts := []grpclog.Option{
		grpclog.WithLogOnEvents(grpclog.FinishCall),
	}

	srv := grpc.NewServer(grpc.ChainUnaryInterceptor(
		grpcrecovery.UnaryServerInterceptor(recoveryOpts...),
		grpclog.UnaryServerInterceptor(InterceptorLogger(logger), logOpts...),
	))

	hs := health.NewServer()
	healthpb.RegisterHealthServer(srv, hs)

	return &Server{
		grpc:   srv,
		health: hs,
		checks: checks,
		logger: logger,
	}
}

func InterceptorLogger(l *slog.Logger) grpclog.Logger {
	return grpclog.LoggerFunc(func(ctx context.Context, lvl grpclog.Level, msg string, fields ...any) {
		l.Log(ctx, slog.Level(lvl), msg, fields...)
	})
}

// Probe runs every check once and publishes the outcome under the check
// name and under "" for the whole service.
func (s *Server) Probe(ctx context.Context) {
	overall := healthpb.HealthCheckResponse_SERVING
	for name, check := range s.checks {
		st := healthpb.HealthCheckResponse_SERVING
		if err := check(ctx); err != nil {
			st = healthpb.HealthCheckResponse_NOT_SERVING
			overall = st
			s.logger.Warn("health check failed",
				slog.String("check", name),
				slog.String("error", err.Error()),
			)
		}
		s.health.SetServingStatus(name, st)
	}
	s.health.SetServingStatus("", overall)
}

// Run serves on port and re-probes every interval until ctx is done.
func (s *Server) Run(ctx context.Context, port string, interval time.Duration) error {
	lis, err := net.Listen("tcp", ":"+port)
	if err != nil {
		return fmt.Errorf("grpc listen: %w", err)
	}
	return s.Serve(ctx, lis, interval)
}

func (s *Server) Serve(ctx context.Context, lis net.Listener, interval time.Duration) error {
	s.Probe(ctx)

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("grpc server started", slog.String("addr", lis.Addr().String()))
		errCh <- s.grpc.Serve(lis)
	}()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case err := <-errCh:
			if errors.Is(err, grpc.ErrServerStopped) {
				return nil
			}
			return err
		case <-ticker.C:
			s.Probe(ctx)
		case <-ctx.Done():
			s.health.Shutdown()
			s.grpc.GracefulStop()
			return nil
		}
	}
}
