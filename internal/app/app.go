package app

import (
	"context"
	"log/slog"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/humanbelnik/flickswipe/internal/config"
	grpc_health "github.com/humanbelnik/flickswipe/internal/delivery/grpc/health"
	http_auth "github.com/humanbelnik/flickswipe/internal/delivery/http/auth"
	http_game "github.com/humanbelnik/flickswipe/internal/delivery/http/game"
	http_init "github.com/humanbelnik/flickswipe/internal/delivery/http/init"
	http_auth_middleware "github.com/humanbelnik/flickswipe/internal/delivery/http/middleware/auth"
	http_player_middleware "github.com/humanbelnik/flickswipe/internal/delivery/http/middleware/player"
	http_movie "github.com/humanbelnik/flickswipe/internal/delivery/http/movie"
	http_result "github.com/humanbelnik/flickswipe/internal/delivery/http/result"
	http_swagger "github.com/humanbelnik/flickswipe/internal/delivery/http/swagger"
	http_voting "github.com/humanbelnik/flickswipe/internal/delivery/http/voting"
	ws_game "github.com/humanbelnik/flickswipe/internal/delivery/ws/game"
	infra_postgres_game "github.com/humanbelnik/flickswipe/internal/infra/postgres/game"
	infra_pg_init "github.com/humanbelnik/flickswipe/internal/infra/postgres/init"
	infra_postgres_movie "github.com/humanbelnik/flickswipe/internal/infra/postgres/movie"
	infra_postgres_score "github.com/humanbelnik/flickswipe/internal/infra/postgres/score"
	infra_redis_init "github.com/humanbelnik/flickswipe/internal/infra/redis/init"
	infra_session_cache "github.com/humanbelnik/flickswipe/internal/infra/redis/session"
	infra_tmdb_cache "github.com/humanbelnik/flickswipe/internal/infra/redis/tmdbcache"
	infra_s3 "github.com/humanbelnik/flickswipe/internal/infra/s3"
	"github.com/humanbelnik/flickswipe/internal/infra/s3mock"
	infra_tmdb "github.com/humanbelnik/flickswipe/internal/infra/tmdb"
	"github.com/humanbelnik/flickswipe/internal/logger"
	service_simple_auth "github.com/humanbelnik/flickswipe/internal/service/auth/simple"
	usecase_game "github.com/humanbelnik/flickswipe/internal/usecase/game"
	usecase_movie "github.com/humanbelnik/flickswipe/internal/usecase/movie"
	usecase_result "github.com/humanbelnik/flickswipe/internal/usecase/result"
	usecase_vote "github.com/humanbelnik/flickswipe/internal/usecase/vote"
	"golang.org/x/sync/errgroup"
)

const healthProbeInterval = 15 * time.Second

// Catalog holds what the catalog CLI needs; it skips the HTTP layer.
type Catalog struct {
	Movies *usecase_movie.Usecase
	Logger *slog.Logger
	Close  func()
}

func MustBuildCatalog(cfg *config.Config) *Catalog {
	log, syncLog := mustLogger(cfg)
	pgConn := infra_pg_init.MustEstablishConn(cfg.Postgres)
	redisConn := infra_redis_init.MustEstablishConn(cfg.Redis)

	movieUC := usecase_movie.New(
		infra_postgres_movie.New(pgConn),
		buildMovieDB(cfg, redisConn, log),
		mustPosterRepository(cfg, log),
		usecase_movie.WithPresignTTL(cfg.S3.PresignTTL),
		usecase_movie.WithLogger(log),
	)

	return &Catalog{
		Movies: movieUC,
		Logger: log,
		Close: func() {
			_ = redisConn.Close()
			_ = pgConn.Close()
			syncLog()
		},
	}
}

func Go(cfg *config.Config) {
	log, syncLog := mustLogger(cfg)
	defer syncLog()

	redisConn := infra_redis_init.MustEstablishConn(cfg.Redis)
	pgConn := infra_pg_init.MustEstablishConn(cfg.Postgres)
	defer pgConn.Close()
	defer redisConn.Close()

	movieDB := buildMovieDB(cfg, redisConn, log)
	posterRepository := mustPosterRepository(cfg, log)

	gameRepository := infra_postgres_game.New(pgConn)
	scoreRepository := infra_postgres_score.New(pgConn)
	movieRepository := infra_postgres_movie.New(pgConn)

	hub := ws_game.NewHub(log)

	gameUC := usecase_game.New(gameRepository, usecase_game.Settings{
		RoundDuration: cfg.Game.RoundDuration,
		PlaylistSize:  cfg.Game.PlaylistSize,
		CleanupPeriod: cfg.Game.CleanupPeriod,
		LobbyTTL:      cfg.Game.LobbyTTL,
		FinishedTTL:   cfg.Game.FinishedTTL,
		PublicURL:     cfg.HTTP.PublicURL,
	},
		usecase_game.WithFinishNotifier(func(slug string) {
			hub.Broadcast(slug, ws_game.GameFinished(slug, usecase_vote.ResultsLocation(slug)))
		}),
		usecase_game.WithLogger(log),
	)
	movieUC := usecase_movie.New(movieRepository, movieDB, posterRepository,
		usecase_movie.WithPresignTTL(cfg.S3.PresignTTL),
		usecase_movie.WithLogger(log),
	)
	voteUC := usecase_vote.New(gameUC, scoreRepository, movieUC, usecase_vote.WithLogger(log))
	resultUC := usecase_result.New(gameUC, scoreRepository, movieDB, usecase_result.WithLogger(log))

	sessionCache := infra_session_cache.New(redisConn, "session_cache")
	authService := service_simple_auth.New(cfg.Admin.Secret, sessionCache, cfg.Admin.TokenTTL)
	authMiddleware := http_auth_middleware.New(authService)
	playerMiddleware := http_player_middleware.New(gameUC, http_player_middleware.WithLogger(log))

	controllerPool := http_init.NewControllerPool(cfg.HTTP.CORSOrigins, http_init.WithLogger(log))
	controllerPool.Add(http_swagger.New())
	controllerPool.Add(http_game.New(gameUC, playerMiddleware, hub, http_game.WithLogger(log)))
	controllerPool.Add(http_voting.New(voteUC, gameUC, playerMiddleware, hub, http_voting.WithLogger(log)))
	controllerPool.Add(http_result.New(resultUC, movieUC, playerMiddleware, http_result.WithLogger(log)))
	controllerPool.Add(http_movie.New(movieUC, authMiddleware, http_movie.WithLogger(log)))
	controllerPool.Add(http_auth.New(authService))
	controllerPool.Add(ws_game.NewController(hub, gameUC))
	controllerPool.Register()

	healthServer := grpc_health.New(log, map[string]grpc_health.Check{
		"postgres": pgConn.PingContext,
		"redis": func(context.Context) error {
			return redisConn.Ping().Err()
		},
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return controllerPool.RunAll(ctx, net.JoinHostPort(cfg.HTTP.Host, cfg.HTTP.Port))
	})
	g.Go(func() error {
		return healthServer.Run(ctx, cfg.GRPC.Port, healthProbeInterval)
	})

	log.Info("flickswipe started",
		slog.String("http_port", cfg.HTTP.Port),
		slog.String("grpc_port", cfg.GRPC.Port),
	)
	if err := g.Wait(); err != nil {
		log.Error("server stopped", slog.String("error", err.Error()))
		return
	}
	log.Info("flickswipe stopped")
}

func mustLogger(cfg *config.Config) (*slog.Logger, func()) {
	log, sync, err := logger.New(cfg.Log)
	if err != nil {
		panic(err)
	}
	slog.SetDefault(log)
	return log, sync
}

// buildMovieDB routes API lookups through the redis cache; poster downloads
// bypass it.
func buildMovieDB(cfg *config.Config, redisConn infra_tmdb_cache.Cmdable, log *slog.Logger) *infra_tmdb.Client {
	fetcher := infra_tmdb.NewHTTPFetcher(cfg.TMDB.BaseURL, cfg.TMDB.APIKey, cfg.TMDB.Timeout)
	cached := infra_tmdb_cache.New(fetcher, redisConn, cfg.TMDB.CacheTTL, infra_tmdb_cache.WithLogger(log))
	return infra_tmdb.New(cached, fetcher, cfg.TMDB.ImageURL)
}

func mustPosterRepository(cfg *config.Config, log *slog.Logger) usecase_movie.PosterRepository {
	if cfg.S3.AccessKeyID == "" {
		log.Warn("AWS_ACCESS_KEY_ID is empty, posters are served from the TMDB CDN")
		return s3mock.New()
	}

	s3conn := infra_s3.MustEstablishConn(cfg.S3)
	storage, err := infra_s3.New(context.Background(), cfg.S3.Bucket, s3conn, cfg.S3.Prefix, infra_s3.WithLogger(log))
	if err != nil {
		panic(err)
	}
	return storage
}
