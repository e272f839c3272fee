package usecase_result

import (
	"context"
	"errors"
	"log/slog"
	"strconv"

	"github.com/google/uuid"
	"github.com/humanbelnik/flickswipe/internal/model"
	usecase_game "github.com/humanbelnik/flickswipe/internal/usecase/game"
)

var (
	ErrInternal         = errors.New("internal error")
	ErrResourceNotFound = errors.New("no such resource")
	ErrResultsNotReady  = errors.New("voting is still in progress")
)

const (
	TopN = 5

	minRecommendedVote  = 5.0
	maxRecommendedVote  = 8.0
	minRecommendedCount = 1000
)

type GameProvider interface {
	GameBySlug(ctx context.Context, slug string) (model.Game, error)
}

//go:generate mockery --name=RankingRepository --output=./mocks --filename=repository.go
type RankingRepository interface {
	// Top orders by likes desc, then position asc.
	Top(ctx context.Context, gameID uuid.UUID, n int) ([]model.Ranked, error)
}

//go:generate mockery --name=MovieDB --output=./mocks --filename=moviedb.go
type MovieDB interface {
	Details(ctx context.Context, tmdbID int) (model.MovieDetails, error)
	Credits(ctx context.Context, tmdbID int) (model.Credits, error)
	Recommendations(ctx context.Context, tmdbID int) ([]model.Recommendation, error)
}

type Usecase struct {
	games   GameProvider
	ranking RankingRepository
	movieDB MovieDB

	logger *slog.Logger
}

type Option func(*Usecase)

func WithLogger(logger *slog.Logger) Option {
	return func(u *Usecase) {
		u.logger = logger
	}
}

func New(games GameProvider, ranking RankingRepository, movieDB MovieDB, opts ...Option) *Usecase {
	u := &Usecase{
		games:   games,
		ranking: ranking,
		movieDB: movieDB,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(u)
	}
	return u
}

// Results ranks a finished game and describes its winner. Enrichment from
// the movie database is best effort: the ranking is returned even when it
// fails.
func (u *Usecase) Results(ctx context.Context, slug string) (model.Results, error) {
	game, err := u.games.GameBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, usecase_game.ErrResourceNotFound) {
			return model.Results{}, ErrResourceNotFound
		}
		return model.Results{}, errors.Join(ErrInternal, err)
	}
	if game.Status != model.StatusFinished {
		return model.Results{}, ErrResultsNotReady
	}

	ranking, err := u.ranking.Top(ctx, game.ID, TopN)
	if err != nil {
		return model.Results{}, errors.Join(ErrInternal, err)
	}

	results := model.Results{Ranking: ranking}
	if len(ranking) == 0 {
		return results, nil
	}

	tmdbID, err := strconv.Atoi(ranking[0].Movie.TMDBID)
	if err != nil {
		u.logger.Warn("winner has no tmdb id",
			slog.String("slug", slug),
			slog.String("movie_id", ranking[0].Movie.ID.String()),
		)
		return results, nil
	}

	pick, err := u.pick(ctx, tmdbID)
	if err != nil {
		u.logger.Warn("winner enrichment failed",
			slog.String("slug", slug),
			slog.Int("tmdb_id", tmdbID),
			slog.String("error", err.Error()),
		)
		return results, nil
	}
	results.Pick = pick

	recs, err := u.movieDB.Recommendations(ctx, tmdbID)
	if err != nil {
		u.logger.Warn("recommendations unavailable",
			slog.String("slug", slug),
			slog.Int("tmdb_id", tmdbID),
			slog.String("error", err.Error()),
		)
		return results, nil
	}
	results.Recommendations = FilterRecommendations(recs)

	return results, nil
}

func (u *Usecase) pick(ctx context.Context, tmdbID int) (*model.Pick, error) {
	details, err := u.movieDB.Details(ctx, tmdbID)
	if err != nil {
		return nil, err
	}

	credits, err := u.movieDB.Credits(ctx, tmdbID)
	if err != nil {
		return nil, err
	}

	return &model.Pick{
		Details: details,
		Credits: credits,
	}, nil
}

// FilterRecommendations keeps well known titles with a middling score. The
// unfiltered list is returned when nothing passes.
func FilterRecommendations(recs []model.Recommendation) []model.Recommendation {
	filtered := make([]model.Recommendation, 0, len(recs))
	for _, r := range recs {
		if r.VoteAverage < minRecommendedVote || r.VoteAverage > maxRecommendedVote {
			continue
		}
		if r.VoteCount < minRecommendedCount {
			continue
		}
		filtered = append(filtered, r)
	}

	if len(filtered) == 0 {
		return recs
	}
	return filtered
}
