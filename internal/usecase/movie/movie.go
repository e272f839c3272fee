package usecase_movie

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/humanbelnik/flickswipe/internal/model"
)

var (
	ErrInternal           = errors.New("internal error")
	ErrResourceNotFound   = errors.New("no such resource")
	ErrAlreadyExists      = errors.New("movie already in catalog")
	ErrMovieInUse         = errors.New("movie is referenced by a game")
	ErrInvalidInput       = errors.New("invalid input")
	ErrMovieDBUnavailable = errors.New("movie database unavailable")
)

const maxPopularPages = 20

//go:generate mockery --name=Repository --output=./mocks --filename=repository.go
type Repository interface {
	Store(ctx context.Context, movie model.Movie) error
	Load(ctx context.Context) ([]model.Movie, error)
	LoadByID(ctx context.Context, id uuid.UUID) (model.Movie, error)
	ExistsTMDB(ctx context.Context, tmdbID string) (bool, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

//go:generate mockery --name=MovieDB --output=./mocks --filename=moviedb.go
type MovieDB interface {
	Details(ctx context.Context, tmdbID int) (model.MovieDetails, error)
	Popular(ctx context.Context, page int) ([]model.Recommendation, error)
	Poster(ctx context.Context, posterPath string) ([]byte, error)
	PosterURL(posterPath string) string
}

//go:generate mockery --name=PosterRepository --output=./mocks --filename=poster.go
type PosterRepository interface {
	Save(ctx context.Context, obj *model.Poster, readyKey *string) (string, error)
	Delete(ctx context.Context, key string) error
	GeneratePresignedURL(ctx context.Context, key string, ttl time.Duration) (string, error)
}

type Usecase struct {
	repository       Repository
	movieDB          MovieDB
	posterRepository PosterRepository

	presignTTL time.Duration
	logger     *slog.Logger
}

type Option func(*Usecase)

func WithPresignTTL(ttl time.Duration) Option {
	return func(u *Usecase) {
		u.presignTTL = ttl
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(u *Usecase) {
		u.logger = logger
	}
}

func New(
	repository Repository,
	movieDB MovieDB,
	posterRepository PosterRepository,
	opts ...Option,
) *Usecase {
	u := &Usecase{
		repository:       repository,
		movieDB:          movieDB,
		posterRepository: posterRepository,
		presignTTL:       time.Hour,
		logger:           slog.Default(),
	}
	for _, opt := range opts {
		opt(u)
	}
	return u
}

// Import pulls one title from TMDB into the catalog and mirrors its poster.
// A poster that cannot be mirrored is served from the TMDB CDN instead.
func (u *Usecase) Import(ctx context.Context, tmdbID int) (model.Movie, error) {
	if tmdbID <= 0 {
		return model.Movie{}, fmt.Errorf("%w: tmdb id must be positive", ErrInvalidInput)
	}

	exists, err := u.repository.ExistsTMDB(ctx, strconv.Itoa(tmdbID))
	if err != nil {
		return model.Movie{}, errors.Join(ErrInternal, err)
	}
	if exists {
		return model.Movie{}, ErrAlreadyExists
	}

	details, err := u.movieDB.Details(ctx, tmdbID)
	if err != nil {
		return model.Movie{}, fmt.Errorf("%w: %w", ErrMovieDBUnavailable, err)
	}

	movie := fromDetails(details)
	movie.PosterKey = u.mirrorPoster(ctx, movie)

	if err := u.repository.Store(ctx, movie); err != nil {
		if movie.PosterKey != "" {
			_ = u.posterRepository.Delete(ctx, movie.PosterKey)
		}
		if errors.Is(err, ErrAlreadyExists) {
			return model.Movie{}, ErrAlreadyExists
		}
		return model.Movie{}, errors.Join(ErrInternal, err)
	}

	u.logger.Info("movie imported",
		slog.String("movie_id", movie.ID.String()),
		slog.String("tmdb_id", movie.TMDBID),
		slog.String("title", movie.Title),
	)
	return movie, nil
}

func (u *Usecase) mirrorPoster(ctx context.Context, movie model.Movie) string {
	if movie.PosterPath == "" {
		return ""
	}

	content, err := u.movieDB.Poster(ctx, movie.PosterPath)
	if err != nil {
		u.logger.Warn("poster download failed",
			slog.String("tmdb_id", movie.TMDBID),
			slog.String("error", err.Error()),
		)
		return ""
	}

	key, err := u.posterRepository.Save(ctx, &model.Poster{
		Filename: path.Base(movie.PosterPath),
		Content:  content,
		MovieID:  movie.ID.String(),
	}, nil)
	if err != nil {
		u.logger.Warn("poster upload failed",
			slog.String("tmdb_id", movie.TMDBID),
			slog.String("error", err.Error()),
		)
		return ""
	}
	return key
}

func fromDetails(d model.MovieDetails) model.Movie {
	genres := make([]string, 0, len(d.Genres))
	for _, g := range d.Genres {
		genres = append(genres, g.Name)
	}

	return model.Movie{
		ID:          uuid.New(),
		TMDBID:      strconv.Itoa(d.TMDBID),
		Title:       d.Title,
		Overview:    d.Overview,
		PosterPath:  d.PosterPath,
		ReleaseDate: d.ReleaseDate,
		Genres:      genres,
		Rating:      d.VoteAverage,
	}
}

// ImportPopular walks the first pages of TMDB's popular list. Titles already
// in the catalog are skipped.
func (u *Usecase) ImportPopular(ctx context.Context, pages int) (int, error) {
	if pages <= 0 || pages > maxPopularPages {
		return 0, fmt.Errorf("%w: pages must be in [1, %d]", ErrInvalidInput, maxPopularPages)
	}

	var imported int
	for page := 1; page <= pages; page++ {
		list, err := u.movieDB.Popular(ctx, page)
		if err != nil {
			return imported, fmt.Errorf("%w: %w", ErrMovieDBUnavailable, err)
		}

		for _, rec := range list {
			if _, err := u.Import(ctx, rec.TMDBID); err != nil {
				if errors.Is(err, ErrAlreadyExists) {
					continue
				}
				return imported, err
			}
			imported++
		}
	}

	return imported, nil
}

func (u *Usecase) List(ctx context.Context) ([]model.Movie, error) {
	movies, err := u.repository.Load(ctx)
	if err != nil {
		return nil, errors.Join(ErrInternal, err)
	}
	return movies, nil
}

func (u *Usecase) Get(ctx context.Context, id uuid.UUID) (model.Movie, error) {
	movie, err := u.repository.LoadByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrResourceNotFound) {
			return model.Movie{}, ErrResourceNotFound
		}
		return model.Movie{}, errors.Join(ErrInternal, err)
	}
	return movie, nil
}

func (u *Usecase) Delete(ctx context.Context, id uuid.UUID) error {
	movie, err := u.Get(ctx, id)
	if err != nil {
		return err
	}

	if err := u.repository.Delete(ctx, id); err != nil {
		switch {
		case errors.Is(err, ErrMovieInUse):
			return ErrMovieInUse
		case errors.Is(err, ErrResourceNotFound):
			return ErrResourceNotFound
		}
		return errors.Join(ErrInternal, err)
	}

	if movie.PosterKey != "" {
		if err := u.posterRepository.Delete(ctx, movie.PosterKey); err != nil {
			u.logger.Warn("orphan poster left in storage",
				slog.String("key", movie.PosterKey),
				slog.String("error", err.Error()),
			)
		}
	}
	return nil
}

// PosterURL prefers the mirrored copy and falls back to the TMDB CDN.
func (u *Usecase) PosterURL(ctx context.Context, movie model.Movie) (string, error) {
	if movie.PosterKey != "" {
		url, err := u.posterRepository.GeneratePresignedURL(ctx, movie.PosterKey, u.presignTTL)
		if err == nil && url != "" {
			return url, nil
		}
		if err != nil {
			u.logger.Warn("presign failed",
				slog.String("key", movie.PosterKey),
				slog.String("error", err.Error()),
			)
		}
	}

	if movie.PosterPath == "" {
		return "", ErrResourceNotFound
	}
	return u.movieDB.PosterURL(movie.PosterPath), nil
}

// TMDBPosterURL is the CDN address of a TMDB poster path, "" for none.
func (u *Usecase) TMDBPosterURL(posterPath string) string {
	if posterPath == "" {
		return ""
	}
	return u.movieDB.PosterURL(posterPath)
}
