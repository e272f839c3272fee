package infra_postgres_movie

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	infra_pgerr "github.com/humanbelnik/flickswipe/internal/infra/postgres/pgerr"
	"github.com/humanbelnik/flickswipe/internal/model"
	usecase_movie "github.com/humanbelnik/flickswipe/internal/usecase/movie"
	"github.com/jmoiron/sqlx"
)

type Repository struct {
	db *sqlx.DB
}

func New(db *sqlx.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) Store(ctx context.Context, m model.Movie) error {
	query := `
		INSERT INTO movies (id, tmdb_id, title, overview, poster_path, poster_key, release_date, genres, rating)
		VALUES (:id, :tmdb_id, :title, :overview, :poster_path, :poster_key, :release_date, :genres, :rating)
	`

	_, err := r.db.NamedExecContext(ctx, query, FromDomain(m))
	if err != nil {
		if infra_pgerr.IsUniqueViolation(err) {
			return usecase_movie.ErrAlreadyExists
		}
		return fmt.Errorf("failed to store movie: %w", err)
	}

	return nil
}

func (r *Repository) Load(ctx context.Context) ([]model.Movie, error) {
	query := `
		SELECT id, tmdb_id, title, overview, poster_path, poster_key, release_date, genres, rating
		FROM movies
		ORDER BY created_at DESC
	`

	var moviesDB []MovieDB
	if err := r.db.SelectContext(ctx, &moviesDB, query); err != nil {
		return nil, fmt.Errorf("failed to query movies: %w", err)
	}

	movies := make([]model.Movie, len(moviesDB))
	for i := range moviesDB {
		movies[i] = moviesDB[i].ToDomain()
	}

	return movies, nil
}

func (r *Repository) LoadByID(ctx context.Context, ID uuid.UUID) (model.Movie, error) {
	query := `
		SELECT id, tmdb_id, title, overview, poster_path, poster_key, release_date, genres, rating
		FROM movies
		WHERE id = $1
	`

	var movieDB MovieDB
	err := r.db.GetContext(ctx, &movieDB, query, ID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Movie{}, usecase_movie.ErrResourceNotFound
		}
		return model.Movie{}, fmt.Errorf("failed to load movie by id: %w", err)
	}

	return movieDB.ToDomain(), nil
}

func (r *Repository) ExistsTMDB(ctx context.Context, tmdbID string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM movies WHERE tmdb_id = $1)`

	var exists bool
	if err := r.db.GetContext(ctx, &exists, query, tmdbID); err != nil {
		return false, fmt.Errorf("failed to check movie: %w", err)
	}
	return exists, nil
}

func (r *Repository) Delete(ctx context.Context, ID uuid.UUID) error {
	query := `DELETE FROM movies WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, ID)
	if err != nil {
		if infra_pgerr.IsForeignKeyViolation(err) {
			return usecase_movie.ErrMovieInUse
		}
		return fmt.Errorf("failed to delete movie: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return usecase_movie.ErrResourceNotFound
	}

	return nil
}
