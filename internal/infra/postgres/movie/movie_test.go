package infra_postgres_movie

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/humanbelnik/flickswipe/internal/model"
	usecase_movie "github.com/humanbelnik/flickswipe/internal/usecase/movie"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/ozontech/allure-go/pkg/framework/provider"
	"github.com/ozontech/allure-go/pkg/framework/suite"
	"github.com/stretchr/testify/assert"
)

type MovieInfraUnitSuite struct {
	suite.Suite
}

type resources struct {
	mock       sqlmock.Sqlmock
	repository *Repository
	ctx        context.Context
}

func initResources(t provider.T) *resources {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}

	return &resources{
		mock:       mock,
		repository: New(sqlx.NewDb(db, "sqlmock")),
		ctx:        context.Background(),
	}
}

type MovieBuilder struct {
	m model.Movie
}

func NewMovieBuilder() *MovieBuilder {
	return &MovieBuilder{
		m: model.Movie{
			ID:          uuid.New(),
			TMDBID:      "603",
			Title:       "The Matrix",
			Overview:    "Wake up, Neo.",
			PosterPath:  "/matrix.jpg",
			ReleaseDate: "1999-03-30",
			Genres:      []string{"Action", "Science Fiction"},
			Rating:      8.2,
		},
	}
}

func (b *MovieBuilder) Build() model.Movie {
	return b.m
}

var movieColumns = []string{"id", "tmdb_id", "title", "overview", "poster_path", "poster_key", "release_date", "genres", "rating"}

func (s *MovieInfraUnitSuite) TestStore(t provider.T) {
	t.Run("Should insert movie", func(t provider.T) {
		r := initResources(t)
		m := NewMovieBuilder().Build()
		r.mock.ExpectExec("INSERT INTO movies").WillReturnResult(sqlmock.NewResult(1, 1))

		assert.NoError(t, r.repository.Store(r.ctx, m))
		assert.NoError(t, r.mock.ExpectationsWereMet())
	})

	t.Run("Should map duplicate tmdb id", func(t provider.T) {
		r := initResources(t)
		r.mock.ExpectExec("INSERT INTO movies").WillReturnError(&pq.Error{Code: "23505"})

		err := r.repository.Store(r.ctx, NewMovieBuilder().Build())

		assert.ErrorIs(t, err, usecase_movie.ErrAlreadyExists)
		assert.NoError(t, r.mock.ExpectationsWereMet())
	})
}

func (s *MovieInfraUnitSuite) TestLoadByID(t provider.T) {
	t.Run("Should load movie with genres", func(t provider.T) {
		r := initResources(t)
		m := NewMovieBuilder().Build()
		rows := sqlmock.NewRows(movieColumns).
			AddRow(m.ID.String(), m.TMDBID, m.Title, m.Overview, m.PosterPath, "", m.ReleaseDate, "{Action,\"Science Fiction\"}", m.Rating)
		r.mock.ExpectQuery("SELECT (.+) FROM movies WHERE id = \\$1").WithArgs(m.ID).WillReturnRows(rows)

		actual, err := r.repository.LoadByID(r.ctx, m.ID)

		assert.NoError(t, err)
		assert.Equal(t, m, actual)
		assert.NoError(t, r.mock.ExpectationsWereMet())
	})

	t.Run("Should map missing movie", func(t provider.T) {
		r := initResources(t)
		id := uuid.New()
		r.mock.ExpectQuery("SELECT (.+) FROM movies").WithArgs(id).WillReturnError(sql.ErrNoRows)

		_, err := r.repository.LoadByID(r.ctx, id)

		assert.ErrorIs(t, err, usecase_movie.ErrResourceNotFound)
		assert.NoError(t, r.mock.ExpectationsWereMet())
	})
}

func (s *MovieInfraUnitSuite) TestDelete(t provider.T) {
	t.Parallel()

	testCases := []struct {
		name          string
		setupMocks    func(r *resources, id uuid.UUID)
		expectedError error
	}{
		{
			name: "Should delete unused movie",
			setupMocks: func(r *resources, id uuid.UUID) {
				r.mock.ExpectExec("DELETE FROM movies").WithArgs(id).WillReturnResult(sqlmock.NewResult(0, 1))
			},
		},
		{
			name: "Should refuse movie referenced by playlist",
			setupMocks: func(r *resources, id uuid.UUID) {
				r.mock.ExpectExec("DELETE FROM movies").WithArgs(id).WillReturnError(&pq.Error{Code: "23503"})
			},
			expectedError: usecase_movie.ErrMovieInUse,
		},
		{
			name: "Should report missing movie",
			setupMocks: func(r *resources, id uuid.UUID) {
				r.mock.ExpectExec("DELETE FROM movies").WithArgs(id).WillReturnResult(sqlmock.NewResult(0, 0))
			},
			expectedError: usecase_movie.ErrResourceNotFound,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t provider.T) {
			t.Parallel()
			r := initResources(t)
			id := uuid.New()
			tc.setupMocks(r, id)

			err := r.repository.Delete(r.ctx, id)

			if tc.expectedError != nil {
				assert.ErrorIs(t, err, tc.expectedError)
			} else {
				assert.NoError(t, err)
			}
			assert.NoError(t, r.mock.ExpectationsWereMet())
		})
	}
}

func (s *MovieInfraUnitSuite) TestExistsTMDB(t provider.T) {
	r := initResources(t)
	r.mock.ExpectQuery("SELECT EXISTS").WithArgs("603").WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	exists, err := r.repository.ExistsTMDB(r.ctx, "603")

	assert.NoError(t, err)
	assert.True(t, exists)
	assert.NoError(t, r.mock.ExpectationsWereMet())
}

func TestMovieInfraUnitSuite(t *testing.T) {
	suite.RunSuite(t, new(MovieInfraUnitSuite))
}
