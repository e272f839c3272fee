package infra_postgres_movie

import (
	"github.com/google/uuid"
	"github.com/humanbelnik/flickswipe/internal/model"
	"github.com/lib/pq"
)

type MovieDB struct {
	ID          uuid.UUID      `db:"id"`
	TMDBID      string         `db:"tmdb_id"`
	Title       string         `db:"title"`
	Overview    string         `db:"overview"`
	PosterPath  string         `db:"poster_path"`
	PosterKey   string         `db:"poster_key"`
	ReleaseDate string         `db:"release_date"`
	Genres      pq.StringArray `db:"genres"`
	Rating      float64        `db:"rating"`
}

func (m *MovieDB) ToDomain() model.Movie {
	return model.Movie{
		ID:          m.ID,
		TMDBID:      m.TMDBID,
		Title:       m.Title,
		Overview:    m.Overview,
		PosterPath:  m.PosterPath,
		PosterKey:   m.PosterKey,
		ReleaseDate: m.ReleaseDate,
		Genres:      []string(m.Genres),
		Rating:      m.Rating,
	}
}

func FromDomain(m model.Movie) MovieDB {
	genres := m.Genres
	if genres == nil {
		genres = []string{}
	}
	return MovieDB{
		ID:          m.ID,
		TMDBID:      m.TMDBID,
		Title:       m.Title,
		Overview:    m.Overview,
		PosterPath:  m.PosterPath,
		PosterKey:   m.PosterKey,
		ReleaseDate: m.ReleaseDate,
		Genres:      pq.StringArray(genres),
		Rating:      m.Rating,
	}
}
