package http_common

import "github.com/humanbelnik/flickswipe/internal/model"

const (
	HeaderAdminToken  = "X-admin-token"
	HeaderPlayerToken = "X-player-token"
)

type ErrorResponse struct {
	Message string `json:"message" example:"not found"`
}

// MovieDTO DTO фильма
type MovieDTO struct {
	ID          string   `json:"id" example:"550e8400-e29b-41d4-a716-446655440000"`
	TMDBID      string   `json:"tmdb_id" example:"550"`
	Title       string   `json:"title" example:"Бойцовский клуб"`
	Overview    string   `json:"overview" example:"Сотрудник страховой компании страдает хронической бессонницей..."`
	PosterLink  string   `json:"poster_link,omitempty" example:"https://image.tmdb.org/t/p/w500/abc.jpg"`
	ReleaseDate string   `json:"release_date" example:"1999-10-15"`
	Year        string   `json:"year" example:"1999"`
	Genres      []string `json:"genres" example:"драма,триллер"`
	Rating      float64  `json:"rating" example:"8.4"`
}

func FromMovie(m model.Movie, posterLink string) MovieDTO {
	genres := m.Genres
	if genres == nil {
		genres = []string{}
	}
	return MovieDTO{
		ID:          m.ID.String(),
		TMDBID:      m.TMDBID,
		Title:       m.Title,
		Overview:    m.Overview,
		PosterLink:  posterLink,
		ReleaseDate: m.ReleaseDate,
		Year:        model.Year(m.ReleaseDate),
		Genres:      genres,
		Rating:      m.Rating,
	}
}
