package model

import (
	"regexp"

	"github.com/google/uuid"
)

const EmptyTitle string = ""

type Movie struct {
	ID          uuid.UUID
	TMDBID      string
	Title       string
	Overview    string
	PosterPath  string
	PosterKey   string
	ReleaseDate string
	Genres      []string
	Rating      float64
}

var yearPattern = regexp.MustCompile(`(\d{4})`)

// Year is the first four digit group of the release date, or "" when the
// date carries none.
func Year(releaseDate string) string {
	return yearPattern.FindString(releaseDate)
}

type Poster struct {
	Filename string
	Content  []byte

	MovieID string
}

func (r Poster) GetFilename() string {
	return r.Filename
}

func (r Poster) GetContent() []byte {
	return r.Content
}

func (r Poster) GetParent() string {
	return r.MovieID
}
