package infra_tmdb

import "github.com/humanbelnik/flickswipe/internal/model"

type genreDTO struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

type videoDTO struct {
	Key  string `json:"key"`
	Name string `json:"name"`
	Site string `json:"site"`
	Type string `json:"type"`
}

type detailsDTO struct {
	ID          int        `json:"id"`
	Title       string     `json:"title"`
	Overview    string     `json:"overview"`
	PosterPath  string     `json:"poster_path"`
	ReleaseDate string     `json:"release_date"`
	Runtime     int        `json:"runtime"`
	Budget      int64      `json:"budget"`
	Revenue     int64      `json:"revenue"`
	VoteAverage float64    `json:"vote_average"`
	VoteCount   int        `json:"vote_count"`
	Genres      []genreDTO `json:"genres"`
	Videos      struct {
		Results []videoDTO `json:"results"`
	} `json:"videos"`
}

func (d detailsDTO) toDomain() model.MovieDetails {
	genres := make([]model.Genre, 0, len(d.Genres))
	for _, g := range d.Genres {
		genres = append(genres, model.Genre{ID: g.ID, Name: g.Name})
	}
	videos := make([]model.Video, 0, len(d.Videos.Results))
	for _, v := range d.Videos.Results {
		videos = append(videos, model.Video{Key: v.Key, Name: v.Name, Site: v.Site, Type: v.Type})
	}

	return model.MovieDetails{
		TMDBID:      d.ID,
		Title:       d.Title,
		Overview:    d.Overview,
		PosterPath:  d.PosterPath,
		ReleaseDate: d.ReleaseDate,
		Runtime:     d.Runtime,
		Budget:      d.Budget,
		Revenue:     d.Revenue,
		VoteAverage: d.VoteAverage,
		VoteCount:   d.VoteCount,
		Genres:      genres,
		Videos:      videos,
	}
}

type creditsDTO struct {
	Cast []struct {
		Name      string `json:"name"`
		Character string `json:"character"`
		Order     int    `json:"order"`
	} `json:"cast"`
	Crew []struct {
		Name string `json:"name"`
		Job  string `json:"job"`
	} `json:"crew"`
}

func (c creditsDTO) toDomain() model.Credits {
	credits := model.Credits{
		Cast: make([]model.CastMember, 0, len(c.Cast)),
		Crew: make([]model.CrewMember, 0, len(c.Crew)),
	}
	for _, m := range c.Cast {
		credits.Cast = append(credits.Cast, model.CastMember{Name: m.Name, Character: m.Character, Order: m.Order})
	}
	for _, m := range c.Crew {
		credits.Crew = append(credits.Crew, model.CrewMember{Name: m.Name, Job: m.Job})
	}
	return credits
}

type listDTO struct {
	Page    int `json:"page"`
	Results []struct {
		ID          int     `json:"id"`
		Title       string  `json:"title"`
		Overview    string  `json:"overview"`
		PosterPath  string  `json:"poster_path"`
		ReleaseDate string  `json:"release_date"`
		VoteAverage float64 `json:"vote_average"`
		VoteCount   int     `json:"vote_count"`
	} `json:"results"`
}

func (l listDTO) toDomain() []model.Recommendation {
	out := make([]model.Recommendation, 0, len(l.Results))
	for _, r := range l.Results {
		out = append(out, model.Recommendation{
			TMDBID:      r.ID,
			Title:       r.Title,
			Overview:    r.Overview,
			PosterPath:  r.PosterPath,
			ReleaseDate: r.ReleaseDate,
			VoteAverage: r.VoteAverage,
			VoteCount:   r.VoteCount,
		})
	}
	return out
}
