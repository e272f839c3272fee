package model

type Genre struct {
	ID   int
	Name string
}

type Video struct {
	Key  string
	Name string
	Site string
	Type string
}

type MovieDetails struct {
	TMDBID      int
	Title       string
	Overview    string
	PosterPath  string
	ReleaseDate string
	Runtime     int
	Budget      int64
	Revenue     int64
	VoteAverage float64
	VoteCount   int
	Genres      []Genre
	Videos      []Video
}

// Trailer picks the first YouTube trailer, then any video.
func (d MovieDetails) Trailer() (Video, bool) {
	for _, v := range d.Videos {
		if v.Site == "YouTube" && v.Type == "Trailer" {
			return v, true
		}
	}
	if len(d.Videos) > 0 {
		return d.Videos[0], true
	}
	return Video{}, false
}

type CastMember struct {
	Name      string
	Character string
	Order     int
}

type CrewMember struct {
	Name string
	Job  string
}

type Credits struct {
	Cast []CastMember
	Crew []CrewMember
}

func (c Credits) Director() string {
	for _, m := range c.Crew {
		if m.Job == "Director" {
			return m.Name
		}
	}
	return ""
}

// TopCast returns at most n cast members in billing order.
func (c Credits) TopCast(n int) []CastMember {
	if n > len(c.Cast) {
		n = len(c.Cast)
	}
	return c.Cast[:n]
}

type Recommendation struct {
	TMDBID      int
	Title       string
	Overview    string
	PosterPath  string
	ReleaseDate string
	VoteAverage float64
	VoteCount   int
}

type Pick struct {
	Details MovieDetails
	Credits Credits
}

type Results struct {
	Ranking         []Ranked
	Pick            *Pick
	Recommendations []Recommendation
}
