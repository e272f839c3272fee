package http_result

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	http_common "github.com/humanbelnik/flickswipe/internal/delivery/http/common"
	http_player_middleware "github.com/humanbelnik/flickswipe/internal/delivery/http/middleware/player"
	"github.com/humanbelnik/flickswipe/internal/model"
	usecase_result "github.com/humanbelnik/flickswipe/internal/usecase/result"
)

const (
	topCast       = 5
	youtubeWatch  = "https://www.youtube.com/watch?v="
	youtubeSource = "YouTube"
)

type PosterLinker interface {
	PosterURL(ctx context.Context, movie model.Movie) (string, error)
	TMDBPosterURL(posterPath string) string
}

type Controller struct {
	uc      *usecase_result.Usecase
	posters PosterLinker
	players *http_player_middleware.Middleware

	logger *slog.Logger
}

type ControllerOption func(*Controller)

func WithLogger(logger *slog.Logger) ControllerOption {
	return func(c *Controller) {
		c.logger = logger
	}
}

func New(
	uc *usecase_result.Usecase,
	posters PosterLinker,
	players *http_player_middleware.Middleware,
	opts ...ControllerOption,
) *Controller {
	c := &Controller{
		uc:      uc,
		posters: posters,
		players: players,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Controller) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/games/:slug/results", c.players.PlayerRequired(), c.results)
}

// RankedDTO место фильма в итогах
type RankedDTO struct {
	Movie    http_common.MovieDTO `json:"movie"`
	Likes    int                  `json:"likes" example:"3"`
	Position int                  `json:"position" example:"0"`
}

type CastDTO struct {
	Name      string `json:"name" example:"Брэд Питт"`
	Character string `json:"character" example:"Тайлер Дёрден"`
}

// PickDTO описание победителя
type PickDTO struct {
	TMDBID     int       `json:"tmdb_id" example:"550"`
	Title      string    `json:"title" example:"Бойцовский клуб"`
	Year       string    `json:"year" example:"1999"`
	Overview   string    `json:"overview"`
	PosterLink string    `json:"poster_link,omitempty"`
	Genres     []string  `json:"genres" example:"драма"`
	Score      float64   `json:"score" example:"8.4"`
	Runtime    int       `json:"runtime" example:"139"`
	Director   string    `json:"director,omitempty" example:"Дэвид Финчер"`
	Cast       []CastDTO `json:"cast"`
	TrailerURL string    `json:"trailer_url,omitempty" example:"https://www.youtube.com/watch?v=SUXWAEX2jlg"`
}

type RecommendationDTO struct {
	TMDBID      int     `json:"tmdb_id" example:"807"`
	Title       string  `json:"title" example:"Семь"`
	Year        string  `json:"year" example:"1995"`
	Overview    string  `json:"overview"`
	PosterLink  string  `json:"poster_link,omitempty"`
	VoteAverage float64 `json:"vote_average" example:"8.4"`
	VoteCount   int     `json:"vote_count" example:"21000"`
}

type ResultsResponseDTO struct {
	Ranking         []RankedDTO         `json:"ranking"`
	Pick            *PickDTO            `json:"pick,omitempty"`
	Recommendations []RecommendationDTO `json:"recommendations"`
}

// @Summary Итоги игры
// @Description Пять фильмов с наибольшим числом лайков, описание победителя и похожие фильмы
// @Tags Voting operations
// @Produce json
// @Param slug path string true "Код игры" example("123456")
// @Success 200 {object} ResultsResponseDTO "Итоги"
// @Failure 404 {object} http_common.ErrorResponse "Игра не найдена"
// @Failure 409 {object} http_common.ErrorResponse "Голосование еще идет"
// @Failure 500 {object} http_common.ErrorResponse "Внутренняя ошибка сервера"
// @Security PlayerToken
// @Router /games/{slug}/results [get]
func (c *Controller) results(ctx *gin.Context) {
	results, err := c.uc.Results(ctx, ctx.Param("slug"))
	if err != nil {
		switch {
		case errors.Is(err, usecase_result.ErrResourceNotFound):
			ctx.JSON(http.StatusNotFound, http_common.ErrorResponse{Message: "not found"})
		case errors.Is(err, usecase_result.ErrResultsNotReady):
			ctx.JSON(http.StatusConflict, http_common.ErrorResponse{Message: "voting is still in progress"})
		default:
			c.logger.Error("failed to build results", slog.String("error", err.Error()))
			ctx.JSON(http.StatusInternalServerError, http_common.ErrorResponse{Message: "internal error"})
		}
		return
	}

	resp := ResultsResponseDTO{
		Ranking:         make([]RankedDTO, 0, len(results.Ranking)),
		Recommendations: make([]RecommendationDTO, 0, len(results.Recommendations)),
	}
	for _, r := range results.Ranking {
		poster, _ := c.posters.PosterURL(ctx, r.Movie)
		resp.Ranking = append(resp.Ranking, RankedDTO{
			Movie:    http_common.FromMovie(r.Movie, poster),
			Likes:    r.Score.Likes,
			Position: r.Score.Position,
		})
	}
	if results.Pick != nil {
		resp.Pick = c.pick(*results.Pick)
	}
	for _, r := range results.Recommendations {
		resp.Recommendations = append(resp.Recommendations, RecommendationDTO{
			TMDBID:      r.TMDBID,
			Title:       r.Title,
			Year:        model.Year(r.ReleaseDate),
			Overview:    r.Overview,
			PosterLink:  c.posters.TMDBPosterURL(r.PosterPath),
			VoteAverage: r.VoteAverage,
			VoteCount:   r.VoteCount,
		})
	}

	ctx.JSON(http.StatusOK, resp)
}

func (c *Controller) pick(p model.Pick) *PickDTO {
	d := p.Details
	dto := &PickDTO{
		TMDBID:     d.TMDBID,
		Title:      d.Title,
		Year:       model.Year(d.ReleaseDate),
		Overview:   d.Overview,
		PosterLink: c.posters.TMDBPosterURL(d.PosterPath),
		Genres:     make([]string, 0, len(d.Genres)),
		Score:      d.VoteAverage,
		Runtime:    d.Runtime,
		Director:   p.Credits.Director(),
		Cast:       make([]CastDTO, 0, topCast),
	}
	for _, g := range d.Genres {
		dto.Genres = append(dto.Genres, g.Name)
	}
	for _, m := range p.Credits.TopCast(topCast) {
		dto.Cast = append(dto.Cast, CastDTO{Name: m.Name, Character: m.Character})
	}
	if v, ok := d.Trailer(); ok && strings.EqualFold(v.Site, youtubeSource) {
		dto.TrailerURL = youtubeWatch + v.Key
	}
	return dto
}
