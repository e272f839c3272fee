package http_voting

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	http_common "github.com/humanbelnik/flickswipe/internal/delivery/http/common"
	http_player_middleware "github.com/humanbelnik/flickswipe/internal/delivery/http/middleware/player"
	ws_game "github.com/humanbelnik/flickswipe/internal/delivery/ws/game"
	usecase_game "github.com/humanbelnik/flickswipe/internal/usecase/game"
	usecase_vote "github.com/humanbelnik/flickswipe/internal/usecase/vote"
)

type Broadcaster interface {
	Broadcast(slug string, event ws_game.Event)
}

type Controller struct {
	uc      *usecase_vote.Usecase
	games   *usecase_game.Usecase
	players *http_player_middleware.Middleware
	hub     Broadcaster

	logger *slog.Logger
}

type ControllerOption func(*Controller)

func WithLogger(logger *slog.Logger) ControllerOption {
	return func(c *Controller) {
		c.logger = logger
	}
}

func New(
	uc *usecase_vote.Usecase,
	games *usecase_game.Usecase,
	players *http_player_middleware.Middleware,
	hub Broadcaster,
	opts ...ControllerOption,
) *Controller {
	c := &Controller{
		uc:      uc,
		games:   games,
		players: players,
		hub:     hub,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Controller) RegisterRoutes(router *gin.RouterGroup) {
	voting := router.Group("/games/:slug", c.players.PlayerRequired())
	{
		voting.GET("/entry", c.entry)
		voting.GET("/movies/:movie_id", c.card)
		voting.POST("/movies/:movie_id/votes", c.vote)
	}
}

// EntryResponseDTO DTO первого фильма подборки
type EntryResponseDTO struct {
	MovieID  string `json:"movie_id" example:"550e8400-e29b-41d4-a716-446655440000"`
	Location string `json:"location" example:"/game/123456/550e8400-e29b-41d4-a716-446655440000"`
}

// @Summary Первый фильм подборки
// @Description Возвращает фильм, с которого игрок начинает голосование
// @Tags Voting operations
// @Produce json
// @Param slug path string true "Код игры" example("123456")
// @Success 200 {object} EntryResponseDTO "Первый фильм"
// @Failure 404 {object} http_common.ErrorResponse "Игра не найдена"
// @Failure 500 {object} http_common.ErrorResponse "Внутренняя ошибка сервера"
// @Security PlayerToken
// @Router /games/{slug}/entry [get]
func (c *Controller) entry(ctx *gin.Context) {
	slug := ctx.Param("slug")

	movieID, err := c.uc.First(ctx, slug)
	if err != nil {
		c.fail(ctx, "failed to get entry movie", err)
		return
	}

	ctx.JSON(http.StatusOK, EntryResponseDTO{
		MovieID:  movieID.String(),
		Location: usecase_vote.MovieLocation(slug, movieID),
	})
}

// CardResponseDTO DTO карточки фильма
type CardResponseDTO struct {
	Movie     http_common.MovieDTO `json:"movie"`
	Position  int                  `json:"position" example:"2"`
	Total     int                  `json:"total" example:"10"`
	Remaining int                  `json:"remaining" example:"8"`
	Deadline  *time.Time           `json:"deadline,omitempty"`
}

// @Summary Карточка фильма
// @Description Фильм, его место в подборке и число оставшихся фильмов
// @Tags Voting operations
// @Produce json
// @Param slug path string true "Код игры" example("123456")
// @Param movie_id path string true "Идентификатор фильма"
// @Success 200 {object} CardResponseDTO "Карточка фильма"
// @Failure 400 {object} http_common.ErrorResponse "Некорректный идентификатор"
// @Failure 404 {object} http_common.ErrorResponse "Игра или фильм не найдены"
// @Failure 500 {object} http_common.ErrorResponse "Внутренняя ошибка сервера"
// @Security PlayerToken
// @Router /games/{slug}/movies/{movie_id} [get]
func (c *Controller) card(ctx *gin.Context) {
	movieID, err := uuid.Parse(ctx.Param("movie_id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, http_common.ErrorResponse{
			Message: "invalid movie id",
		})
		return
	}

	card, err := c.uc.Card(ctx, ctx.Param("slug"), movieID)
	if err != nil {
		c.fail(ctx, "failed to load card", err)
		return
	}

	ctx.JSON(http.StatusOK, CardResponseDTO{
		Movie:     http_common.FromMovie(card.Movie, card.PosterURL),
		Position:  card.Position,
		Total:     card.Total,
		Remaining: card.Remaining,
		Deadline:  card.Deadline,
	})
}

// VoteRequestDTO
type VoteRequestDTO struct {
	ActionType string `json:"actionType" form:"actionType" example:"yes" enums:"yes,no"`
}

// VoteResponseDTO
type VoteResponseDTO struct {
	Location       string `json:"location" example:"/game/123456/spinner"`
	NextMovieID    string `json:"next_movie_id,omitempty"`
	PlayerFinished bool   `json:"player_finished"`
	GameFinished   bool   `json:"game_finished"`
}

// @Summary Голос за фильм
// @Description Принимает yes/no за фильм и перенаправляет на следующий фильм или на экран ожидания
// @Tags Voting operations
// @Accept json,x-www-form-urlencoded
// @Produce json
// @Param slug path string true "Код игры" example("123456")
// @Param movie_id path string true "Идентификатор фильма"
// @Param request body VoteRequestDTO true "Реакция"
// @Success 303 {object} VoteResponseDTO "Голос принят"
// @Header 303 {string} Location "Следующая страница"
// @Failure 400 {object} http_common.ErrorResponse "Некорректная реакция"
// @Failure 403 {object} http_common.ErrorResponse "Не игрок этой игры"
// @Failure 404 {object} http_common.ErrorResponse "Игра или фильм не найдены"
// @Failure 409 {object} http_common.ErrorResponse "Голосование не идет, голос уже учтен или предыдущие фильмы не оценены"
// @Failure 500 {object} http_common.ErrorResponse "Внутренняя ошибка сервера"
// @Security PlayerToken
// @Router /games/{slug}/movies/{movie_id}/votes [post]
func (c *Controller) vote(ctx *gin.Context) {
	slug := ctx.Param("slug")

	movieID, err := uuid.Parse(ctx.Param("movie_id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, http_common.ErrorResponse{
			Message: "invalid movie id",
		})
		return
	}

	var req VoteRequestDTO
	if err := ctx.ShouldBind(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, http_common.ErrorResponse{
			Message: "Invalid action type.",
		})
		return
	}

	next, err := c.uc.Vote(ctx, slug, movieID, http_player_middleware.Token(ctx), req.ActionType)
	if err != nil {
		if errors.Is(err, usecase_vote.ErrVotingClosed) {
			ctx.Header("Location", next.Location)
		}
		c.fail(ctx, "vote refused", err)
		return
	}

	c.notify(ctx, slug, next)

	ctx.Header("Location", next.Location)
	resp := VoteResponseDTO{
		Location:       next.Location,
		PlayerFinished: next.PlayerFinished,
		GameFinished:   next.GameFinished,
	}
	if next.NextMovieID != uuid.Nil {
		resp.NextMovieID = next.NextMovieID.String()
	}
	ctx.JSON(http.StatusSeeOther, resp)
}

func (c *Controller) notify(ctx *gin.Context, slug string, next usecase_vote.Next) {
	if !next.PlayerFinished {
		return
	}

	progress, err := c.games.Status(ctx, slug)
	if err != nil {
		c.logger.Warn("progress unavailable", slog.String("slug", slug), slog.String("error", err.Error()))
	} else {
		c.hub.Broadcast(slug, ws_game.PlayerFinished(slug, progress.PlayersDone, progress.Players))
	}
}

func (c *Controller) fail(ctx *gin.Context, msg string, err error) {
	status, message := http.StatusInternalServerError, "internal error"
	switch {
	case errors.Is(err, usecase_vote.ErrInvalidAction):
		status, message = http.StatusBadRequest, "Invalid action type."
	case errors.Is(err, usecase_vote.ErrResourceNotFound):
		status, message = http.StatusNotFound, "game not found"
	case errors.Is(err, usecase_vote.ErrMovieNotFound):
		status, message = http.StatusNotFound, "movie not found"
	case errors.Is(err, usecase_vote.ErrMovieNotInGame):
		status, message = http.StatusNotFound, "movie is not in this game"
	case errors.Is(err, usecase_vote.ErrForbidden):
		status, message = http.StatusForbidden, "not a player of this game"
	case errors.Is(err, usecase_vote.ErrVotingNotStarted):
		status, message = http.StatusConflict, "voting not started"
	case errors.Is(err, usecase_vote.ErrVotingClosed):
		status, message = http.StatusConflict, "voting closed"
	case errors.Is(err, usecase_vote.ErrAlreadyVoted):
		status, message = http.StatusConflict, "already voted"
	case errors.Is(err, usecase_vote.ErrOutOfOrder):
		status, message = http.StatusConflict, "vote earlier movies first"
	}

	if status >= http.StatusInternalServerError {
		c.logger.Error(msg, slog.String("error", err.Error()))
	} else {
		c.logger.Warn(msg, slog.String("error", err.Error()))
	}
	ctx.JSON(status, http_common.ErrorResponse{Message: message})
}
