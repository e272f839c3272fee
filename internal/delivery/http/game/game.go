package http_game

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
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
	usecase *usecase_game.Usecase
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
	usecase *usecase_game.Usecase,
	players *http_player_middleware.Middleware,
	hub Broadcaster,
	opts ...ControllerOption,
) *Controller {
	c := &Controller{
		usecase: usecase,
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
	games := router.Group("/games")
	{
		games.POST("", c.create)
		games.GET("/:slug", c.status)
		games.GET("/:slug/qr", c.qr)
		games.POST("/:slug/players", c.join)
		games.POST("/:slug/start", c.players.PlayerRequired(), c.start)
		games.DELETE("/:slug", c.players.PlayerRequired(), c.free)
	}
}

// CreateRequestDTO DTO для создания игры
type CreateRequestDTO struct {
	Name         string `json:"name" binding:"required" example:"Алиса"`
	PlaylistSize int    `json:"playlist_size" example:"10"`
}

// CreateResponseDTO DTO для ответа создания игры
type CreateResponseDTO struct {
	Slug     string `json:"slug" example:"123456"`
	JoinLink string `json:"join_link" example:"http://localhost:3000/game/123456"`
}

// Create создает новую игру
// @Summary Создание игры
// @Description Создает лобби со случайной подборкой фильмов из каталога
// @Tags Games
// @Accept json
// @Produce json
// @Param request body CreateRequestDTO true "Имя создателя и размер подборки"
// @Success 201 {object} CreateResponseDTO "Игра создана"
// @Header 201 {string} X-player-token "Токен владельца игры"
// @Failure 400 {object} http_common.ErrorResponse "Неверный формат запроса"
// @Failure 409 {object} http_common.ErrorResponse "Каталог пуст"
// @Failure 500 {object} http_common.ErrorResponse "Внутренняя ошибка сервера"
// @Failure 503 {object} http_common.ErrorResponse "Ресурс недоступен"
// @Router /games [post]
func (c *Controller) create(ctx *gin.Context) {
	var req CreateRequestDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, http_common.ErrorResponse{
			Message: "invalid request format",
		})
		return
	}

	slug, ownerToken, err := c.usecase.Create(ctx, req.Name, req.PlaylistSize)
	if err != nil {
		c.fail(ctx, "failed to create game", err)
		return
	}

	ctx.Header(http_common.HeaderPlayerToken, ownerToken)
	ctx.JSON(http.StatusCreated, CreateResponseDTO{
		Slug:     slug,
		JoinLink: c.usecase.JoinLink(slug),
	})
}

// StatusResponseDTO DTO состояния игры
type StatusResponseDTO struct {
	Status      string     `json:"status" example:"voting" enums:"lobby,voting,finished"`
	Players     int        `json:"players" example:"3"`
	PlayersDone int        `json:"players_done" example:"1"`
	Movies      int        `json:"movies" example:"10"`
	Deadline    *time.Time `json:"deadline,omitempty"`
}

// Status возвращает состояние игры
// @Summary Состояние игры
// @Description Статус, число игроков, число закончивших и длина подборки
// @Tags Games
// @Produce json
// @Param slug path string true "Код игры"
// @Success 200 {object} StatusResponseDTO "Состояние игры"
// @Failure 404 {object} http_common.ErrorResponse "Игра не найдена"
// @Failure 500 {object} http_common.ErrorResponse "Внутренняя ошибка сервера"
// @Router /games/{slug} [get]
func (c *Controller) status(ctx *gin.Context) {
	progress, err := c.usecase.Status(ctx, ctx.Param("slug"))
	if err != nil {
		c.fail(ctx, "failed to get status", err)
		return
	}

	ctx.JSON(http.StatusOK, StatusResponseDTO{
		Status:      progress.Status,
		Players:     progress.Players,
		PlayersDone: progress.PlayersDone,
		Movies:      progress.Movies,
		Deadline:    progress.Deadline,
	})
}

// JoinRequestDTO DTO для входа в игру
type JoinRequestDTO struct {
	Name string `json:"name" binding:"required" example:"Боб"`
}

// Join добавляет игрока
// @Summary Вход в игру
// @Description Добавляет игрока в игру по коду
// @Tags Games
// @Accept json
// @Param slug path string true "Код игры"
// @Param request body JoinRequestDTO true "Имя игрока"
// @Success 201 "Игрок добавлен"
// @Header 201 {string} X-player-token "Токен игрока"
// @Failure 400 {object} http_common.ErrorResponse "Неверный формат запроса"
// @Failure 404 {object} http_common.ErrorResponse "Игра не найдена"
// @Failure 409 {object} http_common.ErrorResponse "Игра завершена"
// @Failure 500 {object} http_common.ErrorResponse "Внутренняя ошибка сервера"
// @Router /games/{slug}/players [post]
func (c *Controller) join(ctx *gin.Context) {
	slug := ctx.Param("slug")

	var req JoinRequestDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, http_common.ErrorResponse{
			Message: "invalid request format",
		})
		return
	}

	token, err := c.usecase.Join(ctx, slug, req.Name)
	if err != nil {
		c.fail(ctx, "failed to join game", err)
		return
	}

	if count, err := c.usecase.PlayersCount(ctx, slug); err == nil {
		c.hub.Broadcast(slug, ws_game.PlayerJoined(slug, count))
	} else {
		c.logger.Warn("players count unavailable", slog.String("error", err.Error()))
	}

	ctx.Header(http_common.HeaderPlayerToken, token)
	ctx.Status(http.StatusCreated)
}

// StartResponseDTO DTO запуска голосования
type StartResponseDTO struct {
	FirstMovieID string    `json:"first_movie_id" example:"550e8400-e29b-41d4-a716-446655440000"`
	Location     string    `json:"location" example:"/game/123456/550e8400-e29b-41d4-a716-446655440000"`
	Deadline     time.Time `json:"deadline"`
}

// Start запускает голосование
// @Summary Запуск голосования
// @Description Переводит лобби в голосование с ограничением по времени. Только владелец
// @Tags Games
// @Produce json
// @Param slug path string true "Код игры"
// @Success 200 {object} StartResponseDTO "Голосование запущено"
// @Failure 401 {object} http_common.ErrorResponse "Не авторизован"
// @Failure 403 {object} http_common.ErrorResponse "Не владелец игры"
// @Failure 409 {object} http_common.ErrorResponse "Голосование уже идет"
// @Failure 500 {object} http_common.ErrorResponse "Внутренняя ошибка сервера"
// @Security PlayerToken
// @Router /games/{slug}/start [post]
func (c *Controller) start(ctx *gin.Context) {
	slug := ctx.Param("slug")

	first, deadline, err := c.usecase.Start(ctx, slug, http_player_middleware.Token(ctx))
	if err != nil {
		c.fail(ctx, "failed to start voting", err)
		return
	}

	location := usecase_vote.MovieLocation(slug, first)
	c.hub.Broadcast(slug, ws_game.VotingStarted(slug, first.String(), deadline, location))
	c.closeAt(slug, deadline)

	ctx.JSON(http.StatusOK, StartResponseDTO{
		FirstMovieID: first.String(),
		Location:     location,
		Deadline:     deadline,
	})
}

// closeAt finishes the round when its time is up. Players hear about it
// from the usecase finish notifier, whoever closes the round first.
func (c *Controller) closeAt(slug string, deadline time.Time) {
	time.AfterFunc(time.Until(deadline), func() {
		closed, err := c.usecase.FinishExpired(context.Background(), slug)
		if err != nil {
			if !errors.Is(err, usecase_game.ErrResourceNotFound) {
				c.logger.Error("failed to close round", slog.String("slug", slug), slog.String("error", err.Error()))
			}
			return
		}
		if !closed {
			c.logger.Debug("round already closed", slog.String("slug", slug))
		}
	})
}

// Free удаляет игру
// @Summary Удаление игры
// @Description Удаляет игру вместе с игроками и голосами. Только владелец
// @Tags Games
// @Param slug path string true "Код игры"
// @Success 204 "Игра удалена"
// @Failure 401 {object} http_common.ErrorResponse "Не авторизован"
// @Failure 403 {object} http_common.ErrorResponse "Не владелец игры"
// @Failure 404 {object} http_common.ErrorResponse "Игра не найдена"
// @Failure 500 {object} http_common.ErrorResponse "Внутренняя ошибка сервера"
// @Security PlayerToken
// @Router /games/{slug} [delete]
func (c *Controller) free(ctx *gin.Context) {
	if err := c.usecase.Free(ctx, ctx.Param("slug"), http_player_middleware.Token(ctx)); err != nil {
		c.fail(ctx, "failed to free game", err)
		return
	}
	ctx.Status(http.StatusNoContent)
}

// QR возвращает QR-код ссылки приглашения
// @Summary QR-код приглашения
// @Tags Games
// @Produce png
// @Param slug path string true "Код игры"
// @Success 200 {file} binary "PNG"
// @Failure 404 {object} http_common.ErrorResponse "Игра не найдена"
// @Failure 500 {object} http_common.ErrorResponse "Внутренняя ошибка сервера"
// @Router /games/{slug}/qr [get]
func (c *Controller) qr(ctx *gin.Context) {
	png, err := c.usecase.QRCode(ctx, ctx.Param("slug"))
	if err != nil {
		c.fail(ctx, "failed to render qr code", err)
		return
	}
	ctx.Data(http.StatusOK, "image/png", png)
}

func (c *Controller) fail(ctx *gin.Context, msg string, err error) {
	status, message := http.StatusInternalServerError, "internal error"
	switch {
	case errors.Is(err, usecase_game.ErrInvalidInput):
		status, message = http.StatusBadRequest, "invalid input"
	case errors.Is(err, usecase_game.ErrResourceNotFound):
		status, message = http.StatusNotFound, "not found"
	case errors.Is(err, usecase_game.ErrForbidden):
		status, message = http.StatusForbidden, "only the owner can do this"
	case errors.Is(err, usecase_game.ErrAlreadyStarted):
		status, message = http.StatusConflict, "voting already started"
	case errors.Is(err, usecase_game.ErrGameFinished):
		status, message = http.StatusConflict, "game finished"
	case errors.Is(err, usecase_game.ErrEmptyCatalog):
		status, message = http.StatusConflict, "catalog is empty"
	case errors.Is(err, usecase_game.ErrGamesUnavailable):
		status, message = http.StatusServiceUnavailable, "unavailable"
	}

	if status >= http.StatusInternalServerError {
		c.logger.Error(msg, slog.String("error", err.Error()))
	} else {
		c.logger.Warn(msg, slog.String("error", err.Error()))
	}
	ctx.JSON(status, http_common.ErrorResponse{Message: message})
}
