package ws_game

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	http_common "github.com/humanbelnik/flickswipe/internal/delivery/http/common"
	"github.com/humanbelnik/flickswipe/internal/model"
	usecase_game "github.com/humanbelnik/flickswipe/internal/usecase/game"
)

type GameProvider interface {
	GameBySlug(ctx context.Context, slug string) (model.Game, error)
}

type Controller struct {
	hub      *Hub
	games    GameProvider
	upgrader websocket.Upgrader
	logger   *slog.Logger
}

func NewController(hub *Hub, games GameProvider) *Controller {
	return &Controller{
		hub:   hub,
		games: games,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
		logger: slog.Default(),
	}
}

func (c *Controller) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/games/:slug/ws", c.connect)
}

// Connect подключает клиента к ленте событий игры
// @Summary Лента событий игры
// @Description WebSocket: PLAYER_JOINED, VOTING_STARTED, PLAYER_FINISHED, GAME_FINISHED
// @Tags Games
// @Param slug path string true "Код игры"
// @Success 101 "Соединение установлено"
// @Failure 404 {object} http_common.ErrorResponse "Игра не найдена"
// @Failure 500 {object} http_common.ErrorResponse "Внутренняя ошибка сервера"
// @Router /games/{slug}/ws [get]
func (c *Controller) connect(ctx *gin.Context) {
	slug := ctx.Param("slug")

	if _, err := c.games.GameBySlug(ctx, slug); err != nil {
		if errors.Is(err, usecase_game.ErrResourceNotFound) {
			ctx.JSON(http.StatusNotFound, http_common.ErrorResponse{Message: "not found"})
			return
		}
		c.logger.Error("failed to load game", slog.String("error", err.Error()))
		ctx.JSON(http.StatusInternalServerError, http_common.ErrorResponse{Message: "internal error"})
		return
	}

	conn, err := c.upgrader.Upgrade(ctx.Writer, ctx.Request, nil)
	if err != nil {
		c.logger.Warn("websocket upgrade failed", slog.String("error", err.Error()))
		return
	}

	client := NewClient(c.hub, conn, slug)
	c.hub.RegisterClient(client)

	go c.hub.StartClientWriting(client)
	go c.hub.StartClientReading(client)
}
