package http_movie

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	http_common "github.com/humanbelnik/flickswipe/internal/delivery/http/common"
	http_auth_middleware "github.com/humanbelnik/flickswipe/internal/delivery/http/middleware/auth"
	usecase_movie "github.com/humanbelnik/flickswipe/internal/usecase/movie"
)

type Controller struct {
	uc             *usecase_movie.Usecase
	authMiddleware *http_auth_middleware.Middleware

	logger *slog.Logger
}

type ControllerOption func(*Controller)

func WithLogger(logger *slog.Logger) ControllerOption {
	return func(c *Controller) {
		c.logger = logger
	}
}

func New(
	uc *usecase_movie.Usecase,
	authMiddleware *http_auth_middleware.Middleware,
	opts ...ControllerOption,
) *Controller {
	c := &Controller{
		uc:             uc,
		authMiddleware: authMiddleware,
		logger:         slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Controller) RegisterRoutes(router *gin.RouterGroup) {
	movies := router.Group("/movies")
	movies.GET("/:movie_id/poster", c.poster)

	admin := movies.Group("", c.authMiddleware.AuthRequired())
	{
		admin.GET("", c.list)
		admin.POST("", c.importOne)
		admin.POST("/popular", c.importPopular)
		admin.DELETE("/:movie_id", c.delete)
	}
}

// @Summary Каталог фильмов
// @Tags Movie operations
// @Produce json
// @Success 200 {array} http_common.MovieDTO "Фильмы каталога"
// @Failure 401 {object} http_common.ErrorResponse "Не авторизован"
// @Failure 500 {object} http_common.ErrorResponse "Внутренняя ошибка сервера"
// @Security AdminToken
// @Router /movies [get]
func (c *Controller) list(ctx *gin.Context) {
	movies, err := c.uc.List(ctx)
	if err != nil {
		c.fail(ctx, "failed to list movies", err)
		return
	}

	resp := make([]http_common.MovieDTO, 0, len(movies))
	for _, m := range movies {
		resp = append(resp, http_common.FromMovie(m, c.uc.TMDBPosterURL(m.PosterPath)))
	}
	ctx.JSON(http.StatusOK, resp)
}

// ImportRequestDTO DTO импорта фильма
type ImportRequestDTO struct {
	TMDBID int `json:"tmdb_id" binding:"required" example:"550"`
}

// @Summary Импорт фильма из TMDB
// @Description Загружает описание фильма и копирует постер в хранилище
// @Tags Movie operations
// @Accept json
// @Produce json
// @Param request body ImportRequestDTO true "Идентификатор TMDB"
// @Success 201 {object} http_common.MovieDTO "Фильм добавлен"
// @Failure 400 {object} http_common.ErrorResponse "Неверный формат запроса"
// @Failure 401 {object} http_common.ErrorResponse "Не авторизован"
// @Failure 409 {object} http_common.ErrorResponse "Фильм уже в каталоге"
// @Failure 502 {object} http_common.ErrorResponse "TMDB недоступен"
// @Failure 500 {object} http_common.ErrorResponse "Внутренняя ошибка сервера"
// @Security AdminToken
// @Router /movies [post]
func (c *Controller) importOne(ctx *gin.Context) {
	var req ImportRequestDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, http_common.ErrorResponse{
			Message: "invalid request format",
		})
		return
	}

	movie, err := c.uc.Import(ctx, req.TMDBID)
	if err != nil {
		c.fail(ctx, "failed to import movie", err)
		return
	}

	ctx.JSON(http.StatusCreated, http_common.FromMovie(movie, c.uc.TMDBPosterURL(movie.PosterPath)))
}

// ImportPopularRequestDTO DTO импорта популярных фильмов
type ImportPopularRequestDTO struct {
	Pages int `json:"pages" binding:"required" example:"2"`
}

type ImportPopularResponseDTO struct {
	Imported int `json:"imported" example:"37"`
}

// @Summary Импорт популярных фильмов
// @Description Импортирует первые страницы списка популярных фильмов TMDB, пропуская уже добавленные
// @Tags Movie operations
// @Accept json
// @Produce json
// @Param request body ImportPopularRequestDTO true "Число страниц"
// @Success 201 {object} ImportPopularResponseDTO "Число добавленных фильмов"
// @Failure 400 {object} http_common.ErrorResponse "Неверный формат запроса"
// @Failure 401 {object} http_common.ErrorResponse "Не авторизован"
// @Failure 502 {object} http_common.ErrorResponse "TMDB недоступен"
// @Failure 500 {object} http_common.ErrorResponse "Внутренняя ошибка сервера"
// @Security AdminToken
// @Router /movies/popular [post]
func (c *Controller) importPopular(ctx *gin.Context) {
	var req ImportPopularRequestDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, http_common.ErrorResponse{
			Message: "invalid request format",
		})
		return
	}

	imported, err := c.uc.ImportPopular(ctx, req.Pages)
	if err != nil {
		c.fail(ctx, "failed to import popular movies", err)
		return
	}

	ctx.JSON(http.StatusCreated, ImportPopularResponseDTO{Imported: imported})
}

// @Summary Удаление фильма
// @Tags Movie operations
// @Param movie_id path string true "Идентификатор фильма"
// @Success 204 "Фильм удален"
// @Failure 400 {object} http_common.ErrorResponse "Некорректный идентификатор"
// @Failure 401 {object} http_common.ErrorResponse "Не авторизован"
// @Failure 404 {object} http_common.ErrorResponse "Фильм не найден"
// @Failure 409 {object} http_common.ErrorResponse "Фильм используется в игре"
// @Failure 500 {object} http_common.ErrorResponse "Внутренняя ошибка сервера"
// @Security AdminToken
// @Router /movies/{movie_id} [delete]
func (c *Controller) delete(ctx *gin.Context) {
	id, err := uuid.Parse(ctx.Param("movie_id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, http_common.ErrorResponse{
			Message: "invalid movie id",
		})
		return
	}

	if err := c.uc.Delete(ctx, id); err != nil {
		c.fail(ctx, "failed to delete movie", err)
		return
	}
	ctx.Status(http.StatusNoContent)
}

// @Summary Постер фильма
// @Description Перенаправляет на копию постера в хранилище или на TMDB
// @Tags Movie operations
// @Param movie_id path string true "Идентификатор фильма"
// @Success 302 "Перенаправление на постер"
// @Failure 400 {object} http_common.ErrorResponse "Некорректный идентификатор"
// @Failure 404 {object} http_common.ErrorResponse "Постер не найден"
// @Router /movies/{movie_id}/poster [get]
func (c *Controller) poster(ctx *gin.Context) {
	id, err := uuid.Parse(ctx.Param("movie_id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, http_common.ErrorResponse{
			Message: "invalid movie id",
		})
		return
	}

	movie, err := c.uc.Get(ctx, id)
	if err != nil {
		c.fail(ctx, "failed to load movie", err)
		return
	}

	url, err := c.uc.PosterURL(ctx, movie)
	if err != nil {
		c.fail(ctx, "poster unavailable", err)
		return
	}
	ctx.Redirect(http.StatusFound, url)
}

func (c *Controller) fail(ctx *gin.Context, msg string, err error) {
	status, message := http.StatusInternalServerError, "internal error"
	switch {
	case errors.Is(err, usecase_movie.ErrInvalidInput):
		status, message = http.StatusBadRequest, "invalid input"
	case errors.Is(err, usecase_movie.ErrResourceNotFound):
		status, message = http.StatusNotFound, "not found"
	case errors.Is(err, usecase_movie.ErrAlreadyExists):
		status, message = http.StatusConflict, "movie already in catalog"
	case errors.Is(err, usecase_movie.ErrMovieInUse):
		status, message = http.StatusConflict, "movie is used by a game"
	case errors.Is(err, usecase_movie.ErrMovieDBUnavailable):
		status, message = http.StatusBadGateway, "movie database unavailable"
	}

	if status >= http.StatusInternalServerError {
		c.logger.Error(msg, slog.String("error", err.Error()))
	} else {
		c.logger.Warn(msg, slog.String("error", err.Error()))
	}
	ctx.JSON(status, http_common.ErrorResponse{Message: message})
}
