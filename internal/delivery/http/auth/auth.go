package http_auth

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	http_common "github.com/humanbelnik/flickswipe/internal/delivery/http/common"
	service_simple_auth "github.com/humanbelnik/flickswipe/internal/service/auth/simple"
)

type Controller struct {
	service *service_simple_auth.Service
	logger  *slog.Logger
}

func New(
	service *service_simple_auth.Service,
) *Controller {
	return &Controller{
		service: service,
		logger:  slog.Default(),
	}
}

func (c *Controller) RegisterRoutes(router *gin.RouterGroup) {
	auth := router.Group("/auth")
	auth.POST("", c.auth)
	auth.DELETE("", c.logout)
}

// AuthRequestDTO DTO для запроса аутентификации
type AuthRequestDTO struct {
	Code string `json:"code" binding:"required" example:"secret123"`
}

// Auth выполняет аутентификацию администратора
// @Summary Аутентификация администратора
// @Description Проверяет код и возвращает токен в заголовке X-admin-token для доступа к каталогу
// @Tags Auth operations
// @Accept json
// @Produce json
// @Param request body AuthRequestDTO true "Данные для аутентификации"
// @Success 202
// @Header 202 {string} X-admin-token "Токен для доступа к операциям с фильмами"
// @Failure 400 {object} http_common.ErrorResponse "Неверный формат запроса"
// @Failure 403 {object} http_common.ErrorResponse "Неверный код аутентификации"
// @Failure 500 {object} http_common.ErrorResponse "Внутренняя ошибка сервера"
// @Router /auth [post]
func (c *Controller) auth(ctx *gin.Context) {
	var req AuthRequestDTO

	if err := ctx.ShouldBindJSON(&req); err != nil {
		c.logger.Warn("invalid request format", slog.String("error", err.Error()))
		ctx.JSON(http.StatusBadRequest, http_common.ErrorResponse{
			Message: "Invalid request format",
		})
		return
	}

	token, err := c.service.Auth(req.Code)
	if err != nil {
		switch {
		case errors.Is(err, service_simple_auth.ErrWrongCode):
			c.logger.Warn("wrong admin code")
			ctx.JSON(http.StatusForbidden, http_common.ErrorResponse{
				Message: "forbidden",
			})
		default:
			c.logger.Error("internal auth error", slog.String("error", err.Error()))
			ctx.JSON(http.StatusInternalServerError, http_common.ErrorResponse{
				Message: "internal error",
			})
		}
		return
	}

	ctx.Header(http_common.HeaderAdminToken, token)
	ctx.Status(http.StatusAccepted)
}

// Logout отзывает токен администратора
// @Summary Выход администратора
// @Tags Auth operations
// @Success 204
// @Failure 500 {object} http_common.ErrorResponse "Внутренняя ошибка сервера"
// @Security AdminToken
// @Router /auth [delete]
func (c *Controller) logout(ctx *gin.Context) {
	t := ctx.GetHeader(http_common.HeaderAdminToken)
	if t != "" {
		if err := c.service.Revoke(t); err != nil {
			c.logger.Error("failed to revoke token", slog.String("error", err.Error()))
			ctx.JSON(http.StatusInternalServerError, http_common.ErrorResponse{
				Message: "internal error",
			})
			return
		}
	}
	ctx.Status(http.StatusNoContent)
}
