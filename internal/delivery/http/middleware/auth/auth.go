package http_auth_middleware

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	http_common "github.com/humanbelnik/flickswipe/internal/delivery/http/common"
)

type TokenValidator interface {
	IsValid(token string) (bool, error)
}

type Middleware struct {
	validator TokenValidator
	logger    *slog.Logger
}

func New(
	validator TokenValidator,
) *Middleware {
	return &Middleware{
		validator: validator,
		logger:    slog.Default(),
	}
}

// AuthRequired admits requests carrying a live admin token.
func (m *Middleware) AuthRequired() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		t := ctx.GetHeader(http_common.HeaderAdminToken)
		if t == "" {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, http_common.ErrorResponse{
				Message: "no " + http_common.HeaderAdminToken + " header",
			})
			return
		}

		valid, err := m.validator.IsValid(t)
		if err != nil {
			m.logger.Error("internal error", slog.String("error", err.Error()))
			ctx.AbortWithStatusJSON(http.StatusInternalServerError, http_common.ErrorResponse{
				Message: "internal error",
			})
			return
		}
		if !valid {
			m.logger.Warn("invalid admin token")
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, http_common.ErrorResponse{
				Message: "invalid token",
			})
			return
		}
		ctx.Next()
	}
}
