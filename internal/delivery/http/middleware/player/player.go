package http_player_middleware

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	http_common "github.com/humanbelnik/flickswipe/internal/delivery/http/common"
)

const tokenKey = "player_token"

// PlayerChecker answers false for a game that does not exist.
type PlayerChecker interface {
	IsPlayer(ctx context.Context, slug string, playerID string) (bool, error)
}

type Middleware struct {
	checker PlayerChecker
	logger  *slog.Logger
}

type Option func(*Middleware)

func WithLogger(logger *slog.Logger) Option {
	return func(m *Middleware) {
		m.logger = logger
	}
}

func New(checker PlayerChecker, opts ...Option) *Middleware {
	m := &Middleware{
		checker: checker,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// PlayerRequired admits members of the game named by the :slug parameter.
// Unknown games answer 403 like any game the token is not part of.
func (m *Middleware) PlayerRequired() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		slug := ctx.Param("slug")
		t := ctx.GetHeader(http_common.HeaderPlayerToken)
		if t == "" {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, http_common.ErrorResponse{
				Message: "no " + http_common.HeaderPlayerToken + " header",
			})
			return
		}

		ok, err := m.checker.IsPlayer(ctx, slug, t)
		if err != nil {
			m.logger.Error("player check failed",
				slog.String("slug", slug),
				slog.String("error", err.Error()),
			)
			ctx.AbortWithStatusJSON(http.StatusInternalServerError, http_common.ErrorResponse{
				Message: "internal error",
			})
			return
		}
		if !ok {
			ctx.AbortWithStatusJSON(http.StatusForbidden, http_common.ErrorResponse{
				Message: "not a player of this game",
			})
			return
		}

		ctx.Set(tokenKey, t)
		ctx.Next()
	}
}

// Token is the player token admitted by PlayerRequired.
func Token(ctx *gin.Context) string {
	return ctx.GetString(tokenKey)
}
