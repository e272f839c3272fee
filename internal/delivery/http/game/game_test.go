package http_game

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	http_common "github.com/humanbelnik/flickswipe/internal/delivery/http/common"
	http_player_middleware "github.com/humanbelnik/flickswipe/internal/delivery/http/middleware/player"
	ws_game "github.com/humanbelnik/flickswipe/internal/delivery/ws/game"
	"github.com/humanbelnik/flickswipe/internal/model"
	usecase_game "github.com/humanbelnik/flickswipe/internal/usecase/game"
	"github.com/humanbelnik/flickswipe/internal/usecase/game/mocks"
	"github.com/ozontech/allure-go/pkg/framework/provider"
	"github.com/ozontech/allure-go/pkg/framework/suite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type GameControllerSuite struct {
	suite.Suite
}

type recorder struct {
	mu     sync.Mutex
	events []ws_game.Event
}

func (r *recorder) Broadcast(slug string, event ws_game.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
}

func (r *recorder) types() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, 0, len(r.events))
	for _, e := range r.events {
		out = append(out, e.Type)
	}
	return out
}

type resources struct {
	engine *gin.Engine
	repo   *mocks.GameRepository
	hub    *recorder
}

const slug = "123456"

func initResources(t provider.T) *resources {
	gin.SetMode(gin.TestMode)
	repo := mocks.NewGameRepository(t)
	uc := usecase_game.New(repo, usecase_game.Settings{
		RoundDuration: time.Hour,
		PlaylistSize:  3,
		PublicURL:     "http://play.test",
	})
	hub := &recorder{}

	engine := gin.New()
	New(uc, http_player_middleware.New(uc), hub).RegisterRoutes(engine.Group("/api/v1"))

	return &resources{engine: engine, repo: repo, hub: hub}
}

func (r *resources) do(method, path string, body any, token string) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set(http_common.HeaderPlayerToken, token)
	}
	w := httptest.NewRecorder()
	r.engine.ServeHTTP(w, req)
	return w
}

func lobby(owner uuid.UUID) model.Game {
	return model.Game{ID: uuid.New(), Slug: slug, OwnerID: owner, Status: model.StatusLobby}
}

func (s *GameControllerSuite) TestCreate(t provider.T) {
	t.Run("Should create game and hand out owner token", func(t provider.T) {
		r := initResources(t)
		ids := []uuid.UUID{uuid.New(), uuid.New(), uuid.New()}
		r.repo.On("PickMovies", mock.Anything, 3).Return(ids, nil).Once()
		r.repo.On("CreateWithPlaylist", mock.Anything, mock.Anything, mock.Anything, ids).Return(nil).Once()

		w := r.do(http.MethodPost, "/api/v1/games", CreateRequestDTO{Name: "alice"}, "")

		require.Equal(t, http.StatusCreated, w.Code)
		assert.NotEmpty(t, w.Header().Get(http_common.HeaderPlayerToken))
		var resp CreateResponseDTO
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Len(t, resp.Slug, 6)
		assert.Equal(t, "http://play.test/game/"+resp.Slug, resp.JoinLink)
	})

	t.Run("Should reject missing name", func(t provider.T) {
		r := initResources(t)

		w := r.do(http.MethodPost, "/api/v1/games", map[string]any{}, "")

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Should report empty catalog", func(t provider.T) {
		r := initResources(t)
		r.repo.On("PickMovies", mock.Anything, 3).Return([]uuid.UUID{}, nil).Once()

		w := r.do(http.MethodPost, "/api/v1/games", CreateRequestDTO{Name: "alice"}, "")

		assert.Equal(t, http.StatusConflict, w.Code)
	})
}

func (s *GameControllerSuite) TestJoin(t provider.T) {
	t.Run("Should add player and announce it", func(t provider.T) {
		r := initResources(t)
		game := lobby(uuid.New())
		r.repo.On("GameBySlug", mock.Anything, slug).Return(game, nil)
		r.repo.On("AddPlayer", mock.Anything, mock.Anything).Return(nil).Once()
		r.repo.On("Progress", mock.Anything, game.ID).Return(model.Progress{Players: 2, Movies: 3}, nil).Once()

		w := r.do(http.MethodPost, "/api/v1/games/"+slug+"/players", JoinRequestDTO{Name: "bob"}, "")

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.NotEmpty(t, w.Header().Get(http_common.HeaderPlayerToken))
		assert.Equal(t, []string{ws_game.EventPlayerJoined}, r.hub.types())
	})

	t.Run("Should answer 404 for unknown game", func(t provider.T) {
		r := initResources(t)
		r.repo.On("GameBySlug", mock.Anything, slug).Return(model.Game{}, usecase_game.ErrResourceNotFound).Once()

		w := r.do(http.MethodPost, "/api/v1/games/"+slug+"/players", JoinRequestDTO{Name: "bob"}, "")

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Empty(t, r.hub.types())
	})
}

func (s *GameControllerSuite) TestStart(t provider.T) {
	t.Run("Should start voting for owner", func(t provider.T) {
		r := initResources(t)
		owner := uuid.New()
		game := lobby(owner)
		first := uuid.New()
		r.repo.On("IsPlayer", mock.Anything, slug, owner).Return(true, nil).Once()
		r.repo.On("GameBySlug", mock.Anything, slug).Return(game, nil).Once()
		r.repo.On("FirstMovie", mock.Anything, game.ID).Return(first, nil).Once()
		r.repo.On("StartVoting", mock.Anything, game.ID, mock.Anything, mock.Anything).Return(nil).Once()

		w := r.do(http.MethodPost, "/api/v1/games/"+slug+"/start", nil, owner.String())

		require.Equal(t, http.StatusOK, w.Code)
		var resp StartResponseDTO
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "/game/"+slug+"/"+first.String(), resp.Location)
		assert.Equal(t, []string{ws_game.EventVotingStarted}, r.hub.types())
	})

	t.Run("Should refuse other players", func(t provider.T) {
		r := initResources(t)
		player := uuid.New()
		r.repo.On("IsPlayer", mock.Anything, slug, player).Return(true, nil).Once()
		r.repo.On("GameBySlug", mock.Anything, slug).Return(lobby(uuid.New()), nil).Once()

		w := r.do(http.MethodPost, "/api/v1/games/"+slug+"/start", nil, player.String())

		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("Should require player token", func(t provider.T) {
		r := initResources(t)

		w := r.do(http.MethodPost, "/api/v1/games/"+slug+"/start", nil, "")

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func (s *GameControllerSuite) TestStatusAndQR(t provider.T) {
	r := initResources(t)
	game := lobby(uuid.New())
	r.repo.On("GameBySlug", mock.Anything, slug).Return(game, nil)
	r.repo.On("Progress", mock.Anything, game.ID).Return(model.Progress{Players: 4, PlayersDone: 1, Movies: 3}, nil).Once()

	w := r.do(http.MethodGet, "/api/v1/games/"+slug, nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	var status StatusResponseDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &status))
	assert.Equal(t, model.StatusLobby, status.Status)
	assert.Equal(t, 4, status.Players)

	w = r.do(http.MethodGet, "/api/v1/games/"+slug+"/qr", nil, "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "image/png", w.Header().Get("Content-Type"))
}

func (s *GameControllerSuite) TestFree(t provider.T) {
	r := initResources(t)
	owner := uuid.New()
	r.repo.On("IsPlayer", mock.Anything, slug, owner).Return(true, nil).Once()
	r.repo.On("GameBySlug", mock.Anything, slug).Return(lobby(owner), nil).Once()
	r.repo.On("DeleteBySlug", mock.Anything, slug).Return(nil).Once()

	w := r.do(http.MethodDelete, "/api/v1/games/"+slug, nil, owner.String())

	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestGameControllerSuite(t *testing.T) {
	suite.RunSuite(t, new(GameControllerSuite))
}
