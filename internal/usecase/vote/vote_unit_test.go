package usecase_vote

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/humanbelnik/flickswipe/internal/model"
	usecase_game "github.com/humanbelnik/flickswipe/internal/usecase/game"
	usecase_movie "github.com/humanbelnik/flickswipe/internal/usecase/movie"
	"github.com/humanbelnik/flickswipe/internal/usecase/vote/mocks"
	"github.com/ozontech/allure-go/pkg/framework/provider"
	"github.com/ozontech/allure-go/pkg/framework/suite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type UsecaseVoteUnitSuite struct {
	suite.Suite
}

type resources struct {
	usecase *Usecase
	games   *mocks.GameProvider
	scores  *mocks.ScoreRepository
	movies  *mocks.MovieProvider
	ctx     context.Context

	game   model.Game
	player uuid.UUID
}

const slug = "123456"

func initResources(t provider.T) *resources {
	games := mocks.NewGameProvider(t)
	scores := mocks.NewScoreRepository(t)
	movies := mocks.NewMovieProvider(t)

	deadline := time.Now().Add(time.Minute)
	return &resources{
		usecase: New(games, scores, movies),
		games:   games,
		scores:  scores,
		movies:  movies,
		ctx:     context.Background(),
		game: model.Game{
			ID:       uuid.New(),
			Slug:     slug,
			OwnerID:  uuid.New(),
			Status:   model.StatusVoting,
			Deadline: &deadline,
		},
		player: uuid.New(),
	}
}

func playlist(gameID uuid.UUID, n int) []model.MovieScore {
	scores := make([]model.MovieScore, n)
	for i := range n {
		scores[i] = model.MovieScore{
			ID:       uuid.New(),
			GameID:   gameID,
			MovieID:  uuid.New(),
			Position: i,
		}
	}
	return scores
}

func (s *UsecaseVoteUnitSuite) TestParseAction(t provider.T) {
	like, err := ParseAction("yes")
	assert.NoError(t, err)
	assert.Equal(t, model.LikeReaction, like)

	dislike, err := ParseAction("no")
	assert.NoError(t, err)
	assert.Equal(t, model.DislikeReaction, dislike)

	for _, bad := range []string{"", "YES", "maybe"} {
		_, err := ParseAction(bad)
		assert.ErrorIs(t, err, ErrInvalidAction)
	}
}

func (s *UsecaseVoteUnitSuite) TestCard(t provider.T) {
	t.Run("Should report position and remaining movies", func(t provider.T) {
		r := initResources(t)
		list := playlist(r.game.ID, 5)
		current := list[2]
		movie := model.Movie{ID: current.MovieID, Title: "Heat", PosterPath: "/heat.jpg"}

		r.games.On("GameBySlug", r.ctx, slug).Return(r.game, nil).Once()
		r.movies.On("Get", r.ctx, current.MovieID).Return(movie, nil).Once()
		r.scores.On("Playlist", r.ctx, r.game.ID).Return(list, nil).Once()
		r.scores.On("ScoreByMovie", r.ctx, r.game.ID, current.MovieID).Return(current, nil).Once()
		r.movies.On("PosterURL", r.ctx, movie).Return("https://image.tmdb.org/t/p/w500/heat.jpg", nil).Once()

		card, err := r.usecase.Card(r.ctx, slug, current.MovieID)

		assert.NoError(t, err)
		assert.Equal(t, 2, card.Position)
		assert.Equal(t, 5, card.Total)
		assert.Equal(t, 3, card.Remaining)
		assert.Equal(t, "Heat", card.Movie.Title)
		assert.Equal(t, r.game.Deadline, card.Deadline)
	})

	t.Run("Should report unknown movie", func(t provider.T) {
		r := initResources(t)
		movieID := uuid.New()
		r.games.On("GameBySlug", r.ctx, slug).Return(r.game, nil).Once()
		r.movies.On("Get", r.ctx, movieID).Return(model.Movie{}, usecase_movie.ErrResourceNotFound).Once()

		_, err := r.usecase.Card(r.ctx, slug, movieID)

		assert.ErrorIs(t, err, ErrMovieNotFound)
	})

	t.Run("Should report movie outside playlist", func(t provider.T) {
		r := initResources(t)
		movie := model.Movie{ID: uuid.New()}
		r.games.On("GameBySlug", r.ctx, slug).Return(r.game, nil).Once()
		r.movies.On("Get", r.ctx, movie.ID).Return(movie, nil).Once()
		r.scores.On("Playlist", r.ctx, r.game.ID).Return(playlist(r.game.ID, 3), nil).Once()
		r.scores.On("ScoreByMovie", r.ctx, r.game.ID, movie.ID).Return(model.MovieScore{}, ErrMovieNotInGame).Once()

		_, err := r.usecase.Card(r.ctx, slug, movie.ID)

		assert.ErrorIs(t, err, ErrMovieNotInGame)
	})

	t.Run("Should report unknown game", func(t provider.T) {
		r := initResources(t)
		r.games.On("GameBySlug", r.ctx, slug).Return(model.Game{}, usecase_game.ErrResourceNotFound).Once()

		_, err := r.usecase.Card(r.ctx, slug, uuid.New())

		assert.ErrorIs(t, err, ErrResourceNotFound)
	})
}

func (s *UsecaseVoteUnitSuite) TestVote(t provider.T) {
	t.Parallel()

	testCases := []struct {
		name          string
		action        string
		setupMocks    func(r *resources, list []model.MovieScore)
		position      int
		voted         int
		expectedError error
		expectedNext  func(r *resources, list []model.MovieScore) Next
	}{
		{
			name:     "Should like and move to next position",
			action:   "yes",
			position: 1,
			voted:    1,
			setupMocks: func(r *resources, list []model.MovieScore) {
				r.scores.On("ApplyVote", r.ctx, model.Vote{
					GameID: r.game.ID, PlayerID: r.player, MovieID: list[1].MovieID, Reaction: model.LikeReaction,
				}).Return(nil).Once()
				r.scores.On("ScoreAt", r.ctx, r.game.ID, 2).Return(list[2], nil).Once()
			},
			expectedNext: func(r *resources, list []model.MovieScore) Next {
				return Next{
					Location:    "/game/123456/" + list[2].MovieID.String(),
					NextMovieID: list[2].MovieID,
				}
			},
		},
		{
			name:     "Should dislike last movie and finish player",
			action:   "no",
			position: 2,
			voted:    2,
			setupMocks: func(r *resources, list []model.MovieScore) {
				r.scores.On("ApplyVote", r.ctx, model.Vote{
					GameID: r.game.ID, PlayerID: r.player, MovieID: list[2].MovieID, Reaction: model.DislikeReaction,
				}).Return(nil).Once()
				r.scores.On("ScoreAt", r.ctx, r.game.ID, 3).Return(model.MovieScore{}, ErrMovieNotInGame).Once()
				r.scores.On("MarkDone", r.ctx, r.game.ID, r.player).Return(false, nil).Once()
			},
			expectedNext: func(r *resources, list []model.MovieScore) Next {
				return Next{Location: "/game/123456/spinner", PlayerFinished: true}
			},
		},
		{
			name:     "Should finish game when last player is done",
			action:   "yes",
			position: 2,
			voted:    2,
			setupMocks: func(r *resources, list []model.MovieScore) {
				r.scores.On("ApplyVote", r.ctx, mock.AnythingOfType("model.Vote")).Return(nil).Once()
				r.scores.On("ScoreAt", r.ctx, r.game.ID, 3).Return(model.MovieScore{}, ErrMovieNotInGame).Once()
				r.scores.On("MarkDone", r.ctx, r.game.ID, r.player).Return(true, nil).Once()
				r.games.On("Finish", r.ctx, r.game).Return(nil).Once()
			},
			expectedNext: func(r *resources, list []model.MovieScore) Next {
				return Next{Location: "/game/123456/spinner", PlayerFinished: true, GameFinished: true}
			},
		},
		{
			name:     "Should refuse repeated vote",
			action:   "yes",
			position: 0,
			setupMocks: func(r *resources, list []model.MovieScore) {
				r.scores.On("ApplyVote", r.ctx, mock.AnythingOfType("model.Vote")).Return(ErrAlreadyVoted).Once()
			},
			expectedError: ErrAlreadyVoted,
		},
		{
			name:          "Should refuse vote on earlier movie",
			action:        "no",
			position:      0,
			voted:         2,
			setupMocks:    func(r *resources, list []model.MovieScore) {},
			expectedError: ErrAlreadyVoted,
		},
		{
			name:          "Should refuse skipping ahead",
			action:        "yes",
			position:      2,
			voted:         1,
			setupMocks:    func(r *resources, list []model.MovieScore) {},
			expectedError: ErrOutOfOrder,
		},
		{
			name:     "Should wrap storage failure",
			action:   "no",
			position: 0,
			setupMocks: func(r *resources, list []model.MovieScore) {
				r.scores.On("ApplyVote", r.ctx, mock.AnythingOfType("model.Vote")).Return(errors.New("tx aborted")).Once()
			},
			expectedError: ErrInternal,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t provider.T) {
			t.Parallel()
			r := initResources(t)
			list := playlist(r.game.ID, 3)
			current := list[tc.position]

			r.games.On("GameBySlug", r.ctx, slug).Return(r.game, nil).Once()
			r.games.On("IsPlayer", r.ctx, slug, r.player.String()).Return(true, nil).Once()
			r.scores.On("ScoreByMovie", r.ctx, r.game.ID, current.MovieID).Return(current, nil).Once()
			r.scores.On("VotesCount", r.ctx, r.game.ID, r.player).Return(tc.voted, nil).Once()
			tc.setupMocks(r, list)

			next, err := r.usecase.Vote(r.ctx, slug, current.MovieID, r.player.String(), tc.action)

			if tc.expectedError != nil {
				assert.ErrorIs(t, err, tc.expectedError)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tc.expectedNext(r, list), next)
		})
	}
}

func (s *UsecaseVoteUnitSuite) TestVoteOnLastMovieFirst(t provider.T) {
	r := initResources(t)
	list := playlist(r.game.ID, 10)
	last := list[9]

	r.games.On("GameBySlug", r.ctx, slug).Return(r.game, nil).Once()
	r.games.On("IsPlayer", r.ctx, slug, r.player.String()).Return(true, nil).Once()
	r.scores.On("ScoreByMovie", r.ctx, r.game.ID, last.MovieID).Return(last, nil).Once()
	r.scores.On("VotesCount", r.ctx, r.game.ID, r.player).Return(0, nil).Once()

	next, err := r.usecase.Vote(r.ctx, slug, last.MovieID, r.player.String(), "yes")

	assert.ErrorIs(t, err, ErrOutOfOrder)
	assert.False(t, next.PlayerFinished)
	assert.False(t, next.GameFinished)
	r.scores.AssertNotCalled(t, "ApplyVote", mock.Anything, mock.Anything)
	r.scores.AssertNotCalled(t, "MarkDone", mock.Anything, mock.Anything, mock.Anything)
	r.games.AssertNotCalled(t, "Finish", mock.Anything, mock.Anything)
}

func (s *UsecaseVoteUnitSuite) TestVoteRefusals(t provider.T) {
	t.Run("Should reject unknown action before touching storage", func(t provider.T) {
		r := initResources(t)

		_, err := r.usecase.Vote(r.ctx, slug, uuid.New(), r.player.String(), "maybe")

		assert.ErrorIs(t, err, ErrInvalidAction)
	})

	t.Run("Should reject stranger", func(t provider.T) {
		r := initResources(t)
		r.games.On("GameBySlug", r.ctx, slug).Return(r.game, nil).Once()
		r.games.On("IsPlayer", r.ctx, slug, r.player.String()).Return(false, nil).Once()

		_, err := r.usecase.Vote(r.ctx, slug, uuid.New(), r.player.String(), "yes")

		assert.ErrorIs(t, err, ErrForbidden)
	})

	t.Run("Should reject vote in lobby", func(t provider.T) {
		r := initResources(t)
		r.game.Status = model.StatusLobby
		r.games.On("GameBySlug", r.ctx, slug).Return(r.game, nil).Once()
		r.games.On("IsPlayer", r.ctx, slug, r.player.String()).Return(true, nil).Once()

		_, err := r.usecase.Vote(r.ctx, slug, uuid.New(), r.player.String(), "yes")

		assert.ErrorIs(t, err, ErrVotingNotStarted)
	})

	t.Run("Should send late voter to spinner", func(t provider.T) {
		r := initResources(t)
		r.game.Status = model.StatusFinished
		r.games.On("GameBySlug", r.ctx, slug).Return(r.game, nil).Once()
		r.games.On("IsPlayer", r.ctx, slug, r.player.String()).Return(true, nil).Once()

		next, err := r.usecase.Vote(r.ctx, slug, uuid.New(), r.player.String(), "no")

		assert.ErrorIs(t, err, ErrVotingClosed)
		assert.Equal(t, "/game/123456/spinner", next.Location)
	})
}

func (s *UsecaseVoteUnitSuite) TestFirst(t provider.T) {
	r := initResources(t)
	list := playlist(r.game.ID, 2)
	r.games.On("GameBySlug", r.ctx, slug).Return(r.game, nil).Once()
	r.scores.On("ScoreAt", r.ctx, r.game.ID, 0).Return(list[0], nil).Once()

	first, err := r.usecase.First(r.ctx, slug)

	assert.NoError(t, err)
	assert.Equal(t, list[0].MovieID, first)
}

func TestUsecaseVoteUnitSuite(t *testing.T) {
	suite.RunSuite(t, new(UsecaseVoteUnitSuite))
}
