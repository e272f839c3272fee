package usecase_vote

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/humanbelnik/flickswipe/internal/model"
	usecase_game "github.com/humanbelnik/flickswipe/internal/usecase/game"
	usecase_movie "github.com/humanbelnik/flickswipe/internal/usecase/movie"
)

var (
	ErrInternal         = errors.New("internal error")
	ErrResourceNotFound = errors.New("no such resource")
	ErrMovieNotFound    = errors.New("movie not found")
	ErrMovieNotInGame   = errors.New("movie is not in game playlist")
	ErrInvalidAction    = errors.New("invalid action type")
	ErrForbidden        = errors.New("not a player of this game")
	ErrVotingNotStarted = errors.New("voting not started")
	ErrVotingClosed     = errors.New("voting closed")
	ErrAlreadyVoted     = errors.New("already voted")
	ErrOutOfOrder       = errors.New("earlier movies are not voted yet")
)

const (
	ActionYes = "yes"
	ActionNo  = "no"
)

//go:generate mockery --name=GameProvider --output=./mocks --filename=game_provider.go
type GameProvider interface {
	GameBySlug(ctx context.Context, slug string) (model.Game, error)
	IsPlayer(ctx context.Context, slug string, playerID string) (bool, error)
	Finish(ctx context.Context, game model.Game) error
}

//go:generate mockery --name=ScoreRepository --output=./mocks --filename=repository.go
type ScoreRepository interface {
	// Playlist is ordered by position.
	Playlist(ctx context.Context, gameID uuid.UUID) ([]model.MovieScore, error)
	ScoreByMovie(ctx context.Context, gameID uuid.UUID, movieID uuid.UUID) (model.MovieScore, error)
	ScoreAt(ctx context.Context, gameID uuid.UUID, position int) (model.MovieScore, error)

	// ApplyVote records the vote and moves the likes counter of the
	// (game, movie) row atomically.
	ApplyVote(ctx context.Context, vote model.Vote) error
	VotesCount(ctx context.Context, gameID uuid.UUID, playerID uuid.UUID) (int, error)
	MarkDone(ctx context.Context, gameID uuid.UUID, playerID uuid.UUID) (allDone bool, err error)
}

//go:generate mockery --name=MovieProvider --output=./mocks --filename=movie_provider.go
type MovieProvider interface {
	Get(ctx context.Context, id uuid.UUID) (model.Movie, error)
	PosterURL(ctx context.Context, movie model.Movie) (string, error)
}

type Card struct {
	Movie     model.Movie
	PosterURL string
	Position  int
	Total     int
	Remaining int
	Deadline  *time.Time
}

type Next struct {
	Location       string
	NextMovieID    uuid.UUID
	PlayerFinished bool
	GameFinished   bool
}

type Usecase struct {
	games  GameProvider
	scores ScoreRepository
	movies MovieProvider

	logger *slog.Logger
}

type Option func(*Usecase)

func WithLogger(logger *slog.Logger) Option {
	return func(u *Usecase) {
		u.logger = logger
	}
}

func New(
	games GameProvider,
	scores ScoreRepository,
	movies MovieProvider,
	opts ...Option,
) *Usecase {
	u := &Usecase{
		games:  games,
		scores: scores,
		movies: movies,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(u)
	}
	return u
}

func MovieLocation(slug string, movieID uuid.UUID) string {
	return fmt.Sprintf("/game/%s/%s", slug, movieID)
}

func SpinnerLocation(slug string) string {
	return fmt.Sprintf("/game/%s/spinner", slug)
}

func ResultsLocation(slug string) string {
	return fmt.Sprintf("/game/%s/results", slug)
}

// ParseAction maps the form value to a likes delta.
func ParseAction(action string) (model.Reaction, error) {
	switch action {
	case ActionYes:
		return model.LikeReaction, nil
	case ActionNo:
		return model.DislikeReaction, nil
	default:
		return 0, ErrInvalidAction
	}
}

// Card describes the movie a player is looking at together with its place
// in the playlist.
func (u *Usecase) Card(ctx context.Context, slug string, movieID uuid.UUID) (Card, error) {
	game, err := u.game(ctx, slug)
	if err != nil {
		return Card{}, err
	}

	movie, err := u.movies.Get(ctx, movieID)
	if err != nil {
		if errors.Is(err, usecase_movie.ErrResourceNotFound) {
			return Card{}, ErrMovieNotFound
		}
		return Card{}, errors.Join(ErrInternal, err)
	}

	playlist, err := u.scores.Playlist(ctx, game.ID)
	if err != nil {
		return Card{}, errors.Join(ErrInternal, err)
	}

	score, err := u.scores.ScoreByMovie(ctx, game.ID, movieID)
	if err != nil {
		if errors.Is(err, ErrMovieNotInGame) {
			return Card{}, ErrMovieNotInGame
		}
		return Card{}, errors.Join(ErrInternal, err)
	}

	poster, err := u.movies.PosterURL(ctx, movie)
	if err != nil {
		u.logger.Warn("poster url unavailable",
			slog.String("movie_id", movie.ID.String()),
			slog.String("error", err.Error()),
		)
	}

	total := len(playlist)
	return Card{
		Movie:     movie,
		PosterURL: poster,
		Position:  score.Position,
		Total:     total,
		Remaining: total - score.Position,
		Deadline:  game.Deadline,
	}, nil
}

// First is the entry movie of a game's playlist.
func (u *Usecase) First(ctx context.Context, slug string) (uuid.UUID, error) {
	game, err := u.game(ctx, slug)
	if err != nil {
		return uuid.Nil, err
	}

	score, err := u.scores.ScoreAt(ctx, game.ID, 0)
	if err != nil {
		if errors.Is(err, ErrMovieNotInGame) {
			return uuid.Nil, ErrResourceNotFound
		}
		return uuid.Nil, errors.Join(ErrInternal, err)
	}
	return score.MovieID, nil
}

// Vote applies one player's reaction to a movie and tells where the player
// goes next. Movies are voted strictly in playlist order. A refused vote
// after the deadline still carries the spinner location.
func (u *Usecase) Vote(ctx context.Context, slug string, movieID uuid.UUID, playerToken string, action string) (Next, error) {
	reaction, err := ParseAction(action)
	if err != nil {
		return Next{}, err
	}

	game, err := u.game(ctx, slug)
	if err != nil {
		return Next{}, err
	}

	isPlayer, err := u.games.IsPlayer(ctx, slug, playerToken)
	if err != nil {
		return Next{}, errors.Join(ErrInternal, err)
	}
	if !isPlayer {
		return Next{}, ErrForbidden
	}
	playerID, err := uuid.Parse(playerToken)
	if err != nil {
		return Next{}, ErrForbidden
	}

	switch game.Status {
	case model.StatusLobby:
		return Next{}, ErrVotingNotStarted
	case model.StatusFinished:
		return Next{
			Location:     SpinnerLocation(slug),
			GameFinished: true,
		}, ErrVotingClosed
	}

	score, err := u.scores.ScoreByMovie(ctx, game.ID, movieID)
	if err != nil {
		if errors.Is(err, ErrMovieNotInGame) {
			return Next{}, ErrMovieNotInGame
		}
		return Next{}, errors.Join(ErrInternal, err)
	}

	// Votes are positional, so the count is the next position to vote.
	voted, err := u.scores.VotesCount(ctx, game.ID, playerID)
	if err != nil {
		return Next{}, errors.Join(ErrInternal, err)
	}
	switch {
	case score.Position < voted:
		return Next{}, ErrAlreadyVoted
	case score.Position > voted:
		return Next{}, ErrOutOfOrder
	}

	err = u.scores.ApplyVote(ctx, model.Vote{
		GameID:   game.ID,
		PlayerID: playerID,
		MovieID:  movieID,
		Reaction: reaction,
	})
	if err != nil {
		if errors.Is(err, ErrAlreadyVoted) {
			return Next{}, ErrAlreadyVoted
		}
		return Next{}, errors.Join(ErrInternal, err)
	}

	u.logger.Info("vote applied",
		slog.String("slug", slug),
		slog.String("movie_id", movieID.String()),
		slog.Int("position", score.Position),
		slog.Int("reaction", reaction),
	)

	next, err := u.scores.ScoreAt(ctx, game.ID, score.Position+1)
	if err == nil {
		return Next{
			Location:    MovieLocation(slug, next.MovieID),
			NextMovieID: next.MovieID,
		}, nil
	}
	if !errors.Is(err, ErrMovieNotInGame) {
		return Next{}, errors.Join(ErrInternal, err)
	}

	return u.finishPlayer(ctx, slug, game, playerID)
}

func (u *Usecase) finishPlayer(ctx context.Context, slug string, game model.Game, playerID uuid.UUID) (Next, error) {
	allDone, err := u.scores.MarkDone(ctx, game.ID, playerID)
	if err != nil {
		return Next{}, errors.Join(ErrInternal, err)
	}

	next := Next{
		Location:       SpinnerLocation(slug),
		PlayerFinished: true,
	}
	if !allDone {
		return next, nil
	}

	if err := u.games.Finish(ctx, game); err != nil {
		return Next{}, errors.Join(ErrInternal, err)
	}
	next.GameFinished = true

	u.logger.Info("every player is done", slog.String("slug", slug))
	return next, nil
}

func (u *Usecase) game(ctx context.Context, slug string) (model.Game, error) {
	game, err := u.games.GameBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, usecase_game.ErrResourceNotFound) {
			return model.Game{}, ErrResourceNotFound
		}
		return model.Game{}, errors.Join(ErrInternal, err)
	}
	return game, nil
}
