package usecase_game

import (
	"context"
	"errors"
	"log/slog"
	"math/rand"
	"net/url"
	"strings"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/humanbelnik/flickswipe/internal/model"
	"github.com/skip2/go-qrcode"
)

var (
	ErrCodeConflict     = errors.New("code conflict")
	ErrGamesUnavailable = errors.New("no available games")
	ErrInternal         = errors.New("internal error")
	ErrResourceNotFound = errors.New("no such resource")
	ErrEmptyCatalog     = errors.New("catalog is empty")
	ErrForbidden        = errors.New("forbidden")
	ErrAlreadyStarted   = errors.New("game already started")
	ErrGameFinished     = errors.New("game finished")
	ErrInvalidInput     = errors.New("invalid input")
)

const (
	maxPlaylistSize = 50
	maxNameLen      = 32
)

//go:generate mockery --name=GameRepository --output=./mocks --filename=repository.go
type GameRepository interface {
	PickMovies(ctx context.Context, n int) ([]uuid.UUID, error)
	CreateWithPlaylist(ctx context.Context, game model.Game, owner model.Player, movieIDs []uuid.UUID) error
	GameBySlug(ctx context.Context, slug string) (model.Game, error)
	AddPlayer(ctx context.Context, player model.Player) error
	IsPlayer(ctx context.Context, slug string, playerID uuid.UUID) (bool, error)
	StartVoting(ctx context.Context, gameID uuid.UUID, startedAt, deadline time.Time) error
	// Finish reports false when the game was already finished.
	Finish(ctx context.Context, gameID uuid.UUID) (bool, error)
	DeleteBySlug(ctx context.Context, slug string) error
	Progress(ctx context.Context, gameID uuid.UUID) (model.Progress, error)
	FirstMovie(ctx context.Context, gameID uuid.UUID) (uuid.UUID, error)

	CleanupStale(ctx context.Context, lobbyTTL, finishedTTL time.Duration) error
}

type Settings struct {
	RoundDuration time.Duration
	PlaylistSize  int
	CleanupPeriod int
	LobbyTTL      time.Duration
	FinishedTTL   time.Duration
	PublicURL     string
}

type Usecase struct {
	repository GameRepository
	settings   Settings
	now        func() time.Time
	onFinish   func(slug string)
	logger     *slog.Logger

	// Stale games are swept on every Nth creation
	createdCount atomic.Int64
}

type Option func(*Usecase)

func WithClock(now func() time.Time) Option {
	return func(u *Usecase) {
		u.now = now
	}
}

// WithFinishNotifier registers fn to be called once per game, by whichever
// caller moved it to finished.
func WithFinishNotifier(fn func(slug string)) Option {
	return func(u *Usecase) {
		u.onFinish = fn
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(u *Usecase) {
		u.logger = logger
	}
}

func New(repository GameRepository, settings Settings, opts ...Option) *Usecase {
	if settings.CleanupPeriod <= 0 {
		settings.CleanupPeriod = 20 /* default */
	}
	if settings.PlaylistSize <= 0 {
		settings.PlaylistSize = 10
	}
	if settings.RoundDuration <= 0 {
		settings.RoundDuration = time.Minute
	}

	u := &Usecase{
		repository: repository,
		settings:   settings,
		now:        time.Now,
		onFinish:   func(string) {},
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(u)
	}
	return u
}

// Create opens a lobby with a fresh playlist. The returned token identifies
// the owner as a regular player as well.
func (u *Usecase) Create(ctx context.Context, ownerName string, playlistSize int) (slug string, ownerToken string, err error) {
	ownerName, err = normalizeName(ownerName)
	if err != nil {
		return "", "", err
	}
	if playlistSize <= 0 {
		playlistSize = u.settings.PlaylistSize
	}
	if playlistSize > maxPlaylistSize {
		return "", "", errors.Join(ErrInvalidInput, errors.New("playlist too long"))
	}

	if u.createdCount.Add(1)%int64(u.settings.CleanupPeriod) == 0 {
		if err := u.repository.CleanupStale(ctx, u.settings.LobbyTTL, u.settings.FinishedTTL); err != nil {
			return "", "", errors.Join(ErrInternal, err)
		}
	}

	movieIDs, err := u.repository.PickMovies(ctx, playlistSize)
	if err != nil {
		return "", "", errors.Join(ErrInternal, err)
	}
	if len(movieIDs) == 0 {
		return "", "", ErrEmptyCatalog
	}

	owner := model.Player{
		ID:       uuid.New(),
		Name:     ownerName,
		JoinedAt: u.now(),
	}

	slug, err = u.createLobby(ctx, owner, movieIDs)
	if err != nil {
		return "", "", err
	}

	u.logger.Info("game created",
		slog.String("slug", slug),
		slog.Int("movies", len(movieIDs)),
	)
	return slug, owner.ID.String(), nil
}

// Assuming that slugs can conflict.
// Retrying...
func (u *Usecase) createLobby(ctx context.Context, owner model.Player, movieIDs []uuid.UUID) (string, error) {
	var retries = 3
	for retries > 0 {
		game := model.Game{
			ID:        uuid.New(),
			Slug:      u.buildSlug(),
			OwnerID:   owner.ID,
			Status:    model.StatusLobby,
			CreatedAt: u.now(),
		}
		owner.GameID = game.ID

		err := u.repository.CreateWithPlaylist(ctx, game, owner, movieIDs)
		if err == nil {
			return game.Slug, nil
		}
		if !errors.Is(err, ErrCodeConflict) {
			return "", errors.Join(ErrInternal, err)
		}
		retries--
	}
	return "", ErrGamesUnavailable
}

func (u *Usecase) buildSlug() string {
	const codeLen = 6
	var builder strings.Builder
	builder.Grow(codeLen)

	for range codeLen {
		builder.WriteByte(byte(rand.Intn(10)) + '0')
	}

	return builder.String()
}

// GameBySlug finishes a voting game whose deadline has passed before
// returning it.
func (u *Usecase) GameBySlug(ctx context.Context, slug string) (model.Game, error) {
	game, err := u.repository.GameBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, ErrResourceNotFound) {
			return model.Game{}, ErrResourceNotFound
		}
		return model.Game{}, errors.Join(ErrInternal, err)
	}

	if game.Expired(u.now()) {
		if _, err := u.finish(ctx, game); err != nil {
			return model.Game{}, err
		}
		game.Status = model.StatusFinished
	}

	return game, nil
}

func (u *Usecase) Join(ctx context.Context, slug string, name string) (string, error) {
	name, err := normalizeName(name)
	if err != nil {
		return "", err
	}

	game, err := u.GameBySlug(ctx, slug)
	if err != nil {
		return "", err
	}
	if game.Status == model.StatusFinished {
		return "", ErrGameFinished
	}

	player := model.Player{
		ID:       uuid.New(),
		GameID:   game.ID,
		Name:     name,
		JoinedAt: u.now(),
	}
	if err := u.repository.AddPlayer(ctx, player); err != nil {
		return "", errors.Join(ErrInternal, err)
	}

	return player.ID.String(), nil
}

func (u *Usecase) IsPlayer(ctx context.Context, slug string, playerID string) (bool, error) {
	playerUUID, err := uuid.Parse(playerID)
	if err != nil {
		return false, nil
	}

	ok, err := u.repository.IsPlayer(ctx, slug, playerUUID)
	if err != nil {
		return false, errors.Join(ErrInternal, err)
	}
	return ok, nil
}

func (u *Usecase) IsOwner(ctx context.Context, slug string, playerID string) (bool, error) {
	game, err := u.GameBySlug(ctx, slug)
	if err != nil {
		return false, err
	}
	return game.OwnerID.String() == playerID, nil
}

// Start moves a lobby into its timed voting round and returns the entry
// movie of the playlist.
func (u *Usecase) Start(ctx context.Context, slug string, playerID string) (uuid.UUID, time.Time, error) {
	game, err := u.GameBySlug(ctx, slug)
	if err != nil {
		return uuid.Nil, time.Time{}, err
	}
	if game.OwnerID.String() != playerID {
		return uuid.Nil, time.Time{}, ErrForbidden
	}
	if game.Status != model.StatusLobby {
		return uuid.Nil, time.Time{}, ErrAlreadyStarted
	}

	first, err := u.repository.FirstMovie(ctx, game.ID)
	if err != nil {
		if errors.Is(err, ErrResourceNotFound) {
			return uuid.Nil, time.Time{}, ErrEmptyCatalog
		}
		return uuid.Nil, time.Time{}, errors.Join(ErrInternal, err)
	}

	startedAt := u.now()
	deadline := startedAt.Add(u.settings.RoundDuration)
	if err := u.repository.StartVoting(ctx, game.ID, startedAt, deadline); err != nil {
		if errors.Is(err, ErrAlreadyStarted) {
			return uuid.Nil, time.Time{}, ErrAlreadyStarted
		}
		return uuid.Nil, time.Time{}, errors.Join(ErrInternal, err)
	}

	return first, deadline, nil
}

// FinishExpired closes the round of slug if its deadline has passed. It
// reports whether this call did the closing; a read that got there first
// already did.
func (u *Usecase) FinishExpired(ctx context.Context, slug string) (bool, error) {
	game, err := u.repository.GameBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, ErrResourceNotFound) {
			return false, ErrResourceNotFound
		}
		return false, errors.Join(ErrInternal, err)
	}
	if !game.Expired(u.now()) {
		return false, nil
	}
	return u.finish(ctx, game)
}

func (u *Usecase) Finish(ctx context.Context, game model.Game) error {
	_, err := u.finish(ctx, game)
	return err
}

func (u *Usecase) finish(ctx context.Context, game model.Game) (bool, error) {
	closed, err := u.repository.Finish(ctx, game.ID)
	if err != nil {
		return false, errors.Join(ErrInternal, err)
	}
	if !closed {
		return false, nil
	}

	u.logger.Info("game finished", slog.String("slug", game.Slug))
	u.onFinish(game.Slug)
	return true, nil
}

func (u *Usecase) Status(ctx context.Context, slug string) (model.Progress, error) {
	game, err := u.GameBySlug(ctx, slug)
	if err != nil {
		return model.Progress{}, err
	}

	progress, err := u.repository.Progress(ctx, game.ID)
	if err != nil {
		return model.Progress{}, errors.Join(ErrInternal, err)
	}
	progress.Status = game.Status
	progress.Deadline = game.Deadline

	return progress, nil
}

func (u *Usecase) PlayersCount(ctx context.Context, slug string) (int, error) {
	progress, err := u.Status(ctx, slug)
	if err != nil {
		return 0, err
	}
	return progress.Players, nil
}

func (u *Usecase) Free(ctx context.Context, slug string, playerID string) error {
	isOwner, err := u.IsOwner(ctx, slug, playerID)
	if err != nil {
		return err
	}
	if !isOwner {
		return ErrForbidden
	}

	if err := u.repository.DeleteBySlug(ctx, slug); err != nil {
		if errors.Is(err, ErrResourceNotFound) {
			return ErrResourceNotFound
		}
		return errors.Join(ErrInternal, err)
	}
	return nil
}

func (u *Usecase) JoinLink(slug string) string {
	return strings.TrimRight(u.settings.PublicURL, "/") + "/game/" + url.PathEscape(slug)
}

// QRCode renders the join link as a PNG.
func (u *Usecase) QRCode(ctx context.Context, slug string) ([]byte, error) {
	if _, err := u.GameBySlug(ctx, slug); err != nil {
		return nil, err
	}

	png, err := qrcode.Encode(u.JoinLink(slug), qrcode.Medium, 256)
	if err != nil {
		return nil, errors.Join(ErrInternal, err)
	}
	return png, nil
}

func normalizeName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" || len([]rune(name)) > maxNameLen {
		return "", errors.Join(ErrInvalidInput, errors.New("bad player name"))
	}
	return name, nil
}
