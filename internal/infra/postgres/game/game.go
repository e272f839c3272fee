package infra_postgres_game

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	infra_pgerr "github.com/humanbelnik/flickswipe/internal/infra/postgres/pgerr"
	"github.com/humanbelnik/flickswipe/internal/model"
	usecase_game "github.com/humanbelnik/flickswipe/internal/usecase/game"
	"github.com/jmoiron/sqlx"
)

type Driver struct {
	db *sqlx.DB
}

func New(
	db *sqlx.DB,
) *Driver {
	return &Driver{db: db}
}

type gameDTO struct {
	ID        uuid.UUID  `db:"id"`
	Slug      string     `db:"slug"`
	OwnerID   uuid.UUID  `db:"owner_id"`
	Status    string     `db:"status"`
	CreatedAt time.Time  `db:"created_at"`
	StartedAt *time.Time `db:"started_at"`
	Deadline  *time.Time `db:"deadline"`
}

func (g gameDTO) toDomain() model.Game {
	return model.Game{
		ID:        g.ID,
		Slug:      g.Slug,
		OwnerID:   g.OwnerID,
		Status:    g.Status,
		CreatedAt: g.CreatedAt,
		StartedAt: g.StartedAt,
		Deadline:  g.Deadline,
	}
}

type playerDTO struct {
	ID       uuid.UUID `db:"id"`
	GameID   uuid.UUID `db:"game_id"`
	Name     string    `db:"name"`
	JoinedAt time.Time `db:"joined_at"`
}

func (d *Driver) PickMovies(ctx context.Context, n int) ([]uuid.UUID, error) {
	query := `
		SELECT id
		FROM movies
		ORDER BY random()
		LIMIT $1
	`

	var ids []uuid.UUID
	if err := d.db.SelectContext(ctx, &ids, query, n); err != nil {
		return nil, err
	}
	return ids, nil
}

// CreateWithPlaylist writes the game, its owner and the playlist in one
// transaction. Positions follow the order of movieIDs starting from 0.
func (d *Driver) CreateWithPlaylist(ctx context.Context, game model.Game, owner model.Player, movieIDs []uuid.UUID) error {
	tx, err := d.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	insertGameQuery := `
		INSERT INTO games (id, slug, owner_id, status, created_at)
		VALUES (:id, :slug, :owner_id, :status, :created_at)
	`
	_, err = tx.NamedExecContext(ctx, insertGameQuery, gameDTO{
		ID:        game.ID,
		Slug:      game.Slug,
		OwnerID:   game.OwnerID,
		Status:    game.Status,
		CreatedAt: game.CreatedAt,
	})
	if err != nil {
		if infra_pgerr.IsUniqueViolation(err) {
			return usecase_game.ErrCodeConflict
		}
		return err
	}

	insertPlayerQuery := `
		INSERT INTO players (id, game_id, name, joined_at)
		VALUES (:id, :game_id, :name, :joined_at)
	`
	_, err = tx.NamedExecContext(ctx, insertPlayerQuery, playerDTO{
		ID:       owner.ID,
		GameID:   game.ID,
		Name:     owner.Name,
		JoinedAt: owner.JoinedAt,
	})
	if err != nil {
		return err
	}

	insertScoreQuery := `
		INSERT INTO movie_scores (id, game_id, movie_id, position, likes)
		VALUES ($1, $2, $3, $4, 0)
	`
	for position, movieID := range movieIDs {
		if _, err := tx.ExecContext(ctx, insertScoreQuery, uuid.New(), game.ID, movieID, position); err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (d *Driver) GameBySlug(ctx context.Context, slug string) (model.Game, error) {
	query := `
		SELECT id, slug, owner_id, status, created_at, started_at, deadline
		FROM games
		WHERE slug = $1
	`

	var game gameDTO
	if err := d.db.GetContext(ctx, &game, query, slug); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Game{}, usecase_game.ErrResourceNotFound
		}
		return model.Game{}, err
	}
	return game.toDomain(), nil
}

func (d *Driver) AddPlayer(ctx context.Context, player model.Player) error {
	query := `
		INSERT INTO players (id, game_id, name, joined_at)
		VALUES (:id, :game_id, :name, :joined_at)
	`

	_, err := d.db.NamedExecContext(ctx, query, playerDTO{
		ID:       player.ID,
		GameID:   player.GameID,
		Name:     player.Name,
		JoinedAt: player.JoinedAt,
	})
	if err != nil {
		if infra_pgerr.IsForeignKeyViolation(err) {
			return usecase_game.ErrResourceNotFound
		}
		return err
	}
	return nil
}

func (d *Driver) IsPlayer(ctx context.Context, slug string, playerID uuid.UUID) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1
			FROM players p
			JOIN games g ON g.id = p.game_id
			WHERE g.slug = $1 AND p.id = $2
		)
	`

	var exists bool
	if err := d.db.GetContext(ctx, &exists, query, slug, playerID); err != nil {
		return false, err
	}
	return exists, nil
}

func (d *Driver) StartVoting(ctx context.Context, gameID uuid.UUID, startedAt, deadline time.Time) error {
	query := `
		UPDATE games
		SET status = $2, started_at = $3, deadline = $4
		WHERE id = $1 AND status = $5
	`

	result, err := d.db.ExecContext(ctx, query, gameID, model.StatusVoting, startedAt, deadline, model.StatusLobby)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return usecase_game.ErrAlreadyStarted
	}
	return nil
}

// Finish is idempotent; only the call that changed the row reports true.
func (d *Driver) Finish(ctx context.Context, gameID uuid.UUID) (bool, error) {
	query := `
		UPDATE games
		SET status = $2, finished_at = now()
		WHERE id = $1 AND status <> $2
	`

	result, err := d.db.ExecContext(ctx, query, gameID, model.StatusFinished)
	if err != nil {
		return false, err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return rowsAffected > 0, nil
}

func (d *Driver) DeleteBySlug(ctx context.Context, slug string) error {
	query := `
		DELETE FROM games
		WHERE slug = $1
	`

	result, err := d.db.ExecContext(ctx, query, slug)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return usecase_game.ErrResourceNotFound
	}
	return nil
}

func (d *Driver) Progress(ctx context.Context, gameID uuid.UUID) (model.Progress, error) {
	var progress struct {
		Players     int `db:"players"`
		PlayersDone int `db:"players_done"`
		Movies      int `db:"movies"`
	}

	query := `
		SELECT
			(SELECT COUNT(*) FROM players WHERE game_id = $1) AS players,
			(SELECT COUNT(*) FROM players WHERE game_id = $1 AND done) AS players_done,
			(SELECT COUNT(*) FROM movie_scores WHERE game_id = $1) AS movies
	`

	if err := d.db.GetContext(ctx, &progress, query, gameID); err != nil {
		return model.Progress{}, err
	}

	return model.Progress{
		Players:     progress.Players,
		PlayersDone: progress.PlayersDone,
		Movies:      progress.Movies,
	}, nil
}

func (d *Driver) FirstMovie(ctx context.Context, gameID uuid.UUID) (uuid.UUID, error) {
	query := `
		SELECT movie_id
		FROM movie_scores
		WHERE game_id = $1
		ORDER BY position
		LIMIT 1
	`

	var movieID uuid.UUID
	if err := d.db.GetContext(ctx, &movieID, query, gameID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return uuid.Nil, usecase_game.ErrResourceNotFound
		}
		return uuid.Nil, err
	}
	return movieID, nil
}

// CleanupStale drops lobbies nobody started and games finished long ago.
// Voting games abandoned past their deadline count as finished.
func (d *Driver) CleanupStale(ctx context.Context, lobbyTTL, finishedTTL time.Duration) error {
	query := `
		DELETE FROM games
		WHERE (status = 'lobby' AND created_at < now() - make_interval(secs => $1))
		   OR (status = 'finished' AND finished_at < now() - make_interval(secs => $2))
		   OR (status = 'voting' AND deadline < now() - make_interval(secs => $2))
	`

	_, err := d.db.ExecContext(ctx, query, lobbyTTL.Seconds(), finishedTTL.Seconds())
	return err
}
