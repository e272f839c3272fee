package infra_postgres_score

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	infra_pgerr "github.com/humanbelnik/flickswipe/internal/infra/postgres/pgerr"
	"github.com/humanbelnik/flickswipe/internal/model"
	usecase_vote "github.com/humanbelnik/flickswipe/internal/usecase/vote"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

type Driver struct {
	db *sqlx.DB
}

func New(db *sqlx.DB) *Driver {
	return &Driver{db: db}
}

type scoreDTO struct {
	ID       uuid.UUID `db:"id"`
	GameID   uuid.UUID `db:"game_id"`
	MovieID  uuid.UUID `db:"movie_id"`
	TMDBID   string    `db:"tmdb_id"`
	Position int       `db:"position"`
	Likes    int       `db:"likes"`
}

func (s scoreDTO) toDomain() model.MovieScore {
	return model.MovieScore{
		ID:       s.ID,
		GameID:   s.GameID,
		MovieID:  s.MovieID,
		TMDBID:   s.TMDBID,
		Position: s.Position,
		Likes:    s.Likes,
	}
}

type rankedDTO struct {
	scoreDTO
	Title       string         `db:"title"`
	Overview    string         `db:"overview"`
	PosterPath  string         `db:"poster_path"`
	PosterKey   string         `db:"poster_key"`
	ReleaseDate string         `db:"release_date"`
	Genres      pq.StringArray `db:"genres"`
	Rating      float64        `db:"rating"`
}

const selectScore = `
	SELECT ms.id, ms.game_id, ms.movie_id, m.tmdb_id, ms.position, ms.likes
	FROM movie_scores ms
	JOIN movies m ON m.id = ms.movie_id
`

func (d *Driver) Playlist(ctx context.Context, gameID uuid.UUID) ([]model.MovieScore, error) {
	query := selectScore + `
		WHERE ms.game_id = $1
		ORDER BY ms.position
	`

	var scores []scoreDTO
	if err := d.db.SelectContext(ctx, &scores, query, gameID); err != nil {
		return nil, err
	}

	out := make([]model.MovieScore, 0, len(scores))
	for _, s := range scores {
		out = append(out, s.toDomain())
	}
	return out, nil
}

func (d *Driver) ScoreByMovie(ctx context.Context, gameID uuid.UUID, movieID uuid.UUID) (model.MovieScore, error) {
	query := selectScore + `
		WHERE ms.game_id = $1 AND ms.movie_id = $2
	`
	return d.getScore(ctx, query, gameID, movieID)
}

func (d *Driver) ScoreAt(ctx context.Context, gameID uuid.UUID, position int) (model.MovieScore, error) {
	query := selectScore + `
		WHERE ms.game_id = $1 AND ms.position = $2
	`
	return d.getScore(ctx, query, gameID, position)
}

func (d *Driver) getScore(ctx context.Context, query string, args ...any) (model.MovieScore, error) {
	var score scoreDTO
	if err := d.db.GetContext(ctx, &score, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.MovieScore{}, usecase_vote.ErrMovieNotInGame
		}
		return model.MovieScore{}, err
	}
	return score.toDomain(), nil
}

// ApplyVote stores the vote row and moves likes by the reaction in the
// same transaction, so a repeated vote never reaches the counter.
func (d *Driver) ApplyVote(ctx context.Context, vote model.Vote) error {
	tx, err := d.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	insertVoteQuery := `
		INSERT INTO votes (player_id, movie_id, game_id, reaction, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err = tx.ExecContext(ctx, insertVoteQuery, vote.PlayerID, vote.MovieID, vote.GameID, vote.Reaction, time.Now())
	if err != nil {
		if infra_pgerr.IsUniqueViolation(err) {
			return usecase_vote.ErrAlreadyVoted
		}
		return err
	}

	updateLikesQuery := `
		UPDATE movie_scores
		SET likes = likes + $3
		WHERE game_id = $1 AND movie_id = $2
	`
	result, err := tx.ExecContext(ctx, updateLikesQuery, vote.GameID, vote.MovieID, vote.Reaction)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return usecase_vote.ErrMovieNotInGame
	}

	return tx.Commit()
}

func (d *Driver) VotesCount(ctx context.Context, gameID uuid.UUID, playerID uuid.UUID) (int, error) {
	query := `
		SELECT COUNT(*)
		FROM votes
		WHERE player_id = $1 AND game_id = $2
	`

	var count int
	if err := d.db.GetContext(ctx, &count, query, playerID, gameID); err != nil {
		return 0, err
	}
	return count, nil
}

// MarkDone holds the game row lock while counting, so exactly one of the
// last concurrent finishers observes allDone.
func (d *Driver) MarkDone(ctx context.Context, gameID uuid.UUID, playerID uuid.UUID) (bool, error) {
	tx, err := d.db.BeginTxx(ctx, nil)
	if err != nil {
		return false, err
	}
	defer func() { _ = tx.Rollback() }()

	var lockedID uuid.UUID
	if err := tx.GetContext(ctx, &lockedID, `SELECT id FROM games WHERE id = $1 FOR UPDATE`, gameID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, usecase_vote.ErrResourceNotFound
		}
		return false, err
	}

	markQuery := `
		UPDATE players
		SET done = true
		WHERE id = $1 AND game_id = $2 AND NOT done
	`
	result, err := tx.ExecContext(ctx, markQuery, playerID, gameID)
	if err != nil {
		return false, err
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}

	var pending int
	pendingQuery := `
		SELECT COUNT(*)
		FROM players
		WHERE game_id = $1 AND NOT done
	`
	if err := tx.GetContext(ctx, &pending, pendingQuery, gameID); err != nil {
		return false, err
	}

	if err := tx.Commit(); err != nil {
		return false, err
	}
	return rowsAffected > 0 && pending == 0, nil
}

func (d *Driver) Top(ctx context.Context, gameID uuid.UUID, n int) ([]model.Ranked, error) {
	query := `
		SELECT
			ms.id, ms.game_id, ms.movie_id, m.tmdb_id, ms.position, ms.likes,
			m.title, m.overview, m.poster_path, m.poster_key, m.release_date, m.genres, m.rating
		FROM movie_scores ms
		JOIN movies m ON m.id = ms.movie_id
		WHERE ms.game_id = $1
		ORDER BY ms.likes DESC, ms.position ASC
		LIMIT $2
	`

	var rows []rankedDTO
	if err := d.db.SelectContext(ctx, &rows, query, gameID, n); err != nil {
		return nil, err
	}

	ranking := make([]model.Ranked, 0, len(rows))
	for _, r := range rows {
		ranking = append(ranking, model.Ranked{
			Movie: model.Movie{
				ID:          r.MovieID,
				TMDBID:      r.TMDBID,
				Title:       r.Title,
				Overview:    r.Overview,
				PosterPath:  r.PosterPath,
				PosterKey:   r.PosterKey,
				ReleaseDate: r.ReleaseDate,
				Genres:      []string(r.Genres),
				Rating:      r.Rating,
			},
			Score: r.scoreDTO.toDomain(),
		})
	}
	return ranking, nil
}
