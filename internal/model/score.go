package model

import "github.com/google/uuid"

// MovieScore is one playlist entry of a game.
type MovieScore struct {
	ID       uuid.UUID
	GameID   uuid.UUID
	MovieID  uuid.UUID
	TMDBID   string
	Position int
	Likes    int
}

type Reaction = int

const (
	LikeReaction    Reaction = 1
	DislikeReaction Reaction = -1
)

type Vote struct {
	GameID   uuid.UUID
	PlayerID uuid.UUID
	MovieID  uuid.UUID
	Reaction Reaction
}

type Ranked struct {
	Movie Movie
	Score MovieScore
}
