package model

import (
	"time"

	"github.com/google/uuid"
)

type GameStatus = string

const (
	StatusLobby    GameStatus = "lobby"
	StatusVoting   GameStatus = "voting"
	StatusFinished GameStatus = "finished"
)

type Game struct {
	ID        uuid.UUID
	Slug      string
	OwnerID   uuid.UUID
	Status    GameStatus
	CreatedAt time.Time
	StartedAt *time.Time
	Deadline  *time.Time
}

// Expired reports whether a voting round ran out of time at now.
func (g Game) Expired(now time.Time) bool {
	return g.Status == StatusVoting && g.Deadline != nil && !now.Before(*g.Deadline)
}

type Player struct {
	ID       uuid.UUID
	GameID   uuid.UUID
	Name     string
	Done     bool
	JoinedAt time.Time
}

type Progress struct {
	Status      GameStatus
	Players     int
	PlayersDone int
	Movies      int
	Deadline    *time.Time
}
