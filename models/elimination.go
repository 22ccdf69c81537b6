package models

import (
	"time"
)

// EliminationRecord is the immutable fact that a player finished a game
// date at a given position. Position 1 is the last player standing; that
// record carries no eliminator. Created once per (game date, player),
// never updated; deleted only by the admin bulk purge.
type EliminationRecord struct {
	ID           string    `json:"id" gorm:"primaryKey"`
	GameDateID   string    `json:"game_date_id" gorm:"not null;index;uniqueIndex:uq_date_player,priority:1;uniqueIndex:uq_date_position,priority:1"`
	PlayerID     string    `json:"player_id" gorm:"not null;uniqueIndex:uq_date_player,priority:2"` // the eliminated player
	EliminatorID *string   `json:"eliminator_id,omitempty"`                                         // nil = no eliminator (session winner)
	Position     int       `json:"position" gorm:"not null;uniqueIndex:uq_date_position,priority:2"`
	Points       int       `json:"points" gorm:"not null"`
	CreatedAt    time.Time `json:"created_at" gorm:"autoCreateTime"`
}

// Eliminator is a tagged value: either another roster player knocked the
// player out, or nobody did (the session winner). Kept separate from the
// nullable DB column so callers can't confuse "none" with "unknown".
type Eliminator struct {
	playerID string
	byPlayer bool
}

// ByPlayer returns an eliminator naming a roster player.
func ByPlayer(playerID string) Eliminator {
	return Eliminator{playerID: playerID, byPlayer: true}
}

// NoEliminator returns the sentinel used for the last player standing.
func NoEliminator() Eliminator {
	return Eliminator{}
}

// PlayerID returns the eliminating player and true, or ("", false) for
// the sentinel.
func (e Eliminator) PlayerID() (string, bool) {
	return e.playerID, e.byPlayer
}

// IsNone reports whether this is the no-eliminator sentinel.
func (e Eliminator) IsNone() bool {
	return !e.byPlayer
}

// Column converts the eliminator to its nullable DB representation.
func (e Eliminator) Column() *string {
	if !e.byPlayer {
		return nil
	}
	id := e.playerID
	return &id
}

// EliminatorFromColumn rebuilds the tagged value from the DB column.
func EliminatorFromColumn(id *string) Eliminator {
	if id == nil {
		return NoEliminator()
	}
	return ByPlayer(*id)
}
