package models

import (
	"time"
)

// WinnerOverride is a curated champion record keyed by tournament number.
// Curated data always wins over computed standings — several historical
// tournaments were migrated with incomplete elimination data, so the
// computed rank 1 can be wrong or missing for them. Once present an
// override is permanently authoritative; it is never reconciled against
// later computed data.
type WinnerOverride struct {
	ID               string    `json:"id" gorm:"primaryKey"`
	TournamentNumber int       `json:"tournament_number" gorm:"uniqueIndex;not null"`
	PlayerID         string    `json:"player_id" gorm:"not null"`
	PlayerName       string    `json:"player_name"` // denormalized for display
	Note             string    `json:"note,omitempty"`
	CreatedByID      string    `json:"created_by_id"` // staff member who curated it
	CreatedAt        time.Time `json:"created_at" gorm:"autoCreateTime"`
}
