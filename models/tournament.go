package models

import (
	"time"
)

// Tournament lifecycle
const (
	TournamentStatusUpcoming = "upcoming"
	TournamentStatusActive   = "active"
	TournamentStatusFinished = "finished"
)

// GameDate lifecycle
const (
	GameDateStatusPending    = "pending"     // created, roster not fixed yet
	GameDateStatusConfigured = "configured"  // roster fixed, night not started
	GameDateStatusInProgress = "in_progress" // eliminations being recorded
	GameDateStatusCompleted  = "completed"
)

// Tournament represents one season of the league: a numbered series of
// game dates whose points accumulate into a single standings table.
type Tournament struct {
	ID        string    `json:"id" gorm:"primaryKey"`
	Number    int       `json:"number" gorm:"uniqueIndex;not null"` // sequence number, e.g. "Torneo 23"
	Name      string    `json:"name" gorm:"not null"`
	Status    string    `json:"status" gorm:"type:varchar(16);default:'upcoming'"` // upcoming, active, finished
	StartTime time.Time `json:"start_time" gorm:"not null"`
	EndTime   time.Time `json:"end_time"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`

	// Relationships
	GameDates []GameDate `json:"game_dates,omitempty" gorm:"foreignKey:TournamentID"`
}

// GameDate is one dated session of a tournament. Its roster is fixed when
// the date is configured; eliminations are only accepted while in_progress.
// Status is mutated by the lifecycle endpoints and the scheduler, never by
// the elimination recorder.
type GameDate struct {
	ID            string    `json:"id" gorm:"primaryKey"`
	TournamentID  string    `json:"tournament_id" gorm:"not null;index"`
	DateNumber    int       `json:"date_number" gorm:"not null"` // sequential within the tournament
	ScheduledDate time.Time `json:"scheduled_date"`
	Status        string    `json:"status" gorm:"type:varchar(16);default:'pending'"`
	CreatedAt     time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt     time.Time `json:"updated_at" gorm:"autoUpdateTime"`

	// Roster: fixed at configuration time
	Players []Player `json:"players,omitempty" gorm:"many2many:game_date_players"`

	// Relationship: one date has many elimination records
	Records []EliminationRecord `json:"records,omitempty" gorm:"foreignKey:GameDateID"`
}

// RosterSize returns the number of players seated for this date.
func (d *GameDate) RosterSize() int {
	return len(d.Players)
}

// HasRosterPlayer reports whether playerID is part of the fixed roster.
func (d *GameDate) HasRosterPlayer(playerID string) bool {
	for _, p := range d.Players {
		if p.ID == playerID {
			return true
		}
	}
	return false
}
