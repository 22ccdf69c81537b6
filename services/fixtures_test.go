package services

import (
	"context"
	"fmt"
	"testing"
	"time"

	"poker-league-system/models"
	"poker-league-system/repositories"

	"github.com/stretchr/testify/require"
)

// seedTournament creates a tournament with one game date in the given
// status and a roster of playerCount players (IDs p1..pN).
func seedTournament(t *testing.T, store *repositories.MemoryStore, number int, dateStatus string, playerCount int) (*models.Tournament, *models.GameDate, []models.Player) {
	t.Helper()
	ctx := context.Background()

	players := make([]models.Player, 0, playerCount)
	for i := 1; i <= playerCount; i++ {
		p := models.Player{
			ID:       fmt.Sprintf("p%d", i),
			Name:     fmt.Sprintf("Player %d", i),
			Role:     models.RoleMember,
			IsActive: true,
		}
		store.AddPlayer(p)
		players = append(players, p)
	}

	tournament := &models.Tournament{
		ID:        fmt.Sprintf("t%d", number),
		Number:    number,
		Name:      fmt.Sprintf("Tournament %d", number),
		Status:    models.TournamentStatusActive,
		StartTime: time.Now().Add(-24 * time.Hour),
	}
	require.NoError(t, store.CreateTournament(ctx, tournament))

	date := &models.GameDate{
		ID:           tournament.ID + "-d1",
		TournamentID: tournament.ID,
		DateNumber:   1,
		Status:       dateStatus,
		Players:      players,
	}
	require.NoError(t, store.CreateGameDate(ctx, date))

	return tournament, date, players
}

// addGameDate attaches another date with the same roster to a tournament.
func addGameDate(t *testing.T, store *repositories.MemoryStore, tournament *models.Tournament, dateNumber int, status string, players []models.Player) *models.GameDate {
	t.Helper()
	date := &models.GameDate{
		ID:           fmt.Sprintf("%s-d%d", tournament.ID, dateNumber),
		TournamentID: tournament.ID,
		DateNumber:   dateNumber,
		Status:       status,
		Players:      players,
	}
	require.NoError(t, store.CreateGameDate(context.Background(), date))
	return date
}

// seedRecord writes an elimination record directly through the store,
// bypassing the recorder. Used by aggregation tests that need specific
// point totals.
func seedRecord(t *testing.T, store *repositories.MemoryStore, gameDateID, playerID string, position, points int) {
	t.Helper()
	err := store.WithGameDate(context.Background(), gameDateID, func(scope repositories.GameDateScope) error {
		return scope.CreateRecord(&models.EliminationRecord{
			ID:         fmt.Sprintf("%s-%s", gameDateID, playerID),
			GameDateID: gameDateID,
			PlayerID:   playerID,
			Position:   position,
			Points:     points,
		})
	})
	require.NoError(t, err)
}
