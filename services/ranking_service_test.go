package services

import (
	"context"
	"fmt"
	"testing"

	"poker-league-system/models"
	"poker-league-system/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRankingService(store *repositories.MemoryStore) *RankingService {
	return NewRankingService(store, NewPointsCalculator())
}

func TestCalculateTournamentRanking_ImputesSessionWinner(t *testing.T) {
	// Nine seated; positions 9 down to 2 recorded for eight of them, the
	// survivor never got a row. The aggregator places the unrecorded
	// player at rank 1 with the position-1 award.
	ctx := context.Background()
	store := repositories.NewMemoryStore()
	tournament, date, _ := seedTournament(t, store, 1, models.GameDateStatusInProgress, 9)
	svc := newRankingService(store)
	elim := newEliminationService(store)

	for pos := 9; pos >= 2; pos-- {
		player := fmt.Sprintf("p%d", pos)
		_, err := elim.RecordElimination(ctx, date.ID, player, models.NoEliminator(), pos)
		require.NoError(t, err)
	}

	entries, err := svc.CalculateTournamentRanking(ctx, tournament.ID)
	require.NoError(t, err)
	require.Len(t, entries, 9)

	assert.Equal(t, "p1", entries[0].PlayerID)
	assert.Equal(t, 1, entries[0].Rank)
	assert.Equal(t, 27, entries[0].TotalPoints) // points(1, 9)
	assert.Equal(t, 1, entries[0].DatesPlayed)
	assert.Equal(t, "Player 1", entries[0].PlayerName)

	// The rest follow the finishing order.
	for i := 1; i < 9; i++ {
		assert.Equal(t, fmt.Sprintf("p%d", i+1), entries[i].PlayerID)
		assert.Equal(t, i+1, entries[i].Rank)
	}
}

func TestCalculateTournamentRanking_NoImputationWhenWinnerRecorded(t *testing.T) {
	// The winner's position-1 row exists but one elimination (position 2)
	// was never entered. The missing player must not be handed a second
	// full winner award; only the recorded rows count.
	ctx := context.Background()
	store := repositories.NewMemoryStore()
	tournament, date, _ := seedTournament(t, store, 1, models.GameDateStatusInProgress, 9)
	svc := newRankingService(store)
	elim := newEliminationService(store)

	for pos := 9; pos >= 3; pos-- {
		_, err := elim.RecordElimination(ctx, date.ID, fmt.Sprintf("p%d", pos), models.NoEliminator(), pos)
		require.NoError(t, err)
	}
	_, err := elim.RecordElimination(ctx, date.ID, "p1", models.NoEliminator(), 1)
	require.NoError(t, err)

	entries, err := svc.CalculateTournamentRanking(ctx, tournament.ID)
	require.NoError(t, err)
	require.Len(t, entries, 8) // p2 has no row and gets nothing

	assert.Equal(t, "p1", entries[0].PlayerID)
	assert.Equal(t, 27, entries[0].TotalPoints)
	for _, e := range entries {
		assert.NotEqual(t, "p2", e.PlayerID)
	}
}

func TestCalculateTournamentRanking_NoImputationMidSession(t *testing.T) {
	// Only three of nine are out: the date is mid-session, nobody gets
	// winner points for free.
	ctx := context.Background()
	store := repositories.NewMemoryStore()
	tournament, date, _ := seedTournament(t, store, 1, models.GameDateStatusInProgress, 9)
	svc := newRankingService(store)
	elim := newEliminationService(store)

	for pos := 9; pos >= 7; pos-- {
		_, err := elim.RecordElimination(ctx, date.ID, fmt.Sprintf("p%d", pos), models.NoEliminator(), pos)
		require.NoError(t, err)
	}

	entries, err := svc.CalculateTournamentRanking(ctx, tournament.ID)
	require.NoError(t, err)
	assert.Len(t, entries, 3)
	for _, e := range entries {
		assert.NotEqual(t, 27, e.TotalPoints)
	}
}

func TestCalculateTournamentRanking_AccumulatesAcrossDates(t *testing.T) {
	ctx := context.Background()
	store := repositories.NewMemoryStore()
	tournament, dateA, players := seedTournament(t, store, 1, models.GameDateStatusCompleted, 9)
	dateB := addGameDate(t, store, tournament, 2, models.GameDateStatusCompleted, players)
	svc := newRankingService(store)

	seedRecord(t, store, dateA.ID, "p1", 2, 21)
	seedRecord(t, store, dateA.ID, "p2", 3, 16)
	seedRecord(t, store, dateB.ID, "p1", 3, 16)
	seedRecord(t, store, dateB.ID, "p3", 2, 21)

	entries, err := svc.CalculateTournamentRanking(ctx, tournament.ID)
	require.NoError(t, err)
	require.Len(t, entries, 3)

	assert.Equal(t, "p1", entries[0].PlayerID)
	assert.Equal(t, 37, entries[0].TotalPoints)
	assert.Equal(t, 2, entries[0].DatesPlayed)
	assert.Equal(t, 1, entries[0].Rank)
}

func TestCalculateTournamentRanking_TieBreak(t *testing.T) {
	// Equal totals order by player ID ascending. This freezes the
	// tie-break; changing it is a behavior change, not a refactor.
	ctx := context.Background()
	store := repositories.NewMemoryStore()
	tournament, dateA, players := seedTournament(t, store, 1, models.GameDateStatusCompleted, 9)
	dateB := addGameDate(t, store, tournament, 2, models.GameDateStatusCompleted, players)
	svc := newRankingService(store)

	seedRecord(t, store, dateA.ID, "p5", 2, 21)
	seedRecord(t, store, dateB.ID, "p2", 2, 21)

	entries, err := svc.CalculateTournamentRanking(ctx, tournament.ID)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "p2", entries[0].PlayerID)
	assert.Equal(t, 1, entries[0].Rank)
	assert.Equal(t, "p5", entries[1].PlayerID)
	assert.Equal(t, 2, entries[1].Rank)

	// Deterministic across repeated calls.
	again, err := svc.CalculateTournamentRanking(ctx, tournament.ID)
	require.NoError(t, err)
	assert.Equal(t, entries, again)
}

func TestCalculateTournamentRanking_NoCompletedDates(t *testing.T) {
	ctx := context.Background()
	store := repositories.NewMemoryStore()
	tournament, _, _ := seedTournament(t, store, 1, models.GameDateStatusConfigured, 9)
	svc := newRankingService(store)

	_, err := svc.CalculateTournamentRanking(ctx, tournament.ID)
	assert.ErrorIs(t, err, ErrNoCompletedDates)
}

func TestCalculateTournamentRanking_TournamentNotFound(t *testing.T) {
	store := repositories.NewMemoryStore()
	svc := newRankingService(store)

	_, err := svc.CalculateTournamentRanking(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrTournamentNotFound)
}
