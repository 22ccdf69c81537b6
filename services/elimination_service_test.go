package services

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"poker-league-system/models"
	"poker-league-system/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newEliminationService(store *repositories.MemoryStore) *EliminationService {
	return NewEliminationService(store, NewPointsCalculator())
}

func TestRecordElimination_HappyPath(t *testing.T) {
	ctx := context.Background()
	store := repositories.NewMemoryStore()
	_, date, _ := seedTournament(t, store, 1, models.GameDateStatusInProgress, 9)
	svc := newEliminationService(store)

	rec, err := svc.RecordElimination(ctx, date.ID, "p9", models.ByPlayer("p2"), 9)
	require.NoError(t, err)
	assert.Equal(t, date.ID, rec.GameDateID)
	assert.Equal(t, "p9", rec.PlayerID)
	require.NotNil(t, rec.EliminatorID)
	assert.Equal(t, "p2", *rec.EliminatorID)
	assert.Equal(t, 9, rec.Position)
	assert.Equal(t, 1, rec.Points) // last place of a 9 player table

	recs, err := store.ListRecordsByGameDate(ctx, date.ID)
	require.NoError(t, err)
	assert.Len(t, recs, 1)
}

func TestRecordElimination_WinnerWithNoEliminator(t *testing.T) {
	ctx := context.Background()
	store := repositories.NewMemoryStore()
	_, date, _ := seedTournament(t, store, 1, models.GameDateStatusInProgress, 6)
	svc := newEliminationService(store)

	rec, err := svc.RecordElimination(ctx, date.ID, "p1", models.NoEliminator(), 1)
	require.NoError(t, err)
	assert.Nil(t, rec.EliminatorID)
	assert.Equal(t, 18, rec.Points) // winner of a 6 player table
}

func TestRecordElimination_LifecycleGating(t *testing.T) {
	// Recording against anything but an in-progress date always fails
	// with the lifecycle error, regardless of argument validity.
	ctx := context.Background()
	for _, status := range []string{
		models.GameDateStatusPending,
		models.GameDateStatusConfigured,
		models.GameDateStatusCompleted,
	} {
		t.Run(status, func(t *testing.T) {
			store := repositories.NewMemoryStore()
			_, date, _ := seedTournament(t, store, 1, status, 9)
			svc := newEliminationService(store)

			_, err := svc.RecordElimination(ctx, date.ID, "p9", models.ByPlayer("p2"), 9)
			assert.ErrorIs(t, err, ErrGameDateNotInProgress)
		})
	}
}

func TestRecordElimination_UnknownGameDate(t *testing.T) {
	store := repositories.NewMemoryStore()
	svc := newEliminationService(store)

	_, err := svc.RecordElimination(context.Background(), "nope", "p9", models.NoEliminator(), 1)
	assert.ErrorIs(t, err, ErrGameDateNotInProgress)
}

func TestRecordElimination_InvalidPosition(t *testing.T) {
	ctx := context.Background()
	store := repositories.NewMemoryStore()
	_, date, _ := seedTournament(t, store, 1, models.GameDateStatusInProgress, 9)
	svc := newEliminationService(store)

	for _, position := range []int{0, -3, 10} {
		_, err := svc.RecordElimination(ctx, date.ID, "p9", models.ByPlayer("p2"), position)
		assert.ErrorIs(t, err, ErrInvalidPosition, "position %d", position)
	}
}

func TestRecordElimination_AtomicRejectionOfDuplicatePlayer(t *testing.T) {
	ctx := context.Background()
	store := repositories.NewMemoryStore()
	_, date, _ := seedTournament(t, store, 1, models.GameDateStatusInProgress, 9)
	svc := newEliminationService(store)

	_, err := svc.RecordElimination(ctx, date.ID, "p9", models.ByPlayer("p2"), 9)
	require.NoError(t, err)

	// Same player again at a free position: rejected, and the store
	// still holds exactly one record for the pair.
	_, err = svc.RecordElimination(ctx, date.ID, "p9", models.ByPlayer("p3"), 8)
	assert.ErrorIs(t, err, ErrPlayerAlreadyEliminated)

	recs, err := store.ListRecordsByGameDate(ctx, date.ID)
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, "p9", recs[0].PlayerID)
	assert.Equal(t, 9, recs[0].Position)
}

func TestRecordElimination_PositionAlreadyTaken(t *testing.T) {
	ctx := context.Background()
	store := repositories.NewMemoryStore()
	_, date, _ := seedTournament(t, store, 1, models.GameDateStatusInProgress, 9)
	svc := newEliminationService(store)

	_, err := svc.RecordElimination(ctx, date.ID, "p9", models.ByPlayer("p2"), 9)
	require.NoError(t, err)

	_, err = svc.RecordElimination(ctx, date.ID, "p8", models.ByPlayer("p2"), 9)
	assert.ErrorIs(t, err, ErrPositionAlreadyTaken)
}

func TestRecordElimination_InvalidEliminator(t *testing.T) {
	ctx := context.Background()
	store := repositories.NewMemoryStore()
	_, date, _ := seedTournament(t, store, 1, models.GameDateStatusInProgress, 9)
	svc := newEliminationService(store)

	// Eliminated earlier in the night; can no longer knock anyone out.
	_, err := svc.RecordElimination(ctx, date.ID, "p9", models.ByPlayer("p2"), 9)
	require.NoError(t, err)

	tests := []struct {
		name       string
		eliminator models.Eliminator
	}{
		{"not a roster member", models.ByPlayer("stranger")},
		{"self elimination", models.ByPlayer("p8")},
		{"already eliminated", models.ByPlayer("p9")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.RecordElimination(ctx, date.ID, "p8", tt.eliminator, 8)
			assert.ErrorIs(t, err, ErrInvalidEliminator)
		})
	}
}

func TestRecordElimination_ValidationOrder(t *testing.T) {
	// Lifecycle beats everything else: a completed date with an absurd
	// position still reports the lifecycle failure.
	ctx := context.Background()
	store := repositories.NewMemoryStore()
	_, date, _ := seedTournament(t, store, 1, models.GameDateStatusCompleted, 9)
	svc := newEliminationService(store)

	_, err := svc.RecordElimination(ctx, date.ID, "p9", models.ByPlayer("p9"), 99)
	assert.ErrorIs(t, err, ErrGameDateNotInProgress)
}

func TestRecordElimination_ConcurrentWritersOnePosition(t *testing.T) {
	// Two devices submit for the same date in close succession: the
	// atomic unit lets exactly one claim a given position.
	ctx := context.Background()
	store := repositories.NewMemoryStore()
	_, date, _ := seedTournament(t, store, 1, models.GameDateStatusInProgress, 9)
	svc := newEliminationService(store)

	const writers = 8
	var wg sync.WaitGroup
	errs := make([]error, writers)
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			player := fmt.Sprintf("p%d", i+2) // p2..p9
			_, errs[i] = svc.RecordElimination(ctx, date.ID, player, models.NoEliminator(), 9)
		}(i)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
		} else {
			assert.ErrorIs(t, err, ErrPositionAlreadyTaken)
		}
	}
	assert.Equal(t, 1, succeeded)

	recs, err := store.ListRecordsByGameDate(ctx, date.ID)
	require.NoError(t, err)
	assert.Len(t, recs, 1)
}
