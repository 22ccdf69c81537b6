package services

import (
	"context"
	"errors"
	"log"

	"poker-league-system/middleware"
	"poker-league-system/models"
	"poker-league-system/repositories"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// EliminationService validates and commits elimination events. It never
// touches game-date lifecycle: starting and completing a night belongs to
// the lifecycle endpoints and the scheduler.
type EliminationService struct {
	Store  repositories.LeagueStore
	Points *PointsCalculator
}

func NewEliminationService(store repositories.LeagueStore, points *PointsCalculator) *EliminationService {
	return &EliminationService{Store: store, Points: points}
}

// RecordElimination runs the full validation chain and the insert as one
// atomic unit scoped to the game date. Checks short-circuit in order; a
// failed call leaves no partial record behind.
//
// The order matters: lifecycle first, then position range, then the two
// uniqueness checks, then the eliminator. Scorekeeping happens live from
// more than one phone, so two submissions for the same date can arrive
// back to back — the store serializes them per date.
func (s *EliminationService) RecordElimination(ctx context.Context, gameDateID, playerID string, eliminator models.Eliminator, position int) (*models.EliminationRecord, error) {
	var created *models.EliminationRecord
	err := s.Store.WithGameDate(ctx, gameDateID, func(scope repositories.GameDateScope) error {
		date := scope.GameDate()
		if date.Status != models.GameDateStatusInProgress {
			return ErrGameDateNotInProgress
		}
		roster := date.RosterSize()
		if position < 1 || position > roster {
			return ErrInvalidPosition
		}
		recs, err := scope.Records()
		if err != nil {
			return err
		}
		for _, r := range recs {
			if r.PlayerID == playerID {
				return ErrPlayerAlreadyEliminated
			}
		}
		for _, r := range recs {
			if r.Position == position {
				return ErrPositionAlreadyTaken
			}
		}
		if elimID, ok := eliminator.PlayerID(); ok {
			if !date.HasRosterPlayer(elimID) || elimID == playerID {
				return ErrInvalidEliminator
			}
			for _, r := range recs {
				if r.PlayerID == elimID {
					return ErrInvalidEliminator
				}
			}
		}
		rec := &models.EliminationRecord{
			ID:           uuid.NewString(),
			GameDateID:   date.ID,
			PlayerID:     playerID,
			EliminatorID: eliminator.Column(),
			Position:     position,
			Points:       s.Points.Points(position, roster),
		}
		if err := scope.CreateRecord(rec); err != nil {
			return err
		}
		created = rec
		return nil
	})
	if err != nil {
		// A nonexistent date is by definition not accepting records.
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrGameDateNotInProgress
		}
		return nil, err
	}
	return created, nil
}

// --- Transport ---

type recordEliminationRequest struct {
	PlayerID     string  `json:"player_id"`
	EliminatorID *string `json:"eliminator_id,omitempty"` // omit for the last player standing
	Position     int     `json:"position"`
}

// RecordEliminationEndpoint handles POST /game-dates/:id/eliminations.
func (s *EliminationService) RecordEliminationEndpoint(c *fiber.Ctx) error {
	gameDateID := c.Params("id")

	var req recordEliminationRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "invalid JSON", "details": err.Error()})
	}
	if req.PlayerID == "" {
		return c.Status(400).JSON(fiber.Map{"error": "player_id is required"})
	}
	if req.Position == 0 {
		return c.Status(400).JSON(fiber.Map{"error": "position is required"})
	}

	rec, err := s.RecordElimination(c.UserContext(), gameDateID, req.PlayerID, models.EliminatorFromColumn(req.EliminatorID), req.Position)
	if err != nil {
		log.Printf("[ELIM] record failed: game_date=%s player=%s eliminator=%v position=%d: %v",
			gameDateID, req.PlayerID, req.EliminatorID, req.Position, err)
		return errorJSON(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(rec)
}

// ListEliminationsEndpoint handles GET /game-dates/:id/eliminations.
func (s *EliminationService) ListEliminationsEndpoint(c *fiber.Ctx) error {
	gameDateID := c.Params("id")
	if _, err := s.Store.GetGameDate(c.UserContext(), gameDateID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return c.Status(404).JSON(fiber.Map{"error": "game date not found"})
		}
		log.Printf("[ELIM] load game date %s failed: %v", gameDateID, err)
		return errorJSON(c, err)
	}
	recs, err := s.Store.ListRecordsByGameDate(c.UserContext(), gameDateID)
	if err != nil {
		log.Printf("[ELIM] list records for game date %s failed: %v", gameDateID, err)
		return errorJSON(c, err)
	}
	return c.JSON(recs)
}

// PurgeEliminationsEndpoint handles DELETE /admin/game-dates/:id/eliminations.
// Bulk administrative purge is the one deletion path for elimination
// records; staff only.
func (s *EliminationService) PurgeEliminationsEndpoint(c *fiber.Ctx) error {
	if !middleware.HasRole(c, models.RoleStaff) {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "staff role required"})
	}
	gameDateID := c.Params("id")
	n, err := s.Store.PurgeGameDateRecords(c.UserContext(), gameDateID)
	if err != nil {
		log.Printf("[ELIM] purge for game date %s failed: %v", gameDateID, err)
		return errorJSON(c, err)
	}
	log.Printf("[ELIM] purged %d record(s) for game date %s (by %v)", n, gameDateID, c.Locals("user_id"))
	return c.JSON(fiber.Map{"deleted": n})
}
