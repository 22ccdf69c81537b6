package services

import (
	"context"
	"errors"
	"log"
	"sort"
	"strconv"

	"poker-league-system/middleware"
	"poker-league-system/models"
	"poker-league-system/repositories"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// Winner sources
const (
	WinnerSourceOverride = "override"
	WinnerSourceComputed = "computed"
)

// WinnerRecord is a resolved champion for one tournament.
type WinnerRecord struct {
	TournamentNumber int    `json:"tournament_number"`
	PlayerID         string `json:"player_id"`
	PlayerName       string `json:"player_name,omitempty"`
	Source           string `json:"source"` // override or computed
	Note             string `json:"note,omitempty"`
}

// WinnerService resolves tournament champions. A curated WinnerOverride
// always beats computed standings — several migrated tournaments carry
// incomplete elimination data, and the override table is the ground truth
// the old-timers agreed on.
type WinnerService struct {
	Store   repositories.LeagueStore
	Ranking *RankingService
}

func NewWinnerService(store repositories.LeagueStore, ranking *RankingService) *WinnerService {
	return &WinnerService{Store: store, Ranking: ranking}
}

// WinnerForTournamentNumber resolves the champion of one tournament:
// override first, computed rank 1 otherwise. A tournament that exists but
// yields empty standings fails with ErrPlayerNotInRanking — that is a
// data-consistency problem, not a missing tournament.
func (s *WinnerService) WinnerForTournamentNumber(ctx context.Context, number int) (*WinnerRecord, error) {
	o, err := s.Store.GetWinnerOverride(ctx, number)
	if err == nil {
		return &WinnerRecord{
			TournamentNumber: number,
			PlayerID:         o.PlayerID,
			PlayerName:       o.PlayerName,
			Source:           WinnerSourceOverride,
			Note:             o.Note,
		}, nil
	}
	if !errors.Is(err, repositories.ErrNotFound) {
		return nil, err
	}

	t, err := s.Store.GetTournamentByNumber(ctx, number)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrTournamentNotFound
		}
		return nil, err
	}
	entries, err := s.Ranking.CalculateTournamentRanking(ctx, t.ID)
	if err != nil {
		if errors.Is(err, ErrNoCompletedDates) {
			return nil, ErrPlayerNotInRanking
		}
		return nil, err
	}
	if len(entries) == 0 {
		return nil, ErrPlayerNotInRanking
	}
	top := entries[0]
	return &WinnerRecord{
		TournamentNumber: number,
		PlayerID:         top.PlayerID,
		PlayerName:       top.PlayerName,
		Source:           WinnerSourceComputed,
	}, nil
}

// AllWinnersWithFallback lists champions for every tournament, overrides
// first, computed otherwise. Tournaments with no resolvable champion are
// skipped: the bulk listing is best-effort, the per-number lookup is the
// strict one. Overrides for tournament numbers that have no tournament
// row (pre-migration history) are included too.
func (s *WinnerService) AllWinnersWithFallback(ctx context.Context) ([]WinnerRecord, error) {
	tournaments, err := s.Store.ListTournaments(ctx)
	if err != nil {
		return nil, err
	}
	overrides, err := s.Store.ListWinnerOverrides(ctx)
	if err != nil {
		return nil, err
	}
	byNumber := make(map[int]models.WinnerOverride, len(overrides))
	for _, o := range overrides {
		byNumber[o.TournamentNumber] = o
	}

	var winners []WinnerRecord
	seen := make(map[int]bool)
	for _, t := range tournaments {
		seen[t.Number] = true
		if o, ok := byNumber[t.Number]; ok {
			winners = append(winners, WinnerRecord{
				TournamentNumber: t.Number,
				PlayerID:         o.PlayerID,
				PlayerName:       o.PlayerName,
				Source:           WinnerSourceOverride,
				Note:             o.Note,
			})
			continue
		}
		entries, err := s.Ranking.CalculateTournamentRanking(ctx, t.ID)
		if err != nil {
			if errors.Is(err, ErrNoCompletedDates) {
				log.Printf("[WINNERS] tournament %d has no data and no override, skipping", t.Number)
				continue
			}
			return nil, err
		}
		if len(entries) == 0 {
			continue
		}
		winners = append(winners, WinnerRecord{
			TournamentNumber: t.Number,
			PlayerID:         entries[0].PlayerID,
			PlayerName:       entries[0].PlayerName,
			Source:           WinnerSourceComputed,
		})
	}
	// Curated history may predate the tournament table itself.
	for _, o := range overrides {
		if !seen[o.TournamentNumber] {
			winners = append(winners, WinnerRecord{
				TournamentNumber: o.TournamentNumber,
				PlayerID:         o.PlayerID,
				PlayerName:       o.PlayerName,
				Source:           WinnerSourceOverride,
				Note:             o.Note,
			})
		}
	}
	sort.Slice(winners, func(i, j int) bool {
		return winners[i].TournamentNumber < winners[j].TournamentNumber
	})
	return winners, nil
}

// --- Transport ---

// WinnerByNumberEndpoint handles GET /winners/:number.
func (s *WinnerService) WinnerByNumberEndpoint(c *fiber.Ctx) error {
	number, err := strconv.Atoi(c.Params("number"))
	if err != nil || number <= 0 {
		return c.Status(400).JSON(fiber.Map{"error": "tournament number must be a positive integer"})
	}
	w, err := s.WinnerForTournamentNumber(c.UserContext(), number)
	if err != nil {
		log.Printf("[WINNERS] resolve tournament %d failed: %v", number, err)
		return errorJSON(c, err)
	}
	return c.JSON(w)
}

// AllWinnersEndpoint handles GET /winners.
func (s *WinnerService) AllWinnersEndpoint(c *fiber.Ctx) error {
	winners, err := s.AllWinnersWithFallback(c.UserContext())
	if err != nil {
		log.Printf("[WINNERS] list failed: %v", err)
		return errorJSON(c, err)
	}
	return c.JSON(winners)
}

type createOverrideRequest struct {
	TournamentNumber int    `json:"tournament_number"`
	PlayerID         string `json:"player_id"`
	Note             string `json:"note,omitempty"`
}

// CreateOverrideEndpoint handles POST /admin/winner-overrides. Staff only;
// the capability check lives in middleware, not in scoring logic.
func (s *WinnerService) CreateOverrideEndpoint(c *fiber.Ctx) error {
	if !middleware.HasRole(c, models.RoleStaff) {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "staff role required"})
	}

	var req createOverrideRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "invalid JSON", "details": err.Error()})
	}
	if req.TournamentNumber <= 0 || req.PlayerID == "" {
		return c.Status(400).JSON(fiber.Map{"error": "tournament_number and player_id are required"})
	}

	player, err := s.Store.GetPlayer(c.UserContext(), req.PlayerID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return c.Status(400).JSON(fiber.Map{"error": "player_id not found"})
		}
		log.Printf("[WINNERS] load player %s failed: %v", req.PlayerID, err)
		return errorJSON(c, err)
	}

	createdBy, _ := c.Locals("user_id").(string)
	o := &models.WinnerOverride{
		ID:               uuid.NewString(),
		TournamentNumber: req.TournamentNumber,
		PlayerID:         player.ID,
		PlayerName:       player.Name,
		Note:             req.Note,
		CreatedByID:      createdBy,
	}
	if err := s.Store.CreateWinnerOverride(c.UserContext(), o); err != nil {
		if errors.Is(err, repositories.ErrDuplicate) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "override already exists for this tournament number"})
		}
		log.Printf("[WINNERS] create override for tournament %d failed: %v", req.TournamentNumber, err)
		return errorJSON(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(o)
}
