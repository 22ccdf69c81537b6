package services

import (
	"errors"
	"log"
	"strconv"
	"time"

	"poker-league-system/middleware"
	"poker-league-system/models"
	"poker-league-system/repositories"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// TournamentService is the lifecycle authority: it owns tournament and
// game-date creation and every status transition. The elimination
// recorder only ever reads what this service (and the scheduler) decide.
type TournamentService struct {
	Store repositories.LeagueStore
}

func NewTournamentService(store repositories.LeagueStore) *TournamentService {
	return &TournamentService{Store: store}
}

// Allowed lifecycle transitions. Anything not listed is rejected.
var tournamentTransitions = map[string]string{
	models.TournamentStatusUpcoming: models.TournamentStatusActive,
	models.TournamentStatusActive:   models.TournamentStatusFinished,
}

var gameDateTransitions = map[string]string{
	models.GameDateStatusConfigured: models.GameDateStatusInProgress,
	models.GameDateStatusInProgress: models.GameDateStatusCompleted,
}

// CreateTournament handles POST /admin/tournaments. The sequence number
// is assigned automatically, one past the highest existing number.
func (s *TournamentService) CreateTournament(c *fiber.Ctx) error {
	if !middleware.HasRole(c, models.RoleStaff) {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "staff role required"})
	}

	var req struct {
		Name      string `json:"name"`
		StartTime string `json:"start_time"`
		EndTime   string `json:"end_time,omitempty"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "invalid JSON", "details": err.Error()})
	}
	if req.Name == "" || req.StartTime == "" {
		return c.Status(400).JSON(fiber.Map{"error": "name and start_time are required"})
	}
	startTime, err := time.Parse(time.RFC3339, req.StartTime)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "invalid start_time (use RFC3339)"})
	}
	var endTime time.Time
	if req.EndTime != "" {
		endTime, err = time.Parse(time.RFC3339, req.EndTime)
		if err != nil {
			return c.Status(400).JSON(fiber.Map{"error": "invalid end_time (use RFC3339)"})
		}
	}

	number, err := s.Store.NextTournamentNumber(c.UserContext())
	if err != nil {
		log.Printf("[TOURNAMENT] next number failed: %v", err)
		return errorJSON(c, err)
	}
	t := &models.Tournament{
		ID:        uuid.NewString(),
		Number:    number,
		Name:      req.Name,
		Status:    models.TournamentStatusUpcoming,
		StartTime: startTime,
		EndTime:   endTime,
	}
	if err := s.Store.CreateTournament(c.UserContext(), t); err != nil {
		log.Printf("[TOURNAMENT] create %q (number %d) failed: %v", req.Name, number, err)
		return errorJSON(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(t)
}

// ListTournaments handles GET /tournaments.
func (s *TournamentService) ListTournaments(c *fiber.Ctx) error {
	ts, err := s.Store.ListTournaments(c.UserContext())
	if err != nil {
		log.Printf("[TOURNAMENT] list failed: %v", err)
		return errorJSON(c, err)
	}
	return c.JSON(ts)
}

// GetTournamentByID handles GET /tournaments/:id, game dates included.
func (s *TournamentService) GetTournamentByID(c *fiber.Ctx) error {
	t, err := s.Store.GetTournamentByID(c.UserContext(), c.Params("id"))
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return errorJSON(c, ErrTournamentNotFound)
		}
		log.Printf("[TOURNAMENT] get %s failed: %v", c.Params("id"), err)
		return errorJSON(c, err)
	}
	return c.JSON(t)
}

// GetTournamentByNumber handles GET /tournaments/number/:number.
func (s *TournamentService) GetTournamentByNumber(c *fiber.Ctx) error {
	number, err := strconv.Atoi(c.Params("number"))
	if err != nil || number <= 0 {
		return c.Status(400).JSON(fiber.Map{"error": "tournament number must be a positive integer"})
	}
	t, err := s.Store.GetTournamentByNumber(c.UserContext(), number)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return errorJSON(c, ErrTournamentNotFound)
		}
		log.Printf("[TOURNAMENT] get number %d failed: %v", number, err)
		return errorJSON(c, err)
	}
	return c.JSON(t)
}

// UpdateTournamentStatus handles PATCH /admin/tournaments/:id/status.
// Only the forward transitions upcoming→active→finished are allowed.
func (s *TournamentService) UpdateTournamentStatus(c *fiber.Ctx) error {
	if !middleware.HasRole(c, models.RoleStaff) {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "staff role required"})
	}

	var req struct {
		Status string `json:"status"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "invalid JSON"})
	}

	t, err := s.Store.GetTournamentByID(c.UserContext(), c.Params("id"))
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return errorJSON(c, ErrTournamentNotFound)
		}
		log.Printf("[TOURNAMENT] get %s failed: %v", c.Params("id"), err)
		return errorJSON(c, err)
	}
	if tournamentTransitions[t.Status] != req.Status {
		return c.Status(400).JSON(fiber.Map{
			"error": "invalid status transition from " + t.Status + " to " + req.Status,
		})
	}
	if err := s.Store.UpdateTournamentStatus(c.UserContext(), t.ID, req.Status); err != nil {
		log.Printf("[TOURNAMENT] update status of %s to %s failed: %v", t.ID, req.Status, err)
		return errorJSON(c, err)
	}
	t.Status = req.Status
	return c.JSON(t)
}

// CreateGameDate handles POST /admin/tournaments/:id/dates. The date
// number is sequential within the tournament; the roster stays empty
// until the date is configured.
func (s *TournamentService) CreateGameDate(c *fiber.Ctx) error {
	if !middleware.HasRole(c, models.RoleStaff) {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "staff role required"})
	}

	var req struct {
		ScheduledDate string `json:"scheduled_date"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "invalid JSON"})
	}
	scheduled, err := time.Parse(time.RFC3339, req.ScheduledDate)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "invalid scheduled_date (use RFC3339)"})
	}

	t, err := s.Store.GetTournamentByID(c.UserContext(), c.Params("id"))
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return errorJSON(c, ErrTournamentNotFound)
		}
		log.Printf("[TOURNAMENT] get %s failed: %v", c.Params("id"), err)
		return errorJSON(c, err)
	}

	d := &models.GameDate{
		ID:            uuid.NewString(),
		TournamentID:  t.ID,
		DateNumber:    len(t.GameDates) + 1,
		ScheduledDate: scheduled,
		Status:        models.GameDateStatusPending,
	}
	if err := s.Store.CreateGameDate(c.UserContext(), d); err != nil {
		log.Printf("[TOURNAMENT] create game date %d for tournament %s failed: %v", d.DateNumber, t.ID, err)
		return errorJSON(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(d)
}

// GetGameDate handles GET /game-dates/:id, roster and records included.
func (s *TournamentService) GetGameDate(c *fiber.Ctx) error {
	d, err := s.Store.GetGameDate(c.UserContext(), c.Params("id"))
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return c.Status(404).JSON(fiber.Map{"error": "game date not found"})
		}
		log.Printf("[TOURNAMENT] get game date %s failed: %v", c.Params("id"), err)
		return errorJSON(c, err)
	}
	recs, err := s.Store.ListRecordsByGameDate(c.UserContext(), d.ID)
	if err != nil {
		log.Printf("[TOURNAMENT] list records for game date %s failed: %v", d.ID, err)
		return errorJSON(c, err)
	}
	d.Records = recs
	return c.JSON(d)
}

// ConfigureGameDate handles POST /admin/game-dates/:id/configure: fixes
// the roster. Allowed while pending or still configured (re-seating
// before the night starts); once in progress the roster is frozen.
func (s *TournamentService) ConfigureGameDate(c *fiber.Ctx) error {
	if !middleware.HasRole(c, models.RoleStaff) {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "staff role required"})
	}

	var req struct {
		PlayerIDs []string `json:"player_ids"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "invalid JSON"})
	}
	if len(req.PlayerIDs) < 2 {
		return c.Status(400).JSON(fiber.Map{"error": "a roster needs at least 2 players"})
	}
	seenIDs := make(map[string]bool, len(req.PlayerIDs))
	for _, id := range req.PlayerIDs {
		if seenIDs[id] {
			return c.Status(400).JSON(fiber.Map{"error": "duplicate player in roster: " + id})
		}
		seenIDs[id] = true
	}

	d, err := s.Store.GetGameDate(c.UserContext(), c.Params("id"))
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return c.Status(404).JSON(fiber.Map{"error": "game date not found"})
		}
		log.Printf("[TOURNAMENT] get game date %s failed: %v", c.Params("id"), err)
		return errorJSON(c, err)
	}
	if d.Status != models.GameDateStatusPending && d.Status != models.GameDateStatusConfigured {
		return c.Status(400).JSON(fiber.Map{"error": "roster can only be configured before the date starts"})
	}

	if err := s.Store.SetGameDateRoster(c.UserContext(), d.ID, req.PlayerIDs); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return c.Status(400).JSON(fiber.Map{"error": "one or more player_ids not found"})
		}
		log.Printf("[TOURNAMENT] set roster for game date %s failed: %v", d.ID, err)
		return errorJSON(c, err)
	}
	if err := s.Store.UpdateGameDateStatus(c.UserContext(), d.ID, models.GameDateStatusConfigured); err != nil {
		log.Printf("[TOURNAMENT] mark game date %s configured failed: %v", d.ID, err)
		return errorJSON(c, err)
	}
	log.Printf("[TOURNAMENT] game date %s configured with %d players", d.ID, len(req.PlayerIDs))
	return c.JSON(fiber.Map{"id": d.ID, "status": models.GameDateStatusConfigured, "roster_size": len(req.PlayerIDs)})
}

// StartGameDate handles POST /admin/game-dates/:id/start.
func (s *TournamentService) StartGameDate(c *fiber.Ctx) error {
	return s.transitionGameDate(c, models.GameDateStatusInProgress)
}

// CompleteGameDate handles POST /admin/game-dates/:id/complete.
func (s *TournamentService) CompleteGameDate(c *fiber.Ctx) error {
	return s.transitionGameDate(c, models.GameDateStatusCompleted)
}

func (s *TournamentService) transitionGameDate(c *fiber.Ctx, target string) error {
	if !middleware.HasRole(c, models.RoleStaff) {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "staff role required"})
	}

	d, err := s.Store.GetGameDate(c.UserContext(), c.Params("id"))
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return c.Status(404).JSON(fiber.Map{"error": "game date not found"})
		}
		log.Printf("[TOURNAMENT] get game date %s failed: %v", c.Params("id"), err)
		return errorJSON(c, err)
	}
	if gameDateTransitions[d.Status] != target {
		return c.Status(400).JSON(fiber.Map{
			"error": "invalid status transition from " + d.Status + " to " + target,
		})
	}
	if err := s.Store.UpdateGameDateStatus(c.UserContext(), d.ID, target); err != nil {
		log.Printf("[TOURNAMENT] transition game date %s to %s failed: %v", d.ID, target, err)
		return errorJSON(c, err)
	}
	log.Printf("[TOURNAMENT] game date %s is now %s", d.ID, target)
	return c.JSON(fiber.Map{"id": d.ID, "status": target})
}
