package services

import (
	"context"
	"errors"
	"log"
	"sort"

	"poker-league-system/repositories"

	"github.com/gofiber/fiber/v2"
)

// RankingEntry is one row of a tournament's standings.
type RankingEntry struct {
	PlayerID    string `json:"player_id"`
	PlayerName  string `json:"player_name,omitempty"`
	TotalPoints int    `json:"total_points"`
	DatesPlayed int    `json:"dates_played"`
	Rank        int    `json:"rank"`
}

// RankingService aggregates elimination records into tournament standings.
// Read-only: safe to call concurrently with each other and with writes;
// a ranking computed mid-session simply reflects the session so far.
type RankingService struct {
	Store  repositories.LeagueStore
	Points *PointsCalculator
}

func NewRankingService(store repositories.LeagueStore, points *PointsCalculator) *RankingService {
	return &RankingService{Store: store, Points: points}
}

// CalculateTournamentRanking sums each player's points across all of the
// tournament's game dates and orders the result.
//
// Dates that are decided but missing their winner row (records == roster
// minus one and position 1 unclaimed) impute the lone unrecorded roster
// member as session winner with the position-1 award; scorekeepers rarely
// bother recording the survivor explicitly.
//
// Tie-break: total points descending, then player ID ascending. Stable
// across calls given the same data.
func (s *RankingService) CalculateTournamentRanking(ctx context.Context, tournamentID string) ([]RankingEntry, error) {
	t, err := s.Store.GetTournamentByID(ctx, tournamentID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrTournamentNotFound
		}
		return nil, err
	}

	dates, err := s.Store.ListGameDatesByTournament(ctx, t.ID)
	if err != nil {
		return nil, err
	}

	totals := make(map[string]*RankingEntry)
	add := func(playerID string, points int) {
		e, ok := totals[playerID]
		if !ok {
			e = &RankingEntry{PlayerID: playerID}
			totals[playerID] = e
		}
		e.TotalPoints += points
		e.DatesPlayed++
	}

	anyRecords := false
	for _, d := range dates {
		recs, err := s.Store.ListRecordsByGameDate(ctx, d.ID)
		if err != nil {
			return nil, err
		}
		if len(recs) == 0 {
			continue
		}
		anyRecords = true
		recorded := make(map[string]bool, len(recs))
		winnerRecorded := false
		for _, r := range recs {
			add(r.PlayerID, r.Points)
			recorded[r.PlayerID] = true
			if r.Position == 1 {
				winnerRecorded = true
			}
		}
		// Impute only when position 1 itself is the missing row; a date
		// with an explicit winner record and some other position absent
		// is just incomplete, not a decided-but-unrecorded win.
		roster := d.RosterSize()
		if roster > 0 && len(recs) == roster-1 && !winnerRecorded {
			for _, p := range d.Players {
				if !recorded[p.ID] {
					add(p.ID, s.Points.Points(1, roster))
					break
				}
			}
		}
	}
	if !anyRecords {
		return nil, ErrNoCompletedDates
	}

	entries := make([]RankingEntry, 0, len(totals))
	for _, e := range totals {
		entries = append(entries, *e)
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].TotalPoints != entries[j].TotalPoints {
			return entries[i].TotalPoints > entries[j].TotalPoints
		}
		return entries[i].PlayerID < entries[j].PlayerID
	})
	for i := range entries {
		entries[i].Rank = i + 1
		if p, err := s.Store.GetPlayer(ctx, entries[i].PlayerID); err == nil {
			entries[i].PlayerName = p.Name
		}
	}
	return entries, nil
}

// --- Transport ---

// RankingEndpoint handles GET /tournaments/:id/ranking.
func (s *RankingService) RankingEndpoint(c *fiber.Ctx) error {
	tournamentID := c.Params("id")
	entries, err := s.CalculateTournamentRanking(c.UserContext(), tournamentID)
	if err != nil {
		log.Printf("[RANKING] tournament %s: %v", tournamentID, err)
		return errorJSON(c, err)
	}
	return c.JSON(entries)
}
