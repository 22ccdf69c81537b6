package repositories

import (
	"context"

	"poker-league-system/models"
)

// GameDateScope is the view of one game date inside the atomic elimination
// unit. Everything done through it happens under the same transaction and
// the same per-date lock, so validation and insert cannot interleave with
// a concurrent recording for the same date.
type GameDateScope interface {
	// GameDate returns the locked date, roster preloaded.
	GameDate() *models.GameDate
	// Records returns the elimination records already on this date.
	Records() ([]models.EliminationRecord, error)
	// CreateRecord inserts a new elimination record on this date.
	CreateRecord(rec *models.EliminationRecord) error
}

// LeagueStore is the persistence boundary for the league. Services receive
// it explicitly; there is no package-level DB handle. The gorm
// implementation backs production, the memory implementation backs tests.
type LeagueStore interface {
	// Tournaments
	CreateTournament(ctx context.Context, t *models.Tournament) error
	GetTournamentByID(ctx context.Context, id string) (*models.Tournament, error)
	GetTournamentByNumber(ctx context.Context, number int) (*models.Tournament, error)
	ListTournaments(ctx context.Context) ([]models.Tournament, error)
	ListTournamentsByStatus(ctx context.Context, status string) ([]models.Tournament, error)
	UpdateTournamentStatus(ctx context.Context, id, status string) error
	NextTournamentNumber(ctx context.Context) (int, error)

	// Game dates
	CreateGameDate(ctx context.Context, d *models.GameDate) error
	GetGameDate(ctx context.Context, id string) (*models.GameDate, error)
	ListGameDatesByTournament(ctx context.Context, tournamentID string) ([]models.GameDate, error)
	UpdateGameDateStatus(ctx context.Context, id, status string) error
	SetGameDateRoster(ctx context.Context, id string, playerIDs []string) error

	// Elimination records. WithGameDate runs fn as a single atomic,
	// serializable unit scoped to the date: concurrent calls for the same
	// date execute one after the other, and a failed fn leaves nothing
	// behind.
	WithGameDate(ctx context.Context, gameDateID string, fn func(GameDateScope) error) error
	ListRecordsByGameDate(ctx context.Context, gameDateID string) ([]models.EliminationRecord, error)
	PurgeGameDateRecords(ctx context.Context, gameDateID string) (int64, error)

	// Players (read-only mirror except the avatar)
	GetPlayer(ctx context.Context, id string) (*models.Player, error)
	ListPlayers(ctx context.Context, query, role string, limit int) ([]models.Player, error)
	UpdatePlayerAvatar(ctx context.Context, id, url string) error

	// Winner overrides
	CreateWinnerOverride(ctx context.Context, o *models.WinnerOverride) error
	GetWinnerOverride(ctx context.Context, tournamentNumber int) (*models.WinnerOverride, error)
	ListWinnerOverrides(ctx context.Context) ([]models.WinnerOverride, error)
}
