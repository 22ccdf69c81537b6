package repositories

import (
	"context"
	"errors"
	"strings"

	"poker-league-system/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormStore is the postgres-backed LeagueStore.
type GormStore struct {
	DB *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{DB: db}
}

func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return ErrDuplicate
	default:
		return err
	}
}

// --- Tournaments ---

func (s *GormStore) CreateTournament(ctx context.Context, t *models.Tournament) error {
	return translate(s.DB.WithContext(ctx).Create(t).Error)
}

func (s *GormStore) GetTournamentByID(ctx context.Context, id string) (*models.Tournament, error) {
	var t models.Tournament
	err := s.DB.WithContext(ctx).Preload("GameDates").First(&t, "id = ?", id).Error
	if err != nil {
		return nil, translate(err)
	}
	return &t, nil
}

func (s *GormStore) GetTournamentByNumber(ctx context.Context, number int) (*models.Tournament, error) {
	var t models.Tournament
	err := s.DB.WithContext(ctx).Preload("GameDates").First(&t, "number = ?", number).Error
	if err != nil {
		return nil, translate(err)
	}
	return &t, nil
}

func (s *GormStore) ListTournaments(ctx context.Context) ([]models.Tournament, error) {
	var ts []models.Tournament
	err := s.DB.WithContext(ctx).Order("number ASC").Find(&ts).Error
	return ts, translate(err)
}

func (s *GormStore) ListTournamentsByStatus(ctx context.Context, status string) ([]models.Tournament, error) {
	var ts []models.Tournament
	err := s.DB.WithContext(ctx).Where("status = ?", status).Order("number ASC").Find(&ts).Error
	return ts, translate(err)
}

func (s *GormStore) UpdateTournamentStatus(ctx context.Context, id, status string) error {
	res := s.DB.WithContext(ctx).Model(&models.Tournament{}).Where("id = ?", id).Update("status", status)
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *GormStore) NextTournamentNumber(ctx context.Context) (int, error) {
	var highest int
	err := s.DB.WithContext(ctx).Model(&models.Tournament{}).
		Select("COALESCE(MAX(number), 0)").Scan(&highest).Error
	if err != nil {
		return 0, translate(err)
	}
	return highest + 1, nil
}

// --- Game dates ---

func (s *GormStore) CreateGameDate(ctx context.Context, d *models.GameDate) error {
	return translate(s.DB.WithContext(ctx).Omit("Players").Create(d).Error)
}

func (s *GormStore) GetGameDate(ctx context.Context, id string) (*models.GameDate, error) {
	var d models.GameDate
	err := s.DB.WithContext(ctx).Preload("Players").First(&d, "id = ?", id).Error
	if err != nil {
		return nil, translate(err)
	}
	return &d, nil
}

func (s *GormStore) ListGameDatesByTournament(ctx context.Context, tournamentID string) ([]models.GameDate, error) {
	var ds []models.GameDate
	err := s.DB.WithContext(ctx).Preload("Players").
		Where("tournament_id = ?", tournamentID).
		Order("date_number ASC").Find(&ds).Error
	return ds, translate(err)
}

func (s *GormStore) UpdateGameDateStatus(ctx context.Context, id, status string) error {
	res := s.DB.WithContext(ctx).Model(&models.GameDate{}).Where("id = ?", id).Update("status", status)
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *GormStore) SetGameDateRoster(ctx context.Context, id string, playerIDs []string) error {
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var d models.GameDate
		if err := tx.First(&d, "id = ?", id).Error; err != nil {
			return translate(err)
		}
		var players []models.Player
		if err := tx.Find(&players, "id IN ?", playerIDs).Error; err != nil {
			return translate(err)
		}
		if len(players) != len(playerIDs) {
			return ErrNotFound
		}
		return tx.Model(&d).Association("Players").Replace(players)
	})
}

// --- Elimination records ---

// gormGameDateScope carries the transaction plus the locked date.
type gormGameDateScope struct {
	tx   *gorm.DB
	date *models.GameDate
}

func (g *gormGameDateScope) GameDate() *models.GameDate {
	return g.date
}

func (g *gormGameDateScope) Records() ([]models.EliminationRecord, error) {
	var recs []models.EliminationRecord
	err := g.tx.Where("game_date_id = ?", g.date.ID).Order("position ASC").Find(&recs).Error
	return recs, translate(err)
}

func (g *gormGameDateScope) CreateRecord(rec *models.EliminationRecord) error {
	return translate(g.tx.Create(rec).Error)
}

// WithGameDate locks the game_dates row (SELECT ... FOR UPDATE) for the
// duration of fn, so all validation reads and the final insert form one
// serializable unit per date. Two devices recording the same date in close
// succession run strictly one after the other.
func (s *GormStore) WithGameDate(ctx context.Context, gameDateID string, fn func(GameDateScope) error) error {
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var date models.GameDate
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&date, "id = ?", gameDateID).Error; err != nil {
			return translate(err)
		}
		// Roster load inside the same transaction. FOR UPDATE cannot be
		// combined with the join preload, so it is a second query.
		if err := tx.Model(&date).Association("Players").Find(&date.Players); err != nil {
			return translate(err)
		}
		return fn(&gormGameDateScope{tx: tx, date: &date})
	})
}

func (s *GormStore) ListRecordsByGameDate(ctx context.Context, gameDateID string) ([]models.EliminationRecord, error) {
	var recs []models.EliminationRecord
	err := s.DB.WithContext(ctx).
		Where("game_date_id = ?", gameDateID).
		Order("position ASC").Find(&recs).Error
	return recs, translate(err)
}

func (s *GormStore) PurgeGameDateRecords(ctx context.Context, gameDateID string) (int64, error) {
	res := s.DB.WithContext(ctx).Where("game_date_id = ?", gameDateID).Delete(&models.EliminationRecord{})
	return res.RowsAffected, translate(res.Error)
}

// --- Players ---

func (s *GormStore) GetPlayer(ctx context.Context, id string) (*models.Player, error) {
	var p models.Player
	err := s.DB.WithContext(ctx).First(&p, "id = ?", id).Error
	if err != nil {
		return nil, translate(err)
	}
	return &p, nil
}

func (s *GormStore) ListPlayers(ctx context.Context, query, role string, limit int) ([]models.Player, error) {
	db := s.DB.WithContext(ctx).Model(&models.Player{}).Limit(limit).Order("name ASC")
	if query != "" {
		term := "%" + strings.ToLower(strings.TrimSpace(query)) + "%"
		db = db.Where("LOWER(name) LIKE ? OR LOWER(email) LIKE ?", term, term)
	}
	if role != "" {
		db = db.Where("role = ?", role)
	}
	var players []models.Player
	err := db.Find(&players).Error
	return players, translate(err)
}

func (s *GormStore) UpdatePlayerAvatar(ctx context.Context, id, url string) error {
	res := s.DB.WithContext(ctx).Model(&models.Player{}).Where("id = ?", id).Update("avatar_url", url)
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// --- Winner overrides ---

func (s *GormStore) CreateWinnerOverride(ctx context.Context, o *models.WinnerOverride) error {
	return translate(s.DB.WithContext(ctx).Create(o).Error)
}

func (s *GormStore) GetWinnerOverride(ctx context.Context, tournamentNumber int) (*models.WinnerOverride, error) {
	var o models.WinnerOverride
	err := s.DB.WithContext(ctx).First(&o, "tournament_number = ?", tournamentNumber).Error
	if err != nil {
		return nil, translate(err)
	}
	return &o, nil
}

func (s *GormStore) ListWinnerOverrides(ctx context.Context) ([]models.WinnerOverride, error) {
	var os []models.WinnerOverride
	err := s.DB.WithContext(ctx).Order("tournament_number ASC").Find(&os).Error
	return os, translate(err)
}
