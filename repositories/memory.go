package repositories

import (
	"context"
	"sort"
	"strings"
	"sync"

	"poker-league-system/models"
)

// MemoryStore is an in-memory LeagueStore used by tests. A single mutex
// serializes writes, which also gives WithGameDate the same per-date
// serialization the gorm store gets from row locking.
type MemoryStore struct {
	mu          sync.Mutex
	tournaments map[string]*models.Tournament
	gameDates   map[string]*models.GameDate
	records     map[string][]models.EliminationRecord // keyed by game date ID
	players     map[string]*models.Player
	overrides   map[int]*models.WinnerOverride
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		tournaments: make(map[string]*models.Tournament),
		gameDates:   make(map[string]*models.GameDate),
		records:     make(map[string][]models.EliminationRecord),
		players:     make(map[string]*models.Player),
		overrides:   make(map[int]*models.WinnerOverride),
	}
}

// --- Tournaments ---

func (s *MemoryStore) CreateTournament(ctx context.Context, t *models.Tournament) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.tournaments {
		if existing.Number == t.Number {
			return ErrDuplicate
		}
	}
	cp := *t
	s.tournaments[t.ID] = &cp
	return nil
}

func (s *MemoryStore) GetTournamentByID(ctx context.Context, id string) (*models.Tournament, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.tournaments[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *t
	cp.GameDates = s.datesForTournamentLocked(id)
	return &cp, nil
}

func (s *MemoryStore) GetTournamentByNumber(ctx context.Context, number int) (*models.Tournament, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, t := range s.tournaments {
		if t.Number == number {
			cp := *t
			cp.GameDates = s.datesForTournamentLocked(t.ID)
			return &cp, nil
		}
	}
	return nil, ErrNotFound
}

func (s *MemoryStore) ListTournaments(ctx context.Context) ([]models.Tournament, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var ts []models.Tournament
	for _, t := range s.tournaments {
		ts = append(ts, *t)
	}
	sort.Slice(ts, func(i, j int) bool { return ts[i].Number < ts[j].Number })
	return ts, nil
}

func (s *MemoryStore) ListTournamentsByStatus(ctx context.Context, status string) ([]models.Tournament, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var ts []models.Tournament
	for _, t := range s.tournaments {
		if t.Status == status {
			ts = append(ts, *t)
		}
	}
	sort.Slice(ts, func(i, j int) bool { return ts[i].Number < ts[j].Number })
	return ts, nil
}

func (s *MemoryStore) UpdateTournamentStatus(ctx context.Context, id, status string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.tournaments[id]
	if !ok {
		return ErrNotFound
	}
	t.Status = status
	return nil
}

func (s *MemoryStore) NextTournamentNumber(ctx context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	max := 0
	for _, t := range s.tournaments {
		if t.Number > max {
			max = t.Number
		}
	}
	return max + 1, nil
}

func (s *MemoryStore) datesForTournamentLocked(tournamentID string) []models.GameDate {
	var ds []models.GameDate
	for _, d := range s.gameDates {
		if d.TournamentID == tournamentID {
			ds = append(ds, *d)
		}
	}
	sort.Slice(ds, func(i, j int) bool { return ds[i].DateNumber < ds[j].DateNumber })
	return ds
}

// --- Game dates ---

func (s *MemoryStore) CreateGameDate(ctx context.Context, d *models.GameDate) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *d
	s.gameDates[d.ID] = &cp
	return nil
}

func (s *MemoryStore) GetGameDate(ctx context.Context, id string) (*models.GameDate, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	d, ok := s.gameDates[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *d
	cp.Players = append([]models.Player(nil), d.Players...)
	return &cp, nil
}

func (s *MemoryStore) ListGameDatesByTournament(ctx context.Context, tournamentID string) ([]models.GameDate, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ds := s.datesForTournamentLocked(tournamentID)
	return ds, nil
}

func (s *MemoryStore) UpdateGameDateStatus(ctx context.Context, id, status string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	d, ok := s.gameDates[id]
	if !ok {
		return ErrNotFound
	}
	d.Status = status
	return nil
}

func (s *MemoryStore) SetGameDateRoster(ctx context.Context, id string, playerIDs []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	d, ok := s.gameDates[id]
	if !ok {
		return ErrNotFound
	}
	roster := make([]models.Player, 0, len(playerIDs))
	for _, pid := range playerIDs {
		p, ok := s.players[pid]
		if !ok {
			return ErrNotFound
		}
		roster = append(roster, *p)
	}
	d.Players = roster
	return nil
}

// --- Elimination records ---

type memoryGameDateScope struct {
	store *MemoryStore
	date  *models.GameDate
}

func (m *memoryGameDateScope) GameDate() *models.GameDate {
	return m.date
}

func (m *memoryGameDateScope) Records() ([]models.EliminationRecord, error) {
	recs := append([]models.EliminationRecord(nil), m.store.records[m.date.ID]...)
	sort.Slice(recs, func(i, j int) bool { return recs[i].Position < recs[j].Position })
	return recs, nil
}

func (m *memoryGameDateScope) CreateRecord(rec *models.EliminationRecord) error {
	for _, r := range m.store.records[m.date.ID] {
		if r.PlayerID == rec.PlayerID || r.Position == rec.Position {
			return ErrDuplicate
		}
	}
	m.store.records[m.date.ID] = append(m.store.records[m.date.ID], *rec)
	return nil
}

func (s *MemoryStore) WithGameDate(ctx context.Context, gameDateID string, fn func(GameDateScope) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	d, ok := s.gameDates[gameDateID]
	if !ok {
		return ErrNotFound
	}
	cp := *d
	cp.Players = append([]models.Player(nil), d.Players...)
	return fn(&memoryGameDateScope{store: s, date: &cp})
}

func (s *MemoryStore) ListRecordsByGameDate(ctx context.Context, gameDateID string) ([]models.EliminationRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	recs := append([]models.EliminationRecord(nil), s.records[gameDateID]...)
	sort.Slice(recs, func(i, j int) bool { return recs[i].Position < recs[j].Position })
	return recs, nil
}

func (s *MemoryStore) PurgeGameDateRecords(ctx context.Context, gameDateID string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := int64(len(s.records[gameDateID]))
	delete(s.records, gameDateID)
	return n, nil
}

// --- Players ---

func (s *MemoryStore) GetPlayer(ctx context.Context, id string) (*models.Player, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.players[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (s *MemoryStore) ListPlayers(ctx context.Context, query, role string, limit int) ([]models.Player, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var players []models.Player
	q := strings.ToLower(strings.TrimSpace(query))
	for _, p := range s.players {
		if role != "" && p.Role != role {
			continue
		}
		if q != "" && !strings.Contains(strings.ToLower(p.Name), q) &&
			!strings.Contains(strings.ToLower(p.Email), q) {
			continue
		}
		players = append(players, *p)
	}
	sort.Slice(players, func(i, j int) bool { return players[i].Name < players[j].Name })
	if limit > 0 && len(players) > limit {
		players = players[:limit]
	}
	return players, nil
}

func (s *MemoryStore) UpdatePlayerAvatar(ctx context.Context, id, url string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.players[id]
	if !ok {
		return ErrNotFound
	}
	p.AvatarURL = &url
	return nil
}

// AddPlayer seeds a player; test helper, the production mirror is written
// by the sync worker straight through gorm.
func (s *MemoryStore) AddPlayer(p models.Player) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.players[p.ID] = &p
}

// --- Winner overrides ---

func (s *MemoryStore) CreateWinnerOverride(ctx context.Context, o *models.WinnerOverride) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.overrides[o.TournamentNumber]; exists {
		return ErrDuplicate
	}
	cp := *o
	s.overrides[o.TournamentNumber] = &cp
	return nil
}

func (s *MemoryStore) GetWinnerOverride(ctx context.Context, tournamentNumber int) (*models.WinnerOverride, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	o, ok := s.overrides[tournamentNumber]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *o
	return &cp, nil
}

func (s *MemoryStore) ListWinnerOverrides(ctx context.Context) ([]models.WinnerOverride, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var os []models.WinnerOverride
	for _, o := range s.overrides {
		os = append(os, *o)
	}
	sort.Slice(os, func(i, j int) bool { return os[i].TournamentNumber < os[j].TournamentNumber })
	return os, nil
}
