// auction/memstore.go - in-memory Store for tests and local demos
package auction

import (
	"context"
	"sort"
	"sync"

	"github.com/ShrijaySharma/Ezauction/models"
)

// MemStore keeps the whole auction in maps. It backs the engine tests
// and makes a credentials-free local demo possible. Transact runs the
// callback against the same store without rollback; single-writer use
// only.
type MemStore struct {
	mu      sync.RWMutex
	state   *models.AuctionState
	players map[uint]*models.Player
	teams   map[uint]*models.Team
	bids    map[uint]*models.Bid
	nextID  map[string]uint
}

func NewMemStore() *MemStore {
	return &MemStore{
		players: make(map[uint]*models.Player),
		teams:   make(map[uint]*models.Team),
		bids:    make(map[uint]*models.Bid),
		nextID:  map[string]uint{"player": 1, "team": 1, "bid": 1},
	}
}

func (m *MemStore) allocate(kind string) uint {
	id := m.nextID[kind]
	m.nextID[kind] = id + 1
	return id
}

func (m *MemStore) State(ctx context.Context) (*models.AuctionState, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state == nil {
		m.state = models.NewAuctionState()
	}
	st := *m.state
	return &st, nil
}

func (m *MemStore) SaveState(ctx context.Context, st *models.AuctionState) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *st
	m.state = &cp
	return nil
}

func (m *MemStore) Player(ctx context.Context, id uint) (*models.Player, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	p, ok := m.players[id]
	if !ok {
		return nil, &NotFoundError{Entity: "Player"}
	}
	cp := *p
	return &cp, nil
}

func (m *MemStore) SavePlayer(ctx context.Context, p *models.Player) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if p.ID == 0 {
		p.ID = m.allocate("player")
	}
	cp := *p
	m.players[p.ID] = &cp
	return nil
}

func (m *MemStore) DeletePlayer(ctx context.Context, id uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.players, id)
	return nil
}

func (m *MemStore) Players(ctx context.Context) ([]models.Player, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.collectPlayers(func(*models.Player) bool { return true }), nil
}

func (m *MemStore) PlayersByStatus(ctx context.Context, statuses ...string) ([]models.Player, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.collectPlayers(func(p *models.Player) bool {
		for _, s := range statuses {
			if p.Status == s {
				return true
			}
		}
		return false
	}), nil
}

func (m *MemStore) PlayersSoldTo(ctx context.Context, teamID uint) ([]models.Player, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.collectPlayers(func(p *models.Player) bool {
		return p.Status == models.PlayerSold && p.SoldToTeam != nil && *p.SoldToTeam == teamID
	}), nil
}

func (m *MemStore) CountByStatus(ctx context.Context, status string) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	count := 0
	for _, p := range m.players {
		if p.Status == status {
			count++
		}
	}
	return count, nil
}

func (m *MemStore) SoldCount(ctx context.Context, teamID uint) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	count := 0
	for _, p := range m.players {
		if p.Status == models.PlayerSold && p.SoldToTeam != nil && *p.SoldToTeam == teamID {
			count++
		}
	}
	return count, nil
}

func (m *MemStore) SerialTaken(ctx context.Context, serial int, excludeID uint) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, p := range m.players {
		if p.ID != excludeID && p.SerialNumber != nil && *p.SerialNumber == serial {
			return true, nil
		}
	}
	return false, nil
}

func (m *MemStore) PlayersInSerialRange(ctx context.Context, r SerialRange) ([]models.Player, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.collectPlayers(func(p *models.Player) bool {
		if p.SerialNumber == nil || p.ID == r.ExcludeID {
			return false
		}
		n := *p.SerialNumber
		if r.Min != nil {
			if r.MinInclusive {
				if n < *r.Min {
					return false
				}
			} else if n <= *r.Min {
				return false
			}
		}
		if r.Max != nil {
			if r.MaxInclusive {
				if n > *r.Max {
					return false
				}
			} else if n >= *r.Max {
				return false
			}
		}
		return true
	}), nil
}

func (m *MemStore) UpdateSerials(ctx context.Context, updates []SerialUpdate) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range updates {
		if p, ok := m.players[u.PlayerID]; ok {
			serial := u.SerialNumber
			p.SerialNumber = &serial
		}
	}
	return nil
}

func (m *MemStore) DeleteAllPlayers(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.players = make(map[uint]*models.Player)
	return nil
}

func (m *MemStore) Team(ctx context.Context, id uint) (*models.Team, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	t, ok := m.teams[id]
	if !ok {
		return nil, &NotFoundError{Entity: "Team"}
	}
	cp := *t
	return &cp, nil
}

func (m *MemStore) Teams(ctx context.Context) ([]models.Team, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	ids := make([]uint, 0, len(m.teams))
	for id := range m.teams {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	out := make([]models.Team, 0, len(ids))
	for _, id := range ids {
		out = append(out, *m.teams[id])
	}
	return out, nil
}

func (m *MemStore) SaveTeam(ctx context.Context, t *models.Team) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if t.ID == 0 {
		t.ID = m.allocate("team")
	}
	cp := *t
	m.teams[t.ID] = &cp
	return nil
}

func (m *MemStore) HighestBid(ctx context.Context, playerID uint) (*models.Bid, error) {
	bids, err := m.TopBids(ctx, playerID, 1)
	if err != nil || len(bids) == 0 {
		return nil, err
	}
	return &bids[0], nil
}

func (m *MemStore) LatestBid(ctx context.Context, playerID uint) (*models.Bid, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var latest *models.Bid
	for _, b := range m.bids {
		if b.PlayerID != playerID {
			continue
		}
		if latest == nil || b.Timestamp.After(latest.Timestamp) ||
			(b.Timestamp.Equal(latest.Timestamp) && b.ID > latest.ID) {
			latest = b
		}
	}
	if latest == nil {
		return nil, nil
	}
	cp := *latest
	return &cp, nil
}

func (m *MemStore) TopBids(ctx context.Context, playerID uint, limit int) ([]models.Bid, error) {
	bids, err := m.BidsForPlayer(ctx, playerID)
	if err != nil {
		return nil, err
	}
	if len(bids) > limit {
		bids = bids[:limit]
	}
	return bids, nil
}

func (m *MemStore) BidsForPlayer(ctx context.Context, playerID uint) ([]models.Bid, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]models.Bid, 0)
	for _, b := range m.bids {
		if b.PlayerID == playerID {
			out = append(out, *b)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Amount != out[j].Amount {
			return out[i].Amount > out[j].Amount
		}
		return out[i].Timestamp.After(out[j].Timestamp)
	})
	return out, nil
}

func (m *MemStore) RecentBids(ctx context.Context, limit int) ([]models.Bid, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]models.Bid, 0, len(m.bids))
	for _, b := range m.bids {
		out = append(out, *b)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Timestamp.Equal(out[j].Timestamp) {
			return out[i].Timestamp.After(out[j].Timestamp)
		}
		return out[i].ID > out[j].ID
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *MemStore) CreateBid(ctx context.Context, b *models.Bid) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if b.ID == 0 {
		b.ID = m.allocate("bid")
	}
	cp := *b
	m.bids[b.ID] = &cp
	return nil
}

func (m *MemStore) DeleteBid(ctx context.Context, id uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.bids, id)
	return nil
}

func (m *MemStore) DeleteBidsForPlayer(ctx context.Context, playerID uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for id, b := range m.bids {
		if b.PlayerID == playerID {
			delete(m.bids, id)
		}
	}
	return nil
}

func (m *MemStore) DeleteAllBids(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.bids = make(map[uint]*models.Bid)
	return nil
}

func (m *MemStore) BidCountForTeam(ctx context.Context, teamID uint) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	count := 0
	for _, b := range m.bids {
		if b.TeamID == teamID {
			count++
		}
	}
	return count, nil
}

func (m *MemStore) Transact(ctx context.Context, fn func(Store) error) error {
	return fn(m)
}

// collectPlayers returns matching players in id order. Callers hold
// the read lock.
func (m *MemStore) collectPlayers(match func(*models.Player) bool) []models.Player {
	ids := make([]uint, 0, len(m.players))
	for id, p := range m.players {
		if match(p) {
			ids = append(ids, id)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	out := make([]models.Player, 0, len(ids))
	for _, id := range ids {
		out = append(out, *m.players[id])
	}
	return out
}
