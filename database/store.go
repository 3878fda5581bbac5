// database/store.go - GORM-backed auction store
package database

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/ShrijaySharma/Ezauction/auction"
	"github.com/ShrijaySharma/Ezauction/models"
)

// Store adapts a gorm handle to the auction.Store interface. Transact
// returns a Store bound to the transaction handle so every read inside
// the callback sees the transaction's snapshot.
type Store struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

var _ auction.Store = (*Store)(nil)

func (s *Store) State(ctx context.Context) (*models.AuctionState, error) {
	var state models.AuctionState
	err := s.db.WithContext(ctx).First(&state, models.AuctionStateID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		state = *models.NewAuctionState()
		if err := s.db.WithContext(ctx).Create(&state).Error; err != nil {
			return nil, fmt.Errorf("create auction state: %w", err)
		}
		return &state, nil
	}
	if err != nil {
		return nil, err
	}
	return &state, nil
}

func (s *Store) SaveState(ctx context.Context, state *models.AuctionState) error {
	return s.db.WithContext(ctx).Save(state).Error
}

func (s *Store) Player(ctx context.Context, id uint) (*models.Player, error) {
	var player models.Player
	err := s.db.WithContext(ctx).First(&player, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, &auction.NotFoundError{Entity: "Player"}
	}
	if err != nil {
		return nil, err
	}
	return &player, nil
}

func (s *Store) SavePlayer(ctx context.Context, p *models.Player) error {
	return s.db.WithContext(ctx).Save(p).Error
}

func (s *Store) DeletePlayer(ctx context.Context, id uint) error {
	return s.db.WithContext(ctx).Delete(&models.Player{}, id).Error
}

func (s *Store) Players(ctx context.Context) ([]models.Player, error) {
	var players []models.Player
	err := s.db.WithContext(ctx).
		Order("serial_number ASC NULLS LAST, id ASC").
		Find(&players).Error
	return players, err
}

func (s *Store) PlayersByStatus(ctx context.Context, statuses ...string) ([]models.Player, error) {
	var players []models.Player
	err := s.db.WithContext(ctx).
		Where("status IN ?", statuses).
		Order("serial_number ASC NULLS LAST, id ASC").
		Find(&players).Error
	return players, err
}

func (s *Store) PlayersSoldTo(ctx context.Context, teamID uint) ([]models.Player, error) {
	var players []models.Player
	err := s.db.WithContext(ctx).
		Where("status = ? AND sold_to_team = ?", models.PlayerSold, teamID).
		Order("serial_number ASC NULLS LAST, id ASC").
		Find(&players).Error
	return players, err
}

func (s *Store) CountByStatus(ctx context.Context, status string) (int, error) {
	var count int64
	err := s.db.WithContext(ctx).
		Model(&models.Player{}).
		Where("status = ?", status).
		Count(&count).Error
	return int(count), err
}

func (s *Store) SoldCount(ctx context.Context, teamID uint) (int, error) {
	var count int64
	err := s.db.WithContext(ctx).
		Model(&models.Player{}).
		Where("status = ? AND sold_to_team = ?", models.PlayerSold, teamID).
		Count(&count).Error
	return int(count), err
}

func (s *Store) SerialTaken(ctx context.Context, serial int, excludeID uint) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).
		Model(&models.Player{}).
		Where("serial_number = ? AND id <> ?", serial, excludeID).
		Count(&count).Error
	return count > 0, err
}

func (s *Store) PlayersInSerialRange(ctx context.Context, r auction.SerialRange) ([]models.Player, error) {
	q := s.db.WithContext(ctx).Where("serial_number IS NOT NULL")
	if r.Min != nil {
		if r.MinInclusive {
			q = q.Where("serial_number >= ?", *r.Min)
		} else {
			q = q.Where("serial_number > ?", *r.Min)
		}
	}
	if r.Max != nil {
		if r.MaxInclusive {
			q = q.Where("serial_number <= ?", *r.Max)
		} else {
			q = q.Where("serial_number < ?", *r.Max)
		}
	}
	if r.ExcludeID != 0 {
		q = q.Where("id <> ?", r.ExcludeID)
	}

	var players []models.Player
	err := q.Order("serial_number ASC").Find(&players).Error
	return players, err
}

func (s *Store) UpdateSerials(ctx context.Context, updates []auction.SerialUpdate) error {
	for _, u := range updates {
		err := s.db.WithContext(ctx).
			Model(&models.Player{}).
			Where("id = ?", u.PlayerID).
			Update("serial_number", u.SerialNumber).Error
		if err != nil {
			return err
		}
	}
	return nil
}

func (s *Store) DeleteAllPlayers(ctx context.Context) error {
	return s.db.WithContext(ctx).Where("id <> 0").Delete(&models.Player{}).Error
}

func (s *Store) Team(ctx context.Context, id uint) (*models.Team, error) {
	var team models.Team
	err := s.db.WithContext(ctx).First(&team, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, &auction.NotFoundError{Entity: "Team"}
	}
	if err != nil {
		return nil, err
	}
	return &team, nil
}

func (s *Store) Teams(ctx context.Context) ([]models.Team, error) {
	var teams []models.Team
	err := s.db.WithContext(ctx).Order("id ASC").Find(&teams).Error
	return teams, err
}

func (s *Store) SaveTeam(ctx context.Context, t *models.Team) error {
	return s.db.WithContext(ctx).Save(t).Error
}

func (s *Store) HighestBid(ctx context.Context, playerID uint) (*models.Bid, error) {
	var bids []models.Bid
	err := s.db.WithContext(ctx).
		Where("player_id = ?", playerID).
		Order("amount DESC").
		Order("timestamp DESC").
		Limit(1).
		Find(&bids).Error
	if err != nil || len(bids) == 0 {
		return nil, err
	}
	return &bids[0], nil
}

func (s *Store) LatestBid(ctx context.Context, playerID uint) (*models.Bid, error) {
	var bids []models.Bid
	err := s.db.WithContext(ctx).
		Where("player_id = ?", playerID).
		Order("timestamp DESC").
		Order("id DESC").
		Limit(1).
		Find(&bids).Error
	if err != nil || len(bids) == 0 {
		return nil, err
	}
	return &bids[0], nil
}

func (s *Store) TopBids(ctx context.Context, playerID uint, limit int) ([]models.Bid, error) {
	var bids []models.Bid
	err := s.db.WithContext(ctx).
		Where("player_id = ?", playerID).
		Order("amount DESC").
		Order("timestamp DESC").
		Limit(limit).
		Find(&bids).Error
	return bids, err
}

func (s *Store) BidsForPlayer(ctx context.Context, playerID uint) ([]models.Bid, error) {
	var bids []models.Bid
	err := s.db.WithContext(ctx).
		Where("player_id = ?", playerID).
		Order("amount DESC").
		Order("timestamp DESC").
		Find(&bids).Error
	return bids, err
}

func (s *Store) RecentBids(ctx context.Context, limit int) ([]models.Bid, error) {
	var bids []models.Bid
	err := s.db.WithContext(ctx).
		Order("timestamp DESC").
		Order("id DESC").
		Limit(limit).
		Find(&bids).Error
	return bids, err
}

func (s *Store) CreateBid(ctx context.Context, b *models.Bid) error {
	return s.db.WithContext(ctx).Create(b).Error
}

func (s *Store) DeleteBid(ctx context.Context, id uint) error {
	return s.db.WithContext(ctx).Delete(&models.Bid{}, id).Error
}

func (s *Store) DeleteBidsForPlayer(ctx context.Context, playerID uint) error {
	return s.db.WithContext(ctx).
		Where("player_id = ?", playerID).
		Delete(&models.Bid{}).Error
}

func (s *Store) DeleteAllBids(ctx context.Context) error {
	return s.db.WithContext(ctx).Where("id <> 0").Delete(&models.Bid{}).Error
}

func (s *Store) BidCountForTeam(ctx context.Context, teamID uint) (int, error) {
	var count int64
	err := s.db.WithContext(ctx).
		Model(&models.Bid{}).
		Where("team_id = ?", teamID).
		Count(&count).Error
	return int(count), err
}

// Transact runs fn inside a database transaction. The callback gets a
// Store bound to the tx handle; returning an error rolls back.
func (s *Store) Transact(ctx context.Context, fn func(auction.Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&Store{db: tx})
	})
}
