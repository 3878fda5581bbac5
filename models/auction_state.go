// models/auction_state.go
package models

import "time"

// Auction-wide status.
const (
	AuctionStopped = "STOPPED"
	AuctionLive    = "LIVE"
	AuctionPaused  = "PAUSED"
)

// AuctionStateID is the fixed primary key of the singleton state row.
const AuctionStateID uint = 1

// Defaults applied when the singleton row is created lazily.
const (
	DefaultBidIncrement1     = 500
	DefaultBidIncrement2     = 1000
	DefaultMaxPlayersPerTeam = 10
)

// AuctionState is the singleton row (id=1) driving the whole auction.
// It is created lazily on first read and mutated in place for the life
// of the auction. BiddingLocked is the global override; teams carry
// their own per-team lock.
type AuctionState struct {
	ID                uint      `json:"id" gorm:"primaryKey"`
	Status            string    `json:"status" gorm:"not null;default:'STOPPED';size:20"`
	CurrentPlayerID   *uint     `json:"current_player_id"`
	BiddingLocked     bool      `json:"bidding_locked" gorm:"default:false"`
	BidIncrement1     float64   `json:"bid_increment_1" gorm:"default:500"`
	BidIncrement2     float64   `json:"bid_increment_2" gorm:"default:1000"`
	MaxPlayersPerTeam int       `json:"max_players_per_team" gorm:"default:10"`
	EnforceMaxBid     bool      `json:"enforce_max_bid" gorm:"default:false"`
	UpdatedAt         time.Time `json:"updated_at"`
}

func (AuctionState) TableName() string {
	return "auction_state"
}

// NewAuctionState returns the default singleton row.
func NewAuctionState() *AuctionState {
	return &AuctionState{
		ID:                AuctionStateID,
		Status:            AuctionStopped,
		BidIncrement1:     DefaultBidIncrement1,
		BidIncrement2:     DefaultBidIncrement2,
		MaxPlayersPerTeam: DefaultMaxPlayersPerTeam,
	}
}
