// auction/events.go - broadcast events emitted by the engine
package auction

import "github.com/ShrijaySharma/Ezauction/models"

// Event names. Fire-and-forget: there is no acknowledgment contract,
// clients reconcile via the snapshot endpoints.
const (
	EventPlayerLoaded          = "player-loaded"
	EventBidPlaced             = "bid-placed"
	EventBidUpdated            = "bid-updated"
	EventBiddingReset          = "bidding-reset"
	EventPlayerMarked          = "player-marked"
	EventTeamBudgetUpdated     = "team-budget-updated"
	EventAuctionStatusChanged  = "auction-status-changed"
	EventBiddingLocked         = "bidding-locked"
	EventAllPlayersDeleted     = "all-players-deleted"
	EventMaxPlayersChanged     = "max-players-changed"
	EventBidIncrementsChanged  = "bid-increments-changed"
	EventEnforceMaxBidChanged  = "enforce-max-bid-changed"
	EventPlayerAdded           = "player-added"
	EventPlayerUpdated         = "player-updated"
	EventPlayerDeleted         = "player-deleted"
	EventTeamAdded             = "team-added"
	EventTeamUpdated           = "team-updated"
	EventTeamDeleted           = "team-deleted"
	EventTeamBiddingLocked     = "team-bidding-locked"
	EventPlayerRemovedFromTeam = "player-removed-from-team"
)

// Broadcaster fans an event out to every connected client. The
// realtime hub implements it; tests use a recorder.
type Broadcaster interface {
	Emit(event string, payload any)
}

// NopBroadcaster discards all events.
type NopBroadcaster struct{}

func (NopBroadcaster) Emit(string, any) {}

// Event pairs a name with its payload, used when replaying the current
// state to a freshly connected client.
type Event struct {
	Type    string `json:"type"`
	Payload any    `json:"payload"`
}

// BidWithTeam is a bid flattened with its team name for display.
type BidWithTeam struct {
	models.Bid
	TeamName string `json:"team_name"`
}

type PlayerLoadedPayload struct {
	Player *models.Player `json:"player"`
}

type BidPlacedPayload struct {
	Bid         *BidWithTeam `json:"bid"`
	PlayerID    uint         `json:"playerId"`
	PreviousBid float64      `json:"previousBid"`
	Increment   float64      `json:"increment"`
}

type BidUpdatedPayload struct {
	HighestBid  *BidWithTeam `json:"highestBid"`
	PlayerID    uint         `json:"playerId"`
	PreviousBid *float64     `json:"previousBid,omitempty"`
}

type BiddingResetPayload struct {
	PlayerID uint `json:"playerId"`
}

type PlayerMarkedPayload struct {
	PlayerID   uint     `json:"playerId"`
	Status     string   `json:"status,omitempty"`
	SoldPrice  *float64 `json:"soldPrice"`
	SoldToTeam *uint    `json:"soldToTeam"`
}

type TeamBudgetUpdatedPayload struct {
	TeamID uint     `json:"teamId"`
	Budget *float64 `json:"budget,omitempty"`
}

type AuctionStatusPayload struct {
	Status string `json:"status"`
}

type BiddingLockedPayload struct {
	Locked bool `json:"locked"`
}

type MaxPlayersPayload struct {
	MaxPlayersPerTeam int `json:"maxPlayersPerTeam"`
}

type BidIncrementsPayload struct {
	Increment1 float64 `json:"increment1"`
	Increment2 float64 `json:"increment2"`
}

type EnforceMaxBidPayload struct {
	EnforceMaxBid bool `json:"enforceMaxBid"`
}

type PlayerPayload struct {
	Player *models.Player `json:"player"`
}

type PlayerDeletedPayload struct {
	PlayerID uint `json:"playerId"`
}

type TeamPayload struct {
	Team *models.Team `json:"team"`
}

type TeamDeletedPayload struct {
	TeamID uint `json:"teamId"`
}

type TeamBiddingLockedPayload struct {
	TeamID uint `json:"teamId"`
	Locked bool `json:"locked"`
}

type PlayerRemovedPayload struct {
	PlayerID uint           `json:"playerId"`
	TeamID   uint           `json:"teamId"`
	Player   *models.Player `json:"player"`
}
