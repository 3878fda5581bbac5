// auction/snapshot.go - read-side views for dashboards and overlays
package auction

import (
	"context"
	"errors"

	"github.com/ShrijaySharma/Ezauction/models"
)

// Increments mirrors the two configured bid increment tiers.
type Increments struct {
	Increment1 float64 `json:"increment1"`
	Increment2 float64 `json:"increment2"`
}

// PlayerStats counts players per status. For the owner view Sold is
// scoped to that owner's team; for the host view it is global.
type PlayerStats struct {
	Sold      int `json:"sold"`
	Unsold    int `json:"unsold"`
	Available int `json:"available"`
}

// OwnerInfo is everything an owner dashboard needs in one round trip:
// the live player, the leading bid, and the owner team's wallet and
// affordability envelope.
type OwnerInfo struct {
	Player              *models.Player `json:"player"`
	HighestBid          *BidWithTeam   `json:"highestBid"`
	CurrentBid          float64        `json:"currentBid"`
	BiddingLocked       bool           `json:"biddingLocked"`
	Status              string         `json:"status"`
	BidIncrements       Increments     `json:"bidIncrements"`
	Stats               PlayerStats    `json:"stats"`
	WalletBalance       float64        `json:"walletBalance"`
	TotalBudget         float64        `json:"totalBudget"`
	CommittedAmount     float64        `json:"committedAmount"`
	TeamBiddingLocked   bool           `json:"teamBiddingLocked"`
	TotalAllowedPlayers int            `json:"totalAllowedPlayers"`
	PlayersBought       int            `json:"playersBought"`
	RemainingPlayers    int            `json:"remainingPlayers"`
	MinimumAmountToKeep float64        `json:"minimumAmountToKeep"`
	MaxBidAllowed       float64        `json:"maxBidAllowed"`
	EnforceMaxBid       bool           `json:"enforceMaxBid"`
}

// OwnerInfo assembles the owner dashboard snapshot for one team.
func (e *Engine) OwnerInfo(ctx context.Context, teamID uint) (*OwnerInfo, error) {
	state, err := e.store.State(ctx)
	if err != nil {
		return nil, err
	}
	team, err := e.store.Team(ctx, teamID)
	if err != nil {
		return nil, err
	}

	bought, err := e.store.SoldCount(ctx, teamID)
	if err != nil {
		return nil, err
	}
	unsold, err := e.store.CountByStatus(ctx, models.PlayerUnsold)
	if err != nil {
		return nil, err
	}
	available, err := e.store.CountByStatus(ctx, models.PlayerAvailable)
	if err != nil {
		return nil, err
	}

	info := &OwnerInfo{
		BiddingLocked:     state.BiddingLocked,
		Status:            state.Status,
		BidIncrements:     Increments{Increment1: state.BidIncrement1, Increment2: state.BidIncrement2},
		Stats:             PlayerStats{Sold: bought, Unsold: unsold, Available: available},
		TeamBiddingLocked: team.BiddingLocked,
		EnforceMaxBid:     state.EnforceMaxBid,
	}

	if state.CurrentPlayerID != nil {
		player, err := e.store.Player(ctx, *state.CurrentPlayerID)
		if err != nil {
			return nil, err
		}
		info.Player = player
		info.CurrentBid = player.BasePrice

		highest, err := e.store.HighestBid(ctx, player.ID)
		if err != nil {
			return nil, err
		}
		if highest != nil {
			bid, err := e.withTeamName(ctx, e.store, *highest)
			if err != nil {
				return nil, err
			}
			info.HighestBid = bid
			info.CurrentBid = bid.Amount
			if bid.TeamID == teamID {
				info.CommittedAmount = bid.Amount
			}
		}
	}

	limits := ComputeBidLimits(state, team.Budget, bought)
	info.TotalAllowedPlayers = limits.MaxPlayersPerTeam
	info.PlayersBought = bought
	info.RemainingPlayers = limits.RemainingSlots
	info.MinimumAmountToKeep = limits.MinimumToKeep
	info.MaxBidAllowed = limits.MaxAllowed
	info.TotalBudget = team.Budget
	info.WalletBalance = team.Budget - info.CommittedAmount
	return info, nil
}

// HostInfo is the public overlay snapshot: live player, leading bid
// and global sale stats, with no team-scoped wallet data.
type HostInfo struct {
	Status        string         `json:"status"`
	Player        *models.Player `json:"player"`
	HighestBid    *BidWithTeam   `json:"highestBid"`
	CurrentBid    float64        `json:"currentBid"`
	BiddingLocked bool           `json:"biddingLocked"`
	Stats         PlayerStats    `json:"stats"`
	BidIncrements Increments     `json:"bidIncrements"`
}

// HostInfo assembles the host/overlay snapshot.
func (e *Engine) HostInfo(ctx context.Context) (*HostInfo, error) {
	state, err := e.store.State(ctx)
	if err != nil {
		return nil, err
	}

	sold, err := e.store.CountByStatus(ctx, models.PlayerSold)
	if err != nil {
		return nil, err
	}
	unsold, err := e.store.CountByStatus(ctx, models.PlayerUnsold)
	if err != nil {
		return nil, err
	}
	available, err := e.store.CountByStatus(ctx, models.PlayerAvailable)
	if err != nil {
		return nil, err
	}

	info := &HostInfo{
		Status:        state.Status,
		BiddingLocked: state.BiddingLocked,
		Stats:         PlayerStats{Sold: sold, Unsold: unsold, Available: available},
		BidIncrements: Increments{Increment1: state.BidIncrement1, Increment2: state.BidIncrement2},
	}

	if state.CurrentPlayerID != nil {
		player, err := e.store.Player(ctx, *state.CurrentPlayerID)
		if err != nil {
			return nil, err
		}
		info.Player = player
		info.CurrentBid = player.BasePrice

		highest, err := e.store.HighestBid(ctx, player.ID)
		if err != nil {
			return nil, err
		}
		if highest != nil {
			bid, err := e.withTeamName(ctx, e.store, *highest)
			if err != nil {
				return nil, err
			}
			info.HighestBid = bid
			info.CurrentBid = bid.Amount
		}
	}
	return info, nil
}

// CurrentBidInfo is the admin console's view of the live round.
type CurrentBidInfo struct {
	HighestBid *BidWithTeam   `json:"highestBid"`
	Player     *models.Player `json:"player"`
	CurrentBid float64        `json:"currentBid"`
}

// CurrentBid returns the leading bid for the player on the block.
// Empty (all nil/zero) when no player is loaded.
func (e *Engine) CurrentBid(ctx context.Context) (*CurrentBidInfo, error) {
	state, err := e.store.State(ctx)
	if err != nil {
		return nil, err
	}
	info := &CurrentBidInfo{}
	if state.CurrentPlayerID == nil {
		return info, nil
	}

	player, err := e.store.Player(ctx, *state.CurrentPlayerID)
	if err != nil {
		return nil, err
	}
	info.Player = player
	info.CurrentBid = player.BasePrice

	highest, err := e.store.HighestBid(ctx, player.ID)
	if err != nil {
		return nil, err
	}
	if highest != nil {
		bid, err := e.withTeamName(ctx, e.store, *highest)
		if err != nil {
			return nil, err
		}
		info.HighestBid = bid
		info.CurrentBid = bid.Amount
	}
	return info, nil
}

// HistoryLimit caps the admin bid-history view.
const HistoryLimit = 100

// HistoryEntry is one row of the admin bid history: a bid flattened
// with the player's name and base price and the bidding team's name.
type HistoryEntry struct {
	models.Bid
	PlayerName string  `json:"player_name"`
	BasePrice  float64 `json:"base_price"`
	TeamName   string  `json:"team_name"`
}

// BidHistory returns the newest bids across all players, most recent
// first, capped at HistoryLimit.
func (e *Engine) BidHistory(ctx context.Context) ([]HistoryEntry, error) {
	bids, err := e.store.RecentBids(ctx, HistoryLimit)
	if err != nil {
		return nil, err
	}

	players := make(map[uint]*models.Player)
	teams := make(map[uint]*models.Team)
	out := make([]HistoryEntry, 0, len(bids))
	for _, b := range bids {
		entry := HistoryEntry{Bid: b}
		player, ok := players[b.PlayerID]
		if !ok {
			player, err = e.store.Player(ctx, b.PlayerID)
			if err != nil {
				if !errors.Is(err, ErrNotFound) {
					return nil, err
				}
				// Player deleted since; keep the bid row with blank names.
				player = &models.Player{}
			}
			players[b.PlayerID] = player
		}
		entry.PlayerName = player.Name
		entry.BasePrice = player.BasePrice

		team, ok := teams[b.TeamID]
		if !ok {
			team, err = e.store.Team(ctx, b.TeamID)
			if err != nil {
				if !errors.Is(err, ErrNotFound) {
					return nil, err
				}
				team = &models.Team{}
			}
			teams[b.TeamID] = team
		}
		entry.TeamName = team.Name
		out = append(out, entry)
	}
	return out, nil
}

// CurrentBids lists every bid for the player on the block, highest
// first, flattened with team names.
func (e *Engine) CurrentBids(ctx context.Context) ([]BidWithTeam, error) {
	state, err := e.store.State(ctx)
	if err != nil {
		return nil, err
	}
	if state.CurrentPlayerID == nil {
		return []BidWithTeam{}, nil
	}

	bids, err := e.store.BidsForPlayer(ctx, *state.CurrentPlayerID)
	if err != nil {
		return nil, err
	}
	teams, err := e.store.Teams(ctx)
	if err != nil {
		return nil, err
	}
	names := make(map[uint]string, len(teams))
	for _, t := range teams {
		names[t.ID] = t.Name
	}

	out := make([]BidWithTeam, 0, len(bids))
	for _, b := range bids {
		out = append(out, BidWithTeam{Bid: b, TeamName: names[b.TeamID]})
	}
	return out, nil
}
