// auction/validator.go - bid validation and acceptance
package auction

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/ShrijaySharma/Ezauction/models"
)

// BidResult is returned to the bidding team on acceptance.
type BidResult struct {
	Bid             *BidWithTeam
	PlayerID        uint
	PreviousBid     float64
	Increment       float64
	WalletBalance   float64
	TotalBudget     float64
	CommittedAmount float64
}

// PlaceBid validates and records a bid for the current player on
// behalf of teamID. The admin proxy-bid endpoint goes through this
// exact same path.
//
// Preconditions, first failure wins: auction LIVE, global lock off, a
// current player set, team lock off, amount >= minimum bid, team not
// already highest, and the budget/roster policy. Validation and the
// bid insert run in one transaction so a concurrent bid cannot slip
// between the minimum-bid check and the write.
func (e *Engine) PlaceBid(ctx context.Context, teamID uint, amount float64) (*BidResult, error) {
	if amount <= 0 {
		return nil, reject(RejectInvalidAmount, "Invalid bid amount")
	}

	var result *BidResult
	err := e.store.Transact(ctx, func(s Store) error {
		state, err := s.State(ctx)
		if err != nil {
			return err
		}
		if state.Status != models.AuctionLive {
			return reject(RejectNotLive, "Auction is not live")
		}
		if state.BiddingLocked {
			return reject(RejectBiddingLocked, "Bidding is locked")
		}
		if state.CurrentPlayerID == nil {
			return reject(RejectNoActivePlayer, "No player is currently being auctioned")
		}

		team, err := s.Team(ctx, teamID)
		if err != nil {
			return err
		}
		if team.BiddingLocked {
			return reject(RejectTeamLocked, "Your team is locked from bidding by admin")
		}

		player, err := s.Player(ctx, *state.CurrentPlayerID)
		if err != nil {
			return err
		}
		highest, err := s.HighestBid(ctx, player.ID)
		if err != nil {
			return err
		}

		minimum := MinimumBid(player.BasePrice, highest, state)
		if amount < minimum {
			return rejectWith(RejectBelowMinimum,
				fmt.Sprintf("Bid must be at least %.0f", minimum),
				map[string]any{"minimumBid": minimum})
		}

		if highest != nil && highest.TeamID == teamID {
			return reject(RejectAlreadyHighest, "You are already the highest bidder")
		}

		bought, err := s.SoldCount(ctx, teamID)
		if err != nil {
			return err
		}
		limits := ComputeBidLimits(state, team.Budget, bought)
		if limits.RemainingSlots <= 0 {
			return rejectWith(RejectRosterFull,
				fmt.Sprintf("Your team has already reached the maximum of %d players", limits.MaxPlayersPerTeam),
				map[string]any{"remainingPlayers": limits.RemainingSlots})
		}
		if amount > limits.MaxAllowed {
			if limits.Enforced {
				return rejectWith(RejectOverMaxBid,
					fmt.Sprintf("Bid exceeds maximum allowed. You need to keep %.0f for %d remaining player(s).",
						limits.MinimumToKeep, limits.RemainingSlots),
					map[string]any{
						"maxBidAllowed":       limits.MaxAllowed,
						"minimumAmountToKeep": limits.MinimumToKeep,
						"remainingPlayers":    limits.RemainingSlots,
					})
			}
			return rejectWith(RejectOverMaxBid,
				fmt.Sprintf("Bid exceeds maximum allowed purse: %.0f", limits.MaxAllowed),
				map[string]any{"maxBidAllowed": limits.MaxAllowed})
		}

		bid := &models.Bid{
			PlayerID:  player.ID,
			TeamID:    teamID,
			Amount:    amount,
			Timestamp: e.clock.Now(),
		}
		if err := s.CreateBid(ctx, bid); err != nil {
			return err
		}

		previous := player.BasePrice
		if highest != nil {
			previous = highest.Amount
		}
		result = &BidResult{
			Bid:             &BidWithTeam{Bid: *bid, TeamName: team.Name},
			PlayerID:        player.ID,
			PreviousBid:     previous,
			Increment:       amount - previous,
			WalletBalance:   team.Budget - amount,
			TotalBudget:     team.Budget,
			CommittedAmount: amount,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	e.log.Info("bid placed",
		zap.Uint("player_id", result.PlayerID),
		zap.Uint("team_id", teamID),
		zap.Float64("amount", amount))

	e.events.Emit(EventBidPlaced, BidPlacedPayload{
		Bid:         result.Bid,
		PlayerID:    result.PlayerID,
		PreviousBid: result.PreviousBid,
		Increment:   result.Increment,
	})
	e.events.Emit(EventBidUpdated, BidUpdatedPayload{
		HighestBid: result.Bid,
		PlayerID:   result.PlayerID,
	})
	return result, nil
}
