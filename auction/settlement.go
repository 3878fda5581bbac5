// auction/settlement.go - sale settlement, auto-advance and reversal
package auction

import (
	"context"

	"go.uber.org/zap"

	"github.com/ShrijaySharma/Ezauction/models"
)

// SettleResult reports a settlement plus the auto-advance outcome.
type SettleResult struct {
	PlayerID         uint
	Status           string
	SoldPrice        *float64
	SoldToTeam       *uint
	NextPlayerLoaded bool
	NextPlayer       *models.Player
}

// MarkPlayer finalizes the current round for a player.
//
// SOLD resolves the final price/team from the highest bid unless the
// admin supplied explicit overrides, re-checks the buyer's budget,
// debits it and stamps the player, all in one transaction. UNSOLD
// clears the sale fields and sets the sticky was-unsold flag. Either
// way the next candidate player is auto-loaded afterwards.
func (e *Engine) MarkPlayer(ctx context.Context, playerID uint, status string, soldPrice *float64, soldToTeam *uint) (*SettleResult, error) {
	if status != models.PlayerSold && status != models.PlayerUnsold {
		return nil, reject(RejectInvalidStatus, "Invalid status")
	}

	result := &SettleResult{PlayerID: playerID, Status: status}
	err := e.store.Transact(ctx, func(s Store) error {
		player, err := s.Player(ctx, playerID)
		if err != nil {
			return err
		}

		if status == models.PlayerUnsold {
			player.Status = models.PlayerUnsold
			player.SoldPrice = nil
			player.SoldToTeam = nil
			player.WasUnsold = true
			return s.SavePlayer(ctx, player)
		}

		highest, err := s.HighestBid(ctx, playerID)
		if err != nil {
			return err
		}
		if highest == nil && soldPrice == nil {
			return reject(RejectNoBids, "No bids found for this player. Cannot mark as SOLD without a bid.")
		}

		finalPrice := player.BasePrice
		if soldPrice != nil {
			finalPrice = *soldPrice
		} else if highest != nil {
			finalPrice = highest.Amount
		}
		var finalTeam *uint
		if soldToTeam != nil {
			finalTeam = soldToTeam
		} else if highest != nil {
			finalTeam = &highest.TeamID
		}
		if finalTeam == nil {
			return reject(RejectNoTeam, "No team selected for sale")
		}

		team, err := s.Team(ctx, *finalTeam)
		if err != nil {
			return err
		}
		if team.Budget < finalPrice {
			return reject(RejectInsufficientFunds, "Team does not have enough budget")
		}
		team.Budget -= finalPrice
		if err := s.SaveTeam(ctx, team); err != nil {
			return err
		}

		player.Status = models.PlayerSold
		player.SoldPrice = &finalPrice
		player.SoldToTeam = finalTeam
		player.WasUnsold = false
		if err := s.SavePlayer(ctx, player); err != nil {
			return err
		}

		result.SoldPrice = &finalPrice
		result.SoldToTeam = finalTeam
		return nil
	})
	if err != nil {
		return nil, err
	}

	e.log.Info("player marked",
		zap.Uint("player_id", playerID),
		zap.String("status", status))
	e.events.Emit(EventPlayerMarked, PlayerMarkedPayload{
		PlayerID:   playerID,
		Status:     status,
		SoldPrice:  result.SoldPrice,
		SoldToTeam: result.SoldToTeam,
	})
	if status == models.PlayerSold {
		e.events.Emit(EventTeamBudgetUpdated, TeamBudgetUpdatedPayload{TeamID: *result.SoldToTeam})
	}

	next, err := e.AutoAdvance(ctx)
	if err != nil {
		return nil, err
	}
	result.NextPlayer = next
	result.NextPlayerLoaded = next != nil
	return result, nil
}

// AutoAdvance selects and loads the next candidate player, or stops
// the auction when none remain.
//
// Candidates are players still AVAILABLE or UNSOLD, partitioned into
// fresh players first and previously-unsold players second; the pick
// within a tier goes through the injected selector (uniformly random
// in production). The chosen player's stale bids are purged.
func (e *Engine) AutoAdvance(ctx context.Context) (*models.Player, error) {
	var next *models.Player
	err := e.store.Transact(ctx, func(s Store) error {
		pending, err := s.PlayersByStatus(ctx, models.PlayerAvailable, models.PlayerUnsold)
		if err != nil {
			return err
		}

		var fresh, retried []models.Player
		for _, p := range pending {
			if p.WasUnsold {
				retried = append(retried, p)
			} else {
				fresh = append(fresh, p)
			}
		}

		var pick *models.Player
		if len(fresh) > 0 {
			pick = &fresh[e.selector(len(fresh))]
		} else if len(retried) > 0 {
			pick = &retried[e.selector(len(retried))]
		}

		state, err := s.State(ctx)
		if err != nil {
			return err
		}
		if pick == nil {
			state.CurrentPlayerID = nil
			state.Status = models.AuctionStopped
			state.UpdatedAt = e.clock.Now()
			return s.SaveState(ctx, state)
		}

		state.CurrentPlayerID = &pick.ID
		state.Status = models.AuctionLive
		state.UpdatedAt = e.clock.Now()
		if err := s.SaveState(ctx, state); err != nil {
			return err
		}
		if err := s.DeleteBidsForPlayer(ctx, pick.ID); err != nil {
			return err
		}
		next = pick
		return nil
	})
	if err != nil {
		return nil, err
	}

	if next != nil {
		e.log.Info("auto-loaded next player", zap.Uint("player_id", next.ID), zap.String("name", next.Name))
	} else {
		e.log.Info("no more pending players, auction stopped")
	}
	e.events.Emit(EventPlayerLoaded, PlayerLoadedPayload{Player: next})
	return next, nil
}

// RemoveFromTeam reverses a sale: the buying team is refunded the sold
// price and the player returns to the pool as AVAILABLE with the
// was-unsold flag set. This is the only path that increases a team's
// budget outside manual admin edits.
func (e *Engine) RemoveFromTeam(ctx context.Context, playerID uint) (*models.Player, error) {
	var (
		player *models.Player
		teamID uint
	)
	err := e.store.Transact(ctx, func(s Store) error {
		p, err := s.Player(ctx, playerID)
		if err != nil {
			return err
		}
		if p.Status != models.PlayerSold || p.SoldToTeam == nil {
			return reject(RejectPlayerNotSold, "Player is not sold to any team")
		}
		teamID = *p.SoldToTeam
		refund := 0.0
		if p.SoldPrice != nil {
			refund = *p.SoldPrice
		}

		team, err := s.Team(ctx, teamID)
		if err != nil {
			return err
		}
		team.Budget += refund
		if err := s.SaveTeam(ctx, team); err != nil {
			return err
		}

		p.Status = models.PlayerAvailable
		p.SoldPrice = nil
		p.SoldToTeam = nil
		p.WasUnsold = true
		if err := s.SavePlayer(ctx, p); err != nil {
			return err
		}
		player = p
		return nil
	})
	if err != nil {
		return nil, err
	}

	e.log.Info("player removed from team", zap.Uint("player_id", playerID), zap.Uint("team_id", teamID))
	e.events.Emit(EventPlayerRemovedFromTeam, PlayerRemovedPayload{PlayerID: playerID, TeamID: teamID, Player: player})
	e.events.Emit(EventTeamBudgetUpdated, TeamBudgetUpdatedPayload{TeamID: teamID})
	e.events.Emit(EventPlayerUpdated, PlayerPayload{Player: player})
	return player, nil
}

// ResetUnsoldTag clears the sticky was-unsold flag so the player
// rejoins the first auto-advance tier; an UNSOLD player goes back to
// AVAILABLE.
func (e *Engine) ResetUnsoldTag(ctx context.Context, playerID uint) error {
	err := e.store.Transact(ctx, func(s Store) error {
		player, err := s.Player(ctx, playerID)
		if err != nil {
			return err
		}
		if player.Status == models.PlayerUnsold {
			player.Status = models.PlayerAvailable
		}
		player.WasUnsold = false
		return s.SavePlayer(ctx, player)
	})
	if err != nil {
		return err
	}

	e.events.Emit(EventPlayerMarked, PlayerMarkedPayload{PlayerID: playerID})
	return nil
}
