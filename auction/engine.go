// auction/engine.go - auction state machine and admin controls
package auction

import (
	"context"
	"fmt"

	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"

	"github.com/ShrijaySharma/Ezauction/models"
)

// Engine owns the auction lifecycle: the singleton state row, the
// current player, bid acceptance, settlement and auto-advance. All
// dependencies are injected; there is no package-level state.
type Engine struct {
	store    Store
	events   Broadcaster
	clock    clockwork.Clock
	selector Selector
	log      *zap.Logger
}

// Option customizes an Engine.
type Option func(*Engine)

// WithClock swaps the wall clock, used by tests to control bid
// timestamps.
func WithClock(c clockwork.Clock) Option {
	return func(e *Engine) { e.clock = c }
}

// WithSelector swaps the next-player tier selector.
func WithSelector(s Selector) Option {
	return func(e *Engine) { e.selector = s }
}

func New(store Store, events Broadcaster, log *zap.Logger, opts ...Option) *Engine {
	if events == nil {
		events = NopBroadcaster{}
	}
	if log == nil {
		log = zap.NewNop()
	}
	e := &Engine{
		store:    store,
		events:   events,
		clock:    clockwork.NewRealClock(),
		selector: RandomSelector,
		log:      log,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Store exposes the underlying store for read-only handler queries.
func (e *Engine) Store() Store {
	return e.store
}

// State returns the singleton auction state, creating it on first read.
func (e *Engine) State(ctx context.Context) (*models.AuctionState, error) {
	return e.store.State(ctx)
}

// LoadPlayer puts a player on the block: current player is set, the
// auction is forced LIVE and any stale bids for the player are purged.
func (e *Engine) LoadPlayer(ctx context.Context, playerID uint) (*models.Player, error) {
	var player *models.Player
	err := e.store.Transact(ctx, func(s Store) error {
		p, err := s.Player(ctx, playerID)
		if err != nil {
			return err
		}
		state, err := s.State(ctx)
		if err != nil {
			return err
		}
		state.CurrentPlayerID = &p.ID
		state.Status = models.AuctionLive
		state.UpdatedAt = e.clock.Now()
		if err := s.SaveState(ctx, state); err != nil {
			return err
		}
		if err := s.DeleteBidsForPlayer(ctx, p.ID); err != nil {
			return err
		}
		player = p
		return nil
	})
	if err != nil {
		return nil, err
	}

	e.log.Info("player loaded", zap.Uint("player_id", player.ID), zap.String("name", player.Name))
	e.events.Emit(EventPlayerLoaded, PlayerLoadedPayload{Player: player})
	return player, nil
}

// ResetBidding wipes all bids for the current player without touching
// the player's status.
func (e *Engine) ResetBidding(ctx context.Context) (uint, error) {
	var playerID uint
	err := e.store.Transact(ctx, func(s Store) error {
		state, err := s.State(ctx)
		if err != nil {
			return err
		}
		if state.CurrentPlayerID == nil {
			return reject(RejectNoActivePlayer, "No active player")
		}
		playerID = *state.CurrentPlayerID
		return s.DeleteBidsForPlayer(ctx, playerID)
	})
	if err != nil {
		return 0, err
	}

	e.events.Emit(EventBiddingReset, BiddingResetPayload{PlayerID: playerID})
	return playerID, nil
}

// UndoResult reports the bid state after an undo: the new leading bid
// (nil if none remain), the one behind it, and the current display
// amount (base price when no bids remain).
type UndoResult struct {
	PlayerID    uint
	HighestBid  *BidWithTeam
	PreviousBid *float64
	CurrentBid  float64
}

// UndoLastBid deletes the most recently placed bid by timestamp (not
// necessarily the highest amount) and recomputes the leading pair.
func (e *Engine) UndoLastBid(ctx context.Context) (*UndoResult, error) {
	var result *UndoResult
	err := e.store.Transact(ctx, func(s Store) error {
		state, err := s.State(ctx)
		if err != nil {
			return err
		}
		if state.CurrentPlayerID == nil {
			return reject(RejectNoActivePlayer, "No active player")
		}
		playerID := *state.CurrentPlayerID

		last, err := s.LatestBid(ctx, playerID)
		if err != nil {
			return err
		}
		if last == nil {
			return reject(RejectNoBids, "No bids to undo")
		}
		if err := s.DeleteBid(ctx, last.ID); err != nil {
			return err
		}

		remaining, err := s.TopBids(ctx, playerID, 2)
		if err != nil {
			return err
		}

		result = &UndoResult{PlayerID: playerID}
		if len(remaining) > 0 {
			highest, err := e.withTeamName(ctx, s, remaining[0])
			if err != nil {
				return err
			}
			result.HighestBid = highest
			result.CurrentBid = highest.Amount
		} else {
			player, err := s.Player(ctx, playerID)
			if err != nil {
				return err
			}
			result.CurrentBid = player.BasePrice
		}
		if len(remaining) > 1 {
			prev := remaining[1].Amount
			result.PreviousBid = &prev
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	e.events.Emit(EventBidUpdated, BidUpdatedPayload{
		HighestBid:  result.HighestBid,
		PlayerID:    result.PlayerID,
		PreviousBid: result.PreviousBid,
	})
	return result, nil
}

// SetAuctionStatus moves the auction between STOPPED, LIVE and PAUSED.
func (e *Engine) SetAuctionStatus(ctx context.Context, status string) error {
	switch status {
	case models.AuctionStopped, models.AuctionLive, models.AuctionPaused:
	default:
		return reject(RejectInvalidStatus, "Invalid status")
	}

	err := e.store.Transact(ctx, func(s Store) error {
		state, err := s.State(ctx)
		if err != nil {
			return err
		}
		state.Status = status
		state.UpdatedAt = e.clock.Now()
		return s.SaveState(ctx, state)
	})
	if err != nil {
		return err
	}

	e.events.Emit(EventAuctionStatusChanged, AuctionStatusPayload{Status: status})
	return nil
}

// SetBiddingLocked flips the global bidding lock.
func (e *Engine) SetBiddingLocked(ctx context.Context, locked bool) error {
	err := e.updateState(ctx, func(state *models.AuctionState) {
		state.BiddingLocked = locked
	})
	if err != nil {
		return err
	}
	e.events.Emit(EventBiddingLocked, BiddingLockedPayload{Locked: locked})
	return nil
}

// SetEnforceMaxBid toggles the reserve-funds policy.
func (e *Engine) SetEnforceMaxBid(ctx context.Context, enforce bool) error {
	err := e.updateState(ctx, func(state *models.AuctionState) {
		state.EnforceMaxBid = enforce
	})
	if err != nil {
		return err
	}
	e.events.Emit(EventEnforceMaxBidChanged, EnforceMaxBidPayload{EnforceMaxBid: enforce})
	return nil
}

// SetMaxPlayers updates the roster cap (1-50).
func (e *Engine) SetMaxPlayers(ctx context.Context, maxPlayers int) error {
	if maxPlayers < 1 || maxPlayers > 50 {
		return reject(RejectOutOfRange, "Invalid max players per team (must be between 1 and 50)")
	}
	err := e.updateState(ctx, func(state *models.AuctionState) {
		state.MaxPlayersPerTeam = maxPlayers
	})
	if err != nil {
		return err
	}
	e.events.Emit(EventMaxPlayersChanged, MaxPlayersPayload{MaxPlayersPerTeam: maxPlayers})
	return nil
}

// SetBidIncrements updates the two increment tiers.
func (e *Engine) SetBidIncrements(ctx context.Context, inc1, inc2 float64) error {
	if inc1 <= 0 || inc2 <= 0 {
		return reject(RejectInvalidAmount, "Increments must be positive")
	}
	err := e.updateState(ctx, func(state *models.AuctionState) {
		state.BidIncrement1 = inc1
		state.BidIncrement2 = inc2
	})
	if err != nil {
		return err
	}
	e.events.Emit(EventBidIncrementsChanged, BidIncrementsPayload{Increment1: inc1, Increment2: inc2})
	return nil
}

// DeleteAllPlayers wipes players and bids and stops the auction.
func (e *Engine) DeleteAllPlayers(ctx context.Context) error {
	err := e.store.Transact(ctx, func(s Store) error {
		if err := s.DeleteAllBids(ctx); err != nil {
			return err
		}
		if err := s.DeleteAllPlayers(ctx); err != nil {
			return err
		}
		state, err := s.State(ctx)
		if err != nil {
			return err
		}
		state.CurrentPlayerID = nil
		state.Status = models.AuctionStopped
		state.UpdatedAt = e.clock.Now()
		return s.SaveState(ctx, state)
	})
	if err != nil {
		return err
	}

	e.log.Info("all players deleted")
	e.events.Emit(EventAllPlayersDeleted, struct{}{})
	return nil
}

// SnapshotEvents replays the current state as the events a client
// missed: player-loaded for the live player plus bid-updated for its
// leading bid. Used by the hub to answer request-info.
func (e *Engine) SnapshotEvents(ctx context.Context) ([]Event, error) {
	state, err := e.store.State(ctx)
	if err != nil {
		return nil, err
	}
	if state.CurrentPlayerID == nil {
		return nil, nil
	}

	player, err := e.store.Player(ctx, *state.CurrentPlayerID)
	if err != nil {
		return nil, err
	}
	events := []Event{{Type: EventPlayerLoaded, Payload: PlayerLoadedPayload{Player: player}}}

	highest, err := e.store.HighestBid(ctx, player.ID)
	if err != nil {
		return nil, err
	}
	if highest != nil {
		bid, err := e.withTeamName(ctx, e.store, *highest)
		if err != nil {
			return nil, err
		}
		events = append(events, Event{
			Type:    EventBidUpdated,
			Payload: BidUpdatedPayload{HighestBid: bid, PlayerID: player.ID},
		})
	}
	return events, nil
}

func (e *Engine) updateState(ctx context.Context, mutate func(*models.AuctionState)) error {
	return e.store.Transact(ctx, func(s Store) error {
		state, err := s.State(ctx)
		if err != nil {
			return err
		}
		mutate(state)
		state.UpdatedAt = e.clock.Now()
		return s.SaveState(ctx, state)
	})
}

// withTeamName flattens a bid with its team's name for display.
func (e *Engine) withTeamName(ctx context.Context, s Store, bid models.Bid) (*BidWithTeam, error) {
	team, err := s.Team(ctx, bid.TeamID)
	if err != nil {
		return nil, fmt.Errorf("resolving bid team: %w", err)
	}
	return &BidWithTeam{Bid: bid, TeamName: team.Name}, nil
}
