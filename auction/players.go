// auction/players.go - roster CRUD with serial-number maintenance
package auction

import (
	"context"

	"go.uber.org/zap"

	"github.com/ShrijaySharma/Ezauction/models"
)

// PlayerUpdate carries a partial player edit. Nil fields are left
// untouched. SerialSet distinguishes "serial_number absent" from
// "serial_number: null" (which clears the serial and shifts the rest
// of the sequence down).
type PlayerUpdate struct {
	Name         *string
	Image        *string
	Role         *string
	Country      *string
	Age          *int
	BasePrice    *float64
	Status       *string
	SoldPrice    *float64
	SoldToTeam   *uint
	SerialNumber *int
	SerialSet    bool
}

// CreatePlayer inserts a roster entry, shifting existing serials up
// when the requested serial collides.
func (e *Engine) CreatePlayer(ctx context.Context, p *models.Player) error {
	if p.Status == "" {
		p.Status = models.PlayerAvailable
	}
	err := e.store.Transact(ctx, func(s Store) error {
		if p.SerialNumber != nil {
			if err := resequenceSerials(ctx, s, 0, nil, p.SerialNumber); err != nil {
				return err
			}
		}
		return s.SavePlayer(ctx, p)
	})
	if err != nil {
		return err
	}

	e.log.Info("player added", zap.Uint("player_id", p.ID), zap.String("name", p.Name))
	e.events.Emit(EventPlayerAdded, PlayerPayload{Player: p})
	return nil
}

// CreatePlayers bulk-inserts pre-validated roster entries. Serials are
// taken as-is; bulk imports own their numbering.
func (e *Engine) CreatePlayers(ctx context.Context, players []models.Player) (int, error) {
	err := e.store.Transact(ctx, func(s Store) error {
		for i := range players {
			if players[i].Status == "" {
				players[i].Status = models.PlayerAvailable
			}
			if err := s.SavePlayer(ctx, &players[i]); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	e.log.Info("players bulk added", zap.Int("count", len(players)))
	e.events.Emit(EventPlayerAdded, map[string]any{"count": len(players)})
	return len(players), nil
}

// UpdatePlayer applies a partial edit, resequencing serials when the
// serial number changes.
func (e *Engine) UpdatePlayer(ctx context.Context, playerID uint, upd PlayerUpdate) (*models.Player, error) {
	var player *models.Player
	err := e.store.Transact(ctx, func(s Store) error {
		p, err := s.Player(ctx, playerID)
		if err != nil {
			return err
		}

		if upd.SerialSet && !serialEqual(p.SerialNumber, upd.SerialNumber) {
			if err := resequenceSerials(ctx, s, p.ID, p.SerialNumber, upd.SerialNumber); err != nil {
				return err
			}
			p.SerialNumber = upd.SerialNumber
		}
		if upd.Name != nil {
			p.Name = *upd.Name
		}
		if upd.Image != nil {
			p.Image = upd.Image
		}
		if upd.Role != nil {
			p.Role = *upd.Role
		}
		if upd.Country != nil {
			p.Country = upd.Country
		}
		if upd.Age != nil {
			p.Age = upd.Age
		}
		if upd.BasePrice != nil {
			p.BasePrice = *upd.BasePrice
		}
		if upd.Status != nil {
			p.Status = *upd.Status
		}
		if upd.SoldPrice != nil {
			p.SoldPrice = upd.SoldPrice
		}
		if upd.SoldToTeam != nil {
			p.SoldToTeam = upd.SoldToTeam
		}

		if err := s.SavePlayer(ctx, p); err != nil {
			return err
		}
		player = p
		return nil
	})
	if err != nil {
		return nil, err
	}

	e.events.Emit(EventPlayerUpdated, PlayerPayload{Player: player})
	return player, nil
}

// DeletePlayer removes a player and its bids. The player on the block
// cannot be deleted.
func (e *Engine) DeletePlayer(ctx context.Context, playerID uint) error {
	err := e.store.Transact(ctx, func(s Store) error {
		state, err := s.State(ctx)
		if err != nil {
			return err
		}
		if state.CurrentPlayerID != nil && *state.CurrentPlayerID == playerID {
			return reject(RejectPlayerLive, "Cannot delete player that is currently being auctioned")
		}
		if _, err := s.Player(ctx, playerID); err != nil {
			return err
		}
		if err := s.DeleteBidsForPlayer(ctx, playerID); err != nil {
			return err
		}
		return s.DeletePlayer(ctx, playerID)
	})
	if err != nil {
		return err
	}

	e.events.Emit(EventPlayerDeleted, PlayerDeletedPayload{PlayerID: playerID})
	return nil
}

func serialEqual(a, b *int) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
