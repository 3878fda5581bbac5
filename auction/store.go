// auction/store.go - persistence contract for the auction engine
package auction

import (
	"context"
	"errors"

	"github.com/ShrijaySharma/Ezauction/models"
)

// ErrNotFound is matched by errors.Is against any NotFoundError.
var ErrNotFound = errors.New("not found")

// NotFoundError carries the entity name so handlers can surface
// "Player not found" / "Team not found" style messages as 404s.
type NotFoundError struct {
	Entity string
}

func (e *NotFoundError) Error() string {
	return e.Entity + " not found"
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// SerialUpdate is one entry of a batch serial-number rewrite.
type SerialUpdate struct {
	PlayerID     uint
	SerialNumber int
}

// SerialRange selects players whose serial number falls inside the
// given (optionally half-open) interval. Nil bounds are unbounded.
// Players without a serial number never match.
type SerialRange struct {
	Min          *int
	MinInclusive bool
	Max          *int
	MaxInclusive bool
	ExcludeID    uint
}

// Store is the persistence surface the engine needs. database.Store
// backs it with gorm/Postgres; MemStore backs it with maps for tests
// and local demos.
//
// Lookups for a single row return NotFoundError when the row does not
// exist, except HighestBid/LatestBid which return (nil, nil) so "no
// bids yet" is not an error.
type Store interface {
	// State returns the singleton auction-state row, creating it with
	// defaults on first read.
	State(ctx context.Context) (*models.AuctionState, error)
	SaveState(ctx context.Context, st *models.AuctionState) error

	Player(ctx context.Context, id uint) (*models.Player, error)
	SavePlayer(ctx context.Context, p *models.Player) error
	DeletePlayer(ctx context.Context, id uint) error
	Players(ctx context.Context) ([]models.Player, error)
	PlayersByStatus(ctx context.Context, statuses ...string) ([]models.Player, error)
	PlayersSoldTo(ctx context.Context, teamID uint) ([]models.Player, error)
	CountByStatus(ctx context.Context, status string) (int, error)
	// SoldCount is the number of players a team has won so far.
	SoldCount(ctx context.Context, teamID uint) (int, error)
	SerialTaken(ctx context.Context, serial int, excludeID uint) (bool, error)
	PlayersInSerialRange(ctx context.Context, r SerialRange) ([]models.Player, error)
	UpdateSerials(ctx context.Context, updates []SerialUpdate) error
	DeleteAllPlayers(ctx context.Context) error

	Team(ctx context.Context, id uint) (*models.Team, error)
	Teams(ctx context.Context) ([]models.Team, error)
	SaveTeam(ctx context.Context, t *models.Team) error

	// HighestBid orders by (amount DESC, timestamp DESC); LatestBid by
	// timestamp alone. Both return nil without error when the player
	// has no bids.
	HighestBid(ctx context.Context, playerID uint) (*models.Bid, error)
	LatestBid(ctx context.Context, playerID uint) (*models.Bid, error)
	TopBids(ctx context.Context, playerID uint, limit int) ([]models.Bid, error)
	BidsForPlayer(ctx context.Context, playerID uint) ([]models.Bid, error)
	// RecentBids returns the newest bids across all players, most
	// recent first.
	RecentBids(ctx context.Context, limit int) ([]models.Bid, error)
	CreateBid(ctx context.Context, b *models.Bid) error
	DeleteBid(ctx context.Context, id uint) error
	DeleteBidsForPlayer(ctx context.Context, playerID uint) error
	DeleteAllBids(ctx context.Context) error
	BidCountForTeam(ctx context.Context, teamID uint) (int, error)

	// Transact runs fn against a store view whose writes commit or roll
	// back together. Every mutating engine operation goes through this
	// so precondition checks and their writes are atomic.
	Transact(ctx context.Context, fn func(Store) error) error
}
