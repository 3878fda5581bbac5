// auction/policy.go - budget/roster affordability policy
package auction

import (
	"math"

	"github.com/ShrijaySharma/Ezauction/models"
)

// ReservePerSlot is the per-slot minimum a team must keep back for
// each unfilled roster slot when enforce-max-bid is on.
const ReservePerSlot = 1000

// BidLimits is the affordability envelope for one team at one moment.
type BidLimits struct {
	MaxPlayersPerTeam int
	PlayersBought     int
	RemainingSlots    int
	MinimumToKeep     float64
	MaxAllowed        float64
	Enforced          bool
}

// ComputeBidLimits derives how much a team may bid given its budget
// and how many players it has already won.
//
// With enforcement off the team may spend its whole purse on one
// player. With enforcement on it must keep ReservePerSlot for each
// remaining slot; the slot about to be filled is counted inside
// RemainingSlots, so the reserve is computed before decrementing.
func ComputeBidLimits(state *models.AuctionState, budget float64, playersBought int) BidLimits {
	maxPlayers := state.MaxPlayersPerTeam
	if maxPlayers <= 0 {
		maxPlayers = models.DefaultMaxPlayersPerTeam
	}

	limits := BidLimits{
		MaxPlayersPerTeam: maxPlayers,
		PlayersBought:     playersBought,
		RemainingSlots:    maxPlayers - playersBought,
		Enforced:          state.EnforceMaxBid,
	}

	if state.EnforceMaxBid {
		limits.MinimumToKeep = float64(limits.RemainingSlots) * ReservePerSlot
		limits.MaxAllowed = math.Max(0, budget-limits.MinimumToKeep)
	} else {
		limits.MaxAllowed = budget
	}
	return limits
}

// MinimumBid is the smallest acceptable bid: base price when there is
// no bid yet, otherwise the leading amount plus the smaller of the two
// configured increments.
func MinimumBid(basePrice float64, highest *models.Bid, state *models.AuctionState) float64 {
	if highest == nil {
		return basePrice
	}
	return highest.Amount + math.Min(state.BidIncrement1, state.BidIncrement2)
}
