package auction

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/ShrijaySharma/Ezauction/models"
)

func TestComputeBidLimitsEnforced(t *testing.T) {
	state := models.NewAuctionState()
	state.EnforceMaxBid = true
	state.MaxPlayersPerTeam = 10

	// 7 bought, 3 slots left: keep 3000 back out of 10000
	limits := ComputeBidLimits(state, 10000, 7)
	assert.Equal(t, 3, limits.RemainingSlots)
	assert.Equal(t, 3000.0, limits.MinimumToKeep)
	assert.Equal(t, 7000.0, limits.MaxAllowed)
	assert.True(t, limits.Enforced)
}

func TestComputeBidLimitsUnenforced(t *testing.T) {
	state := models.NewAuctionState()
	state.EnforceMaxBid = false
	state.MaxPlayersPerTeam = 10

	// Whole purse is spendable on one player
	limits := ComputeBidLimits(state, 10000, 7)
	assert.Equal(t, 10000.0, limits.MaxAllowed)
	assert.Equal(t, 0.0, limits.MinimumToKeep)
	assert.False(t, limits.Enforced)
}

func TestComputeBidLimitsNeverNegative(t *testing.T) {
	state := models.NewAuctionState()
	state.EnforceMaxBid = true
	state.MaxPlayersPerTeam = 10

	// Reserve exceeds the remaining purse
	limits := ComputeBidLimits(state, 2000, 0)
	assert.Equal(t, 10000.0, limits.MinimumToKeep)
	assert.Equal(t, 0.0, limits.MaxAllowed)
}

func TestComputeBidLimitsDefaultsRosterCap(t *testing.T) {
	state := models.NewAuctionState()
	state.MaxPlayersPerTeam = 0

	limits := ComputeBidLimits(state, 5000, 2)
	assert.Equal(t, models.DefaultMaxPlayersPerTeam, limits.MaxPlayersPerTeam)
	assert.Equal(t, models.DefaultMaxPlayersPerTeam-2, limits.RemainingSlots)
}

func TestMinimumBidNoBids(t *testing.T) {
	state := models.NewAuctionState()
	assert.Equal(t, 2000.0, MinimumBid(2000, nil, state))
}

func TestMinimumBidUsesSmallerIncrement(t *testing.T) {
	state := models.NewAuctionState()
	state.BidIncrement1 = 500
	state.BidIncrement2 = 1000

	highest := &models.Bid{Amount: 3000, Timestamp: time.Now()}
	assert.Equal(t, 3500.0, MinimumBid(2000, highest, state))

	state.BidIncrement1 = 2000
	assert.Equal(t, 4000.0, MinimumBid(2000, highest, state))
}
