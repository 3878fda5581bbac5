package auction

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ShrijaySharma/Ezauction/models"
)

func TestPlaceBidFirstBidAtBasePrice(t *testing.T) {
	f := newFixture(t)
	team := f.addTeam(t, "Strikers", 100000)
	player := f.addPlayer(t, "R. Sharma", 2000)
	f.goLive(t, player.ID)

	result, err := f.engine.PlaceBid(context.Background(), team.ID, 2000)
	require.NoError(t, err)

	assert.Equal(t, player.ID, result.PlayerID)
	assert.Equal(t, 2000.0, result.Bid.Amount)
	assert.Equal(t, "Strikers", result.Bid.TeamName)
	assert.Equal(t, 2000.0, result.PreviousBid) // base price before any bid
	assert.Equal(t, 98000.0, result.WalletBalance)

	assert.Equal(t, []string{EventBidPlaced, EventBidUpdated}, f.events.types())
}

func TestPlaceBidBelowMinimumRejected(t *testing.T) {
	f := newFixture(t)
	team := f.addTeam(t, "Strikers", 100000)
	player := f.addPlayer(t, "R. Sharma", 2000)
	f.goLive(t, player.ID)

	_, err := f.engine.PlaceBid(context.Background(), team.ID, 1500)
	rej := requireReject(t, err, RejectBelowMinimum)
	assert.Equal(t, 2000.0, rej.Extra["minimumBid"])
	assert.Empty(t, f.events.events, "rejected bids must not broadcast")
}

func TestPlaceBidRaiseMustClearSmallerIncrement(t *testing.T) {
	f := newFixture(t)
	a := f.addTeam(t, "Strikers", 100000)
	b := f.addTeam(t, "Royals", 100000)
	player := f.addPlayer(t, "R. Sharma", 2000)
	f.goLive(t, player.ID)

	_, err := f.engine.PlaceBid(context.Background(), a.ID, 2000)
	require.NoError(t, err)

	// increments default to 500/1000, so the floor is 2500
	_, err = f.engine.PlaceBid(context.Background(), b.ID, 2400)
	rej := requireReject(t, err, RejectBelowMinimum)
	assert.Equal(t, 2500.0, rej.Extra["minimumBid"])

	_, err = f.engine.PlaceBid(context.Background(), b.ID, 2500)
	require.NoError(t, err)
}

func TestPlaceBidSelfOutbidRejected(t *testing.T) {
	f := newFixture(t)
	team := f.addTeam(t, "Strikers", 100000)
	player := f.addPlayer(t, "R. Sharma", 2000)
	f.goLive(t, player.ID)

	_, err := f.engine.PlaceBid(context.Background(), team.ID, 2000)
	require.NoError(t, err)

	_, err = f.engine.PlaceBid(context.Background(), team.ID, 3000)
	requireReject(t, err, RejectAlreadyHighest)
}

func TestPlaceBidNotLiveRejected(t *testing.T) {
	f := newFixture(t)
	team := f.addTeam(t, "Strikers", 100000)
	f.addPlayer(t, "R. Sharma", 2000)

	// Auction never went live
	_, err := f.engine.PlaceBid(context.Background(), team.ID, 2000)
	requireReject(t, err, RejectNotLive)
}

func TestPlaceBidGlobalLockRejected(t *testing.T) {
	f := newFixture(t)
	team := f.addTeam(t, "Strikers", 100000)
	player := f.addPlayer(t, "R. Sharma", 2000)
	f.goLive(t, player.ID)

	require.NoError(t, f.engine.SetBiddingLocked(context.Background(), true))
	f.events.reset()

	_, err := f.engine.PlaceBid(context.Background(), team.ID, 2000)
	requireReject(t, err, RejectBiddingLocked)
}

func TestPlaceBidTeamLockRejected(t *testing.T) {
	f := newFixture(t)
	team := f.addTeam(t, "Strikers", 100000)
	player := f.addPlayer(t, "R. Sharma", 2000)
	f.goLive(t, player.ID)

	team.BiddingLocked = true
	require.NoError(t, f.store.SaveTeam(context.Background(), team))

	_, err := f.engine.PlaceBid(context.Background(), team.ID, 2000)
	requireReject(t, err, RejectTeamLocked)
}

func TestPlaceBidInvalidAmountRejected(t *testing.T) {
	f := newFixture(t)
	team := f.addTeam(t, "Strikers", 100000)
	player := f.addPlayer(t, "R. Sharma", 2000)
	f.goLive(t, player.ID)

	_, err := f.engine.PlaceBid(context.Background(), team.ID, 0)
	requireReject(t, err, RejectInvalidAmount)

	_, err = f.engine.PlaceBid(context.Background(), team.ID, -100)
	requireReject(t, err, RejectInvalidAmount)
}

func TestPlaceBidRosterFullRejected(t *testing.T) {
	f := newFixture(t)
	team := f.addTeam(t, "Strikers", 100000)
	player := f.addPlayer(t, "R. Sharma", 2000)

	require.NoError(t, f.engine.SetMaxPlayers(context.Background(), 2))
	for i := 0; i < 2; i++ {
		price := 1000.0
		bought := f.addPlayer(t, "Bought", 1000)
		bought.Status = models.PlayerSold
		bought.SoldPrice = &price
		bought.SoldToTeam = &team.ID
		require.NoError(t, f.store.SavePlayer(context.Background(), bought))
	}
	f.goLive(t, player.ID)

	// Roster full rejects even with enforce-max-bid off
	_, err := f.engine.PlaceBid(context.Background(), team.ID, 2000)
	rej := requireReject(t, err, RejectRosterFull)
	assert.Equal(t, 0, rej.Extra["remainingPlayers"])
}

func TestPlaceBidEnforcedReserveRejected(t *testing.T) {
	f := newFixture(t)
	team := f.addTeam(t, "Strikers", 10000)
	player := f.addPlayer(t, "R. Sharma", 2000)

	require.NoError(t, f.engine.SetMaxPlayers(context.Background(), 3))
	require.NoError(t, f.engine.SetEnforceMaxBid(context.Background(), true))
	f.goLive(t, player.ID)

	// 3 open slots: must keep 3000 back, so 7000 is the ceiling
	_, err := f.engine.PlaceBid(context.Background(), team.ID, 7500)
	rej := requireReject(t, err, RejectOverMaxBid)
	assert.Equal(t, 7000.0, rej.Extra["maxBidAllowed"])
	assert.Equal(t, 3000.0, rej.Extra["minimumAmountToKeep"])
	assert.Equal(t, 3, rej.Extra["remainingPlayers"])

	_, err = f.engine.PlaceBid(context.Background(), team.ID, 7000)
	require.NoError(t, err)
}

func TestPlaceBidUnenforcedAllowsFullPurse(t *testing.T) {
	f := newFixture(t)
	team := f.addTeam(t, "Strikers", 10000)
	player := f.addPlayer(t, "R. Sharma", 2000)

	require.NoError(t, f.engine.SetMaxPlayers(context.Background(), 3))
	f.goLive(t, player.ID)

	_, err := f.engine.PlaceBid(context.Background(), team.ID, 10000)
	require.NoError(t, err)

	// Over the purse still fails
	other := f.addTeam(t, "Royals", 10000)
	_, err = f.engine.PlaceBid(context.Background(), other.ID, 10500)
	requireReject(t, err, RejectOverMaxBid)
}

func TestPlaceBidStampsClockTime(t *testing.T) {
	f := newFixture(t)
	team := f.addTeam(t, "Strikers", 100000)
	player := f.addPlayer(t, "R. Sharma", 2000)
	f.goLive(t, player.ID)

	before := f.clock.Now()
	f.clock.Advance(42 * time.Second)

	result, err := f.engine.PlaceBid(context.Background(), team.ID, 2000)
	require.NoError(t, err)
	assert.Equal(t, before.Add(42*time.Second), result.Bid.Timestamp)
}
