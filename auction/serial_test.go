package auction

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ShrijaySharma/Ezauction/models"
)

func serialsByName(t *testing.T, f *fixture) map[string]*int {
	t.Helper()
	players, err := f.store.Players(context.Background())
	require.NoError(t, err)
	out := make(map[string]*int, len(players))
	for _, p := range players {
		out[p.Name] = p.SerialNumber
	}
	return out
}

func TestCreatePlayerShiftsCollidingSerials(t *testing.T) {
	f := newFixture(t)
	f.addPlayerWithSerial(t, "A", 1)
	f.addPlayerWithSerial(t, "B", 2)
	f.addPlayerWithSerial(t, "C", 3)
	f.addPlayerWithSerial(t, "D", 4)

	serial := 2
	newcomer := &models.Player{Name: "E", Role: "Bowler", BasePrice: 1000, SerialNumber: &serial}
	require.NoError(t, f.engine.CreatePlayer(context.Background(), newcomer))

	// [1,2,3,4] with an insert at 2 becomes [1,3,4,5] around it
	got := serialsByName(t, f)
	assert.Equal(t, 1, *got["A"])
	assert.Equal(t, 3, *got["B"])
	assert.Equal(t, 4, *got["C"])
	assert.Equal(t, 5, *got["D"])
	assert.Equal(t, 2, *got["E"])
}

func TestCreatePlayerNoShiftWithoutCollision(t *testing.T) {
	f := newFixture(t)
	f.addPlayerWithSerial(t, "A", 1)
	f.addPlayerWithSerial(t, "B", 2)

	serial := 5
	newcomer := &models.Player{Name: "C", Role: "Bowler", BasePrice: 1000, SerialNumber: &serial}
	require.NoError(t, f.engine.CreatePlayer(context.Background(), newcomer))

	got := serialsByName(t, f)
	assert.Equal(t, 1, *got["A"])
	assert.Equal(t, 2, *got["B"])
	assert.Equal(t, 5, *got["C"])
}

func TestUpdatePlayerMoveSerialDownShiftsRangeUp(t *testing.T) {
	f := newFixture(t)
	f.addPlayerWithSerial(t, "A", 1)
	f.addPlayerWithSerial(t, "B", 2)
	f.addPlayerWithSerial(t, "C", 3)
	d := f.addPlayerWithSerial(t, "D", 4)

	// Move D from 4 to 2: B and C step aside upward
	serial := 2
	_, err := f.engine.UpdatePlayer(context.Background(), d.ID, PlayerUpdate{
		SerialNumber: &serial, SerialSet: true,
	})
	require.NoError(t, err)

	got := serialsByName(t, f)
	assert.Equal(t, 1, *got["A"])
	assert.Equal(t, 3, *got["B"])
	assert.Equal(t, 4, *got["C"])
	assert.Equal(t, 2, *got["D"])
}

func TestUpdatePlayerMoveSerialUpShiftsRangeDown(t *testing.T) {
	f := newFixture(t)
	a := f.addPlayerWithSerial(t, "A", 1)
	f.addPlayerWithSerial(t, "B", 2)
	f.addPlayerWithSerial(t, "C", 3)
	f.addPlayerWithSerial(t, "D", 4)

	// Move A from 1 to 3: B and C slide down
	serial := 3
	_, err := f.engine.UpdatePlayer(context.Background(), a.ID, PlayerUpdate{
		SerialNumber: &serial, SerialSet: true,
	})
	require.NoError(t, err)

	got := serialsByName(t, f)
	assert.Equal(t, 3, *got["A"])
	assert.Equal(t, 1, *got["B"])
	assert.Equal(t, 2, *got["C"])
	assert.Equal(t, 4, *got["D"])
}

func TestUpdatePlayerClearSerialClosesGap(t *testing.T) {
	f := newFixture(t)
	f.addPlayerWithSerial(t, "A", 1)
	b := f.addPlayerWithSerial(t, "B", 2)
	f.addPlayerWithSerial(t, "C", 3)
	f.addPlayerWithSerial(t, "D", 4)

	_, err := f.engine.UpdatePlayer(context.Background(), b.ID, PlayerUpdate{
		SerialNumber: nil, SerialSet: true,
	})
	require.NoError(t, err)

	got := serialsByName(t, f)
	assert.Equal(t, 1, *got["A"])
	assert.Nil(t, got["B"])
	assert.Equal(t, 2, *got["C"])
	assert.Equal(t, 3, *got["D"])
}

func TestUpdatePlayerSerialAbsentLeavesSequenceAlone(t *testing.T) {
	f := newFixture(t)
	f.addPlayerWithSerial(t, "A", 1)
	b := f.addPlayerWithSerial(t, "B", 2)

	name := "B. Kumar"
	_, err := f.engine.UpdatePlayer(context.Background(), b.ID, PlayerUpdate{Name: &name})
	require.NoError(t, err)

	got := serialsByName(t, f)
	assert.Equal(t, 1, *got["A"])
	assert.Equal(t, 2, *got["B. Kumar"])
}

func TestUpdatePlayerPartialFields(t *testing.T) {
	f := newFixture(t)
	p := f.addPlayer(t, "R. Sharma", 2000)

	price := 3000.0
	role := "All-rounder"
	updated, err := f.engine.UpdatePlayer(context.Background(), p.ID, PlayerUpdate{
		BasePrice: &price, Role: &role,
	})
	require.NoError(t, err)

	assert.Equal(t, "R. Sharma", updated.Name)
	assert.Equal(t, 3000.0, updated.BasePrice)
	assert.Equal(t, "All-rounder", updated.Role)
}

func TestDeletePlayerBlockedWhileLive(t *testing.T) {
	f := newFixture(t)
	p := f.addPlayer(t, "R. Sharma", 2000)
	f.goLive(t, p.ID)

	err := f.engine.DeletePlayer(context.Background(), p.ID)
	requireReject(t, err, RejectPlayerLive)
}

func TestDeletePlayerRemovesBids(t *testing.T) {
	f := newFixture(t)
	team := f.addTeam(t, "Strikers", 20000)
	p := f.addPlayer(t, "R. Sharma", 2000)
	other := f.addPlayer(t, "Other", 1000)
	f.goLive(t, p.ID)

	_, err := f.engine.PlaceBid(context.Background(), team.ID, 2000)
	require.NoError(t, err)

	// Load another player so the first can be deleted
	_, err = f.engine.LoadPlayer(context.Background(), other.ID)
	require.NoError(t, err)

	require.NoError(t, f.engine.DeletePlayer(context.Background(), p.ID))

	_, err = f.store.Player(context.Background(), p.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	bids, err := f.store.BidsForPlayer(context.Background(), p.ID)
	require.NoError(t, err)
	assert.Empty(t, bids)
}
