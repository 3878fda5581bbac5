package admin

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ShrijaySharma/Ezauction/auction"
	"github.com/ShrijaySharma/Ezauction/models"
)

type noopBroadcaster struct{}

func (noopBroadcaster) Emit(string, any) {}

type adminFixture struct {
	app    *fiber.App
	engine *auction.Engine
	store  *auction.MemStore
}

// newAdminFixture mounts the admin routes the way the server does,
// including the alternate paths older consoles call.
func newAdminFixture(t *testing.T) *adminFixture {
	t.Helper()

	store := auction.NewMemStore()
	engine := auction.New(store, noopBroadcaster{}, nil)

	auctionHandler := NewAuctionHandler(engine, nil)
	playersHandler := NewPlayersHandler(engine, nil)

	app := fiber.New()
	g := app.Group("/api/admin")
	g.Post("/bid", auctionHandler.ProxyBid)
	g.Post("/admin-bid", auctionHandler.ProxyBid)
	g.Get("/history", auctionHandler.History)
	g.Post("/max-players", auctionHandler.SetMaxPlayers)
	g.Post("/enforce-max-bid", auctionHandler.SetEnforceMaxBid)
	g.Post("/players/:id/reset-unsold", playersHandler.ResetUnsoldTag)
	g.Post("/reset-unsold-tag/:id", playersHandler.ResetUnsoldTag)
	g.Post("/players/:id/remove-from-team", playersHandler.RemoveFromTeam)
	g.Post("/remove-player-from-team/:id", playersHandler.RemoveFromTeam)

	return &adminFixture{app: app, engine: engine, store: store}
}

func (f *adminFixture) request(t *testing.T, method, target string, body any) (int, map[string]any) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := f.app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var decoded map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&decoded))
	return resp.StatusCode, decoded
}

func (f *adminFixture) addTeam(t *testing.T, name string, budget float64) *models.Team {
	t.Helper()
	team := &models.Team{Name: name, OwnerName: name + " Owner", Budget: budget}
	require.NoError(t, f.store.SaveTeam(context.Background(), team))
	return team
}

func (f *adminFixture) addLivePlayer(t *testing.T, name string, basePrice float64) *models.Player {
	t.Helper()
	player := &models.Player{Name: name, Role: "Batsman", BasePrice: basePrice, Status: models.PlayerAvailable}
	require.NoError(t, f.store.SavePlayer(context.Background(), player))
	_, err := f.engine.LoadPlayer(context.Background(), player.ID)
	require.NoError(t, err)
	return player
}

func TestProxyBidReachableOnBothPaths(t *testing.T) {
	f := newAdminFixture(t)
	team := f.addTeam(t, "Strikers", 100000)
	f.addLivePlayer(t, "R. Sharma", 2000)

	status, body := f.request(t, http.MethodPost, "/api/admin/admin-bid",
		ProxyBidRequest{TeamID: team.ID, Amount: 2000})
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, true, body["success"])

	other := f.addTeam(t, "Royals", 100000)
	status, body = f.request(t, http.MethodPost, "/api/admin/bid",
		ProxyBidRequest{TeamID: other.ID, Amount: 2500})
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, true, body["success"])
}

func TestSetMaxPlayersAcceptsEitherKey(t *testing.T) {
	f := newAdminFixture(t)

	status, _ := f.request(t, http.MethodPost, "/api/admin/max-players",
		map[string]any{"maxPlayersPerTeam": 12})
	require.Equal(t, http.StatusOK, status)
	state, err := f.store.State(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 12, state.MaxPlayersPerTeam)

	status, _ = f.request(t, http.MethodPost, "/api/admin/max-players",
		map[string]any{"maxPlayers": 15})
	require.Equal(t, http.StatusOK, status)
	state, err = f.store.State(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 15, state.MaxPlayersPerTeam)

	status, body := f.request(t, http.MethodPost, "/api/admin/max-players", map[string]any{})
	require.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, false, body["success"])
}

func TestSetEnforceMaxBidAcceptsEitherKey(t *testing.T) {
	f := newAdminFixture(t)

	status, _ := f.request(t, http.MethodPost, "/api/admin/enforce-max-bid",
		map[string]any{"enforceMaxBid": true})
	require.Equal(t, http.StatusOK, status)
	state, err := f.store.State(context.Background())
	require.NoError(t, err)
	assert.True(t, state.EnforceMaxBid)

	status, _ = f.request(t, http.MethodPost, "/api/admin/enforce-max-bid",
		map[string]any{"enforce": false})
	require.Equal(t, http.StatusOK, status)
	state, err = f.store.State(context.Background())
	require.NoError(t, err)
	assert.False(t, state.EnforceMaxBid)
}

func TestResetUnsoldTagReachableOnBothPaths(t *testing.T) {
	f := newAdminFixture(t)

	for _, path := range []string{
		"/api/admin/reset-unsold-tag/%d",
		"/api/admin/players/%d/reset-unsold",
	} {
		player := &models.Player{Name: "P", Role: "Bowler", BasePrice: 1000,
			Status: models.PlayerUnsold, WasUnsold: true}
		require.NoError(t, f.store.SavePlayer(context.Background(), player))

		status, body := f.request(t, http.MethodPost, fmt.Sprintf(path, player.ID), nil)
		require.Equal(t, http.StatusOK, status)
		assert.Equal(t, true, body["success"])

		p, err := f.store.Player(context.Background(), player.ID)
		require.NoError(t, err)
		assert.Equal(t, models.PlayerAvailable, p.Status)
		assert.False(t, p.WasUnsold)
	}
}

func TestRemoveFromTeamReachableOnBothPaths(t *testing.T) {
	f := newAdminFixture(t)
	team := f.addTeam(t, "Strikers", 10000)

	for _, path := range []string{
		"/api/admin/remove-player-from-team/%d",
		"/api/admin/players/%d/remove-from-team",
	} {
		price := 3000.0
		player := &models.Player{Name: "P", Role: "Bowler", BasePrice: 1000,
			Status: models.PlayerSold, SoldPrice: &price, SoldToTeam: &team.ID}
		require.NoError(t, f.store.SavePlayer(context.Background(), player))
		team.Budget -= price
		require.NoError(t, f.store.SaveTeam(context.Background(), team))

		status, body := f.request(t, http.MethodPost, fmt.Sprintf(path, player.ID), nil)
		require.Equal(t, http.StatusOK, status)
		assert.Equal(t, true, body["success"])

		refunded, err := f.store.Team(context.Background(), team.ID)
		require.NoError(t, err)
		assert.Equal(t, 10000.0, refunded.Budget)
		team = refunded
	}
}

func TestHistoryReturnsFlattenedBids(t *testing.T) {
	f := newAdminFixture(t)
	a := f.addTeam(t, "Strikers", 100000)
	b := f.addTeam(t, "Royals", 100000)
	f.addLivePlayer(t, "R. Sharma", 2000)

	_, err := f.engine.PlaceBid(context.Background(), a.ID, 2000)
	require.NoError(t, err)
	_, err = f.engine.PlaceBid(context.Background(), b.ID, 2500)
	require.NoError(t, err)

	status, body := f.request(t, http.MethodGet, "/api/admin/history", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, true, body["success"])

	history := body["history"].([]any)
	require.Len(t, history, 2)
	top := history[0].(map[string]any)
	assert.Equal(t, 2500.0, top["amount"])
	assert.Equal(t, "Royals", top["team_name"])
	assert.Equal(t, "R. Sharma", top["player_name"])
	assert.Equal(t, 2000.0, top["base_price"])
}
