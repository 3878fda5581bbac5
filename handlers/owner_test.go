package handlers

import (
	"bytes"
	"context"
	"encoding/json"
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

type ownerFixture struct {
	app    *fiber.App
	engine *auction.Engine
	store  *auction.MemStore
	team   *models.Team
}

// newOwnerFixture wires the owner routes behind a stub auth layer that
// injects the team claim the way a decoded token would.
func newOwnerFixture(t *testing.T) *ownerFixture {
	t.Helper()

	store := auction.NewMemStore()
	engine := auction.New(store, noopBroadcaster{}, nil)

	team := &models.Team{Name: "Strikers", OwnerName: "Strikers Owner", Budget: 100000}
	require.NoError(t, store.SaveTeam(context.Background(), team))

	h := NewOwnerHandler(engine)
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("role", models.RoleOwner)
		c.Locals("teamId", float64(team.ID))
		return c.Next()
	})
	owner := app.Group("/api/owner")
	owner.Get("/current-player-info", h.CurrentInfo)
	owner.Post("/bid", h.Bid)
	owner.Get("/players", h.Players)
	owner.Get("/teams", h.Teams)
	owner.Get("/team-players", h.TeamPlayers)

	return &ownerFixture{app: app, engine: engine, store: store, team: team}
}

func (f *ownerFixture) addLivePlayer(t *testing.T, name string, basePrice float64) *models.Player {
	t.Helper()
	player := &models.Player{Name: name, Role: "Batsman", BasePrice: basePrice, Status: models.PlayerAvailable}
	require.NoError(t, f.store.SavePlayer(context.Background(), player))
	_, err := f.engine.LoadPlayer(context.Background(), player.ID)
	require.NoError(t, err)
	return player
}

func doJSON(t *testing.T, app *fiber.App, method, target string, body any) (int, map[string]any) {
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

	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var decoded map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&decoded))
	return resp.StatusCode, decoded
}

func TestOwnerCurrentInfo(t *testing.T) {
	f := newOwnerFixture(t)
	f.addLivePlayer(t, "R. Sharma", 2000)

	status, body := doJSON(t, f.app, http.MethodGet, "/api/owner/current-player-info", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, true, body["success"])

	info := body["info"].(map[string]any)
	assert.Equal(t, "R. Sharma", info["player"].(map[string]any)["name"])
	assert.Equal(t, 2000.0, info["currentBid"])
	assert.Equal(t, 100000.0, info["walletBalance"])
	assert.Equal(t, models.AuctionLive, info["status"])
}

func TestOwnerBid(t *testing.T) {
	f := newOwnerFixture(t)
	f.addLivePlayer(t, "R. Sharma", 2000)

	status, body := doJSON(t, f.app, http.MethodPost, "/api/owner/bid", BidRequest{Amount: 2000})
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, 98000.0, body["walletBalance"])
	assert.Equal(t, 100000.0, body["totalBudget"])
	assert.Equal(t, 2000.0, body["committedAmount"])
	assert.Equal(t, 2000.0, body["highestBid"].(map[string]any)["amount"])
}

func TestOwnerBidBelowMinimum(t *testing.T) {
	f := newOwnerFixture(t)
	f.addLivePlayer(t, "R. Sharma", 2000)

	status, body := doJSON(t, f.app, http.MethodPost, "/api/owner/bid", BidRequest{Amount: 1500})
	require.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, 2000.0, body["minimumBid"])
	assert.NotEmpty(t, body["error"])
}

func TestOwnerBidNoLivePlayer(t *testing.T) {
	f := newOwnerFixture(t)

	status, body := doJSON(t, f.app, http.MethodPost, "/api/owner/bid", BidRequest{Amount: 2000})
	require.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, false, body["success"])
}

func TestOwnerRoutesRejectTokenWithoutTeam(t *testing.T) {
	engine := auction.New(auction.NewMemStore(), noopBroadcaster{}, nil)
	h := NewOwnerHandler(engine)

	// No teamId local, as with an admin or host token
	app := fiber.New()
	app.Get("/api/owner/current-player-info", h.CurrentInfo)

	status, body := doJSON(t, app, http.MethodGet, "/api/owner/current-player-info", nil)
	require.Equal(t, http.StatusForbidden, status)
	assert.Equal(t, false, body["success"])
}

func TestOwnerPlayersSoldScopedToOwnTeam(t *testing.T) {
	f := newOwnerFixture(t)
	other := &models.Team{Name: "Royals", OwnerName: "Royals Owner", Budget: 100000}
	require.NoError(t, f.store.SaveTeam(context.Background(), other))

	price := 3000.0
	mine := &models.Player{Name: "Mine", Role: "Bowler", BasePrice: 1000,
		Status: models.PlayerSold, SoldPrice: &price, SoldToTeam: &f.team.ID}
	require.NoError(t, f.store.SavePlayer(context.Background(), mine))
	theirs := &models.Player{Name: "Theirs", Role: "Bowler", BasePrice: 1000,
		Status: models.PlayerSold, SoldPrice: &price, SoldToTeam: &other.ID}
	require.NoError(t, f.store.SavePlayer(context.Background(), theirs))

	status, body := doJSON(t, f.app, http.MethodGet, "/api/owner/players?status=SOLD", nil)
	require.Equal(t, http.StatusOK, status)

	players := body["players"].([]any)
	require.Len(t, players, 1)
	entry := players[0].(map[string]any)
	assert.Equal(t, "Mine", entry["name"])
	assert.Equal(t, "Strikers", entry["team_name"])
}

func TestOwnerTeamPlayers(t *testing.T) {
	f := newOwnerFixture(t)

	price := 3000.0
	squad := &models.Player{Name: "Mine", Role: "Bowler", BasePrice: 1000,
		Status: models.PlayerSold, SoldPrice: &price, SoldToTeam: &f.team.ID}
	require.NoError(t, f.store.SavePlayer(context.Background(), squad))

	status, body := doJSON(t, f.app, http.MethodGet, "/api/owner/team-players", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Len(t, body["players"].([]any), 1)
}
