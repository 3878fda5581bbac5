// handlers/admin/auction.go - auctioneer console: live-round control
package admin

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/ShrijaySharma/Ezauction/auction"
	"github.com/ShrijaySharma/Ezauction/handlers"
)

type AuctionHandler struct {
	Engine *auction.Engine
	Log    *zap.Logger
}

func NewAuctionHandler(engine *auction.Engine, log *zap.Logger) *AuctionHandler {
	if log == nil {
		log = zap.NewNop()
	}
	return &AuctionHandler{Engine: engine, Log: log}
}

// State returns the auction singleton row.
func (h *AuctionHandler) State(c *fiber.Ctx) error {
	state, err := h.Engine.State(c.Context())
	if err != nil {
		return handlers.RespondError(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "state": state})
}

type SetStatusRequest struct {
	Status string `json:"status"`
}

// SetStatus switches the auction between STOPPED, LIVE and PAUSED.
func (h *AuctionHandler) SetStatus(c *fiber.Ctx) error {
	var req SetStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid request body"})
	}
	if err := h.Engine.SetAuctionStatus(c.Context(), req.Status); err != nil {
		return handlers.RespondError(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "status": req.Status})
}

type LoadPlayerRequest struct {
	PlayerID uint `json:"playerId"`
}

// LoadPlayer puts a player on the block and opens bidding.
func (h *AuctionHandler) LoadPlayer(c *fiber.Ctx) error {
	var req LoadPlayerRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid request body"})
	}

	player, err := h.Engine.LoadPlayer(c.Context(), req.PlayerID)
	if err != nil {
		return handlers.RespondError(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "player": player})
}

// CurrentBid returns the leading bid for the player on the block.
func (h *AuctionHandler) CurrentBid(c *fiber.Ctx) error {
	info, err := h.Engine.CurrentBid(c.Context())
	if err != nil {
		return handlers.RespondError(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "current": info})
}

// Bids lists every bid on the player on the block, highest first.
func (h *AuctionHandler) Bids(c *fiber.Ctx) error {
	bids, err := h.Engine.CurrentBids(c.Context())
	if err != nil {
		return handlers.RespondError(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "bids": bids})
}

// UndoBid removes the most recently placed bid on the live player.
func (h *AuctionHandler) UndoBid(c *fiber.Ctx) error {
	result, err := h.Engine.UndoLastBid(c.Context())
	if err != nil {
		return handlers.RespondError(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "result": result})
}

// ResetBidding wipes every bid on the live player.
func (h *AuctionHandler) ResetBidding(c *fiber.Ctx) error {
	playerID, err := h.Engine.ResetBidding(c.Context())
	if err != nil {
		return handlers.RespondError(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "playerId": playerID})
}

type LockBiddingRequest struct {
	Locked bool `json:"locked"`
}

// LockBidding toggles the global bid freeze.
func (h *AuctionHandler) LockBidding(c *fiber.Ctx) error {
	var req LockBiddingRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid request body"})
	}
	if err := h.Engine.SetBiddingLocked(c.Context(), req.Locked); err != nil {
		return handlers.RespondError(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "locked": req.Locked})
}

// MaxPlayers returns the per-team roster cap.
func (h *AuctionHandler) MaxPlayers(c *fiber.Ctx) error {
	state, err := h.Engine.State(c.Context())
	if err != nil {
		return handlers.RespondError(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "maxPlayers": state.MaxPlayersPerTeam})
}

// SetMaxPlayersRequest takes the cap under either key; older consoles
// send maxPlayers, current ones maxPlayersPerTeam.
type SetMaxPlayersRequest struct {
	MaxPlayers        *int `json:"maxPlayers"`
	MaxPlayersPerTeam *int `json:"maxPlayersPerTeam"`
}

func (h *AuctionHandler) SetMaxPlayers(c *fiber.Ctx) error {
	var req SetMaxPlayersRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid request body"})
	}

	value := req.MaxPlayersPerTeam
	if value == nil {
		value = req.MaxPlayers
	}
	if value == nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "maxPlayersPerTeam is required"})
	}

	if err := h.Engine.SetMaxPlayers(c.Context(), *value); err != nil {
		return handlers.RespondError(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "maxPlayers": *value})
}

type SetBidIncrementsRequest struct {
	Increment1 float64 `json:"increment1"`
	Increment2 float64 `json:"increment2"`
}

func (h *AuctionHandler) SetBidIncrements(c *fiber.Ctx) error {
	var req SetBidIncrementsRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid request body"})
	}
	if err := h.Engine.SetBidIncrements(c.Context(), req.Increment1, req.Increment2); err != nil {
		return handlers.RespondError(c, err)
	}
	return c.JSON(fiber.Map{
		"success":    true,
		"increment1": req.Increment1,
		"increment2": req.Increment2,
	})
}

// SetEnforceMaxBidRequest takes the toggle under either key.
type SetEnforceMaxBidRequest struct {
	Enforce       *bool `json:"enforce"`
	EnforceMaxBid *bool `json:"enforceMaxBid"`
}

func (h *AuctionHandler) SetEnforceMaxBid(c *fiber.Ctx) error {
	var req SetEnforceMaxBidRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid request body"})
	}

	value := req.EnforceMaxBid
	if value == nil {
		value = req.Enforce
	}
	if value == nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "enforceMaxBid is required"})
	}

	if err := h.Engine.SetEnforceMaxBid(c.Context(), *value); err != nil {
		return handlers.RespondError(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "enforceMaxBid": *value})
}

type MarkPlayerRequest struct {
	PlayerID   uint     `json:"playerId"`
	Status     string   `json:"status"`
	SoldPrice  *float64 `json:"soldPrice"`
	SoldToTeam *uint    `json:"soldToTeam"`
}

// MarkPlayer settles the live round as SOLD or UNSOLD and auto-loads
// the next candidate.
func (h *AuctionHandler) MarkPlayer(c *fiber.Ctx) error {
	var req MarkPlayerRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid request body"})
	}

	result, err := h.Engine.MarkPlayer(c.Context(), req.PlayerID, req.Status, req.SoldPrice, req.SoldToTeam)
	if err != nil {
		return handlers.RespondError(c, err)
	}
	return c.JSON(fiber.Map{
		"success":          true,
		"result":           result,
		"nextPlayerLoaded": result.NextPlayerLoaded,
		"nextPlayer":       result.NextPlayer,
	})
}

// History returns the newest bids across all players with player and
// team names attached, for the admin console's activity log.
func (h *AuctionHandler) History(c *fiber.Ctx) error {
	history, err := h.Engine.BidHistory(c.Context())
	if err != nil {
		return handlers.RespondError(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "history": history})
}

type ProxyBidRequest struct {
	TeamID uint    `json:"teamId"`
	Amount float64 `json:"amount"`
}

// ProxyBid places a bid on behalf of a team, for owners calling in by
// phone. It runs through the same validation as an owner bid.
func (h *AuctionHandler) ProxyBid(c *fiber.Ctx) error {
	var req ProxyBidRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid request body"})
	}

	result, err := h.Engine.PlaceBid(c.Context(), req.TeamID, req.Amount)
	if err != nil {
		return handlers.RespondError(c, err)
	}

	h.Log.Info("proxy bid placed",
		zap.Uint("team_id", req.TeamID), zap.Float64("amount", req.Amount))

	return c.JSON(fiber.Map{"success": true, "bid": result.Bid})
}
