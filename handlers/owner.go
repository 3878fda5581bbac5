// handlers/owner.go - team-owner dashboard endpoints
package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/ShrijaySharma/Ezauction/auction"
	"github.com/ShrijaySharma/Ezauction/middleware"
	"github.com/ShrijaySharma/Ezauction/models"
)

type OwnerHandler struct {
	Engine *auction.Engine
}

func NewOwnerHandler(engine *auction.Engine) *OwnerHandler {
	return &OwnerHandler{Engine: engine}
}

// CurrentInfo returns the full owner dashboard snapshot in one call.
func (h *OwnerHandler) CurrentInfo(c *fiber.Ctx) error {
	teamID, err := middleware.GetTeamID(c)
	if err != nil {
		return RespondError(c, err)
	}

	info, err := h.Engine.OwnerInfo(c.Context(), teamID)
	if err != nil {
		return RespondError(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "info": info})
}

type BidRequest struct {
	Amount float64 `json:"amount"`
}

// Bid places a bid for the owner's team on the player on the block.
func (h *OwnerHandler) Bid(c *fiber.Ctx) error {
	teamID, err := middleware.GetTeamID(c)
	if err != nil {
		return RespondError(c, err)
	}

	var req BidRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid request body"})
	}

	result, err := h.Engine.PlaceBid(c.Context(), teamID, req.Amount)
	if err != nil {
		return RespondError(c, err)
	}

	return c.JSON(fiber.Map{
		"success":         true,
		"highestBid":      result.Bid,
		"walletBalance":   result.WalletBalance,
		"totalBudget":     result.TotalBudget,
		"committedAmount": result.CommittedAmount,
	})
}

type playerWithTeam struct {
	models.Player
	TeamName *string `json:"team_name,omitempty"`
}

// Players lists players by status. SOLD is scoped to the owner's own
// team; the other statuses are global.
func (h *OwnerHandler) Players(c *fiber.Ctx) error {
	teamID, err := middleware.GetTeamID(c)
	if err != nil {
		return RespondError(c, err)
	}

	status := c.Query("status", models.PlayerAvailable)
	store := h.Engine.Store()

	var players []models.Player
	if status == models.PlayerSold {
		players, err = store.PlayersSoldTo(c.Context(), teamID)
	} else {
		players, err = store.PlayersByStatus(c.Context(), status)
	}
	if err != nil {
		return RespondError(c, err)
	}

	teams, err := store.Teams(c.Context())
	if err != nil {
		return RespondError(c, err)
	}
	names := make(map[uint]string, len(teams))
	for _, t := range teams {
		names[t.ID] = t.Name
	}

	out := make([]playerWithTeam, 0, len(players))
	for _, p := range players {
		entry := playerWithTeam{Player: p}
		if p.SoldToTeam != nil {
			if name, ok := names[*p.SoldToTeam]; ok {
				entry.TeamName = &name
			}
		}
		out = append(out, entry)
	}

	return c.JSON(fiber.Map{"success": true, "players": out})
}

// Teams lists every team with its public budget standing.
func (h *OwnerHandler) Teams(c *fiber.Ctx) error {
	teams, err := h.Engine.Store().Teams(c.Context())
	if err != nil {
		return RespondError(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "teams": teams})
}

// TeamPlayers returns the owner's own squad.
func (h *OwnerHandler) TeamPlayers(c *fiber.Ctx) error {
	teamID, err := middleware.GetTeamID(c)
	if err != nil {
		return RespondError(c, err)
	}

	players, err := h.Engine.Store().PlayersSoldTo(c.Context(), teamID)
	if err != nil {
		return RespondError(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "players": players})
}
