// handlers/host.go - read-only overlay endpoints
package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/ShrijaySharma/Ezauction/auction"
)

type HostHandler struct {
	Engine *auction.Engine
}

func NewHostHandler(engine *auction.Engine) *HostHandler {
	return &HostHandler{Engine: engine}
}

// CurrentInfo returns the overlay snapshot: live player, leading bid
// and global sale stats.
func (h *HostHandler) CurrentInfo(c *fiber.Ctx) error {
	info, err := h.Engine.HostInfo(c.Context())
	if err != nil {
		return RespondError(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "info": info})
}

// CurrentBids lists every bid on the player on the block, highest
// first.
func (h *HostHandler) CurrentBids(c *fiber.Ctx) error {
	bids, err := h.Engine.CurrentBids(c.Context())
	if err != nil {
		return RespondError(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "bids": bids})
}

// TeamBudgets returns all teams with their remaining budgets for the
// overlay ticker.
func (h *HostHandler) TeamBudgets(c *fiber.Ctx) error {
	teams, err := h.Engine.Store().Teams(c.Context())
	if err != nil {
		return RespondError(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "teams": teams})
}
