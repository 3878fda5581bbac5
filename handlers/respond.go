// handlers/respond.go - shared error-to-HTTP mapping
package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/ShrijaySharma/Ezauction/auction"
)

// RespondError maps engine errors onto the JSON error shape the
// dashboards expect. Rejections carry their extra fields (minimumBid,
// maxBidAllowed, ...) at the top level of the body.
func RespondError(c *fiber.Ctx, err error) error {
	var rej *auction.RejectError
	if errors.As(err, &rej) {
		body := fiber.Map{"success": false, "error": rej.Message}
		for k, v := range rej.Extra {
			body[k] = v
		}
		return c.Status(400).JSON(body)
	}

	if errors.Is(err, auction.ErrNotFound) {
		return c.Status(404).JSON(fiber.Map{"success": false, "error": err.Error()})
	}

	var fe *fiber.Error
	if errors.As(err, &fe) {
		return c.Status(fe.Code).JSON(fiber.Map{"success": false, "error": fe.Message})
	}

	return c.Status(500).JSON(fiber.Map{"success": false, "error": "Internal server error"})
}
