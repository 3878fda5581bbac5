// handlers/admin/players.go - roster management
package admin

import (
	"encoding/json"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/ShrijaySharma/Ezauction/auction"
	"github.com/ShrijaySharma/Ezauction/handlers"
	"github.com/ShrijaySharma/Ezauction/models"
)

type PlayersHandler struct {
	Engine   *auction.Engine
	Log      *zap.Logger
	validate *validator.Validate
}

func NewPlayersHandler(engine *auction.Engine, log *zap.Logger) *PlayersHandler {
	if log == nil {
		log = zap.NewNop()
	}
	return &PlayersHandler{Engine: engine, Log: log, validate: validator.New()}
}

type PlayerRequest struct {
	Name         string  `json:"name" validate:"required,min=1,max=100"`
	Image        *string `json:"image"`
	Role         string  `json:"role" validate:"required"`
	Country      *string `json:"country"`
	Age          *int    `json:"age" validate:"omitempty,gte=10,lte=60"`
	BasePrice    float64 `json:"basePrice" validate:"gte=0"`
	SerialNumber *int    `json:"serialNumber" validate:"omitempty,gte=1"`
}

// List returns the whole roster in serial order.
func (h *PlayersHandler) List(c *fiber.Ctx) error {
	players, err := h.Engine.Store().Players(c.Context())
	if err != nil {
		return handlers.RespondError(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "players": players})
}

// ByStatus filters the roster on status.
func (h *PlayersHandler) ByStatus(c *fiber.Ctx) error {
	status := c.Query("status", models.PlayerAvailable)
	players, err := h.Engine.Store().PlayersByStatus(c.Context(), status)
	if err != nil {
		return handlers.RespondError(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "players": players})
}

// Create adds one player, shifting serials on collision.
func (h *PlayersHandler) Create(c *fiber.Ctx) error {
	var req PlayerRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid request body"})
	}
	if err := h.validate.Struct(req); err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": err.Error()})
	}

	player := models.Player{
		Name:         req.Name,
		Image:        req.Image,
		Role:         req.Role,
		Country:      req.Country,
		Age:          req.Age,
		BasePrice:    req.BasePrice,
		SerialNumber: req.SerialNumber,
	}
	if err := h.Engine.CreatePlayer(c.Context(), &player); err != nil {
		return handlers.RespondError(c, err)
	}
	return c.Status(201).JSON(fiber.Map{"success": true, "player": player})
}

type BulkCreateRequest struct {
	Players []PlayerRequest `json:"players" validate:"required,min=1,dive"`
}

// BulkCreate imports a batch of players in one transaction.
func (h *PlayersHandler) BulkCreate(c *fiber.Ctx) error {
	var req BulkCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid request body"})
	}
	if err := h.validate.Struct(req); err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": err.Error()})
	}

	players := make([]models.Player, 0, len(req.Players))
	for _, p := range req.Players {
		players = append(players, models.Player{
			Name:         p.Name,
			Image:        p.Image,
			Role:         p.Role,
			Country:      p.Country,
			Age:          p.Age,
			BasePrice:    p.BasePrice,
			SerialNumber: p.SerialNumber,
		})
	}

	count, err := h.Engine.CreatePlayers(c.Context(), players)
	if err != nil {
		return handlers.RespondError(c, err)
	}
	return c.Status(201).JSON(fiber.Map{"success": true, "count": count})
}

// Update applies a partial edit. The raw body is inspected so that
// "serialNumber": null (clear and close the gap) can be told apart
// from the key being absent (leave it alone).
func (h *PlayersHandler) Update(c *fiber.Ctx) error {
	playerID, err := paramID(c, "id")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid player id"})
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(c.Body(), &raw); err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid request body"})
	}

	var upd auction.PlayerUpdate
	if err := decodeField(raw, "name", &upd.Name); err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid name"})
	}
	if err := decodeField(raw, "image", &upd.Image); err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid image"})
	}
	if err := decodeField(raw, "role", &upd.Role); err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid role"})
	}
	if err := decodeField(raw, "country", &upd.Country); err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid country"})
	}
	if err := decodeField(raw, "age", &upd.Age); err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid age"})
	}
	if err := decodeField(raw, "basePrice", &upd.BasePrice); err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid basePrice"})
	}
	if err := decodeField(raw, "status", &upd.Status); err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid status"})
	}
	if err := decodeField(raw, "soldPrice", &upd.SoldPrice); err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid soldPrice"})
	}
	if err := decodeField(raw, "soldToTeam", &upd.SoldToTeam); err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid soldToTeam"})
	}
	if msg, ok := raw["serialNumber"]; ok {
		upd.SerialSet = true
		if err := json.Unmarshal(msg, &upd.SerialNumber); err != nil {
			return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid serialNumber"})
		}
	}

	player, err := h.Engine.UpdatePlayer(c.Context(), playerID, upd)
	if err != nil {
		return handlers.RespondError(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "player": player})
}

// Delete removes a player unless it is currently on the block.
func (h *PlayersHandler) Delete(c *fiber.Ctx) error {
	playerID, err := paramID(c, "id")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid player id"})
	}

	if err := h.Engine.DeletePlayer(c.Context(), playerID); err != nil {
		return handlers.RespondError(c, err)
	}
	return c.JSON(fiber.Map{"success": true})
}

// DeleteAll wipes the roster and every bid. Used between seasons.
func (h *PlayersHandler) DeleteAll(c *fiber.Ctx) error {
	if err := h.Engine.DeleteAllPlayers(c.Context()); err != nil {
		return handlers.RespondError(c, err)
	}
	h.Log.Warn("all players deleted")
	return c.JSON(fiber.Map{"success": true})
}

// ResetUnsoldTag moves an UNSOLD player back to AVAILABLE and clears
// its retry flag.
func (h *PlayersHandler) ResetUnsoldTag(c *fiber.Ctx) error {
	playerID, err := paramID(c, "id")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid player id"})
	}

	if err := h.Engine.ResetUnsoldTag(c.Context(), playerID); err != nil {
		return handlers.RespondError(c, err)
	}
	return c.JSON(fiber.Map{"success": true})
}

// RemoveFromTeam reverses a sale: refunds the buyer and puts the
// player back in the pool.
func (h *PlayersHandler) RemoveFromTeam(c *fiber.Ctx) error {
	playerID, err := paramID(c, "id")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid player id"})
	}

	player, err := h.Engine.RemoveFromTeam(c.Context(), playerID)
	if err != nil {
		return handlers.RespondError(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "player": player})
}

func paramID(c *fiber.Ctx, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Params(name), 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}

// decodeField unmarshals raw[key] into dst when the key is present.
func decodeField[T any](raw map[string]json.RawMessage, key string, dst **T) error {
	msg, ok := raw[key]
	if !ok {
		return nil
	}
	return json.Unmarshal(msg, dst)
}
