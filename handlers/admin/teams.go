// handlers/admin/teams.go - franchise management
package admin

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/ShrijaySharma/Ezauction/auction"
	"github.com/ShrijaySharma/Ezauction/handlers"
	"github.com/ShrijaySharma/Ezauction/models"
	"github.com/ShrijaySharma/Ezauction/utils"
)

type TeamsHandler struct {
	DB       *gorm.DB
	Events   auction.Broadcaster
	Log      *zap.Logger
	validate *validator.Validate
}

func NewTeamsHandler(db *gorm.DB, events auction.Broadcaster, log *zap.Logger) *TeamsHandler {
	if events == nil {
		events = auction.NopBroadcaster{}
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &TeamsHandler{DB: db, Events: events, Log: log, validate: validator.New()}
}

type TeamRequest struct {
	Name      string   `json:"name" validate:"required,min=1,max=100"`
	OwnerName string   `json:"ownerName" validate:"required,min=1,max=100"`
	Logo      *string  `json:"logo"`
	Budget    *float64 `json:"budget" validate:"omitempty,gt=0"`
}

type teamWithOwner struct {
	models.Team
	OwnerUsername *string `json:"owner_username,omitempty"`
}

// List returns every team with its owner login for the admin console.
func (h *TeamsHandler) List(c *fiber.Ctx) error {
	var teams []models.Team
	if err := h.DB.Order("id ASC").Find(&teams).Error; err != nil {
		return handlers.RespondError(c, err)
	}

	out := make([]teamWithOwner, 0, len(teams))
	for _, t := range teams {
		entry := teamWithOwner{Team: t}
		if t.OwnerID != nil {
			var owner models.User
			if err := h.DB.First(&owner, *t.OwnerID).Error; err == nil {
				entry.OwnerUsername = &owner.Username
			}
		}
		out = append(out, entry)
	}

	return c.JSON(fiber.Map{"success": true, "teams": out})
}

// Create registers a franchise and generates its owner login. The
// owner's password starts out equal to the username; both are kept on
// the team row so the admin can hand them over later.
func (h *TeamsHandler) Create(c *fiber.Ctx) error {
	var req TeamRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid request body"})
	}
	if err := h.validate.Struct(req); err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": err.Error()})
	}

	var count int64
	h.DB.Model(&models.Team{}).Where("name = ?", req.Name).Count(&count)
	if count > 0 {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Team name already taken"})
	}

	username := utils.GenerateOwnerUsername(req.Name, func(candidate string) bool {
		var n int64
		h.DB.Model(&models.User{}).Where("username = ?", candidate).Count(&n)
		return n > 0
	})
	password := username

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"success": false, "error": "Failed to hash password"})
	}

	team := models.Team{
		Name:          req.Name,
		OwnerName:     req.OwnerName,
		Logo:          req.Logo,
		AccessCode:    username,
		PlainPassword: password,
	}
	if req.Budget != nil {
		team.Budget = *req.Budget
	} else {
		team.Budget = 1000000
	}

	err = h.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&team).Error; err != nil {
			return err
		}
		owner := models.User{
			Username: username,
			Password: string(hash),
			Role:     models.RoleOwner,
			TeamID:   &team.ID,
		}
		if err := tx.Create(&owner).Error; err != nil {
			return err
		}
		team.OwnerID = &owner.ID
		return tx.Save(&team).Error
	})
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"success": false, "error": "Failed to create team"})
	}

	h.Log.Info("team created",
		zap.Uint("team_id", team.ID), zap.String("name", team.Name), zap.String("owner_username", username))
	h.Events.Emit(auction.EventTeamAdded, auction.TeamPayload{Team: &team})

	return c.Status(201).JSON(fiber.Map{
		"success": true,
		"team":    team,
		"credentials": fiber.Map{
			"username": username,
			"password": password,
		},
	})
}

// Update edits the display fields of a team. Budget changes go
// through SetBudget so they broadcast separately.
func (h *TeamsHandler) Update(c *fiber.Ctx) error {
	teamID, err := paramID(c, "id")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid team id"})
	}

	var req TeamRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid request body"})
	}
	if err := h.validate.Struct(req); err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": err.Error()})
	}

	var team models.Team
	if err := h.DB.First(&team, teamID).Error; err != nil {
		return c.Status(404).JSON(fiber.Map{"success": false, "error": "Team not found"})
	}

	var count int64
	h.DB.Model(&models.Team{}).Where("name = ? AND id <> ?", req.Name, teamID).Count(&count)
	if count > 0 {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Team name already taken"})
	}

	team.Name = req.Name
	team.OwnerName = req.OwnerName
	if req.Logo != nil {
		team.Logo = req.Logo
	}
	if err := h.DB.Save(&team).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"success": false, "error": "Failed to update team"})
	}

	h.Events.Emit(auction.EventTeamUpdated, auction.TeamPayload{Team: &team})
	return c.JSON(fiber.Map{"success": true, "team": team})
}

// Delete removes a team, refusing while it still holds bids or
// players. The owner login goes with it.
func (h *TeamsHandler) Delete(c *fiber.Ctx) error {
	teamID, err := paramID(c, "id")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid team id"})
	}

	var team models.Team
	if err := h.DB.First(&team, teamID).Error; err != nil {
		return c.Status(404).JSON(fiber.Map{"success": false, "error": "Team not found"})
	}

	var bidCount int64
	h.DB.Model(&models.Bid{}).Where("team_id = ?", teamID).Count(&bidCount)
	var soldCount int64
	h.DB.Model(&models.Player{}).
		Where("status = ? AND sold_to_team = ?", models.PlayerSold, teamID).
		Count(&soldCount)
	if bidCount > 0 || soldCount > 0 {
		return c.Status(400).JSON(fiber.Map{
			"success": false,
			"error":   "Cannot delete team with active bids or purchased players",
		})
	}

	err = h.DB.Transaction(func(tx *gorm.DB) error {
		if team.OwnerID != nil {
			if err := tx.Delete(&models.User{}, *team.OwnerID).Error; err != nil {
				return err
			}
		}
		return tx.Delete(&models.Team{}, teamID).Error
	})
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"success": false, "error": "Failed to delete team"})
	}

	h.Events.Emit(auction.EventTeamDeleted, auction.TeamDeletedPayload{TeamID: teamID})
	return c.JSON(fiber.Map{"success": true})
}

type SetBudgetRequest struct {
	Budget float64 `json:"budget" validate:"gt=0"`
}

// SetBudget replaces a team's total budget.
func (h *TeamsHandler) SetBudget(c *fiber.Ctx) error {
	teamID, err := paramID(c, "id")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid team id"})
	}

	var req SetBudgetRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid request body"})
	}
	if err := h.validate.Struct(req); err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": err.Error()})
	}

	var team models.Team
	if err := h.DB.First(&team, teamID).Error; err != nil {
		return c.Status(404).JSON(fiber.Map{"success": false, "error": "Team not found"})
	}

	team.Budget = req.Budget
	if err := h.DB.Save(&team).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"success": false, "error": "Failed to update budget"})
	}

	h.Events.Emit(auction.EventTeamBudgetUpdated, auction.TeamBudgetUpdatedPayload{
		TeamID: team.ID,
		Budget: &team.Budget,
	})
	return c.JSON(fiber.Map{"success": true, "team": team})
}

// LockBidding freezes or unfreezes a single team's bidding.
func (h *TeamsHandler) LockBidding(c *fiber.Ctx) error {
	teamID, err := paramID(c, "id")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid team id"})
	}

	var req LockBiddingRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid request body"})
	}

	var team models.Team
	if err := h.DB.First(&team, teamID).Error; err != nil {
		return c.Status(404).JSON(fiber.Map{"success": false, "error": "Team not found"})
	}

	team.BiddingLocked = req.Locked
	if err := h.DB.Save(&team).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"success": false, "error": "Failed to update team"})
	}

	h.Events.Emit(auction.EventTeamBiddingLocked, auction.TeamBiddingLockedPayload{
		TeamID: team.ID,
		Locked: team.BiddingLocked,
	})
	return c.JSON(fiber.Map{"success": true, "team": team})
}

// Credentials returns the owner login generated at team creation.
func (h *TeamsHandler) Credentials(c *fiber.Ctx) error {
	teamID, err := paramID(c, "id")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid team id"})
	}

	var team models.Team
	if err := h.DB.First(&team, teamID).Error; err != nil {
		return c.Status(404).JSON(fiber.Map{"success": false, "error": "Team not found"})
	}

	return c.JSON(fiber.Map{
		"success":  true,
		"username": team.AccessCode,
		"password": team.PlainPassword,
	})
}

type teamSquad struct {
	Team    models.Team     `json:"team"`
	Players []models.Player `json:"players"`
	Spent   float64         `json:"spent"`
}

// Squads returns every team with its purchased players and spend.
func (h *TeamsHandler) Squads(c *fiber.Ctx) error {
	var teams []models.Team
	if err := h.DB.Order("id ASC").Find(&teams).Error; err != nil {
		return handlers.RespondError(c, err)
	}

	out := make([]teamSquad, 0, len(teams))
	for _, t := range teams {
		var players []models.Player
		err := h.DB.
			Where("status = ? AND sold_to_team = ?", models.PlayerSold, t.ID).
			Order("serial_number ASC NULLS LAST, id ASC").
			Find(&players).Error
		if err != nil {
			return handlers.RespondError(c, err)
		}
		spent := 0.0
		for _, p := range players {
			if p.SoldPrice != nil {
				spent += *p.SoldPrice
			}
		}
		out = append(out, teamSquad{Team: t, Players: players, Spent: spent})
	}

	return c.JSON(fiber.Map{"success": true, "squads": out})
}
