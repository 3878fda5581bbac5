// handlers/appowner.go - platform-owner account management
package handlers

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/ShrijaySharma/Ezauction/models"
)

type AppOwnerHandler struct {
	DB       *gorm.DB
	Log      *zap.Logger
	validate *validator.Validate
}

func NewAppOwnerHandler(db *gorm.DB, log *zap.Logger) *AppOwnerHandler {
	if log == nil {
		log = zap.NewNop()
	}
	return &AppOwnerHandler{DB: db, Log: log, validate: validator.New()}
}

type UpdateCredentialsRequest struct {
	Role     string `json:"role" validate:"required,oneof=admin host"`
	Username string `json:"username" validate:"required,min=3,max=50"`
	Password string `json:"password" validate:"required,min=6"`
}

// UpdateCredentials rotates the admin or host account login. The
// app_owner account itself can only be changed out of band.
func (h *AppOwnerHandler) UpdateCredentials(c *fiber.Ctx) error {
	var req UpdateCredentialsRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid request body"})
	}
	if err := h.validate.Struct(req); err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": err.Error()})
	}

	var user models.User
	if err := h.DB.Where("role = ?", req.Role).First(&user).Error; err != nil {
		return c.Status(404).JSON(fiber.Map{"success": false, "error": "Account not found"})
	}

	// The new username must not collide with any other account
	var count int64
	h.DB.Model(&models.User{}).
		Where("username = ? AND id <> ?", req.Username, user.ID).
		Count(&count)
	if count > 0 {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Username already taken"})
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"success": false, "error": "Failed to hash password"})
	}

	user.Username = req.Username
	user.Password = string(hash)
	if err := h.DB.Save(&user).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"success": false, "error": "Failed to update credentials"})
	}

	h.Log.Info("credentials rotated",
		zap.String("role", req.Role), zap.String("username", req.Username))

	return c.JSON(fiber.Map{"success": true, "message": "Credentials updated"})
}
