// main.go
package main

import (
	"log"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/websocket/v2"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/ShrijaySharma/Ezauction/auction"
	"github.com/ShrijaySharma/Ezauction/database"
	"github.com/ShrijaySharma/Ezauction/handlers"
	"github.com/ShrijaySharma/Ezauction/handlers/admin"
	"github.com/ShrijaySharma/Ezauction/middleware"
	"github.com/ShrijaySharma/Ezauction/models"
	"github.com/ShrijaySharma/Ezauction/realtime"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, using system environment variables")
	}

	validateEnvironment()

	zlog, err := newLogger()
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer zlog.Sync()

	// Initialize database (runs migrations and seeds)
	database.InitDB()
	defer database.CloseDB()
	db := database.GetDB()

	// Wire the auction core: store -> hub -> engine
	store := database.NewStore(db)
	hub := realtime.NewHub(zlog.Named("realtime"))
	engine := auction.New(store, hub, zlog.Named("auction"))
	hub.SetInfoProvider(engine.SnapshotEvents)
	go hub.Run()

	// Handlers
	authHandler := handlers.NewAuthHandler(db, zlog.Named("auth"))
	ownerHandler := handlers.NewOwnerHandler(engine)
	hostHandler := handlers.NewHostHandler(engine)
	appOwnerHandler := handlers.NewAppOwnerHandler(db, zlog.Named("appowner"))
	adminAuction := admin.NewAuctionHandler(engine, zlog.Named("admin"))
	adminPlayers := admin.NewPlayersHandler(engine, zlog.Named("admin"))
	adminTeams := admin.NewTeamsHandler(db, hub, zlog.Named("admin"))

	// Create Fiber app
	app := fiber.New(fiber.Config{
		ErrorHandler: customErrorHandler,
		BodyLimit:    4 * 1024 * 1024, // 4MB
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	})

	// Global middleware
	app.Use(recover.New())
	app.Use(fiberlogger.New(fiberlogger.Config{
		Format: "[${time}] ${status} - ${method} ${path} (${latency})\n",
	}))

	// CORS configuration
	corsOrigins := os.Getenv("CORS_ORIGINS")
	if corsOrigins == "" {
		corsOrigins = "http://localhost:3000"
	}

	app.Use(cors.New(cors.Config{
		AllowOrigins:     corsOrigins,
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: true,
	}))

	app.Use(middleware.RateLimitMiddleware())

	// WebSocket endpoint for the live dashboards
	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})
	app.Get("/ws", hub.Handler())

	// API Routes
	api := app.Group("/api")

	// Auth routes with stricter rate limiting
	authGroup := api.Group("/auth")
	authGroup.Use(middleware.AuthRateLimitMiddleware())
	authGroup.Post("/login", authHandler.Login)
	authGroup.Post("/logout", authHandler.Logout)
	authGroup.Get("/me", middleware.AuthMiddleware, authHandler.Me)

	// Owner routes (team dashboards)
	ownerGroup := api.Group("/owner")
	ownerGroup.Use(middleware.AuthMiddleware, middleware.RequireRole(models.RoleOwner))
	ownerGroup.Get("/current-player-info", ownerHandler.CurrentInfo)
	ownerGroup.Post("/bid", ownerHandler.Bid)
	ownerGroup.Get("/players", ownerHandler.Players)
	ownerGroup.Get("/teams", ownerHandler.Teams)
	ownerGroup.Get("/team-players", ownerHandler.TeamPlayers)

	// Host routes (read-only projector overlay)
	hostGroup := api.Group("/host")
	hostGroup.Use(middleware.AuthMiddleware, middleware.RequireRole(models.RoleHost, models.RoleAdmin))
	hostGroup.Get("/current-player-info", hostHandler.CurrentInfo)
	hostGroup.Get("/current-bids", hostHandler.CurrentBids)
	hostGroup.Get("/team-budgets", hostHandler.TeamBudgets)

	// App-owner routes (platform account management)
	appOwnerGroup := api.Group("/app-owner")
	appOwnerGroup.Use(middleware.AuthMiddleware, middleware.RequireRole(models.RoleAppOwner))
	appOwnerGroup.Post("/update-credentials", appOwnerHandler.UpdateCredentials)

	// Admin routes (auctioneer console)
	adminGroup := api.Group("/admin")
	adminGroup.Use(middleware.AuthMiddleware, middleware.RequireRole(models.RoleAdmin))

	adminGroup.Get("/auction-state", adminAuction.State)
	adminGroup.Post("/auction-status", adminAuction.SetStatus)
	adminGroup.Post("/load-player", adminAuction.LoadPlayer)
	adminGroup.Get("/current-bid", adminAuction.CurrentBid)
	adminGroup.Get("/bids", adminAuction.Bids)
	adminGroup.Post("/bid", adminAuction.ProxyBid)
	adminGroup.Post("/admin-bid", adminAuction.ProxyBid)
	adminGroup.Get("/history", adminAuction.History)
	adminGroup.Post("/undo-bid", adminAuction.UndoBid)
	adminGroup.Post("/reset-bidding", adminAuction.ResetBidding)
	adminGroup.Post("/lock-bidding", adminAuction.LockBidding)
	adminGroup.Get("/max-players", adminAuction.MaxPlayers)
	adminGroup.Post("/max-players", adminAuction.SetMaxPlayers)
	adminGroup.Post("/bid-increments", adminAuction.SetBidIncrements)
	adminGroup.Post("/enforce-max-bid", adminAuction.SetEnforceMaxBid)
	adminGroup.Post("/mark-player", adminAuction.MarkPlayer)

	adminGroup.Get("/players", adminPlayers.List)
	adminGroup.Get("/players-by-status", adminPlayers.ByStatus)
	adminGroup.Post("/players", adminPlayers.Create)
	adminGroup.Post("/players/bulk", adminPlayers.BulkCreate)
	adminGroup.Put("/players/:id", adminPlayers.Update)
	adminGroup.Delete("/players/:id", adminPlayers.Delete)
	adminGroup.Delete("/players-all", adminPlayers.DeleteAll)
	adminGroup.Post("/players/:id/reset-unsold", adminPlayers.ResetUnsoldTag)
	adminGroup.Post("/players/:id/remove-from-team", adminPlayers.RemoveFromTeam)
	adminGroup.Post("/reset-unsold-tag/:id", adminPlayers.ResetUnsoldTag)
	adminGroup.Post("/remove-player-from-team/:id", adminPlayers.RemoveFromTeam)

	adminGroup.Get("/teams", adminTeams.List)
	adminGroup.Post("/teams", adminTeams.Create)
	adminGroup.Put("/teams/:id", adminTeams.Update)
	adminGroup.Delete("/teams/:id", adminTeams.Delete)
	adminGroup.Post("/teams/:id/budget", adminTeams.SetBudget)
	adminGroup.Post("/teams/:id/lock-bidding", adminTeams.LockBidding)
	adminGroup.Get("/teams/:id/credentials", adminTeams.Credentials)
	adminGroup.Get("/team-squads", adminTeams.Squads)

	// Health check endpoint
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":    "healthy",
			"timestamp": time.Now().Unix(),
			"version":   "1.0.0",
		})
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = "4000"
	}

	log.Printf("🚀 Auction server starting on port %s", port)
	log.Printf("📊 Environment: %s", getEnv("APP_ENV", "development"))
	log.Printf("🔐 JWT Secret configured: %v", os.Getenv("JWT_SECRET") != "")
	log.Printf("🌐 WebSocket available at ws://localhost:%s/ws", port)

	if err := app.Listen(":" + port); err != nil {
		log.Fatal("Failed to start HTTP server:", err)
	}
}

func newLogger() (*zap.Logger, error) {
	if getEnv("APP_ENV", "development") == "production" {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}

// validateEnvironment checks for required environment variables
func validateEnvironment() {
	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		log.Fatal("FATAL: JWT_SECRET environment variable must be set. Generate one with: openssl rand -base64 64")
	}
	if len(jwtSecret) < 32 {
		log.Fatal("FATAL: JWT_SECRET must be at least 32 characters long")
	}

	appEnv := os.Getenv("APP_ENV")
	if appEnv == "production" {
		corsOrigins := os.Getenv("CORS_ORIGINS")
		if corsOrigins == "" || corsOrigins == "http://localhost:3000" {
			log.Println("WARNING: CORS_ORIGINS not properly configured for production")
		}
	}
}

func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal Server Error"

	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
		message = e.Message
	}

	// Don't expose internal errors in production
	if os.Getenv("APP_ENV") == "production" && code == 500 {
		message = "An error occurred. Please try again later."
	}

	return c.Status(code).JSON(fiber.Map{
		"success": false,
		"error":   message,
	})
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}
