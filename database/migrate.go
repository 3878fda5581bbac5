// database/migrate.go - Database Migration Runner
package database

import (
	"log"
	"os"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/ShrijaySharma/Ezauction/models"
)

// RunMigrations runs all database migrations
func RunMigrations() {
	db := GetDB()
	log.Println("🔄 Running database migrations...")

	if err := db.AutoMigrate(
		&models.User{},
		&models.Team{},
		&models.Player{},
		&models.Bid{},
		&models.AuctionState{},
	); err != nil {
		log.Fatalf("❌ Failed to run migrations: %v", err)
	}

	createIndexes()
	seedAuctionState(db)
	seedDefaultUsers(db)

	log.Println("✅ All migrations completed successfully")
}

func createIndexes() {
	db := GetDB()

	db.Exec("CREATE INDEX IF NOT EXISTS idx_players_status ON players(status)")
	db.Exec("CREATE INDEX IF NOT EXISTS idx_players_sold_to_team ON players(sold_to_team)")
	db.Exec("CREATE INDEX IF NOT EXISTS idx_players_serial ON players(serial_number)")
	db.Exec("CREATE INDEX IF NOT EXISTS idx_bids_player_amount ON bids(player_id, amount DESC)")
	db.Exec("CREATE INDEX IF NOT EXISTS idx_bids_player_timestamp ON bids(player_id, timestamp DESC)")
}

// seedAuctionState makes sure the singleton state row exists.
func seedAuctionState(db *gorm.DB) {
	var state models.AuctionState
	err := db.First(&state, models.AuctionStateID).Error
	if err == nil {
		return
	}
	if err != gorm.ErrRecordNotFound {
		log.Fatalf("❌ Failed to read auction state: %v", err)
	}
	if err := db.Create(models.NewAuctionState()).Error; err != nil {
		log.Fatalf("❌ Failed to seed auction state: %v", err)
	}
	log.Println("✅ Auction state initialized")
}

// seedDefaultUsers creates the standing admin, host and app_owner
// accounts on first boot. Passwords come from the environment with
// development defaults; the app_owner can rotate them later.
func seedDefaultUsers(db *gorm.DB) {
	defaults := []struct {
		username string
		role     string
		envVar   string
		fallback string
	}{
		{"admin", models.RoleAdmin, "ADMIN_PASSWORD", "admin123"},
		{"host", models.RoleHost, "HOST_PASSWORD", "host123"},
		{"appowner", models.RoleAppOwner, "APP_OWNER_PASSWORD", "appowner123"},
	}

	for _, d := range defaults {
		var count int64
		db.Model(&models.User{}).Where("role = ?", d.role).Count(&count)
		if count > 0 {
			continue
		}

		password := os.Getenv(d.envVar)
		if password == "" {
			password = d.fallback
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			log.Fatalf("❌ Failed to hash default password: %v", err)
		}
		user := models.User{Username: d.username, Password: string(hash), Role: d.role}
		if err := db.Create(&user).Error; err != nil {
			log.Fatalf("❌ Failed to seed %s user: %v", d.role, err)
		}
		log.Printf("✅ Seeded default %s account (username: %s)", d.role, d.username)
	}
}
