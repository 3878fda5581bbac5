// models/player.go
package models

import "time"

// Player auction status.
const (
	PlayerAvailable = "AVAILABLE"
	PlayerSold      = "SOLD"
	PlayerUnsold    = "UNSOLD"
)

// Player is a roster entry. SoldPrice and SoldToTeam are set iff
// Status is SOLD. WasUnsold is sticky: it survives the player going
// back to AVAILABLE and is only cleared by a sale or an explicit
// reset, and it demotes the player to the second auto-advance tier.
// SerialNumber defines presentation order and is kept dense by the
// resequencing logic in the auction package.
type Player struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	Name         string    `json:"name" gorm:"not null;size:100"`
	Image        *string   `json:"image"`
	Role         string    `json:"role" gorm:"not null;size:50"`
	Country      *string   `json:"country" gorm:"size:50"`
	Age          *int      `json:"age"`
	BasePrice    float64   `json:"base_price" gorm:"not null"`
	Status       string    `json:"status" gorm:"not null;default:'AVAILABLE';index"`
	SoldPrice    *float64  `json:"sold_price"`
	SoldToTeam   *uint     `json:"sold_to_team" gorm:"index"`
	WasUnsold    bool      `json:"was_unsold" gorm:"default:false"`
	SerialNumber *int      `json:"serial_number" gorm:"index"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (Player) TableName() string {
	return "players"
}
