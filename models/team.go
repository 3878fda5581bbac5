// models/team.go
package models

import "time"

// Team is a bidding franchise. Budget is the remaining spendable purse;
// it only decreases through sale settlement and only increases when a
// player is removed from the team (or by manual admin edit).
//
// AccessCode/PlainPassword hold the generated owner login so the admin
// console can display it; the users table stores the bcrypt hash used
// for actual authentication.
type Team struct {
	ID            uint      `json:"id" gorm:"primaryKey"`
	Name          string    `json:"name" gorm:"uniqueIndex;not null;size:100"`
	OwnerName     string    `json:"owner_name" gorm:"size:100"`
	OwnerID       *uint     `json:"owner_id"`
	Logo          *string   `json:"logo"`
	Budget        float64   `json:"budget" gorm:"not null;default:1000000"`
	BiddingLocked bool      `json:"bidding_locked" gorm:"default:false"`
	AccessCode    string    `json:"access_code" gorm:"size:50"`
	PlainPassword string    `json:"plain_password" gorm:"size:50"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func (Team) TableName() string {
	return "teams"
}
