// models/user.go
package models

import "time"

// Account roles. Owners are tied to a team; admin drives the auction,
// host powers the read-only public overlay, app_owner can rotate the
// admin/host credentials.
const (
	RoleAdmin    = "admin"
	RoleOwner    = "owner"
	RoleHost     = "host"
	RoleAppOwner = "app_owner"
)

type User struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Username  string    `json:"username" gorm:"uniqueIndex;not null;size:50"`
	Password  string    `json:"-" gorm:"not null"` // bcrypt hash
	Role      string    `json:"role" gorm:"not null;size:20;index"`
	TeamID    *uint     `json:"team_id" gorm:"index"`
	CreatedAt time.Time `json:"created_at"`
}

func (User) TableName() string {
	return "users"
}
