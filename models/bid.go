// models/bid.go
package models

import "time"

// Bid is immutable once placed except for the undo-last-bid deletion.
// The leading bid is ordered by (amount DESC, timestamp DESC); undo
// removes by timestamp alone, which is the last bid placed by
// wall-clock, not necessarily the highest one.
type Bid struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	PlayerID  uint      `json:"player_id" gorm:"not null;index"`
	TeamID    uint      `json:"team_id" gorm:"not null;index"`
	Amount    float64   `json:"amount" gorm:"not null"`
	Timestamp time.Time `json:"timestamp" gorm:"not null;index"`
}

func (Bid) TableName() string {
	return "bids"
}
