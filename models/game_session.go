package models

import (
	"time"
)

// GameSession is one recorded play session, kept for retention analytics.
type GameSession struct {
	ID       string    `gorm:"primaryKey;type:uuid;default:gen_random_uuid()" json:"id"`
	UserID   string    `gorm:"index;not null" json:"user_id"`
	GameID   string    `gorm:"index;not null" json:"game_id"`
	Minutes  int64     `json:"minutes" gorm:"default:0"`
	PlayedAt time.Time `gorm:"index;not null" json:"played_at"`
}
