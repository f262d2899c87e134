package entity

import "time"

// Session is one browser's hot-seat game.
type Session struct {
	ID        string    `json:"id"`
	Game      *Game     `json:"game"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
