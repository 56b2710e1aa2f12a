package model

import "time"

// PlaybackProgress remembers where a terminal left off in a specific style's
// mix. One row per (terminal, style), created lazily on first heartbeat.
type PlaybackProgress struct {
	ID           int       `db:"id"            json:"id"`
	TerminalID   int       `db:"terminal_id"   json:"terminal_id"`
	StyleID      int       `db:"style_id"      json:"style_id"`
	LastPosition int       `db:"last_position" json:"last_position"`
	UpdatedAt    time.Time `db:"updated_at"    json:"updated_at"`
}
