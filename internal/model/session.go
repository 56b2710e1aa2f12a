package model

import "time"

// PlaySession accumulates listening seconds for one (terminal, style,
// calendar day). Heartbeats extend the open session for the day; a new day or
// a style change starts a fresh row.
type PlaySession struct {
	ID          int       `db:"id"           json:"id"`
	TerminalID  int       `db:"terminal_id"  json:"terminal_id"`
	StyleID     int       `db:"style_id"     json:"style_id"`
	Day         time.Time `db:"day"          json:"day"`
	StartedAt   time.Time `db:"started_at"   json:"started_at"`
	EndedAt     time.Time `db:"ended_at"     json:"ended_at"`
	TotalPlayed int       `db:"total_played" json:"total_played"`
}
