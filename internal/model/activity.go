package model

import "time"

// Activity log actions.
const (
	ActionPlay        = "PLAY"
	ActionPause       = "PAUSE"
	ActionChangeStyle = "CHANGE_STYLE"
)

// ActivityEntry is an append-only audit record. Entries are never mutated or
// deleted by the engine.
type ActivityEntry struct {
	ID         int       `db:"id"          json:"id"`
	TerminalID int       `db:"terminal_id" json:"terminal_id"`
	Action     string    `db:"action"      json:"action"`
	Details    *string   `db:"details"     json:"details"`
	CreatedAt  time.Time `db:"created_at"  json:"created_at"`
}
