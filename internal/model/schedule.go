package model

import "time"

// ScheduleEntry binds a style to a same-day time window. A nil TerminalID
// means the entry applies globally to every terminal without a more specific
// match. Times are zero-padded "HH:MM" strings so they compare
// lexicographically.
type ScheduleEntry struct {
	ID         int       `db:"id"          json:"id"`
	StyleID    int       `db:"style_id"    json:"style_id"`
	TerminalID *int      `db:"terminal_id" json:"terminal_id"`
	StartTime  string    `db:"start_time"  json:"start_time"`
	EndTime    string    `db:"end_time"    json:"end_time"`
	CreatedAt  time.Time `db:"created_at"  json:"created_at"`
	UpdatedAt  time.Time `db:"updated_at"  json:"updated_at"`
}
