package model

import "time"

// Style is a selectable ambient program. A style without a mix URL is
// "coming soon" and cannot be made active on a terminal.
type Style struct {
	ID          int       `db:"id"          json:"id"`
	Name        string    `db:"name"        json:"name"`
	Description *string   `db:"description" json:"description"`
	MixURL      *string   `db:"mix_url"     json:"mix_url"`
	Duration    *int      `db:"duration"    json:"duration"`
	CreatedAt   time.Time `db:"created_at"  json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"  json:"updated_at"`
}
