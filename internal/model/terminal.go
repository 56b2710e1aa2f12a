package model

import "time"

// Terminal represents a playback endpoint (a store location) in the system.
type Terminal struct {
	ID             int        `db:"id"               json:"id"`
	DeviceID       *string    `db:"device_id"        json:"device_id"`
	Name           string     `db:"name"             json:"name"`
	Location       *string    `db:"location"         json:"location"`
	GroupID        *int       `db:"group_id"         json:"group_id"`
	CurrentStyleID *int       `db:"current_style_id" json:"current_style_id"`
	Volume         int        `db:"volume"           json:"volume"`
	IsPlaying      bool       `db:"is_playing"       json:"is_playing"`
	IsAutoMode     bool       `db:"is_auto_mode"     json:"is_auto_mode"`
	IsActive       bool       `db:"is_active"        json:"is_active"`
	Paired         bool       `db:"paired"           json:"paired"`
	LastPlayedAt   *time.Time `db:"last_played_at"   json:"last_played_at"`
	CreatedAt      time.Time  `db:"created_at"       json:"created_at"`
	UpdatedAt      time.Time  `db:"updated_at"       json:"updated_at"`
}

// TerminalOverview is a terminal row joined with its style and group names,
// consumed by the live status aggregator.
type TerminalOverview struct {
	Terminal
	StyleName *string `db:"style_name" json:"style_name"`
	GroupName *string `db:"group_name" json:"group_name"`
}
