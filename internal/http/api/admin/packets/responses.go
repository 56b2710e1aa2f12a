package packets

import "time"

type TerminalResponse struct {
	ID             int        `json:"id"`
	DeviceID       *string    `json:"device_id"`
	Name           string     `json:"name"`
	Location       *string    `json:"location"`
	GroupID        *int       `json:"group_id"`
	CurrentStyleID *int       `json:"current_style_id"`
	Volume         int        `json:"volume"`
	IsPlaying      bool       `json:"is_playing"`
	IsAutoMode     bool       `json:"is_auto_mode"`
	IsActive       bool       `json:"is_active"`
	Paired         bool       `json:"paired"`
	LastPlayedAt   *time.Time `json:"last_played_at"`
	CreatedAt      string     `json:"created_at"`
	UpdatedAt      string     `json:"updated_at"`
}

type PairingCodeResponse struct {
	Code string `json:"code"`
}

type StyleResponse struct {
	ID          int     `json:"id"`
	Name        string  `json:"name"`
	Description *string `json:"description"`
	MixURL      *string `json:"mix_url"`
	Duration    *int    `json:"duration"`
	CreatedAt   string  `json:"created_at"`
	UpdatedAt   string  `json:"updated_at"`
}

type ScheduleEntryResponse struct {
	ID         int    `json:"id"`
	StyleID    int    `json:"style_id"`
	TerminalID *int   `json:"terminal_id"`
	StartTime  string `json:"start_time"`
	EndTime    string `json:"end_time"`
	CreatedAt  string `json:"created_at"`
	UpdatedAt  string `json:"updated_at"`
}

type GroupResponse struct {
	ID          int     `json:"id"`
	Name        string  `json:"name"`
	Description *string `json:"description"`
	CreatedAt   string  `json:"created_at"`
	UpdatedAt   string  `json:"updated_at"`
}

type PlaySessionResponse struct {
	ID          int    `json:"id"`
	TerminalID  int    `json:"terminal_id"`
	StyleID     int    `json:"style_id"`
	Day         string `json:"day"`
	StartedAt   string `json:"started_at"`
	EndedAt     string `json:"ended_at"`
	TotalPlayed int    `json:"total_played"`
}

type ActivityResponse struct {
	ID         int     `json:"id"`
	TerminalID int     `json:"terminal_id"`
	Action     string  `json:"action"`
	Details    *string `json:"details"`
	CreatedAt  string  `json:"created_at"`
}
