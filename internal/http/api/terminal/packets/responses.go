package packets

type StyleResponse struct {
	ID       int     `json:"id"`
	Name     string  `json:"name"`
	MixURL   *string `json:"mix_url"`
	Duration *int    `json:"duration"`
}

type TerminalResponse struct {
	ID             int    `json:"id"`
	Name           string `json:"name"`
	CurrentStyleID *int   `json:"current_style_id"`
	Volume         int    `json:"volume"`
	IsPlaying      bool   `json:"is_playing"`
	IsAutoMode     bool   `json:"is_auto_mode"`
}

type PairResponse struct {
	Token    string           `json:"token"`
	Terminal TerminalResponse `json:"terminal"`
}

type HeartbeatResponse struct {
	OK bool `json:"ok"`
}

type ChangeStyleResponse struct {
	Terminal       TerminalResponse `json:"terminal"`
	Style          StyleResponse    `json:"style"`
	ResumePosition int              `json:"resume_position"`
}

type PositionResponse struct {
	Position int `json:"position"`
}

// ProgramResponse carries the schedule-dictated style, or null when no entry
// matches and the terminal should keep what it has.
type ProgramResponse struct {
	Style *StyleResponse `json:"style"`
}
