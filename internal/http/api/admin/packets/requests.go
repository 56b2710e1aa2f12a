package packets

type CreateTerminalRequest struct {
	Name     string  `json:"name" binding:"required"`
	Location *string `json:"location"`
}

type UpdateTerminalRequest struct {
	Name     *string `json:"name"`
	Location *string `json:"location"`
}

type SetTerminalGroupRequest struct {
	GroupID *int `json:"group_id"`
}

type SetAutoModeRequest struct {
	Enabled bool `json:"enabled"`
}

type SetVolumeRequest struct {
	Volume int `json:"volume" binding:"min=0,max=100"`
}

type PushStyleRequest struct {
	StyleID int `json:"style_id" binding:"required"`
}

type SetActiveRequest struct {
	Active bool `json:"active"`
}

type CreateStyleRequest struct {
	Name        string  `json:"name" binding:"required"`
	Description *string `json:"description"`
	MixURL      *string `json:"mix_url"`
	Duration    *int    `json:"duration"`
}

type UpdateStyleRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	MixURL      *string `json:"mix_url"`
	Duration    *int    `json:"duration"`
}

type CreateScheduleEntryRequest struct {
	StyleID    int    `json:"style_id" binding:"required"`
	TerminalID *int   `json:"terminal_id"`
	StartTime  string `json:"start_time" binding:"required"`
	EndTime    string `json:"end_time" binding:"required"`
}

type UpdateScheduleEntryRequest struct {
	StyleID   *int    `json:"style_id"`
	StartTime *string `json:"start_time"`
	EndTime   *string `json:"end_time"`
}

type CreateGroupRequest struct {
	Name        string  `json:"name" binding:"required"`
	Description *string `json:"description"`
}

type UpdateGroupRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}
