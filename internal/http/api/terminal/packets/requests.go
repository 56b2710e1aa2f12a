package packets

type PairRequest struct {
	Code     string `json:"code" binding:"required"`
	DeviceID string `json:"device_id" binding:"required"`
}

type HeartbeatRequest struct {
	Position  int  `json:"position"`
	IsPlaying bool `json:"is_playing"`
}

type ChangeStyleRequest struct {
	StyleID int `json:"style_id" binding:"required"`
}

type ActivityRequest struct {
	Action  string  `json:"action" binding:"required"`
	Details *string `json:"details"`
}
