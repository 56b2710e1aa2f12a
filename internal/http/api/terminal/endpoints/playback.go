package endpoints

import (
	"database/sql"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/auralis-io/auralis/internal/db"
	"github.com/auralis-io/auralis/internal/http/api"
	"github.com/auralis-io/auralis/internal/http/api/terminal/packets"
	"github.com/auralis-io/auralis/internal/metrics"
	"github.com/auralis-io/auralis/internal/model"
	redisclient "github.com/auralis-io/auralis/internal/redis"
)

type PlaybackController struct {
	store db.Store
}

func NewPlaybackController(store db.Store) *PlaybackController {
	return &PlaybackController{store: store}
}

// PlaybackModule mounts the heartbeat, style switch, resume lookup and
// activity endpoints. Requires the terminal JWT middleware on the group.
func PlaybackModule(store db.Store) api.Module {
	ctl := NewPlaybackController(store)
	return api.ModuleFunc(func(c *api.Controller) {
		c.TerminalPOST("/heartbeat", ctl.heartbeat)
		c.TerminalPOST("/style", ctl.changeStyle)
		c.TerminalGET("/styles/:id/position", ctl.getPosition)
		c.TerminalPOST("/activity", ctl.recordActivity)
	})
}

// POST /api/terminal/heartbeat
func (p *PlaybackController) heartbeat(ctx *gin.Context, terminal *model.Terminal) (any, *api.Error) {
	var request packets.HeartbeatRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		return nil, &api.Error{Code: http.StatusBadRequest, Message: err.Error()}
	}
	if request.Position < 0 {
		return nil, &api.Error{Code: http.StatusBadRequest, Message: "position must be >= 0"}
	}

	if err := p.store.RecordHeartbeat(terminal.ID, request.Position, request.IsPlaying); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, &api.Error{Code: http.StatusNotFound, Message: "terminal not found"}
		}
		metrics.HeartbeatFailures.Inc()
		log.Error().Err(err).Int("terminal", terminal.ID).Msg("failed to record heartbeat")
		return nil, &api.Error{Code: http.StatusInternalServerError, Message: "could not save position"}
	}

	metrics.HeartbeatsProcessed.Inc()
	redisclient.TouchPresence(ctx, terminal.ID)
	return packets.HeartbeatResponse{OK: true}, nil
}

// POST /api/terminal/style
func (p *PlaybackController) changeStyle(ctx *gin.Context, terminal *model.Terminal) (any, *api.Error) {
	var request packets.ChangeStyleRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		return nil, &api.Error{Code: http.StatusBadRequest, Message: err.Error()}
	}

	updated, style, position, err := p.store.ChangeTerminalStyle(terminal.ID, request.StyleID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, &api.Error{Code: http.StatusNotFound, Message: "style not found"}
	}
	if errors.Is(err, db.ErrStyleUnavailable) {
		return nil, &api.Error{Code: http.StatusConflict, Message: "style has no mix"}
	}
	if err != nil {
		return nil, &api.Error{Code: http.StatusInternalServerError, Message: "could not change style"}
	}

	metrics.StyleSwitches.Inc()
	return packets.ChangeStyleResponse{
		Terminal:       terminalResponse(updated),
		Style:          styleResponse(style),
		ResumePosition: position,
	}, nil
}

// GET /api/terminal/styles/:id/position
func (p *PlaybackController) getPosition(ctx *gin.Context, terminal *model.Terminal) (any, *api.Error) {
	styleID, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		return nil, &api.Error{Code: http.StatusBadRequest, Message: "invalid style id"}
	}

	position, err := p.store.GetProgress(terminal.ID, styleID)
	if err != nil {
		return nil, &api.Error{Code: http.StatusInternalServerError, Message: "could not load position"}
	}
	return packets.PositionResponse{Position: position}, nil
}

// POST /api/terminal/activity
func (p *PlaybackController) recordActivity(ctx *gin.Context, terminal *model.Terminal) (any, *api.Error) {
	var request packets.ActivityRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		return nil, &api.Error{Code: http.StatusBadRequest, Message: err.Error()}
	}
	switch request.Action {
	case model.ActionPlay, model.ActionPause, model.ActionChangeStyle:
	default:
		return nil, &api.Error{Code: http.StatusBadRequest, Message: "unknown action"}
	}

	if err := p.store.RecordActivity(terminal.ID, request.Action, request.Details); err != nil {
		return nil, &api.Error{Code: http.StatusInternalServerError, Message: "could not record activity"}
	}
	metrics.ActivityEvents.WithLabelValues(request.Action).Inc()
	return gin.H{"ok": true}, nil
}

func terminalResponse(t model.Terminal) packets.TerminalResponse {
	return packets.TerminalResponse{
		ID:             t.ID,
		Name:           t.Name,
		CurrentStyleID: t.CurrentStyleID,
		Volume:         t.Volume,
		IsPlaying:      t.IsPlaying,
		IsAutoMode:     t.IsAutoMode,
	}
}

func styleResponse(s model.Style) packets.StyleResponse {
	return packets.StyleResponse{
		ID:       s.ID,
		Name:     s.Name,
		MixURL:   s.MixURL,
		Duration: s.Duration,
	}
}
