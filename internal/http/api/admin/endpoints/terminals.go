package endpoints

import (
	"database/sql"
	"errors"
	"math/rand"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/auralis-io/auralis/internal/db"
	"github.com/auralis-io/auralis/internal/http/api"
	"github.com/auralis-io/auralis/internal/http/api/admin/packets"
	"github.com/auralis-io/auralis/internal/model"
	"github.com/auralis-io/auralis/internal/mqtt"
	redisclient "github.com/auralis-io/auralis/internal/redis"
)

type TerminalController struct {
	store     db.Store
	publisher *mqtt.Publisher
}

func NewTerminalController(store db.Store, publisher *mqtt.Publisher) *TerminalController {
	return &TerminalController{store: store, publisher: publisher}
}

// TerminalModule mounts terminal CRUD plus the remote-control endpoints that
// push commands to the player over MQTT.
func TerminalModule(store db.Store, publisher *mqtt.Publisher) api.Module {
	ctl := NewTerminalController(store, publisher)
	return api.ModuleFunc(func(c *api.Controller) {
		c.GET("/terminals", ctl.listTerminals)
		c.POST("/terminals", ctl.createTerminal)
		c.GET("/terminals/:id", ctl.getTerminal)
		c.PUT("/terminals/:id", ctl.updateTerminal)
		c.DELETE("/terminals/:id", ctl.deleteTerminal)

		// pairing
		c.POST("/terminals/:id/pairing-code", ctl.issuePairingCode)

		// remote control
		c.POST("/terminals/:id/style", ctl.pushStyle)
		c.POST("/terminals/:id/volume", ctl.setVolume)
		c.POST("/terminals/:id/auto-mode", ctl.setAutoMode)
		c.POST("/terminals/:id/stop", ctl.pushStop)
		c.POST("/terminals/:id/active", ctl.setActive)
		c.POST("/terminals/:id/group", ctl.setGroup)
	})
}

func (t *TerminalController) listTerminals(ctx *gin.Context) (any, *api.Error) {
	all, err := t.store.ListTerminals()
	if err != nil {
		return nil, &api.Error{Code: http.StatusInternalServerError, Message: "could not list terminals"}
	}

	response := make([]packets.TerminalResponse, 0, len(all))
	for _, terminal := range all {
		response = append(response, adminTerminalResponse(terminal))
	}
	return response, nil
}

func (t *TerminalController) createTerminal(ctx *gin.Context) (any, *api.Error) {
	var request packets.CreateTerminalRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		return nil, &api.Error{Code: http.StatusBadRequest, Message: err.Error()}
	}

	terminal, err := t.store.CreateTerminal(request.Name, request.Location)
	if err != nil {
		return nil, &api.Error{Code: http.StatusInternalServerError, Message: "could not create terminal"}
	}
	return adminTerminalResponse(terminal), nil
}

func (t *TerminalController) getTerminal(ctx *gin.Context) (any, *api.Error) {
	terminal, apiErr := t.lookup(ctx)
	if apiErr != nil {
		return nil, apiErr
	}
	return adminTerminalResponse(*terminal), nil
}

func (t *TerminalController) updateTerminal(ctx *gin.Context) (any, *api.Error) {
	terminal, apiErr := t.lookup(ctx)
	if apiErr != nil {
		return nil, apiErr
	}

	var request packets.UpdateTerminalRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		return nil, &api.Error{Code: http.StatusBadRequest, Message: err.Error()}
	}

	if err := t.store.UpdateTerminal(terminal.ID, request.Name, request.Location); err != nil {
		return nil, &api.Error{Code: http.StatusInternalServerError, Message: "could not update terminal"}
	}
	updated, err := t.store.GetTerminalByID(terminal.ID)
	if err != nil {
		return nil, &api.Error{Code: http.StatusInternalServerError, Message: "could not load terminal"}
	}
	return adminTerminalResponse(updated), nil
}

func (t *TerminalController) deleteTerminal(ctx *gin.Context) (any, *api.Error) {
	terminal, apiErr := t.lookup(ctx)
	if apiErr != nil {
		return nil, apiErr
	}
	if err := t.store.DeleteTerminal(terminal.ID); err != nil {
		return nil, &api.Error{Code: http.StatusInternalServerError, Message: "could not delete terminal"}
	}
	return gin.H{"message": "deleted"}, nil
}

// POST /api/admin/terminals/:id/pairing-code
func (t *TerminalController) issuePairingCode(ctx *gin.Context) (any, *api.Error) {
	terminal, apiErr := t.lookup(ctx)
	if apiErr != nil {
		return nil, apiErr
	}

	code := generatePairCode()
	if err := redisclient.StorePairingCode(ctx, code, terminal.ID); err != nil {
		if errors.Is(err, redisclient.ErrUnavailable) {
			return nil, &api.Error{Code: http.StatusServiceUnavailable, Message: "pairing unavailable"}
		}
		log.Error().Err(err).Int("terminal", terminal.ID).Msg("failed to store pairing code")
		return nil, &api.Error{Code: http.StatusInternalServerError, Message: "internal error"}
	}
	return packets.PairingCodeResponse{Code: code}, nil
}

// POST /api/admin/terminals/:id/style
func (t *TerminalController) pushStyle(ctx *gin.Context) (any, *api.Error) {
	terminal, apiErr := t.lookup(ctx)
	if apiErr != nil {
		return nil, apiErr
	}

	var request packets.PushStyleRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		return nil, &api.Error{Code: http.StatusBadRequest, Message: err.Error()}
	}

	style, err := t.store.GetStyleByID(request.StyleID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, &api.Error{Code: http.StatusNotFound, Message: "style not found"}
	}
	if err != nil {
		return nil, &api.Error{Code: http.StatusInternalServerError, Message: "could not load style"}
	}
	if style.MixURL == nil || *style.MixURL == "" {
		return nil, &api.Error{Code: http.StatusConflict, Message: "style has no mix"}
	}

	if err := t.publisher.Send(terminal.ID, mqtt.Command{Action: mqtt.CmdChangeStyle, StyleID: style.ID}); err != nil {
		log.Error().Err(err).Int("terminal", terminal.ID).Msg("failed to push style command")
		return nil, &api.Error{Code: http.StatusBadGateway, Message: "terminal unreachable"}
	}
	return gin.H{"message": "pushed"}, nil
}

// POST /api/admin/terminals/:id/volume
func (t *TerminalController) setVolume(ctx *gin.Context) (any, *api.Error) {
	terminal, apiErr := t.lookup(ctx)
	if apiErr != nil {
		return nil, apiErr
	}

	var request packets.SetVolumeRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		return nil, &api.Error{Code: http.StatusBadRequest, Message: err.Error()}
	}

	if err := t.store.SetTerminalVolume(terminal.ID, request.Volume); err != nil {
		return nil, &api.Error{Code: http.StatusInternalServerError, Message: "could not set volume"}
	}
	if err := t.publisher.Send(terminal.ID, mqtt.Command{Action: mqtt.CmdSetVolume, Volume: request.Volume}); err != nil {
		log.Warn().Err(err).Int("terminal", terminal.ID).Msg("volume saved but push failed")
	}
	return gin.H{"message": "ok"}, nil
}

// POST /api/admin/terminals/:id/auto-mode
func (t *TerminalController) setAutoMode(ctx *gin.Context) (any, *api.Error) {
	terminal, apiErr := t.lookup(ctx)
	if apiErr != nil {
		return nil, apiErr
	}

	var request packets.SetAutoModeRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		return nil, &api.Error{Code: http.StatusBadRequest, Message: err.Error()}
	}

	if err := t.store.SetTerminalAutoMode(terminal.ID, request.Enabled); err != nil {
		return nil, &api.Error{Code: http.StatusInternalServerError, Message: "could not set auto mode"}
	}
	if err := t.publisher.Send(terminal.ID, mqtt.Command{Action: mqtt.CmdSetAutoMode, Enabled: request.Enabled}); err != nil {
		log.Warn().Err(err).Int("terminal", terminal.ID).Msg("auto mode saved but push failed")
	}
	return gin.H{"message": "ok"}, nil
}

// POST /api/admin/terminals/:id/stop
func (t *TerminalController) pushStop(ctx *gin.Context) (any, *api.Error) {
	terminal, apiErr := t.lookup(ctx)
	if apiErr != nil {
		return nil, apiErr
	}
	if err := t.publisher.Send(terminal.ID, mqtt.Command{Action: mqtt.CmdStop}); err != nil {
		return nil, &api.Error{Code: http.StatusBadGateway, Message: "terminal unreachable"}
	}
	return gin.H{"message": "pushed"}, nil
}

// POST /api/admin/terminals/:id/active
func (t *TerminalController) setActive(ctx *gin.Context) (any, *api.Error) {
	terminal, apiErr := t.lookup(ctx)
	if apiErr != nil {
		return nil, apiErr
	}

	var request packets.SetActiveRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		return nil, &api.Error{Code: http.StatusBadRequest, Message: err.Error()}
	}
	if err := t.store.SetTerminalActive(terminal.ID, request.Active); err != nil {
		return nil, &api.Error{Code: http.StatusInternalServerError, Message: "could not update terminal"}
	}
	return gin.H{"message": "ok"}, nil
}

// POST /api/admin/terminals/:id/group
func (t *TerminalController) setGroup(ctx *gin.Context) (any, *api.Error) {
	terminal, apiErr := t.lookup(ctx)
	if apiErr != nil {
		return nil, apiErr
	}

	var request packets.SetTerminalGroupRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		return nil, &api.Error{Code: http.StatusBadRequest, Message: err.Error()}
	}
	if err := t.store.SetTerminalGroup(terminal.ID, request.GroupID); err != nil {
		return nil, &api.Error{Code: http.StatusInternalServerError, Message: "could not update terminal"}
	}
	return gin.H{"message": "ok"}, nil
}

func (t *TerminalController) lookup(ctx *gin.Context) (*model.Terminal, *api.Error) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		return nil, &api.Error{Code: http.StatusBadRequest, Message: "invalid id"}
	}
	terminal, err := t.store.GetTerminalByID(id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, &api.Error{Code: http.StatusNotFound, Message: "terminal not found"}
	}
	if err != nil {
		return nil, &api.Error{Code: http.StatusInternalServerError, Message: "could not load terminal"}
	}
	return &terminal, nil
}

func generatePairCode() string {
	const charset = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"
	b := make([]byte, 6)
	for i := range b {
		b[i] = charset[rand.Intn(len(charset))]
	}
	return string(b)
}

func adminTerminalResponse(t model.Terminal) packets.TerminalResponse {
	return packets.TerminalResponse{
		ID:             t.ID,
		DeviceID:       t.DeviceID,
		Name:           t.Name,
		Location:       t.Location,
		GroupID:        t.GroupID,
		CurrentStyleID: t.CurrentStyleID,
		Volume:         t.Volume,
		IsPlaying:      t.IsPlaying,
		IsAutoMode:     t.IsAutoMode,
		IsActive:       t.IsActive,
		Paired:         t.Paired,
		LastPlayedAt:   t.LastPlayedAt,
		CreatedAt:      t.CreatedAt.Format(time.RFC3339),
		UpdatedAt:      t.UpdatedAt.Format(time.RFC3339),
	}
}
