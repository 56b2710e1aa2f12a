package endpoints

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"github.com/auralis-io/auralis/internal/db"
	"github.com/auralis-io/auralis/internal/http/api"
	"github.com/auralis-io/auralis/internal/http/api/terminal/packets"
	"github.com/auralis-io/auralis/internal/http/middleware"
	redisclient "github.com/auralis-io/auralis/internal/redis"
)

type PairController struct {
	store  db.Store
	secret string
}

func NewPairController(store db.Store, secret string) *PairController {
	return &PairController{store: store, secret: secret}
}

// PairModule mounts the public pairing endpoint. A player boots with a
// short-lived code issued by the admin API and exchanges it here, once, for
// a terminal JWT.
func PairModule(store db.Store, secret string) api.Module {
	ctl := NewPairController(store, secret)
	return api.ModuleFunc(func(c *api.Controller) {
		c.POST("/pair", ctl.pair)
	})
}

// POST /api/terminal/pair
func (p *PairController) pair(ctx *gin.Context) (any, *api.Error) {
	var request packets.PairRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		return nil, &api.Error{Code: http.StatusBadRequest, Message: err.Error()}
	}

	terminalID, err := redisclient.ConsumePairingCode(ctx, request.Code)
	if err == goredis.Nil {
		return nil, &api.Error{Code: http.StatusUnauthorized, Message: "unknown or expired pairing code"}
	}
	if errors.Is(err, redisclient.ErrUnavailable) {
		return nil, &api.Error{Code: http.StatusServiceUnavailable, Message: "pairing unavailable"}
	}
	if err != nil {
		return nil, &api.Error{Code: http.StatusInternalServerError, Message: "internal error"}
	}

	if err := p.store.PairTerminal(terminalID, request.DeviceID); err != nil {
		log.Error().Err(err).Int("terminal", terminalID).Msg("failed to pair terminal")
		return nil, &api.Error{Code: http.StatusInternalServerError, Message: "could not pair terminal"}
	}

	terminal, err := p.store.GetTerminalByID(terminalID)
	if err != nil {
		return nil, &api.Error{Code: http.StatusInternalServerError, Message: "could not load terminal"}
	}

	token, err := middleware.GenerateTerminalJWT(terminal.ID, p.secret)
	if err != nil {
		return nil, &api.Error{Code: http.StatusInternalServerError, Message: "could not issue token"}
	}

	return packets.PairResponse{
		Token:    token,
		Terminal: terminalResponse(terminal),
	}, nil
}
