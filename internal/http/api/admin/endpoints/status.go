package endpoints

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/auralis-io/auralis/internal/db"
	"github.com/auralis-io/auralis/internal/http/api"
	"github.com/auralis-io/auralis/internal/metrics"
	redisclient "github.com/auralis-io/auralis/internal/redis"
	"github.com/auralis-io/auralis/internal/status"
)

type StatusController struct {
	store db.Store
}

func NewStatusController(store db.Store) *StatusController {
	return &StatusController{store: store}
}

func StatusModule(store db.Store) api.Module {
	ctl := NewStatusController(store)
	return api.ModuleFunc(func(c *api.Controller) {
		c.GET("/status/live", ctl.liveStatus)
	})
}

// GET /api/admin/status/live
//
// Dashboard polling endpoint, assumed 30s cadence by callers. Recomputed in
// full on every request; terminal cardinality is small.
func (s *StatusController) liveStatus(ctx *gin.Context) (any, *api.Error) {
	rows, err := s.store.ListTerminalOverviews()
	if err != nil {
		return nil, &api.Error{Code: http.StatusInternalServerError, Message: "could not load terminals"}
	}

	report := status.Build(rows, func(terminalID int) bool {
		return redisclient.IsPresent(ctx, terminalID)
	})
	metrics.TerminalsPlaying.Set(float64(report.Stats.PlayingNow))
	return report, nil
}
