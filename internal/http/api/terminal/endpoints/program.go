package endpoints

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/auralis-io/auralis/internal/db"
	"github.com/auralis-io/auralis/internal/http/api"
	"github.com/auralis-io/auralis/internal/http/api/terminal/packets"
	"github.com/auralis-io/auralis/internal/metrics"
	"github.com/auralis-io/auralis/internal/model"
	"github.com/auralis-io/auralis/internal/schedule"
)

type ProgramController struct {
	store db.Store
}

func NewProgramController(store db.Store) *ProgramController {
	return &ProgramController{store: store}
}

// ProgramModule mounts the auto-mode program resolver endpoint.
func ProgramModule(store db.Store) api.Module {
	ctl := NewProgramController(store)
	return api.ModuleFunc(func(c *api.Controller) {
		c.TerminalGET("/program", ctl.currentProgram)
	})
}

// GET /api/terminal/program?now=HH:MM
//
// Polled every 30s by terminals in auto mode. The optional now parameter
// exists for operators previewing a schedule; terminals omit it and get the
// server's local clock.
func (p *ProgramController) currentProgram(ctx *gin.Context, terminal *model.Terminal) (any, *api.Error) {
	now := ctx.Query("now")
	if now == "" {
		now = time.Now().Format("15:04")
	}

	entries, err := p.store.ListScheduleEntriesForTerminal(terminal.ID)
	if err != nil {
		return nil, &api.Error{Code: http.StatusInternalServerError, Message: "could not load schedule"}
	}

	metrics.ResolverRequests.Inc()

	entry := schedule.Resolve(entries, terminal.ID, now)
	if entry == nil {
		return packets.ProgramResponse{}, nil
	}

	style, err := p.store.GetStyleByID(entry.StyleID)
	if err != nil {
		return nil, &api.Error{Code: http.StatusInternalServerError, Message: "could not load style"}
	}
	resp := styleResponse(style)
	return packets.ProgramResponse{Style: &resp}, nil
}
