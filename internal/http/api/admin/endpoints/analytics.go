package endpoints

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/auralis-io/auralis/internal/db"
	"github.com/auralis-io/auralis/internal/http/api"
	"github.com/auralis-io/auralis/internal/http/api/admin/packets"
)

type AnalyticsController struct {
	store db.Store
}

func NewAnalyticsController(store db.Store) *AnalyticsController {
	return &AnalyticsController{store: store}
}

// AnalyticsModule mounts the play-session and activity-log read endpoints.
func AnalyticsModule(store db.Store) api.Module {
	ctl := NewAnalyticsController(store)
	return api.ModuleFunc(func(c *api.Controller) {
		c.GET("/sessions", ctl.listSessions)
		c.GET("/activity", ctl.listActivity)
	})
}

// GET /api/admin/sessions?terminal_id=&style_id=&day=YYYY-MM-DD
func (a *AnalyticsController) listSessions(ctx *gin.Context) (any, *api.Error) {
	terminalID, apiErr := optionalIntQuery(ctx, "terminal_id")
	if apiErr != nil {
		return nil, apiErr
	}
	styleID, apiErr := optionalIntQuery(ctx, "style_id")
	if apiErr != nil {
		return nil, apiErr
	}
	var day *string
	if v := ctx.Query("day"); v != "" {
		if _, err := time.Parse("2006-01-02", v); err != nil {
			return nil, &api.Error{Code: http.StatusBadRequest, Message: "day must be YYYY-MM-DD"}
		}
		day = &v
	}

	sessions, err := a.store.ListPlaySessions(terminalID, styleID, day)
	if err != nil {
		return nil, &api.Error{Code: http.StatusInternalServerError, Message: "could not list sessions"}
	}

	response := make([]packets.PlaySessionResponse, 0, len(sessions))
	for _, s := range sessions {
		response = append(response, packets.PlaySessionResponse{
			ID:          s.ID,
			TerminalID:  s.TerminalID,
			StyleID:     s.StyleID,
			Day:         s.Day.Format("2006-01-02"),
			StartedAt:   s.StartedAt.Format(time.RFC3339),
			EndedAt:     s.EndedAt.Format(time.RFC3339),
			TotalPlayed: s.TotalPlayed,
		})
	}
	return response, nil
}

// GET /api/admin/activity?terminal_id=&limit=&offset=
func (a *AnalyticsController) listActivity(ctx *gin.Context) (any, *api.Error) {
	terminalID, apiErr := optionalIntQuery(ctx, "terminal_id")
	if apiErr != nil {
		return nil, apiErr
	}
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "100"))
	offset, _ := strconv.Atoi(ctx.DefaultQuery("offset", "0"))

	entries, err := a.store.ListActivity(terminalID, limit, offset)
	if err != nil {
		return nil, &api.Error{Code: http.StatusInternalServerError, Message: "could not list activity"}
	}

	response := make([]packets.ActivityResponse, 0, len(entries))
	for _, e := range entries {
		response = append(response, packets.ActivityResponse{
			ID:         e.ID,
			TerminalID: e.TerminalID,
			Action:     e.Action,
			Details:    e.Details,
			CreatedAt:  e.CreatedAt.Format(time.RFC3339),
		})
	}
	return response, nil
}

func optionalIntQuery(ctx *gin.Context, name string) (*int, *api.Error) {
	v := ctx.Query(name)
	if v == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return nil, &api.Error{Code: http.StatusBadRequest, Message: "invalid " + name}
	}
	return &n, nil
}
