package endpoints

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/auralis-io/auralis/internal/db"
	"github.com/auralis-io/auralis/internal/http/api"
	"github.com/auralis-io/auralis/internal/http/api/admin/packets"
	"github.com/auralis-io/auralis/internal/model"
	"github.com/auralis-io/auralis/internal/schedule"
)

type ScheduleController struct {
	store db.Store
}

func NewScheduleController(store db.Store) *ScheduleController {
	return &ScheduleController{store: store}
}

func ScheduleModule(store db.Store) api.Module {
	ctl := NewScheduleController(store)
	return api.ModuleFunc(func(c *api.Controller) {
		c.GET("/schedules", ctl.listEntries)
		c.POST("/schedules", ctl.createEntry)
		c.PUT("/schedules/:id", ctl.updateEntry)
		c.DELETE("/schedules/:id", ctl.deleteEntry)

		// preview what a terminal would resolve to at a given time
		c.GET("/schedules/preview", ctl.preview)
	})
}

func (s *ScheduleController) listEntries(ctx *gin.Context) (any, *api.Error) {
	list, err := s.store.ListScheduleEntries()
	if err != nil {
		return nil, &api.Error{Code: http.StatusInternalServerError, Message: "failed to list schedules"}
	}

	response := make([]packets.ScheduleEntryResponse, 0, len(list))
	for _, it := range list {
		response = append(response, scheduleEntryResponse(it))
	}
	return response, nil
}

func (s *ScheduleController) createEntry(ctx *gin.Context) (any, *api.Error) {
	var request packets.CreateScheduleEntryRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		return nil, &api.Error{Code: http.StatusBadRequest, Message: err.Error()}
	}
	if !validWindow(request.StartTime, request.EndTime) {
		return nil, &api.Error{Code: http.StatusBadRequest, Message: "times must be zero-padded HH:MM with start <= end"}
	}
	if _, err := s.store.GetStyleByID(request.StyleID); err != nil {
		return nil, &api.Error{Code: http.StatusNotFound, Message: "style not found"}
	}

	entry, err := s.store.CreateScheduleEntry(request.StyleID, request.TerminalID, request.StartTime, request.EndTime)
	if err != nil {
		return nil, &api.Error{Code: http.StatusInternalServerError, Message: "could not create schedule entry"}
	}
	return scheduleEntryResponse(entry), nil
}

func (s *ScheduleController) updateEntry(ctx *gin.Context) (any, *api.Error) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		return nil, &api.Error{Code: http.StatusBadRequest, Message: "invalid id"}
	}

	var request packets.UpdateScheduleEntryRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		return nil, &api.Error{Code: http.StatusBadRequest, Message: err.Error()}
	}
	if request.StartTime != nil && !schedule.ValidClock(*request.StartTime) {
		return nil, &api.Error{Code: http.StatusBadRequest, Message: "invalid start time"}
	}
	if request.EndTime != nil && !schedule.ValidClock(*request.EndTime) {
		return nil, &api.Error{Code: http.StatusBadRequest, Message: "invalid end time"}
	}

	if err := s.store.UpdateScheduleEntry(id, request.StyleID, request.StartTime, request.EndTime); err != nil {
		return nil, &api.Error{Code: http.StatusInternalServerError, Message: "could not update schedule entry"}
	}
	return gin.H{"message": "updated"}, nil
}

func (s *ScheduleController) deleteEntry(ctx *gin.Context) (any, *api.Error) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		return nil, &api.Error{Code: http.StatusBadRequest, Message: "invalid id"}
	}
	if err := s.store.DeleteScheduleEntry(id); err != nil {
		return nil, &api.Error{Code: http.StatusInternalServerError, Message: "could not delete schedule entry"}
	}
	return gin.H{"message": "deleted"}, nil
}

// GET /api/admin/schedules/preview?terminal_id=7&now=10:00
func (s *ScheduleController) preview(ctx *gin.Context) (any, *api.Error) {
	terminalID, err := strconv.Atoi(ctx.Query("terminal_id"))
	if err != nil {
		return nil, &api.Error{Code: http.StatusBadRequest, Message: "invalid terminal_id"}
	}
	now := ctx.Query("now")
	if now == "" {
		now = time.Now().Format("15:04")
	}

	entries, err := s.store.ListScheduleEntriesForTerminal(terminalID)
	if err != nil {
		return nil, &api.Error{Code: http.StatusInternalServerError, Message: "could not load schedule"}
	}

	entry := schedule.Resolve(entries, terminalID, now)
	if entry == nil {
		return gin.H{"entry": nil}, nil
	}
	return gin.H{"entry": scheduleEntryResponse(*entry)}, nil
}

func validWindow(start, end string) bool {
	return schedule.ValidClock(start) && schedule.ValidClock(end) && start <= end
}

func scheduleEntryResponse(e model.ScheduleEntry) packets.ScheduleEntryResponse {
	return packets.ScheduleEntryResponse{
		ID:         e.ID,
		StyleID:    e.StyleID,
		TerminalID: e.TerminalID,
		StartTime:  e.StartTime,
		EndTime:    e.EndTime,
		CreatedAt:  e.CreatedAt.Format(time.RFC3339),
		UpdatedAt:  e.UpdatedAt.Format(time.RFC3339),
	}
}
