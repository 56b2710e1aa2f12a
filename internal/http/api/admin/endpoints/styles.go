package endpoints

import (
	"database/sql"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/auralis-io/auralis/internal/db"
	"github.com/auralis-io/auralis/internal/http/api"
	"github.com/auralis-io/auralis/internal/http/api/admin/packets"
	"github.com/auralis-io/auralis/internal/model"
)

type StyleController struct {
	store db.Store
}

func NewStyleController(store db.Store) *StyleController {
	return &StyleController{store: store}
}

func StyleModule(store db.Store) api.Module {
	ctl := NewStyleController(store)
	return api.ModuleFunc(func(c *api.Controller) {
		c.GET("/styles", ctl.listStyles)
		c.POST("/styles", ctl.createStyle)
		c.GET("/styles/:id", ctl.getStyle)
		c.PUT("/styles/:id", ctl.updateStyle)
		c.DELETE("/styles/:id", ctl.deleteStyle)
	})
}

func (s *StyleController) listStyles(ctx *gin.Context) (any, *api.Error) {
	list, err := s.store.ListStyles()
	if err != nil {
		return nil, &api.Error{Code: http.StatusInternalServerError, Message: "could not list styles"}
	}

	response := make([]packets.StyleResponse, 0, len(list))
	for _, it := range list {
		response = append(response, adminStyleResponse(it))
	}
	return response, nil
}

func (s *StyleController) createStyle(ctx *gin.Context) (any, *api.Error) {
	var request packets.CreateStyleRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		return nil, &api.Error{Code: http.StatusBadRequest, Message: err.Error()}
	}

	style, err := s.store.CreateStyle(request.Name, request.Description, request.MixURL, request.Duration)
	if err != nil {
		return nil, &api.Error{Code: http.StatusInternalServerError, Message: "could not create style"}
	}
	return adminStyleResponse(style), nil
}

func (s *StyleController) getStyle(ctx *gin.Context) (any, *api.Error) {
	style, apiErr := s.lookup(ctx)
	if apiErr != nil {
		return nil, apiErr
	}
	return adminStyleResponse(*style), nil
}

func (s *StyleController) updateStyle(ctx *gin.Context) (any, *api.Error) {
	style, apiErr := s.lookup(ctx)
	if apiErr != nil {
		return nil, apiErr
	}

	var request packets.UpdateStyleRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		return nil, &api.Error{Code: http.StatusBadRequest, Message: err.Error()}
	}

	if err := s.store.UpdateStyle(style.ID, request.Name, request.Description, request.MixURL, request.Duration); err != nil {
		return nil, &api.Error{Code: http.StatusInternalServerError, Message: "could not update style"}
	}
	updated, err := s.store.GetStyleByID(style.ID)
	if err != nil {
		return nil, &api.Error{Code: http.StatusInternalServerError, Message: "could not load style"}
	}
	return adminStyleResponse(updated), nil
}

func (s *StyleController) deleteStyle(ctx *gin.Context) (any, *api.Error) {
	style, apiErr := s.lookup(ctx)
	if apiErr != nil {
		return nil, apiErr
	}
	if err := s.store.DeleteStyle(style.ID); err != nil {
		return nil, &api.Error{Code: http.StatusInternalServerError, Message: "could not delete style"}
	}
	return gin.H{"message": "deleted"}, nil
}

func (s *StyleController) lookup(ctx *gin.Context) (*model.Style, *api.Error) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		return nil, &api.Error{Code: http.StatusBadRequest, Message: "invalid id"}
	}
	style, err := s.store.GetStyleByID(id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, &api.Error{Code: http.StatusNotFound, Message: "style not found"}
	}
	if err != nil {
		return nil, &api.Error{Code: http.StatusInternalServerError, Message: "could not load style"}
	}
	return &style, nil
}

func adminStyleResponse(s model.Style) packets.StyleResponse {
	return packets.StyleResponse{
		ID:          s.ID,
		Name:        s.Name,
		Description: s.Description,
		MixURL:      s.MixURL,
		Duration:    s.Duration,
		CreatedAt:   s.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   s.UpdatedAt.Format(time.RFC3339),
	}
}
