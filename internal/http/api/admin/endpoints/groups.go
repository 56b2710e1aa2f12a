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
)

type GroupController struct {
	store db.Store
}

func NewGroupController(store db.Store) *GroupController {
	return &GroupController{store: store}
}

func GroupModule(store db.Store) api.Module {
	ctl := NewGroupController(store)
	return api.ModuleFunc(func(c *api.Controller) {
		c.GET("/groups", ctl.listGroups)
		c.POST("/groups", ctl.createGroup)
		c.PUT("/groups/:id", ctl.renameGroup)
		c.DELETE("/groups/:id", ctl.deleteGroup)
	})
}

func (g *GroupController) listGroups(ctx *gin.Context) (any, *api.Error) {
	list, err := g.store.ListGroups()
	if err != nil {
		return nil, &api.Error{Code: http.StatusInternalServerError, Message: "could not list groups"}
	}

	response := make([]packets.GroupResponse, 0, len(list))
	for _, it := range list {
		response = append(response, groupResponse(it))
	}
	return response, nil
}

func (g *GroupController) createGroup(ctx *gin.Context) (any, *api.Error) {
	var request packets.CreateGroupRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		return nil, &api.Error{Code: http.StatusBadRequest, Message: err.Error()}
	}

	group, err := g.store.CreateGroup(request.Name, request.Description)
	if err != nil {
		return nil, &api.Error{Code: http.StatusInternalServerError, Message: "could not create group"}
	}
	return groupResponse(group), nil
}

func (g *GroupController) renameGroup(ctx *gin.Context) (any, *api.Error) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		return nil, &api.Error{Code: http.StatusBadRequest, Message: "invalid id"}
	}

	var request packets.UpdateGroupRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		return nil, &api.Error{Code: http.StatusBadRequest, Message: err.Error()}
	}

	group, err := g.store.RenameGroup(id, request.Name, request.Description)
	if err != nil {
		return nil, &api.Error{Code: http.StatusNotFound, Message: "group not found"}
	}
	return groupResponse(group), nil
}

func (g *GroupController) deleteGroup(ctx *gin.Context) (any, *api.Error) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		return nil, &api.Error{Code: http.StatusBadRequest, Message: "invalid id"}
	}
	if err := g.store.DeleteGroup(id); err != nil {
		return nil, &api.Error{Code: http.StatusInternalServerError, Message: "could not delete group"}
	}
	return gin.H{"message": "deleted"}, nil
}

func groupResponse(g model.TerminalGroup) packets.GroupResponse {
	return packets.GroupResponse{
		ID:          g.ID,
		Name:        g.Name,
		Description: g.Description,
		CreatedAt:   g.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   g.UpdatedAt.Format(time.RFC3339),
	}
}
