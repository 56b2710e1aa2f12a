package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/auralis-io/auralis/internal/http/middleware"
	"github.com/auralis-io/auralis/internal/model"
)

type Error struct {
	Code    int
	Message string
}

type HandlerFunc func(ctx *gin.Context) (any, *Error)
type HandlerFuncWithTerminal func(ctx *gin.Context, terminal *model.Terminal) (any, *Error)

func ResolveEndpoint(h HandlerFunc) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		result, apiErr := h(ctx)
		if apiErr != nil {
			ctx.JSON(apiErr.Code, gin.H{"error": apiErr.Message})
			return
		}

		ctx.JSON(http.StatusOK, result)
	}
}

// ResolveEndpointWithTerminal requires TerminalJWTMiddleware upstream; the
// handler receives the authenticated terminal.
func ResolveEndpointWithTerminal(h HandlerFuncWithTerminal) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		terminal, ok := middleware.GetCurrentTerminal(ctx)
		if !ok {
			ctx.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		result, apiErr := h(ctx, terminal)
		if apiErr != nil {
			ctx.JSON(apiErr.Code, gin.H{"error": apiErr.Message})
			return
		}

		ctx.JSON(http.StatusOK, result)
	}
}
