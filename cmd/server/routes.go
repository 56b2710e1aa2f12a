package main

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/auralis-io/auralis/internal/db"
	"github.com/auralis-io/auralis/internal/http/api"
	adminapi "github.com/auralis-io/auralis/internal/http/api/admin/endpoints"
	terminalapi "github.com/auralis-io/auralis/internal/http/api/terminal/endpoints"
	"github.com/auralis-io/auralis/internal/http/middleware"
	"github.com/auralis-io/auralis/internal/mqtt"
)

// RegisterRoutes sets up all application routes
func RegisterRoutes(r *gin.Engine, env Environment, store db.Store, publisher *mqtt.Publisher) {
	// CORS
	r.Use(cors.New(cors.Config{
		AllowOriginFunc: func(origin string) bool { return true },
		AllowMethods: []string{
			"GET",
			"POST",
			"PUT",
			"PATCH",
			"DELETE",
			"OPTIONS",
			"HEAD",
		},
		AllowHeaders: []string{
			"Origin",
			"Content-Type",
			"Authorization",
			"Accept",
		},
		AllowCredentials: false,
	}))

	api.MountGroup(r, api.GroupConfig{
		Prefix: "/api/terminal",
	},
		terminalapi.PairModule(store, env.SecretKey),
	)

	api.MountGroup(r, api.GroupConfig{
		Prefix: "/api/terminal",
		Middleware: []gin.HandlerFunc{
			middleware.TerminalJWTMiddleware(env.SecretKey, store),
		},
	},
		terminalapi.PlaybackModule(store),
		terminalapi.ProgramModule(store),
	)

	api.MountGroup(r, api.GroupConfig{
		Prefix:     "/api/admin",
		AdminToken: env.AdminToken,
	},
		adminapi.TerminalModule(store, publisher),
		adminapi.StyleModule(store),
		adminapi.ScheduleModule(store),
		adminapi.GroupModule(store),
		adminapi.StatusModule(store),
		adminapi.AnalyticsModule(store),
	)

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
}
