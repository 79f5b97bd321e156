// internal/app/router.go
package app

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"gridiron-service/internal/config"
	authhandler "gridiron-service/internal/handlers/auth"
	feedhandler "gridiron-service/internal/handlers/feed"
	leaguehandler "gridiron-service/internal/handlers/league"
	playerhandler "gridiron-service/internal/handlers/player"
	seasonhandler "gridiron-service/internal/handlers/season"
	teamhandler "gridiron-service/internal/handlers/team"
	"gridiron-service/internal/middleware"
	authsvc "gridiron-service/internal/service/auth"
)

type routerDeps struct {
	cfg         *config.Config
	logger      *zap.Logger
	authService *authsvc.Service

	auth   *authhandler.Handler
	league *leaguehandler.Handler
	team   *teamhandler.Handler
	player *playerhandler.Handler
	season *seasonhandler.Handler
	feed   *feedhandler.Handler
}

func SetupRouter(d routerDeps) *gin.Engine {
	if d.cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(middleware.Recovery(d.logger))
	r.Use(middleware.RequestLogger(d.logger))
	r.Use(middleware.CORS())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	requireSession := middleware.RequireSession(d.authService, d.logger)

	api := r.Group("/api/v1")
	{
		auth := api.Group("/auth")
		{
			auth.POST("/register", d.auth.Register)
			auth.POST("/login", d.auth.Login)
			auth.POST("/forgot-password", d.auth.ForgotPassword)
			auth.POST("/reset-password", d.auth.ResetPassword)

			auth.POST("/logout", requireSession, d.auth.Logout)
			auth.POST("/logout-all", requireSession, d.auth.LogoutAll)
			auth.GET("/me", requireSession, d.auth.Me)
		}

		leagues := api.Group("/leagues", requireSession)
		{
			leagues.GET("", d.league.List)
			leagues.POST("", d.league.Create)
			leagues.POST("/join", d.league.Join)
			leagues.GET("/:id", d.league.Get)
			leagues.GET("/:id/overview", d.league.Overview)
			leagues.GET("/:id/standings", d.league.Standings)
			leagues.GET("/:id/free-agents", d.player.FreeAgents)
		}

		teams := api.Group("/teams", requireSession)
		{
			teams.GET("", d.team.ListMine)
			teams.GET("/:id", d.team.Get)
			teams.PATCH("/:id", d.team.Rename)
			teams.GET("/:id/roster", d.team.Roster)
			teams.POST("/:id/roster/add", d.team.AddPlayer)
			teams.POST("/:id/roster/drop", d.team.DropPlayer)
			teams.PUT("/:id/lineup", d.team.SetLineup)
		}

		players := api.Group("/players", requireSession)
		{
			players.GET("", d.player.Search)
			players.GET("/:id", d.player.Get)
		}

		seasons := api.Group("/seasons", requireSession)
		{
			seasons.GET("", d.season.List)
			seasons.GET("/current", d.season.Current)
			seasons.GET("/:id/weeks", d.season.Weeks)
		}
	}

	r.GET("/ws", requireSession, d.feed.Connect)

	return r
}
