package app

import (
	"github.com/artpromedia/aivo-v5-sub004/internal/config"
	"github.com/artpromedia/aivo-v5-sub004/internal/middleware"
	"github.com/artpromedia/aivo-v5-sub004/internal/model"
	"github.com/artpromedia/aivo-v5-sub004/pkg/monitoring"

	"github.com/gin-gonic/gin"
)

func (a *App) registerRoutes(router *gin.Engine, ctrls *controllers, repos *repositories, cfg *config.Config) {
	router.GET("/health", ctrls.health.Check)
	router.GET("/metrics", monitoring.PrometheusHandler())

	api := router.Group("/api")

	auth := api.Group("/auth")
	{
		auth.POST("/register", ctrls.auth.Register)
		auth.POST("/login", ctrls.auth.Login)
	}

	authorized := api.Group("")
	authorized.Use(middleware.AuthMiddleware(cfg))
	authorized.Use(middleware.ActivityMiddleware(repos.user))
	{
		homework := authorized.Group("/homework")
		{
			homework.POST("/sessions", ctrls.homework.CreateSession)
			homework.GET("/sessions", ctrls.homework.ListSessions)
			homework.GET("/sessions/:id", ctrls.homework.GetSession)
			homework.PATCH("/sessions/:id", ctrls.homework.UpdateSession)
			homework.DELETE("/sessions/:id", ctrls.homework.DeleteSession)

			homework.POST("/sessions/:id/hints", ctrls.homework.DispenseHint)
			homework.PATCH("/hints/:id", ctrls.homework.HintFeedback)

			homework.POST("/sessions/:id/files", ctrls.homework.UploadFile)
			homework.GET("/sessions/:id/files", ctrls.homework.ListFiles)
			homework.PATCH("/files/:id/ocr", middleware.RoleMiddleware(model.Admin), ctrls.homework.UpdateFileOcr)

			homework.POST("/sessions/:id/work-products", ctrls.homework.CreateWorkProduct)
			homework.GET("/sessions/:id/work-products/latest", ctrls.homework.GetLatestWorkProduct)
			homework.PATCH("/work-products/:id", ctrls.homework.UpdateWorkProductCompletion)
		}

		regulation := authorized.Group("/regulation")
		{
			regulation.POST("/sessions", ctrls.regulation.StartSession)
			regulation.GET("/sessions", ctrls.regulation.ListSessions)
			regulation.GET("/sessions/recent", ctrls.regulation.GetRecent)
			regulation.GET("/sessions/:id", ctrls.regulation.GetSession)
			regulation.PATCH("/sessions/:id", ctrls.regulation.UpdateSession)
			regulation.GET("/activities", ctrls.regulation.ListActivities)
		}

		emotions := authorized.Group("/emotions")
		{
			emotions.POST("", ctrls.emotion.LogEmotion)
			emotions.GET("", ctrls.emotion.GetHistory)
			emotions.GET("/recent", ctrls.emotion.GetRecent)
			emotions.GET("/alerts", ctrls.emotion.GetDistressAlerts)
			emotions.GET("/:id", ctrls.emotion.GetEntry)
		}

		analytics := authorized.Group("/analytics")
		{
			analytics.GET("/regulation/stats", ctrls.analytics.GetRegulationStats)
			analytics.GET("/regulation/streak", ctrls.analytics.GetRegulationStreak)
			analytics.GET("/emotions/summary", ctrls.analytics.GetEmotionSummary)
		}
	}
}
