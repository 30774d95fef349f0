package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/navin54005-stack/dynamic-ai-voice-agent/agent"
	"github.com/navin54005-stack/dynamic-ai-voice-agent/config"
	"github.com/navin54005-stack/dynamic-ai-voice-agent/controllers"
	"github.com/navin54005-stack/dynamic-ai-voice-agent/middlewares"
)

func Register(r *gin.Engine, cfg config.Config, sessions *controllers.Sessions, patterns *agent.PatternLog) {
	r.GET("/health", controllers.Health())

	api := r.Group("/api")
	{
		api.POST("/session/start", controllers.StartSession(cfg))

		priv := api.Group("/")
		priv.Use(middlewares.Session(cfg.SessionSecret))
		priv.POST("company/upload", controllers.UploadCompanyData(cfg, sessions))
		priv.POST("respond", controllers.GetAIResponse(sessions))
		priv.GET("insights", controllers.LearningInsights(sessions, patterns))
		priv.GET("uploads", controllers.ListUploads())
		priv.POST("session/clear", controllers.ClearSession(sessions))
	}
}
