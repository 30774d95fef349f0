package main

import (
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/navin54005-stack/dynamic-ai-voice-agent/agent"
	"github.com/navin54005-stack/dynamic-ai-voice-agent/config"
	"github.com/navin54005-stack/dynamic-ai-voice-agent/controllers"
	"github.com/navin54005-stack/dynamic-ai-voice-agent/database"
	"github.com/navin54005-stack/dynamic-ai-voice-agent/routes"
)

func main() {
	cfg := config.Load()

	for _, dir := range []string{cfg.PatternsDir, cfg.UploadsDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			log.Fatalf("create dir %s: %v", dir, err)
		}
	}

	database.Connect(cfg.DatabaseURL)
	database.EnsureSchema()

	patterns := agent.NewPatternLog(filepath.Join(cfg.PatternsDir, "conversation_patterns.json"))
	sessions := controllers.NewSessions(patterns, time.Duration(cfg.SessionTTLHrs)*time.Hour)

	r := gin.Default()
	r.MaxMultipartMemory = cfg.MaxUploadBytes
	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	})
	routes.Register(r, cfg, sessions, patterns)
	log.Printf("server on :%s", cfg.Port)
	r.Run(":" + cfg.Port)
}
