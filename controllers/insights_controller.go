package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/navin54005-stack/dynamic-ai-voice-agent/agent"
	"github.com/navin54005-stack/dynamic-ai-voice-agent/database"
	"github.com/navin54005-stack/dynamic-ai-voice-agent/models"
)

// LearningInsights is a read-only snapshot of the pattern journal and the
// session's active profile.
func LearningInsights(sessions *Sessions, patterns *agent.PatternLog) gin.HandlerFunc {
	return func(c *gin.Context) {
		sid := c.GetString("session_id")
		ag := sessions.Get(sid)
		resp := models.InsightsResponse{
			PatternCount:      patterns.Count(),
			CompanyInfo:       ag.Profile(),
			CompanyDataLoaded: ag.HasCompanyData(),
			StorageLocation:   patterns.Path(),
		}
		if database.Pool != nil {
			ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
			defer cancel()
			var n int
			if err := database.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM uploads WHERE session_id=$1`, sid).Scan(&n); err == nil {
				resp.UploadCount = &n
			}
		}
		c.JSON(http.StatusOK, resp)
	}
}

// ListUploads returns the session's upload history, newest first. Empty when
// no database is configured.
func ListUploads() gin.HandlerFunc {
	return func(c *gin.Context) {
		list := []models.UploadRecord{}
		if database.Pool != nil {
			ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
			defer cancel()
			rows, err := database.Pool.Query(ctx, `SELECT id, file_name, record_count, company_name, created_at FROM uploads WHERE session_id=$1 ORDER BY created_at DESC`, c.GetString("session_id"))
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
				return
			}
			defer rows.Close()
			for rows.Next() {
				var r models.UploadRecord
				if err := rows.Scan(&r.ID, &r.FileName, &r.RecordCount, &r.CompanyName, &r.CreatedAt); err == nil {
					list = append(list, r)
				}
			}
		}
		c.JSON(http.StatusOK, list)
	}
}

// Health reports liveness only; session state lives in /api/insights.
func Health() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "healthy",
			"timestamp": time.Now().Format(time.RFC3339),
		})
	}
}
