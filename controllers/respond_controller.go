package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/navin54005-stack/dynamic-ai-voice-agent/agent"
	"github.com/navin54005-stack/dynamic-ai-voice-agent/models"
)

// GetAIResponse turns a caller utterance into a short templated reply from
// the session's active company profile.
func GetAIResponse(sessions *Sessions) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.RespondRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
			return
		}
		ag := sessions.Get(c.GetString("session_id"))
		reply, err := ag.Respond(req.CustomerResponse)
		if err != nil {
			if errors.Is(err, agent.ErrNoCompanyData) {
				c.JSON(http.StatusBadRequest, gin.H{"error": "please upload company data first"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, models.RespondResponse{AIResponse: reply})
	}
}
