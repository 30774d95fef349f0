package controllers

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/navin54005-stack/dynamic-ai-voice-agent/agent"
	"github.com/navin54005-stack/dynamic-ai-voice-agent/config"
	"github.com/navin54005-stack/dynamic-ai-voice-agent/utils"
)

// Sessions maps session ids to their voice agent. The profile and dataset are
// per-session state; the pattern log behind the agents is process-wide.
// Entries outlive their token by nothing: each agent carries a deadline
// aligned with the token TTL and expired entries are swept on access, so
// long-running deployments do not accumulate dataset copies.
type Sessions struct {
	mu       sync.Mutex
	ttl      time.Duration
	agents   map[string]*sessionEntry
	patterns *agent.PatternLog
}

type sessionEntry struct {
	agent   *agent.VoiceAgent
	expires time.Time
}

func NewSessions(patterns *agent.PatternLog, ttl time.Duration) *Sessions {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &Sessions{
		ttl:      ttl,
		agents:   make(map[string]*sessionEntry),
		patterns: patterns,
	}
}

// Get returns the session's agent, creating a fresh one on first use or after
// the previous entry expired.
func (s *Sessions) Get(id string) *agent.VoiceAgent {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	s.sweepLocked(now)
	e, ok := s.agents[id]
	if !ok {
		e = &sessionEntry{agent: agent.New(s.patterns), expires: now.Add(s.ttl)}
		s.agents[id] = e
	}
	return e.agent
}

func (s *Sessions) Clear(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.agents, id)
	s.sweepLocked(time.Now())
}

func (s *Sessions) sweepLocked(now time.Time) {
	for id, e := range s.agents {
		if now.After(e.expires) {
			delete(s.agents, id)
		}
	}
}

// StartSession issues a fresh session token. The Go rendition of the
// original's auto-created cookie session.
func StartSession(cfg config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		sid := uuid.NewString()
		ttl := time.Duration(cfg.SessionTTLHrs) * time.Hour
		token, err := utils.GenerateSessionToken(cfg.SessionSecret, sid, ttl)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "token error"})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"session_id": sid,
			"token":      token,
			"expires_in": int(ttl.Seconds()),
		})
	}
}

// ClearSession drops the session's agent state; the next upload starts clean.
func ClearSession(sessions *Sessions) gin.HandlerFunc {
	return func(c *gin.Context) {
		sessions.Clear(c.GetString("session_id"))
		c.JSON(http.StatusOK, gin.H{"message": "session cleared successfully"})
	}
}
