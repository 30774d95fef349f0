package config

import (
	"crypto/rand"
	"encoding/hex"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Port           string
	SessionSecret  string
	SessionTTLHrs  int
	DatabaseURL    string // optional Postgres connection string
	GeminiAPIKey   string
	GeminiModel    string
	PatternsDir    string
	UploadsDir     string
	MaxUploadBytes int64
}

func Load() Config {
	_ = godotenv.Load()
	cfg := Config{
		Port:           get("PORT", "8080"),
		SessionSecret:  get("SESSION_SECRET", ""),
		SessionTTLHrs:  getInt("SESSION_TTL_HOURS", 1),
		DatabaseURL:    get("DATABASE_URL", ""),
		GeminiAPIKey:   get("GEMINI_API_KEY", ""),
		GeminiModel:    get("GEMINI_MODEL", "gemini-2.5-pro"),
		PatternsDir:    get("PATTERNS_DIR", "data/patterns"),
		UploadsDir:     get("UPLOADS_DIR", "uploads"),
		MaxUploadBytes: int64(getInt("MAX_UPLOAD_MB", 16)) << 20,
	}
	if cfg.SessionSecret == "" {
		// session tokens will not survive a restart in this mode
		cfg.SessionSecret = randomHex(16)
		log.Printf("SESSION_SECRET not set, generated an ephemeral secret")
	}
	return cfg
}

func get(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func getInt(k string, def int) int {
	if v := os.Getenv(k); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
		log.Printf("invalid integer for %s, using default %d", k, def)
	}
	return def
}

func randomHex(n int) string {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		log.Fatalf("secret generation failed: %v", err)
	}
	return hex.EncodeToString(b)
}
