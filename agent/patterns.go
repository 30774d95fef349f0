package agent

import (
	"encoding/json"
	"log"
	"os"
	"strings"
	"sync"
	"time"
)

// maxPatterns caps the journal to the most recent entries; older ones are
// discarded before each flush.
const maxPatterns = 1000

// PatternEntry is one observed utterance/reply pair. Input is stored
// normalized (lower-cased, trimmed).
type PatternEntry struct {
	Input     string    `json:"input"`
	Response  string    `json:"response"`
	Timestamp time.Time `json:"timestamp"`
}

// PatternLog is an append-only journal backed by a single JSON array on disk.
// Every append rewrites the whole file, so the log serializes the
// read-modify-truncate-write cycle behind its mutex. Storage failures degrade
// to an in-memory log and are never surfaced to callers.
type PatternLog struct {
	mu      sync.Mutex
	path    string
	entries []PatternEntry
}

// NewPatternLog opens the journal at path, loading any existing entries. A
// missing or malformed file resets to an empty log.
func NewPatternLog(path string) *PatternLog {
	l := &PatternLog{path: path}
	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Printf("pattern log read error, starting fresh: %v", err)
		}
		return l
	}
	if err := json.Unmarshal(data, &l.entries); err != nil {
		log.Printf("pattern log parse error, starting fresh: %v", err)
		l.entries = nil
		return l
	}
	log.Printf("loaded %d saved conversation patterns", len(l.entries))
	return l
}

// Append journals a pair, trims to the newest maxPatterns, and flushes.
func (l *PatternLog) Append(input, response string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = append(l.entries, PatternEntry{
		Input:     strings.ToLower(strings.TrimSpace(input)),
		Response:  response,
		Timestamp: time.Now(),
	})
	if len(l.entries) > maxPatterns {
		l.entries = l.entries[len(l.entries)-maxPatterns:]
	}
	l.persistLocked()
}

func (l *PatternLog) persistLocked() {
	data, err := json.MarshalIndent(l.entries, "", "  ")
	if err != nil {
		log.Printf("pattern log encode error: %v", err)
		return
	}
	if err := os.WriteFile(l.path, data, 0o644); err != nil {
		log.Printf("pattern log write error: %v", err)
	}
}

func (l *PatternLog) Count() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}

// Entries returns a copy of the current journal, oldest first.
func (l *PatternLog) Entries() []PatternEntry {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]PatternEntry, len(l.entries))
	copy(out, l.entries)
	return out
}

func (l *PatternLog) Path() string {
	return l.path
}
