package agent

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strconv"
	"testing"
)

func TestPatternLogRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "patterns.json")
	l := NewPatternLog(path)
	l.Append("  Hello There  ", "reply one")
	l.Append("second", "reply two")
	l.Append("third", "reply three")

	reloaded := NewPatternLog(path)
	entries := reloaded.Entries()
	if len(entries) != 3 {
		t.Fatalf("reloaded %d entries, want 3", len(entries))
	}
	if entries[0].Input != "hello there" {
		t.Errorf("first input = %q, want normalized %q", entries[0].Input, "hello there")
	}
	if entries[2].Response != "reply three" {
		t.Errorf("order not preserved: last response = %q", entries[2].Response)
	}
	if entries[0].Timestamp.IsZero() {
		t.Error("timestamp not persisted")
	}
}

func TestPatternLogCap(t *testing.T) {
	path := filepath.Join(t.TempDir(), "patterns.json")
	l := NewPatternLog(path)
	for i := 0; i <= maxPatterns; i++ {
		l.Append("input "+strconv.Itoa(i), "reply")
	}
	if l.Count() != maxPatterns {
		t.Fatalf("count = %d, want %d", l.Count(), maxPatterns)
	}
	entries := l.Entries()
	if entries[0].Input != "input 1" {
		t.Errorf("oldest entry = %q, want the second appended", entries[0].Input)
	}
	if entries[len(entries)-1].Input != "input "+strconv.Itoa(maxPatterns) {
		t.Errorf("newest entry = %q", entries[len(entries)-1].Input)
	}

	// the backing file holds the truncated log too
	reloaded := NewPatternLog(path)
	if reloaded.Count() != maxPatterns {
		t.Errorf("reloaded count = %d, want %d", reloaded.Count(), maxPatterns)
	}
}

func TestPatternLogMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "patterns.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	l := NewPatternLog(path)
	if l.Count() != 0 {
		t.Errorf("malformed file should reset to empty, count = %d", l.Count())
	}
	l.Append("hello", "reply")
	if l.Count() != 1 {
		t.Errorf("append after reset failed, count = %d", l.Count())
	}
}

func TestPatternLogMissingFile(t *testing.T) {
	l := NewPatternLog(filepath.Join(t.TempDir(), "nope.json"))
	if l.Count() != 0 {
		t.Errorf("missing file should start empty, count = %d", l.Count())
	}
}

func TestPatternLogUnwritablePathDegradesToMemory(t *testing.T) {
	l := NewPatternLog(filepath.Join(t.TempDir(), "no", "such", "dir", "patterns.json"))
	l.Append("hello", "reply")
	l.Append("hi", "reply")
	if l.Count() != 2 {
		t.Errorf("in-memory log should still accumulate, count = %d", l.Count())
	}
}

func TestPatternLogFileLayout(t *testing.T) {
	path := filepath.Join(t.TempDir(), "patterns.json")
	l := NewPatternLog(path)
	l.Append("Hello", "a reply")

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	var raw []map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatalf("backing store is not a JSON array of objects: %v", err)
	}
	if len(raw) != 1 {
		t.Fatalf("array length = %d", len(raw))
	}
	for _, key := range []string{"input", "response", "timestamp"} {
		if _, ok := raw[0][key]; !ok {
			t.Errorf("missing key %q in persisted entry", key)
		}
	}
}
