package tui

import (
	"time"

	"github.com/agbru/bigcalc/internal/orchestration"
)

// MaxHistory bounds the number of kept entries.
const MaxHistory = 100

// HistoryEntry is one evaluated expression.
type HistoryEntry struct {
	Input    string
	Engines  []orchestration.CalculationResult
	Value    string
	Duration time.Duration
	// Err is the user-facing failure message; empty on success.
	Err      string
	ExitCode int
}

// Mismatch reports whether the engines of a comparison disagreed.
func (e HistoryEntry) Mismatch() bool {
	var first string
	for _, r := range e.Engines {
		if r.Err != nil {
			continue
		}
		if first == "" {
			first = r.Value
		} else if r.Value != first {
			return true
		}
	}
	return false
}

// History keeps evaluated entries, newest last, and a cursor for recalling
// previous inputs.
type History struct {
	entries []HistoryEntry
	cursor  int
}

// Add appends e, dropping the oldest entry beyond MaxHistory, and resets
// the recall cursor.
func (h *History) Add(e HistoryEntry) {
	h.entries = append(h.entries, e)
	if len(h.entries) > MaxHistory {
		h.entries = h.entries[len(h.entries)-MaxHistory:]
	}
	h.cursor = len(h.entries)
}

// Entries returns the entries, oldest first.
func (h *History) Entries() []HistoryEntry {
	return h.entries
}

// Len returns the number of entries.
func (h *History) Len() int {
	return len(h.entries)
}

// Clear removes every entry.
func (h *History) Clear() {
	h.entries = nil
	h.cursor = 0
}

// Prev moves the cursor to the previous input and returns it. ok is false
// when there is nothing older.
func (h *History) Prev() (input string, ok bool) {
	if h.cursor == 0 {
		return "", false
	}
	h.cursor--
	return h.entries[h.cursor].Input, true
}

// Next moves the cursor towards the newest input. Past the newest entry it
// returns "" so the input line can be emptied.
func (h *History) Next() (input string, ok bool) {
	if h.cursor >= len(h.entries) {
		return "", false
	}
	h.cursor++
	if h.cursor == len(h.entries) {
		return "", true
	}
	return h.entries[h.cursor].Input, true
}
