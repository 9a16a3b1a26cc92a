package tui

import (
	"errors"
	"fmt"
	"testing"

	"github.com/agbru/bigcalc/internal/orchestration"
)

func TestHistoryRecall(t *testing.T) {
	var h History
	if _, ok := h.Prev(); ok {
		t.Fatal("Prev on empty history should fail")
	}
	h.Add(HistoryEntry{Input: "1 + 1"})
	h.Add(HistoryEntry{Input: "2 * 3"})

	steps := []struct {
		prev   bool
		want   string
		wantOK bool
	}{
		{true, "2 * 3", true},
		{true, "1 + 1", true},
		{true, "", false},
		{false, "2 * 3", true},
		{false, "", true},
		{false, "", false},
	}
	for i, s := range steps {
		var got string
		var ok bool
		if s.prev {
			got, ok = h.Prev()
		} else {
			got, ok = h.Next()
		}
		if got != s.want || ok != s.wantOK {
			t.Errorf("step %d: got (%q, %v), want (%q, %v)", i, got, ok, s.want, s.wantOK)
		}
	}
}

func TestHistoryBounded(t *testing.T) {
	var h History
	for i := 0; i < MaxHistory+10; i++ {
		h.Add(HistoryEntry{Input: fmt.Sprintf("%d + 0", i)})
	}
	if h.Len() != MaxHistory {
		t.Fatalf("Len = %d, want %d", h.Len(), MaxHistory)
	}
	if first := h.Entries()[0].Input; first != "10 + 0" {
		t.Errorf("oldest entry = %q, want %q", first, "10 + 0")
	}
	h.Clear()
	if h.Len() != 0 {
		t.Error("Clear left entries behind")
	}
}

func TestHistoryEntryMismatch(t *testing.T) {
	agree := HistoryEntry{Engines: []orchestration.CalculationResult{
		{Name: "a", Value: "7"}, {Name: "b", Err: errors.New("x")}, {Name: "c", Value: "7"},
	}}
	if agree.Mismatch() {
		t.Error("agreeing engines reported as mismatch")
	}
	disagree := HistoryEntry{Engines: []orchestration.CalculationResult{
		{Name: "a", Value: "7"}, {Name: "b", Value: "8"},
	}}
	if !disagree.Mismatch() {
		t.Error("mismatch not detected")
	}
}
