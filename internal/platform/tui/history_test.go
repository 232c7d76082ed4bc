package tui

import (
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-terrain/internal/storage"
)

type fakeHistory struct {
	blasts []storage.BlastRecord
	err    error
}

func (f fakeHistory) RecentBlasts(limit int) ([]storage.BlastRecord, error) {
	if f.err != nil {
		return nil, f.err
	}
	if limit < len(f.blasts) {
		return f.blasts[:limit], nil
	}
	return f.blasts, nil
}

func (f fakeHistory) Totals() (*storage.BlastTotals, error) {
	t := &storage.BlastTotals{Blasts: len(f.blasts)}
	for _, b := range f.blasts {
		t.Destroyed += int64(b.Destroyed)
		t.Biggest = max(t.Biggest, b.Destroyed)
	}
	return t, nil
}

func (f fakeHistory) TypeTotals() ([]storage.TypeTotal, error) {
	sums := make(map[string]int64)
	for _, b := range f.blasts {
		for name, n := range b.Types {
			sums[name] += int64(n)
		}
	}
	var out []storage.TypeTotal
	for name, n := range sums {
		out = append(out, storage.TypeTotal{Name: name, Count: n})
	}
	return out, nil
}

func TestFormatTypeCounts(t *testing.T) {
	tests := []struct {
		name     string
		counts   map[string]int
		expected string
	}{
		{"empty", nil, "-"},
		{"single", map[string]int{"stone": 3}, "stone:3"},
		{"largest first", map[string]int{"dirt": 2, "stone": 9, "grass": 2}, "stone:9 dirt:2 grass:2"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := FormatTypeCounts(tc.counts); got != tc.expected {
				t.Errorf("FormatTypeCounts() = %q, expected %q", got, tc.expected)
			}
		})
	}
}

func TestHistoryModelView(t *testing.T) {
	src := fakeHistory{blasts: []storage.BlastRecord{
		{ID: 2, OriginX: 40, OriginY: 30, Power: 2, Rays: 40, Destroyed: 37, Types: map[string]int{"stone": 37}, CreatedAt: time.Now()},
		{ID: 1, OriginX: 5, OriginY: 6, Power: 1, Rays: 8, Destroyed: 3, Types: map[string]int{"dirt": 3}, CreatedAt: time.Now()},
	}}

	m := NewHistoryModel(src, 10, 140, 30, MonochromeTheme())
	view := m.View()
	for _, want := range []string{"BLAST HISTORY", "2 blasts, 40 blocks destroyed, biggest 37", "(40,30)", "stone:37", "dirt:3"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q:\n%s", want, view)
		}
	}
}

func TestHistoryModelEmptyAndError(t *testing.T) {
	m := NewHistoryModel(fakeHistory{}, 10, 100, 30, MonochromeTheme())
	if !strings.Contains(m.View(), "No blasts recorded yet") {
		t.Error("expected empty message")
	}

	m = NewHistoryModel(fakeHistory{err: errors.New("locked")}, 10, 100, 30, MonochromeTheme())
	if !strings.Contains(m.View(), "locked") {
		t.Error("expected load error in view")
	}

	m = NewHistoryModel(nil, 10, 100, 30, MonochromeTheme())
	if !strings.Contains(m.View(), "No blasts recorded yet") {
		t.Error("a missing store shows the empty message")
	}
}

func TestHistoryModelQuit(t *testing.T) {
	m := NewHistoryModel(fakeHistory{}, 10, 100, 30, MonochromeTheme())
	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	if cmd == nil {
		t.Error("expected quit command")
	}
	if next.View() != "" {
		t.Error("view should be empty after quit")
	}
}
