package eventviewer

import (
	"errors"
	"strings"
	"testing"
	"time"

	"tableflip.dev/statictable/pkg/tui/events"
)

func TestRecordKeepsNewestFirst(t *testing.T) {
	m := NewModel(2)
	m.now = func() time.Time { return time.Date(2024, time.March, 1, 9, 30, 0, 0, time.UTC) }

	if m.Record("not an event") {
		t.Fatalf("expected plain values to be ignored")
	}
	m.Record(events.StatusMsg{Text: "one"})
	m.Record(events.StatusMsg{Text: "two"})
	m.Record(events.DocumentReloadMsg{Path: "a.yaml", Err: errors.New("boom")})

	if m.Len() != 2 {
		t.Fatalf("expected the log to be capped at 2, got %d", m.Len())
	}
	first := m.Entries()[0]
	if first.Source != "documentreload" || first.Level != LevelError {
		t.Fatalf("expected the reload error first, got %+v", first)
	}
	if m.Entries()[1].Source != "status" {
		t.Fatalf("expected the second status next, got %+v", m.Entries()[1])
	}
}

func TestViewShowsEntries(t *testing.T) {
	m := NewModel(0)
	m.SetSize(60, 6)
	if !strings.Contains(m.View(), "No events yet") {
		t.Fatalf("expected an empty marker")
	}
	m.Append(Entry{Source: "status", Summary: "hello"})
	view := m.View()
	if !strings.Contains(view, "Events (1)") || !strings.Contains(view, "hello") {
		t.Fatalf("expected the entry in the view, got:\n%s", view)
	}
	m.Clear()
	if m.Len() != 0 {
		t.Fatalf("expected Clear to drop entries")
	}
}
