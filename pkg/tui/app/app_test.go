package app

import (
	"context"
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/muesli/reflow/ansi"

	"tableflip.dev/statictable/pkg/descriptor"
	"tableflip.dev/statictable/pkg/store"
	"tableflip.dev/statictable/pkg/tui/events"
)

func stripANSIString(s string) string {
	var b strings.Builder
	ansiSeq := false
	for _, r := range s {
		if r == ansi.Marker {
			ansiSeq = true
			continue
		}
		if ansiSeq {
			if ansi.IsTerminator(r) {
				ansiSeq = false
			}
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func collect(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, collect(c)...)
		}
		return out
	}
	return []tea.Msg{msg}
}

// pump feeds msg to m and then every message its commands produce.
func pump(m *Model, msg tea.Msg) {
	queue := []tea.Msg{msg}
	for len(queue) > 0 {
		next := queue[0]
		queue = queue[1:]
		_, cmd := m.Update(next)
		queue = append(queue, collect(cmd)...)
	}
}

type docs map[string]string

func (d docs) load(source string) (*descriptor.Document, error) {
	src, ok := d[source]
	if !ok {
		return nil, errors.New("no document " + source)
	}
	return descriptor.Parse([]byte(src))
}

type fakeCatalog struct {
	docs docs
}

func (f *fakeCatalog) Save(string, *descriptor.Document, string) error { return nil }
func (f *fakeCatalog) Load(name string) (*descriptor.Document, error) { return f.docs.load(name) }
func (f *fakeCatalog) Delete(string) error                             { return nil }
func (f *fakeCatalog) Watch(context.Context) (<-chan store.Event, error) {
	return nil, nil
}
func (f *fakeCatalog) List(context.Context, string) []store.Meta {
	var out []store.Meta
	for name := range f.docs {
		out = append(out, store.Meta{Name: name, Style: "plain"})
	}
	return out
}

const inbox = "title: Inbox\ndata:\n  - cell.textLabel.text: first\n"

func TestOpensTheSourceDocument(t *testing.T) {
	d := docs{"inbox.yaml": inbox}
	m := New(Options{Source: "inbox.yaml", Load: d.load})
	pump(m, tea.WindowSizeMsg{Width: 60, Height: 12})
	pump(m, documentLoadedMsg{source: "inbox.yaml", doc: mustLoad(t, d, "inbox.yaml")})

	plain := stripANSIString(m.View())
	for _, want := range []string{"Inbox", "first", "inbox.yaml: 1 sections, 1 rows"} {
		if !strings.Contains(plain, want) {
			t.Fatalf("expected %q in view, got:\n%s", want, plain)
		}
	}
}

func TestWatchReloadKeepsTheController(t *testing.T) {
	d := docs{"inbox.yaml": inbox}
	m := New(Options{Source: "inbox.yaml", Load: d.load})
	pump(m, tea.WindowSizeMsg{Width: 60, Height: 12})
	pump(m, documentLoadedMsg{source: "inbox.yaml", doc: mustLoad(t, d, "inbox.yaml")})
	c := m.Controller()

	d["inbox.yaml"] = inbox + "  - cell.textLabel.text: second\n"
	pump(m, watchMsg{event: store.Event{Type: store.EventDocumentChanged, Name: "inbox.yaml"}})

	if m.Controller() != c || c.NumberOfItems() != 2 {
		t.Fatalf("expected the same controller with two items, got %d", c.NumberOfItems())
	}
	plain := stripANSIString(m.View())
	if !strings.Contains(plain, "second") || !strings.Contains(plain, "Reloaded inbox.yaml") {
		t.Fatalf("expected the reloaded row and status, got:\n%s", plain)
	}

	delete(d, "inbox.yaml")
	pump(m, watchMsg{event: store.Event{Type: store.EventDocumentChanged, Name: "inbox.yaml"}})
	if !m.statusErr || !strings.Contains(m.status, "no document") {
		t.Fatalf("expected a reload error in the status, got %q", m.status)
	}
	if c.NumberOfItems() != 2 {
		t.Fatalf("a failed reload must keep the old rows")
	}
}

func TestPickerOpensDocumentsAndEscReturns(t *testing.T) {
	d := docs{"inbox": inbox}
	cat := &fakeCatalog{docs: d}
	m := New(Options{Catalog: cat, Load: cat.Load})
	pump(m, tea.WindowSizeMsg{Width: 60, Height: 16})
	if !m.picking {
		t.Fatalf("expected to start in the picker")
	}
	pump(m, catalogListedMsg{metas: cat.List(context.Background(), "")})
	if plain := stripANSIString(m.View()); !strings.Contains(plain, "inbox") {
		t.Fatalf("expected the catalog listing, got:\n%s", plain)
	}

	pump(m, tea.KeyPressMsg{Code: tea.KeyEnter})
	if m.picking || m.Controller() == nil {
		t.Fatalf("expected enter to open the document")
	}
	if plain := stripANSIString(m.View()); !strings.Contains(plain, "first") {
		t.Fatalf("expected the table, got:\n%s", plain)
	}

	pump(m, tea.KeyPressMsg{Code: tea.KeyEscape})
	if !m.picking {
		t.Fatalf("expected esc to return to the picker")
	}
}

func TestInspectorShowsTheCursorItem(t *testing.T) {
	d := docs{"inbox.yaml": inbox}
	m := New(Options{Source: "inbox.yaml", Load: d.load})
	pump(m, tea.WindowSizeMsg{Width: 100, Height: 14})
	pump(m, documentLoadedMsg{source: "inbox.yaml", doc: mustLoad(t, d, "inbox.yaml")})

	pump(m, tea.KeyPressMsg{Text: "i", Code: 'i'})
	if !m.inspecting {
		t.Fatalf("expected i to open the inspector")
	}
	plain := stripANSIString(m.View())
	for _, want := range []string{"cell.textLabel.text: first", "path: (0,0)"} {
		if !strings.Contains(plain, want) {
			t.Fatalf("expected %q in view, got:\n%s", want, plain)
		}
	}

	pump(m, tea.KeyPressMsg{Code: tea.KeyEscape})
	if m.inspecting {
		t.Fatalf("expected esc to close the inspector")
	}
	if plain := stripANSIString(m.View()); strings.Contains(plain, "path: (0,0)") {
		t.Fatalf("expected the inspector to be hidden, got:\n%s", plain)
	}
}

func TestTableEventsUpdateTheStatus(t *testing.T) {
	m := New(Options{})
	pump(m, events.RowSelectMsg{Row: events.RowRef{Text: "Wi-Fi"}})
	if m.status != "Selected Wi-Fi" {
		t.Fatalf("expected a selection status, got %q", m.status)
	}
	pump(m, events.ValueChangeMsg{Row: events.RowRef{Text: "Volume"}, Value: "5.5"})
	if m.status != "Volume = 5.5" {
		t.Fatalf("expected a value status, got %q", m.status)
	}
}

func TestEventLogRecordsTableEvents(t *testing.T) {
	m := New(Options{})
	pump(m, tea.WindowSizeMsg{Width: 80, Height: 24})
	pump(m, events.RowSelectMsg{Row: events.RowRef{Text: "Wi-Fi"}})
	if m.eventLog.Len() != 1 {
		t.Fatalf("expected one logged event, got %d", m.eventLog.Len())
	}

	pump(m, tea.KeyPressMsg{Text: "e", Code: 'e'})
	plain := stripANSIString(m.View())
	if !strings.Contains(plain, "Events (1)") || !strings.Contains(plain, "[rowselect]") {
		t.Fatalf("expected the event pane, got:\n%s", plain)
	}

	pump(m, tea.KeyPressMsg{Text: "e", Code: 'e'})
	if strings.Contains(stripANSIString(m.View()), "Events (1)") {
		t.Fatalf("expected e to hide the event pane")
	}
}

func TestQuitKeys(t *testing.T) {
	m := New(Options{})
	_, cmd := m.Update(tea.KeyPressMsg{Text: "q", Code: 'q'})
	if cmd == nil {
		t.Fatalf("expected q to quit")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatalf("expected a QuitMsg")
	}
}

func mustLoad(t *testing.T, d docs, source string) *descriptor.Document {
	t.Helper()
	doc, err := d.load(source)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	return doc
}
