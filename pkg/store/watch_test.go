package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"tableflip.dev/statictable/pkg/descriptor"
)

func mustDoc(t *testing.T, src string) *descriptor.Document {
	t.Helper()
	doc, err := descriptor.Parse([]byte(src))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	return doc
}

func TestCatalogWatchEmitsDocumentChanges(t *testing.T) {
	c, err := Load(PathConfig(t.TempDir()))
	if err != nil {
		t.Fatalf("load catalog: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch, err := c.Watch(ctx)
	if err != nil {
		t.Fatalf("watch: %v", err)
	}

	// Allow watcher goroutine to subscribe to directories before storing.
	time.Sleep(50 * time.Millisecond)

	if err := c.Save("Inbox", mustDoc(t, "data:\n  - cell.textLabel.text: hello\n"), ""); err != nil {
		t.Fatalf("save: %v", err)
	}

	deadline := time.After(2 * time.Second)
	for {
		select {
		case evt := <-ch:
			if evt.Type == EventCatalogInvalidated {
				return
			}
			if evt.Type == EventDocumentChanged {
				if evt.Name != "Inbox" {
					t.Fatalf("expected document 'Inbox', got %q", evt.Name)
				}
				return
			}
		case <-deadline:
			t.Fatal("timed out waiting for document change event")
		}
	}
}

func TestWatchFileIgnoresSiblings(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "table.yaml")
	if err := os.WriteFile(path, []byte("data: []\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch, err := WatchFile(ctx, path)
	if err != nil {
		t.Fatalf("watch: %v", err)
	}
	time.Sleep(50 * time.Millisecond)

	if err := os.WriteFile(filepath.Join(dir, "other.yaml"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("data:\n  - cell.textLabel.text: changed\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case evt := <-ch:
		if evt.Type != EventDocumentChanged || evt.Name != path {
			t.Fatalf("expected a change for %s, got %+v", path, evt)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for file change event")
	}
}

func TestThrottleCoalescesBursts(t *testing.T) {
	got := make(chan Event, 8)
	th := newEventThrottle(20 * time.Millisecond)
	defer th.Stop()

	send := func(ev Event) { got <- ev }
	for i := 0; i < 5; i++ {
		th.Enqueue(Event{Type: EventDocumentChanged, Name: "a"}, send)
	}

	select {
	case ev := <-got:
		if ev.Name != "a" {
			t.Fatalf("expected a, got %+v", ev)
		}
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for flush")
	}
	select {
	case ev := <-got:
		t.Fatalf("expected one coalesced event, got another %+v", ev)
	case <-time.After(60 * time.Millisecond):
	}
}
