package store

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// EventType describes the nature of a change notification.
type EventType int

const (
	// EventDocumentChanged indicates the named document was written or
	// removed.
	EventDocumentChanged EventType = iota

	// EventCatalogInvalidated signals that the change could not be tied to
	// one document and callers should refresh everything they show.
	EventCatalogInvalidated
)

// Event is emitted by Watch and WatchFile when underlying storage changes.
// Name is the catalog name for catalog events and the file path for file
// events.
type Event struct {
	Type EventType
	Name string
}

const throttleDelay = 100 * time.Millisecond

// Watch streams change events until ctx is cancelled. Callers should drain the
// returned channel to avoid blocking the watcher. The channel is closed once
// ctx is done or the watcher encounters an unrecoverable error.
func (c *catalog) Watch(ctx context.Context) (<-chan Event, error) {
	if err := os.MkdirAll(filepath.Join(c.basePath, documentsDir), 0o755); err != nil {
		return nil, fmt.Errorf("store: ensure base path: %w", err)
	}
	dirs, err := collectDirs(c.basePath)
	if err != nil {
		return nil, fmt.Errorf("store: enumerate directories: %w", err)
	}
	return watchDirs(ctx, dirs, func(path string) (Event, bool) {
		if name := c.nameForPath(path); name != "" {
			return Event{Type: EventDocumentChanged, Name: name}, true
		}
		if strings.HasPrefix(filepath.Base(path), catalogIndexFile) {
			// The index is rewritten after every document write.
			return Event{}, false
		}
		return Event{Type: EventCatalogInvalidated}, true
	})
}

// WatchFile streams an EventDocumentChanged for path whenever the file is
// written, replaced or removed. The parent directory is watched so editors
// that save through a rename are noticed.
func WatchFile(ctx context.Context, path string) (<-chan Event, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("store: resolve %s: %w", path, err)
	}
	return watchDirs(ctx, []string{filepath.Dir(abs)}, func(name string) (Event, bool) {
		if filepath.Clean(name) != abs {
			return Event{}, false
		}
		return Event{Type: EventDocumentChanged, Name: path}, true
	})
}

// watchDirs runs an fsnotify watcher over dirs and maps every file event
// through classify.
func watchDirs(ctx context.Context, dirs []string, classify func(path string) (Event, bool)) (<-chan Event, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("store: create watcher: %w", err)
	}
	var closeOnce sync.Once
	closeWatcher := func() {
		closeOnce.Do(func() {
			if err := watcher.Close(); err != nil {
				fmt.Fprintf(os.Stderr, "store: watcher close: %v\n", err)
			}
		})
	}

	for _, dir := range dirs {
		if err := watcher.Add(dir); err != nil {
			closeWatcher()
			return nil, fmt.Errorf("store: watch %s: %w", dir, err)
		}
	}

	events := make(chan Event, 64)

	go func() {
		defer close(events)
		defer closeWatcher()

		watched := make(map[string]struct{}, len(dirs))
		for _, dir := range dirs {
			watched[dir] = struct{}{}
		}

		send := func(ev Event) {
			select {
			case events <- ev:
			default:
				// A full channel means a refresh is already pending.
			}
		}

		throttle := newEventThrottle(throttleDelay)
		defer throttle.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case _, ok := <-watcher.Errors:
				if !ok {
					return
				}
				throttle.Enqueue(Event{Type: EventCatalogInvalidated}, send)
			case evt, ok := <-watcher.Events:
				if !ok {
					return
				}

				if evt.Op&fsnotify.Create == fsnotify.Create {
					if info, err := os.Stat(evt.Name); err == nil && info.IsDir() {
						absDir := filepath.Clean(evt.Name)
						if _, found := watched[absDir]; !found {
							if err := watcher.Add(absDir); err != nil {
								fmt.Fprintf(os.Stderr, "store: watch %s: %v\n", absDir, err)
							} else {
								watched[absDir] = struct{}{}
							}
						}
						continue
					}
				}
				if evt.Op == fsnotify.Chmod {
					continue
				}

				if ev, ok := classify(evt.Name); ok {
					throttle.Enqueue(ev, send)
				}
			}
		}
	}()

	return events, nil
}

// collectDirs walks base and returns all directories that should be watched.
func collectDirs(base string) ([]string, error) {
	dirs := []string{base}
	err := filepath.WalkDir(base, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return nil
			}
			return err
		}
		if d.IsDir() && path != base {
			dirs = append(dirs, path)
		}
		return nil
	})
	return dirs, err
}

// nameForPath derives the document name from a diskv path.
func (c *catalog) nameForPath(path string) string {
	rel, err := filepath.Rel(c.basePath, path)
	if err != nil || rel == "." {
		return ""
	}
	parts := strings.Split(rel, string(os.PathSeparator))
	if len(parts) != 2 || parts[0] != documentsDir {
		return ""
	}
	return decodeName(parts[1])
}

// eventThrottle coalesces rapid change notifications so the UI can redraw once
// per burst of filesystem activity instead of on every single write.
type eventThrottle struct {
	mu      sync.Mutex
	timer   *time.Timer
	pending map[EventType]map[string]struct{}
	delay   time.Duration
}

func newEventThrottle(delay time.Duration) *eventThrottle {
	return &eventThrottle{
		delay:   delay,
		pending: make(map[EventType]map[string]struct{}),
	}
}

func (t *eventThrottle) Enqueue(ev Event, send func(Event)) {
	t.mu.Lock()
	if t.pending[ev.Type] == nil {
		t.pending[ev.Type] = make(map[string]struct{})
	}
	t.pending[ev.Type][ev.Name] = struct{}{}

	if t.timer == nil {
		t.timer = time.AfterFunc(t.delay, func() {
			t.flush(send)
		})
	}
	t.mu.Unlock()
}

func (t *eventThrottle) flush(send func(Event)) {
	t.mu.Lock()
	pending := t.pending
	t.pending = make(map[EventType]map[string]struct{})
	t.timer = nil
	t.mu.Unlock()

	for eventType, names := range pending {
		for name := range names {
			send(Event{Type: eventType, Name: name})
		}
	}
}

func (t *eventThrottle) Stop() {
	t.mu.Lock()
	if t.timer != nil {
		t.timer.Stop()
		t.timer = nil
	}
	t.mu.Unlock()
}
