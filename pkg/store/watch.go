package store

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// EventType describes the nature of a persistence change notification.
type EventType int

const (
	// EventTreeChanged indicates the stored tree was rewritten.
	EventTreeChanged EventType = iota

	// EventFavoritesChanged indicates the stored favorites were rewritten.
	EventFavoritesChanged

	// EventInvalidated signals a change that could not be attributed to a
	// single key; callers should reload everything.
	EventInvalidated
)

func (t EventType) String() string {
	switch t {
	case EventTreeChanged:
		return "tree"
	case EventFavoritesChanged:
		return "favorites"
	default:
		return "invalidated"
	}
}

// Event is emitted by Persistence.Watch when underlying storage changes.
type Event struct {
	Type EventType
	Key  string
}

// Watch streams change events until ctx is cancelled. Callers should drain the
// returned channel. The channel is closed once ctx is done or the watcher
// fails.
func (p *persistence) Watch(ctx context.Context) (<-chan Event, error) {
	if p.basePath == "" {
		return nil, errors.New("store: base path unknown")
	}
	if err := os.MkdirAll(p.basePath, 0o755); err != nil {
		return nil, fmt.Errorf("store: ensure base path: %w", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("store: create watcher: %w", err)
	}
	if err := watcher.Add(p.basePath); err != nil {
		_ = watcher.Close()
		return nil, fmt.Errorf("store: watch %s: %w", p.basePath, err)
	}

	events := make(chan Event, 16)
	throttle := newEventThrottle(100 * time.Millisecond)

	// flushes from the throttle timer may race with close(events)
	var mu sync.Mutex
	closed := false
	send := func(ev Event) {
		mu.Lock()
		defer mu.Unlock()
		if closed {
			return
		}
		select {
		case events <- ev:
		default:
			// Consumer is behind; it reloads everything on the next event anyway.
		}
	}

	go func() {
		defer func() {
			throttle.Stop()
			_ = watcher.Close()
			mu.Lock()
			closed = true
			close(events)
			mu.Unlock()
		}()

		for {
			select {
			case <-ctx.Done():
				return
			case _, ok := <-watcher.Errors:
				if !ok {
					return
				}
				throttle.Enqueue(Event{Type: EventInvalidated}, send)
			case evt, ok := <-watcher.Events:
				if !ok {
					return
				}
				if evt.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Rename|fsnotify.Remove) == 0 {
					continue
				}
				switch filepath.Base(evt.Name) {
				case TreeKey:
					throttle.Enqueue(Event{Type: EventTreeChanged, Key: TreeKey}, send)
				case FavoritesKey:
					throttle.Enqueue(Event{Type: EventFavoritesChanged, Key: FavoritesKey}, send)
				}
			}
		}
	}()

	return events, nil
}

// eventThrottle coalesces bursts of filesystem notifications so a rename
// followed by a chmod produces one event per key.
type eventThrottle struct {
	mu      sync.Mutex
	timer   *time.Timer
	pending map[EventType]string
	order   []EventType
	delay   time.Duration
}

func newEventThrottle(delay time.Duration) *eventThrottle {
	return &eventThrottle{
		delay:   delay,
		pending: make(map[EventType]string),
	}
}

func (t *eventThrottle) Enqueue(ev Event, send func(Event)) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, ok := t.pending[ev.Type]; !ok {
		t.order = append(t.order, ev.Type)
	}
	t.pending[ev.Type] = ev.Key
	if t.timer == nil {
		t.timer = time.AfterFunc(t.delay, func() {
			t.flush(send)
		})
	}
}

func (t *eventThrottle) flush(send func(Event)) {
	t.mu.Lock()
	pending, order := t.pending, t.order
	t.pending = make(map[EventType]string)
	t.order = nil
	t.timer = nil
	t.mu.Unlock()

	for _, typ := range order {
		send(Event{Type: typ, Key: pending[typ]})
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
