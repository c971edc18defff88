package watch

import (
	"sync"
	"time"
)

// debouncer coalesces events per path. Only the latest event for a path is
// delivered once the path has been quiet for the settle window. Delivery
// happens on the Run goroutine through the ready channel.
type debouncer struct {
	settle  time.Duration
	mu      sync.Mutex
	pending map[string]*pendingEvent
	fire    chan func()
	done    chan struct{}
}

type pendingEvent struct {
	timer *time.Timer
}

func newDebouncer(settle time.Duration) *debouncer {
	return &debouncer{
		settle:  settle,
		pending: map[string]*pendingEvent{},
		fire:    make(chan func(), 64),
		done:    make(chan struct{}),
	}
}

func (d *debouncer) push(event Event, deliver func(Event)) {
	if d.settle <= 0 {
		deliver(event)
		return
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	d.scheduleLocked(event, deliver)
}

// scheduleLocked replaces any pending event for the path. A timer that
// already fired but lost the race for mu sees it was superseded and drops
// its event. Callers hold mu.
func (d *debouncer) scheduleLocked(event Event, deliver func(Event)) {
	if prev, ok := d.pending[event.Path]; ok {
		prev.timer.Stop()
	}
	entry := &pendingEvent{}
	entry.timer = time.AfterFunc(d.settle, func() {
		d.mu.Lock()
		if d.pending[event.Path] != entry {
			d.mu.Unlock()
			return
		}
		delete(d.pending, event.Path)
		d.mu.Unlock()
		select {
		case d.fire <- func() { deliver(event) }:
		case <-d.done:
		}
	})
	d.pending[event.Path] = entry
}

func (d *debouncer) ready() <-chan func() {
	return d.fire
}

func (d *debouncer) stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	close(d.done)
	for path, entry := range d.pending {
		entry.timer.Stop()
		delete(d.pending, path)
	}
}
