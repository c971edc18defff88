package watch

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/goliatone/go-sitefile/internal/logging"
	"github.com/goliatone/go-sitefile/internal/source"
	"github.com/goliatone/go-sitefile/pkg/interfaces"
)

// Op names the kind of change observed for a path.
type Op string

const (
	OpWrite  Op = "write"
	OpCreate Op = "create"
	OpRemove Op = "remove"
	OpRename Op = "rename"
)

// Removed reports whether the path no longer exists after the change.
func (op Op) Removed() bool {
	return op == OpRemove || op == OpRename
}

// Event is a classified change. Err carries the classification failure for
// paths under a root that do not follow the grammar; Descriptor is then zero.
type Event struct {
	Path       string
	Op         Op
	Descriptor source.Descriptor
	Err        error
}

// Handler receives events in the order they were observed.
type Handler func(ctx context.Context, event Event)

// Option configures a Watcher.
type Option func(*Watcher)

// WithLogger sets the logger used for watch lifecycle and backend errors.
func WithLogger(logger interfaces.Logger) Option {
	return func(w *Watcher) {
		if logger != nil {
			w.logger = logger
		}
	}
}

// WithCache routes classification through a descriptor cache.
func WithCache(cache *source.Cache) Option {
	return func(w *Watcher) {
		w.cache = cache
	}
}

// WithSettle delays delivery until no further event arrived for the same
// path within d. Editors that write through temp files otherwise produce a
// burst per save. Zero delivers immediately.
func WithSettle(d time.Duration) Option {
	return func(w *Watcher) {
		if d >= 0 {
			w.settle = d
		}
	}
}

// Watcher observes a source root on disk.
type Watcher struct {
	root   string
	logger interfaces.Logger
	cache  *source.Cache
	settle time.Duration
}

var roots = []string{"includes", "layouts", "pages"}

// ErrRootMissing is returned by Run when none of the source roots exist.
var ErrRootMissing = errors.New("watch: no includes, layouts or pages directory under root")

// New returns a Watcher for the site source tree at root.
func New(root string, opts ...Option) *Watcher {
	w := &Watcher{
		root:   filepath.Clean(root),
		logger: logging.NoOp(),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Run watches until ctx is done, calling fn for every change to a file under
// one of the roots. Directories created while running are watched too.
// Run returns nil when ctx ends and an error if the backend fails.
func (w *Watcher) Run(ctx context.Context, fn Handler) error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("watch: start: %w", err)
	}
	defer fsw.Close()

	watched := 0
	for _, name := range roots {
		dir := filepath.Join(w.root, name)
		if info, err := os.Stat(dir); err != nil || !info.IsDir() {
			continue
		}
		if err := addTree(fsw, dir); err != nil {
			return err
		}
		watched++
	}
	if watched == 0 {
		return fmt.Errorf("%w: %s", ErrRootMissing, w.root)
	}
	w.logger.Info("watch.started", "root", w.root, "directories", len(fsw.WatchList()))

	pending := newDebouncer(w.settle)
	defer pending.stop()

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("watch.stopped", "root", w.root)
			return nil
		case ev, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			if ev.Has(fsnotify.Create) && isDir(ev.Name) {
				if err := addTree(fsw, ev.Name); err != nil {
					w.logger.Warn("watch.directory.add_failed", "directory", ev.Name, "error", err)
				}
				continue
			}
			event, ok := w.classify(ev)
			if !ok {
				continue
			}
			pending.push(event, func(e Event) { fn(ctx, e) })
		case ready := <-pending.ready():
			ready()
		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			if errors.Is(err, fsnotify.ErrEventOverflow) {
				w.logger.Warn("watch.events.overflow", "root", w.root)
				continue
			}
			return fmt.Errorf("watch: %w", err)
		}
	}
}

// classify maps a raw event to a slash path relative to the root and parses
// it. Chmod-only events and paths outside the roots are dropped.
func (w *Watcher) classify(ev fsnotify.Event) (Event, bool) {
	op, ok := opOf(ev)
	if !ok {
		return Event{}, false
	}
	rel, err := filepath.Rel(w.root, ev.Name)
	if err != nil || rel == "." || strings.HasPrefix(rel, "..") {
		return Event{}, false
	}
	rel = filepath.ToSlash(rel)
	if !underRoot(rel) {
		return Event{}, false
	}

	event := Event{Path: rel, Op: op}
	if w.cache != nil {
		event.Descriptor, event.Err = w.cache.ParseLocation(rel)
	} else {
		event.Descriptor, event.Err = source.ParseLocation(rel)
	}
	return event, true
}

func opOf(ev fsnotify.Event) (Op, bool) {
	switch {
	case ev.Has(fsnotify.Remove):
		return OpRemove, true
	case ev.Has(fsnotify.Rename):
		return OpRename, true
	case ev.Has(fsnotify.Create):
		return OpCreate, true
	case ev.Has(fsnotify.Write):
		return OpWrite, true
	}
	return "", false
}

func underRoot(rel string) bool {
	head, _, _ := strings.Cut(rel, "/")
	for _, name := range roots {
		if strings.EqualFold(head, name) {
			return true
		}
	}
	return false
}

// addTree watches dir and every directory below it. fsnotify is not
// recursive.
func addTree(fsw *fsnotify.Watcher, dir string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if err := fsw.Add(path); err != nil {
			return fmt.Errorf("watch: add %s: %w", path, err)
		}
		return nil
	})
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
