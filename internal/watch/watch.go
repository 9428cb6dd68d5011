// Package watch re-runs work when a file changes.
//
// A Watcher observes one file through its parent directory, so editors that
// save by writing a temporary file and renaming it over the original are
// seen as a change. Rapid successive changes are coalesced: the callback
// runs once the file has been quiet for the debounce delay.
package watch

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/sirupsen/logrus"

	"github.com/dshills/actl/internal/logging"
)

// Common errors returned by watcher operations.
var (
	ErrWatcherClosed = errors.New("watcher is closed")
	ErrPathNotExist  = errors.New("path does not exist")
)

// DefaultDelay is used when no positive delay is configured.
const DefaultDelay = 100 * time.Millisecond

// Event is a coalesced change to the watched file.
type Event struct {
	// Path is the absolute path of the watched file.
	Path string
	// Op is the union of the operations seen during the quiet period.
	Op fsnotify.Op
	// Count is how many raw notifications were coalesced.
	Count int
}

// Option configures a Watcher.
type Option func(*Watcher)

// WithDelay sets the debounce delay.
func WithDelay(d time.Duration) Option {
	return func(w *Watcher) {
		if d > 0 {
			w.delay = d
		}
	}
}

// WithLogger sets the logger for watch errors.
func WithLogger(log logrus.FieldLogger) Option {
	return func(w *Watcher) {
		if log != nil {
			w.log = logging.WithComponent(log, "watch")
		}
	}
}

// Watcher reports debounced changes to a single file.
type Watcher struct {
	fsw   *fsnotify.Watcher
	path  string
	delay time.Duration
	log   *logrus.Entry
}

// New starts watching path.
func New(path string, opts ...Option) (*Watcher, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	if _, err := os.Stat(absPath); err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrPathNotExist, absPath)
		}
		return nil, err
	}

	w := &Watcher{
		path:  absPath,
		delay: DefaultDelay,
		log:   logging.WithComponent(logging.Discard(), "watch"),
	}
	for _, opt := range opts {
		opt(w)
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fsw.Add(filepath.Dir(absPath)); err != nil {
		_ = fsw.Close()
		return nil, err
	}
	w.fsw = fsw
	return w, nil
}

// Path returns the absolute path being watched.
func (w *Watcher) Path() string {
	return w.path
}

// Run calls fn after each debounced change until ctx is done or the watcher
// is closed. fn runs on the calling goroutine, so changes that arrive while
// it runs are coalesced into the next call.
func (w *Watcher) Run(ctx context.Context, fn func(context.Context, Event)) error {
	return w.loop(ctx, w.fsw.Events, w.fsw.Errors, fn)
}

// Close stops watching. A running Run returns ErrWatcherClosed.
func (w *Watcher) Close() error {
	return w.fsw.Close()
}

func (w *Watcher) loop(ctx context.Context, events <-chan fsnotify.Event, errs <-chan error, fn func(context.Context, Event)) error {
	var (
		timer   *time.Timer
		fire    <-chan time.Time
		pending Event
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case ev, ok := <-events:
			if !ok {
				return ErrWatcherClosed
			}
			if !w.relevant(ev) {
				continue
			}
			pending.Path = w.path
			pending.Op |= ev.Op
			pending.Count++
			if timer == nil {
				timer = time.NewTimer(w.delay)
			} else {
				timer.Reset(w.delay)
			}
			fire = timer.C

		case <-fire:
			fire = nil
			event := pending
			pending = Event{}
			fn(ctx, event)

		case err, ok := <-errs:
			if !ok {
				return ErrWatcherClosed
			}
			w.log.WithError(err).Warn("watch error")
		}
	}
}

// relevant reports whether ev changes the content at the watched path.
func (w *Watcher) relevant(ev fsnotify.Event) bool {
	if filepath.Clean(ev.Name) != w.path {
		return false
	}
	return ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create) || ev.Has(fsnotify.Rename)
}
