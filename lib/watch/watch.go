// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package watch

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/bureau-foundation/foundry/lib/clock"
)

// DefaultDebounce is the quiet period used when Config.Debounce is zero.
const DefaultDebounce = 100 * time.Millisecond

// Config configures [Start].
type Config struct {
	// Path is the file to watch. Its directory must exist.
	Path string

	// Debounce is how long the file must stay unchanged before a change
	// is reported. Zero uses [DefaultDebounce].
	Debounce time.Duration

	// Clock times the debounce. If nil, [clock.Real] is used.
	Clock clock.Clock

	// Logger receives watcher errors. If nil, a no-op logger is used.
	Logger *slog.Logger
}

// Watcher reports changes to a single file.
type Watcher struct {
	path     string
	debounce time.Duration
	clock    clock.Clock
	logger   *slog.Logger

	notify  *fsnotify.Watcher
	settled chan struct{}
	changes chan struct{}
	errors  chan error
	done    chan struct{}
}

// Start watches a file until ctx is cancelled.
//
// The parent directory is watched rather than the file itself: editors
// and foundry's own saves replace files by renaming a temporary file
// over them, which creates a new inode that a file-level watch would
// miss. Write and create events naming the file restart a debounce
// timer, and one change is reported when the timer expires. Changes
// that arrive while a previous one is still unread are merged into it.
func Start(ctx context.Context, cfg Config) (*Watcher, error) {
	absolutePath, err := filepath.Abs(cfg.Path)
	if err != nil {
		return nil, err
	}
	if cfg.Debounce <= 0 {
		cfg.Debounce = DefaultDebounce
	}
	if cfg.Clock == nil {
		cfg.Clock = clock.Real()
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.New(slog.DiscardHandler)
	}

	notify, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating file watcher: %w", err)
	}
	if err := notify.Add(filepath.Dir(absolutePath)); err != nil {
		notify.Close()
		return nil, fmt.Errorf("watching %s: %w", filepath.Dir(absolutePath), err)
	}

	watcher := &Watcher{
		path:     absolutePath,
		debounce: cfg.Debounce,
		clock:    cfg.Clock,
		logger:   cfg.Logger,
		notify:   notify,
		settled:  make(chan struct{}, 1),
		changes:  make(chan struct{}, 1),
		errors:   make(chan error, 1),
		done:     make(chan struct{}),
	}
	go watcher.run(ctx)
	return watcher, nil
}

// Path returns the absolute path being watched.
func (w *Watcher) Path() string { return w.path }

// Changes receives one value per debounced burst of changes. It is
// closed when the watcher stops.
func (w *Watcher) Changes() <-chan struct{} { return w.changes }

// Errors receives errors reported by the underlying watcher. Errors
// are dropped while a previous one is unread. It is closed when the
// watcher stops.
func (w *Watcher) Errors() <-chan error { return w.errors }

// Done is closed once the watcher has released its resources.
func (w *Watcher) Done() <-chan struct{} { return w.done }

// settle is the debounce timer's callback. It may run on any goroutine.
func (w *Watcher) settle() {
	select {
	case w.settled <- struct{}{}:
	default:
	}
}

func (w *Watcher) run(ctx context.Context) {
	defer close(w.done)
	defer close(w.errors)
	defer close(w.changes)
	defer w.notify.Close()

	name := filepath.Base(w.path)
	var timer *clock.Timer
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-w.notify.Events:
			if !ok {
				return
			}
			if filepath.Base(event.Name) != name {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			if timer == nil {
				timer = w.clock.AfterFunc(w.debounce, w.settle)
			} else {
				timer.Reset(w.debounce)
			}

		case <-w.settled:
			select {
			case w.changes <- struct{}{}:
				w.logger.Debug("file changed", "path", w.path)
			default:
			}

		case err, ok := <-w.notify.Errors:
			if !ok {
				return
			}
			w.logger.Warn("file watcher error", "path", w.path, "error", err)
			select {
			case w.errors <- err:
			default:
			}
		}
	}
}
