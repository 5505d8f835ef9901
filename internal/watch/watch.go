// Package watch keeps a directory of HDR files supplied with thumbnails.
//
// A Watcher first backfills every supported file already in the directory,
// then reacts to fsnotify create and write events. Events are debounced per
// path so an editor or renderer writing a file in several chunks triggers one
// conversion. Conversions run one at a time on a single worker goroutine.
package watch

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"

	"github.com/ironsheep/thumbshot/internal/pipeline"
)

const queueSize = 64

// Converter is the subset of *pipeline.Converter used by the watcher.
type Converter interface {
	Supports(path string) bool
	ConvertIfMissing(input, output string, targetWidth int) (*pipeline.ConvertResult, error)
}

// Options configures a Watcher.
type Options struct {
	// Width is the thumbnail width passed to the converter.
	Width int
	// Debounce is the quiet period after the last event for a path before it
	// is converted. Zero converts on the first event.
	Debounce time.Duration
	// OnProcessed, if set, is called by the worker after every conversion
	// attempt.
	OnProcessed func(path string, res *pipeline.ConvertResult, err error)
}

// Watcher converts HDR files in one directory (non-recursive).
type Watcher struct {
	dir  string
	conv Converter
	opts Options
	log  zerolog.Logger

	mu     sync.Mutex
	timers map[string]*time.Timer

	queue chan string
}

// New returns a Watcher for dir.
func New(dir string, conv Converter, opts Options, log zerolog.Logger) *Watcher {
	return &Watcher{
		dir:    dir,
		conv:   conv,
		opts:   opts,
		log:    log.With().Str("dir", dir).Logger(),
		timers: make(map[string]*time.Timer),
		queue:  make(chan string, queueSize),
	}
}

// Run watches the directory until ctx is cancelled. It returns an error only
// if the watch cannot be established; conversion failures are logged.
func (w *Watcher) Run(ctx context.Context) error {
	info, err := os.Stat(w.dir)
	if err != nil {
		return fmt.Errorf("watch %s: %w", w.dir, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("watch %s: not a directory", w.dir)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(w.dir); err != nil {
		return fmt.Errorf("watch %s: %w", w.dir, err)
	}

	ctx, cancel := context.WithCancel(ctx)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		w.work(ctx)
	}()

	defer func() {
		cancel()
		w.stopTimers()
		wg.Wait()
	}()

	if err := w.backfill(ctx); err != nil {
		w.log.Warn().Err(err).Msg("backfill failed")
	}

	w.log.Info().Msg("watching for new files")

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			if !w.conv.Supports(event.Name) {
				continue
			}
			w.schedule(ctx, event.Name)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			w.log.Warn().Err(err).Msg("watcher error")
		}
	}
}

// backfill queues every supported file already present, in name order.
func (w *Watcher) backfill(ctx context.Context) error {
	entries, err := os.ReadDir(w.dir)
	if err != nil {
		return err
	}

	var paths []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		p := filepath.Join(w.dir, e.Name())
		if w.conv.Supports(p) {
			paths = append(paths, p)
		}
	}
	sort.Strings(paths)

	w.log.Debug().Int("files", len(paths)).Msg("backfilling")
	for _, p := range paths {
		w.enqueue(ctx, p)
	}
	return nil
}

// schedule (re)starts the debounce timer for path.
func (w *Watcher) schedule(ctx context.Context, path string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if t, ok := w.timers[path]; ok {
		t.Stop()
	}
	w.timers[path] = time.AfterFunc(w.opts.Debounce, func() {
		w.mu.Lock()
		delete(w.timers, path)
		w.mu.Unlock()
		w.enqueue(ctx, path)
	})
}

func (w *Watcher) stopTimers() {
	w.mu.Lock()
	defer w.mu.Unlock()
	for p, t := range w.timers {
		t.Stop()
		delete(w.timers, p)
	}
}

func (w *Watcher) enqueue(ctx context.Context, path string) {
	select {
	case w.queue <- path:
	case <-ctx.Done():
	}
}

func (w *Watcher) work(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case path := <-w.queue:
			w.process(path)
		}
	}
}

func (w *Watcher) process(path string) {
	res, err := w.conv.ConvertIfMissing(path, "", w.opts.Width)
	switch {
	case err != nil:
		w.log.Error().Err(err).Str("path", path).Msg("conversion failed")
	case res.Skipped:
		w.log.Debug().Str("path", path).Msg("thumbnail already present")
	}

	if w.opts.OnProcessed != nil {
		w.opts.OnProcessed(path, res, err)
	}
}
