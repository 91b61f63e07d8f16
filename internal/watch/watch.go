// Package watch recomputes the integral of a data file whenever it changes.
package watch

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/bft-labs/midpoint/internal/app"
	"github.com/bft-labs/midpoint/internal/input"
	"github.com/bft-labs/midpoint/internal/ports"
	"github.com/bft-labs/midpoint/pkg/log"
)

// DefaultDebounce is the quiet period after the last change before reloading.
const DefaultDebounce = 100 * time.Millisecond

// DefaultReadAttempts bounds reloads of a file that fails to decode, which
// happens while an editor is still writing it.
const DefaultReadAttempts = 3

// Handler receives every recomputation, successful or not.
type Handler func(app.Result, error)

// Config holds the watcher settings.
type Config struct {
	Path           string
	Debounce       time.Duration
	ReadAttempts   int
	BackoffInitial time.Duration
	BackoffMax     time.Duration
}

// Watcher monitors one data file via fsnotify.
type Watcher struct {
	cfg    Config
	calc   *app.Calculator
	sink   ports.ChartSink
	logger ports.Logger
	handle Handler

	mu       sync.Mutex
	debounce *time.Timer

	// serializes recomputations fired by the debounce timer
	runMu sync.Mutex
}

// New creates a Watcher. sink and logger may be nil.
func New(cfg Config, calc *app.Calculator, sink ports.ChartSink, logger ports.Logger, handle Handler) *Watcher {
	if cfg.Debounce <= 0 {
		cfg.Debounce = DefaultDebounce
	}
	if cfg.ReadAttempts <= 0 {
		cfg.ReadAttempts = DefaultReadAttempts
	}
	if cfg.BackoffMax <= 0 {
		cfg.BackoffMax = DefaultBackoffMax
	}
	if logger == nil {
		logger = log.NewNoopLogger()
	}
	if handle == nil {
		handle = func(app.Result, error) {}
	}
	return &Watcher{cfg: cfg, calc: calc, sink: sink, logger: logger, handle: handle}
}

// Run computes once, then again after every change to the file, until ctx
// is canceled. The file need not exist yet.
func (w *Watcher) Run(ctx context.Context) error {
	if w.cfg.Path == "" {
		return errors.New("watch: no data file")
	}
	target, err := filepath.Abs(w.cfg.Path)
	if err != nil {
		return fmt.Errorf("watch: resolve %s: %w", w.cfg.Path, err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("watch: create watcher: %w", err)
	}
	defer watcher.Close()

	dir := filepath.Dir(target)
	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("watch: add %s: %w", dir, err)
	}
	w.logger.Info("watching data file", log.String("path", target), log.Duration("debounce", w.cfg.Debounce))

	w.recompute(ctx)

	defer w.stopTimer()
	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			w.schedule(ctx)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("watcher error", log.Err(err))
		}
	}
}

func (w *Watcher) schedule(ctx context.Context) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.debounce != nil {
		w.debounce.Stop()
	}
	w.debounce = time.AfterFunc(w.cfg.Debounce, func() {
		w.recompute(ctx)
	})
}

func (w *Watcher) stopTimer() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.debounce != nil {
		w.debounce.Stop()
	}
}

func (w *Watcher) recompute(ctx context.Context) {
	w.runMu.Lock()
	defer w.runMu.Unlock()

	if ctx.Err() != nil {
		return
	}

	res, err := w.load(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return
		}
		w.logger.Warn("recompute failed", log.String("path", w.cfg.Path), log.Err(err))
		w.handle(app.Result{}, err)
		return
	}

	if w.sink != nil {
		if err := w.sink.Save(ctx, res.Series, res.Estimate); err != nil {
			w.logger.Warn("save chart failed", log.Err(err))
		}
	}
	w.handle(res, nil)
}

// load reads and calculates, retrying decode failures with backoff.
func (w *Watcher) load(ctx context.Context) (app.Result, error) {
	b := newBackoff(w.cfg.BackoffInitial, w.cfg.BackoffMax)

	var lastErr error
	for attempt := 1; attempt <= w.cfg.ReadAttempts; attempt++ {
		s, err := input.LoadFile(w.cfg.Path)
		if err == nil {
			return w.calc.Calculate("watch", s)
		}
		lastErr = err
		if !retryable(err) || attempt == w.cfg.ReadAttempts {
			break
		}
		w.logger.Debug("data file not readable yet, retrying",
			log.Int("attempt", attempt), log.Duration("backoff", b.Current()), log.Err(err))
		if err := b.Wait(ctx); err != nil {
			return app.Result{}, err
		}
	}
	return app.Result{}, lastErr
}

func retryable(err error) bool {
	return !errors.Is(err, os.ErrNotExist) && !errors.Is(err, input.ErrUnsupportedFormat)
}
