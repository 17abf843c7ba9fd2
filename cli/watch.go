package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	"github.com/alecthomas/kong"
	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/robinvdvleuten/flux/loader"
)

// WatchCmd checks its input once and again after every change.
type WatchCmd struct {
	Path     string        `help:"Flux file or directory to watch." arg:"" type:"path"`
	Debounce time.Duration `help:"Delay before checking after a change (overrides watch.debounce)."`
}

func (cmd *WatchCmd) Run(ctx *kong.Context, globals *Globals) error {
	s, err := globals.session(ctx)
	if err != nil {
		return usageError(err)
	}
	debounce := s.cfg.Watch.Debounce.Duration
	if cmd.Debounce > 0 {
		debounce = cmd.Debounce
	}

	runCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	input := &FileOrStdin{Filename: cmd.Path}
	recheck := func() {
		_ = s.check(runCtx, input)
	}

	w, err := newWatcher(cmd.Path, debounce, s.log)
	if err != nil {
		return usageError(err)
	}

	recheck()
	s.errs.printInfof(s.stderr, "Watching %s for changes", s.errs.path.Render(cmd.Path))
	return w.run(runCtx, recheck)
}

// watcher reports changes to the Flux sources under a path. The parent
// directory is watched rather than the file itself so that editors which
// save by renaming a temporary file are still noticed.
type watcher struct {
	fs       *fsnotify.Watcher
	target   string // File to watch, empty for a whole directory
	debounce time.Duration
	log      *zap.Logger
}

func newWatcher(path string, debounce time.Duration, log *zap.Logger) (*watcher, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}

	dir, target := path, ""
	if !info.IsDir() {
		dir, target = filepath.Dir(path), filepath.Clean(path)
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}
	if err := fsw.Add(dir); err != nil {
		_ = fsw.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", dir, err)
	}
	log.Debug("watching", zap.String("dir", dir), zap.String("file", target))

	return &watcher{fs: fsw, target: target, debounce: debounce, log: log}, nil
}

// relevant reports whether an event for name should trigger a check.
func (w *watcher) relevant(name string) bool {
	if w.target != "" {
		return filepath.Clean(name) == w.target
	}
	return strings.HasSuffix(name, loader.Ext)
}

// run calls onChange after each burst of relevant events, once the sources
// have been quiet for the debounce delay. It returns when ctx is done.
func (w *watcher) run(ctx context.Context, onChange func()) error {
	defer func() { _ = w.fs.Close() }()

	var timer *time.Timer
	var fire <-chan time.Time
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.fs.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			if !w.relevant(event.Name) {
				continue
			}
			w.log.Debug("change detected", zap.String("file", event.Name), zap.Stringer("op", event.Op))

			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			fire = timer.C

		case <-fire:
			fire = nil
			onChange()

		case err, ok := <-w.fs.Errors:
			if !ok {
				return nil
			}
			w.log.Warn("file watcher error", zap.Error(err))
		}
	}
}
