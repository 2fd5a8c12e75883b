package watch

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce coalesces the burst of writes a single git operation makes.
const DefaultDebounce = 200 * time.Millisecond

// Watcher reports changes to a repository's git metadata (HEAD, refs and
// packed-refs) on a debounced channel.
type Watcher struct {
	fsw      *fsnotify.Watcher
	debounce time.Duration
	logger   *slog.Logger
	changes  chan struct{}
}

// New watches gitDir and, when different, commonDir (the directory that
// holds refs/ for linked worktrees).
func New(gitDir, commonDir string, debounce time.Duration, logger *slog.Logger) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	w := &Watcher{
		fsw:      fsw,
		debounce: debounce,
		logger:   logger,
		changes:  make(chan struct{}, 1),
	}

	dirs := []string{gitDir}
	if commonDir != "" && commonDir != gitDir {
		dirs = append(dirs, commonDir)
	}
	for _, dir := range dirs {
		if err := w.addTree(dir); err != nil {
			fsw.Close()
			return nil, err
		}
	}
	return w, nil
}

// addTree watches dir itself and every directory below dir/refs.
func (w *Watcher) addTree(dir string) error {
	if err := w.fsw.Add(dir); err != nil {
		return err
	}
	refs := filepath.Join(dir, "refs")
	err := filepath.WalkDir(refs, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return w.fsw.Add(path)
		}
		return nil
	})
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}

// Changes delivers one value per debounced burst of relevant events.
func (w *Watcher) Changes() <-chan struct{} {
	return w.changes
}

// Run processes filesystem events until ctx is done. It closes the
// underlying watcher on return.
func (w *Watcher) Run(ctx context.Context) error {
	defer w.fsw.Close()

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

		case event, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			if event.Op&fsnotify.Create != 0 {
				w.watchNewDir(event.Name)
			}
			if ShouldIgnore(event) {
				continue
			}
			w.logger.Debug("git metadata changed", "path", event.Name, "op", event.Op.String())

			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			fire = timer.C

		case <-fire:
			fire = nil
			select {
			case w.changes <- struct{}{}:
			default:
			}

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("watcher error", "err", err)
		}
	}
}

// watchNewDir adds newly created ref namespaces (e.g. refs/heads/feature/).
func (w *Watcher) watchNewDir(path string) {
	if !strings.Contains(filepath.ToSlash(path), "/refs/") {
		return
	}
	if info, err := os.Stat(path); err == nil && info.IsDir() {
		if err := w.fsw.Add(path); err != nil {
			w.logger.Debug("watch new ref dir", "path", path, "err", err)
		}
	}
}

// ShouldIgnore filters events that never change the visible history.
func ShouldIgnore(event fsnotify.Event) bool {
	if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) == 0 {
		return true
	}

	base := filepath.Base(event.Name)
	path := filepath.ToSlash(event.Name)

	switch {
	case strings.HasSuffix(base, ".lock"):
		return true
	case strings.Contains(path, "/logs/"):
		return true
	case strings.Contains(path, "/objects/"):
		return true
	case base == "config", base == "index", base == "FETCH_HEAD", base == "COMMIT_EDITMSG":
		return true
	}
	return false
}
