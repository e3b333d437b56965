// Package watch reports batches of changed source files under a set of
// paths, for re-running the formatter as files are saved.
package watch

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/yaklabco/quill/internal/logging"
	"github.com/yaklabco/quill/pkg/langdetect"
	"github.com/yaklabco/quill/pkg/runner"
)

// DefaultDebounce is how long the tree must be quiet before a batch of
// changes is delivered.
const DefaultDebounce = 200 * time.Millisecond

// ErrClosed is returned by Run after Close.
var ErrClosed = errors.New("watcher closed")

// Options configures a Watcher.
type Options struct {
	// Paths are the files and directories to watch. Relative paths are
	// resolved against WorkingDir. Empty means WorkingDir itself.
	Paths []string

	WorkingDir string

	// Debounce defaults to DefaultDebounce.
	Debounce time.Duration

	// FollowSymlinks descends into symlinked directories.
	FollowSymlinks bool
}

// Handler receives each batch of changed files, sorted.
type Handler func(ctx context.Context, paths []string)

// Watcher watches directory trees for changes to supported files.
type Watcher struct {
	opts    Options
	fs      *fsnotify.Watcher
	roots   []string
	files   map[string]bool // explicit file roots

	mu      sync.Mutex
	dirs    []string // directory roots, including followed symlink targets
	watched map[string]bool
}

// New starts watching opts.Paths. Directories are watched recursively,
// skipping hidden directories and node_modules.
func New(opts Options) (*Watcher, error) {
	if opts.Debounce <= 0 {
		opts.Debounce = DefaultDebounce
	}
	workDir := opts.WorkingDir
	if workDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("get working directory: %w", err)
		}
		workDir = wd
	}

	paths := opts.Paths
	if len(paths) == 0 {
		paths = []string{"."}
	}

	notify, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	watcher := &Watcher{
		opts:    opts,
		fs:      notify,
		files:   make(map[string]bool),
		watched: make(map[string]bool),
	}

	for _, path := range paths {
		if !filepath.IsAbs(path) {
			path = filepath.Join(workDir, path)
		}
		path = filepath.Clean(path)

		info, statErr := os.Stat(path)
		if statErr != nil {
			_ = notify.Close()
			return nil, fmt.Errorf("watch %s: %w", path, statErr)
		}
		watcher.roots = append(watcher.roots, path)

		if !info.IsDir() {
			watcher.files[path] = true
			if addErr := watcher.add(filepath.Dir(path)); addErr != nil {
				_ = notify.Close()
				return nil, addErr
			}
			continue
		}
		watcher.dirs = append(watcher.dirs, path)
		if _, addErr := watcher.addTree(path); addErr != nil {
			_ = notify.Close()
			return nil, addErr
		}
	}

	return watcher, nil
}

// Roots returns the absolute paths being watched.
func (w *Watcher) Roots() []string {
	return slices.Clone(w.roots)
}

// Close stops watching. A running Run returns.
func (w *Watcher) Close() error {
	return w.fs.Close()
}

// Run delivers batches of changed files to handle until ctx is done,
// returning ctx.Err(). Handler calls do not overlap.
func (w *Watcher) Run(ctx context.Context, handle Handler) error {
	ctx, logger := logging.With(ctx, logging.FieldComponent, "watch")

	pending := make(map[string]bool)
	timer := time.NewTimer(w.opts.Debounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-w.fs.Events:
			if !ok {
				return ErrClosed
			}
			changed := w.handleEvent(event)
			if len(changed) == 0 {
				continue
			}
			for _, path := range changed {
				pending[path] = true
			}
			timer.Reset(w.opts.Debounce)

		case err, ok := <-w.fs.Errors:
			if !ok {
				return ErrClosed
			}
			logger.Warn("watch error", logging.FieldError, err)

		case <-timer.C:
			batch := existingFiles(pending)
			clear(pending)
			if len(batch) == 0 {
				continue
			}
			logger.Debug("files changed", logging.FieldCount, len(batch), logging.FieldPaths, batch)
			handle(ctx, batch)
		}
	}
}

// handleEvent returns the supported files an event may have changed.
// New directories are watched and their existing files reported, since
// files can be written before the watch is in place.
func (w *Watcher) handleEvent(event fsnotify.Event) []string {
	if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) {
		return nil
	}

	path := filepath.Clean(event.Name)
	if event.Has(fsnotify.Create) {
		if info, err := os.Stat(path); err == nil && info.IsDir() {
			if runner.SkippedDir(filepath.Base(path)) || !w.underDirRoot(path) {
				return nil
			}
			found, err := w.addTree(path)
			if err != nil {
				return nil
			}
			return found
		}
	}

	if !w.wanted(path) {
		return nil
	}
	return []string{path}
}

// wanted reports whether path is a supported file covered by a root.
func (w *Watcher) wanted(path string) bool {
	if !runner.SupportedLanguage(langdetect.FromPath(path)) {
		return false
	}
	return w.files[path] || w.underDirRoot(path)
}

func (w *Watcher) underDirRoot(path string) bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	for _, root := range w.dirs {
		rel, err := filepath.Rel(root, path)
		if err == nil && rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
			return true
		}
	}
	return false
}

// addTree watches dir and its subdirectories and returns the supported
// files found in them.
func (w *Watcher) addTree(dir string) ([]string, error) {
	var found []string
	err := filepath.WalkDir(dir, func(path string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			if path == dir {
				return walkErr
			}
			return nil
		}

		if entry.Type()&fs.ModeSymlink != 0 {
			if !w.opts.FollowSymlinks {
				return nil
			}
			target, err := filepath.EvalSymlinks(path)
			if err != nil {
				return nil //nolint:nilerr // Broken symlinks are skipped.
			}
			info, err := os.Stat(target)
			if err != nil || !info.IsDir() || w.isWatched(target) {
				return nil //nolint:nilerr // Only unseen directory links are followed.
			}
			w.mu.Lock()
			w.dirs = append(w.dirs, target)
			w.mu.Unlock()
			more, err := w.addTree(target)
			found = append(found, more...)
			return err
		}

		if !entry.IsDir() {
			if runner.SupportedLanguage(langdetect.FromPath(path)) {
				found = append(found, path)
			}
			return nil
		}
		if path != dir && runner.SkippedDir(entry.Name()) {
			return filepath.SkipDir
		}
		return w.add(path)
	})
	if err != nil {
		return nil, fmt.Errorf("watch %s: %w", dir, err)
	}
	return found, nil
}

func (w *Watcher) isWatched(dir string) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.watched[dir]
}

// add watches a single directory once.
func (w *Watcher) add(dir string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.watched[dir] {
		return nil
	}
	if err := w.fs.Add(dir); err != nil {
		return fmt.Errorf("watch %s: %w", dir, err)
	}
	w.watched[dir] = true
	return nil
}

// existingFiles returns the pending paths that are still regular files.
func existingFiles(pending map[string]bool) []string {
	batch := make([]string, 0, len(pending))
	for path := range pending {
		info, err := os.Stat(path)
		if err != nil || !info.Mode().IsRegular() {
			continue
		}
		batch = append(batch, path)
	}
	slices.Sort(batch)
	return batch
}
