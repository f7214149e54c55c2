// Package template manages named LaTeX resume templates: built-in styles
// plus .tex files from a configured directory, hot-reloaded on change.
package template

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/resumeforge/resumeforge/internal/apperr"
)

// DefaultStyle seeds new editing sessions that name no style.
const DefaultStyle = "modern"

// Registry holds the loaded templates keyed by style name.
type Registry struct {
	dir    string
	logger *slog.Logger

	mu        sync.RWMutex
	templates map[string]string
}

// NewRegistry loads built-in styles and overlays .tex files from dir.
// An empty dir means built-ins only.
func NewRegistry(dir string, logger *slog.Logger) (*Registry, error) {
	if logger == nil {
		logger = slog.Default()
	}
	r := &Registry{dir: dir, logger: logger}
	if err := r.Reload(); err != nil {
		return nil, err
	}
	return r, nil
}

// Get returns the template source for a style.
func (r *Registry) Get(style string) (string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	tpl, ok := r.templates[style]
	if !ok {
		return "", apperr.ErrNotFound
	}
	return tpl, nil
}

// Styles returns the sorted list of available style names.
func (r *Registry) Styles() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, 0, len(r.templates))
	for name := range r.templates {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// Reload re-reads the template directory. Disk files override built-ins
// with the same stem.
func (r *Registry) Reload() error {
	templates := builtinStyles()

	if r.dir != "" {
		entries, err := os.ReadDir(r.dir)
		if err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("template: read dir: %w", err)
		}
		for _, e := range entries {
			if e.IsDir() || !strings.HasSuffix(e.Name(), ".tex") {
				continue
			}
			data, err := os.ReadFile(filepath.Join(r.dir, e.Name()))
			if err != nil {
				r.logger.Warn("template: read failed",
					slog.String("file", e.Name()),
					slog.String("error", err.Error()))
				continue
			}
			style := strings.TrimSuffix(e.Name(), ".tex")
			templates[style] = string(data)
		}
	}

	r.mu.Lock()
	r.templates = templates
	r.mu.Unlock()
	return nil
}

// Watch reloads the registry whenever a .tex file under the directory
// changes, debounced, until ctx is cancelled. cb (if non-nil) runs after
// each successful reload.
func (r *Registry) Watch(ctx context.Context, cb func()) error {
	if r.dir == "" {
		<-ctx.Done()
		return nil
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()

	if err := w.Add(r.dir); err != nil {
		return err
	}

	r.logger.Info("template watcher: started", slog.String("dir", r.dir))

	var reloadTimer *time.Timer
	var reloadCh <-chan time.Time

	scheduleReload := func() {
		if reloadTimer == nil {
			reloadTimer = time.NewTimer(200 * time.Millisecond)
			reloadCh = reloadTimer.C
		} else {
			reloadTimer.Reset(200 * time.Millisecond)
		}
	}

	for {
		select {
		case <-ctx.Done():
			if reloadTimer != nil {
				reloadTimer.Stop()
			}
			r.logger.Info("template watcher: stopped")
			return nil

		case <-reloadCh:
			if err := r.Reload(); err != nil {
				r.logger.Warn("template watcher: reload failed", slog.String("error", err.Error()))
				continue
			}
			r.logger.Debug("template watcher: reloaded")
			if cb != nil {
				cb()
			}

		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if strings.HasSuffix(ev.Name, ".tex") {
				scheduleReload()
			}

		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			r.logger.Warn("template watcher: error", slog.String("error", err.Error()))
		}
	}
}
