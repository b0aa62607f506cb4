// Package projwatch tracks the active project's marker file on disk. When the
// marker changes the engine's environment may be stale, so registered handlers
// get a chance to react (typically by prompting a project reactivation).
package projwatch

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/replkit/engined/src/engined/entity"
	"go.uber.org/config"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// Module is the Fx module for this package.
var Module = fx.Provide(New)

// ChangeHandler is invoked with the project path whose marker file changed.
type ChangeHandler func(projectPath string)

// Watcher follows the marker file of at most one project at a time.
type Watcher interface {
	// Watch replaces the watched project with the given one.
	Watch(projectPath string) error
	// Stop ends watching. The watcher cannot be reused afterwards.
	Stop() error

	RegisterChangeHandler(fn ChangeHandler)
}

type watcher struct {
	markerFile string

	mu          sync.Mutex
	fsw         *fsnotify.Watcher
	projectPath string
	handlers    []ChangeHandler
	wg          sync.WaitGroup

	logger *zap.SugaredLogger
}

// Params are inbound parameters to construct the watcher.
type Params struct {
	fx.In

	Config    config.Provider
	Lifecycle fx.Lifecycle
	Logger    *zap.SugaredLogger
}

// New creates a project marker watcher.
func New(p Params) (Watcher, error) {
	var cfg entity.EngineConfig
	if err := p.Config.Get(entity.EngineConfigKey).Populate(&cfg); err != nil {
		return nil, fmt.Errorf("getting config field %q: %w", entity.EngineConfigKey, err)
	}

	w := &watcher{
		markerFile: cfg.ProjectMarkerFile,
		logger:     p.Logger.With("component", "projwatch"),
	}

	p.Lifecycle.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return w.Stop()
		},
	})

	return w, nil
}

func (w *watcher) RegisterChangeHandler(fn ChangeHandler) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.handlers = append(w.handlers, fn)
}

// Watch begins following the marker file in the given project directory,
// dropping any previously watched project.
func (w *watcher) Watch(projectPath string) error {
	if w.markerFile == "" {
		// Nothing to follow for engines without project markers.
		return nil
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if w.fsw == nil {
		fsw, err := fsnotify.NewWatcher()
		if err != nil {
			return fmt.Errorf("create file system watcher: %w", err)
		}
		w.fsw = fsw
		w.wg.Add(1)
		go w.consumeEvents(fsw)
	}

	if w.projectPath == projectPath {
		return nil
	}

	if w.projectPath != "" {
		if err := w.fsw.Remove(w.projectPath); err != nil {
			w.logger.Warnw("removing previous project watch", "path", w.projectPath, "error", err)
		}
	}

	// Watch the directory; the marker file itself may not exist yet.
	if err := w.fsw.Add(projectPath); err != nil {
		return fmt.Errorf("watch project directory %s: %w", projectPath, err)
	}
	w.projectPath = projectPath
	w.logger.Infow("watching project marker", "path", projectPath, "marker", w.markerFile)
	return nil
}

func (w *watcher) consumeEvents(fsw *fsnotify.Watcher) {
	defer w.wg.Done()

	for {
		select {
		case event, ok := <-fsw.Events:
			if !ok {
				return
			}
			w.consumeEvent(event)
		case err, ok := <-fsw.Errors:
			if !ok {
				return
			}
			w.logger.Warnw("file system watcher error", "error", err)
		}
	}
}

func (w *watcher) consumeEvent(event fsnotify.Event) {
	if filepath.Base(event.Name) != w.markerFile {
		return
	}
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Remove) {
		return
	}

	w.mu.Lock()
	projectPath := w.projectPath
	handlers := append([]ChangeHandler{}, w.handlers...)
	w.mu.Unlock()

	w.logger.Infow("project marker changed", "file", event.Name, "op", event.Op.String())
	for _, fn := range handlers {
		fn(projectPath)
	}
}

func (w *watcher) Stop() error {
	w.mu.Lock()
	fsw := w.fsw
	w.fsw = nil
	w.projectPath = ""
	w.mu.Unlock()

	if fsw == nil {
		return nil
	}
	err := fsw.Close()
	w.wg.Wait()
	return err
}
