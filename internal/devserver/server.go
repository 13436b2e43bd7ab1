// Package devserver serves the built site over HTTP and rebuilds it when the
// data directory changes.
package devserver

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/cnc-league/cnc/internal/logger"
)

const debounceDelay = 300 * time.Millisecond

// Rebuilder regenerates the site. A failed rebuild leaves the previous
// output in place.
type Rebuilder interface {
	Build() error
}

// Server serves a directory and optionally watches paths for changes.
type Server struct {
	// Dir is the directory to serve.
	Dir string
	// Port is the listen port.
	Port int
	// Builder rebuilds the site on change. Nil disables rebuilding.
	Builder Rebuilder
	// WatchPaths are watched recursively-ish: each listed path is watched
	// directly (fsnotify does not recurse).
	WatchPaths []string
}

// Run builds once, then serves until the context is cancelled. When watch
// paths are set, changes trigger a debounced rebuild; rebuild failures are
// logged and the previous output keeps serving.
func (s *Server) Run(ctx context.Context) error {
	if s.Builder != nil {
		if err := s.Builder.Build(); err != nil {
			return fmt.Errorf("initial build: %w", err)
		}
	}

	if len(s.WatchPaths) > 0 && s.Builder != nil {
		watcher, err := fsnotify.NewWatcher()
		if err != nil {
			return fmt.Errorf("create watcher: %w", err)
		}
		defer watcher.Close()

		for _, path := range s.WatchPaths {
			if _, err := os.Stat(path); err != nil {
				logger.Op.WithField("path", path).Warn("Watch path does not exist, skipping")
				continue
			}
			if err := watcher.Add(path); err != nil {
				return fmt.Errorf("watch %s: %w", path, err)
			}
			logger.Op.WithField("path", path).Debug("Watching for changes")
		}

		go s.watchLoop(ctx, watcher)
	}

	addr := fmt.Sprintf(":%d", s.Port)
	httpServer := &http.Server{
		Addr:    addr,
		Handler: http.FileServer(http.Dir(s.Dir)),
		BaseContext: func(net.Listener) context.Context {
			return ctx
		},
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		httpServer.Shutdown(shutdownCtx)
	}()

	logger.User.Infof("Serving %s on http://localhost%s", s.Dir, addr)
	err := httpServer.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

// watchLoop coalesces bursts of filesystem events into one rebuild.
func (s *Server) watchLoop(ctx context.Context, watcher *fsnotify.Watcher) {
	var timer *time.Timer
	var timerC <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			logger.Op.WithField("file", event.Name).Debug("Change detected")
			if timer == nil {
				timer = time.NewTimer(debounceDelay)
			} else {
				timer.Reset(debounceDelay)
			}
			timerC = timer.C
		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			logger.Op.WithError(err).Error("Watcher error")
		case <-timerC:
			timerC = nil
			logger.Op.Info("Rebuilding after change")
			if err := s.Builder.Build(); err != nil {
				logger.Op.WithError(err).Error("Rebuild failed, keeping previous output")
			} else {
				logger.Op.Info("Rebuild completed")
			}
		}
	}
}
