// SPDX-License-Identifier: EPL-2.0

package server

import (
	"context"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// WatchDebounce coalesces bursts of file events into one rescan.
const WatchDebounce = 250 * time.Millisecond

// Watch rescans the catalog whenever files under dir change, until ctx
// is done. dir must be the directory the server's fs.FS was opened on.
func (s *Server) Watch(ctx context.Context, dir string) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("server: watch: %w", err)
	}
	defer watcher.Close()

	if err := addTree(watcher, dir); err != nil {
		return fmt.Errorf("server: watch %s: %w", dir, err)
	}

	s.log.Info("Watching sound directory", zap.String("dir", dir))

	timer := time.NewTimer(WatchDebounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op == fsnotify.Chmod || hidden(event.Name) {
				continue
			}
			if event.Op.Has(fsnotify.Create) {
				// new subdirectories need their own watch
				_ = addTree(watcher, event.Name)
			}
			timer.Reset(WatchDebounce)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			s.log.Warn("Watcher error", zap.Error(err))

		case <-timer.C:
			if err := s.Rescan(); err != nil {
				s.log.Error("Rescan failed", zap.Error(err))
			}
		}
	}
}

func addTree(w *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if p != root && hidden(p) {
			return filepath.SkipDir
		}
		return w.Add(p)
	})
}

func hidden(p string) bool {
	return strings.HasPrefix(filepath.Base(p), ".")
}
