// SPDX-License-Identifier: EPL-2.0

package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"path"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/mux"
	"github.com/ik5/soundboard/catalog"
	"go.uber.org/zap"
)

// Server holds the scanned catalog of one sound directory.
type Server struct {
	fsys     fs.FS
	supports func(name string) bool
	log      *zap.Logger

	mu      sync.RWMutex
	sounds  []catalog.Sound
	scanErr error
}

// New scans fsys once. A failed scan is logged and reported by the
// catalog endpoint until a later Rescan succeeds.
func New(fsys fs.FS, supports func(name string) bool, log *zap.Logger) *Server {
	if log == nil {
		log = zap.NewNop()
	}

	s := &Server{fsys: fsys, supports: supports, log: log.Named("server")}
	if err := s.Rescan(); err != nil {
		s.log.Error("Initial scan failed", zap.Error(err))
	}
	return s
}

// Rescan rebuilds the catalog from the directory.
func (s *Server) Rescan() error {
	sounds, err := catalog.Scan(s.fsys, s.supports)

	s.mu.Lock()
	defer s.mu.Unlock()

	s.scanErr = err
	if err != nil {
		return err
	}
	s.sounds = sounds

	s.log.Info("Catalog scanned", zap.Int("sounds", len(sounds)))
	return nil
}

// Sounds returns a copy of the current catalog.
func (s *Server) Sounds() []catalog.Sound {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.sounds)
}

// Handler routes the catalog and audio endpoints.
func (s *Server) Handler() http.Handler {
	router := mux.NewRouter()
	router.Use(RequestLogger(s.log), CORS)

	router.HandleFunc("/api/sounds", s.handleSounds).Methods(http.MethodGet, http.MethodOptions)
	router.HandleFunc("/api/audio/{path:.*}", s.handleAudio).Methods(http.MethodGet, http.MethodHead, http.MethodOptions)
	router.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.log.Debug("Not found", zap.String("path", r.URL.Path))
		w.WriteHeader(http.StatusNotFound)
	})

	return router
}

func (s *Server) handleSounds(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	sounds, err := s.sounds, s.scanErr
	s.mu.RUnlock()

	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Unable to read soundboard directory"})
		return
	}
	if sounds == nil {
		sounds = []catalog.Sound{}
	}

	writeJSON(w, http.StatusOK, sounds)
}

func (s *Server) handleAudio(w http.ResponseWriter, r *http.Request) {
	name, ok := cleanName(mux.Vars(r)["path"])
	if !ok {
		http.Error(w, "Audio file not found", http.StatusNotFound)
		return
	}

	info, err := fs.Stat(s.fsys, name)
	if err != nil || info.IsDir() {
		s.log.Warn("Audio file not found", zap.String("path", name), zap.Error(err))
		http.Error(w, "Audio file not found", http.StatusNotFound)
		return
	}

	http.ServeFileFS(w, r, s.fsys, name)
}

// cleanName turns a request path into an fs.FS name that cannot climb
// out of the root.
func cleanName(p string) (string, bool) {
	name := strings.TrimPrefix(path.Clean("/"+p), "/")
	if name == "" || !fs.ValidPath(name) {
		return "", false
	}
	return name, true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// ListenAndServe serves h on addr until ctx is done, then shuts down
// gracefully.
func ListenAndServe(ctx context.Context, addr string, h http.Handler, log *zap.Logger) error {
	if log == nil {
		log = zap.NewNop()
	}

	srv := &http.Server{
		Addr:         addr,
		Handler:      h,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("Server starting", zap.String("addr", addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server: %w", err)
	case <-ctx.Done():
	}

	log.Info("Shutting down server", zap.String("addr", addr))

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server: shutdown: %w", err)
	}

	log.Info("Server stopped")
	return nil
}
