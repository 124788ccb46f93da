// SPDX-License-Identifier: EPL-2.0

package control

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/ik5/soundboard"
	"github.com/ik5/soundboard/loader"
	"github.com/ik5/soundboard/playback"
	"github.com/ik5/soundboard/server"
	"go.uber.org/zap"
)

// PushInterval is how often the state feed checks for changes.
const PushInterval = 100 * time.Millisecond

// Player is the part of a session the API drives.
type Player interface {
	PlayPath(ctx context.Context, path string) error
	Stop()
	ToggleInstantReverse()
	Params() playback.Params
	SetParams(p playback.Params) error
	Snapshot() soundboard.Snapshot
}

type API struct {
	player   Player
	log      *zap.Logger
	interval time.Duration
}

func New(p Player, log *zap.Logger) *API {
	if log == nil {
		log = zap.NewNop()
	}
	return &API{player: p, log: log.Named("control"), interval: PushInterval}
}

func (a *API) Handler() http.Handler {
	router := mux.NewRouter()
	router.Use(server.RequestLogger(a.log), server.CORS)

	router.HandleFunc("/api/play", a.handlePlay).Methods(http.MethodPost, http.MethodOptions)
	router.HandleFunc("/api/stop", a.handleStop).Methods(http.MethodPost, http.MethodOptions)
	router.HandleFunc("/api/reverse", a.handleReverse).Methods(http.MethodPost, http.MethodOptions)
	router.HandleFunc("/api/params", a.handleParams).Methods(http.MethodGet, http.MethodPut, http.MethodOptions)
	router.HandleFunc("/api/state", a.handleState).Methods(http.MethodGet, http.MethodOptions)
	router.HandleFunc("/api/state/ws", a.handleStateWS).Methods(http.MethodGet)

	return router
}

type playRequest struct {
	Path string `json:"path"`
}

func (a *API) handlePlay(w http.ResponseWriter, r *http.Request) {
	var req playRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := a.player.PlayPath(r.Context(), req.Path); err != nil {
		a.log.Warn("Play failed", zap.String("path", req.Path), zap.Error(err))
		writeError(w, statusFor(err), err.Error())
		return
	}

	writeJSON(w, http.StatusOK, a.player.Snapshot())
}

func (a *API) handleStop(w http.ResponseWriter, r *http.Request) {
	a.player.Stop()
	writeJSON(w, http.StatusOK, a.player.Snapshot())
}

func (a *API) handleReverse(w http.ResponseWriter, r *http.Request) {
	a.player.ToggleInstantReverse()
	writeJSON(w, http.StatusOK, a.player.Snapshot())
}

// handleParams merges the request body over the current parameters, so
// a client may send only the fields it changes.
func (a *API) handleParams(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodGet {
		writeJSON(w, http.StatusOK, a.player.Params())
		return
	}

	p := a.player.Params()
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := a.player.SetParams(p); err != nil {
		writeError(w, statusFor(err), err.Error())
		return
	}

	writeJSON(w, http.StatusOK, a.player.Params())
}

func (a *API) handleState(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, a.player.Snapshot())
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, playback.ErrInvalidSound), errors.Is(err, playback.ErrInvalidSpeed):
		return http.StatusBadRequest
	case errors.Is(err, loader.ErrPermanentFailure):
		return http.StatusNotFound
	case errors.Is(err, soundboard.ErrNotInitialized), errors.Is(err, soundboard.ErrDisposed):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
