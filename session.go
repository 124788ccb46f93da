// SPDX-License-Identifier: EPL-2.0

package soundboard

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/ik5/soundboard/audio"
	"github.com/ik5/soundboard/catalog"
	"github.com/ik5/soundboard/engine"
	"github.com/ik5/soundboard/loader"
	"github.com/ik5/soundboard/output"
	"github.com/ik5/soundboard/playback"
	"go.uber.org/zap"
)

// OutputFactory opens the device the chain plays into.
type OutputFactory func(s beep.Streamer, sampleRate int) (output.Device, error)

// HeadlessOutput pulls the chain in real time without a sound device.
func HeadlessOutput(opts ...output.HeadlessOption) OutputFactory {
	return func(s beep.Streamer, sampleRate int) (output.Device, error) {
		return output.NewHeadless(s, sampleRate, opts...), nil
	}
}

// DeviceOutput plays the chain on the system sound device.
func DeviceOutput(bufferSize time.Duration, log *zap.Logger) OutputFactory {
	return func(s beep.Streamer, sampleRate int) (output.Device, error) {
		return output.NewOto(s, sampleRate, bufferSize, log)
	}
}

type Options struct {
	// SampleRate of the chain and of every loaded sound.
	SampleRate int
	Fetcher    loader.Fetcher
	// Registry defaults to DefaultRegistry.
	Registry *audio.Registry
	// Loader tunes batching and retries. Its SampleRate and Logger are
	// taken from the session.
	Loader loader.Options
	// Output defaults to HeadlessOutput.
	Output OutputFactory
	Params playback.Params
	// OnChange observes every playback status change.
	OnChange func(playback.Status)
	Logger   *zap.Logger
	Clock    func() time.Time
}

// Session ties the chain, the output, the loader and the controller
// together for the lifetime of one soundboard.
type Session struct {
	opts   Options
	log    *zap.Logger
	chain  *engine.Chain
	loader *loader.Loader
	ctrl   *playback.Controller

	mu       sync.Mutex
	out      output.Device
	disposed bool
	loading  bool
	progress int
}

// New wires a session. Nothing is audible until Init opens the output.
func New(opts Options) (*Session, error) {
	if opts.Fetcher == nil {
		return nil, ErrNoFetcher
	}
	if opts.SampleRate <= 0 {
		opts.SampleRate = loader.DefaultSampleRate
	}
	if opts.Registry == nil {
		opts.Registry = DefaultRegistry()
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Clock == nil {
		opts.Clock = time.Now
	}
	if opts.Output == nil {
		opts.Output = HeadlessOutput(output.WithHeadlessLogger(opts.Logger))
	}
	if opts.Params == (playback.Params{}) {
		opts.Params = playback.DefaultParams()
	}

	s := &Session{
		opts:  opts,
		log:   opts.Logger.Named("session"),
		chain: engine.NewChain(opts.SampleRate),
	}

	lopts := opts.Loader
	lopts.SampleRate = opts.SampleRate
	lopts.Logger = opts.Logger
	s.loader = loader.New(opts.Fetcher, opts.Registry, lopts)

	ctrlOpts := []playback.Option{
		playback.WithClock(opts.Clock),
		playback.WithLogger(opts.Logger),
		playback.WithResumer(s),
		playback.WithParams(opts.Params),
	}
	if opts.OnChange != nil {
		ctrlOpts = append(ctrlOpts, playback.WithOnChange(opts.OnChange))
	}
	s.ctrl = playback.NewController(s.loader, s.chain, ctrlOpts...)

	return s, nil
}

// Init opens the output. Calling it again is a no-op.
func (s *Session) Init(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.disposed {
		return ErrDisposed
	}
	if s.out != nil {
		return nil
	}

	out, err := s.opts.Output(s.chain, s.opts.SampleRate)
	if err != nil {
		return fmt.Errorf("soundboard: init output: %w", err)
	}
	s.out = out

	s.log.Info("Session initialized", zap.Int("sampleRate", s.opts.SampleRate))
	return nil
}

// Dispose stops playback and closes the output. Later calls do nothing.
func (s *Session) Dispose() error {
	s.mu.Lock()
	if s.disposed {
		s.mu.Unlock()
		return nil
	}
	s.disposed = true
	out := s.out
	s.out = nil
	s.mu.Unlock()

	s.ctrl.Stop()

	if out == nil {
		return nil
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("soundboard: close output: %w", err)
	}

	s.log.Info("Session disposed")
	return nil
}

// Resume wakes the output; the controller calls it before every play.
func (s *Session) Resume() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch {
	case s.disposed:
		return ErrDisposed
	case s.out == nil:
		return ErrNotInitialized
	}
	return s.out.Resume()
}

// Preload loads sounds in batches and tracks the progress for Snapshot.
func (s *Session) Preload(ctx context.Context, sounds []catalog.Sound) loader.BatchResult {
	s.mu.Lock()
	s.loading = true
	s.progress = 0
	s.mu.Unlock()

	res := s.loader.LoadBatch(ctx, sounds, func(done, total int) {
		s.mu.Lock()
		s.progress = done * 100 / total
		s.mu.Unlock()
	})

	s.mu.Lock()
	s.loading = false
	s.progress = 100
	s.mu.Unlock()

	return res
}

func (s *Session) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

// LoadingProgress is the share of the current batch that has settled, 0-100.
func (s *Session) LoadingProgress() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.progress
}

// LoadedSoundsList returns the loaded paths, sorted.
func (s *Session) LoadedSoundsList() []string { return s.loader.Loaded() }

// FailedCount is the number of paths that failed permanently.
func (s *Session) FailedCount() int { return len(s.loader.Failed()) }

func (s *Session) Play(ctx context.Context, sound catalog.Sound) error {
	return s.ctrl.Play(ctx, sound)
}

// PlayPath plays the sound stored at p.
func (s *Session) PlayPath(ctx context.Context, p string) error {
	return s.ctrl.Play(ctx, catalog.New(p))
}

func (s *Session) Stop()                        { s.ctrl.Stop() }
func (s *Session) ToggleInstantReverse()        { s.ctrl.ToggleInstantReverse() }
func (s *Session) SetSpeed(speed float64) error { return s.ctrl.SetSpeed(speed) }
func (s *Session) SetPitch(semitones float64)   { s.ctrl.SetPitch(semitones) }
func (s *Session) SetPitchLock(on bool)         { s.ctrl.SetPitchLock(on) }
func (s *Session) SetReverb(on bool)            { s.ctrl.SetReverb(on) }
func (s *Session) SetReverbWet(w float64)       { s.ctrl.SetReverbWet(w) }
func (s *Session) SetReverse(on bool)           { s.ctrl.SetReverse(on) }
func (s *Session) SetParams(p playback.Params) error {
	return s.ctrl.SetParams(p)
}

func (s *Session) Params() playback.Params          { return s.ctrl.Params() }
func (s *Session) Status() playback.Status          { return s.ctrl.Status() }
func (s *Session) Position() float64                { return s.ctrl.Position() }
func (s *Session) CurrentlyPlayingPath() string     { return s.ctrl.CurrentlyPlayingPath() }
func (s *Session) Controller() *playback.Controller { return s.ctrl }
func (s *Session) Loader() *loader.Loader           { return s.loader }

// Chain is the effect chain; the render command streams it directly.
func (s *Session) Chain() *engine.Chain { return s.chain }

// SetVolume sets the master gain in decibels; playback parameters are
// not affected.
func (s *Session) SetVolume(db float64) { s.chain.SetVolume(db) }
func (s *Session) Volume() float64      { return s.chain.Volume() }
func (s *Session) SetMuted(muted bool)  { s.chain.SetMuted(muted) }
func (s *Session) Muted() bool          { return s.chain.Muted() }

// Snapshot is everything a UI needs to draw the board.
type Snapshot struct {
	Status   playback.Status `json:"status"`
	Path     string          `json:"path,omitempty"`
	Position float64         `json:"position"`
	Duration float64         `json:"duration"`
	Params   playback.Params `json:"params"`
	Loading  bool            `json:"loading"`
	Progress int             `json:"progress"`
	Loaded   []string        `json:"loaded"`
	Failed   int             `json:"failed"`
	Volume   float64         `json:"volume"`
	Muted    bool            `json:"muted"`
}

func (s *Session) Snapshot() Snapshot {
	snap := Snapshot{
		Params: s.ctrl.Params(),
		Loaded: s.LoadedSoundsList(),
		Failed: s.FailedCount(),
		Volume: s.chain.Volume(),
		Muted:  s.chain.Muted(),
	}

	if st, ok := s.ctrl.State(); ok {
		snap.Status = st.Status()
		snap.Path = st.Path
		snap.Position = st.PositionAt(s.opts.Clock())
		snap.Duration = st.Duration
	}

	s.mu.Lock()
	snap.Loading = s.loading
	snap.Progress = s.progress
	s.mu.Unlock()

	return snap
}
