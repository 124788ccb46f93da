// SPDX-License-Identifier: EPL-2.0

package playback

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/ik5/soundboard/catalog"
	"github.com/ik5/soundboard/engine"
	"github.com/ik5/soundboard/loader"
	"github.com/ik5/soundboard/utils"
	"go.uber.org/zap"
)

// Epsilon keeps start offsets off the exact ends of a buffer.
const Epsilon = 0.001 // seconds

// Loader resolves a sound to its decoded voices.
type Loader interface {
	Load(ctx context.Context, s catalog.Sound) (*loader.LoadedSound, error)
}

// Effects is the shared chain voices play into.
type Effects interface {
	SetPitch(semitones float64)
	SetReverb(on bool)
	SetReverbWet(w float64)
	Connect(s beep.Streamer)
}

// Resumer wakes a suspended output before sound is started.
type Resumer interface {
	Resume() error
}

type Option func(*Controller)

func WithClock(now func() time.Time) Option {
	return func(c *Controller) { c.now = now }
}

func WithLogger(log *zap.Logger) Option {
	return func(c *Controller) { c.log = log }
}

func WithResumer(r Resumer) Option {
	return func(c *Controller) { c.resumer = r }
}

// WithParams sets the initial parameters. Invalid speeds fall back to 1.
func WithParams(p Params) Option {
	return func(c *Controller) {
		if p.Validate() != nil {
			p.Speed = 1
		}
		c.params = p
	}
}

// WithOnChange registers fn to run after every status change. fn runs
// outside the controller lock.
func WithOnChange(fn func(Status)) Option {
	return func(c *Controller) { c.onChange = fn }
}

// Controller owns what is audible: at most one sound plays at a time.
// The playhead is tracked from the wall clock and the speed in effect,
// which keeps it exact across speed changes and reversals.
type Controller struct {
	loader   Loader
	fx       Effects
	resumer  Resumer
	now      func() time.Time
	log      *zap.Logger
	onChange func(Status)

	mu     sync.Mutex
	params Params
	state  *State
	sound  *loader.LoadedSound
	active *engine.Voice
	gen    uint64
	req    uint64 // bumped by Play and Stop
}

func NewController(l Loader, fx Effects, opts ...Option) *Controller {
	c := &Controller{
		loader: l,
		fx:     fx,
		now:    time.Now,
		log:    zap.NewNop(),
		params: DefaultParams(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.log = c.log.Named("playback")

	c.fx.SetPitch(EffectivePitch(c.params))
	c.fx.SetReverb(c.params.Reverb)
	c.fx.SetReverbWet(c.params.ReverbWet)

	return c
}

// Play stops whatever is sounding and starts s from its beginning, or
// from its end when the reverse default is set. An invalid sound changes
// nothing; a failed resume or load leaves the controller idle. A play
// that is overtaken by another Play or Stop while loading does not sound.
func (c *Controller) Play(ctx context.Context, s catalog.Sound) error {
	if err := s.Validate(); err != nil || s.Type != catalog.KindSound {
		c.log.Warn("Rejected play request",
			zap.String("path", s.Path),
			zap.String("type", string(s.Type)),
			zap.Error(err))
		return fmt.Errorf("%w: %q", ErrInvalidSound, s.Path)
	}

	c.mu.Lock()
	c.req++
	req := c.req
	wasSounding := c.state != nil
	c.stopLocked()
	c.mu.Unlock()

	if wasSounding {
		c.changed(Idle)
	}

	if c.resumer != nil {
		if err := c.resumer.Resume(); err != nil {
			return fmt.Errorf("playback: resume output: %w", err)
		}
	}

	ls, err := c.loader.Load(ctx, s)
	if err != nil {
		return fmt.Errorf("playback: %w", err)
	}

	c.mu.Lock()
	if c.req != req {
		c.mu.Unlock()
		c.log.Debug("Play superseded", zap.String("path", s.Path))
		return nil
	}

	reversed := c.params.Reverse
	startPos, offset := 0.0, 0.0
	if reversed {
		startPos = ls.Duration
		offset = clampOffset(0, ls.Duration)
	}

	speed := c.params.Speed
	c.sound = ls
	c.startLocked(voiceFor(ls, reversed), offset, speed)
	c.state = &State{
		Path:          ls.Path,
		StartTime:     c.now(),
		StartPosition: startPos,
		Reversed:      reversed,
		Speed:         speed,
		Duration:      ls.Duration,
	}
	status := c.state.Status()
	c.mu.Unlock()

	c.log.Debug("Playing",
		zap.String("path", ls.Path),
		zap.Stringer("status", status),
		zap.Float64("speed", speed))
	c.changed(status)

	return nil
}

// Stop silences the current sound, if any.
func (c *Controller) Stop() {
	c.mu.Lock()
	c.req++
	if c.state == nil {
		c.mu.Unlock()
		return
	}
	c.stopLocked()
	c.mu.Unlock()

	c.changed(Idle)
}

// ToggleInstantReverse flips the reverse default. While a sound plays it
// also switches to the other buffer at the same logical position without
// passing through Idle.
func (c *Controller) ToggleInstantReverse() {
	c.mu.Lock()
	c.params.Reverse = !c.params.Reverse

	if c.state == nil {
		c.mu.Unlock()
		return
	}

	now := c.now()
	prev := *c.state
	pos := prev.PositionAt(now)
	reversed := !prev.Reversed

	offset := pos
	if reversed {
		offset = prev.Duration - pos
	}

	c.detachLocked()
	c.startLocked(voiceFor(c.sound, reversed), clampOffset(offset, prev.Duration), prev.Speed)
	c.state = &State{
		Path:          prev.Path,
		StartTime:     now,
		StartPosition: pos,
		Reversed:      reversed,
		Speed:         prev.Speed,
		Duration:      prev.Duration,
	}
	status := c.state.Status()
	c.mu.Unlock()

	c.log.Debug("Reversed",
		zap.String("path", prev.Path),
		zap.Float64("position", pos),
		zap.Stringer("status", status))
	c.changed(status)
}

// SetSpeed changes the playback rate live. The playhead is carried over
// at the old speed up to now.
func (c *Controller) SetSpeed(speed float64) error {
	if err := validSpeed(speed); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.rebaseLocked(speed)
	c.params.Speed = speed
	c.fx.SetPitch(EffectivePitch(c.params))

	return nil
}

func (c *Controller) SetPitch(semitones float64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.params.Pitch = semitones
	c.fx.SetPitch(EffectivePitch(c.params))
}

func (c *Controller) SetPitchLock(on bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.params.PitchLock = on
	c.fx.SetPitch(EffectivePitch(c.params))
}

func (c *Controller) SetReverb(on bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.params.Reverb = on
	c.fx.SetReverb(on)
}

// SetReverbWet sets the reverb mix, clamped to [0,1].
func (c *Controller) SetReverbWet(w float64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.params.ReverbWet = utils.Clamp(w, 0, 1)
	c.fx.SetReverbWet(c.params.ReverbWet)
}

// SetReverse sets the direction used by the next Play. It does not touch
// the current sound; ToggleInstantReverse does.
func (c *Controller) SetReverse(on bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.params.Reverse = on
}

// SetParams applies every parameter at once.
func (c *Controller) SetParams(p Params) error {
	if err := p.Validate(); err != nil {
		return err
	}
	p.ReverbWet = utils.Clamp(p.ReverbWet, 0, 1)

	c.mu.Lock()
	defer c.mu.Unlock()

	c.rebaseLocked(p.Speed)
	c.params = p
	c.fx.SetPitch(EffectivePitch(p))
	c.fx.SetReverb(p.Reverb)
	c.fx.SetReverbWet(p.ReverbWet)

	return nil
}

func (c *Controller) Params() Params {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.params
}

func (c *Controller) Status() Status {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state == nil {
		return Idle
	}
	return c.state.Status()
}

// State returns the current segment, false when idle.
func (c *Controller) State() (State, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state == nil {
		return State{}, false
	}
	return *c.state, true
}

// Position is the current logical position in seconds, 0 when idle.
func (c *Controller) Position() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state == nil {
		return 0
	}
	return c.state.PositionAt(c.now())
}

// CurrentlyPlayingPath is the path of the sounding sound, "" when idle.
func (c *Controller) CurrentlyPlayingPath() string {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state == nil {
		return ""
	}
	return c.state.Path
}

// startLocked starts v at offset and routes it into the chain. Its end
// handler only clears the state while v is still the active voice of
// the same segment.
func (c *Controller) startLocked(v *engine.Voice, offset, speed float64) {
	c.gen++
	gen := c.gen

	v.SetPlaybackRate(speed)
	v.OnEnded(func() { c.ended(gen, v) })
	v.Start(offset)
	c.fx.Connect(v)
	c.active = v
}

func (c *Controller) ended(gen uint64, v *engine.Voice) {
	c.mu.Lock()
	if c.gen != gen || c.active != v || c.state == nil {
		c.mu.Unlock()
		return
	}
	path := c.state.Path
	c.state = nil
	c.active = nil
	c.mu.Unlock()

	c.log.Debug("Finished", zap.String("path", path))
	c.changed(Idle)
}

// detachLocked stops the active voice without running its end handler.
func (c *Controller) detachLocked() {
	if c.active == nil {
		return
	}
	c.active.OnEnded(nil)
	c.active.Stop()
	c.active = nil
}

func (c *Controller) stopLocked() {
	c.detachLocked()
	c.state = nil
	c.gen++
}

// rebaseLocked starts a new segment at the current position when the
// speed changes during playback.
func (c *Controller) rebaseLocked(speed float64) {
	if c.state == nil || c.state.Speed == speed {
		return
	}

	now := c.now()
	next := *c.state
	next.StartPosition = c.state.PositionAt(now)
	next.StartTime = now
	next.Speed = speed
	c.state = &next

	if c.active != nil {
		c.active.SetPlaybackRate(speed)
	}
}

func (c *Controller) changed(s Status) {
	if c.onChange != nil {
		c.onChange(s)
	}
}

func voiceFor(ls *loader.LoadedSound, reversed bool) *engine.Voice {
	if reversed {
		return ls.Reversed
	}
	return ls.Forward
}

// clampOffset keeps offset at least Epsilon away from both ends of a
// sound of duration d.
func clampOffset(offset, d float64) float64 {
	if d <= 2*Epsilon {
		return utils.Clamp(offset, 0, d)
	}
	return utils.Clamp(offset, Epsilon, d-Epsilon)
}
