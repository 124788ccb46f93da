// SPDX-License-Identifier: EPL-2.0

package engine

import (
	"sync"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/effects"
)

// Chain is the session's single signal path:
//
//	voices → bus → pitch shift → (reverb) → master volume → output
//
// It is built once and reconfigured in place. Every setter and every pull
// from the output takes the same lock, so parameter changes land between
// two buffers and never inside one.
type Chain struct {
	mu       sync.Mutex
	format   beep.Format
	bus      *Bus
	pitch    *PitchShift
	reverb   *Reverb
	reverbOn bool
	master   *effects.Volume
	shift    float64
}

func NewChain(sampleRate int) *Chain {
	rate := beep.SampleRate(sampleRate)

	c := &Chain{
		format: beep.Format{SampleRate: rate, NumChannels: 2, Precision: 4},
		bus:    &Bus{},
	}
	c.pitch = NewPitchShift(c.bus, rate)
	c.reverb = NewReverb(c.pitch, rate)
	c.master = &effects.Volume{
		Streamer: beep.StreamerFunc(c.route),
		Base:     10,
		Volume:   0,
		Silent:   false,
	}

	return c
}

// route feeds the master either straight from the pitch stage or through
// the reverb.
func (c *Chain) route(samples [][2]float64) (int, bool) {
	if c.reverbOn {
		return c.reverb.Stream(samples)
	}
	return c.pitch.Stream(samples)
}

// Format is stereo at the session sample rate.
func (c *Chain) Format() beep.Format { return c.format }

func (c *Chain) SampleRate() int { return int(c.format.SampleRate) }

// Stream pulls one buffer through the whole chain. It never drains.
func (c *Chain) Stream(samples [][2]float64) (n int, ok bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.master.Stream(samples)
}

func (c *Chain) Err() error { return nil }

// Connect feeds s into the chain until it drains.
func (c *Chain) Connect(s beep.Streamer) {
	c.mu.Lock()
	c.bus.Add(s)
	c.mu.Unlock()
}

// Active is the number of streamers currently connected.
func (c *Chain) Active() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.bus.Len()
}

// SetPitch sets the pitch shift in semitones.
func (c *Chain) SetPitch(semitones float64) {
	c.mu.Lock()
	c.shift = semitones
	c.pitch.SetSemitones(semitones)
	c.mu.Unlock()
}

func (c *Chain) Pitch() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.shift
}

// SetReverb routes the pitch stage through the reverb or straight to the
// master. Enabling starts from a silent tail.
func (c *Chain) SetReverb(on bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if on && !c.reverbOn {
		c.reverb.Reset()
	}
	c.reverbOn = on
}

func (c *Chain) ReverbEnabled() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.reverbOn
}

// SetReverbWet sets the reverb mix, clamped to [0,1]. It applies whether
// or not the reverb is routed in.
func (c *Chain) SetReverbWet(w float64) {
	c.mu.Lock()
	c.reverb.SetWet(w)
	c.mu.Unlock()
}

func (c *Chain) ReverbWet() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.reverb.Wet()
}

// SetVolume sets the master gain in decibels.
func (c *Chain) SetVolume(db float64) {
	c.mu.Lock()
	c.master.Volume = db / 20
	c.mu.Unlock()
}

func (c *Chain) Volume() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.master.Volume * 20
}

func (c *Chain) SetMuted(muted bool) {
	c.mu.Lock()
	c.master.Silent = muted
	c.mu.Unlock()
}

func (c *Chain) Muted() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.master.Silent
}
