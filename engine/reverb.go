// SPDX-License-Identifier: EPL-2.0

package engine

import (
	"github.com/gopxl/beep/v2"
	"github.com/ik5/soundboard/utils"
)

// Freeverb tunings, in frames at 44.1kHz.
var (
	combTuning    = []int{1116, 1188, 1277, 1356, 1422, 1491, 1557, 1617}
	allpassTuning = []int{556, 441, 341, 225}
)

const (
	stereoSpread = 23
	tuningRate   = 44100

	roomSize    = 0.84
	roomScale   = 0.28
	roomOffset  = 0.7
	damping     = 0.2 * 0.4
	inputGain   = 0.015
	wetScale    = 3
	allpassGain = 0.5
)

type comb struct {
	buf   []float64
	idx   int
	store float64
}

func (c *comb) process(x, feedback float64) float64 {
	out := c.buf[c.idx]
	c.store = out*(1-damping) + c.store*damping
	c.buf[c.idx] = x + c.store*feedback

	c.idx++
	if c.idx == len(c.buf) {
		c.idx = 0
	}
	return out
}

type allpass struct {
	buf []float64
	idx int
}

func (a *allpass) process(x float64) float64 {
	delayed := a.buf[a.idx]
	out := delayed - x
	a.buf[a.idx] = x + delayed*allpassGain

	a.idx++
	if a.idx == len(a.buf) {
		a.idx = 0
	}
	return out
}

// Reverb is a Schroeder-Moorer room (Freeverb layout) mixed with the dry
// signal by Wet.
type Reverb struct {
	src      beep.Streamer
	wet      float64
	feedback float64
	combs    [2][]*comb
	allpass  [2][]*allpass
}

func NewReverb(src beep.Streamer, sampleRate beep.SampleRate) *Reverb {
	r := &Reverb{
		src:      src,
		wet:      0.5,
		feedback: roomSize*roomScale + roomOffset,
	}

	scale := func(frames int) int {
		return max(1, frames*int(sampleRate)/tuningRate)
	}

	for side := range 2 {
		spread := side * stereoSpread
		for _, t := range combTuning {
			r.combs[side] = append(r.combs[side], &comb{buf: make([]float64, scale(t+spread))})
		}
		for _, t := range allpassTuning {
			r.allpass[side] = append(r.allpass[side], &allpass{buf: make([]float64, scale(t+spread))})
		}
	}

	return r
}

// SetWet sets the wet share, clamped to [0,1].
func (r *Reverb) SetWet(w float64) { r.wet = utils.Clamp(w, 0, 1) }

func (r *Reverb) Wet() float64 { return r.wet }

// Reset silences the tail.
func (r *Reverb) Reset() {
	for side := range 2 {
		for _, c := range r.combs[side] {
			clear(c.buf)
			c.store = 0
		}
		for _, a := range r.allpass[side] {
			clear(a.buf)
		}
	}
}

func (r *Reverb) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = r.src.Stream(samples)

	dry := 1 - r.wet
	wet := r.wet * wetScale

	for i := range samples[:n] {
		in := (samples[i][0] + samples[i][1]) * inputGain

		for side := range 2 {
			var acc float64
			for _, c := range r.combs[side] {
				acc += c.process(in, r.feedback)
			}
			for _, a := range r.allpass[side] {
				acc = a.process(acc)
			}
			samples[i][side] = samples[i][side]*dry + acc*wet
		}
	}

	return n, ok
}

func (r *Reverb) Err() error { return r.src.Err() }
