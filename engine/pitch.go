// SPDX-License-Identifier: EPL-2.0

package engine

import (
	"math"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/ik5/soundboard/utils"
)

// pitchWindow is the length of one delay sweep.
const pitchWindow = 0.1 // seconds

// PitchShift moves the pitch of src without changing its tempo. Two taps
// sweep a delay line half a window apart; each tap is faded in and out
// with a sin² window so the jumps at the end of a sweep are silent.
// At 0 semitones the input passes through untouched.
type PitchShift struct {
	src    beep.Streamer
	ratio  float64
	window float64 // in frames
	ring   [][2]float64
	write  int
	phase  float64
}

func NewPitchShift(src beep.Streamer, sampleRate beep.SampleRate) *PitchShift {
	window := math.Max(4, float64(sampleRate.N(time.Duration(pitchWindow*float64(time.Second)))))

	return &PitchShift{
		src:    src,
		ratio:  1,
		window: window,
		ring:   make([][2]float64, int(window)+4),
	}
}

// SetSemitones sets the shift amount.
func (p *PitchShift) SetSemitones(n float64) {
	p.ratio = utils.SemitoneRatio(n)
}

// Ratio is the current frequency ratio.
func (p *PitchShift) Ratio() float64 { return p.ratio }

// Reset clears the delay line.
func (p *PitchShift) Reset() {
	clear(p.ring)
	p.phase = 0
}

func (p *PitchShift) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = p.src.Stream(samples)
	bypass := p.ratio == 1
	step := (1 - p.ratio) / p.window

	for i := range samples[:n] {
		p.ring[p.write] = samples[i]

		if !bypass {
			other := p.phase + 0.5
			if other >= 1 {
				other--
			}

			a := p.tap(p.phase * p.window)
			b := p.tap(other * p.window)
			ga := math.Sin(math.Pi * p.phase)
			ga *= ga
			gb := 1 - ga

			samples[i][0] = a[0]*ga + b[0]*gb
			samples[i][1] = a[1]*ga + b[1]*gb

			p.phase += step
			p.phase -= math.Floor(p.phase)
		}

		p.write++
		if p.write == len(p.ring) {
			p.write = 0
		}
	}

	return n, ok
}

// tap reads the delay line delay frames behind the write head.
func (p *PitchShift) tap(delay float64) [2]float64 {
	size := len(p.ring)
	whole := int(delay)
	frac := delay - float64(whole)

	i0 := (p.write - whole + size) % size
	i1 := (i0 - 1 + size) % size

	a, b := p.ring[i0], p.ring[i1]
	return [2]float64{
		a[0] + (b[0]-a[0])*frac,
		a[1] + (b[1]-a[1])*frac,
	}
}

func (p *PitchShift) Err() error { return p.src.Err() }
