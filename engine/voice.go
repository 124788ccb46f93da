// SPDX-License-Identifier: EPL-2.0

package engine

import (
	"sync"

	"github.com/ik5/soundboard/utils"
)

// Voice plays one Buffer into the bus. A voice can be started, stopped and
// restarted any number of times; the end handler fires each time a started
// voice stops, whether it ran out or was stopped.
type Voice struct {
	mu      sync.Mutex
	buf     *Buffer
	reverse bool
	rate    float64
	pos     float64 // frames into buf
	playing bool
	onEnded func()
}

func NewVoice(buf *Buffer) *Voice {
	return &Voice{buf: buf, rate: 1}
}

// Buffer returns the voice's own buffer.
func (v *Voice) Buffer() *Buffer { return v.buf }

// SetReverse marks the voice as playing back to front. Only the voice's
// own buffer is reordered.
func (v *Voice) SetReverse(on bool) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if on != v.reverse {
		v.buf.Reverse()
		v.reverse = on
	}
}

func (v *Voice) Reversed() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.reverse
}

// SetPlaybackRate changes speed live. Non-positive rates are ignored.
func (v *Voice) SetPlaybackRate(rate float64) {
	if rate <= 0 {
		return
	}

	v.mu.Lock()
	v.rate = rate
	v.mu.Unlock()
}

func (v *Voice) PlaybackRate() float64 {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.rate
}

// OnEnded installs fn as the end handler. nil detaches the current one.
func (v *Voice) OnEnded(fn func()) {
	v.mu.Lock()
	v.onEnded = fn
	v.mu.Unlock()
}

// Start plays from offset seconds into the voice's buffer.
func (v *Voice) Start(offset float64) {
	v.mu.Lock()
	defer v.mu.Unlock()

	frames := float64(v.buf.Len())
	v.pos = utils.Clamp(offset*float64(v.buf.SampleRate()), 0, frames)
	v.playing = true
}

// Stop halts the voice. The end handler, if any, runs on its own goroutine.
func (v *Voice) Stop() {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.endLocked()
}

func (v *Voice) endLocked() {
	if !v.playing {
		return
	}
	v.playing = false

	// the handler may call back into the controller and the chain
	if fn := v.onEnded; fn != nil {
		go fn()
	}
}

func (v *Voice) Playing() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.playing
}

// Position is the playhead in seconds into the voice's own buffer.
func (v *Voice) Position() float64 {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.pos / float64(v.buf.SampleRate())
}

// Stream renders stereo frames at the buffer's sample rate. Mono buffers
// feed both sides; channels past the second are ignored.
func (v *Voice) Stream(samples [][2]float64) (n int, ok bool) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if !v.playing {
		return 0, false
	}

	frames := v.buf.Len()
	left := v.buf.Channel(0)
	right := left
	if v.buf.Channels() > 1 {
		right = v.buf.Channel(1)
	}

	for n < len(samples) {
		if v.pos >= float64(frames) {
			v.endLocked()
			break
		}

		idx := int(v.pos)
		frac := float32(v.pos - float64(idx))
		samples[n][0] = float64(interpolate(left, idx, frac))
		samples[n][1] = float64(interpolate(right, idx, frac))

		n++
		v.pos += v.rate
	}

	return n, true
}

// Err is always nil; buffers cannot fail mid-stream.
func (v *Voice) Err() error { return nil }

func interpolate(ch []float32, idx int, frac float32) float32 {
	if frac == 0 {
		return ch[idx]
	}

	at := func(i int) float32 { return ch[max(0, min(i, len(ch)-1))] }
	return utils.CubicInterpolate(at(idx-1), at(idx), at(idx+1), at(idx+2), frac)
}
