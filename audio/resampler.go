// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"errors"
	"fmt"
	"io"

	"github.com/ik5/soundboard/utils"
)

// historyLimit bounds how many consumed source frames are kept before the
// pending window is compacted.
const historyLimit = 4096

// maxEmptyReads is how many consecutive empty reads are tolerated before a
// source is considered stuck.
const maxEmptyReads = 100

// Resampler streams from src to a target sample rate using cubic
// interpolation. Works on interleaved samples; preserves channel count.
// When downsampling, a one-pole low-pass is applied to the source frames.
type Resampler struct {
	src      Source
	channels int
	srcRate  int
	dstRate  int

	pending []float32 // interleaved source frames, pending[0] is frame `first`
	first   int
	out     int // output frames produced so far
	chunk   []float32
	eof     bool

	alpha  float32
	filter []float32
	primed bool

	empty int // consecutive reads that returned nothing
}

func NewResampler(src Source, dstRate int) *Resampler {
	channels := src.Channels()
	step := float64(src.SampleRate()) / float64(dstRate)

	var alpha float32 = 1
	if step > 1 {
		alpha = float32(1 / step)
	}

	chunk := max(src.BufSize(), 1024)
	chunk -= chunk % max(channels, 1)

	return &Resampler{
		src:      src,
		channels: channels,
		srcRate:  src.SampleRate(),
		dstRate:  dstRate,
		chunk:    make([]float32, chunk),
		alpha:    alpha,
		filter:   make([]float32, channels),
	}
}

func (r *Resampler) SampleRate() int { return r.dstRate }
func (r *Resampler) Channels() int   { return r.channels }
func (r *Resampler) BufSize() int    { return r.src.BufSize() }

func (r *Resampler) Close() error {
	if err := r.src.Close(); err != nil {
		return fmt.Errorf("resampler: %w", err)
	}
	return nil
}

// end returns one past the last buffered source frame.
func (r *Resampler) end() int {
	return r.first + len(r.pending)/r.channels
}

func (r *Resampler) fill() error {
	n, err := r.src.ReadSamples(r.chunk)
	n -= n % r.channels

	if n > 0 {
		start := len(r.pending)
		r.pending = append(r.pending, r.chunk[:n]...)

		if r.alpha < 1 {
			frames := r.pending[start:]
			if !r.primed {
				copy(r.filter, frames[:r.channels])
				r.primed = true
			}
			for i := range frames {
				c := i % r.channels
				r.filter[c] += r.alpha * (frames[i] - r.filter[c])
				frames[i] = r.filter[c]
			}
		}
	}

	if errors.Is(err, io.EOF) {
		r.eof = true
		return nil
	}
	if err != nil {
		return fmt.Errorf("resampler: %w", err)
	}
	if n == 0 {
		r.empty++
		if r.empty >= maxEmptyReads {
			return io.ErrNoProgress
		}
		return nil
	}
	r.empty = 0

	return nil
}

func (r *Resampler) sample(frame, c int) float32 {
	frame = max(r.first, min(frame, r.end()-1))
	return r.pending[(frame-r.first)*r.channels+c]
}

func (r *Resampler) compact(idx int) {
	cut := idx - 1 - r.first
	if cut < historyLimit {
		return
	}

	n := copy(r.pending, r.pending[cut*r.channels:])
	r.pending = r.pending[:n]
	r.first += cut
}

// ReadSamples produces dst samples at the target rate.
// dst length must be a multiple of the channel count.
func (r *Resampler) ReadSamples(dst []float32) (int, error) {
	if r.channels == 0 {
		return 0, ErrNoChannels
	}
	if len(dst)%r.channels != 0 {
		return 0, ErrInvalidDstSize
	}

	frames := len(dst) / r.channels
	written := 0

	for written < frames {
		// exact rational position keeps output length independent of
		// floating point drift
		num := r.out * r.srcRate
		idx := num / r.dstRate
		for !r.eof && idx+2 >= r.end() {
			if err := r.fill(); err != nil {
				return written * r.channels, err
			}
		}
		if idx >= r.end() {
			break
		}

		frac := float32(num%r.dstRate) / float32(r.dstRate)
		out := dst[written*r.channels : (written+1)*r.channels]
		for c := range out {
			out[c] = utils.CubicInterpolate(
				r.sample(idx-1, c), r.sample(idx, c),
				r.sample(idx+1, c), r.sample(idx+2, c), frac)
		}

		written++
		r.out++
		r.compact(idx)
	}

	if written < frames {
		return written * r.channels, io.EOF
	}

	return written * r.channels, nil
}
